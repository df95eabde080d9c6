package usecase

import (
	"fmt"
	"log"

	"github.com/pricelens/backend/internal/domain"
)

// DualPassProcessor derives the normalized pricing fields for one record:
// a deal pass over volume_deals_description, then a coupon pass over
// digital_coupon_short_description. The coupon pass runs second so it can
// stack on the unit price established by the deal pass.
type DualPassProcessor struct {
	catalog            *Catalog
	enableDebugLogging bool
}

// NewDualPassProcessor creates a processor over the given catalog
func NewDualPassProcessor(catalog *Catalog, enableDebugLogging bool) *DualPassProcessor {
	return &DualPassProcessor{
		catalog:            catalog,
		enableDebugLogging: enableDebugLogging,
	}
}

// ProcessRecord runs both passes over a copy of the record and returns the
// derived record plus the typed outcome of each pass. Every record walks
// deal pass then coupon pass exactly once; there are no retries, and the
// input record is never mutated. A failing strategy only voids its own pass.
func (p *DualPassProcessor) ProcessRecord(record domain.ProductRecord) domain.ProcessResult {
	updated := record.Clone()
	result := domain.ProcessResult{}

	result.Deal = p.runPass(updated, updated.String(domain.FieldVolumeDealsDesc), "DEAL",
		func(s Strategy, m *Match) (domain.CalculationOutcome, error) {
			return s.CalculateDeal(updated, m)
		})

	result.Coupon = p.runPass(updated, updated.String(domain.FieldCouponShortDesc), "COUPON",
		func(s Strategy, m *Match) (domain.CalculationOutcome, error) {
			return s.CalculateCoupon(updated, m)
		})

	// The scraped field keeps its "short" name on input only; downstream
	// consumers expect digital_coupon_description.
	if v, ok := updated[domain.FieldCouponShortDesc]; ok {
		updated[domain.FieldCouponDesc] = v
		delete(updated, domain.FieldCouponShortDesc)
	}

	result.Record = updated
	return result
}

// runPass searches the description against the catalog and applies the
// first matching strategy's calculation. Calculation errors and panics are
// contained to this pass: logged, reported as PassFailed, and the record
// is left as it was.
func (p *DualPassProcessor) runPass(
	updated domain.ProductRecord,
	description string,
	tag string,
	calculate func(Strategy, *Match) (domain.CalculationOutcome, error),
) domain.PassOutcome {
	strategy, match, ok := p.catalog.FindMatch(description)
	if !ok {
		return domain.PassOutcome{Status: domain.PassNoMatch}
	}

	if p.enableDebugLogging {
		log.Printf("[%s] Pattern matched by %s: %q", tag, strategy.Name(), description)
	}

	outcome, err := safeCalculate(strategy, match, calculate)
	if err != nil {
		log.Printf("[%s] Calculation failed in %s for %q: %v", tag, strategy.Name(), description, err)
		return domain.PassOutcome{Status: domain.PassFailed, Strategy: strategy.Name(), Err: err}
	}

	updated.Merge(outcome)
	return domain.PassOutcome{Status: domain.PassApplied, Strategy: strategy.Name()}
}

// safeCalculate invokes one strategy calculation, converting a panic into
// an ordinary calculation error so a bad record cannot take down the batch.
func safeCalculate(
	strategy Strategy,
	match *Match,
	calculate func(Strategy, *Match) (domain.CalculationOutcome, error),
) (outcome domain.CalculationOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic in %s: %v", domain.ErrCalculationFailed, strategy.Name(), r)
		}
	}()
	return calculate(strategy, match)
}
