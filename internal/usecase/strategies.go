package usecase

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/pricelens/backend/internal/domain"
)

// Compiled phrasing patterns, one set per strategy. All are case-insensitive:
// retailers emit the same promotion as "Buy 2, Get 1 Free" and "buy 2 get 1 free".
var (
	buyGetFreePattern     = regexp.MustCompile(`(?i)Buy\s+(?P<quantity>\d+),?\s+Get\s+(?P<free>\d+)\s+Free`)
	buyGetDiscountPattern = regexp.MustCompile(`(?i)Buy\s+(?P<quantity>\d+),\s+get\s+(?P<free>\d+)\s+(?P<discount>\d+)%\s+off`)
	dollarOffPattern      = regexp.MustCompile(`(?i)\$(?P<discount>\d+(?:\.\d+)?)\s+off`)
	pricePerLbPattern     = regexp.MustCompile(`(?i)\$(?P<price_per_lb>\d+(?:\.\d{2})?)/lb`)
	savingsPattern        = regexp.MustCompile(`(?i)Save\s+\$(?P<savings>\d+(?:\.\d{2})?)`)
)

// groupInt parses a required named group as an integer
func groupInt(m *Match, name string) (int, error) {
	raw, ok := m.Group(name)
	if !ok {
		return 0, fmt.Errorf("%w: group %q", domain.ErrCalculationFailed, name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: group %q: %v", domain.ErrCalculationFailed, name, err)
	}
	return v, nil
}

// groupFloat parses a required named group as a float
func groupFloat(m *Match, name string) (float64, error) {
	raw, ok := m.Group(name)
	if !ok {
		return 0, fmt.Errorf("%w: group %q", domain.ErrCalculationFailed, name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: group %q: %v", domain.ErrCalculationFailed, name, err)
	}
	return v, nil
}

// rawPriceOrDefault reads a numeric field used as-is by a strategy.
// Absent (or empty-sentinel) fields default; present but unusable values
// are a calculation failure, not a silent zero.
func rawPriceOrDefault(r *PriceResolver, record domain.ProductRecord, field string, def float64) (float64, error) {
	if !record.Has(field) {
		return def, nil
	}
	v, ok := r.NumericField(record, field)
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrMissingField, field)
	}
	return v, nil
}

// BuyGetFreeStrategy handles "Buy N, Get M Free" promotions, including the
// "Buy N, get M X% off" variant where the extra items are discounted rather
// than free.
type BuyGetFreeStrategy struct {
	resolver *PriceResolver
}

// NewBuyGetFreeStrategy creates the buy/get strategy
func NewBuyGetFreeStrategy(resolver *PriceResolver) *BuyGetFreeStrategy {
	return &BuyGetFreeStrategy{resolver: resolver}
}

// Name implements Strategy
func (s *BuyGetFreeStrategy) Name() string { return "buy_get_free" }

// Patterns implements Strategy
func (s *BuyGetFreeStrategy) Patterns() []*regexp.Regexp {
	return []*regexp.Regexp{buyGetFreePattern, buyGetDiscountPattern}
}

// dealTotal computes the bundle price and total quantity for a buy/get
// promotion at the given per-item base price.
func (s *BuyGetFreeStrategy) dealTotal(m *Match, basePrice float64) (total float64, totalQty int, err error) {
	quantity, err := groupInt(m, "quantity")
	if err != nil {
		return 0, 0, err
	}
	free, err := groupInt(m, "free")
	if err != nil {
		return 0, 0, err
	}

	if _, ok := m.Group("discount"); ok {
		discount, err := groupInt(m, "discount")
		if err != nil {
			return 0, 0, err
		}
		fullPriceTotal := basePrice * float64(quantity)
		discountedTotal := basePrice * (1 - float64(discount)/100) * float64(free)
		return fullPriceTotal + discountedTotal, quantity + free, nil
	}

	return basePrice * float64(quantity), quantity + free, nil
}

// CalculateDeal prices the bundle off regular_price: N items at full price
// plus M free (or discounted) items, unit price spread over N+M.
func (s *BuyGetFreeStrategy) CalculateDeal(record domain.ProductRecord, m *Match) (domain.CalculationOutcome, error) {
	regular, ok := s.resolver.NumericField(record, domain.FieldRegularPrice)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingField, domain.FieldRegularPrice)
	}

	total, totalQty, err := s.dealTotal(m, regular)
	if err != nil {
		return nil, err
	}

	return domain.CalculationOutcome{
		domain.FieldVolumeDealsPrice: round2(total),
		domain.FieldUnitPrice:        round2(total / float64(totalQty)),
		domain.FieldCouponPrice:      domain.NotApplicable,
	}, nil
}

// CalculateCoupon applies the same bundle arithmetic to the coupon base
// price (the unit price left by the deal pass, when present). The bundle
// total is emitted unrounded as the coupon price.
func (s *BuyGetFreeStrategy) CalculateCoupon(record domain.ProductRecord, m *Match) (domain.CalculationOutcome, error) {
	base := s.resolver.ResolveCouponBasePrice(record)

	total, totalQty, err := s.dealTotal(m, base)
	if err != nil {
		return nil, err
	}

	return domain.CalculationOutcome{
		domain.FieldUnitPrice:   round2(total / float64(totalQty)),
		domain.FieldCouponPrice: total,
	}, nil
}

// DollarDiscountStrategy handles flat "$X off" promotions.
type DollarDiscountStrategy struct {
	resolver *PriceResolver
}

// NewDollarDiscountStrategy creates the dollar-off strategy
func NewDollarDiscountStrategy(resolver *PriceResolver) *DollarDiscountStrategy {
	return &DollarDiscountStrategy{resolver: resolver}
}

// Name implements Strategy
func (s *DollarDiscountStrategy) Name() string { return "dollar_discount" }

// Patterns implements Strategy
func (s *DollarDiscountStrategy) Patterns() []*regexp.Regexp {
	return []*regexp.Regexp{dollarOffPattern}
}

// CalculateDeal subtracts the discount from the record's raw price field.
// The raw field (not the sale/regular fallback) is what the source feed
// carries for these promotions; absent means 0.
func (s *DollarDiscountStrategy) CalculateDeal(record domain.ProductRecord, m *Match) (domain.CalculationOutcome, error) {
	discount, err := groupFloat(m, "discount")
	if err != nil {
		return nil, err
	}
	price, err := rawPriceOrDefault(s.resolver, record, domain.FieldPrice, 0)
	if err != nil {
		return nil, err
	}

	dealPrice := price - discount
	return domain.CalculationOutcome{
		domain.FieldVolumeDealsPrice: round2(dealPrice),
		domain.FieldUnitPrice:        round2(dealPrice),
		domain.FieldCouponPrice:      domain.NotApplicable,
	}, nil
}

// CalculateCoupon records the discount itself as the coupon price and the
// discounted raw price as the unit price.
func (s *DollarDiscountStrategy) CalculateCoupon(record domain.ProductRecord, m *Match) (domain.CalculationOutcome, error) {
	discount, err := groupFloat(m, "discount")
	if err != nil {
		return nil, err
	}
	price, err := rawPriceOrDefault(s.resolver, record, domain.FieldPrice, 0)
	if err != nil {
		return nil, err
	}

	return domain.CalculationOutcome{
		domain.FieldUnitPrice:   round2(price - discount),
		domain.FieldCouponPrice: round2(discount),
	}, nil
}

// PricePerLbStrategy handles "$X/lb" promotions on weighed items.
type PricePerLbStrategy struct {
	resolver *PriceResolver
}

// NewPricePerLbStrategy creates the price-per-weight strategy
func NewPricePerLbStrategy(resolver *PriceResolver) *PricePerLbStrategy {
	return &PricePerLbStrategy{resolver: resolver}
}

// Name implements Strategy
func (s *PricePerLbStrategy) Name() string { return "price_per_lb" }

// Patterns implements Strategy
func (s *PricePerLbStrategy) Patterns() []*regexp.Regexp {
	return []*regexp.Regexp{pricePerLbPattern}
}

// CalculateDeal prices the item at the promotional per-pound rate times
// its weight.
func (s *PricePerLbStrategy) CalculateDeal(record domain.ProductRecord, m *Match) (domain.CalculationOutcome, error) {
	perLb, err := groupFloat(m, "price_per_lb")
	if err != nil {
		return nil, err
	}
	weight := s.resolver.ResolveWeight(record)

	return domain.CalculationOutcome{
		domain.FieldVolumeDealsPrice: round2(perLb * weight),
		domain.FieldUnitPrice:        round2(perLb),
		domain.FieldCouponPrice:      domain.NotApplicable,
	}, nil
}

// CalculateCoupon subtracts the per-pound coupon value (scaled by weight)
// from the unit price established by the deal pass. A record with no prior
// unit price cannot take this coupon.
func (s *PricePerLbStrategy) CalculateCoupon(record domain.ProductRecord, m *Match) (domain.CalculationOutcome, error) {
	perLb, err := groupFloat(m, "price_per_lb")
	if err != nil {
		return nil, err
	}
	unit, ok := s.resolver.NumericField(record, domain.FieldUnitPrice)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingField, domain.FieldUnitPrice)
	}
	weight := s.resolver.ResolveWeight(record)

	return domain.CalculationOutcome{
		domain.FieldUnitPrice:   round2(unit - perLb*weight),
		domain.FieldCouponPrice: round2(perLb),
	}, nil
}

// SavingsStrategy handles "Save $X" promotions.
type SavingsStrategy struct {
	resolver *PriceResolver
}

// NewSavingsStrategy creates the savings strategy
func NewSavingsStrategy(resolver *PriceResolver) *SavingsStrategy {
	return &SavingsStrategy{resolver: resolver}
}

// Name implements Strategy
func (s *SavingsStrategy) Name() string { return "savings" }

// Patterns implements Strategy
func (s *SavingsStrategy) Patterns() []*regexp.Regexp {
	return []*regexp.Regexp{savingsPattern}
}

// CalculateDeal subtracts the savings from the record's raw price field,
// mirroring the dollar-off arithmetic.
func (s *SavingsStrategy) CalculateDeal(record domain.ProductRecord, m *Match) (domain.CalculationOutcome, error) {
	savings, err := groupFloat(m, "savings")
	if err != nil {
		return nil, err
	}
	price, err := rawPriceOrDefault(s.resolver, record, domain.FieldPrice, 0)
	if err != nil {
		return nil, err
	}

	dealPrice := price - savings
	return domain.CalculationOutcome{
		domain.FieldVolumeDealsPrice: round2(dealPrice),
		domain.FieldUnitPrice:        round2(dealPrice),
		domain.FieldCouponPrice:      domain.NotApplicable,
	}, nil
}

// CalculateCoupon subtracts the savings from the unit price left by the
// deal pass (not the resolved shelf price); absent unit price means 0.
func (s *SavingsStrategy) CalculateCoupon(record domain.ProductRecord, m *Match) (domain.CalculationOutcome, error) {
	savings, err := groupFloat(m, "savings")
	if err != nil {
		return nil, err
	}
	unit, err := rawPriceOrDefault(s.resolver, record, domain.FieldUnitPrice, 0)
	if err != nil {
		return nil, err
	}

	return domain.CalculationOutcome{
		domain.FieldUnitPrice:   round2(unit - savings),
		domain.FieldCouponPrice: round2(savings),
	}, nil
}
