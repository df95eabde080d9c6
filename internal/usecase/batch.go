package usecase

import (
	"log"

	"github.com/pricelens/backend/internal/domain"
)

// Accumulation collects processed records in input order. It is owned by
// the caller and passed into every run; the engine keeps no hidden global
// results state.
type Accumulation struct {
	results []domain.ProcessResult
}

// Append adds one processed result to the accumulation
func (a *Accumulation) Append(result domain.ProcessResult) {
	a.results = append(a.results, result)
}

// Results returns the accumulated pass results in input order
func (a *Accumulation) Results() []domain.ProcessResult {
	return a.results
}

// Records returns the accumulated annotated records in input order
func (a *Accumulation) Records() []domain.ProductRecord {
	records := make([]domain.ProductRecord, 0, len(a.results))
	for _, r := range a.results {
		records = append(records, r.Record)
	}
	return records
}

// Len returns the number of accumulated results
func (a *Accumulation) Len() int {
	return len(a.results)
}

// BatchRunner applies store-brand tagging and dual-pass promo processing
// across a sequence of records. Processing is sequential and deterministic;
// output order equals input order.
type BatchRunner struct {
	tagger    *StoreBrandTagger
	processor *DualPassProcessor
}

// NewBatchRunner creates a batch runner over the given tagger and processor
func NewBatchRunner(tagger *StoreBrandTagger, processor *DualPassProcessor) *BatchRunner {
	return &BatchRunner{
		tagger:    tagger,
		processor: processor,
	}
}

// Run processes every record in order, appending each result into the
// caller-owned accumulation. Per-record promo failures never abort the
// batch; the only fatal condition is a missing accumulation to append to.
func (r *BatchRunner) Run(records []domain.ProductRecord, acc *Accumulation) error {
	if acc == nil {
		return domain.ErrInvalidRequest
	}

	for _, record := range records {
		acc.Append(r.processOne(record))
	}

	log.Printf("[BATCH] Processed %d records (total accumulated: %d)", len(records), acc.Len())
	return nil
}

// RunSingle processes one record, appending its result into the
// caller-owned accumulation.
func (r *BatchRunner) RunSingle(record domain.ProductRecord, acc *Accumulation) error {
	if acc == nil {
		return domain.ErrInvalidRequest
	}
	acc.Append(r.processOne(record))
	return nil
}

// processOne tags then dual-pass processes a single record
func (r *BatchRunner) processOne(record domain.ProductRecord) domain.ProcessResult {
	tagged := r.tagger.Tag(record)
	return r.processor.ProcessRecord(tagged)
}
