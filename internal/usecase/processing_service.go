package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pricelens/backend/internal/domain"
)

// annotationFields are the fields the pipeline derives. Only these are
// memoized; pass-through fields (store, URL, crawl date) stay per-record.
var annotationFields = []string{
	domain.FieldVolumeDealsPrice,
	domain.FieldUnitPrice,
	domain.FieldCouponPrice,
	domain.FieldBrandStatus,
}

// ProcessingServiceConfig holds configuration for the processing service
type ProcessingServiceConfig struct {
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// ProcessingService wraps the batch runner with annotation memoization.
// Scraped batches repeat the same title/price/promo combination across
// stores and crawl dates; the engine is deterministic, so identical
// pricing inputs always derive the identical annotation.
type ProcessingService struct {
	runner   *BatchRunner
	cache    domain.CacheRepository
	cacheTTL time.Duration
}

// NewProcessingService creates a processing service with dependencies
func NewProcessingService(
	cache domain.CacheRepository,
	runner *BatchRunner,
	config ProcessingServiceConfig,
) *ProcessingService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &ProcessingService{
		runner:   runner,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// ProcessBatch processes the records in order and returns the annotated
// copies. Records whose pricing signature was seen before reuse the cached
// annotation; everything else goes through the full tag-and-dual-pass
// pipeline.
func (s *ProcessingService) ProcessBatch(ctx context.Context, records []domain.ProductRecord) ([]domain.ProductRecord, error) {
	if records == nil {
		return nil, domain.ErrMalformedBatch
	}

	out := make([]domain.ProductRecord, 0, len(records))
	for _, record := range records {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		key := s.cacheKey(record)
		if annotation, err := s.annotationFromCache(ctx, key); err == nil {
			out = append(out, applyAnnotation(record, annotation))
			continue
		}

		acc := &Accumulation{}
		if err := s.runner.RunSingle(record, acc); err != nil {
			return nil, err
		}
		processed := acc.Results()[0].Record
		out = append(out, processed)

		// Cache failures are not fatal; the next identical signature just
		// recomputes.
		_ = s.cache.Set(ctx, key, extractAnnotation(processed), s.cacheTTL)
	}

	return out, nil
}

// ProcessSingle processes one record through the same cached pipeline
func (s *ProcessingService) ProcessSingle(ctx context.Context, record domain.ProductRecord) (domain.ProductRecord, error) {
	if record == nil {
		return nil, domain.ErrMalformedBatch
	}
	out, err := s.ProcessBatch(ctx, []domain.ProductRecord{record})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// cacheKey builds a key from every field that feeds the calculation.
// Format: "promo:{title}|{regular}|{sale}|{price}|{weight}|{deal}|{coupon}"
func (s *ProcessingService) cacheKey(record domain.ProductRecord) string {
	parts := []string{
		record.String(domain.FieldProductTitle),
		fmt.Sprint(record[domain.FieldRegularPrice]),
		fmt.Sprint(record[domain.FieldSalePrice]),
		fmt.Sprint(record[domain.FieldPrice]),
		fmt.Sprint(record[domain.FieldWeight]),
		record.String(domain.FieldVolumeDealsDesc),
		record.String(domain.FieldCouponShortDesc),
	}
	return "promo:" + strings.ToLower(strings.Join(parts, "|"))
}

// annotationFromCache retrieves a derived annotation from cache. The
// memory cache stores values through a JSON round trip, so annotations
// come back as generic maps.
func (s *ProcessingService) annotationFromCache(ctx context.Context, key string) (map[string]any, error) {
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if m, ok := value.(map[string]interface{}); ok {
		return m, nil
	}
	return nil, domain.ErrCacheMiss
}

// extractAnnotation pulls the derived fields out of a processed record
func extractAnnotation(processed domain.ProductRecord) map[string]any {
	annotation := make(map[string]any, len(annotationFields))
	for _, field := range annotationFields {
		if v, ok := processed[field]; ok {
			annotation[field] = v
		}
	}
	return annotation
}

// applyAnnotation replays a cached annotation onto a fresh copy of the
// record, including the coupon description rename the processor performs.
func applyAnnotation(record domain.ProductRecord, annotation map[string]any) domain.ProductRecord {
	updated := record.Clone()
	for field, v := range annotation {
		updated[field] = v
	}
	if v, ok := updated[domain.FieldCouponShortDesc]; ok {
		updated[domain.FieldCouponDesc] = v
		delete(updated, domain.FieldCouponShortDesc)
	}
	return updated
}
