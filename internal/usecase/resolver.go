package usecase

import (
	"math"
	"strconv"
	"strings"

	"github.com/pricelens/backend/internal/domain"
)

// PriceResolver coerces the heterogeneous price and weight representations
// found in scraped records into numbers. Scraped values arrive as floats,
// bare numeric strings, or currency strings like "$1,299.99"; malformed
// values degrade to defaults rather than failing the record.
type PriceResolver struct{}

// NewPriceResolver creates a new price resolver
func NewPriceResolver() *PriceResolver {
	return &PriceResolver{}
}

// ResolvePrice returns the record's effective shelf price: sale_price when
// present, else regular_price. Unparsable or missing values resolve to 0.
func (r *PriceResolver) ResolvePrice(record domain.ProductRecord) float64 {
	if v, ok := coerceNumber(record[domain.FieldSalePrice]); ok {
		return v
	}
	if v, ok := coerceNumber(record[domain.FieldRegularPrice]); ok {
		return v
	}
	return 0
}

// ResolveCouponBasePrice returns the base price a coupon applies to.
// A prior deal pass may already have set unit_price; coupons stack on top
// of that, so it wins over the raw sale/regular prices.
func (r *PriceResolver) ResolveCouponBasePrice(record domain.ProductRecord) float64 {
	if v, ok := coerceNumber(record[domain.FieldUnitPrice]); ok && v != 0 {
		return v
	}
	if v, ok := coerceNumber(record[domain.FieldSalePrice]); ok && v != 0 {
		return v
	}
	if v, ok := coerceNumber(record[domain.FieldRegularPrice]); ok {
		return v
	}
	return 0
}

// ResolveWeight parses the leading numeric token of the weight field
// (e.g. "2.5 lb" -> 2.5). Missing or unparsable weights default to 1 so
// per-weight promotions still produce a usable price.
func (r *PriceResolver) ResolveWeight(record domain.ProductRecord) float64 {
	switch v := record[domain.FieldWeight].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		fields := strings.Fields(v)
		if len(fields) == 0 {
			return 1
		}
		if w, err := strconv.ParseFloat(fields[0], 64); err == nil {
			return w
		}
	}
	return 1
}

// NumericField returns the named field coerced to a number. The boolean
// reports whether a usable value was present; callers that require the
// field decide whether absence is a default or a calculation failure.
func (r *PriceResolver) NumericField(record domain.ProductRecord, field string) (float64, bool) {
	return coerceNumber(record[field])
}

// coerceNumber converts a raw record value to float64. Currency strings
// have their leading "$" and thousands separators stripped first.
func coerceNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		s = strings.TrimPrefix(s, "$")
		s = strings.ReplaceAll(s, ",", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// round2 rounds a price to 2 decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
