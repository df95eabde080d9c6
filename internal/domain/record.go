package domain

// Field names consumed and produced by the promo engine.
// Input records are flat maps scraped from retailer sites, so values arrive
// as a mix of numbers, currency strings, and free text.
const (
	FieldRegularPrice     = "regular_price"
	FieldSalePrice        = "sale_price"
	FieldPrice            = "price"
	FieldWeight           = "weight"
	FieldProductTitle     = "product_title"
	FieldVolumeDealsDesc  = "volume_deals_description"
	FieldCouponShortDesc  = "digital_coupon_short_description"
	FieldCouponDesc       = "digital_coupon_description"
	FieldVolumeDealsPrice = "volume_deals_price"
	FieldUnitPrice        = "unit_price"
	FieldCouponPrice      = "digital_coupon_price"
	FieldBrandStatus      = "brandStatus"
)

// NotApplicable is the sentinel for "this output field does not apply to
// this record". It is distinct from a numeric zero.
const NotApplicable = ""

// ProductRecord is one scraped retail product as a flat field map.
// The engine never mutates a record in place; processing always works on
// a clone and returns the derived copy.
type ProductRecord map[string]any

// Clone returns a shallow copy of the record. Values are JSON-shaped
// scalars and strings, so a shallow copy is a full copy in practice.
func (r ProductRecord) Clone() ProductRecord {
	out := make(ProductRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// String returns the named field as a string, or "" when the field is
// missing or not textual.
func (r ProductRecord) String(field string) string {
	if v, ok := r[field].(string); ok {
		return v
	}
	return ""
}

// Has reports whether the field is present with a non-sentinel value.
func (r ProductRecord) Has(field string) bool {
	v, ok := r[field]
	if !ok {
		return false
	}
	s, isStr := v.(string)
	return !isStr || s != NotApplicable
}

// Merge copies every field of the outcome onto the record, leaving all
// other fields untouched.
func (r ProductRecord) Merge(outcome CalculationOutcome) {
	for k, v := range outcome {
		r[k] = v
	}
}

// CalculationOutcome is the subset of output fields a single strategy
// produces for one pass. Strategies only ever emit fields they own.
type CalculationOutcome map[string]any
