package usecase

import (
	"errors"
	"regexp"
	"testing"

	"github.com/pricelens/backend/internal/domain"
)

// matchFor runs a pattern against text and fails the test on no match
func matchFor(t *testing.T, re *regexp.Regexp, text string) *Match {
	t.Helper()
	m, ok := newMatch(re, text)
	if !ok {
		t.Fatalf("pattern %q did not match %q", re.String(), text)
	}
	return m
}

func TestBuyGetFreeStrategy_CalculateDeal(t *testing.T) {
	s := NewBuyGetFreeStrategy(NewPriceResolver())

	testCases := []struct {
		name        string
		description string
		record      domain.ProductRecord
		wantDeals   float64
		wantUnit    float64
	}{
		{
			name:        "buy 4 get 1 free",
			description: "Buy 4, Get 1 Free",
			record:      domain.ProductRecord{"regular_price": 10.00},
			wantDeals:   40.00,
			wantUnit:    8.00,
		},
		{
			name:        "buy 3 get 1 at 20 percent off",
			description: "Buy 3, get 1 20% off",
			record:      domain.ProductRecord{"regular_price": 9.00},
			wantDeals:   34.20,
			wantUnit:    8.55,
		},
		{
			name:        "buy 2 get 2 free",
			description: "Buy 2 Get 2 Free",
			record:      domain.ProductRecord{"regular_price": "$5.00"},
			wantDeals:   10.00,
			wantUnit:    2.50,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var m *Match
			var ok bool
			for _, re := range s.Patterns() {
				if m, ok = newMatch(re, tc.description); ok {
					break
				}
			}
			if !ok {
				t.Fatalf("no pattern matched %q", tc.description)
			}

			outcome, err := s.CalculateDeal(tc.record, m)
			if err != nil {
				t.Fatalf("CalculateDeal() error = %v", err)
			}

			if got := outcome[domain.FieldVolumeDealsPrice]; got != tc.wantDeals {
				t.Errorf("volume_deals_price = %v, want %v", got, tc.wantDeals)
			}
			if got := outcome[domain.FieldUnitPrice]; got != tc.wantUnit {
				t.Errorf("unit_price = %v, want %v", got, tc.wantUnit)
			}
			if got := outcome[domain.FieldCouponPrice]; got != domain.NotApplicable {
				t.Errorf("digital_coupon_price = %v, want empty sentinel", got)
			}
		})
	}
}

func TestBuyGetFreeStrategy_CalculateDeal_MissingRegularPrice(t *testing.T) {
	s := NewBuyGetFreeStrategy(NewPriceResolver())
	m := matchFor(t, buyGetFreePattern, "Buy 4, Get 1 Free")

	_, err := s.CalculateDeal(domain.ProductRecord{}, m)
	if !errors.Is(err, domain.ErrMissingField) {
		t.Errorf("CalculateDeal() error = %v, want ErrMissingField", err)
	}
}

func TestBuyGetFreeStrategy_CalculateCoupon(t *testing.T) {
	s := NewBuyGetFreeStrategy(NewPriceResolver())

	t.Run("stacks on unit price from prior deal pass", func(t *testing.T) {
		m := matchFor(t, buyGetFreePattern, "Buy 2, Get 1 Free")
		record := domain.ProductRecord{"unit_price": 8.00, "sale_price": 9.00, "regular_price": 10.00}

		outcome, err := s.CalculateCoupon(record, m)
		if err != nil {
			t.Fatalf("CalculateCoupon() error = %v", err)
		}

		// 8.00 * 2 over 3 items; coupon price stays unrounded
		if got := outcome[domain.FieldUnitPrice]; got != 5.33 {
			t.Errorf("unit_price = %v, want 5.33", got)
		}
		if got := outcome[domain.FieldCouponPrice]; got != 16.00 {
			t.Errorf("digital_coupon_price = %v, want 16.00", got)
		}
	})

	t.Run("falls back to sale price without prior deal", func(t *testing.T) {
		m := matchFor(t, buyGetFreePattern, "Buy 2, Get 1 Free")
		record := domain.ProductRecord{"sale_price": 6.00}

		outcome, err := s.CalculateCoupon(record, m)
		if err != nil {
			t.Fatalf("CalculateCoupon() error = %v", err)
		}

		if got := outcome[domain.FieldUnitPrice]; got != 4.00 {
			t.Errorf("unit_price = %v, want 4.00", got)
		}
		if got := outcome[domain.FieldCouponPrice]; got != 12.00 {
			t.Errorf("digital_coupon_price = %v, want 12.00", got)
		}
	})

	t.Run("discount variant resolves coupon base price", func(t *testing.T) {
		m := matchFor(t, buyGetDiscountPattern, "Buy 3, get 1 20% off")
		record := domain.ProductRecord{"regular_price": 9.00}

		outcome, err := s.CalculateCoupon(record, m)
		if err != nil {
			t.Fatalf("CalculateCoupon() error = %v", err)
		}

		// 9*3 + 9*0.8 = 34.2 over 4 items
		if got := outcome[domain.FieldUnitPrice]; got != 8.55 {
			t.Errorf("unit_price = %v, want 8.55", got)
		}
	})
}

func TestDollarDiscountStrategy(t *testing.T) {
	s := NewDollarDiscountStrategy(NewPriceResolver())

	t.Run("deal subtracts from raw price field", func(t *testing.T) {
		m := matchFor(t, dollarOffPattern, "$2 off")
		record := domain.ProductRecord{"price": 5.00}

		outcome, err := s.CalculateDeal(record, m)
		if err != nil {
			t.Fatalf("CalculateDeal() error = %v", err)
		}

		if got := outcome[domain.FieldVolumeDealsPrice]; got != 3.00 {
			t.Errorf("volume_deals_price = %v, want 3.00", got)
		}
		if got := outcome[domain.FieldUnitPrice]; got != 3.00 {
			t.Errorf("unit_price = %v, want 3.00", got)
		}
		if got := outcome[domain.FieldCouponPrice]; got != domain.NotApplicable {
			t.Errorf("digital_coupon_price = %v, want empty sentinel", got)
		}
	})

	t.Run("deal defaults missing price to zero", func(t *testing.T) {
		m := matchFor(t, dollarOffPattern, "$1.50 off")
		outcome, err := s.CalculateDeal(domain.ProductRecord{}, m)
		if err != nil {
			t.Fatalf("CalculateDeal() error = %v", err)
		}
		if got := outcome[domain.FieldVolumeDealsPrice]; got != -1.50 {
			t.Errorf("volume_deals_price = %v, want -1.50", got)
		}
	})

	t.Run("coupon emits the discount as coupon price", func(t *testing.T) {
		m := matchFor(t, dollarOffPattern, "$2 off")
		record := domain.ProductRecord{"price": 5.00}

		outcome, err := s.CalculateCoupon(record, m)
		if err != nil {
			t.Fatalf("CalculateCoupon() error = %v", err)
		}

		if got := outcome[domain.FieldUnitPrice]; got != 3.00 {
			t.Errorf("unit_price = %v, want 3.00", got)
		}
		if got := outcome[domain.FieldCouponPrice]; got != 2.00 {
			t.Errorf("digital_coupon_price = %v, want 2.00", got)
		}
	})

	t.Run("unusable price field is a calculation failure", func(t *testing.T) {
		m := matchFor(t, dollarOffPattern, "$2 off")
		record := domain.ProductRecord{"price": "see store"}

		if _, err := s.CalculateDeal(record, m); !errors.Is(err, domain.ErrMissingField) {
			t.Errorf("CalculateDeal() error = %v, want ErrMissingField", err)
		}
	})
}

func TestPricePerLbStrategy(t *testing.T) {
	s := NewPricePerLbStrategy(NewPriceResolver())

	t.Run("deal multiplies rate by weight", func(t *testing.T) {
		m := matchFor(t, pricePerLbPattern, "$3.50/lb")
		record := domain.ProductRecord{"weight": 2.0}

		outcome, err := s.CalculateDeal(record, m)
		if err != nil {
			t.Fatalf("CalculateDeal() error = %v", err)
		}

		if got := outcome[domain.FieldVolumeDealsPrice]; got != 7.00 {
			t.Errorf("volume_deals_price = %v, want 7.00", got)
		}
		if got := outcome[domain.FieldUnitPrice]; got != 3.50 {
			t.Errorf("unit_price = %v, want 3.50", got)
		}
	})

	t.Run("deal defaults weight to one", func(t *testing.T) {
		m := matchFor(t, pricePerLbPattern, "$3.50/lb")
		outcome, err := s.CalculateDeal(domain.ProductRecord{}, m)
		if err != nil {
			t.Fatalf("CalculateDeal() error = %v", err)
		}
		if got := outcome[domain.FieldVolumeDealsPrice]; got != 3.50 {
			t.Errorf("volume_deals_price = %v, want 3.50", got)
		}
	})

	t.Run("coupon reduces prior unit price by rate times weight", func(t *testing.T) {
		m := matchFor(t, pricePerLbPattern, "$1.00/lb")
		record := domain.ProductRecord{"unit_price": 5.00, "weight": "2 lb"}

		outcome, err := s.CalculateCoupon(record, m)
		if err != nil {
			t.Fatalf("CalculateCoupon() error = %v", err)
		}

		if got := outcome[domain.FieldUnitPrice]; got != 3.00 {
			t.Errorf("unit_price = %v, want 3.00", got)
		}
		if got := outcome[domain.FieldCouponPrice]; got != 1.00 {
			t.Errorf("digital_coupon_price = %v, want 1.00", got)
		}
	})

	t.Run("coupon without prior unit price fails", func(t *testing.T) {
		m := matchFor(t, pricePerLbPattern, "$1.00/lb")

		if _, err := s.CalculateCoupon(domain.ProductRecord{}, m); !errors.Is(err, domain.ErrMissingField) {
			t.Errorf("CalculateCoupon() error = %v, want ErrMissingField", err)
		}
	})
}

func TestSavingsStrategy(t *testing.T) {
	s := NewSavingsStrategy(NewPriceResolver())

	t.Run("deal subtracts savings from raw price field", func(t *testing.T) {
		m := matchFor(t, savingsPattern, "Save $5")
		record := domain.ProductRecord{"price": 20.00}

		outcome, err := s.CalculateDeal(record, m)
		if err != nil {
			t.Fatalf("CalculateDeal() error = %v", err)
		}

		if got := outcome[domain.FieldVolumeDealsPrice]; got != 15.00 {
			t.Errorf("volume_deals_price = %v, want 15.00", got)
		}
		if got := outcome[domain.FieldUnitPrice]; got != 15.00 {
			t.Errorf("unit_price = %v, want 15.00", got)
		}
		if got := outcome[domain.FieldCouponPrice]; got != domain.NotApplicable {
			t.Errorf("digital_coupon_price = %v, want empty sentinel", got)
		}
	})

	t.Run("coupon subtracts savings from prior unit price", func(t *testing.T) {
		m := matchFor(t, savingsPattern, "Save $1.50")
		record := domain.ProductRecord{"unit_price": 8.00}

		outcome, err := s.CalculateCoupon(record, m)
		if err != nil {
			t.Fatalf("CalculateCoupon() error = %v", err)
		}

		if got := outcome[domain.FieldUnitPrice]; got != 6.50 {
			t.Errorf("unit_price = %v, want 6.50", got)
		}
		if got := outcome[domain.FieldCouponPrice]; got != 1.50 {
			t.Errorf("digital_coupon_price = %v, want 1.50", got)
		}
	})

	t.Run("coupon defaults missing unit price to zero", func(t *testing.T) {
		m := matchFor(t, savingsPattern, "Save $5")

		outcome, err := s.CalculateCoupon(domain.ProductRecord{}, m)
		if err != nil {
			t.Fatalf("CalculateCoupon() error = %v", err)
		}
		if got := outcome[domain.FieldUnitPrice]; got != -5.00 {
			t.Errorf("unit_price = %v, want -5.00", got)
		}
	})
}
