package usecase

import (
	"regexp"

	"github.com/pricelens/backend/internal/domain"
)

// Match holds the named capture groups extracted for one pattern.
// Optional groups that did not participate in the match are absent.
type Match struct {
	groups map[string]string
}

// Group returns the captured value for a named group and whether it
// participated in the match.
func (m *Match) Group(name string) (string, bool) {
	v, ok := m.groups[name]
	return v, ok
}

// newMatch runs the pattern against the text and, on success, collects
// its named groups into a Match.
func newMatch(re *regexp.Regexp, text string) (*Match, bool) {
	sub := re.FindStringSubmatch(text)
	if sub == nil {
		return nil, false
	}

	groups := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if name == "" || i >= len(sub) {
			continue
		}
		// An optional group that matched nothing is treated as absent
		if sub[i] != "" {
			groups[name] = sub[i]
		}
	}
	return &Match{groups: groups}, true
}

// Strategy pairs a recognized promotional phrasing with its deal and
// coupon price calculations. Implementations must only emit the output
// fields they own and must not touch any other record field.
type Strategy interface {
	// Name identifies the strategy in logs and pass outcomes
	Name() string

	// Patterns returns the phrasing patterns this strategy recognizes,
	// in precedence order
	Patterns() []*regexp.Regexp

	// CalculateDeal computes the volume-deal fields for a matched
	// volume_deals_description
	CalculateDeal(record domain.ProductRecord, m *Match) (domain.CalculationOutcome, error)

	// CalculateCoupon computes the coupon fields for a matched
	// digital_coupon_short_description, stacking on any prior deal
	CalculateCoupon(record domain.ProductRecord, m *Match) (domain.CalculationOutcome, error)
}

// Catalog is the fixed, ordered list of strategies. Registration order
// encodes precedence: the first pattern that matches a description wins
// and no later strategy is consulted.
type Catalog struct {
	strategies []Strategy
}

// NewCatalog builds the promotion catalog in its canonical order.
// The order is load-bearing: "Buy 2, Get 1 Free" must be claimed by the
// buy/get strategy before the dollar-discount pattern gets a chance to
// misread a trailing "$X off" clause.
func NewCatalog(resolver *PriceResolver) *Catalog {
	return &Catalog{
		strategies: []Strategy{
			NewBuyGetFreeStrategy(resolver),
			NewDollarDiscountStrategy(resolver),
			NewPricePerLbStrategy(resolver),
			NewSavingsStrategy(resolver),
		},
	}
}

// Strategies returns the catalog entries in precedence order
func (c *Catalog) Strategies() []Strategy {
	return c.strategies
}

// FindMatch searches the description against every strategy's patterns in
// catalog order and returns the first structural match.
func (c *Catalog) FindMatch(description string) (Strategy, *Match, bool) {
	if description == "" {
		return nil, nil, false
	}
	for _, strategy := range c.strategies {
		for _, re := range strategy.Patterns() {
			if m, ok := newMatch(re, description); ok {
				return strategy, m, true
			}
		}
	}
	return nil, nil, false
}
