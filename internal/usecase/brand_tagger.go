package usecase

import (
	"strings"

	"github.com/pricelens/backend/internal/domain"
)

// retailerBrands are the house brands of each retailer we scrape. A product
// whose title mentions any of them is a store brand.
var retailerBrands = map[string][]string{
	"marianos": {
		"Private Selection", "Kroger", "Simple Truth", "Simple Truth Organic",
	},
	"target": {
		"Deal Worthy", "Good & Gather", "Market Pantry", "Favorite Day",
		"Kindfull", "Smartly", "Up & Up",
	},
	"jewel": {
		"Lucerne", "Signature Select", "O Organics", "Open Nature",
		"Waterfront Bistro", "Primo Taglio", "Soleil", "Value Corner",
		"Ready Meals",
	},
	"walmart": {
		"Clear American", "Great Value", "Home Bake Value", "Marketside",
		"Co Squared", "Best Occasions", "Mash-Up Coffee", "World Table",
	},
}

// StoreBrandTagger flags records whose product title names a retailer
// house brand. It is a pure annotation step: brandStatus is the only field
// it touches.
type StoreBrandTagger struct{}

// NewStoreBrandTagger creates a new store-brand tagger
func NewStoreBrandTagger() *StoreBrandTagger {
	return &StoreBrandTagger{}
}

// Tag returns a copy of the record with brandStatus set to whether the
// product title contains any known house brand (case-insensitive).
func (t *StoreBrandTagger) Tag(record domain.ProductRecord) domain.ProductRecord {
	title := strings.ToLower(record.String(domain.FieldProductTitle))

	tagged := record.Clone()
	tagged[domain.FieldBrandStatus] = t.isStoreBrand(title)
	return tagged
}

// isStoreBrand checks the lowercased title against every retailer list
func (t *StoreBrandTagger) isStoreBrand(titleLower string) bool {
	for _, brands := range retailerBrands {
		for _, brand := range brands {
			if strings.Contains(titleLower, strings.ToLower(brand)) {
				return true
			}
		}
	}
	return false
}
