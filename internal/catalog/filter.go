// Package catalog implements client-side filtering and sorting of the
// product listing. Everything here is pure: inputs are never mutated and
// no I/O happens.
package catalog

import (
	"sort"
	"strings"

	"github.com/Kaushal-00/ecobazaar-terminal-go/internal/eco"
)

// MaxPriceLimit is the upper bound of the price slider. A max price at the
// limit means "no price filter".
const MaxPriceLimit = 200

// CategoryAll disables category filtering.
const CategoryAll = "all"

// Categories is the storefront category list.
var Categories = []string{
	"Home & Garden",
	"Electronics",
	"Personal Care",
	"Clothing",
	"Kitchen",
}

// SortKey selects the ordering of the filtered listing.
type SortKey string

const (
	SortDefault       SortKey = "default"
	SortPriceLowHigh  SortKey = "price-low-high"
	SortPriceHighLow  SortKey = "price-high-low"
	SortCarbonLowHigh SortKey = "carbon-low-high"
	SortCarbonHighLow SortKey = "carbon-high-low"
	SortRating        SortKey = "rating"
)

// SortKeys lists the selectable orderings in display order.
var SortKeys = []SortKey{
	SortDefault,
	SortPriceLowHigh,
	SortPriceHighLow,
	SortCarbonLowHigh,
	SortCarbonHighLow,
	SortRating,
}

// Label returns a human-readable name for the sort key.
func (k SortKey) Label() string {
	switch k {
	case SortPriceLowHigh:
		return "Price: Low to High"
	case SortPriceHighLow:
		return "Price: High to Low"
	case SortCarbonLowHigh:
		return "Carbon: Low to High"
	case SortCarbonHighLow:
		return "Carbon: High to Low"
	case SortRating:
		return "Top Rated"
	default:
		return "Featured"
	}
}

// CarbonTier buckets products by their carbon footprint.
type CarbonTier string

const (
	TierAny    CarbonTier = ""
	TierLow    CarbonTier = "low"    // <= 1 kg
	TierMedium CarbonTier = "medium" // > 1 kg and <= 3 kg
	TierHigh   CarbonTier = "high"   // > 3 kg
)

// TierFor returns the tier a footprint value falls into.
func TierFor(footprint float64) CarbonTier {
	switch {
	case footprint <= 1:
		return TierLow
	case footprint <= 3:
		return TierMedium
	default:
		return TierHigh
	}
}

// Filters is a fully-specified filter configuration. Use DefaultFilters
// for the neutral configuration that passes every product through.
type Filters struct {
	Category string
	MaxPrice float64
	Carbon   CarbonTier
	Sort     SortKey
}

// DefaultFilters returns the neutral configuration: all categories, price
// slider at its limit, any carbon tier, original ordering.
func DefaultFilters() Filters {
	return Filters{
		Category: CategoryAll,
		MaxPrice: MaxPriceLimit,
		Carbon:   TierAny,
		Sort:     SortDefault,
	}
}

// Apply filters and sorts products by the query string and filter
// configuration. The result is always a fresh slice; the input keeps its
// order and contents.
func Apply(products []eco.Product, query string, f Filters) []eco.Product {
	result := make([]eco.Product, 0, len(products))

	q := strings.ToLower(strings.TrimSpace(query))
	category := strings.ToLower(strings.TrimSpace(f.Category))

	for _, p := range products {
		if q != "" && !matchesQuery(&p, q) {
			continue
		}
		if category != "" && category != CategoryAll &&
			!strings.Contains(strings.ToLower(p.Category), category) {
			continue
		}
		if f.MaxPrice < MaxPriceLimit && p.Price > f.MaxPrice {
			continue
		}
		if f.Carbon != TierAny && TierFor(p.CarbonFootprint) != f.Carbon {
			continue
		}
		result = append(result, p)
	}

	sortProducts(result, f.Sort)
	return result
}

// matchesQuery reports whether any searchable text field contains the
// lowercased query.
func matchesQuery(p *eco.Product, q string) bool {
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Category), q) ||
		strings.Contains(strings.ToLower(p.Seller), q)
}

// sortProducts orders the slice in place. Ties keep their relative order,
// and SortDefault leaves the listing untouched.
func sortProducts(products []eco.Product, key SortKey) {
	switch key {
	case SortPriceLowHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceHighLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortCarbonLowHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CarbonFootprint < products[j].CarbonFootprint
		})
	case SortCarbonHighLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CarbonFootprint > products[j].CarbonFootprint
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	}
}
