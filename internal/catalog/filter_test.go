package catalog

import (
	"reflect"
	"testing"

	"github.com/Kaushal-00/ecobazaar-terminal-go/internal/eco"
)

func sampleProducts() []eco.Product {
	return []eco.Product{
		{ID: 1, Name: "Solar Lamp", Description: "Garden lamp powered by the sun", Category: "Electronics", Seller: "SunCo", Price: 29.99, CarbonFootprint: 0.8, Rating: 4.5},
		{ID: 2, Name: "Bamboo Toothbrush", Description: "Compostable handle", Category: "Personal Care", Seller: "GreenGoods", Price: 4.50, CarbonFootprint: 0.2, Rating: 4.8},
		{ID: 3, Name: "Cast Iron Pan", Description: "Lasts generations", Category: "Kitchen", Seller: "HearthWare", Price: 45.00, CarbonFootprint: 2.5, Rating: 4.7},
		{ID: 4, Name: "Wool Sweater", Description: "Ethically sourced wool", Category: "Clothing", Seller: "WarmKnits", Price: 89.00, CarbonFootprint: 3.5, Rating: 4.2},
		{ID: 5, Name: "Herb Planter", Description: "Recycled plastic planter", Category: "Home & Garden", Seller: "GreenGoods", Price: 19.99, CarbonFootprint: 1.0, Rating: 4.0},
	}
}

func names(products []eco.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestApplyDefaultsPassEverything(t *testing.T) {
	products := sampleProducts()
	got := Apply(products, "", DefaultFilters())

	if len(got) != len(products) {
		t.Fatalf("expected all %d products, got %d", len(products), len(got))
	}
	if !reflect.DeepEqual(names(got), names(products)) {
		t.Errorf("expected original order preserved, got %v", names(got))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	products := sampleProducts()
	before := names(products)

	f := DefaultFilters()
	f.Sort = SortPriceLowHigh
	Apply(products, "", f)

	if !reflect.DeepEqual(names(products), before) {
		t.Errorf("input slice was reordered: %v", names(products))
	}
}

func TestApplyIdempotent(t *testing.T) {
	f := Filters{Category: CategoryAll, MaxPrice: 50, Carbon: TierLow, Sort: SortPriceLowHigh}

	once := Apply(sampleProducts(), "g", f)
	twice := Apply(once, "g", f)

	if !reflect.DeepEqual(names(once), names(twice)) {
		t.Errorf("second application changed the result: %v vs %v", names(once), names(twice))
	}
}

func TestApplySearchMatchesAllTextFields(t *testing.T) {
	products := sampleProducts()

	// "solar" appears only in one product name
	got := Apply(products, "  SOLAR ", DefaultFilters())
	if len(got) != 1 || got[0].Name != "Solar Lamp" {
		t.Fatalf("expected only 'Solar Lamp', got %v", names(got))
	}

	// seller match
	got = Apply(products, "greengoods", DefaultFilters())
	if len(got) != 2 {
		t.Errorf("expected 2 seller matches, got %v", names(got))
	}

	// category match
	got = Apply(products, "kitchen", DefaultFilters())
	if len(got) != 1 || got[0].Name != "Cast Iron Pan" {
		t.Errorf("expected category match, got %v", names(got))
	}

	// description match
	got = Apply(products, "compostable", DefaultFilters())
	if len(got) != 1 || got[0].Name != "Bamboo Toothbrush" {
		t.Errorf("expected description match, got %v", names(got))
	}
}

func TestApplyMaxPrice(t *testing.T) {
	products := []eco.Product{
		{ID: 1, Name: "A", Price: 10},
		{ID: 2, Name: "B", Price: 50},
		{ID: 3, Name: "C", Price: 150},
	}

	f := DefaultFilters()
	f.MaxPrice = 100
	got := Apply(products, "", f)

	if !reflect.DeepEqual(names(got), []string{"A", "B"}) {
		t.Errorf("expected [A B], got %v", names(got))
	}

	// boundary is inclusive
	f.MaxPrice = 50
	got = Apply(products, "", f)
	if !reflect.DeepEqual(names(got), []string{"A", "B"}) {
		t.Errorf("expected price == max to pass, got %v", names(got))
	}

	// slider at the limit disables the filter entirely
	f.MaxPrice = MaxPriceLimit
	got = Apply(products, "", f)
	if len(got) != 3 {
		t.Errorf("expected limit sentinel to pass everything, got %v", names(got))
	}
}

func TestCarbonTierPartition(t *testing.T) {
	// Every footprint falls into exactly one tier, including boundaries.
	cases := []struct {
		footprint float64
		want      CarbonTier
	}{
		{0, TierLow},
		{0.5, TierLow},
		{1.0, TierLow},
		{1.0000001, TierMedium},
		{2.5, TierMedium},
		{3.0, TierMedium},
		{3.0000001, TierHigh},
		{10, TierHigh},
	}

	for _, tc := range cases {
		if got := TierFor(tc.footprint); got != tc.want {
			t.Errorf("TierFor(%v) = %s, want %s", tc.footprint, got, tc.want)
		}
	}
}

func TestApplyCarbonTierFilter(t *testing.T) {
	products := sampleProducts()

	f := DefaultFilters()
	f.Carbon = TierLow
	got := Apply(products, "", f)
	for _, p := range got {
		if p.CarbonFootprint > 1 {
			t.Errorf("product %s (%.2f kg) leaked into the low tier", p.Name, p.CarbonFootprint)
		}
	}

	// the three tiers together cover the whole listing
	total := 0
	for _, tier := range []CarbonTier{TierLow, TierMedium, TierHigh} {
		f.Carbon = tier
		total += len(Apply(products, "", f))
	}
	if total != len(products) {
		t.Errorf("tiers partition %d of %d products", total, len(products))
	}
}

func TestSortStability(t *testing.T) {
	// Equal prices keep their input order regardless of the sort key.
	products := []eco.Product{
		{ID: 1, Name: "First", Price: 10, Rating: 4},
		{ID: 2, Name: "Second", Price: 10, Rating: 4},
		{ID: 3, Name: "Third", Price: 10, Rating: 4},
	}

	for _, key := range []SortKey{SortPriceLowHigh, SortPriceHighLow, SortRating} {
		f := DefaultFilters()
		f.Sort = key
		got := Apply(products, "", f)
		if !reflect.DeepEqual(names(got), []string{"First", "Second", "Third"}) {
			t.Errorf("sort %s broke tie order: %v", key, names(got))
		}
	}
}

func TestSortKeys(t *testing.T) {
	products := sampleProducts()

	f := DefaultFilters()
	f.Sort = SortPriceLowHigh
	got := Apply(products, "", f)
	for i := 1; i < len(got); i++ {
		if got[i-1].Price > got[i].Price {
			t.Errorf("price ascending violated at %d: %v", i, names(got))
		}
	}

	f.Sort = SortCarbonHighLow
	got = Apply(products, "", f)
	for i := 1; i < len(got); i++ {
		if got[i-1].CarbonFootprint < got[i].CarbonFootprint {
			t.Errorf("carbon descending violated at %d: %v", i, names(got))
		}
	}

	f.Sort = SortRating
	got = Apply(products, "", f)
	for i := 1; i < len(got); i++ {
		if got[i-1].Rating < got[i].Rating {
			t.Errorf("rating descending violated at %d: %v", i, names(got))
		}
	}
}

func TestApplyEmptyInput(t *testing.T) {
	got := Apply(nil, "anything", DefaultFilters())
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", names(got))
	}
}

func TestApplyCombinedFilters(t *testing.T) {
	products := sampleProducts()

	f := Filters{
		Category: "electronics",
		MaxPrice: 30,
		Carbon:   TierLow,
		Sort:     SortPriceLowHigh,
	}
	got := Apply(products, "", f)
	if len(got) != 1 || got[0].Name != "Solar Lamp" {
		t.Errorf("expected only 'Solar Lamp', got %v", names(got))
	}
}
