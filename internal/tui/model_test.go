package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Kaushal-00/ecobazaar-terminal-go/internal/cache"
	"github.com/Kaushal-00/ecobazaar-terminal-go/internal/cart"
	"github.com/Kaushal-00/ecobazaar-terminal-go/internal/catalog"
	"github.com/Kaushal-00/ecobazaar-terminal-go/internal/eco"
)

func testProducts() []eco.Product {
	return []eco.Product{
		{ID: 1, Name: "Solar Lamp", Description: "Garden lighting", Price: 29.99, Category: "Electronics", Seller: "SunCo", CarbonFootprint: 0.8, Rating: 4.5, StockQuantity: 12, IsActive: true},
		{ID: 2, Name: "Bamboo Toothbrush", Description: "Compostable handle", Price: 4.50, Category: "Personal Care", Seller: "GreenGoods", CarbonFootprint: 0.2, Rating: 4.8, StockQuantity: 80, IsActive: true},
		{ID: 3, Name: "Cast Iron Pan", Description: "Lasts a lifetime", Price: 45, Category: "Kitchen", Seller: "Hearth", CarbonFootprint: 2.5, Rating: 4.2, StockQuantity: 5, IsActive: true},
	}
}

// setupTestModel creates a model against a stub API server.
func setupTestModel(t *testing.T, products []eco.Product) (Model, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/products":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"products":    products,
				"currentPage": 1,
				"totalItems":  len(products),
				"totalPages":  1,
				"hasNext":     false,
				"hasPrevious": false,
			})
		default:
			json.NewEncoder(w).Encode(map[string]string{})
		}
	}))

	client := eco.NewClient(server.URL)
	session := cart.NewSession(client)
	listingCache := cache.New[ListingCacheKey, *eco.ProductPage](time.Minute)

	return NewModel(client, session, listingCache, 50), server
}

func loadedModel(t *testing.T, products []eco.Product) (Model, *httptest.Server) {
	t.Helper()
	m, server := setupTestModel(t, products)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)

	updated, _ = m.Update(productsLoadedMsg{page: &eco.ProductPage{
		Products:    products,
		CurrentPage: 1,
		TotalItems:  int64(len(products)),
		TotalPages:  1,
	}})
	return updated.(Model), server
}

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewModel(t *testing.T) {
	m, server := setupTestModel(t, testProducts())
	defer server.Close()

	if m.GetViewState() != ViewStorefront {
		t.Errorf("expected initial view to be Storefront, got %v", m.GetViewState())
	}
	if m.filters != catalog.DefaultFilters() {
		t.Errorf("expected default filters, got %+v", m.filters)
	}
}

func TestProductsLoadedPopulatesList(t *testing.T) {
	m, server := loadedModel(t, testProducts())
	defer server.Close()

	if len(m.VisibleProducts()) != 3 {
		t.Errorf("expected 3 visible products, got %d", len(m.VisibleProducts()))
	}
}

func TestSearchMode(t *testing.T) {
	m, server := loadedModel(t, testProducts())
	defer server.Close()

	if m.showSearch {
		t.Error("expected showSearch to be false initially")
	}

	updated, _ := m.Update(keyMsg('/'))
	m = updated.(Model)
	if !m.showSearch {
		t.Error("expected showSearch to be true after pressing '/'")
	}

	m.searchInput.SetValue("solar")
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if m.showSearch {
		t.Error("expected showSearch to be false after pressing Enter")
	}
	visible := m.VisibleProducts()
	if len(visible) != 1 || visible[0].Name != "Solar Lamp" {
		t.Errorf("expected search to leave only Solar Lamp, got %v", visible)
	}

	// Esc clears the query
	updated, _ = m.Update(keyMsg('/'))
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	if len(m.VisibleProducts()) != 3 {
		t.Errorf("expected Esc to clear the search, got %d visible", len(m.VisibleProducts()))
	}
}

func TestCategoryCycling(t *testing.T) {
	m, server := loadedModel(t, testProducts())
	defer server.Close()

	updated, _ := m.Update(keyMsg('f'))
	m = updated.(Model)

	if m.filters.Category != catalog.Categories[0] {
		t.Errorf("expected first category after 'f', got %q", m.filters.Category)
	}

	// Cycle through the rest and back to all
	for range catalog.Categories {
		updated, _ = m.Update(keyMsg('f'))
		m = updated.(Model)
	}
	if m.filters.Category != catalog.CategoryAll {
		t.Errorf("expected category to cycle back to all, got %q", m.filters.Category)
	}
}

func TestCarbonTierCycling(t *testing.T) {
	m, server := loadedModel(t, testProducts())
	defer server.Close()

	updated, _ := m.Update(keyMsg('t'))
	m = updated.(Model)
	if m.filters.Carbon != catalog.TierLow {
		t.Errorf("expected low tier after 't', got %q", m.filters.Carbon)
	}

	visible := m.VisibleProducts()
	for _, p := range visible {
		if p.CarbonFootprint > 1 {
			t.Errorf("expected only low-carbon products, got %s (%.1f kg)", p.Name, p.CarbonFootprint)
		}
	}
}

func TestMaxPriceKeys(t *testing.T) {
	m, server := loadedModel(t, testProducts())
	defer server.Close()

	updated, _ := m.Update(keyMsg('-'))
	m = updated.(Model)
	if m.filters.MaxPrice != catalog.MaxPriceLimit-priceStep {
		t.Errorf("expected max price %v, got %v", catalog.MaxPriceLimit-priceStep, m.filters.MaxPrice)
	}

	// '+' clamps at the slider limit
	updated, _ = m.Update(keyMsg('+'))
	m = updated.(Model)
	updated, _ = m.Update(keyMsg('+'))
	m = updated.(Model)
	if m.filters.MaxPrice != catalog.MaxPriceLimit {
		t.Errorf("expected max price clamped at %v, got %v", float64(catalog.MaxPriceLimit), m.filters.MaxPrice)
	}
}

func TestResetFilters(t *testing.T) {
	m, server := loadedModel(t, testProducts())
	defer server.Close()

	updated, _ := m.Update(keyMsg('f'))
	m = updated.(Model)
	updated, _ = m.Update(keyMsg('t'))
	m = updated.(Model)
	updated, _ = m.Update(keyMsg('x'))
	m = updated.(Model)

	if m.filters != catalog.DefaultFilters() {
		t.Errorf("expected filters reset to defaults, got %+v", m.filters)
	}
	if len(m.VisibleProducts()) != 3 {
		t.Errorf("expected full listing after reset, got %d", len(m.VisibleProducts()))
	}
}

func TestSortCycling(t *testing.T) {
	m, server := loadedModel(t, testProducts())
	defer server.Close()

	updated, _ := m.Update(keyMsg('o'))
	m = updated.(Model)
	if m.filters.Sort != catalog.SortPriceLowHigh {
		t.Errorf("expected price-low-high after 'o', got %q", m.filters.Sort)
	}

	visible := m.VisibleProducts()
	if visible[0].Name != "Bamboo Toothbrush" {
		t.Errorf("expected cheapest product first, got %q", visible[0].Name)
	}
}

func TestAnonymousCartKeyRoutesToLogin(t *testing.T) {
	m, server := loadedModel(t, testProducts())
	defer server.Close()

	updated, _ := m.Update(keyMsg('c'))
	m = updated.(Model)

	if m.GetViewState() != ViewLogin {
		t.Errorf("expected cart key to route guest to login, got %v", m.GetViewState())
	}
}

func TestAnonymousAddRoutesToLogin(t *testing.T) {
	m, server := loadedModel(t, testProducts())
	defer server.Close()

	updated, cmd := m.Update(keyMsg('a'))
	m = updated.(Model)

	if m.GetViewState() != ViewLogin {
		t.Errorf("expected add key to route guest to login, got %v", m.GetViewState())
	}
	if cmd != nil {
		t.Error("expected no command to be dispatched for a guest add")
	}
}

func TestEnterOpensProductDetails(t *testing.T) {
	m, server := loadedModel(t, testProducts())
	defer server.Close()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if m.GetViewState() != ViewProductDetails {
		t.Errorf("expected details view after Enter, got %v", m.GetViewState())
	}
	if m.selectedProduct == nil {
		t.Fatal("expected a selected product")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	if m.GetViewState() != ViewStorefront {
		t.Errorf("expected storefront after Esc, got %v", m.GetViewState())
	}
}

func TestSessionExpiredRoutesToLogin(t *testing.T) {
	m, server := loadedModel(t, testProducts())
	defer server.Close()

	m.cartSession.SetUser(7)
	updated, _ := m.Update(sessionExpiredMsg{})
	m = updated.(Model)

	if m.GetViewState() != ViewLogin {
		t.Errorf("expected login view after session expiry, got %v", m.GetViewState())
	}
	if m.cartSession.Authenticated() {
		t.Error("expected cart session to be detached after session expiry")
	}
	if m.err == nil {
		t.Error("expected an expiry notice error")
	}
}

func TestLoggedInRoutesByRole(t *testing.T) {
	tests := []struct {
		role eco.Role
		want ViewState
	}{
		{eco.RoleCustomer, ViewStorefront},
		{eco.RoleSeller, ViewSellerDashboard},
		{eco.RoleAdmin, ViewAdminOverview},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			m, server := loadedModel(t, testProducts())
			defer server.Close()

			updated, _ := m.Update(loggedInMsg{session: &eco.Session{UserID: 9, Role: tt.role, FullName: "Test User"}})
			m = updated.(Model)

			if m.GetViewState() != tt.want {
				t.Errorf("expected view %v for role %s, got %v", tt.want, tt.role, m.GetViewState())
			}
			if !m.cartSession.Authenticated() {
				t.Error("expected cart session to be attached after login")
			}
		})
	}
}

func TestErrMsgClearsLoadingFlags(t *testing.T) {
	m, server := loadedModel(t, testProducts())
	defer server.Close()

	m.loadingProducts = true
	m.syncingCart = true
	updated, _ := m.Update(errMsg{err: &eco.APIError{Status: 503, Message: "backend down"}})
	m = updated.(Model)

	if m.loadingProducts || m.syncingCart {
		t.Error("expected loading flags to clear on error")
	}
	if m.err == nil {
		t.Error("expected error to be recorded")
	}
}

func TestProductItemInterface(t *testing.T) {
	p := testProducts()[0]
	item := productItem{product: p, styles: DefaultStyles()}

	if item.Title() != "Solar Lamp" {
		t.Errorf("expected title 'Solar Lamp', got %q", item.Title())
	}
	if item.Description() == "" {
		t.Error("expected non-empty description")
	}
	if item.FilterValue() != "Solar Lamp" {
		t.Errorf("expected filter value 'Solar Lamp', got %q", item.FilterValue())
	}
}

func TestViewRendering(t *testing.T) {
	m, server := loadedModel(t, testProducts())
	defer server.Close()

	if m.View() == "" {
		t.Error("expected non-empty storefront view")
	}

	p := testProducts()[0]
	m.selectedProduct = &p
	m.viewState = ViewProductDetails
	if m.View() == "" {
		t.Error("expected non-empty details view")
	}

	m.viewState = ViewAdminOverview
	if m.View() == "" {
		t.Error("expected non-empty admin view")
	}
}
