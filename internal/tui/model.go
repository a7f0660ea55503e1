package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Kaushal-00/ecobazaar-terminal-go/internal/cache"
	"github.com/Kaushal-00/ecobazaar-terminal-go/internal/cart"
	"github.com/Kaushal-00/ecobazaar-terminal-go/internal/catalog"
	"github.com/Kaushal-00/ecobazaar-terminal-go/internal/eco"
)

// ViewState represents the current view in the application.
type ViewState int

const (
	ViewStorefront ViewState = iota
	ViewProductDetails
	ViewCart
	ViewLogin
	ViewRegister
	ViewProfile
	ViewPasswordChange
	ViewSellerDashboard
	ViewSellerForm
	ViewAdminOverview
)

// priceStep is how much one keypress moves the max-price slider.
const priceStep = 10

// ListingCacheKey is the cache key for product listing pages.
type ListingCacheKey struct {
	Page int
	Size int
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	// Dependencies
	ecoClient    *eco.Client
	cartSession  *cart.Session
	listingCache *cache.Cache[ListingCacheKey, *eco.ProductPage]

	// View state
	viewState ViewState
	width     int
	height    int
	styles    Styles

	// Auth
	loginForm      *huh.Form
	loginData      *loginData
	registerForm   *huh.Form
	registerData   *registerData
	authenticating bool

	// Storefront
	productList     list.Model
	page            *eco.ProductPage
	visible         []eco.Product
	searchInput     textinput.Model
	showSearch      bool
	query           string
	filters         catalog.Filters
	currentPage     int
	pageSize        int
	loadingProducts bool
	listSpinner     spinner.Model

	// Product details
	selectedProduct *eco.Product

	// Cart
	cartSelectedIdx int
	syncingCart     bool
	loadingCart     bool

	// Profile
	profile        *eco.Profile
	profileForm    *huh.Form
	profileData    *profileData
	passwordForm   *huh.Form
	passwordData   *passwordData
	loadingProfile bool
	savingProfile  bool

	// Seller dashboard
	sellerProducts    []eco.Product
	sellerSelectedIdx int
	productForm       *huh.Form
	productFormData   *productFormData
	editingProduct    *eco.Product
	loadingSeller     bool
	savingProduct     bool

	// Feedback
	err    error
	notice string
}

// productItem implements list.Item for storefront products.
type productItem struct {
	product eco.Product
	styles  Styles
}

func (i productItem) Title() string {
	return i.product.Name
}

func (i productItem) Description() string {
	p := i.product
	stock := i.styles.ProductInStock.Render("in stock")
	if !p.IsInStock() {
		stock = i.styles.ProductOutOfStock.Render("out of stock")
	}
	return fmt.Sprintf("$%.2f • %s • ★%.1f (%d) • %s",
		p.Price, i.styles.CarbonBadge(p.CarbonFootprint), p.Rating, p.ReviewsCount, stock)
}

func (i productItem) FilterValue() string {
	return i.product.Name
}

// Messages
type (
	loggedInMsg struct {
		session *eco.Session
	}
	registeredMsg     struct{}
	productsLoadedMsg struct {
		page *eco.ProductPage
	}
	cartLoadedMsg struct{}
	cartSyncedMsg struct {
		notice string
	}
	profileLoadedMsg struct {
		profile *eco.Profile
	}
	profileSavedMsg struct {
		profile *eco.Profile
	}
	passwordChangedMsg      struct{}
	sellerProductsLoadedMsg struct {
		products []eco.Product
	}
	productSavedMsg   struct{}
	productDeletedMsg struct{}
	loginRequiredMsg  struct{}
	sessionExpiredMsg struct{}
	noopMsg           struct{}
	errMsg            struct {
		err error
	}
)

// NewModel creates a new TUI model.
func NewModel(ecoClient *eco.Client, cartSession *cart.Session, listingCache *cache.Cache[ListingCacheKey, *eco.ProductPage], pageSize int) Model {
	styles := DefaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorMoss)

	ti := textinput.New()
	ti.Placeholder = "Search products..."
	ti.CharLimit = 50
	ti.Width = 30

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(colorHighlight).
		BorderLeftForeground(colorHighlight)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(colorLeaf).
		BorderLeftForeground(colorHighlight)

	productList := list.New([]list.Item{}, delegate, 0, 0)
	productList.Title = "🌱 EcoBazaar"
	productList.SetShowHelp(false)
	// Search and filtering are handled by the catalog engine, not the list.
	productList.SetFilteringEnabled(false)
	productList.Styles.Title = styles.ListTitle

	return Model{
		ecoClient:       ecoClient,
		cartSession:     cartSession,
		listingCache:    listingCache,
		viewState:       ViewStorefront,
		styles:          styles,
		productList:     productList,
		searchInput:     ti,
		listSpinner:     sp,
		filters:         catalog.DefaultFilters(),
		currentPage:     1,
		pageSize:        pageSize,
		loadingProducts: true,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.listSpinner.Tick,
		m.loadProducts(),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.productList.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.listSpinner, cmd = m.listSpinner.Update(msg)
		cmds = append(cmds, cmd)

	case productsLoadedMsg:
		m.loadingProducts = false
		m.err = nil
		m.page = msg.page
		m.applyFilters()

	case loggedInMsg:
		m.authenticating = false
		m.err = nil
		m.loginForm = nil
		m.registerForm = nil
		m.cartSession.SetUser(msg.session.UserID)
		return m.enterRoleHome(msg.session.Role)

	case registeredMsg:
		m.authenticating = false
		m.err = nil
		m.notice = "Account created. Please login."
		m.goToLogin()
		return m, nil

	case cartLoadedMsg:
		m.loadingCart = false
		m.err = nil
		m.clampCartSelection()

	case cartSyncedMsg:
		m.syncingCart = false
		m.err = nil
		m.notice = msg.notice
		m.clampCartSelection()

	case profileLoadedMsg:
		m.loadingProfile = false
		m.err = nil
		m.profile = msg.profile

	case profileSavedMsg:
		m.savingProfile = false
		m.err = nil
		m.profile = msg.profile
		m.profileForm = nil
		m.notice = "Profile saved."
		m.viewState = ViewProfile

	case passwordChangedMsg:
		m.savingProfile = false
		m.err = nil
		m.passwordForm = nil
		m.notice = "Password updated."
		m.viewState = ViewProfile

	case sellerProductsLoadedMsg:
		m.loadingSeller = false
		m.err = nil
		m.sellerProducts = msg.products
		if m.sellerSelectedIdx >= len(m.sellerProducts) {
			m.sellerSelectedIdx = 0
		}

	case productSavedMsg:
		m.savingProduct = false
		m.err = nil
		m.productForm = nil
		m.editingProduct = nil
		m.notice = "Product saved."
		m.viewState = ViewSellerDashboard
		m.listingCache.Clear()
		m.loadingSeller = true
		return m, m.loadSellerProducts()

	case productDeletedMsg:
		m.savingProduct = false
		m.err = nil
		m.notice = "Product deleted."
		m.listingCache.Clear()
		m.loadingSeller = true
		return m, m.loadSellerProducts()

	case loginRequiredMsg:
		m.goToLogin()
		return m, nil

	case sessionExpiredMsg:
		m.cartSession.SetUser(0)
		m.goToLogin()
		m.notice = ""
		m.err = errSessionExpired
		return m, nil

	case noopMsg:
		return m, nil

	case errMsg:
		m.err = msg.err
		m.notice = ""
		m.loadingProducts = false
		m.loadingCart = false
		m.syncingCart = false
		m.loadingProfile = false
		m.savingProfile = false
		m.loadingSeller = false
		m.savingProduct = false
		m.authenticating = false
	}

	// Update sub-models based on view state
	switch m.viewState {
	case ViewStorefront:
		if m.showSearch {
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			cmds = append(cmds, cmd)
		} else {
			var cmd tea.Cmd
			m.productList, cmd = m.productList.Update(msg)
			cmds = append(cmds, cmd)
		}

	case ViewLogin:
		if cmd := m.updateLoginForm(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case ViewRegister:
		if cmd := m.updateRegisterForm(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case ViewProfile:
		if cmd := m.updateProfileForm(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case ViewPasswordChange:
		if cmd := m.updatePasswordForm(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case ViewSellerForm:
		if cmd := m.updateProductForm(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateLoginForm(msg tea.Msg) tea.Cmd {
	if m.loginForm == nil {
		return nil
	}
	form, cmd := m.loginForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.loginForm = f
	}
	if m.loginForm.State == huh.StateCompleted && !m.authenticating {
		m.authenticating = true
		return m.login()
	}
	return cmd
}

func (m *Model) updateRegisterForm(msg tea.Msg) tea.Cmd {
	if m.registerForm == nil {
		return nil
	}
	form, cmd := m.registerForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.registerForm = f
	}
	if m.registerForm.State == huh.StateCompleted && !m.authenticating {
		m.authenticating = true
		return m.register()
	}
	return cmd
}

func (m *Model) updateProfileForm(msg tea.Msg) tea.Cmd {
	if m.profileForm == nil {
		return nil
	}
	form, cmd := m.profileForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.profileForm = f
	}
	if m.profileForm.State == huh.StateCompleted && !m.savingProfile {
		m.savingProfile = true
		return m.saveProfile()
	}
	return cmd
}

func (m *Model) updatePasswordForm(msg tea.Msg) tea.Cmd {
	if m.passwordForm == nil {
		return nil
	}
	form, cmd := m.passwordForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.passwordForm = f
	}
	if m.passwordForm.State == huh.StateCompleted && !m.savingProfile {
		m.savingProfile = true
		return m.changePassword()
	}
	return cmd
}

func (m *Model) updateProductForm(msg tea.Msg) tea.Cmd {
	if m.productForm == nil {
		return nil
	}
	form, cmd := m.productForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.productForm = f
	}
	if m.productForm.State == huh.StateCompleted && !m.savingProduct {
		m.savingProduct = true
		return m.saveProduct()
	}
	return cmd
}

// ============================================
// Key Handling
// ============================================

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.viewState {
	case ViewStorefront:
		return m.handleStorefrontKeys(msg)
	case ViewProductDetails:
		return m.handleProductDetailsKeys(msg)
	case ViewCart:
		return m.handleCartKeys(msg)
	case ViewLogin:
		return m.handleLoginKeys(msg)
	case ViewRegister:
		return m.handleRegisterKeys(msg)
	case ViewProfile:
		return m.handleProfileKeys(msg)
	case ViewPasswordChange:
		return m.handlePasswordKeys(msg)
	case ViewSellerDashboard:
		return m.handleSellerDashboardKeys(msg)
	case ViewSellerForm:
		return m.handleSellerFormKeys(msg)
	case ViewAdminOverview:
		return m.handleAdminKeys(msg)
	}

	return m, nil
}

func (m Model) handleStorefrontKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.showSearch {
		switch key {
		case "enter":
			m.showSearch = false
			m.searchInput.Blur()
			m.query = m.searchInput.Value()
			m.applyFilters()
			return m, nil
		case "esc":
			m.showSearch = false
			m.searchInput.Blur()
			m.searchInput.SetValue("")
			m.query = ""
			m.applyFilters()
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	switch key {
	case "q":
		return m, tea.Quit

	case "/":
		m.showSearch = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case "f":
		m.filters.Category = nextCategory(m.filters.Category)
		m.applyFilters()
		return m, nil

	case "t":
		m.filters.Carbon = nextTier(m.filters.Carbon)
		m.applyFilters()
		return m, nil

	case "o":
		m.filters.Sort = nextSortKey(m.filters.Sort)
		m.applyFilters()
		return m, nil

	case "-":
		m.filters.MaxPrice -= priceStep
		if m.filters.MaxPrice < 0 {
			m.filters.MaxPrice = 0
		}
		m.applyFilters()
		return m, nil

	case "+", "=":
		m.filters.MaxPrice += priceStep
		if m.filters.MaxPrice > catalog.MaxPriceLimit {
			m.filters.MaxPrice = catalog.MaxPriceLimit
		}
		m.applyFilters()
		return m, nil

	case "x":
		m.filters = catalog.DefaultFilters()
		m.query = ""
		m.searchInput.SetValue("")
		m.applyFilters()
		return m, nil

	case "[":
		if m.page != nil && m.page.HasPrevious && !m.loadingProducts {
			m.currentPage--
			m.loadingProducts = true
			return m, m.loadProducts()
		}
		return m, nil

	case "]":
		if m.page != nil && m.page.HasNext && !m.loadingProducts {
			m.currentPage++
			m.loadingProducts = true
			return m, m.loadProducts()
		}
		return m, nil

	case "r":
		m.listingCache.Clear()
		m.loadingProducts = true
		return m, m.loadProducts()

	case "a":
		if item, ok := m.productList.SelectedItem().(productItem); ok {
			return m.addToCart(item.product)
		}
		return m, nil

	case "c":
		if !m.cartSession.Authenticated() {
			m.goToLogin()
			return m, nil
		}
		m.viewState = ViewCart
		m.cartSelectedIdx = 0
		m.loadingCart = true
		return m, m.loadCart()

	case "u":
		if !m.cartSession.Authenticated() {
			m.goToLogin()
			return m, nil
		}
		m.viewState = ViewProfile
		m.loadingProfile = true
		return m, m.loadProfile()

	case "b":
		if session := m.ecoClient.CurrentSession(); session != nil && session.Role == eco.RoleSeller {
			m.viewState = ViewSellerDashboard
			m.loadingSeller = true
			return m, m.loadSellerProducts()
		}
		return m, nil

	case "v":
		if session := m.ecoClient.CurrentSession(); session != nil && session.Role == eco.RoleAdmin {
			m.viewState = ViewAdminOverview
		}
		return m, nil

	case "l":
		if m.cartSession.Authenticated() {
			return m, nil
		}
		m.goToLogin()
		return m, nil

	case "enter":
		if item, ok := m.productList.SelectedItem().(productItem); ok {
			product := item.product
			m.selectedProduct = &product
			m.viewState = ViewProductDetails
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.productList, cmd = m.productList.Update(msg)
	return m, cmd
}

func (m Model) handleProductDetailsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace", "q":
		m.viewState = ViewStorefront
		m.selectedProduct = nil
		return m, nil

	case "a", "enter":
		if m.selectedProduct != nil {
			return m.addToCart(*m.selectedProduct)
		}
		return m, nil

	case "c":
		if !m.cartSession.Authenticated() {
			m.goToLogin()
			return m, nil
		}
		m.viewState = ViewCart
		m.cartSelectedIdx = 0
		m.loadingCart = true
		return m, m.loadCart()
	}

	return m, nil
}

func (m Model) handleCartKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "esc", "backspace", "q", "s":
		m.viewState = ViewStorefront
		m.notice = ""
		return m, nil

	case "up", "k":
		if m.cartSelectedIdx > 0 {
			m.cartSelectedIdx--
		}
		return m, nil

	case "down", "j":
		if m.cartSelectedIdx < m.cartSession.Len()-1 {
			m.cartSelectedIdx++
		}
		return m, nil

	case "+", "=":
		if item := m.selectedCartItem(); item != nil && !m.cartSession.Busy() {
			m.syncingCart = true
			return m, m.setQuantity(item.ProductID, item.Quantity+1)
		}
		return m, nil

	case "-":
		if item := m.selectedCartItem(); item != nil && !m.cartSession.Busy() {
			m.syncingCart = true
			return m, m.setQuantity(item.ProductID, item.Quantity-1)
		}
		return m, nil

	case "d", "delete":
		if item := m.selectedCartItem(); item != nil && !m.cartSession.Busy() {
			m.syncingCart = true
			return m, m.removeFromCart(item.ProductID)
		}
		return m, nil

	case "X":
		if !m.cartSession.IsEmpty() && !m.cartSession.Busy() {
			m.syncingCart = true
			return m, m.clearCart()
		}
		return m, nil

	case "r":
		if !m.cartSession.Busy() {
			m.loadingCart = true
			return m, m.loadCart()
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewState = ViewStorefront
		m.loginForm = nil
		m.err = nil
		return m, nil

	case "ctrl+r":
		m.goToRegister()
		return m, nil
	}

	var cmds []tea.Cmd
	if cmd := m.updateLoginForm(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleRegisterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.goToLogin()
		return m, nil
	}

	var cmds []tea.Cmd
	if cmd := m.updateRegisterForm(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleProfileKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the edit form is open, it owns the keys (except esc).
	if m.profileForm != nil {
		if msg.String() == "esc" {
			m.profileForm = nil
			return m, nil
		}
		var cmds []tea.Cmd
		if cmd := m.updateProfileForm(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	switch msg.String() {
	case "esc", "backspace", "q":
		m.viewState = ViewStorefront
		m.notice = ""
		return m, nil

	case "e":
		if m.profile != nil {
			m.initProfileForm()
		}
		return m, nil

	case "w":
		m.initPasswordForm()
		m.viewState = ViewPasswordChange
		return m, nil

	case "r":
		m.loadingProfile = true
		return m, m.loadProfile()

	case "o":
		// Logout
		m.ecoClient.Logout()
		m.cartSession.SetUser(0)
		m.profile = nil
		m.viewState = ViewStorefront
		m.notice = "Logged out."
		return m, nil
	}

	return m, nil
}

func (m Model) handlePasswordKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.passwordForm = nil
		m.viewState = ViewProfile
		return m, nil
	}

	var cmds []tea.Cmd
	if cmd := m.updatePasswordForm(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleSellerDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace", "q":
		m.viewState = ViewStorefront
		m.notice = ""
		return m, nil

	case "up", "k":
		if m.sellerSelectedIdx > 0 {
			m.sellerSelectedIdx--
		}
		return m, nil

	case "down", "j":
		if m.sellerSelectedIdx < len(m.sellerProducts)-1 {
			m.sellerSelectedIdx++
		}
		return m, nil

	case "n":
		m.editingProduct = nil
		m.initProductForm(nil)
		m.viewState = ViewSellerForm
		return m, nil

	case "e", "enter":
		if m.sellerSelectedIdx < len(m.sellerProducts) {
			product := m.sellerProducts[m.sellerSelectedIdx]
			m.editingProduct = &product
			m.initProductForm(&product)
			m.viewState = ViewSellerForm
		}
		return m, nil

	case "d", "delete":
		if m.sellerSelectedIdx < len(m.sellerProducts) && !m.savingProduct {
			m.savingProduct = true
			return m, m.deleteProduct(m.sellerProducts[m.sellerSelectedIdx].ID)
		}
		return m, nil

	case "r":
		m.loadingSeller = true
		return m, m.loadSellerProducts()
	}

	return m, nil
}

func (m Model) handleSellerFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.productForm = nil
		m.editingProduct = nil
		m.viewState = ViewSellerDashboard
		return m, nil
	}

	var cmds []tea.Cmd
	if cmd := m.updateProductForm(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleAdminKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace", "q":
		m.viewState = ViewStorefront
		return m, nil

	case "r":
		m.listingCache.Clear()
		m.loadingProducts = true
		return m, m.loadProducts()
	}

	return m, nil
}

// ============================================
// State Helpers
// ============================================

// addToCart dispatches an add for a product, routing anonymous users to
// the login view without making a request.
func (m Model) addToCart(product eco.Product) (tea.Model, tea.Cmd) {
	if !m.cartSession.Authenticated() {
		m.goToLogin()
		return m, nil
	}
	if m.cartSession.Busy() {
		return m, nil
	}
	m.syncingCart = true
	return m, m.addToCartCmd(product)
}

// enterRoleHome routes a fresh login to the landing view for its role.
func (m Model) enterRoleHome(role eco.Role) (tea.Model, tea.Cmd) {
	switch role {
	case eco.RoleSeller:
		m.viewState = ViewSellerDashboard
		m.loadingSeller = true
		return m, m.loadSellerProducts()
	case eco.RoleAdmin:
		m.viewState = ViewAdminOverview
		return m, nil
	default:
		m.viewState = ViewStorefront
		m.loadingCart = true
		return m, m.loadCart()
	}
}

func (m *Model) goToLogin() {
	m.initLoginForm()
	m.authenticating = false
	m.err = nil
	m.viewState = ViewLogin
}

func (m *Model) goToRegister() {
	m.initRegisterForm()
	m.authenticating = false
	m.err = nil
	m.viewState = ViewRegister
}

// applyFilters runs the catalog engine over the loaded page and rebuilds
// the visible list.
func (m *Model) applyFilters() {
	var products []eco.Product
	if m.page != nil {
		products = m.page.Products
	}
	m.visible = catalog.Apply(products, m.query, m.filters)

	items := make([]list.Item, len(m.visible))
	for i, p := range m.visible {
		items[i] = productItem{product: p, styles: m.styles}
	}
	m.productList.SetItems(items)
}

func (m *Model) selectedCartItem() *eco.CartItem {
	items := m.cartSession.Items()
	if m.cartSelectedIdx < 0 || m.cartSelectedIdx >= len(items) {
		return nil
	}
	return &items[m.cartSelectedIdx]
}

func (m *Model) clampCartSelection() {
	if n := m.cartSession.Len(); m.cartSelectedIdx >= n && n > 0 {
		m.cartSelectedIdx = n - 1
	} else if n == 0 {
		m.cartSelectedIdx = 0
	}
}

// nextCategory cycles through "all" and the storefront categories.
func nextCategory(current string) string {
	options := append([]string{catalog.CategoryAll}, catalog.Categories...)
	for i, c := range options {
		if c == current {
			return options[(i+1)%len(options)]
		}
	}
	return catalog.CategoryAll
}

func nextTier(current catalog.CarbonTier) catalog.CarbonTier {
	tiers := []catalog.CarbonTier{catalog.TierAny, catalog.TierLow, catalog.TierMedium, catalog.TierHigh}
	for i, t := range tiers {
		if t == current {
			return tiers[(i+1)%len(tiers)]
		}
	}
	return catalog.TierAny
}

func nextSortKey(current catalog.SortKey) catalog.SortKey {
	for i, k := range catalog.SortKeys {
		if k == current {
			return catalog.SortKeys[(i+1)%len(catalog.SortKeys)]
		}
	}
	return catalog.SortDefault
}

// ============================================
// Test Accessors
// ============================================

// GetViewState returns the current view state (for testing).
func (m Model) GetViewState() ViewState {
	return m.viewState
}

// VisibleProducts returns the filtered storefront listing (for testing).
func (m Model) VisibleProducts() []eco.Product {
	return m.visible
}
