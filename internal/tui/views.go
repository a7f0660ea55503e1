package tui

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Kaushal-00/ecobazaar-terminal-go/internal/catalog"
	"github.com/Kaushal-00/ecobazaar-terminal-go/internal/eco"
)

// View renders the current view.
func (m Model) View() string {
	var content string

	switch m.viewState {
	case ViewStorefront:
		content = m.viewStorefront()
	case ViewProductDetails:
		content = m.viewProductDetails()
	case ViewCart:
		content = m.viewCart()
	case ViewLogin:
		content = m.viewLogin()
	case ViewRegister:
		content = m.viewRegister()
	case ViewProfile:
		content = m.viewProfile()
	case ViewPasswordChange:
		content = m.viewPasswordChange()
	case ViewSellerDashboard:
		content = m.viewSellerDashboard()
	case ViewSellerForm:
		content = m.viewSellerForm()
	case ViewAdminOverview:
		content = m.viewAdminOverview()
	}

	return m.styles.App.Render(content)
}

// ============================================
// Shared Chrome
// ============================================

func (m Model) viewHeader(title string) string {
	left := m.styles.HeaderTitle.Render("🌱 EcoBazaar")
	if title != "" {
		left += m.styles.Subtle.Render(" › " + title)
	}

	var right string
	if session := m.ecoClient.CurrentSession(); session != nil {
		right = m.styles.Subtle.Render(fmt.Sprintf("%s (%s)", session.FullName, strings.ToLower(string(session.Role))))
		if n := m.cartSession.ItemCount(); n > 0 {
			right += m.styles.Highlight.Render(fmt.Sprintf("  🛒 %d", n))
		}
	} else {
		right = m.styles.Subtle.Render("browsing as guest")
	}

	return m.styles.Header.Render(left + "  " + right)
}

func (m Model) viewFeedback() string {
	if m.err != nil {
		return m.styles.Error.Render("✗ " + errorText(m.err))
	}
	if m.notice != "" {
		return m.styles.Success.Render("✓ " + m.notice)
	}
	return ""
}

// errorText keeps server-provided messages and flattens everything else
// into a retry hint.
func errorText(err error) string {
	var apiErr *eco.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, errSessionExpired) {
		return err.Error()
	}
	return "request failed, press r to retry (" + err.Error() + ")"
}

// ============================================
// Storefront
// ============================================

func (m Model) viewStorefront() string {
	var b strings.Builder

	b.WriteString(m.viewHeader("storefront"))
	b.WriteString("\n")

	if m.showSearch {
		b.WriteString(m.styles.FilterLabel.Render("Search: "))
		b.WriteString(m.searchInput.View())
		b.WriteString("\n\n")
	} else {
		b.WriteString(m.viewFilterBar())
		b.WriteString("\n")
	}

	if feedback := m.viewFeedback(); feedback != "" {
		b.WriteString(feedback)
		b.WriteString("\n")
	}

	if m.loadingProducts {
		b.WriteString(fmt.Sprintf("\n %s Loading products...\n", m.listSpinner.View()))
	} else if len(m.visible) == 0 {
		b.WriteString(m.styles.Subtle.Render("\n No products match the current filters.\n"))
	} else {
		b.WriteString(m.productList.View())
	}

	b.WriteString("\n")
	b.WriteString(m.viewPagination())
	b.WriteString("\n")
	b.WriteString(m.styles.HelpBar.Render(m.storefrontHelp()))

	return b.String()
}

func (m Model) viewFilterBar() string {
	label := m.styles.FilterLabel
	active := m.styles.FilterActive

	category := m.filters.Category
	if category == catalog.CategoryAll {
		category = "all"
	}

	price := "any"
	if m.filters.MaxPrice < catalog.MaxPriceLimit {
		price = fmt.Sprintf("≤ $%.0f", m.filters.MaxPrice)
	}

	tier := "any"
	if m.filters.Carbon != catalog.TierAny {
		tier = string(m.filters.Carbon)
	}

	parts := []string{
		label.Render("category ") + active.Render(category),
		label.Render("price ") + active.Render(price),
		label.Render("carbon ") + active.Render(tier),
		label.Render("sort ") + active.Render(m.filters.Sort.Label()),
	}
	if m.query != "" {
		parts = append(parts, label.Render("search ")+active.Render(fmt.Sprintf("%q", m.query)))
	}

	return strings.Join(parts, label.Render("  │  "))
}

func (m Model) viewPagination() string {
	if m.page == nil {
		return ""
	}
	shown := fmt.Sprintf("page %d/%d • %d products • %d shown",
		m.page.CurrentPage, m.page.TotalPages, m.page.TotalItems, len(m.visible))
	return m.styles.Subtle.Render(shown)
}

func (m Model) storefrontHelp() string {
	help := "/ search • f category • t carbon • o sort • +/- price • x reset • [/] page • enter details • a add • c cart • u profile"
	session := m.ecoClient.CurrentSession()
	switch {
	case session == nil:
		help += " • l login"
	case session.Role == eco.RoleSeller:
		help += " • b dashboard"
	case session.Role == eco.RoleAdmin:
		help += " • v overview"
	}
	return help + " • q quit"
}

// ============================================
// Product Details
// ============================================

func (m Model) viewProductDetails() string {
	if m.selectedProduct == nil {
		return m.viewHeader("product") + "\n" + m.styles.Subtle.Render("No product selected.")
	}
	p := m.selectedProduct

	var b strings.Builder
	b.WriteString(m.viewHeader("product"))
	b.WriteString("\n")

	var box strings.Builder
	box.WriteString(m.styles.ProductName.Render(p.Name))
	box.WriteString("\n")
	box.WriteString(m.styles.ProductPrice.Render(fmt.Sprintf("$%.2f", p.Price)))
	box.WriteString("  ")
	box.WriteString(m.styles.CarbonBadge(p.CarbonFootprint))
	box.WriteString(m.styles.Subtle.Render(fmt.Sprintf(" (%.1f kg CO2e)", p.CarbonFootprint)))
	box.WriteString("\n")

	if p.IsInStock() {
		box.WriteString(m.styles.ProductInStock.Render(fmt.Sprintf("In stock: %d", p.StockQuantity)))
	} else {
		box.WriteString(m.styles.ProductOutOfStock.Render("Out of stock"))
	}
	box.WriteString("\n")

	box.WriteString(m.styles.Subtle.Render(fmt.Sprintf("%s • sold by %s • ★%.1f (%d reviews)",
		p.Category, p.Seller, p.Rating, p.ReviewsCount)))

	if desc := StripHTML(p.Description); desc != "" {
		box.WriteString("\n")
		box.WriteString(m.styles.ProductDescription.Render(wordwrap(desc, 70)))
	}

	b.WriteString(m.styles.Box.Render(box.String()))
	b.WriteString("\n")

	if feedback := m.viewFeedback(); feedback != "" {
		b.WriteString(feedback)
		b.WriteString("\n")
	}
	if m.syncingCart {
		b.WriteString(m.styles.Subtle.Render("Syncing cart..."))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.HelpBar.Render("a add to cart • c cart • esc back"))
	return b.String()
}

// ============================================
// Cart
// ============================================

func (m Model) viewCart() string {
	var b strings.Builder
	b.WriteString(m.viewHeader("cart"))
	b.WriteString("\n")

	if feedback := m.viewFeedback(); feedback != "" {
		b.WriteString(feedback)
		b.WriteString("\n")
	}

	switch {
	case m.loadingCart:
		b.WriteString(fmt.Sprintf("\n %s Loading cart...\n", m.listSpinner.View()))

	case m.cartSession.IsEmpty():
		b.WriteString(m.styles.Subtle.Render("\n Your cart is empty. Browse the storefront and press a to add products.\n"))

	default:
		items := m.cartSession.Items()
		for i, item := range items {
			cursor := "  "
			nameStyle := m.styles.Subtle
			if i == m.cartSelectedIdx {
				cursor = m.styles.Highlight.Render("> ")
				nameStyle = m.styles.Highlight
			}
			line := fmt.Sprintf("%s%s ×%d", cursor, nameStyle.Render(item.Name), item.Quantity)
			total := fmt.Sprintf("$%.2f", item.Price*float64(item.Quantity))
			carbon := fmt.Sprintf("%.1f kg", item.CarbonFootprint*float64(item.Quantity))
			b.WriteString(fmt.Sprintf("%s  %s  %s  %s\n",
				line,
				m.styles.ProductPrice.Render(total),
				m.styles.CarbonBadge(item.CarbonFootprint),
				m.styles.Subtle.Render(carbon)))
		}

		b.WriteString("\n")
		summary := fmt.Sprintf("Subtotal: %s    Footprint: %s",
			m.styles.ProductPrice.Render(m.cartSession.FormattedSubtotal()),
			m.styles.Highlight.Render(m.cartSession.FormattedCarbonTotal()))
		b.WriteString(m.styles.Box.Render(summary))
		b.WriteString("\n")
	}

	if m.syncingCart {
		b.WriteString(m.styles.Subtle.Render("Syncing..."))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.HelpBar.Render("↑/↓ select • +/- quantity • d remove • X clear • r reload • esc back"))
	return b.String()
}

// ============================================
// Auth Views
// ============================================

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(m.viewHeader("login"))
	b.WriteString("\n")

	if feedback := m.viewFeedback(); feedback != "" {
		b.WriteString(feedback)
		b.WriteString("\n\n")
	}

	if m.authenticating {
		b.WriteString(fmt.Sprintf(" %s Signing in...\n", m.listSpinner.View()))
	} else if m.loginForm != nil {
		b.WriteString(m.loginForm.View())
	}

	b.WriteString("\n")
	b.WriteString(m.styles.HelpBar.Render("enter submit • ctrl+r create account • esc back to storefront"))
	return b.String()
}

func (m Model) viewRegister() string {
	var b strings.Builder
	b.WriteString(m.viewHeader("register"))
	b.WriteString("\n")

	if feedback := m.viewFeedback(); feedback != "" {
		b.WriteString(feedback)
		b.WriteString("\n\n")
	}

	if m.authenticating {
		b.WriteString(fmt.Sprintf(" %s Creating account...\n", m.listSpinner.View()))
	} else if m.registerForm != nil {
		b.WriteString(m.registerForm.View())
	}

	b.WriteString("\n")
	b.WriteString(m.styles.HelpBar.Render("enter submit • esc back to login"))
	return b.String()
}

// ============================================
// Profile Views
// ============================================

func (m Model) viewProfile() string {
	var b strings.Builder
	b.WriteString(m.viewHeader("profile"))
	b.WriteString("\n")

	if feedback := m.viewFeedback(); feedback != "" {
		b.WriteString(feedback)
		b.WriteString("\n")
	}

	if m.profileForm != nil {
		b.WriteString(m.profileForm.View())
		b.WriteString("\n")
		b.WriteString(m.styles.HelpBar.Render("enter save • esc cancel"))
		return b.String()
	}

	switch {
	case m.loadingProfile:
		b.WriteString(fmt.Sprintf("\n %s Loading profile...\n", m.listSpinner.View()))

	case m.profile == nil:
		b.WriteString(m.styles.Subtle.Render("\n Profile unavailable. Press r to retry.\n"))

	default:
		p := m.profile
		yesNo := func(v bool) string {
			if v {
				return m.styles.Success.Render("yes")
			}
			return m.styles.Subtle.Render("no")
		}
		var box strings.Builder
		box.WriteString(m.styles.ProductName.Render(p.FullName))
		box.WriteString("\n")
		box.WriteString(m.styles.Subtle.Render(p.Email))
		box.WriteString("\n\n")
		box.WriteString(fmt.Sprintf("Phone:    %s\n", orDash(p.Phone)))
		box.WriteString(fmt.Sprintf("Address:  %s\n", orDash(p.Address)))
		box.WriteString(fmt.Sprintf("Eco commitment pledge:   %s\n", yesNo(p.EcoCommitment)))
		box.WriteString(fmt.Sprintf("Order notifications:     %s\n", yesNo(p.NotificationOrders)))
		box.WriteString(fmt.Sprintf("Promotion emails:        %s\n", yesNo(p.NotificationPromotions)))
		box.WriteString(fmt.Sprintf("Sustainability updates:  %s", yesNo(p.NotificationSustainability)))
		b.WriteString(m.styles.Box.Render(box.String()))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.HelpBar.Render("e edit • w change password • r reload • o logout • esc back"))
	return b.String()
}

func (m Model) viewPasswordChange() string {
	var b strings.Builder
	b.WriteString(m.viewHeader("change password"))
	b.WriteString("\n")

	if feedback := m.viewFeedback(); feedback != "" {
		b.WriteString(feedback)
		b.WriteString("\n\n")
	}

	if m.savingProfile {
		b.WriteString(fmt.Sprintf(" %s Updating password...\n", m.listSpinner.View()))
	} else if m.passwordForm != nil {
		b.WriteString(m.passwordForm.View())
	}

	b.WriteString("\n")
	b.WriteString(m.styles.HelpBar.Render("enter submit • esc back"))
	return b.String()
}

// ============================================
// Seller Views
// ============================================

func (m Model) viewSellerDashboard() string {
	var b strings.Builder
	b.WriteString(m.viewHeader("seller dashboard"))
	b.WriteString("\n")

	if feedback := m.viewFeedback(); feedback != "" {
		b.WriteString(feedback)
		b.WriteString("\n")
	}

	switch {
	case m.loadingSeller:
		b.WriteString(fmt.Sprintf("\n %s Loading your products...\n", m.listSpinner.View()))

	case len(m.sellerProducts) == 0:
		b.WriteString(m.styles.Subtle.Render("\n No products yet. Press n to list your first product.\n"))

	default:
		for i, p := range m.sellerProducts {
			cursor := "  "
			nameStyle := m.styles.Subtle
			if i == m.sellerSelectedIdx {
				cursor = m.styles.Highlight.Render("> ")
				nameStyle = m.styles.Highlight
			}
			status := m.styles.ProductInStock.Render("active")
			if !p.IsActive {
				status = m.styles.ProductOutOfStock.Render("unlisted")
			}
			b.WriteString(fmt.Sprintf("%s%s  $%.2f  stock %d  %s  %s\n",
				cursor, nameStyle.Render(p.Name), p.Price, p.StockQuantity,
				m.styles.CarbonBadge(p.CarbonFootprint), status))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.HelpBar.Render("n new • e edit • d delete • r reload • esc storefront"))
	return b.String()
}

func (m Model) viewSellerForm() string {
	title := "new product"
	if m.editingProduct != nil {
		title = "edit product"
	}

	var b strings.Builder
	b.WriteString(m.viewHeader(title))
	b.WriteString("\n")

	if feedback := m.viewFeedback(); feedback != "" {
		b.WriteString(feedback)
		b.WriteString("\n\n")
	}

	if m.savingProduct {
		b.WriteString(fmt.Sprintf(" %s Saving product...\n", m.listSpinner.View()))
	} else if m.productForm != nil {
		b.WriteString(m.productForm.View())
	}

	b.WriteString("\n")
	b.WriteString(m.styles.HelpBar.Render("enter save • esc cancel"))
	return b.String()
}

// ============================================
// Admin Overview
// ============================================

func (m Model) viewAdminOverview() string {
	var b strings.Builder
	b.WriteString(m.viewHeader("admin overview"))
	b.WriteString("\n")

	if feedback := m.viewFeedback(); feedback != "" {
		b.WriteString(feedback)
		b.WriteString("\n")
	}

	if m.loadingProducts {
		b.WriteString(fmt.Sprintf("\n %s Loading catalog...\n", m.listSpinner.View()))
		return b.String()
	}

	var products []eco.Product
	var total int64
	if m.page != nil {
		products = m.page.Products
		total = m.page.TotalItems
	}

	var box strings.Builder
	box.WriteString(m.styles.ProductName.Render("Catalog"))
	box.WriteString("\n")
	box.WriteString(fmt.Sprintf("Total products:  %d\n", total))
	box.WriteString(fmt.Sprintf("Loaded on page:  %d\n", len(products)))

	if len(products) > 0 {
		var carbonSum float64
		tierCounts := map[catalog.CarbonTier]int{}
		categoryCounts := map[string]int{}
		for _, p := range products {
			carbonSum += p.CarbonFootprint
			tierCounts[catalog.TierFor(p.CarbonFootprint)]++
			categoryCounts[p.Category]++
		}

		box.WriteString(fmt.Sprintf("Avg footprint:   %.2f kg CO2e\n", carbonSum/float64(len(products))))
		box.WriteString(fmt.Sprintf("Carbon tiers:    %s %d  %s %d  %s %d\n",
			m.styles.CarbonLow.Render("low"), tierCounts[catalog.TierLow],
			m.styles.CarbonMedium.Render("medium"), tierCounts[catalog.TierMedium],
			m.styles.CarbonHigh.Render("high"), tierCounts[catalog.TierHigh]))

		box.WriteString("\nBy category:\n")
		names := make([]string, 0, len(categoryCounts))
		for name := range categoryCounts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			box.WriteString(fmt.Sprintf("  %-16s %d\n", name, categoryCounts[name]))
		}
	}

	b.WriteString(m.styles.Box.Render(strings.TrimRight(box.String(), "\n")))
	b.WriteString("\n")
	b.WriteString(m.styles.HelpBar.Render("r refresh • esc storefront"))
	return b.String()
}

// ============================================
// Helpers
// ============================================

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}

// wordwrap does simple greedy wrapping for product descriptions.
func wordwrap(s string, width int) string {
	var out strings.Builder
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			out.WriteString("\n")
		}
		lineLen := 0
		for j, word := range strings.Fields(line) {
			if j > 0 {
				if lineLen+1+len(word) > width {
					out.WriteString("\n")
					lineLen = 0
				} else {
					out.WriteString(" ")
					lineLen++
				}
			}
			out.WriteString(word)
			lineLen += len(word)
		}
	}
	return out.String()
}
