package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Kaushal-00/ecobazaar-terminal-go/internal/cart"
	"github.com/Kaushal-00/ecobazaar-terminal-go/internal/eco"
)

const requestTimeout = 10 * time.Second

var errSessionExpired = errors.New("session expired, please login again")

// toMsg translates an operation error into the message that drives view
// routing. Expired sessions route to login, anonymous cart operations
// route to login without surfacing an error, and a busy cart drops the
// keystroke silently.
func toMsg(err error) tea.Msg {
	switch {
	case errors.Is(err, eco.ErrSessionExpired):
		return sessionExpiredMsg{}
	case errors.Is(err, cart.ErrNotAuthenticated):
		return loginRequiredMsg{}
	case errors.Is(err, cart.ErrBusy):
		return noopMsg{}
	default:
		return errMsg{err}
	}
}

// ============================================
// Auth Commands
// ============================================

func (m Model) login() tea.Cmd {
	creds := eco.Credentials{
		Email:    m.loginData.email,
		Password: m.loginData.password,
		Role:     m.loginData.role,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		session, err := m.ecoClient.Login(ctx, creds)
		if err != nil {
			return toMsg(err)
		}
		return loggedInMsg{session: session}
	}
}

func (m Model) register() tea.Cmd {
	reg := eco.Registration{
		FullName: m.registerData.fullName,
		Email:    m.registerData.email,
		Phone:    m.registerData.phone,
		Address:  m.registerData.address,
		Password: m.registerData.password,
		Role:     m.registerData.role,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := m.ecoClient.Register(ctx, reg); err != nil {
			return toMsg(err)
		}
		return registeredMsg{}
	}
}

// ============================================
// Catalog Commands
// ============================================

func (m Model) loadProducts() tea.Cmd {
	page := m.currentPage
	size := m.pageSize
	return func() tea.Msg {
		key := ListingCacheKey{Page: page, Size: size}
		if cached, ok := m.listingCache.Get(key); ok {
			return productsLoadedMsg{page: cached}
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := m.ecoClient.ListProducts(ctx, eco.ListProductsParams{
			Page:    page,
			Size:    size,
			SortBy:  "createdAt",
			SortDir: "desc",
		})
		if err != nil {
			return toMsg(err)
		}
		m.listingCache.Set(key, result)
		return productsLoadedMsg{page: result}
	}
}

// ============================================
// Cart Commands
// ============================================

func (m Model) loadCart() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := m.cartSession.Load(ctx); err != nil {
			return toMsg(err)
		}
		return cartLoadedMsg{}
	}
}

func (m Model) addToCartCmd(product eco.Product) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := m.cartSession.Add(ctx, product, 1); err != nil {
			return toMsg(err)
		}
		return cartSyncedMsg{notice: fmt.Sprintf("Added %s to cart.", product.Name)}
	}
}

func (m Model) setQuantity(productID int64, quantity int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := m.cartSession.SetQuantity(ctx, productID, quantity); err != nil {
			return toMsg(err)
		}
		return cartSyncedMsg{}
	}
}

func (m Model) removeFromCart(productID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := m.cartSession.Remove(ctx, productID); err != nil {
			return toMsg(err)
		}
		return cartSyncedMsg{notice: "Item removed."}
	}
}

func (m Model) clearCart() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := m.cartSession.Clear(ctx); err != nil {
			return toMsg(err)
		}
		return cartSyncedMsg{notice: "Cart cleared."}
	}
}

// ============================================
// Profile Commands
// ============================================

func (m Model) loadProfile() tea.Cmd {
	session := m.ecoClient.CurrentSession()
	return func() tea.Msg {
		if session == nil {
			return loginRequiredMsg{}
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		profile, err := m.ecoClient.GetProfile(ctx, session.UserID)
		if err != nil {
			return toMsg(err)
		}
		return profileLoadedMsg{profile: profile}
	}
}

func (m Model) saveProfile() tea.Cmd {
	session := m.ecoClient.CurrentSession()
	update := m.profileData.toUpdate()
	return func() tea.Msg {
		if session == nil {
			return loginRequiredMsg{}
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		profile, err := m.ecoClient.UpdateProfile(ctx, session.UserID, update)
		if err != nil {
			return toMsg(err)
		}
		return profileSavedMsg{profile: profile}
	}
}

func (m Model) changePassword() tea.Cmd {
	session := m.ecoClient.CurrentSession()
	update := eco.PasswordUpdate{
		CurrentPassword: m.passwordData.current,
		NewPassword:     m.passwordData.next,
	}
	return func() tea.Msg {
		if session == nil {
			return loginRequiredMsg{}
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := m.ecoClient.UpdatePassword(ctx, session.UserID, update); err != nil {
			return toMsg(err)
		}
		return passwordChangedMsg{}
	}
}

// ============================================
// Seller Commands
// ============================================

func (m Model) loadSellerProducts() tea.Cmd {
	session := m.ecoClient.CurrentSession()
	return func() tea.Msg {
		if session == nil {
			return loginRequiredMsg{}
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		products, err := m.ecoClient.ListSellerProducts(ctx, session.UserID)
		if err != nil {
			return toMsg(err)
		}
		return sellerProductsLoadedMsg{products: products}
	}
}

func (m Model) saveProduct() tea.Cmd {
	session := m.ecoClient.CurrentSession()
	product, buildErr := m.productFormData.toProduct()
	editing := m.editingProduct
	return func() tea.Msg {
		if session == nil {
			return loginRequiredMsg{}
		}
		if buildErr != nil {
			return errMsg{buildErr}
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var err error
		if editing != nil {
			_, err = m.ecoClient.UpdateProduct(ctx, editing.ID, session.UserID, product)
		} else {
			_, err = m.ecoClient.CreateProduct(ctx, session.UserID, product)
		}
		if err != nil {
			return toMsg(err)
		}
		return productSavedMsg{}
	}
}

func (m Model) deleteProduct(productID int64) tea.Cmd {
	session := m.ecoClient.CurrentSession()
	return func() tea.Msg {
		if session == nil {
			return loginRequiredMsg{}
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := m.ecoClient.DeleteProduct(ctx, productID, session.UserID); err != nil {
			return toMsg(err)
		}
		return productDeletedMsg{}
	}
}
