// Package cart maintains a per-user working copy of the remote cart.
// Every mutation is confirmed by the API before the local copy changes, so
// a failed request leaves the cart exactly as it was.
package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Kaushal-00/ecobazaar-terminal-go/internal/eco"
)

// ErrNotAuthenticated is returned when a cart operation runs without a
// logged-in user. No request is made in that case.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrBusy is returned when a cart operation is already in flight.
var ErrBusy = errors.New("cart operation in progress")

// Remote is the API surface the session synchronizes against.
// *eco.Client satisfies it.
type Remote interface {
	FetchCart(ctx context.Context, userID int64) (*eco.Cart, error)
	AddCartItem(ctx context.Context, userID, productID int64, quantity int) error
	UpdateCartItem(ctx context.Context, userID, productID int64, quantity int) error
	RemoveCartItem(ctx context.Context, userID, productID int64) error
	ClearCart(ctx context.Context, userID int64) error
}

// Session owns the cart working copy for one user.
type Session struct {
	remote Remote

	mu     sync.Mutex
	userID int64
	items  []eco.CartItem
	loaded bool
	busy   bool
}

// NewSession creates a session with no user attached.
func NewSession(remote Remote) *Session {
	return &Session{remote: remote}
}

// SetUser attaches a user and resets the working copy. Pass 0 to detach
// (logout or session expiry). An operation still in flight for the previous
// user keeps its busy claim until it settles; its result is discarded.
func (s *Session) SetUser(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
	s.items = nil
	s.loaded = false
}

// Authenticated reports whether a user is attached.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID != 0
}

// Busy reports whether an operation is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Loaded reports whether the working copy reflects a successful fetch.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// begin claims the busy flag, failing fast when anonymous or already busy.
func (s *Session) begin() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == 0 {
		return 0, ErrNotAuthenticated
	}
	if s.busy {
		return 0, ErrBusy
	}
	s.busy = true
	return s.userID, nil
}

func (s *Session) end() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// ============================================
// Synchronized Operations
// ============================================

// Load replaces the working copy with the remote cart.
func (s *Session) Load(ctx context.Context) error {
	userID, err := s.begin()
	if err != nil {
		return err
	}
	defer s.end()

	remote, err := s.remote.FetchCart(ctx, userID)
	if err != nil {
		return fmt.Errorf("loading cart: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID != userID {
		return nil
	}
	s.items = append([]eco.CartItem(nil), remote.Items...)
	s.loaded = true
	return nil
}

// Add puts quantity units of a product in the cart. When the product is
// already a line, the quantities accumulate.
func (s *Session) Add(ctx context.Context, product eco.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	userID, err := s.begin()
	if err != nil {
		return err
	}
	defer s.end()

	if err := s.remote.AddCartItem(ctx, userID, product.ID, quantity); err != nil {
		return fmt.Errorf("adding to cart: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID != userID {
		return nil
	}
	for i := range s.items {
		if s.items[i].ProductID == product.ID {
			s.items[i].Quantity += quantity
			return nil
		}
	}
	s.items = append(s.items, lineFromProduct(product, quantity))
	return nil
}

// SetQuantity updates a line's quantity. Zero or negative removes the line.
func (s *Session) SetQuantity(ctx context.Context, productID int64, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, productID)
	}

	userID, err := s.begin()
	if err != nil {
		return err
	}
	defer s.end()

	if err := s.remote.UpdateCartItem(ctx, userID, productID, quantity); err != nil {
		return fmt.Errorf("updating quantity: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID != userID {
		return nil
	}
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			break
		}
	}
	return nil
}

// Remove deletes a line from the cart.
func (s *Session) Remove(ctx context.Context, productID int64) error {
	userID, err := s.begin()
	if err != nil {
		return err
	}
	defer s.end()

	if err := s.remote.RemoveCartItem(ctx, userID, productID); err != nil {
		return fmt.Errorf("removing from cart: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID != userID {
		return nil
	}
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	return nil
}

// Clear empties the cart.
func (s *Session) Clear(ctx context.Context) error {
	userID, err := s.begin()
	if err != nil {
		return err
	}
	defer s.end()

	if err := s.remote.ClearCart(ctx, userID); err != nil {
		return fmt.Errorf("clearing cart: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID != userID {
		return nil
	}
	s.items = nil
	return nil
}

// ============================================
// Query Methods
// ============================================

// Items returns a copy of the working copy lines.
func (s *Session) Items() []eco.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]eco.CartItem(nil), s.items...)
}

// Line returns the line for a product, if present.
func (s *Session) Line(productID int64) (eco.CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return eco.CartItem{}, false
}

// IsEmpty returns true if the cart has no lines.
func (s *Session) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// Len returns the number of distinct lines.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// ItemCount returns the total quantity across all lines.
func (s *Session) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Subtotal returns the sum of price times quantity over all lines.
// Totals are always derived from the lines, never stored.
func (s *Session) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// CarbonTotal returns the sum of footprint times quantity over all lines.
func (s *Session) CarbonTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, item := range s.items {
		total += item.CarbonFootprint * float64(item.Quantity)
	}
	return total
}

// FormattedSubtotal returns the subtotal for display.
func (s *Session) FormattedSubtotal() string {
	return fmt.Sprintf("$%.2f", s.Subtotal())
}

// FormattedCarbonTotal returns the carbon total for display.
func (s *Session) FormattedCarbonTotal() string {
	return fmt.Sprintf("%.1f kg CO2e", s.CarbonTotal())
}

// lineFromProduct snapshots a product into a cart line.
func lineFromProduct(p eco.Product, quantity int) eco.CartItem {
	return eco.CartItem{
		ProductID:       p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		ImageURL:        p.ImageURL,
		Category:        strings.ToLower(p.Category),
		Seller:          p.Seller,
		Rating:          p.Rating,
		Reviews:         p.ReviewsCount,
		CarbonFootprint: p.CarbonFootprint,
		Stock:           p.StockQuantity,
		Quantity:        quantity,
	}
}
