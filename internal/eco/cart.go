package eco

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// addItemRequest is the add-to-cart payload.
type addItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// FetchCart retrieves the remote cart for a user.
func (c *Client) FetchCart(ctx context.Context, userID int64) (*Cart, error) {
	var cart Cart
	endpoint := fmt.Sprintf("/api/cart/user/%d", userID)
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, nil, &cart); err != nil {
		return nil, fmt.Errorf("fetching cart: %w", err)
	}
	return &cart, nil
}

// AddCartItem adds a product to the user's cart.
func (c *Client) AddCartItem(ctx context.Context, userID, productID int64, quantity int) error {
	endpoint := fmt.Sprintf("/api/cart/user/%d/items", userID)
	req := addItemRequest{ProductID: productID, Quantity: quantity}
	if err := c.doRequest(ctx, http.MethodPost, endpoint, nil, req, nil); err != nil {
		return fmt.Errorf("adding cart item: %w", err)
	}
	return nil
}

// UpdateCartItem sets the quantity of a cart line. The quantity travels as
// a query parameter, matching the API's route shape.
func (c *Client) UpdateCartItem(ctx context.Context, userID, productID int64, quantity int) error {
	endpoint := fmt.Sprintf("/api/cart/user/%d/items/%d", userID, productID)
	query := url.Values{}
	query.Set("quantity", strconv.Itoa(quantity))
	if err := c.doRequest(ctx, http.MethodPut, endpoint, query, nil, nil); err != nil {
		return fmt.Errorf("updating cart item: %w", err)
	}
	return nil
}

// RemoveCartItem removes a product from the user's cart.
func (c *Client) RemoveCartItem(ctx context.Context, userID, productID int64) error {
	endpoint := fmt.Sprintf("/api/cart/user/%d/items/%d", userID, productID)
	if err := c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil, nil); err != nil {
		return fmt.Errorf("removing cart item: %w", err)
	}
	return nil
}

// ClearCart empties the user's cart.
func (c *Client) ClearCart(ctx context.Context, userID int64) error {
	endpoint := fmt.Sprintf("/api/cart/user/%d", userID)
	if err := c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil, nil); err != nil {
		return fmt.Errorf("clearing cart: %w", err)
	}
	return nil
}
