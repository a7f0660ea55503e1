package eco

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListProductsParams holds parameters for the paginated product listing.
type ListProductsParams struct {
	Page       int
	Size       int
	SortBy     string // e.g. "createdAt", "price"
	SortDir    string // "asc" or "desc"
	Search     string
	CategoryID int64
}

// ListProducts fetches one page of the product catalog.
func (c *Client) ListProducts(ctx context.Context, params ListProductsParams) (*ProductPage, error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Size > 0 {
		query.Set("size", strconv.Itoa(params.Size))
	}
	if params.SortBy != "" {
		query.Set("sortBy", params.SortBy)
	}
	if params.SortDir != "" {
		query.Set("sortDir", params.SortDir)
	}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.CategoryID > 0 {
		query.Set("categoryId", strconv.FormatInt(params.CategoryID, 10))
	}

	var page ProductPage
	if err := c.doRequest(ctx, http.MethodGet, "/api/products", query, nil, &page); err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return &page, nil
}

// GetProduct fetches a single product by ID.
func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var product Product
	endpoint := fmt.Sprintf("/api/products/%d", id)
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, nil, &product); err != nil {
		return nil, fmt.Errorf("getting product %d: %w", id, err)
	}
	return &product, nil
}

// ============================================
// Seller Operations
// ============================================

// ListSellerProducts fetches all products belonging to a seller.
func (c *Client) ListSellerProducts(ctx context.Context, sellerID int64) ([]Product, error) {
	var products []Product
	endpoint := fmt.Sprintf("/api/products/seller/%d", sellerID)
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, nil, &products); err != nil {
		return nil, fmt.Errorf("listing seller products: %w", err)
	}
	return products, nil
}

// CreateProduct creates a new product for a seller.
func (c *Client) CreateProduct(ctx context.Context, sellerID int64, product Product) (*Product, error) {
	var created Product
	endpoint := fmt.Sprintf("/api/products/seller/%d", sellerID)
	if err := c.doRequest(ctx, http.MethodPost, endpoint, nil, product, &created); err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}
	return &created, nil
}

// UpdateProduct updates one of a seller's products.
func (c *Client) UpdateProduct(ctx context.Context, productID, sellerID int64, product Product) (*Product, error) {
	var updated Product
	endpoint := fmt.Sprintf("/api/products/%d/seller/%d", productID, sellerID)
	if err := c.doRequest(ctx, http.MethodPut, endpoint, nil, product, &updated); err != nil {
		return nil, fmt.Errorf("updating product %d: %w", productID, err)
	}
	return &updated, nil
}

// DeleteProduct removes one of a seller's products.
func (c *Client) DeleteProduct(ctx context.Context, productID, sellerID int64) error {
	endpoint := fmt.Sprintf("/api/products/%d/seller/%d", productID, sellerID)
	if err := c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil, nil); err != nil {
		return fmt.Errorf("deleting product %d: %w", productID, err)
	}
	return nil
}
