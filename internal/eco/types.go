// Package eco provides a client for the EcoBazaar REST API.
package eco

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Role identifies the kind of account behind a session.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleSeller   Role = "SELLER"
	RoleAdmin    Role = "ADMIN"
)

// Product represents an EcoBazaar catalog product.
type Product struct {
	ID              int64
	Name            string
	Description     string
	Price           float64
	ImageURL        string
	Category        string
	CategoryID      int64
	Seller          string
	SellerID        int64
	StockQuantity   int
	CarbonFootprint float64 // kg CO2e per unit
	Rating          float64
	ReviewsCount    int
	IsActive        bool
	CreatedAt       string
	UpdatedAt       string
}

// productWire mirrors the API payload. Numeric fields use the flexible
// decoders because some backends serialize numbers as strings or null.
type productWire struct {
	ID              flexInt64 `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           flexFloat `json:"price"`
	ImageURL        string    `json:"imageUrl"`
	Category        string    `json:"category"`
	CategoryID      flexInt64 `json:"categoryId"`
	Seller          string    `json:"seller"`
	SellerID        flexInt64 `json:"sellerId"`
	StockQuantity   flexInt   `json:"stockQuantity"`
	CarbonFootprint flexFloat `json:"carbonFootprint"`
	Rating          flexFloat `json:"rating"`
	ReviewsCount    flexInt   `json:"reviewsCount"`
	IsActive        *bool     `json:"isActive"`
	CreatedAt       string    `json:"createdAt"`
	UpdatedAt       string    `json:"updatedAt"`
}

// UnmarshalJSON decodes a product, defaulting malformed numeric fields to
// zero instead of failing the whole listing.
func (p *Product) UnmarshalJSON(data []byte) error {
	var w productWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	p.ID = int64(w.ID)
	p.Name = w.Name
	p.Description = w.Description
	p.Price = float64(w.Price)
	p.ImageURL = w.ImageURL
	p.Category = w.Category
	p.CategoryID = int64(w.CategoryID)
	p.Seller = w.Seller
	p.SellerID = int64(w.SellerID)
	p.StockQuantity = int(w.StockQuantity)
	p.CarbonFootprint = float64(w.CarbonFootprint)
	p.Rating = float64(w.Rating)
	p.ReviewsCount = int(w.ReviewsCount)
	p.IsActive = w.IsActive == nil || *w.IsActive
	p.CreatedAt = w.CreatedAt
	p.UpdatedAt = w.UpdatedAt
	return nil
}

// MarshalJSON emits the wire field names so the client can echo products
// back in seller create/update requests.
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"id":              p.ID,
		"name":            p.Name,
		"description":     p.Description,
		"price":           p.Price,
		"imageUrl":        p.ImageURL,
		"category":        p.Category,
		"categoryId":      p.CategoryID,
		"seller":          p.Seller,
		"sellerId":        p.SellerID,
		"stockQuantity":   p.StockQuantity,
		"carbonFootprint": p.CarbonFootprint,
		"rating":          p.Rating,
		"reviewsCount":    p.ReviewsCount,
		"isActive":        p.IsActive,
		"createdAt":       p.CreatedAt,
		"updatedAt":       p.UpdatedAt,
	})
}

// IsInStock returns true if the product has stock available.
func (p *Product) IsInStock() bool {
	return p.StockQuantity > 0
}

// ProductPage is one page of a paginated product listing.
type ProductPage struct {
	Products    []Product `json:"products"`
	CurrentPage int       `json:"currentPage"`
	TotalItems  int64     `json:"totalItems"`
	TotalPages  int       `json:"totalPages"`
	HasNext     bool      `json:"hasNext"`
	HasPrevious bool      `json:"hasPrevious"`
}

// ============================================
// Cart Wire Types
// ============================================

// CartItem is one line of a remote cart, flattened with a product snapshot.
type CartItem struct {
	ProductID       int64
	Name            string
	Description     string
	Price           float64
	ImageURL        string
	Category        string
	Seller          string
	Rating          float64
	Reviews         int
	CarbonFootprint float64
	Stock           int
	Quantity        int
}

type cartItemWire struct {
	ProductID              flexInt64 `json:"productId"`
	ProductName            string    `json:"productName"`
	ProductDescription     string    `json:"productDescription"`
	ProductPrice           flexFloat `json:"productPrice"`
	ProductImageURL        string    `json:"productImageUrl"`
	ProductCategory        string    `json:"productCategory"`
	ProductSeller          string    `json:"productSeller"`
	ProductRating          flexFloat `json:"productRating"`
	ProductReviews         flexInt   `json:"productReviews"`
	ProductCarbonFootprint flexFloat `json:"productCarbonFootprint"`
	ProductStock           flexInt   `json:"productStock"`
	Quantity               flexInt   `json:"quantity"`
}

// UnmarshalJSON maps the prefixed wire fields onto the flat item,
// defaulting anything malformed to zero.
func (i *CartItem) UnmarshalJSON(data []byte) error {
	var w cartItemWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	i.ProductID = int64(w.ProductID)
	i.Name = w.ProductName
	i.Description = w.ProductDescription
	i.Price = float64(w.ProductPrice)
	i.ImageURL = w.ProductImageURL
	i.Category = strings.ToLower(w.ProductCategory)
	i.Seller = w.ProductSeller
	i.Rating = float64(w.ProductRating)
	i.Reviews = int(w.ProductReviews)
	i.CarbonFootprint = float64(w.ProductCarbonFootprint)
	i.Stock = int(w.ProductStock)
	i.Quantity = int(w.Quantity)
	return nil
}

// Cart is the remote cart resource for a user.
type Cart struct {
	ID     string     `json:"id"`
	UserID int64      `json:"userId"`
	Items  []CartItem `json:"items"`
}

// ============================================
// Auth and Profile Types
// ============================================

// Credentials is the login request payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// Registration is the register request payload.
type Registration struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// Session identifies an authenticated user.
type Session struct {
	Token    string `json:"token"`
	Type     string `json:"type"`
	UserID   int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Message  string `json:"message"`
}

// Profile holds account details beyond the login identity.
type Profile struct {
	ID                         int64  `json:"id"`
	FullName                   string `json:"fullName"`
	Email                      string `json:"email"`
	Phone                      string `json:"phone"`
	Address                    string `json:"address"`
	EcoCommitment              bool   `json:"ecoCommitment"`
	NotificationOrders         bool   `json:"notificationOrders"`
	NotificationPromotions     bool   `json:"notificationPromotions"`
	NotificationSustainability bool   `json:"notificationSustainability"`
	CreatedAt                  string `json:"createdAt"`
}

// ProfileUpdate is the profile update request payload.
type ProfileUpdate struct {
	FullName                   string `json:"fullName"`
	Phone                      string `json:"phone"`
	Address                    string `json:"address"`
	EcoCommitment              bool   `json:"ecoCommitment"`
	NotificationOrders         bool   `json:"notificationOrders"`
	NotificationPromotions     bool   `json:"notificationPromotions"`
	NotificationSustainability bool   `json:"notificationSustainability"`
}

// PasswordUpdate is the password change request payload.
type PasswordUpdate struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ============================================
// Flexible Numeric Decoding
// ============================================

// flexFloat decodes JSON numbers, quoted numbers, and null. Anything it
// cannot parse becomes zero rather than an error.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	*f = flexFloat(coerceFloat(data))
	return nil
}

// flexInt is flexFloat truncated to int.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	*n = flexInt(coerceFloat(data))
	return nil
}

// flexInt64 is flexFloat truncated to int64, for identifiers.
type flexInt64 int64

func (n *flexInt64) UnmarshalJSON(data []byte) error {
	*n = flexInt64(coerceFloat(data))
	return nil
}

func coerceFloat(data []byte) float64 {
	s := string(bytes.TrimSpace(data))
	if s == "" || s == "null" {
		return 0
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
