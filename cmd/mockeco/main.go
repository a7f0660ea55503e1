// Package main implements a mock EcoBazaar REST API server for local development.
package main

import (
	"embed"
	"encoding/json"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kaushal-00/ecobazaar-terminal-go/internal/eco"
)

//go:embed testdata/*
var testdataFS embed.FS

const tokenLifetime = 24 * time.Hour

type user struct {
	ID            int64
	FullName      string
	Email         string
	Phone         string
	Address       string
	PasswordHash  []byte
	Role          eco.Role
	EcoCommitment bool
	NotifyOrders  bool
	NotifyPromos  bool
	NotifySustain bool
	CreatedAt     time.Time
}

type cartLine struct {
	ProductID int64
	Quantity  int
}

// store is the in-memory backing state, guarded by a single mutex.
type store struct {
	mu         sync.Mutex
	products   []eco.Product
	users      map[int64]*user
	emailIndex map[string]int64
	carts      map[int64][]cartLine
	cartIDs    map[int64]string
	nextUserID int64
	nextProdID int64
}

type server struct {
	store  *store
	jwtKey []byte
}

func main() {
	addr := getEnv("MOCKECO_ADDR", ":8080")
	jwtSecret := getEnv("MOCKECO_JWT_SECRET", "mockeco-dev-secret")

	st, err := loadStore()
	if err != nil {
		log.Fatal("Failed to load fixtures", "error", err)
	}
	srv := &server{store: st, jwtKey: []byte(jwtSecret)}

	log.Info("Mock EcoBazaar server listening", "addr", addr)
	log.Info("Fixtures loaded", "products", len(st.products), "users", len(st.users))
	if err := http.ListenAndServe(addr, srv.routes()); err != nil {
		log.Fatal("Server error", "error", err)
	}
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	mux.HandleFunc("GET /api/products", s.handleListProducts)
	mux.HandleFunc("GET /api/products/{id}", s.handleGetProduct)
	mux.HandleFunc("GET /api/products/seller/{sellerId}", s.handleSellerProducts)
	mux.HandleFunc("POST /api/products/seller/{sellerId}", s.handleCreateProduct)
	mux.HandleFunc("PUT /api/products/{id}/seller/{sellerId}", s.handleUpdateProduct)
	mux.HandleFunc("DELETE /api/products/{id}/seller/{sellerId}", s.handleDeleteProduct)

	mux.HandleFunc("GET /api/cart/user/{userId}", s.handleGetCart)
	mux.HandleFunc("DELETE /api/cart/user/{userId}", s.handleClearCart)
	mux.HandleFunc("POST /api/cart/user/{userId}/items", s.handleAddCartItem)
	mux.HandleFunc("PUT /api/cart/user/{userId}/items/{productId}", s.handleUpdateCartItem)
	mux.HandleFunc("DELETE /api/cart/user/{userId}/items/{productId}", s.handleRemoveCartItem)

	mux.HandleFunc("GET /api/profile/user/{userId}", s.handleGetProfile)
	mux.HandleFunc("PUT /api/profile/user/{userId}", s.handleUpdateProfile)
	mux.HandleFunc("PUT /api/profile/user/{userId}/password", s.handleUpdatePassword)
	return mux
}

func loadStore() (*store, error) {
	data, err := testdataFS.ReadFile("testdata/products.json")
	if err != nil {
		return nil, err
	}
	var products []eco.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, err
	}

	st := &store{
		products:   products,
		users:      make(map[int64]*user),
		emailIndex: make(map[string]int64),
		carts:      make(map[int64][]cartLine),
		cartIDs:    make(map[int64]string),
		nextUserID: 1,
		nextProdID: 1,
	}
	for _, p := range products {
		if p.ID >= st.nextProdID {
			st.nextProdID = p.ID + 1
		}
	}

	// Seed one account per role, all with password "password123".
	seeds := []struct {
		name  string
		email string
		role  eco.Role
	}{
		{"Casey Customer", "customer@ecobazaar.dev", eco.RoleCustomer},
		{"Sam Seller", "seller@ecobazaar.dev", eco.RoleSeller},
		{"Avery Admin", "admin@ecobazaar.dev", eco.RoleAdmin},
	}
	for _, seed := range seeds {
		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		id := st.nextUserID
		st.nextUserID++
		st.users[id] = &user{
			ID:           id,
			FullName:     seed.name,
			Email:        seed.email,
			PasswordHash: hash,
			Role:         seed.role,
			NotifyOrders: true,
			CreatedAt:    time.Now(),
		}
		st.emailIndex[seed.email] = id
	}

	return st, nil
}

// ============================================
// Auth
// ============================================

func (s *server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req eco.Registration
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		writeError(w, http.StatusBadRequest, "fullName, email and password are required")
		return
	}
	if req.Role == "" {
		req.Role = eco.RoleCustomer
	}
	if req.Role != eco.RoleCustomer && req.Role != eco.RoleSeller {
		writeError(w, http.StatusBadRequest, "role must be CUSTOMER or SELLER")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not hash password")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, exists := s.store.emailIndex[req.Email]; exists {
		writeError(w, http.StatusConflict, "email already registered")
		return
	}

	id := s.store.nextUserID
	s.store.nextUserID++
	s.store.users[id] = &user{
		ID:           id,
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		PasswordHash: hash,
		Role:         req.Role,
		NotifyOrders: true,
		CreatedAt:    time.Now(),
	}
	s.store.emailIndex[req.Email] = id

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":      id,
		"message": "registration successful",
	})
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req eco.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.store.mu.Lock()
	id, ok := s.store.emailIndex[strings.ToLower(strings.TrimSpace(req.Email))]
	var u *user
	if ok {
		u = s.store.users[id]
	}
	s.store.mu.Unlock()

	if u == nil || bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if req.Role != "" && req.Role != u.Role {
		writeError(w, http.StatusUnauthorized, "account does not have that role")
		return
	}

	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(u.ID, 10),
		"role": string(u.Role),
		"jti":  uuid.NewString(),
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(tokenLifetime).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtKey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not sign token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token":    token,
		"type":     "Bearer",
		"id":       u.ID,
		"fullName": u.FullName,
		"email":    u.Email,
		"role":     u.Role,
		"message":  "login successful",
	})
}

// authenticate validates the bearer token and returns the caller. The
// path user must match the token subject unless the caller is an admin.
func (s *server) authenticate(w http.ResponseWriter, r *http.Request, pathUserID int64) *user {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return nil
	}
	raw := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtKey, nil
	})
	if err != nil || !token.Valid {
		writeError(w, http.StatusUnauthorized, "invalid or expired token")
		return nil
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid token claims")
		return nil
	}
	sub, _ := claims["sub"].(string)
	callerID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid token subject")
		return nil
	}

	s.store.mu.Lock()
	caller := s.store.users[callerID]
	s.store.mu.Unlock()
	if caller == nil {
		writeError(w, http.StatusUnauthorized, "unknown user")
		return nil
	}
	if pathUserID != 0 && callerID != pathUserID && caller.Role != eco.RoleAdmin {
		writeError(w, http.StatusForbidden, "not your resource")
		return nil
	}
	return caller
}

// ============================================
// Products
// ============================================

func (s *server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(query.Get("size"))
	if size < 1 {
		size = 10
	}

	s.store.mu.Lock()
	filtered := filterProducts(s.store.products, query.Get("search"), query.Get("categoryId"))
	s.store.mu.Unlock()

	sortProducts(filtered, query.Get("sortBy"), query.Get("sortDir"))

	total := len(filtered)
	totalPages := (total + size - 1) / size
	start := (page - 1) * size
	end := start + size
	if start >= total {
		filtered = []eco.Product{}
	} else {
		if end > total {
			end = total
		}
		filtered = filtered[start:end]
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"products":    filtered,
		"currentPage": page,
		"totalItems":  total,
		"totalPages":  totalPages,
		"hasNext":     page < totalPages,
		"hasPrevious": page > 1,
	})
}

func (s *server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for _, p := range s.store.products {
		if p.ID == id {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeError(w, http.StatusNotFound, "product not found")
}

func (s *server) handleSellerProducts(w http.ResponseWriter, r *http.Request) {
	sellerID, err := strconv.ParseInt(r.PathValue("sellerId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid seller id")
		return
	}
	if s.authenticate(w, r, sellerID) == nil {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	result := []eco.Product{}
	for _, p := range s.store.products {
		if p.SellerID == sellerID {
			result = append(result, p)
		}
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	sellerID, err := strconv.ParseInt(r.PathValue("sellerId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid seller id")
		return
	}
	caller := s.authenticate(w, r, sellerID)
	if caller == nil {
		return
	}
	if caller.Role != eco.RoleSeller && caller.Role != eco.RoleAdmin {
		writeError(w, http.StatusForbidden, "only sellers can list products")
		return
	}

	var p eco.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if p.Name == "" {
		writeError(w, http.StatusBadRequest, "product name is required")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	p.ID = s.store.nextProdID
	s.store.nextProdID++
	p.SellerID = sellerID
	p.Seller = caller.FullName
	p.CreatedAt = time.Now().Format(time.RFC3339)
	p.UpdatedAt = p.CreatedAt
	s.store.products = append(s.store.products, p)

	writeJSON(w, http.StatusCreated, p)
}

func (s *server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err1 := strconv.ParseInt(r.PathValue("id"), 10, 64)
	sellerID, err2 := strconv.ParseInt(r.PathValue("sellerId"), 10, 64)
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	caller := s.authenticate(w, r, sellerID)
	if caller == nil {
		return
	}

	var update eco.Product
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i, p := range s.store.products {
		if p.ID != id {
			continue
		}
		if p.SellerID != sellerID && caller.Role != eco.RoleAdmin {
			writeError(w, http.StatusForbidden, "not your product")
			return
		}
		update.ID = p.ID
		update.SellerID = p.SellerID
		update.Seller = p.Seller
		update.CreatedAt = p.CreatedAt
		update.UpdatedAt = time.Now().Format(time.RFC3339)
		s.store.products[i] = update
		writeJSON(w, http.StatusOK, update)
		return
	}
	writeError(w, http.StatusNotFound, "product not found")
}

func (s *server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err1 := strconv.ParseInt(r.PathValue("id"), 10, 64)
	sellerID, err2 := strconv.ParseInt(r.PathValue("sellerId"), 10, 64)
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	caller := s.authenticate(w, r, sellerID)
	if caller == nil {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i, p := range s.store.products {
		if p.ID != id {
			continue
		}
		if p.SellerID != sellerID && caller.Role != eco.RoleAdmin {
			writeError(w, http.StatusForbidden, "not your product")
			return
		}
		s.store.products = append(s.store.products[:i], s.store.products[i+1:]...)
		writeJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
		return
	}
	writeError(w, http.StatusNotFound, "product not found")
}

func filterProducts(products []eco.Product, search, categoryID string) []eco.Product {
	search = strings.ToLower(strings.TrimSpace(search))
	result := make([]eco.Product, 0, len(products))
	for _, p := range products {
		if !p.IsActive {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) &&
			!strings.Contains(strings.ToLower(p.Category), search) {
			continue
		}
		if categoryID != "" && strconv.FormatInt(p.CategoryID, 10) != categoryID {
			continue
		}
		result = append(result, p)
	}
	return result
}

func sortProducts(products []eco.Product, sortBy, sortDir string) {
	desc := strings.EqualFold(sortDir, "desc")
	less := func(a, b eco.Product) bool { return a.ID < b.ID }
	switch sortBy {
	case "price":
		less = func(a, b eco.Product) bool { return a.Price < b.Price }
	case "carbonFootprint":
		less = func(a, b eco.Product) bool { return a.CarbonFootprint < b.CarbonFootprint }
	case "rating":
		less = func(a, b eco.Product) bool { return a.Rating < b.Rating }
	case "name":
		less = func(a, b eco.Product) bool { return a.Name < b.Name }
	case "createdAt":
		less = func(a, b eco.Product) bool { return a.CreatedAt < b.CreatedAt }
	}
	sort.SliceStable(products, func(i, j int) bool {
		if desc {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}

// ============================================
// Cart
// ============================================

func (s *server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.cartUser(w, r)
	if !ok {
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	writeJSON(w, http.StatusOK, s.cartResponseLocked(userID))
}

func (s *server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.cartUser(w, r)
	if !ok {
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	s.store.carts[userID] = nil
	writeJSON(w, http.StatusOK, s.cartResponseLocked(userID))
}

func (s *server) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.cartUser(w, r)
	if !ok {
		return
	}

	var req struct {
		ProductID int64 `json:"productId"`
		Quantity  int   `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	product := s.findProductLocked(req.ProductID)
	if product == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if product.StockQuantity < req.Quantity {
		writeError(w, http.StatusConflict, "insufficient stock")
		return
	}

	lines := s.store.carts[userID]
	found := false
	for i := range lines {
		if lines[i].ProductID == req.ProductID {
			lines[i].Quantity += req.Quantity
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, cartLine{ProductID: req.ProductID, Quantity: req.Quantity})
	}
	s.store.carts[userID] = lines

	writeJSON(w, http.StatusOK, s.cartResponseLocked(userID))
}

func (s *server) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.cartUser(w, r)
	if !ok {
		return
	}
	productID, err := strconv.ParseInt(r.PathValue("productId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	quantity, err := strconv.Atoi(r.URL.Query().Get("quantity"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "quantity query parameter is required")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	lines := s.store.carts[userID]
	for i := range lines {
		if lines[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			lines = append(lines[:i], lines[i+1:]...)
		} else {
			lines[i].Quantity = quantity
		}
		s.store.carts[userID] = lines
		writeJSON(w, http.StatusOK, s.cartResponseLocked(userID))
		return
	}
	writeError(w, http.StatusNotFound, "item not in cart")
}

func (s *server) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.cartUser(w, r)
	if !ok {
		return
	}
	productID, err := strconv.ParseInt(r.PathValue("productId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	lines := s.store.carts[userID]
	for i := range lines {
		if lines[i].ProductID == productID {
			s.store.carts[userID] = append(lines[:i], lines[i+1:]...)
			writeJSON(w, http.StatusOK, s.cartResponseLocked(userID))
			return
		}
	}
	writeError(w, http.StatusNotFound, "item not in cart")
}

func (s *server) cartUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(r.PathValue("userId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return 0, false
	}
	if s.authenticate(w, r, userID) == nil {
		return 0, false
	}
	return userID, true
}

func (s *server) findProductLocked(id int64) *eco.Product {
	for i := range s.store.products {
		if s.store.products[i].ID == id {
			return &s.store.products[i]
		}
	}
	return nil
}

// cartResponseLocked renders a cart in the wire format, with the product
// snapshot denormalized onto each line. Caller holds the store mutex.
func (s *server) cartResponseLocked(userID int64) map[string]interface{} {
	if _, ok := s.store.cartIDs[userID]; !ok {
		s.store.cartIDs[userID] = uuid.NewString()
	}

	items := []map[string]interface{}{}
	var subtotal, carbon float64
	totalItems := 0
	for _, line := range s.store.carts[userID] {
		p := s.findProductLocked(line.ProductID)
		if p == nil {
			continue
		}
		lineTotal := p.Price * float64(line.Quantity)
		lineCarbon := p.CarbonFootprint * float64(line.Quantity)
		subtotal += lineTotal
		carbon += lineCarbon
		totalItems += line.Quantity
		items = append(items, map[string]interface{}{
			"productId":              p.ID,
			"productName":            p.Name,
			"productDescription":     p.Description,
			"productPrice":           p.Price,
			"productImageUrl":        p.ImageURL,
			"productCategory":        p.Category,
			"productSeller":          p.Seller,
			"productRating":          p.Rating,
			"productReviews":         p.ReviewsCount,
			"productCarbonFootprint": p.CarbonFootprint,
			"productStock":           p.StockQuantity,
			"quantity":               line.Quantity,
			"lineTotal":              lineTotal,
			"lineCarbonFootprint":    lineCarbon,
		})
	}

	return map[string]interface{}{
		"id":                   s.store.cartIDs[userID],
		"userId":               userID,
		"items":                items,
		"subtotal":             subtotal,
		"totalCarbonFootprint": carbon,
		"totalItems":           totalItems,
	}
}

// ============================================
// Profile
// ============================================

func (s *server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("userId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if s.authenticate(w, r, userID) == nil {
		return
	}

	s.store.mu.Lock()
	u := s.store.users[userID]
	s.store.mu.Unlock()
	if u == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, profileResponse(u))
}

func (s *server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("userId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if s.authenticate(w, r, userID) == nil {
		return
	}

	var req eco.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.FullName) == "" {
		writeError(w, http.StatusBadRequest, "fullName is required")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	u := s.store.users[userID]
	if u == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	u.FullName = req.FullName
	u.Phone = req.Phone
	u.Address = req.Address
	u.EcoCommitment = req.EcoCommitment
	u.NotifyOrders = req.NotificationOrders
	u.NotifyPromos = req.NotificationPromotions
	u.NotifySustain = req.NotificationSustainability
	writeJSON(w, http.StatusOK, profileResponse(u))
}

func (s *server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("userId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if s.authenticate(w, r, userID) == nil {
		return
	}

	var req eco.PasswordUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.NewPassword) < 6 {
		writeError(w, http.StatusBadRequest, "new password must be at least 6 characters")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	u := s.store.users[userID]
	if u == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(req.CurrentPassword)) != nil {
		writeError(w, http.StatusBadRequest, "current password is incorrect")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not hash password")
		return
	}
	u.PasswordHash = hash
	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

func profileResponse(u *user) map[string]interface{} {
	return map[string]interface{}{
		"id":                         u.ID,
		"fullName":                   u.FullName,
		"email":                      u.Email,
		"phone":                      u.Phone,
		"address":                    u.Address,
		"ecoCommitment":              u.EcoCommitment,
		"notificationOrders":         u.NotifyOrders,
		"notificationPromotions":     u.NotifyPromos,
		"notificationSustainability": u.NotifySustain,
		"createdAt":                  u.CreatedAt.Format(time.RFC3339),
	}
}

// ============================================
// Helpers
// ============================================

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
