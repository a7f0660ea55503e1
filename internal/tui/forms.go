package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/Kaushal-00/ecobazaar-terminal-go/internal/catalog"
	"github.com/Kaushal-00/ecobazaar-terminal-go/internal/eco"
)

// ============================================
// Login / Register
// ============================================

type loginData struct {
	email    string
	password string
	role     eco.Role
}

func (m *Model) initLoginForm() {
	m.loginData = &loginData{role: eco.RoleCustomer}
	m.loginForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.loginData.email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.loginData.password).
				Validate(required("password")),
			huh.NewSelect[eco.Role]().
				Title("Login as").
				Options(
					huh.NewOption("Customer", eco.RoleCustomer),
					huh.NewOption("Seller", eco.RoleSeller),
					huh.NewOption("Admin", eco.RoleAdmin),
				).
				Value(&m.loginData.role),
		),
	).WithShowHelp(false)
	m.loginForm.Init()
}

type registerData struct {
	fullName string
	email    string
	phone    string
	address  string
	password string
	role     eco.Role
}

func (m *Model) initRegisterForm() {
	m.registerData = &registerData{role: eco.RoleCustomer}
	m.registerForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Full name").
				Value(&m.registerData.fullName).
				Validate(required("full name")),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.registerData.email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Phone").
				Value(&m.registerData.phone),
			huh.NewInput().
				Title("Address").
				Value(&m.registerData.address),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.registerData.password).
				Validate(validatePassword),
			huh.NewSelect[eco.Role]().
				Title("Account type").
				Options(
					huh.NewOption("Customer", eco.RoleCustomer),
					huh.NewOption("Seller", eco.RoleSeller),
				).
				Value(&m.registerData.role),
		),
	).WithShowHelp(false)
	m.registerForm.Init()
}

// ============================================
// Profile
// ============================================

type profileData struct {
	fullName       string
	phone          string
	address        string
	ecoCommitment  bool
	orders         bool
	promotions     bool
	sustainability bool
}

func (d *profileData) toUpdate() eco.ProfileUpdate {
	return eco.ProfileUpdate{
		FullName:                   d.fullName,
		Phone:                      d.phone,
		Address:                    d.address,
		EcoCommitment:              d.ecoCommitment,
		NotificationOrders:         d.orders,
		NotificationPromotions:     d.promotions,
		NotificationSustainability: d.sustainability,
	}
}

func (m *Model) initProfileForm() {
	m.profileData = &profileData{
		fullName:       m.profile.FullName,
		phone:          m.profile.Phone,
		address:        m.profile.Address,
		ecoCommitment:  m.profile.EcoCommitment,
		orders:         m.profile.NotificationOrders,
		promotions:     m.profile.NotificationPromotions,
		sustainability: m.profile.NotificationSustainability,
	}
	m.profileForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Full name").
				Value(&m.profileData.fullName).
				Validate(required("full name")),
			huh.NewInput().
				Title("Phone").
				Value(&m.profileData.phone),
			huh.NewInput().
				Title("Address").
				Value(&m.profileData.address),
			huh.NewConfirm().
				Title("Eco commitment pledge").
				Value(&m.profileData.ecoCommitment),
			huh.NewConfirm().
				Title("Order notifications").
				Value(&m.profileData.orders),
			huh.NewConfirm().
				Title("Promotion emails").
				Value(&m.profileData.promotions),
			huh.NewConfirm().
				Title("Sustainability updates").
				Value(&m.profileData.sustainability),
		),
	).WithShowHelp(false)
	m.profileForm.Init()
}

type passwordData struct {
	current string
	next    string
	confirm string
}

func (m *Model) initPasswordForm() {
	m.passwordData = &passwordData{}
	m.passwordForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Current password").
				EchoMode(huh.EchoModePassword).
				Value(&m.passwordData.current).
				Validate(required("current password")),
			huh.NewInput().
				Title("New password").
				EchoMode(huh.EchoModePassword).
				Value(&m.passwordData.next).
				Validate(validatePassword),
			huh.NewInput().
				Title("Confirm new password").
				EchoMode(huh.EchoModePassword).
				Value(&m.passwordData.confirm).
				Validate(func(s string) error {
					if s != m.passwordData.next {
						return errors.New("passwords do not match")
					}
					return nil
				}),
		),
	).WithShowHelp(false)
	m.passwordForm.Init()
}

// ============================================
// Seller Product Form
// ============================================

type productFormData struct {
	name            string
	description     string
	category        string
	price           string
	stock           string
	carbonFootprint string
	imageURL        string
	active          bool
}

// toProduct parses the free-text numeric fields. Validation on the
// inputs keeps bad values out, but the parse still guards against them.
func (d *productFormData) toProduct() (eco.Product, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(d.price), 64)
	if err != nil || price < 0 {
		return eco.Product{}, fmt.Errorf("invalid price %q", d.price)
	}
	stock, err := strconv.Atoi(strings.TrimSpace(d.stock))
	if err != nil || stock < 0 {
		return eco.Product{}, fmt.Errorf("invalid stock quantity %q", d.stock)
	}
	carbon, err := strconv.ParseFloat(strings.TrimSpace(d.carbonFootprint), 64)
	if err != nil || carbon < 0 {
		return eco.Product{}, fmt.Errorf("invalid carbon footprint %q", d.carbonFootprint)
	}
	return eco.Product{
		Name:            strings.TrimSpace(d.name),
		Description:     strings.TrimSpace(d.description),
		Category:        d.category,
		Price:           price,
		StockQuantity:   stock,
		CarbonFootprint: carbon,
		ImageURL:        strings.TrimSpace(d.imageURL),
		IsActive:        d.active,
	}, nil
}

func (m *Model) initProductForm(existing *eco.Product) {
	m.productFormData = &productFormData{
		category: catalog.Categories[0],
		active:   true,
	}
	if existing != nil {
		m.productFormData = &productFormData{
			name:            existing.Name,
			description:     existing.Description,
			category:        existing.Category,
			price:           strconv.FormatFloat(existing.Price, 'f', 2, 64),
			stock:           strconv.Itoa(existing.StockQuantity),
			carbonFootprint: strconv.FormatFloat(existing.CarbonFootprint, 'f', -1, 64),
			imageURL:        existing.ImageURL,
			active:          existing.IsActive,
		}
	}

	categoryOptions := make([]huh.Option[string], len(catalog.Categories))
	for i, c := range catalog.Categories {
		categoryOptions[i] = huh.NewOption(c, c)
	}

	m.productForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&m.productFormData.name).
				Validate(required("name")),
			huh.NewText().
				Title("Description").
				Value(&m.productFormData.description),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions...).
				Value(&m.productFormData.category),
			huh.NewInput().
				Title("Price ($)").
				Value(&m.productFormData.price).
				Validate(validateFloat("price")),
			huh.NewInput().
				Title("Stock quantity").
				Value(&m.productFormData.stock).
				Validate(validateInt("stock quantity")),
			huh.NewInput().
				Title("Carbon footprint (kg CO2e)").
				Value(&m.productFormData.carbonFootprint).
				Validate(validateFloat("carbon footprint")),
			huh.NewInput().
				Title("Image URL").
				Value(&m.productFormData.imageURL),
			huh.NewConfirm().
				Title("Listed in storefront").
				Value(&m.productFormData.active),
		),
	).WithShowHelp(false)
	m.productForm.Init()
}

// ============================================
// Validators
// ============================================

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("email is required")
	}
	at := strings.Index(s, "@")
	if at <= 0 || !strings.Contains(s[at:], ".") {
		return errors.New("enter a valid email address")
	}
	return nil
}

func validatePassword(s string) error {
	if len(s) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	return nil
}

func validateFloat(field string) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || v < 0 {
			return fmt.Errorf("enter a non-negative %s", field)
		}
		return nil
	}
}

func validateInt(field string) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || v < 0 {
			return fmt.Errorf("enter a non-negative %s", field)
		}
		return nil
	}
}
