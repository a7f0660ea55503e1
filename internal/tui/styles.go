// Package tui implements the terminal storefront using Bubble Tea.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Kaushal-00/ecobazaar-terminal-go/internal/catalog"
)

// Color palette - fresh eco greens
var (
	colorLeaf      = lipgloss.Color("#A5D6A7")
	colorForest    = lipgloss.Color("#1B5E20")
	colorMoss      = lipgloss.Color("#66BB6A")
	colorBark      = lipgloss.Color("#6D4C41")
	colorHighlight = lipgloss.Color("#FFB300")
	colorSuccess   = lipgloss.Color("#4CAF50")
	colorWarning   = lipgloss.Color("#FFC107")
	colorError     = lipgloss.Color("#F44336")
	colorMuted     = lipgloss.Color("#9E9E9E")
)

// Styles holds all the lipgloss styles for the TUI.
type Styles struct {
	// App container
	App lipgloss.Style

	// Header
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style

	// List styles
	ListTitle lipgloss.Style

	// Product details
	ProductName        lipgloss.Style
	ProductPrice       lipgloss.Style
	ProductDescription lipgloss.Style
	ProductInStock     lipgloss.Style
	ProductOutOfStock  lipgloss.Style

	// Carbon tier badges
	CarbonLow    lipgloss.Style
	CarbonMedium lipgloss.Style
	CarbonHigh   lipgloss.Style

	// Filter panel
	FilterLabel  lipgloss.Style
	FilterActive lipgloss.Style

	// General
	Subtle    lipgloss.Style
	Highlight lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Box       lipgloss.Style
	HelpBar   lipgloss.Style
}

// DefaultStyles returns the default TUI styles.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorBark).
			MarginBottom(1).
			Padding(0, 1),

		HeaderTitle: lipgloss.NewStyle().
			Foreground(colorMoss).
			Bold(true),

		ListTitle: lipgloss.NewStyle().
			Foreground(colorMoss).
			Bold(true).
			MarginBottom(1),

		ProductName: lipgloss.NewStyle().
			Foreground(colorMoss).
			Bold(true).
			MarginBottom(1),

		ProductPrice: lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true),

		ProductDescription: lipgloss.NewStyle().
			Foreground(colorLeaf).
			MarginTop(1).
			MarginBottom(1),

		ProductInStock: lipgloss.NewStyle().
			Foreground(colorSuccess),

		ProductOutOfStock: lipgloss.NewStyle().
			Foreground(colorError),

		CarbonLow: lipgloss.NewStyle().
			Foreground(colorSuccess),

		CarbonMedium: lipgloss.NewStyle().
			Foreground(colorWarning),

		CarbonHigh: lipgloss.NewStyle().
			Foreground(colorError),

		FilterLabel: lipgloss.NewStyle().
			Foreground(colorMuted),

		FilterActive: lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true),

		Subtle: lipgloss.NewStyle().
			Foreground(colorMuted),

		Highlight: lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(colorSuccess),

		Box: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBark).
			Padding(1, 2),

		HelpBar: lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1),
	}
}

// CarbonBadge renders a tier-colored label for a footprint value.
func (s Styles) CarbonBadge(footprint float64) string {
	switch catalog.TierFor(footprint) {
	case catalog.TierLow:
		return s.CarbonLow.Render("low carbon")
	case catalog.TierMedium:
		return s.CarbonMedium.Render("medium carbon")
	default:
		return s.CarbonHigh.Render("high carbon")
	}
}
