package views

import (
	"github.com/charmbracelet/lipgloss"

	"skycast/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Label         lipgloss.Style
	LabelFloating lipgloss.Style
	Input         lipgloss.Style
	InputFocused  lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	Details       lipgloss.Style
	DetailKey     lipgloss.Style
	Big           lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim:           lipgloss.NewStyle().Faint(true),
		Help:          lipgloss.NewStyle().Faint(true),
		Main:          lipgloss.NewStyle().Padding(1, 2),
		Label:         lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")), // gray-400
		LabelFloating: lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")), // blue-500
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(0, 1),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")), // red-400
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Details: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#1F2937")). // gray-800
			Padding(1, 2).
			Width(cardWidth),
		DetailKey: lipgloss.NewStyle().Bold(true),
		Big:       lipgloss.NewStyle().Bold(true),
	}
}

const cardWidth = 34

// Theme is a card palette. Terminals have no gradients, so the gradient
// start fills the card and the end colours its border.
type Theme struct {
	Start lipgloss.Color
	End   lipgloss.Color
	Text  lipgloss.Color
}

var (
	white = lipgloss.Color("#FFFFFF")
	ink   = lipgloss.Color("#111827")
)

var themes = map[domain.ThemeKey]Theme{
	domain.ThemeClear:        {Start: "#60A5FA", End: "#BFDBFE", Text: white}, // blue-400 → blue-200
	domain.ThemeClouds:       {Start: "#9CA3AF", End: "#4B5563", Text: white}, // gray-400 → gray-600
	domain.ThemeRain:         {Start: "#6B7280", End: "#1E3A8A", Text: white}, // gray-500 → blue-900
	domain.ThemeThunderstorm: {Start: "#1E40AF", End: "#000000", Text: white}, // blue-800 → black
	domain.ThemeSnow:         {Start: "#FFFFFF", End: "#DBEAFE", Text: ink},   // white → blue-100
	domain.ThemeMist:         {Start: "#D1D5DB", End: "#FFFFFF", Text: ink},   // gray-300 → white
	domain.ThemeHaze:         {Start: "#D1D5DB", End: "#9CA3AF", Text: ink},   // gray-300 → gray-400
	domain.ThemeDefault:      {Start: "#374151", End: "#111827", Text: white}, // gray-700 → gray-900
}

// ThemeFor returns the palette for key, falling back to the default theme
func ThemeFor(key domain.ThemeKey) Theme {
	if t, ok := themes[key]; ok {
		return t
	}
	return themes[domain.ThemeDefault]
}

// Card returns the summary card style for the theme
func (t Theme) Card() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(t.Start).
		Foreground(t.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.End).
		Padding(1, 2).
		Width(cardWidth)
}
