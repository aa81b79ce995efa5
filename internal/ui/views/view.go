package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"skycast/internal/domain"
	"skycast/internal/ui/state"
)

// Messages shown for the non-data screens
const (
	LoadingText  = "Loading..."
	NoResultText = "✗ No result found!"
	IdleText     = "Type a city and press enter"
	SearchLabel  = "Search by Location"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Screen state.Screen

	SearchInput string // rendered text input
	SearchText  string // raw text, floats the label when non-empty
	Focused     bool

	Spinner     string
	ShowIconURL bool

	HelpModel help.Model
	Keys      help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Render produces the complete view
func (r *Renderer) Render(vs ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(vs))
	content.WriteString("\n")
	content.WriteString(r.renderSearch(vs))
	content.WriteString("\n\n")

	switch vs.Screen.Kind {
	case state.ScreenLoading:
		content.WriteString(r.styles.StatusLoading.Render(strings.TrimSpace(vs.Spinner + " " + LoadingText)))
	case state.ScreenError:
		content.WriteString(r.styles.StatusError.Render(NoResultText))
	case state.ScreenLoaded:
		if vs.Screen.Snapshot != nil {
			content.WriteString(r.renderPanels(*vs.Screen.Snapshot, vs))
		}
	case state.ScreenIdle:
		content.WriteString(r.styles.Dim.Render(IdleText))
	}

	helpText := ""
	if vs.Keys != nil {
		helpText = r.styles.Help.Render(vs.HelpModel.View(vs.Keys))
	}

	if helpText != "" {
		currentLines := strings.Count(content.String(), "\n") + 1

		// Account for container padding (1 top, 1 bottom)
		availableLines := vs.Height - 2
		if availableLines <= 0 {
			availableLines = 22
		}

		if paddingNeeded := availableLines - currentLines - 1; paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		} else {
			content.WriteString("\n")
		}
		content.WriteString(helpText)
	}

	return r.styles.Main.Render(content.String())
}

func (r *Renderer) renderTitle(vs ViewState) string {
	logo := r.styles.Title.Render("skycast")
	if vs.Screen.Kind != state.ScreenLoading || vs.Spinner == "" {
		return logo
	}

	right := r.styles.Dim.Render(vs.Spinner + " fetching")

	termWidth := vs.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	padding := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, logo, strings.Repeat(" ", padding), right)
}

func (r *Renderer) renderSearch(vs ViewState) string {
	var b strings.Builder

	// floating label: raised and highlighted while focused or holding text
	if vs.Focused || vs.SearchText != "" {
		b.WriteString(r.styles.LabelFloating.Render(SearchLabel))
	} else {
		b.WriteString(r.styles.Label.Render(SearchLabel))
	}
	b.WriteString("\n")

	box := r.styles.Input
	if vs.Focused {
		box = r.styles.InputFocused
	}
	b.WriteString(box.Width(cardWidth).Render(vs.SearchInput))

	if vs.Screen.Kind == state.ScreenEmpty {
		b.WriteString("\n")
		b.WriteString(r.styles.StatusError.Render(vs.Screen.Message))
	}
	return b.String()
}

func (r *Renderer) renderPanels(snap domain.WeatherSnapshot, vs ViewState) string {
	summary := r.RenderSummary(snap, vs.ShowIconURL)
	details := r.RenderDetails(snap)

	// side by side when the terminal is wide enough
	if vs.Width == 0 || vs.Width-4 >= lipgloss.Width(summary)+lipgloss.Width(details)+2 {
		return lipgloss.JoinHorizontal(lipgloss.Top, summary, "  ", details)
	}
	return lipgloss.JoinVertical(lipgloss.Left, summary, details)
}

// RenderSummary renders the themed summary card
func (r *Renderer) RenderSummary(snap domain.WeatherSnapshot, showIconURL bool) string {
	theme := ThemeFor(snap.ThemeKey)
	inner := cardWidth - 4
	big := r.styles.Big.Background(theme.Start).Foreground(theme.Text)

	lines := []string{
		lipgloss.PlaceHorizontal(inner, lipgloss.Right, snap.LocalTime,
			lipgloss.WithWhitespaceBackground(theme.Start)),
		big.Render(snap.FetchedAt.Format("Monday")),
		snap.FetchedAt.Format("January 2, 2006"),
		"",
		fmt.Sprintf("%s  %s", domain.IconGlyph(snap.IconCode), big.Render(FormatTemp(snap.TemperatureC))),
		"RealFeel " + FormatFeelsLike(snap.FeelsLikeC),
		domain.Capitalize(snap.Description),
	}
	if showIconURL && snap.IconRef != "" {
		lines = append(lines, "", lipgloss.NewStyle().Faint(true).Background(theme.Start).Render(snap.IconRef))
	}

	return theme.Card().Render(strings.Join(lines, "\n"))
}

// RenderDetails renders the NAME / TEMP / HUMIDITY / WIND SPEED card
func (r *Renderer) RenderDetails(snap domain.WeatherSnapshot) string {
	row := func(k, v string) string {
		return r.styles.DetailKey.Render(k+":") + " " + v
	}
	lines := []string{
		row("NAME", snap.CountryCode),
		row("TEMP", fmt.Sprintf("%d °C", snap.TemperatureC)),
		row("HUMIDITY", fmt.Sprintf("%d%%", snap.HumidityPct)),
		row("WIND SPEED", strconv.FormatFloat(snap.WindSpeed, 'f', -1, 64)),
	}
	return r.styles.Details.Render(strings.Join(lines, "\n"))
}

// FormatTemp renders a whole-degree Celsius temperature
func FormatTemp(c int) string {
	return fmt.Sprintf("%d°C", c)
}

// FormatFeelsLike renders the provider's feels-like value as given
func FormatFeelsLike(c float64) string {
	return strconv.FormatFloat(c, 'f', -1, 64) + "°"
}
