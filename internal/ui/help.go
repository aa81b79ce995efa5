package ui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys KeyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keys KeyMap) *HelpRenderer {
	return &HelpRenderer{keys: keys}
}

// RenderHelpContent generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	noteStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("skycast Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Search box"))
	help.WriteString("\n")
	r.writeBindings(&help, r.keys.Submit, r.keys.Blur, r.keys.ForceQuit)
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Browsing"))
	help.WriteString("\n")
	r.writeBindings(&help, r.keys.Submit, r.keys.Focus, r.keys.Retry, r.keys.Clear)
	help.WriteString("\n")

	help.WriteString(noteStyle.Render("  Locations are city names as OpenWeatherMap knows them, e.g. London or Paris,FR"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	r.writeBindings(&help, r.keys.Help, r.keys.Quit)

	return strings.TrimRight(help.String(), "\n")
}

func (r *HelpRenderer) writeBindings(b *strings.Builder, bindings ...key.Binding) {
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	width := 0
	for _, k := range bindings {
		if w := len(k.Help().Key); w > width {
			width = w
		}
	}
	for _, k := range bindings {
		h := k.Help()
		pad := strings.Repeat(" ", width-len(h.Key)+2)
		fmt.Fprintf(b, "  %s%s%s\n", keyStyle.Render(h.Key), pad, descStyle.Render(h.Desc))
	}
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps() *HelpOps {
	return &HelpOps{}
}

// SetProgram sets the program reference
func (h *HelpOps) SetProgram(p *tea.Program) {
	h.program = p
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Don't write the document back to the terminal on exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	configureVimKeyBindings(&config)

	root.SetConfig(config)

	return root.Run()
}

// vimKeys are added on top of ov's defaults
var vimKeys = map[string][]string{
	"down":   {"j"},
	"up":     {"k"},
	"top":    {"g"},
	"bottom": {"G"},
	"exit":   {"q", "Escape"},
}

// configureVimKeyBindings adds j/k/g/G and q on top of ov's defaults.
// ov replaces a whole action when the config names it, so start from the
// resolved defaults and unbind the keys from whatever action had them.
func configureVimKeyBindings(config *oviewer.Config) {
	keyBind := oviewer.GetKeyBinds(*config)
	for action, keys := range vimKeys {
		for other, bound := range keyBind {
			if other == action {
				continue
			}
			keyBind[other] = slices.DeleteFunc(bound, func(k string) bool {
				return slices.Contains(keys, k)
			})
		}
	}
	for action, keys := range vimKeys {
		keyBind[action] = appendMissing(keyBind[action], keys...)
	}
	config.Keybind = keyBind
}

func appendMissing(list []string, keys ...string) []string {
	for _, k := range keys {
		if !slices.Contains(list, k) {
			list = append(list, k)
		}
	}
	return list
}
