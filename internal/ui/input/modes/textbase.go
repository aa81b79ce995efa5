package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"skycast/internal/ui/input/types"
)

// EditingMode routes keys to the search box. Enter submits, Esc/Tab leave it.
type EditingMode struct {
	textInput *textinput.Model
}

func NewEditingMode(ti *textinput.Model) *EditingMode {
	return &EditingMode{textInput: ti}
}

func (m *EditingMode) Name() string {
	return "editing"
}

func (m *EditingMode) Enter(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Focus()
	}
	return []types.Action{types.FocusChangedAction{Focused: true}}
}

func (m *EditingMode) Exit(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Blur()
	}
	return []types.Action{types.FocusChangedAction{Focused: false}}
}

func (m *EditingMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{}}, true
	case "esc", "tab":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeBrowsing}}, true
	case "enter":
		return []types.Action{types.SubmitSearchAction{}}, true
	default:
		// Returning false lets the handler feed the key to the text input
		return nil, false
	}
}
