package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"skycast/internal/ui/input/types"
)

type BrowsingMode struct{}

func NewBrowsingMode() *BrowsingMode {
	return &BrowsingMode{}
}

func (m *BrowsingMode) Name() string {
	return "browsing"
}

func (m *BrowsingMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *BrowsingMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *BrowsingMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{}}, true
	case tea.KeyEnter:
		return []types.Action{types.SubmitSearchAction{}}, true
	case tea.KeyTab:
		return []types.Action{types.ChangeModeAction{Mode: types.ModeEditing}}, true
	}

	switch msg.String() {
	case "q":
		return []types.Action{types.QuitAction{}}, true
	case "/", "i", "s":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeEditing}}, true
	case "?":
		return []types.Action{types.ShowHelpAction{}}, true
	case "r":
		// search the current text again; a fetch already in flight is left alone
		if ctx.SearchText() != "" && !ctx.Loading() {
			return []types.Action{types.SubmitSearchAction{}}, true
		}
		return nil, true
	case "c":
		if ctx.SearchText() != "" {
			return []types.Action{
				types.ClearTextAction{},
				types.ChangeModeAction{Mode: types.ModeEditing},
			}, true
		}
		return []types.Action{types.ChangeModeAction{Mode: types.ModeEditing}}, true
	}

	return nil, false
}
