package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"skycast/internal/ui/input/modes"
	"skycast/internal/ui/input/types"
)

// SearchPlaceholder is shown in the empty search box
const SearchPlaceholder = "Search by Location"

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model
}

// New creates a handler. With startEditing the search box starts focused.
func New(startEditing bool) *Handler {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = SearchPlaceholder
	ti.CharLimit = 120

	h := &Handler{
		currentMode: types.ModeBrowsing,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeBrowsing] = modes.NewBrowsingMode()
	h.modes[types.ModeEditing] = modes.NewEditingMode(h.textInput)

	if startEditing {
		h.currentMode = types.ModeEditing
		h.textInput.Focus()
	}

	return h
}

// HandleKey runs msg through the current mode and returns the resulting actions
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	if !consumed && h.currentMode != types.ModeEditing {
		return nil, nil
	}

	var cmd tea.Cmd
	var allActions []types.Action

	for _, action := range actions {
		switch a := action.(type) {
		case types.ChangeModeAction:
			if a.Mode == h.currentMode {
				continue
			}
			allActions = append(allActions, h.modes[h.currentMode].Exit(ctx)...)
			h.currentMode = a.Mode
			allActions = append(allActions, h.modes[h.currentMode].Enter(ctx)...)
			if h.currentMode == types.ModeEditing {
				cmd = textinput.Blink
			}
		case types.ClearTextAction:
			h.textInput.Reset()
			allActions = append(allActions, types.UpdateTextAction{Text: ""})
		default:
			allActions = append(allActions, action)
		}
	}

	if h.currentMode == types.ModeEditing && !consumed {
		before := h.textInput.Value()
		var textCmd tea.Cmd
		*h.textInput, textCmd = h.textInput.Update(msg)
		cmd = textCmd
		if after := h.textInput.Value(); after != before {
			allActions = append(allActions, types.UpdateTextAction{Text: after})
		}
	}

	return allActions, cmd
}

func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

// TextInput returns the shared search box
func (h *Handler) TextInput() *textinput.Model {
	return h.textInput
}

// Update handles non-keyboard messages for the text input (cursor blink)
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.currentMode != types.ModeEditing {
		return nil
	}
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	return cmd
}

// Init returns the initial command for the handler
func (h *Handler) Init() tea.Cmd {
	if h.currentMode == types.ModeEditing {
		return textinput.Blink
	}
	return nil
}

// SetWidth sets the visible width of the search box
func (h *Handler) SetWidth(width int) {
	if width < 10 {
		width = 10
	}
	h.textInput.Width = width
}
