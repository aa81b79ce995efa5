package types

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// FocusChangedAction reports the search box gaining or losing focus
type FocusChangedAction struct {
	Focused bool
}

func (a FocusChangedAction) Type() string { return "focus_changed" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type ClearTextAction struct{}

func (a ClearTextAction) Type() string { return "clear_text" }

// Search actions
type SubmitSearchAction struct{}

func (a SubmitSearchAction) Type() string { return "submit_search" }

// Command actions
type ShowHelpAction struct{}

func (a ShowHelpAction) Type() string { return "show_help" }

type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
