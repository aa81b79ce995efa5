package viewmodels

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"skycast/internal/config"
	"skycast/internal/ui/state"
	"skycast/internal/ui/views"
)

// ViewModel transforms controller state into view-ready data
type ViewModel struct {
	controller *state.Controller
	config     *config.Config
	width      int
	height     int
	help       help.Model
	keys       help.KeyMap
	textInput  textinput.Model
	spinner    spinner.Model
}

// NewViewModel creates a new view model
func NewViewModel(controller *state.Controller, cfg *config.Config) *ViewModel {
	return &ViewModel{
		controller: controller,
		config:     cfg,
		help:       help.New(),
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
	vm.help.Width = width
}

// SetKeys sets the bindings shown in the help line
func (vm *ViewModel) SetKeys(keys help.KeyMap) {
	vm.keys = keys
}

// UpdateTextInput updates the text input model
func (vm *ViewModel) UpdateTextInput(textInput textinput.Model) {
	vm.textInput = textInput
}

// UpdateSpinner updates the spinner model
func (vm *ViewModel) UpdateSpinner(s spinner.Model) {
	vm.spinner = s
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	screen := vm.controller.Screen()

	spin := ""
	if screen.Kind == state.ScreenLoading {
		spin = vm.spinner.View()
	}

	showIconURL := false
	if vm.config != nil {
		showIconURL = vm.config.UISettings.ShowIconURL
	}

	return views.ViewState{
		Width:       vm.width,
		Height:      vm.height,
		Screen:      screen,
		SearchInput: vm.textInput.View(),
		SearchText:  vm.controller.Input(),
		Focused:     vm.controller.Focused(),
		Spinner:     spin,
		ShowIconURL: showIconURL,
		HelpModel:   vm.help,
		Keys:        vm.keys,
	}
}
