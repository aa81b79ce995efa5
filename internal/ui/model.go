package ui

import (
	"context"
	"log"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"skycast/internal/config"
	"skycast/internal/domain"
	"skycast/internal/eventbus"
	"skycast/internal/ui/input"
	inputtypes "skycast/internal/ui/input/types"
	"skycast/internal/ui/state"
	"skycast/internal/ui/viewmodels"
	"skycast/internal/ui/views"
	"skycast/internal/weather"
)

// Model represents the UI state
type Model struct {
	bus        eventbus.EventBus
	config     *config.Config
	fetcher    weather.Fetcher
	controller *state.Controller // all view state and transitions

	// UI-specific state not in the controller
	width       int
	height      int
	spinner     spinner.Model
	keys        KeyMap
	inPagerMode bool // tracks if we're currently in pager mode

	renderer     *views.Renderer
	viewModel    *viewmodels.ViewModel
	inputHandler *input.Handler
	helpOps      *HelpOps
	helpRenderer *HelpRenderer

	// rootCtx parents every fetch; cancel aborts the one in flight
	rootCtx context.Context
	cancel  context.CancelFunc

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. ctx bounds every fetch the model starts.
func NewModel(ctx context.Context, bus eventbus.EventBus, cfg *config.Config, fetcher weather.Fetcher) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	controller := state.NewController()
	keys := DefaultKeyMap()

	s := spinner.New()
	s.Spinner = spinner.Dot

	m := &Model{
		bus:          bus,
		config:       cfg,
		fetcher:      fetcher,
		controller:   controller,
		spinner:      s,
		keys:         keys,
		renderer:     views.NewRenderer(),
		viewModel:    viewmodels.NewViewModel(controller, cfg),
		inputHandler: input.New(cfg.UISettings.StartFocused),
		helpOps:      NewHelpOps(),
		helpRenderer: NewHelpRenderer(keys),
		rootCtx:      ctx,
	}

	if m.inputHandler.CurrentMode() == inputtypes.ModeEditing {
		controller.OnInputFocusChanged(true)
	}

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps.SetProgram(p)
}

// Controller exposes the view state controller
func (m *Model) Controller() *state.Controller {
	return m.controller
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.inputHandler.Init(), m.spinner.Tick)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.inputHandler.SetWidth(msg.Width - 12)
		return m, nil

	case tea.KeyMsg:
		// ov owns the terminal while the help pager is open
		if m.inPagerMode {
			return m, nil
		}
		ctx := &input.ModelContext{Controller: m.controller}

		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}

		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}

		return m, tea.Batch(cmds...)

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.inPagerMode {
		return ""
	}

	m.viewModel.SetDimensions(m.width, m.height)
	m.viewModel.SetKeys(m.keys.ForMode(m.inputHandler.CurrentMode() == inputtypes.ModeEditing))
	m.viewModel.UpdateTextInput(*m.inputHandler.TextInput())
	m.viewModel.UpdateSpinner(m.spinner)

	return m.renderer.Render(m.viewModel.BuildViewState())
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.UpdateTextAction:
		m.controller.SetLocationText(a.Text)
	case inputtypes.FocusChangedAction:
		m.controller.OnInputFocusChanged(a.Focused)
	case inputtypes.SubmitSearchAction:
		return m.submit()
	case inputtypes.ShowHelpAction:
		if m.program == nil {
			log.Printf("Help pager unavailable: no program")
			return nil
		}
		return m.fetchHelpPager(m.helpRenderer.RenderHelpContent())
	case inputtypes.QuitAction:
		m.shutdown()
		return tea.Quit
	default:
		log.Printf("Unhandled action: %s", action.Type())
	}
	return nil
}

// submit asks the controller for a request and starts the fetch for it
func (m *Model) submit() tea.Cmd {
	req, ok := m.controller.SubmitSearch()
	if !ok {
		m.publish(eventbus.SearchRejectedEvent{Reason: state.EmptyLocationMessage})
		return nil
	}

	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(m.rootCtx)
	m.cancel = cancel

	m.publish(eventbus.SearchSubmittedEvent{Seq: req.Seq, Location: req.Location, Superseded: req.Superseded})

	return fetchWeather(ctx, m.fetcher, req)
}

// fetchWeather returns a command that runs one fetch and reports its outcome
func fetchWeather(ctx context.Context, fetcher weather.Fetcher, req state.Request) tea.Cmd {
	return func() tea.Msg {
		snap, err := fetcher.FetchWeather(ctx, req.Location)
		if err != nil {
			return fetchFailedMsg{seq: req.Seq, location: req.Location, err: err}
		}
		return fetchSucceededMsg{seq: req.Seq, location: req.Location, snapshot: snap}
	}
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})

		err := m.helpOps.ShowHelpInPager(helpContent)

		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		// the tick loop stops in pager mode and restarts on resume
		if m.inPagerMode {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fetchSucceededMsg:
		if !m.controller.OnFetchSucceeded(msg.seq, msg.snapshot) {
			log.Printf("Discarding stale result for request %d", msg.seq)
			m.publish(eventbus.FetchDiscardedEvent{Seq: msg.seq})
			return m, nil
		}
		m.release()
		m.publish(eventbus.FetchSucceededEvent{Seq: msg.seq, Location: msg.location, Theme: msg.snapshot.ThemeKey})
		return m, nil

	case fetchFailedMsg:
		if !m.controller.OnFetchFailed(msg.seq, msg.err) {
			log.Printf("Discarding stale failure for request %d: %v", msg.seq, msg.err)
			m.publish(eventbus.FetchDiscardedEvent{Seq: msg.seq})
			return m, nil
		}
		m.release()
		m.publish(eventbus.FetchFailedEvent{
			Seq:      msg.seq,
			Location: msg.location,
			Kind:     weather.KindOf(msg.err).String(),
			Err:      msg.err,
		})
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			log.Printf("Help pager failed: %v", msg.err)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, m.spinner.Tick

	default:
		// cursor blink and other text input messages
		return m, m.inputHandler.Update(msg)
	}
}

// release frees the context of the request that just settled
func (m *Model) release() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// shutdown cancels the in-flight fetch and closes the controller
func (m *Model) shutdown() {
	m.release()
	m.controller.Close()
}

func (m *Model) publish(event domain.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(event)
	}
}
