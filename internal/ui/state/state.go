package state

import (
	"errors"
	"strings"

	"skycast/internal/domain"
)

// EmptyLocationMessage is shown when a blank search is submitted
const EmptyLocationMessage = "Please Enter a Location!"

// ErrBlankLocation is the validation error behind the Empty screen
var ErrBlankLocation = errors.New("blank location")

// Phase is the controller's position in the search lifecycle
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseEmpty
	PhaseLoading
	PhaseLoaded
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseEmpty:
		return "empty"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// ScreenKind selects what the presentation layer shows
type ScreenKind int

const (
	ScreenIdle ScreenKind = iota
	ScreenLoading
	ScreenError
	ScreenEmpty
	ScreenLoaded
)

// Screen is the render contract: exactly one kind, with the data that kind needs
type Screen struct {
	Kind     ScreenKind
	Snapshot *domain.WeatherSnapshot // ScreenLoaded only
	Message  string                  // ScreenEmpty only
}

// Request is an outbound search the caller must run
type Request struct {
	Seq        uint64
	Location   string
	Superseded bool // an earlier request was still outstanding
}

// Controller owns all view state and the transitions between phases.
// It is not safe for concurrent use; the UI loop is its only caller.
type Controller struct {
	input         string
	focused       bool
	phase         Phase
	panelsVisible bool
	snapshot      *domain.WeatherSnapshot
	lastErr       error

	seq         uint64 // last issued request
	outstanding bool
	closed      bool
}

// NewController creates a controller in the Idle phase
func NewController() *Controller {
	return &Controller{phase: PhaseIdle}
}

// SetLocationText replaces the search text. It clears a blank-search
// message and hides the result panels when a snapshot is on screen; the last
// snapshot is kept until a new fetch replaces it. Edits while Loading leave
// the pending result visible.
func (c *Controller) SetLocationText(text string) {
	c.input = text
	switch c.phase {
	case PhaseEmpty:
		c.phase = PhaseIdle
		c.lastErr = nil
	case PhaseLoaded:
		c.panelsVisible = false
	}
}

// OnInputFocusChanged records focus for label placement. Blurring a
// non-empty input keeps the flag set.
func (c *Controller) OnInputFocusChanged(focused bool) {
	if focused {
		c.focused = true
		return
	}
	if c.input == "" {
		c.focused = false
	}
}

// SubmitSearch validates the input and, when it is not blank, moves to
// Loading and returns the request to run. A submit while Loading supersedes
// the outstanding request; its result will be ignored.
func (c *Controller) SubmitSearch() (Request, bool) {
	location := strings.TrimSpace(c.input)
	if location == "" {
		c.phase = PhaseEmpty
		c.lastErr = ErrBlankLocation
		return Request{}, false
	}

	superseded := c.outstanding
	c.seq++
	c.outstanding = true
	c.lastErr = nil
	c.panelsVisible = true
	c.phase = PhaseLoading

	return Request{Seq: c.seq, Location: location, Superseded: superseded}, true
}

// OnFetchSucceeded applies a result. It reports false and changes nothing
// when seq is not the outstanding request or the controller is closed.
func (c *Controller) OnFetchSucceeded(seq uint64, snapshot domain.WeatherSnapshot) bool {
	if !c.accepts(seq) {
		return false
	}
	snap := snapshot
	c.snapshot = &snap
	c.outstanding = false
	c.lastErr = nil
	c.phase = PhaseLoaded
	return true
}

// OnFetchFailed applies a failure. The previous snapshot is kept but the
// Error screen takes precedence.
func (c *Controller) OnFetchFailed(seq uint64, err error) bool {
	if !c.accepts(seq) {
		return false
	}
	c.outstanding = false
	c.lastErr = err
	c.phase = PhaseError
	return true
}

func (c *Controller) accepts(seq uint64) bool {
	return !c.closed && c.outstanding && seq == c.seq
}

// Close disposes the controller; later settles are ignored
func (c *Controller) Close() {
	c.closed = true
	c.outstanding = false
}

// Screen derives what should be rendered now
func (c *Controller) Screen() Screen {
	switch c.phase {
	case PhaseLoading:
		return Screen{Kind: ScreenLoading}
	case PhaseError:
		return Screen{Kind: ScreenError}
	case PhaseEmpty:
		return Screen{Kind: ScreenEmpty, Message: EmptyLocationMessage}
	case PhaseLoaded:
		if c.panelsVisible && c.snapshot != nil {
			snap := *c.snapshot
			return Screen{Kind: ScreenLoaded, Snapshot: &snap}
		}
	}
	return Screen{Kind: ScreenIdle}
}

// Input returns the raw search text
func (c *Controller) Input() string { return c.input }

// Focused reports the label focus flag
func (c *Controller) Focused() bool { return c.focused }

// Phase returns the current phase
func (c *Controller) Phase() Phase { return c.phase }

// PanelsVisible reports whether summary and detail panels are shown
func (c *Controller) PanelsVisible() bool { return c.panelsVisible }

// LastError returns the validation or fetch error behind the current phase
func (c *Controller) LastError() error { return c.lastErr }

// Closed reports whether Close was called
func (c *Controller) Closed() bool { return c.closed }

// Snapshot returns a copy of the retained snapshot
func (c *Controller) Snapshot() (domain.WeatherSnapshot, bool) {
	if c.snapshot == nil {
		return domain.WeatherSnapshot{}, false
	}
	return *c.snapshot, true
}

// Outstanding returns the sequence of the request in flight, if any
func (c *Controller) Outstanding() (uint64, bool) {
	return c.seq, c.outstanding
}
