package input

import (
	"skycast/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Controller *state.Controller
}

// SearchText returns the current search text
func (c *ModelContext) SearchText() string {
	return c.Controller.Input()
}

// Loading reports whether a fetch is in flight
func (c *ModelContext) Loading() bool {
	return c.Controller.Phase() == state.PhaseLoading
}
