package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchSubmitted EventType = "SearchSubmitted"
	EventSearchRejected  EventType = "SearchRejected"
	EventFetchSucceeded  EventType = "FetchSucceeded"
	EventFetchFailed     EventType = "FetchFailed"
	EventFetchDiscarded  EventType = "FetchDiscarded"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchSubmittedEvent is emitted when a non-blank search starts a fetch
type SearchSubmittedEvent struct {
	Seq        uint64
	Location   string
	Superseded bool // an earlier request was still outstanding
}

func (e SearchSubmittedEvent) Type() EventType { return EventSearchSubmitted }

// SearchRejectedEvent is emitted when a blank search is submitted
type SearchRejectedEvent struct {
	Reason string
}

func (e SearchRejectedEvent) Type() EventType { return EventSearchRejected }

// FetchSucceededEvent is emitted when a fetch result is applied to the view
type FetchSucceededEvent struct {
	Seq      uint64
	Location string
	Theme    ThemeKey
}

func (e FetchSucceededEvent) Type() EventType { return EventFetchSucceeded }

// FetchFailedEvent is emitted when a fetch failure is applied to the view.
// Kind keeps the failure class that the screen itself does not show.
type FetchFailedEvent struct {
	Seq      uint64
	Location string
	Kind     string
	Err      error
}

func (e FetchFailedEvent) Type() EventType { return EventFetchFailed }

// FetchDiscardedEvent is emitted when a settled fetch no longer matches the outstanding request
type FetchDiscardedEvent struct {
	Seq uint64
}

func (e FetchDiscardedEvent) Type() EventType { return EventFetchDiscarded }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
