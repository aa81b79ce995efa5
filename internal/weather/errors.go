package weather

import (
	"errors"
	"fmt"
)

// Kind classifies why a fetch failed. The view treats every kind the same;
// the distinction is kept for logs and diagnostics.
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindNotFound
	KindParse
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindNotFound:
		return "not_found"
	case KindParse:
		return "parse"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is against a *FetchError
var (
	ErrNetwork  = errors.New("weather provider unreachable")
	ErrNotFound = errors.New("location not found")
	ErrParse    = errors.New("malformed weather payload")
	ErrCanceled = errors.New("weather fetch canceled")
)

// FetchError is returned for every failed fetch
type FetchError struct {
	Kind     Kind
	Location string
	Err      error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch weather for %q: %s", e.Location, e.Kind)
	}
	return fmt.Sprintf("fetch weather for %q: %s: %v", e.Location, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is matches the sentinel for the error's kind
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrParse:
		return e.Kind == KindParse
	case ErrCanceled:
		return e.Kind == KindCanceled
	}
	return false
}

// KindOf returns the failure kind of err, or 0 when err is not a *FetchError
func KindOf(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}

func newFetchError(kind Kind, location string, err error) *FetchError {
	return &FetchError{Kind: kind, Location: location, Err: err}
}
