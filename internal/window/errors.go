package window

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownWindow is returned for a window id the queried manager does not track.
	ErrUnknownWindow = errors.New("unknown window")
	// ErrAlreadyManaged is returned when adding a window id that is already tracked.
	ErrAlreadyManaged = errors.New("already managed window")
	// ErrNotFloating is returned when setting the geometry of a window that is not floating.
	ErrNotFloating = errors.New("not a floating window")
	// ErrInvalidWorkspace is returned for a workspace index out of range.
	ErrInvalidWorkspace = errors.New("invalid workspace index")
)

// Error ties one of the sentinel errors to the window it concerns.
type Error struct {
	Kind   error
	Window ID
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %d", e.Kind, e.Window)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// UnknownWindow returns an error wrapping ErrUnknownWindow.
func UnknownWindow(w ID) error {
	return &Error{Kind: ErrUnknownWindow, Window: w}
}

// AlreadyManaged returns an error wrapping ErrAlreadyManaged.
func AlreadyManaged(w ID) error {
	return &Error{Kind: ErrAlreadyManaged, Window: w}
}

// NotFloating returns an error wrapping ErrNotFloating.
func NotFloating(w ID) error {
	return &Error{Kind: ErrNotFloating, Window: w}
}

// InvalidWorkspace returns an error wrapping ErrInvalidWorkspace.
func InvalidWorkspace(index, count int) error {
	return fmt.Errorf("%w: %d (have %d workspaces)", ErrInvalidWorkspace, index, count)
}
