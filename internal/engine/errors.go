package engine

import (
	"errors"

	"github.com/1broseidon/tilecore/internal/window"
	"github.com/1broseidon/tilecore/internal/wm"
)

// Error codes name the engine's error kinds on the wire and in scripts.
const (
	CodeUnknownWindow    = "unknown_window"
	CodeAlreadyManaged   = "already_managed"
	CodeNotFloating      = "not_floating"
	CodeInvalidWorkspace = "invalid_workspace"
	CodeUnsupported      = "unsupported"
	CodeInvalidCommand   = "invalid_command"
)

var codeErrors = []struct {
	code string
	err  error
}{
	{CodeUnknownWindow, window.ErrUnknownWindow},
	{CodeAlreadyManaged, window.ErrAlreadyManaged},
	{CodeNotFloating, window.ErrNotFloating},
	{CodeInvalidWorkspace, window.ErrInvalidWorkspace},
	{CodeUnsupported, wm.ErrUnsupported},
	{CodeInvalidCommand, ErrInvalidCommand},
}

// ErrorCode returns the code for err, or "" when it is not an engine error.
func ErrorCode(err error) string {
	for _, ce := range codeErrors {
		if errors.Is(err, ce.err) {
			return ce.code
		}
	}
	return ""
}

// CodeError returns the sentinel named by code, or nil.
func CodeError(code string) error {
	for _, ce := range codeErrors {
		if ce.code == code {
			return ce.err
		}
	}
	return nil
}
