package osk

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrPasteRejected indicates the clipboard held nothing, or held a line
	// break. The text is left unchanged.
	ErrPasteRejected = errors.New("paste rejected")

	// ErrClipboardUnavailable wraps a failure of the clipboard service.
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
)

// EngineError represents a failure of the engine's own resources (fonts,
// icons, layouts) rather than of user input.
type EngineError struct {
	Op  string // Operation that failed (e.g., "load_font", "render_icon")
	Err error  // Underlying error
}

func (e *EngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("osk: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("osk: %s", e.Op)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// NewEngineError creates a new engine error.
func NewEngineError(op string, err error) *EngineError {
	return &EngineError{Op: op, Err: err}
}

// IsEngineError checks if an error is an engine error.
func IsEngineError(err error) bool {
	var engineErr *EngineError
	return errors.As(err, &engineErr)
}

// IsPasteRejected checks if an error is a rejected paste.
func IsPasteRejected(err error) bool {
	return errors.Is(err, ErrPasteRejected)
}
