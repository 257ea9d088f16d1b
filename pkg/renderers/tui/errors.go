package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrAttemptsExhausted is returned when an element is still invalid after
	// the configured number of attempts.
	ErrAttemptsExhausted = errors.New("tui: too many invalid attempts")
	// ErrNilForm is returned when Fill is called without a form.
	ErrNilForm = errors.New("tui: form is required")
)
