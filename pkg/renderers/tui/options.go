package tui

import (
	"io"

	"go.uber.org/zap"
)

// DefaultMaxAttempts bounds how often a single element is prompted while it
// reports a validation error.
const DefaultMaxAttempts = 3

// Theme holds the prefixes applied to prompts, section headings and error
// messages.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// DefaultTheme is used when WithTheme is not supplied.
func DefaultTheme() Theme {
	return Theme{ErrorPrefix: "✗ ", InfoPrefix: "› "}
}

// Option configures the Filler.
type Option func(*Filler)

// WithPromptDriver overrides the prompt driver used by the filler.
func WithPromptDriver(driver PromptDriver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(f *Filler) {
		f.theme = theme
	}
}

// WithMaxAttempts sets how many times an invalid element is prompted before
// Fill gives up. Values below one are ignored.
func WithMaxAttempts(n int) Option {
	return func(f *Filler) {
		if n > 0 {
			f.maxAttempts = n
		}
	}
}

// WithSkipFilled leaves elements that already hold a valid value alone.
func WithSkipFilled(skip bool) Option {
	return func(f *Filler) {
		f.skipFilled = skip
	}
}

// WithLogger sets the logger used for prompt diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Filler) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithDriverOutput sets where the default survey driver prints info and
// error messages. It has no effect when WithPromptDriver is used.
func WithDriverOutput(out io.Writer) Option {
	return func(f *Filler) {
		f.driverOut = out
	}
}
