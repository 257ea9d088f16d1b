package form

import (
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbind/pkg/observable"
)

// Option configures a Form at construction.
type Option func(*config)

type config struct {
	name    string
	related observable.Observable
	logger  *zap.Logger
}

func defaultConfig() config {
	return config{
		name:   "form",
		logger: zap.NewNop(),
	}
}

// WithRelatedModel binds the form to related right after construction.
func WithRelatedModel(related observable.Observable) Option {
	return func(cfg *config) {
		cfg.related = related
	}
}

// WithLogger sets the logger used for binding diagnostics. A nil logger is
// ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithName labels the form in log entries.
func WithName(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.name = trimmed
		}
	}
}
