package descriptor

import (
	"github.com/goliatone/go-formbind/pkg/model"
)

// Labeler turns a property or field name into a display label.
type Labeler func(name string) string

// Decorator adjusts a descriptor after it has been parsed and before it is
// returned to the caller.
type Decorator interface {
	Decorate(d *model.Descriptor) error
}

// DecoratorFunc adapts a function to Decorator.
type DecoratorFunc func(d *model.Descriptor) error

func (fn DecoratorFunc) Decorate(d *model.Descriptor) error {
	return fn(d)
}

// Option customises loading.
type Option func(*options)

type options struct {
	labeler    Labeler
	decorators []Decorator
	sanitize   bool
	partial    bool
}

func newOptions(opts []Option) options {
	cfg := options{
		labeler:  DefaultLabeler,
		sanitize: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithLabeler overrides DefaultLabeler for generated labels.
func WithLabeler(labeler Labeler) Option {
	return func(cfg *options) {
		if labeler != nil {
			cfg.labeler = labeler
		}
	}
}

// WithDecorators appends decorators applied to every top-level descriptor in
// order.
func WithDecorators(decorators ...Decorator) Option {
	return func(cfg *options) {
		for _, d := range decorators {
			if d != nil {
				cfg.decorators = append(cfg.decorators, d)
			}
		}
	}
}

// WithRawLabels keeps label markup as written.
func WithRawLabels() Option {
	return func(cfg *options) {
		cfg.sanitize = false
	}
}

// WithPartialDocuments lets FromOpenAPI accept documents without paths.
// Component-only documents are rejected otherwise.
func WithPartialDocuments(enabled bool) Option {
	return func(cfg *options) {
		cfg.partial = enabled
	}
}

func (cfg options) decorate(descriptors []model.Descriptor) error {
	for i := range descriptors {
		for _, d := range cfg.decorators {
			if err := d.Decorate(&descriptors[i]); err != nil {
				return err
			}
		}
	}
	return nil
}
