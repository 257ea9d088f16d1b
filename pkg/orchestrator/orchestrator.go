package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbind/pkg/descriptor"
	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/model"
	"github.com/goliatone/go-formbind/pkg/observable"
	"github.com/goliatone/go-formbind/pkg/render"
)

const defaultRendererName = "html"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		if name != "" {
			o.defaultRenderer = name
		}
	}
}

// WithDescriptorOptions forwards options to the descriptor loader.
func WithDescriptorOptions(opts ...descriptor.Option) Option {
	return func(o *Orchestrator) {
		o.descriptorOptions = append(o.descriptorOptions, opts...)
	}
}

// WithDecorators registers decorators applied to loaded descriptors before
// the form is built.
func WithDecorators(decorators ...descriptor.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.descriptorOptions = append(o.descriptorOptions, descriptor.WithDecorators(decorators...))
	}
}

// WithLogger sets the logger handed to forms and used for pipeline events.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the pipeline from descriptor source to rendered
// output. Missing dependencies are initialised lazily with the built-in
// implementations.
type Orchestrator struct {
	registry          *render.Registry
	defaultRenderer   string
	descriptorOptions []descriptor.Option
	logger            *zap.Logger
	initialiseErr     error
	defaultsApplied   bool
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	return o
}

// Request describes the inputs required to build and render a form.
type Request struct {
	// Descriptors are used as is when non-empty; the loaders are skipped.
	Descriptors []model.Descriptor

	// Path names a JSON or YAML descriptor file, read from FS when set and
	// from disk otherwise.
	Path string
	FS   fs.FS

	// OpenAPI holds an OpenAPI 3 document; Schema selects the component
	// schema turned into descriptors.
	OpenAPI []byte
	Schema  string

	// Related is the backing model. When nil a new model seeded with Values
	// is created.
	Related *observable.Model
	Values  map[string]any

	// Name is the form name.
	Name string

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// RenderOptions is forwarded to the renderer.
	RenderOptions render.Options

	// Validate runs every validator before rendering so that elements whose
	// value was never set still report their errors.
	Validate bool
}

// Session is a bound form together with its related model. Close releases
// the binding.
type Session struct {
	Form    *form.Form
	Related *observable.Model
}

// Close tears the form binding down.
func (s *Session) Close() {
	if s == nil || s.Form == nil {
		return
	}
	s.Form.Close()
}

// Build loads descriptors, prepares the related model and binds a form to
// it.
func (o *Orchestrator) Build(ctx context.Context, req Request) (*Session, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	descriptors, err := o.descriptors(ctx, req)
	if err != nil {
		return nil, err
	}

	related := req.Related
	if related == nil {
		related = observable.New(req.Values)
	}

	opts := []form.Option{form.WithRelatedModel(related), form.WithLogger(o.logger)}
	if req.Name != "" {
		opts = append(opts, form.WithName(req.Name))
	}
	f, err := form.New(descriptors, opts...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build form: %w", err)
	}
	if req.Validate {
		f.Validate()
	}

	o.logger.Debug("orchestrator: form built",
		zap.String("form", f.Name()),
		zap.Int("elements", f.Elements().Len()),
		zap.Int("bound", f.Binding().Len()),
	)
	return &Session{Form: f, Related: related}, nil
}

// Render renders the session form with the named renderer.
func (o *Orchestrator) Render(ctx context.Context, session *Session, rendererName string, options render.Options) ([]byte, error) {
	if session == nil || session.Form == nil {
		return nil, render.ErrNilForm
	}
	if err := o.applyDefaults(); err != nil {
		return nil, err
	}
	if rendererName == "" {
		rendererName = o.defaultRenderer
	}
	renderer, err := o.registry.Get(rendererName)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	out, err := renderer.Render(ctx, session.Form, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render %s: %w", rendererName, err)
	}
	return out, nil
}

// Generate runs Build and Render and releases the session afterwards.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	session, err := o.Build(ctx, req)
	if err != nil {
		return nil, err
	}
	defer session.Close()
	return o.Render(ctx, session, req.Renderer, req.RenderOptions)
}

func (o *Orchestrator) descriptors(ctx context.Context, req Request) ([]model.Descriptor, error) {
	switch {
	case len(req.Descriptors) > 0:
		return req.Descriptors, nil
	case len(req.OpenAPI) > 0:
		if req.Schema == "" {
			return nil, errors.New("orchestrator: openapi source requires a schema name")
		}
		descriptors, err := descriptor.FromOpenAPI(ctx, req.OpenAPI, req.Schema, o.descriptorOptions...)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
		return descriptors, nil
	case req.Path != "" && req.FS != nil:
		descriptors, err := descriptor.LoadFS(req.FS, req.Path, o.descriptorOptions...)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
		return descriptors, nil
	case req.Path != "":
		descriptors, err := descriptor.LoadFile(req.Path, o.descriptorOptions...)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
		return descriptors, nil
	default:
		return nil, errors.New("orchestrator: request has no descriptor source")
	}
}

func (o *Orchestrator) applyDefaults() error {
	if o.defaultsApplied {
		return o.initialiseErr
	}
	o.defaultsApplied = true
	if o.registry == nil {
		o.registry, o.initialiseErr = render.DefaultRegistry()
	}
	return o.initialiseErr
}
