package render

import (
	"context"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/render/template"
	"github.com/goliatone/go-formbind/pkg/render/template/gotemplate"
)

// HTMLOption configures the HTML renderer.
type HTMLOption func(*htmlConfig)

type htmlConfig struct {
	templates fs.FS
	entry     string
	engine    template.Renderer
	logger    *zap.Logger
}

// WithTemplatesFS replaces the bundled templates. The filesystem must hold
// the entry template (form.tpl unless WithEntryTemplate says otherwise).
func WithTemplatesFS(files fs.FS) HTMLOption {
	return func(cfg *htmlConfig) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// WithEntryTemplate sets the template rendered for a form.
func WithEntryTemplate(name string) HTMLOption {
	return func(cfg *htmlConfig) {
		if name != "" {
			cfg.entry = name
		}
	}
}

// WithTemplateRenderer injects a ready engine; template options are ignored.
func WithTemplateRenderer(engine template.Renderer) HTMLOption {
	return func(cfg *htmlConfig) {
		cfg.engine = engine
	}
}

// WithHTMLLogger sets the renderer logger.
func WithHTMLLogger(logger *zap.Logger) HTMLOption {
	return func(cfg *htmlConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// HTML renders a Form snapshot through go-template templates.
type HTML struct {
	engine template.Renderer
	entry  string
	logger *zap.Logger
}

var _ Renderer = (*HTML)(nil)

// NewHTML builds the HTML renderer.
func NewHTML(options ...HTMLOption) (*HTML, error) {
	cfg := htmlConfig{
		templates: TemplatesFS(),
		entry:     "form.tpl",
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	engine := cfg.engine
	if engine == nil {
		built, err := gotemplate.New(gotemplate.WithFS(cfg.templates))
		if err != nil {
			return nil, fmt.Errorf("render: html engine: %w", err)
		}
		engine = built
	}
	return &HTML{engine: engine, entry: cfg.entry, logger: cfg.logger}, nil
}

func (r *HTML) Name() string { return "html" }

func (r *HTML) ContentType() string { return "text/html; charset=utf-8" }

// Render executes the entry template with the form snapshot as `form`.
func (r *HTML) Render(ctx context.Context, f *form.Form, options Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap, err := TakeSnapshot(f, options)
	if err != nil {
		return nil, err
	}
	out, err := r.engine.RenderTemplate(r.entry, map[string]any{"form": snap})
	if err != nil {
		return nil, fmt.Errorf("render: html: %w", err)
	}
	r.logger.Debug("form rendered",
		zap.String("renderer", r.Name()),
		zap.String("form", snap.Name),
		zap.Int("nodes", len(snap.Nodes)),
	)
	return []byte(out), nil
}
