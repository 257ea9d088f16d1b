// Package formbind is the top-level entry point of the module. It re-exports
// the constructors most callers need so a form can be loaded, bound and
// rendered with a single import.
package formbind

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-formbind/pkg/descriptor"
	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/model"
	"github.com/goliatone/go-formbind/pkg/observable"
	"github.com/goliatone/go-formbind/pkg/orchestrator"
	"github.com/goliatone/go-formbind/pkg/render"
)

// Descriptor aliases model.Descriptor.
type Descriptor = model.Descriptor

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// RenderOptions aliases render.Options.
type RenderOptions = render.Options

// NewModel creates an observable model seeded with attrs.
func NewModel(attrs map[string]any) *observable.Model {
	return observable.New(attrs)
}

// NewElementList builds an element list from descriptors, maps or elements.
func NewElementList(items any) (*model.ElementList, error) {
	return model.NewElementList(items)
}

// NewForm builds a form over elements, bound to related when it is non-nil.
func NewForm(elements any, related observable.Observable, options ...form.Option) (*form.Form, error) {
	if related != nil {
		options = append([]form.Option{form.WithRelatedModel(related)}, options...)
	}
	return form.New(elements, options...)
}

// LoadDescriptors reads a JSON or YAML descriptor file from fsys.
func LoadDescriptors(fsys fs.FS, path string, options ...descriptor.Option) ([]model.Descriptor, error) {
	return descriptor.LoadFS(fsys, path, options...)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML loads descriptors, binds them to a model seeded with values
// and renders the form with the HTML renderer.
func GenerateHTML(ctx context.Context, fsys fs.FS, path string, values map[string]any, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		FS:       fsys,
		Path:     path,
		Values:   values,
		Renderer: "html",
	})
}

// EmbeddedTemplates exposes the built-in HTML templates so callers can reuse
// or extend them.
func EmbeddedTemplates() fs.FS {
	return render.TemplatesFS()
}
