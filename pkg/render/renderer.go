package render

import (
	"context"

	"github.com/goliatone/go-formbind/pkg/form"
)

// Renderer turns the current state of a Form into bytes (HTML, JSON, ...).
// Rendering reads element attributes only; it never writes values back.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, f *form.Form, options Options) ([]byte, error)
}
