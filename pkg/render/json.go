package render

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-formbind/pkg/form"
)

// JSON renders the form snapshot as indented JSON.
type JSON struct{}

var _ Renderer = JSON{}

// NewJSON returns the JSON renderer.
func NewJSON() JSON { return JSON{} }

func (JSON) Name() string { return "json" }

func (JSON) ContentType() string { return "application/json" }

func (JSON) Render(ctx context.Context, f *form.Form, options Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap, err := TakeSnapshot(f, options)
	if err != nil {
		return nil, err
	}
	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render: json: %w", err)
	}
	return append(payload, '\n'), nil
}
