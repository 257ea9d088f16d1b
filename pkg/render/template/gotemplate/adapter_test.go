package gotemplate_test

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formbind/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formbind/pkg/testsupport"
)

func newEngine(t *testing.T, opts ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()
	files := fstest.MapFS{
		"hello.tpl":      {Data: []byte("Hello {{ name }}!")},
		"use-global.tpl": {Data: []byte("env={{ settings.env }}")},
		"field.tpl":      {Data: []byte("{{ field.label }}={{ field.value }}")},
	}
	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(files)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})
	if result != "Hello Ada!" || written != result {
		t.Fatalf("unexpected output %q / %q", result, written)
	}
}

func TestEngine_ConvertsStructs(t *testing.T) {
	engine := newEngine(t)
	type field struct {
		Label string `json:"label"`
		Value any    `json:"value"`
	}
	got, err := engine.RenderTemplate("field.tpl", map[string]any{"field": field{Label: "Age", Value: "42"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Age=42" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGlobalData(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}))

	got, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "env=staging" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_RenderStringAndFilters(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("formbind_shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		s, ok := input.(string)
		if !ok {
			return nil, errors.New("not a string")
		}
		return strings.ToUpper(s) + "!", nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("formbind_shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	got, err := engine.RenderString(`{{ word|formbind_shout }} [{{ padded|trim }}]`, map[string]any{
		"word":   "hey",
		"padded": "  x  ",
	})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "HEY! [x]" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_Errors(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without template sources")
	}
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected missing template error")
	}
	if _, err := engine.RenderString("{% if %}", nil); err == nil {
		t.Fatalf("expected parse error")
	}
	if err := engine.RegisterFilter("", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected error for empty filter name")
	}
	var nilEngine *gotemplate.Engine
	if _, err := nilEngine.RenderTemplate("hello", nil); err == nil {
		t.Fatalf("expected nil engine error")
	}
}

func TestEngine_RenderDetectsInlineContent(t *testing.T) {
	engine := newEngine(t)

	inline, err := engine.Render("{{ name }}?", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render inline: %v", err)
	}
	named, err := engine.Render("hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render named: %v", err)
	}
	if inline != "Ada?" || named != "Hello Ada!" {
		t.Fatalf("unexpected output %q / %q", inline, named)
	}
}

func TestEngine_TemplateFuncsBecomeFilters(t *testing.T) {
	engine := newEngine(t, gotemplate.WithTemplateFunc(map[string]any{
		"formbind_wrap": func(input any, _ any) (any, error) {
			return "[" + fmt.Sprint(input) + "]", nil
		},
	}))

	got, err := engine.RenderString("{{ name|formbind_wrap }}", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "[Ada]" {
		t.Fatalf("unexpected output %q", got)
	}
}
