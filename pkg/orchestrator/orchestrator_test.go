package orchestrator_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbind/pkg/descriptor"
	"github.com/goliatone/go-formbind/pkg/model"
	"github.com/goliatone/go-formbind/pkg/orchestrator"
	"github.com/goliatone/go-formbind/pkg/render"
	"github.com/goliatone/go-formbind/pkg/testsupport"
)

var files = fstest.MapFS{
	"forms/contact.yaml": {Data: []byte(`
elements:
  - type: text
    related_key: full_name
    rules:
      - kind: required
  - type: select
    related_key: topic
    options:
      - value: sales
      - value: support
`)},
}

func TestOrchestrator_GenerateJSON(t *testing.T) {
	orch := orchestrator.New(orchestrator.WithDefaultRenderer("json"))

	out, err := orch.Generate(testsupport.Context(), orchestrator.Request{
		FS:       files,
		Path:     "forms/contact.yaml",
		Values:   map[string]any{"topic": "support"},
		Name:     "contact",
		Validate: true,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	var snap render.Snapshot
	if err := json.Unmarshal(out, &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.Name != "contact" || snap.Valid {
		t.Fatalf("unexpected snapshot header: %+v", snap)
	}
	if len(snap.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(snap.Nodes))
	}
	name := snap.Nodes[0].Field
	if name.Label != "Full Name" || name.Error != "This field is required." {
		t.Fatalf("unexpected name field: %+v", name)
	}
	if topic := snap.Nodes[1].Field; topic.Value != "support" {
		t.Fatalf("expected seeded topic, got %+v", topic)
	}
}

func TestOrchestrator_GenerateHTMLByName(t *testing.T) {
	orch := orchestrator.New()
	out, err := orch.Generate(testsupport.Context(), orchestrator.Request{
		FS:            files,
		Path:          "forms/contact.yaml",
		Values:        map[string]any{"full_name": "Ada"},
		Renderer:      "html",
		RenderOptions: render.Options{Action: "/contact"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, `action="/contact"`) || !strings.Contains(html, `value="Ada"`) {
		t.Fatalf("unexpected html:\n%s", html)
	}
}

func TestOrchestrator_BuildFromOpenAPI(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "descriptor", "testdata", "profile.openapi.yaml"))
	if err != nil {
		t.Fatalf("read openapi: %v", err)
	}

	var decorated []string
	orch := orchestrator.New(orchestrator.WithDecorators(descriptor.DecoratorFunc(func(d *model.Descriptor) error {
		decorated = append(decorated, d.RelatedKey)
		return nil
	})))
	session, err := orch.Build(testsupport.Context(), orchestrator.Request{
		OpenAPI:  data,
		Schema:   "Profile",
		Values:   map[string]any{"username": "ada"},
		Validate: true,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer session.Close()

	if len(decorated) == 0 {
		t.Fatalf("expected decorators to run")
	}
	if diff := cmp.Diff(map[string]string{"age": "This field is required."}, session.Form.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	var age *model.Element
	for _, e := range session.Form.Bound() {
		if e.Key() == "age" {
			age = e
		}
	}
	if age == nil {
		t.Fatalf("age element not bound")
	}
	age.Set(model.AttrValue, 40)
	if got, _ := session.Related.Get("age"); got != 40 {
		t.Fatalf("expected element write to reach the related model, got %v", got)
	}
	if session.Form.Errors() != nil {
		t.Fatalf("expected form to be valid, got %v", session.Form.Errors())
	}
}

func TestOrchestrator_Errors(t *testing.T) {
	orch := orchestrator.New()
	ctx := testsupport.Context()

	if _, err := orch.Build(ctx, orchestrator.Request{}); err == nil {
		t.Fatalf("expected error without descriptor source")
	}
	if _, err := orch.Build(ctx, orchestrator.Request{OpenAPI: []byte("openapi: 3.0.3")}); err == nil {
		t.Fatalf("expected error without schema name")
	}
	if _, err := orch.Build(ctx, orchestrator.Request{FS: files, Path: "forms/missing.yaml"}); err == nil {
		t.Fatalf("expected error for missing file")
	}

	_, err := orch.Generate(ctx, orchestrator.Request{FS: files, Path: "forms/contact.yaml", Renderer: "pdf"})
	if !errors.Is(err, render.ErrUnknownRenderer) {
		t.Fatalf("expected ErrUnknownRenderer, got %v", err)
	}
	if _, err := orch.Render(ctx, nil, "", render.Options{}); !errors.Is(err, render.ErrNilForm) {
		t.Fatalf("expected ErrNilForm, got %v", err)
	}
}
