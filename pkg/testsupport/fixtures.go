package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbind/pkg/descriptor"
	"github.com/goliatone/go-formbind/pkg/model"
	"github.com/goliatone/go-formbind/pkg/observable"
)

// MustLoadDescriptors parses a JSON or YAML descriptor fixture.
func MustLoadDescriptors(t *testing.T, path string, opts ...descriptor.Option) []model.Descriptor {
	t.Helper()

	descriptors, err := descriptor.LoadFile(path, opts...)
	if err != nil {
		t.Fatalf("load descriptors: %v", err)
	}
	return descriptors
}

// MustElementList builds an ElementList from a descriptor fixture.
func MustElementList(t *testing.T, path string) *model.ElementList {
	t.Helper()

	list, err := model.NewElementList(MustLoadDescriptors(t, path))
	if err != nil {
		t.Fatalf("build element list: %v", err)
	}
	return list
}

// RecordChanges subscribes to every change on target and returns a pointer
// to the recorded events.
func RecordChanges(t *testing.T, target interface {
	OnAnyChange(observable.Listener) observable.Subscription
}) *[]observable.Change {
	t.Helper()

	var changes []observable.Change
	sub := target.OnAnyChange(func(c observable.Change) {
		changes = append(changes, c)
	})
	t.Cleanup(sub.Unsubscribe)
	return &changes
}

// WriteGolden writes arbitrary data as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	WriteMaybeGolden(t, path, payload)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
