package descriptor_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbind/pkg/descriptor"
	"github.com/goliatone/go-formbind/pkg/model"
)

func contactDescriptors() []model.Descriptor {
	return []model.Descriptor{
		{
			Type:       "text",
			RelatedKey: "full_name",
			Label:      "Full Name",
			Rules:      []model.ValidationRule{{Kind: "required"}},
		},
		{
			Type:       "email",
			RelatedKey: "email",
			Label:      "Email address",
			Extra:      map[string]any{"placeholder": "jane@example.com"},
		},
		{
			Type:       "number",
			RelatedKey: "age",
			Label:      "Age",
			Value:      30,
			Rules:      []model.ValidationRule{{Kind: "min", Params: map[string]string{"value": "18"}}},
		},
		{
			Type:       "select",
			RelatedKey: "topic",
			Label:      "Topic",
			Extra:      map[string]any{"placeholder": "Pick a topic"},
			Values: []model.Descriptor{
				{Value: "sales", Label: "Sales"},
				{Value: "support", Label: "Support"},
			},
		},
		{
			Type:  "submit",
			Name:  "send",
			Value: "Send",
		},
	}
}

func TestLoadFS_JSONAndYAMLAgree(t *testing.T) {
	fsys := os.DirFS("testdata")
	for _, name := range []string{"contact.json", "contact.yaml"} {
		t.Run(name, func(t *testing.T) {
			got, err := descriptor.LoadFS(fsys, name)
			if err != nil {
				t.Fatalf("load %s: %v", name, err)
			}
			if diff := cmp.Diff(contactDescriptors(), got); diff != "" {
				t.Fatalf("descriptor mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadFile_TopLevelList(t *testing.T) {
	got, err := descriptor.LoadFile(filepath.Join("testdata", "list.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []model.Descriptor{
		{Type: "text", RelatedKey: "title", Label: "Title"},
		{Type: "checkbox", RelatedKey: "published", Label: "Published"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("descriptor mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	fsys := fstest.MapFS{
		"empty.json":    {Data: []byte("   ")},
		"broken.yaml":   {Data: []byte("elements: [\n  - {")},
		"scalar.json":   {Data: []byte(`"just a string"`)},
		"noelems.yaml":  {Data: []byte("title: nothing here\n")},
		"badentry.json": {Data: []byte(`[42]`)},
		"badrules.json": {Data: []byte(`[{"label": "x"}, {"type": "text", "rules": "required"}]`)},
		"form.txt":      {Data: []byte(`[]`)},
	}
	cases := map[string]string{
		"empty.json":    "is empty",
		"broken.yaml":   "invalid JSON or YAML",
		"scalar.json":   "must be a list or a mapping",
		"noelems.yaml":  `must define an "elements" list`,
		"badentry.json": "element 0 must be a mapping",
		"badrules.json": "element 1",
	}
	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := descriptor.LoadFS(fsys, name)
			if err == nil || !strings.Contains(err.Error(), want) {
				t.Fatalf("expected error containing %q, got %v", want, err)
			}
		})
	}

	if _, err := descriptor.LoadFS(fsys, "form.txt"); !errors.Is(err, model.ErrUnsupportedSource) {
		t.Fatalf("expected ErrUnsupportedSource, got %v", err)
	}
	if _, err := descriptor.LoadFS(fsys, "missing.json"); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := descriptor.LoadFS(nil, "contact.json"); err == nil {
		t.Fatalf("expected error for nil filesystem")
	}
}

func TestParse_UnknownKeysSurviveAsAttributes(t *testing.T) {
	descriptors, err := descriptor.Parse([]byte(`[{"type": "text", "name": "nick", "data-test": "nick-input", "autocomplete": "off"}]`), "inline")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	e, err := model.NewElement(descriptors[0])
	if err != nil {
		t.Fatalf("new element: %v", err)
	}
	if got, _ := e.Get("data-test"); got != "nick-input" {
		t.Fatalf("expected data-test attribute, got %v", got)
	}
	if got, _ := e.Get("autocomplete"); got != "off" {
		t.Fatalf("expected autocomplete attribute, got %v", got)
	}
}

func TestParse_Options(t *testing.T) {
	data := []byte(`[{"type": "text", "related_key": "first_name"}, {"type": "text", "related_key": "nick", "label": "<em>Nick</em>"}]`)

	upper := descriptor.WithLabeler(strings.ToUpper)
	tagged := descriptor.WithDecorators(descriptor.DecoratorFunc(func(d *model.Descriptor) error {
		d.ErrorClass = "invalid"
		return nil
	}))

	got, err := descriptor.Parse(data, "inline", upper, tagged, descriptor.WithRawLabels())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []model.Descriptor{
		{Type: "text", RelatedKey: "first_name", Label: "FIRST_NAME", ErrorClass: "invalid"},
		{Type: "text", RelatedKey: "nick", Label: "<em>Nick</em>", ErrorClass: "invalid"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("descriptor mismatch (-want +got):\n%s", diff)
	}

	failing := descriptor.WithDecorators(descriptor.DecoratorFunc(func(*model.Descriptor) error {
		return errors.New("boom")
	}))
	if _, err := descriptor.Parse(data, "inline", failing); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected decorator error, got %v", err)
	}
}

func TestFromMap_SanitisesNestedLabels(t *testing.T) {
	d, err := descriptor.FromMap(map[string]any{
		"type":  "radioset",
		"label": "<script>alert(1)</script>Plan",
		"values": []any{
			map[string]any{"value": "free", "label": "<b>Free</b> &amp; open"},
		},
	})
	if err != nil {
		t.Fatalf("from map: %v", err)
	}
	if d.Label != "Plan" {
		t.Fatalf("unexpected label %q", d.Label)
	}
	if got := d.Values[0].Label; got != "Free & open" {
		t.Fatalf("unexpected child label %q", got)
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"":             "",
		"title":        "Title",
		"first_name":   "First Name",
		"firstName":    "First Name",
		"street-line2": "Street Line 2",
		"HTTPServer":   "Http Server",
		"user.email":   "User Email",
	}
	for input, want := range cases {
		if got := descriptor.DefaultLabeler(input); got != want {
			t.Fatalf("DefaultLabeler(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSanitizeLabel(t *testing.T) {
	cases := map[string]string{
		"":                             "",
		"  Plain  ":                    "Plain",
		"<b>Bold</b> text":             "Bold text",
		`<a href="javascript:x">x</a>`: "x",
		"Tom &amp; Jerry":              "Tom & Jerry",
	}
	for input, want := range cases {
		if got := descriptor.SanitizeLabel(input); got != want {
			t.Fatalf("SanitizeLabel(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestParseValues(t *testing.T) {
	fromJSON, err := descriptor.ParseValues([]byte(`{"age": 36, "ratio": 0.5, "tags": ["a"]}`), "values.json")
	if err != nil {
		t.Fatalf("parse json values: %v", err)
	}
	fromYAML, err := descriptor.ParseValues([]byte("age: 36\nratio: 0.5\ntags: [a]\n"), "values.yaml")
	if err != nil {
		t.Fatalf("parse yaml values: %v", err)
	}
	want := map[string]any{"age": 36, "ratio": 0.5, "tags": []any{"a"}}
	if diff := cmp.Diff(want, fromJSON); diff != "" {
		t.Fatalf("json values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, fromYAML); diff != "" {
		t.Fatalf("yaml values mismatch (-want +got):\n%s", diff)
	}

	if _, err := descriptor.ParseValues([]byte(`[1, 2]`), "list.json"); err == nil {
		t.Fatalf("expected error for non-mapping values")
	}
	if _, err := descriptor.ParseValues([]byte("  "), "empty.json"); err == nil {
		t.Fatalf("expected error for empty values")
	}
}
