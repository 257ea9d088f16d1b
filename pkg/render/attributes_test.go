package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbind/pkg/model"
	"github.com/goliatone/go-formbind/pkg/render"
)

func required(value any) string {
	if value == nil || value == "" {
		return "Required."
	}
	return ""
}

func TestAttributeSet_Classes(t *testing.T) {
	set := render.DefaultAttributeSet()

	cases := []struct {
		name string
		desc model.Descriptor
		want []string
	}{
		{"text", model.Descriptor{Type: "text"}, []string{"element", "type-text"}},
		{"submit", model.Descriptor{Type: "submit"}, []string{"element", "type-submit", "type-button"}},
		{"reset", model.Descriptor{Type: "reset"}, []string{"element", "type-reset", "type-button"}},
		{"button", model.Descriptor{Type: "button"}, []string{"element", "type-button"}},
		{"extra class", model.Descriptor{Type: "text", Extra: map[string]any{"class": "wide  bold"}}, []string{"element", "type-text", "wide", "bold"}},
		{"error", model.Descriptor{Type: "text", Value: "", Validator: required}, []string{"element", "type-text", "element-error"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := set.Classes(model.MustElement(tc.desc))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("classes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAttributeSet_CustomErrorClass(t *testing.T) {
	set := render.AttributeSet{ClassName: "myelement"}
	e := model.MustElement(model.Descriptor{Type: "text", ErrorClass: "myerror", Validator: required, Value: ""})

	if got := set.ErrorClass(e); got != "myelement-myerror" {
		t.Fatalf("unexpected error class %q", got)
	}
	if got := set.Compute(e)["class"]; got != "myelement type-text myelement-myerror" {
		t.Fatalf("unexpected class attribute %q", got)
	}

	e.Set(model.AttrValue, "ok")
	if got := set.Compute(e)["class"]; got != "myelement type-text" {
		t.Fatalf("error class should be dropped once valid, got %q", got)
	}
}

func TestAttributeSet_ComputeAndAttrs(t *testing.T) {
	set := render.DefaultAttributeSet()
	e := model.MustElement(model.Descriptor{
		Type:  "text",
		ID:    "nick",
		Name:  "nickname",
		Extra: map[string]any{"placeholder": "Nick", "disabled": true, "readonly": false, "data-x": "ignored"},
	})

	wantComputed := map[string]any{
		"class":       "element type-text",
		"id":          "nick",
		"name":        "nickname",
		"placeholder": "Nick",
		"disabled":    true,
		"readonly":    false,
	}
	if diff := cmp.Diff(wantComputed, set.Compute(e)); diff != "" {
		t.Fatalf("compute mismatch (-want +got):\n%s", diff)
	}

	wantAttrs := []render.Attr{
		{Name: "disabled", Flag: true},
		{Name: "id", Value: "nick"},
		{Name: "name", Value: "nickname"},
		{Name: "placeholder", Value: "Nick"},
	}
	if diff := cmp.Diff(wantAttrs, set.Attrs(e)); diff != "" {
		t.Fatalf("attrs mismatch (-want +got):\n%s", diff)
	}
}

func TestAttributeSet_IDFallsBackToClientID(t *testing.T) {
	e := model.MustElement(model.Descriptor{Type: "text"})
	if got := render.DefaultAttributeSet().Compute(e)["id"]; got != e.CID() {
		t.Fatalf("expected client id, got %v", got)
	}
}

func TestChoices_Selection(t *testing.T) {
	sel := model.MustElement(model.Descriptor{
		Type:  "select",
		Value: "b",
		Values: []model.Descriptor{
			{Value: "a", Label: "A"},
			{Value: "b"},
			{Value: "c", Label: "C", Extra: map[string]any{"disabled": "true"}},
		},
	})
	got := render.Choices(sel)
	if len(got) != 3 {
		t.Fatalf("expected 3 choices, got %d", len(got))
	}
	if got[0].Selected || !got[1].Selected || got[2].Selected {
		t.Fatalf("unexpected selection: %+v", got)
	}
	if got[1].Label != "b" {
		t.Fatalf("expected label to fall back to value, got %q", got[1].Label)
	}
	if !got[2].Disabled {
		t.Fatalf("expected third choice disabled")
	}

	sel.Set(model.AttrValue, "c")
	got = render.Choices(sel)
	if got[1].Selected || !got[2].Selected {
		t.Fatalf("selection should follow the value: %+v", got)
	}

	set := model.MustElement(model.Descriptor{
		Type:   "checkboxset",
		Value:  []any{"x", "z"},
		Values: []model.Descriptor{{Value: "x"}, {Value: "y"}, {Value: "z"}},
	})
	picked := render.Choices(set)
	if !picked[0].Selected || picked[1].Selected || !picked[2].Selected {
		t.Fatalf("unexpected multi selection: %+v", picked)
	}

	if render.Choices(model.MustElement(model.Descriptor{Type: "text"})) != nil {
		t.Fatalf("non-choice elements have no choices")
	}
}

func TestPrepareChoices_UnshiftsPlaceholderOnce(t *testing.T) {
	sel := model.MustElement(model.Descriptor{
		Type:   "select",
		Extra:  map[string]any{"placeholder": "Pick one"},
		Values: []model.Descriptor{{Value: "a", Label: "A"}},
	})

	added, err := render.PrepareChoices(sel)
	if err != nil || !added {
		t.Fatalf("expected placeholder to be added, got %v %v", added, err)
	}
	added, err = render.PrepareChoices(sel)
	if err != nil || added {
		t.Fatalf("expected second call to be a no-op, got %v %v", added, err)
	}

	children := sel.Children()
	if children.Len() != 2 {
		t.Fatalf("expected 2 children, got %d", children.Len())
	}
	first := children.At(0)
	if first.Kind() != model.KindOption || first.Value() != "" || first.Label() != "Pick one" {
		t.Fatalf("unexpected placeholder option: %v", first.Attributes())
	}
	if disabled, _ := first.Get("disabled"); disabled != true {
		t.Fatalf("placeholder must be disabled")
	}

	plain := model.MustElement(model.Descriptor{Type: "select", Values: []model.Descriptor{{Value: "a"}}})
	if added, _ := render.PrepareChoices(plain); added {
		t.Fatalf("no placeholder attribute means no option")
	}
	radios := model.MustElement(model.Descriptor{Type: "radioset", Extra: map[string]any{"placeholder": "x"}})
	if added, _ := render.PrepareChoices(radios); added {
		t.Fatalf("only selects get placeholders")
	}
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		value any
		want  bool
	}{
		{nil, false},
		{true, true},
		{false, false},
		{"on", true},
		{" Checked ", true},
		{"off", false},
		{"", false},
		{1, true},
		{0, false},
		{0.5, true},
	}
	for _, tc := range cases {
		if got := render.Truthy(tc.value); got != tc.want {
			t.Fatalf("Truthy(%#v) = %v, want %v", tc.value, got, tc.want)
		}
	}
}
