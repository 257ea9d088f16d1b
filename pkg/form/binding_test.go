package form

import (
	"testing"

	"github.com/goliatone/go-formbind/pkg/model"
	"github.com/goliatone/go-formbind/pkg/observable"
)

func TestBind_SkipsElementsWithoutRelatedKey(t *testing.T) {
	list := model.MustElementList([]model.Descriptor{
		{Type: "text", RelatedKey: "foo"},
		{Type: "text", Value: "kept"},
		{Type: "select", RelatedKey: "color", Values: []model.Descriptor{{Value: "red"}}},
	})
	related := observable.New(map[string]any{"foo": "A", "color": "red"})

	b := Bind(list, related)
	defer b.Dispose()

	if b.Len() != 2 {
		t.Fatalf("expected 2 bound elements, got %d", b.Len())
	}
	if b.Related() != observable.Observable(related) {
		t.Fatalf("unexpected related model")
	}
	if got := list.At(1).Value(); got != "kept" {
		t.Fatalf("unbound element touched: %v", got)
	}
	if got := list.At(2).Children().At(0).Value(); got != "red" {
		t.Fatalf("option value changed: %v", got)
	}
}

func TestBind_TagsWritesWithOrigin(t *testing.T) {
	list := model.MustElementList([]model.Descriptor{{Type: "text", RelatedKey: "foo"}})
	related := observable.New(map[string]any{"foo": "A"})
	b := Bind(list, related)

	var elementOrigins, relatedOrigins []*observable.Provenance
	list.At(0).OnChange(model.AttrValue, func(c observable.Change) {
		elementOrigins = append(elementOrigins, c.Options.Origin)
	})
	related.OnChange("foo", func(c observable.Change) {
		relatedOrigins = append(relatedOrigins, c.Options.Origin)
	})

	related.Set("foo", "B")
	list.At(0).Set(model.AttrValue, "C")

	if len(elementOrigins) != 2 || elementOrigins[0] != b.Origin(list.At(0)) || elementOrigins[1] != nil {
		t.Fatalf("unexpected element origins: %v", elementOrigins)
	}
	if len(relatedOrigins) != 2 || relatedOrigins[0] != nil || relatedOrigins[1] != b.Origin(list.At(0)) {
		t.Fatalf("unexpected related origins: %v", relatedOrigins)
	}
}

func TestBind_EachPassHasItsOwnOrigin(t *testing.T) {
	list := model.MustElementList([]model.Descriptor{{Type: "text", RelatedKey: "foo"}})
	related := observable.New(nil)

	first := Bind(list, related)
	first.Dispose()
	second := Bind(list, related)
	defer second.Dispose()

	if first.Origin(list.At(0)) == second.Origin(list.At(0)) {
		t.Fatalf("expected distinct provenance tokens per bind")
	}
}

func TestBind_ElementsSharingRelatedKeyStayInSync(t *testing.T) {
	list := model.MustElementList([]model.Descriptor{
		{Type: "text", RelatedKey: "foo"},
		{Type: "hidden", RelatedKey: "foo"},
	})
	related := observable.New(map[string]any{"foo": "A"})
	b := Bind(list, related)
	defer b.Dispose()

	if b.Origin(list.At(0)) == b.Origin(list.At(1)) {
		t.Fatalf("expected a provenance token per element")
	}

	list.At(0).Set(model.AttrValue, "B")
	if got := related.Value("foo"); got != "B" {
		t.Fatalf("related foo = %v, want B", got)
	}
	if got := list.At(1).Value(); got != "B" {
		t.Fatalf("sibling element = %v, want B", got)
	}

	related.Set("foo", "C")
	for i := 0; i < list.Len(); i++ {
		if got := list.At(i).Value(); got != "C" {
			t.Fatalf("element %d = %v, want C", i, got)
		}
	}
}

func TestBind_ElementUnsetUnsetsRelatedKey(t *testing.T) {
	list := model.MustElementList([]model.Descriptor{{Type: "text", RelatedKey: "foo"}})
	related := observable.New(map[string]any{"foo": "A"})
	b := Bind(list, related)
	defer b.Dispose()

	list.At(0).Unset(model.AttrValue)

	if value, ok := related.Get("foo"); ok {
		t.Fatalf("expected foo to be unset, got %v", value)
	}
	if _, ok := list.At(0).Get(model.AttrValue); ok {
		t.Fatalf("expected element value to stay unset")
	}
}

func TestBind_ElementUnsetFallsBackToNilWithoutUnsetter(t *testing.T) {
	list := model.MustElementList([]model.Descriptor{{Type: "text", RelatedKey: "foo"}})
	related := setOnly{observable.New(map[string]any{"foo": "A"})}
	b := Bind(list, related)
	defer b.Dispose()

	list.At(0).Unset(model.AttrValue)

	value, ok := related.Get("foo")
	if !ok || value != nil {
		t.Fatalf("expected foo=nil, got (%v, %v)", value, ok)
	}
}

// setOnly hides Unset so the binding falls back to Set.
type setOnly struct {
	m *observable.Model
}

func (s setOnly) Get(key string) (any, bool) { return s.m.Get(key) }

func (s setOnly) Set(key string, value any, opts ...observable.Options) { s.m.Set(key, value, opts...) }

func (s setOnly) OnChange(key string, fn observable.Listener) observable.Subscription {
	return s.m.OnChange(key, fn)
}

func TestBinding_DisposeStopsPropagation(t *testing.T) {
	list := model.MustElementList([]model.Descriptor{{Type: "text", RelatedKey: "foo"}})
	related := observable.New(map[string]any{"foo": "A"})
	b := Bind(list, related)

	b.Dispose()
	b.Dispose()

	if b.Active() {
		t.Fatalf("expected binding to be inactive")
	}
	if got := related.ListenerCount(""); got != 0 {
		t.Fatalf("expected no related listeners, got %d", got)
	}

	related.Set("foo", "B")
	if got := list.At(0).Value(); got != "A" {
		t.Fatalf("disposed binding pushed %v", got)
	}
	list.At(0).Set(model.AttrValue, "C")
	if got := related.Value("foo"); got != "B" {
		t.Fatalf("disposed binding pulled %v", got)
	}

	b.Add(list.At(0))
	if b.Len() != 0 {
		t.Fatalf("add after dispose must be a no-op")
	}
}

func TestBinding_AddIsIdempotent(t *testing.T) {
	list := model.MustElementList([]model.Descriptor{{Type: "text", RelatedKey: "foo"}})
	related := observable.New(map[string]any{"foo": "A"})
	b := Bind(list, related)
	defer b.Dispose()

	b.Add(list.At(0))
	if got := related.ListenerCount(observable.ChangeEvent("foo")); got != 1 {
		t.Fatalf("expected a single subscription, got %d", got)
	}
}

func TestBinding_NilHandle(t *testing.T) {
	var b *Binding
	b.Dispose()
	b.Add(model.MustElement(model.Descriptor{Type: "text", RelatedKey: "foo"}))
	if b.Active() || b.Len() != 0 || b.Elements() != nil || b.Related() != nil || b.Origin(nil) != nil {
		t.Fatalf("nil binding should behave as empty")
	}
}
