package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formbind/pkg/model"
	"github.com/goliatone/go-formbind/pkg/observable"
)

// DefaultClassName is the base class every element carries.
const DefaultClassName = "element"

// DefaultAttributeKeys are copied from an element onto its control when set.
var DefaultAttributeKeys = []string{
	model.AttrID, model.AttrName, "placeholder", "disabled", "readonly",
	"required", "autocomplete", "min", "max", "step", "rows", "cols", "multiple",
}

// AttributeSet is the attribute contract shared by every element
// presentation. Presentations hold one and delegate to it instead of
// computing classes and attributes on their own.
type AttributeSet struct {
	// Keys lists the element attributes copied onto the control.
	Keys []string
	// ClassName is the base class. Empty means DefaultClassName.
	ClassName string
}

// DefaultAttributeSet returns an AttributeSet using DefaultAttributeKeys.
func DefaultAttributeSet() AttributeSet {
	return AttributeSet{
		Keys:      append([]string(nil), DefaultAttributeKeys...),
		ClassName: DefaultClassName,
	}
}

func (s AttributeSet) className() string {
	if name := strings.TrimSpace(s.ClassName); name != "" {
		return name
	}
	return DefaultClassName
}

// ErrorClass is the class added while e has an error:
// "<ClassName>-<error_class>", e.g. "element-error".
func (s AttributeSet) ErrorClass(e *model.Element) string {
	return s.className() + "-" + e.ErrorClass()
}

// Classes returns the classes for e in a stable order: the base class,
// "type-<type>", "type-button" for submit and reset, any classes from the
// element's own `class` attribute, then the error class when applicable.
func (s AttributeSet) Classes(e *model.Element) []string {
	classes := []string{s.className(), "type-" + e.Type()}
	if kind := e.Kind(); kind == model.KindSubmit || kind == model.KindReset {
		classes = append(classes, "type-button")
	}
	if extra, ok := e.Get("class"); ok {
		classes = append(classes, strings.Fields(fmt.Sprint(extra))...)
	}
	if e.HasError() {
		classes = append(classes, s.ErrorClass(e))
	}
	return classes
}

// Compute returns the attribute map for e: `class` plus every configured key
// that is set. `id` always resolves through Element.ID so labels can target
// the control.
func (s AttributeSet) Compute(e *model.Element) map[string]any {
	out := map[string]any{"class": strings.Join(s.Classes(e), " ")}
	for _, key := range s.Keys {
		if key == model.AttrID {
			out[key] = e.ID()
			continue
		}
		if value, ok := e.Get(key); ok && value != nil {
			out[key] = value
		}
	}
	return out
}

// Attr is a single rendered attribute. Flag attributes render without a
// value.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
	Flag  bool   `json:"flag,omitempty"`
}

// Attrs is Compute flattened into sorted Attr entries. `class` is left out;
// false booleans are dropped.
func (s AttributeSet) Attrs(e *model.Element) []Attr {
	computed := s.Compute(e)
	delete(computed, "class")

	names := make([]string, 0, len(computed))
	for name := range computed {
		names = append(names, name)
	}
	sort.Strings(names)

	attrs := make([]Attr, 0, len(names))
	for _, name := range names {
		switch value := computed[name].(type) {
		case bool:
			if value {
				attrs = append(attrs, Attr{Name: name, Flag: true})
			}
		default:
			attrs = append(attrs, Attr{Name: name, Value: display(value)})
		}
	}
	return attrs
}

// Choice is the presentation of one child of a choice element.
type Choice struct {
	Element  *model.Element
	Value    any
	Label    string
	Selected bool
	Disabled bool
}

// Choices returns the children of a choice element. A child is selected when
// its value equals the parent value, or is contained in it when the parent
// holds a list. Non-choice elements return nil.
func Choices(e *model.Element) []Choice {
	if !e.Kind().Choice() || e.Children() == nil {
		return nil
	}
	parent := e.Value()
	out := make([]Choice, 0, e.Children().Len())
	e.Children().Each(func(_ int, child *model.Element) {
		value := child.Value()
		label := child.Label()
		if label == "" {
			label = display(value)
		}
		disabled, _ := child.Get("disabled")
		out = append(out, Choice{
			Element:  child,
			Value:    value,
			Label:    label,
			Selected: selected(parent, value),
			Disabled: Truthy(disabled),
		})
	})
	return out
}

const placeholderChoiceAttr = "placeholder_choice"

// PrepareChoices installs the placeholder option of a select element: when
// the element has a `placeholder`, a disabled option with an empty value and
// the placeholder as label is unshifted onto its children. It runs once per
// element and reports whether an option was added.
func PrepareChoices(e *model.Element) (bool, error) {
	if e.Kind() != model.KindSelect || e.Children() == nil {
		return false, nil
	}
	placeholder, _ := e.Get("placeholder")
	label := strings.TrimSpace(display(placeholder))
	if label == "" {
		return false, nil
	}
	if first := e.Children().At(0); first != nil {
		if marker, _ := first.Get(placeholderChoiceAttr); marker == true {
			return false, nil
		}
	}
	_, err := e.Children().Unshift(model.Descriptor{
		Value: "",
		Label: label,
		Extra: map[string]any{"disabled": true, placeholderChoiceAttr: true},
	})
	if err != nil {
		return false, fmt.Errorf("render: placeholder for %s: %w", e.ID(), err)
	}
	return true, nil
}

func selected(parent, value any) bool {
	if parent == nil {
		return false
	}
	if list, ok := parent.([]any); ok {
		for _, item := range list {
			if observable.Equal(item, value) {
				return true
			}
		}
		return false
	}
	if list, ok := parent.([]string); ok {
		for _, item := range list {
			if observable.Equal(item, value) {
				return true
			}
		}
		return false
	}
	return observable.Equal(parent, value)
}

// Truthy reports whether an attribute value reads as "on": true, a non-zero
// number, or one of "1", "true", "on", "yes", "checked".
func Truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "on", "yes", "checked":
			return true
		}
	case int:
		return v != 0
	case float64:
		return v != 0
	}
	return false
}

func display(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
