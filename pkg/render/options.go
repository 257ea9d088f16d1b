package render

import (
	"fmt"
	"sort"
	"strings"
)

// Options describe per-call data a renderer can use without touching the
// form itself.
type Options struct {
	// Action and Method fill the HTML form tag. Method defaults to POST.
	Action string
	Method string
	// Hidden inputs emitted ahead of the elements, e.g. a CSRF token.
	Hidden map[string]any
	// Attributes overrides the default attribute contract.
	Attributes *AttributeSet
}

// HiddenField is a normalised hidden input.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (o Options) method() string {
	if method := strings.ToUpper(strings.TrimSpace(o.Method)); method != "" {
		return method
	}
	return "POST"
}

func (o Options) attributeSet() AttributeSet {
	if o.Attributes != nil {
		return *o.Attributes
	}
	return DefaultAttributeSet()
}

// hiddenFields sorts hidden inputs by name. Blank names are dropped.
func (o Options) hiddenFields() []HiddenField {
	if len(o.Hidden) == 0 {
		return nil
	}
	out := make([]HiddenField, 0, len(o.Hidden))
	for name, value := range o.Hidden {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		out = append(out, HiddenField{Name: trimmed, Value: fmt.Sprint(value)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
