package render

import (
	"strings"

	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/model"
)

// Node kinds in a Snapshot.
const (
	NodeField         = "field"
	NodeFieldsetOpen  = "fieldset_open"
	NodeFieldsetClose = "fieldset_close"
)

// Snapshot is a flat, read-only view of a Form. Fieldsets become open/close
// node pairs so templates never recurse.
type Snapshot struct {
	Name   string        `json:"name"`
	Action string        `json:"action,omitempty"`
	Method string        `json:"method"`
	Hidden []HiddenField `json:"hidden,omitempty"`
	Nodes  []Node        `json:"nodes"`
	Valid  bool          `json:"valid"`
}

// Node is one entry of a Snapshot.
type Node struct {
	Kind  string     `json:"kind"`
	Field *FieldView `json:"field,omitempty"`
}

// FieldView is the presentation of a single element.
type FieldView struct {
	ID         string       `json:"id"`
	Type       string       `json:"type"`
	Name       string       `json:"name,omitempty"`
	Key        string       `json:"key"`
	Label      string       `json:"label,omitempty"`
	Value      any          `json:"value,omitempty"`
	Display    string       `json:"display,omitempty"`
	Control    string       `json:"control"`
	InputType  string       `json:"input_type,omitempty"`
	Class      string       `json:"class"`
	Attrs      []Attr       `json:"attrs,omitempty"`
	Checked    bool         `json:"checked,omitempty"`
	Error      string       `json:"error,omitempty"`
	ErrorClass string       `json:"error_class,omitempty"`
	Choices    []ChoiceView `json:"choices,omitempty"`
}

// ChoiceView is the presentation of one choice.
type ChoiceView struct {
	Value    any    `json:"value"`
	Display  string `json:"display"`
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Controls chosen per element kind.
const (
	ControlInput    = "input"
	ControlTextarea = "textarea"
	ControlCheckbox = "checkbox"
	ControlSelect   = "select"
	ControlChoices  = "choices"
	ControlButtons  = "buttons"
	ControlButton   = "button"
)

// TakeSnapshot builds the view of f. Select placeholders are installed on the
// way through (see PrepareChoices). Current error state is reported as is;
// validators are not re-run.
func TakeSnapshot(f *form.Form, options Options) (Snapshot, error) {
	if f == nil {
		return Snapshot{}, ErrNilForm
	}
	set := options.attributeSet()
	snap := Snapshot{
		Name:   f.Name(),
		Action: options.Action,
		Method: options.method(),
		Hidden: options.hiddenFields(),
		Valid:  f.Errors() == nil,
	}
	for _, e := range f.Elements().Elements() {
		nodes, err := elementNodes(e, set)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Nodes = append(snap.Nodes, nodes...)
	}
	return snap, nil
}

func elementNodes(e *model.Element, set AttributeSet) ([]Node, error) {
	if e.Kind() == model.KindFieldset {
		nodes := []Node{{Kind: NodeFieldsetOpen, Field: fieldView(e, set)}}
		for _, child := range e.Children().Elements() {
			childNodes, err := elementNodes(child, set)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, childNodes...)
		}
		return append(nodes, Node{Kind: NodeFieldsetClose}), nil
	}
	if _, err := PrepareChoices(e); err != nil {
		return nil, err
	}
	return []Node{{Kind: NodeField, Field: fieldView(e, set)}}, nil
}

func fieldView(e *model.Element, set AttributeSet) *FieldView {
	view := &FieldView{
		ID:      e.ID(),
		Type:    e.Type(),
		Name:    e.Name(),
		Key:     e.Key(),
		Label:   e.Label(),
		Value:   e.Value(),
		Display: display(e.Value()),
		Class:   strings.Join(set.Classes(e), " "),
		Attrs:   set.Attrs(e),
		Error:   e.ErrorMessage(),
	}
	if view.Error != "" {
		view.ErrorClass = set.ErrorClass(e)
	}
	view.Control, view.InputType = control(e.Kind())
	if view.Control == ControlCheckbox {
		view.Checked = Truthy(e.Value())
	}
	for _, choice := range Choices(e) {
		view.Choices = append(view.Choices, ChoiceView{
			Value:    choice.Value,
			Display:  display(choice.Value),
			Label:    choice.Label,
			Selected: choice.Selected,
			Disabled: choice.Disabled,
		})
	}
	return view
}

func control(kind model.Kind) (string, string) {
	switch kind {
	case model.KindTextarea:
		return ControlTextarea, ""
	case model.KindCheckbox:
		return ControlCheckbox, "checkbox"
	case model.KindSelect:
		return ControlSelect, ""
	case model.KindRadioset:
		return ControlChoices, "radio"
	case model.KindCheckboxset:
		return ControlChoices, "checkbox"
	case model.KindButtonset:
		return ControlButtons, ""
	case model.KindSubmit:
		return ControlButton, "submit"
	case model.KindReset:
		return ControlButton, "reset"
	case model.KindButton:
		return ControlButton, "button"
	case model.KindText, model.KindEmail, model.KindPassword, model.KindNumber, model.KindHidden, model.KindRadio:
		return ControlInput, string(kind)
	default:
		return ControlInput, "text"
	}
}
