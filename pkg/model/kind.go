package model

// Kind is the element type. Any non-empty string is a valid kind; the
// constants below are the kinds the engine and bundled renderers know about.
type Kind string

const (
	KindText     Kind = "text"
	KindTextarea Kind = "textarea"
	KindPassword Kind = "password"
	KindEmail    Kind = "email"
	KindNumber   Kind = "number"
	KindHidden   Kind = "hidden"
	KindCheckbox Kind = "checkbox"
	KindOption   Kind = "option"
	KindRadio    Kind = "radio"
	KindButton   Kind = "button"
	KindSubmit   Kind = "submit"
	KindReset    Kind = "reset"

	KindSelect      Kind = "select"
	KindRadioset    Kind = "radioset"
	KindButtonset   Kind = "buttonset"
	KindCheckboxset Kind = "checkboxset"
	KindFieldset    Kind = "fieldset"
)

// Grouping reports whether elements of this kind own a child ElementList.
func (k Kind) Grouping() bool {
	switch k {
	case KindSelect, KindRadioset, KindButtonset, KindCheckboxset, KindFieldset:
		return true
	default:
		return false
	}
}

// Choice reports whether the kind picks its value among its children.
func (k Kind) Choice() bool {
	return k.Grouping() && k != KindFieldset
}

// ChildKind is the type assigned to child descriptors that omit one. Fieldset
// children must declare their own type.
func (k Kind) ChildKind() Kind {
	switch k {
	case KindSelect:
		return KindOption
	case KindRadioset:
		return KindRadio
	case KindButtonset:
		return KindButton
	case KindCheckboxset:
		return KindCheckbox
	default:
		return ""
	}
}

// Button reports whether the kind renders as a button.
func (k Kind) Button() bool {
	switch k {
	case KindButton, KindSubmit, KindReset:
		return true
	default:
		return false
	}
}

// Input reports whether the kind carries user data a form should collect.
func (k Kind) Input() bool {
	return !k.Button()
}

func (k Kind) String() string {
	return string(k)
}
