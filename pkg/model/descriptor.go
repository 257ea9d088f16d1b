package model

import (
	"fmt"
	"strings"
)

// Attribute names recognised by Element.
const (
	AttrType       = "type"
	AttrID         = "id"
	AttrName       = "name"
	AttrValue      = "value"
	AttrLabel      = "label"
	AttrRelatedKey = "related_key"
	AttrValidator  = "validator"
	AttrErrorClass = "error_class"
	AttrError      = "error"

	// DefaultErrorClass is applied when a descriptor does not set one.
	DefaultErrorClass = "error"
)

// Descriptor is the construction input for an Element. Extra keys are
// copied onto the element as ordinary attributes.
type Descriptor struct {
	Type       string
	ID         string
	Name       string
	Value      any
	Label      string
	RelatedKey string
	Validator  Validator
	Rules      []ValidationRule
	ErrorClass string
	// Values holds child descriptors for grouping kinds.
	Values []Descriptor
	Extra  map[string]any
}

// DescriptorFromMap converts a plain mapping into a Descriptor. Recognised
// keys are typed; `options` is accepted as an alias of `values`; everything
// else lands in Extra.
func DescriptorFromMap(raw map[string]any) (Descriptor, error) {
	var d Descriptor
	for key, value := range raw {
		switch key {
		case AttrType:
			d.Type = stringOf(value)
		case AttrID:
			d.ID = stringOf(value)
		case AttrName:
			d.Name = stringOf(value)
		case AttrValue:
			d.Value = value
		case AttrLabel:
			d.Label = stringOf(value)
		case AttrRelatedKey:
			d.RelatedKey = stringOf(value)
		case AttrErrorClass:
			d.ErrorClass = stringOf(value)
		case AttrValidator:
			v, ok := asValidator(value)
			if !ok && value != nil {
				return Descriptor{}, fmt.Errorf("model: descriptor validator has unsupported type %T", value)
			}
			d.Validator = v
		case "rules":
			rules, err := rulesFromAny(value)
			if err != nil {
				return Descriptor{}, err
			}
			d.Rules = rules
		case "values", "options":
			children, err := descriptorsFromAny(value)
			if err != nil {
				return Descriptor{}, err
			}
			d.Values = append(d.Values, children...)
		default:
			if d.Extra == nil {
				d.Extra = make(map[string]any)
			}
			d.Extra[key] = value
		}
	}
	return d, nil
}

// attributes returns the initial attribute map for an Element built from d.
func (d Descriptor) attributes(validator Validator) map[string]any {
	attrs := make(map[string]any, len(d.Extra)+8)
	for key, value := range d.Extra {
		attrs[key] = value
	}
	attrs[AttrType] = strings.TrimSpace(d.Type)
	if d.ID != "" {
		attrs[AttrID] = d.ID
	}
	if d.Name != "" {
		attrs[AttrName] = d.Name
	}
	if d.Value != nil {
		attrs[AttrValue] = d.Value
	}
	if d.Label != "" {
		attrs[AttrLabel] = d.Label
	}
	if d.RelatedKey != "" {
		attrs[AttrRelatedKey] = d.RelatedKey
	}
	if validator != nil {
		attrs[AttrValidator] = validator
	}
	errorClass := strings.TrimSpace(d.ErrorClass)
	if errorClass == "" {
		errorClass = DefaultErrorClass
	}
	attrs[AttrErrorClass] = errorClass
	delete(attrs, AttrError)
	return attrs
}

func asValidator(value any) (Validator, bool) {
	switch fn := value.(type) {
	case Validator:
		return fn, fn != nil
	case func(any) string:
		return Validator(fn), fn != nil
	default:
		return nil, false
	}
}

func descriptorsFromAny(value any) ([]Descriptor, error) {
	switch typed := value.(type) {
	case nil:
		return nil, nil
	case []Descriptor:
		return typed, nil
	case []map[string]any:
		out := make([]Descriptor, 0, len(typed))
		for _, item := range typed {
			d, err := DescriptorFromMap(item)
			if err != nil {
				return nil, err
			}
			out = append(out, d)
		}
		return out, nil
	case []any:
		out := make([]Descriptor, 0, len(typed))
		for _, item := range typed {
			switch entry := item.(type) {
			case Descriptor:
				out = append(out, entry)
			case map[string]any:
				d, err := DescriptorFromMap(entry)
				if err != nil {
					return nil, err
				}
				out = append(out, d)
			default:
				return nil, fmt.Errorf("model: unsupported child descriptor %T", item)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("model: unsupported values %T", value)
	}
}

func rulesFromAny(value any) ([]ValidationRule, error) {
	switch typed := value.(type) {
	case nil:
		return nil, nil
	case []ValidationRule:
		return typed, nil
	case []any:
		out := make([]ValidationRule, 0, len(typed))
		for _, item := range typed {
			entry, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("model: unsupported rule %T", item)
			}
			rule := ValidationRule{
				Kind:    stringOf(entry["kind"]),
				Message: stringOf(entry["message"]),
			}
			if params, ok := entry["params"].(map[string]any); ok {
				rule.Params = make(map[string]string, len(params))
				for key, param := range params {
					rule.Params[key] = fmt.Sprint(param)
				}
			}
			out = append(out, rule)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("model: unsupported rules %T", value)
	}
}

func stringOf(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	default:
		return fmt.Sprint(typed)
	}
}
