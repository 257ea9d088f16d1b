package model

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	ValidationRuleRequired  = "required"
	ValidationRuleMin       = "min"
	ValidationRuleMax       = "max"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
)

// Validator maps a value to an error message. An empty string means the
// value is valid.
type Validator func(value any) string

// ValidationRule is a declarative constraint. Numeric bounds and length
// limits encode their threshold in Params["value"] while pattern rules keep
// the expression in Params["pattern"]. Boolean flags such as exclusivity are
// encoded as strings. Message overrides the default error text.
type ValidationRule struct {
	Kind    string            `json:"kind" yaml:"kind"`
	Params  map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	Message string            `json:"message,omitempty" yaml:"message,omitempty"`
}

// ChainValidators runs validators in order and returns the first message.
func ChainValidators(validators ...Validator) Validator {
	var active []Validator
	for _, v := range validators {
		if v != nil {
			active = append(active, v)
		}
	}
	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}
	return func(value any) string {
		for _, v := range active {
			if msg := v(value); msg != "" {
				return msg
			}
		}
		return ""
	}
}

// CompileRules turns rules into a single Validator. Rules other than
// required accept absent or empty values.
func CompileRules(rules []ValidationRule) (Validator, error) {
	validators := make([]Validator, 0, len(rules))
	for _, rule := range rules {
		v, err := compileRule(rule)
		if err != nil {
			return nil, err
		}
		validators = append(validators, v)
	}
	return ChainValidators(validators...), nil
}

func compileRule(rule ValidationRule) (Validator, error) {
	kind := strings.TrimSpace(rule.Kind)
	switch kind {
	case ValidationRuleRequired:
		msg := messageOr(rule.Message, "This field is required.")
		return func(value any) string {
			if isEmpty(value) {
				return msg
			}
			return ""
		}, nil

	case ValidationRuleMin, ValidationRuleMax:
		limit, err := ruleFloat(rule, "value")
		if err != nil {
			return nil, err
		}
		exclusive := strings.EqualFold(rule.Params["exclusive"], "true")
		msg := boundMessage(kind, rule, exclusive)
		return func(value any) string {
			if isEmpty(value) {
				return ""
			}
			number, ok := toFloat(value)
			if !ok {
				return "Must be a number."
			}
			if kind == ValidationRuleMin && (number < limit || (exclusive && number == limit)) {
				return msg
			}
			if kind == ValidationRuleMax && (number > limit || (exclusive && number == limit)) {
				return msg
			}
			return ""
		}, nil

	case ValidationRuleMinLength, ValidationRuleMaxLength:
		limit, err := ruleInt(rule, "value")
		if err != nil {
			return nil, err
		}
		var msg string
		if kind == ValidationRuleMinLength {
			msg = messageOr(rule.Message, fmt.Sprintf("Must be at least %d characters.", limit))
		} else {
			msg = messageOr(rule.Message, fmt.Sprintf("Must be at most %d characters.", limit))
		}
		return func(value any) string {
			if isEmpty(value) {
				return ""
			}
			length := utf8.RuneCountInString(fmt.Sprint(value))
			if kind == ValidationRuleMinLength && length < limit {
				return msg
			}
			if kind == ValidationRuleMaxLength && length > limit {
				return msg
			}
			return ""
		}, nil

	case ValidationRulePattern:
		expr := rule.Params["pattern"]
		if expr == "" {
			return nil, fmt.Errorf("model: rule %q requires a pattern", kind)
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("model: rule %q: %w", kind, err)
		}
		msg := messageOr(rule.Message, "Invalid format.")
		return func(value any) string {
			if isEmpty(value) {
				return ""
			}
			if !re.MatchString(fmt.Sprint(value)) {
				return msg
			}
			return ""
		}, nil
	}
	return nil, fmt.Errorf("model: unknown validation rule %q", rule.Kind)
}

func boundMessage(kind string, rule ValidationRule, exclusive bool) string {
	if rule.Message != "" {
		return rule.Message
	}
	limit := rule.Params["value"]
	switch {
	case kind == ValidationRuleMin && exclusive:
		return "Must be greater than " + limit + "."
	case kind == ValidationRuleMin:
		return "Must be at least " + limit + "."
	case exclusive:
		return "Must be less than " + limit + "."
	default:
		return "Must be at most " + limit + "."
	}
}

func ruleFloat(rule ValidationRule, param string) (float64, error) {
	raw := strings.TrimSpace(rule.Params[param])
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("model: rule %q: invalid %s %q", rule.Kind, param, raw)
	}
	return value, nil
}

func ruleInt(rule ValidationRule, param string) (int, error) {
	raw := strings.TrimSpace(rule.Params[param])
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("model: rule %q: invalid %s %q", rule.Kind, param, raw)
	}
	return value, nil
}

func messageOr(message, fallback string) string {
	if trimmed := strings.TrimSpace(message); trimmed != "" {
		return trimmed
	}
	return fallback
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	if str, ok := value.(string); ok {
		return strings.TrimSpace(str) == ""
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	}
	return false
}

func toFloat(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case uint:
		return float64(typed), true
	case uint64:
		return float64(typed), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}
