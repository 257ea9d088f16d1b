package descriptor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbind/pkg/model"
)

// ExtensionKey lets a schema property override descriptor attributes, e.g.
// `x-formbind: {type: textarea, placeholder: "..."}`.
const ExtensionKey = "x-formbind"

// FromOpenAPI builds one descriptor per property of the named component
// schema. Required properties come first, each group sorted by name. Every
// descriptor is bound through `related_key` to its property name.
func FromOpenAPI(ctx context.Context, data []byte, schemaName string, opts ...Option) ([]model.Descriptor, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("descriptor: openapi document payload is empty")
	}
	cfg := newOptions(opts)

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: false,
	}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("descriptor: load openapi document: %w", err)
	}
	if (doc.Paths == nil || doc.Paths.Len() == 0) && !cfg.partial {
		return nil, errors.New("descriptor: openapi document does not contain any paths")
	}
	if doc.Components == nil || doc.Components.Schemas == nil {
		return nil, fmt.Errorf("descriptor: openapi schema %q not found", schemaName)
	}
	ref, ok := doc.Components.Schemas[schemaName]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("descriptor: openapi schema %q not found", schemaName)
	}
	schema := ref.Value
	if len(schema.Properties) == 0 {
		return nil, fmt.Errorf("descriptor: openapi schema %q has no properties", schemaName)
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		if required[names[i]] != required[names[j]] {
			return required[names[i]]
		}
		return names[i] < names[j]
	})

	descriptors := make([]model.Descriptor, 0, len(names))
	for _, name := range names {
		prop := schema.Properties[name]
		if prop == nil || prop.Value == nil {
			continue
		}
		d, err := propertyDescriptor(name, prop.Value, required[name], cfg)
		if err != nil {
			return nil, fmt.Errorf("descriptor: openapi schema %q property %q: %w", schemaName, name, err)
		}
		descriptors = append(descriptors, d)
	}

	if err := cfg.decorate(descriptors); err != nil {
		return nil, fmt.Errorf("descriptor: decorate openapi schema %q: %w", schemaName, err)
	}
	return descriptors, nil
}

func propertyDescriptor(name string, schema *openapi3.Schema, required bool, cfg options) (model.Descriptor, error) {
	label := schema.Title
	if cfg.sanitize {
		label = SanitizeLabel(label)
	}
	if label == "" {
		label = cfg.labeler(name)
	}

	d := model.Descriptor{
		Type:       string(kindFor(schema)),
		Name:       name,
		Label:      label,
		RelatedKey: name,
		Value:      schema.Default,
	}
	if schema.Description != "" {
		d.Extra = map[string]any{"help": schema.Description}
	}

	if len(schema.Enum) > 0 {
		for _, option := range schema.Enum {
			d.Values = append(d.Values, model.Descriptor{
				Value: option,
				Label: fmt.Sprint(option),
			})
		}
	}

	d.Rules = schemaRules(schema, required)

	if raw, ok := schema.Extensions[ExtensionKey].(map[string]any); ok {
		override, err := model.DescriptorFromMap(raw)
		if err != nil {
			return model.Descriptor{}, err
		}
		mergeOverride(&d, override)
	}
	return d, nil
}

func kindFor(schema *openapi3.Schema) model.Kind {
	if len(schema.Enum) > 0 {
		return model.KindSelect
	}
	switch schemaType(schema.Type) {
	case openapi3.TypeBoolean:
		return model.KindCheckbox
	case openapi3.TypeInteger, openapi3.TypeNumber:
		return model.KindNumber
	}
	switch schema.Format {
	case "email":
		return model.KindEmail
	case "password":
		return model.KindPassword
	}
	if schema.MaxLength != nil && *schema.MaxLength > 255 {
		return model.KindTextarea
	}
	return model.KindText
}

func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value != openapi3.TypeNull {
			return value
		}
	}
	return ""
}

func schemaRules(schema *openapi3.Schema, required bool) []model.ValidationRule {
	var rules []model.ValidationRule
	if required {
		rules = append(rules, model.ValidationRule{Kind: model.ValidationRuleRequired})
	}
	if schema.Min != nil {
		rules = append(rules, boundRule(model.ValidationRuleMin, *schema.Min, schema.ExclusiveMin))
	}
	if schema.Max != nil {
		rules = append(rules, boundRule(model.ValidationRuleMax, *schema.Max, schema.ExclusiveMax))
	}
	if schema.MinLength > 0 {
		rules = append(rules, model.ValidationRule{
			Kind:   model.ValidationRuleMinLength,
			Params: map[string]string{"value": strconv.FormatUint(schema.MinLength, 10)},
		})
	}
	if schema.MaxLength != nil {
		rules = append(rules, model.ValidationRule{
			Kind:   model.ValidationRuleMaxLength,
			Params: map[string]string{"value": strconv.FormatUint(*schema.MaxLength, 10)},
		})
	}
	if pattern := strings.TrimSpace(schema.Pattern); pattern != "" {
		rules = append(rules, model.ValidationRule{
			Kind:   model.ValidationRulePattern,
			Params: map[string]string{"pattern": pattern},
		})
	}
	return rules
}

func boundRule(kind string, limit float64, exclusive bool) model.ValidationRule {
	params := map[string]string{"value": strconv.FormatFloat(limit, 'f', -1, 64)}
	if exclusive {
		params["exclusive"] = "true"
	}
	return model.ValidationRule{Kind: kind, Params: params}
}

func mergeOverride(d *model.Descriptor, override model.Descriptor) {
	if override.Type != "" {
		d.Type = override.Type
		if !model.Kind(d.Type).Grouping() {
			d.Values = nil
		}
	}
	if override.ID != "" {
		d.ID = override.ID
	}
	if override.Label != "" {
		d.Label = override.Label
	}
	if override.ErrorClass != "" {
		d.ErrorClass = override.ErrorClass
	}
	if override.Value != nil {
		d.Value = override.Value
	}
	if len(override.Values) > 0 {
		d.Values = override.Values
	}
	d.Rules = append(d.Rules, override.Rules...)
	for key, value := range override.Extra {
		if d.Extra == nil {
			d.Extra = make(map[string]any)
		}
		d.Extra[key] = value
	}
}
