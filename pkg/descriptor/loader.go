package descriptor

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbind/pkg/model"
)

const elementsKey = "elements"

// Parse decodes a descriptor document. JSON is tried first, then YAML.
// source names the document in error messages.
func Parse(data []byte, source string, opts ...Option) ([]model.Descriptor, error) {
	cfg := newOptions(opts)

	raw, err := decode(data, source)
	if err != nil {
		return nil, err
	}

	items, err := elementItems(raw, source)
	if err != nil {
		return nil, err
	}

	descriptors := make([]model.Descriptor, 0, len(items))
	for idx, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("descriptor: %s element %d must be a mapping, got %T", source, idx, item)
		}
		d, err := fromMap(entry, cfg)
		if err != nil {
			return nil, fmt.Errorf("descriptor: %s element %d: %w", source, idx, err)
		}
		descriptors = append(descriptors, d)
	}

	if err := cfg.decorate(descriptors); err != nil {
		return nil, fmt.Errorf("descriptor: decorate %s: %w", source, err)
	}
	return descriptors, nil
}

// LoadFS reads and parses path from fsys.
func LoadFS(fsys fs.FS, path string, opts ...Option) ([]model.Descriptor, error) {
	if fsys == nil {
		return nil, fmt.Errorf("descriptor: filesystem is nil")
	}
	if !isDescriptorFile(path) {
		return nil, fmt.Errorf("descriptor: %s: %w", path, model.ErrUnsupportedSource)
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("descriptor: read %s: %w", path, err)
	}
	return Parse(data, path, opts...)
}

// LoadFile reads and parses a descriptor file from the operating system.
func LoadFile(path string, opts ...Option) ([]model.Descriptor, error) {
	dir, name := filepath.Split(filepath.Clean(path))
	if dir == "" {
		dir = "."
	}
	return LoadFS(os.DirFS(dir), name, opts...)
}

// FromMap converts a single plain mapping. Labels are sanitised and missing
// labels on bound elements are derived from the related key.
func FromMap(raw map[string]any, opts ...Option) (model.Descriptor, error) {
	return fromMap(raw, newOptions(opts))
}

func fromMap(raw map[string]any, cfg options) (model.Descriptor, error) {
	prepared, ok := normalise(raw, cfg).(map[string]any)
	if !ok {
		return model.Descriptor{}, fmt.Errorf("descriptor: unexpected element %T", raw)
	}
	d, err := model.DescriptorFromMap(prepared)
	if err != nil {
		return model.Descriptor{}, err
	}
	if d.Label == "" && d.RelatedKey != "" && !model.Kind(d.Type).Button() {
		if _, explicit := raw[model.AttrLabel]; !explicit {
			d.Label = cfg.labeler(d.RelatedKey)
		}
	}
	return d, nil
}

func decode(data []byte, source string) (any, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("descriptor: file %s is empty", source)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err == nil {
		return raw, nil
	}

	raw = nil
	if err := yaml.Unmarshal(data, &raw); err == nil {
		return raw, nil
	}

	return nil, fmt.Errorf("descriptor: parse %s: invalid JSON or YAML", source)
}

func elementItems(raw any, source string) ([]any, error) {
	switch typed := raw.(type) {
	case []any:
		return typed, nil
	case map[string]any:
		items, ok := typed[elementsKey].([]any)
		if !ok {
			return nil, fmt.Errorf("descriptor: %s must define an %q list", source, elementsKey)
		}
		return items, nil
	default:
		return nil, fmt.Errorf("descriptor: %s must be a list or a mapping, got %T", source, raw)
	}
}

// normalise copies decoded data so JSON and YAML inputs agree: integral
// floats become ints and labels are sanitised at every depth.
func normalise(value any, cfg options) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			if key == model.AttrLabel && cfg.sanitize {
				if label, ok := item.(string); ok {
					out[key] = SanitizeLabel(label)
					continue
				}
			}
			out[key] = normalise(item, cfg)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = normalise(item, cfg)
		}
		return out
	case float64:
		if typed == math.Trunc(typed) && math.Abs(typed) < 1<<53 {
			return int(typed)
		}
		return typed
	default:
		return value
	}
}

func isDescriptorFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
