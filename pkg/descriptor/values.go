package descriptor

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ParseValues decodes a flat JSON or YAML mapping used to seed a related
// model. Numbers are normalised the same way descriptor files are.
func ParseValues(data []byte, source string) (map[string]any, error) {
	raw, err := decode(data, source)
	if err != nil {
		return nil, err
	}
	values, ok := normalise(raw, options{}).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("descriptor: values %s must be a mapping, got %T", source, raw)
	}
	return values, nil
}

// LoadValuesFile reads and parses a values file from disk.
func LoadValuesFile(path string) (map[string]any, error) {
	data, err := fs.ReadFile(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("descriptor: read values %s: %w", path, err)
	}
	return ParseValues(data, path)
}
