package snaptmpl

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shibukawa/snaptmpl/renderer"
)

// Values are config values with their declaration order. Templates see each
// key as a variable.
type Values struct {
	keys   []string
	values map[string]any
}

// NewValues returns an empty set.
func NewValues() *Values {
	return &Values{values: make(map[string]any)}
}

// Set adds or replaces a value. A replaced key keeps its first position.
func (v *Values) Set(key string, value any) {
	if _, exists := v.values[key]; !exists {
		v.keys = append(v.keys, key)
	}

	v.values[key] = value
}

// Get returns a value by key.
func (v *Values) Get(key string) (any, bool) {
	value, ok := v.values[key]
	return value, ok
}

// Keys returns the keys in declaration order.
func (v *Values) Keys() []string {
	keys := make([]string, len(v.keys))
	copy(keys, v.keys)

	return keys
}

// Map returns a copy of the values.
func (v *Values) Map() map[string]any {
	m := make(map[string]any, len(v.values))
	for key, value := range v.values {
		m[key] = value
	}

	return m
}

// Merge sets every value of other in its order.
func (v *Values) Merge(other *Values) {
	for _, key := range other.keys {
		v.Set(key, other.values[key])
	}
}

// ParseValues reads a YAML mapping, keeping the key order of the top level.
func ParseValues(data []byte) (*Values, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse values: %w", err)
	}

	values := NewValues()

	// Empty document
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return values, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w at line %d", ErrExpectedMappingNode, root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode := root.Content[i]
		valueNode := root.Content[i+1]

		if err := validateValueKey(keyNode.Value); err != nil {
			return nil, fmt.Errorf("line %d: %w", keyNode.Line, err)
		}

		var value any
		if err := valueNode.Decode(&value); err != nil {
			return nil, fmt.Errorf("failed to decode %s at line %d: %w", keyNode.Value, valueNode.Line, err)
		}

		values.Set(keyNode.Value, value)
	}

	return values, nil
}

// LoadValuesFile reads one values file.
func LoadValuesFile(path string) (*Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read values file: %w", err)
	}

	values, err := ParseValues(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return values, nil
}

// LoadValues merges values_files in order and then the inline values.
func (c *Config) LoadValues() (*Values, error) {
	values := NewValues()

	for _, path := range c.ValuesFiles {
		fileValues, err := LoadValuesFile(path)
		if err != nil {
			return nil, err
		}

		values.Merge(fileValues)
	}

	for _, item := range c.Values {
		key, ok := item.Key.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidValueKey, item.Key)
		}

		values.Set(key, inlineValue(item.Value))
	}

	return values, nil
}

func validateValueKey(key string) error {
	if err := renderer.ValidateKey(key); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidValueKey, err)
	}

	return nil
}
