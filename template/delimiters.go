package template

import (
	"fmt"
	"strings"
)

// Delimiters are the four tokens that open and close embedded regions.
type Delimiters struct {
	OpenCode  string `yaml:"open_code"`
	CloseCode string `yaml:"close_code"`
	OpenText  string `yaml:"open_text"`
	CloseText string `yaml:"close_text"`
}

// DefaultDelimiters enter code with {% ... %} and text with %{ ... }%.
var DefaultDelimiters = Delimiters{
	OpenCode:  "{%",
	CloseCode: "%}",
	OpenText:  "%{",
	CloseText: "}%",
}

// WithDefaults fills empty tokens from DefaultDelimiters.
func (d Delimiters) WithDefaults() Delimiters {
	if d.OpenCode == "" {
		d.OpenCode = DefaultDelimiters.OpenCode
	}

	if d.CloseCode == "" {
		d.CloseCode = DefaultDelimiters.CloseCode
	}

	if d.OpenText == "" {
		d.OpenText = DefaultDelimiters.OpenText
	}

	if d.CloseText == "" {
		d.CloseText = DefaultDelimiters.CloseText
	}

	return d
}

// Validate rejects empty, duplicated and multi-line tokens.
func (d Delimiters) Validate() error {
	tokens := []struct {
		name  string
		value string
	}{
		{"open_code", d.OpenCode},
		{"close_code", d.CloseCode},
		{"open_text", d.OpenText},
		{"close_text", d.CloseText},
	}

	seen := make(map[string]string, len(tokens))
	for _, token := range tokens {
		if token.value == "" {
			return fmt.Errorf("%w: %s is empty", ErrInvalidDelimiters, token.name)
		}

		if strings.Contains(token.value, "\n") {
			return fmt.Errorf("%w: %s contains a newline", ErrInvalidDelimiters, token.name)
		}

		if other, ok := seen[token.value]; ok {
			return fmt.Errorf("%w: %s and %s are both %q", ErrInvalidDelimiters, other, token.name, token.value)
		}

		seen[token.value] = token.name
	}

	return nil
}
