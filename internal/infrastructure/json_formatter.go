package infrastructure

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ValidationReport is the result of a validate operation.
type ValidationReport struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// JSONFormatter formats and minifies JSON text. Key order and number
// literals are preserved exactly as written.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format pretty-prints text using indent spaces per level.
func (f *JSONFormatter) Format(text string, indent int) (string, error) {
	compact, err := f.compact(text)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", strings.Repeat(" ", indent)); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}
	return out.String(), nil
}

// Minify removes all insignificant whitespace from text.
func (f *JSONFormatter) Minify(text string) (string, error) {
	compact, err := f.compact(text)
	if err != nil {
		return "", err
	}
	return string(compact), nil
}

// Validate reports whether text is a single well-formed JSON value.
func (f *JSONFormatter) Validate(text string) ValidationReport {
	if _, err := f.compact(text); err != nil {
		return ValidationReport{Valid: false, Error: err.Error()}
	}
	return ValidationReport{Valid: true}
}

func (f *JSONFormatter) compact(text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("invalid JSON: input is empty")
	}

	var out bytes.Buffer
	if err := json.Compact(&out, []byte(text)); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, fmt.Errorf("invalid JSON at offset %d: %w", syntaxErr.Offset, err)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return out.Bytes(), nil
}
