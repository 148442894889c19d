package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNormalizeToolRequest tests trimming of the operation and defaulting of the input.
func TestNormalizeToolRequest(t *testing.T) {
	n := NormalizeToolRequest(&ToolRequest{Tool: "json-formatter", Operation: "  format \n"})
	assert.Equal(t, "format", n.Operation)
	assert.Equal(t, "", n.Input)
	assert.Equal(t, "json-formatter", n.Tool)

	n = NormalizeToolRequest(&ToolRequest{Tool: 42, Operation: 7, Input: "x"})
	assert.Equal(t, 42, n.Tool)
	assert.Equal(t, 7, n.Operation, "non-string operations are passed through")
	assert.Equal(t, "x", n.Input)

	n = NormalizeToolRequest(nil)
	assert.Nil(t, n.Tool)
	assert.Nil(t, n.Operation)
	assert.Equal(t, "", n.Input)
}

// TestAssertToolRequestShape tests every shape rule.
func TestAssertToolRequestShape(t *testing.T) {
	tests := []struct {
		name    string
		req     NormalizedRequest
		wantErr bool
	}{
		{"valid", NormalizedRequest{Tool: "base64-tool", Operation: "encode"}, false},
		{"valid with options", NormalizedRequest{Tool: "base64-tool", Operation: "encode", Options: map[string]interface{}{}}, false},
		{"missing tool", NormalizedRequest{Operation: "encode"}, true},
		{"empty tool", NormalizedRequest{Tool: "", Operation: "encode"}, true},
		{"numeric tool", NormalizedRequest{Tool: 1, Operation: "encode"}, true},
		{"missing operation", NormalizedRequest{Tool: "base64-tool"}, true},
		{"empty operation", NormalizedRequest{Tool: "base64-tool", Operation: ""}, true},
		{"array options", NormalizedRequest{Tool: "base64-tool", Operation: "encode", Options: []interface{}{1}}, true},
		{"string options", NormalizedRequest{Tool: "base64-tool", Operation: "encode", Options: "indent=2"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AssertToolRequestShape(tt.req)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, CodeInvalidRequest, verr.Code)
			assert.NotEmpty(t, verr.Hints)
		})
	}
}

// TestEnsureSupportedTool tests resolution and the remediation data of unknown tools.
func TestEnsureSupportedTool(t *testing.T) {
	id, err := EnsureSupportedTool("diff-viewer")
	require.NoError(t, err)
	assert.Equal(t, ToolDiffViewer, id)

	_, err = EnsureSupportedTool("json-formater")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, CodeUnsupportedTool, verr.Code)
	assert.Equal(t, CatalogToolIDs(), verr.SupportedTools)
	assert.Len(t, verr.SupportedTools, 7)
	assert.Equal(t, "json-formatter", verr.DidYouMean)
}

// TestAssertSupportedOperation tests the operation check and its suggestion.
func TestAssertSupportedOperation(t *testing.T) {
	ops := []string{"format", "minify", "validate"}

	assert.NoError(t, AssertSupportedOperation(ToolJSONFormatter, "minify", ops))

	err := AssertSupportedOperation(ToolJSONFormatter, "formt", ops)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, CodeUnsupportedOperation, verr.Code)
	assert.Equal(t, ops, verr.SupportedOperations)
	assert.Equal(t, "format", verr.DidYouMean)
	assert.Contains(t, verr.Message, "json-formatter")
}

// TestAssertOptionType tests the accepted runtime types of each option type.
func TestAssertOptionType(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected OptionType
		ok       bool
	}{
		{"absent", nil, OptionNumber, true},
		{"float", 2.0, OptionNumber, true},
		{"int", 2, OptionNumber, true},
		{"json number", json.Number("4"), OptionNumber, true},
		{"string as number", "2", OptionNumber, false},
		{"bool", true, OptionBoolean, true},
		{"string as bool", "true", OptionBoolean, false},
		{"string", "snake", OptionString, true},
		{"number as string", 3.0, OptionString, false},
		{"object", map[string]interface{}{}, OptionObject, true},
		{"array as object", []interface{}{}, OptionObject, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AssertOptionType(tt.value, tt.expected, "opt")
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, CodeInvalidOption, verr.Code)
			assert.Contains(t, verr.Message, "'opt'")
		})
	}
}

// TestAsStringAndAsObject tests the input coercion helpers.
func TestAsStringAndAsObject(t *testing.T) {
	s, err := AsString("hello", "input")
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	_, err = AsString(map[string]interface{}{}, "input")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, CodeInvalidInput, verr.Code)
	assert.Equal(t, "input must be a string, got object", verr.Message)

	m, err := AsObject(map[string]interface{}{"a": 1}, "input")
	require.NoError(t, err)
	assert.Equal(t, 1, m["a"])

	_, err = AsObject("text", "input")
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, CodeInvalidInput, verr.Code)
	assert.Equal(t, "input must be an object, got string", verr.Message)
}
