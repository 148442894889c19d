package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OptionType is the expected runtime type of a tool option.
type OptionType string

// Option types understood by AssertOptionType.
const (
	OptionString  OptionType = "string"
	OptionNumber  OptionType = "number"
	OptionBoolean OptionType = "boolean"
	OptionObject  OptionType = "object"
)

// NormalizeToolRequest trims the operation and defaults a missing input to "".
// Tool and options are passed through untouched.
func NormalizeToolRequest(req *ToolRequest) NormalizedRequest {
	if req == nil {
		return NormalizedRequest{Input: ""}
	}

	n := NormalizedRequest{
		Tool:      req.Tool,
		Operation: req.Operation,
		Input:     req.Input,
		Options:   req.Options,
	}
	if op, ok := req.Operation.(string); ok {
		n.Operation = strings.TrimSpace(op)
	}
	if n.Input == nil {
		n.Input = ""
	}
	return n
}

// AssertToolRequestShape checks that tool and operation are non-empty strings
// and that options, when present, is a plain key-value map.
func AssertToolRequestShape(req NormalizedRequest) error {
	if s, ok := req.Tool.(string); !ok || s == "" {
		return NewValidationError(CodeInvalidRequest,
			"request field 'tool' must be a non-empty string",
			WithSupportedTools(CatalogToolIDs()),
			WithHints("Set 'tool' to one of the supported tool ids."))
	}
	if s, ok := req.Operation.(string); !ok || s == "" {
		return NewValidationError(CodeInvalidRequest,
			"request field 'operation' must be a non-empty string",
			WithHints("Set 'operation' to one of the operations listed in the catalog for this tool."))
	}
	if req.Options != nil {
		if _, ok := req.Options.(map[string]interface{}); !ok {
			return NewValidationError(CodeInvalidRequest,
				"request field 'options' must be an object when provided",
				WithHints("Pass options as a JSON object, for example {\"indent\": 2}, or omit the field."))
		}
	}
	return nil
}

// EnsureSupportedTool resolves tool against the catalog.
func EnsureSupportedTool(tool string) (ToolID, error) {
	if id, ok := ParseToolID(tool); ok {
		return id, nil
	}
	supported := CatalogToolIDs()
	return "", NewValidationError(CodeUnsupportedTool,
		fmt.Sprintf("unsupported tool %q", tool),
		WithSupportedTools(supported),
		WithDidYouMean(Suggest(tool, supported)),
		WithHints("Call the catalog to discover tools and their operations."))
}

// AssertSupportedOperation fails when operation is not one of supported.
func AssertSupportedOperation(tool ToolID, operation string, supported []string) error {
	for _, op := range supported {
		if op == operation {
			return nil
		}
	}
	return NewValidationError(CodeUnsupportedOperation,
		fmt.Sprintf("operation %q is not supported by %s", operation, tool),
		WithSupportedOperations(supported),
		WithDidYouMean(Suggest(operation, supported)),
		WithHints(fmt.Sprintf("Use one of: %s.", strings.Join(supported, ", "))))
}

// AssertOptionType fails when a present option value does not have the expected type.
// A nil value means the option was not supplied and is always accepted.
func AssertOptionType(value interface{}, expected OptionType, name string) error {
	if value == nil {
		return nil
	}
	if matchesOptionType(value, expected) {
		return nil
	}
	return NewValidationError(CodeInvalidOption,
		fmt.Sprintf("option '%s' must be of type %s, got %s", name, expected, describeType(value)),
		WithHints(fmt.Sprintf("Pass '%s' as a %s or omit it to use the default.", name, expected)))
}

// AsString returns input as a string or fails with INVALID_INPUT.
func AsString(input interface{}, field string) (string, error) {
	s, ok := input.(string)
	if !ok {
		return "", NewValidationError(CodeInvalidInput,
			fmt.Sprintf("%s must be a string, got %s", field, describeType(input)),
			WithHints(fmt.Sprintf("Pass %s as a JSON string.", field)))
	}
	return s, nil
}

// AsObject returns input as a plain map or fails with INVALID_INPUT.
func AsObject(input interface{}, field string) (map[string]interface{}, error) {
	m, ok := input.(map[string]interface{})
	if !ok {
		return nil, NewValidationError(CodeInvalidInput,
			fmt.Sprintf("%s must be an object, got %s", field, describeType(input)),
			WithHints(fmt.Sprintf("Pass %s as a JSON object.", field)))
	}
	return m, nil
}

func matchesOptionType(value interface{}, expected OptionType) bool {
	switch expected {
	case OptionString:
		_, ok := value.(string)
		return ok
	case OptionNumber:
		return isNumber(value)
	case OptionBoolean:
		_, ok := value.(bool)
		return ok
	case OptionObject:
		_, ok := value.(map[string]interface{})
		return ok
	default:
		return false
	}
}

func isNumber(value interface{}) bool {
	switch value.(type) {
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return true
	default:
		return false
	}
}

// describeType names the JSON type of v for error messages.
func describeType(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "array"
	}
	if isNumber(v) {
		return "number"
	}
	return fmt.Sprintf("%T", v)
}
