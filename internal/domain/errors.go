package domain

// ErrorCode is the stable, wire-level classification of a failed bridge call.
type ErrorCode string

// Bridge error codes. Every code has an entry in the error taxonomy.
const (
	CodeUnsupportedTool      ErrorCode = "UNSUPPORTED_TOOL"
	CodeUnsupportedOperation ErrorCode = "UNSUPPORTED_OPERATION"
	CodeInvalidOption        ErrorCode = "INVALID_OPTION"
	CodeInvalidInput         ErrorCode = "INVALID_INPUT"
	CodeInvalidRequest       ErrorCode = "INVALID_REQUEST"
	CodeExecutionError       ErrorCode = "EXECUTION_ERROR"
)

// AllErrorCodes lists every ErrorCode.
var AllErrorCodes = []ErrorCode{
	CodeUnsupportedTool,
	CodeUnsupportedOperation,
	CodeInvalidOption,
	CodeInvalidInput,
	CodeInvalidRequest,
	CodeExecutionError,
}

// problemTypeBase prefixes every problem type URI.
const problemTypeBase = "https://devutils.dev/problems/"

// TaxonomyEntry describes how an ErrorCode is presented to callers.
type TaxonomyEntry struct {
	Status  int
	Title   string
	TypeURI string
	// RPCCode is the JSON-RPC error code used when the failure has to be
	// reported at the protocol level.
	RPCCode int
}

var errorTaxonomy = map[ErrorCode]TaxonomyEntry{
	CodeInvalidRequest: {
		Status:  400,
		Title:   "Invalid request",
		TypeURI: problemTypeBase + "invalid-request",
		RPCCode: InvalidRequest,
	},
	CodeUnsupportedTool: {
		Status:  404,
		Title:   "Unsupported tool",
		TypeURI: problemTypeBase + "unsupported-tool",
		RPCCode: MethodNotFound,
	},
	CodeUnsupportedOperation: {
		Status:  400,
		Title:   "Unsupported operation",
		TypeURI: problemTypeBase + "unsupported-operation",
		RPCCode: MethodNotFound,
	},
	CodeInvalidOption: {
		Status:  400,
		Title:   "Invalid option",
		TypeURI: problemTypeBase + "invalid-option",
		RPCCode: InvalidParams,
	},
	CodeInvalidInput: {
		Status:  422,
		Title:   "Invalid input",
		TypeURI: problemTypeBase + "invalid-input",
		RPCCode: InvalidParams,
	},
	CodeExecutionError: {
		Status:  500,
		Title:   "Tool execution failed",
		TypeURI: problemTypeBase + "execution-error",
		RPCCode: ToolExecutionError,
	},
}

// Taxonomy returns the taxonomy entry for code.
// Unknown codes fall back to the execution error entry.
func Taxonomy(code ErrorCode) TaxonomyEntry {
	if entry, ok := errorTaxonomy[code]; ok {
		return entry
	}
	return errorTaxonomy[CodeExecutionError]
}

// HasTaxonomy reports whether code has its own taxonomy entry.
func HasTaxonomy(code ErrorCode) bool {
	_, ok := errorTaxonomy[code]
	return ok
}

// ValidationError reports a request that violates the declared tool contract.
// It is returned by validators and handlers and converted into a ToolResponse
// by the runner.
type ValidationError struct {
	Code                ErrorCode
	Message             string
	SupportedOperations []string
	SupportedTools      []string
	DidYouMean          string
	Hints               []string
	// Status overrides the taxonomy status when non-zero.
	Status int
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// ValidationErrorOption customizes a ValidationError at construction.
type ValidationErrorOption func(*ValidationError)

// WithSupportedOperations attaches the list of valid operations.
func WithSupportedOperations(ops []string) ValidationErrorOption {
	return func(e *ValidationError) { e.SupportedOperations = append([]string(nil), ops...) }
}

// WithSupportedTools attaches the list of valid tool ids.
func WithSupportedTools(tools []string) ValidationErrorOption {
	return func(e *ValidationError) { e.SupportedTools = append([]string(nil), tools...) }
}

// WithDidYouMean attaches a best-guess correction.
func WithDidYouMean(s string) ValidationErrorOption {
	return func(e *ValidationError) { e.DidYouMean = s }
}

// WithHints appends free-text remediation hints.
func WithHints(hints ...string) ValidationErrorOption {
	return func(e *ValidationError) { e.Hints = append(e.Hints, hints...) }
}

// WithStatus overrides the taxonomy status.
func WithStatus(status int) ValidationErrorOption {
	return func(e *ValidationError) { e.Status = status }
}

// NewValidationError creates a ValidationError with the given code and message.
func NewValidationError(code ErrorCode, message string, opts ...ValidationErrorOption) *ValidationError {
	e := &ValidationError{Code: code, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
