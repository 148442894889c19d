package domain

// ToolID identifies one of the developer utilities exposed through the bridge.
// The set is closed: every ToolID has exactly one catalog entry and exactly
// one registered handler.
type ToolID string

// Supported tool identifiers.
const (
	ToolJSONFormatter     ToolID = "json-formatter"
	ToolXMLFormatter      ToolID = "xml-formatter"
	ToolBase64            ToolID = "base64-tool"
	ToolCaseConverter     ToolID = "case-converter"
	ToolURLParser         ToolID = "url-parser"
	ToolDiffViewer        ToolID = "diff-viewer"
	ToolThaiDateConverter ToolID = "thai-date-converter"
)

// AllToolIDs lists every ToolID in catalog order.
var AllToolIDs = []ToolID{
	ToolJSONFormatter,
	ToolXMLFormatter,
	ToolBase64,
	ToolCaseConverter,
	ToolURLParser,
	ToolDiffViewer,
	ToolThaiDateConverter,
}

// String returns the wire identifier of the tool.
func (id ToolID) String() string {
	return string(id)
}

// ParseToolID converts a wire identifier into a ToolID.
// The boolean is false when the identifier is not a known tool.
func ParseToolID(s string) (ToolID, bool) {
	for _, id := range AllToolIDs {
		if string(id) == s {
			return id, true
		}
	}
	return "", false
}

// ToolRequest is a bridge call as received from a caller.
// Tool and Operation are kept untyped so a malformed request can be reported
// as a validation failure instead of a decoding failure.
type ToolRequest struct {
	Tool      interface{} `json:"tool"`
	Operation interface{} `json:"operation"`
	Input     interface{} `json:"input,omitempty"`
	Options   interface{} `json:"options,omitempty"`
}

// NormalizedRequest is a ToolRequest after NormalizeToolRequest: the operation
// is trimmed and the input defaulted. It is not modified afterwards.
type NormalizedRequest struct {
	Tool      interface{}
	Operation interface{}
	Input     interface{}
	Options   interface{}
}

// ExecutionContext is handed to a tool handler once the tool id is known to be valid.
type ExecutionContext struct {
	Tool                ToolID   `json:"tool"`
	Operation           string   `json:"operation"`
	SupportedOperations []string `json:"supportedOperations"`
}

// ToolResponse is the envelope returned for every bridge call.
// When OK is true only Result is set; otherwise Error, ErrorDetails and Problem are set.
type ToolResponse struct {
	OK           bool          `json:"ok"`
	Tool         string        `json:"tool"`
	Operation    string        `json:"operation"`
	Result       interface{}   `json:"result,omitempty"`
	Error        string        `json:"error,omitempty"`
	ErrorDetails *ErrorDetails `json:"errorDetails,omitempty"`
	Problem      *Problem      `json:"problem,omitempty"`
}

// ErrorDetails carries the remediation data of a failed call.
type ErrorDetails struct {
	Code                ErrorCode `json:"code"`
	Message             string    `json:"message"`
	SupportedOperations []string  `json:"supportedOperations,omitempty"`
	SupportedTools      []string  `json:"supportedTools,omitempty"`
	DidYouMean          string    `json:"didYouMean,omitempty"`
	Hints               []string  `json:"hints,omitempty"`
}

// Problem is the structured problem descriptor attached to failed responses.
type Problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

// ToolHandler executes the operations of a single tool.
// Handlers call AssertSupportedOperation before anything else and return a
// *ValidationError for contract violations or a plain error when the tool
// itself fails on the given payload.
type ToolHandler interface {
	// ToolID returns the tool this handler serves.
	ToolID() ToolID

	// Run executes operation against input with the given options.
	Run(operation string, input interface{}, ec ExecutionContext, options map[string]interface{}) (interface{}, error)
}
