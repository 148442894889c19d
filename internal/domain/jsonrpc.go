package domain

// Version is the only JSON-RPC version the bridge speaks.
const Version = "2.0"

// Request represents a JSON-RPC 2.0 request message.
type Request struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id,omitempty"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// Response represents a JSON-RPC 2.0 response message.
// Tool failures travel inside Result as ok:false envelopes; Error is only
// set for protocol faults.
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id,omitempty"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents a JSON-RPC 2.0 error object.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Error implements the error interface for Error.
func (e *Error) Error() string {
	return e.Message
}

// NewResultResponse answers id with result.
func NewResultResponse(id interface{}, result interface{}) *Response {
	return &Response{JSONRPC: Version, ID: id, Result: result}
}

// NewErrorResponse answers id with a protocol error.
func NewErrorResponse(id interface{}, code int, message string, data interface{}) *Response {
	return &Response{
		JSONRPC: Version,
		ID:      id,
		Error:   &Error{Code: code, Message: message, Data: data},
	}
}

// JSON-RPC 2.0 error codes
const (
	ParseError     = -32700 // Invalid JSON received
	InvalidRequest = -32600 // Invalid JSON-RPC request structure
	MethodNotFound = -32601 // Unknown method or tool
	InvalidParams  = -32602 // Invalid method parameters
	InternalError  = -32603 // Server internal error

	// Bridge codes. ToolExecutionError is only used as the rpcCode of the
	// EXECUTION_ERROR taxonomy entry.
	ToolExecutionError = -32002 // A tool failed on a well-formed request
	SnapshotError      = -32003 // Snapshot store unavailable or failed
)
