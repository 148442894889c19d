package application

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"devutils-bridge/internal/domain"
)

// ResponseShape selects how a query response envelope is built.
type ResponseShape struct {
	ResultOnly     bool
	IncludeCatalog bool
}

// QueryEnvelope is the full response of the query endpoint.
type QueryEnvelope struct {
	Response   domain.ToolResponse   `json:"response"`
	Catalog    []domain.CatalogEntry `json:"catalog,omitempty"`
	Operations map[string][]string   `json:"operations,omitempty"`
}

// ResultOnlyEnvelope is the reduced response for mode=result-only.
type ResultOnlyEnvelope struct {
	OK           bool                 `json:"ok"`
	Result       interface{}          `json:"result,omitempty"`
	Error        string               `json:"error,omitempty"`
	ErrorDetails *domain.ErrorDetails `json:"errorDetails,omitempty"`
}

type queryPayload struct {
	Tool      interface{} `json:"tool"`
	Operation interface{} `json:"operation"`
	Input     interface{} `json:"input"`
	Options   interface{} `json:"options"`
}

// ParseQueryRequest turns query parameters into a ToolRequest.
// A valid payload parameter (a JSON-encoded request) wins over the discrete
// tool, op, input and options parameters. Malformed options JSON is ignored.
// It returns nil when neither form names a tool and an operation.
func ParseQueryRequest(params url.Values) *domain.ToolRequest {
	if raw := params.Get("payload"); raw != "" {
		if req := parsePayload(raw); req != nil {
			return req
		}
	}

	tool := strings.TrimSpace(params.Get("tool"))
	op := strings.TrimSpace(params.Get("op"))
	if op == "" {
		op = strings.TrimSpace(params.Get("operation"))
	}
	if tool == "" || op == "" {
		return nil
	}

	req := &domain.ToolRequest{Tool: tool, Operation: op}
	if params.Has("input") {
		req.Input = params.Get("input")
	}
	if raw := params.Get("options"); raw != "" {
		var options map[string]interface{}
		if err := json.Unmarshal([]byte(raw), &options); err == nil && options != nil {
			req.Options = options
		}
	}
	return req
}

// QueryToolRequest is ParseQueryRequest for callers that always run the
// result: when no complete request is found the raw tool and op are passed
// through so the runner reports INVALID_REQUEST.
func QueryToolRequest(params url.Values) *domain.ToolRequest {
	if req := ParseQueryRequest(params); req != nil {
		return req
	}
	return &domain.ToolRequest{Tool: params.Get("tool"), Operation: params.Get("op")}
}

// parsePayload accepts only requests with non-empty string tool and operation
// and, when present, an object for options.
func parsePayload(raw string) *domain.ToolRequest {
	var p queryPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil
	}

	tool, ok := p.Tool.(string)
	if !ok || strings.TrimSpace(tool) == "" {
		return nil
	}
	op, ok := p.Operation.(string)
	if !ok || strings.TrimSpace(op) == "" {
		return nil
	}
	if p.Options != nil {
		if _, ok := p.Options.(map[string]interface{}); !ok {
			return nil
		}
	}

	return &domain.ToolRequest{Tool: tool, Operation: op, Input: p.Input, Options: p.Options}
}

// ParseResponseShape reads mode=result-only and includeCatalog=false.
// defaultIncludeCatalog applies when includeCatalog is not given.
func ParseResponseShape(params url.Values, defaultIncludeCatalog bool) ResponseShape {
	shape := ResponseShape{
		ResultOnly:     params.Get("mode") == "result-only",
		IncludeCatalog: defaultIncludeCatalog,
	}
	switch strings.ToLower(params.Get("includeCatalog")) {
	case "false", "0", "no":
		shape.IncludeCatalog = false
	case "true", "1", "yes":
		shape.IncludeCatalog = true
	}
	return shape
}

// ShapeResponse builds the envelope for resp according to shape.
func ShapeResponse(resp domain.ToolResponse, shape ResponseShape) interface{} {
	if shape.ResultOnly {
		if resp.OK {
			return ResultOnlyEnvelope{OK: true, Result: resp.Result}
		}
		return ResultOnlyEnvelope{OK: false, Error: resp.Error, ErrorDetails: resp.ErrorDetails}
	}

	envelope := QueryEnvelope{Response: resp}
	if shape.IncludeCatalog {
		d := Discover()
		envelope.Catalog = d.Catalog
		envelope.Operations = d.Operations
	}
	return envelope
}

// QueryHandler serves bridge calls encoded in a query string.
type QueryHandler struct {
	runner                *Runner
	defaultIncludeCatalog bool
}

// NewQueryHandler creates the HTTP handler of the query endpoint.
func NewQueryHandler(runner *Runner, defaultIncludeCatalog bool) *QueryHandler {
	return &QueryHandler{runner: runner, defaultIncludeCatalog: defaultIncludeCatalog}
}

// ServeHTTP runs the request described by the query string. The HTTP status
// is 200 on success and the problem status otherwise.
func (h *QueryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	params := r.URL.Query()
	resp := h.runner.RunTool(QueryToolRequest(params))
	status := http.StatusOK
	if !resp.OK && resp.Problem != nil {
		status = resp.Problem.Status
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ShapeResponse(resp, ParseResponseShape(params, h.defaultIncludeCatalog)))
}
