package application

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"devutils-bridge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseQueryRequest tests the payload and discrete forms.
func TestParseQueryRequest(t *testing.T) {
	tests := []struct {
		name   string
		params url.Values
		want   *domain.ToolRequest
	}{
		{
			name:   "discrete",
			params: url.Values{"tool": {"base64-tool"}, "op": {"encode"}, "input": {"hello"}},
			want:   &domain.ToolRequest{Tool: "base64-tool", Operation: "encode", Input: "hello"},
		},
		{
			name:   "operation alias",
			params: url.Values{"tool": {"base64-tool"}, "operation": {"decode"}},
			want:   &domain.ToolRequest{Tool: "base64-tool", Operation: "decode"},
		},
		{
			name:   "options json",
			params: url.Values{"tool": {"json-formatter"}, "op": {"format"}, "input": {"{}"}, "options": {`{"indent":4}`}},
			want:   &domain.ToolRequest{Tool: "json-formatter", Operation: "format", Input: "{}", Options: map[string]interface{}{"indent": float64(4)}},
		},
		{
			name:   "malformed options dropped",
			params: url.Values{"tool": {"json-formatter"}, "op": {"format"}, "options": {`{indent:4`}},
			want:   &domain.ToolRequest{Tool: "json-formatter", Operation: "format"},
		},
		{
			name:   "object-looking input stays a string",
			params: url.Values{"tool": {"json-formatter"}, "op": {"minify"}, "input": {`{"a": 1}`}},
			want:   &domain.ToolRequest{Tool: "json-formatter", Operation: "minify", Input: `{"a": 1}`},
		},
		{
			name: "payload wins",
			params: url.Values{
				"tool":    {"base64-tool"},
				"op":      {"encode"},
				"payload": {`{"tool":"diff-viewer","operation":"compare","input":{"original":"a","modified":"b"}}`},
			},
			want: &domain.ToolRequest{Tool: "diff-viewer", Operation: "compare",
				Input: map[string]interface{}{"original": "a", "modified": "b"}},
		},
		{
			name:   "invalid payload falls back",
			params: url.Values{"tool": {"base64-tool"}, "op": {"encode"}, "payload": {`{"tool":5,"operation":"x"}`}},
			want:   &domain.ToolRequest{Tool: "base64-tool", Operation: "encode"},
		},
		{
			name:   "payload with array options falls back",
			params: url.Values{"payload": {`{"tool":"a","operation":"b","options":[1]}`}},
			want:   nil,
		},
		{
			name:   "missing op",
			params: url.Values{"tool": {"base64-tool"}},
			want:   nil,
		},
		{
			name:   "blank tool",
			params: url.Values{"tool": {"  "}, "op": {"encode"}},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQueryRequest(tt.params))
		})
	}
}

// TestQueryToolRequest_PassesThroughIncompleteRequests tests the fallback used by callers that always run.
func TestQueryToolRequest_PassesThroughIncompleteRequests(t *testing.T) {
	req := QueryToolRequest(url.Values{"tool": {"base64-tool"}})
	require.NotNil(t, req)
	assert.Equal(t, "base64-tool", req.Tool)
	assert.Equal(t, "", req.Operation)

	resp := newTestRunner().RunTool(req)
	assert.Equal(t, domain.CodeInvalidRequest, resp.ErrorDetails.Code)
}

// TestParseResponseShape tests mode and includeCatalog handling.
func TestParseResponseShape(t *testing.T) {
	assert.Equal(t, ResponseShape{IncludeCatalog: true}, ParseResponseShape(url.Values{}, true))
	assert.Equal(t, ResponseShape{IncludeCatalog: false}, ParseResponseShape(url.Values{}, false))
	assert.Equal(t, ResponseShape{ResultOnly: true, IncludeCatalog: false},
		ParseResponseShape(url.Values{"mode": {"result-only"}, "includeCatalog": {"false"}}, true))
	assert.Equal(t, ResponseShape{IncludeCatalog: true},
		ParseResponseShape(url.Values{"includeCatalog": {"true"}}, false))
}

// TestShapeResponse tests the full and result-only envelopes.
func TestShapeResponse(t *testing.T) {
	ok := domain.SuccessResponse("base64-tool", "encode", "YQ==")
	failed := newTestRunner().RunTool(&domain.ToolRequest{Tool: "nope", Operation: "x"})

	full := ShapeResponse(ok, ResponseShape{IncludeCatalog: true}).(QueryEnvelope)
	assert.Equal(t, ok, full.Response)
	assert.Len(t, full.Catalog, len(domain.AllToolIDs))
	assert.Equal(t, []string{"encode", "decode"}, full.Operations["base64-tool"])

	bare := ShapeResponse(ok, ResponseShape{}).(QueryEnvelope)
	assert.Nil(t, bare.Catalog)
	assert.Nil(t, bare.Operations)

	assert.Equal(t, ResultOnlyEnvelope{OK: true, Result: "YQ=="}, ShapeResponse(ok, ResponseShape{ResultOnly: true}))

	reduced := ShapeResponse(failed, ResponseShape{ResultOnly: true}).(ResultOnlyEnvelope)
	assert.False(t, reduced.OK)
	assert.Equal(t, failed.Error, reduced.Error)
	assert.Equal(t, domain.CodeUnsupportedTool, reduced.ErrorDetails.Code)
}

// TestQueryHandler tests status codes and bodies of the query endpoint.
func TestQueryHandler(t *testing.T) {
	handler := NewQueryHandler(newTestRunner(), true)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantOK     bool
	}{
		{"success", "tool=base64-tool&op=encode&input=hello&includeCatalog=false", http.StatusOK, true},
		{"unknown tool", "tool=nope&op=x", http.StatusNotFound, false},
		{"missing operation", "tool=base64-tool", http.StatusBadRequest, false},
		{"bad input type", `payload={"tool":"diff-viewer","operation":"compare","input":"x"}`, http.StatusUnprocessableEntity, false},
		{"execution error", "tool=url-parser&op=parse&input=relative", http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/run?"+encodeQuery(tt.query), nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body struct {
				Response domain.ToolResponse `json:"response"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantOK, body.Response.OK)
		})
	}
}

// TestQueryHandler_ResultOnly tests the reduced envelope over HTTP.
func TestQueryHandler_ResultOnly(t *testing.T) {
	handler := NewQueryHandler(newTestRunner(), true)

	req := httptest.NewRequest(http.MethodGet, "/run?tool=case-converter&op=convert&input=Hello+World&mode=result-only", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"result":"hello_world"}`, rec.Body.String())
}

// TestQueryHandler_MethodNotAllowed tests that only GET is served.
func TestQueryHandler_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	NewQueryHandler(newTestRunner(), true).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/run", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// encodeQuery escapes the values of a raw a=b&c=d query.
func encodeQuery(raw string) string {
	values, err := url.ParseQuery(raw)
	if err != nil {
		panic(err)
	}
	return values.Encode()
}
