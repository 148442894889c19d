package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTaxonomy_CoversEveryCode tests that each error code has its own entry
// with a 4xx/5xx status and a problem type URI.
func TestTaxonomy_CoversEveryCode(t *testing.T) {
	for _, code := range AllErrorCodes {
		require.True(t, HasTaxonomy(code), "missing taxonomy entry for %s", code)

		entry := Taxonomy(code)
		assert.GreaterOrEqual(t, entry.Status, 400, code)
		assert.NotEmpty(t, entry.Title, code)
		assert.True(t, strings.HasPrefix(entry.TypeURI, problemTypeBase), code)
		assert.NotZero(t, entry.RPCCode, code)
	}

	assert.Equal(t, 500, Taxonomy(CodeExecutionError).Status)
	assert.Equal(t, 404, Taxonomy(CodeUnsupportedTool).Status)
	assert.Equal(t, 422, Taxonomy(CodeInvalidInput).Status)
}

// TestTaxonomy_UnknownCodeFallsBack tests the fallback for unlisted codes.
func TestTaxonomy_UnknownCodeFallsBack(t *testing.T) {
	assert.False(t, HasTaxonomy("NOT_A_CODE"))
	assert.Equal(t, Taxonomy(CodeExecutionError), Taxonomy("NOT_A_CODE"))
}

// TestValidationError_Error tests the error string and option helpers.
func TestValidationError_Error(t *testing.T) {
	err := NewValidationError(CodeInvalidOption, "bad indent",
		WithHints("first"), WithHints("second"), WithStatus(409), WithDidYouMean("indent"))

	assert.Equal(t, "INVALID_OPTION: bad indent", err.Error())
	assert.Equal(t, []string{"first", "second"}, err.Hints)
	assert.Equal(t, 409, err.Status)
	assert.Equal(t, "indent", err.DidYouMean)

	ops := []string{"a", "b"}
	err = NewValidationError(CodeUnsupportedOperation, "x", WithSupportedOperations(ops))
	ops[0] = "changed"
	assert.Equal(t, []string{"a", "b"}, err.SupportedOperations, "options must copy their slices")
}

// TestSuccessResponse tests the success envelope.
func TestSuccessResponse(t *testing.T) {
	resp := SuccessResponse("base64-tool", "encode", "aGVsbG8=")

	assert.True(t, resp.OK)
	assert.Equal(t, "aGVsbG8=", resp.Result)
	assert.Empty(t, resp.Error)
	assert.Nil(t, resp.ErrorDetails)
	assert.Nil(t, resp.Problem)
}

// TestToValidationErrorResponse tests the failure envelope of a contract violation.
func TestToValidationErrorResponse(t *testing.T) {
	verr := NewValidationError(CodeUnsupportedOperation, "operation \"formt\" is not supported",
		WithSupportedOperations([]string{"format"}), WithDidYouMean("format"), WithHints("Use format."))

	resp := ToValidationErrorResponse("json-formatter", "formt", verr)

	assert.False(t, resp.OK)
	assert.Nil(t, resp.Result)
	assert.Equal(t, "json-formatter", resp.Tool)
	assert.Equal(t, "formt", resp.Operation)
	assert.Equal(t, verr.Message, resp.Error)
	require.NotNil(t, resp.ErrorDetails)
	assert.Equal(t, CodeUnsupportedOperation, resp.ErrorDetails.Code)
	assert.Equal(t, "format", resp.ErrorDetails.DidYouMean)
	require.NotNil(t, resp.Problem)
	assert.Equal(t, 400, resp.Problem.Status)
	assert.Equal(t, problemTypeBase+"unsupported-operation", resp.Problem.Type)
	assert.Equal(t, verr.Message, resp.Problem.Detail)

	overridden := ToValidationErrorResponse("x", "y", NewValidationError(CodeInvalidInput, "m", WithStatus(413)))
	assert.Equal(t, 413, overridden.Problem.Status)
}

// TestToExecutionErrorResponse tests the message derivation for each kind of failure.
func TestToExecutionErrorResponse(t *testing.T) {
	tests := []struct {
		name    string
		failure interface{}
		want    string
	}{
		{"error", errors.New("invalid JSON at offset 3"), "invalid JSON at offset 3"},
		{"wrapped error", fmt.Errorf("decode: %w", errors.New("bad")), "decode: bad"},
		{"empty error", errors.New(""), "Unknown error"},
		{"string panic value", "boom", "Unknown error"},
		{"nil", nil, "Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ToExecutionErrorResponse("url-parser", "parse", tt.failure)

			assert.False(t, resp.OK)
			assert.Equal(t, tt.want, resp.Error)
			require.NotNil(t, resp.ErrorDetails)
			assert.Equal(t, CodeExecutionError, resp.ErrorDetails.Code)
			assert.Equal(t, []string{executionHint}, resp.ErrorDetails.Hints)
			require.NotNil(t, resp.Problem)
			assert.Equal(t, 500, resp.Problem.Status)
		})
	}
}
