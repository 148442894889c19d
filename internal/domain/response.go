package domain

const executionHint = "Double check the input format, the operation name and the option types for this tool."

// SuccessResponse builds the envelope of a successful call.
func SuccessResponse(tool, operation string, result interface{}) ToolResponse {
	return ToolResponse{
		OK:        true,
		Tool:      tool,
		Operation: operation,
		Result:    result,
	}
}

// ToValidationErrorResponse converts a contract violation into a failed response.
// A non-zero status on the error overrides the taxonomy default.
func ToValidationErrorResponse(tool, operation string, verr *ValidationError) ToolResponse {
	entry := Taxonomy(verr.Code)
	status := entry.Status
	if verr.Status != 0 {
		status = verr.Status
	}

	return ToolResponse{
		OK:        false,
		Tool:      tool,
		Operation: operation,
		Error:     verr.Message,
		ErrorDetails: &ErrorDetails{
			Code:                verr.Code,
			Message:             verr.Message,
			SupportedOperations: verr.SupportedOperations,
			SupportedTools:      verr.SupportedTools,
			DidYouMean:          verr.DidYouMean,
			Hints:               verr.Hints,
		},
		Problem: &Problem{
			Type:   entry.TypeURI,
			Title:  entry.Title,
			Status: status,
			Detail: verr.Message,
		},
	}
}

// ToExecutionErrorResponse converts any other failure into an EXECUTION_ERROR response.
// failure may be an error, a recovered panic value or nil.
func ToExecutionErrorResponse(tool, operation string, failure interface{}) ToolResponse {
	entry := Taxonomy(CodeExecutionError)
	message := "Unknown error"
	if err, ok := failure.(error); ok && err.Error() != "" {
		message = err.Error()
	}

	return ToolResponse{
		OK:        false,
		Tool:      tool,
		Operation: operation,
		Error:     message,
		ErrorDetails: &ErrorDetails{
			Code:    CodeExecutionError,
			Message: message,
			Hints:   []string{executionHint},
		},
		Problem: &Problem{
			Type:   entry.TypeURI,
			Title:  entry.Title,
			Status: entry.Status,
			Detail: message,
		},
	}
}
