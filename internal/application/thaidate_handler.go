package application

import (
	"devutils-bridge/internal/domain"
	"devutils-bridge/internal/infrastructure"
)

// ThaiDateHandler implements ToolHandler for thai-date-converter.
type ThaiDateHandler struct {
	converter *infrastructure.ThaiDateConverter
}

// NewThaiDateHandler creates a new ThaiDateHandler.
func NewThaiDateHandler(converter *infrastructure.ThaiDateConverter) *ThaiDateHandler {
	return &ThaiDateHandler{converter: converter}
}

// ToolID returns the identifier for this handler.
func (h *ThaiDateHandler) ToolID() domain.ToolID {
	return domain.ToolThaiDateConverter
}

// Run formats an ISO date as a Thai date or parses a Thai date back to ISO.
func (h *ThaiDateHandler) Run(operation string, input interface{}, ec domain.ExecutionContext, options map[string]interface{}) (interface{}, error) {
	if err := domain.AssertSupportedOperation(ec.Tool, operation, ec.SupportedOperations); err != nil {
		return nil, err
	}

	text, err := domain.AsString(input, "input")
	if err != nil {
		return nil, err
	}

	if operation == "parse" {
		return h.converter.Parse(text)
	}

	short, err := getBoolOption(options, "short", false)
	if err != nil {
		return nil, err
	}
	return h.converter.Format(text, short)
}
