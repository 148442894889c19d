package application

import (
	"fmt"
	"strings"

	"devutils-bridge/internal/domain"
	"devutils-bridge/internal/infrastructure"
)

// CaseConverterHandler implements ToolHandler for case-converter.
type CaseConverterHandler struct {
	converter *infrastructure.CaseConverter
}

// NewCaseConverterHandler creates a new CaseConverterHandler.
func NewCaseConverterHandler(converter *infrastructure.CaseConverter) *CaseConverterHandler {
	return &CaseConverterHandler{converter: converter}
}

// ToolID returns the identifier for this handler.
func (h *CaseConverterHandler) ToolID() domain.ToolID {
	return domain.ToolCaseConverter
}

// Run converts input to the naming convention given by the target option.
// The option type is checked before its value, so only string targets get a suggestion.
func (h *CaseConverterHandler) Run(operation string, input interface{}, ec domain.ExecutionContext, options map[string]interface{}) (interface{}, error) {
	if err := domain.AssertSupportedOperation(ec.Tool, operation, ec.SupportedOperations); err != nil {
		return nil, err
	}

	text, err := domain.AsString(input, "input")
	if err != nil {
		return nil, err
	}

	target, err := getStringOption(options, "target", string(infrastructure.CaseSnake))
	if err != nil {
		return nil, err
	}
	if !isCaseTarget(target) {
		return nil, domain.NewValidationError(domain.CodeInvalidOption,
			fmt.Sprintf("option 'target' must be one of %s, got %q", strings.Join(infrastructure.CaseTargets, ", "), target),
			domain.WithDidYouMean(domain.Suggest(target, infrastructure.CaseTargets)),
			domain.WithHints("Set 'target' to snake, kebab, camel or pascal."))
	}

	return h.converter.Convert(text, infrastructure.CaseTarget(target)), nil
}

func isCaseTarget(target string) bool {
	for _, t := range infrastructure.CaseTargets {
		if t == target {
			return true
		}
	}
	return false
}
