package application

import (
	"devutils-bridge/internal/domain"
	"devutils-bridge/internal/infrastructure"
)

const (
	defaultIndent = 2
	maxIndent     = 10
)

// JSONFormatterHandler implements ToolHandler for json-formatter.
type JSONFormatterHandler struct {
	formatter *infrastructure.JSONFormatter
}

// NewJSONFormatterHandler creates a new JSONFormatterHandler.
func NewJSONFormatterHandler(formatter *infrastructure.JSONFormatter) *JSONFormatterHandler {
	return &JSONFormatterHandler{formatter: formatter}
}

// ToolID returns the identifier for this handler.
func (h *JSONFormatterHandler) ToolID() domain.ToolID {
	return domain.ToolJSONFormatter
}

// Run formats, minifies or validates JSON text.
func (h *JSONFormatterHandler) Run(operation string, input interface{}, ec domain.ExecutionContext, options map[string]interface{}) (interface{}, error) {
	if err := domain.AssertSupportedOperation(ec.Tool, operation, ec.SupportedOperations); err != nil {
		return nil, err
	}

	text, err := domain.AsString(input, "input")
	if err != nil {
		return nil, err
	}

	switch operation {
	case "format":
		indent, err := getIntOption(options, "indent", defaultIndent, 0, maxIndent)
		if err != nil {
			return nil, err
		}
		return h.formatter.Format(text, indent)
	case "minify":
		return h.formatter.Minify(text)
	default:
		return h.formatter.Validate(text), nil
	}
}
