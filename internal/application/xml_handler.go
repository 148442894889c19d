package application

import (
	"devutils-bridge/internal/domain"
	"devutils-bridge/internal/infrastructure"
)

// XMLFormatterHandler implements ToolHandler for xml-formatter.
type XMLFormatterHandler struct {
	formatter *infrastructure.XMLFormatter
}

// NewXMLFormatterHandler creates a new XMLFormatterHandler.
func NewXMLFormatterHandler(formatter *infrastructure.XMLFormatter) *XMLFormatterHandler {
	return &XMLFormatterHandler{formatter: formatter}
}

// ToolID returns the identifier for this handler.
func (h *XMLFormatterHandler) ToolID() domain.ToolID {
	return domain.ToolXMLFormatter
}

// Run formats, minifies or validates an XML document.
func (h *XMLFormatterHandler) Run(operation string, input interface{}, ec domain.ExecutionContext, options map[string]interface{}) (interface{}, error) {
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
