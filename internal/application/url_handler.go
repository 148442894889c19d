package application

import (
	"devutils-bridge/internal/domain"
	"devutils-bridge/internal/infrastructure"
)

// URLParserHandler implements ToolHandler for url-parser.
type URLParserHandler struct {
	parser *infrastructure.URLParser
}

// NewURLParserHandler creates a new URLParserHandler.
func NewURLParserHandler(parser *infrastructure.URLParser) *URLParserHandler {
	return &URLParserHandler{parser: parser}
}

// ToolID returns the identifier for this handler.
func (h *URLParserHandler) ToolID() domain.ToolID {
	return domain.ToolURLParser
}

// Run parses an absolute URL. Unparsable URLs are execution errors.
func (h *URLParserHandler) Run(operation string, input interface{}, ec domain.ExecutionContext, _ map[string]interface{}) (interface{}, error) {
	if err := domain.AssertSupportedOperation(ec.Tool, operation, ec.SupportedOperations); err != nil {
		return nil, err
	}

	text, err := domain.AsString(input, "input")
	if err != nil {
		return nil, err
	}

	parsed, err := h.parser.Parse(text)
	if err != nil {
		return nil, err
	}
	return parsed, nil
}
