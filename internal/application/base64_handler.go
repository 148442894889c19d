package application

import (
	"devutils-bridge/internal/domain"
	"devutils-bridge/internal/infrastructure"
)

// Base64Handler implements ToolHandler for base64-tool.
type Base64Handler struct {
	codec *infrastructure.Base64Codec
}

// NewBase64Handler creates a new Base64Handler.
func NewBase64Handler(codec *infrastructure.Base64Codec) *Base64Handler {
	return &Base64Handler{codec: codec}
}

// ToolID returns the identifier for this handler.
func (h *Base64Handler) ToolID() domain.ToolID {
	return domain.ToolBase64
}

// Run encodes or decodes Base64 text.
func (h *Base64Handler) Run(operation string, input interface{}, ec domain.ExecutionContext, options map[string]interface{}) (interface{}, error) {
	if err := domain.AssertSupportedOperation(ec.Tool, operation, ec.SupportedOperations); err != nil {
		return nil, err
	}

	text, err := domain.AsString(input, "input")
	if err != nil {
		return nil, err
	}
	urlSafe, err := getBoolOption(options, "urlSafe", false)
	if err != nil {
		return nil, err
	}

	if operation == "encode" {
		return h.codec.Encode(text, urlSafe), nil
	}
	return h.codec.Decode(text, urlSafe)
}
