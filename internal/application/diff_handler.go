package application

import (
	"devutils-bridge/internal/domain"
	"devutils-bridge/internal/infrastructure"
)

// DiffViewerHandler implements ToolHandler for diff-viewer.
type DiffViewerHandler struct {
	differ *infrastructure.TextDiffer
}

// NewDiffViewerHandler creates a new DiffViewerHandler.
func NewDiffViewerHandler(differ *infrastructure.TextDiffer) *DiffViewerHandler {
	return &DiffViewerHandler{differ: differ}
}

// ToolID returns the identifier for this handler.
func (h *DiffViewerHandler) ToolID() domain.ToolID {
	return domain.ToolDiffViewer
}

// Run compares input.original with input.modified line by line.
func (h *DiffViewerHandler) Run(operation string, input interface{}, ec domain.ExecutionContext, options map[string]interface{}) (interface{}, error) {
	if err := domain.AssertSupportedOperation(ec.Tool, operation, ec.SupportedOperations); err != nil {
		return nil, err
	}

	obj, err := domain.AsObject(input, "input")
	if err != nil {
		return nil, err
	}
	original, err := domain.AsString(obj["original"], "input.original")
	if err != nil {
		return nil, err
	}
	modified, err := domain.AsString(obj["modified"], "input.modified")
	if err != nil {
		return nil, err
	}

	includeLines, err := getBoolOption(options, "includeLines", true)
	if err != nil {
		return nil, err
	}

	return h.differ.Compare(original, modified, includeLines), nil
}
