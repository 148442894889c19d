package application

import (
	"fmt"
	"sort"
	"strings"

	"devutils-bridge/internal/domain"
	"devutils-bridge/internal/infrastructure"
)

// Registry binds each catalog tool id to the handler that executes it.
type Registry struct {
	handlers map[domain.ToolID]domain.ToolHandler
}

// RegistryDiagnostics compares the catalog with the registered handlers.
type RegistryDiagnostics struct {
	CatalogTools       []string `json:"catalogTools"`
	RunnerTools        []string `json:"runnerTools"`
	MissingRunnerTools []string `json:"missingRunnerTools"`
	ExtraRunnerTools   []string `json:"extraRunnerTools"`
	IsConsistent       bool     `json:"isConsistent"`
}

// NewRegistry creates a Registry from handlers, keyed by their ToolID.
// A later handler for the same tool replaces an earlier one.
func NewRegistry(handlers ...domain.ToolHandler) *Registry {
	r := &Registry{
		handlers: make(map[domain.ToolID]domain.ToolHandler, len(handlers)),
	}
	for _, h := range handlers {
		r.handlers[h.ToolID()] = h
	}
	return r
}

// NewDefaultRegistry creates a Registry holding a handler for every tool.
func NewDefaultRegistry() *Registry {
	return NewRegistry(DefaultHandlers()...)
}

// DefaultHandlers returns the built-in handler of every ToolID.
func DefaultHandlers() []domain.ToolHandler {
	handlers := make([]domain.ToolHandler, 0, len(domain.AllToolIDs))
	for _, id := range domain.AllToolIDs {
		if h := newToolHandler(id); h != nil {
			handlers = append(handlers, h)
		}
	}
	return handlers
}

// newToolHandler must have a case for every ToolID; a missing case shows up
// as a missing runner in Diagnostics.
func newToolHandler(id domain.ToolID) domain.ToolHandler {
	switch id {
	case domain.ToolJSONFormatter:
		return NewJSONFormatterHandler(infrastructure.NewJSONFormatter())
	case domain.ToolXMLFormatter:
		return NewXMLFormatterHandler(infrastructure.NewXMLFormatter())
	case domain.ToolBase64:
		return NewBase64Handler(infrastructure.NewBase64Codec())
	case domain.ToolCaseConverter:
		return NewCaseConverterHandler(infrastructure.NewCaseConverter())
	case domain.ToolURLParser:
		return NewURLParserHandler(infrastructure.NewURLParser())
	case domain.ToolDiffViewer:
		return NewDiffViewerHandler(infrastructure.NewTextDiffer())
	case domain.ToolThaiDateConverter:
		return NewThaiDateHandler(infrastructure.NewThaiDateConverter())
	default:
		return nil
	}
}

// ResolveToolRunner returns the handler registered for tool.
// The tool must already have been accepted by EnsureSupportedTool.
func (r *Registry) ResolveToolRunner(tool domain.ToolID) (domain.ToolHandler, bool) {
	h, ok := r.handlers[tool]
	return h, ok
}

// BuildToolExecutionContext builds the context handed to the handler of tool.
func (r *Registry) BuildToolExecutionContext(tool domain.ToolID, operation string) domain.ExecutionContext {
	return domain.ExecutionContext{
		Tool:                tool,
		Operation:           operation,
		SupportedOperations: domain.OperationsFor(tool),
	}
}

// Diagnostics reports catalog tools without a handler and handlers without a catalog entry.
func (r *Registry) Diagnostics() RegistryDiagnostics {
	catalogTools := domain.CatalogToolIDs()
	sort.Strings(catalogTools)

	runnerTools := make([]string, 0, len(r.handlers))
	for id := range r.handlers {
		runnerTools = append(runnerTools, string(id))
	}
	sort.Strings(runnerTools)

	missing := difference(catalogTools, runnerTools)
	extra := difference(runnerTools, catalogTools)

	return RegistryDiagnostics{
		CatalogTools:       catalogTools,
		RunnerTools:        runnerTools,
		MissingRunnerTools: missing,
		ExtraRunnerTools:   extra,
		IsConsistent:       len(missing) == 0 && len(extra) == 0,
	}
}

// AssertConsistency fails when the catalog and the registered handlers differ.
func (r *Registry) AssertConsistency() error {
	d := r.Diagnostics()
	if d.IsConsistent {
		return nil
	}
	return fmt.Errorf("tool registry is inconsistent with the catalog: missing runners [%s], extra runners [%s]",
		strings.Join(d.MissingRunnerTools, ", "), strings.Join(d.ExtraRunnerTools, ", "))
}

// difference returns the elements of a that are not in b, in a's order.
func difference(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, s := range b {
		inB[s] = true
	}
	out := []string{}
	for _, s := range a {
		if !inB[s] {
			out = append(out, s)
		}
	}
	return out
}
