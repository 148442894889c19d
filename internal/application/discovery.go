package application

import "devutils-bridge/internal/domain"

// Discovery is the machine-readable description of everything the bridge can run.
type Discovery struct {
	Catalog    []domain.CatalogEntry `json:"catalog"`
	Operations map[string][]string   `json:"operations"`
}

// Discover builds the discovery export from the catalog alone; no handler is invoked.
func Discover() Discovery {
	return Discovery{
		Catalog:    domain.ListTools(),
		Operations: OperationsByTool(),
	}
}

// OperationsByTool maps every tool id to its supported operations.
func OperationsByTool() map[string][]string {
	ops := make(map[string][]string, len(domain.AllToolIDs))
	for _, entry := range domain.ListTools() {
		ops[string(entry.ID)] = entry.Operations
	}
	return ops
}
