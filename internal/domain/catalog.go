package domain

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// CatalogExample is a runnable usage example for a tool.
type CatalogExample struct {
	Operation string                 `yaml:"operation" json:"operation"`
	Input     interface{}            `yaml:"input" json:"input"`
	Options   map[string]interface{} `yaml:"options,omitempty" json:"options,omitempty"`
}

// CatalogEntry is the published description of a tool.
// Operations is the only place operation names are defined.
type CatalogEntry struct {
	ID          ToolID           `yaml:"id" json:"id"`
	Description string           `yaml:"description" json:"description"`
	Operations  []string         `yaml:"operations" json:"operations"`
	Examples    []CatalogExample `yaml:"examples" json:"examples"`
	UsageTips   []string         `yaml:"usageTips" json:"usageTips"`
}

//go:embed catalog.yaml
var catalogSource []byte

// catalog is built once at package load and never mutated.
var catalog = mustBuildCatalog(catalogSource)

type catalogDocument struct {
	Tools []CatalogEntry `yaml:"tools"`
}

func mustBuildCatalog(data []byte) []CatalogEntry {
	entries, err := buildCatalog(data)
	if err != nil {
		panic(fmt.Sprintf("tool catalog: %v", err))
	}
	return entries
}

// buildCatalog parses the catalog metadata and orders it by AllToolIDs.
// Every ToolID must be described exactly once and nothing else may be described.
func buildCatalog(data []byte) ([]CatalogEntry, error) {
	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid catalog metadata: %w", err)
	}

	byID := make(map[ToolID]CatalogEntry, len(doc.Tools))
	for _, entry := range doc.Tools {
		if _, ok := ParseToolID(string(entry.ID)); !ok {
			return nil, fmt.Errorf("metadata describes unknown tool %q", entry.ID)
		}
		if _, dup := byID[entry.ID]; dup {
			return nil, fmt.Errorf("tool %q is described more than once", entry.ID)
		}
		if entry.Description == "" {
			return nil, fmt.Errorf("tool %q has no description", entry.ID)
		}
		if len(entry.Operations) == 0 {
			return nil, fmt.Errorf("tool %q declares no operations", entry.ID)
		}
		seen := make(map[string]bool, len(entry.Operations))
		for _, op := range entry.Operations {
			if op == "" || seen[op] {
				return nil, fmt.Errorf("tool %q declares empty or duplicate operation %q", entry.ID, op)
			}
			seen[op] = true
		}
		for _, ex := range entry.Examples {
			if !seen[ex.Operation] {
				return nil, fmt.Errorf("tool %q has an example for undeclared operation %q", entry.ID, ex.Operation)
			}
		}
		byID[entry.ID] = entry
	}

	entries := make([]CatalogEntry, 0, len(AllToolIDs))
	for _, id := range AllToolIDs {
		entry, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("tool %q has no catalog metadata", id)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ListTools returns the catalog in ToolID order.
func ListTools() []CatalogEntry {
	out := make([]CatalogEntry, len(catalog))
	for i, entry := range catalog {
		out[i] = entry.clone()
	}
	return out
}

// OperationsFor returns the supported operations of tool, or nil when the tool is unknown.
func OperationsFor(tool ToolID) []string {
	for _, entry := range catalog {
		if entry.ID == tool {
			return append([]string(nil), entry.Operations...)
		}
	}
	return nil
}

// CatalogToolIDs returns the wire ids of every catalog entry in catalog order.
func CatalogToolIDs() []string {
	ids := make([]string, len(catalog))
	for i, entry := range catalog {
		ids[i] = string(entry.ID)
	}
	return ids
}

func (e CatalogEntry) clone() CatalogEntry {
	c := e
	c.Operations = append([]string(nil), e.Operations...)
	c.UsageTips = append([]string(nil), e.UsageTips...)
	c.Examples = make([]CatalogExample, len(e.Examples))
	for i, ex := range e.Examples {
		c.Examples[i] = CatalogExample{Operation: ex.Operation, Input: copyValue(ex.Input)}
		if ex.Options != nil {
			c.Examples[i].Options = copyValue(ex.Options).(map[string]interface{})
		}
	}
	return c
}

// copyValue deep-copies the maps and slices produced by YAML or JSON decoding.
func copyValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[k] = copyValue(val)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(t))
		for i, val := range t {
			s[i] = copyValue(val)
		}
		return s
	default:
		return v
	}
}
