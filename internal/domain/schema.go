package domain

const jsonSchemaDraft = "https://json-schema.org/draft/2020-12/schema"

// BridgeSchema is the published JSON Schema pair for bridge requests and responses.
type BridgeSchema struct {
	Request  JSONSchema `json:"request"`
	Response JSONSchema `json:"response"`
}

// BuildBridgeSchema derives the request and response schemas from the catalog,
// so the tool enumeration always matches the registered tools.
func BuildBridgeSchema() BridgeSchema {
	return BridgeSchema{
		Request:  requestSchema(),
		Response: responseSchema(),
	}
}

// ToolInputSchema describes the arguments of one tool when it is called
// through MCP tools/call.
func ToolInputSchema(entry CatalogEntry) JSONSchema {
	return JSONSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"operation": map[string]interface{}{
				"type":        "string",
				"description": "Operation to run",
				"enum":        append([]string(nil), entry.Operations...),
			},
			"input": map[string]interface{}{
				"description": "Tool input; a string for most tools, an object for diff-viewer",
			},
			"options": map[string]interface{}{
				"type":        "object",
				"description": "Optional tool-specific options",
			},
		},
		Required: []string{"operation"},
	}
}

func requestSchema() JSONSchema {
	closed := false

	// Each tool restricts the operation enum to its own operations.
	var perTool []interface{}
	for _, entry := range catalog {
		perTool = append(perTool, map[string]interface{}{
			"if": map[string]interface{}{
				"properties": map[string]interface{}{
					"tool": map[string]interface{}{"const": string(entry.ID)},
				},
			},
			"then": map[string]interface{}{
				"properties": map[string]interface{}{
					"operation": map[string]interface{}{"enum": append([]string(nil), entry.Operations...)},
				},
			},
		})
	}

	return JSONSchema{
		Schema: jsonSchemaDraft,
		Title:  "ToolRequest",
		Type:   "object",
		Properties: map[string]interface{}{
			"tool": map[string]interface{}{
				"type": "string",
				"enum": CatalogToolIDs(),
			},
			"operation": map[string]interface{}{
				"type":      "string",
				"minLength": 1,
			},
			"input": map[string]interface{}{
				"description": "Tool input; defaults to an empty string",
			},
			"options": map[string]interface{}{
				"type": "object",
			},
		},
		Required:             []string{"tool", "operation"},
		AdditionalProperties: &closed,
		AllOf:                perTool,
	}
}

func responseSchema() JSONSchema {
	codes := make([]string, len(AllErrorCodes))
	for i, c := range AllErrorCodes {
		codes[i] = string(c)
	}
	stringArray := map[string]interface{}{
		"type":  "array",
		"items": map[string]interface{}{"type": "string"},
	}

	return JSONSchema{
		Schema: jsonSchemaDraft,
		Title:  "ToolResponse",
		Type:   "object",
		Properties: map[string]interface{}{
			"ok":        map[string]interface{}{"type": "boolean"},
			"tool":      map[string]interface{}{"type": "string"},
			"operation": map[string]interface{}{"type": "string"},
			"result":    map[string]interface{}{},
			"error":     map[string]interface{}{"type": "string"},
			"errorDetails": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"code":                map[string]interface{}{"type": "string", "enum": codes},
					"message":             map[string]interface{}{"type": "string"},
					"supportedOperations": stringArray,
					"supportedTools":      stringArray,
					"didYouMean":          map[string]interface{}{"type": "string"},
					"hints":               stringArray,
				},
				"required": []string{"code", "message"},
			},
			"problem": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"type":   map[string]interface{}{"type": "string"},
					"title":  map[string]interface{}{"type": "string"},
					"status": map[string]interface{}{"type": "integer"},
					"detail": map[string]interface{}{"type": "string"},
				},
				"required": []string{"type", "title", "status", "detail"},
			},
		},
		Required: []string{"ok", "tool", "operation"},
		AllOf: []interface{}{
			map[string]interface{}{
				"if":   map[string]interface{}{"properties": map[string]interface{}{"ok": map[string]interface{}{"const": true}}},
				"then": map[string]interface{}{"required": []string{"result"}, "not": map[string]interface{}{"anyOf": anyRequired("error", "errorDetails", "problem")}},
				"else": map[string]interface{}{"required": []string{"error", "errorDetails", "problem"}, "not": map[string]interface{}{"required": []string{"result"}}},
			},
		},
	}
}

func anyRequired(fields ...string) []interface{} {
	out := make([]interface{}, len(fields))
	for i, f := range fields {
		out[i] = map[string]interface{}{"required": []string{f}}
	}
	return out
}
