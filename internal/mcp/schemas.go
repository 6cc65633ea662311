package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// parseSourceTool returns the tool definition for parse_source
func parseSourceTool() mcp.Tool {
	return mcp.Tool{
		Name:        "parse_source",
		Description: "Parse a module/class source text or file into its code model (modules, classes, fields, functions)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"source": map[string]interface{}{
					"type":        "string",
					"description": "Source text to parse (mutually exclusive with path)",
				},
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path of a source file to parse (mutually exclusive with source)",
				},
				"include_symbols": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, also return the flattened symbol list",
					"default":     false,
				},
			},
		},
	}
}

// indexProjectTool returns the tool definition for index_project
func indexProjectTool() mcp.Tool {
	return mcp.Tool{
		Name:        "index_project",
		Description: "Index every source file under a directory so its symbols can be completed",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the project root",
				},
				"force_reindex": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, re-parse all files ignoring stored hashes",
					"default":     false,
				},
			},
			Required: []string{"path"},
		},
	}
}

// completeSymbolTool returns the tool definition for complete_symbol
func completeSymbolTool() mcp.Tool {
	return mcp.Tool{
		Name:        "complete_symbol",
		Description: "Complete a symbol name or list the members of a module or class in an indexed project",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the indexed project",
				},
				"prefix": map[string]interface{}{
					"type":        "string",
					"description": "Name prefix; a dotted prefix such as App.Models.Us completes members of App.Models",
				},
				"container": map[string]interface{}{
					"type":        "string",
					"description": "Qualified module or class name whose direct members are returned",
				},
				"kinds": map[string]interface{}{
					"type":        "array",
					"description": "Restrict results to these symbol kinds",
					"items": map[string]interface{}{
						"type": "string",
						"enum": []string{"module", "class", "field", "function"},
					},
				},
				"exported_only": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, only return exported classes and their public members",
					"default":     false,
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of items to return (1-200)",
					"default":     20,
					"minimum":     1,
					"maximum":     200,
				},
			},
			Required: []string{"path"},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Query indexing status and statistics for a project",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the project",
				},
			},
			Required: []string{"path"},
		},
	}
}
