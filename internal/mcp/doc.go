// Package mcp implements the Model Context Protocol (MCP) server for tscontext.
//
// The server exposes four tools over stdio:
//   - parse_source: parse source text or a file into its code model
//   - index_project: index every source file under a directory
//   - complete_symbol: complete symbol names or list container members
//   - get_status: report indexing statistics for a project
//
// Stdout carries the JSON-RPC stream, so all logging goes to stderr.
//
// # Tool: complete_symbol
//
//	Request:
//	{
//	  "name": "complete_symbol",
//	  "arguments": {
//	    "path": "/path/to/project",
//	    "prefix": "App.Models.Us",
//	    "limit": 10
//	  }
//	}
//
//	Response:
//	{
//	  "items": [
//	    {
//	      "label": "User",
//	      "kind": "class",
//	      "detail": "export class User",
//	      "qualified_name": "App.Models.User",
//	      "container": "App.Models",
//	      "exported": true,
//	      "file_path": "models/user.ts"
//	    }
//	  ],
//	  "count": 1,
//	  "cache_hit": false
//	}
//
// # Error Handling
//
// Tool failures are returned as *MCPError values carrying a JSON-RPC code:
//   - -32602: invalid params
//   - -32603: internal error
//   - -32001: path contains no source files
//   - -32002: indexing already in progress
//   - -32003: project not indexed
//   - -32004: neither prefix nor container given
//   - -32005: source text failed to parse (data holds expected, actual and remaining tokens)
package mcp
