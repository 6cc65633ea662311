package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/tscontext-mcp/internal/config"
)

const modelsSource = `module App.Models {
	export class User {
		public name: string;
		private age: number = 0;
		greet(other: User): string { return "hi " + other.name; }
	}
	class Usage {
		count: number;
	}
}`

func setupServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.Default()
	cfg.DBPath = filepath.Join(t.TempDir(), "data", "index.db")
	cfg.Workers = 2

	s, err := NewServer(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func setupProject(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "models"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "models", "user.ts"), []byte(modelsSource), 0o644))
	return root
}

func callTool(name string, args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultJSON(t *testing.T, result *mcp.CallToolResult) map[string]interface{} {
	t.Helper()

	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &out))
	return out
}

func requireMCPError(t *testing.T, err error, code int) *MCPError {
	t.Helper()

	require.Error(t, err)
	mcpErr, ok := err.(*MCPError)
	require.True(t, ok, "expected *MCPError, got %T", err)
	assert.Equal(t, code, mcpErr.Code)
	return mcpErr
}

func TestNewServer(t *testing.T) {
	s := setupServer(t)

	assert.NotNil(t, s.mcp, "MCP server should be initialized")
	assert.NotNil(t, s.storage, "Storage should be initialized")
	assert.NotNil(t, s.indexer, "Indexer should be initialized")
	assert.NotNil(t, s.completer, "Completer should be initialized")
	assert.FileExists(t, s.config.DBPath)
}

func TestNewServer_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.DBPath = ":memory:"
	cfg.LogLevel = "verbose"

	_, err := NewServer(cfg, nil)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestHandleParseSource(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()

	t.Run("source text", func(t *testing.T) {
		result, err := s.handleParseSource(ctx, callTool("parse_source", map[string]interface{}{
			"source":          modelsSource,
			"include_symbols": true,
		}))
		require.NoError(t, err)

		out := resultJSON(t, result)
		modules := out["modules"].([]interface{})
		require.Len(t, modules, 1)
		app := modules[0].(map[string]interface{})
		assert.Equal(t, "App", app["name"])

		literals := out["literals"].([]interface{})
		assert.Len(t, literals, 1)

		symbols := out["symbols"].([]interface{})
		assert.NotEmpty(t, symbols)
		first := symbols[0].(map[string]interface{})
		assert.Equal(t, "App", first["qualified_name"])
	})

	t.Run("symbols omitted by default", func(t *testing.T) {
		result, err := s.handleParseSource(ctx, callTool("parse_source", map[string]interface{}{
			"source": "module A { }",
		}))
		require.NoError(t, err)

		out := resultJSON(t, result)
		_, ok := out["symbols"]
		assert.False(t, ok)
	})

	t.Run("file path", func(t *testing.T) {
		root := setupProject(t)
		result, err := s.handleParseSource(ctx, callTool("parse_source", map[string]interface{}{
			"path": filepath.Join(root, "models", "user.ts"),
		}))
		require.NoError(t, err)
		assert.Len(t, resultJSON(t, result)["modules"], 1)
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := s.handleParseSource(ctx, callTool("parse_source", map[string]interface{}{
			"source": "module A { class B ",
		}))
		mcpErr := requireMCPError(t, err, ErrorCodeParseFailed)
		data := mcpErr.Data.(map[string]interface{})
		assert.Equal(t, "{", data["expected"])
	})

	t.Run("unclosed argument list", func(t *testing.T) {
		_, err := s.handleParseSource(ctx, callTool("parse_source", map[string]interface{}{
			"source": "module m { class C { f)( ; } }",
		}))
		mcpErr := requireMCPError(t, err, ErrorCodeParseFailed)
		data := mcpErr.Data.(map[string]interface{})
		assert.Equal(t, ")", data["expected"])
	})

	t.Run("ambiguous annotation", func(t *testing.T) {
		_, err := s.handleParseSource(ctx, callTool("parse_source", map[string]interface{}{
			"source": "module A { class B { x:number:string; } }",
		}))
		mcpErr := requireMCPError(t, err, ErrorCodeParseFailed)
		assert.Equal(t, "ambiguous type annotation", mcpErr.Message)
	})

	t.Run("source and path", func(t *testing.T) {
		_, err := s.handleParseSource(ctx, callTool("parse_source", map[string]interface{}{
			"source": "module A { }",
			"path":   "/tmp/a.ts",
		}))
		requireMCPError(t, err, ErrorCodeInvalidParams)
	})

	t.Run("neither", func(t *testing.T) {
		_, err := s.handleParseSource(ctx, callTool("parse_source", map[string]interface{}{}))
		requireMCPError(t, err, ErrorCodeInvalidParams)
	})

	t.Run("relative path", func(t *testing.T) {
		_, err := s.handleParseSource(ctx, callTool("parse_source", map[string]interface{}{
			"path": "models/user.ts",
		}))
		requireMCPError(t, err, ErrorCodeInvalidParams)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := s.handleParseSource(ctx, callTool("parse_source", map[string]interface{}{
			"path": filepath.Join(t.TempDir(), "missing.ts"),
		}))
		requireMCPError(t, err, ErrorCodeInvalidParams)
	})
}

func TestHandleIndexProject(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()
	root := setupProject(t)

	result, err := s.handleIndexProject(ctx, callTool("index_project", map[string]interface{}{
		"path": root,
	}))
	require.NoError(t, err)

	out := resultJSON(t, result)
	assert.Equal(t, true, out["indexed"])
	assert.EqualValues(t, 1, out["files_indexed"])
	assert.EqualValues(t, 0, out["files_failed"])
	assert.NotEmpty(t, out["run_id"])
	assert.Greater(t, out["symbols_extracted"].(float64), 0.0)

	t.Run("unchanged files skipped", func(t *testing.T) {
		result, err := s.handleIndexProject(ctx, callTool("index_project", map[string]interface{}{
			"path": root,
		}))
		require.NoError(t, err)
		out := resultJSON(t, result)
		assert.EqualValues(t, 0, out["files_indexed"])
		assert.EqualValues(t, 1, out["files_skipped"])
	})

	t.Run("force reindex", func(t *testing.T) {
		result, err := s.handleIndexProject(ctx, callTool("index_project", map[string]interface{}{
			"path":          root,
			"force_reindex": true,
		}))
		require.NoError(t, err)
		assert.EqualValues(t, 1, resultJSON(t, result)["files_indexed"])
	})

	t.Run("parse errors reported", func(t *testing.T) {
		broken := setupProject(t)
		require.NoError(t, os.WriteFile(filepath.Join(broken, "broken.ts"), []byte("module { "), 0o644))

		result, err := s.handleIndexProject(ctx, callTool("index_project", map[string]interface{}{
			"path": broken,
		}))
		require.NoError(t, err)
		out := resultJSON(t, result)
		assert.EqualValues(t, 1, out["files_failed"])
		assert.Len(t, out["errors"], 1)
	})

	t.Run("no source files", func(t *testing.T) {
		_, err := s.handleIndexProject(ctx, callTool("index_project", map[string]interface{}{
			"path": t.TempDir(),
		}))
		requireMCPError(t, err, ErrorCodeProjectNotFound)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := s.handleIndexProject(ctx, callTool("index_project", map[string]interface{}{}))
		requireMCPError(t, err, ErrorCodeInvalidParams)
	})

}

func TestHandleCompleteSymbol(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()
	root := setupProject(t)

	_, err := s.handleIndexProject(ctx, callTool("index_project", map[string]interface{}{"path": root}))
	require.NoError(t, err)

	labels := func(out map[string]interface{}) []string {
		var names []string
		for _, item := range out["items"].([]interface{}) {
			names = append(names, item.(map[string]interface{})["label"].(string))
		}
		return names
	}

	t.Run("prefix", func(t *testing.T) {
		result, err := s.handleCompleteSymbol(ctx, callTool("complete_symbol", map[string]interface{}{
			"path":   root,
			"prefix": "Us",
		}))
		require.NoError(t, err)
		assert.Equal(t, []string{"User", "Usage"}, labels(resultJSON(t, result)))
	})

	t.Run("dotted prefix", func(t *testing.T) {
		result, err := s.handleCompleteSymbol(ctx, callTool("complete_symbol", map[string]interface{}{
			"path":   root,
			"prefix": "App.Models.User.n",
		}))
		require.NoError(t, err)
		assert.Equal(t, []string{"name"}, labels(resultJSON(t, result)))
	})

	t.Run("container members", func(t *testing.T) {
		result, err := s.handleCompleteSymbol(ctx, callTool("complete_symbol", map[string]interface{}{
			"path":      root,
			"container": "App.Models.User",
		}))
		require.NoError(t, err)
		assert.Equal(t, []string{"name", "age", "greet"}, labels(resultJSON(t, result)))
	})

	t.Run("kinds and exported only", func(t *testing.T) {
		result, err := s.handleCompleteSymbol(ctx, callTool("complete_symbol", map[string]interface{}{
			"path":          root,
			"prefix":        "Us",
			"kinds":         []interface{}{"class"},
			"exported_only": true,
		}))
		require.NoError(t, err)
		assert.Equal(t, []string{"User"}, labels(resultJSON(t, result)))
	})

	t.Run("cache hit on repeat", func(t *testing.T) {
		args := map[string]interface{}{"path": root, "prefix": "gr"}
		_, err := s.handleCompleteSymbol(ctx, callTool("complete_symbol", args))
		require.NoError(t, err)
		result, err := s.handleCompleteSymbol(ctx, callTool("complete_symbol", args))
		require.NoError(t, err)
		assert.Equal(t, true, resultJSON(t, result)["cache_hit"])
	})

	t.Run("invalid kind", func(t *testing.T) {
		_, err := s.handleCompleteSymbol(ctx, callTool("complete_symbol", map[string]interface{}{
			"path":   root,
			"prefix": "Us",
			"kinds":  []interface{}{"method"},
		}))
		requireMCPError(t, err, ErrorCodeInvalidParams)
	})

	t.Run("empty query", func(t *testing.T) {
		_, err := s.handleCompleteSymbol(ctx, callTool("complete_symbol", map[string]interface{}{
			"path": root,
		}))
		requireMCPError(t, err, ErrorCodeEmptyQuery)
	})

	t.Run("limit out of range", func(t *testing.T) {
		_, err := s.handleCompleteSymbol(ctx, callTool("complete_symbol", map[string]interface{}{
			"path":   root,
			"prefix": "U",
			"limit":  float64(500),
		}))
		requireMCPError(t, err, ErrorCodeInvalidParams)
	})

	t.Run("not indexed", func(t *testing.T) {
		_, err := s.handleCompleteSymbol(ctx, callTool("complete_symbol", map[string]interface{}{
			"path":   t.TempDir(),
			"prefix": "U",
		}))
		requireMCPError(t, err, ErrorCodeNotIndexed)
	})
}

func TestHandleGetStatus(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()
	root := setupProject(t)

	t.Run("not indexed", func(t *testing.T) {
		result, err := s.handleGetStatus(ctx, callTool("get_status", map[string]interface{}{"path": root}))
		require.NoError(t, err)
		assert.Equal(t, false, resultJSON(t, result)["indexed"])
	})

	_, err := s.handleIndexProject(ctx, callTool("index_project", map[string]interface{}{"path": root}))
	require.NoError(t, err)

	t.Run("indexed", func(t *testing.T) {
		result, err := s.handleGetStatus(ctx, callTool("get_status", map[string]interface{}{"path": root}))
		require.NoError(t, err)

		out := resultJSON(t, result)
		assert.Equal(t, true, out["indexed"])

		stats := out["statistics"].(map[string]interface{})
		assert.EqualValues(t, 1, stats["files_count"])
		byKind := stats["symbols_by_kind"].(map[string]interface{})
		assert.EqualValues(t, 2, byKind["class"])

		health := out["health"].(map[string]interface{})
		assert.Equal(t, true, health["database_accessible"])
		assert.Equal(t, true, health["fts_indexes_built"])

		lastRun := out["last_run"].(map[string]interface{})
		assert.EqualValues(t, 1, lastRun["files_indexed"])
	})

	t.Run("relative path", func(t *testing.T) {
		_, err := s.handleGetStatus(ctx, callTool("get_status", map[string]interface{}{"path": "project"}))
		requireMCPError(t, err, ErrorCodeInvalidParams)
	})
}

func TestValidatePath(t *testing.T) {
	root := setupProject(t)
	exts := []string{".ts"}

	declOnly := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(declOnly, "lib.d.ts"), []byte(""), 0o644))

	tests := []struct {
		name string
		path string
		want error
	}{
		{"valid", root, nil},
		{"empty", "", ErrPathRequired},
		{"relative", "models", ErrPathNotAbsolute},
		{"missing", filepath.Join(root, "missing"), ErrPathNotFound},
		{"file", filepath.Join(root, "models", "user.ts"), ErrNotDirectory},
		{"no sources", t.TempDir(), ErrNoSourceFiles},
		{"declarations only", declOnly, ErrNoSourceFiles},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePath(tt.path, exts)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGetKinds(t *testing.T) {
	kinds, err := getKinds(map[string]interface{}{"kinds": []interface{}{"Class", "field"}})
	require.NoError(t, err)
	assert.Len(t, kinds, 2)

	kinds, err = getKinds(map[string]interface{}{})
	require.NoError(t, err)
	assert.Nil(t, kinds)
}
