package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/tscontext-mcp/internal/completion"
	"github.com/dshills/tscontext-mcp/internal/indexer"
	"github.com/dshills/tscontext-mcp/internal/parser"
	"github.com/dshills/tscontext-mcp/internal/storage"
	"github.com/dshills/tscontext-mcp/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams      = -32602 // Invalid method parameters
	ErrorCodeInternalError      = -32603 // Internal JSON-RPC error
	ErrorCodeProjectNotFound    = -32001 // Specified path does not contain source files
	ErrorCodeIndexingInProgress = -32002 // Another indexing operation is already running
	ErrorCodeNotIndexed         = -32003 // Project not indexed
	ErrorCodeEmptyQuery         = -32004 // Neither prefix nor container given
	ErrorCodeParseFailed        = -32005 // Source text is malformed
)

// maxReportedErrors bounds the per-file errors echoed by index_project
const maxReportedErrors = 5

// handleParseSource handles the parse_source tool invocation
func (s *Server) handleParseSource(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	source, hasSource := args["source"].(string)
	path, hasPath := args["path"].(string)
	hasPath = hasPath && path != ""
	if hasSource == hasPath {
		return nil, newMCPError(ErrorCodeInvalidParams, "exactly one of source or path is required", map[string]interface{}{
			"param":  "source",
			"reason": "provide either source text or a file path",
		})
	}

	var (
		model *types.CodeModel
		err   error
	)
	if hasPath {
		if !filepath.IsAbs(path) {
			return nil, newMCPError(ErrorCodeInvalidParams, "invalid path", map[string]interface{}{
				"param":  "path",
				"reason": ErrPathNotAbsolute.Error(),
			})
		}
		model, err = s.parser.ParseFile(path)
	} else {
		model, err = s.parser.ParseBytes([]byte(source))
	}
	if err != nil {
		return nil, parseFailure(err)
	}

	response := map[string]interface{}{
		"modules":  model.Modules,
		"literals": model.Literals,
	}
	if getBoolDefault(args, "include_symbols", false) {
		response["symbols"] = s.flattener.Flatten(model)
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// parseFailure maps parser errors onto MCP errors
func parseFailure(err error) error {
	var syntaxErr *types.SyntaxError
	if errors.As(err, &syntaxErr) {
		return newMCPError(ErrorCodeParseFailed, "syntax error", map[string]interface{}{
			"expected":  syntaxErr.Expected,
			"actual":    syntaxErr.Actual,
			"remaining": syntaxErr.Remaining,
			"error":     err.Error(),
		})
	}
	var annotationErr *types.AmbiguousAnnotationError
	if errors.As(err, &annotationErr) {
		return newMCPError(ErrorCodeParseFailed, "ambiguous type annotation", map[string]interface{}{
			"token": annotationErr.Token,
			"error": err.Error(),
		})
	}
	if errors.Is(err, parser.ErrFileTooLarge) || errors.Is(err, fs.ErrNotExist) {
		return newMCPError(ErrorCodeInvalidParams, "invalid path", map[string]interface{}{
			"param":  "path",
			"reason": err.Error(),
		})
	}
	return newMCPError(ErrorCodeInternalError, "parse failed", map[string]interface{}{
		"error": err.Error(),
	})
}

// handleIndexProject handles the index_project tool invocation
func (s *Server) handleIndexProject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, err := s.requirePath(args)
	if err != nil {
		return nil, err
	}

	if err := validatePath(path, s.config.Extensions); err != nil {
		code := ErrorCodeInvalidParams
		if errors.Is(err, ErrNoSourceFiles) {
			code = ErrorCodeProjectNotFound
		}
		return nil, newMCPError(code, "invalid path", map[string]interface{}{
			"param":  "path",
			"reason": err.Error(),
		})
	}

	cfg := indexer.ConfigFrom(s.config)
	cfg.ForceReindex = getBoolDefault(args, "force_reindex", false)

	stats, err := s.indexer.IndexProject(ctx, path, cfg)
	if errors.Is(err, indexer.ErrIndexInProgress) {
		return nil, newMCPError(ErrorCodeIndexingInProgress, "indexing already in progress", map[string]interface{}{
			"path": path,
		})
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "indexing failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Cached completions may reference replaced rows
	s.completer.Invalidate()

	response := map[string]interface{}{
		"indexed":           true,
		"run_id":            stats.RunID,
		"files_discovered":  stats.FilesDiscovered,
		"files_indexed":     stats.FilesIndexed,
		"files_skipped":     stats.FilesSkipped,
		"files_failed":      stats.FilesFailed,
		"files_removed":     stats.FilesRemoved,
		"symbols_extracted": stats.SymbolsExtracted,
		"duration_ms":       stats.Duration.Milliseconds(),
	}

	if errorCount := len(stats.ErrorMessages); errorCount > 0 {
		if errorCount > maxReportedErrors {
			response["errors"] = stats.ErrorMessages[:maxReportedErrors]
			response["error_count"] = errorCount
		} else {
			response["errors"] = stats.ErrorMessages
		}
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleCompleteSymbol handles the complete_symbol tool invocation
func (s *Server) handleCompleteSymbol(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, err := s.requirePath(args)
	if err != nil {
		return nil, err
	}

	prefix := getStringDefault(args, "prefix", "")
	container := getStringDefault(args, "container", "")
	if prefix == "" && container == "" {
		return nil, newMCPError(ErrorCodeEmptyQuery, "prefix or container is required", map[string]interface{}{
			"param":  "prefix",
			"reason": "missing or empty",
		})
	}

	limit := getIntDefault(args, "limit", completion.DefaultLimit)
	if limit < 1 || limit > completion.MaxLimit {
		return nil, newMCPError(ErrorCodeInvalidParams, fmt.Sprintf("limit must be between 1 and %d", completion.MaxLimit), map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	kinds, err := getKinds(args)
	if err != nil {
		return nil, err
	}

	project, err := s.storage.GetProject(ctx, path)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, newMCPError(ErrorCodeNotIndexed, "project not indexed", map[string]interface{}{
			"path":    path,
			"message": "Use the index_project tool to index this project first.",
		})
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get project", map[string]interface{}{
			"error": err.Error(),
		})
	}

	resp, err := s.completer.Complete(ctx, completion.Request{
		ProjectID:    project.ID,
		Prefix:       prefix,
		Container:    container,
		Kinds:        kinds,
		ExportedOnly: getBoolDefault(args, "exported_only", false),
		Limit:        limit,
	})
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "completion failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"items":       resp.Items,
		"count":       len(resp.Items),
		"cache_hit":   resp.CacheHit,
		"duration_ms": resp.Duration.Milliseconds(),
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, err := s.requirePath(args)
	if err != nil {
		return nil, err
	}

	project, err := s.storage.GetProject(ctx, path)
	if errors.Is(err, storage.ErrNotFound) {
		response := map[string]interface{}{
			"indexed": false,
			"path":    path,
			"message": "Project not indexed. Use index_project tool to index this project.",
		}
		return mcp.NewToolResultText(formatJSON(response)), nil
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get project status", map[string]interface{}{
			"error": err.Error(),
		})
	}

	status, err := s.storage.GetStatus(ctx, project.ID)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get status", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"indexed": true,
		"project": map[string]interface{}{
			"path":            project.RootPath,
			"name":            project.Name,
			"index_version":   project.IndexVersion,
			"last_indexed_at": project.LastIndexedAt.Format(time.RFC3339),
		},
		"statistics": map[string]interface{}{
			"files_count":       status.FilesCount,
			"files_with_errors": status.FilesWithErrors,
			"symbols_count":     status.SymbolsCount,
			"symbols_by_kind":   status.SymbolsByKind,
			"index_size_mb":     fmt.Sprintf("%.2f", status.IndexSizeMB),
		},
		"health": map[string]interface{}{
			"database_accessible": status.Health.DatabaseAccessible,
			"fts_indexes_built":   status.Health.FTSIndexesBuilt,
			"driver":              storage.DriverName,
		},
	}

	if run := status.LastRun; run != nil {
		response["last_run"] = map[string]interface{}{
			"run_id":            run.ID,
			"started_at":        run.StartedAt.Format(time.RFC3339),
			"duration_ms":       run.Duration().Milliseconds(),
			"files_indexed":     run.FilesIndexed,
			"files_skipped":     run.FilesSkipped,
			"files_failed":      run.FilesFailed,
			"files_removed":     run.FilesRemoved,
			"symbols_extracted": run.SymbolsExtracted,
		}
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// requirePath extracts the path argument and resolves it the way the indexer
// stores project roots
func (s *Server) requirePath(args map[string]interface{}) (string, error) {
	path, ok := args["path"].(string)
	if !ok || path == "" {
		return "", newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}
	if !filepath.IsAbs(path) {
		return "", newMCPError(ErrorCodeInvalidParams, "invalid path", map[string]interface{}{
			"param":  "path",
			"reason": ErrPathNotAbsolute.Error(),
		})
	}
	return filepath.Clean(path), nil
}

// getKinds extracts the optional kinds filter
func getKinds(args map[string]interface{}) ([]types.SymbolKind, error) {
	raw, ok := args["kinds"].([]interface{})
	if !ok {
		return nil, nil
	}

	kinds := make([]types.SymbolKind, 0, len(raw))
	for _, v := range raw {
		name, _ := v.(string)
		kind := types.SymbolKind(strings.ToLower(name))
		sym := types.Symbol{Kind: kind}
		if err := sym.ValidateKind(); err != nil {
			return nil, newMCPError(ErrorCodeInvalidParams, "invalid kind", map[string]interface{}{
				"param":   "kinds",
				"value":   v,
				"allowed": []string{"module", "class", "field", "function"},
			})
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// validatePath checks that a project root exists, is a readable directory,
// and contains at least one file with a configured extension
func validatePath(path string, extensions []string) error {
	if path == "" {
		return ErrPathRequired
	}

	if !filepath.IsAbs(path) {
		return ErrPathNotAbsolute
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ErrPathNotFound
	}
	if err != nil {
		return ErrPathNotReadable
	}

	if !info.IsDir() {
		return ErrNotDirectory
	}

	f, err := os.Open(path)
	if err != nil {
		return ErrPathNotReadable
	}
	_ = f.Close()

	found := errors.New("found")
	walkErr := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		for _, ext := range extensions {
			if strings.HasSuffix(strings.ToLower(p), strings.ToLower(ext)) && !strings.HasSuffix(p, ".d.ts") {
				return found
			}
		}
		return nil
	})
	if walkErr != found {
		return ErrNoSourceFiles
	}

	return nil
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}

// Validation errors
var (
	ErrPathRequired    = errors.New("path is required")
	ErrPathNotAbsolute = errors.New("path must be absolute")
	ErrPathNotFound    = errors.New("path does not exist")
	ErrPathNotReadable = errors.New("path is not readable")
	ErrNotDirectory    = errors.New("path is not a directory")
	ErrNoSourceFiles   = errors.New("directory does not contain source files")
)
