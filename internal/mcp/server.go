package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/tscontext-mcp/internal/completion"
	"github.com/dshills/tscontext-mcp/internal/config"
	"github.com/dshills/tscontext-mcp/internal/indexer"
	"github.com/dshills/tscontext-mcp/internal/parser"
	"github.com/dshills/tscontext-mcp/internal/storage"
	"github.com/dshills/tscontext-mcp/internal/symbols"
)

const (
	// ServerName is the MCP server name
	ServerName = "tscontext-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp       *server.MCPServer
	storage   storage.Storage
	indexer   *indexer.Indexer
	completer *completion.Completer
	parser    *parser.Parser
	flattener *symbols.Flattener
	config    *config.Config
	logger    *slog.Logger
}

// NewServer opens the index database named by cfg and registers all tools.
// A nil logger uses slog.Default().
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	store, err := storage.NewSQLiteStorage(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	completer, err := completion.New(store, cfg.CacheSize)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize completer: %w", err)
	}

	s := &Server{
		mcp:       server.NewMCPServer(ServerName, ServerVersion, server.WithToolCapabilities(false)),
		storage:   store,
		indexer:   indexer.New(store, logger),
		completer: completer,
		parser:    parser.New(parser.WithMaxFileSize(cfg.MaxFileBytes)),
		flattener: symbols.New(),
		config:    cfg,
		logger:    logger,
	}

	s.registerTools()
	logger.Debug("mcp server initialized", "db", cfg.DBPath, "driver", storage.DriverName)
	return s, nil
}

// Serve runs the MCP protocol on stdin/stdout until ctx is cancelled or the
// client disconnects, then closes the database
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.Close() }()

	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// Close releases the database
func (s *Server) Close() error {
	return s.storage.Close()
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(parseSourceTool(), s.handleParseSource)
	s.mcp.AddTool(indexProjectTool(), s.handleIndexProject)
	s.mcp.AddTool(completeSymbolTool(), s.handleCompleteSymbol)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)
}
