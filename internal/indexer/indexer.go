package indexer

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/tscontext-mcp/internal/config"
	"github.com/dshills/tscontext-mcp/internal/parser"
	"github.com/dshills/tscontext-mcp/internal/storage"
	"github.com/dshills/tscontext-mcp/internal/symbols"
	"github.com/dshills/tscontext-mcp/pkg/types"
)

var (
	// ErrIndexInProgress is returned when another run holds the indexer
	ErrIndexInProgress = errors.New("indexing already in progress")
	// ErrNotDirectory is returned when the project root is not a directory
	ErrNotDirectory = errors.New("project root is not a directory")
)

// maxErrorMessages caps Statistics.ErrorMessages
const maxErrorMessages = 100

// Indexer coordinates the indexing pipeline: discover -> parse -> flatten -> store
type Indexer struct {
	flattener *symbols.Flattener
	storage   storage.Storage
	logger    *slog.Logger
	lock      IndexLock
}

// Config contains configuration for the indexer
type Config struct {
	Workers      int      // Concurrent parse workers (default: runtime.NumCPU())
	BatchSize    int      // Files committed per transaction (default: 20)
	Extensions   []string // File extensions to index (default: .ts)
	IgnoreDirs   []string // Directory names skipped during discovery (nil: defaults)
	MaxFileBytes int64    // Larger files are recorded as failed
	ForceReindex bool     // Re-parse files even when their hash is unchanged
}

// ConfigFrom derives indexer settings from the application config
func ConfigFrom(c *config.Config) *Config {
	return &Config{
		Workers:      c.Workers,
		BatchSize:    c.BatchSize,
		Extensions:   append([]string(nil), c.Extensions...),
		IgnoreDirs:   append([]string(nil), c.IgnoreDirs...),
		MaxFileBytes: c.MaxFileBytes,
	}
}

func (c *Config) withDefaults() *Config {
	out := *c
	if out.Workers <= 0 {
		out.Workers = runtime.NumCPU()
	}
	if out.BatchSize <= 0 {
		out.BatchSize = 20
	}
	defaults := config.Default()
	if len(out.Extensions) == 0 {
		out.Extensions = defaults.Extensions
	}
	if out.IgnoreDirs == nil {
		out.IgnoreDirs = defaults.IgnoreDirs
	}
	if out.MaxFileBytes <= 0 {
		out.MaxFileBytes = defaults.MaxFileBytes
	}
	return &out
}

// Statistics contains statistics about the indexing operation
type Statistics struct {
	RunID            string
	ProjectID        int64
	FilesDiscovered  int
	FilesIndexed     int
	FilesSkipped     int
	FilesFailed      int
	FilesRemoved     int
	SymbolsExtracted int
	Duration         time.Duration
	ErrorMessages    []string
}

// fileResult is the outcome of hashing and parsing one file
type fileResult struct {
	relPath  string
	hash     [32]byte
	modTime  time.Time
	size     int64
	symbols  []types.Symbol
	parseErr error
	skipped  bool
	readErr  error
}

// New creates a new Indexer instance. A nil logger uses slog.Default().
func New(store storage.Storage, logger *slog.Logger) *Indexer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Indexer{
		flattener: symbols.New(),
		storage:   store,
		logger:    logger,
	}
}

// IndexProject indexes every matching source file under rootPath. Parse
// failures are recorded per file and never abort the run.
func (idx *Indexer) IndexProject(ctx context.Context, rootPath string, cfg *Config) (*Statistics, error) {
	if !idx.lock.TryAcquire() {
		return nil, ErrIndexInProgress
	}
	defer idx.lock.Release()

	if cfg == nil {
		cfg = &Config{}
	}
	cfg = cfg.withDefaults()

	root, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	startTime := time.Now()
	stats := &Statistics{
		RunID:         uuid.NewString(),
		ErrorMessages: make([]string, 0),
	}
	log := idx.logger.With("run_id", stats.RunID, "root", root)
	log.Info("indexing started", "workers", cfg.Workers, "force", cfg.ForceReindex)

	project, err := idx.getOrCreateProject(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create project: %w", err)
	}
	stats.ProjectID = project.ID

	files, err := discoverFiles(root, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}
	stats.FilesDiscovered = len(files)
	log.Debug("files discovered", "count", len(files))

	existing, err := idx.storage.ListFiles(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list indexed files: %w", err)
	}
	known := make(map[string]*storage.File, len(existing))
	for _, f := range existing {
		known[f.FilePath] = f
	}

	results, err := idx.parseFiles(ctx, root, files, known, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse files: %w", err)
	}

	if err := idx.storeResults(ctx, project, results, cfg, stats); err != nil {
		return nil, fmt.Errorf("failed to store files: %w", err)
	}

	removed, err := idx.removeMissing(ctx, results, known)
	if err != nil {
		return nil, fmt.Errorf("failed to remove deleted files: %w", err)
	}
	stats.FilesRemoved = removed

	stats.Duration = time.Since(startTime)
	if err := idx.finishRun(ctx, project, startTime, stats); err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}

	log.Info("indexing finished",
		"indexed", stats.FilesIndexed,
		"skipped", stats.FilesSkipped,
		"failed", stats.FilesFailed,
		"removed", stats.FilesRemoved,
		"symbols", stats.SymbolsExtracted,
		"duration", stats.Duration)

	return stats, nil
}

// getOrCreateProject retrieves an existing project or creates a new one
func (idx *Indexer) getOrCreateProject(ctx context.Context, rootPath string) (*storage.Project, error) {
	project, err := idx.storage.GetProject(ctx, rootPath)
	if err == nil {
		return project, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	project = &storage.Project{
		RootPath:     rootPath,
		Name:         filepath.Base(rootPath),
		IndexVersion: storage.CurrentSchemaVersion,
	}
	if err := idx.storage.CreateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// discoverFiles returns matching files sorted by path, skipping hidden and
// ignored directories
func discoverFiles(root string, cfg *Config) ([]string, error) {
	ignored := make(map[string]bool, len(cfg.IgnoreDirs))
	for _, d := range cfg.IgnoreDirs {
		ignored[d] = true
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") || ignored[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !hasExtension(path, cfg.Extensions) {
			return nil
		}
		// Declaration files describe shapes, not modules
		if strings.HasSuffix(path, ".d.ts") {
			return nil
		}

		files = append(files, path)
		return nil
	})

	sort.Strings(files)
	return files, err
}

func hasExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// parseFiles hashes and parses files concurrently. Results keep the order of files.
func (idx *Indexer) parseFiles(ctx context.Context, root string, files []string,
	known map[string]*storage.File, cfg *Config) ([]*fileResult, error) {

	p := parser.New(parser.WithMaxFileSize(cfg.MaxFileBytes))
	results := make([]*fileResult, len(files))
	semaphore := make(chan struct{}, cfg.Workers)

	g, gctx := errgroup.WithContext(ctx)
dispatch:
	for i, path := range files {
		select {
		case <-gctx.Done():
			break dispatch
		case semaphore <- struct{}{}:
		}

		g.Go(func() error {
			defer func() { <-semaphore }()
			results[i] = idx.parseFile(p, root, path, known, cfg.ForceReindex)
			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (idx *Indexer) parseFile(p *parser.Parser, root, path string,
	known map[string]*storage.File, force bool) *fileResult {

	res := &fileResult{relPath: path}
	if rel, err := filepath.Rel(root, path); err == nil {
		res.relPath = filepath.ToSlash(rel)
	}

	info, err := os.Stat(path)
	if err != nil {
		res.readErr = err
		return res
	}
	content, err := os.ReadFile(path)
	if err != nil {
		res.readErr = err
		return res
	}

	res.hash = sha256.Sum256(content)
	res.modTime = info.ModTime()
	res.size = int64(len(content))

	if prev, ok := known[res.relPath]; ok && !force && prev.ContentHash == res.hash {
		res.skipped = true
		return res
	}

	model, err := p.ParseBytes(content)
	if err != nil {
		res.parseErr = err
		return res
	}
	res.symbols = idx.flattener.Flatten(model)
	return res
}

// batchCounts accumulates per-file outcomes across batches
type batchCounts struct {
	indexed, failed, symbols int
}

// storeResults writes changed files in batched transactions
func (idx *Indexer) storeResults(ctx context.Context, project *storage.Project,
	results []*fileResult, cfg *Config, stats *Statistics) error {

	var counts batchCounts
	pending := make([]*fileResult, 0, len(results))

	for _, res := range results {
		switch {
		case res.readErr != nil:
			counts.failed++
			stats.addError(res.relPath, res.readErr)
		case res.skipped:
			stats.FilesSkipped++
		default:
			pending = append(pending, res)
		}
	}

	for start := 0; start < len(pending); start += cfg.BatchSize {
		end := start + cfg.BatchSize
		if end > len(pending) {
			end = len(pending)
		}
		if err := idx.storeBatch(ctx, project, pending[start:end], &counts, stats); err != nil {
			return err
		}
	}

	stats.FilesIndexed = counts.indexed
	stats.FilesFailed = counts.failed
	stats.SymbolsExtracted = counts.symbols
	return nil
}

func (idx *Indexer) storeBatch(ctx context.Context, project *storage.Project, batch []*fileResult,
	counts *batchCounts, stats *Statistics) error {

	tx, err := idx.storage.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, res := range batch {
		file := &storage.File{
			ProjectID:   project.ID,
			FilePath:    res.relPath,
			ContentHash: res.hash,
			ModTime:     res.modTime,
			SizeBytes:   res.size,
		}
		if res.parseErr != nil {
			msg := res.parseErr.Error()
			file.ParseError = &msg
		}

		if err := tx.UpsertFile(ctx, file); err != nil {
			return err
		}
		if err := tx.DeleteSymbolsByFile(ctx, file.ID); err != nil {
			return fmt.Errorf("failed to delete old symbols: %w", err)
		}

		if res.parseErr != nil {
			counts.failed++
			stats.addError(res.relPath, res.parseErr)
			idx.logger.Warn("parse failed", "file", res.relPath, "error", res.parseErr)
			continue
		}

		for i := range res.symbols {
			if err := tx.UpsertSymbol(ctx, storage.FromTypesSymbol(res.symbols[i], file.ID)); err != nil {
				return fmt.Errorf("failed to store symbol: %w", err)
			}
		}
		counts.indexed++
		counts.symbols += len(res.symbols)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// removeMissing deletes records for files no longer present on disk
func (idx *Indexer) removeMissing(ctx context.Context, results []*fileResult, known map[string]*storage.File) (int, error) {
	seen := make(map[string]bool, len(results))
	for _, res := range results {
		seen[res.relPath] = true
	}

	removed := 0
	for path, f := range known {
		if seen[path] {
			continue
		}
		if err := idx.storage.DeleteFile(ctx, f.ID); err != nil {
			return removed, err
		}
		idx.logger.Debug("file removed", "file", path)
		removed++
	}
	return removed, nil
}

// finishRun records the run and refreshes project totals
func (idx *Indexer) finishRun(ctx context.Context, project *storage.Project, started time.Time, stats *Statistics) error {
	status, err := idx.storage.GetStatus(ctx, project.ID)
	if err != nil {
		return err
	}

	run := &storage.IndexRun{
		ID:               stats.RunID,
		ProjectID:        project.ID,
		StartedAt:        started,
		FinishedAt:       started.Add(stats.Duration),
		FilesIndexed:     stats.FilesIndexed,
		FilesSkipped:     stats.FilesSkipped,
		FilesFailed:      stats.FilesFailed,
		FilesRemoved:     stats.FilesRemoved,
		SymbolsExtracted: stats.SymbolsExtracted,
	}
	if err := idx.storage.RecordRun(ctx, run); err != nil {
		return err
	}

	project.TotalFiles = status.FilesCount
	project.TotalSymbols = status.SymbolsCount
	project.LastRunID = stats.RunID
	project.LastIndexedAt = run.FinishedAt
	return idx.storage.UpdateProject(ctx, project)
}

func (s *Statistics) addError(path string, err error) {
	if len(s.ErrorMessages) < maxErrorMessages {
		s.ErrorMessages = append(s.ErrorMessages, fmt.Sprintf("%s: %v", path, err))
	}
}
