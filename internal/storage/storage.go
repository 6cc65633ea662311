package storage

import (
	"context"
	"time"

	"github.com/dshills/tscontext-mcp/pkg/types"
)

// Storage defines the interface for persisting and querying indexed symbols
type Storage interface {
	// Project operations
	CreateProject(ctx context.Context, project *Project) error
	GetProject(ctx context.Context, rootPath string) (*Project, error)
	GetProjectByID(ctx context.Context, projectID int64) (*Project, error)
	UpdateProject(ctx context.Context, project *Project) error
	ListProjects(ctx context.Context) ([]*Project, error)

	// File operations
	UpsertFile(ctx context.Context, file *File) error
	GetFile(ctx context.Context, projectID int64, filePath string) (*File, error)
	GetFileByID(ctx context.Context, fileID int64) (*File, error)
	DeleteFile(ctx context.Context, fileID int64) error
	ListFiles(ctx context.Context, projectID int64) ([]*File, error)

	// Symbol operations
	UpsertSymbol(ctx context.Context, symbol *Symbol) error
	GetSymbol(ctx context.Context, symbolID int64) (*Symbol, error)
	ListSymbolsByFile(ctx context.Context, fileID int64) ([]*Symbol, error)
	DeleteSymbolsByFile(ctx context.Context, fileID int64) error
	SearchSymbols(ctx context.Context, projectID int64, prefix string, filters *SymbolFilters, limit int) ([]*Symbol, error)
	ListMembers(ctx context.Context, projectID int64, container string, limit int) ([]*Symbol, error)

	// Index run operations
	RecordRun(ctx context.Context, run *IndexRun) error
	ListRuns(ctx context.Context, projectID int64, limit int) ([]*IndexRun, error)

	// Status operations
	GetStatus(ctx context.Context, projectID int64) (*ProjectStatus, error)

	// Database operations
	Close() error
	BeginTx(ctx context.Context) (Tx, error)
}

// Tx represents a database transaction
type Tx interface {
	Commit() error
	Rollback() error
	Storage
}

// Project represents an indexed source tree
type Project struct {
	ID            int64
	RootPath      string
	Name          string
	TotalFiles    int
	TotalSymbols  int
	IndexVersion  string
	LastRunID     string
	LastIndexedAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// File represents a tracked source file
type File struct {
	ID            int64
	ProjectID     int64
	FilePath      string // Relative to project root
	ContentHash   [32]byte
	ModTime       time.Time
	SizeBytes     int64
	ParseError    *string // Nullable
	LastIndexedAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Symbol is a stored module, class, field or function
type Symbol struct {
	ID            int64
	FileID        int64
	Name          string
	Kind          string
	QualifiedName string
	Container     string
	Signature     string
	TypeKind      string
	TypeName      string
	Access        string
	IsExported    bool
	Ordinal       int
	CreatedAt     time.Time

	// FilePath is populated by queries that join files
	FilePath string
}

// IndexRun records one indexing pass over a project
type IndexRun struct {
	ID               string
	ProjectID        int64
	StartedAt        time.Time
	FinishedAt       time.Time
	FilesIndexed     int
	FilesSkipped     int
	FilesFailed      int
	FilesRemoved     int
	SymbolsExtracted int
}

// Duration returns how long the run took
func (r *IndexRun) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// SymbolFilters narrows symbol queries
type SymbolFilters struct {
	Kinds        []string // Filter by symbol kind
	Container    string   // Exact container path
	ExportedOnly bool
}

// ProjectStatus contains statistics about an indexed project
type ProjectStatus struct {
	Project         *Project
	FilesCount      int
	FilesWithErrors int
	SymbolsCount    int
	SymbolsByKind   map[string]int
	IndexSizeMB     float64
	LastIndexedAt   time.Time
	LastRun         *IndexRun
	Health          HealthStatus
}

// HealthStatus represents the health of the index
type HealthStatus struct {
	DatabaseAccessible bool
	FTSIndexesBuilt    bool
}

// ToTypesSymbol converts storage Symbol to types.Symbol
func (s *Symbol) ToTypesSymbol() types.Symbol {
	return types.Symbol{
		Name:          s.Name,
		Kind:          types.SymbolKind(s.Kind),
		QualifiedName: s.QualifiedName,
		Container:     s.Container,
		Signature:     s.Signature,
		Type:          types.TypeKind(s.TypeKind),
		TypeName:      s.TypeName,
		Access:        types.AccessModifier(s.Access),
		IsExported:    s.IsExported,
		Ordinal:       s.Ordinal,
	}
}

// FromTypesSymbol converts types.Symbol to storage Symbol
func FromTypesSymbol(s types.Symbol, fileID int64) *Symbol {
	return &Symbol{
		FileID:        fileID,
		Name:          s.Name,
		Kind:          string(s.Kind),
		QualifiedName: s.QualifiedName,
		Container:     s.Container,
		Signature:     s.Signature,
		TypeKind:      string(s.Type),
		TypeName:      s.TypeName,
		Access:        string(s.Access),
		IsExported:    s.IsExported,
		Ordinal:       s.Ordinal,
	}
}
