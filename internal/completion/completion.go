package completion

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dshills/tscontext-mcp/internal/storage"
	"github.com/dshills/tscontext-mcp/pkg/types"
)

const (
	// DefaultLimit is used when a request sets no limit
	DefaultLimit = 20
	// MaxLimit caps the number of items returned
	MaxLimit = 200
	// DefaultCacheTTL bounds how long a cached response stays valid
	DefaultCacheTTL = 10 * time.Minute
)

// ErrEmptyRequest is returned when neither a prefix nor a container is given
var ErrEmptyRequest = errors.New("prefix or container is required")

// Request describes one completion lookup
type Request struct {
	ProjectID int64
	// Prefix is matched case-insensitively against symbol names. A dotted
	// prefix such as "App.Models.Us" completes members of App.Models.
	Prefix string
	// Container restricts results to direct children of a module or class
	Container    string
	Kinds        []types.SymbolKind
	ExportedOnly bool
	Limit        int
}

// Item is a single completion candidate
type Item struct {
	Label         string           `json:"label"`
	Kind          types.SymbolKind `json:"kind"`
	Detail        string           `json:"detail"`
	QualifiedName string           `json:"qualified_name"`
	Container     string           `json:"container,omitempty"`
	Type          types.TypeKind   `json:"type,omitempty"`
	TypeName      string           `json:"type_name,omitempty"`
	Exported      bool             `json:"exported"`
	FilePath      string           `json:"file_path"`
}

// Response contains completion items and metadata
type Response struct {
	Items    []Item
	Duration time.Duration
	CacheHit bool
}

type cacheEntry struct {
	items     []Item
	expiresAt time.Time
}

// Completer answers completion requests from the symbol index
type Completer struct {
	storage storage.Storage
	cache   *lru.Cache[[32]byte, *cacheEntry]
	ttl     time.Duration
}

// New creates a Completer with an LRU cache of cacheSize entries. A size of
// zero disables caching.
func New(store storage.Storage, cacheSize int) (*Completer, error) {
	c := &Completer{storage: store, ttl: DefaultCacheTTL}
	if cacheSize > 0 {
		cache, err := lru.New[[32]byte, *cacheEntry](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create LRU cache: %w", err)
		}
		c.cache = cache
	}
	return c, nil
}

// SetTTL changes how long cached responses remain valid
func (c *Completer) SetTTL(ttl time.Duration) {
	if ttl > 0 {
		c.ttl = ttl
	}
}

// Complete returns matching candidates. Prefix searches rank shorter names
// first; member listings keep declaration order.
func (c *Completer) Complete(ctx context.Context, req Request) (*Response, error) {
	startTime := time.Now()

	if err := normalizeRequest(&req); err != nil {
		return nil, fmt.Errorf("invalid completion request: %w", err)
	}

	key := computeRequestHash(req)
	if items, ok := c.checkCache(key); ok {
		return &Response{Items: items, Duration: time.Since(startTime), CacheHit: true}, nil
	}

	var (
		rows []*storage.Symbol
		err  error
	)
	if req.Prefix == "" && len(req.Kinds) == 0 && !req.ExportedOnly {
		rows, err = c.storage.ListMembers(ctx, req.ProjectID, req.Container, req.Limit)
	} else {
		rows, err = c.storage.SearchSymbols(ctx, req.ProjectID, req.Prefix, toFilters(req), req.Limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query symbols: %w", err)
	}

	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, toItem(row))
	}

	c.storeInCache(key, items)
	return &Response{Items: copyItems(items), Duration: time.Since(startTime)}, nil
}

// Invalidate drops every cached response. Call it after re-indexing.
func (c *Completer) Invalidate() {
	if c.cache != nil {
		c.cache.Purge()
	}
}

// CacheLen reports the number of cached responses
func (c *Completer) CacheLen() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}

// normalizeRequest splits dotted prefixes and clamps the limit
func normalizeRequest(req *Request) error {
	req.Prefix = strings.TrimSpace(req.Prefix)
	req.Container = strings.TrimSpace(req.Container)

	if i := strings.LastIndexByte(req.Prefix, '.'); i >= 0 && req.Container == "" {
		req.Container = req.Prefix[:i]
		req.Prefix = req.Prefix[i+1:]
	}
	req.Container = strings.Trim(req.Container, ".")

	if req.Prefix == "" && req.Container == "" {
		return ErrEmptyRequest
	}

	if req.Limit <= 0 {
		req.Limit = DefaultLimit
	}
	if req.Limit > MaxLimit {
		req.Limit = MaxLimit
	}

	for _, k := range req.Kinds {
		s := types.Symbol{Kind: k}
		if err := s.ValidateKind(); err != nil {
			return fmt.Errorf("%w: %q", err, k)
		}
	}
	return nil
}

func toFilters(req Request) *storage.SymbolFilters {
	filters := &storage.SymbolFilters{
		Container:    req.Container,
		ExportedOnly: req.ExportedOnly,
	}
	for _, k := range req.Kinds {
		filters.Kinds = append(filters.Kinds, string(k))
	}
	return filters
}

func toItem(s *storage.Symbol) Item {
	return Item{
		Label:         s.Name,
		Kind:          types.SymbolKind(s.Kind),
		Detail:        s.Signature,
		QualifiedName: s.QualifiedName,
		Container:     s.Container,
		Type:          types.TypeKind(s.TypeKind),
		TypeName:      s.TypeName,
		Exported:      s.IsExported,
		FilePath:      s.FilePath,
	}
}

func (c *Completer) checkCache(key [32]byte) ([]Item, bool) {
	if c.cache == nil {
		return nil, false
	}
	entry, found := c.cache.Get(key)
	if !found {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.cache.Remove(key)
		return nil, false
	}
	return copyItems(entry.items), true
}

func (c *Completer) storeInCache(key [32]byte, items []Item) {
	if c.cache == nil {
		return
	}
	c.cache.Add(key, &cacheEntry{items: copyItems(items), expiresAt: time.Now().Add(c.ttl)})
}

func copyItems(src []Item) []Item {
	dst := make([]Item, len(src))
	copy(dst, src)
	return dst
}

// computeRequestHash creates a cache key for a normalized request
func computeRequestHash(req Request) [32]byte {
	kinds := make([]string, 0, len(req.Kinds))
	for _, k := range req.Kinds {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)

	h := sha256.New()
	fmt.Fprintf(h, "%d|%s|%s|%s|%t|%d",
		req.ProjectID, strings.ToLower(req.Prefix), req.Container,
		strings.Join(kinds, ","), req.ExportedOnly, req.Limit)

	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}
