// Package storage provides SQLite-based persistence for indexed symbols.
//
// The storage layer manages:
//   - Project metadata
//   - File information and content hashes
//   - Flattened symbols (modules, classes, fields, functions)
//   - Index run history
//   - FTS5 prefix search over symbol names
//
// # Database Schema
//
// Tables:
//   - projects: root path, totals, last run id
//   - files: relative paths, SHA-256 hashes, parse errors
//   - symbols: qualified names, containers, signatures
//   - symbols_fts: FTS5 index over name, qualified_name and signature
//   - index_runs: one row per indexing pass (schema 1.1.0)
//
// Migrations are versioned with semantic versions and applied in order on
// open. A database written by a newer build is rejected with ErrSchemaTooNew.
//
// # Basic Usage
//
//	store, err := storage.NewSQLiteStorage("/tmp/tscontext.db")
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	syms, err := store.SearchSymbols(ctx, projectID, "get", &storage.SymbolFilters{
//	    Kinds: []string{"function"},
//	}, 20)
//
// # Transactions
//
//	tx, err := store.BeginTx(ctx)
//	if err != nil {
//	    return err
//	}
//	defer func() { _ = tx.Rollback() }()
//
//	if err := tx.UpsertFile(ctx, file); err != nil {
//	    return err
//	}
//	return tx.Commit()
//
// The pool holds a single connection, so code holding a Tx must not call
// back into the parent storage until it commits or rolls back.
//
// # Drivers
//
// The default build uses modernc.org/sqlite (pure Go). Building with
// -tags "cgo_sqlite,sqlite_fts5" switches to github.com/mattn/go-sqlite3.
package storage
