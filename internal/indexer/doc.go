// Package indexer builds the symbol index for a source tree.
//
// # Basic Usage
//
//	idx := indexer.New(store, logger)
//	stats, err := idx.IndexProject(ctx, "/path/to/project", indexer.ConfigFrom(cfg))
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("indexed %d files in %v (run %s)\n", stats.FilesIndexed, stats.Duration, stats.RunID)
//
// # Pipeline
//
//  1. Discovery: walk the root, keep files with a configured extension, skip
//     hidden and ignored directories and .d.ts declaration files
//  2. Parse: hash each file (SHA-256), skip unchanged files, parse the rest
//     concurrently with a bounded worker pool
//  3. Store: write files and flattened symbols in batched transactions
//  4. Prune: delete records for files that disappeared from disk
//  5. Record: store an index run tagged with a UUID and refresh project totals
//
// A file that fails to parse is stored with its error message and no symbols,
// so the status report can list it and an unchanged broken file is not
// re-parsed on the next run. Set Config.ForceReindex to re-parse everything.
//
// # Concurrency
//
// Parsing runs on an errgroup limited by a semaphore of Config.Workers slots.
// Writes are sequential because SQLite has a single writer. Only one
// IndexProject call may run per Indexer; a second concurrent call returns
// ErrIndexInProgress immediately.
package indexer
