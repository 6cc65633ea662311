//go:build !cgo_sqlite

package storage

// Default build: pure Go SQLite, no C compiler required. FTS5 is built in.
//
//	CGO_ENABLED=0 go build ./...

import (
	_ "modernc.org/sqlite"
)

const (
	// DriverName is the SQLite driver to use
	DriverName = "sqlite"

	// BuildMode describes the current build configuration
	BuildMode = "purego"
)
