package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dshills/tscontext-mcp/internal/indexer"
	"github.com/dshills/tscontext-mcp/internal/storage"
)

var indexForce bool

var indexCmd = &cobra.Command{
	Use:   "index <dir>",
	Short: "Index every source file under a directory",
	Long: `Discover, parse and store the symbols of every source file under dir.
Unchanged files are skipped unless --force is given.

Examples:
  tscontext index .
  tscontext index --force --db /tmp/idx.db ~/src/app`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVarP(&indexForce, "force", "f", false, "re-parse all files ignoring stored hashes")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		printError("failed to create database directory", err)
		return err
	}
	store, err := storage.NewSQLiteStorage(cfg.DBPath)
	if err != nil {
		printError("failed to open index", err)
		return err
	}
	defer store.Close()

	icfg := indexer.ConfigFrom(cfg)
	icfg.ForceReindex = indexForce

	stats, err := indexer.New(store, logger).IndexProject(cmd.Context(), args[0], icfg)
	if err != nil {
		printError("indexing failed", err)
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run:      %s\n", stats.RunID)
	fmt.Fprintf(out, "Indexed:  %d files (%d skipped, %d failed, %d removed)\n",
		stats.FilesIndexed, stats.FilesSkipped, stats.FilesFailed, stats.FilesRemoved)
	fmt.Fprintf(out, "Symbols:  %d\n", stats.SymbolsExtracted)
	fmt.Fprintf(out, "Duration: %s\n", stats.Duration)
	for _, msg := range stats.ErrorMessages {
		fmt.Fprintf(out, "  error: %s\n", msg)
	}
	return nil
}
