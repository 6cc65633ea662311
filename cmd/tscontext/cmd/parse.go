package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/dshills/tscontext-mcp/internal/parser"
	"github.com/dshills/tscontext-mcp/internal/symbols"
)

var (
	parseSymbols bool
	parseCompact bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a source file and print its code model as JSON",
	Long: `Parse a single source file and print the code model on stdout.

Examples:
  tscontext parse models/user.ts
  tscontext parse --symbols models/user.ts`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseSymbols, "symbols", false, "print the flattened symbol list instead of the model")
	parseCmd.Flags().BoolVar(&parseCompact, "compact", false, "print JSON on a single line")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}

	p := parser.New(parser.WithMaxFileSize(cfg.MaxFileBytes))
	model, err := p.ParseFile(args[0])
	if err != nil {
		printError("parse failed", err)
		return err
	}

	var out interface{} = model
	if parseSymbols {
		out = symbols.Flatten(model)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	if !parseCompact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		printError("failed to write output", err)
		return err
	}
	return nil
}
