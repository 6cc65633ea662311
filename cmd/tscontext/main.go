package main

import (
	"os"

	"github.com/dshills/tscontext-mcp/cmd/tscontext/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
