// Command fiscara resolves locality names against the fiscal entity
// registry and collects per-locality statistics.
package main

import (
	"fmt"
	"os"

	"github.com/civita-labs/fiscara-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
