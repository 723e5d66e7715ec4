// Command fpctl builds, validates and calculates molecular fingerprint
// descriptors, and manages the settings a fingerprint server has registered
// for its index fields.
package main

import (
	"fmt"
	"os"

	"github.com/turtacn/KeyIP-Fingerprint/internal/interfaces/cli"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate
}

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

//Personal.AI order the ending
