// placegen - placeholder substitution for test data documents.
package main

import (
	"fmt"
	"os"

	"github.com/placegen/placegen/pkg/cli"
)

// Build-time variables set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	if err := cli.Execute(Version, Commit, BuildDate); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
