// apivet CLI - call legacy partner APIs with schema-validated responses.
package main

import (
	"github.com/apivet/apivet/pkg/cli"
)

// Build-time variables set via ldflags.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	cli.Version = Version
	cli.Commit = Commit
	cli.BuildDate = BuildDate
	cli.Execute()
}
