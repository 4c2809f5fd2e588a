// Command crosscheck reconciles hockey event statistics across sources.
package main

import (
	"github.com/rinkstats/crosscheck/cmd/crosscheck/cmd"
)

// Build information set by ldflags.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	cmd.Execute(version, commit, date, builtBy)
}
