// Command scanview views, filters and exports nmap XML scan results.
package main

import (
	"github.com/anstrom/scanview/cmd/cli"
)

// Build information - these will be set by ldflags during build.
var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

func main() {
	cli.SetVersion(version, commit, buildTime)
	cli.Execute()
}
