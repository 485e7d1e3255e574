package main

import (
	"errors"
	"os"

	"github.com/dpo-labs/dpo/internal/cli"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	err := cli.Execute(version, commit, date)
	if err == nil {
		return
	}

	// The host process's exit code passes through as our own.
	var hostErr *cli.HostExitError
	if errors.As(err, &hostErr) {
		os.Exit(hostErr.Code)
	}
	os.Exit(1)
}
