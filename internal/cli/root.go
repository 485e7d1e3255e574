package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/dpo-labs/dpo/internal/branding"
	"github.com/dpo-labs/dpo/internal/config"
	"github.com/dpo-labs/dpo/internal/updater"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` is a Streamlit web app for optimizing prompts against
domain-specific quality criteria. This launcher checks the local Python
environment, installs missing dependencies, and starts the app.

Run with no arguments to launch.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()

		// Non-blocking update banner from the cached version check.
		if config.Get(config.KeyCheckUpdates) != "false" {
			u := updater.New(buildVersion)
			u.CheckAndPrintBanner(os.Stderr, config.Dir())
		}
	},
	// Invoking the launcher with no arguments starts the app, matching the
	// shell launchers this CLI replaces.
	RunE: runLaunch,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		// The host reports its own failures on the inherited streams; only
		// launcher-side errors need printing here.
		var hostErr *HostExitError
		if !errors.As(err, &hostErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	return err
}
