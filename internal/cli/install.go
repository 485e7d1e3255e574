package cli

import (
	"context"
	"fmt"

	"github.com/dpo-labs/dpo/internal/config"
	"github.com/dpo-labs/dpo/internal/installer"
	"github.com/dpo-labs/dpo/internal/logging"
	"github.com/dpo-labs/dpo/internal/manifest"
	"github.com/dpo-labs/dpo/internal/pyenv"
	"github.com/spf13/cobra"
)

var installRequirements string

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install app dependencies from the requirements manifest",
	Long: `Run the dependency-installation step on its own: invoke pip against the
requirements manifest without starting the app. Unlike launch, a failed
installation here is reported as an error.`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVarP(&installRequirements, "requirements", "r", DefaultRequirements, "Dependency manifest file")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	// Surface manifest problems before shelling out to pip.
	m, err := manifest.ParseFile(installRequirements)
	if err != nil {
		return err
	}

	interp, err := pyenv.Find(config.Get(config.KeyPython))
	if err != nil {
		return err
	}

	ctx := context.Background()
	if !interp.HasPip(ctx) {
		return fmt.Errorf("%s has no pip module; install pip first", interp.Name)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Installing %d dependencies from %s...\n", len(m.Requirements), installRequirements)

	inst := &installer.Installer{Python: interp, Logger: logger}
	result, err := inst.Install(ctx, installRequirements)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("pip exited with code %d", result.ExitCode)
	}

	fmt.Fprintln(out, "Dependencies installed.")
	return nil
}
