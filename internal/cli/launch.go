package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/dpo-labs/dpo/internal/branding"
	"github.com/dpo-labs/dpo/internal/config"
	"github.com/dpo-labs/dpo/internal/host"
	"github.com/dpo-labs/dpo/internal/installer"
	"github.com/dpo-labs/dpo/internal/logging"
	"github.com/dpo-labs/dpo/internal/profile"
	"github.com/dpo-labs/dpo/internal/pyenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// DefaultRequirements is the dependency manifest installed when the host
// library is missing.
const DefaultRequirements = "requirements.txt"

var (
	launchPort         int
	launchEntrypoint   string
	launchRequirements string
	launchProfile      string
	launchSkipInstall  bool
	launchWatch        bool
	launchPause        string
)

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Check the environment and start the app",
	Long: `Start the ` + branding.DisplayName() + ` web app.

The launch sequence probes whether the host library (streamlit) is importable,
installs dependencies from the requirements manifest if it is not, and then
starts the app host in the foreground on port 8501. The host's exit code
becomes the launcher's exit code.

A launch.yaml profile in the working directory is picked up automatically;
flags override profile values.`,
	Args: cobra.NoArgs,
	RunE: runLaunch,
}

func init() {
	addLaunchFlags(launchCmd)
	addLaunchFlags(rootCmd)
	rootCmd.AddCommand(launchCmd)
}

func addLaunchFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&launchPort, "port", "p", host.DefaultPort, "TCP port passed to the app host")
	cmd.Flags().StringVar(&launchEntrypoint, "entrypoint", host.DefaultEntrypoint, "App entry point file")
	cmd.Flags().StringVarP(&launchRequirements, "requirements", "r", DefaultRequirements, "Dependency manifest file")
	cmd.Flags().StringVar(&launchProfile, "profile", "", "Launch profile file (default: launch.yaml when present)")
	cmd.Flags().BoolVar(&launchSkipInstall, "skip-install", false, "Never run the dependency-installation step")
	cmd.Flags().BoolVar(&launchWatch, "watch", false, "Reinstall and restart when the requirements manifest changes")
	cmd.Flags().StringVar(&launchPause, "pause", "", `Pause for Enter after the app exits: "auto", "always", or "never"`)
}

// HostExitError carries the host process's non-zero exit code so main can
// pass it through as the launcher's own.
type HostExitError struct {
	Code int
}

func (e *HostExitError) Error() string {
	return fmt.Sprintf("app exited with code %d", e.Code)
}

// launchOptions is the resolved launch configuration. Precedence, lowest to
// highest: built-in defaults, launch profile, user config/env, explicit flags.
type launchOptions struct {
	entrypoint   string
	port         int
	requirements string
	probe        string
	python       string
	minVersion   string
	autoInstall  bool
	pause        string
}

func resolveLaunchOptions(cmd *cobra.Command) (*launchOptions, error) {
	opts := &launchOptions{
		entrypoint:   host.DefaultEntrypoint,
		port:         host.DefaultPort,
		requirements: DefaultRequirements,
		probe:        host.Library,
		minVersion:   pyenv.MinVersion,
		autoInstall:  true,
		pause:        profile.PauseAuto,
	}

	// Layer in the profile, explicit or discovered.
	profilePath := launchProfile
	if profilePath == "" {
		if _, err := os.Stat(profile.DefaultFileName); err == nil {
			profilePath = profile.DefaultFileName
		}
	}
	if profilePath != "" {
		p, err := profile.Load(profilePath)
		if err != nil {
			return nil, err
		}
		opts.entrypoint = p.App.Entrypoint
		if p.App.Port != 0 {
			opts.port = p.App.Port
		}
		if p.Python.Interpreter != "" {
			opts.python = p.Python.Interpreter
		}
		if p.Python.MinVersion != "" {
			opts.minVersion = p.Python.MinVersion
		}
		if p.Requirements.File != "" {
			opts.requirements = p.Requirements.File
		}
		if p.Requirements.Probe != "" {
			opts.probe = p.Requirements.Probe
		}
		opts.autoInstall = p.Requirements.ShouldAutoInstall()
		opts.pause = p.PauseOnExit
	}

	// User config and DPO_* env.
	if v := config.Get(config.KeyPython); v != "" {
		opts.python = v
	}
	if v := config.Get(config.KeyPauseOnExit); v != "" && !cmd.Flags().Changed("pause") {
		opts.pause = v
	}

	// Explicit flags win.
	if cmd.Flags().Changed("entrypoint") {
		opts.entrypoint = launchEntrypoint
	}
	if cmd.Flags().Changed("port") {
		opts.port = launchPort
	}
	if cmd.Flags().Changed("requirements") {
		opts.requirements = launchRequirements
	}
	if cmd.Flags().Changed("pause") {
		opts.pause = launchPause
	}
	if launchSkipInstall {
		opts.autoInstall = false
	}

	return opts, nil
}

func runLaunch(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	out := cmd.OutOrStdout()

	// The pause must cover every exit path, including failures before the
	// host starts, so a double-clicked console window stays open long enough
	// to read the output. Until the options resolve, only the flag can name
	// the policy.
	pause := profile.PauseAuto
	if cmd.Flags().Changed("pause") {
		pause = launchPause
	}
	defer func() {
		if host.ShouldPause(pause, runtime.GOOS) {
			host.Pause(out, cmd.InOrStdin())
		}
	}()

	opts, err := resolveLaunchOptions(cmd)
	if err != nil {
		return err
	}
	pause = opts.pause

	fmt.Fprintf(out, "Starting %s...\n", branding.DisplayName())
	fmt.Fprintf(out, "The app will be available at http://localhost:%d\n", opts.port)

	ctx := context.Background()

	interp, err := pyenv.Find(opts.python)
	if err != nil {
		return err
	}
	logger.Debug("resolved interpreter",
		zap.String("name", interp.Name),
		zap.String("path", interp.Path))

	// An old interpreter is worth a warning here, but only doctor treats it
	// as a failure — the app may still run.
	if ok, verr := interp.MeetsMinVersion(ctx, opts.minVersion); verr == nil && !ok {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s is older than the supported minimum (%s).\n",
			interp.Name, opts.minVersion)
	}

	inst := &installer.Installer{Python: interp, Logger: logger}
	if opts.autoInstall {
		if _, err := inst.Ensure(ctx, out, opts.probe, opts.requirements); err != nil {
			return err
		}
	} else {
		logger.Debug("dependency installation disabled")
	}

	h := &host.Host{Python: interp, Logger: logger}

	var code int
	if launchWatch {
		code, err = h.RunWatched(ctx, opts.entrypoint, opts.port, opts.requirements,
			func(ctx context.Context) error {
				_, ierr := inst.Install(ctx, opts.requirements)
				return ierr
			})
	} else {
		code, err = h.Run(ctx, opts.entrypoint, opts.port)
	}

	if err != nil {
		return err
	}
	if code != 0 {
		return &HostExitError{Code: code}
	}
	return nil
}
