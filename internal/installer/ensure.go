package installer

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// EnsureOutcome reports what Ensure did.
type EnsureOutcome struct {
	// Probed is the library whose importability was checked.
	Probed string
	// AlreadyPresent is true when the probe succeeded and no install ran.
	AlreadyPresent bool
	// Installed is true when the installation step was invoked.
	Installed bool
	// InstallExitCode is pip's exit code when Installed is true.
	InstallExitCode int
}

// Ensure brings the environment to a launchable state: it probes whether the
// given library is importable and, if not, installs from the manifest.
//
// A failed installation does NOT abort the sequence — neither a non-zero pip
// exit nor an install that could not start (missing manifest, pip absent).
// The original launcher proceeded to start the host regardless of pip's
// outcome; that behavior is kept here as an explicit choice — a partially
// stale environment may still serve, and the host's own import error is a
// clearer diagnostic than any message the launcher could synthesize. The
// failure is reported on w and in the outcome so callers and users see it.
// The install command is the strict variant and surfaces these as errors.
func (i *Installer) Ensure(ctx context.Context, w io.Writer, library, manifestPath string) (*EnsureOutcome, error) {
	outcome := &EnsureOutcome{Probed: library}

	if i.Python.ImportCheck(ctx, library) {
		i.logger().Debug("probe succeeded", zap.String("library", library))
		outcome.AlreadyPresent = true
		return outcome, nil
	}

	fmt.Fprintf(w, "%s is not installed. Installing dependencies from %s...\n", library, manifestPath)

	result, err := i.Install(ctx, manifestPath)
	if err != nil {
		fmt.Fprintf(w, "Warning: dependency installation could not run (%v); starting the app anyway.\n", err)
		i.logger().Warn("pip install could not run, continuing to launch", zap.Error(err))
		return outcome, nil
	}

	outcome.Installed = true
	outcome.InstallExitCode = result.ExitCode
	if result.ExitCode != 0 {
		fmt.Fprintf(w, "Warning: dependency installation exited with code %d; starting the app anyway.\n", result.ExitCode)
		i.logger().Warn("pip install failed, continuing to launch",
			zap.Int("exit_code", result.ExitCode))
	}
	return outcome, nil
}
