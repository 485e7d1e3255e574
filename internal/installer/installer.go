// Package installer runs the dependency-installation step: a synchronous
// `python -m pip install -r <manifest>` against the local environment.
// Installation mutates the interpreter's installed-package set and cannot be
// rolled back by the launcher, so callers decide the failure policy — the
// launch sequence deliberately proceeds after a failed install (see Ensure).
package installer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/dpo-labs/dpo/internal/pyenv"
	"go.uber.org/zap"
)

// Installer invokes pip for a given interpreter.
type Installer struct {
	Python *pyenv.Interpreter

	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer

	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// Result captures the outcome of an installation run.
type Result struct {
	ExitCode int
	Stderr   string
}

// Install runs `python -m pip install -r manifestPath`, blocking until pip
// completes. Output streams to the configured writers; stderr is also
// captured in the Result for diagnostics. A non-zero pip exit is returned as
// a Result with that code, not an error — errors mean pip could not be
// started at all.
func (i *Installer) Install(ctx context.Context, manifestPath string) (*Result, error) {
	if _, err := os.Stat(manifestPath); err != nil {
		return nil, fmt.Errorf("requirements manifest %s: %w", manifestPath, err)
	}

	cmd := exec.CommandContext(ctx, i.Python.Path, "-m", "pip", "install", "-r", manifestPath)

	stdout := i.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := i.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	var stderrBuf bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)

	i.logger().Debug("running pip install",
		zap.String("python", i.Python.Path),
		zap.String("manifest", manifestPath))

	err := cmd.Run()

	result := &Result{Stderr: stderrBuf.String()}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return nil, fmt.Errorf("executing pip: %w", err)
	}
	return result, nil
}

func (i *Installer) logger() *zap.Logger {
	if i.Logger != nil {
		return i.Logger
	}
	return zap.NewNop()
}
