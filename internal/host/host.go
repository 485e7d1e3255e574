package host

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"

	"github.com/dpo-labs/dpo/internal/pyenv"
	"go.uber.org/zap"
)

// Launch defaults, matching the optimizer's shipped configuration.
const (
	// Library is the host runtime's distribution/import name.
	Library = "streamlit"
	// DefaultEntrypoint is the optimizer app's main file.
	DefaultEntrypoint = "domain_prompt_optimizer.py"
	// DefaultPort is the TCP port the host binds.
	DefaultPort = 8501
)

// Host launches the application host for a given interpreter.
type Host struct {
	Python *pyenv.Interpreter

	// Stdout, Stderr, and Stdin can be set for testing; default to the
	// process streams so the host owns the terminal.
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// Args builds the host argv tail: run <entrypoint> --server.port <port>.
// The port is not validated here — it is passed through verbatim and the
// host/OS enforce bindability.
func Args(entrypoint string, port int) []string {
	return []string{"run", entrypoint, "--server.port", strconv.Itoa(port)}
}

// command resolves the host invocation: the streamlit binary when it is on
// PATH, otherwise `python -m streamlit`. The fallback covers environments
// where pip installed into a location whose scripts dir is not on PATH.
func (h *Host) command(ctx context.Context, entrypoint string, port int) *exec.Cmd {
	args := Args(entrypoint, port)

	if bin, ok := pyenv.LookPath(Library); ok {
		h.logger().Debug("using host binary", zap.String("path", bin))
		return exec.CommandContext(ctx, bin, args...)
	}

	h.logger().Debug("host binary not on PATH, using python -m",
		zap.String("python", h.Python.Path))
	return exec.CommandContext(ctx, h.Python.Path, append([]string{"-m", Library}, args...)...)
}

// Run starts the host in the foreground and blocks until it exits. The
// returned int is the host's own exit code, passed through unchanged. An
// error is returned only when the process could not be started. The
// entrypoint is not validated here — the host reports a missing file itself
// and its exit code flows through.
func (h *Host) Run(ctx context.Context, entrypoint string, port int) (int, error) {
	cmd := h.command(ctx, entrypoint, port)
	cmd.Stdout = h.stdout()
	cmd.Stderr = h.stderr()
	cmd.Stdin = h.stdin()

	h.logger().Debug("launching application host",
		zap.String("entrypoint", entrypoint),
		zap.Int("port", port))

	err := cmd.Run()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return 0, fmt.Errorf("starting application host: %w", err)
	}
	return 0, nil
}

func (h *Host) stdout() io.Writer {
	if h.Stdout != nil {
		return h.Stdout
	}
	return os.Stdout
}

func (h *Host) stderr() io.Writer {
	if h.Stderr != nil {
		return h.Stderr
	}
	return os.Stderr
}

func (h *Host) stdin() io.Reader {
	if h.Stdin != nil {
		return h.Stdin
	}
	return os.Stdin
}

func (h *Host) logger() *zap.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return zap.NewNop()
}
