package pyenv

import (
	"context"
	"fmt"
	"os/exec"
)

// ImportCheck reports whether the named library is importable by the
// interpreter. It runs `python -c "import <module>"` and treats any failure —
// missing binary, non-zero exit, context cancellation — as "not present".
// The probe never returns an error: a broken environment is a negative
// signal, not a fault.
func (i *Interpreter) ImportCheck(ctx context.Context, module string) bool {
	cmd := exec.CommandContext(ctx, i.Path, "-c", fmt.Sprintf("import %s", module))
	// Discard the interpreter's traceback; the boolean is the whole answer.
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}

// HasPip reports whether the interpreter has the pip module available,
// i.e. `python -m pip` would work.
func (i *Interpreter) HasPip(ctx context.Context) bool {
	return i.ImportCheck(ctx, "pip")
}

// LookPath reports whether the named binary is on PATH, returning its
// resolved location. Used by doctor checks for tools the launcher shells
// out to.
func LookPath(name string) (string, bool) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", false
	}
	return path, true
}
