package pyenv

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Interpreter is a resolved Python installation.
type Interpreter struct {
	// Name is the command that resolved, e.g. "python3".
	Name string
	// Path is the absolute path LookPath resolved it to.
	Path string
}

// MinVersion is the oldest interpreter the optimizer app supports.
const MinVersion = "3.8.0"

// candidates returns interpreter command names in resolution order.
// The Windows launcher (py) is tried last because it is a dispatcher, not an
// interpreter install per se.
func candidates() []string {
	names := []string{"python3", "python"}
	if runtime.GOOS == "windows" {
		names = append(names, "py")
	}
	return names
}

// Find resolves a Python interpreter from PATH. When override is non-empty it
// is the only candidate tried — it may be a bare command name or an absolute
// path.
func Find(override string) (*Interpreter, error) {
	names := candidates()
	if override != "" {
		names = []string{override}
	}

	for _, name := range names {
		path, err := exec.LookPath(name)
		if err != nil {
			continue
		}
		return &Interpreter{Name: name, Path: path}, nil
	}

	if override != "" {
		return nil, fmt.Errorf("python interpreter %q not found on PATH", override)
	}
	return nil, fmt.Errorf("no python interpreter found on PATH (tried %s)", strings.Join(names, ", "))
}

// Version runs `python --version` and parses the reported version.
func (i *Interpreter) Version(ctx context.Context) (*semver.Version, error) {
	out, err := exec.CommandContext(ctx, i.Path, "--version").CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("querying %s version: %w", i.Name, err)
	}
	return ParseVersionOutput(string(out))
}

// MeetsMinVersion reports whether the interpreter version is at least min.
func (i *Interpreter) MeetsMinVersion(ctx context.Context, min string) (bool, error) {
	v, err := i.Version(ctx)
	if err != nil {
		return false, err
	}
	minimum, err := semver.NewVersion(min)
	if err != nil {
		return false, fmt.Errorf("parsing minimum version %q: %w", min, err)
	}
	return !v.LessThan(minimum), nil
}

// ParseVersionOutput extracts a semver version from `python --version` output,
// e.g. "Python 3.11.4\n" -> 3.11.4. Release candidate suffixes like "3.13.0rc1"
// are truncated at the first non-dotted-digit character.
func ParseVersionOutput(out string) (*semver.Version, error) {
	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) < 2 {
		return nil, fmt.Errorf("unexpected version output %q", strings.TrimSpace(out))
	}

	raw := fields[len(fields)-1]
	end := len(raw)
	for idx, r := range raw {
		if (r < '0' || r > '9') && r != '.' {
			end = idx
			break
		}
	}
	raw = strings.TrimSuffix(raw[:end], ".")

	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing version %q: %w", raw, err)
	}
	return v, nil
}
