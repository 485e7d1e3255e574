package pyenv

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestParseVersionOutput(t *testing.T) {
	tests := []struct {
		out     string
		want    string
		wantErr bool
	}{
		{"Python 3.11.4\n", "3.11.4", false},
		{"Python 3.8.0", "3.8.0", false},
		{"Python 3.13.0rc1\n", "3.13.0", false},
		{"Python 3.12.1+\n", "3.12.1", false},
		{"Python", "", true},
		{"", "", true},
		{"Python banana", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.out, func(t *testing.T) {
			v, err := ParseVersionOutput(tt.out)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseVersionOutput(%q) expected error, got %v", tt.out, v)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersionOutput(%q) error: %v", tt.out, err)
			}
			if v.String() != tt.want {
				t.Errorf("ParseVersionOutput(%q) = %s, want %s", tt.out, v, tt.want)
			}
		})
	}
}

// writeFakeInterpreter installs a shell script named `name` into dir that
// reports the given version for --version and succeeds on `-c "import <mod>"`
// only for modules listed in importable.
func writeFakeInterpreter(t *testing.T, dir, name, version string, importable ...string) string {
	t.Helper()

	script := "#!/bin/sh\n" +
		"if [ \"$1\" = \"--version\" ]; then echo \"Python " + version + "\"; exit 0; fi\n" +
		"if [ \"$1\" = \"-c\" ]; then\n" +
		"  case \"$2\" in\n"
	for _, mod := range importable {
		script += "    \"import " + mod + "\") exit 0 ;;\n"
	}
	script += "  esac\n  exit 1\nfi\nexit 2\n"

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFind_ResolvesFromPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake interpreters are shell scripts, skipping on windows")
	}

	dir := t.TempDir()
	writeFakeInterpreter(t, dir, "python3", "3.11.4")
	t.Setenv("PATH", dir)

	interp, err := Find("")
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if interp.Name != "python3" {
		t.Errorf("Name = %q, want %q", interp.Name, "python3")
	}
}

func TestFind_Override(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake interpreters are shell scripts, skipping on windows")
	}

	dir := t.TempDir()
	writeFakeInterpreter(t, dir, "python3", "3.11.4")
	writeFakeInterpreter(t, dir, "pypy", "3.9.2")
	t.Setenv("PATH", dir)

	interp, err := Find("pypy")
	if err != nil {
		t.Fatalf("Find(pypy) error: %v", err)
	}
	if interp.Name != "pypy" {
		t.Errorf("Name = %q, want %q", interp.Name, "pypy")
	}
}

func TestFind_MissingOverride(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if _, err := Find("no-such-python"); err == nil {
		t.Fatal("expected error for missing override, got nil")
	}
}

func TestFind_NothingOnPath(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if _, err := Find(""); err == nil {
		t.Fatal("expected error when no interpreter is on PATH, got nil")
	}
}

func TestInterpreter_Version(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake interpreters are shell scripts, skipping on windows")
	}

	dir := t.TempDir()
	path := writeFakeInterpreter(t, dir, "python3", "3.10.12")

	interp := &Interpreter{Name: "python3", Path: path}
	v, err := interp.Version(context.Background())
	if err != nil {
		t.Fatalf("Version() error: %v", err)
	}
	if v.String() != "3.10.12" {
		t.Errorf("Version() = %s, want 3.10.12", v)
	}
}

func TestInterpreter_MeetsMinVersion(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake interpreters are shell scripts, skipping on windows")
	}

	tests := []struct {
		version string
		min     string
		want    bool
	}{
		{"3.11.4", "3.8.0", true},
		{"3.8.0", "3.8.0", true},
		{"3.7.9", "3.8.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.version+">="+tt.min, func(t *testing.T) {
			path := writeFakeInterpreter(t, t.TempDir(), "python3", tt.version)
			interp := &Interpreter{Name: "python3", Path: path}

			got, err := interp.MeetsMinVersion(context.Background(), tt.min)
			if err != nil {
				t.Fatalf("MeetsMinVersion error: %v", err)
			}
			if got != tt.want {
				t.Errorf("MeetsMinVersion(%s, %s) = %v, want %v", tt.version, tt.min, got, tt.want)
			}
		})
	}
}

func TestImportCheck(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake interpreters are shell scripts, skipping on windows")
	}

	dir := t.TempDir()
	path := writeFakeInterpreter(t, dir, "python3", "3.11.4", "streamlit")
	interp := &Interpreter{Name: "python3", Path: path}

	if !interp.ImportCheck(context.Background(), "streamlit") {
		t.Error("ImportCheck(streamlit) = false, want true")
	}
	if interp.ImportCheck(context.Background(), "missing_module") {
		t.Error("ImportCheck(missing_module) = true, want false")
	}
}

func TestImportCheck_BrokenInterpreterIsNegative(t *testing.T) {
	// A nonexistent interpreter must degrade to false, never panic or error.
	interp := &Interpreter{Name: "python3", Path: filepath.Join(t.TempDir(), "missing")}
	if interp.ImportCheck(context.Background(), "streamlit") {
		t.Error("ImportCheck with missing interpreter = true, want false")
	}
}
