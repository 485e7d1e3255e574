//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/dpo-labs/dpo/internal/pyenv"
)

// chdir changes the working directory for the duration of the test,
// restoring the previous directory on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

// testEnv holds paths to the isolated fake environment a test runs against.
type testEnv struct {
	BinDir  string // fake python3/streamlit binaries, placed on PATH
	WorkDir string // app entry point and requirements manifest
	LogPath string // one line per pip/host invocation, in order
}

// setupTestEnv builds a sandboxed launch environment: fake interpreter and
// host binaries that record their invocations, plus the app files the
// launcher expects in its working directory.
func setupTestEnv(t *testing.T, streamlitPresent bool, pipExit, hostExit int) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake binaries are shell scripts, skipping on windows")
	}

	env := &testEnv{
		BinDir:  t.TempDir(),
		WorkDir: t.TempDir(),
	}
	env.LogPath = filepath.Join(env.BinDir, "invocations.log")

	importExit := "1"
	if streamlitPresent {
		importExit = "0"
	}
	python := `#!/bin/sh
if [ "$1" = "--version" ]; then echo "Python 3.11.4"; exit 0; fi
if [ "$1" = "-c" ]; then
  case "$2" in
    "import pip") exit 0 ;;
    "import streamlit") exit ` + importExit + ` ;;
  esac
  exit 1
fi
if [ "$1" = "-m" ] && [ "$2" = "pip" ]; then
  echo "pip $@" >> ` + env.LogPath + `
  exit ` + strconv.Itoa(pipExit) + `
fi
exit 2
`
	streamlit := `#!/bin/sh
echo "host $@" >> ` + env.LogPath + `
exit ` + strconv.Itoa(hostExit) + `
`
	writeExecutable(t, filepath.Join(env.BinDir, "python3"), python)
	writeExecutable(t, filepath.Join(env.BinDir, "streamlit"), streamlit)

	writeFile(t, filepath.Join(env.WorkDir, "domain_prompt_optimizer.py"), "# app\n")
	writeFile(t, filepath.Join(env.WorkDir, "requirements.txt"), "streamlit>=1.28.0\npandas\n")

	t.Setenv("PATH", env.BinDir)
	chdir(t, env.WorkDir)

	return env
}

// findInterpreter resolves the fake interpreter the same way the CLI does.
func (e *testEnv) findInterpreter(t *testing.T) *pyenv.Interpreter {
	t.Helper()
	interp, err := pyenv.Find("")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	return interp
}

// invocations returns the recorded pip/host lines in order.
func (e *testEnv) invocations(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(e.LogPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func writeExecutable(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0755); err != nil {
		t.Fatal(err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
