package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeProfile(t, `
app:
  entrypoint: domain_prompt_optimizer.py
  port: 8501
python:
  interpreter: python3
  min_version: "3.8"
requirements:
  file: requirements.txt
  auto_install: true
pause_on_exit: never
`)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if p.App.Entrypoint != "domain_prompt_optimizer.py" {
		t.Errorf("Entrypoint = %q", p.App.Entrypoint)
	}
	if p.App.Port != 8501 {
		t.Errorf("Port = %d, want 8501", p.App.Port)
	}
	if p.Python.Interpreter != "python3" {
		t.Errorf("Interpreter = %q", p.Python.Interpreter)
	}
	if !p.Requirements.ShouldAutoInstall() {
		t.Error("ShouldAutoInstall() = false, want true")
	}
	if p.PauseOnExit != PauseNever {
		t.Errorf("PauseOnExit = %q, want %q", p.PauseOnExit, PauseNever)
	}
}

func TestLoad_PauseDefaultsToAuto(t *testing.T) {
	path := writeProfile(t, "app:\n  entrypoint: app.py\n")

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if p.PauseOnExit != PauseAuto {
		t.Errorf("PauseOnExit = %q, want %q", p.PauseOnExit, PauseAuto)
	}
}

func TestLoad_MissingEntrypoint(t *testing.T) {
	path := writeProfile(t, "app:\n  port: 8501\n")

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), "entrypoint") {
		t.Errorf("error %q does not mention entrypoint", err)
	}
}

func TestValidate_Issues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		path    string
	}{
		{"port out of range", "app:\n  entrypoint: app.py\n  port: 70000\n", "/app/port"},
		{"bad pause value", "app:\n  entrypoint: app.py\npause_on_exit: maybe\n", "/pause_on_exit"},
		{"unknown top-level key", "app:\n  entrypoint: app.py\nserver: {}\n", ""},
		{"bad min_version", "app:\n  entrypoint: app.py\npython:\n  min_version: latest\n", "/python/min_version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Validate([]byte(tt.content))
			if err != nil {
				t.Fatalf("Validate error: %v", err)
			}
			if result.Valid {
				t.Fatal("expected invalid result")
			}
			if tt.path == "" {
				return
			}
			found := false
			for _, issue := range result.Issues {
				if issue.Path == tt.path {
					found = true
				}
			}
			if !found {
				t.Errorf("no issue at %s; got %+v", tt.path, result.Issues)
			}
		})
	}
}

func TestValidate_ValidMinimal(t *testing.T) {
	result, err := Validate([]byte("app:\n  entrypoint: app.py\n"))
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid, issues: %s", result.Render())
	}
}

func TestShouldAutoInstall(t *testing.T) {
	off := false
	on := true

	if !(Requirements{}).ShouldAutoInstall() {
		t.Error("nil AutoInstall should default to true")
	}
	if (Requirements{AutoInstall: &off}).ShouldAutoInstall() {
		t.Error("AutoInstall=false should disable installation")
	}
	if !(Requirements{AutoInstall: &on}).ShouldAutoInstall() {
		t.Error("AutoInstall=true should enable installation")
	}
}
