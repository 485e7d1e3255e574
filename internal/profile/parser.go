package profile

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// DefaultFileName is the profile file Load looks for when no path is given.
const DefaultFileName = "launch.yaml"

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}

// Load reads, validates, and parses a launch profile. Schema violations are
// returned as a single error listing every issue.
func Load(path string) (*Profile, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating profile %s: %w", path, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("profile %s is invalid:\n%s", path, result.Render())
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	if p.PauseOnExit == "" {
		p.PauseOnExit = PauseAuto
	}
	return &p, nil
}
