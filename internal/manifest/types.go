package manifest

import "strings"

// Requirement is a single dependency line from a requirements file.
type Requirement struct {
	// Name is the distribution name as written, e.g. "streamlit".
	Name string
	// Extras holds bracketed extras, e.g. ["toml"] for "streamlit[toml]".
	Extras []string
	// Specifier is the version constraint portion, e.g. ">=1.28,<2".
	// Empty when the line pins nothing.
	Specifier string
	// Marker is the environment marker after ';', e.g. `python_version < "3.12"`.
	Marker string
	// Editable marks -e/--editable lines; Name then holds the raw target.
	Editable bool
	// Raw is the original line with comments stripped.
	Raw string
}

// Manifest is a parsed requirements file, includes flattened in.
type Manifest struct {
	// Path is the file the manifest was read from.
	Path string
	// Requirements lists dependencies in file order, included files inline.
	Requirements []Requirement
	// Includes lists the -r files that were followed, in encounter order.
	Includes []string
}

// Contains reports whether the manifest lists the named distribution.
// Comparison is case-insensitive with '-'/'_' treated as equal, per PEP 503
// name normalization.
func (m *Manifest) Contains(name string) bool {
	want := normalizeName(name)
	for _, r := range m.Requirements {
		if r.Editable {
			continue
		}
		if normalizeName(r.Name) == want {
			return true
		}
	}
	return false
}

// Names returns the normalized distribution names in file order.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Requirements))
	for _, r := range m.Requirements {
		if r.Editable {
			continue
		}
		names = append(names, normalizeName(r.Name))
	}
	return names
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, "_", "-")
}
