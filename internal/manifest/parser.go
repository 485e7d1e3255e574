package manifest

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// specifierOps are the comparison operators that start a version specifier,
// longest first so "==" wins over "=".
var specifierOps = []string{"===", "==", "~=", ">=", "<=", "!=", ">", "<"}

// ParseFile reads a requirements file, following -r includes relative to the
// including file's directory. Include cycles are an error.
func ParseFile(path string) (*Manifest, error) {
	m := &Manifest{Path: path}
	seen := map[string]bool{}
	if err := parseInto(m, path, seen); err != nil {
		return nil, err
	}
	return m, nil
}

func parseInto(m *Manifest, path string, seen map[string]bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	if seen[abs] {
		return fmt.Errorf("requirements include cycle at %s", path)
	}
	seen[abs] = true

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening requirements file %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := stripComment(scanner.Text())
		if line == "" {
			continue
		}

		// Follow includes.
		if target, ok := cutFlag(line, "-r", "--requirement"); ok {
			if target == "" {
				return fmt.Errorf("%s:%d: -r without a file path", path, lineNo)
			}
			if !filepath.IsAbs(target) {
				target = filepath.Join(filepath.Dir(path), target)
			}
			m.Includes = append(m.Includes, target)
			if err := parseInto(m, target, seen); err != nil {
				return err
			}
			continue
		}

		// Editable installs are kept raw; pip owns their semantics.
		if target, ok := cutFlag(line, "-e", "--editable"); ok {
			m.Requirements = append(m.Requirements, Requirement{
				Name:     target,
				Editable: true,
				Raw:      line,
			})
			continue
		}

		// Other pip options (--index-url, --hash, ...) are not dependencies.
		if strings.HasPrefix(line, "-") {
			continue
		}

		req, err := parseRequirement(line)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		m.Requirements = append(m.Requirements, req)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading requirements file %s: %w", path, err)
	}
	return nil
}

// parseRequirement splits a requirement line into name, extras, specifier,
// and environment marker.
func parseRequirement(line string) (Requirement, error) {
	req := Requirement{Raw: line}

	rest := line
	if head, marker, found := strings.Cut(rest, ";"); found {
		req.Marker = strings.TrimSpace(marker)
		rest = strings.TrimSpace(head)
	}

	// Split off the version specifier at the first comparison operator.
	specStart := len(rest)
	for _, op := range specifierOps {
		if idx := strings.Index(rest, op); idx >= 0 && idx < specStart {
			specStart = idx
		}
	}
	if specStart < len(rest) {
		req.Specifier = strings.TrimSpace(rest[specStart:])
		rest = strings.TrimSpace(rest[:specStart])
	}

	// Split off extras: name[extra1,extra2].
	if head, tail, found := strings.Cut(rest, "["); found {
		inner, closed := strings.CutSuffix(strings.TrimSpace(tail), "]")
		if !closed {
			return req, fmt.Errorf("unterminated extras in %q", line)
		}
		for _, e := range strings.Split(inner, ",") {
			if e = strings.TrimSpace(e); e != "" {
				req.Extras = append(req.Extras, e)
			}
		}
		rest = strings.TrimSpace(head)
	}

	if rest == "" {
		return req, fmt.Errorf("requirement %q has no distribution name", line)
	}
	req.Name = rest
	return req, nil
}

// stripComment removes a trailing # comment and surrounding whitespace.
// A # inside the line body counts as a comment only when preceded by
// whitespace or at line start, matching pip's behavior.
func stripComment(line string) string {
	for idx := 0; idx < len(line); idx++ {
		if line[idx] != '#' {
			continue
		}
		if idx == 0 || line[idx-1] == ' ' || line[idx-1] == '\t' {
			line = line[:idx]
			break
		}
	}
	return strings.TrimSpace(line)
}

// cutFlag matches "-r path" / "--requirement path" style options, including
// the "--requirement=path" form. Returns the argument and whether it matched.
func cutFlag(line, short, long string) (string, bool) {
	for _, prefix := range []string{short + " ", long + " ", long + "="} {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(line[len(prefix):]), true
		}
	}
	if line == short || line == long {
		return "", true
	}
	return "", false
}
