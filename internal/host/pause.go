package host

import (
	"bufio"
	"fmt"
	"io"
)

// ShouldPause resolves a pause policy ("auto", "always", "never") against the
// target OS. The auto policy pauses only on Windows, where a double-clicked
// launcher closes its console window the moment the process exits.
func ShouldPause(policy, goos string) bool {
	switch policy {
	case "always":
		return true
	case "never":
		return false
	default:
		return goos == "windows"
	}
}

// Pause prints a prompt to w and blocks until the user sends a line on r.
// A closed reader unblocks too, so piped invocations never hang forever.
func Pause(w io.Writer, r io.Reader) {
	fmt.Fprint(w, "Press Enter to close...")
	scanner := bufio.NewScanner(r)
	scanner.Scan()
}
