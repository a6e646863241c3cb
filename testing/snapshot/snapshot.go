// Package snapshot provides assertions over rendered TUI output.
// Styling is stripped so tests compare what a user would read.
package snapshot

import (
	"regexp"
	"strings"
	"testing"

	"github.com/muesli/ansi"
)

var (
	ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)
	oscRegex  = regexp.MustCompile(`\x1b\]8;;[^\x1b]*\x1b\\`)
)

// Snap provides snapshot testing functionality
type Snap struct {
	t *testing.T
}

// New creates a new Snap instance for the given test
func New(t *testing.T) *Snap {
	return &Snap{t: t}
}

// AssertContains checks that actual output contains the expected substring
func (s *Snap) AssertContains(actual, substr string) {
	s.t.Helper()
	normalized := normalizeOutput(actual)
	if !strings.Contains(normalized, substr) {
		s.t.Errorf("Output does not contain expected substring.\nExpected to contain: %q\nActual:\n%s", substr, normalized)
	}
}

// AssertNotContains checks that actual output does NOT contain the substring
func (s *Snap) AssertNotContains(actual, substr string) {
	s.t.Helper()
	normalized := normalizeOutput(actual)
	if strings.Contains(normalized, substr) {
		s.t.Errorf("Output unexpectedly contains substring: %q\nActual:\n%s", substr, normalized)
	}
}

// AssertSize checks the rendered output fills exactly width x height cells.
func (s *Snap) AssertSize(actual string, width, height int) {
	s.t.Helper()
	if got := Lines(actual); got != height {
		s.t.Errorf("expected %d lines, got %d\n%s", height, got, normalizeOutput(actual))
	}
	for i, line := range strings.Split(actual, "\n") {
		if w := ansi.PrintableRuneWidth(line); w != width {
			s.t.Errorf("line %d is %d cells wide, expected %d: %q", i, w, width, StripANSI(line))
		}
	}
}

// normalizeOutput strips ANSI codes and normalizes whitespace for comparison
func normalizeOutput(s string) string {
	s = StripANSI(s)

	// Normalize line endings
	s = strings.ReplaceAll(s, "\r\n", "\n")

	// Remove trailing whitespace from each line
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.Join(lines, "\n")
}

// StripANSI removes all ANSI escape codes from a string
func StripANSI(s string) string {
	s = ansiRegex.ReplaceAllString(s, "")
	return oscRegex.ReplaceAllString(s, "")
}

// Lines returns the line count of the rendered output (useful for height tests)
func Lines(s string) int {
	return len(strings.Split(StripANSI(s), "\n"))
}

// Width returns the maximum line width in terminal cells
func Width(s string) int {
	maxWidth := 0
	for _, line := range strings.Split(StripANSI(s), "\n") {
		if w := ansi.PrintableRuneWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// Column returns the cells of column x, one per line. Lines shorter than x+1
// cells contribute an empty string.
func Column(s string, x int) []string {
	lines := strings.Split(StripANSI(s), "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		runes := []rune(line)
		if x < len(runes) {
			out[i] = string(runes[x])
		}
	}
	return out
}

// Row returns line y with styling removed.
func Row(s string, y int) string {
	lines := strings.Split(StripANSI(s), "\n")
	if y < 0 || y >= len(lines) {
		return ""
	}
	return lines[y]
}
