package toolchain

import (
	"regexp"
	"strconv"
	"strings"
)

// Severity classifies a compiler diagnostic.
type Severity string

const (
	// SeverityError is a compilation error.
	SeverityError Severity = "error"
	// SeverityWarning is a compilation warning.
	SeverityWarning Severity = "warning"
)

// Diagnostic is one parsed compiler message, with a source location when the
// compiler printed one.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	File     string
	Line     int
	Column   int
}

var (
	headerPattern   = regexp.MustCompile(`^(error|warning)(?:\[([A-Z0-9]+)\])?:\s*(.*)$`)
	locationPattern = regexp.MustCompile(`┌─\s*(.+?):(\d+):(\d+)`)
)

// ParseDiagnostics extracts structured diagnostics from move CLI output.
// The compiler prints a header line per diagnostic followed by an indented
// location block. Unrecognised lines are skipped, so arbitrary output parses
// to an empty or partial list rather than failing.
func ParseDiagnostics(output string) []Diagnostic {
	var diagnostics []Diagnostic

	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)

		if m := headerPattern.FindStringSubmatch(trimmed); m != nil {
			diagnostics = append(diagnostics, Diagnostic{
				Severity: Severity(m[1]),
				Code:     m[2],
				Message:  m[3],
			})
			continue
		}

		if m := locationPattern.FindStringSubmatch(trimmed); m != nil && len(diagnostics) > 0 {
			last := &diagnostics[len(diagnostics)-1]
			if last.File == "" {
				last.File = m[1]
				last.Line, _ = strconv.Atoi(m[2])
				last.Column, _ = strconv.Atoi(m[3])
			}
		}
	}

	return diagnostics
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(diagnostics []Diagnostic) bool {
	for _, d := range diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
