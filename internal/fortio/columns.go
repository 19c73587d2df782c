package fortio

import "strings"

// Span names a half-open [Start, End) byte range within one physical line.
// An End of zero or less means "through the end of the line", used for
// trailing fields of unknown width.
type Span struct {
	Start, End int
}

// Field returns the trimmed contents of one span. Spans lying beyond the
// line yield an empty string rather than failing: trailing optional fields
// are frequently absent in Fortran-written files.
func Field(line string, sp Span) string {
	if sp.Start < 0 || sp.Start >= len(line) {
		return ""
	}
	end := sp.End
	if end <= 0 || end > len(line) {
		end = len(line)
	}
	if end <= sp.Start {
		return ""
	}
	return strings.TrimSpace(line[sp.Start:end])
}

// Fields slices line into the given spans in order. Unlike tokenizing, the
// spans need no separators between them, so abutting fields extract cleanly.
func Fields(line string, spans []Span) []string {
	out := make([]string, len(spans))
	for i, sp := range spans {
		out[i] = Field(line, sp)
	}
	return out
}
