package runner

import "strings"

// Severity classifies one line of tool output.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Literal line prefixes the MKVToolNix binaries emit. These are exact
// strings from the tools' output convention, not patterns; changing them
// breaks classification.
const (
	errorPrefix   = "Error:"
	warningPrefix = "Warning:"
)

// Line is one line of tool output tagged with its severity. Values are
// immutable; the severity is derived once when the line is first read and
// never recomputed.
type Line struct {
	Message  string
	Severity Severity
}

// Classify tags a raw output line with its severity. Unrecognized lines
// default to info; Classify never fails.
func Classify(raw string) Line {
	switch {
	case strings.HasPrefix(raw, errorPrefix):
		return Line{Message: raw, Severity: SeverityError}
	case strings.HasPrefix(raw, warningPrefix):
		return Line{Message: raw, Severity: SeverityWarning}
	default:
		return Line{Message: raw, Severity: SeverityInfo}
	}
}
