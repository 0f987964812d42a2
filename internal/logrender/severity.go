// Package logrender renders logger_*.log files as HTML with a severity filter
// and path links.
package logrender

import (
	"strings"

	"github.com/aleister1102/reportbrowser/internal/common"
)

// Severity is the level of a log entry. The zero value means "not seen yet".
type Severity int

const (
	SeverityDebug Severity = iota + 1
	SeverityInfo
	SeverityWarning
	SeverityError
)

// DefaultSeverity is the filter floor when a request does not name one, and
// the severity of lines before the first recognized prefix.
const DefaultSeverity = SeverityInfo

var severityNames = map[Severity]string{
	SeverityDebug:   "DEBUG",
	SeverityInfo:    "INFO",
	SeverityWarning: "WARNING",
	SeverityError:   "ERROR",
}

// Severities returns all severities, lowest first.
func Severities() []Severity {
	return []Severity{SeverityDebug, SeverityInfo, SeverityWarning, SeverityError}
}

// ParseSeverity parses one of DEBUG, INFO, WARNING or ERROR. An empty string
// yields DefaultSeverity.
func ParseSeverity(s string) (Severity, error) {
	if s == "" {
		return DefaultSeverity, nil
	}
	for sev, name := range severityNames {
		if strings.EqualFold(s, name) {
			return sev, nil
		}
	}
	return 0, common.NewValidationError("severity", s, "must be one of DEBUG, INFO, WARNING, ERROR")
}

// Valid reports whether s is one of the four known severities.
func (s Severity) Valid() bool {
	return s >= SeverityDebug && s <= SeverityError
}

// Rank is the integer used for filtering; higher is more severe.
func (s Severity) Rank() int {
	return int(s)
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return ""
}
