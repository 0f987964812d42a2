package logrender

import "regexp"

// prefixPattern matches lines such as
//
//	DEBUG    - not matched
//	INFO     - [COLOR_INFO]ESP8266_GENERIC: Firmware build start.
var prefixPattern = regexp.MustCompile(`^(DEBUG|INFO|WARNING|ERROR) +- (?:\[(COLOR_[A-Z]+)\])?(.*)$`)

// Prefix is the parsed head of a log entry.
type Prefix struct {
	Severity    Severity
	ColorSchema string
	Payload     string
}

// ParsePrefix splits a severity prefix and optional color schema off line.
// Lines without a prefix return false; they continue the previous entry.
func ParsePrefix(line string) (Prefix, bool) {
	m := prefixPattern.FindStringSubmatch(line)
	if m == nil {
		return Prefix{}, false
	}
	sev, err := ParseSeverity(m[1])
	if err != nil {
		return Prefix{}, false
	}
	return Prefix{Severity: sev, ColorSchema: m[2], Payload: m[3]}, true
}
