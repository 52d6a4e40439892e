package diag

// Severity defines the importance of a diagnostic. Greater is more severe.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

// Valid reports whether s is one of the known severities; decoded cache
// records are rejected otherwise.
func (s Severity) Valid() bool {
	return int(s) < len(severityNames)
}

func (s Severity) String() string {
	if !s.Valid() {
		return "UNKNOWN"
	}
	return severityNames[s]
}
