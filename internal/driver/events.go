package driver

// Status is the per-file state reported during CheckFiles.
type Status uint8

const (
	StatusQueued Status = iota
	StatusParsing
	StatusCached
	StatusDone
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusParsing:
		return "parsing"
	case StatusCached:
		return "cached"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Final reports whether no further events follow for the file.
func (s Status) Final() bool {
	return s == StatusCached || s == StatusDone || s == StatusError
}

// FileEvent is sent on CheckOptions.Events as files move through the check.
type FileEvent struct {
	Path   string
	Status Status
	Errors int
}
