package driver

import "fmt"

// InputError reports that the input file could not be opened. No lexer or parser
// is constructed when it is returned.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("Could not open input file '%s'", e.Path)
}

func (e *InputError) Unwrap() error { return e.Err }

// FailureError wraps any other failure during stream construction, lexing,
// parsing or rendering, recovered panics included.
type FailureError struct {
	Err error
}

func (e *FailureError) Error() string {
	if e.Err == nil {
		return "unknown failure"
	}
	return e.Err.Error()
}

func (e *FailureError) Unwrap() error { return e.Err }
