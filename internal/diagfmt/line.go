package diagfmt

import (
	"fmt"
	"io"
	"sync"

	"fern/internal/diag"
	"fern/internal/source"
)

// LineReporter prints each diagnostic immediately as "<Prefix><line>:<column> <msg>".
// Line is 1-based, column is the 0-based character offset within the line.
type LineReporter struct {
	W      io.Writer
	Files  *source.FileSet
	Prefix string

	mu sync.Mutex
}

// NewLineReporter returns a reporter writing bare "L:C msg" lines.
func NewLineReporter(w io.Writer, fs *source.FileSet) *LineReporter {
	return &LineReporter{W: w, Files: fs}
}

func (r *LineReporter) Report(_ diag.Code, _ diag.Severity, primary source.Span, msg string, _ []diag.Note) {
	var pos source.Position
	if r.Files != nil && int(primary.File) < r.Files.Len() {
		pos = r.Files.Position(primary)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.W, "%s%d:%d %s\n", r.Prefix, pos.Line, pos.Column, msg)
}
