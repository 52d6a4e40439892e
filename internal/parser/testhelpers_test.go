package parser

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"fern/internal/diag"
	"fern/internal/lexer"
	"fern/internal/source"
	"fern/internal/tokstream"
	"fern/internal/tree"
)

// lineSink собирает диагностики в виде "L:C msg"
type lineSink struct {
	fs    *source.FileSet
	lines []string
}

func (s *lineSink) Report(_ diag.Code, _ diag.Severity, primary source.Span, msg string, _ []diag.Note) {
	pos := s.fs.Position(primary)
	s.lines = append(s.lines, fmt.Sprintf("%d:%d %s", pos.Line, pos.Column, msg))
}

func newTestParser(t *testing.T, input string, opts Options) (*Parser, *lineSink) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.fern", []byte(input))
	sink := &lineSink{fs: fs}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: sink})
	if opts.Stderr == nil {
		opts.Stderr = &bytes.Buffer{}
	}
	p := New(fs, tokstream.New(lx), opts)
	p.RemoveReporters()
	p.AddReporter(sink)
	return p, sink
}

func parseString(t *testing.T, input string) (*tree.Rule, []string) {
	t.Helper()
	p, sink := newTestParser(t, input, Options{})
	root := p.Program()
	return root, sink.lines
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return "<none>"
	}
	return strings.Join(lines, "; ")
}
