package driver

import (
	"context"
	"io"
	"strconv"

	"fern/internal/diag"
	"fern/internal/lexer"
	"fern/internal/parser"
	"fern/internal/source"
	"fern/internal/tokstream"
	"fern/internal/trace"
)

// unit — связка lexer → stream → parser для одного файла.
type unit struct {
	counter *diag.CountingReporter
	lexer   *lexer.Lexer
	stream  *tokstream.Stream
	parser  *parser.Parser
}

// newUnit wires lexer, token stream and parser over file. The parser's default
// console reporter is replaced by sink, and the lexer reports into the same sink.
func newUnit(fs *source.FileSet, file *source.File, sink diag.Reporter, maxErrors uint, stderr io.Writer) *unit {
	counter := &diag.CountingReporter{Next: sink}
	lx := lexer.New(file, lexer.Options{Reporter: counter})
	ts := tokstream.New(lx)
	p := parser.New(fs, ts, parser.Options{MaxErrors: maxErrors, Stderr: stderr})
	p.RemoveReporters()
	p.AddReporter(counter)
	return &unit{counter: counter, lexer: lx, stream: ts, parser: p}
}

// errors — ошибки лексера и парсера, дошедшие до sink.
func (u *unit) errors() int {
	return u.counter.Errors
}

// traceSink дублирует диагностики в trace (уровень debug).
func traceSink(ctx context.Context) diag.Reporter {
	if !trace.FromContext(ctx).Enabled() {
		return diag.NopReporter{}
	}
	return diag.ReporterFunc(func(code diag.Code, sev diag.Severity, primary source.Span, msg string, _ []diag.Note) {
		trace.Point(ctx, trace.ScopeToken, code.ID(), msg,
			trace.Field{Key: "sev", Value: sev.String()},
			trace.Field{Key: "start", Value: strconv.FormatUint(uint64(primary.Start), 10)},
		)
	})
}
