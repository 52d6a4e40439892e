package parser

import (
	"io"
	"os"
	"slices"

	"fern/internal/diag"
	"fern/internal/diagfmt"
	"fern/internal/source"
	"fern/internal/token"
	"fern/internal/tokstream"
)

// Rule names as they appear in the parse tree.
const (
	RuleProgram = "program"
	RuleGroup   = "group"
)

const defaultMaxDepth = 4096

// RuleNames lists every rule the parser can produce, start rule first.
func RuleNames() []string {
	return []string{RuleProgram, RuleGroup}
}

type Options struct {
	MaxErrors uint      // 0 - без ограничений
	MaxDepth  uint      // 0 - defaultMaxDepth
	Stderr    io.Writer // куда пишет консольный reporter по умолчанию; nil - os.Stderr
}

// Parser — состояние парсера на один поток токенов
type Parser struct {
	ts        *tokstream.Stream
	fs        *source.FileSet
	opts      Options
	reporters []diag.Reporter
	errors    uint
	closers   []token.Kind // ожидаемые закрывающие скобки, вершина — последняя
}

// New creates a parser reading ts. The parser starts with a console reporter that
// prints "line L:C msg" to opts.Stderr; replace it with RemoveReporters/AddReporter
// before calling Program.
func New(fs *source.FileSet, ts *tokstream.Stream, opts Options) *Parser {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	if opts.MaxDepth == 0 {
		opts.MaxDepth = defaultMaxDepth
	}
	return &Parser{
		ts:        ts,
		fs:        fs,
		opts:      opts,
		reporters: []diag.Reporter{&diagfmt.LineReporter{W: stderr, Files: fs, Prefix: "line "}},
	}
}

// RemoveReporters detaches every diagnostic sink, the default one included.
func (p *Parser) RemoveReporters() {
	p.reporters = nil
}

// AddReporter attaches a diagnostic sink. Sinks receive syntax errors in detection order.
func (p *Parser) AddReporter(r diag.Reporter) {
	if r == nil {
		return
	}
	p.reporters = append(p.reporters, r)
}

// Reporters returns the attached sinks.
func (p *Parser) Reporters() []diag.Reporter {
	return slices.Clone(p.reporters)
}

// Errors is the number of syntax errors detected so far, including ones
// suppressed by MaxErrors.
func (p *Parser) Errors() uint {
	return p.errors
}

// Stream returns the token stream the parser reads.
func (p *Parser) Stream() *tokstream.Stream {
	return p.ts
}
