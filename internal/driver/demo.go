package driver

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"fern/internal/diag"
	"fern/internal/diagfmt"
	"fern/internal/observ"
	"fern/internal/source"
	"fern/internal/trace"
	"fern/internal/tree"
)

// FallbackText is parsed when no input file is given.
const FallbackText = "// Test input for Fern language\n// Replace with valid Fern syntax"

// FallbackName is the virtual file name of FallbackText.
const FallbackName = "<fallback>"

// DemoOptions tunes RunDemo; the zero value is the plain demo.
type DemoOptions struct {
	Timer *observ.Timer // nil — без замеров
}

// RunDemo loads args[0] (or FallbackText when args is empty), parses it and writes
// "Parse tree: <tree>" to stdout. Diagnostics go to stderr as "<line>:<column> <msg>"
// while parsing; they never make RunDemo fail. Extra arguments are ignored.
//
// Errors are *InputError when the file cannot be opened and *FailureError for
// anything else.
func RunDemo(ctx context.Context, args []string, stdout, stderr io.Writer, opts DemoOptions) (err error) {
	timer := opts.Timer
	if timer == nil {
		timer = observ.NewTimer()
	}
	ctx, span := trace.Begin(ctx, trace.ScopeDriver, "demo")
	defer func() {
		if r := recover(); r != nil {
			err = &FailureError{Err: fmt.Errorf("%v", r)}
		}
		if err != nil {
			trace.Error(ctx, "demo", err)
		}
		span.End("")
	}()

	fs := source.NewFileSet()
	var file *source.File

	idx := timer.Begin("load")
	_, loadSpan := trace.Begin(ctx, trace.ScopePhase, "load")
	if len(args) > 0 {
		path := args[0]
		id, loadErr := fs.Load(path)
		if loadErr != nil {
			loadSpan.End("failed")
			timer.End(idx, "failed")
			return &InputError{Path: path, Err: loadErr}
		}
		file = fs.Get(id)
	} else {
		file = fs.Get(fs.AddVirtual(FallbackName, []byte(FallbackText)))
	}
	loadSpan.With("bytes", strconv.Itoa(len(file.Content))).End(file.Path)
	timer.End(idx, "")

	// один sink на лексер и парсер: ошибки печатаются в порядке обнаружения
	lines := diagfmt.NewLineReporter(stderr, fs)

	idx = timer.Begin("lex+parse")
	parseCtx, parseSpan := trace.Begin(ctx, trace.ScopePhase, "lex+parse")
	unit := newUnit(fs, file, diag.MultiReporter{lines, traceSink(parseCtx)}, 0, stderr)
	root := unit.parser.Program()
	parseSpan.
		With("tokens", strconv.Itoa(unit.stream.Size())).
		With("errors", strconv.Itoa(unit.errors())).
		End("")
	timer.End(idx, "")

	idx = timer.Begin("render")
	_, renderSpan := trace.Begin(ctx, trace.ScopePhase, "render")
	_, werr := fmt.Fprintf(stdout, "Parse tree: %s\n", tree.StringTree(root))
	renderSpan.End("")
	timer.End(idx, "")
	if werr != nil {
		return &FailureError{Err: fmt.Errorf("write parse tree: %w", werr)}
	}
	return nil
}
