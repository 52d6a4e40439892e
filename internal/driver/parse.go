package driver

import (
	"context"
	"io"
	"strconv"

	"fortio.org/safecast"

	"fern/internal/diag"
	"fern/internal/source"
	"fern/internal/trace"
	"fern/internal/tree"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Root    *tree.Rule
	Tokens  int
	Stats   tree.Stats
	Bag     *diag.Bag
}

// ParseFile загружает и разбирает один файл, собирая диагностики в Bag.
// maxDiagnostics ограничивает и Bag, и число ошибок, которые репортит парсер.
func ParseFile(ctx context.Context, path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	return parseLoaded(ctx, fs, fs.Get(fileID), maxDiagnostics, io.Discard)
}

func parseLoaded(ctx context.Context, fs *source.FileSet, file *source.File, maxDiagnostics int, stderr io.Writer) (*ParseResult, error) {
	maxErrors, err := safecast.Conv[uint](max(maxDiagnostics, 0))
	if err != nil {
		return nil, &FailureError{Err: err}
	}

	ctx, span := trace.Begin(ctx, trace.ScopeFile, file.Path)
	bag := diag.NewBag(maxDiagnostics)
	sink := diag.MultiReporter{diag.BagReporter{Bag: bag}, traceSink(ctx)}
	u := newUnit(fs, file, sink, maxErrors, stderr)
	root := u.parser.Program()
	stats := tree.Collect(root)
	span.
		With("tokens", strconv.Itoa(u.stream.Size())).
		With("errors", strconv.Itoa(u.errors())).
		End("")

	// ошибки сверх MaxErrors парсер только считает; в Bag они идут как отброшенные
	if total := u.parser.Errors(); maxErrors > 0 && total > maxErrors {
		suppressed, err := safecast.Conv[int](total - maxErrors)
		if err != nil {
			return nil, &FailureError{Err: err}
		}
		bag.AddDropped(suppressed)
	}

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Root:    root,
		Tokens:  u.stream.Size(),
		Stats:   stats,
		Bag:     bag,
	}, nil
}
