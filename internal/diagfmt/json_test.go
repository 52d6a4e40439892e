package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"fern/internal/diag"
	"fern/internal/source"
)

func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.fern", []byte("f(\n  x"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynMissingToken, source.Span{File: fileID, Start: 6, End: 6}, "missing ')' at '<EOF>'"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %+v", output)
	}
	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "SYN2002" {
		t.Errorf("unexpected severity/code %s %s", d.Severity, d.Code)
	}
	if d.Location.File != "test.fern" || d.Location.Line != 2 || d.Location.Column != 3 {
		t.Errorf("unexpected location %+v", d.Location)
	}
}

func TestJSONMaxLimit(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("m.fern", []byte("abc"))

	bag := diag.NewBag(0)
	for i := range uint32(3) {
		bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: i, End: i + 1}, "x"))
	}

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 || out.Dropped != 1 {
		t.Fatalf("got count %d dropped %d", out.Count, out.Dropped)
	}
	if out.Diagnostics[1].Location.Column != 1 {
		t.Fatalf("column = %d", out.Diagnostics[1].Location.Column)
	}
}

func TestJSONColumnCountsCharacters(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("u.fern", []byte("变量 $"))

	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 7, End: 8}, "token recognition error at: '$'"))
	bag.AddDropped(2)

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{})
	loc := out.Diagnostics[0].Location
	if loc.Line != 1 || loc.Column != 3 || loc.Start != 7 {
		t.Fatalf("location = %+v", loc)
	}
	if out.Dropped != 2 {
		t.Fatalf("dropped = %d", out.Dropped)
	}
}
