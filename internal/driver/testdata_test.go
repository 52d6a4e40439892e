package driver

import (
	"io"
	"path/filepath"
	"slices"
	"testing"

	"fern/internal/diag"
	"fern/internal/source"
	"fern/internal/testkit"
)

func TestTestdataCorpus(t *testing.T) {
	tests := []struct {
		file  string
		codes []diag.Code
	}{
		{"groups.fern", nil},
		{"recovery.fern", []diag.Code{
			diag.SynMissingToken,       // ']' не закрыт до ')'
			diag.SynExtraneousInput,    // '}' на верхнем уровне
			diag.LexUnterminatedString, // перевод строки внутри строки
		}},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			fs := source.NewFileSet()
			id, err := fs.Load(filepath.Join("..", "..", "testdata", tt.file))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			file := fs.Get(id)
			bag := diag.NewBag(0)
			u := newUnit(fs, file, diag.BagReporter{Bag: bag}, 0, io.Discard)
			root := u.parser.Program()

			if err := testkit.CheckTreeInvariants(root, u.stream.Tokens(), file); err != nil {
				t.Fatalf("tree invariants: %v", err)
			}
			var codes []diag.Code
			for _, d := range bag.Items() {
				codes = append(codes, d.Code)
			}
			if !slices.Equal(codes, tt.codes) {
				t.Fatalf("codes = %v, want %v", codes, tt.codes)
			}
			if u.errors() != len(tt.codes) {
				t.Fatalf("errors() = %d, want %d", u.errors(), len(tt.codes))
			}
		})
	}
}
