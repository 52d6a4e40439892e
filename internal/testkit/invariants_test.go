package testkit

import (
	"strings"
	"testing"

	"fern/internal/diag"
	"fern/internal/lexer"
	"fern/internal/parser"
	"fern/internal/source"
	"fern/internal/token"
	"fern/internal/tokstream"
	"fern/internal/tree"
)

func parse(t *testing.T, input string) (*tree.Rule, []token.Token, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.fern", []byte(input)))
	lx := lexer.New(file, lexer.Options{Reporter: diag.NopReporter{}})
	ts := tokstream.New(lx)
	p := parser.New(fs, ts, parser.Options{})
	p.RemoveReporters()
	root := p.Program()
	return root, ts.Tokens(), file
}

func TestTreeInvariantsHold(t *testing.T) {
	inputs := []string{
		"",
		"f(x, [y])",
		"(((",
		")))",
		"[(])",
		"{ a ` b }",
		"\"unterminated",
		"/* open",
	}
	for _, input := range inputs {
		root, tokens, file := parse(t, input)
		if err := CheckTreeInvariants(root, tokens, file); err != nil {
			t.Errorf("%q: %v", input, err)
		}
	}
}

func TestTreeInvariantsDetectLostToken(t *testing.T) {
	root, tokens, file := parse(t, "a b")
	// выкидываем терминал 'b'
	root.Children = append(root.Children[:1], root.Children[2:]...)
	err := CheckTreeInvariants(root, tokens, file)
	if err == nil || !strings.Contains(err.Error(), "stream has") {
		t.Fatalf("expected order violation, got %v", err)
	}
}

func TestTreeInvariantsNil(t *testing.T) {
	if err := CheckTreeInvariants(nil, nil, nil); err == nil {
		t.Fatalf("expected error for nil input")
	}
}
