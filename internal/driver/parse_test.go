package driver

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"fern/internal/diag"
	"fern/internal/token"
	"fern/internal/tree"
)

func TestParseFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.fern", "f(x)\n)")
	res, err := ParseFile(context.Background(), path, 0)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if got := tree.StringTree(res.Root); got != "(program f (group ( x )) ) <EOF>)" {
		t.Fatalf("tree = %s", got)
	}
	items := res.Bag.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(items))
	}
	if items[0].Code != diag.SynExtraneousInput {
		t.Fatalf("code = %v", items[0].Code)
	}
	if res.Stats.Errors != 1 || res.Tokens != 6 {
		t.Fatalf("stats = %+v tokens = %d", res.Stats, res.Tokens)
	}
}

func TestParseFileCap(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.fern", ")))))")
	res, err := ParseFile(context.Background(), path, 2)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if n := res.Bag.Len(); n != 2 {
		t.Fatalf("bag holds %d diagnostics, want 2", n)
	}
	// дерево строится полностью независимо от лимита
	if res.Stats.Errors != 5 {
		t.Fatalf("error nodes = %d, want 5", res.Stats.Errors)
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(context.Background(), filepath.Join(t.TempDir(), "nope.fern"), 0)
	var inErr *InputError
	if !errors.As(err, &inErr) {
		t.Fatalf("expected *InputError, got %v", err)
	}
}

func TestTokenize(t *testing.T) {
	path := writeFile(t, t.TempDir(), "t.fern", "x := 0x1F // c\n`")
	res, err := Tokenize(path, 0)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	var kinds []token.Kind
	for _, tok := range res.Tokens {
		kinds = append(kinds, tok.Kind)
	}
	want := []token.Kind{token.Ident, token.ColonAssign, token.IntLit, token.EOF}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kind[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}
	if res.Bag.Len() != 1 || res.Bag.Items()[0].Code != diag.LexUnknownChar {
		t.Fatalf("expected one unknown char diagnostic, got %+v", res.Bag.Items())
	}
}

func TestTokenizeMissing(t *testing.T) {
	_, err := Tokenize(filepath.Join(t.TempDir(), "nope.fern"), 0)
	var inErr *InputError
	if !errors.As(err, &inErr) {
		t.Fatalf("expected *InputError, got %v", err)
	}
}
