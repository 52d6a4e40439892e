package token_test

import (
	"testing"

	"fern/internal/source"
	"fern/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestEveryKindHasName(t *testing.T) {
	for k := token.Invalid; k <= token.RBracket; k++ {
		if name := k.String(); name == "" || name == "Kind(?)" {
			t.Fatalf("kind %d has no name", k)
		}
	}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{token.IntLit, token.FloatLit, token.StringLit}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.Plus, token.LParen, token.EOF}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestIsPunctOrOp(t *testing.T) {
	ops := []token.Kind{
		token.Plus, token.Shl, token.DotDotEq, token.Arrow, token.FatArrow,
		token.LParen, token.RParen, token.LBrace, token.RBrace, token.LBracket, token.RBracket,
		token.Hash, token.Dollar, token.ColonAssign,
	}
	for _, k := range ops {
		if !tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be punct/op", k)
		}
	}
	non := []token.Kind{token.Ident, token.IntLit, token.EOF, token.Invalid}
	for _, k := range non {
		if tok(k).IsPunctOrOp() {
			t.Fatalf("%v must NOT be punct/op", k)
		}
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		kind token.Kind
		want string
	}{
		{token.EOF, "<EOF>"},
		{token.RParen, "')'"},
		{token.DotDotDot, "'...'"},
		{token.Ident, "Ident"},
	}
	for _, tt := range tests {
		if got := tt.kind.Display(); got != tt.want {
			t.Errorf("%v.Display() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestDelimiters(t *testing.T) {
	pairs := map[token.Kind]token.Kind{
		token.LParen:   token.RParen,
		token.LBrace:   token.RBrace,
		token.LBracket: token.RBracket,
	}
	for open, want := range pairs {
		if !open.IsOpener() || open.IsCloser() {
			t.Errorf("%v should be an opener only", open)
		}
		got, ok := open.Closer()
		if !ok || got != want {
			t.Errorf("%v.Closer() = %v, %v", open, got, ok)
		}
		if !want.IsCloser() {
			t.Errorf("%v should be a closer", want)
		}
	}
	if _, ok := token.Ident.Closer(); ok {
		t.Error("Ident must not have a closer")
	}
}
