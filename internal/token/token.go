package token

import (
	"strings"

	"fern/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
	// Index is the position in the buffered token stream, -1 until buffered.
	Index int
	// Missing marks a token conjured by error recovery; it has no source text.
	Missing bool
}

// MissingToken returns a conjured token of kind k positioned at sp.
func MissingToken(k Kind, sp source.Span) Token {
	return Token{
		Kind:    k,
		Span:    sp.At(),
		Text:    "<missing " + k.Display() + ">",
		Index:   -1,
		Missing: true,
	}
}

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind.Literal() != ""
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// DisplayText returns the text shown for the token in trees and messages.
// EOF is shown as "<EOF>".
func (t Token) DisplayText() string {
	if t.Kind == EOF && !t.Missing {
		return "<EOF>"
	}
	return t.Text
}

// ErrorDisplay quotes the token for syntax error messages, escaping whitespace.
func (t Token) ErrorDisplay() string {
	return "'" + EscapeWhitespace(t.DisplayText()) + "'"
}

var whitespaceEscaper = strings.NewReplacer("\n", `\n`, "\r", `\r`, "\t", `\t`)

// EscapeWhitespace replaces newline, carriage return and tab with escapes.
func EscapeWhitespace(s string) string {
	return whitespaceEscaper.Replace(s)
}
