package lexer

import (
	"fern/internal/diag"
	"fern/internal/token"
)

// scanString читает "..." целиком. Байт после '\' входит в литерал как есть,
// даже перевод строки; содержимое escape не проверяется.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '"'
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '"':
			lx.cursor.Bump()
			return lx.tokenFrom(token.StringLit, start)
		case '\n':
			return lx.badString(start, "newline in string literal")
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				continue
			}
		}
		lx.cursor.Bump()
	}
	return lx.badString(start, "unterminated string literal")
}

func (lx *Lexer) badString(start Mark, msg string) token.Token {
	tok := lx.tokenFrom(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, msg)
	return tok
}
