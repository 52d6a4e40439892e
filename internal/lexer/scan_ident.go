package lexer

import (
	"unicode/utf8"

	"fern/internal/token"
)

// scanIdent сканирует идентификатор. Token.Text — ровно исходный срез.
// A non-letter rune at the start is handed to the unknown character path.
func (lx *Lexer) scanIdent() (token.Token, bool) {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		return token.Token{}, false
	}
	if r < utf8.RuneSelf {
		if !isIdentStartByte(byte(r)) {
			return lx.scanOperatorOrPunct()
		}
		lx.cursor.Bump()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	} else {
		if !isIdentStartRune(r) {
			return lx.unknownChar(start)
		}
		lx.bumpRune()
	}

	// хвост может смешивать ASCII и Unicode
	for {
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}

	return lx.tokenFrom(token.Ident, start), true
}
