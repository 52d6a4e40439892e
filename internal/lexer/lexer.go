package lexer

import (
	"unicode/utf8"

	"fern/internal/diag"
	"fern/internal/source"
	"fern/internal/token"
)

// maxTokenLength caps a single token; longer tokens are reported as Invalid and
// lexing resumes right after them.
const maxTokenLength = 64 * 1024

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File {
	return lx.file
}

// Next возвращает следующий значимый токен с уже собранным Leading.
// Unrecognized characters are reported and skipped, so Next never returns Invalid
// for them. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.hold = nil
	for {
		lx.collectLeadingTrivia()

		// Leading из hold к EOF не приклеиваем
		if lx.cursor.EOF() {
			return token.Token{
				Kind:  token.EOF,
				Span:  lx.EmptySpan(),
				Index: -1,
			}
		}

		tok, ok := lx.scanToken()
		if !ok {
			continue
		}
		if tok.Span.Len() > maxTokenLength {
			lx.errLex(diag.LexTokenTooLong, tok.Span, "token too long")
			tok.Kind = token.Invalid
		}

		tok.Leading = lx.hold
		tok.Index = -1
		lx.hold = nil
		return tok
	}
}

// scanToken dispatches on the current byte. ok is false when the input was consumed
// without producing a token.
func (lx *Lexer) scanToken() (tok token.Token, ok bool) {
	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch):
		return lx.scanIdent()
	case ch >= utf8.RuneSelf:
		// возможный Unicode идентификатор
		return lx.scanIdent()
	case isDec(ch):
		return lx.scanNumber(), true
	case ch == '.' && lx.isNumberAfterDot():
		return lx.scanNumber(), true
	case ch == '"':
		return lx.scanString(), true
	default:
		return lx.scanOperatorOrPunct()
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// EmptySpan returns the empty span at the current cursor position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// All drains the lexer and returns every token including the final EOF.
func (lx *Lexer) All() []token.Token {
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}
