package lexer

import (
	"fern/internal/diag"
	"fern/internal/token"
)

// Жадность: сначала 3-символьные, затем 2-символьные, затем 1-символьные.
func (lx *Lexer) scanOperatorOrPunct() (token.Token, bool) {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) (token.Token, bool) {
		return lx.tokenFrom(k, start), true
	}

	switch {
	case lx.tryOp("..="):
		return emit(token.DotDotEq)
	case lx.tryOp("..."):
		return emit(token.DotDotDot)
	case lx.tryOp(".."):
		return emit(token.DotDot)
	case lx.tryOp("::"):
		return emit(token.ColonColon)
	case lx.tryOp(":="):
		return emit(token.ColonAssign)
	case lx.tryOp("->"):
		return emit(token.Arrow)
	case lx.tryOp("=>"):
		return emit(token.FatArrow)
	case lx.tryOp("&&"):
		return emit(token.AndAnd)
	case lx.tryOp("||"):
		return emit(token.OrOr)
	case lx.tryOp("??"):
		return emit(token.QuestionQuestion)
	case lx.tryOp("=="):
		return emit(token.EqEq)
	case lx.tryOp("!="):
		return emit(token.BangEq)
	case lx.tryOp("<="):
		return emit(token.LtEq)
	case lx.tryOp(">="):
		return emit(token.GtEq)
	case lx.tryOp("<<"):
		return emit(token.Shl)
	case lx.tryOp(">>"):
		return emit(token.Shr)
	case lx.tryOp("+="):
		return emit(token.PlusAssign)
	case lx.tryOp("-="):
		return emit(token.MinusAssign)
	case lx.tryOp("*="):
		return emit(token.StarAssign)
	case lx.tryOp("/="):
		return emit(token.SlashAssign)
	case lx.tryOp("%="):
		return emit(token.PercentAssign)
	}

	// односимвольные
	if k, ok := singleByteKinds[lx.cursor.Peek()]; ok {
		lx.cursor.Bump()
		return emit(k)
	}
	return lx.unknownChar(start)
}

var singleByteKinds = map[byte]token.Kind{
	'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash, '%': token.Percent,
	'=': token.Assign, '!': token.Bang, '<': token.Lt, '>': token.Gt,
	'&': token.Amp, '|': token.Pipe, '^': token.Caret, '~': token.Tilde,
	'?': token.Question, ':': token.Colon, ';': token.Semicolon, ',': token.Comma, '.': token.Dot,
	'@': token.At, '#': token.Hash, '$': token.Dollar,
	'(': token.LParen, ')': token.RParen, '{': token.LBrace, '}': token.RBrace,
	'[': token.LBracket, ']': token.RBracket,
}

// unknownChar reports the character at start and skips it; no token is produced.
func (lx *Lexer) unknownChar(start Mark) (token.Token, bool) {
	lx.cursor.Reset(start)
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	text := token.EscapeWhitespace(string(lx.file.Content[sp.Start:sp.End]))
	lx.errLex(diag.LexUnknownChar, sp, "token recognition error at: '"+text+"'")
	return token.Token{}, false
}
