package lexer

import (
	"fern/internal/diag"
	"fern/internal/token"
)

// Поддержка: 0, 123, 0b..., 0o..., 0x..., 1.0, .5, 1e-3, 1.0e+10, '_' внутри цифр.
// Суффиксы (u8, f32 ...) не часть числа: они станут следующим Ident.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	emit := func() token.Token {
		return lx.tokenFrom(kind, start)
	}

	// ведущая точка — формат ".digits"
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		kind = token.FloatLit
		lx.eatDigits(isDec)
		return lx.scanExponent(start, emit)
	}

	if lx.cursor.Peek() == '0' {
		lx.cursor.Bump()
		switch lx.cursor.Peek() {
		case 'b', 'B':
			lx.cursor.Bump()
			lx.eatDigits(func(b byte) bool { return b == '0' || b == '1' })
			return emit()
		case 'o', 'O':
			lx.cursor.Bump()
			lx.eatDigits(func(b byte) bool { return b >= '0' && b <= '7' })
			return emit()
		case 'x', 'X':
			lx.cursor.Bump()
			lx.eatDigits(isHex)
			return emit()
		}
	}

	lx.eatDigits(isDec)

	// дробная часть: только если за точкой цифра ('1..2' и '1.foo' не трогаем)
	if lx.isNumberAfterDot() {
		lx.cursor.Bump()
		kind = token.FloatLit
		lx.eatDigits(isDec)
	}
	return lx.scanExponent(start, emit)
}

func (lx *Lexer) eatDigits(digit func(byte) bool) {
	for {
		b := lx.cursor.Peek()
		if !digit(b) && b != '_' {
			return
		}
		lx.cursor.Bump()
	}
}

func (lx *Lexer) scanExponent(start Mark, emit func() token.Token) token.Token {
	b := lx.cursor.Peek()
	if b != 'e' && b != 'E' {
		return emit()
	}
	// "1else": 'e' без цифр не экспонента
	mark := lx.cursor.Mark()
	lx.cursor.Bump()
	if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
		lx.cursor.Bump()
		if !isDec(lx.cursor.Peek()) {
			tok := lx.tokenFrom(token.Invalid, start)
			lx.errLex(diag.LexBadNumber, tok.Span, "expected digit after exponent")
			return tok
		}
	} else if !isDec(lx.cursor.Peek()) {
		lx.cursor.Reset(mark)
		return emit()
	}
	lx.eatDigits(isDec)
	tok := emit()
	tok.Kind = token.FloatLit
	return tok
}
