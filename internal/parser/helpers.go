package parser

import (
	"fern/internal/diag"
	"fern/internal/token"
	"fern/internal/tree"
)

// advance — съедает текущий токен и возвращает его
func (p *Parser) advance() token.Token {
	tok := p.ts.LT(1)
	p.ts.Consume()
	return tok
}

func (p *Parser) addToken(r *tree.Rule, tok token.Token) {
	r.AddToken(tok)
	r.Stop = tok
}

func (p *Parser) addError(r *tree.Rule, tok token.Token) {
	r.AddError(tok)
	r.Stop = tok
}

// err репортует синтаксическую ошибку в позиции tok во все подключенные reporters.
// После MaxErrors ошибки только считаются.
func (p *Parser) err(code diag.Code, tok token.Token, msg string, notes ...diag.Note) {
	p.errors++
	if p.opts.MaxErrors > 0 && p.errors > p.opts.MaxErrors {
		return
	}
	for _, r := range p.reporters {
		r.Report(code, diag.SevError, tok.Span, msg, notes)
	}
}
