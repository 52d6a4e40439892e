package parser

import (
	"fmt"

	"fern/internal/diag"
	"fern/internal/token"
	"fern/internal/tree"
)

// Program разбирает весь вход: program : element* EOF ;
// Возвращает дерево всегда, даже при синтаксических ошибках.
func (p *Parser) Program() *tree.Rule {
	root := tree.NewRule(RuleProgram, p.ts.LT(1))
	for {
		tok := p.ts.LT(1)
		switch {
		case tok.Kind == token.EOF:
			p.addToken(root, tok)
			return root
		case tok.Kind.IsOpener():
			p.addGroup(root)
		case tok.Kind.IsCloser():
			// закрывающая скобка без пары
			p.err(diag.SynExtraneousInput, tok,
				fmt.Sprintf("extraneous input %s expecting %s", tok.ErrorDisplay(), token.EOF.Display()))
			p.addError(root, p.advance())
		default:
			p.addToken(root, p.advance())
		}
	}
}

// group : '(' element* ')' | '[' element* ']' | '{' element* '}' ;
func (p *Parser) group() *tree.Rule {
	open := p.advance()
	closer, _ := open.Kind.Closer()
	r := tree.NewRule(RuleGroup, open)
	r.AddToken(open)

	p.closers = append(p.closers, closer)
	defer func() { p.closers = p.closers[:len(p.closers)-1] }()

	for {
		tok := p.ts.LT(1)
		switch {
		case tok.Kind == closer:
			p.addToken(r, p.advance())
			return r

		case tok.Kind == token.EOF || p.closesOuter(tok.Kind):
			// группа не закрыта: подставляем недостающую скобку, токен оставляем внешнему правилу
			p.err(diag.SynMissingToken, tok,
				fmt.Sprintf("missing %s at %s", closer.Display(), tok.ErrorDisplay()),
				diag.Note{Span: open.Span, Msg: "group opened here"})
			r.AddToken(token.MissingToken(closer, tok.Span))
			return r

		case tok.Kind.IsCloser():
			p.err(diag.SynExtraneousInput, tok,
				fmt.Sprintf("extraneous input %s expecting %s", tok.ErrorDisplay(), closer.Display()))
			p.addError(r, p.advance())

		case tok.Kind.IsOpener():
			p.addGroup(r)

		default:
			p.addToken(r, p.advance())
		}
	}
}

// addGroup разбирает вложенную группу или, при превышении глубины, съедает открывающую
// скобку как ошибочный узел.
func (p *Parser) addGroup(parent *tree.Rule) {
	if uint(len(p.closers)) >= p.opts.MaxDepth {
		tok := p.ts.LT(1)
		p.err(diag.SynTooDeep, tok, fmt.Sprintf("nesting too deep at %s", tok.ErrorDisplay()))
		p.addError(parent, p.advance())
		return
	}
	g := p.group()
	parent.AddChild(g)
	parent.Stop = g.Stop
}

// closesOuter — закрывает ли k одну из внешних (не текущую) групп.
func (p *Parser) closesOuter(k token.Kind) bool {
	if !k.IsCloser() || len(p.closers) < 2 {
		return false
	}
	for _, c := range p.closers[:len(p.closers)-1] {
		if c == k {
			return true
		}
	}
	return false
}
