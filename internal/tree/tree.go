// Package tree holds the concrete parse tree built by the parser.
package tree

import (
	"strings"

	"fern/internal/source"
	"fern/internal/token"
)

// Node is a parse tree node: *Rule, *Terminal or *ErrorNode.
type Node interface {
	Parent() *Rule
	Span() source.Span
	setParent(*Rule)
}

// Rule is an interior node produced by a grammar rule.
type Rule struct {
	Name     string
	Children []Node
	// Start and Stop are the first and last tokens matched by the rule.
	Start  token.Token
	Stop   token.Token
	parent *Rule
}

// Terminal wraps a matched (or conjured) token.
type Terminal struct {
	Token  token.Token
	parent *Rule
}

// ErrorNode wraps a token skipped during error recovery.
type ErrorNode struct {
	Token  token.Token
	parent *Rule
}

func NewRule(name string, start token.Token) *Rule {
	return &Rule{Name: name, Start: start, Stop: start}
}

// AddChild appends n and makes r its parent.
func (r *Rule) AddChild(n Node) {
	n.setParent(r)
	r.Children = append(r.Children, n)
}

// AddToken appends a terminal for tok and returns it.
func (r *Rule) AddToken(tok token.Token) *Terminal {
	t := &Terminal{Token: tok}
	r.AddChild(t)
	return t
}

// AddError appends an error node for tok and returns it.
func (r *Rule) AddError(tok token.Token) *ErrorNode {
	e := &ErrorNode{Token: tok}
	r.AddChild(e)
	return e
}

func (r *Rule) Parent() *Rule      { return r.parent }
func (t *Terminal) Parent() *Rule  { return t.parent }
func (e *ErrorNode) Parent() *Rule { return e.parent }

func (r *Rule) setParent(p *Rule)      { r.parent = p }
func (t *Terminal) setParent(p *Rule)  { t.parent = p }
func (e *ErrorNode) setParent(p *Rule) { e.parent = p }

// Span covers the tokens from Start to Stop.
func (r *Rule) Span() source.Span {
	return r.Start.Span.Cover(r.Stop.Span)
}

func (t *Terminal) Span() source.Span  { return t.Token.Span }
func (e *ErrorNode) Span() source.Span { return e.Token.Span }

// Text returns the node's display text for terminals and the rule name for rules.
func Text(n Node) string {
	switch n := n.(type) {
	case *Rule:
		return n.Name
	case *Terminal:
		return token.EscapeWhitespace(n.Token.DisplayText())
	case *ErrorNode:
		return token.EscapeWhitespace(n.Token.DisplayText())
	default:
		return ""
	}
}

// StringTree renders n in LISP form: "(name child child ...)" for rules with
// children, the bare name for empty rules and the token text for leaves.
func StringTree(n Node) string {
	var sb strings.Builder
	writeTree(&sb, n)
	return sb.String()
}

func writeTree(sb *strings.Builder, n Node) {
	r, ok := n.(*Rule)
	if !ok || len(r.Children) == 0 {
		sb.WriteString(Text(n))
		return
	}
	sb.WriteByte('(')
	sb.WriteString(r.Name)
	for _, c := range r.Children {
		sb.WriteByte(' ')
		writeTree(sb, c)
	}
	sb.WriteByte(')')
}
