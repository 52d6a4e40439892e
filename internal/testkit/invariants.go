package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"fern/internal/source"
	"fern/internal/token"
	"fern/internal/tree"
)

// CheckTreeInvariants runs a minimal set of invariants on a parse tree:
// 1) every leaf span lies within the file content and points at sf
// 2) the non-conjured leaves are exactly the stream tokens, each once, in order
// 3) every leaf lies within the span of each enclosing rule
// 4) the last child of the root is the EOF terminal
func CheckTreeInvariants(root *tree.Rule, tokens []token.Token, sf *source.File) error {
	if root == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	c := &invariantChecker{file: sf, size: lenContent, tokens: tokens}
	tree.Walk(c, root)
	if c.err != nil {
		return c.err
	}
	if c.next != len(tokens) {
		return fmt.Errorf("tree holds %d of %d stream tokens", c.next, len(tokens))
	}

	if len(root.Children) == 0 {
		return fmt.Errorf("root has no children")
	}
	last, ok := root.Children[len(root.Children)-1].(*tree.Terminal)
	if !ok || last.Token.Kind != token.EOF {
		return fmt.Errorf("root does not end with EOF")
	}
	return nil
}

type invariantChecker struct {
	tree.BaseListener
	file   *source.File
	size   uint32
	tokens []token.Token
	open   []*tree.Rule
	next   int
	err    error
}

func (c *invariantChecker) EnterRule(r *tree.Rule) { c.open = append(c.open, r) }
func (c *invariantChecker) ExitRule(*tree.Rule)    { c.open = c.open[:len(c.open)-1] }

func (c *invariantChecker) VisitTerminal(t *tree.Terminal) { c.leaf(t.Token) }
func (c *invariantChecker) VisitError(e *tree.ErrorNode)   { c.leaf(e.Token) }

func (c *invariantChecker) leaf(tok token.Token) {
	if c.err != nil {
		return
	}
	sp := tok.Span
	// 1) span sanity
	if sp.File != c.file.ID {
		c.err = fmt.Errorf("token %s span file mismatch: got=%d want=%d", tok.DisplayText(), sp.File, c.file.ID)
		return
	}
	if sp.Start > sp.End || sp.End > c.size {
		c.err = fmt.Errorf("token %s span %v is outside content (%d bytes)", tok.DisplayText(), sp, c.size)
		return
	}
	if tok.Missing {
		return
	}
	// 2) stream order
	if c.next >= len(c.tokens) {
		c.err = fmt.Errorf("token %s is not in the stream", tok.DisplayText())
		return
	}
	want := c.tokens[c.next]
	if tok.Index != want.Index || tok.Span != want.Span || tok.Kind != want.Kind {
		c.err = fmt.Errorf("leaf %d is %s at %v, stream has %s at %v", c.next, tok.DisplayText(), sp, want.DisplayText(), want.Span)
		return
	}
	c.next++
	// 3) containment
	for _, r := range c.open {
		rs := r.Span()
		if sp.Start < rs.Start || sp.End > rs.End {
			c.err = fmt.Errorf("token %s at %v escapes rule %s at %v", tok.DisplayText(), sp, r.Name, rs)
			return
		}
	}
}
