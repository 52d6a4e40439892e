package tree

// Listener receives callbacks during Walk.
type Listener interface {
	EnterRule(r *Rule)
	ExitRule(r *Rule)
	VisitTerminal(t *Terminal)
	VisitError(e *ErrorNode)
}

// BaseListener implements Listener with no-ops; embed it to override selectively.
type BaseListener struct{}

func (BaseListener) EnterRule(*Rule)         {}
func (BaseListener) ExitRule(*Rule)          {}
func (BaseListener) VisitTerminal(*Terminal) {}
func (BaseListener) VisitError(*ErrorNode)   {}

// Walk traverses n depth-first in source order.
func Walk(l Listener, n Node) {
	switch n := n.(type) {
	case *Rule:
		l.EnterRule(n)
		for _, c := range n.Children {
			Walk(l, c)
		}
		l.ExitRule(n)
	case *Terminal:
		l.VisitTerminal(n)
	case *ErrorNode:
		l.VisitError(n)
	}
}

// Stats summarizes a tree.
type Stats struct {
	Rules     int
	Terminals int
	Errors    int
	Missing   int
	Depth     int
}

// Nodes is the total number of nodes.
func (s Stats) Nodes() int {
	return s.Rules + s.Terminals + s.Errors
}

type statsListener struct {
	stats Stats
	depth int
}

func (l *statsListener) EnterRule(*Rule) {
	l.stats.Rules++
	l.depth++
	l.stats.Depth = max(l.stats.Depth, l.depth)
}

func (l *statsListener) ExitRule(*Rule) { l.depth-- }

func (l *statsListener) VisitTerminal(t *Terminal) {
	l.stats.Terminals++
	if t.Token.Missing {
		l.stats.Missing++
	}
}

func (l *statsListener) VisitError(*ErrorNode) { l.stats.Errors++ }

// Collect walks n and counts its nodes.
func Collect(n Node) Stats {
	l := &statsListener{}
	Walk(l, n)
	return l.stats
}
