package sppf

import (
	"fmt"

	"github.com/ornolfur/greina"
	"github.com/ornolfur/greina/grammar"
)

// Node is a forest node. Symbol nodes carry the symbol index (negative
// for nonterminals, positive for terminals); intermediate nodes carry
// the production and dot position they stand for. Terminal nodes
// additionally record the token and the meaning that justified the
// terminal match.
type Node struct {
	Sym      int // symbol index; 0 for intermediate nodes
	Prod     *grammar.Production
	Dot      int
	Start    int
	End      int
	Families []Family

	// Terminal payload
	Token   *greina.Tok
	Meaning *greina.Meaning

	// Score is filled in by the reducer.
	Score int
}

// Family is one packed alternative: an ordered (left, right) pair of
// children, or a single child with Left == nil, or an epsilon family
// with both nil. Prod records which production created the family.
type Family struct {
	Prod  *grammar.Production
	Left  *Node
	Right *Node
}

// IsToken reports whether this is a terminal (token) node.
func (n *Node) IsToken() bool { return n.Sym > 0 }

// IsNonterminal reports whether this is a completed nonterminal node.
func (n *Node) IsNonterminal() bool { return n.Sym < 0 }

// IsInterior reports whether this is an intermediate (dotted) node.
func (n *Node) IsInterior() bool { return n.Sym == 0 }

// IsAmbiguous reports whether the node has more than one family.
func (n *Node) IsAmbiguous() bool { return len(n.Families) > 1 }

// IsEmpty reports whether the node spans no input.
func (n *Node) IsEmpty() bool { return n.Start == n.End }

// Span returns the input span covered by the node.
func (n *Node) Span() greina.Span { return greina.Span{n.Start, n.End} }

// ReduceTo keeps only the family with the given index, culling all
// other alternatives. The reducer calls this at every ambiguous node.
func (n *Node) ReduceTo(ix int) {
	n.Families = []Family{n.Families[ix]}
}

// Children enumerates the child nodes of family fx in left-to-right
// order, flattening the binarized intermediate nodes.
func (n *Node) Children(fx int) []*Node {
	if fx >= len(n.Families) {
		return nil
	}
	var out []*Node
	var flatten func(c *Node)
	flatten = func(c *Node) {
		if c == nil {
			return
		}
		if c.IsInterior() {
			// Interior nodes splice their (sole, after reduction)
			// family into the parent's child list
			if len(c.Families) > 0 {
				flatten(c.Families[0].Left)
				flatten(c.Families[0].Right)
			}
			return
		}
		out = append(out, c)
	}
	f := n.Families[fx]
	flatten(f.Left)
	flatten(f.Right)
	return out
}

func (n *Node) String() string {
	if n.IsToken() {
		return fmt.Sprintf("(t%d %d…%d)", n.Sym, n.Start, n.End)
	}
	if n.IsInterior() {
		return fmt.Sprintf("(p%d·%d %d…%d)", n.Prod.Serial, n.Dot, n.Start, n.End)
	}
	return fmt.Sprintf("(%d %d…%d)", n.Sym, n.Start, n.End)
}

// --- Forest ----------------------------------------------------------------

type symKey struct {
	sym        int
	start, end int
}

type intKey struct {
	serial, dot int
	start, end  int
}

// Forest holds the interned nodes of one parse. It is built by the
// Earley parser and consumed by the reducer and the simplifier.
type Forest struct {
	g        *grammar.Grammar
	symNodes map[symKey]*Node
	intNodes map[intKey]*Node
	root     *Node
}

// NewForest creates an empty forest for a grammar.
func NewForest(g *grammar.Grammar) *Forest {
	return &Forest{
		g:        g,
		symNodes: make(map[symKey]*Node),
		intNodes: make(map[intKey]*Node),
	}
}

// Grammar returns the grammar this forest was parsed with.
func (f *Forest) Grammar() *grammar.Grammar { return f.g }

// Root returns the root symbol node, or nil for an empty forest.
func (f *Forest) Root() *Node { return f.root }

// SetRoot marks the root node of the forest.
func (f *Forest) SetRoot(n *Node) { f.root = n }

// AddTerminal interns the terminal node for (terminal, pos), recording
// the token and matched meaning on first creation.
func (f *Forest) AddTerminal(termIx int, pos int, tok *greina.Tok, m *greina.Meaning) *Node {
	key := symKey{termIx, pos, pos + 1}
	if n, ok := f.symNodes[key]; ok {
		return n
	}
	n := &Node{Sym: termIx, Start: pos, End: pos + 1, Token: tok, Meaning: m}
	f.symNodes[key] = n
	return n
}

// SymbolNode interns the symbol node (sym, start, end).
func (f *Forest) SymbolNode(sym, start, end int) *Node {
	key := symKey{sym, start, end}
	if n, ok := f.symNodes[key]; ok {
		return n
	}
	n := &Node{Sym: sym, Start: start, End: end}
	f.symNodes[key] = n
	return n
}

// IntermediateNode interns the intermediate node (production, dot,
// start, end).
func (f *Forest) IntermediateNode(p *grammar.Production, dot, start, end int) *Node {
	key := intKey{p.Serial, dot, start, end}
	if n, ok := f.intNodes[key]; ok {
		return n
	}
	n := &Node{Prod: p, Dot: dot, Start: start, End: end}
	f.intNodes[key] = n
	return n
}

// AddFamily attaches a packed (left, right) alternative to the node,
// unless an identical alternative is already present.
func (f *Forest) AddFamily(n *Node, p *grammar.Production, left, right *Node) {
	for _, fam := range n.Families {
		if fam.Left == left && fam.Right == right {
			return
		}
	}
	if len(n.Families) == 1 {
		tracer().Debugf("ambiguous node %s gains a second family", n)
	}
	n.Families = append(n.Families, Family{Prod: p, Left: left, Right: right})
}

// NumNodes returns the number of interned nodes.
func (f *Forest) NumNodes() int {
	return len(f.symNodes) + len(f.intNodes)
}

// Combinations counts the number of distinct derivations packed into
// the forest below the root.
func (f *Forest) Combinations() int {
	if f.root == nil {
		return 0
	}
	memo := make(map[*Node]int)
	return countCombinations(f.root, memo)
}

func countCombinations(n *Node, memo map[*Node]int) int {
	if n == nil || n.IsToken() {
		return 1
	}
	if c, ok := memo[n]; ok {
		return c
	}
	if len(n.Families) == 0 {
		memo[n] = 1
		return 1
	}
	memo[n] = 1 // guard against cycles in pathological grammars
	total := 0
	for _, fam := range n.Families {
		total += countCombinations(fam.Left, memo) * countCombinations(fam.Right, memo)
	}
	memo[n] = total
	return total
}
