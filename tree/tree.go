package tree

import (
	"strings"

	"github.com/ornolfur/greina"
)

// Tree is a simplified parse tree. Nodes are stored in an arena and
// referenced by integer indices; Node values are cheap cursors into
// the arena. A Tree is immutable once built.
type Tree struct {
	nodes []tnode
	root  int32
}

type tnode struct {
	parent   int32
	children []int32

	// Nonterminal payload; tag is "" for terminals
	tag  string
	name string

	// Terminal payload
	kind     greina.TokKind
	terminal string
	allVars  string
	text     string
	lemma    string
	cat      string
	tokIndex int
	tok      *greina.Tok
}

// Node is a cursor to one node of a Tree.
type Node struct {
	t  *Tree
	ix int32
}

// Root returns the root node.
func (t *Tree) Root() Node {
	return Node{t: t, ix: t.root}
}

// NumNodes returns the arena size.
func (t *Tree) NumNodes() int { return len(t.nodes) }

func (n Node) node() *tnode { return &n.t.nodes[n.ix] }

// IsTerminal reports whether the node is a terminal leaf.
func (n Node) IsTerminal() bool { return n.node().tag == "" }

// Tag returns the public tag of a nonterminal node, or "".
func (n Node) Tag() string { return n.node().tag }

// Name returns the human-readable name of a nonterminal node.
func (n Node) Name() string { return n.node().name }

// Terminal returns the terminal descriptor (category plus significant
// variants) of a leaf, or "".
func (n Node) Terminal() string { return n.node().terminal }

// AllVariants returns the terminal descriptor extended with every
// feature derivable from the winning meaning.
func (n Node) AllVariants() string { return n.node().allVars }

// Cat returns the word category of a leaf (the lexicon word class,
// e.g. kk/kvk/hk for nouns).
func (n Node) Cat() string { return n.node().cat }

// Lemma returns the lemma of a leaf, or "".
func (n Node) Lemma() string { return n.node().lemma }

// Kind returns the token kind of a leaf.
func (n Node) Kind() greina.TokKind { return n.node().kind }

// TokenIndex returns the sentence token index of a leaf, or -1.
func (n Node) TokenIndex() int {
	if !n.IsTerminal() {
		return -1
	}
	return n.node().tokIndex
}

// Token returns the underlying token of a leaf, or nil.
func (n Node) Token() *greina.Tok { return n.node().tok }

// NumChildren returns the number of children.
func (n Node) NumChildren() int { return len(n.node().children) }

// Child returns the i-th child.
func (n Node) Child(i int) Node {
	return Node{t: n.t, ix: n.node().children[i]}
}

// Children returns all children, in order.
func (n Node) Children() []Node {
	cs := n.node().children
	out := make([]Node, len(cs))
	for i, c := range cs {
		out[i] = Node{t: n.t, ix: c}
	}
	return out
}

// Parent returns the parent node; the root's parent is the root.
func (n Node) Parent() Node {
	p := n.node().parent
	if p < 0 {
		p = n.ix
	}
	return Node{t: n.t, ix: p}
}

// Descendants visits the subtree below n in pre-order, n excluded.
func (n Node) Descendants(visit func(Node) bool) {
	var rec func(Node) bool
	rec = func(c Node) bool {
		for _, ch := range c.Children() {
			if !visit(ch) {
				return false
			}
			if !rec(ch) {
				return false
			}
		}
		return true
	}
	rec(n)
}

// MatchTag reports whether the node's tag matches the given pattern
// with partial matching: "NP" matches "NP-SUBJ", but not vice versa.
func (n Node) MatchTag(pattern string) bool {
	tag := n.Tag()
	if tag == "" {
		return false
	}
	if tag == pattern {
		return true
	}
	return strings.HasPrefix(tag, pattern+"-")
}

// ByTag returns all nodes of the subtree (n included) whose tag
// matches the pattern, in pre-order.
func (n Node) ByTag(pattern string) []Node {
	var out []Node
	if n.MatchTag(pattern) {
		out = append(out, n)
	}
	n.Descendants(func(c Node) bool {
		if c.MatchTag(pattern) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// FirstByTag returns the first node matching the pattern, if any.
func (n Node) FirstByTag(pattern string) (Node, bool) {
	matches := n.ByTag(pattern)
	if len(matches) == 0 {
		return Node{}, false
	}
	return matches[0], true
}

// Terminals returns the terminal leaves of the subtree in input order.
func (n Node) Terminals() []Node {
	var out []Node
	if n.IsTerminal() {
		return []Node{n}
	}
	n.Descendants(func(c Node) bool {
		if c.IsTerminal() {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Text returns the surface text of the subtree: tokens are
// space-separated, except that no space is put before any punctuation
// token (opening brackets and quotes included).
func (n Node) Text() string {
	var b strings.Builder
	for _, leaf := range n.Terminals() {
		txt := leaf.node().text
		if b.Len() > 0 && leaf.Kind() != greina.PUNCTUATION {
			b.WriteString(" ")
		}
		b.WriteString(txt)
	}
	return b.String()
}

// Lemmas returns the lemmas of all leaves, in input order.
func (n Node) Lemmas() []string {
	var out []string
	for _, leaf := range n.Terminals() {
		out = append(out, leaf.Lemma())
	}
	return out
}

// Nouns returns the lemmas of all noun leaves.
func (n Node) Nouns() []string {
	return n.lemmasOfCat(func(leaf Node) bool {
		switch leaf.Cat() {
		case "kk", "kvk", "hk":
			return true
		}
		return false
	})
}

// Verbs returns the lemmas of all verb leaves.
func (n Node) Verbs() []string {
	return n.lemmasOfCat(func(leaf Node) bool { return leaf.Cat() == "so" })
}

// Persons returns the names of all person leaves.
func (n Node) Persons() []string {
	var out []string
	for _, leaf := range n.Terminals() {
		if leaf.Kind() == greina.PERSON {
			out = append(out, leaf.node().text)
		}
	}
	return out
}

// Entities returns the names of all entity leaves.
func (n Node) Entities() []string {
	var out []string
	for _, leaf := range n.Terminals() {
		if leaf.Kind() == greina.ENTITY || leaf.Kind() == greina.COMPANY {
			out = append(out, leaf.node().text)
		}
	}
	return out
}

func (n Node) lemmasOfCat(pred func(Node) bool) []string {
	var out []string
	for _, leaf := range n.Terminals() {
		if pred(leaf) {
			out = append(out, leaf.Lemma())
		}
	}
	return out
}

// Variants returns the significant variants of a terminal leaf.
func (n Node) Variants() []string {
	parts := strings.Split(n.Terminal(), "_")
	if len(parts) <= 1 {
		return nil
	}
	return parts[1:]
}
