package tree

import (
	"strings"

	"github.com/ornolfur/greina"
)

// bnode is the mutable node representation used while building; the
// finished tree is frozen into the arena afterwards.
type bnode struct {
	tag      string
	name     string
	children []*bnode

	kind     greina.TokKind
	terminal string
	allVars  string
	text     string
	lemma    string
	cat      string
	tokIndex int
	tok      *greina.Tok
}

// builder condenses a derivation into the simplified tree, applying
// the nonterminal map, the id map's scope suppression (subject_to) and
// override collapsing, and the terminal wrapper map.
type builder struct {
	sentinel *bnode
	stack    []*bnode
	scope    []string
	pushed   []int
}

func newBuilder() *builder {
	s := &bnode{}
	return &builder{
		sentinel: s,
		stack:    []*bnode{s},
		scope:    []string{""},
	}
}

func (b *builder) top() *bnode { return b.stack[len(b.stack)-1] }

// pushTerminal adds a terminal leaf, possibly wrapped in a singleton
// nonterminal per the terminal map (so -> VP, fs -> P, ...).
func (b *builder) pushTerminal(d *bnode) {
	cat := d.terminal
	if ix := strings.IndexByte(cat, '_'); ix >= 0 {
		cat = cat[:ix]
	}
	if mapped, ok := terminalMap[cat]; ok && d.kind != greina.PUNCTUATION {
		wrapper := &bnode{tag: mapped, name: idMap[mapped].name, children: []*bnode{d}}
		b.top().children = append(b.top().children, wrapper)
		return
	}
	b.top().children = append(b.top().children, d)
}

// pushNonterminal enters a grammar nonterminal. An empty base marks an
// insignificant node (interior or optional) that leaves no trace.
func (b *builder) pushNonterminal(base string) {
	b.pushed = append(b.pushed, 0)
	if base == "" {
		return
	}
	mapped, ok := ntMap[base]
	if !ok {
		return
	}
	for _, tag := range mapped {
		info := idMap[tag]
		if info.subjectTo != nil && info.subjectTo[b.scope[len(b.scope)-1]] {
			// Already within a scope this tag is subject to
			continue
		}
		node := &bnode{tag: tag, name: info.name}
		b.top().children = append(b.top().children, node)
		b.stack = append(b.stack, node)
		b.scope = append(b.scope, tag)
		b.pushed[len(b.pushed)-1]++
	}
}

// popNonterminal leaves a grammar nonterminal, unwinding whatever
// pushNonterminal pushed for it.
func (b *builder) popNonterminal() {
	n := b.pushed[len(b.pushed)-1]
	b.pushed = b.pushed[:len(b.pushed)-1]
	for i := 0; i < n; i++ {
		b.popOne()
	}
}

func (b *builder) popOne() {
	node := b.top()
	b.stack = b.stack[:len(b.stack)-1]
	b.scope = b.scope[:len(b.scope)-1]
	if len(node.children) != 1 {
		return
	}
	ch0 := node.children[0]
	if ch0.tag == "" {
		return
	}
	collapseChild := ch0.tag == node.tag || ch0.tag == idMap[node.tag].overrides
	if collapseChild {
		// Eliminate one level: the grandchildren move up
		node.children = ch0.children
		return
	}
	if idMap[ch0.tag].overrides == node.tag {
		// The child subsumes the parent: replace the parent
		siblings := b.top().children
		siblings[len(siblings)-1] = ch0
	}
}

// tree freezes the built structure into a Tree arena.
func (b *builder) tree() *Tree {
	t := &Tree{}
	if len(b.sentinel.children) == 0 {
		t.root = -1
		return t
	}
	t.root = freeze(t, b.sentinel.children[0], -1)
	return t
}

func freeze(t *Tree, n *bnode, parent int32) int32 {
	ix := int32(len(t.nodes))
	t.nodes = append(t.nodes, tnode{
		parent:   parent,
		tag:      n.tag,
		name:     n.name,
		kind:     n.kind,
		terminal: n.terminal,
		allVars:  n.allVars,
		text:     n.text,
		lemma:    n.lemma,
		cat:      n.cat,
		tokIndex: n.tokIndex,
		tok:      n.tok,
	})
	for _, c := range n.children {
		cix := freeze(t, c, ix)
		t.nodes[ix].children = append(t.nodes[ix].children, cix)
	}
	return ix
}
