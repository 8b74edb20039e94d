package tree

import (
	"strings"

	"github.com/ornolfur/greina"
)

// Conjunctions written as "st" inside multi-word terminal spans.
var conjunctions = map[string]bool{"og": true, "eða": true}

// View returns an indented, one-node-per-line rendering of the
// subtree.
func (n Node) View() string {
	var b strings.Builder
	n.view(&b, 0)
	return b.String()
}

func (n Node) view(b *strings.Builder, level int) {
	indent := ""
	if level > 0 {
		indent = strings.Repeat("  ", level-1) + "+-"
	}
	if !n.IsTerminal() {
		b.WriteString(indent)
		b.WriteString(n.Tag())
		for _, c := range n.Children() {
			b.WriteString("\n")
			c.view(b, level+1)
		}
		return
	}
	if n.Kind() == greina.PUNCTUATION {
		b.WriteString(indent)
		b.WriteString("'" + n.node().text + "'")
		return
	}
	b.WriteString(indent)
	b.WriteString(n.Terminal())
	b.WriteString(": '")
	b.WriteString(n.node().text)
	b.WriteString("'")
}

// Flat returns the flat bracket serialization of the subtree: tags
// open a span, "/TAG" closes it, and leaves appear as lower-case
// terminal descriptors; punctuation appears as "p".
func (n Node) Flat() string {
	return n.flat(func(leaf Node) string { return leaf.Terminal() })
}

// FlatWithAllVariants is Flat with the extended terminal descriptors.
func (n Node) FlatWithAllVariants() string {
	return n.flat(func(leaf Node) string { return leaf.AllVariants() })
}

func (n Node) flat(desc func(Node) string) string {
	var parts []string
	var rec func(Node)
	rec = func(c Node) {
		if c.IsTerminal() {
			parts = append(parts, flatTerminal(c, desc))
			return
		}
		parts = append(parts, c.Tag())
		for _, ch := range c.Children() {
			rec(ch)
		}
		parts = append(parts, "/"+c.Tag())
	}
	rec(n)
	return strings.Join(parts, " ")
}

func flatTerminal(leaf Node, desc func(Node) string) string {
	if leaf.Kind() == greina.PUNCTUATION {
		return "p"
	}
	d := desc(leaf)
	words := strings.Fields(leaf.node().text)
	if len(words) <= 1 {
		return d
	}
	// Multi-word span: repeat the descriptor per component word, with
	// conjunctions rendered as "st"
	out := make([]string, len(words))
	for i, w := range words {
		if conjunctions[strings.ToLower(w)] {
			out[i] = "st"
		} else {
			out[i] = d
		}
	}
	return strings.Join(out, " ")
}

// FlatTags returns the multiset of tags and terminal descriptors
// appearing in the flat form, for structural comparisons.
func (n Node) FlatTags() []string {
	var tags []string
	for _, f := range strings.Fields(n.Flat()) {
		if !strings.HasPrefix(f, "/") {
			tags = append(tags, f)
		}
	}
	return tags
}
