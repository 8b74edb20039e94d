package tree

import (
	"strings"

	"github.com/ornolfur/greina"
	"github.com/ornolfur/greina/grammar"
	"github.com/ornolfur/greina/sppf"
)

// FromForest builds the simplified tree from a reduced parse forest.
// The forest must have been run through the reducer first, so that
// every packed node carries exactly one family.
func FromForest(f *sppf.Forest) *Tree {
	s := &simplifier{g: f.Grammar(), b: newBuilder()}
	f.Walk(s)
	t := s.b.tree()
	tracer().Debugf("simplified tree has %d nodes", t.NumNodes())
	return t
}

// simplifier is the forest listener feeding the tree builder.
type simplifier struct {
	g *grammar.Grammar
	b *builder
}

func (s *simplifier) EnterNonterminal(n *sppf.Node, level int) bool {
	nt := s.g.Nonterminal(n.Sym)
	base := nt.Name
	if nt.Optional || n.IsEmpty() {
		// Optional wrappers and empty derivations leave no trace
		base = ""
	}
	s.b.pushNonterminal(base)
	return true
}

func (s *simplifier) ExitNonterminal(n *sppf.Node, level int) {
	s.b.popNonterminal()
}

func (s *simplifier) Token(n *sppf.Node, level int) {
	s.b.pushTerminal(describeToken(s.g, n))
}

// describeToken builds the terminal leaf for a token node: the
// descriptor (terminal category plus significant variants), the
// all-variants descriptor extended from the winning meaning, the lemma
// and the word category.
func describeToken(g *grammar.Grammar, n *sppf.Node) *bnode {
	t := g.Terminal(n.Sym)
	tok := n.Token
	d := &bnode{
		kind:     tok.Kind,
		text:     tok.Text,
		tokIndex: tok.Index,
		tok:      tok,
	}
	if tok.Kind == greina.PUNCTUATION {
		d.text = tok.Norm
		d.terminal = ""
		d.lemma = d.text
		return d
	}
	m := n.Meaning
	switch {
	case t.IsLiteral():
		// Literal terminals are described by their category if one was
		// annotated, else by the matched meaning, else by the text
		switch {
		case m != nil:
			d.terminal = descriptorCat(m.Cat)
			d.cat = m.Cat
			d.lemma = m.Lemma
		case t.First() != "":
			d.terminal = descriptorCat(t.First())
			d.cat = t.First()
			d.lemma = tok.Lower()
		}
		d.allVars = d.terminal
	default:
		d.terminal = t.Name()
		if m != nil {
			d.cat = m.Cat
			d.lemma = m.Lemma
			d.allVars = allVariants(t, m)
		} else {
			d.cat = t.First()
			d.lemma = tok.Text
			d.allVars = t.Name()
		}
	}
	if d.lemma == "" {
		d.lemma = tok.Text
	}
	return d
}

// descriptorCat maps a meaning category to a descriptor category: the
// noun genders collapse to "no".
func descriptorCat(cat string) string {
	switch cat {
	case "kk", "kvk", "hk":
		return "no"
	}
	return cat
}

// allVariants extends the terminal descriptor with every variant
// derivable from the meaning's inflection (and, for nouns, the gender
// carried by the word class itself).
func allVariants(t grammar.Terminal, m *greina.Meaning) string {
	have := make(map[string]bool)
	parts := []string{descriptorCat(t.First())}
	for i := 0; i < t.NumVariants(); i++ {
		v := t.Variant(i)
		parts = append(parts, v)
		have[v] = true
	}
	var extra []string
	for _, v := range grammar.MeaningVariants(m.Inflection) {
		if !have[v] {
			extra = append(extra, v)
			have[v] = true
		}
	}
	switch m.Cat {
	case "kk", "kvk", "hk":
		if !have[m.Cat] {
			extra = append(extra, m.Cat)
		}
	}
	if len(extra) > 0 {
		parts = append(parts, extra...)
	}
	return strings.Join(parts, "_")
}
