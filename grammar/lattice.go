package grammar

import (
	"github.com/ornolfur/greina"
	"github.com/ornolfur/greina/cfg"
)

// Match is one entry of the token lattice: a terminal the token can
// realize, together with the meaning that justified the match (nil for
// typed tokens and for surface literals without a category).
type Match struct {
	Terminal Terminal
	Meaning  *greina.Meaning
}

// Lattice records, for each input position, the terminal matches of the
// token at that position.
type Lattice [][]Match

// BuildLattice matches every token against every terminal of the
// grammar. Matching is a pure relation; the lattice is rebuilt per
// sentence while grammar and settings are shared.
func BuildLattice(g *Grammar, toks []*greina.Tok, set *cfg.Settings) Lattice {
	lattice := make(Lattice, len(toks))
	for i, tok := range toks {
		var matches []Match
		for _, t := range g.terminals {
			if m, ok := t.Matches(tok, set); ok {
				matches = append(matches, Match{Terminal: t, Meaning: m})
			}
		}
		lattice[i] = matches
		tracer().Debugf("lattice[%d] %v: %d terminal options", i, tok, len(matches))
	}
	return lattice
}

// TerminalAt returns the lattice match for a specific terminal index at
// position i, if any.
func (l Lattice) TerminalAt(i int, termIx int) (Match, bool) {
	for _, m := range l[i] {
		if m.Terminal.Index() == termIx {
			return m, true
		}
	}
	return Match{}, false
}
