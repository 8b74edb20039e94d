package grammar

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// Nonterminal is a grammar nonterminal. Nonterminals have negative
// indices; terminals have positive ones. Index 0 is not used.
type Nonterminal struct {
	Name  string
	Index int // negative
	// Tags annotate the nonterminal for the reducer and simplifier
	// (apply_length_bonus, enable_prep_bonus, begin_prep_scope, ...).
	tags map[string]bool
	// Score is a per-nonterminal score adjustment applied by the
	// reducer to every subtree rooted in this nonterminal.
	Score int
	// Optional marks nonterminals that may derive epsilon by design;
	// the simplifier drops them from the condensed tree.
	Optional bool
}

// HasTag reports whether the nonterminal carries the given tag.
func (nt *Nonterminal) HasTag(tag string) bool {
	return nt.tags[tag]
}

// IsNounPhrase reports whether this nonterminal heads a noun phrase
// (its name starts with "Nl").
func (nt *Nonterminal) IsNounPhrase() bool {
	return strings.HasPrefix(nt.Name, "Nl")
}

func (nt *Nonterminal) String() string {
	return nt.Name
}

// Production is a grammar production LHS -> RHS. The RHS is stored as a
// list of symbol indices: negative for nonterminals, positive for
// terminals. Productions carry a priority; among the alternatives of a
// nonterminal, a lower priority value wins ties during reduction.
type Production struct {
	Serial   int // global production number, 0-based
	LHS      *Nonterminal
	rhs      []int
	Priority int
}

// Len returns the number of symbols on the right-hand side.
func (p *Production) Len() int { return len(p.rhs) }

// At returns the symbol index at RHS position i, or 0 if out of range.
func (p *Production) At(i int) int {
	if i < 0 || i >= len(p.rhs) {
		return 0
	}
	return p.rhs[i]
}

// IsEpsilon reports whether this is an epsilon production.
func (p *Production) IsEpsilon() bool { return len(p.rhs) == 0 }

// Grammar is the frozen in-memory grammar: the input to the parser.
type Grammar struct {
	Name         string
	root         *Nonterminal
	nonterminals []*Nonterminal // entry i has index -(i+1)
	terminals    []Terminal     // entry i has index i+1
	ntByName     map[string]*Nonterminal
	tByName      map[string]Terminal
	prods        map[int][]*Production // productions by LHS index
	allProds     []*Production         // by serial
	nullable     map[int]bool          // nonterminal index -> derives epsilon
}

// Root returns the start nonterminal.
func (g *Grammar) Root() *Nonterminal { return g.root }

// Nonterminal returns the nonterminal with the given (negative) index.
func (g *Grammar) Nonterminal(ix int) *Nonterminal {
	return g.nonterminals[-ix-1]
}

// Terminal returns the terminal with the given (positive) index.
func (g *Grammar) Terminal(ix int) Terminal {
	return g.terminals[ix-1]
}

// NonterminalByName looks a nonterminal up by name, or nil.
func (g *Grammar) NonterminalByName(name string) *Nonterminal {
	return g.ntByName[name]
}

// TerminalByName looks a terminal up by name, or nil.
func (g *Grammar) TerminalByName(name string) Terminal {
	return g.tByName[name]
}

// Terminals returns all terminals of the grammar. Callers must not
// modify the returned slice.
func (g *Grammar) Terminals() []Terminal { return g.terminals }

// Production returns the production with the given serial number.
func (g *Grammar) Production(serial int) *Production {
	return g.allProds[serial]
}

// NumProductions returns the number of productions.
func (g *Grammar) NumProductions() int { return len(g.allProds) }

// ProductionsFor enumerates the productions with the given left-hand
// side nonterminal.
func (g *Grammar) ProductionsFor(nt *Nonterminal) []*Production {
	return g.prods[nt.Index]
}

// IsNullable reports whether the nonterminal with the given index can
// derive the empty string.
func (g *Grammar) IsNullable(ix int) bool {
	return g.nullable[ix]
}

// SymbolName returns a printable name for a symbol index.
func (g *Grammar) SymbolName(ix int) string {
	if ix < 0 {
		return g.Nonterminal(ix).Name
	}
	if ix > 0 {
		return g.Terminal(ix).Name()
	}
	return "?"
}

// EachNonterminal applies a mapper function to all nonterminals,
// sorted by index.
func (g *Grammar) EachNonterminal(mapper func(nt *Nonterminal) interface{}) []interface{} {
	set := treeset.NewWith(func(a, b interface{}) int {
		return utils.IntComparator(a.(*Nonterminal).Index, b.(*Nonterminal).Index)
	})
	for _, nt := range g.nonterminals {
		set.Add(nt)
	}
	var values []interface{}
	it := set.Iterator()
	for it.Next() {
		if v := mapper(it.Value().(*Nonterminal)); v != nil {
			values = append(values, v)
		}
	}
	return values
}

// Dump logs the grammar's productions through the tracer, for
// debugging purposes.
func (g *Grammar) Dump() {
	tracer().Debugf("grammar %s, root=%s:", g.Name, g.root.Name)
	rules := arraylist.New()
	for _, p := range g.allProds {
		rules.Add(p)
	}
	it := rules.Iterator()
	for it.Next() {
		p := it.Value().(*Production)
		var b strings.Builder
		for _, ix := range p.rhs {
			b.WriteString(" ")
			b.WriteString(g.SymbolName(ix))
		}
		tracer().Debugf("%4d: [%s] ::= [%s]", p.Serial, p.LHS.Name, strings.TrimSpace(b.String()))
	}
}

// computeNullable finds all nonterminals that derive epsilon, by
// fixed-point iteration.
func (g *Grammar) computeNullable() {
	g.nullable = make(map[int]bool)
	for changed := true; changed; {
		changed = false
		for _, p := range g.allProds {
			if g.nullable[p.LHS.Index] {
				continue
			}
			allNullable := true
			for _, ix := range p.rhs {
				if ix > 0 || !g.nullable[ix] {
					allNullable = false
					break
				}
			}
			if allNullable {
				g.nullable[p.LHS.Index] = true
				changed = true
			}
		}
	}
}

func (g *Grammar) String() string {
	return fmt.Sprintf("grammar %s (%d nonterminals, %d terminals, %d productions)",
		g.Name, len(g.nonterminals), len(g.terminals), len(g.allProds))
}
