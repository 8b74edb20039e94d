package grammar

import (
	"fmt"

	"github.com/ornolfur/greina"
)

// Builder assembles a Grammar production by production.
type Builder struct {
	g        *Grammar
	rootName string
	err      error
}

// NewBuilder creates a grammar builder. rootName is the name of the
// start nonterminal (conventionally "S0"); it is created immediately.
func NewBuilder(name, rootName string) *Builder {
	g := &Grammar{
		Name:     name,
		ntByName: make(map[string]*Nonterminal),
		tByName:  make(map[string]Terminal),
		prods:    make(map[int][]*Production),
	}
	b := &Builder{g: g, rootName: rootName}
	g.root = b.nonterminal(rootName)
	return b
}

func (b *Builder) nonterminal(name string) *Nonterminal {
	if nt, ok := b.g.ntByName[name]; ok {
		return nt
	}
	nt := &Nonterminal{
		Name:  name,
		Index: -(len(b.g.nonterminals) + 1),
		tags:  make(map[string]bool),
	}
	b.g.nonterminals = append(b.g.nonterminals, nt)
	b.g.ntByName[name] = nt
	return nt
}

func (b *Builder) terminal(name string) Terminal {
	if t, ok := b.g.tByName[name]; ok {
		return t
	}
	t, err := parseTerminal(name, len(b.g.terminals)+1)
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return nil
	}
	b.g.terminals = append(b.g.terminals, t)
	b.g.tByName[name] = t
	return t
}

// Tag annotates a nonterminal with reducer/simplifier tags.
func (b *Builder) Tag(name string, tags ...string) *Builder {
	nt := b.nonterminal(name)
	for _, t := range tags {
		nt.tags[t] = true
	}
	return b
}

// Score sets the score adjustment of a nonterminal.
func (b *Builder) Score(name string, score int) *Builder {
	b.nonterminal(name).Score = score
	return b
}

// Optional marks a nonterminal as an optional wrapper.
func (b *Builder) Optional(name string) *Builder {
	b.nonterminal(name).Optional = true
	return b
}

// LHS starts a new production for the named nonterminal.
func (b *Builder) LHS(name string) *RuleBuilder {
	return &RuleBuilder{b: b, lhs: b.nonterminal(name)}
}

// Grammar finalizes and returns the grammar.
func (b *Builder) Grammar() (*Grammar, error) {
	if b.err != nil {
		return nil, fmt.Errorf("%w: %v", greina.ErrCorruptGrammar, b.err)
	}
	if len(b.g.prods[b.g.root.Index]) == 0 {
		return nil, fmt.Errorf("%w: root nonterminal %s has no productions",
			greina.ErrCorruptGrammar, b.rootName)
	}
	for _, nt := range b.g.nonterminals {
		if len(b.g.prods[nt.Index]) == 0 {
			return nil, fmt.Errorf("%w: nonterminal %s has no productions",
				greina.ErrCorruptGrammar, nt.Name)
		}
	}
	b.g.computeNullable()
	tracer().Infof("built %s", b.g)
	return b.g, nil
}

// RuleBuilder builds a single production.
type RuleBuilder struct {
	b    *Builder
	lhs  *Nonterminal
	rhs  []int
	prio int
}

// N appends a nonterminal to the right-hand side.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.rhs = append(rb.rhs, rb.b.nonterminal(name).Index)
	return rb
}

// T appends a terminal to the right-hand side. The name is parsed into
// a category/variant terminal or, when quoted, a literal terminal.
func (rb *RuleBuilder) T(name string) *RuleBuilder {
	t := rb.b.terminal(name)
	if t != nil {
		rb.rhs = append(rb.rhs, t.Index())
	}
	return rb
}

// Prio sets the production priority; lower values win ties.
func (rb *RuleBuilder) Prio(p int) *RuleBuilder {
	rb.prio = p
	return rb
}

// End finalizes the production and adds it to the grammar.
func (rb *RuleBuilder) End() *Production {
	p := &Production{
		Serial:   len(rb.b.g.allProds),
		LHS:      rb.lhs,
		rhs:      rb.rhs,
		Priority: rb.prio,
	}
	rb.b.g.allProds = append(rb.b.g.allProds, p)
	rb.b.g.prods[rb.lhs.Index] = append(rb.b.g.prods[rb.lhs.Index], p)
	return p
}

// Epsilon finalizes the production as an epsilon production.
func (rb *RuleBuilder) Epsilon() *Production {
	rb.rhs = nil
	return rb.End()
}
