/*
Package grammar implements the grammar model: nonterminals, terminals,
productions and priorities, plus the matching layer that decides which
grammar terminals a given input token can realize.

Grammars are specified using a builder object. Clients add productions
consisting of nonterminal and terminal names; terminal names carry their
category and variants ("no_et_nf_kvk", "so_1_þf_et_p3") or are literals
("og", 'hafa'). Productions may carry a priority used by the reducer for
tie-breaking; lower values win.

Example:

    b := grammar.NewBuilder("G", "S0")
    b.LHS("S0").N("Setning").End()
    b.LHS("Setning").N("NlFrumlag").N("Sagnliður").End()
    b.LHS("NlFrumlag").T("no_nf").End()
    b.LHS("Sagnliður").T("so_0").End()
    g, err := b.Grammar()

After building, the grammar is frozen: the parser, reducer and
simplifier only ever read it, so a single Grammar value is shared by all
parse jobs in a process.

Terminal matching is a pure relation between a terminal, a token and
(for word tokens) one of the token's lexicon meanings. The lattice
constructed by BuildLattice records, for every input position, which
terminals the token can realize and which meaning justified each match.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'greina.parse'.
func tracer() tracing.Trace {
	return tracing.Select("greina.parse")
}
