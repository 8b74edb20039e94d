/*
Package tree implements the simplified parse tree: the reader-facing
output of the parser.

A reduced derivation still speaks the grammar's internal language of
several hundred nonterminals. The simplifier rewrites it into a
condensed tree over a small, stable tag vocabulary (S0, S-MAIN, IP,
NP-SUBJ, VP, PP, ...): naming-only wrappers are collapsed, agreement
variants are folded together, and list helper nonterminals disappear.
Terminal leaves carry a descriptor string naming the terminal category
and its significant variants, plus an extended descriptor including all
features derivable from the winning lexicon meaning.

Tree nodes live in an arena indexed by integers; a Node value is a
cheap cursor into the arena. Queries include tag lookup with partial
matching ("NP" finds "NP-SUBJ"), lemma and word-class extraction, the
two documented serializations (indented view and flat bracket form),
and noun-phrase re-inflection through the lexicon. A small pattern
language over trees is layered on top in match.go.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package tree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'greina.parse'.
func tracer() tracing.Trace {
	return tracing.Select("greina.parse")
}
