/*
Package reduce scores a shared packed parse forest and reduces it to a
single best derivation.

Reduction happens in two passes. The first pass scores every
token/terminal match: word class heuristics, variant specificity, verb
argument frames and the preference tables all contribute to a relative
ordering of the terminal options for each token. The second pass walks
the forest bottom-up with memoization; at every packed node the
alternative families are scored (production priority bonus plus the sum
of the children's scores) and all but the best one are culled. After
reduction, every node has exactly one family, i.e. the forest is a tree.

Verb/preposition attachment is scored contextually: inside subtrees
tagged enable_prep_bonus, preposition terminals that click with an
enclosing verb earn a bonus, and subtree scores are deliberately not
shared across different verb contexts.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package reduce

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'greina.parse'.
func tracer() tracing.Trace {
	return tracing.Select("greina.parse")
}
