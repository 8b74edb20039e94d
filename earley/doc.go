/*
Package earley implements an Earley parser with SPPF construction.

The parser handles all context-free grammars, irrespective of
ambiguity, recursion (left/middle/right) or nullability; the grammar
does not need to be normalized in any way. It follows the improved
version of Earley's algorithm described by Scott & Johnstone, which
builds a binarized shared packed parse forest during recognition while
keeping the worst case at cubic time in the input length.

For further information see J. Earley, "An efficient context-free
parsing algorithm", Communications of the ACM, 13:2:94-102, 1970, and
Elizabeth Scott, "SPPF-style parsing from Earley recognisers",
Electronic Notes in Theoretical Computer Science 203 (2008).

Input to the parser is not a token sequence but a token lattice: for
every input position, the set of grammar terminals the token at that
position may realize (see grammar.BuildLattice). A parse either
produces a forest rooted in the grammar's start symbol spanning the
whole input, or fails with the index of the token at which the chart
stalled. Failure is an ordinary return value, not a panic.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package earley

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'greina.parse'.
func tracer() tracing.Trace {
	return tracing.Select("greina.parse")
}
