/*
Package job orchestrates the parsing pipeline: paragraphs are split
into sentences, every sentence is tokenized, matched into a token
lattice, parsed into a packed forest, reduced to the best derivation
and simplified into the public tree.

An Engine holds the immutable shared state (lexicon, grammar, scoring
settings) and is safe for concurrent use; every Job and Sentence owns
its per-sentence state exclusively. Sentences are yielded in input
order. A Job aggregates statistics: sentence and parse counts,
cumulative parse time, and the weighted geometric mean of the
per-sentence ambiguity.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package job

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'greina.job'.
func tracer() tracing.Trace {
	return tracing.Select("greina.job")
}
