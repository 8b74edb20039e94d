/*
Package lex implements the compressed inflectional lexicon.

The lexicon is a single binary image, normally memory-mapped, holding
several million inflected word forms together with their meanings. The
image starts with a 16-byte signature followed by five 32-bit
little-endian offsets locating the cross-referenced regions:

	mappings   chains of (stem index, meaning index) words per form
	forms      a packed radix trie over all word forms
	stems      lemma strings, with optional case-variant sets
	meanings   word class / subcategory / inflection records
	alphabet   the byte-ordered Latin-1 alphabet of the trie

Trie nodes are packed into a stream of 32-bit words. The header word of
a node uses bit 31 for the single-character flag, bit 30 for the
childless flag, bits 23-29 for the alphabet index of single-character
nodes, and bits 0-22 for the value. A value of all-ones (0x7FFFFF) marks
an interim node carrying no word form; any other value is the index of
the form's first mapping word. Child arrays are sorted by the byte
ordering of the alphabet, so lookup does a binary search at each node.

All lookups are pure functions over the immutable byte buffer and may
run concurrently from any number of goroutines. Close releases the
mapping explicitly; the package never re-initializes a closed lexicon
behind the caller's back.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package lex

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'greina.lex'.
func tracer() tracing.Trace {
	return tracing.Select("greina.lex")
}
