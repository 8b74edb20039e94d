/*
Package sppf implements a shared packed parse forest.

A packed parse forest re-uses parse tree nodes between different parse
trees. For an unambiguous parse, the forest degrades to a single tree;
ambiguous grammars produce nodes with more than one family of children,
each family representing one alternative derivation of the node's span.
The forest is a DAG: common subtrees are shared between alternatives.

Nodes are either symbol nodes, identified by (symbol, start, end), or
intermediate nodes, identified by (production, dot, start, end), which
keep the forest binarized. Both kinds are interned, so building the
same node twice yields the same node with the families merged.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package sppf

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'greina.parse'.
func tracer() tracing.Trace {
	return tracing.Select("greina.parse")
}
