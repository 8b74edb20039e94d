/*
Package cfg loads the tabular configuration files that tune terminal
matching and forest scoring: verb argument frames, verb subjects,
prepositions, adjective predicates, static and ambiguous phrases, and
terminal/noun preference tables.

The files are plain text with one record per line and whitespace
separated columns; lines starting with '#' are comments. The loaded
tables are collected into a Settings value that is passed explicitly to
the matcher and the reducer. There is no global configuration state.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package cfg

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'greina.parse'.
func tracer() tracing.Trace {
	return tracing.Select("greina.parse")
}
