/*
Package greina is the root package of a constituency parser for Icelandic.

Greina turns raw text into parse trees. Sentences are tokenized, each
token is matched against the terminals of a hand-written context-free
grammar with the help of a compressed inflectional lexicon, and the
resulting token lattice is parsed with an Earley parser that builds a
shared packed parse forest (SPPF). A scoring reducer then collapses the
forest into a single best derivation, which is rewritten into a
simplified tree with a stable, documented set of nonterminal tags
(S0, S-MAIN, IP, NP-SUBJ, VP, PP, ...).

The root package holds the small shared vocabulary of the module: token
records, meaning records from the lexicon, and input spans. The heavy
lifting is done by the sub-packages:

■ lex: compressed inflectional lexicon (memory-mapped radix trie).

■ grammar: grammar model, terminals and token/terminal matching.

■ earley: Earley chart parser with SPPF construction.

■ sppf: the shared packed parse forest.

■ reduce: forest scoring and reduction to a single derivation.

■ tree: the simplified tree, its queries and serializations.

■ cfg: tabular configuration files (verb frames, prepositions, ...).

■ scanner: tokenizer producing Tok records.

■ job: the sentence/paragraph/job façade.

■ glock: interprocess lock guarding grammar compilation.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package greina
