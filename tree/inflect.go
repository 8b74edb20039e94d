package tree

import (
	"strings"

	"github.com/ornolfur/greina/lex"
)

// Word categories that decline for case.
var declinable = map[string]bool{
	"kk": true, "kvk": true, "hk": true,
	"lo": true, "fn": true, "pfn": true, "gr": true, "to": true,
}

// InflectionOptions select the target form of a noun phrase.
type InflectionOptions struct {
	Case       string // NF, ÞF, ÞGF or EF
	Singular   bool
	Indefinite bool
}

// Inflect re-inflects the text of the subtree into the requested case
// by looking every declinable leaf up in the lexicon. Leaves that the
// lexicon cannot re-inflect keep their surface form, so the result is
// always a complete phrase.
func (n Node) Inflect(l *lex.Lexicon, opt InflectionOptions) string {
	var words []string
	for _, leaf := range n.Terminals() {
		txt := leaf.node().text
		form := n.inflectLeaf(l, leaf, opt)
		if form == "" {
			form = txt
		}
		if leaf.IsTerminal() && isUpperWord(txt) {
			form = matchCapitalization(txt, form)
		}
		words = append(words, form)
	}
	return strings.Join(words, " ")
}

func (n Node) inflectLeaf(l *lex.Lexicon, leaf Node, opt InflectionOptions) string {
	if !declinable[leaf.Cat()] {
		return ""
	}
	copt := lex.CaseOptions{
		Cat:        leaf.Cat(),
		Lemma:      leaf.Lemma(),
		Singular:   opt.Singular,
		Indefinite: opt.Indefinite,
	}
	meanings := l.LookupCase(leaf.node().text, opt.Case, copt)
	if len(meanings) == 0 {
		return ""
	}
	return meanings[0].Form
}

// Nominative returns the subtree text with the enclosing noun phrase
// re-inflected to nominative case.
func (n Node) Nominative(l *lex.Lexicon) string {
	return n.Inflect(l, InflectionOptions{Case: "NF"})
}

// Accusative returns the subtree text in accusative case.
func (n Node) Accusative(l *lex.Lexicon) string {
	return n.Inflect(l, InflectionOptions{Case: "ÞF"})
}

// Dative returns the subtree text in dative case.
func (n Node) Dative(l *lex.Lexicon) string {
	return n.Inflect(l, InflectionOptions{Case: "ÞGF"})
}

// Genitive returns the subtree text in genitive case.
func (n Node) Genitive(l *lex.Lexicon) string {
	return n.Inflect(l, InflectionOptions{Case: "EF"})
}

// Indefinite returns the subtree text in indefinite nominative form.
func (n Node) Indefinite(l *lex.Lexicon) string {
	return n.Inflect(l, InflectionOptions{Case: "NF", Indefinite: true})
}

// Canonical returns the subtree text in singular indefinite
// nominative form.
func (n Node) Canonical(l *lex.Lexicon) string {
	return n.Inflect(l, InflectionOptions{Case: "NF", Singular: true, Indefinite: true})
}

func isUpperWord(s string) bool {
	if s == "" {
		return false
	}
	r := []rune(s)
	return string(r[0]) != strings.ToLower(string(r[0]))
}

// matchCapitalization carries the capitalization of the original word
// over to the re-inflected form.
func matchCapitalization(orig, form string) string {
	if form == "" {
		return form
	}
	r := []rune(form)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
