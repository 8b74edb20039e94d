package reduce

import (
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/ornolfur/greina"
	"github.com/ornolfur/greina/grammar"
	"github.com/ornolfur/greina/sppf"
)

// Subcategories marking person and entity names in the lexicon.
var namedEntityFl = map[string]bool{
	"ism": true, "erm": true, "gæl": true, "nafn": true,
	"föð": true, "móð": true, "ætt": true, "entity": true,
}

// terminalScores holds the first-pass scores: position -> terminal
// index -> score.
type terminalScores map[int]map[int]int

// findOptions collects, over the whole forest DAG, the terminals that
// can match the token at each position.
func findOptions(f *sppf.Forest) (map[int]map[int]*sppf.Node, map[int]*greina.Tok) {
	finals := make(map[int]map[int]*sppf.Node)
	tokens := make(map[int]*greina.Tok)
	visited := make(map[*sppf.Node]bool)
	var visit func(n *sppf.Node)
	visit = func(n *sppf.Node) {
		if n == nil || visited[n] {
			return
		}
		visited[n] = true
		if n.IsToken() {
			if finals[n.Start] == nil {
				finals[n.Start] = make(map[int]*sppf.Node)
			}
			finals[n.Start][n.Sym] = n
			tokens[n.Start] = n.Token
			return
		}
		for _, fam := range n.Families {
			visit(fam.Left)
			visit(fam.Right)
		}
	}
	visit(f.Root())
	return finals, tokens
}

// calcTerminalScores computes the relative score of every terminal
// option for every token. The numbers implement an ordering; their
// absolute values only matter relative to each other.
func (r *Reducer) calcTerminalScores(f *sppf.Forest) terminalScores {
	g := f.Grammar()
	finals, tokens := findOptions(f)
	scores := make(terminalScores)
	for i, options := range finals {
		sc := make(map[int]int, len(options))
		for termIx := range options {
			sc[termIx] = 0
		}
		scores[i] = sc
	}
	positions := maps.Keys(finals)
	slices.Sort(positions)
	for _, i := range positions {
		options := finals[i]
		sc := scores[i]
		if len(options) <= 1 {
			// No ambiguity to resolve here
			continue
		}
		tok := tokens[i]
		txt := tok.Lower()
		txtLast := txt
		composite := false
		if tok.HasMeanings() && strings.Contains(tok.Meanings[0].Lemma, "-") {
			composite = true
			parts := strings.Split(tok.Meanings[0].Lemma, "-")
			txtLast = parts[len(parts)-1]
		}
		// Preference table: promote 'better' categories over 'worse'
		// ones, unless all options share their category anyway
		sameFirst := true
		var first string
		for termIx := range options {
			cat := g.Terminal(termIx).First()
			if first == "" {
				first = cat
			} else if cat != first {
				sameFirst = false
			}
		}
		if !sameFirst {
			r.applyPreferences(g, txtLast, options, sc)
		}

		for termIx, node := range options {
			t := g.Terminal(termIx)
			if t.IsLiteral() {
				// Bonus for exact or semi-exact literal matches
				sc[termIx] += 2
			}
			switch t.First() {
			case "ao", "eo":
				sc[termIx]--
			case "no":
				r.scoreNoun(t, tok, txtLast, sc, termIx)
			case "fs":
				r.scorePreposition(t, txt, sc, termIx)
			case "lo":
				r.scoreAdjective(t, tok, txt, composite, sc, termIx)
			case "so":
				r.scoreVerb(g, t, tok, node, i, f, finals, scores, sc, termIx)
			case "tala":
				if t.HasVariant("ef") {
					// Avoid reading plain numbers as possessive phrases
					sc[termIx] -= 4
				}
			case "person":
				if t.HasVariant("nf") {
					// Prefer person names in the nominative
					sc[termIx] += 2
				}
			case "sérnafn":
				if !tok.HasMeanings() {
					sc[termIx] += 12
				} else {
					sc[termIx] -= 10
					if i == 0 {
						sc[termIx] -= 6
					}
				}
			case "fyrirtæki":
				sc[termIx] += 24
			case "st":
				if txt == "sem" {
					// Discourage "sem" as a pure conjunction
					sc[termIx] -= 6
				}
			case "abfn":
				if t.NumVariants() > 1 {
					sc[termIx] += 6
				} else {
					sc[termIx] += 2
				}
			case "gr":
				// Separate definite article rather than pronoun
				sc[termIx] += 2
			case "nhm":
				sc[termIx] += 4
			}
		}
	}
	return scores
}

func (r *Reducer) applyPreferences(g *grammar.Grammar, txtLast string,
	options map[int]*sppf.Node, sc map[int]int) {
	//
	prefs := r.set.Preferences[txtLast]
	if len(prefs) == 0 {
		return
	}
	adjWorse := make(map[int]int)
	adjBetter := make(map[int]int)
	contains := func(list []string, s string) bool {
		for _, x := range list {
			if x == s {
				return true
			}
		}
		return false
	}
	for _, pref := range prefs {
		for wIx := range options {
			wt := g.Terminal(wIx)
			if !contains(pref.Worse, wt.First()) {
				continue
			}
			for bIx := range options {
				if bIx == wIx {
					continue
				}
				bt := g.Terminal(bIx)
				if !contains(pref.Better, bt.First()) {
					continue
				}
				adjW := -2 * pref.Factor
				adjB := 4 * pref.Factor
				if bt.IsLiteral() {
					// Literal terminals are promoted more aggressively
					adjB = 6 * pref.Factor
				}
				if adjW < adjWorse[wIx] {
					adjWorse[wIx] = adjW
				}
				if adjB > adjBetter[bIx] {
					adjBetter[bIx] = adjB
				}
			}
		}
	}
	for ix, adj := range adjWorse {
		sc[ix] += adj
	}
	for ix, adj := range adjBetter {
		sc[ix] += adj
	}
}

func (r *Reducer) scoreNoun(t grammar.Terminal, tok *greina.Tok, txtLast string,
	sc map[int]int, termIx int) {
	//
	if t.HasVariant("et") {
		// Singular nouns over plural ones
		sc[termIx]++
	} else if t.HasVariant("abbrev") {
		sc[termIx]--
	}
	if tok.IsWord() && tok.IsUpper() && tok.HasMeanings() {
		// Discourage a plain noun reading of an uppercase word that
		// could be a person or entity name
		for _, m := range tok.Meanings {
			if namedEntityFl[m.Fl] {
				sc[termIx] -= 5
				break
			}
		}
	}
	if np := r.set.NounPreferences[txtLast]; np != nil {
		for _, gender := range grammar.Genders {
			if t.HasVariant(gender) {
				sc[termIx] += np[gender]
				break
			}
		}
	}
}

func (r *Reducer) scorePreposition(t grammar.Terminal, txt string, sc map[int]int, termIx int) {
	switch {
	case t.HasVariant("nf"):
		// Artificial nominative prepositions are strongly discouraged
		sc[termIx] -= 10
		if txt == "sem" {
			sc[termIx] -= 8
		}
	case txt == "við" && t.HasVariant("þgf"):
		sc[termIx]++
	case txt == "sem" && t.HasVariant("þf"):
		sc[termIx] -= 4
	case txt == "á" && t.HasVariant("þgf"):
		// Resolve the conflict with the verb 'eiga'
		sc[termIx] += 4
	default:
		sc[termIx] += 2
	}
}

func (r *Reducer) scoreAdjective(t grammar.Terminal, tok *greina.Tok, txt string,
	composite bool, sc map[int]int, termIx int) {
	//
	if composite {
		// Composite words are less likely to be adjectives
		sc[termIx] -= 3
	}
	if strings.HasSuffix(txt, "andi") {
		for _, m := range tok.Meanings {
			if m.Cat == "so" &&
				(m.Inflection == "LH-NT" || m.Inflection == "LHNT") {
				// Strongly prefer the present participle reading
				sc[termIx] -= 50
				break
			}
		}
	}
}

func (r *Reducer) scoreVerb(g *grammar.Grammar, t grammar.Terminal, tok *greina.Tok,
	node *sppf.Node, i int, f *sppf.Forest,
	finals map[int]map[int]*sppf.Node, scores terminalScores,
	sc map[int]int, termIx int) {
	//
	if t.NumVariants() > 0 && strings.Contains("012", t.Variant(0)) && t.Variant(0) != "" {
		// Verb arguments: the more matched, the better
		numCases := int(t.Variant(0)[0] - '0')
		adj := 2 * numCases
		adjMax := 0
		haveAdj := false
		for _, m := range tok.Meanings {
			if m.Cat != "so" {
				continue
			}
			if score, ok := r.set.VerbScore(m.Lemma + t.VerbCases()); ok {
				if !haveAdj || score > adjMax {
					adjMax = score
					haveAdj = true
				}
			}
		}
		sc[termIx] += adj + adjMax
	}
	switch {
	case t.HasVariant("bh"):
		sc[termIx] -= 4
	case t.HasVariant("sagnb"):
		// More than one piece clicks into place
		sc[termIx] += 6
	case t.HasVariant("lhþt"):
		if t.HasVariant("vb") {
			sc[termIx] -= 2
		} else {
			sc[termIx] += 3
		}
	case t.HasVariant("lh") && t.HasVariant("nt"):
		sc[termIx] += 12
	case t.HasVariant("mm"):
		sc[termIx] += 3
	case t.HasVariant("vh"):
		sc[termIx] += 2
	}
	if t.HasVariant("subj") {
		if t.HasVariant("none") {
			sc[termIx] -= 3
		} else {
			sc[termIx]++
		}
	}
	if t.HasVariant("nh") {
		if i > 0 {
			if prev := finals[i-1]; prev != nil {
				for prevIx := range prev {
					if g.Terminal(prevIx).First() == "nhm" {
						// Adjacent infinitive marker plus infinitive
						sc[termIx] += 4
						if prevScores := scores[i-1]; prevScores != nil {
							prevScores[prevIx] += 2
						}
						break
					}
				}
			}
		}
		for otherIx := range finals[i] {
			ot := g.Terminal(otherIx)
			if ot.First() == "no" && ot.HasVariant("ef") && ot.HasVariant("ft") {
				sc[termIx] += 4
				break
			}
		}
	}
	if i > 0 && tok.IsUpper() {
		// Uppercase mid-sentence: discourage the verb reading
		sc[termIx] -= 4
	}
}
