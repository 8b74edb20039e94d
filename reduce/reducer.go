package reduce

import (
	"strings"

	"github.com/ornolfur/greina"
	"github.com/ornolfur/greina/cfg"
	"github.com/ornolfur/greina/grammar"
	"github.com/ornolfur/greina/sppf"
)

const (
	verbPrepBonus     = 7  // a verb/preposition match earns this
	verbPrepPenalty   = -2 // a mismatch costs this
	lengthBonusFactor = 10 // per-token bonus for apply_length_bonus nonterminals
	priorityFactor    = 10 // starting bonus per priority step
)

// Reducer prunes parse forests down to a single best derivation.
// A Reducer is stateless between calls and may be shared.
type Reducer struct {
	set *cfg.Settings
}

// New creates a reducer using the given scoring configuration.
func New(set *cfg.Settings) *Reducer {
	return &Reducer{set: set}
}

// verbRef is a verb occurrence carried up the tree for the
// verb/preposition attachment bonus.
type verbRef struct {
	terminal grammar.Terminal
	meaning  *greina.Meaning
}

// result is the outcome of scoring a subtree: its score and the verb
// occurrences visible to enclosing scopes.
type result struct {
	sc int
	so []verbRef // verbs seen in this subtree
	sl []verbRef // verbs picked up for prep matching
}

type memoKey struct {
	node *sppf.Node
	key  int
}

// reduction is the per-forest state of one Reduce call.
type reduction struct {
	r       *Reducer
	g       *grammar.Grammar
	scores  terminalScores
	visited map[memoKey]result
	// Memoization key scopes: subtrees under enable_prep_bonus nodes
	// may score differently in different verb contexts and must not
	// share memoized results.
	currentKey int
	nextKey    int

	prepBonusStack [][]verbRef
	currentVerbs   [][]verbRef
}

// Reduce scores the forest and culls every packed node down to its
// best family, in place. It returns the score of the surviving
// derivation; an empty forest reduces to score 0.
func (r *Reducer) Reduce(f *sppf.Forest) int {
	root := f.Root()
	if root == nil {
		return 0
	}
	red := &reduction{
		r:              r,
		g:              f.Grammar(),
		scores:         r.calcTerminalScores(f),
		visited:        make(map[memoKey]result),
		prepBonusStack: [][]verbRef{nil},
		currentVerbs:   [][]verbRef{nil},
	}
	res := red.calcScore(root)
	tracer().Debugf("reduced forest to score %d", res.sc)
	return res.sc
}

func (red *reduction) pushPrepBonus(v []verbRef) { red.prepBonusStack = append(red.prepBonusStack, v) }
func (red *reduction) popPrepBonus()             { red.prepBonusStack = red.prepBonusStack[:len(red.prepBonusStack)-1] }
func (red *reduction) prepBonus() []verbRef      { return red.prepBonusStack[len(red.prepBonusStack)-1] }

func (red *reduction) pushCurrentVerb(v []verbRef) { red.currentVerbs = append(red.currentVerbs, v) }
func (red *reduction) popCurrentVerb()             { red.currentVerbs = red.currentVerbs[:len(red.currentVerbs)-1] }
func (red *reduction) currentVerb() []verbRef      { return red.currentVerbs[len(red.currentVerbs)-1] }
func (red *reduction) setCurrentVerb(v []verbRef)  { red.currentVerbs[len(red.currentVerbs)-1] = v }

// calcScore scores a node, memoized per (node, key scope).
func (red *reduction) calcScore(w *sppf.Node) result {
	if w == nil {
		return result{}
	}
	mk := memoKey{w, red.currentKey}
	if v, ok := red.visited[mk]; ok {
		return v
	}
	var v result
	switch {
	case w.IsToken():
		v = red.visitToken(w)
	case w.IsInterior():
		v = red.reduceFamilies(w, nil, false)
	default:
		v = red.visitNonterminal(w)
	}
	red.visited[mk] = v
	w.Score = v.sc
	return v
}

// visitNonterminal scores a completed nonterminal node: enter the
// verb/preposition scopes dictated by its tags, pick the best family,
// then apply the nonterminal's own adjustments.
func (red *reduction) visitNonterminal(w *sppf.Node) result {
	nt := red.g.Nonterminal(w.Sym)
	pushedPrep := false
	verb := red.currentVerb()
	if nt.HasTag("enable_prep_bonus") {
		red.pushPrepBonus(append([]verbRef(nil), verb...))
		pushedPrep = true
	} else if nt.HasTag("begin_prep_scope") || nt.IsNounPhrase() {
		red.pushPrepBonus(nil)
		pushedPrep = true
		verb = nil
	}
	red.pushCurrentVerb(verb)
	defer func() {
		if pushedPrep {
			red.popPrepBonus()
		}
		red.popCurrentVerb()
	}()

	sc := red.reduceFamilies(w, verb, true)

	sc.sc += nt.Score
	if nt.HasTag("apply_length_bonus") {
		sc.sc += (w.End - w.Start - 1) * lengthBonusFactor
	}
	if nt.HasTag("apply_prep_bonus") && red.prepBonus() != nil {
		sc.sc += verbPrepBonus
	}
	if nt.HasTag("pick_up_verb") && sc.so != nil {
		sc.sl = append([]verbRef(nil), sc.so...)
	}
	if nt.HasTag("begin_prep_scope") || nt.HasTag("purge_verb") {
		sc.so = nil
		sc.sl = nil
	}
	return sc
}

// reduceFamilies scores the families of a packed node and culls all
// but the best one. Ties go to the lowest family index, which keeps
// reduction deterministic. Only completed nonterminal nodes reset the
// current verb per family; intermediate nodes are part of an enclosing
// family's child sequence and leave it alone.
func (red *reduction) reduceFamilies(w *sppf.Node, startVerb []verbRef, resetVerb bool) result {
	if len(w.Families) == 0 {
		return result{}
	}
	best := result{}
	bestIx := -1
	for ix, fam := range w.Families {
		if resetVerb {
			red.setCurrentVerb(startVerb)
		}
		var famResult result
		if w.IsNonterminal() && fam.Prod != nil {
			// Higher-priority productions (lower values) start ahead;
			// the bonus applies once, at the completed nonterminal
			famResult.sc = -priorityFactor * fam.Prod.Priority
		}
		red.addChild(&famResult, fam.Left)
		red.addChild(&famResult, fam.Right)
		if bestIx < 0 || famResult.sc > best.sc {
			best = famResult
			bestIx = ix
		}
	}
	if len(w.Families) > 1 {
		w.ReduceTo(bestIx)
	}
	return best
}

// addChild folds a child subtree's result into the family result,
// carrying verb information up the tree.
func (red *reduction) addChild(famResult *result, child *sppf.Node) {
	if child == nil {
		return
	}
	prevKey := red.currentKey
	if red.enterKeyScope(child) {
		// Subtrees under enable_prep_bonus score differently per verb
		// context; give them their own memoization key
		red.nextKey++
		red.currentKey = red.nextKey
	} else if red.currentKey != 0 && red.exitKeyScope(child) {
		red.currentKey = 0
	}
	rd := red.calcScore(child)
	red.currentKey = prevKey

	famResult.sc += rd.sc
	if rd.so != nil {
		famResult.so = append(famResult.so, rd.so...)
	}
	if rd.sl != nil {
		famResult.sl = append(famResult.sl, rd.sl...)
		red.setCurrentVerb(rd.sl)
	}
}

func (red *reduction) enterKeyScope(n *sppf.Node) bool {
	if !n.IsNonterminal() {
		return false
	}
	return red.g.Nonterminal(n.Sym).HasTag("enable_prep_bonus")
}

func (red *reduction) exitKeyScope(n *sppf.Node) bool {
	if !n.IsNonterminal() {
		return n.IsEmpty() && !n.IsToken()
	}
	nt := red.g.Nonterminal(n.Sym)
	if nt.HasTag("begin_prep_scope") || nt.HasTag("purge_prep") ||
		nt.HasTag("no_prep") || nt.HasTag("enable_prep_bonus") {
		return true
	}
	return nt.IsNounPhrase() || n.IsEmpty()
}

// visitToken scores a terminal leaf: the first-pass terminal score,
// plus the contextual verb/preposition bonus for prepositions, plus
// verb pick-up for verbs.
func (red *reduction) visitToken(w *sppf.Node) result {
	var d result
	t := red.g.Terminal(w.Sym)
	sc := red.scores[w.Start][w.Sym]
	switch t.First() {
	case "fs":
		if prepBonus := red.prepBonus(); prepBonus != nil {
			haveBonus := false
			finalBonus := 0
			for _, verb := range prepBonus {
				bonus := red.verbPrepBonus(t, w.Token.Lower(), verb)
				if !haveBonus || bonus > finalBonus {
					finalBonus = bonus
					haveBonus = true
				}
			}
			if haveBonus {
				sc += finalBonus
			}
		}
	case "so":
		d.so = []verbRef{{terminal: t, meaning: w.Meaning}}
	}
	d.sc = sc
	return d
}

// verbPrepBonus checks the verb/preposition attachment table: a
// preposition that clicks with an enclosing verb earns a bonus, one
// that does not is discouraged.
func (red *reduction) verbPrepBonus(prepTerminal grammar.Terminal, prepToken string,
	verb verbRef) int {
	//
	if verb.meaning == nil {
		return 0
	}
	stem := verb.meaning.Lemma
	if strings.Contains(verb.meaning.Inflection, "MM") {
		stem = mmVerbStem(stem)
	}
	verbWithCases := stem + verb.terminal.VerbCases()
	var prepWithCase string
	if prepTerminal.NumVariants() > 0 && grammar.IsCase(prepTerminal.Variant(0)) {
		prepWithCase = prepToken + "_" + prepTerminal.Variant(0)
	} else {
		// Literal preposition or fs_nh: match all cases
		prepWithCase = prepToken
	}
	if red.r.set.MatchesPreposition(verbWithCases, prepWithCase) {
		return verbPrepBonus
	}
	return verbPrepPenalty
}

// mmVerbStem maps a verb lemma to its middle-voice stem.
func mmVerbStem(verb string) string {
	return verb + "st"
}
