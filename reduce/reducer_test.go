package reduce

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/ornolfur/greina"
	"github.com/ornolfur/greina/cfg"
	"github.com/ornolfur/greina/earley"
	"github.com/ornolfur/greina/grammar"
	"github.com/ornolfur/greina/sppf"
)

func wordTok(index int, text string, meanings ...greina.Meaning) *greina.Tok {
	return &greina.Tok{Kind: greina.WORD, Text: text, Index: index, Meanings: meanings}
}

func parse(t *testing.T, g *grammar.Grammar, set *cfg.Settings, toks []*greina.Tok) *sppf.Forest {
	t.Helper()
	lattice := grammar.BuildLattice(g, toks, set)
	forest, err := earley.NewParser(g, earley.Options{}).Parse(lattice, toks)
	if err != nil {
		t.Fatal(err)
	}
	return forest
}

func TestReduceEmptyForest(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.parse")
	defer teardown()
	//
	b := grammar.NewBuilder("T", "S0")
	b.LHS("S0").T("ao").End()
	g, _ := b.Grammar()
	f := sppf.NewForest(g)
	if score := New(cfg.New()).Reduce(f); score != 0 {
		t.Errorf("empty forest must reduce to score 0, got %d", score)
	}
}

func TestReduceDeterministicTieBreak(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.parse")
	defer teardown()
	//
	b := grammar.NewBuilder("Amb", "S0")
	b.LHS("S0").N("E").End()
	b.LHS("E").N("E").N("E").End()
	b.LHS("E").T(`"a"`).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	toks := []*greina.Tok{wordTok(0, "a"), wordTok(1, "a"), wordTok(2, "a")}
	forest := parse(t, g, cfg.New(), toks)
	if forest.Combinations() != 2 {
		t.Fatalf("expected 2 combinations before reduction")
	}
	New(cfg.New()).Reduce(forest)
	if c := forest.Combinations(); c != 1 {
		t.Errorf("expected exactly 1 combination after reduction, got %d", c)
	}
	// Run again on a fresh parse: the same family must win
	forest2 := parse(t, g, cfg.New(), toks)
	New(cfg.New()).Reduce(forest2)
	left1 := forest.Root().Children(0)
	left2 := forest2.Root().Children(0)
	if len(left1) != len(left2) {
		t.Fatal("nondeterministic reduction")
	}
	for i := range left1 {
		if left1[i].Sym != left2[i].Sym || left1[i].Start != left2[i].Start {
			t.Errorf("nondeterministic reduction at child %d", i)
		}
	}
}

func TestReducePriority(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.parse")
	defer teardown()
	//
	b := grammar.NewBuilder("Prio", "S0")
	b.LHS("S0").N("A").Prio(1).End()
	b.LHS("S0").N("B").End()
	b.LHS("A").T(`"a"`).End()
	b.LHS("B").T(`"a"`).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	toks := []*greina.Tok{wordTok(0, "a")}
	forest := parse(t, g, cfg.New(), toks)
	if len(forest.Root().Families) != 2 {
		t.Fatalf("expected ambiguous root, got %d families", len(forest.Root().Families))
	}
	New(cfg.New()).Reduce(forest)
	children := forest.Root().Children(0)
	if len(children) != 1 {
		t.Fatal("expected a single child under S0")
	}
	bIx := g.NonterminalByName("B").Index
	if children[0].Sym != bIx {
		t.Errorf("the higher-priority production (via B) should win")
	}
}

func TestReducePrepositionCaseOrdering(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.parse")
	defer teardown()
	//
	b := grammar.NewBuilder("Fs", "S0")
	b.LHS("S0").N("FsLiður").End()
	b.LHS("FsLiður").T("fs_nf").End()
	b.LHS("FsLiður").T("fs_þgf").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	set := cfg.New()
	set.Prepositions["á"] = map[string]bool{"nf": true, "þf": true, "þgf": true}
	toks := []*greina.Tok{wordTok(0, "á",
		greina.Meaning{Lemma: "á", Cat: "fs", Form: "á", Inflection: ""})}
	forest := parse(t, g, set, toks)
	score := New(set).Reduce(forest)
	fs := forest.Root().Children(0)[0].Children(0)
	if len(fs) != 1 {
		t.Fatal("expected one terminal under FsLiður")
	}
	want := g.TerminalByName("fs_þgf").Index()
	if fs[0].Sym != want {
		t.Errorf("'á'+þgf should outscore the artificial nominative preposition")
	}
	if score != 4 {
		t.Errorf("expected score 4 for 'á'+þgf, got %d", score)
	}
}

func TestReduceVerbArgumentsBeatGenericReading(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.parse")
	defer teardown()
	//
	// 'sá' is both a verb form of 'sjá' and a demonstrative pronoun;
	// with an accusative object available, the one-argument verb
	// reading must win.
	b := grammar.NewBuilder("So", "S0")
	b.LHS("S0").N("Sagnliður").End()
	b.LHS("Sagnliður").T("so_1_þf").N("NlBeintAndlag").End()
	b.LHS("Sagnliður").T("fn").N("NlBeintAndlag").End()
	b.LHS("NlBeintAndlag").T("no_þf").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	set := cfg.New()
	set.VerbFrames["sjá_þf"] = 0
	toks := []*greina.Tok{
		wordTok(0, "sá",
			greina.Meaning{Lemma: "sjá", Cat: "so", Form: "sá", Inflection: "GM-FH-ÞT-3P-ET"},
			greina.Meaning{Lemma: "sá", Cat: "fn", Form: "sá", Inflection: "KK-NFET"}),
		wordTok(1, "sól",
			greina.Meaning{Lemma: "sól", Cat: "kvk", Form: "sól", Inflection: "ÞFET"}),
	}
	forest := parse(t, g, set, toks)
	if len(forest.SymbolNode(g.NonterminalByName("Sagnliður").Index, 0, 2).Families) != 2 {
		t.Fatal("expected both readings in the forest")
	}
	New(set).Reduce(forest)
	leaf := forest.Root().Children(0)[0].Children(0)[0]
	if g.Terminal(leaf.Sym).First() != "so" {
		t.Errorf("verb-argument reading should outscore the pronoun reading, got %s",
			g.Terminal(leaf.Sym).Name())
	}
}

func TestReduceVerbPrepositionBonus(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.parse")
	defer teardown()
	//
	// Two parses of 'bjó í húsinu': the preposition attaches to the
	// verb (SagnInnskot, tagged enable_prep_bonus) or elsewhere. The
	// verb/preposition table knows 'búa' + 'í'+þgf, so the attachment
	// through the tagged nonterminal must win.
	b := grammar.NewBuilder("Vp", "S0")
	b.Tag("SagnInnskot", "enable_prep_bonus")
	b.Tag("SagnRuna", "pick_up_verb")
	b.LHS("S0").N("Sagnliður").End()
	b.LHS("Sagnliður").N("SagnRuna").N("SagnInnskot").End()
	b.LHS("Sagnliður").N("SagnRuna").N("FsLausiður").End()
	b.LHS("SagnRuna").T("so_0").End()
	b.LHS("SagnInnskot").N("FsLiður").End()
	b.LHS("FsLausiður").N("FsLiður").End()
	b.LHS("FsLiður").T("fs_þgf").T("no_þgf").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	set := cfg.New()
	set.Prepositions["í"] = map[string]bool{"þf": true, "þgf": true}
	set.VerbPrepositions["búa/í_þgf"] = true
	toks := []*greina.Tok{
		wordTok(0, "bjó",
			greina.Meaning{Lemma: "búa", Cat: "so", Form: "bjó", Inflection: "GM-FH-ÞT-3P-ET"}),
		wordTok(1, "í",
			greina.Meaning{Lemma: "í", Cat: "fs", Form: "í", Inflection: ""}),
		wordTok(2, "húsinu",
			greina.Meaning{Lemma: "hús", Cat: "hk", Form: "húsinu", Inflection: "ÞGFETgr"}),
	}
	forest := parse(t, g, set, toks)
	New(set).Reduce(forest)
	// The surviving child of Sagnliður must be the SagnInnskot variant
	children := forest.Root().Children(0)[0].Children(0)
	if len(children) != 2 {
		t.Fatalf("expected verb + phrase under Sagnliður, got %d children", len(children))
	}
	wantIx := g.NonterminalByName("SagnInnskot").Index
	if children[1].Sym != wantIx {
		t.Errorf("verb/preposition bonus should pick the SagnInnskot attachment, got %s",
			g.SymbolName(children[1].Sym))
	}
}
