package earley

import (
	"errors"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/ornolfur/greina"
	"github.com/ornolfur/greina/cfg"
	"github.com/ornolfur/greina/grammar"
	"github.com/ornolfur/greina/sppf"
)

func wordTok(index int, text string, meanings ...greina.Meaning) *greina.Tok {
	return &greina.Tok{Kind: greina.WORD, Text: text, Index: index, Meanings: meanings}
}

func punctTok(index int, text string) *greina.Tok {
	return &greina.Tok{Kind: greina.PUNCTUATION, Text: text, Norm: text, Index: index}
}

// makeSentenceGrammar builds a minimal subject-verb-object grammar.
func makeSentenceGrammar(t *testing.T) *grammar.Grammar {
	b := grammar.NewBuilder("T", "S0")
	b.LHS("S0").N("Setning").T(`"."`).End()
	b.LHS("Setning").N("NlFrumlag").N("Sagnliður").End()
	b.LHS("NlFrumlag").T("no_nf").End()
	b.LHS("Sagnliður").T("so_1_þf").N("NlBeintAndlag").End()
	b.LHS("NlBeintAndlag").T("no_þf").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func sentenceToks() []*greina.Tok {
	return []*greina.Tok{
		wordTok(0, "Ása",
			greina.Meaning{Lemma: "Ása", Cat: "kvk", Fl: "ism", Form: "Ása", Inflection: "NFET"}),
		wordTok(1, "sá",
			greina.Meaning{Lemma: "sjá", Cat: "so", Fl: "alm", Form: "sá", Inflection: "GM-FH-ÞT-3P-ET"}),
		wordTok(2, "sól",
			greina.Meaning{Lemma: "sól", Cat: "kvk", Fl: "alm", Form: "sól", Inflection: "NFET"},
			greina.Meaning{Lemma: "sól", Cat: "kvk", Fl: "alm", Form: "sól", Inflection: "ÞFET"}),
		punctTok(3, "."),
	}
}

func TestParseSimpleSentence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.parse")
	defer teardown()
	//
	g := makeSentenceGrammar(t)
	set := cfg.New()
	set.VerbFrames["sjá_þf"] = 0
	toks := sentenceToks()
	lattice := grammar.BuildLattice(g, toks, set)
	parser := NewParser(g, Options{})
	forest, err := parser.Parse(lattice, toks)
	if err != nil {
		t.Fatal(err)
	}
	root := forest.Root()
	if root == nil {
		t.Fatal("expected a forest root")
	}
	if root.Sym != g.Root().Index || root.Start != 0 || root.End != 4 {
		t.Errorf("root should be S0 over (0…4), got %v", root)
	}
	if forest.Combinations() != 1 {
		t.Errorf("unambiguous sentence should have 1 combination, got %d",
			forest.Combinations())
	}
	// The token yield must be the input sequence, in order
	leaves := forest.TokenNodes()
	if len(leaves) != 4 {
		t.Fatalf("expected 4 token leaves, got %d", len(leaves))
	}
	for i, leaf := range leaves {
		if leaf.Token != toks[i] {
			t.Errorf("leaf %d is %v, expected %v", i, leaf.Token, toks[i])
		}
		if leaf.Start != i || leaf.End != i+1 {
			t.Errorf("leaf %d spans %d…%d", i, leaf.Start, leaf.End)
		}
	}
}

func TestParseFailureIndex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.parse")
	defer teardown()
	//
	g := makeSentenceGrammar(t)
	set := cfg.New()
	set.VerbFrames["sjá_þf"] = 0
	// Subject and verb, then a second verb where the object should be
	toks := []*greina.Tok{
		sentenceToks()[0],
		sentenceToks()[1],
		wordTok(2, "sá",
			greina.Meaning{Lemma: "sjá", Cat: "so", Fl: "alm", Form: "sá", Inflection: "GM-FH-ÞT-3P-ET"}),
		punctTok(3, "."),
	}
	lattice := grammar.BuildLattice(g, toks, set)
	parser := NewParser(g, Options{})
	_, err := parser.Parse(lattice, toks)
	var perr *greina.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.TokenIndex != 2 {
		t.Errorf("expected stall at token 2, got %d", perr.TokenIndex)
	}
}

func TestParseAmbiguity(t *testing.T) {
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
	set := cfg.New()
	toks := []*greina.Tok{
		wordTok(0, "a"), wordTok(1, "a"), wordTok(2, "a"),
	}
	lattice := grammar.BuildLattice(g, toks, set)
	parser := NewParser(g, Options{})
	forest, err := parser.Parse(lattice, toks)
	if err != nil {
		t.Fatal(err)
	}
	// "a a a" has exactly two bracketings: (a a) a and a (a a)
	if c := forest.Combinations(); c != 2 {
		t.Errorf("expected 2 combinations, got %d", c)
	}
	// The E node over the full span must be packed with 2 families
	eIx := g.NonterminalByName("E").Index
	eNode := forest.SymbolNode(eIx, 0, 3)
	if len(eNode.Families) != 2 {
		t.Errorf("expected 2 packed families on E(0…3), got %d", len(eNode.Families))
	}
	// Every family must partition the node's span exactly
	for _, fam := range eNode.Families {
		if fam.Left == nil || fam.Right == nil {
			t.Fatalf("binary family expected on E(0…3)")
		}
		if fam.Left.Start != 0 || fam.Left.End != fam.Right.Start || fam.Right.End != 3 {
			t.Errorf("family %v/%v does not partition (0…3)", fam.Left, fam.Right)
		}
	}
}

func TestParseEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.parse")
	defer teardown()
	//
	b := grammar.NewBuilder("Eps", "S0")
	b.LHS("S0").N("Atviksliður").T(`"a"`).End()
	b.LHS("Atviksliður").T("ao").End()
	b.LHS("Atviksliður").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	set := cfg.New()
	toks := []*greina.Tok{wordTok(0, "a")}
	lattice := grammar.BuildLattice(g, toks, set)
	parser := NewParser(g, Options{})
	forest, err := parser.Parse(lattice, toks)
	if err != nil {
		t.Fatal(err)
	}
	if forest.Root() == nil {
		t.Fatal("nullable prefix should parse")
	}
}

func TestParseTooLong(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.parse")
	defer teardown()
	//
	g := makeSentenceGrammar(t)
	toks := sentenceToks()
	lattice := grammar.BuildLattice(g, toks, cfg.New())
	parser := NewParser(g, Options{MaxTokens: 2})
	_, err := parser.Parse(lattice, toks)
	var terr *greina.TooLongError
	if !errors.As(err, &terr) {
		t.Fatalf("expected *TooLongError, got %v", err)
	}
	if terr.NumTokens != 4 || terr.Max != 2 {
		t.Errorf("bad TooLongError payload: %+v", terr)
	}
}

func TestParseTimeout(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.parse")
	defer teardown()
	//
	g := makeSentenceGrammar(t)
	set := cfg.New()
	set.VerbFrames["sjá_þf"] = 0
	toks := sentenceToks()
	lattice := grammar.BuildLattice(g, toks, set)
	parser := NewParser(g, Options{Timeout: time.Nanosecond})
	_, err := parser.Parse(lattice, toks)
	var terr *greina.TimeoutError
	if !errors.As(err, &terr) {
		t.Fatalf("expected *TimeoutError, got %v", err)
	}
}

func TestParseIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.parse")
	defer teardown()
	//
	g := makeSentenceGrammar(t)
	set := cfg.New()
	set.VerbFrames["sjá_þf"] = 0
	toks := sentenceToks()
	lattice := grammar.BuildLattice(g, toks, set)
	parser := NewParser(g, Options{})
	shape := func(f *sppf.Forest) []int {
		var s []int
		for _, n := range f.TokenNodes() {
			s = append(s, n.Sym)
		}
		return s
	}
	f1, err := parser.Parse(lattice, toks)
	if err != nil {
		t.Fatal(err)
	}
	f2, err := parser.Parse(lattice, toks)
	if err != nil {
		t.Fatal(err)
	}
	s1, s2 := shape(f1), shape(f2)
	if len(s1) != len(s2) {
		t.Fatal("differing yields between identical parses")
	}
	for i := range s1 {
		if s1[i] != s2[i] {
			t.Errorf("yield differs at %d: %d != %d", i, s1[i], s2[i])
		}
	}
}
