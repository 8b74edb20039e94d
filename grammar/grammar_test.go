package grammar

import (
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/ornolfur/greina"
	"github.com/ornolfur/greina/cfg"
)

func makeGrammar(t *testing.T) *Grammar {
	b := NewBuilder("T", "S0")
	b.LHS("S0").N("Setning").T(`"."`).End()
	b.LHS("Setning").N("NlFrumlag").N("Sagnliður").End()
	b.LHS("NlFrumlag").T("no_nf").End()
	b.LHS("Sagnliður").T("so_0").End()
	b.LHS("Sagnliður").T("so_1_þf").N("NlBeintAndlag").Prio(1).End()
	b.LHS("NlBeintAndlag").T("no_þf").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.parse")
	defer teardown()
	//
	g := makeGrammar(t)
	g.Dump()
	if g.Root().Name != "S0" {
		t.Errorf("expected root S0, got %s", g.Root().Name)
	}
	if g.NumProductions() != 6 {
		t.Errorf("expected 6 productions, got %d", g.NumProductions())
	}
	nl := g.NonterminalByName("NlFrumlag")
	if nl == nil || len(g.ProductionsFor(nl)) != 1 {
		t.Errorf("NlFrumlag not properly registered")
	}
	if !nl.IsNounPhrase() {
		t.Errorf("NlFrumlag should classify as a noun phrase")
	}
}

func TestBuilderRejectsBadTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.parse")
	defer teardown()
	//
	b := NewBuilder("T", "S0")
	b.LHS("S0").T("xx_yy").End()
	if _, err := b.Grammar(); err == nil {
		t.Error("expected error for unknown terminal category")
	}
}

func TestNullable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.parse")
	defer teardown()
	//
	b := NewBuilder("T", "S0")
	b.LHS("S0").N("A").T("no_nf").End()
	b.LHS("A").N("B").N("C").End()
	b.LHS("B").Epsilon()
	b.LHS("C").T("ao").End()
	b.LHS("C").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	for _, tc := range []struct {
		name     string
		nullable bool
	}{
		{"S0", false}, {"A", true}, {"B", true}, {"C", true},
	} {
		nt := g.NonterminalByName(tc.name)
		if g.IsNullable(nt.Index) != tc.nullable {
			t.Errorf("nullable(%s) = %v, expected %v", tc.name, !tc.nullable, tc.nullable)
		}
	}
}

func TestBuildLattice(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.parse")
	defer teardown()
	//
	g := makeGrammar(t)
	set := cfg.New()
	set.VerbFrames["sjá_þf"] = 0
	toks := []*greina.Tok{
		{Kind: greina.WORD, Text: "Ása", Index: 0, Meanings: []greina.Meaning{
			{Lemma: "Ása", Cat: "kvk", Fl: "ism", Form: "Ása", Inflection: "NFET"},
		}},
		{Kind: greina.WORD, Text: "sá", Index: 1, Meanings: []greina.Meaning{
			{Lemma: "sjá", Cat: "so", Fl: "alm", Form: "sá", Inflection: "GM-FH-ÞT-3P-ET"},
			{Lemma: "sá", Cat: "fn", Fl: "alm", Form: "sá", Inflection: "KK-NFET"},
		}},
		{Kind: greina.WORD, Text: "sól", Index: 2, Meanings: []greina.Meaning{
			{Lemma: "sól", Cat: "kvk", Fl: "alm", Form: "sól", Inflection: "NFET"},
			{Lemma: "sól", Cat: "kvk", Fl: "alm", Form: "sól", Inflection: "ÞFET"},
		}},
		{Kind: greina.PUNCTUATION, Text: ".", Norm: ".", Index: 3},
	}
	lattice := BuildLattice(g, toks, set)
	if len(lattice) != 4 {
		t.Fatalf("expected 4 lattice positions, got %d", len(lattice))
	}
	// Ása: no_nf matches (nominative feminine noun)
	if _, ok := lattice.TerminalAt(0, g.TerminalByName("no_nf").Index()); !ok {
		t.Error("no_nf should match 'Ása'")
	}
	// sá: so_1_þf matches via the verb frame sjá+þf
	if _, ok := lattice.TerminalAt(1, g.TerminalByName("so_1_þf").Index()); !ok {
		t.Error("so_1_þf should match 'sá'")
	}
	// sól: both no_nf and no_þf match
	if _, ok := lattice.TerminalAt(2, g.TerminalByName("no_þf").Index()); !ok {
		t.Error("no_þf should match 'sól'")
	}
	if _, ok := lattice.TerminalAt(2, g.TerminalByName("no_nf").Index()); !ok {
		t.Error("no_nf should match 'sól'")
	}
	// '.': the literal terminal matches
	if _, ok := lattice.TerminalAt(3, g.TerminalByName(`"."`).Index()); !ok {
		t.Error(`"." should match the full stop`)
	}
}

func TestGrammarCache(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.parse")
	defer teardown()
	//
	g := makeGrammar(t)
	path := filepath.Join(t.TempDir(), "grammar.bin")
	if err := g.SaveCache(path); err != nil {
		t.Fatal(err)
	}
	g2, err := LoadCache(path)
	if err != nil {
		t.Fatal(err)
	}
	if g2.NumProductions() != g.NumProductions() {
		t.Errorf("cache round-trip lost productions: %d != %d",
			g2.NumProductions(), g.NumProductions())
	}
	if g2.Fingerprint() != g.Fingerprint() {
		t.Errorf("cache round-trip changed the grammar fingerprint")
	}
}
