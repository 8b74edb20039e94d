package grammar

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/ornolfur/greina"
	"github.com/ornolfur/greina/cfg"
)

func TestParseTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.parse")
	defer teardown()
	//
	term, err := parseTerminal("so_2_þgf_þf_et_p3", 1)
	if err != nil {
		t.Fatal(err)
	}
	bt := term.(*BinTerminal)
	if bt.First() != "so" || bt.argCount != 2 {
		t.Errorf("bad parse of verb terminal: %v", bt)
	}
	if bt.VerbCases() != "_þgf_þf" {
		t.Errorf("expected verb cases _þgf_þf, got %s", bt.VerbCases())
	}
	if !bt.HasVariant("et") || !bt.HasVariant("p3") {
		t.Errorf("feature variants not registered")
	}
	if bt.Variant(-1) != "p3" {
		t.Errorf("negative variant index broken, got %q", bt.Variant(-1))
	}

	if _, err := parseTerminal("no_et_xx", 2); err == nil {
		t.Error("expected error for unknown variant")
	}
	if _, err := parseTerminal("so_2_þf", 3); err == nil {
		t.Error("expected error for missing argument case")
	}
}

func TestLiteralTerminals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.parse")
	defer teardown()
	//
	set := cfg.New()
	tok := &greina.Tok{Kind: greina.WORD, Text: "Hefur", Meanings: []greina.Meaning{
		{Lemma: "hafa", Cat: "so", Form: "hefur", Inflection: "GM-FH-NT-3P-ET"},
	}}

	strong, err := parseTerminal(`"hefur"`, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := strong.Matches(tok, set); !ok {
		t.Error(`"hefur" should match the token case-neutrally`)
	}

	lemma, err := parseTerminal(`'hafa'`, 2)
	if err != nil {
		t.Fatal(err)
	}
	if m, ok := lemma.Matches(tok, set); !ok || m == nil || m.Lemma != "hafa" {
		t.Error(`'hafa' should match through the lemma`)
	}

	lemmaCat, err := parseTerminal(`'hafa:so'_fh`, 3)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := lemmaCat.Matches(tok, set); !ok {
		t.Error(`'hafa:so'_fh should match`)
	}

	lemmaBad, err := parseTerminal(`'hafa:so'_nh`, 4)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := lemmaBad.Matches(tok, set); ok {
		t.Error(`'hafa:so'_nh must not match a finite verb form`)
	}
}

func TestTypedTerminals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.parse")
	defer teardown()
	//
	set := cfg.New()
	num := &greina.Tok{Kind: greina.NUMBER, Text: "10", Val: 10}
	one := &greina.Tok{Kind: greina.NUMBER, Text: "1", Val: 1}
	person := &greina.Tok{Kind: greina.PERSON, Text: "Jón", Persons: []greina.PersonName{
		{Name: "Jón", Gender: "kk", Case: "nf"},
	}}

	talaFt, _ := parseTerminal("tala_ft_þf_kvk", 1)
	if _, ok := talaFt.Matches(num, set); !ok {
		t.Error("tala_ft should match 10")
	}
	if _, ok := talaFt.Matches(one, set); ok {
		t.Error("tala_ft must not match 1")
	}

	personKkNf, _ := parseTerminal("person_kk_nf", 2)
	if _, ok := personKkNf.Matches(person, set); !ok {
		t.Error("person_kk_nf should match Jón")
	}
	personKvk, _ := parseTerminal("person_kvk", 3)
	if _, ok := personKvk.Matches(person, set); ok {
		t.Error("person_kvk must not match a masculine name")
	}

	ordinal := &greina.Tok{Kind: greina.ORDINAL, Text: "3.", Val: 3}
	radnr, _ := parseTerminal("raðnr", 4)
	if _, ok := radnr.Matches(ordinal, set); !ok {
		t.Error("raðnr should match an ordinal token")
	}
}
