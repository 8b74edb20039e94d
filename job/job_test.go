package job

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/ornolfur/greina"
	"github.com/ornolfur/greina/cfg"
	"github.com/ornolfur/greina/lex"
)

func testLexicon(t *testing.T) *lex.Lexicon {
	t.Helper()
	img, err := lex.Pack([]lex.Entry{
		{Form: "ása", Lemma: "Ása", ID: 1, Cat: "kvk", Fl: "ism", Inflection: "NFET"},
		{Form: "sá", Lemma: "sjá", ID: 2, Cat: "so", Fl: "alm", Inflection: "GM-FH-ÞT-3P-ET"},
		{Form: "sól", Lemma: "sól", ID: 3, Cat: "kvk", Fl: "alm", Inflection: "NFET"},
		{Form: "sól", Lemma: "sól", ID: 3, Cat: "kvk", Fl: "alm", Inflection: "ÞFET"},
		{Form: "seldum", Lemma: "seldur", ID: 4, Cat: "lo", Fl: "alm", Inflection: "FSB-KVK-ÞGFFT"},
		{Form: "fasteignum", Lemma: "fasteign", ID: 5, Cat: "kvk", Fl: "alm", Inflection: "ÞGFFT"},
		{Form: "hefur", Lemma: "hafa", ID: 6, Cat: "so", Fl: "alm", Inflection: "GM-FH-NT-3P-ET"},
		{Form: "fjölgað", Lemma: "fjölga", ID: 7, Cat: "so", Fl: "alm", Inflection: "GM-SAGNB"},
	})
	if err != nil {
		t.Fatal(err)
	}
	l, err := lex.OpenBuffer(img)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func testEngine(t *testing.T) *Engine {
	t.Helper()
	g, err := DefaultGrammar()
	if err != nil {
		t.Fatal(err)
	}
	set := cfg.New()
	set.VerbFrames["sjá_þf"] = 0
	e, err := NewEngine(testLexicon(t), g, set, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestParseSimpleText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.job")
	defer teardown()
	//
	e := testEngine(t)
	job, err := e.Parse("Ása sá sól.")
	if err != nil {
		t.Fatal(err)
	}
	if job.NumSentences() != 1 || job.NumParsed() != 1 {
		t.Fatalf("expected 1/1 parsed, got %d/%d", job.NumParsed(), job.NumSentences())
	}
	s := job.Sentences()[0]
	if s.Err() != nil {
		t.Fatal(s.Err())
	}
	flat := s.Tree().Root().Flat()
	for _, tag := range []string{"S0", "S-MAIN", "IP", "NP-SUBJ", "VP", "NP-OBJ"} {
		if !strings.Contains(flat, tag) {
			t.Errorf("tag %s missing from flat tree %q", tag, flat)
		}
	}
	if s.Text() != "Ása sá sól." {
		t.Errorf("text = %q", s.Text())
	}
	if job.ParseTime() <= 0 {
		t.Error("parse time not recorded")
	}
}

func TestParseAuxiliary(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.job")
	defer teardown()
	//
	e := testEngine(t)
	job, err := e.Parse("Seldum fasteignum hefur fjölgað.")
	if err != nil {
		t.Fatal(err)
	}
	s := job.Sentences()[0]
	if s.Err() != nil {
		t.Fatal(s.Err())
	}
	flat := s.Tree().Root().Flat()
	want := "S0 S-MAIN IP NP-SUBJ lo_þgf no_þgf /NP-SUBJ VP VP-AUX so_et /VP-AUX VP so_sagnb /VP /VP /IP /S-MAIN p /S0"
	if flat != want {
		t.Errorf("flat form mismatch:\n got  %s\n want %s", flat, want)
	}
}

func TestParseFailureIsRecorded(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.job")
	defer teardown()
	//
	e := testEngine(t)
	// Two finite verbs in a row cannot derive
	job, err := e.Parse("Ása sá hefur sól.")
	if err != nil {
		t.Fatal(err)
	}
	s := job.Sentences()[0]
	var perr *greina.ParseError
	if !errors.As(s.Err(), &perr) {
		t.Fatalf("expected *ParseError on the sentence, got %v", s.Err())
	}
	if _, ok := s.ErrIndex(); !ok {
		t.Error("error index not available")
	}
	if job.NumParsed() != 0 {
		t.Errorf("failed sentence counted as parsed")
	}
}

func TestForeignSentence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.job")
	defer teardown()
	//
	e := testEngine(t)
	job, err := e.Parse("The quick brown fox jumps.")
	if err != nil {
		t.Fatal(err)
	}
	var ferr *greina.ForeignError
	if !errors.As(job.Sentences()[0].Err(), &ferr) {
		t.Fatalf("expected *ForeignError, got %v", job.Sentences()[0].Err())
	}
	if ferr.Ratio != 0 {
		t.Errorf("expected ratio 0, got %f", ferr.Ratio)
	}
}

func TestParagraphOrdering(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.job")
	defer teardown()
	//
	e := testEngine(t)
	job, err := e.Parse("[[ Ása sá sól. ]] [[ Ása sá sól. Ása sá sól. ]]")
	if err != nil {
		t.Fatal(err)
	}
	if len(job.Paragraphs()) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(job.Paragraphs()))
	}
	if len(job.Paragraphs()[0]) != 1 || len(job.Paragraphs()[1]) != 2 {
		t.Errorf("paragraph sentence counts wrong")
	}
	if job.NumSentences() != 3 || job.NumParsed() != 3 {
		t.Errorf("expected 3/3 parsed, got %d/%d", job.NumParsed(), job.NumSentences())
	}
}

func TestAmbiguityStat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.job")
	defer teardown()
	//
	e := testEngine(t)
	job, err := e.Parse("Ása sá sól.")
	if err != nil {
		t.Fatal(err)
	}
	amb := job.Ambiguity()
	if amb < 1 {
		t.Errorf("ambiguity below 1: %f", amb)
	}
}

func TestIdempotentParsing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.job")
	defer teardown()
	//
	e := testEngine(t)
	flats := make([]string, 2)
	for i := range flats {
		job, err := e.Parse("Ása sá sól.")
		if err != nil {
			t.Fatal(err)
		}
		flats[i] = job.Sentences()[0].Tree().Root().Flat()
	}
	if flats[0] != flats[1] {
		t.Errorf("parsing is not idempotent:\n%s\n%s", flats[0], flats[1])
	}
}

func TestSentenceJSONRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.job")
	defer teardown()
	//
	e := testEngine(t)
	job, err := e.Parse("Ása sá sól.")
	if err != nil {
		t.Fatal(err)
	}
	s := job.Sentences()[0]
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	dump, err := UnmarshalSentence(data)
	if err != nil {
		t.Fatal(err)
	}
	if dump.Text != s.Text() {
		t.Errorf("text did not round-trip: %q != %q", dump.Text, s.Text())
	}
	if dump.FlatTree != s.Tree().Root().Flat() {
		t.Errorf("flat tree did not round-trip")
	}
	if dump.Score != s.Score() {
		t.Errorf("score did not round-trip")
	}
	if len(dump.Tokens) != len(s.Tokens()) {
		t.Errorf("token list did not round-trip")
	}
}
