package scanner

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/ornolfur/greina"
	"github.com/ornolfur/greina/lex"
)

func testScanner(t *testing.T) *Scanner {
	t.Helper()
	img, err := lex.Pack([]lex.Entry{
		{Form: "ása", Lemma: "Ása", ID: 1, Cat: "kvk", Fl: "ism", Inflection: "NFET"},
		{Form: "sá", Lemma: "sjá", ID: 2, Cat: "so", Fl: "alm", Inflection: "GM-FH-ÞT-3P-ET"},
		{Form: "sól", Lemma: "sól", ID: 3, Cat: "kvk", Fl: "alm", Inflection: "ÞFET"},
	})
	if err != nil {
		t.Fatal(err)
	}
	l, err := lex.OpenBuffer(img)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { l.Close() })
	s, err := New(l)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func kinds(s Sentence) []greina.TokKind {
	out := make([]greina.TokKind, len(s))
	for i, t := range s {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeSentence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.scan")
	defer teardown()
	//
	s := testScanner(t)
	sentences, err := s.TokenizeFlat("Ása sá sól.")
	if err != nil {
		t.Fatal(err)
	}
	if len(sentences) != 1 {
		t.Fatalf("expected 1 sentence, got %d", len(sentences))
	}
	sent := sentences[0]
	if len(sent) != 4 {
		t.Fatalf("expected 4 tokens, got %d: %v", len(sent), sent)
	}
	want := []greina.TokKind{greina.WORD, greina.WORD, greina.WORD, greina.PUNCTUATION}
	for i, k := range kinds(sent) {
		if k != want[i] {
			t.Errorf("token %d kind = %v, want %v", i, k, want[i])
		}
	}
	// Sentence-initial 'Ása' finds its meanings via the lower-case retry
	if len(sent[0].Meanings) != 1 || sent[0].Meanings[0].Lemma != "Ása" {
		t.Errorf("meanings of 'Ása' not attached: %v", sent[0].Meanings)
	}
	if len(sent[2].Meanings) != 1 {
		t.Errorf("meanings of 'sól' not attached")
	}
	if sent[1].Index != 1 || sent[3].Index != 3 {
		t.Errorf("token indices not sequential")
	}
}

func TestTokenizeSplitsSentences(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.scan")
	defer teardown()
	//
	s := testScanner(t)
	sentences, err := s.TokenizeFlat("Ása sá sól. Sól sá Ása!")
	if err != nil {
		t.Fatal(err)
	}
	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(sentences))
	}
}

func TestTokenizeAbbreviation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.scan")
	defer teardown()
	//
	s := testScanner(t)
	sentences, err := s.TokenizeFlat("Ása sá t.d. sól.")
	if err != nil {
		t.Fatal(err)
	}
	if len(sentences) != 1 {
		t.Fatalf("abbreviation should not split the sentence, got %d", len(sentences))
	}
	if sentences[0][2].Text != "t.d." {
		t.Errorf("abbreviation token = %q", sentences[0][2].Text)
	}
}

func TestTokenizeParagraphMarkers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.scan")
	defer teardown()
	//
	s := testScanner(t)
	paragraphs, err := s.Tokenize("[[ Ása sá sól. ]] [[ Sól sá Ása. ]]")
	if err != nil {
		t.Fatal(err)
	}
	if len(paragraphs) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(paragraphs))
	}
	if len(paragraphs[0]) != 1 || len(paragraphs[1]) != 1 {
		t.Errorf("each paragraph should hold one sentence")
	}
}

func TestTokenizeNumbersAndYears(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.scan")
	defer teardown()
	//
	s := testScanner(t)
	sentences, err := s.TokenizeFlat("Ása sá 10 sólir árið 1985")
	if err != nil {
		t.Fatal(err)
	}
	sent := sentences[0]
	var num, year *greina.Tok
	for _, tok := range sent {
		switch tok.Kind {
		case greina.NUMBER:
			num = tok
		case greina.YEAR:
			year = tok
		}
	}
	if num == nil || num.Val != 10 {
		t.Errorf("NUMBER token 10 missing: %v", sent)
	}
	if year == nil || year.Val != 1985 {
		t.Errorf("YEAR token 1985 missing: %v", sent)
	}
}

func TestKnownRatio(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "greina.scan")
	defer teardown()
	//
	s := testScanner(t)
	sentences, err := s.TokenizeFlat("Ása sá sól.")
	if err != nil {
		t.Fatal(err)
	}
	if r := KnownRatio(sentences[0]); r != 1 {
		t.Errorf("expected known ratio 1, got %f", r)
	}
	sentences, err = s.TokenizeFlat("The quick brown fox.")
	if err != nil {
		t.Fatal(err)
	}
	if r := KnownRatio(sentences[0]); r != 0 {
		t.Errorf("expected known ratio 0, got %f", r)
	}
}
