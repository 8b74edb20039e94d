package greina

import "testing"

func TestSpan(t *testing.T) {
	s := Span{2, 5}
	if s.From() != 2 || s.To() != 5 || s.Len() != 3 {
		t.Errorf("span accessors broken: %v", s)
	}
	if s.IsNull() {
		t.Error("non-zero span reported as null")
	}
	ext := s.Extend(Span{0, 3})
	if ext != (Span{0, 5}) {
		t.Errorf("Extend = %v", ext)
	}
	if s.String() != "(2…5)" {
		t.Errorf("String = %s", s.String())
	}
}

func TestTokLower(t *testing.T) {
	tok := &Tok{Kind: WORD, Text: "Ása"}
	if tok.Lower() != "ása" {
		t.Errorf("Lower = %q", tok.Lower())
	}
	if !tok.IsUpper() {
		t.Error("Ása should report upper case")
	}
	p := &Tok{Kind: PUNCTUATION, Text: "—", Norm: "-"}
	if p.Lower() != "-" {
		t.Errorf("punctuation Lower should use the normalized form, got %q", p.Lower())
	}
}

func TestTokKindString(t *testing.T) {
	if WORD.String() != "WORD" || PUNCTUATION.String() != "PUNCTUATION" {
		t.Error("kind names broken")
	}
	if TokKind(999).String() == "" {
		t.Error("unknown kinds should still print")
	}
}
