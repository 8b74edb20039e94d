package grammar

import (
	"strings"

	"github.com/ornolfur/greina"
	"github.com/ornolfur/greina/cfg"
)

// Adverbs that can never be a qualifier adverb ("eo").
var notEo = map[string]bool{
	"og": true, "eða": true, "sem": true, "ekkert": true,
}

// Prepositions that must nevertheless be allowed as adverbs.
var notNotEo = map[string]bool{
	"um": true, "nær": true, "nærri": true, "meðal": true,
	"neðan": true, "jafnframt": true, "samt": true, "því": true,
}

// Matches implements Terminal for category/variant terminals.
func (t *BinTerminal) Matches(tok *greina.Tok, set *cfg.Settings) (*greina.Meaning, bool) {
	if kinds, typed := typedTerminals[t.first]; typed {
		return t.matchTyped(tok, kinds, set)
	}
	if tok.Kind != greina.WORD {
		return nil, false
	}
	for i := range tok.Meanings {
		m := &tok.Meanings[i]
		if t.matchMeaning(tok, m, set) {
			return m, true
		}
	}
	return nil, false
}

// matchMeaning checks one lexicon meaning against the terminal.
func (t *BinTerminal) matchMeaning(tok *greina.Tok, m *greina.Meaning, set *cfg.Settings) bool {
	switch t.first {
	case "no":
		return t.matchNoun(m)
	case "so":
		return t.matchVerb(m, set)
	case "lo":
		return t.matchAdjective(m, set)
	case "fs":
		return t.matchPreposition(tok, m, set)
	case "ao":
		return t.matchAdverb(m)
	case "eo":
		return t.matchQualifierAdverb(tok, m, set)
	default:
		return t.matchDefault(m)
	}
}

// matchNoun matches noun terminals. The noun word classes in the
// lexicon are the genders themselves (kk/kvk/hk); a gender variant on
// the terminal therefore constrains the meaning's class.
func (t *BinTerminal) matchNoun(m *greina.Meaning) bool {
	if !genderSet[m.Cat] {
		return false
	}
	for _, v := range t.featVariants {
		switch {
		case IsGender(v):
			if m.Cat != v {
				return false
			}
		case v == "gr":
			if !strings.Contains(m.Inflection, "gr") {
				return false
			}
		case v == "abbrev":
			if m.Fl != "skst" {
				return false
			}
		default:
			if !hasFeature(v, m.Inflection) {
				return false
			}
		}
	}
	return true
}

// matchVerb matches verb terminals, including argument frames and
// oblique subjects.
func (t *BinTerminal) matchVerb(m *greina.Meaning, set *cfg.Settings) bool {
	if m.Cat != "so" {
		return false
	}
	form := m.Inflection
	verb := m.Lemma
	if t.HasVariant("subj") {
		return t.matchVerbSubj(m, set)
	}
	// No match of strictly impersonal inflections for plain terminals
	if strings.Contains(form, "OP") && !t.HasVariant("op") {
		return false
	}
	if t.HasVariant("expl") && !strings.Contains(form, "það") {
		return false
	}
	if t.HasVariant("et") && strings.Contains(form, "FT") {
		return false
	}
	if t.HasVariant("ft") && strings.Contains(form, "ET") {
		return false
	}
	// Required inflection features named by the terminal variants
	for _, v := range t.featVariants {
		if rq := verbFeature[v]; rq != "" && !strings.Contains(form, rq) {
			return false
		}
	}
	// Restrictive features: only accepted when explicitly requested
	for v, f := range restrictiveFeature {
		if strings.Contains(form, f) && !t.HasVariant(v) {
			return false
		}
	}
	if t.HasVariant("lhþt") && strings.Contains(form, "VB") && !t.HasVariant("vb") {
		// Only the strong declension of the past participle, unless
		// the weak one is explicitly requested
		return false
	}
	if t.argCount < 0 {
		if t.HasVariant("lhþt") {
			// A case on a participle terminal is not an argument case;
			// the token must carry it itself
			for _, c := range Cases {
				if t.HasVariant(c) && !hasFeature(c, form) {
					return false
				}
			}
		}
		return true
	}
	if strings.Contains(form, "MM") {
		// Middle-voice forms resolve through the -st verb stem,
		// e.g. "eignaðist" belongs to "eignast", not "eigna"
		verb = mmVerbStem(verb)
	}
	key := verb + t.VerbCases()
	if set.MatchesArguments(key) {
		return true
	}
	if t.argCount == 0 && !set.KnownVerb(verb) {
		// Allow unknown verbs to match 0-argument terminals
		return true
	}
	return false
}

// matchVerbSubj matches so_subj terminals: verbs whose subject is in an
// oblique case. The subject case is the last variant of the terminal.
func (t *BinTerminal) matchVerbSubj(m *greina.Meaning, set *cfg.Settings) bool {
	form := m.Inflection
	if t.HasVariant("nh") && !strings.Contains(form, "NH") {
		return false
	}
	if t.HasVariant("mm") {
		return strings.Contains(form, "MM")
	}
	if t.HasVariant("gm") && !strings.Contains(form, "GM") {
		return false
	}
	if t.HasVariant("et") && !strings.Contains(form, "ET") {
		return false
	}
	if t.HasVariant("ft") && !strings.Contains(form, "FT") {
		return false
	}
	formLh := strings.Contains(form, "LHÞT")
	if t.HasVariant("lhþt") {
		return formLh && set.SubjectMatches(m.Lemma, "lhþt")
	}
	if formLh {
		return false
	}
	formSagnb := strings.Contains(form, "SAGNB")
	if t.HasVariant("none") {
		if t.HasVariant("sagnb") != formSagnb {
			return false
		}
		return set.SubjectMatches(m.Lemma, "none")
	}
	if formSagnb && !t.HasVariant("sagnb") {
		return false
	}
	if t.argCount == 1 {
		if !set.MatchesArguments(m.Lemma + "_" + t.Variant(1)) {
			return false
		}
	}
	return set.SubjectMatches(m.Lemma, t.Variant(-1))
}

// matchAdjective matches adjective terminals.
func (t *BinTerminal) matchAdjective(m *greina.Meaning, set *cfg.Settings) bool {
	if m.Cat != "lo" {
		return false
	}
	for _, v := range t.featVariants {
		switch v {
		case "sþf", "sþgf", "sef":
			// Adjective with an argument in a given case
			if !set.AdjectivePredicates[m.Lemma][v[len("s"):]] {
				return false
			}
		default:
			if !hasFeature(v, m.Inflection) {
				return false
			}
		}
	}
	return true
}

// matchPreposition matches preposition terminals. Prepositions are
// table-driven: the preposition file lists which cases each one
// governs; the lexicon is consulted as a fallback.
func (t *BinTerminal) matchPreposition(tok *greina.Tok, m *greina.Meaning, set *cfg.Settings) bool {
	c := t.Variant(0)
	if c == "" {
		return m.Cat == "fs"
	}
	if set.PrepositionGoverns(tok.Lower(), c) {
		return true
	}
	return m.Cat == "fs" && hasFeature(c, m.Inflection)
}

// matchAdverb matches plain adverb terminals.
func (t *BinTerminal) matchAdverb(m *greina.Meaning) bool {
	if m.Cat != "ao" {
		return false
	}
	for _, v := range t.featVariants {
		if !hasFeature(v, m.Inflection) {
			return false
		}
	}
	return true
}

// matchQualifierAdverb matches "eo": an adverb that cannot also be a
// preposition and can therefore qualify a noun directly.
func (t *BinTerminal) matchQualifierAdverb(tok *greina.Tok, m *greina.Meaning, set *cfg.Settings) bool {
	if m.Cat != "ao" {
		return false
	}
	lower := tok.Lower()
	if notEo[lower] {
		return false
	}
	if set.Prepositions[lower] != nil && !notNotEo[lower] {
		return false
	}
	return true
}

// matchDefault handles the remaining word classes (fn, pfn, abfn, gr,
// st, stt, nhm, to, töl, uh): the word class must agree and every
// terminal variant must be present in the inflection.
func (t *BinTerminal) matchDefault(m *greina.Meaning) bool {
	if m.Cat != t.first {
		return false
	}
	for _, v := range t.featVariants {
		if !hasFeature(v, m.Inflection) {
			return false
		}
	}
	return true
}

// mmVerbStem maps a verb lemma to its middle-voice stem:
// "eigna" -> "eignast".
func mmVerbStem(verb string) string {
	return verb + "st"
}

// --- typed tokens ----------------------------------------------------------

// matchTyped matches terminals for typed (non-word) tokens.
func (t *BinTerminal) matchTyped(tok *greina.Tok, kinds []greina.TokKind, set *cfg.Settings) (*greina.Meaning, bool) {
	kindOk := false
	for _, k := range kinds {
		if tok.Kind == k {
			kindOk = true
			break
		}
	}
	if !kindOk {
		return nil, false
	}
	switch t.first {
	case "person":
		return nil, t.matchPerson(tok)
	case "sérnafn":
		// A proper name: an uppercase word with no lexicon meanings,
		// or a recognized entity
		if tok.Kind == greina.ENTITY {
			return nil, true
		}
		return nil, tok.IsUpper() && !tok.HasMeanings()
	case "gata":
		// Street names are marked in the lexicon subcategory
		for i := range tok.Meanings {
			if tok.Meanings[i].Fl == "göt" {
				return &tok.Meanings[i], true
			}
		}
		return nil, false
	case "tala":
		return nil, t.matchNumber(tok)
	case "ártal":
		return nil, len(t.variants) == 0
	default:
		return nil, true
	}
}

// matchPerson matches person_[case]_[gender] terminals against the
// candidate readings of a person-name token.
func (t *BinTerminal) matchPerson(tok *greina.Tok) bool {
	if len(tok.Persons) == 0 {
		return len(t.variants) == 0
	}
	for _, p := range tok.Persons {
		ok := true
		for _, v := range t.variants {
			switch {
			case IsGender(v):
				if p.Gender != "" && p.Gender != v {
					ok = false
				}
			case IsCase(v):
				if p.Case != "" && p.Case != v {
					ok = false
				}
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// matchNumber matches tala terminals; a singular/plural variant must
// agree with the numeric value.
func (t *BinTerminal) matchNumber(tok *greina.Tok) bool {
	if t.HasVariant("et") && tok.Val != 1 && tok.Val != -1 {
		return false
	}
	if t.HasVariant("ft") && (tok.Val == 1 || tok.Val == -1) {
		return false
	}
	return true
}

// Matches implements Terminal for literal terminals. Surface literals
// compare the normalized token text case-neutrally; lemma literals
// require a lexicon meaning with the given lemma.
func (t *LiteralTerminal) Matches(tok *greina.Tok, set *cfg.Settings) (*greina.Meaning, bool) {
	if t.lemma {
		if tok.Kind != greina.WORD {
			return nil, false
		}
		for i := range tok.Meanings {
			m := &tok.Meanings[i]
			if strings.ToLower(m.Lemma) != t.text {
				continue
			}
			if t.cat != "" && !literalCatMatches(t.cat, m.Cat) {
				continue
			}
			ok := true
			for _, v := range t.variants {
				if !hasFeature(v, m.Inflection) {
					ok = false
					break
				}
			}
			if ok {
				return m, true
			}
		}
		return nil, false
	}
	if tok.Lower() != t.text {
		return nil, false
	}
	if t.cat != "" && tok.Kind == greina.WORD {
		for i := range tok.Meanings {
			if literalCatMatches(t.cat, tok.Meanings[i].Cat) {
				return &tok.Meanings[i], true
			}
		}
		return nil, false
	}
	return nil, true
}

func literalCatMatches(wanted, have string) bool {
	if wanted == "no" {
		return genderSet[have]
	}
	return wanted == have
}
