package lex

import (
	"strings"

	"github.com/ornolfur/greina"
)

// Cases of the case-variant sets, in storage order.
var cases = []string{"NF", "ÞF", "ÞGF", "EF"}

// allGenders is the set of noun word classes; a category constraint of
// "no" accepts any of them.
var allGenders = map[string]bool{"kk": true, "kvk": true, "hk": true}

type stemMeaning struct {
	stem    uint32
	meaning uint32
}

// rawLookup returns the (stem index, meaning index) pairs for a word
// form, or nil if the form is not in the trie.
func (l *Lexicon) rawLookup(word []byte) []stemMeaning {
	ix, ok := l.mapping(word)
	if !ok {
		return nil
	}
	var result []stemMeaning
	for {
		w := l.u32(l.mappingsOffset + ix*4)
		result = append(result, stemMeaning{
			stem:    (w >> 11) & 0xFFFFF,
			meaning: w & 0x7FF,
		})
		if w&0x80000000 != 0 {
			// Last mapping indicator
			break
		}
		ix++
	}
	return result
}

// meaning decodes the meaning record with the given index into its
// (word class, subcategory, inflection) triple.
func (l *Lexicon) meaning(ix uint32) (cat, fl, inflection string) {
	off := l.u32(l.meaningsOffset + ix*4)
	rec := fromLatin1(l.buf[off : off+meaningRecordSize])
	fields := strings.Fields(rec)
	for len(fields) < 3 {
		fields = append(fields, "")
	}
	return fields[0], fields[1], fields[2]
}

// stem decodes the stem record with the given index into its lemma and
// lexicon id. An id of -1 means the stem has no id.
func (l *Lexicon) stem(ix uint32) (lemma string, id int) {
	off := l.u32(l.stemsOffset + ix*4)
	wid := l.u32(off)
	id = int(wid&0x7FFFFFFF) - 1
	p := off + 4
	lw := uint32(l.buf[p])
	return fromLatin1(l.buf[p+1 : p+1+lw]), id
}

// caseVariants returns all word forms of the stem with index ix having
// the given case (one of NF, ÞF, ÞGF, EF). The variant sets are stored
// front-coded against the stem string.
func (l *Lexicon) caseVariants(ix uint32, wanted string) []string {
	off := l.u32(l.stemsOffset + ix*4)
	wid := l.u32(off)
	if wid&0x80000000 == 0 {
		// No case variants associated with this stem
		return nil
	}
	p := off + 4
	lw := uint32(l.buf[p])
	stem := append([]byte(nil), l.buf[p+1:p+1+lw]...)
	lw++
	if lw&3 != 0 {
		lw += 4 - (lw & 3)
	}
	p += lw
	// p now points at the variant-set offset
	p = l.u32(p)
	for _, c := range cases {
		set, next := l.readVariantSet(p, stem)
		if c == wanted {
			return set
		}
		p = next
	}
	return nil
}

// readVariantSet decompresses one front-coded string set starting at
// offset p, with base as the implicit preceding word.
func (l *Lexicon) readVariantSet(p uint32, base []byte) ([]string, uint32) {
	b := l.buf
	lastW := base
	lw := len(lastW)
	var set []string
	for {
		// How many letters to cut off the end of the last word before
		// appending the divergent part?
		cut := int(b[p])
		p++
		if cut == 255 {
			break
		}
		common := lw - cut
		suffixLen := int(b[p])
		p++
		w := make([]byte, 0, common+suffixLen)
		w = append(w, lastW[:common]...)
		w = append(w, b[p:p+uint32(suffixLen)]...)
		p += uint32(suffixLen)
		set = append(set, fromLatin1(w))
		lastW = w
		lw = common + suffixLen
	}
	return set, p
}

// Lookup returns all meanings of the given word form. The result is
// empty for unknown forms. Lookup is deterministic and results are
// memoized; callers must not mutate the returned slice.
func (l *Lexicon) Lookup(form string) []greina.Meaning {
	if l.buf == nil {
		return nil
	}
	if cached, ok := l.cache.Get(form); ok {
		return cached
	}
	word, ok := latin1(form)
	if !ok {
		return nil
	}
	var result []greina.Meaning
	for _, sm := range l.rawLookup(word) {
		cat, fl, inflection := l.meaning(sm.meaning)
		lemma, id := l.stem(sm.stem)
		result = append(result, greina.Meaning{
			Lemma:      lemma,
			ID:         id,
			Cat:        cat,
			Fl:         fl,
			Form:       form,
			Inflection: inflection,
		})
	}
	l.cache.Add(form, result)
	return result
}

// LookupCat returns the meanings of form constrained to the given word
// class. A cat of "no" accepts nouns of any gender.
func (l *Lexicon) LookupCat(form, cat string) []greina.Meaning {
	var result []greina.Meaning
	for _, m := range l.Lookup(form) {
		if catMatches(cat, m.Cat) {
			result = append(result, m)
		}
	}
	return result
}

func catMatches(wanted, have string) bool {
	if wanted == "" {
		return true
	}
	if wanted == "no" {
		return allGenders[have]
	}
	return wanted == have
}

// CaseOptions constrain LookupCase results.
type CaseOptions struct {
	Cat        string // word class filter; "no" matches any noun gender
	Lemma      string // lemma filter
	Singular   bool   // force singular forms
	Indefinite bool   // drop definite articles and weak adjective declensions
}

// LookupCase returns the forms of the stems of the given word form,
// re-inflected into the requested case (NF, ÞF, ÞGF or EF), subject to
// the options. The inflection of each candidate must equal the source
// inflection with case-related features removed, so that e.g. plurality
// and definiteness survive re-casing unless explicitly suppressed.
func (l *Lexicon) LookupCase(form, wanted string, opt CaseOptions) []greina.Meaning {
	if l.buf == nil {
		return nil
	}
	word, ok := latin1(form)
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	var result []greina.Meaning
	for _, sm := range l.rawLookup(word) {
		cat, _, inflection := l.meaning(sm.meaning)
		if !catMatches(opt.Cat, cat) {
			continue
		}
		lemma, _ := l.stem(sm.stem)
		if opt.Lemma != "" && lemma != opt.Lemma {
			continue
		}
		wantedInflection := simplifyInflection(inflection, opt)
		for _, variant := range l.caseVariants(sm.stem, wanted) {
			for _, m := range l.Lookup(variant) {
				if m.Lemma != lemma || !catMatches(cat, m.Cat) {
					continue
				}
				if !strings.Contains(m.Inflection, wanted) {
					continue
				}
				if opt.Singular && !strings.Contains(m.Inflection, "ET") {
					continue
				}
				if opt.Indefinite &&
					(strings.Contains(m.Inflection, "gr") ||
						strings.Contains(m.Inflection, "FVB") ||
						strings.Contains(m.Inflection, "EVB")) {
					continue
				}
				if simplifyInflection(m.Inflection, opt) != wantedInflection {
					continue
				}
				key := m.Form + "/" + m.Inflection
				if !seen[key] {
					seen[key] = true
					result = append(result, m)
				}
			}
		}
	}
	return result
}

// simplifyInflection removes case-related information from an
// inflection string, plus number and definiteness information when the
// options ask for forced singular or indefinite forms.
func simplifyInflection(inflection string, opt CaseOptions) string {
	for _, s := range []string{"NF", "ÞGF", "ÞF", "EF", "2", "3"} {
		inflection = strings.ReplaceAll(inflection, s, "")
	}
	if opt.Singular {
		for _, s := range []string{"ET", "FT"} {
			inflection = strings.ReplaceAll(inflection, s, "")
		}
	}
	if opt.Indefinite {
		inflection = strings.ReplaceAll(inflection, "gr", "")
		// Neutralize weak vs. strong adjective declension, keep degree
		inflection = strings.ReplaceAll(inflection, "EVB", "ESB")
		inflection = strings.ReplaceAll(inflection, "FVB", "FSB")
	}
	return inflection
}

// Nominative returns the nominative forms of the stems of form.
func (l *Lexicon) Nominative(form string, opt CaseOptions) []greina.Meaning {
	return l.LookupCase(form, "NF", opt)
}

// Accusative returns the accusative forms of the stems of form.
func (l *Lexicon) Accusative(form string, opt CaseOptions) []greina.Meaning {
	return l.LookupCase(form, "ÞF", opt)
}

// Dative returns the dative forms of the stems of form.
func (l *Lexicon) Dative(form string, opt CaseOptions) []greina.Meaning {
	return l.LookupCase(form, "ÞGF", opt)
}

// Genitive returns the genitive forms of the stems of form.
func (l *Lexicon) Genitive(form string, opt CaseOptions) []greina.Meaning {
	return l.LookupCase(form, "EF", opt)
}
