package grammar

import (
	"fmt"
	"strings"

	"github.com/ornolfur/greina"
	"github.com/ornolfur/greina/cfg"
)

// Terminal is a typed predicate over tokens. Word-class terminals
// ("no_et_nf_kvk") match word tokens through their lexicon meanings;
// typed-token terminals ("tala", "person_kk_nf") match tokens of a
// specific kind; literal terminals ("og", 'hafa') match surface text or
// lemmas.
type Terminal interface {
	Name() string
	Index() int
	// First is the terminal category: the word class, the typed-token
	// name, or the literal text for literal terminals.
	First() string
	NumVariants() int
	// Variant returns the i-th variant; negative indices count from the
	// end. Out-of-range access returns "".
	Variant(i int) string
	HasVariant(v string) bool
	IsLiteral() bool
	// VerbCases returns the "_þgf_þf" style argument case suffix of a
	// verb terminal, or "".
	VerbCases() string
	// Matches decides whether the terminal accepts the token. For word
	// tokens the returned meaning is the one justifying the match; it
	// is nil for typed tokens and for surface literals without a
	// category.
	Matches(tok *greina.Tok, set *cfg.Settings) (*greina.Meaning, bool)
}

// Word classes that terminals may use as their category.
var wordClasses = map[string]bool{
	"no": true, "so": true, "lo": true, "fs": true, "ao": true, "eo": true,
	"fn": true, "pfn": true, "abfn": true, "gr": true, "st": true,
	"stt": true, "nhm": true, "to": true, "töl": true, "uh": true,
}

// Typed-token terminal names and the token kinds they accept.
var typedTerminals = map[string][]greina.TokKind{
	"person":        {greina.PERSON},
	"entity":        {greina.ENTITY},
	"sérnafn":       {greina.WORD, greina.ENTITY},
	"fyrirtæki":     {greina.COMPANY},
	"gata":          {greina.WORD},
	"tala":          {greina.NUMBER},
	"prósenta":      {greina.PERCENT},
	"ártal":         {greina.YEAR},
	"raðnr":         {greina.ORDINAL},
	"sequence":      {greina.SERIALNUMBER},
	"dagsföst":      {greina.DATEABS},
	"dagsafs":       {greina.DATEREL},
	"tími":          {greina.TIME},
	"tímapunktur":   {greina.TIMESTAMP, greina.TIMESTAMPABS, greina.TIMESTAMPREL},
	"lén":           {greina.DOMAIN},
	"myllumerki":    {greina.HASHTAG},
	"tölvupóstfang": {greina.EMAIL},
	"grm":           {greina.PUNCTUATION},
}

// parseTerminal parses a terminal name into its concrete terminal.
func parseTerminal(name string, index int) (Terminal, error) {
	if strings.HasPrefix(name, `"`) || strings.HasPrefix(name, "'") {
		return parseLiteralTerminal(name, index)
	}
	parts := strings.Split(name, "_")
	first := parts[0]
	_, typed := typedTerminals[first]
	if !wordClasses[first] && !typed {
		return nil, fmt.Errorf("unknown terminal category in %q", name)
	}
	t := &BinTerminal{name: name, index: index, first: first, argCount: -1}
	variants := parts[1:]
	if first == "so" && len(variants) > 0 {
		switch variants[0] {
		case "0", "1", "2":
			t.argCount = int(variants[0][0] - '0')
			if len(variants) < 1+t.argCount {
				return nil, fmt.Errorf("verb terminal %q is missing argument cases", name)
			}
			t.argCases = variants[1 : 1+t.argCount]
			for _, c := range t.argCases {
				if !IsCase(c) {
					return nil, fmt.Errorf("bad argument case %q in %q", c, name)
				}
			}
		}
	}
	for i, v := range variants {
		if t.argCount >= 0 && i <= t.argCount {
			// argument count and cases are not feature variants
			continue
		}
		if !KnownVariant(v) {
			return nil, fmt.Errorf("unknown variant %q in terminal %q", v, name)
		}
		t.featVariants = append(t.featVariants, v)
	}
	t.variants = variants
	return t, nil
}

// BinTerminal is a category/variant terminal backed by the lexicon.
type BinTerminal struct {
	name    string
	index   int
	first   string
	variants []string // all variants, in name order
	// featVariants excludes the verb argument count and cases
	featVariants []string
	argCount     int // verb argument count, or -1
	argCases     []string
}

func (t *BinTerminal) Name() string     { return t.name }
func (t *BinTerminal) Index() int       { return t.index }
func (t *BinTerminal) First() string    { return t.first }
func (t *BinTerminal) IsLiteral() bool  { return false }
func (t *BinTerminal) NumVariants() int { return len(t.variants) }

func (t *BinTerminal) Variant(i int) string {
	if i < 0 {
		i += len(t.variants)
	}
	if i < 0 || i >= len(t.variants) {
		return ""
	}
	return t.variants[i]
}

func (t *BinTerminal) HasVariant(v string) bool {
	for _, x := range t.variants {
		if x == v {
			return true
		}
	}
	return false
}

// VerbCases returns "_case1[_case2]" for verb argument terminals.
func (t *BinTerminal) VerbCases() string {
	var b strings.Builder
	for _, c := range t.argCases {
		b.WriteString("_")
		b.WriteString(c)
	}
	return b.String()
}

func (t *BinTerminal) String() string { return t.name }

// --- literal terminals -----------------------------------------------------

// LiteralTerminal matches a fixed surface text ("og") or lemma ('hafa'),
// case-neutrally. A category and variants may follow the closing quote,
// as in "á:fs" or 'hafa:so'_nh.
type LiteralTerminal struct {
	name     string
	index    int
	text     string
	lemma    bool // 'lemma' vs "surface"
	cat      string
	variants []string
}

func parseLiteralTerminal(name string, index int) (Terminal, error) {
	quote := name[0]
	rest := name[1:]
	end := strings.IndexByte(rest, quote)
	if end < 0 {
		return nil, fmt.Errorf("unterminated literal terminal %q", name)
	}
	body := rest[:end]
	tail := rest[end+1:]
	t := &LiteralTerminal{name: name, index: index, lemma: quote == '\''}
	if colon := strings.IndexByte(body, ':'); colon >= 0 {
		t.cat = body[colon+1:]
		body = body[:colon]
	}
	if body == "" {
		return nil, fmt.Errorf("empty literal terminal %q", name)
	}
	t.text = strings.ToLower(body)
	if tail != "" {
		if !strings.HasPrefix(tail, "_") {
			return nil, fmt.Errorf("malformed literal terminal %q", name)
		}
		for _, v := range strings.Split(tail[1:], "_") {
			if !KnownVariant(v) {
				return nil, fmt.Errorf("unknown variant %q in literal terminal %q", v, name)
			}
			t.variants = append(t.variants, v)
		}
	}
	return t, nil
}

func (t *LiteralTerminal) Name() string     { return t.name }
func (t *LiteralTerminal) Index() int       { return t.index }
func (t *LiteralTerminal) IsLiteral() bool  { return true }
func (t *LiteralTerminal) NumVariants() int { return len(t.variants) }
func (t *LiteralTerminal) VerbCases() string { return "" }

// First returns the literal category if annotated, else the text.
func (t *LiteralTerminal) First() string {
	if t.cat != "" {
		return t.cat
	}
	return t.text
}

func (t *LiteralTerminal) Variant(i int) string {
	if i < 0 {
		i += len(t.variants)
	}
	if i < 0 || i >= len(t.variants) {
		return ""
	}
	return t.variants[i]
}

func (t *LiteralTerminal) HasVariant(v string) bool {
	for _, x := range t.variants {
		if x == v {
			return true
		}
	}
	return false
}

func (t *LiteralTerminal) String() string { return t.name }
