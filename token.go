package greina

import (
	"fmt"
	"strings"
)

// --- Token kinds -----------------------------------------------------------

// TokKind is the category of a token produced by the tokenizer.
type TokKind int

// Token kinds. WORD tokens carry lexicon meanings; the typed kinds
// (NUMBER, YEAR, PERSON, ...) carry kind-specific payloads instead.
const (
	UNKNOWN TokKind = iota
	WORD
	NUMBER
	PERCENT
	ORDINAL
	YEAR
	DATEABS
	DATEREL
	TIME
	TIMESTAMP
	TIMESTAMPABS
	TIMESTAMPREL
	AMOUNT
	CURRENCY
	MEASUREMENT
	URL
	DOMAIN
	HASHTAG
	EMAIL
	SERIALNUMBER
	TELNO
	PUNCTUATION
	PERSON
	ENTITY
	COMPANY
	SBEGIN // sentence begin marker
	SEND   // sentence end marker
	PBEGIN // paragraph begin marker '[['
	PEND   // paragraph end marker ']]'
)

var kindNames = map[TokKind]string{
	UNKNOWN:      "UNKNOWN",
	WORD:         "WORD",
	NUMBER:       "NUMBER",
	PERCENT:      "PERCENT",
	ORDINAL:      "ORDINAL",
	YEAR:         "YEAR",
	DATEABS:      "DATEABS",
	DATEREL:      "DATEREL",
	TIME:         "TIME",
	TIMESTAMP:    "TIMESTAMP",
	TIMESTAMPABS: "TIMESTAMPABS",
	TIMESTAMPREL: "TIMESTAMPREL",
	AMOUNT:       "AMOUNT",
	CURRENCY:     "CURRENCY",
	MEASUREMENT:  "MEASUREMENT",
	URL:          "URL",
	DOMAIN:       "DOMAIN",
	HASHTAG:      "HASHTAG",
	EMAIL:        "EMAIL",
	SERIALNUMBER: "SERIALNUMBER",
	TELNO:        "TELNO",
	PUNCTUATION:  "PUNCTUATION",
	PERSON:       "PERSON",
	ENTITY:       "ENTITY",
	COMPANY:      "COMPANY",
	SBEGIN:       "S_BEGIN",
	SEND:         "S_END",
	PBEGIN:       "P_BEGIN",
	PEND:         "P_END",
}

func (k TokKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("TokKind(%d)", int(k))
}

// --- Meaning records -------------------------------------------------------

// Meaning is one lexicon entry for a word form: its lemma, an opaque
// lexicon id, the word class (kk/kvk/hk for nouns, so, lo, ao, fs, ...),
// a subcategory (alm, ism, fyr, ...), the word form itself and the
// inflection feature string (e.g. "NFET" or "GM-FH-NT-3P-ET").
type Meaning struct {
	Lemma      string
	ID         int
	Cat        string
	Fl         string
	Form       string
	Inflection string
}

func (m Meaning) String() string {
	return fmt.Sprintf("%s/%s/%s (%s)", m.Lemma, m.Cat, m.Inflection, m.Form)
}

// PersonName is one candidate reading of a person-name token.
type PersonName struct {
	Name   string
	Gender string // kk, kvk or empty if unknown
	Case   string // nf, þf, þgf, ef or empty
}

// DateTriple is a (year, month, day) payload; zero fields are unknown.
type DateTriple struct {
	Year  int
	Month int
	Day   int
}

// --- Tokens ----------------------------------------------------------------

// Tok is a single input token. Tokens are immutable after construction;
// the parser, reducer and simplifier only ever read them.
type Tok struct {
	Kind TokKind
	Text string // original surface text
	Norm string // normalized text (punctuation is normalized here)

	// Payload fields; which ones are valid depends on Kind.
	Meanings []Meaning    // WORD: candidate lexicon meanings
	Persons  []PersonName // PERSON: candidate name readings
	Val      float64      // NUMBER, PERCENT, AMOUNT, YEAR, ORDINAL
	Cur      string       // AMOUNT, CURRENCY: ISO currency code
	Date     DateTriple   // DATEABS, DATEREL, TIMESTAMP*
	Hour     int          // TIME, TIMESTAMP*
	Min      int
	Sec      int

	// Index of the token within its sentence, 0-based.
	Index int
}

// Lower returns the normalized token text in lower case.
func (t *Tok) Lower() string {
	return strings.ToLower(t.txt())
}

// IsUpper reports whether the token text starts with an upper-case letter.
func (t *Tok) IsUpper() bool {
	txt := t.txt()
	if txt == "" {
		return false
	}
	r := []rune(txt)
	lower := []rune(strings.ToLower(txt))
	return r[0] != lower[0]
}

// IsWord reports whether this is a WORD token.
func (t *Tok) IsWord() bool { return t.Kind == WORD }

// HasMeanings reports whether a WORD token has at least one lexicon meaning.
func (t *Tok) HasMeanings() bool { return t.Kind == WORD && len(t.Meanings) > 0 }

func (t *Tok) txt() string {
	if t.Kind == PUNCTUATION && t.Norm != "" {
		return t.Norm
	}
	return t.Text
}

func (t *Tok) String() string {
	return fmt.Sprintf("[%s %q]", t.Kind, t.Text)
}

// --- Spans -----------------------------------------------------------------

// Span is a small type capturing a run of input tokens. For every
// terminal and non-terminal, a parse forest tracks which input positions
// the symbol covers. A span denotes a start position and the position
// just behind the end.
type Span [2]int // (x…y)

// From returns the start value of a span.
func (s Span) From() int {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() int {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() int {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
