/*
Package scanner tokenizes UTF-8 text into greina.Tok records: words,
numbers, years, ordinals, percentages, e-mail addresses, URLs and
punctuation. Word tokens are annotated with their lexicon meanings, so
the parser downstream never touches the lexicon itself.

The scanner also splits the token stream into sentences and paragraphs.
Sentences end at sentence-final punctuation (with a guard against
common abbreviations); the markers "[[" and "]]", surrounded by
whitespace, open and close paragraphs explicitly.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package scanner

import (
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/ornolfur/greina"
	"github.com/ornolfur/greina/lex"
)

// tracer traces with key 'greina.scan'.
func tracer() tracing.Trace {
	return tracing.Select("greina.scan")
}

// Sentence is one tokenized sentence.
type Sentence []*greina.Tok

// Paragraph is a run of sentences between paragraph markers.
type Paragraph []Sentence

// Abbreviations that do not end a sentence despite their dots.
var abbreviations = map[string]bool{
	"t.d.": true, "þ.e.": true, "þ.e.a.s.": true, "o.s.frv.": true,
	"m.a.": true, "a.m.k.": true, "u.þ.b.": true, "hr.": true,
	"dr.": true, "nr.": true, "bls.": true, "kl.": true,
}

// Punctuation that terminates a sentence.
var sentenceFinal = map[string]bool{".": true, "!": true, "?": true}

// Scanner tokenizes text. It is immutable after New and safe for
// concurrent use; each Tokenize call owns its own lexmachine scanner.
type Scanner struct {
	lexer   *lexmachine.Lexer
	lexicon *lex.Lexicon // may be nil: tokens get no meanings
}

// New compiles the token patterns into a scanner. The lexicon may be
// nil, in which case word tokens carry no meanings.
func New(lexicon *lex.Lexicon) (*Scanner, error) {
	s := &Scanner{lexicon: lexicon}
	s.lexer = lexmachine.NewLexer()
	s.addPatterns()
	if err := s.lexer.Compile(); err != nil {
		tracer().Errorf("error compiling scanner DFA: %v", err)
		return nil, err
	}
	return s, nil
}

// letterGroup is a byte-level pattern for one letter: ASCII letters or
// a two-byte UTF-8 sequence from the Latin-1 supplement, which covers
// all Icelandic letters (á, ð, é, í, ó, ú, ý, þ, æ, ö and their upper
// case forms).
func letterGroup() []byte {
	group := []byte("([a-zA-Z]|\xc3[")
	group = append(group, 0x80, '-', 0xbf)
	group = append(group, ']', ')')
	return group
}

func (s *Scanner) addPatterns() {
	letter := letterGroup()
	pat := func(parts ...[]byte) []byte {
		var p []byte
		for _, part := range parts {
			p = append(p, part...)
		}
		return p
	}
	mk := func(kind greina.TokKind) lexmachine.Action {
		return func(sc *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
			return sc.Token(int(kind), string(m.Bytes), m), nil
		}
	}
	skip := func(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
		return nil, nil
	}

	s.lexer.Add([]byte(`( |\t|\n|\r)+`), skip)
	s.lexer.Add([]byte(`\[\[`), mk(greina.PBEGIN))
	s.lexer.Add([]byte(`\]\]`), mk(greina.PEND))
	// Abbreviations like "t.d." are scanned as single word tokens
	s.lexer.Add(pat(letter, []byte(`+\.(`), letter, []byte(`+\.)+`)), mk(greina.WORD))
	s.lexer.Add(pat(letter, []byte(`+\.`)), s.abbrevAction)
	// E-mail before the word pattern so the '@' binds the whole token
	s.lexer.Add(pat(letter, []byte(`+@`), letter, []byte(`+(\.`), letter, []byte(`+)+`)), mk(greina.EMAIL))
	s.lexer.Add(pat([]byte(`(http(s?)://|www\.)[^ \t\n\r]+`)), mk(greina.URL))
	s.lexer.Add(pat(letter, []byte(`+(-`), letter, []byte(`+)*`)), mk(greina.WORD))
	s.lexer.Add([]byte(`[0-9][0-9]?\.`), mk(greina.ORDINAL))
	s.lexer.Add([]byte(`[0-9]+(\.[0-9][0-9][0-9])*(,[0-9]+)?%`), mk(greina.PERCENT))
	s.lexer.Add([]byte(`[0-9]+(\.[0-9][0-9][0-9])*(,[0-9]+)?`), s.numberAction)
	s.lexer.Add([]byte(`[0-9][0-9]?:[0-9][0-9](:[0-9][0-9])?`), mk(greina.TIME))
	for _, p := range []string{`\.`, `,`, `:`, `;`, `!`, `\?`, `\(`, `\)`, `"`, `-`, `—`, `–`, `«`, `»`} {
		s.lexer.Add([]byte(p), mk(greina.PUNCTUATION))
	}
}

// abbrevAction classifies "word." matches: known abbreviations stay a
// single word token, everything else is re-scanned as word + dot.
func (s *Scanner) abbrevAction(sc *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	txt := string(m.Bytes)
	if abbreviations[strings.ToLower(txt)] {
		return sc.Token(int(greina.WORD), txt, m), nil
	}
	// Push the final dot back and emit only the word part
	sc.TC = m.TC + len(m.Bytes) - 1
	return sc.Token(int(greina.WORD), txt[:len(txt)-1], m), nil
}

// numberAction classifies digit runs: plausible year numbers become
// YEAR tokens, everything else NUMBER.
func (s *Scanner) numberAction(sc *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	txt := string(m.Bytes)
	if len(txt) == 4 {
		if y, err := strconv.Atoi(txt); err == nil && y >= 1776 && y <= 2100 {
			return sc.Token(int(greina.YEAR), txt, m), nil
		}
	}
	return sc.Token(int(greina.NUMBER), txt, m), nil
}

// Tokenize scans the text into paragraphs of sentences.
func (s *Scanner) Tokenize(text string) ([]Paragraph, error) {
	lmScanner, err := s.lexer.Scanner([]byte(text))
	if err != nil {
		return nil, err
	}
	var paragraphs []Paragraph
	var paragraph Paragraph
	var sentence Sentence

	endSentence := func() {
		if len(sentence) > 0 {
			paragraph = append(paragraph, sentence)
			sentence = nil
		}
	}
	endParagraph := func() {
		endSentence()
		if len(paragraph) > 0 {
			paragraphs = append(paragraphs, paragraph)
			paragraph = nil
		}
	}

	for {
		raw, err, eos := lmScanner.Next()
		if err != nil {
			if ui, is := err.(*machines.UnconsumedInput); is {
				// Skip a byte the DFA cannot consume and continue
				tracer().Infof("unscannable input at %d", ui.FailTC)
				lmScanner.TC = ui.FailTC + 1
				continue
			}
			return nil, err
		}
		if eos {
			break
		}
		if raw == nil {
			continue
		}
		lmTok := raw.(*lexmachine.Token)
		kind := greina.TokKind(lmTok.Type)
		text, _ := lmTok.Value.(string)
		if text == "" {
			text = string(lmTok.Lexeme)
		}
		switch kind {
		case greina.PBEGIN:
			endParagraph()
		case greina.PEND:
			endParagraph()
		default:
			tok := s.makeTok(kind, text, len(sentence))
			sentence = append(sentence, tok)
			if kind == greina.PUNCTUATION && sentenceFinal[tok.Norm] {
				endSentence()
			}
		}
	}
	endParagraph()
	tracer().Debugf("tokenized %d paragraphs", len(paragraphs))
	return paragraphs, nil
}

// TokenizeFlat scans the text and returns all sentences, ignoring
// paragraph boundaries.
func (s *Scanner) TokenizeFlat(text string) ([]Sentence, error) {
	paragraphs, err := s.Tokenize(text)
	if err != nil {
		return nil, err
	}
	var sentences []Sentence
	for _, p := range paragraphs {
		sentences = append(sentences, p...)
	}
	return sentences, nil
}

func (s *Scanner) makeTok(kind greina.TokKind, text string, index int) *greina.Tok {
	tok := &greina.Tok{Kind: kind, Text: text, Index: index}
	switch kind {
	case greina.PUNCTUATION:
		tok.Norm = normalizePunct(text)
	case greina.WORD:
		if s.lexicon != nil {
			tok.Meanings = s.lexicon.Lookup(text)
			if len(tok.Meanings) == 0 && text != strings.ToLower(text) {
				// Sentence-initial capitalization: retry lower case
				tok.Meanings = s.lexicon.Lookup(strings.ToLower(text))
			}
		}
	case greina.NUMBER, greina.PERCENT, greina.YEAR, greina.ORDINAL:
		numTxt := strings.TrimSuffix(strings.TrimSuffix(text, "%"), ".")
		numTxt = strings.ReplaceAll(numTxt, ".", "")
		numTxt = strings.Replace(numTxt, ",", ".", 1)
		if v, err := strconv.ParseFloat(numTxt, 64); err == nil {
			tok.Val = v
		}
	}
	return tok
}

// normalizePunct maps typographic punctuation to its canonical form.
func normalizePunct(p string) string {
	switch p {
	case "—", "–":
		return "-"
	case "«", "»":
		return "\""
	}
	return p
}

// KnownRatio returns the ratio of word tokens that have lexicon
// meanings; it feeds the foreign-sentence detection.
func KnownRatio(sentence Sentence) float64 {
	words, known := 0, 0
	for _, t := range sentence {
		if t.Kind == greina.WORD {
			words++
			if len(t.Meanings) > 0 {
				known++
			}
		}
	}
	if words == 0 {
		return 1
	}
	return float64(known) / float64(words)
}
