package job

import (
	"encoding/json"
	"math"
	"time"

	"github.com/ornolfur/greina"
	"github.com/ornolfur/greina/cfg"
	"github.com/ornolfur/greina/earley"
	"github.com/ornolfur/greina/grammar"
	"github.com/ornolfur/greina/lex"
	"github.com/ornolfur/greina/reduce"
	"github.com/ornolfur/greina/scanner"
	"github.com/ornolfur/greina/tree"
)

// Options configure an Engine.
type Options struct {
	// MaxTokens refuses sentences longer than this; 0 disables the
	// gate entirely.
	MaxTokens int
	// Timeout bounds the wall clock of a single sentence parse.
	Timeout time.Duration
	// ParseForeignSentences parses sentences even when most of their
	// words are unknown to the lexicon.
	ParseForeignSentences bool
	// ForeignThreshold is the known-word ratio below which a sentence
	// counts as foreign.
	ForeignThreshold float64
}

// DefaultOptions returns the stock engine options.
func DefaultOptions() Options {
	return Options{
		MaxTokens:        earley.DefaultMaxTokens,
		ForeignThreshold: 0.5,
	}
}

// Engine bundles the shared read-only state of the pipeline. One
// Engine serves any number of concurrent jobs.
type Engine struct {
	lexicon  *lex.Lexicon
	grammar  *grammar.Grammar
	settings *cfg.Settings
	scanner  *scanner.Scanner
	reducer  *reduce.Reducer
	parser   *earley.Parser
	opts     Options
}

// NewEngine assembles an engine from its shared parts.
func NewEngine(lexicon *lex.Lexicon, g *grammar.Grammar, set *cfg.Settings, opts Options) (*Engine, error) {
	sc, err := scanner.New(lexicon)
	if err != nil {
		return nil, err
	}
	if set == nil {
		set = cfg.New()
	}
	if opts.ForeignThreshold == 0 {
		opts.ForeignThreshold = 0.5
	}
	return &Engine{
		lexicon:  lexicon,
		grammar:  g,
		settings: set,
		scanner:  sc,
		reducer:  reduce.New(set),
		parser: earley.NewParser(g, earley.Options{
			MaxTokens: opts.MaxTokens,
			Timeout:   opts.Timeout,
		}),
		opts: opts,
	}, nil
}

// Lexicon returns the engine's lexicon.
func (e *Engine) Lexicon() *lex.Lexicon { return e.lexicon }

// Grammar returns the engine's grammar.
func (e *Engine) Grammar() *grammar.Grammar { return e.grammar }

// Submit tokenizes the text into a Job. Sentences are parsed lazily;
// use Parse for eager parsing.
func (e *Engine) Submit(text string) (*Job, error) {
	paragraphs, err := e.scanner.Tokenize(text)
	if err != nil {
		return nil, err
	}
	job := &Job{engine: e}
	for _, p := range paragraphs {
		var par []*Sentence
		for _, s := range p {
			sent := &Sentence{engine: e, toks: s}
			par = append(par, sent)
			job.sentences = append(job.sentences, sent)
		}
		job.paragraphs = append(job.paragraphs, par)
	}
	return job, nil
}

// Parse tokenizes and parses the whole text.
func (e *Engine) Parse(text string) (*Job, error) {
	job, err := e.Submit(text)
	if err != nil {
		return nil, err
	}
	job.ParseAll()
	return job, nil
}

// ParseSentence parses a single pre-tokenized sentence.
func (e *Engine) ParseSentence(toks []*greina.Tok) *Sentence {
	s := &Sentence{engine: e, toks: toks}
	s.Parse()
	return s
}

// --- Job -------------------------------------------------------------------

// Job is one submitted text: its sentences in input order, grouped
// into paragraphs, plus aggregated statistics.
type Job struct {
	engine     *Engine
	sentences  []*Sentence
	paragraphs [][]*Sentence
}

// Sentences returns the job's sentences in input order.
func (j *Job) Sentences() []*Sentence { return j.sentences }

// Paragraphs returns the sentences grouped by paragraph.
func (j *Job) Paragraphs() [][]*Sentence { return j.paragraphs }

// ParseAll parses every sentence of the job.
func (j *Job) ParseAll() {
	for _, s := range j.sentences {
		s.Parse()
	}
}

// NumSentences returns the number of sentences in the job.
func (j *Job) NumSentences() int { return len(j.sentences) }

// NumParsed returns the number of successfully parsed sentences.
func (j *Job) NumParsed() int {
	n := 0
	for _, s := range j.sentences {
		if s.parsed && s.err == nil {
			n++
		}
	}
	return n
}

// NumTokens returns the total token count of the job.
func (j *Job) NumTokens() int {
	n := 0
	for _, s := range j.sentences {
		n += len(s.toks)
	}
	return n
}

// ParseTime returns the cumulative parse time of the job.
func (j *Job) ParseTime() time.Duration {
	var d time.Duration
	for _, s := range j.sentences {
		d += s.parseTime
	}
	return d
}

// Ambiguity returns the weighted geometric mean of the per-sentence
// derivation counts: exp(Σ wᵢ·ln cᵢ / Σ wᵢ), with the token count as
// the weight. An unambiguous job yields 1.
func (j *Job) Ambiguity() float64 {
	sumW, sumLn := 0.0, 0.0
	for _, s := range j.sentences {
		if !s.parsed || s.err != nil {
			continue
		}
		c := float64(s.combinations)
		if c < 1 {
			c = 1
		}
		w := float64(len(s.toks))
		sumW += w
		sumLn += w * math.Log(c)
	}
	if sumW == 0 {
		return 1
	}
	return math.Exp(sumLn / sumW)
}

// --- Sentence --------------------------------------------------------------

// Sentence is one sentence of a job, carrying its tokens and, after
// Parse, either the simplified tree or a typed failure.
type Sentence struct {
	engine *Engine
	toks   []*greina.Tok

	parsed       bool
	err          error
	tree         *tree.Tree
	score        int
	combinations int
	parseTime    time.Duration
}

// Tokens returns the sentence tokens.
func (s *Sentence) Tokens() []*greina.Tok { return s.toks }

// Len returns the token count.
func (s *Sentence) Len() int { return len(s.toks) }

// Text returns the sentence text with canonical spacing.
func (s *Sentence) Text() string {
	var out []byte
	for _, t := range s.toks {
		txt := t.Text
		if t.Kind == greina.PUNCTUATION && t.Norm != "" {
			txt = t.Norm
		}
		if len(out) > 0 && t.Kind != greina.PUNCTUATION {
			out = append(out, ' ')
		}
		out = append(out, txt...)
	}
	return string(out)
}

// Parse runs the pipeline on the sentence. The first call does the
// work; repeated calls return the recorded outcome. A failed parse is
// an ordinary outcome: the error is also stored on the sentence.
func (s *Sentence) Parse() error {
	if s.parsed {
		return s.err
	}
	s.parsed = true
	start := time.Now()
	defer func() {
		s.parseTime = time.Since(start)
	}()

	e := s.engine
	if !e.opts.ParseForeignSentences {
		if ratio := scanner.KnownRatio(s.toks); ratio < e.opts.ForeignThreshold {
			s.err = &greina.ForeignError{Ratio: ratio}
			return s.err
		}
	}
	lattice := grammar.BuildLattice(e.grammar, s.toks, e.settings)
	forest, err := e.parser.Parse(lattice, s.toks)
	if err != nil {
		s.err = err
		return s.err
	}
	s.combinations = forest.Combinations()
	s.score = e.reducer.Reduce(forest)
	s.tree = tree.FromForest(forest)
	tracer().Infof("sentence parsed: %d tokens, %d combinations, score %d",
		len(s.toks), s.combinations, s.score)
	return nil
}

// Err returns the recorded failure, or nil.
func (s *Sentence) Err() error { return s.err }

// ErrIndex returns the token index of a parse failure and whether the
// recorded failure carries one.
func (s *Sentence) ErrIndex() (int, bool) {
	if pe, ok := s.err.(*greina.ParseError); ok {
		return pe.TokenIndex, true
	}
	return 0, false
}

// Tree returns the simplified tree of a successful parse, or nil.
func (s *Sentence) Tree() *tree.Tree { return s.tree }

// Score returns the best derivation's score.
func (s *Sentence) Score() int { return s.score }

// Combinations returns the number of derivations in the full forest
// before reduction.
func (s *Sentence) Combinations() int { return s.combinations }

// Terminals returns the terminal descriptors of the parse, aligned
// with the tokens.
func (s *Sentence) Terminals() []string {
	if s.tree == nil {
		return nil
	}
	var out []string
	for _, leaf := range s.tree.Root().Terminals() {
		d := leaf.Terminal()
		if d == "" {
			d = "p"
		}
		out = append(out, d)
	}
	return out
}

// --- JSON ------------------------------------------------------------------

type sentenceJSON struct {
	Text      string   `json:"text"`
	Score     int      `json:"score"`
	FlatTree  string   `json:"flat_tree,omitempty"`
	Terminals []string `json:"terminals,omitempty"`
	Tokens    []tokJSON `json:"tokens"`
	ErrIndex  *int     `json:"err_index,omitempty"`
}

type tokJSON struct {
	Kind string `json:"k"`
	Text string `json:"x"`
}

// MarshalJSON serializes the sentence outcome: text, terminal list,
// flat tree, score and tokens.
func (s *Sentence) MarshalJSON() ([]byte, error) {
	d := sentenceJSON{
		Text:      s.Text(),
		Score:     s.score,
		Terminals: s.Terminals(),
	}
	if s.tree != nil {
		d.FlatTree = s.tree.Root().Flat()
	}
	if ix, ok := s.ErrIndex(); ok {
		d.ErrIndex = &ix
	}
	for _, t := range s.toks {
		d.Tokens = append(d.Tokens, tokJSON{Kind: t.Kind.String(), Text: t.Text})
	}
	return json.Marshal(d)
}

// SentenceDump is the deserialized form of a sentence JSON dump.
type SentenceDump struct {
	Text      string
	Score     int
	FlatTree  string
	Terminals []string
	Tokens    []string
	ErrIndex  *int
}

// UnmarshalSentence reads a sentence JSON dump back.
func UnmarshalSentence(data []byte) (*SentenceDump, error) {
	var d sentenceJSON
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	dump := &SentenceDump{
		Text:      d.Text,
		Score:     d.Score,
		FlatTree:  d.FlatTree,
		Terminals: d.Terminals,
		ErrIndex:  d.ErrIndex,
	}
	for _, t := range d.Tokens {
		dump.Tokens = append(dump.Tokens, t.Text)
	}
	return dump, nil
}
