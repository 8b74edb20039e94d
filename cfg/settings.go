package cfg

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Preference is one row of the terminal preference table: when a word
// form can be read both as one of the Worse categories and one of the
// Better categories, the reducer shifts scores by a multiple of Factor.
type Preference struct {
	Worse  []string
	Better []string
	Factor int
}

// Settings collects all configuration tables. A zero Settings value is
// valid and matches/scores nothing special.
type Settings struct {
	// VerbFrames maps "verb_case1_case2" argument keys ("gefa_þgf_þf",
	// "sjá_þf", "fjölga") to an optional score adjustment.
	VerbFrames map[string]int
	// VerbSubjects maps verb lemmas to the set of allowed oblique
	// subject cases ("dreyma" -> {þf}).
	VerbSubjects map[string]map[string]bool
	// VerbPrepositions holds "verb_cases/prep_case" attachment keys
	// ("búa/í_þgf") that earn the verb/preposition bonus.
	VerbPrepositions map[string]bool
	// Prepositions maps a preposition to the cases it governs.
	Prepositions map[string]map[string]bool
	// AdjectivePredicates maps adjective lemmas to their argument cases
	// ("líkur" -> {þgf}).
	AdjectivePredicates map[string]map[string]bool
	// StaticPhrases maps fixed multi-word phrases to their terminal
	// descriptor sequence.
	StaticPhrases map[string][]string
	// AmbiguousPhrases maps phrases to the word-class sequence they
	// should preferentially resolve to.
	AmbiguousPhrases map[string][]string
	// Preferences is the worse/better category table, keyed by form.
	Preferences map[string][]Preference
	// NounPreferences maps a noun form to per-gender score deltas.
	NounPreferences map[string]map[string]int
}

// New returns an empty but fully initialized Settings value.
func New() *Settings {
	return &Settings{
		VerbFrames:          make(map[string]int),
		VerbSubjects:        make(map[string]map[string]bool),
		VerbPrepositions:    make(map[string]bool),
		Prepositions:        make(map[string]map[string]bool),
		AdjectivePredicates: make(map[string]map[string]bool),
		StaticPhrases:       make(map[string][]string),
		AmbiguousPhrases:    make(map[string][]string),
		Preferences:         make(map[string][]Preference),
		NounPreferences:     make(map[string]map[string]int),
	}
}

// Load reads all known configuration files from dir. Missing files are
// skipped; a malformed line is an error.
func Load(dir string) (*Settings, error) {
	s := New()
	readers := map[string]func(*Settings, string, int) error{
		"verbs.conf":                readVerbLine,
		"verb_subjects.conf":        readVerbSubjectLine,
		"verb_prepositions.conf":    readVerbPrepLine,
		"prepositions.conf":         readPrepositionLine,
		"adjective_predicates.conf": readAdjectivePredicateLine,
		"static_phrases.conf":       readStaticPhraseLine,
		"ambiguous_phrases.conf":    readAmbiguousPhraseLine,
		"preferences.conf":          readPreferenceLine,
		"noun_preferences.conf":     readNounPreferenceLine,
	}
	for name, read := range readers {
		path := filepath.Join(dir, name)
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		err = readLines(f, func(line string, lineno int) error {
			return read(s, line, lineno)
		})
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		tracer().Infof("loaded %s", name)
	}
	return s, nil
}

func readLines(r io.Reader, handle func(string, int) error) error {
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := handle(line, lineno); err != nil {
			return fmt.Errorf("line %d: %w", lineno, err)
		}
	}
	return scanner.Err()
}

// readVerbLine handles rows of the form
//
//	gefa þgf þf
//	fjölga $score(2)
//	sjá þf $score(1)
func readVerbLine(s *Settings, line string, _ int) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	verb := fields[0]
	key := verb
	score := 0
	for _, f := range fields[1:] {
		if strings.HasPrefix(f, "$score(") {
			v, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(f, "$score("), ")"))
			if err != nil {
				return fmt.Errorf("bad $score pragma %q", f)
			}
			score = v
			continue
		}
		if !isCase(f) {
			return fmt.Errorf("bad argument case %q", f)
		}
		key += "_" + f
	}
	s.VerbFrames[key] = score
	return nil
}

// readVerbSubjectLine handles "verb case".
func readVerbSubjectLine(s *Settings, line string, _ int) error {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return fmt.Errorf("expected 2 columns, got %d", len(fields))
	}
	subj := s.VerbSubjects[fields[0]]
	if subj == nil {
		subj = make(map[string]bool)
		s.VerbSubjects[fields[0]] = subj
	}
	subj[fields[1]] = true
	return nil
}

// readVerbPrepLine handles "verb_cases prep case", e.g. "búa í þgf".
func readVerbPrepLine(s *Settings, line string, _ int) error {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return fmt.Errorf("expected 3 columns, got %d", len(fields))
	}
	s.VerbPrepositions[fields[0]+"/"+fields[1]+"_"+fields[2]] = true
	return nil
}

// readPrepositionLine handles "prep case [case...]".
func readPrepositionLine(s *Settings, line string, _ int) error {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return fmt.Errorf("expected at least 2 columns")
	}
	prep := s.Prepositions[fields[0]]
	if prep == nil {
		prep = make(map[string]bool)
		s.Prepositions[fields[0]] = prep
	}
	for _, c := range fields[1:] {
		if !isCase(c) && c != "nh" {
			return fmt.Errorf("bad case %q", c)
		}
		prep[c] = true
	}
	return nil
}

// readAdjectivePredicateLine handles "adjective case [case...]".
func readAdjectivePredicateLine(s *Settings, line string, _ int) error {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return fmt.Errorf("expected at least 2 columns")
	}
	adj := s.AdjectivePredicates[fields[0]]
	if adj == nil {
		adj = make(map[string]bool)
		s.AdjectivePredicates[fields[0]] = adj
	}
	for _, c := range fields[1:] {
		if !isCase(c) {
			return fmt.Errorf("bad case %q", c)
		}
		adj[c] = true
	}
	return nil
}

// readStaticPhraseLine handles "phrase words | terminal descriptors".
func readStaticPhraseLine(s *Settings, line string, _ int) error {
	parts := strings.SplitN(line, "|", 2)
	if len(parts) != 2 {
		return fmt.Errorf("expected 'phrase | terminals'")
	}
	phrase := strings.TrimSpace(parts[0])
	terms := strings.Fields(parts[1])
	if phrase == "" || len(terms) == 0 {
		return fmt.Errorf("empty phrase or terminal list")
	}
	s.StaticPhrases[strings.ToLower(phrase)] = terms
	return nil
}

// readAmbiguousPhraseLine handles "phrase words | word classes".
func readAmbiguousPhraseLine(s *Settings, line string, _ int) error {
	parts := strings.SplitN(line, "|", 2)
	if len(parts) != 2 {
		return fmt.Errorf("expected 'phrase | categories'")
	}
	phrase := strings.TrimSpace(parts[0])
	cats := strings.Fields(parts[1])
	if phrase == "" || len(cats) == 0 {
		return fmt.Errorf("empty phrase or category list")
	}
	if len(strings.Fields(phrase)) != len(cats) {
		return fmt.Errorf("phrase and category list differ in length")
	}
	s.AmbiguousPhrases[strings.ToLower(phrase)] = cats
	return nil
}

// readPreferenceLine handles "form worse,... < better,... factor".
func readPreferenceLine(s *Settings, line string, _ int) error {
	fields := strings.Fields(line)
	if len(fields) != 5 || fields[2] != "<" {
		return fmt.Errorf("expected 'form worse < better factor'")
	}
	factor, err := strconv.Atoi(fields[4])
	if err != nil {
		return fmt.Errorf("bad factor %q", fields[4])
	}
	s.Preferences[fields[0]] = append(s.Preferences[fields[0]], Preference{
		Worse:  strings.Split(fields[1], ","),
		Better: strings.Split(fields[3], ","),
		Factor: factor,
	})
	return nil
}

// readNounPreferenceLine handles "form gender delta".
func readNounPreferenceLine(s *Settings, line string, _ int) error {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return fmt.Errorf("expected 3 columns")
	}
	delta, err := strconv.Atoi(fields[2])
	if err != nil {
		return fmt.Errorf("bad delta %q", fields[2])
	}
	np := s.NounPreferences[fields[0]]
	if np == nil {
		np = make(map[string]int)
		s.NounPreferences[fields[0]] = np
	}
	np[fields[1]] = delta
	return nil
}

func isCase(s string) bool {
	switch s {
	case "nf", "þf", "þgf", "ef":
		return true
	}
	return false
}

// --- queries used by matching and scoring ----------------------------------

// MatchesArguments reports whether the verb frame table knows the given
// verb/argument key (e.g. "gefa_þgf_þf").
func (s *Settings) MatchesArguments(key string) bool {
	_, ok := s.VerbFrames[key]
	return ok
}

// VerbScore returns the score adjustment of a verb/argument key and
// whether the key is known.
func (s *Settings) VerbScore(key string) (int, bool) {
	score, ok := s.VerbFrames[key]
	return score, ok
}

// KnownVerb reports whether any frame is registered for the verb lemma.
func (s *Settings) KnownVerb(verb string) bool {
	if _, ok := s.VerbFrames[verb]; ok {
		return true
	}
	prefix := verb + "_"
	for key := range s.VerbFrames {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// MatchesPreposition reports whether verbWithCases combines with the
// given preposition (pattern "prep_case" or bare "prep").
func (s *Settings) MatchesPreposition(verbWithCases, prepWithCase string) bool {
	return s.VerbPrepositions[verbWithCases+"/"+prepWithCase]
}

// SubjectMatches reports whether the verb allows an oblique subject in
// the given case.
func (s *Settings) SubjectMatches(verb, subjCase string) bool {
	return s.VerbSubjects[verb][subjCase]
}

// PrepositionGoverns reports whether prep is known to govern the case.
func (s *Settings) PrepositionGoverns(prep, c string) bool {
	return s.Prepositions[prep][c]
}
