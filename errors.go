package greina

import (
	"errors"
	"fmt"
)

// Fatal load-time errors. Only corruption of the on-disk artifacts or a
// held compilation lock abort start-up; everything that can go wrong
// during parsing is reported as a value on the sentence.
var (
	ErrCorruptLexicon = errors.New("greina: corrupt lexicon binary")
	ErrCorruptGrammar = errors.New("greina: corrupt grammar")
	ErrLockHeld       = errors.New("greina: grammar compilation lock held by another process")
)

// ParseError reports that no derivation exists for a sentence.
// TokenIndex is the 0-based position at which the chart first stalled.
type ParseError struct {
	TokenIndex int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("no parse available at token index %d", e.TokenIndex)
}

// TooLongError reports that a sentence exceeded the configured maximum
// token count and was refused before parsing.
type TooLongError struct {
	NumTokens int
	Max       int
}

func (e *TooLongError) Error() string {
	return fmt.Sprintf("sentence too long for parsing (%d tokens, max %d)", e.NumTokens, e.Max)
}

// ForeignError reports that the ratio of word tokens found in the
// lexicon fell below the configured threshold, i.e. the sentence is
// likely not in the target language.
type ForeignError struct {
	Ratio float64
}

func (e *ForeignError) Error() string {
	return fmt.Sprintf("sentence appears to be foreign (known-word ratio %.2f)", e.Ratio)
}

// TimeoutError reports that a sentence exceeded its wall-clock budget.
// The check happens at chart column boundaries, so a slow sentence may
// overshoot the budget slightly before failing.
type TimeoutError struct {
	TokenIndex int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("parse timed out at token index %d", e.TokenIndex)
}
