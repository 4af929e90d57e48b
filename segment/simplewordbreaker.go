package segment

import (
	"unicode"

	"github.com/npillmayer/thaiseg"
)

// SimpleWordBreaker is a UnicodeBreaker which breaks at transitions between
// whitespace and non-whitespace. It is the default breaker of a Segmenter
// and does not know anything about Thai. Thai text is usually
// pre-split by spaces into phrases, which is what this breaker delivers.
//
// Breaking before a run of whitespace is penalized with 100, breaking after
// it is rewarded with -100. The end of text is a mandatory break.
type SimpleWordBreaker struct {
	penalties []int
	prevClass int
}

// Code-point classes for the SimpleWordBreaker.
const (
	sotClass = iota
	spaceClass
	wordClass
	eotClass
)

// NewSimpleWordBreaker creates a new SimpleWordBreaker.
func NewSimpleWordBreaker() *SimpleWordBreaker {
	return &SimpleWordBreaker{penalties: make([]int, 2)}
}

// CodePointClassFor returns one of space, word or end-of-text.
// (Interface thaiseg.UnicodeBreaker)
func (swb *SimpleWordBreaker) CodePointClassFor(r rune) int {
	if r == 0 {
		return eotClass
	}
	if unicode.IsSpace(r) {
		return spaceClass
	}
	return wordClass
}

// StartRulesFor is a no-op; the SimpleWordBreaker does not use recognizers.
// (Interface thaiseg.UnicodeBreaker)
func (swb *SimpleWordBreaker) StartRulesFor(r rune, cpClass int) {}

// ProceedWithRune calculates the penalty for breaking between the previous
// rune and r.
// (Interface thaiseg.UnicodeBreaker)
func (swb *SimpleWordBreaker) ProceedWithRune(r rune, cpClass int) {
	swb.penalties[0] = 0
	swb.penalties[1] = 0
	switch {
	case cpClass == eotClass:
		swb.penalties[1] = thaiseg.InfiniteMerits
	case swb.prevClass == sotClass:
	case swb.prevClass == wordClass && cpClass == spaceClass:
		swb.penalties[1] = 100
	case swb.prevClass == spaceClass && cpClass == wordClass:
		swb.penalties[1] = -100
	}
	swb.prevClass = cpClass
}

// LongestActiveMatch is always 0. Penalties are final as soon as the rune
// following a break position has been read.
// (Interface thaiseg.UnicodeBreaker)
func (swb *SimpleWordBreaker) LongestActiveMatch() int {
	return 0
}

// Penalties returns the penalties for breaking after the current and the
// previous rune.
// (Interface thaiseg.UnicodeBreaker)
func (swb *SimpleWordBreaker) Penalties() []int {
	return swb.penalties
}
