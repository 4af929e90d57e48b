/*
Package tcc implements breaking Thai text into Thai Character Clusters.

Content

A Thai Character Cluster (TCC) is an inseparable sequence of Thai
code-points: a consonant together with the vowels and marks written around
it. Word boundaries never fall inside a cluster, which makes clusters the
building blocks for dictionary-based word segmentation.
(see Theeramunkong et al., "Character Cluster Based Thai Information
Retrieval", 2000).

The breaker in this package does not reproduce the full set of cluster
patterns, but the rules which decide the vast majority of cases:

  x (AboveBelow | CloseVowel | Tone | Thanthakhat | FollowingVowel)
  LeadingVowel x Consonant
  CloseVowel Tone? x Consonant
  x Consonant (Sara_I | Sara_U | Sara_UU)? x Thanthakhat
  Digit x Digit

Everywhere else a break is allowed. Non-Thai code-points form clusters of
their own.

Typical Usage

  onClusters := tcc.NewBreaker()
  segmenter := segment.NewSegmenter(onClusters)
  segmenter.Init(...)
  for segmenter.Next() ...

or simply

  clusters := tcc.Segment("ฉันบอกว่า")   // [ฉัน บ อ ก ว่า]

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package tcc

import (
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/thaiseg"
	"github.com/npillmayer/thaiseg/segment"
	"github.com/npillmayer/thaiseg/thai"
)

// tracer traces to the core-tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

// eot is the code-point class for end of text; it follows the Thai classes.
const eot = int(thai.Sign) + 1

// === Cluster Breaker ===================================================

// Breaker is a type used by a segment.Segmenter to break Thai text
// into clusters.
// It implements the thaiseg.UnicodeBreaker interface.
type Breaker struct {
	rules        map[thai.Class][]thaiseg.NfaStateFn // we manage a set of NFAs
	publisher    thaiseg.RunePublisher               // we use the rune publishing mechanism
	longestMatch int                                 // longest active match for any rule
	penalties    []int                               // returned to the segmenter: penalties to insert
}

// NewBreaker creates a new cluster breaker.
func NewBreaker() *Breaker {
	b := &Breaker{}
	b.publisher = thaiseg.NewRunePublisher()
	b.rules = map[thai.Class][]thaiseg.NfaStateFn{
		thai.Consonant:      {ruleKarant},
		thai.LeadingVowel:   {ruleLeadingVowel},
		thai.FollowingVowel: {ruleAttach},
		thai.CloseVowel:     {ruleAttach, ruleCloseVowel},
		thai.AboveBelow:     {ruleAttach},
		thai.Tone:           {ruleAttach},
		thai.Thanthakhat:    {ruleAttach},
		thai.Digit:          {ruleDigits},
	}
	return b
}

// Penalties for a break between clusters and for suppressing a break.
var (
	PenaltyForBreak        = 10
	PenaltyToSuppressBreak = 10000
)

// CodePointClassFor returns the Thai code-point class for a rune.
// (Interface thaiseg.UnicodeBreaker)
func (b *Breaker) CodePointClassFor(r rune) int {
	if r == 0 {
		return eot
	}
	return int(thai.ClassForRune(r))
}

// StartRulesFor starts all recognizers where the starting symbol is rune r.
// r is of code-point-class cpClass.
// (Interface thaiseg.UnicodeBreaker)
func (b *Breaker) StartRulesFor(r rune, cpClass int) {
	if cpClass == eot {
		return
	}
	if rules := b.rules[thai.Class(cpClass)]; len(rules) > 0 {
		tracer().P("class", thai.Class(cpClass)).Debugf("starting %d rule(s)", len(rules))
		for _, rule := range rules {
			rec := thaiseg.NewPooledRecognizer(cpClass, rule)
			b.publisher.SubscribeMe(rec)
		}
	}
}

// ProceedWithRune is a signal:
// A new code-point has been read and this breaker receives a message to
// consume it.
// (Interface thaiseg.UnicodeBreaker)
func (b *Breaker) ProceedWithRune(r rune, cpClass int) {
	b.longestMatch, b.penalties = b.publisher.PublishRuneEvent(r, cpClass)
	if cpClass == eot {
		setPenalty1(b, thaiseg.InfiniteMerits)
		return
	}
	setPenalty1(b, PenaltyForBreak)
}

// LongestActiveMatch returns the longest match of all still active
// recognizers.
// (Interface thaiseg.UnicodeBreaker)
func (b *Breaker) LongestActiveMatch() int {
	return b.longestMatch
}

// Penalties gets all active penalties for all active recognizers combined.
// Index 0 belongs to the most recently read rune.
// (Interface thaiseg.UnicodeBreaker)
func (b *Breaker) Penalties() []int {
	return b.penalties
}

// --- Rules ------------------------------------------------------------

// x (AboveBelow | CloseVowel | Tone | Thanthakhat | FollowingVowel)
func ruleAttach(rec *thaiseg.Recognizer, r rune, cpClass int) thaiseg.NfaStateFn {
	return thaiseg.DoAccept(rec, 0, PenaltyToSuppressBreak)
}

// start LeadingVowel x Consonant
func ruleLeadingVowel(rec *thaiseg.Recognizer, r rune, cpClass int) thaiseg.NfaStateFn {
	rec.MatchLen++
	return finishLeadingVowel
}

// ... x Consonant
func finishLeadingVowel(rec *thaiseg.Recognizer, r rune, cpClass int) thaiseg.NfaStateFn {
	if thai.Class(cpClass) == thai.Consonant {
		return thaiseg.DoAccept(rec, 0, PenaltyToSuppressBreak)
	}
	return thaiseg.DoAbort(rec)
}

// start CloseVowel Tone? x Consonant
func ruleCloseVowel(rec *thaiseg.Recognizer, r rune, cpClass int) thaiseg.NfaStateFn {
	rec.MatchLen++
	return contCloseVowel
}

// ... Tone? x Consonant
func contCloseVowel(rec *thaiseg.Recognizer, r rune, cpClass int) thaiseg.NfaStateFn {
	switch thai.Class(cpClass) {
	case thai.Tone:
		rec.MatchLen++
		return finishCloseVowel
	case thai.Consonant:
		return thaiseg.DoAccept(rec, 0, PenaltyToSuppressBreak)
	}
	return thaiseg.DoAbort(rec)
}

// ... x Consonant
func finishCloseVowel(rec *thaiseg.Recognizer, r rune, cpClass int) thaiseg.NfaStateFn {
	if thai.Class(cpClass) == thai.Consonant {
		return thaiseg.DoAccept(rec, 0, PenaltyToSuppressBreak)
	}
	return thaiseg.DoAbort(rec)
}

// start x Consonant (Sara_I | Sara_U | Sara_UU)? x Thanthakhat
func ruleKarant(rec *thaiseg.Recognizer, r rune, cpClass int) thaiseg.NfaStateFn {
	rec.MatchLen++
	return contKarant
}

// ... (Sara_I | Sara_U | Sara_UU)? x Thanthakhat
func contKarant(rec *thaiseg.Recognizer, r rune, cpClass int) thaiseg.NfaStateFn {
	if thai.Class(cpClass) == thai.Thanthakhat {
		return thaiseg.DoAccept(rec, 0, PenaltyToSuppressBreak, PenaltyToSuppressBreak)
	}
	if r == 'ิ' || r == 'ุ' || r == 'ู' {
		rec.MatchLen++
		return finishKarant
	}
	return thaiseg.DoAbort(rec)
}

// ... x Thanthakhat
func finishKarant(rec *thaiseg.Recognizer, r rune, cpClass int) thaiseg.NfaStateFn {
	if thai.Class(cpClass) == thai.Thanthakhat {
		return thaiseg.DoAccept(rec, 0, PenaltyToSuppressBreak, PenaltyToSuppressBreak, PenaltyToSuppressBreak)
	}
	return thaiseg.DoAbort(rec)
}

// start Digit x Digit
func ruleDigits(rec *thaiseg.Recognizer, r rune, cpClass int) thaiseg.NfaStateFn {
	rec.MatchLen++
	return finishDigits
}

// ... x Digit
func finishDigits(rec *thaiseg.Recognizer, r rune, cpClass int) thaiseg.NfaStateFn {
	if thai.Class(cpClass) == thai.Digit {
		return thaiseg.DoAccept(rec, 0, PenaltyToSuppressBreak)
	}
	return thaiseg.DoAbort(rec)
}

// --- Helpers ---------------------------------------------------------------

// setPenalty1 sets the penalty for breaking after the previous rune, unless
// a rule already decided on it.
func setPenalty1(b *Breaker, p int) {
	if len(b.penalties) == 0 {
		b.penalties = append(b.penalties, 0)
		b.penalties = append(b.penalties, p)
	} else if len(b.penalties) == 1 {
		b.penalties = append(b.penalties, p)
	} else if b.penalties[1] == 0 {
		b.penalties[1] = p
	}
}

// === Convenience functions =================================================

// Segment splits a text into Thai Character Clusters.
// Concatenating the clusters yields the input text.
func Segment(text string) []string {
	clusters := make([]string, 0, utf8.RuneCountInString(text)/2+1)
	if text == "" {
		return clusters
	}
	seg := segment.NewSegmenter(NewBreaker())
	seg.Init(strings.NewReader(text))
	for seg.Next() {
		clusters = append(clusters, seg.Text())
	}
	if err := seg.Err(); err != nil {
		tracer().Errorf("cluster segmenting: %v", err)
	}
	return clusters
}

// Positions returns the rune offsets of the ends of all clusters of text,
// in ascending order. The last position is the rune length of text.
func Positions(text string) []int {
	clusters := Segment(text)
	positions := make([]int, len(clusters))
	p := 0
	for i, c := range clusters {
		p += utf8.RuneCountInString(c)
		positions[i] = p
	}
	return positions
}
