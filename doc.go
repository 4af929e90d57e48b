/*
Package thaiseg is about segmenting Thai text into words.

Description

Thai is written without spaces between words. Spaces mark phrase or sentence
boundaries, if at all. Finding word boundaries therefore requires knowledge
beyond the code-points themselves: a dictionary, a statistical model, or both.
UAX#29 puts it this way:

   Reliable detection of word boundaries in languages such as Thai, Lao,
   Chinese, or Japanese requires the use of dictionary lookup, analogous
   to English hyphenation.

Segmenting in this module happens in two layers. The lower layer finds
Thai Character Clusters (TCCs), i.e. inseparable units of a consonant and its
vowels and marks. No word boundary may fall inside a TCC. The upper layer
combines clusters into words, either by maximal matching against a dictionary
(package newmm) or by a neural boundary classifier (package attacut).
Package tokenize is the façade clients usually will want to use.

Contents

Base package thaiseg provides the means to implement rule-based breakers for
the cluster layer. We perform segmenting based on rules, which are short
regular expressions, i.e. finite state automata.
Every step within a rule is performed by executing a function. This function
recognizes a single code-point class and returns another function. The
returned function represents the expectation for the next code-point(-class).
These kind of matching by function is continued until a rule is accepted
or aborted.

An example for a rule is "a consonant carrying a thanthakhat belongs to the
previous cluster":

   x Consonant (Sara_I | Sara_U | Sara_UU)? Thanthakhat

The 'x' denotes a suppressed break. Matching will call functions in sequence:

      ruleKarant( … )   // match the consonant
   -> contKarant( … )   // match an optional vowel
   -> finishKarant( … ) // match the thanthakhat

The final return value will either signal an accept or abort.

The helper type to perform this kind of matching is called Recognizer.
A set of Recognizers comprises an NFA and will match break opportunities
for a rule-set. Recognizers receive rune events and therefore implement
interface RuneSubscriber.

Penalties

Breakers signal break opportunities not with true/false, but rather with a
weighted "penalty". Negative values denote a merit. High enough penalties
signal the complete suppression of a break opportunity, causing the
segmenter to not report this break:

(1) Mandatory breaks will have a penalty/merit of -1000 (InfiniteMerits)

(2) Inhibited breaks will have penalty >= 1000 (InfinitePenalty)

(3) Neutral breaks will have a penalty of 0.

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package thaiseg

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// CT traces to the core-tracer.
func CT() tracing.Trace {
	return gtrace.CoreTracer
}

// We define constants for flagging break points as infinitely bad and
// infinitely good, respectively.
const (
	InfinitePenalty = 1000
	InfiniteMerits  = -1000
)
