/*
Package thai provides code-point classes for the Thai script.

The Thai block of Unicode spans U+0E00…U+0E7F. Within it, characters fall
into classes which matter for segmenting: consonants, vowels written before
the consonant they are pronounced after (leading vowels), vowels following a
consonant, vowels and marks placed above or below a consonant, tone marks,
digits and a few signs.

Besides the classes, this package recognizes runs of non-Thai text, which
word segmenters pass through as single tokens.

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package thai

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// Class is a type for Thai code-point classes.
type Class int8

// Thai code-point classes. Other is any code-point not in the Thai block.
const (
	Other          Class = iota
	Consonant            // ก…ฮ
	LeadingVowel         // เ แ โ ใ ไ
	FollowingVowel       // ะ า ำ ๅ
	CloseVowel           // ั ื, a consonant will follow
	AboveBelow           // ิ ี ึ ุ ู ฺ ็ ํ ๎
	Tone                 // ่ ้ ๊ ๋
	Thanthakhat          // ์, silences the consonant carrying it
	Digit                // ๐…๙
	Sign                 // ฯ ๆ ฿ ๏ ๚ ๛
)

func (c Class) String() string {
	switch c {
	case Consonant:
		return "Consonant"
	case LeadingVowel:
		return "LeadingVowel"
	case FollowingVowel:
		return "FollowingVowel"
	case CloseVowel:
		return "CloseVowel"
	case AboveBelow:
		return "AboveBelow"
	case Tone:
		return "Tone"
	case Thanthakhat:
		return "Thanthakhat"
	case Digit:
		return "Digit"
	case Sign:
		return "Sign"
	}
	return "Other"
}

// Range tables for the classes. Index is the Class.
var rangeFromClass = [...]*unicode.RangeTable{
	Other:          nil,
	Consonant:      consonants(),
	LeadingVowel:   rangetable.New('เ', 'แ', 'โ', 'ใ', 'ไ'),
	FollowingVowel: rangetable.New('ะ', 'า', 'ำ', 'ๅ'),
	CloseVowel:     rangetable.New('ั', 'ื'),
	AboveBelow:     rangetable.New('ิ', 'ี', 'ึ', 'ุ', 'ู', 'ฺ', '็', 'ํ', '๎'),
	Tone:           rangetable.New('่', '้', '๊', '๋'),
	Thanthakhat:    rangetable.New('์'),
	Digit:          rangetable.New('๐', '๑', '๒', '๓', '๔', '๕', '๖', '๗', '๘', '๙'),
	Sign:           rangetable.New('ฯ', 'ๆ', '฿', '๏', '๚', '๛'),
}

// ฤ, ฦ and ฅ are spelled like consonants and are treated as such.
func consonants() *unicode.RangeTable {
	cc := make([]rune, 0, 48)
	for r := 'ก'; r <= 'ฮ'; r++ {
		cc = append(cc, r)
	}
	return rangetable.New(cc...)
}

// Block is the Unicode block of the Thai script.
var Block = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0e00, Hi: 0x0e7f, Stride: 1},
	},
}

// ClassForRune returns the Thai class of a code-point.
func ClassForRune(r rune) Class {
	if r < 0x0e00 || r > 0x0e7f {
		return Other
	}
	for c := Consonant; c <= Sign; c++ {
		if unicode.Is(rangeFromClass[c], r) {
			return c
		}
	}
	return Other
}

// IsThai is true for code-points of the Thai block.
func IsThai(r rune) bool {
	return unicode.Is(Block, r)
}

// IsConsonant is true for Thai consonants.
func IsConsonant(r rune) bool {
	return ClassForRune(r) == Consonant
}

// RangeTable returns the range table for a class, or nil for Other.
func RangeTable(c Class) *unicode.RangeTable {
	if c <= Other || c > Sign {
		return nil
	}
	return rangeFromClass[c]
}
