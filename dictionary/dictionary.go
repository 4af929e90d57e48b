/*
Package dictionary holds word lists for dictionary-based Thai word segmentation.

A Dictionary is a trie of words. Segmenters ask it for all the words
starting at a given position of a text (see Prefixes). Word lists are loaded
from a streaming source, which keeps file formats outside of this package;
NewLineReader covers the common format of one word per line.

The package carries a small default word list of common Thai words, which
is compiled into the binary and loaded on first use. It holds a few hundred
entries at most, far from the tens of thousands of a full Thai lexicon.
Texts beyond everyday vocabulary will segment into runs of unknown words
with it. Production use should load a complete word list with LoadFile
(configuration key tokenize.dictionary of the thaiseg command).

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package dictionary

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/derekparker/trie"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to the core-tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

// ErrEmptyDictionary is returned when loading a word list without any words.
var ErrEmptyDictionary = errors.New("dictionary: no words loaded")

// WordReader yields words one-by-one.
// It should return io.EOF when the stream is exhausted.
type WordReader interface {
	Next() (word string, err error)
}

// Dictionary is a loaded word list.
type Dictionary struct {
	words      *trie.Trie
	size       int
	maxLen     int    // length of the longest word in runes
	Identifier string // identifies the dictionary
}

// New creates a dictionary from a list of words.
func New(words ...string) *Dictionary {
	dict := &Dictionary{
		words:      trie.New(),
		Identifier: "words: <inline>",
	}
	for _, w := range words {
		dict.Add(w)
	}
	return dict
}

// Load compiles a dictionary from a streaming source.
func Load(name string, reader WordReader) (dict *Dictionary, err error) {
	dict = New()
	dict.Identifier = fmt.Sprintf("words: %s", name)
	var word string
	for {
		word, err = reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("loading dictionary %s: %w", name, err)
		}
		dict.Add(word)
	}
	if dict.size == 0 {
		return nil, fmt.Errorf("loading dictionary %s: %w", name, ErrEmptyDictionary)
	}
	tracer().Infof("dictionary %q loaded with %d words", name, dict.size)
	return dict, nil
}

// LoadFile loads a dictionary from a file with one word per line.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(path, NewLineReader(f))
}

//go:embed words_th.txt
var defaultWords string

var defaultDict struct {
	once sync.Once
	dict *Dictionary
}

// Default returns the default Thai dictionary. It is loaded once and shared;
// clients must not add words to it.
func Default() *Dictionary {
	defaultDict.once.Do(func() {
		dict, err := Load("words_th", NewLineReader(strings.NewReader(defaultWords)))
		if err != nil {
			tracer().Errorf("default dictionary: %v", err)
			dict = New()
		}
		defaultDict.dict = dict
	})
	return defaultDict.dict
}

// Add inserts a word. Surrounding whitespace is trimmed, empty words are
// ignored.
func (dict *Dictionary) Add(word string) {
	word = strings.TrimSpace(word)
	if word == "" {
		return
	}
	if _, ok := dict.words.Find(word); ok {
		return
	}
	dict.words.Add(word, nil)
	dict.size++
	if n := utf8.RuneCountInString(word); n > dict.maxLen {
		dict.maxLen = n
	}
}

// Contains returns true if word is in the dictionary.
func (dict *Dictionary) Contains(word string) bool {
	if dict == nil || word == "" {
		return false
	}
	_, ok := dict.words.Find(word)
	return ok
}

// Size returns the number of words in the dictionary.
func (dict *Dictionary) Size() int {
	if dict == nil {
		return 0
	}
	return dict.size
}

// Prefixes returns the end positions of all dictionary words starting at
// rune position at of text, in ascending order. Positions are rune offsets
// into text (exclusive end).
func (dict *Dictionary) Prefixes(text []rune, at int) []int {
	if dict == nil || at < 0 || at >= len(text) {
		return nil
	}
	var ends []int
	limit := len(text)
	if at+dict.maxLen < limit {
		limit = at + dict.maxLen
	}
	for end := at + 1; end <= limit; end++ {
		key := string(text[at:end])
		if !dict.words.HasKeysWithPrefix(key) {
			break
		}
		if _, ok := dict.words.Find(key); ok {
			ends = append(ends, end)
		}
	}
	return ends
}

// --- Word reader -----------------------------------------------------------

// LineReader reads a word list with one word per line. Blank lines and lines
// starting with '#' are skipped.
type LineReader struct {
	scanner *bufio.Scanner
}

// NewLineReader creates a WordReader for line-oriented word lists.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{scanner: bufio.NewScanner(r)}
}

// Next returns the next word of the list, or io.EOF.
func (lr *LineReader) Next() (string, error) {
	for lr.scanner.Scan() {
		line := strings.TrimFunc(lr.scanner.Text(), unicode.IsSpace)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, nil
	}
	if err := lr.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
