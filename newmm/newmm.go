/*
Package newmm implements dictionary-based Thai word segmentation by maximal
matching, constrained by Thai Character Clusters.

Content

Segment walks a frontier of candidate word-start positions, kept in a
min-heap. For each position it asks the dictionary for all words starting
there and records every word ending on a cluster boundary as an edge of a
position graph. Whenever the frontier narrows down to a single position,
the text up to it is no longer ambiguous: the path with the fewest words
leading there is emitted (breadth-first search).

If no dictionary word starts at a position, the text there is either
non-Thai (Latin words, numbers, whitespace, line ends, anything else outside
the Thai block) and emitted as one token, or it is an unknown Thai word. An
unknown Thai word extends up to the next cluster boundary where a real
dictionary word starts (one consisting of more than two consonants only),
or where non-Thai text starts.

The size of the position graph is bounded by MaxGraphSize. SegmentSafe
additionally cuts long texts into chunks before segmenting, which keeps
the ambiguity windows small for texts with long runs without any
dictionary words.

SegmentLongest is a simpler strategy, greedily taking the longest word at
each position.

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package newmm

import (
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/thaiseg/dictionary"
	"github.com/npillmayer/thaiseg/tcc"
	"github.com/npillmayer/thaiseg/thai"
)

// tracer traces to the core-tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

// MaxGraphSize is the maximum number of edges collected in the position
// graph before a path is forced.
const MaxGraphSize = 50

// Text scan window for cutting long texts in safe mode.
const (
	ScanBegin = 100
	ScanEnd   = 140
)

// Segment splits text into words, using dict. If dict is nil, the default
// dictionary is used. Concatenating the words yields text.
func Segment(text string, dict *dictionary.Dictionary) []string {
	if text == "" {
		return []string{}
	}
	if dict == nil {
		dict = dictionary.Default()
	}
	return onecut([]rune(text), dict)
}

// SegmentSafe is like Segment, but cuts texts of at least ScanEnd runes into
// chunks before segmenting them. Chunks are cut inside the window
// [ScanBegin,ScanEnd) of the remaining text, after the last space if there is
// one, otherwise in front of the longest token of the window.
func SegmentSafe(text string, dict *dictionary.Dictionary) []string {
	if text == "" {
		return []string{}
	}
	if dict == nil {
		dict = dictionary.Default()
	}
	runes := []rune(text)
	if len(runes) < ScanEnd {
		return onecut(runes, dict)
	}
	var parts [][]rune
	for len(runes) >= ScanEnd {
		cut := cutPosition(runes, dict)
		parts = append(parts, runes[:cut])
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		parts = append(parts, runes)
	}
	tracer().Debugf("newmm: safe mode cut text into %d parts", len(parts))
	tokens := make([]string, 0, len(text)/8)
	for _, part := range parts {
		tokens = append(tokens, onecut(part, dict)...)
	}
	return tokens
}

func cutPosition(runes []rune, dict *dictionary.Dictionary) int {
	sample := runes[ScanBegin:ScanEnd]
	for i := len(sample) - 1; i >= 0; i-- {
		if sample[i] == ' ' {
			return ScanBegin + i + 1
		}
	}
	tokens := onecut(sample, dict)
	maxInx, maxLen := 0, 0
	for i, token := range tokens {
		if n := len([]rune(token)); n >= maxLen {
			maxLen, maxInx = n, i
		}
	}
	cut := ScanBegin
	for _, token := range tokens[:maxInx] {
		cut += len([]rune(token))
	}
	return cut
}

// --- Maximal matching ------------------------------------------------------

// graph of word edges between rune positions.
type graph map[int][]int

func (g graph) addEdge(from, to int) {
	g[from] = append(g[from], to)
}

// onecut segments a text in a single pass.
func onecut(text []rune, dict *dictionary.Dictionary) []string {
	validPos := clusterEnds(text)
	tokens := make([]string, 0, len(text)/4+1)
	g := make(graph)
	graphSize := 0
	frontier := binaryheap.NewWithIntComparator()
	inFrontier := hashset.New()
	push := func(pos int) {
		if !inFrontier.Contains(pos) {
			frontier.Push(pos)
			inFrontier.Add(pos)
		}
	}
	push(0)
	endPos := 0
	for {
		top, _ := frontier.Peek()
		if top.(int) >= len(text) {
			break
		}
		v, _ := frontier.Pop()
		beginPos := v.(int)
		inFrontier.Remove(beginPos)
		for _, end := range dict.Prefixes(text, beginPos) {
			if !validPos.Contains(end) {
				continue
			}
			g.addEdge(beginPos, end)
			graphSize++
			push(end)
			if graphSize > MaxGraphSize {
				break
			}
		}
		switch frontier.Size() {
		case 1: // one candidate, no longer ambiguous
			goal, _ := frontier.Peek()
			path := shortestPath(g, endPos, goal.(int))
			graphSize = 0
			for _, pos := range path[1:] {
				tokens = append(tokens, string(text[endPos:pos]))
				endPos = pos
			}
		case 0: // no candidate, deal with non-dictionary word
			endPos = unknownWordEnd(text, beginPos, validPos, dict)
			g.addEdge(beginPos, endPos)
			graphSize++
			tokens = append(tokens, string(text[beginPos:endPos]))
			push(endPos)
		}
	}
	return tokens
}

// unknownWordEnd returns the end of a token not found in the dictionary,
// starting at position begin.
func unknownWordEnd(text []rune, begin int, validPos *hashset.Set, dict *dictionary.Dictionary) int {
	if n := thai.NonThaiPrefix(text[begin:]); n > 0 {
		return begin + n
	}
	for pos := begin + 1; pos < len(text); pos++ {
		if !validPos.Contains(pos) {
			continue
		}
		for _, end := range dict.Prefixes(text, pos) {
			if validPos.Contains(end) && !isShortConsonantRun(text[pos:end]) {
				return pos
			}
		}
		if thai.StartsNonThai(text[pos:]) {
			return pos
		}
	}
	return len(text)
}

// isShortConsonantRun is true for words consisting of at most two Thai
// consonants and nothing else. These are too weak to end an unknown word.
func isShortConsonantRun(word []rune) bool {
	if len(word) > 2 {
		return false
	}
	for _, r := range word {
		if !thai.IsConsonant(r) {
			return false
		}
	}
	return true
}

// shortestPath returns the path with the fewest edges from start to goal,
// including both. Among paths of equal length the one found first in edge
// insertion order wins.
func shortestPath(g graph, start, goal int) []int {
	if start == goal {
		return []int{start}
	}
	parent := map[int]int{start: start}
	queue := []int{start}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, next := range g[v] {
			if _, seen := parent[next]; seen {
				continue
			}
			parent[next] = v
			if next == goal {
				return tracePath(parent, start, goal)
			}
			queue = append(queue, next)
		}
	}
	tracer().Errorf("newmm: no path from %d to %d", start, goal)
	return []int{start, goal}
}

func tracePath(parent map[int]int, start, goal int) []int {
	var path []int
	for v := goal; v != start; v = parent[v] {
		path = append(path, v)
	}
	path = append(path, start)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// clusterEnds returns the set of rune positions where a Thai Character
// Cluster ends.
func clusterEnds(text []rune) *hashset.Set {
	set := hashset.New()
	for _, pos := range tcc.Positions(string(text)) {
		set.Add(pos)
	}
	return set
}
