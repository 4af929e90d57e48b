/*
Package segment is about segmenting Unicode text.

Typical Usage

Segmenter provides an interface similar to bufio.Scanner for reading data
such as a file of Unicode text.
Similar to Scanner's Scan() function, successive calls to a segmenter's
Next() method will step through the 'segments' of a file.
Clients are able to get runes of the segment by calling Bytes() or Text().
Unlike Scanner, segmenters are calculating a 'penalty' for breaking
at this segment. Penalties are numeric values and reflect costs, where
negative values are to be interpreted as negative costs, i.e. merits.

Clients instantiate a UnicodeBreaker object and use it as the
breaking engine for a segmenter. Multiple breaking engines may be
supplied (where the first one is called the primary breaker and any
following breaker is a secondary breaker).

  onClusters := tcc.NewBreaker()
  segmenter := segment.NewSegmenter(onClusters)
  segmenter.Init(strings.NewReader("ฉันบอกว่า"))
  for segmenter.Next() {
    // do something with segmenter.Text() or segmenter.Bytes()
  }

How it works

The segmenter uses a double-ended queue to collect runes and the
breaking opportunities between them. The front of the queue keeps
adding new runes, while at the end of the queue we withdraw segments
as soon as they are available.

For every rune r read, the segmenter will fire up all the rules which
start with r. It is not uncommon that the lifetime of a lot of rules
overlap and all those rules are adding breaking information. A segment is
not withdrawn from the queue as long as an active rule may still suppress
the break at its end.

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package segment

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/thaiseg"
)

// CT traces to the core-tracer.
func CT() tracing.Trace {
	return gtrace.CoreTracer
}

// A Segmenter receives a sequence of code-points from an io.RuneReader and
// segments it into smaller parts, called segments.
//
// The specification of a segment is defined by a breaker function of type
// UnicodeBreaker; the default UnicodeBreaker breaks the input into words,
// using whitespace as boundaries.
type Segmenter struct {
	deque                      *deque                   // where we collect runes and penalties
	reader                     io.RuneReader            // where we get the next runes from
	breakers                   []thaiseg.UnicodeBreaker // our work horses
	activeSegment              []byte                   // the most recent segment to build
	buffer                     *bytes.Buffer            // wrapper around activeSegment
	lastPenalties              [2]int                   // penalties at last break opportunity
	maxSegmentLen              int                      // maximum length allowed for segments
	pos                        int64                    // current position in text
	longestActiveMatch         int
	positionOfBreakOpportunity int
	err                        error
	atEOF                      bool
	inUse                      bool // Next() has been called; buffer is in use.
}

// MaxSegmentSize is the maximum size used to buffer a segment
// unless the user provides an explicit buffer with Segmenter.Buffer().
const MaxSegmentSize = 64 * 1024
const startBufSize = 4096 // Size of initial allocation for buffer.

// ErrTooLong flags a buffer overflow.
// ErrNotInitialized is returned if a segmenters Next-function is called without
// first setting an input source.
var (
	ErrTooLong        = errors.New("segmenter: segment too long for buffer")
	ErrNotInitialized = errors.New("segmenter not initialized; must call Init(...) first")
)

// NewSegmenter creates a new Segmenter by providing breaking logic (UnicodeBreaker).
// Clients may provide more than one UnicodeBreaker. Specifying no
// UnicodeBreaker results in getting a SimpleWordBreaker, which will
// break on whitespace (see SimpleWordBreaker in this package).
//
// Before using newly created segmenters, clients will have to call Init(...)
// on them, i.e. initialize them for a rune reader.
func NewSegmenter(breakers ...thaiseg.UnicodeBreaker) *Segmenter {
	s := &Segmenter{}
	if len(breakers) == 0 {
		breakers = []thaiseg.UnicodeBreaker{NewSimpleWordBreaker()}
	}
	s.breakers = breakers
	return s
}

// Init initializes a Segmenter with an io.RuneReader to read from.
// s is either a newly created segmenter to be initialized, or we may
// re-initialize a segmenter already in use.
func (s *Segmenter) Init(reader io.RuneReader) {
	if reader == nil {
		reader = strings.NewReader("")
	}
	s.reader = reader
	if s.deque == nil {
		s.deque = &deque{}
		s.buffer = bytes.NewBuffer(make([]byte, 0, startBufSize))
		s.maxSegmentLen = MaxSegmentSize
	} else {
		s.deque.Clear()
		s.longestActiveMatch = 0
		s.atEOF = false
		s.buffer.Reset()
		s.inUse = false
		s.lastPenalties[0], s.lastPenalties[1] = 0, 0
		s.pos = 0
		s.err = nil
	}
	s.positionOfBreakOpportunity = -1
}

// Buffer sets the initial buffer to use when scanning and the maximum size of
// buffer that may be allocated during segmenting.
//
// Buffer panics if it is called after scanning has started. Clients will have
// to call Init(...) again to permit re-setting the buffer.
func (s *Segmenter) Buffer(buf []byte, max int) {
	if s.inUse {
		panic("segment.Buffer: buffer already in use; cannot be re-set")
	}
	s.buffer = bytes.NewBuffer(buf)
	s.maxSegmentLen = max
}

// Err returns the first non-EOF error that was encountered by the
// Segmenter.
func (s *Segmenter) Err() error {
	if s.err == io.EOF {
		return nil
	}
	return s.err
}

// Penalties >= InfinitePenalty are considered too bad for being a break
// opportunity. A zero penalty means that no breaker has an opinion.
func isPossibleBreak(p int) bool {
	return p != 0 && p < thaiseg.InfinitePenalty
}

// Next advances the Segmenter to the next segment, which will then be available
// through the Bytes() or Text() method. It returns false when the segmenting
// stops, either by reaching the end of the input or an error.
// After Next() returns false, the Err() method will return any error
// that occurred during scanning, except for io.EOF.
func (s *Segmenter) Next() bool {
	if s.reader == nil {
		s.setErr(ErrNotInitialized)
		return false
	}
	s.inUse = true
	if !s.atEOF {
		err := s.readEnoughInput()
		if err != nil && err != io.EOF {
			s.setErr(err)
			s.activeSegment = nil
			return false
		}
	}
	if s.positionOfBreakOpportunity < 0 { // didn't find a break opportunity
		s.activeSegment = nil
		return false
	}
	l := s.getFrontSegment(s.buffer)
	if s.err != nil {
		s.activeSegment = nil
		return false
	}
	s.activeSegment = s.buffer.Bytes()
	CT().P("length", strconv.Itoa(l)).Debugf("Next() = \"%v\"", string(s.activeSegment))
	return true
}

// Bytes returns the most recent segment generated by a call to Next().
// The underlying array may point to data that will be overwritten by a
// subsequent call to Next(). No allocation is performed.
func (s *Segmenter) Bytes() []byte {
	return s.activeSegment
}

// Text returns the most recent segment generated by a call to Next()
// as a newly allocated string holding its bytes.
func (s *Segmenter) Text() string {
	return string(s.activeSegment)
}

// Penalties returns the last penalties a segmenter calculated.
// Two penalties are returned. The first one is the penalty returned from the
// primary breaker, the second one is the aggregate of all penalties of all the
// secondary breakers (if any).
func (s *Segmenter) Penalties() (int, int) {
	return s.lastPenalties[0], s.lastPenalties[1]
}

// setErr() records the first error encountered.
func (s *Segmenter) setErr(err error) {
	if s.err == nil || s.err == io.EOF {
		s.err = err
	}
}

func (s *Segmenter) readRune() error {
	if s.atEOF {
		return io.EOF
	}
	r, sz, err := s.reader.ReadRune()
	s.pos += int64(sz)
	if err == nil {
		s.deque.PushBack(r, 0, 0)
	} else if err == io.EOF {
		s.deque.PushBack(eotAtom.r, eotAtom.penalty0, eotAtom.penalty1)
		s.atEOF = true
		err = nil
	} else {
		CT().P("rune", fmt.Sprintf("%#U", r)).Errorf("ReadRune() error: %s", err)
		s.atEOF = true
	}
	return err
}

func (s *Segmenter) readEnoughInput() (err error) {
	for s.positionOfBreakOpportunity < 0 {
		l := s.deque.Len()
		err = s.readRune()
		if err != nil {
			break
		}
		if s.deque.Len() == l {
			break // nothing read, EOT has already been queued
		}
		from := max(0, l-1-s.longestActiveMatch) // current longest match limit, now old
		l = s.deque.Len()
		s.longestActiveMatch = 0
		r, _, _ := s.deque.Back()
		for _, breaker := range s.breakers {
			cpClass := breaker.CodePointClassFor(r)
			breaker.StartRulesFor(r, cpClass)
			breaker.ProceedWithRune(r, cpClass)
			if breaker.LongestActiveMatch() > s.longestActiveMatch {
				s.longestActiveMatch = breaker.LongestActiveMatch()
			}
			s.insertPenalties(s.inxForBreaker(breaker), breaker.Penalties())
		}
		s.positionOfBreakOpportunity = s.findBreakOpportunity(from, l-1-s.longestActiveMatch)
		s.printQ()
		if s.atEOF {
			break
		}
	}
	return err
}

// findBreakOpportunity searches the queue for the first atom with a valid
// break penalty. Atoms at index to and beyond may still be touched by active
// rules and are not considered. from is informational only, as the front of
// the queue may have been cut by getFrontSegment in the meantime.
func (s *Segmenter) findBreakOpportunity(from int, to int) int {
	pos := -1
	CT().Debugf("segmenter: searching for break opportunity from %d to %d", from, to-1)
	for i := 0; i < to; i++ {
		_, p0, p1 := s.deque.At(i)
		if isPossibleBreak(p0) || (len(s.breakers) > 1 && isPossibleBreak(p1)) {
			pos = i
			break
		}
	}
	return pos
}

// find out if the UnicodeBreaker b is the primary breaker
func (s *Segmenter) inxForBreaker(b thaiseg.UnicodeBreaker) int {
	if b == s.breakers[0] {
		return 0
	}
	return 1
}

func (s *Segmenter) insertPenalties(selector int, penalties []int) {
	l := s.deque.Len()
	if len(penalties) > l {
		penalties = penalties[0:l] // drop excessive penalties
	}
	for i, p := range penalties {
		r, total0, total1 := s.deque.At(l - 1 - i)
		if selector == 0 {
			total0 = bounded(total0 + p)
		} else {
			total1 = bounded(total1 + p)
		}
		s.deque.SetAt(l-1-i, r, total0, total1)
	}
}

func (s *Segmenter) getFrontSegment(buf *bytes.Buffer) int {
	seglen := 0
	s.lastPenalties[0] = 0
	s.lastPenalties[1] = 0
	buf.Reset()
	l := min(s.deque.Len()-1, s.positionOfBreakOpportunity)
	if l+1 > s.maxSegmentLen {
		s.setErr(ErrTooLong)
		return 0
	}
	for i := 0; i <= l; i++ {
		r, p0, p1 := s.deque.PopFront()
		written, _ := buf.WriteRune(r)
		seglen += written
		s.lastPenalties[0] = p0
		s.lastPenalties[1] = p1
	}
	if buf.Len() > s.maxSegmentLen {
		s.setErr(ErrTooLong)
		return 0
	}
	s.positionOfBreakOpportunity = s.findBreakOpportunity(0, s.deque.Len()-1-s.longestActiveMatch)
	s.printQ()
	return seglen
}

// ----------------------------------------------------------------------

// Debugging helper. Print the content of the current queue to the debug log.
func (s *Segmenter) printQ() {
	if CT().GetTraceLevel() < tracing.LevelDebug {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Q #%d: ", s.deque.Len()))
	for i := 0; i < s.deque.Len(); i++ {
		var a atom
		a.r, a.penalty0, a.penalty1 = s.deque.At(i)
		sb.WriteString(fmt.Sprintf(" <- %s", a.String()))
	}
	sb.WriteString(" .")
	CT().Debugf(sb.String())
}

// --- Helpers ----------------------------------------------------------

func min(a int, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a int, b int) int {
	if a > b {
		return a
	}
	return b
}

func bounded(p int) int {
	if p > thaiseg.InfinitePenalty {
		p = thaiseg.InfinitePenalty
	} else if p < thaiseg.InfiniteMerits {
		p = thaiseg.InfiniteMerits
	}
	return p
}
