/*
Package fixture reads segmentation test files.

A test file holds one test case per line. Segments are separated by '÷',
code-points inside a segment may be joined by '×'. A segment is either
literal text or a code-point in U+ notation, which allows for whitespace
segments:

  ผม ÷ ชอบ ÷ U+0020 ÷ Python    # mixed Thai and Latin

Lines starting with '#' are skipped; text after '#' is a comment.

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package fixture

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"testing"
)

// TestFile is a scanner for segmentation test files.
type TestFile struct {
	in      io.Closer
	scanner *bufio.Scanner
	text    string
	comment string
}

// OpenTestFile opens a test file. Errors are reported to t.
func OpenTestFile(filename string, t *testing.T) *TestFile {
	f, err := os.Open(filename)
	if err != nil {
		t.Fatalf("loading test file %s: %v", filename, err)
		return nil
	}
	return NewTestFile(f)
}

// NewTestFile creates a scanner for test cases from a reader.
func NewTestFile(r io.Reader) *TestFile {
	tf := &TestFile{scanner: bufio.NewScanner(r)}
	if c, ok := r.(io.Closer); ok {
		tf.in = c
	}
	return tf
}

// Scan advances to the next test case.
func (tf *TestFile) Scan() bool {
	for tf.scanner.Scan() {
		line := strings.TrimSpace(tf.scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		tf.text, tf.comment = line, ""
		if i := strings.IndexByte(line, '#'); i >= 0 {
			tf.text, tf.comment = strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:])
		}
		return true
	}
	return false
}

// Text returns the current test case.
func (tf *TestFile) Text() string {
	return tf.text
}

// Comment returns the comment of the current test case.
func (tf *TestFile) Comment() string {
	return tf.comment
}

// Err returns the first non-EOF error of the scanner.
func (tf *TestFile) Err() error {
	return tf.scanner.Err()
}

// Close closes the underlying file, if any.
func (tf *TestFile) Close() {
	if tf.in != nil {
		tf.in.Close()
	}
}

// BreakTestInput splits a test case into the input text and the expected
// segments.
func BreakTestInput(ti string) (string, []string) {
	sc := bufio.NewScanner(strings.NewReader(ti))
	sc.Split(bufio.ScanWords)
	out := make([]string, 0, 8)
	var inp, run strings.Builder
	for sc.Scan() {
		token := sc.Text()
		switch {
		case token == "÷":
			if run.Len() > 0 {
				out = append(out, run.String())
				run.Reset()
			}
		case token == "×":
			// no break, nothing to do
		case strings.HasPrefix(token, "U+"):
			n, err := strconv.ParseUint(token[2:], 16, 32)
			if err != nil {
				run.WriteString(token)
				inp.WriteString(token)
				continue
			}
			run.WriteRune(rune(n))
			inp.WriteRune(rune(n))
		default:
			run.WriteString(token)
			inp.WriteString(token)
		}
	}
	if run.Len() > 0 {
		out = append(out, run.String())
	}
	return inp.String(), out
}
