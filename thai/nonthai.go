package thai

import "unicode"

// NonThaiPrefix returns the length (in runes) of a run of non-Thai text at
// the start of rs, or 0 if rs starts with a Thai code-point.
//
// Runs are tried in order, first match wins:
//
//   [-a-zA-Z]+                   Latin words, possibly hyphenated
//   \d+([,.]\d+)*                numbers, including Thai digits
//   [ \t]+                       blanks
//   \r?\n                        a single newline
//   [^\u0E00-\u0E7F \t\r\n]+    anything else outside the Thai block
func NonThaiPrefix(rs []rune) int {
	if len(rs) == 0 {
		return 0
	}
	if n := latinRun(rs); n > 0 {
		return n
	}
	if n := numberRun(rs); n > 0 {
		return n
	}
	if n := blankRun(rs); n > 0 {
		return n
	}
	if rs[0] == '\n' {
		return 1
	}
	if rs[0] == '\r' && len(rs) > 1 && rs[1] == '\n' {
		return 2
	}
	n := 0
	for n < len(rs) && !IsThai(rs[n]) && !isBlankOrNewline(rs[n]) {
		n++
	}
	return n
}

// StartsNonThai is true if rs starts with a run of non-Thai text.
func StartsNonThai(rs []rune) bool {
	return NonThaiPrefix(rs) > 0
}

func latinRun(rs []rune) int {
	n := 0
	for n < len(rs) && (rs[n] == '-' || (rs[n] >= 'a' && rs[n] <= 'z') || (rs[n] >= 'A' && rs[n] <= 'Z')) {
		n++
	}
	return n
}

func numberRun(rs []rune) int {
	n := digits(rs)
	if n == 0 {
		return 0
	}
	for n+1 < len(rs) && (rs[n] == ',' || rs[n] == '.') {
		m := digits(rs[n+1:])
		if m == 0 {
			break
		}
		n += 1 + m
	}
	return n
}

func digits(rs []rune) int {
	n := 0
	for n < len(rs) && unicode.IsDigit(rs[n]) {
		n++
	}
	return n
}

func blankRun(rs []rune) int {
	n := 0
	for n < len(rs) && (rs[n] == ' ' || rs[n] == '\t') {
		n++
	}
	return n
}

func isBlankOrNewline(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}
