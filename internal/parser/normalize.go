package parser

import "strings"

// ExpandDelimiters surrounds every structural delimiter with exactly one space on
// each side, absorbing whatever whitespace was adjacent to it.
func ExpandDelimiters(code string) string {
	buf := make([]byte, 0, len(code)+len(code)/4)
	skipSpace := false

	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case isDelimiter(c):
			for len(buf) > 0 && isSpace(buf[len(buf)-1]) {
				buf = buf[:len(buf)-1]
			}
			buf = append(buf, ' ', c, ' ')
			skipSpace = true
		case isSpace(c) && skipSpace:
			continue
		default:
			buf = append(buf, c)
			skipSpace = false
		}
	}

	return string(buf)
}

// NormalizeWhitespace collapses each run of whitespace into a single space and
// trims the ends. \r\n, \n and \t are all treated alike.
func NormalizeWhitespace(code string) string {
	return strings.Join(strings.Fields(code), " ")
}

func isDelimiter(c byte) bool {
	return c == '{' || c == '}' || c == ';'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
