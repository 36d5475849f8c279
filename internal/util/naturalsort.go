package util

import (
	"strings"
	"unicode"
)

// NaturalSortLess compares two strings so that embedded numbers order
// numerically: "mod-2.jar" sorts before "mod-10.jar". Comparison is case
// insensitive.
func NaturalSortLess(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	for len(a) > 0 && len(b) > 0 {
		if isDigit(a[0]) && isDigit(b[0]) {
			na, ra := takeNumber(a)
			nb, rb := takeNumber(b)
			if na != nb {
				return na < nb
			}
			a, b = ra, rb
			continue
		}
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

func isDigit(c byte) bool { return unicode.IsDigit(rune(c)) }

// takeNumber consumes the leading digit run and returns its value and the
// remainder. Values are capped by int range; mod filenames stay well below.
func takeNumber(s string) (int, string) {
	i := 0
	n := 0
	for i < len(s) && isDigit(s[i]) {
		n = n*10 + int(s[i]-'0')
		i++
	}
	return n, s[i:]
}
