package text

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ligatures covers the Latin presentation forms U+FB00 (ff) through U+FB06 (st).
var ligatures = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0xFB00, Hi: 0xFB06, Stride: 1}},
}

// FoldLigatures replaces typographic ligatures with their letter sequences
// ("ﬁ" becomes "fi"). Everything outside the ligature block is left
// untouched, so compatibility characters such as non-breaking spaces survive.
func FoldLigatures(s string) string {
	if strings.IndexFunc(s, isLigature) < 0 {
		return s
	}

	t := runes.If(runes.In(ligatures), norm.NFKC, nil)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func isLigature(r rune) bool {
	return unicode.Is(ligatures, r)
}

// FlattenBreaks replaces every line break inside s with a single space.
// A CR LF pair counts as one break.
func FlattenBreaks(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return ' '
		}
		return r
	}, s)
}

// StartsWithSpace reports whether the first rune of s is white space
func StartsWithSpace(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size > 0 && unicode.IsSpace(r)
}

// EndsWithSpace reports whether the last rune of s is white space
func EndsWithSpace(s string) bool {
	r, size := utf8.DecodeLastRuneInString(s)
	return size > 0 && unicode.IsSpace(r)
}

// Dehyphenate joins a word split across two lines. When left ends with a
// hyphen that follows a letter and right starts with a lowercase letter,
// it returns left without the hyphen and true. Otherwise left is returned
// unchanged with false.
func Dehyphenate(left, right string) (string, bool) {
	if !strings.HasSuffix(left, "-") {
		return left, false
	}
	stem := left[:len(left)-1]
	before, size := utf8.DecodeLastRuneInString(stem)
	if size == 0 || !unicode.IsLetter(before) {
		return left, false
	}
	first, size := utf8.DecodeRuneInString(right)
	if size == 0 || !unicode.IsLower(first) {
		return left, false
	}
	return stem, true
}

// HasLetter reports whether s contains at least one letter
func HasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

// IsDigits reports whether s is non-empty and made only of decimal digits
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
