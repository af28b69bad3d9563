// Package textnorm canonicalizes Arabic text so that paraphrases written
// with different diacritics, letter variants or spacing compare equal.
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const tatweel = 'ـ'

var letterVariants = map[rune]rune{
	'أ': 'ا',
	'إ': 'ا',
	'آ': 'ا',
	'ؤ': 'و',
	'ئ': 'ي',
	'ة': 'ه',
}

// IsDiacritic reports whether r is one of the Arabic tashkeel or Quranic
// annotation marks removed by Normalize.
func IsDiacritic(r rune) bool {
	switch {
	case r >= 0x0617 && r <= 0x061A:
		return true
	case r >= 0x064B && r <= 0x065F:
		return true
	case r == 0x0670:
		return true
	case r >= 0x06D6 && r <= 0x06ED:
		return true
	}
	return false
}

func fold(s string) string {
	return strings.Map(func(r rune) rune {
		if r == tatweel || IsDiacritic(r) {
			return -1
		}
		if c, ok := letterVariants[r]; ok {
			return c
		}
		return r
	}, s)
}

// Normalize strips diacritics and tatweel, unifies alef/hamza/ta marbuta
// variants, applies NFKC and collapses whitespace. It is idempotent.
func Normalize(text string) string {
	t := text
	// NFKC can expand presentation forms into letters and marks that the
	// character pass handles, so iterate until the output is stable.
	for i := 0; i < 4; i++ {
		next := strings.Join(strings.Fields(fold(norm.NFKC.String(fold(t)))), " ")
		if next == t {
			break
		}
		t = next
	}
	return t
}
