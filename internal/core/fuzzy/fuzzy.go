// Package fuzzy implements the approximate string scores used by the
// knowledge index. All scores are 0-100 and operate on runes, so Arabic
// text is compared letter by letter rather than byte by byte.
package fuzzy

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Scorer compares a query against a candidate and returns a 0-100 score.
type Scorer func(query, choice string) int

// Ratio is the normalized InDel similarity: 2*LCS / (len(a)+len(b)).
func Ratio(a, b string) int {
	return ratioRunes([]rune(a), []rune(b))
}

func ratioRunes(a, b []rune) int {
	total := len(a) + len(b)
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return int(math.Round(100 * float64(2*lcs(a, b)) / float64(total)))
}

// lcs returns the length of the longest common subsequence of a and b.
func lcs(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// PartialRatio scores the best alignment of the shorter string against any
// equally long window of the longer one. A string fully contained in the
// other scores 100.
func PartialRatio(a, b string) int {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}
	if strings.Contains(string(long), string(short)) {
		return 100
	}

	best := 0
	for i := 0; i+len(short) <= len(long); i++ {
		score := ratioRunes(short, long[i:i+len(short)])
		if score > best {
			best = score
			if best == 100 {
				break
			}
		}
	}
	return best
}

// TokenSortRatio compares both strings after lowercasing, replacing
// punctuation with spaces and sorting their words, so word order does not
// affect the score.
func TokenSortRatio(a, b string) int {
	return Ratio(sortedTokens(a), sortedTokens(b))
}

func sortedTokens(s string) string {
	tokens := strings.Fields(Clean(s))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// Clean lowercases s and keeps only letters and digits, with single spaces
// between words. Punctuation-only input cleans to "".
func Clean(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(cleaned), " ")
}

// ExtractOne returns the index and score of the best-scoring choice. Ties go
// to the earliest choice. It returns -1 when choices is empty.
func ExtractOne(query string, choices []string, scorer Scorer) (int, int) {
	bestIdx, bestScore := -1, -1
	for i, c := range choices {
		if score := scorer(query, c); score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	if bestIdx < 0 {
		return -1, 0
	}
	return bestIdx, bestScore
}
