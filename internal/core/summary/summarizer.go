package summary

import (
	"strings"
	"unicode"
)

const (
	DefaultMaxLength = 250
	// DefaultSuffix invites the user to ask for the full answer.
	DefaultSuffix = "\n\nهل ترغب بالتفصيل أكثر؟"

	// headroom keeps the cut a little short of the budget.
	headroom = 5
)

var sentenceMarks = []rune{'.', '؟', '!', '…'}

type Summarizer struct {
	MaxLength int
	Suffix    string
}

func NewSummarizer(maxLength int, suffix string) *Summarizer {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	return &Summarizer{MaxLength: maxLength, Suffix: suffix}
}

// Summarize shortens text to at most MaxLength runes plus the suffix. The cut
// lands after the last sentence mark within budget, else on the last space,
// else at the budget itself.
func (s *Summarizer) Summarize(text string) string {
	r := []rune(text)
	if len(r) <= s.MaxLength {
		return text
	}

	budget := s.MaxLength - headroom
	if budget < 0 {
		budget = 0
	}
	prefix := r[:budget]

	cut := lastSentenceEnd(r, budget)
	if cut < 0 {
		cut = lastSpace(prefix)
	}
	if cut <= 0 {
		cut = budget
	}

	head := strings.TrimSpace(string(r[:cut]))
	if head == "" {
		head = strings.TrimSpace(string(prefix))
	}
	return head + s.Suffix
}

// Summarize uses the default suffix.
func Summarize(text string, maxLength int) string {
	return NewSummarizer(maxLength, DefaultSuffix).Summarize(text)
}

// lastSentenceEnd returns the index just past the last sentence mark inside
// r[:budget] that ends a word (followed by whitespace or end of text), or -1.
func lastSentenceEnd(r []rune, budget int) int {
	for i := budget - 1; i >= 0; i-- {
		if !isSentenceMark(r[i]) {
			continue
		}
		if i+1 == len(r) || unicode.IsSpace(r[i+1]) {
			return i + 1
		}
	}
	return -1
}

func lastSpace(r []rune) int {
	for i := len(r) - 1; i >= 0; i-- {
		if unicode.IsSpace(r[i]) {
			return i
		}
	}
	return -1
}

func isSentenceMark(c rune) bool {
	for _, m := range sentenceMarks {
		if c == m {
			return true
		}
	}
	return false
}

// Clip truncates text to n runes and marks the truncation with "...".
func Clip(text string, n int) string {
	r := []rune(text)
	if n < 0 || len(r) <= n {
		return text
	}
	return string(r[:n]) + "..."
}
