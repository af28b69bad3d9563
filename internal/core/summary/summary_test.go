package summary

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_ShortTextUnchanged(t *testing.T) {
	text := "الوخز لحظي وبسيط."
	assert.Equal(t, text, Summarize(text, 250))
	assert.Equal(t, "", Summarize("", 250))

	exact := strings.Repeat("د", 20)
	assert.Equal(t, exact, Summarize(exact, 20))
}

func TestSummarize_CutsAtSentenceMark(t *testing.T) {
	text := "الجملة الأولى. الجملة الثانية؟ " + strings.Repeat("كلمة ", 20)
	got := Summarize(text, 40)

	assert.Equal(t, "الجملة الأولى. الجملة الثانية؟"+DefaultSuffix, got)
}

func TestSummarize_IgnoresMarksInsideWords(t *testing.T) {
	// "3.5" must not be treated as a sentence end.
	text := "الجرعة 3.5 ملغ يوميا لمدة طويلة جدا جدا جدا"
	got := Summarize(text, 20)

	head := strings.TrimSuffix(got, DefaultSuffix)
	assert.Equal(t, "الجرعة 3.5 ملغ", head)
}

func TestSummarize_CutsAtSpace(t *testing.T) {
	text := "alpha beta gamma delta epsilon zeta eta theta"
	got := Summarize(text, 20)

	assert.Equal(t, "alpha beta"+DefaultSuffix, got)
}

func TestSummarize_HardCutWithoutBoundary(t *testing.T) {
	text := strings.Repeat("x", 100)
	got := Summarize(text, 30)

	assert.Equal(t, strings.Repeat("x", 25)+DefaultSuffix, got)
}

func TestSummarize_LengthBound(t *testing.T) {
	inputs := []string{
		strings.Repeat("التبرع بالدم آمن. ", 40),
		strings.Repeat("word ", 200),
		strings.Repeat("ب", 1000),
		strings.Repeat("هل يمكنني التبرع؟ نعم! ", 30),
	}
	suffixLen := utf8.RuneCountInString(DefaultSuffix)
	for _, in := range inputs {
		for _, n := range []int{1, 6, 50, 250} {
			out := Summarize(in, n)
			assert.LessOrEqual(t, utf8.RuneCountInString(out), n+suffixLen)
		}
	}
}

func TestSummarize_NeverCutsMidWordWhenBoundaryExists(t *testing.T) {
	text := strings.Repeat("متبرع ", 100)
	head := strings.TrimSuffix(Summarize(text, 100), DefaultSuffix)

	for _, w := range strings.Fields(head) {
		assert.Equal(t, "متبرع", w)
	}
}

func TestNewSummarizer_CustomSuffix(t *testing.T) {
	s := NewSummarizer(12, " [more]")
	assert.Equal(t, "one [more]", s.Summarize("one two three four"))
	assert.Equal(t, DefaultMaxLength, NewSummarizer(0, "").MaxLength)
}

func TestClip(t *testing.T) {
	assert.Equal(t, "abc", Clip("abc", 5))
	assert.Equal(t, "ab...", Clip("abc", 2))
	assert.Equal(t, "دم...", Clip("دمعة", 2))
	assert.Equal(t, "abc", Clip("abc", -1))
}
