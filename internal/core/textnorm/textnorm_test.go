package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", " \t\n ", ""},
		{"diacritics", "التَّبَرُّعُ بِالدَّمِ", "التبرع بالدم"},
		{"alef variants", "أإآا", "اااا"},
		{"hamza carriers", "مسؤول شاطئ", "مسوول شاطي"},
		{"ta marbuta", "صحة جيدة", "صحه جيده"},
		{"tatweel", "الـــدم", "الدم"},
		{"collapse spaces", "  ما   هي\tشروط \n التبرع  ", "ما هي شروط التبرع"},
		{"superscript alef", "هٰذا", "هذا"},
		{"nfkc presentation form", "ﻻ", "لا"},
		{"latin untouched", "Blood  Donation", "Blood Donation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"ما هي شروط التبرع بالدم؟",
		"هَلْ التَّبَرُّعُ بِالدَّمِ مُؤْلِمٌ؟",
		"ﻷﺍ ﱠ",
		"مـــرحـــبـــا   بـكـم",
		"already canonical",
		"éً",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestIsDiacritic(t *testing.T) {
	assert.True(t, IsDiacritic('َ'))
	assert.True(t, IsDiacritic('ٰ'))
	assert.True(t, IsDiacritic('ۖ'))
	assert.False(t, IsDiacritic('ا'))
	assert.False(t, IsDiacritic('a'))
}
