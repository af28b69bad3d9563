package common

import (
	"strings"
)

// CleanResponse strips the wrapping LLMs tend to add around plain-text
// answers: markdown code fences and matching surrounding quotes.
func CleanResponse(response string) string {
	s := strings.TrimSpace(response)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		// Drop an optional language tag on the opening fence line.
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			if tag := strings.TrimSpace(s[:i]); !strings.ContainsAny(tag, " \t") {
				s = s[i+1:]
			}
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}

	for _, q := range [][2]string{{`"`, `"`}, {"«", "»"}, {"“", "”"}} {
		if len(s) >= len(q[0])+len(q[1]) && strings.HasPrefix(s, q[0]) && strings.HasSuffix(s, q[1]) {
			s = strings.TrimSpace(s[len(q[0]) : len(s)-len(q[1])])
			break
		}
	}
	return s
}
