// Package lang detects the language of a user query.
package lang

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/abadojack/whatlanggo"
)

var ErrUndetermined = errors.New("language could not be determined")

// Detector returns ISO 639-1 codes. Any Arabic-script text is reported as
// "ar" since Persian and Urdu queries are answered from the same base.
type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

func (d *Detector) Detect(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrUndetermined
	}

	if whatlanggo.DetectScript(text) == unicode.Arabic {
		return "ar", nil
	}

	info := whatlanggo.Detect(text)
	code := info.Lang.Iso6391()
	if code == "" {
		return "", ErrUndetermined
	}
	return code, nil
}
