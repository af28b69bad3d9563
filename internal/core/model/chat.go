package model

import (
	"strings"
	"time"
)

type Lang string

const (
	LangArabic  Lang = "ar"
	LangEnglish Lang = "en"
)

// ParseLang maps any user-supplied language tag onto a supported UI language.
// Unknown or empty values fall back to Arabic.
func ParseLang(s string) Lang {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(s)), "en") {
		return LangEnglish
	}
	return LangArabic
}

type SourceType string

const (
	SourceKB       SourceType = "KB"
	SourceAI       SourceType = "AI"
	SourceFallback SourceType = "Fallback"
	SourceError    SourceType = "Error"
)

type ChatQuery struct {
	Text       string `json:"message"`
	WantDetail bool   `json:"detail"`
	UILang     Lang   `json:"lang"`
}

type ChatResult struct {
	Answer         string     `json:"answer"`
	SourceType     SourceType `json:"source_type"`
	SourceLabel    string     `json:"source_text,omitempty"`
	NotUnderstood  bool       `json:"not_understood"`
	CorrectedQuery string     `json:"corrected_message,omitempty"`
	DetectedLang   string     `json:"detected_lang,omitempty"`
}

// ChatLogRecord is what gets persisted for every answered chat request.
// Answer is already truncated for storage.
type ChatLogRecord struct {
	Timestamp      time.Time  `json:"timestamp"`
	RawQuery       string     `json:"raw_query"`
	CorrectedQuery string     `json:"corrected_query"`
	SourceType     SourceType `json:"response_type"`
	SourceLabel    string     `json:"kb_source"`
	Answer         string     `json:"bot_response"`
}
