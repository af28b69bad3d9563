package llm

import (
	"context"
	"fmt"
	"strings"
)

// Prompts drive the prompt-based translator and corrector. Each template
// takes the text as its last %s verb; FromArabic also takes the target
// language name first.
type Prompts struct {
	ToArabic   string
	FromArabic string
	Correct    string
}

const (
	DefaultToArabicPrompt   = "Translate to clear standard Arabic. Return only the translation:\n\n%s"
	DefaultFromArabicPrompt = "Translate this Arabic text to %s. Return only the translation:\n\n%s"
	DefaultCorrectPrompt    = "صحح الأخطاء الإملائية بالنص العربي وأعد النص فقط:\n\n%s"
)

// template returns prompt when it holds exactly n %s verbs and no other
// formatting directives, and def otherwise.
func template(prompt string, n int, def string) string {
	if strings.Count(prompt, "%s") == n && strings.Count(prompt, "%") == n {
		return prompt
	}
	return def
}

var languageNames = map[string]string{
	"ar": "Arabic",
	"en": "English",
	"fr": "French",
	"ur": "Urdu",
	"hi": "Hindi",
	"id": "Indonesian",
	"tr": "Turkish",
}

func languageName(code string) string {
	if name, ok := languageNames[strings.ToLower(code)]; ok {
		return name
	}
	return code
}

// PromptTranslator translates by asking the model.
type PromptTranslator struct {
	client  LLMClient
	prompts Prompts
}

func NewPromptTranslator(client LLMClient, prompts Prompts) *PromptTranslator {
	prompts.ToArabic = template(prompts.ToArabic, 1, DefaultToArabicPrompt)
	prompts.FromArabic = template(prompts.FromArabic, 2, DefaultFromArabicPrompt)
	return &PromptTranslator{client: client, prompts: prompts}
}

func (t *PromptTranslator) Translate(ctx context.Context, text, target string) (string, error) {
	var prompt string
	if strings.EqualFold(target, "ar") {
		prompt = fmt.Sprintf(t.prompts.ToArabic, text)
	} else {
		prompt = fmt.Sprintf(t.prompts.FromArabic, languageName(target), text)
	}

	out, err := t.client.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("translate to %s: %w", target, err)
	}
	return strings.TrimSpace(out), nil
}

// PromptCorrector fixes Arabic spelling by asking the model.
type PromptCorrector struct {
	client LLMClient
	prompt string
}

func NewPromptCorrector(client LLMClient, prompt string) *PromptCorrector {
	return &PromptCorrector{client: client, prompt: template(prompt, 1, DefaultCorrectPrompt)}
}

func (c *PromptCorrector) Correct(ctx context.Context, text string) (string, error) {
	out, err := c.client.Generate(ctx, fmt.Sprintf(c.prompt, text))
	if err != nil {
		return "", fmt.Errorf("correct spelling: %w", err)
	}
	return strings.TrimSpace(out), nil
}
