package core

import (
	"fmt"

	"github.com/agenthands/zomra/internal/core/model"
)

const (
	aiDisclosure  = "لم نجد إجابة في القاعدة؛ استعنا بالذكاء الاصطناعي:\n\n"
	aiFootnote    = "\n\n(مولَّد آليًا)"
	sourceLabelAI = "AI"
)

func promptForInput(lang model.Lang) string {
	if lang == model.LangEnglish {
		return "Please type your question."
	}
	return "اكتب سؤالك من فضلك."
}

func humanFallback(lang model.Lang, contact string) string {
	if lang == model.LangEnglish {
		return fmt.Sprintf("Sorry, I could not confidently understand your question. Please contact our team for help: %s", contact)
	}
	return fmt.Sprintf("عذرًا، لم أتمكن من فهم سؤالك بشكل مؤكد. للمساعدة تواصل مع فريقنا: %s", contact)
}
