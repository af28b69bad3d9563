package core

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/agenthands/zomra/internal/core/common"
	"github.com/agenthands/zomra/internal/core/model"
	"github.com/agenthands/zomra/internal/core/summary"
	"github.com/agenthands/zomra/internal/llm"
)

const (
	DefaultAdapterTimeout    = 10 * time.Second
	DefaultMinGeneratedRunes = 10
	DefaultLogAnswerLimit    = 800
	DefaultGenerationPrompt  = "%s"
)

type Options struct {
	AdapterTimeout    time.Duration
	MaxAnswerLength   int
	MinGeneratedRunes int
	LogAnswerLimit    int
	// ForceFallback disables AI generation without unwiring the client.
	ForceFallback bool
	HumanContact  string
	// GenerationPrompt is a fmt template receiving the corrected query.
	GenerationPrompt string
}

func (o Options) withDefaults() Options {
	if o.AdapterTimeout <= 0 {
		o.AdapterTimeout = DefaultAdapterTimeout
	}
	if o.MaxAnswerLength <= 0 {
		o.MaxAnswerLength = summary.DefaultMaxLength
	}
	if o.MinGeneratedRunes <= 0 {
		o.MinGeneratedRunes = DefaultMinGeneratedRunes
	}
	if o.LogAnswerLimit <= 0 {
		o.LogAnswerLimit = DefaultLogAnswerLimit
	}
	if o.GenerationPrompt == "" || !strings.Contains(o.GenerationPrompt, "%s") {
		o.GenerationPrompt = DefaultGenerationPrompt
	}
	return o
}

type Adapters struct {
	Detector   Capability[LanguageDetector]
	Translator Capability[Translator]
	Corrector  Capability[Corrector]
	Generator  Capability[llm.LLMClient]
	Logger     Capability[ChatLogger]
}

// Assistant answers donor questions: knowledge base first, then AI
// generation, then a fixed human-contact message. Adapter failures are
// absorbed at every step.
type Assistant struct {
	Knowledge  KnowledgeLookup
	adapters   Adapters
	opts       Options
	summarizer *summary.Summarizer
	logger     *zap.Logger
	Now        func() time.Time
}

func NewAssistant(kb KnowledgeLookup, adapters Adapters, opts Options, logger *zap.Logger) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = opts.withDefaults()
	return &Assistant{
		Knowledge:  kb,
		adapters:   adapters,
		opts:       opts,
		summarizer: summary.NewSummarizer(opts.MaxAnswerLength, summary.DefaultSuffix),
		logger:     logger,
		Now:        time.Now,
	}
}

// GenerationEnabled reports whether a miss can reach the AI tier.
func (a *Assistant) GenerationEnabled() bool {
	return a.adapters.Generator.Available() && !a.opts.ForceFallback
}

func (a *Assistant) Ask(ctx context.Context, q model.ChatQuery) model.ChatResult {
	raw := strings.TrimSpace(q.Text)
	if raw == "" {
		return model.ChatResult{
			Answer:        promptForInput(q.UILang),
			SourceType:    model.SourceError,
			NotUnderstood: true,
		}
	}

	lang := a.detect(ctx, raw)

	text := raw
	if lang != string(model.LangArabic) {
		text = a.translate(ctx, text, string(model.LangArabic), "query")
	}
	corrected := a.correct(ctx, text)

	var res model.ChatResult
	if m, hit := a.lookup(corrected); hit {
		res = model.ChatResult{
			Answer:      a.shorten(m.Entry.Answer, q.WantDetail),
			SourceType:  model.SourceKB,
			SourceLabel: m.Entry.Source,
		}
		a.logger.Debug("knowledge hit",
			zap.String("key", m.Key),
			zap.String("scorer", m.Scorer),
			zap.Int("score", m.Score))
	} else if answer, generated := a.generate(ctx, corrected, q.WantDetail); generated {
		res = model.ChatResult{
			Answer:        answer,
			SourceType:    model.SourceAI,
			SourceLabel:   sourceLabelAI,
			NotUnderstood: true,
		}
	} else {
		res = model.ChatResult{
			Answer:        humanFallback(q.UILang, a.opts.HumanContact),
			SourceType:    model.SourceFallback,
			NotUnderstood: true,
		}
	}

	// KB and AI answers are Arabic; fallback text is already in the UI language.
	if res.SourceType != model.SourceFallback && q.UILang != "" && q.UILang != model.LangArabic {
		res.Answer = a.translate(ctx, res.Answer, string(q.UILang), "answer")
	}

	res.CorrectedQuery = corrected
	res.DetectedLang = lang
	a.report(ctx, raw, corrected, res)
	return res
}

func (a *Assistant) lookup(query string) (model.KnowledgeMatch, bool) {
	if a.Knowledge == nil {
		return model.KnowledgeMatch{}, false
	}
	return a.Knowledge.Lookup(query)
}

func (a *Assistant) detect(ctx context.Context, text string) string {
	detector, configured := a.adapters.Detector.Get()
	if !configured {
		return string(model.LangArabic)
	}
	out := call(ctx, a.opts.AdapterTimeout, "", func(ctx context.Context) (string, error) {
		return detector.Detect(ctx, text)
	})
	if out.Status != OutcomeOK {
		a.logger.Debug("language detection failed, assuming arabic", zap.Error(out.Err))
		return string(model.LangArabic)
	}
	code := strings.ToLower(out.Text)
	if len(code) > 2 {
		code = code[:2]
	}
	return code
}

func (a *Assistant) translate(ctx context.Context, text, target, what string) string {
	translator, configured := a.adapters.Translator.Get()
	if !configured {
		return text
	}
	out := call(ctx, a.opts.AdapterTimeout, text, func(ctx context.Context) (string, error) {
		return translator.Translate(ctx, text, target)
	})
	if out.Status == OutcomeFailed {
		a.logger.Warn("translation failed, keeping original text",
			zap.String("what", what), zap.String("target", target), zap.Error(out.Err))
	}
	return out.Text
}

func (a *Assistant) correct(ctx context.Context, text string) string {
	corrector, configured := a.adapters.Corrector.Get()
	if !configured {
		return text
	}
	out := call(ctx, a.opts.AdapterTimeout, text, func(ctx context.Context) (string, error) {
		return corrector.Correct(ctx, text)
	})
	if out.Status == OutcomeFailed {
		a.logger.Warn("spelling correction failed, keeping input", zap.Error(out.Err))
	}
	return out.Text
}

// generate returns the decorated AI answer, or false when the request must
// fall through to the human-contact message.
func (a *Assistant) generate(ctx context.Context, query string, wantDetail bool) (string, bool) {
	generator, configured := a.adapters.Generator.Get()
	if !configured || a.opts.ForceFallback {
		return "", false
	}
	out := call(ctx, a.opts.AdapterTimeout, "", func(ctx context.Context) (string, error) {
		return generator.Generate(ctx, fmt.Sprintf(a.opts.GenerationPrompt, query))
	})
	if out.Status != OutcomeOK {
		a.logger.Warn("generation failed, using human fallback", zap.Error(out.Err))
		return "", false
	}
	text := common.CleanResponse(out.Text)
	if utf8.RuneCountInString(text) < a.opts.MinGeneratedRunes {
		a.logger.Warn("generation output too short, using human fallback",
			zap.Int("runes", utf8.RuneCountInString(text)))
		return "", false
	}
	return aiDisclosure + a.shorten(text, wantDetail) + aiFootnote, true
}

func (a *Assistant) shorten(text string, wantDetail bool) string {
	if wantDetail {
		return text
	}
	return a.summarizer.Summarize(text)
}

// report hands the outcome to the chat logger. Logger errors and panics are
// swallowed.
func (a *Assistant) report(ctx context.Context, raw, corrected string, res model.ChatResult) {
	logger, configured := a.adapters.Logger.Get()
	if !configured {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			a.logger.Warn("chat logger panicked", zap.Any("panic", r))
		}
	}()

	rec := model.ChatLogRecord{
		Timestamp:      a.Now(),
		RawQuery:       raw,
		CorrectedQuery: corrected,
		SourceType:     res.SourceType,
		SourceLabel:    res.SourceLabel,
		Answer:         summary.Clip(res.Answer, a.opts.LogAnswerLimit),
	}
	if err := logger.LogChat(context.WithoutCancel(ctx), rec); err != nil {
		a.logger.Warn("chat log not recorded", zap.Error(err))
	}
}
