package core

import (
	"context"

	"github.com/agenthands/zomra/internal/core/model"
)

type LanguageDetector interface {
	Detect(ctx context.Context, text string) (string, error)
}

type Translator interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

type Corrector interface {
	Correct(ctx context.Context, text string) (string, error)
}

// ChatLogger receives one record per answered request. Implementations must
// not block the caller.
type ChatLogger interface {
	LogChat(ctx context.Context, rec model.ChatLogRecord) error
}

type KnowledgeLookup interface {
	Lookup(query string) (model.KnowledgeMatch, bool)
}

// Capability is an optional adapter: either configured with an
// implementation or explicitly unavailable.
type Capability[T any] struct {
	impl       T
	configured bool
}

func Configured[T any](impl T) Capability[T] {
	return Capability[T]{impl: impl, configured: true}
}

func Unavailable[T any]() Capability[T] {
	return Capability[T]{}
}

func (c Capability[T]) Get() (T, bool) {
	return c.impl, c.configured
}

func (c Capability[T]) Available() bool {
	return c.configured
}
