package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/agenthands/zomra/internal/core/model"
)

type MockLLM struct {
	mu            sync.Mutex
	Response      string
	ResponseQueue []string
	Err           error
	Delay         time.Duration
	// Stall, when set, blocks Generate until closed regardless of ctx.
	Stall   chan struct{}
	Prompts []string
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	m.mu.Unlock()

	if m.Stall != nil {
		<-m.Stall
	}
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if m.Err != nil {
		return "", m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.ResponseQueue) > 0 {
		resp := m.ResponseQueue[0]
		m.ResponseQueue = m.ResponseQueue[1:]
		return resp, nil
	}
	return m.Response, nil
}

func (m *MockLLM) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}

type MockDetector struct {
	Lang  string
	Err   error
	calls int
}

func (m *MockDetector) Detect(ctx context.Context, text string) (string, error) {
	m.calls++
	return m.Lang, m.Err
}

type translateCall struct {
	Text   string
	Target string
}

type MockTranslator struct {
	Prefix string
	Err    error
	Calls  []translateCall
}

func (m *MockTranslator) Translate(ctx context.Context, text, target string) (string, error) {
	m.Calls = append(m.Calls, translateCall{Text: text, Target: target})
	if m.Err != nil {
		return "", m.Err
	}
	return m.Prefix + "[" + target + "]" + text, nil
}

type MockCorrector struct {
	Fixes map[string]string
	Err   error
	calls int
}

func (m *MockCorrector) Correct(ctx context.Context, text string) (string, error) {
	m.calls++
	if m.Err != nil {
		return "", m.Err
	}
	if fixed, ok := m.Fixes[text]; ok {
		return fixed, nil
	}
	return text, nil
}

type MockChatLogger struct {
	mu      sync.Mutex
	Records []model.ChatLogRecord
	Err     error
	Panic   bool
}

func (m *MockChatLogger) LogChat(ctx context.Context, rec model.ChatLogRecord) error {
	if m.Panic {
		panic("log store exploded")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = append(m.Records, rec)
	return m.Err
}

type MockKnowledge struct {
	Matches map[string]model.KnowledgeMatch
	Queries []string
}

func (m *MockKnowledge) Lookup(query string) (model.KnowledgeMatch, bool) {
	m.Queries = append(m.Queries, query)
	match, ok := m.Matches[query]
	return match, ok
}

var errAdapterDown = errors.New("adapter down")
