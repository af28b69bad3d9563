package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnavailable   = errors.New("adapter unavailable")
	ErrEmptyResponse = errors.New("adapter returned empty output")
)

type OutcomeStatus int

const (
	OutcomeOK OutcomeStatus = iota
	// OutcomeDegraded means the adapter was skipped; Text is the input.
	OutcomeDegraded
	// OutcomeFailed means the adapter errored or timed out; Text is the input.
	OutcomeFailed
)

func (s OutcomeStatus) String() string {
	switch s {
	case OutcomeOK:
		return "ok"
	case OutcomeDegraded:
		return "degraded"
	default:
		return "failed"
	}
}

// Outcome is the tagged result of one adapter call.
type Outcome struct {
	Status OutcomeStatus
	Text   string
	Err    error
}

func ok(text string) Outcome { return Outcome{Status: OutcomeOK, Text: text} }

func degraded(input string) Outcome {
	return Outcome{Status: OutcomeDegraded, Text: input, Err: ErrUnavailable}
}

func failed(input string, err error) Outcome {
	return Outcome{Status: OutcomeFailed, Text: input, Err: err}
}

type reply struct {
	text string
	err  error
}

// call runs fn under its own timeout and converts every failure, including a
// panic or an empty reply, into an Outcome that carries the original input.
// The bound holds even when fn ignores ctx; such a call is abandoned and its
// late reply discarded.
func call(ctx context.Context, timeout time.Duration, input string, fn func(ctx context.Context) (string, error)) Outcome {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	done := make(chan reply, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- reply{err: fmt.Errorf("adapter panic: %v", r)}
			}
		}()
		text, err := fn(ctx)
		done <- reply{text: text, err: err}
	}()

	var r reply
	select {
	case r = <-done:
	case <-ctx.Done():
		return failed(input, ctx.Err())
	}

	if r.err != nil {
		return failed(input, r.err)
	}
	if ctx.Err() != nil {
		return failed(input, ctx.Err())
	}
	text := strings.TrimSpace(r.text)
	if text == "" {
		return failed(input, ErrEmptyResponse)
	}
	return ok(text)
}
