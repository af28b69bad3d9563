package driver

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agenthands/zomra/internal/core/model"
)

const (
	timestampLayout = "2006-01-02T15:04:05.000000Z07:00"
	dateLayout      = "2006-01-02"
)

// prepareReminder fills the generated fields of a reminder before insert.
func prepareReminder(r model.Reminder, now time.Time) model.Reminder {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	return r
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func scanChatLog(ts, raw, corrected, kind, source, answer string) (model.ChatLogRecord, error) {
	when, err := time.Parse(timestampLayout, ts)
	if err != nil {
		return model.ChatLogRecord{}, fmt.Errorf("bad chat log timestamp %q: %w", ts, err)
	}
	return model.ChatLogRecord{
		Timestamp:      when,
		RawQuery:       raw,
		CorrectedQuery: corrected,
		SourceType:     model.SourceType(kind),
		SourceLabel:    source,
		Answer:         answer,
	}, nil
}
