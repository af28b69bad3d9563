package driver

import (
	"context"
	"errors"

	"github.com/agenthands/zomra/internal/core/model"
)

var ErrUnknownDriver = errors.New("unknown database driver")

// Store persists chat logs and donation reminders.
type Store interface {
	Init(ctx context.Context) error
	SaveChatLog(ctx context.Context, rec model.ChatLogRecord) error
	SaveReminder(ctx context.Context, r model.Reminder) (model.Reminder, error)
	RecentChatLogs(ctx context.Context, limit int) ([]model.ChatLogRecord, error)
	Close() error
}
