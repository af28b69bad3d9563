//go:build integration

package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/zomra/internal/config"
	"github.com/agenthands/zomra/internal/core/model"
	"github.com/agenthands/zomra/internal/driver"
)

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("Skipping integration test: POSTGRES_TEST_DSN not set")
	}
	ctx := context.Background()

	store, err := driver.NewStore(ctx, config.DatabaseConfig{Driver: "postgres", DSN: dsn})
	require.NoError(t, err)
	defer store.Close()

	now := time.Now().UTC()
	require.NoError(t, store.SaveChatLog(ctx, model.ChatLogRecord{
		Timestamp:  now,
		RawQuery:   "شروط التبرع",
		SourceType: model.SourceKB,
		Answer:     "جواب",
	}))

	logs, err := store.RecentChatLogs(ctx, 1)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "شروط التبرع", logs[0].RawQuery)

	r, err := store.SaveReminder(ctx, model.Reminder{NextDate: now.AddDate(0, 0, 90), Channel: "email"})
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
}
