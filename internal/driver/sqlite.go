package driver

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/agenthands/zomra/internal/core/model"
)

type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens (or creates) a database file in WAL mode.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps writes serialized.
	db.SetMaxOpenConns(1)

	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	for _, q := range schema {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) SaveChatLog(ctx context.Context, rec model.ChatLogRecord) error {
	_, err := s.db.ExecContext(ctx, sqliteInsertChatLog,
		uuid.NewString(),
		formatTimestamp(rec.Timestamp),
		rec.RawQuery,
		rec.CorrectedQuery,
		string(rec.SourceType),
		rec.SourceLabel,
		rec.Answer,
	)
	if err != nil {
		return fmt.Errorf("failed to save chat log: %w", err)
	}
	return nil
}

func (s *SQLiteStore) SaveReminder(ctx context.Context, r model.Reminder) (model.Reminder, error) {
	r = prepareReminder(r, s.now())
	_, err := s.db.ExecContext(ctx, sqliteInsertReminder,
		r.ID,
		formatTimestamp(r.CreatedAt),
		r.UserHint,
		r.NextDate.Format(dateLayout),
		r.Note,
		r.Channel,
		r.Contact,
	)
	if err != nil {
		return model.Reminder{}, fmt.Errorf("failed to save reminder: %w", err)
	}
	return r, nil
}

func (s *SQLiteStore) RecentChatLogs(ctx context.Context, limit int) ([]model.ChatLogRecord, error) {
	rows, err := s.db.QueryContext(ctx, sqliteRecentChatLogs, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat logs: %w", err)
	}
	defer rows.Close()

	var out []model.ChatLogRecord
	for rows.Next() {
		var ts, raw, corrected, kind, source, answer sql.NullString
		if err := rows.Scan(&ts, &raw, &corrected, &kind, &source, &answer); err != nil {
			return nil, fmt.Errorf("failed to scan chat log: %w", err)
		}
		rec, err := scanChatLog(ts.String, raw.String, corrected.String, kind.String, source.String, answer.String)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
