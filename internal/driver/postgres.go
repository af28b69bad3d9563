package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agenthands/zomra/internal/core/model"
)

type PostgresStore struct {
	Pool *pgxpool.Pool
	now  func() time.Time
}

func NewPostgresStore(ctx context.Context, connStr string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{Pool: pool, now: time.Now}, nil
}

func (p *PostgresStore) Init(ctx context.Context) error {
	for _, q := range schema {
		if _, err := p.Pool.Exec(ctx, q); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

func (p *PostgresStore) SaveChatLog(ctx context.Context, rec model.ChatLogRecord) error {
	_, err := p.Pool.Exec(ctx, postgresInsertChatLog,
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

func (p *PostgresStore) SaveReminder(ctx context.Context, r model.Reminder) (model.Reminder, error) {
	r = prepareReminder(r, p.now())
	_, err := p.Pool.Exec(ctx, postgresInsertReminder,
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

func (p *PostgresStore) RecentChatLogs(ctx context.Context, limit int) ([]model.ChatLogRecord, error) {
	rows, err := p.Pool.Query(ctx, postgresRecentChatLogs, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat logs: %w", err)
	}
	defer rows.Close()

	var out []model.ChatLogRecord
	for rows.Next() {
		var ts, raw, corrected, kind, source, answer *string
		if err := rows.Scan(&ts, &raw, &corrected, &kind, &source, &answer); err != nil {
			return nil, fmt.Errorf("failed to scan chat log: %w", err)
		}
		rec, err := scanChatLog(deref(ts), deref(raw), deref(corrected), deref(kind), deref(source), deref(answer))
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (p *PostgresStore) Close() error {
	p.Pool.Close()
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
