package knowledge

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/agenthands/zomra/internal/core/model"
)

// Store serves lookups from the current index and swaps in a freshly built
// index on Reload. Readers never see a partially built index.
type Store struct {
	source  Source
	logger  *zap.Logger
	current atomic.Pointer[Index]
	report  atomic.Pointer[BuildReport]
	mu      sync.Mutex // serializes reloads
}

func NewStore(source Source, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{source: source, logger: logger}
}

// Reload rebuilds the index from the source. If the source is missing or
// unreadable and no index is loaded yet, the built-in entries are used and no
// error is returned. A failed reload keeps the previous index.
func (s *Store) Reload(ctx context.Context) (BuildReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []model.KnowledgeEntry
	var err error
	desc := "builtin"
	if s.source != nil {
		desc = s.source.Describe()
		entries, err = s.source.Load(ctx)
	} else {
		err = ErrSourceNotFound
	}

	defaulted := false
	if err != nil {
		if s.current.Load() != nil {
			s.logger.Warn("knowledge reload failed, keeping current index",
				zap.String("source", desc), zap.Error(err))
			return s.Report(), err
		}
		if errors.Is(err, ErrSourceNotFound) {
			s.logger.Info("knowledge source not available, using built-in entries", zap.String("source", desc))
		} else {
			s.logger.Warn("knowledge source unreadable, using built-in entries",
				zap.String("source", desc), zap.Error(err))
		}
		entries = DefaultEntries()
		desc = "builtin"
		defaulted = true
	}

	ix, report := NewIndex(entries)
	report.Source = desc
	report.Defaulted = defaulted
	for _, c := range report.Collisions {
		s.logger.Warn("duplicate knowledge key dropped",
			zap.String("key", c.Key),
			zap.Int("kept_entry", c.WinnerIndex),
			zap.Int("dropped_entry", c.DroppedIndex))
	}

	s.current.Store(ix)
	s.report.Store(&report)
	s.logger.Info("knowledge index built",
		zap.String("source", desc),
		zap.Int("entries", report.Entries),
		zap.Int("keys", report.Keys))
	return report, nil
}

func (s *Store) Index() *Index {
	return s.current.Load()
}

func (s *Store) Report() BuildReport {
	if r := s.report.Load(); r != nil {
		return *r
	}
	return BuildReport{}
}

func (s *Store) Lookup(query string) (model.KnowledgeMatch, bool) {
	return s.current.Load().Lookup(query)
}

func (s *Store) Len() int {
	return s.current.Load().Len()
}
