// Package chatlog writes chat records to the store off the request path.
package chatlog

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/agenthands/zomra/internal/core/model"
)

var (
	ErrQueueFull = errors.New("chat log queue full")
	ErrClosed    = errors.New("chat log dispatcher closed")
)

const (
	DefaultQueueSize    = 256
	DefaultWriteTimeout = 3 * time.Second
)

// Sink is the persistence side of the dispatcher.
type Sink interface {
	SaveChatLog(ctx context.Context, rec model.ChatLogRecord) error
}

// Dispatcher queues records and writes them from a single worker.
// LogChat never blocks; a full queue drops the record.
type Dispatcher struct {
	sink         Sink
	logger       *zap.Logger
	writeTimeout time.Duration

	mu     sync.RWMutex
	queue  chan model.ChatLogRecord
	closed bool
	group  *errgroup.Group
}

func NewDispatcher(sink Sink, queueSize int, writeTimeout time.Duration, logger *zap.Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Dispatcher{
		sink:         sink,
		logger:       logger,
		writeTimeout: writeTimeout,
		queue:        make(chan model.ChatLogRecord, queueSize),
		group:        new(errgroup.Group),
	}
	d.group.Go(d.run)
	return d
}

func (d *Dispatcher) LogChat(_ context.Context, rec model.ChatLogRecord) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrClosed
	}

	select {
	case d.queue <- rec:
		return nil
	default:
		d.logger.Warn("chat log queue full, dropping record",
			zap.String("response_type", string(rec.SourceType)))
		return ErrQueueFull
	}
}

func (d *Dispatcher) run() error {
	for rec := range d.queue {
		d.write(rec)
	}
	return nil
}

func (d *Dispatcher) write(rec model.ChatLogRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), d.writeTimeout)
	defer cancel()
	if err := d.sink.SaveChatLog(ctx, rec); err != nil {
		d.logger.Warn("failed to save chat log", zap.Error(err))
	}
}

// Close stops accepting records and waits until the queue is drained.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	return d.group.Wait()
}
