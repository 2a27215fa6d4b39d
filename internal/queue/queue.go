// Package queue carries process jobs from the API to the background worker
// over an in-process watermill channel.
package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Topic is the watermill topic for process jobs.
const Topic = "fmd.jobs.process"

// Defaults for Config fields left at zero.
const (
	DefaultConcurrency = 2
	DefaultJobTimeout  = 5 * time.Minute
	DefaultBuffer      = 256
)

// ErrClosed is returned by Enqueue after Close.
var ErrClosed = errors.New("queue closed")

// Config tunes the worker side of the queue.
type Config struct {
	// Concurrency bounds jobs processed at once.
	Concurrency int
	// JobTimeout bounds a single job.
	JobTimeout time.Duration
	// Buffer is the subscriber channel capacity.
	Buffer int64
}

// Handler processes one job.
type Handler = func(ctx context.Context, jobID string) error

type payload struct {
	JobID string `json:"job_id"`
}

// Queue is a single-consumer job queue. Delivery is at most once: a job is
// acknowledged when a worker slot picks it up.
type Queue struct {
	pubsub   *gochannel.GoChannel
	messages <-chan *message.Message
	cfg      Config
	logger   *zap.Logger

	mu     sync.RWMutex
	closed bool
}

// New creates a queue and subscribes its consumer side, so jobs enqueued
// before Consume starts are kept.
func New(cfg Config, logger *zap.Logger) (*Queue, error) {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = DefaultJobTimeout
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = DefaultBuffer
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ps := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: cfg.Buffer,
	}, NewZapLogger(logger.Named("watermill")))

	messages, err := ps.Subscribe(context.Background(), Topic)
	if err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", Topic, err)
	}

	return &Queue{pubsub: ps, messages: messages, cfg: cfg, logger: logger}, nil
}

// Enqueue publishes a job ID.
func (q *Queue) Enqueue(_ context.Context, jobID string) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrClosed
	}

	data, err := json.Marshal(payload{JobID: jobID})
	if err != nil {
		return fmt.Errorf("marshal job %s: %w", jobID, err)
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	if err := q.pubsub.Publish(Topic, msg); err != nil {
		return fmt.Errorf("publish job %s: %w", jobID, err)
	}
	return nil
}

// Consume runs h for every job until ctx is canceled or the queue is closed,
// then waits for in-flight jobs. Each job gets its own timeout and is not
// canceled by ctx, so shutdown lets running jobs finish.
func (q *Queue) Consume(ctx context.Context, h Handler) error {
	sem := semaphore.NewWeighted(int64(q.cfg.Concurrency))
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-q.messages:
			if !ok {
				return nil
			}
			if err := sem.Acquire(ctx, 1); err != nil {
				msg.Nack()
				return err
			}
			msg.Ack()

			var p payload
			if err := json.Unmarshal(msg.Payload, &p); err != nil || p.JobID == "" {
				sem.Release(1)
				q.logger.Error("Dropping malformed job message", zap.String("message_uuid", msg.UUID), zap.Error(err))
				continue
			}

			wg.Add(1)
			go func() {
				defer wg.Done()
				defer sem.Release(1)
				q.run(ctx, h, p.JobID)
			}()
		}
	}
}

func (q *Queue) run(ctx context.Context, h Handler, jobID string) {
	jobCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), q.cfg.JobTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("Job handler panicked", zap.String("job_id", jobID), zap.Any("panic", r))
		}
	}()

	if err := h(jobCtx, jobID); err != nil {
		q.logger.Error("Job handler failed", zap.String("job_id", jobID), zap.Error(err))
	}
}

// Close stops accepting jobs and closes the channel.
func (q *Queue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	q.closed = true
	return q.pubsub.Close()
}
