// Package jobcache keeps short-lived job status snapshots so status polling
// does not hit the job records on every request.
package jobcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/fmd-labs/fmd/internal/db"
	"github.com/fmd-labs/fmd/internal/domain/job"
)

// DefaultTTL matches the lifetime of a status entry written by the worker.
const DefaultTTL = time.Hour

// store is the consumer interface for the status cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type snapshotRow struct {
	JobID         string     `json:"job_id"`
	Status        job.Status `json:"status"`
	Progress      float64    `json:"progress"`
	ErrorCode     string     `json:"error_code,omitempty"`
	AIImageURL    string     `json:"ai_image_url,omitempty"`
	Keywords      []string   `json:"keywords,omitempty"`
	DominantColor *string    `json:"dominant_color,omitempty"`
}

// Cache stores job status snapshots with a TTL.
type Cache struct {
	store      store
	prefix     string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a status cache.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	s store,
	prefix string,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		store:      s,
		prefix:     prefix,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Get returns a cached snapshot. Read failures count as a miss.
func (c *Cache) Get(ctx context.Context, jobID string) (job.Snapshot, bool) {
	key := c.key(jobID)

	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached job status", zap.String("key", key), zap.Error(err))
		}
		c.inc("miss")
		return job.Snapshot{}, false
	}

	var row snapshotRow
	if err := json.Unmarshal(data, &row); err != nil {
		c.logger.Warn("Failed to parse cached job status", zap.String("key", key), zap.Error(err))
		c.inc("miss")
		return job.Snapshot{}, false
	}

	c.inc("hit")
	return job.Snapshot(row), true
}

// Put writes a snapshot. Failures are logged and swallowed; the job record
// stays the source of truth.
func (c *Cache) Put(ctx context.Context, s job.Snapshot) {
	key := c.key(s.JobID)
	data, err := json.Marshal(snapshotRow(s))
	if err != nil {
		c.logger.Warn("Failed to encode job status", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache job status", zap.String("key", key), zap.Error(fmt.Errorf("set: %w", err)))
	}
}

func (c *Cache) inc(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *Cache) key(jobID string) string {
	return c.prefix + "job_status:" + jobID
}
