package job

import (
	"context"
	"fmt"

	domjob "github.com/fmd-labs/fmd/internal/domain/job"
)

// StatusReader answers job status polls, cache first.
type StatusReader struct {
	jobs  Repository
	cache StatusCache
}

// NewStatusReader creates a status reader.
func NewStatusReader(jobs Repository, cache StatusCache) *StatusReader {
	return &StatusReader{jobs: jobs, cache: cache}
}

// Get returns the job status snapshot. A cache miss reads the job store and
// refills the cache.
func (r *StatusReader) Get(ctx context.Context, jobID string) (domjob.Snapshot, error) {
	if s, ok := r.cache.Get(ctx, jobID); ok {
		return s, nil
	}
	j, err := r.jobs.Get(ctx, jobID)
	if err != nil {
		return domjob.Snapshot{}, fmt.Errorf("get job: %w", err)
	}
	s := j.Snapshot()
	r.cache.Put(ctx, s)
	return s, nil
}
