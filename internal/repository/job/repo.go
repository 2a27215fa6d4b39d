package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/fmd-labs/fmd/internal/db"
	"github.com/fmd-labs/fmd/internal/domain"
	domjob "github.com/fmd-labs/fmd/internal/domain/job"
)

// store is the consumer interface for jobs (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	MGet(ctx context.Context, keys []string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	ZAdd(ctx context.Context, key string, members ...db.ZMember) error
	ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error)
}

// Repo implements job persistence for the design and job usecases.
type Repo struct {
	store  store
	prefix string
}

// New creates a job repository.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Create stores a job and indexes it under its design.
func (r *Repo) Create(ctx context.Context, j *domjob.Job) error {
	if err := r.Update(ctx, j); err != nil {
		return err
	}
	member := db.ZMember{Member: j.ID, Score: float64(j.CreatedAt.UnixMilli())}
	if err := r.store.ZAdd(ctx, r.designIndexKey(j.DesignID), member); err != nil {
		return fmt.Errorf("index job %s: %w", j.ID, err)
	}
	return nil
}

// Update overwrites a stored job.
func (r *Repo) Update(ctx context.Context, j *domjob.Job) error {
	data, err := marshalJob(j)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, r.key(j.ID), data); err != nil {
		return fmt.Errorf("save job %s: %w", j.ID, err)
	}
	return nil
}

// Get loads a job by ID.
func (r *Repo) Get(ctx context.Context, id string) (*domjob.Job, error) {
	data, err := r.store.Get(ctx, r.key(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("get job %s: %w", id, err)
	}
	return unmarshalJob(data)
}

// FindReusable returns the design's queued or running job of the given type,
// or else its finished one. It returns nil when neither exists.
func (r *Repo) FindReusable(ctx context.Context, designID string, t domjob.Type) (*domjob.Job, error) {
	jobs, err := r.listByDesign(ctx, designID)
	if err != nil {
		return nil, err
	}

	var done *domjob.Job
	for _, j := range jobs {
		if j.Type != t {
			continue
		}
		switch j.Status {
		case domjob.StatusQueued, domjob.StatusRunning:
			return j, nil
		case domjob.StatusDone:
			if done == nil {
				done = j
			}
		}
	}
	return done, nil
}

func (r *Repo) listByDesign(ctx context.Context, designID string) ([]*domjob.Job, error) {
	ids, err := r.store.ZRevRange(ctx, r.designIndexKey(designID), 0, -1)
	if err != nil {
		return nil, fmt.Errorf("list jobs for design %s: %w", designID, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
	}
	values, err := r.store.MGet(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load jobs for design %s: %w", designID, err)
	}

	out := make([]*domjob.Job, 0, len(values))
	for _, v := range values {
		if v == nil {
			continue
		}
		j, err := unmarshalJob(v)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, nil
}

func (r *Repo) key(id string) string {
	return r.prefix + "job:" + id
}

func (r *Repo) designIndexKey(designID string) string {
	return r.prefix + "design:" + designID + ":jobs"
}
