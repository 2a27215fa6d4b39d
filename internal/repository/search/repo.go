package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/fmd-labs/fmd/internal/db"
	"github.com/fmd-labs/fmd/internal/domain/search/result"
)

// store is the consumer interface for search runs and results (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	MGet(ctx context.Context, keys []string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	ZAdd(ctx context.Context, key string, members ...db.ZMember) error
	ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error)
}

// Repo implements usecase/search.Repository.
type Repo struct {
	store  store
	prefix string
}

// New creates a search repository.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// SaveRun stores a provider run and indexes it under its profile.
func (r *Repo) SaveRun(ctx context.Context, run result.Run) error {
	data, err := marshalRun(run)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, r.runKey(run.ID), data); err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}
	member := db.ZMember{Member: run.ID, Score: float64(run.CreatedAt.UnixMicro())}
	if err := r.store.ZAdd(ctx, r.profileRunsKey(run.ProfileID), member); err != nil {
		return fmt.Errorf("index run %s: %w", run.ID, err)
	}
	return nil
}

// SaveResults stores ranked results, each indexed by score under its run.
func (r *Repo) SaveResults(ctx context.Context, results []result.Result) error {
	byRun := make(map[string][]db.ZMember)
	for i := range results {
		res := results[i]
		data, err := marshalResult(res)
		if err != nil {
			return err
		}
		if err := r.store.Set(ctx, r.resultKey(res.ID()), data); err != nil {
			return fmt.Errorf("save result %s: %w", res.ID(), err)
		}
		byRun[res.RunID()] = append(byRun[res.RunID()], db.ZMember{Member: res.ID(), Score: res.Score()})
	}

	for runID, members := range byRun {
		if err := r.store.ZAdd(ctx, r.runResultsKey(runID), members...); err != nil {
			return fmt.Errorf("index results for run %s: %w", runID, err)
		}
	}
	return nil
}

// LatestRun returns the most recently created run for a profile, or nil.
func (r *Repo) LatestRun(ctx context.Context, profileID string) (*result.Run, error) {
	ids, err := r.store.ZRevRange(ctx, r.profileRunsKey(profileID), 0, 0)
	if err != nil {
		return nil, fmt.Errorf("latest run for profile %s: %w", profileID, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	data, err := r.store.Get(ctx, r.runKey(ids[0]))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get run %s: %w", ids[0], err)
	}
	run, err := unmarshalRun(data)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// TopResults returns up to n results of a run, best first.
func (r *Repo) TopResults(ctx context.Context, runID string, n int) ([]result.Result, error) {
	if n <= 0 {
		return []result.Result{}, nil
	}
	ids, err := r.store.ZRevRange(ctx, r.runResultsKey(runID), 0, int64(n-1))
	if err != nil {
		return nil, fmt.Errorf("top results for run %s: %w", runID, err)
	}
	if len(ids) == 0 {
		return []result.Result{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.resultKey(id)
	}
	values, err := r.store.MGet(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load results for run %s: %w", runID, err)
	}

	out := make([]result.Result, 0, len(values))
	for _, v := range values {
		if v == nil {
			continue
		}
		res, err := unmarshalResult(v)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

func (r *Repo) runKey(id string) string { return r.prefix + "run:" + id }

func (r *Repo) resultKey(id string) string { return r.prefix + "result:" + id }

func (r *Repo) runResultsKey(runID string) string { return r.prefix + "run:" + runID + ":results" }

func (r *Repo) profileRunsKey(profileID string) string {
	return r.prefix + "profile:" + profileID + ":runs"
}
