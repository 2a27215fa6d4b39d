package design

import (
	"context"
	"errors"
	"fmt"

	"github.com/fmd-labs/fmd/internal/db"
	"github.com/fmd-labs/fmd/internal/domain"
	domdesign "github.com/fmd-labs/fmd/internal/domain/design"
)

// store is the consumer interface for designs (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	MGet(ctx context.Context, keys []string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	ZAdd(ctx context.Context, key string, members ...db.ZMember) error
	ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error)
}

// Repo implements usecase/design.DesignRepository.
type Repo struct {
	store  store
	prefix string
}

// New creates a design repository.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Create stores a design and indexes it under its session by creation time.
func (r *Repo) Create(ctx context.Context, d domdesign.Design) error {
	if err := r.put(ctx, d); err != nil {
		return err
	}
	member := db.ZMember{Member: d.ID(), Score: float64(d.CreatedAt().UnixMilli())}
	if err := r.store.ZAdd(ctx, r.sessionIndexKey(d.SessionID()), member); err != nil {
		return fmt.Errorf("index design %s: %w", d.ID(), err)
	}
	return nil
}

// Update overwrites a stored design.
func (r *Repo) Update(ctx context.Context, d domdesign.Design) error {
	return r.put(ctx, d)
}

// Get loads a design by ID.
func (r *Repo) Get(ctx context.Context, id string) (domdesign.Design, error) {
	data, err := r.store.Get(ctx, r.key(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domdesign.Design{}, domain.ErrDesignNotFound
		}
		return domdesign.Design{}, fmt.Errorf("get design %s: %w", id, err)
	}
	return unmarshalDesign(data)
}

// ListBySession returns the session's designs, newest first.
func (r *Repo) ListBySession(ctx context.Context, sessionID string) ([]domdesign.Design, error) {
	ids, err := r.store.ZRevRange(ctx, r.sessionIndexKey(sessionID), 0, -1)
	if err != nil {
		return nil, fmt.Errorf("list designs for session %s: %w", sessionID, err)
	}
	if len(ids) == 0 {
		return []domdesign.Design{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
	}
	values, err := r.store.MGet(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load designs for session %s: %w", sessionID, err)
	}

	out := make([]domdesign.Design, 0, len(values))
	for _, v := range values {
		if v == nil {
			continue
		}
		d, err := unmarshalDesign(v)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *Repo) put(ctx context.Context, d domdesign.Design) error {
	data, err := marshalDesign(d)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, r.key(d.ID()), data); err != nil {
		return fmt.Errorf("save design %s: %w", d.ID(), err)
	}
	return nil
}

func (r *Repo) key(id string) string {
	return r.prefix + "design:" + id
}

func (r *Repo) sessionIndexKey(sessionID string) string {
	return r.prefix + "session:" + sessionID + ":designs"
}
