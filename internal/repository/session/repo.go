package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fmd-labs/fmd/internal/db"
	"github.com/fmd-labs/fmd/internal/domain"
	domsession "github.com/fmd-labs/fmd/internal/domain/session"
)

// store is the consumer interface for sessions (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Repo implements usecase/design.SessionRepository.
type Repo struct {
	store  store
	prefix string
	ttl    time.Duration
}

// New creates a session repository. A zero ttl keeps sessions forever.
func New(s store, prefix string, ttl time.Duration) *Repo {
	return &Repo{store: s, prefix: prefix, ttl: ttl}
}

// Save stores a session, refreshing its expiry.
func (r *Repo) Save(ctx context.Context, s domsession.Session) error {
	data, err := marshalSession(s)
	if err != nil {
		return err
	}
	key := r.key(s.ID())
	if r.ttl > 0 {
		err = r.store.SetWithTTL(ctx, key, data, r.ttl)
	} else {
		err = r.store.Set(ctx, key, data)
	}
	if err != nil {
		return fmt.Errorf("save session %s: %w", s.ID(), err)
	}
	return nil
}

// Get loads a session by ID.
func (r *Repo) Get(ctx context.Context, id string) (domsession.Session, error) {
	data, err := r.store.Get(ctx, r.key(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domsession.Session{}, domain.ErrSessionNotFound
		}
		return domsession.Session{}, fmt.Errorf("get session %s: %w", id, err)
	}
	return unmarshalSession(data)
}

func (r *Repo) key(id string) string {
	return r.prefix + "session:" + id
}
