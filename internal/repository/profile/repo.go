package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/fmd-labs/fmd/internal/db"
	"github.com/fmd-labs/fmd/internal/domain"
	domprofile "github.com/fmd-labs/fmd/internal/domain/profile"
)

// store is the consumer interface for profiles (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Repo stores one profile per design.
type Repo struct {
	store  store
	prefix string
}

// New creates a profile repository.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Upsert stores the profile under its design, replacing any previous one.
func (r *Repo) Upsert(ctx context.Context, p *domprofile.Profile) error {
	data, err := marshalProfile(p)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, r.key(p.DesignID), data); err != nil {
		return fmt.Errorf("save profile for design %s: %w", p.DesignID, err)
	}
	return nil
}

// GetByDesign loads the design's profile. A design that was never processed
// yields domain.ErrProfileNotReady.
func (r *Repo) GetByDesign(ctx context.Context, designID string) (*domprofile.Profile, error) {
	data, err := r.store.Get(ctx, r.key(designID))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.ErrProfileNotReady
		}
		return nil, fmt.Errorf("get profile for design %s: %w", designID, err)
	}
	return unmarshalProfile(data)
}

func (r *Repo) key(designID string) string {
	return r.prefix + "profile:" + designID
}
