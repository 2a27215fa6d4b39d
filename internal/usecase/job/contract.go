package job

import (
	"context"
	"time"

	domdesign "github.com/fmd-labs/fmd/internal/domain/design"
	domjob "github.com/fmd-labs/fmd/internal/domain/job"
	domprofile "github.com/fmd-labs/fmd/internal/domain/profile"
	"github.com/fmd-labs/fmd/internal/usecase/imagegen"
	"github.com/fmd-labs/fmd/internal/usecase/profile"
)

// Repository defines the storage contract for jobs.
type Repository interface {
	Get(ctx context.Context, id string) (*domjob.Job, error)
	Update(ctx context.Context, j *domjob.Job) error
}

// DesignRepository reads and updates the design a job processes.
type DesignRepository interface {
	Get(ctx context.Context, id string) (domdesign.Design, error)
	Update(ctx context.Context, d domdesign.Design) error
}

// ProfileRepository stores the derived profile.
type ProfileRepository interface {
	GetByDesign(ctx context.Context, designID string) (*domprofile.Profile, error)
	Upsert(ctx context.Context, p *domprofile.Profile) error
}

// ProfileBuilder derives a profile from a brief.
type ProfileBuilder interface {
	Build(in profile.Input) profile.Output
}

// ImageGenerator produces the reference image of a brief.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt, style string) (imagegen.Image, error)
}

// StatusCache holds job status snapshots for fast polling.
type StatusCache interface {
	Get(ctx context.Context, jobID string) (domjob.Snapshot, bool)
	Put(ctx context.Context, s domjob.Snapshot)
}

// Locker guards a design against concurrent processing.
type Locker interface {
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Del(ctx context.Context, key string) error
}
