package design

import (
	"context"
	"time"

	domdesign "github.com/fmd-labs/fmd/internal/domain/design"
	domjob "github.com/fmd-labs/fmd/internal/domain/job"
	domprofile "github.com/fmd-labs/fmd/internal/domain/profile"
	"github.com/fmd-labs/fmd/internal/domain/search/result"
	domsession "github.com/fmd-labs/fmd/internal/domain/session"
)

// SessionRepository defines the storage contract for sessions.
type SessionRepository interface {
	Save(ctx context.Context, s domsession.Session) error
	Get(ctx context.Context, id string) (domsession.Session, error)
}

// DesignRepository defines the storage contract for designs.
type DesignRepository interface {
	Create(ctx context.Context, d domdesign.Design) error
	Update(ctx context.Context, d domdesign.Design) error
	Get(ctx context.Context, id string) (domdesign.Design, error)
	ListBySession(ctx context.Context, sessionID string) ([]domdesign.Design, error)
}

// JobRepository defines the job operations the design flow needs.
type JobRepository interface {
	Create(ctx context.Context, j *domjob.Job) error
	Update(ctx context.Context, j *domjob.Job) error
	FindReusable(ctx context.Context, designID string, t domjob.Type) (*domjob.Job, error)
}

// ProfileReader reads processed profiles.
type ProfileReader interface {
	GetByDesign(ctx context.Context, designID string) (*domprofile.Profile, error)
}

// RunReader reads persisted search runs for history.
type RunReader interface {
	LatestRun(ctx context.Context, profileID string) (*result.Run, error)
	TopResults(ctx context.Context, runID string, n int) ([]result.Result, error)
}

// Enqueuer hands a job to the background worker.
type Enqueuer interface {
	Enqueue(ctx context.Context, jobID string) error
}

// StatusWriter publishes job status snapshots for fast polling.
type StatusWriter interface {
	Put(ctx context.Context, s domjob.Snapshot)
}

// Locker serializes process requests for one design.
type Locker interface {
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Del(ctx context.Context, key string) error
}
