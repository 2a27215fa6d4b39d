package chi

import (
	"context"

	domdesign "github.com/fmd-labs/fmd/internal/domain/design"
	domjob "github.com/fmd-labs/fmd/internal/domain/job"
	"github.com/fmd-labs/fmd/internal/domain/search/request"
	"github.com/fmd-labs/fmd/internal/domain/search/result"
	domsession "github.com/fmd-labs/fmd/internal/domain/session"
	designuc "github.com/fmd-labs/fmd/internal/usecase/design"
	healthuc "github.com/fmd-labs/fmd/internal/usecase/health"
)

// DesignService handles sessions, briefs and processing requests.
type DesignService interface {
	CreateSession(ctx context.Context, userAgent, clientIP string) (domsession.Session, error)
	CreateDesign(ctx context.Context, in designuc.CreateInput) (domdesign.Design, error)
	Process(ctx context.Context, designID string) (*domjob.Job, error)
	History(ctx context.Context, sessionID string, limit int) ([]designuc.HistoryEntry, error)
}

// JobStatusReader returns the current status of a job.
type JobStatusReader interface {
	Get(ctx context.Context, jobID string) (domjob.Snapshot, error)
}

// SearchService runs product searches for processed designs.
type SearchService interface {
	Search(ctx context.Context, req *request.Request) ([]result.Result, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// ProviderLister lists registered provider IDs.
type ProviderLister interface {
	IDs() []string
}
