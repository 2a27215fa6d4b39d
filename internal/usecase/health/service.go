package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates the store is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
	// OpenCircuits lists providers currently rejecting calls.
	OpenCircuits []string
}

// Service coordinates health checks.
type Service struct {
	db        DBPinger
	images    ImageChecker
	providers CircuitReporter
}

// New creates a Service. images and providers can be nil.
func New(db DBPinger, images ImageChecker, providers CircuitReporter) *Service {
	return &Service{db: db, images: images, providers: providers}
}

// Check runs health checks against all components. Only the database is
// critical; other failures degrade the report.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	r := Report{Status: Healthy, Checks: checks, OpenCircuits: []string{}}

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
	} else {
		checks["database"] = CheckOK
	}

	if s.images != nil {
		if err := s.images.HealthCheck(ctx); err != nil {
			checks["image_generator"] = CheckError
		} else {
			checks["image_generator"] = CheckOK
		}
	}

	if s.providers != nil {
		checks["providers"] = CheckOK
		if open := s.providers.OpenCircuits(); len(open) > 0 {
			checks["providers"] = CheckError
			r.OpenCircuits = open
		}
	}

	for _, v := range checks {
		if v == CheckError {
			r.Status = Degraded
			break
		}
	}
	if checks["database"] == CheckError {
		r.Status = Unhealthy
	}
	return r
}
