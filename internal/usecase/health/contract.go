package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// ImageChecker checks the remote image generator.
type ImageChecker interface {
	HealthCheck(ctx context.Context) error
}

// CircuitReporter lists providers whose circuit breaker is open.
type CircuitReporter interface {
	OpenCircuits() []string
}
