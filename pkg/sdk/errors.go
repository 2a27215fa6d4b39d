package fmd

import "github.com/fmd-labs/fmd/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrSessionNotFound     = domain.ErrSessionNotFound
	ErrDesignNotFound      = domain.ErrDesignNotFound
	ErrJobNotFound         = domain.ErrJobNotFound
	ErrProfileNotReady     = domain.ErrProfileNotReady
	ErrInvalidInput        = domain.ErrInvalidInput
	ErrProviderUnavailable = domain.ErrProviderUnavailable
	ErrImageGeneration     = domain.ErrImageGeneration
)
