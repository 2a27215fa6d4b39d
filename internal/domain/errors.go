package domain

import (
	"errors"
)

var (
	// ErrSessionNotFound signals a missing session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrDesignNotFound signals a missing design.
	ErrDesignNotFound = errors.New("design not found")
	// ErrJobNotFound signals a missing job.
	ErrJobNotFound = errors.New("job not found")
	// ErrProfileNotReady signals a search on a design that was never processed.
	ErrProfileNotReady = errors.New("design has not been processed yet")

	// ErrInvalidInput signals a request that failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrProviderUnavailable signals a provider failure or an open circuit.
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrImageGeneration signals that every image generator failed.
	ErrImageGeneration = errors.New("image generation failed")
)
