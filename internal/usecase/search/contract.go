package search

import (
	"context"

	domdesign "github.com/fmd-labs/fmd/internal/domain/design"
	domprofile "github.com/fmd-labs/fmd/internal/domain/profile"
	"github.com/fmd-labs/fmd/internal/domain/search/result"
	"github.com/fmd-labs/fmd/internal/provider"
)

// Repository defines the storage contract for search runs and results.
type Repository interface {
	SaveRun(ctx context.Context, run result.Run) error
	SaveResults(ctx context.Context, results []result.Result) error
}

// DesignReader reads designs for existence checks and the category hint.
type DesignReader interface {
	Get(ctx context.Context, id string) (domdesign.Design, error)
}

// ProfileReader reads the processed profile of a design.
type ProfileReader interface {
	GetByDesign(ctx context.Context, designID string) (*domprofile.Profile, error)
}

// ProviderResolver resolves provider IDs.
type ProviderResolver interface {
	Get(id string) (provider.Provider, bool)
}
