package search

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fmd-labs/fmd/internal/domain/candidate"
	domprofile "github.com/fmd-labs/fmd/internal/domain/profile"
	"github.com/fmd-labs/fmd/internal/domain/ranking"
	"github.com/fmd-labs/fmd/internal/domain/search/request"
	"github.com/fmd-labs/fmd/internal/domain/search/result"
	"github.com/fmd-labs/fmd/internal/metrics"
	"github.com/fmd-labs/fmd/internal/provider"
)

// DefaultProviderTimeout bounds a single provider call.
const DefaultProviderTimeout = 15 * time.Second

// Options tunes the search service.
type Options struct {
	ProviderTimeout time.Duration
	Logger          *zap.Logger
	// NewID and Now are replaced in tests.
	NewID func() string
	Now   func() time.Time
}

// Service fans a design profile out to providers and ranks the candidates.
type Service struct {
	repo      Repository
	designs   DesignReader
	profiles  ProfileReader
	providers ProviderResolver
	timeout   time.Duration
	logger    *zap.Logger
	newID     func() string
	now       func() time.Time
}

// New creates a search service.
func New(
	repo Repository, designs DesignReader, profiles ProfileReader,
	providers ProviderResolver, opts Options,
) *Service {
	s := &Service{
		repo:      repo,
		designs:   designs,
		profiles:  profiles,
		providers: providers,
		timeout:   opts.ProviderTimeout,
		logger:    opts.Logger,
		newID:     opts.NewID,
		now:       opts.Now,
	}
	if s.timeout <= 0 {
		s.timeout = DefaultProviderTimeout
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// outcome is what one provider call produced.
type outcome struct {
	id    string
	items []candidate.Item
	err   error
}

// Search runs the request and returns at most req.Limit() ranked results,
// best first. A failing provider contributes no candidates and is recorded
// as a failed run; it never fails the search.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]result.Result, error) {
	d, err := s.designs.Get(ctx, req.DesignID())
	if err != nil {
		return nil, fmt.Errorf("get design: %w", err)
	}
	prof, err := s.profiles.GetByDesign(ctx, req.DesignID())
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	query := provider.Query{
		Keywords:      prof.Keywords,
		DominantColor: prof.DominantColor,
		Category:      d.CategoryHint(),
		Limit:         req.Limit(),
	}
	outcomes := s.fanOut(ctx, req.Providers(), query)

	now := s.now()
	var items []candidate.Item
	for i, o := range outcomes {
		run, accepted := s.collect(o, prof, now.Add(time.Duration(i)*time.Microsecond))
		if err := s.repo.SaveRun(ctx, run); err != nil {
			return nil, fmt.Errorf("save run: %w", err)
		}
		items = append(items, accepted...)
	}

	start := time.Now()
	ranked := ranking.Rank(items, prof.Ranking())
	metrics.RankingDuration.Observe(time.Since(start).Seconds())
	metrics.CandidatesRanked.Observe(float64(len(items)))

	if len(ranked) > req.Limit() {
		ranked = ranked[:req.Limit()]
	}

	results := make([]result.Result, len(ranked))
	for i := range ranked {
		results[i] = result.New(s.newID(), ranked[i], now)
	}
	if len(results) > 0 {
		if err := s.repo.SaveResults(ctx, results); err != nil {
			return nil, fmt.Errorf("save results: %w", err)
		}
	}
	return results, nil
}

// fanOut queries the known providers concurrently. The returned outcomes
// keep request order; unknown IDs are dropped.
func (s *Service) fanOut(ctx context.Context, ids []string, q provider.Query) []outcome {
	resolved := make([]provider.Provider, 0, len(ids))
	for _, id := range ids {
		p, ok := s.providers.Get(id)
		if !ok {
			s.logger.Warn("Unknown provider skipped", zap.String("provider", id))
			continue
		}
		resolved = append(resolved, p)
	}

	outcomes := make([]outcome, len(resolved))
	var g errgroup.Group
	for i, p := range resolved {
		g.Go(func() error {
			outcomes[i] = s.call(ctx, p, q)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

func (s *Service) call(ctx context.Context, p provider.Provider, q provider.Query) outcome {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	items, err := p.Search(ctx, q)
	metrics.ProviderRequestDuration.WithLabelValues(p.ID()).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues(p.ID(), "error").Inc()
		s.logger.Warn("Provider search failed", zap.String("provider", p.ID()), zap.Error(err))
		return outcome{id: p.ID(), err: err}
	}
	metrics.ProviderRequestsTotal.WithLabelValues(p.ID(), "success").Inc()
	return outcome{id: p.ID(), items: items}
}

// collect records the run for one provider and returns its valid
// candidates tagged with the run ID.
func (s *Service) collect(o outcome, prof *domprofile.Profile, at time.Time) (result.Run, []candidate.Item) {
	run := result.Run{
		ID:         s.newID(),
		ProfileID:  prof.ID,
		ProviderID: o.id,
		Status:     result.RunDone,
		CreatedAt:  at,
	}
	if o.err != nil {
		run.Status = result.RunFailed
		return run, nil
	}

	accepted := make([]candidate.Item, 0, len(o.items))
	for _, it := range o.items {
		if err := it.Validate(); err != nil {
			s.logger.Debug("Candidate dropped", zap.String("provider", o.id), zap.Error(err))
			continue
		}
		it.SearchRunID = run.ID
		accepted = append(accepted, it)
	}
	run.Candidates = len(accepted)
	return run, accepted
}
