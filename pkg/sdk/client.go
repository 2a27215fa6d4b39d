package fmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fmd-labs/fmd/internal/db"
	dbMemory "github.com/fmd-labs/fmd/internal/db/memory"
	dbValkey "github.com/fmd-labs/fmd/internal/db/valkey"
	domdesign "github.com/fmd-labs/fmd/internal/domain/design"
	domjob "github.com/fmd-labs/fmd/internal/domain/job"
	"github.com/fmd-labs/fmd/internal/domain/search/request"
	"github.com/fmd-labs/fmd/internal/domain/search/result"
	domsession "github.com/fmd-labs/fmd/internal/domain/session"
	"github.com/fmd-labs/fmd/internal/provider"
	"github.com/fmd-labs/fmd/internal/provider/catalog"
	"github.com/fmd-labs/fmd/internal/provider/crawl"
	"github.com/fmd-labs/fmd/internal/provider/stock"
	designrepo "github.com/fmd-labs/fmd/internal/repository/design"
	"github.com/fmd-labs/fmd/internal/repository/jobcache"
	jobrepo "github.com/fmd-labs/fmd/internal/repository/job"
	profilerepo "github.com/fmd-labs/fmd/internal/repository/profile"
	searchrepo "github.com/fmd-labs/fmd/internal/repository/search"
	sessionrepo "github.com/fmd-labs/fmd/internal/repository/session"
	openaiImages "github.com/fmd-labs/fmd/internal/transport/openai"
	designuc "github.com/fmd-labs/fmd/internal/usecase/design"
	healthuc "github.com/fmd-labs/fmd/internal/usecase/health"
	"github.com/fmd-labs/fmd/internal/usecase/imagegen"
	jobuc "github.com/fmd-labs/fmd/internal/usecase/job"
	profileuc "github.com/fmd-labs/fmd/internal/usecase/profile"
	searchuc "github.com/fmd-labs/fmd/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "fmd:sdk:"
	sdkUserAgent            = "fmd-sdk"
)

// Internal interfaces for substitution in tests.
type designUseCase interface {
	CreateSession(ctx context.Context, userAgent, clientIP string) (domsession.Session, error)
	CreateDesign(ctx context.Context, in designuc.CreateInput) (domdesign.Design, error)
	Process(ctx context.Context, designID string) (*domjob.Job, error)
	History(ctx context.Context, sessionID string, limit int) ([]designuc.HistoryEntry, error)
}

type statusUseCase interface {
	Get(ctx context.Context, jobID string) (domjob.Snapshot, error)
}

type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) ([]result.Result, error)
}

// Client is the fmd SDK entry point.
type Client struct {
	store     db.Store
	designs   designUseCase
	status    statusUseCase
	search    searchUseCase
	healthSvc healthUseCase
	registry  *provider.Registry
	defaults  request.Defaults
	obs       *observer
}

// New creates a Client and connects to the configured store.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{keyPrefix: defaultKeyPrefix}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("fmd: store required (use WithValkey, WithRedis or WithMemory)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("fmd: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey", "redis":
		if len(cfg.addrs) == 0 || cfg.addrs[0] == "" {
			return nil, fmt.Errorf("fmd: %s address required", cfg.driver)
		}
		s, err := dbValkey.NewStore(dbValkey.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("fmd: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	case "memory":
		return dbMemory.NewStore(), nil
	default:
		return nil, fmt.Errorf("fmd: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	logger := zap.NewNop()
	prefix := cfg.keyPrefix

	sessions := sessionrepo.New(store, prefix, 0)
	designs := designrepo.New(store, prefix)
	jobs := jobrepo.New(store, prefix)
	profiles := profilerepo.New(store, prefix)
	runs := searchrepo.New(store, prefix)
	statusCache := jobcache.New(store, prefix, 0, nil, logger)

	registry := buildRegistry(cfg, logger)
	images, imageChecker := buildImages(cfg, logger)

	processor := jobuc.NewProcessor(jobuc.Deps{
		Jobs:       jobs,
		Designs:    designs,
		Profiles:   profiles,
		Builder:    profileuc.NewBuilder(logger),
		Images:     images,
		Cache:      statusCache,
		Locker:     store,
		LockPrefix: prefix,
		Logger:     logger,
	})

	designSvc := designuc.New(designuc.Deps{
		Sessions:   sessions,
		Designs:    designs,
		Jobs:       jobs,
		Profiles:   profiles,
		Runs:       runs,
		Queue:      inlineQueue{run: processor.Process},
		Status:     statusCache,
		Locker:     store,
		LockPrefix: prefix,
		Logger:     logger,
	})

	return &Client{
		store:   store,
		designs: designSvc,
		status:  jobuc.NewStatusReader(jobs, statusCache),
		search: searchuc.New(runs, designs, profiles, registry, searchuc.Options{
			ProviderTimeout: cfg.providerTimeout,
			Logger:          logger,
		}),
		healthSvc: healthuc.New(store, imageChecker, registry),
		registry:  registry,
		defaults:  request.Defaults{Providers: defaultProviders(cfg)},
		obs:       obs,
	}
}

// defaultProviders is mock, plus api when a stock key is set. crawl is
// only searched when named.
func defaultProviders(cfg *clientConfig) []string {
	ids := []string{catalog.ID}
	if k := cfg.stock; k.Unsplash != "" || k.Pexels != "" || k.Pixabay != "" {
		ids = append(ids, stock.ID)
	}
	return ids
}

func buildRegistry(cfg *clientConfig, logger *zap.Logger) *provider.Registry {
	providers := []provider.Provider{
		catalog.New(),
		stock.New(stock.Config{
			UnsplashKey: cfg.stock.Unsplash,
			PexelsKey:   cfg.stock.Pexels,
			PixabayKey:  cfg.stock.Pixabay,
			Logger:      logger,
		}),
	}
	if cfg.crawl {
		providers = append(providers, crawl.New(crawl.Config{RequestsPerSecond: 1, Logger: logger}))
	}

	guarded := make([]provider.Provider, len(providers))
	for i, p := range providers {
		guarded[i] = provider.NewGuard(p, provider.DefaultBreakerSettings(), logger)
	}
	return provider.NewRegistry(guarded...)
}

func buildImages(cfg *clientConfig, logger *zap.Logger) (*imagegen.Chain, healthuc.ImageChecker) {
	var (
		steps   []imagegen.Generator
		checker healthuc.ImageChecker
	)
	if cfg.openAIKey != "" {
		gen := openaiImages.NewImageGenerator(&openaiImages.Config{APIKey: cfg.openAIKey, Logger: logger})
		steps = append(steps, gen)
		checker = gen
	}
	if cfg.pollinations {
		steps = append(steps, imagegen.NewPollinations(""))
	}
	steps = append(steps, imagegen.Placeholder{})
	return imagegen.NewChain(logger, steps...), checker
}

// inlineQueue runs a job on the caller's goroutine.
type inlineQueue struct {
	run func(ctx context.Context, jobID string) error
}

func (q inlineQueue) Enqueue(ctx context.Context, jobID string) error {
	return q.run(ctx, jobID)
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Providers lists the registered provider IDs.
func (c *Client) Providers() []string {
	return c.registry.IDs()
}

// CreateSession starts a session that groups designs for History.
func (c *Client) CreateSession(ctx context.Context) (id string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("create_session", start, err) }()

	sess, err := c.designs.CreateSession(ctx, sdkUserAgent, "")
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return sess.ID(), nil
}

// SubmitDesign stores a brief under a session and returns the design ID.
func (c *Client) SubmitDesign(ctx context.Context, sessionID string, b Brief) (id string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("submit_design", start, err) }()

	d, err := c.designs.CreateDesign(ctx, designuc.CreateInput{
		SessionID:    sessionID,
		InputMode:    domdesign.InputMode(b.InputMode),
		CategoryHint: b.CategoryHint,
		TextPrompt:   b.TextPrompt,
		CanvasData:   b.CanvasData,
	})
	if err != nil {
		return "", fmt.Errorf("submit design: %w", err)
	}
	return d.ID(), nil
}

// Process builds the design profile and reference image. A design that was
// already processed returns its finished job.
func (c *Client) Process(ctx context.Context, designID string) (st JobStatus, err error) {
	start := time.Now()
	defer func() { c.obs.observe("process", start, err, "design_id", designID) }()

	j, err := c.designs.Process(ctx, designID)
	if err != nil {
		return JobStatus{}, fmt.Errorf("process: %w", err)
	}
	snap, err := c.status.Get(ctx, j.ID)
	if err != nil {
		return JobStatus{}, fmt.Errorf("job status: %w", err)
	}
	return jobStatusFromSnapshot(snap), nil
}

// Search ranks products for a processed design.
func (c *Client) Search(ctx context.Context, designID string, p SearchParams) (products []Product, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err, "design_id", designID) }()

	req, err := request.New(designID, p.Providers, p.Limit, c.defaults)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	results, err := c.search.Search(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	products = make([]Product, len(results))
	for i := range results {
		products[i] = productFromResult(&results[i])
	}
	c.obs.products(len(products))
	return products, nil
}

// Recommend runs the whole flow for one brief: session, design, processing
// and search.
func (c *Client) Recommend(ctx context.Context, b Brief, p SearchParams) ([]Product, error) {
	sessionID, err := c.CreateSession(ctx)
	if err != nil {
		return nil, err
	}
	designID, err := c.SubmitDesign(ctx, sessionID, b)
	if err != nil {
		return nil, err
	}
	st, err := c.Process(ctx, designID)
	if err != nil {
		return nil, err
	}
	if !st.Done() {
		return nil, fmt.Errorf("design %s processing %s: %s", designID, st.Status, st.ErrorCode)
	}
	return c.Search(ctx, designID, p)
}

// History lists a session's designs, newest first. limit <= 0 uses the
// default of 20.
func (c *Client) History(ctx context.Context, sessionID string, limit int) (items []HistoryItem, err error) {
	start := time.Now()
	defer func() { c.obs.observe("history", start, err) }()

	entries, err := c.designs.History(ctx, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}

	items = make([]HistoryItem, len(entries))
	for i, e := range entries {
		items[i] = historyItemFromEntry(e)
	}
	return items, nil
}

func jobStatusFromSnapshot(s domjob.Snapshot) JobStatus {
	st := JobStatus{
		JobID:             s.JobID,
		Status:            string(s.Status),
		Progress:          s.Progress,
		ErrorCode:         s.ErrorCode,
		ReferenceImageURL: s.AIImageURL,
		Keywords:          s.Keywords,
	}
	if s.DominantColor != nil {
		st.DominantColor = *s.DominantColor
	}
	return st
}

func productFromResult(r *result.Result) Product {
	sc := r.Scored()
	return Product{
		Title:          sc.Title,
		ImageURL:       deref(sc.ImageURL),
		ProductURL:     deref(sc.ProductURL),
		Price:          sc.Price,
		Score:          sc.ScoreOverall,
		KeywordScore:   sc.ScoreKeyword,
		ColorScore:     sc.ScoreColor,
		EmbeddingScore: sc.ScoreEmbedding,
		Explanation:    sc.Explanation,
	}
}

func historyItemFromEntry(e designuc.HistoryEntry) HistoryItem {
	d := e.Design
	item := HistoryItem{
		DesignID:     d.ID(),
		Status:       string(d.Status()),
		InputMode:    InputMode(d.InputMode()),
		TextPrompt:   d.TextPrompt(),
		CategoryHint: d.CategoryHint(),
		CreatedAt:    d.CreatedAt(),
		TopProducts:  make([]Product, len(e.TopResults)),
	}
	if p := e.Profile; p != nil {
		item.ReferenceImageURL = p.Attributes.AIImageURL
		item.Keywords = p.Keywords
		item.DominantColor = deref(p.DominantColor)
	}
	for i := range e.TopResults {
		item.TopProducts[i] = productFromResult(&e.TopResults[i])
	}
	return item
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
