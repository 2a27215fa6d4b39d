package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/fmd-labs/fmd/internal/config"
	"github.com/fmd-labs/fmd/internal/db"
	dbMemory "github.com/fmd-labs/fmd/internal/db/memory"
	dbValkey "github.com/fmd-labs/fmd/internal/db/valkey"
	"github.com/fmd-labs/fmd/internal/domain/search/request"
	logpkg "github.com/fmd-labs/fmd/internal/logger"
	"github.com/fmd-labs/fmd/internal/metrics"
	"github.com/fmd-labs/fmd/internal/provider"
	"github.com/fmd-labs/fmd/internal/provider/catalog"
	"github.com/fmd-labs/fmd/internal/provider/crawl"
	"github.com/fmd-labs/fmd/internal/provider/stock"
	"github.com/fmd-labs/fmd/internal/queue"
	designrepo "github.com/fmd-labs/fmd/internal/repository/design"
	"github.com/fmd-labs/fmd/internal/repository/jobcache"
	jobrepo "github.com/fmd-labs/fmd/internal/repository/job"
	profilerepo "github.com/fmd-labs/fmd/internal/repository/profile"
	searchrepo "github.com/fmd-labs/fmd/internal/repository/search"
	sessionrepo "github.com/fmd-labs/fmd/internal/repository/session"
	"github.com/fmd-labs/fmd/internal/supervisor"
	chiTransport "github.com/fmd-labs/fmd/internal/transport/chi"
	openaiImages "github.com/fmd-labs/fmd/internal/transport/openai"
	designuc "github.com/fmd-labs/fmd/internal/usecase/design"
	healthuc "github.com/fmd-labs/fmd/internal/usecase/health"
	"github.com/fmd-labs/fmd/internal/usecase/imagegen"
	jobuc "github.com/fmd-labs/fmd/internal/usecase/job"
	profileuc "github.com/fmd-labs/fmd/internal/usecase/profile"
	searchuc "github.com/fmd-labs/fmd/internal/usecase/search"
	"github.com/fmd-labs/fmd/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting fmd API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("Failed to open database store", zap.Error(err))
	}
	defer store.Close()
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	prefix := cfg.Storage.KeyPrefix
	sessions := sessionrepo.New(store, prefix, time.Duration(cfg.Storage.SessionTTLSec)*time.Second)
	designs := designrepo.New(store, prefix)
	jobs := jobrepo.New(store, prefix)
	profiles := profilerepo.New(store, prefix)
	runs := searchrepo.New(store, prefix)
	statusCache := jobcache.New(
		store, prefix, time.Duration(cfg.Storage.JobCacheTTLSec)*time.Second, metrics.JobCacheTotal, logger,
	)

	registry := buildProviders(cfg.Providers, logger)
	logger.Info("Providers registered", zap.Strings("providers", registry.IDs()))

	images, imageChecker := buildImageChain(cfg.ImageGen, logger)

	q, err := queue.New(queue.Config{
		Concurrency: cfg.Worker.Concurrency,
		JobTimeout:  time.Duration(cfg.Worker.JobTimeoutSec) * time.Second,
		Buffer:      cfg.Worker.QueueBuffer,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create job queue", zap.Error(err))
	}
	defer func() { _ = q.Close() }()

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
		Queue:      q,
		Status:     statusCache,
		Locker:     store,
		LockPrefix: prefix,
		Logger:     logger,
	})
	searchSvc := searchuc.New(runs, designs, profiles, registry, searchuc.Options{
		ProviderTimeout: time.Duration(cfg.Search.ProviderTimeoutSec) * time.Second,
		Logger:          logger,
	})
	healthSvc := healthuc.New(store, imageChecker, registry)

	server := chiTransport.NewServer(chiTransport.ServerDeps{
		Designs:   designSvc,
		Jobs:      jobuc.NewStatusReader(jobs, statusCache),
		Search:    searchSvc,
		Health:    healthSvc,
		Providers: registry,
		SearchDefaults: request.Defaults{
			Providers: cfg.Search.DefaultProviders,
			Limit:     cfg.Search.DefaultLimit,
			MaxLimit:  cfg.Search.MaxLimit,
		},
		Logger: logger,
	})
	router := chiTransport.NewRouter(server, chiTransport.RouterConfig{
		APIKeys:     cfg.Auth.APIKeys,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		RateLimit:   cfg.HTTP.RateLimit,
	}, logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	shutdown := time.Duration(cfg.HTTP.ShutdownSec) * time.Second
	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = shutdown + time.Second

	tree := supervisor.New(logger, treeCfg)
	tree.Add(supervisor.NewHTTPService(srv, shutdown))
	tree.Add(supervisor.NewWorkerService(q, processor.Process))

	logger.Info("Starting HTTP server and job worker", zap.String("addr", srv.Addr))
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Supervisor stopped", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// openStore creates the configured store and waits until it answers.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (db.Store, error) {
	var (
		store db.Store
		err   error
	)
	switch cfg.Driver {
	case "valkey", "redis":
		// rueidis speaks both protocols.
		store, err = dbValkey.NewStore(dbValkey.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
	case "memory":
		store = dbMemory.NewStore()
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
	}

	timeout := time.Duration(cfg.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, timeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	return store, nil
}

// buildProviders wraps every product provider in a circuit breaker.
func buildProviders(cfg config.ProvidersConfig, logger *zap.Logger) *provider.Registry {
	breaker := provider.DefaultBreakerSettings()
	if cfg.Breaker.MinRequests > 0 {
		breaker.MinRequests = cfg.Breaker.MinRequests
	}
	if cfg.Breaker.FailureRatio > 0 {
		breaker.FailureRatio = cfg.Breaker.FailureRatio
	}
	if cfg.Breaker.IntervalSec > 0 {
		breaker.Interval = time.Duration(cfg.Breaker.IntervalSec) * time.Second
	}
	if cfg.Breaker.TimeoutSec > 0 {
		breaker.Timeout = time.Duration(cfg.Breaker.TimeoutSec) * time.Second
	}

	providers := []provider.Provider{
		catalog.New(),
		stock.New(stock.Config{
			UnsplashKey:       cfg.Stock.UnsplashKey,
			PexelsKey:         cfg.Stock.PexelsKey,
			PixabayKey:        cfg.Stock.PixabayKey,
			RequestsPerSecond: cfg.Stock.RequestsPerSecond,
			Logger:            logger,
		}),
	}
	if cfg.Crawl.Enabled {
		providers = append(providers, crawl.New(crawl.Config{
			BaseURL:           cfg.Crawl.BaseURL,
			RequestsPerSecond: cfg.Crawl.RequestsPerSecond,
			Logger:            logger,
		}))
	}

	guarded := make([]provider.Provider, len(providers))
	for i, p := range providers {
		guarded[i] = provider.NewGuard(p, breaker, logger)
	}
	return provider.NewRegistry(guarded...)
}

// buildImageChain assembles generators in configured order. The placeholder
// always closes the chain. The returned checker is nil without OpenAI.
func buildImageChain(cfg config.ImageGenConfig, logger *zap.Logger) (*imagegen.Chain, healthuc.ImageChecker) {
	var (
		steps   []imagegen.Generator
		checker healthuc.ImageChecker
	)
	for _, name := range cfg.Order {
		switch name {
		case openaiImages.Method:
			if cfg.OpenAI.APIKey == "" {
				logger.Info("OpenAI image generation disabled: no API key")
				continue
			}
			gen := openaiImages.NewImageGenerator(&openaiImages.Config{
				APIKey:  cfg.OpenAI.APIKey,
				BaseURL: cfg.OpenAI.BaseURL,
				Model:   cfg.OpenAI.Model,
				Size:    cfg.OpenAI.Size,
				Logger:  logger,
			})
			steps = append(steps, gen)
			checker = gen
		case "pollinations":
			steps = append(steps, imagegen.NewPollinations(cfg.BaseURL))
		case imagegen.MethodPlaceholder:
			// appended last below
		}
	}
	steps = append(steps, imagegen.Placeholder{})
	return imagegen.NewChain(logger, steps...), checker
}
