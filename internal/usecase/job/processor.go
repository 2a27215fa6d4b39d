package job

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fmd-labs/fmd/internal/domain"
	domdesign "github.com/fmd-labs/fmd/internal/domain/design"
	domjob "github.com/fmd-labs/fmd/internal/domain/job"
	domprofile "github.com/fmd-labs/fmd/internal/domain/profile"
	"github.com/fmd-labs/fmd/internal/metrics"
	"github.com/fmd-labs/fmd/internal/usecase/profile"
)

// LockTTL bounds how long one design stays locked by a worker.
const LockTTL = 300 * time.Second

// Error codes recorded on failed jobs.
const (
	CodeImageGeneration = "ImageGenerationError"
	CodeTimeout         = "Timeout"
	CodeStorage         = "StorageError"
)

// Deps groups the collaborators of the processor.
type Deps struct {
	Jobs     Repository
	Designs  DesignRepository
	Profiles ProfileRepository
	Builder  ProfileBuilder
	Images   ImageGenerator
	Cache    StatusCache
	Locker   Locker
	// LockPrefix namespaces lock keys, e.g. "fmd:local:".
	LockPrefix string
	Logger     *zap.Logger
}

// Processor turns a queued process job into a stored profile.
type Processor struct {
	jobs       Repository
	designs    DesignRepository
	profiles   ProfileRepository
	builder    ProfileBuilder
	images     ImageGenerator
	cache      StatusCache
	locker     Locker
	lockPrefix string
	logger     *zap.Logger
	newID      func() string
	now        func() time.Time
}

// NewProcessor creates a job processor.
func NewProcessor(d Deps) *Processor {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		jobs:       d.Jobs,
		designs:    d.Designs,
		profiles:   d.Profiles,
		builder:    d.Builder,
		images:     d.Images,
		cache:      d.Cache,
		locker:     d.Locker,
		lockPrefix: d.LockPrefix,
		logger:     logger,
		newID:      uuid.NewString,
		now:        time.Now,
	}
}

// Process runs one job. A missing job or design, or a design already held by
// another worker, is logged and skipped. Processing failures are recorded on
// the job and the design; only storage errors while loading are returned.
func (p *Processor) Process(ctx context.Context, jobID string) error {
	logger := p.logger.With(zap.String("job_id", jobID))

	j, err := p.jobs.Get(ctx, jobID)
	if errors.Is(err, domain.ErrJobNotFound) {
		logger.Warn("Job not found, skipping")
		return nil
	}
	if err != nil {
		return fmt.Errorf("get job: %w", err)
	}
	if j.Status.Terminal() {
		logger.Info("Job already finished, skipping", zap.String("status", string(j.Status)))
		return nil
	}

	d, err := p.designs.Get(ctx, j.DesignID)
	if errors.Is(err, domain.ErrDesignNotFound) {
		logger.Warn("Design not found for job", zap.String("design_id", j.DesignID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("get design: %w", err)
	}

	lockKey := p.lockPrefix + "lock:process:" + d.ID()
	ok, err := p.locker.SetNX(ctx, lockKey, []byte(jobID), LockTTL)
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		logger.Info("Design already being processed, skipping", zap.String("design_id", d.ID()))
		return nil
	}
	defer func() {
		if err := p.locker.Del(context.WithoutCancel(ctx), lockKey); err != nil {
			logger.Warn("Failed to release lock", zap.Error(err))
		}
	}()

	if err := p.run(ctx, j, d); err != nil {
		p.fail(context.WithoutCancel(ctx), j, d, err)
		return nil
	}
	metrics.JobsTotal.WithLabelValues(string(j.Type), string(domjob.StatusDone)).Inc()
	logger.Info("Job completed")
	return nil
}

func (p *Processor) run(ctx context.Context, j *domjob.Job, d domdesign.Design) error {
	j.Start()
	if err := p.save(ctx, j); err != nil {
		return err
	}

	in := profile.Input{TextPrompt: d.TextPrompt(), Category: d.CategoryHint()}
	if d.InputMode() == domdesign.ModeCanvas {
		in.CanvasData = d.CanvasData()
	}
	out := p.builder.Build(in)

	j.Advance(domjob.ProgressProfiled)
	if err := p.save(ctx, j); err != nil {
		return err
	}

	prompt := d.TextPrompt()
	if strings.TrimSpace(prompt) == "" {
		prompt = strings.Join(out.Keywords, " ")
	}
	img, err := p.images.Generate(ctx, prompt, d.Style())
	if err != nil {
		return fmt.Errorf("generate image: %w", err)
	}
	p.logger.Info("Reference image generated", zap.String("job_id", j.ID), zap.String("method", img.Method))

	j.Advance(domjob.ProgressImaged)
	if err := p.save(ctx, j); err != nil {
		return err
	}

	if err := p.storeProfile(ctx, d, out, img.URL, img.Method); err != nil {
		return err
	}

	j.Complete(domjob.Result{
		AIImageURL:    img.URL,
		AIImageMethod: img.Method,
		Keywords:      out.Keywords,
		DominantColor: out.DominantColor,
	}, p.now().UTC())
	if err := p.save(ctx, j); err != nil {
		return err
	}
	if err := p.designs.Update(ctx, d.WithStatus(domdesign.StatusProcessed)); err != nil {
		return fmt.Errorf("update design: %w", err)
	}
	return nil
}

// storeProfile upserts the profile, keeping the ID of a previous one so its
// search runs stay attached.
func (p *Processor) storeProfile(ctx context.Context, d domdesign.Design, out profile.Output, imageURL, method string) error {
	id := p.newID()
	createdAt := p.now().UTC()
	prev, err := p.profiles.GetByDesign(ctx, d.ID())
	switch {
	case err == nil:
		id, createdAt = prev.ID, prev.CreatedAt
	case !errors.Is(err, domain.ErrProfileNotReady):
		return fmt.Errorf("get profile: %w", err)
	}

	attrs := out.Attributes
	attrs.AIImageURL = imageURL
	attrs.AIImageMethod = method

	prof := &domprofile.Profile{
		ID:               id,
		DesignID:         d.ID(),
		Hash:             domprofile.ScopedHash(d.ID(), out.Hash),
		Keywords:         out.Keywords,
		NegativeKeywords: out.NegativeKeywords,
		DominantColor:    out.DominantColor,
		Embedding:        out.Embedding,
		Attributes:       attrs,
		CreatedAt:        createdAt,
	}
	if err := p.profiles.Upsert(ctx, prof); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// save persists the job and publishes its snapshot.
func (p *Processor) save(ctx context.Context, j *domjob.Job) error {
	if err := p.jobs.Update(ctx, j); err != nil {
		return fmt.Errorf("save job: %w", err)
	}
	p.cache.Put(ctx, j.Snapshot())
	return nil
}

func (p *Processor) fail(ctx context.Context, j *domjob.Job, d domdesign.Design, cause error) {
	code := errorCode(cause)
	p.logger.Error("Job failed",
		zap.String("job_id", j.ID),
		zap.String("error_code", code),
		zap.Error(cause),
	)
	metrics.JobsTotal.WithLabelValues(string(j.Type), string(domjob.StatusFailed)).Inc()

	j.Fail(code, p.now().UTC())
	if err := p.save(ctx, j); err != nil {
		p.logger.Error("Failed to record job failure", zap.String("job_id", j.ID), zap.Error(err))
	}
	if err := p.designs.Update(ctx, d.WithStatus(domdesign.StatusFailed)); err != nil {
		p.logger.Error("Failed to mark design failed", zap.String("design_id", d.ID()), zap.Error(err))
	}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return CodeTimeout
	case errors.Is(err, domain.ErrImageGeneration):
		return CodeImageGeneration
	default:
		return CodeStorage
	}
}
