package design

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fmd-labs/fmd/internal/domain"
	domdesign "github.com/fmd-labs/fmd/internal/domain/design"
	domjob "github.com/fmd-labs/fmd/internal/domain/job"
	domprofile "github.com/fmd-labs/fmd/internal/domain/profile"
	"github.com/fmd-labs/fmd/internal/domain/search/result"
	domsession "github.com/fmd-labs/fmd/internal/domain/session"
)

// History defaults.
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
	historyTopResults   = 3
)

// enqueueFailedCode marks a job the worker never received.
const enqueueFailedCode = "EnqueueError"

// Process request lock. The lock covers only find-or-create, so it is short;
// a request that loses the race waits for the winner's job.
const (
	requestLockTTL      = 10 * time.Second
	requestLockWait     = 25 * time.Millisecond
	requestLockAttempts = 40
)

// ErrProcessBusy is returned when another request holds the design's process
// lock for longer than a waiter is willing to poll.
var ErrProcessBusy = errors.New("process request already in progress")

// CreateInput is a new design brief.
type CreateInput struct {
	SessionID    string
	InputMode    domdesign.InputMode
	CategoryHint string
	TextPrompt   string
	CanvasData   string
}

// HistoryEntry is one design in a session history. Profile and TopResults
// are empty while the design is still processing.
type HistoryEntry struct {
	Design     domdesign.Design
	Profile    *domprofile.Profile
	TopResults []result.Result
}

// Deps groups the collaborators of the design service.
type Deps struct {
	Sessions SessionRepository
	Designs  DesignRepository
	Jobs     JobRepository
	Profiles ProfileReader
	Runs     RunReader
	Queue    Enqueuer
	Status   StatusWriter
	// Locker guards find-or-create of process jobs. nil skips locking,
	// which is only safe with a single caller.
	Locker Locker
	// LockPrefix namespaces lock keys, e.g. "fmd:local:".
	LockPrefix string
	Logger     *zap.Logger
}

// Service handles sessions, design briefs and their processing requests.
type Service struct {
	sessions SessionRepository
	designs  DesignRepository
	jobs     JobRepository
	profiles ProfileReader
	runs     RunReader
	queue    Enqueuer
	status   StatusWriter
	locker   Locker
	prefix   string
	lockWait time.Duration
	logger   *zap.Logger
	newID    func() string
	now      func() time.Time
}

// New creates a design service.
func New(d Deps) *Service {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		sessions: d.Sessions,
		designs:  d.Designs,
		jobs:     d.Jobs,
		profiles: d.Profiles,
		runs:     d.Runs,
		queue:    d.Queue,
		status:   d.Status,
		locker:   d.Locker,
		prefix:   d.LockPrefix,
		lockWait: requestLockWait,
		logger:   logger,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// CreateSession starts an anonymous session.
func (s *Service) CreateSession(ctx context.Context, userAgent, clientIP string) (domsession.Session, error) {
	sess, err := domsession.New(s.newID(), userAgent, clientIP, s.now().UTC())
	if err != nil {
		return domsession.Session{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return domsession.Session{}, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// CreateDesign stores a brief under an existing session.
func (s *Service) CreateDesign(ctx context.Context, in CreateInput) (domdesign.Design, error) {
	if _, err := s.sessions.Get(ctx, in.SessionID); err != nil {
		return domdesign.Design{}, fmt.Errorf("get session: %w", err)
	}

	d, err := domdesign.New(
		s.newID(), in.SessionID, in.InputMode,
		in.CategoryHint, in.TextPrompt, in.CanvasData, s.now().UTC(),
	)
	if err != nil {
		return domdesign.Design{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	if err := s.designs.Create(ctx, d); err != nil {
		return domdesign.Design{}, fmt.Errorf("create design: %w", err)
	}
	return d, nil
}

// Process requests background processing of a design. A queued, running or
// finished job is returned as is; otherwise a new job is queued and the
// design moves to processing.
func (s *Service) Process(ctx context.Context, designID string) (*domjob.Job, error) {
	d, err := s.designs.Get(ctx, designID)
	if err != nil {
		return nil, fmt.Errorf("get design: %w", err)
	}

	j, created, err := s.findOrCreateJob(ctx, d)
	if err != nil {
		return nil, err
	}
	if !created {
		return j, nil
	}

	if err := s.queue.Enqueue(ctx, j.ID); err != nil {
		s.abandon(ctx, j, d)
		return nil, fmt.Errorf("enqueue job: %w", err)
	}
	return j, nil
}

// findOrCreateJob returns the design's reusable job, or creates a queued one
// and moves the design to processing. Under a Locker only one caller creates;
// the others poll until the job is visible.
func (s *Service) findOrCreateJob(ctx context.Context, d domdesign.Design) (*domjob.Job, bool, error) {
	if s.locker == nil {
		return s.createUnlocked(ctx, d)
	}

	key := s.prefix + "lock:request:" + d.ID()
	for attempt := 0; ; attempt++ {
		ok, err := s.locker.SetNX(ctx, key, []byte("1"), requestLockTTL)
		if err != nil {
			return nil, false, fmt.Errorf("acquire request lock: %w", err)
		}
		if ok {
			break
		}

		existing, err := s.jobs.FindReusable(ctx, d.ID(), domjob.TypeProcess)
		if err != nil {
			return nil, false, fmt.Errorf("find job: %w", err)
		}
		if existing != nil {
			return existing, false, nil
		}
		if attempt+1 >= requestLockAttempts {
			return nil, false, fmt.Errorf("design %s: %w", d.ID(), ErrProcessBusy)
		}

		t := time.NewTimer(s.lockWait)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, false, fmt.Errorf("wait for request lock: %w", ctx.Err())
		case <-t.C:
		}
	}
	defer func() {
		if err := s.locker.Del(context.WithoutCancel(ctx), key); err != nil {
			s.logger.Warn("Failed to release request lock", zap.String("design_id", d.ID()), zap.Error(err))
		}
	}()

	return s.createUnlocked(ctx, d)
}

func (s *Service) createUnlocked(ctx context.Context, d domdesign.Design) (*domjob.Job, bool, error) {
	existing, err := s.jobs.FindReusable(ctx, d.ID(), domjob.TypeProcess)
	if err != nil {
		return nil, false, fmt.Errorf("find job: %w", err)
	}
	if existing != nil {
		return existing, false, nil
	}

	j, err := domjob.New(s.newID(), d.ID(), domjob.TypeProcess, s.now().UTC())
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	if err := s.jobs.Create(ctx, j); err != nil {
		return nil, false, fmt.Errorf("create job: %w", err)
	}
	if err := s.designs.Update(ctx, d.WithStatus(domdesign.StatusProcessing)); err != nil {
		return nil, false, fmt.Errorf("update design: %w", err)
	}
	s.status.Put(ctx, j.Snapshot())
	return j, true, nil
}

// abandon fails a job that never reached the worker so a retry can create a
// fresh one.
func (s *Service) abandon(ctx context.Context, j *domjob.Job, d domdesign.Design) {
	j.Fail(enqueueFailedCode, s.now().UTC())
	if err := s.jobs.Update(ctx, j); err != nil {
		s.logger.Error("Failed to mark job failed", zap.String("job_id", j.ID), zap.Error(err))
	}
	if err := s.designs.Update(ctx, d.WithStatus(domdesign.StatusFailed)); err != nil {
		s.logger.Error("Failed to mark design failed", zap.String("design_id", d.ID()), zap.Error(err))
	}
	s.status.Put(ctx, j.Snapshot())
}

// History lists a session's processed and processing designs, newest first,
// with their profiles and the top results of their latest search.
func (s *Service) History(ctx context.Context, sessionID string, limit int) ([]HistoryEntry, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if err := s.sessions.Save(ctx, sess.Touch(s.now().UTC())); err != nil {
		s.logger.Warn("Failed to touch session", zap.String("session_id", sessionID), zap.Error(err))
	}

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	limit = min(limit, MaxHistoryLimit)

	designs, err := s.designs.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list designs: %w", err)
	}

	entries := make([]HistoryEntry, 0, min(limit, len(designs)))
	for _, d := range designs {
		if len(entries) == limit {
			break
		}
		if !d.Status().InHistory() {
			continue
		}
		entry, err := s.historyEntry(ctx, d)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *Service) historyEntry(ctx context.Context, d domdesign.Design) (HistoryEntry, error) {
	entry := HistoryEntry{Design: d, TopResults: []result.Result{}}

	prof, err := s.profiles.GetByDesign(ctx, d.ID())
	if errors.Is(err, domain.ErrProfileNotReady) {
		return entry, nil
	}
	if err != nil {
		return HistoryEntry{}, fmt.Errorf("get profile: %w", err)
	}
	entry.Profile = prof

	run, err := s.runs.LatestRun(ctx, prof.ID)
	if err != nil {
		return HistoryEntry{}, fmt.Errorf("latest run: %w", err)
	}
	if run == nil {
		return entry, nil
	}

	top, err := s.runs.TopResults(ctx, run.ID, historyTopResults)
	if err != nil {
		return HistoryEntry{}, fmt.Errorf("top results: %w", err)
	}
	entry.TopResults = top
	return entry, nil
}
