package design

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fmd-labs/fmd/internal/db/memory"
	"github.com/fmd-labs/fmd/internal/domain"
	"github.com/fmd-labs/fmd/internal/domain/candidate"
	domdesign "github.com/fmd-labs/fmd/internal/domain/design"
	domjob "github.com/fmd-labs/fmd/internal/domain/job"
	domprofile "github.com/fmd-labs/fmd/internal/domain/profile"
	"github.com/fmd-labs/fmd/internal/domain/search/result"
	designrepo "github.com/fmd-labs/fmd/internal/repository/design"
	jobrepo "github.com/fmd-labs/fmd/internal/repository/job"
	profilerepo "github.com/fmd-labs/fmd/internal/repository/profile"
	searchrepo "github.com/fmd-labs/fmd/internal/repository/search"
	sessionrepo "github.com/fmd-labs/fmd/internal/repository/session"
)

// --- Mocks ---

type mockQueue struct {
	mu       sync.Mutex
	enqueued []string
	err      error
}

func (m *mockQueue) Enqueue(_ context.Context, jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.enqueued = append(m.enqueued, jobID)
	return nil
}

type mockStatus struct {
	mu        sync.Mutex
	snapshots []domjob.Snapshot
}

func (m *mockStatus) Put(_ context.Context, s domjob.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots = append(m.snapshots, s)
}

// --- Helpers ---

type fixture struct {
	svc      *Service
	store    *memory.Store
	designs  *designrepo.Repo
	jobs     *jobrepo.Repo
	profiles *profilerepo.Repo
	runs     *searchrepo.Repo
	queue    *mockQueue
	status   *mockStatus
	clock    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		store:    store,
		designs:  designrepo.New(store, "t:"),
		jobs:     jobrepo.New(store, "t:"),
		profiles: profilerepo.New(store, "t:"),
		runs:     searchrepo.New(store, "t:"),
		queue:    &mockQueue{},
		status:   &mockStatus{},
		clock:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc = New(Deps{
		Sessions:   sessionrepo.New(store, "t:", 0),
		Designs:    f.designs,
		Jobs:       f.jobs,
		Profiles:   f.profiles,
		Runs:       f.runs,
		Queue:      f.queue,
		Status:     f.status,
		Locker:     store,
		LockPrefix: "t:",
	})
	seq := 0
	f.svc.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	f.svc.now = func() time.Time {
		f.clock = f.clock.Add(time.Second)
		return f.clock
	}
	return f
}

func (f *fixture) session(t *testing.T) string {
	t.Helper()
	s, err := f.svc.CreateSession(context.Background(), "test-agent", "10.0.0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s.ID()
}

func (f *fixture) design(t *testing.T, sessionID, prompt string) domdesign.Design {
	t.Helper()
	d, err := f.svc.CreateDesign(context.Background(), CreateInput{
		SessionID: sessionID, InputMode: domdesign.ModeText, TextPrompt: prompt,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return d
}

// --- Tests ---

func TestCreateSession(t *testing.T) {
	f := newFixture(t)
	s, err := f.svc.CreateSession(context.Background(), "agent", "127.0.0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ID() == "" || s.UserAgent() != "agent" || len(s.IPHash()) != 16 {
		t.Errorf("session = %q %q %q", s.ID(), s.UserAgent(), s.IPHash())
	}
}

func TestCreateDesign(t *testing.T) {
	f := newFixture(t)
	sid := f.session(t)

	d := f.design(t, sid, "blue logo")
	if d.Status() != domdesign.StatusCreated || d.SessionID() != sid {
		t.Errorf("design = %s / %s", d.Status(), d.SessionID())
	}

	stored, err := f.designs.Get(context.Background(), d.ID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.TextPrompt() != "blue logo" {
		t.Errorf("stored prompt = %q", stored.TextPrompt())
	}
}

func TestCreateDesign_Errors(t *testing.T) {
	f := newFixture(t)
	sid := f.session(t)

	tests := []struct {
		name string
		in   CreateInput
		want error
	}{
		{"unknown session", CreateInput{SessionID: "nope", InputMode: domdesign.ModeText, TextPrompt: "x"}, domain.ErrSessionNotFound},
		{"empty brief", CreateInput{SessionID: sid, InputMode: domdesign.ModeText}, domain.ErrInvalidInput},
		{"bad mode", CreateInput{SessionID: sid, InputMode: "video", TextPrompt: "x"}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateDesign(context.Background(), tt.in)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestProcess_QueuesOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.design(t, f.session(t), "minimal icon")

	first, err := f.svc.Process(ctx, d.ID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Status != domjob.StatusQueued {
		t.Errorf("status = %s", first.Status)
	}

	second, err := f.svc.Process(ctx, d.ID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected reused job %s, got %s", first.ID, second.ID)
	}
	if len(f.queue.enqueued) != 1 {
		t.Errorf("expected 1 enqueue, got %d", len(f.queue.enqueued))
	}
	if len(f.status.snapshots) != 1 || f.status.snapshots[0].Status != domjob.StatusQueued {
		t.Errorf("snapshots = %+v", f.status.snapshots)
	}

	stored, _ := f.designs.Get(ctx, d.ID())
	if stored.Status() != domdesign.StatusProcessing {
		t.Errorf("design status = %s", stored.Status())
	}
}

func TestProcess_ConcurrentRequestsShareJob(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.design(t, f.session(t), "minimal icon")
	f.svc.newID = uuid.NewString
	f.svc.now = func() time.Time { return f.clock }
	f.svc.lockWait = time.Millisecond

	const callers = 8
	ids := make([]string, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j, err := f.svc.Process(ctx, d.ID())
			errs[i] = err
			if j != nil {
				ids[i] = j.ID
			}
		}()
	}
	wg.Wait()

	for i := range callers {
		if errs[i] != nil {
			t.Fatalf("caller %d: unexpected error: %v", i, errs[i])
		}
		if ids[i] != ids[0] {
			t.Errorf("caller %d got job %s, want %s", i, ids[i], ids[0])
		}
	}
	if len(f.queue.enqueued) != 1 {
		t.Errorf("expected 1 enqueue, got %d", len(f.queue.enqueued))
	}
	if held, _ := f.store.Exists(ctx, "t:lock:request:"+d.ID()); held {
		t.Error("request lock not released")
	}
}

func TestProcess_LockHeldWithoutJob(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.design(t, f.session(t), "minimal icon")
	f.svc.lockWait = time.Millisecond

	if ok, _ := f.store.SetNX(ctx, "t:lock:request:"+d.ID(), []byte("other"), time.Minute); !ok {
		t.Fatal("failed to take lock")
	}

	_, err := f.svc.Process(ctx, d.ID())
	if !errors.Is(err, ErrProcessBusy) {
		t.Fatalf("expected ErrProcessBusy, got %v", err)
	}
	if len(f.queue.enqueued) != 0 {
		t.Errorf("expected no enqueue, got %d", len(f.queue.enqueued))
	}
}

func TestProcess_LockHeldReturnsExistingJob(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.design(t, f.session(t), "minimal icon")

	first, err := f.svc.Process(ctx, d.ID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok, _ := f.store.SetNX(ctx, "t:lock:request:"+d.ID(), []byte("other"), time.Minute); !ok {
		t.Fatal("failed to take lock")
	}

	second, err := f.svc.Process(ctx, d.ID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected job %s, got %s", first.ID, second.ID)
	}
}

func TestProcess_DoneJobReused(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.design(t, f.session(t), "poster")

	j, err := f.svc.Process(ctx, d.ID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	j.Complete(domjob.Result{AIImageURL: "https://img"}, f.clock)
	if err := f.jobs.Update(ctx, j); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	again, err := f.svc.Process(ctx, d.ID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.ID != j.ID || again.Status != domjob.StatusDone {
		t.Errorf("expected finished job reused, got %s (%s)", again.ID, again.Status)
	}
}

func TestProcess_FailedJobReplaced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.design(t, f.session(t), "poster")

	f.queue.err = errors.New("queue closed")
	if _, err := f.svc.Process(ctx, d.ID()); err == nil {
		t.Fatal("expected enqueue error")
	}
	stored, _ := f.designs.Get(ctx, d.ID())
	if stored.Status() != domdesign.StatusFailed {
		t.Errorf("design status = %s", stored.Status())
	}

	f.queue.err = nil
	j, err := f.svc.Process(ctx, d.ID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if j.Status != domjob.StatusQueued || len(f.queue.enqueued) != 1 {
		t.Errorf("expected a fresh queued job, got %+v", j)
	}
}

func TestProcess_DesignNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Process(context.Background(), "missing")
	if !errors.Is(err, domain.ErrDesignNotFound) {
		t.Errorf("expected ErrDesignNotFound, got %v", err)
	}
}

func TestHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sid := f.session(t)

	created := f.design(t, sid, "never processed")
	processing := f.design(t, sid, "in flight")
	processed := f.design(t, sid, "blue logo")

	for _, d := range []domdesign.Design{processing, processed} {
		if _, err := f.svc.Process(ctx, d.ID()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := f.designs.Update(ctx, processed.WithStatus(domdesign.StatusProcessed)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	blue := "#0000ff"
	prof := &domprofile.Profile{
		ID: "p-1", DesignID: processed.ID(), Keywords: []string{"blue", "logo"}, DominantColor: &blue,
		Attributes: domprofile.Attributes{AIImageURL: "https://ai/img"},
	}
	if err := f.profiles.Upsert(ctx, prof); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.runs.SaveRun(ctx, result.Run{ID: "run-1", ProfileID: "p-1", ProviderID: "mock", Status: result.RunDone, CreatedAt: f.clock}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var rs []result.Result
	for i := range 5 {
		rs = append(rs, result.New(fmt.Sprintf("r-%d", i), candidate.Scored{
			Item:         candidate.Item{Title: fmt.Sprintf("Item %d", i), SearchRunID: "run-1"},
			ScoreOverall: float64(i) / 10,
		}, f.clock))
	}
	if err := f.runs.SaveResults(ctx, rs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := f.svc.History(ctx, sid, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	newest := entries[0]
	if newest.Design.ID() != processed.ID() {
		t.Errorf("expected newest design first, got %s", newest.Design.ID())
	}
	if newest.Profile == nil || newest.Profile.Attributes.AIImageURL != "https://ai/img" {
		t.Errorf("profile = %+v", newest.Profile)
	}
	if len(newest.TopResults) != 3 {
		t.Fatalf("expected top 3 results, got %d", len(newest.TopResults))
	}
	if newest.TopResults[0].Score() != 0.4 {
		t.Errorf("best score = %.2f", newest.TopResults[0].Score())
	}

	inFlight := entries[1]
	if inFlight.Profile != nil || len(inFlight.TopResults) != 0 {
		t.Errorf("processing design should have no profile, got %+v", inFlight)
	}
	for _, e := range entries {
		if e.Design.ID() == created.ID() {
			t.Error("created design must not appear in history")
		}
	}
}

func TestHistory_Limit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sid := f.session(t)
	for i := range 4 {
		d := f.design(t, sid, fmt.Sprintf("brief %d", i))
		if _, err := f.svc.Process(ctx, d.ID()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	entries, err := f.svc.History(ctx, sid, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}
}

func TestHistory_SessionNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.History(context.Background(), "nope", 0)
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}
