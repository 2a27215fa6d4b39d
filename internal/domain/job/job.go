// Package job models asynchronous design processing jobs.
package job

import (
	"fmt"
	"time"
)

// Type names the kind of work a job performs.
type Type string

// TypeProcess builds the design profile and reference image.
const TypeProcess Type = "process"

// Status is the job lifecycle state.
type Status string

// Job lifecycle values.
const (
	StatusQueued  Status = "queued"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Reusable reports whether a job in this state answers a repeated process
// request instead of a new job being created.
func (s Status) Reusable() bool {
	return s == StatusQueued || s == StatusRunning || s == StatusDone
}

// Terminal reports whether the job has finished.
func (s Status) Terminal() bool { return s == StatusDone || s == StatusFailed }

// Progress checkpoints reported while processing.
const (
	ProgressStarted  = 0.1
	ProgressProfiled = 0.4
	ProgressImaged   = 0.7
	ProgressDone     = 1.0
)

// Result is the payload of a finished process job.
type Result struct {
	AIImageURL    string
	AIImageMethod string
	Keywords      []string
	DominantColor *string
}

// Job is a unit of background work tied to a design.
type Job struct {
	ID         string
	DesignID   string
	Type       Type
	Status     Status
	Progress   float64
	Result     *Result
	ErrorCode  string
	CreatedAt  time.Time
	FinishedAt *time.Time
}

// New creates a queued job.
func New(id, designID string, t Type, now time.Time) (*Job, error) {
	if id == "" || designID == "" {
		return nil, fmt.Errorf("job and design IDs are required")
	}
	return &Job{ID: id, DesignID: designID, Type: t, Status: StatusQueued, CreatedAt: now}, nil
}

// Start moves the job to running.
func (j *Job) Start() {
	j.Status = StatusRunning
	j.Progress = ProgressStarted
}

// Advance records intermediate progress. Progress never moves backwards.
func (j *Job) Advance(p float64) {
	if p > j.Progress {
		j.Progress = p
	}
}

// Complete marks the job done with its result.
func (j *Job) Complete(r Result, now time.Time) {
	j.Status = StatusDone
	j.Progress = ProgressDone
	j.Result = &r
	j.ErrorCode = ""
	j.FinishedAt = &now
}

// Fail marks the job failed with a machine-readable code.
func (j *Job) Fail(code string, now time.Time) {
	j.Status = StatusFailed
	j.ErrorCode = code
	j.FinishedAt = &now
}

// Snapshot is the cacheable status view of a job.
type Snapshot struct {
	JobID         string
	Status        Status
	Progress      float64
	ErrorCode     string
	AIImageURL    string
	Keywords      []string
	DominantColor *string
}

// Snapshot returns the current status view.
func (j *Job) Snapshot() Snapshot {
	s := Snapshot{JobID: j.ID, Status: j.Status, Progress: j.Progress, ErrorCode: j.ErrorCode}
	if j.Result != nil {
		s.AIImageURL = j.Result.AIImageURL
		s.Keywords = j.Result.Keywords
		s.DominantColor = j.Result.DominantColor
	}
	return s
}
