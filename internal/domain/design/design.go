// Package design models a user's design brief.
package design

import (
	"fmt"
	"strings"
	"time"
)

// InputMode is how the brief was captured.
type InputMode string

// Supported input modes.
const (
	ModeText   InputMode = "text"
	ModeCanvas InputMode = "canvas"
)

// IsValid checks if the input mode is supported.
func (m InputMode) IsValid() bool { return m == ModeText || m == ModeCanvas }

// Status tracks the design through processing.
type Status string

// Design lifecycle values.
const (
	StatusCreated    Status = "created"
	StatusProcessing Status = "processing"
	StatusProcessed  Status = "processed"
	StatusFailed     Status = "failed"
)

// InHistory reports whether designs with this status appear in session history.
func (s Status) InHistory() bool { return s == StatusProcessed || s == StatusProcessing }

const (
	// MaxCategoryLen bounds the category hint.
	MaxCategoryLen = 50
	// MaxPromptLen bounds the text prompt.
	MaxPromptLen = 4000
	// MaxCanvasSize bounds the canvas data URL in bytes.
	MaxCanvasSize = 8 << 20
)

// Design is a submitted brief (immutable value object).
type Design struct {
	id           string
	sessionID    string
	inputMode    InputMode
	categoryHint string
	textPrompt   string
	canvasData   string
	status       Status
	createdAt    time.Time
}

// New validates and creates a Design in the created state.
// Either a text prompt or canvas data must be provided.
func New(
	id, sessionID string, mode InputMode,
	categoryHint, textPrompt, canvasData string, now time.Time,
) (Design, error) {
	if id == "" {
		return Design{}, fmt.Errorf("design ID is required")
	}
	if sessionID == "" {
		return Design{}, fmt.Errorf("session ID is required")
	}
	if !mode.IsValid() {
		return Design{}, fmt.Errorf("invalid input mode: %q", mode)
	}
	if strings.TrimSpace(textPrompt) == "" && canvasData == "" {
		return Design{}, fmt.Errorf("either text prompt or canvas data must be provided")
	}
	if len(categoryHint) > MaxCategoryLen {
		return Design{}, fmt.Errorf("category hint too long (max %d)", MaxCategoryLen)
	}
	if len(textPrompt) > MaxPromptLen {
		return Design{}, fmt.Errorf("text prompt too long (max %d)", MaxPromptLen)
	}
	if len(canvasData) > MaxCanvasSize {
		return Design{}, fmt.Errorf("canvas data too large (max %d bytes)", MaxCanvasSize)
	}

	return Design{
		id:           id,
		sessionID:    sessionID,
		inputMode:    mode,
		categoryHint: categoryHint,
		textPrompt:   textPrompt,
		canvasData:   canvasData,
		status:       StatusCreated,
		createdAt:    now,
	}, nil
}

// Reconstruct creates a Design without validation (storage hydration).
func Reconstruct(
	id, sessionID string, mode InputMode,
	categoryHint, textPrompt, canvasData string,
	status Status, createdAt time.Time,
) Design {
	return Design{
		id: id, sessionID: sessionID, inputMode: mode,
		categoryHint: categoryHint, textPrompt: textPrompt, canvasData: canvasData,
		status: status, createdAt: createdAt,
	}
}

// WithStatus returns a copy in the given status.
func (d Design) WithStatus(s Status) Design {
	d.status = s
	return d
}

// ID returns the design identifier.
func (d *Design) ID() string { return d.id }

// SessionID returns the owning session.
func (d *Design) SessionID() string { return d.sessionID }

// InputMode returns how the brief was captured.
func (d *Design) InputMode() InputMode { return d.inputMode }

// CategoryHint returns the optional category, e.g. "logo".
func (d *Design) CategoryHint() string { return d.categoryHint }

// TextPrompt returns the free-text brief.
func (d *Design) TextPrompt() string { return d.textPrompt }

// CanvasData returns the sketch as a data URL, if any.
func (d *Design) CanvasData() string { return d.canvasData }

// Status returns the processing state.
func (d *Design) Status() Status { return d.status }

// CreatedAt returns the creation time.
func (d *Design) CreatedAt() time.Time { return d.createdAt }

// Style picks the image generation style: the category hint, or "design-asset".
func (d *Design) Style() string {
	if d.categoryHint == "" {
		return "design-asset"
	}
	return strings.ToLower(d.categoryHint)
}
