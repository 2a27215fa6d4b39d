package design

import (
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		id      string
		session string
		mode    InputMode
		hint    string
		prompt  string
		canvas  string
		wantErr bool
	}{
		{"text", "d-1", "s-1", ModeText, "logo", "blue minimal logo", "", false},
		{"canvas", "d-1", "s-1", ModeCanvas, "", "", "data:image/png;base64,AAAA", false},
		{"no input", "d-1", "s-1", ModeText, "", "  ", "", true},
		{"bad mode", "d-1", "s-1", InputMode("voice"), "", "x", "", true},
		{"no id", "", "s-1", ModeText, "", "x", "", true},
		{"no session", "d-1", "", ModeText, "", "x", "", true},
		{"long hint", "d-1", "s-1", ModeText, strings.Repeat("x", MaxCategoryLen+1), "x", "", true},
		{"long prompt", "d-1", "s-1", ModeText, "", strings.Repeat("x", MaxPromptLen+1), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(tt.id, tt.session, tt.mode, tt.hint, tt.prompt, tt.canvas, now)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.Status() != StatusCreated {
				t.Errorf("Status() = %q, want created", d.Status())
			}
		})
	}
}

func TestWithStatus(t *testing.T) {
	d, err := New("d-1", "s-1", ModeText, "", "poster", "", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := d.WithStatus(StatusProcessing)
	if p.Status() != StatusProcessing {
		t.Errorf("Status() = %q", p.Status())
	}
	if d.Status() != StatusCreated {
		t.Error("WithStatus mutated the original")
	}
}

func TestStatus_InHistory(t *testing.T) {
	for s, want := range map[Status]bool{
		StatusCreated:    false,
		StatusProcessing: true,
		StatusProcessed:  true,
		StatusFailed:     false,
	} {
		if got := s.InHistory(); got != want {
			t.Errorf("%s.InHistory() = %v, want %v", s, got, want)
		}
	}
}

func TestStyle(t *testing.T) {
	d := Reconstruct("d", "s", ModeText, "", "x", "", StatusCreated, time.Now())
	if got := d.Style(); got != "design-asset" {
		t.Errorf("Style() = %q", got)
	}
	d = Reconstruct("d", "s", ModeText, "Logo", "x", "", StatusCreated, time.Now())
	if got := d.Style(); got != "logo" {
		t.Errorf("Style() = %q", got)
	}
}
