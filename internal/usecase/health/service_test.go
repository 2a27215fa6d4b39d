package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

type mockImageChecker struct {
	err error
}

func (m *mockImageChecker) HealthCheck(_ context.Context) error { return m.err }

type mockCircuits struct {
	open []string
}

func (m *mockCircuits) OpenCircuits() []string { return m.open }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockImageChecker{}, &mockCircuits{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	for _, name := range []string{"database", "image_generator", "providers"} {
		if r.Checks[name] != CheckOK {
			t.Errorf("expected %s %q, got %q", name, CheckOK, r.Checks[name])
		}
	}
}

func TestCheck_DBError(t *testing.T) {
	svc := New(&mockDBPinger{err: errors.New("conn refused")}, &mockImageChecker{}, nil)
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks["database"] != CheckError {
		t.Errorf("expected database %q, got %q", CheckError, r.Checks["database"])
	}
	if r.Checks["image_generator"] != CheckOK {
		t.Errorf("expected image_generator %q, got %q", CheckOK, r.Checks["image_generator"])
	}
}

func TestCheck_Degraded(t *testing.T) {
	tests := []struct {
		name   string
		images ImageChecker
		open   []string
		check  string
	}{
		{"image generator down", &mockImageChecker{err: errors.New("timeout")}, nil, "image_generator"},
		{"open circuit", nil, []string{"crawl"}, "providers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&mockDBPinger{}, tt.images, &mockCircuits{open: tt.open}).Check(context.Background())
			if r.Status != Degraded {
				t.Errorf("expected %q, got %q", Degraded, r.Status)
			}
			if r.Checks[tt.check] != CheckError {
				t.Errorf("expected %s %q, got %q", tt.check, CheckError, r.Checks[tt.check])
			}
			if len(tt.open) > 0 && len(r.OpenCircuits) != len(tt.open) {
				t.Errorf("open circuits = %v", r.OpenCircuits)
			}
		})
	}
}

func TestCheck_OptionalChecksOmitted(t *testing.T) {
	svc := New(&mockDBPinger{}, nil, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["image_generator"]; ok {
		t.Error("image_generator check should be absent")
	}
	if _, ok := r.Checks["providers"]; ok {
		t.Error("providers check should be absent")
	}
}
