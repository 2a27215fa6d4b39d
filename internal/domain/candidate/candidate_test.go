package candidate

import (
	"errors"
	"testing"
)

func TestItem_Validate(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{"ok", "Blue Minimal UI Kit", false},
		{"empty", "", true},
		{"blank", "   ", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Item{Title: tt.title}.Validate()
			if tt.wantErr && !errors.Is(err, ErrTitleRequired) {
				t.Errorf("error = %v, want ErrTitleRequired", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestItem_HasImage(t *testing.T) {
	if (Item{}).HasImage() {
		t.Error("nil image reported as present")
	}
	if (Item{ImageURL: Ptr("")}).HasImage() {
		t.Error("empty image reported as present")
	}
	if !(Item{ImageURL: Ptr("https://img.example/a.png")}).HasImage() {
		t.Error("image not detected")
	}
}

func TestItem_URL(t *testing.T) {
	if got := (Item{}).URL(); got != "" {
		t.Errorf("URL() = %q, want empty", got)
	}
	if got := (Item{ProductURL: Ptr("https://x.example/p/1")}).URL(); got != "https://x.example/p/1" {
		t.Errorf("URL() = %q", got)
	}
}
