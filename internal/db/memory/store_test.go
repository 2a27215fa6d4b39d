package memory

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/fmd-labs/fmd/internal/db"
)

func TestGetSet(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	if _, err := s.Get(ctx, "k"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	if err := s.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get = %q", got)
	}

	got[0] = 'x'
	again, _ := s.Get(ctx, "k")
	if string(again) != "v" {
		t.Error("Get returned shared buffer")
	}
}

func TestSetWithTTL_Expires(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	if err := s.SetWithTTL(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok, _ := s.Exists(ctx, "k"); !ok {
		t.Fatal("key missing before expiry")
	}

	now = now.Add(2 * time.Minute)
	if _, err := s.Get(ctx, "k"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected expiry, got %v", err)
	}
}

func TestSetNX(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Now()
	s.now = func() time.Time { return now }

	ok, _ := s.SetNX(ctx, "lock", []byte("1"), time.Minute)
	if !ok {
		t.Fatal("first SetNX failed")
	}
	ok, _ = s.SetNX(ctx, "lock", []byte("2"), time.Minute)
	if ok {
		t.Fatal("second SetNX succeeded while held")
	}

	now = now.Add(2 * time.Minute)
	ok, _ = s.SetNX(ctx, "lock", []byte("3"), time.Minute)
	if !ok {
		t.Fatal("SetNX failed after expiry")
	}
}

func TestMGet(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	_ = s.Set(ctx, "a", []byte("1"))
	_ = s.Set(ctx, "c", []byte("3"))

	got, err := s.MGet(ctx, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got[0]) != "1" || got[1] != nil || string(got[2]) != "3" {
		t.Errorf("MGet = %q", got)
	}
}

func TestDel(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	_ = s.Set(ctx, "k", []byte("v"))
	_ = s.ZAdd(ctx, "z", db.ZMember{Member: "m", Score: 1})

	_ = s.Del(ctx, "k")
	_ = s.Del(ctx, "z")
	for _, k := range []string{"k", "z"} {
		if ok, _ := s.Exists(ctx, k); ok {
			t.Errorf("%s still exists", k)
		}
	}
}

func TestZRevRange(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	_ = s.ZAdd(ctx, "z",
		db.ZMember{Member: "low", Score: 1},
		db.ZMember{Member: "high", Score: 3},
		db.ZMember{Member: "mid-a", Score: 2},
		db.ZMember{Member: "mid-b", Score: 2},
	)

	tests := []struct {
		name        string
		start, stop int64
		want        []string
	}{
		{"all", 0, -1, []string{"high", "mid-b", "mid-a", "low"}},
		{"top two", 0, 1, []string{"high", "mid-b"}},
		{"tail", -2, -1, []string{"mid-a", "low"}},
		{"past end", 3, 10, []string{"low"}},
		{"empty window", 5, 10, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ZRevRange(ctx, "z", tt.start, tt.stop)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ZRevRange(%d, %d) = %v, want %v", tt.start, tt.stop, got, tt.want)
			}
		})
	}
}

func TestZAdd_UpdatesScore(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	_ = s.ZAdd(ctx, "z", db.ZMember{Member: "a", Score: 1}, db.ZMember{Member: "b", Score: 2})
	_ = s.ZAdd(ctx, "z", db.ZMember{Member: "a", Score: 5})

	got, _ := s.ZRevRange(ctx, "z", 0, 0)
	if len(got) != 1 || got[0] != "a" {
		t.Errorf("top = %v, want [a]", got)
	}
}

func TestZRem(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	_ = s.ZAdd(ctx, "z", db.ZMember{Member: "a", Score: 1})
	_ = s.ZRem(ctx, "z", "a")
	if ok, _ := s.Exists(ctx, "z"); ok {
		t.Error("empty sorted set still exists")
	}
}
