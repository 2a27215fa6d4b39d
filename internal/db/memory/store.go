// Package memory implements db.Store in process memory for local runs and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fmd-labs/fmd/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

type entry struct {
	value    []byte
	expireAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expireAt.IsZero() && now.After(e.expireAt)
}

// Store keeps keys and sorted sets in maps guarded by a single mutex.
// Expired keys are dropped lazily on access.
type Store struct {
	mu    sync.Mutex
	kv    map[string]entry
	zsets map[string]map[string]float64
	now   func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		kv:    make(map[string]entry),
		zsets: make(map[string]map[string]float64),
		now:   time.Now,
	}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() {}

// WaitForReady returns immediately.
func (s *Store) WaitForReady(context.Context, time.Duration) error { return nil }

func (s *Store) lookup(key string) (entry, bool) {
	e, ok := s.kv[key]
	if !ok {
		return entry{}, false
	}
	if e.expired(s.now()) {
		delete(s.kv, key)
		return entry{}, false
	}
	return e, true
}

// Get retrieves a value by key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lookup(key)
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return clone(e.value), nil
}

// MGet returns values in key order; missing keys yield nil.
func (s *Store) MGet(_ context.Context, keys []string) ([][]byte, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]byte, len(keys))
	for i, k := range keys {
		if e, ok := s.lookup(k); ok {
			out[i] = clone(e.value)
		}
	}
	return out, nil
}

// Set stores a value without expiry.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kv[key] = entry{value: clone(value)}
	return nil
}

// SetWithTTL stores a value that expires after ttl.
func (s *Store) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kv[key] = entry{value: clone(value), expireAt: s.now().Add(ttl)}
	return nil
}

// SetNX stores a value only if the key is absent or expired.
func (s *Store) SetNX(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lookup(key); ok {
		return false, nil
	}
	s.kv[key] = entry{value: clone(value), expireAt: s.now().Add(ttl)}
	return true, nil
}

// Del removes a key or sorted set.
func (s *Store) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.kv, key)
	delete(s.zsets, key)
	return nil
}

// Exists checks whether a key or sorted set exists.
func (s *Store) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lookup(key); ok {
		return true, nil
	}
	_, ok := s.zsets[key]
	return ok, nil
}

// ZAdd adds or updates sorted set members.
func (s *Store) ZAdd(_ context.Context, key string, members ...db.ZMember) error {
	if len(members) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	z, ok := s.zsets[key]
	if !ok {
		z = make(map[string]float64, len(members))
		s.zsets[key] = z
	}
	for _, m := range members {
		z[m.Member] = m.Score
	}
	return nil
}

// ZRevRange returns members by descending score. Ties order by member
// descending, matching Valkey's reverse lexicographic rule.
func (s *Store) ZRevRange(_ context.Context, key string, start, stop int64) ([]string, error) {
	s.mu.Lock()
	z := s.zsets[key]
	members := make([]db.ZMember, 0, len(z))
	for m, sc := range z {
		members = append(members, db.ZMember{Member: m, Score: sc})
	}
	s.mu.Unlock()

	sort.Slice(members, func(i, j int) bool {
		if members[i].Score != members[j].Score {
			return members[i].Score > members[j].Score
		}
		return members[i].Member > members[j].Member
	})

	n := int64(len(members))
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop {
		return []string{}, nil
	}

	out := make([]string, 0, stop-start+1)
	for _, m := range members[start : stop+1] {
		out = append(out, m.Member)
	}
	return out, nil
}

// ZRem removes members from a sorted set.
func (s *Store) ZRem(_ context.Context, key string, members ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	z, ok := s.zsets[key]
	if !ok {
		return nil
	}
	for _, m := range members {
		delete(z, m)
	}
	if len(z) == 0 {
		delete(s.zsets, key)
	}
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
