// Package session models an anonymous visitor session.
package session

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
	"unicode/utf8"
)

// MaxUserAgentLen is the number of user agent characters kept.
const MaxUserAgentLen = 512

// Session is an anonymous browsing session (immutable value object).
type Session struct {
	id         string
	userAgent  string
	ipHash     string
	createdAt  time.Time
	lastSeenAt time.Time
}

// New creates a Session. The client IP is never stored, only its hash.
func New(id, userAgent, clientIP string, now time.Time) (Session, error) {
	if id == "" {
		return Session{}, fmt.Errorf("session ID is required")
	}
	return Session{
		id:         id,
		userAgent:  truncate(userAgent, MaxUserAgentLen),
		ipHash:     HashIP(clientIP),
		createdAt:  now,
		lastSeenAt: now,
	}, nil
}

// Reconstruct creates a Session without validation (storage hydration).
func Reconstruct(id, userAgent, ipHash string, createdAt, lastSeenAt time.Time) Session {
	return Session{id: id, userAgent: userAgent, ipHash: ipHash, createdAt: createdAt, lastSeenAt: lastSeenAt}
}

// HashIP returns the first 16 hex characters of the SHA-256 of ip.
func HashIP(ip string) string {
	if ip == "" {
		ip = "unknown"
	}
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:])[:16]
}

// Touch returns a copy with lastSeenAt moved to now.
func (s Session) Touch(now time.Time) Session {
	s.lastSeenAt = now
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// UserAgent returns the truncated client user agent.
func (s *Session) UserAgent() string { return s.userAgent }

// IPHash returns the hashed client address.
func (s *Session) IPHash() string { return s.ipHash }

// CreatedAt returns the creation time.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// LastSeenAt returns the last activity time.
func (s *Session) LastSeenAt() time.Time { return s.lastSeenAt }

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
