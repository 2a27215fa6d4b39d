package session

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	domsession "github.com/fmd-labs/fmd/internal/domain/session"
)

type sessionRow struct {
	ID         string    `json:"id"`
	UserAgent  string    `json:"user_agent,omitempty"`
	IPHash     string    `json:"ip_hash,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

func marshalSession(s domsession.Session) ([]byte, error) {
	data, err := json.Marshal(sessionRow{
		ID:         s.ID(),
		UserAgent:  s.UserAgent(),
		IPHash:     s.IPHash(),
		CreatedAt:  s.CreatedAt(),
		LastSeenAt: s.LastSeenAt(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}
	return data, nil
}

func unmarshalSession(data []byte) (domsession.Session, error) {
	var row sessionRow
	if err := json.Unmarshal(data, &row); err != nil {
		return domsession.Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	return domsession.Reconstruct(row.ID, row.UserAgent, row.IPHash, row.CreatedAt, row.LastSeenAt), nil
}
