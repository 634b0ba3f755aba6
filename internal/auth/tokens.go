// Package auth issues and resolves the opaque session tokens handed to
// browsers after login. Tokens are random UUIDs kept server-side with an
// expiry, so revocation is a map delete.
package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a session token stays valid after issue.
const DefaultTTL = 3 * time.Hour

// ErrInvalidToken is returned when a token is unknown or expired.
var ErrInvalidToken = errors.New("invalid or expired token")

type tokenEntry struct {
	userID    int64
	expiresAt time.Time
}

// TokenStore holds live session tokens in memory. Sessions do not
// survive a server restart, which forces a fresh login.
type TokenStore struct {
	mu     sync.Mutex
	tokens map[string]tokenEntry
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenStore creates a token store. A non-positive ttl falls back to
// DefaultTTL.
func NewTokenStore(ttl time.Duration) *TokenStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &TokenStore{
		tokens: make(map[string]tokenEntry),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue creates a fresh token for the user.
func (s *TokenStore) Issue(userID int64) string {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[token] = tokenEntry{
		userID:    userID,
		expiresAt: s.now().Add(s.ttl),
	}

	return token
}

// Resolve returns the user a token belongs to. Expired tokens are
// dropped on sight.
func (s *TokenStore) Resolve(token string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.tokens[token]
	if !exists {
		return 0, ErrInvalidToken
	}

	if s.now().After(entry.expiresAt) {
		delete(s.tokens, token)

		return 0, ErrInvalidToken
	}

	return entry.userID, nil
}

// Revoke invalidates a token. Revoking an unknown token is a no-op.
func (s *TokenStore) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, token)
}
