// Package auth holds the in-memory session store for refresh tokens.
// Accounts themselves come from the environment (a facility has one
// operator and optionally one read-only viewer), so there is no user
// table; only issued refresh tokens need tracking, and they live for
// the process lifetime by design.
package auth

import (
	"sync"
	"time"
)

// session is the server-side record of one issued refresh token.
type session struct {
	subject string    // account login the token was issued to
	role    string    // role captured at login
	exp     time.Time // UTC expiry
}

// TokenStore maps SHA-256 hashes of raw refresh tokens to their
// sessions.  Only hashes enter the store; the raw token exists solely
// on the client.  All methods are safe for concurrent handlers.
type TokenStore struct {
	mu       sync.Mutex
	sessions map[string]session
}

// NewTokenStore returns an empty store.
func NewTokenStore() *TokenStore {
	return &TokenStore{sessions: make(map[string]session)}
}

// Store records a refresh token hash for the given account and role.
func (s *TokenStore) Store(hash, subject, role string, exp time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[hash] = session{subject: subject, role: role, exp: exp}
}

// Consume validates a refresh token hash and removes it, returning the
// account it belonged to.  Removal makes rotation atomic: a raw token
// can be exchanged exactly once.  Expired or unknown hashes return
// ok=false.
func (s *TokenStore) Consume(hash string) (subject, role string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, found := s.sessions[hash]
	if !found {
		return "", "", false
	}
	delete(s.sessions, hash)
	if time.Now().UTC().After(sess.exp) {
		return "", "", false
	}
	return sess.subject, sess.role, true
}

// Delete removes a refresh token hash, if present.  Used by logout;
// deleting an unknown hash is not an error.
func (s *TokenStore) Delete(hash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, hash)
}

// Len reports the number of live sessions (expired ones included until
// they are consumed).
func (s *TokenStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
