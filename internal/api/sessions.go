package api

import (
	"crypto/subtle"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionCookie names the cookie carrying the admin session token.
const SessionCookie = "radreport_admin"

// Sessions issues and checks admin session tokens. Tokens live in memory
// only; a restart signs every admin out.
type Sessions struct {
	password string
	ttl      time.Duration
	now      func() time.Time

	mu     sync.Mutex
	tokens map[string]time.Time
}

// NewSessions returns a session table accepting password.
func NewSessions(password string, ttl time.Duration) *Sessions {
	return &Sessions{
		password: password,
		ttl:      ttl,
		now:      time.Now,
		tokens:   make(map[string]time.Time),
	}
}

// Login returns a fresh token when password matches.
func (s *Sessions) Login(password string) (string, bool) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		return "", false
	}
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	s.tokens[token] = s.now().Add(s.ttl)
	return token, true
}

// Valid reports whether token names a live session.
func (s *Sessions) Valid(token string) bool {
	if token == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.tokens[token]
	if !ok {
		return false
	}
	if !s.now().Before(exp) {
		delete(s.tokens, token)
		return false
	}
	return true
}

// Logout ends the session named by token.
func (s *Sessions) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

// TTL is the lifetime of a new session.
func (s *Sessions) TTL() time.Duration {
	return s.ttl
}

func (s *Sessions) pruneLocked() {
	now := s.now()
	for tok, exp := range s.tokens {
		if !now.Before(exp) {
			delete(s.tokens, tok)
		}
	}
}
