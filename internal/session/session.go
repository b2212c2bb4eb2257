// Package session holds the signed-in user's tokens for the lifetime of the process
// and persists them through a pluggable TokenStore.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens is the persisted session state.
type Tokens struct {
	UserID       string `yaml:"user_id" json:"user_id"`
	AccessToken  string `yaml:"access_token" json:"access_token"`
	RefreshToken string `yaml:"refresh_token,omitempty" json:"refresh_token,omitempty"`
}

// Empty reports whether no user is signed in.
func (t Tokens) Empty() bool {
	return strings.TrimSpace(t.UserID) == "" && strings.TrimSpace(t.AccessToken) == ""
}

// TokenStore persists tokens between runs.
type TokenStore interface {
	Load(ctx context.Context) (Tokens, error)
	Save(ctx context.Context, tokens Tokens) error
	Clear(ctx context.Context) error
}

// Session is safe for concurrent use. It satisfies the transport's TokenSource.
type Session struct {
	mu     sync.RWMutex
	tokens Tokens
	store  TokenStore
}

// New creates a session backed by store. A nil store keeps tokens in memory only.
func New(store TokenStore) *Session {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Session{store: store}
}

// Restore loads previously saved tokens.
func (s *Session) Restore(ctx context.Context) error {
	tokens, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	s.mu.Lock()
	s.tokens = tokens
	s.mu.Unlock()
	return nil
}

// Set replaces the current tokens and persists them.
func (s *Session) Set(ctx context.Context, tokens Tokens) error {
	s.mu.Lock()
	if tokens.RefreshToken == "" && tokens.UserID == s.tokens.UserID {
		tokens.RefreshToken = s.tokens.RefreshToken
	}
	s.tokens = tokens
	s.mu.Unlock()
	if err := s.store.Save(ctx, tokens); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear signs the user out locally. The in-memory state is cleared even if the store fails.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.tokens = Tokens{}
	s.mu.Unlock()
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Session) Tokens() Tokens {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens
}

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens.AccessToken
}

func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens.RefreshToken
}

func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens.UserID
}

// ExpiresAt reads the exp claim of the access token without verifying its signature.
// Opaque tokens report false.
func (s *Session) ExpiresAt() (time.Time, bool) {
	return TokenExpiry(s.AccessToken())
}

// NeedsRefresh reports whether the access token expires within skew of now.
func (s *Session) NeedsRefresh(now time.Time, skew time.Duration) bool {
	if s.RefreshToken() == "" {
		return false
	}
	expiresAt, ok := s.ExpiresAt()
	if !ok {
		return false
	}
	return !now.Add(skew).Before(expiresAt)
}

// TokenExpiry extracts the exp claim from a JWT.
func TokenExpiry(token string) (time.Time, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return time.Time{}, false
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
