package store

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// TokenKey is the durable storage key of the admin session token.
const TokenKey = "adminToken"

// TokenStorage is durable key-value storage that survives a restart.
// Get returns "" with a nil error when the key is absent.
type TokenStorage interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Authenticator exchanges admin credentials for an opaque session token.
// Implementations return ErrInvalidCredentials for rejected credentials and
// ErrBackendUnavailable when the check could not be made.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (string, error)
}

// AuthStore holds the single admin session. There are no roles or
// concurrent identities: a non-empty token means an authenticated admin.
type AuthStore struct {
	mu      sync.RWMutex
	token   string
	auth    Authenticator
	storage TokenStorage
	events  *Notifier
}

func NewAuthStore(auth Authenticator, storage TokenStorage, opts ...Option) *AuthStore {
	o := buildOptions(opts)
	return &AuthStore{auth: auth, storage: storage, events: o.events}
}

// Login reports whether the credentials were accepted. On failure the
// session is left untouched and err tells a credential rejection
// (ErrInvalidCredentials) apart from an unreachable backend (ErrBackendUnavailable).
func (s *AuthStore) Login(ctx context.Context, email, password string) (bool, error) {
	token, err := s.auth.Authenticate(ctx, email, password)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) && !errors.Is(err, ErrBackendUnavailable) {
			err = fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
		}
		zap.S().Warnf("admin login failed for %q: %v", email, err)
		return false, err
	}
	if token == "" {
		return false, fmt.Errorf("%w: empty token in login response", ErrBackendUnavailable)
	}
	if err := s.storage.Set(TokenKey, token); err != nil {
		return false, fmt.Errorf("persist admin session: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	s.events.publish(TopicSession, OpLogin, "")
	zap.S().Infof("admin session started for %q", email)
	return true, nil
}

// Logout always succeeds. A storage failure is logged; the in-memory session is cleared regardless.
func (s *AuthStore) Logout() {
	if err := s.storage.Delete(TokenKey); err != nil {
		zap.S().Errorf("remove stored admin session: %v", err)
	}
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	s.events.publish(TopicSession, OpLogout, "")
}

// RestoreSession loads a previously stored token. It is called once at
// start-up and makes no network call; a stale token is only discovered when
// a backend rejects it.
func (s *AuthStore) RestoreSession() {
	token, err := s.storage.Get(TokenKey)
	if err != nil {
		zap.S().Errorf("read stored admin session: %v", err)
		return
	}
	if token == "" {
		return
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	s.events.publish(TopicSession, OpLogin, "")
}

func (s *AuthStore) IsAuthenticated() bool {
	return s.Token() != ""
}

// Holds reports whether token is the current session token.
func (s *AuthStore) Holds(token string) bool {
	current := s.Token()
	return current != "" && subtle.ConstantTimeCompare([]byte(token), []byte(current)) == 1
}

func (s *AuthStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}
