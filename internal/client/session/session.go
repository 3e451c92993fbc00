// Package session tracks the authenticated identity of this client.
//
// A session is either anonymous (no token) or authenticated (a persisted
// Basic token built from the email and the password digest). The token and
// the client id are cached in memory so that every API call can read them
// without touching storage.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/tcgexchange/internal/client/models"
	"github.com/dmitrijs2005/tcgexchange/internal/common"
	"github.com/dmitrijs2005/tcgexchange/internal/cryptox"
	"github.com/dmitrijs2005/tcgexchange/internal/logging"
)

// Storage is the persistence the session needs. localstore.Store implements it.
type Storage interface {
	ClientID(ctx context.Context) (string, error)
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	Profile(ctx context.Context) (models.Profile, bool, error)
	SetProfile(ctx context.Context, p models.Profile) error
	ClearSession(ctx context.Context) error
}

type Session struct {
	mu         sync.RWMutex
	clientID   string
	token      string
	profile    models.Profile
	hasProfile bool
	onLogout   []func()

	storage Storage
	log     logging.Logger
}

// New loads the client id, the token and the cached profile from storage.
// The client id is created on first use.
func New(ctx context.Context, storage Storage, log logging.Logger) (*Session, error) {
	clientID, err := storage.ClientID(ctx)
	if err != nil {
		return nil, fmt.Errorf("load client id: %w", err)
	}
	token, err := storage.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	profile, ok, err := storage.Profile(ctx)
	if errors.Is(err, common.ErrLocalDataNotAvailable) {
		log.Warn(ctx, "stored profile unreadable, ignoring it", "error", err)
		profile, ok, err = models.Profile{}, false, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	return &Session{
		clientID:   clientID,
		token:      token,
		profile:    profile,
		hasProfile: ok,
		storage:    storage,
		log:        log.With("component", "session", "client_id", clientID),
	}, nil
}

// OnLogout registers fn to run after every Logout, once storage is cleared.
func (s *Session) OnLogout(fn func()) {
	s.mu.Lock()
	s.onLogout = append(s.onLogout, fn)
	s.mu.Unlock()
}

// Login hashes the password and stores the resulting token.
func (s *Session) Login(ctx context.Context, email, password string) error {
	if password == "" {
		return common.ErrEmptyCredential
	}
	return s.LoginWithDigest(ctx, email, cryptox.PasswordDigest([]byte(password)))
}

// LoginWithDigest stores a token for an already hashed password.
func (s *Session) LoginWithDigest(ctx context.Context, email, digest string) error {
	email = strings.TrimSpace(email)
	if email == "" || digest == "" {
		return common.ErrEmptyCredential
	}

	token := cryptox.EncodeCredentials(email, digest)
	if err := s.storage.SetToken(ctx, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	s.log.Debug(ctx, "logged in", "email", email)
	return nil
}

// Logout clears the token, the profile and both collections, in storage and
// in memory. The client id survives.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.storage.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.mu.Lock()
	s.token = ""
	s.profile = models.Profile{}
	s.hasProfile = false
	hooks := append([]func(){}, s.onLogout...)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}

	s.log.Debug(ctx, "logged out")
	return nil
}

func (s *Session) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Credentials decodes the token. Both fields are empty when anonymous or
// when the token cannot be decoded.
func (s *Session) Credentials() cryptox.Credentials {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" {
		return cryptox.Credentials{}
	}
	creds, err := cryptox.DecodeCredentials(token)
	if err != nil {
		return cryptox.Credentials{}
	}
	return creds
}

// BasicAuth returns the raw token, empty when anonymous.
func (s *Session) BasicAuth() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) ClientID() string {
	return s.clientID
}

// Profile returns the cached profile; ok is false when none is stored.
func (s *Session) Profile() (models.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile, s.hasProfile
}

func (s *Session) SetProfile(ctx context.Context, p models.Profile) error {
	if err := s.storage.SetProfile(ctx, p); err != nil {
		return fmt.Errorf("persist profile: %w", err)
	}

	s.mu.Lock()
	s.profile = p
	s.hasProfile = true
	s.mu.Unlock()
	return nil
}
