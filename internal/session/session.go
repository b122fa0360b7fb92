// Package session holds the current user identity and bearer token,
// persists the token across runs, and exposes an explicit callback for
// authentication failures so the navigation layer can redirect to login.
package session

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"learntrack/internal/api"
	"learntrack/internal/model"
)

// TokenStore abstracts token persistence. The production implementation
// is the system keyring; tests use an in-memory fake.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// SignupParams carries the fields for account registration. Validation
// happens client-side before any request is sent.
type SignupParams struct {
	Email     string `validate:"required,email"`
	Username  string `validate:"required,min=3"`
	Password  string `validate:"required,min=8"`
	FirstName string
	LastName  string
}

// Store is the session store: current user, bearer token, and the
// unauthorized-redirect subscription.
type Store struct {
	client         *api.Client
	tokens         TokenStore
	log            *zap.SugaredLogger
	validate       *validator.Validate
	user           *model.User
	onUnauthorized func()
}

// New creates a session store over the given API client and token store.
// It wires the client's 401 interception to purge the session before
// notifying any subscriber.
func New(client *api.Client, tokens TokenStore, log *zap.SugaredLogger) *Store {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s := &Store{
		client:   client,
		tokens:   tokens,
		log:      log,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	client.OnUnauthorized(func() {
		s.purge()
		if s.onUnauthorized != nil {
			s.onUnauthorized()
		}
	})
	return s
}

// User returns the current profile, or nil when unauthenticated.
func (s *Store) User() *model.User {
	return s.user
}

// Authenticated reports whether a profile has been resolved.
func (s *Store) Authenticated() bool {
	return s.user != nil
}

// OnUnauthorized subscribes fn to authentication failures. By the time
// fn runs the token and identity have already been purged.
func (s *Store) OnUnauthorized(fn func()) {
	s.onUnauthorized = fn
}

// Login exchanges credentials for a bearer token, persists it, and
// fetches the profile. A server rejection propagates unchanged.
func (s *Store) Login(ctx context.Context, username, password string) error {
	token, err := s.client.Login(ctx, username, password)
	if err != nil {
		return err
	}

	if err := s.tokens.Save(token); err != nil {
		// A keyring failure should not block the session; the user just
		// has to log in again next run.
		s.log.Warnw("persisting token failed", "error", err)
	}
	s.client.SetToken(token)

	user, err := s.client.Me(ctx)
	if err != nil {
		return fmt.Errorf("fetching profile: %w", err)
	}
	s.user = user
	s.log.Infow("logged in", "username", user.Username)
	return nil
}

// Signup registers a new account and then logs in with the same
// credentials. Client-side validation failures never reach the server.
func (s *Store) Signup(ctx context.Context, p SignupParams) error {
	if err := s.validate.Struct(p); err != nil {
		return fmt.Errorf("invalid signup details: %w", err)
	}

	_, err := s.client.Signup(ctx, api.SignupRequest{
		Email:     p.Email,
		Username:  p.Username,
		Password:  p.Password,
		FirstName: p.FirstName,
		LastName:  p.LastName,
	})
	if err != nil {
		return err
	}

	return s.Login(ctx, p.Username, p.Password)
}

// Logout clears the persisted token and in-memory identity
// unconditionally. There is no server call and no failure mode the
// caller has to handle.
func (s *Store) Logout() {
	if err := s.tokens.Clear(); err != nil {
		s.log.Warnw("clearing token failed", "error", err)
	}
	s.client.SetToken("")
	s.user = nil
}

// Restore attempts to resume a session from a persisted token. It
// returns true when a profile was resolved. An expired or invalid token
// is discarded and reported as a plain logged-out state, not an error.
func (s *Store) Restore(ctx context.Context) (bool, error) {
	token, err := s.tokens.Load()
	if err != nil {
		return false, fmt.Errorf("loading persisted token: %w", err)
	}
	if token == "" {
		return false, nil
	}

	s.client.SetToken(token)
	user, err := s.client.Me(ctx)
	if err != nil {
		s.log.Infow("persisted token rejected, discarding", "error", err)
		s.purge()
		return false, nil
	}

	s.user = user
	return true, nil
}

// purge drops the token and identity without touching the server.
func (s *Store) purge() {
	if err := s.tokens.Clear(); err != nil {
		s.log.Warnw("clearing token failed", "error", err)
	}
	s.client.SetToken("")
	s.user = nil
}
