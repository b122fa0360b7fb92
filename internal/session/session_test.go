package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learntrack/internal/api"
	"learntrack/internal/session"
)

// fakeTokenStore is an in-memory TokenStore for tests.
type fakeTokenStore struct {
	token string
}

func (f *fakeTokenStore) Load() (string, error) { return f.token, nil }
func (f *fakeTokenStore) Save(t string) error   { f.token = t; return nil }
func (f *fakeTokenStore) Clear() error          { f.token = ""; return nil }

// authServer fakes the auth endpoints: one valid token, one profile.
func authServer(t *testing.T, validToken string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			w.Write([]byte(`{"access_token":"` + validToken + `","token_type":"bearer"}`))
		case "/api/auth/signup":
			w.Write([]byte(`{"id":1,"email":"a@b.c","username":"alice","is_active":true}`))
		case "/api/auth/me":
			if r.Header.Get("Authorization") != "Bearer "+validToken {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"detail":"Could not validate credentials"}`))
				return
			}
			w.Write([]byte(`{"id":1,"email":"a@b.c","username":"alice","is_active":true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newStore(t *testing.T, srvURL string, tokens session.TokenStore) (*session.Store, *api.Client) {
	t.Helper()
	client := api.NewClient(srvURL, 5*time.Second, nil)
	return session.New(client, tokens, nil), client
}

func TestLoginPersistsTokenAndResolvesProfile(t *testing.T) {
	srv := authServer(t, "tok-abc")
	tokens := &fakeTokenStore{}
	store, client := newStore(t, srv.URL, tokens)

	err := store.Login(context.Background(), "alice", "secret")

	require.NoError(t, err)
	assert.True(t, store.Authenticated())
	assert.Equal(t, "alice", store.User().Username)
	assert.Equal(t, "tok-abc", tokens.token)
	assert.Equal(t, "tok-abc", client.Token())
}

func TestRestoreWithValidToken(t *testing.T) {
	srv := authServer(t, "tok-abc")
	tokens := &fakeTokenStore{token: "tok-abc"}
	store, _ := newStore(t, srv.URL, tokens)

	ok, err := store.Restore(context.Background())

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "alice", store.User().Username)
}

func TestRestoreWithoutTokenIsLoggedOut(t *testing.T) {
	srv := authServer(t, "tok-abc")
	store, _ := newStore(t, srv.URL, &fakeTokenStore{})

	ok, err := store.Restore(context.Background())

	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, store.Authenticated())
}

func TestRestoreDiscardsRejectedToken(t *testing.T) {
	// An expired token is a plain logged-out state, not an error, and
	// the stale token must not linger in the keyring.
	srv := authServer(t, "tok-abc")
	tokens := &fakeTokenStore{token: "expired"}
	store, client := newStore(t, srv.URL, tokens)

	ok, err := store.Restore(context.Background())

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, tokens.token)
	assert.Empty(t, client.Token())
}

func TestSignupValidationFailsBeforeNetwork(t *testing.T) {
	// Server that fails the test if reached.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request reached server despite invalid params")
	}))
	t.Cleanup(srv.Close)
	store, _ := newStore(t, srv.URL, &fakeTokenStore{})

	tests := []struct {
		name   string
		params session.SignupParams
	}{
		{"bad email", session.SignupParams{Email: "nope", Username: "alice", Password: "hunter2hunter2"}},
		{"short username", session.SignupParams{Email: "a@b.c", Username: "al", Password: "hunter2hunter2"}},
		{"short password", session.SignupParams{Email: "a@b.c", Username: "alice", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Signup(context.Background(), tt.params)
			assert.Error(t, err)
		})
	}
}

func TestSignupLogsInAfterRegistration(t *testing.T) {
	srv := authServer(t, "tok-abc")
	tokens := &fakeTokenStore{}
	store, _ := newStore(t, srv.URL, tokens)

	err := store.Signup(context.Background(), session.SignupParams{
		Email:    "a@b.c",
		Username: "alice",
		Password: "hunter2hunter2",
	})

	require.NoError(t, err)
	assert.True(t, store.Authenticated())
	assert.Equal(t, "tok-abc", tokens.token)
}

func TestLogoutClearsEverything(t *testing.T) {
	srv := authServer(t, "tok-abc")
	tokens := &fakeTokenStore{}
	store, client := newStore(t, srv.URL, tokens)
	require.NoError(t, store.Login(context.Background(), "alice", "secret"))

	store.Logout()

	assert.False(t, store.Authenticated())
	assert.Empty(t, tokens.token)
	assert.Empty(t, client.Token())
}

func TestUnauthorizedResponsePurgesSessionAndNotifies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	}))
	t.Cleanup(srv.Close)

	tokens := &fakeTokenStore{token: "stale"}
	store, client := newStore(t, srv.URL, tokens)
	client.SetToken("stale")

	notified := false
	store.OnUnauthorized(func() {
		notified = true
		// Purge happens before the subscriber runs.
		assert.Empty(t, client.Token())
	})

	_, err := client.ListGoals(context.Background())

	require.Error(t, err)
	assert.True(t, notified)
	assert.Empty(t, tokens.token)
	assert.False(t, store.Authenticated())
}
