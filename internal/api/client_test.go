package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learntrack/internal/api"
	"learntrack/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL, 5*time.Second, nil)
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	})
	client.SetToken("tok-123")

	_, err := client.ListGoals(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClientOmitsAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"access_token":"t","token_type":"bearer"}`))
	})

	_, err := client.Login(context.Background(), "alice", "secret")

	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClientSurfacesServerDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"Email already registered"}`))
	})

	_, err := client.Signup(context.Background(), api.SignupRequest{
		Email: "a@b.c", Username: "alice", Password: "hunter2hunter2",
	})

	require.Error(t, err)
	assert.Equal(t, "Email already registered", err.Error())

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestClient401MatchesSentinelAndFiresCallback(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	})

	fired := 0
	client.OnUnauthorized(func() { fired++ })
	client.SetToken("stale")

	_, err := client.ListGoals(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrUnauthorized))
	assert.Equal(t, 1, fired)
}

func TestClient401WithoutTokenSkipsCallback(t *testing.T) {
	// A rejected login is a bad password, not an expired session; the
	// global redirect must not fire.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Incorrect username or password"}`))
	})

	fired := 0
	client.OnUnauthorized(func() { fired++ })

	_, err := client.Login(context.Background(), "alice", "wrong")

	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrUnauthorized))
	assert.Zero(t, fired)
}

func TestIsNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Goal not found"}`))
	})
	client.SetToken("tok")

	_, err := client.GetGoal(context.Background(), 42)

	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))
	assert.False(t, api.IsNotFound(errors.New("other")))
}

func TestGoalUpdateSendsOnlySetFields(t *testing.T) {
	var body map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{"id":1,"title":"x","progress_percentage":100}`))
	})
	client.SetToken("tok")

	progress := 100
	_, err := client.UpdateGoal(context.Background(), 1, api.GoalUpdate{
		Progress: &progress,
	})

	require.NoError(t, err)
	assert.Equal(t, float64(100), body["progress_percentage"])
	assert.NotContains(t, body, "title")
	assert.NotContains(t, body, "deadline")
}

func TestGoalUpdateZeroProgressStillSerialized(t *testing.T) {
	// Resetting a goal to 0% must not be dropped by omitempty.
	var body map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{"id":1,"title":"x","progress_percentage":0}`))
	})
	client.SetToken("tok")

	progress := 0
	_, err := client.UpdateGoal(context.Background(), 1, api.GoalUpdate{
		Progress: &progress,
	})

	require.NoError(t, err)
	assert.Contains(t, body, "progress_percentage")
	assert.Equal(t, float64(0), body["progress_percentage"])
}

func TestProgressPassesDaysParam(t *testing.T) {
	var gotPath, gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"progress_data":[],"total_days":90}`))
	})
	client.SetToken("tok")

	series, err := client.Progress(context.Background(), 90)

	require.NoError(t, err)
	assert.Equal(t, "/api/dashboard/progress", gotPath)
	assert.Equal(t, "days=90", gotQuery)
	assert.Equal(t, 90, series.TotalDays)
}

func TestDeleteHandlesNoContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})
	client.SetToken("tok")

	err := client.DeleteTask(context.Background(), 7)

	assert.NoError(t, err)
}

func TestTaskCreateLeavesStatusToTheServer(t *testing.T) {
	// The create payload carries no status; the server starts every new
	// task at not_started.
	var body map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{"id":9,"title":"read the tour","goal_id":5,"status":"not_started"}`))
	})
	client.SetToken("tok")

	task, err := client.CreateTask(context.Background(), api.TaskCreate{
		Title:  "read the tour",
		GoalID: 5,
	})

	require.NoError(t, err)
	assert.NotContains(t, body, "status")
	assert.Equal(t, model.TaskNotStarted, task.Status)
}

func TestListTasksByGoalPath(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[]`))
	})
	client.SetToken("tok")

	_, err := client.ListTasksByGoal(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, "/api/tasks/goal/5", gotPath)
}
