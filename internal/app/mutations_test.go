package app

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"learntrack/internal/api"
	"learntrack/internal/model"
	"learntrack/internal/session"
)

type memTokens struct {
	token string
}

func (s *memTokens) Load() (string, error) { return s.token, nil }
func (s *memTokens) Save(tok string) error { s.token = tok; return nil }
func (s *memTokens) Clear() error          { s.token = ""; return nil }

func newTestApp(t *testing.T) Model {
	t.Helper()
	client := api.NewClient("http://localhost:1", time.Second, nil)
	sess := session.New(client, &memTokens{}, nil)
	return New(client, sess, model.AppConfig{ProgressDays: 30}, zap.NewNop().Sugar())
}

func TestTaskFormGoalFetchFailureLandsOnTaskListBanner(t *testing.T) {
	m := newTestApp(t)
	m.formReturn = ViewTaskList
	m.currentView = ViewTaskForm

	mdl, cmd := m.startPendingTaskForm(formGoalsLoadedMsg{err: errors.New("connection refused")})

	got := mdl.(Model)
	assert.Equal(t, ViewTaskList, got.currentView)
	assert.Equal(t, "connection refused", got.taskList.Banner())
	assert.Nil(t, cmd)
}

func TestTaskFormGoalFetchFailureLandsOnTaskDetailBanner(t *testing.T) {
	m := newTestApp(t)
	m.formReturn = ViewTaskDetail
	m.currentView = ViewTaskForm

	mdl, _ := m.startPendingTaskForm(formGoalsLoadedMsg{err: errors.New("connection refused")})

	got := mdl.(Model)
	assert.Equal(t, ViewTaskDetail, got.currentView)
	assert.Equal(t, "connection refused", got.taskDetail.Banner())
}
