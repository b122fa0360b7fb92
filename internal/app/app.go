package app

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"learntrack/internal/api"
	"learntrack/internal/keys"
	"learntrack/internal/model"
	"learntrack/internal/session"
	"learntrack/internal/ui"
	"learntrack/internal/ui/dashboard"
	"learntrack/internal/ui/goaldetail"
	"learntrack/internal/ui/goalform"
	"learntrack/internal/ui/goallist"
	helpview "learntrack/internal/ui/help"
	"learntrack/internal/ui/login"
	"learntrack/internal/ui/taskdetail"
	"learntrack/internal/ui/taskform"
	"learntrack/internal/ui/tasklist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewDashboard
	ViewGoalList
	ViewGoalDetail
	ViewTaskList
	ViewTaskDetail
	ViewGoalForm
	ViewTaskForm
	ViewHelp
)

// sessionRestoredMsg reports the outcome of resuming from a persisted
// token at startup.
type sessionRestoredMsg struct {
	ok  bool
	err error
}

// authResultMsg reports the outcome of a login or signup attempt.
type authResultMsg struct {
	err error
}

// unauthorizedMsg is delivered when any request was rejected with a
// stale token. The session has already been purged.
type unauthorizedMsg struct{}

// Model is the root Bubble Tea model that manages view routing, layout,
// and the session lifecycle.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	client       *api.Client
	session      *session.Store
	keys         *keys.KeyMap
	log          *zap.SugaredLogger

	loginView  login.Model
	dashboard  dashboard.Model
	goalList   goallist.Model
	goalDetail goaldetail.Model
	taskList   tasklist.Model
	taskDetail taskdetail.Model
	goalForm   goalform.Model
	taskForm   taskform.Model
	helpView   helpview.Model

	// taskDetailReturn and formReturn remember where esc should land
	// after a detail screen or form is dismissed.
	taskDetailReturn ViewState
	formReturn       ViewState

	// unauthorized carries 401 events from the transport goroutines into
	// the Bubble Tea loop. Buffered so the notifier never blocks.
	unauthorized chan struct{}

	ready bool
}

// New creates the root application model.
func New(client *api.Client, sess *session.Store, cfg model.AppConfig, log *zap.SugaredLogger) Model {
	k := keys.DefaultKeyMap()

	m := Model{
		currentView:  ViewLogin,
		client:       client,
		session:      sess,
		keys:         k,
		log:          log,
		loginView:    login.New(80, 24),
		dashboard:    dashboard.New(client, k, cfg.ProgressDays, 80, 24),
		goalList:     goallist.New(client, k, 80, 24),
		goalDetail:   goaldetail.New(client, k, 80, 24),
		taskList:     tasklist.New(client, k, 80, 24),
		taskDetail:   taskdetail.New(client, k, 80, 24),
		goalForm:     goalform.New(80, 24),
		taskForm:     taskform.New(80, 24),
		helpView:     helpview.New(k, 80, 24),
		unauthorized: make(chan struct{}, 1),
	}

	sess.OnUnauthorized(func() {
		select {
		case m.unauthorized <- struct{}{}:
		default:
		}
	})

	return m
}

// Init attempts to resume a persisted session and starts listening for
// authentication failures.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.restoreSession(), m.waitForUnauthorized())
}

// restoreSession tries to resume from the keyring token.
func (m Model) restoreSession() tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		ok, err := sess.Restore(context.Background())
		return sessionRestoredMsg{ok: ok, err: err}
	}
}

// waitForUnauthorized blocks until the next 401 event. The handler
// re-issues it so the subscription stays alive for the whole run.
func (m Model) waitForUnauthorized() tea.Cmd {
	ch := m.unauthorized
	return func() tea.Msg {
		<-ch
		return unauthorizedMsg{}
	}
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w := m.layout.ContentWidth()
		h := m.layout.ContentHeight()
		m.loginView.SetSize(w, h)
		m.dashboard.SetSize(w, h)
		m.goalList.SetSize(w, h)
		m.goalDetail.SetSize(w, h)
		m.taskList.SetSize(w, h)
		m.taskDetail.SetSize(w, h)
		m.goalForm.SetSize(w, h)
		m.taskForm.SetSize(w, h)
		m.helpView.SetSize(w, h)
		// Forward to the active view so huh forms can re-layout.
		return m.updateActiveView(msg)

	case sessionRestoredMsg:
		if msg.err != nil {
			m.log.Warnw("session restore failed", "error", msg.err)
		}
		if msg.ok {
			m.currentView = ViewDashboard
			return m, m.dashboard.Load()
		}
		m.currentView = ViewLogin
		return m, m.loginView.Start()

	case unauthorizedMsg:
		m.currentView = ViewLogin
		m.loginView.Start()
		cmd := m.loginView.SetError(
			errors.New("your session expired, please sign in again"),
		)
		return m, tea.Batch(cmd, m.waitForUnauthorized())

	case authResultMsg:
		if msg.err != nil {
			return m, m.loginView.SetError(msg.err)
		}
		m.currentView = ViewDashboard
		return m, m.dashboard.Load()

	case login.LoginSubmitMsg:
		return m, m.doLogin(msg.Username, msg.Password)

	case login.SignupSubmitMsg:
		return m, m.doSignup(msg.Params)

	case dashboard.OpenGoalMsg:
		return m.openGoalDetail(msg.ID)

	case dashboard.OpenTaskMsg:
		return m.openTaskDetail(msg.ID, ViewDashboard)

	case goallist.OpenGoalMsg:
		return m.openGoalDetail(msg.ID)

	case goallist.NewGoalMsg:
		m.formReturn = ViewGoalList
		m.currentView = ViewGoalForm
		return m, m.goalForm.StartCreate()

	case goallist.EditGoalMsg:
		m.formReturn = ViewGoalList
		m.currentView = ViewGoalForm
		return m, m.goalForm.StartEdit(msg.Goal)

	case goaldetail.BackMsg:
		m.currentView = ViewGoalList
		return m, m.goalList.LoadGoals()

	case goaldetail.GoalDeletedMsg:
		m.currentView = ViewGoalList
		return m, m.goalList.LoadGoals()

	case goaldetail.OpenTaskMsg:
		return m.openTaskDetail(msg.ID, ViewGoalDetail)

	case goaldetail.NewTaskMsg:
		m.formReturn = ViewGoalDetail
		m.currentView = ViewTaskForm
		return m, m.taskForm.StartCreate(msg.GoalID)

	case goaldetail.EditGoalMsg:
		m.formReturn = ViewGoalDetail
		m.currentView = ViewGoalForm
		return m, m.goalForm.StartEdit(msg.Goal)

	case tasklist.OpenTaskMsg:
		return m.openTaskDetail(msg.ID, ViewTaskList)

	case tasklist.NewTaskMsg:
		m.formReturn = ViewTaskList
		m.currentView = ViewTaskForm
		return m, m.prepareTaskForm(taskFormCreate, model.Task{})

	case tasklist.EditTaskMsg:
		m.formReturn = ViewTaskList
		m.currentView = ViewTaskForm
		return m, m.prepareTaskForm(taskFormEdit, msg.Task)

	case taskdetail.BackMsg:
		return m.returnFromTaskDetail()

	case taskdetail.TaskDeletedMsg:
		return m.returnFromTaskDetail()

	case taskdetail.EditTaskMsg:
		m.formReturn = ViewTaskDetail
		m.currentView = ViewTaskForm
		return m, m.prepareTaskForm(taskFormEdit, msg.Task)

	case formGoalsLoadedMsg:
		return m.startPendingTaskForm(msg)

	case goalform.GoalCreatedMsg:
		return m, m.createGoal(msg.Goal)

	case goalform.GoalUpdatedMsg:
		return m, m.updateGoal(msg.Goal)

	case goalform.CancelMsg:
		return m.returnFromForm()

	case taskform.TaskCreatedMsg:
		return m, m.createTask(msg.Task)

	case taskform.TaskUpdatedMsg:
		return m, m.updateTask(msg.Task)

	case taskform.CancelMsg:
		return m.returnFromForm()

	case goalMutationMsg:
		if msg.err != nil {
			return m, m.goalForm.SetError(msg.err)
		}
		return m.returnFromForm()

	case taskMutationMsg:
		if msg.err != nil {
			return m, m.taskForm.SetError(msg.err)
		}
		return m.returnFromForm()

	case tea.KeyMsg:
		if handled, mdl, cmd := m.handleGlobalKeys(msg); handled {
			return mdl, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKeys processes keys that work across screens. Forms, the
// login screen, and focused text inputs keep their keystrokes.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return true, m, tea.Quit
	}

	if m.inputCapturing() {
		return false, m, nil
	}

	switch msg.String() {
	case "q":
		return true, m, tea.Quit

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return true, m, nil

	case "D":
		m.currentView = ViewDashboard
		return true, m, m.dashboard.Load()

	case "G":
		m.currentView = ViewGoalList
		return true, m, m.goalList.LoadGoals()

	case "T":
		m.currentView = ViewTaskList
		return true, m, m.taskList.Init()
	}

	return false, m, nil
}

// inputCapturing reports whether the active view owns all keystrokes.
func (m Model) inputCapturing() bool {
	switch m.currentView {
	case ViewLogin, ViewGoalForm, ViewTaskForm:
		return true
	case ViewGoalList:
		return m.goalList.InputActive()
	case ViewTaskList:
		return m.taskList.InputActive()
	}
	return false
}

// openGoalDetail navigates to the goal detail screen.
func (m Model) openGoalDetail(goalID int64) (tea.Model, tea.Cmd) {
	m.currentView = ViewGoalDetail
	return m, m.goalDetail.Load(goalID)
}

// openTaskDetail navigates to the task detail screen, remembering where
// to return on esc.
func (m Model) openTaskDetail(taskID int64, returnTo ViewState) (tea.Model, tea.Cmd) {
	m.taskDetailReturn = returnTo
	m.currentView = ViewTaskDetail
	return m, m.taskDetail.Load(taskID)
}

// returnFromTaskDetail navigates back from the task detail screen and
// reloads the destination so mutations are reflected.
func (m Model) returnFromTaskDetail() (tea.Model, tea.Cmd) {
	m.currentView = m.taskDetailReturn
	switch m.taskDetailReturn {
	case ViewDashboard:
		return m, m.dashboard.Load()
	case ViewGoalDetail:
		return m, m.goalDetail.Reload()
	default:
		return m, m.taskList.Init()
	}
}

// returnFromForm navigates back from a form and reloads the destination.
func (m Model) returnFromForm() (tea.Model, tea.Cmd) {
	m.currentView = m.formReturn
	switch m.formReturn {
	case ViewGoalDetail:
		return m, m.goalDetail.Reload()
	case ViewTaskDetail:
		return m, m.taskDetail.Reload()
	case ViewTaskList:
		return m, m.taskList.Init()
	default:
		return m, m.goalList.LoadGoals()
	}
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case ViewGoalList:
		m.goalList, cmd = m.goalList.Update(msg)
	case ViewGoalDetail:
		m.goalDetail, cmd = m.goalDetail.Update(msg)
	case ViewTaskList:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewTaskDetail:
		m.taskDetail, cmd = m.taskDetail.Update(msg)
	case ViewGoalForm:
		m.goalForm, cmd = m.goalForm.Update(msg)
	case ViewTaskForm:
		m.taskForm, cmd = m.taskForm.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.currentView == ViewLogin {
		return m.loginView.View()
	}

	identity := ""
	if u := m.session.User(); u != nil {
		identity = u.DisplayName()
	}

	header := m.layout.RenderHeader("LearnTrack", identity)
	banner := m.layout.RenderBanner(m.activeBanner())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, banner, content, statusBar)
}

// renderContent returns the rendered string for the current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDashboard:
		return m.dashboard.View()
	case ViewGoalList:
		return m.goalList.View()
	case ViewGoalDetail:
		return m.goalDetail.View()
	case ViewTaskList:
		return m.taskList.View()
	case ViewTaskDetail:
		return m.taskDetail.View()
	case ViewGoalForm:
		return m.goalForm.View()
	case ViewTaskForm:
		return m.taskForm.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// activeBanner returns the error banner of the current view, if any.
func (m Model) activeBanner() string {
	switch m.currentView {
	case ViewDashboard:
		return m.dashboard.Banner()
	case ViewGoalList:
		return m.goalList.Banner()
	case ViewGoalDetail:
		return m.goalDetail.Banner()
	case ViewTaskList:
		return m.taskList.Banner()
	case ViewTaskDetail:
		return m.taskDetail.Banner()
	default:
		return ""
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	global := " | D dashboard | G goals | T tasks | ? help | q quit"

	switch m.currentView {
	case ViewHelp:
		return "? close help"
	case ViewGoalForm, ViewTaskForm:
		return "enter next field | esc cancel"
	case ViewDashboard:
		return m.dashboard.Hints() + global
	case ViewGoalList:
		return m.goalList.Hints() + global
	case ViewGoalDetail:
		return m.goalDetail.Hints()
	case ViewTaskList:
		return m.taskList.Hints() + global
	case ViewTaskDetail:
		return m.taskDetail.Hints()
	default:
		return ""
	}
}
