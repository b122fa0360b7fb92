package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"learntrack/internal/api"
	"learntrack/internal/model"
	"learntrack/internal/session"
)

// taskFormMode distinguishes the two ways the task form is opened.
type taskFormMode int

const (
	taskFormCreate taskFormMode = iota
	taskFormEdit
)

// formGoalsLoadedMsg carries the goals for the task form's parent-goal
// selector, plus the pending form request.
type formGoalsLoadedMsg struct {
	goals []model.Goal
	err   error
	mode  taskFormMode
	task  model.Task
}

// goalMutationMsg reports the result of a goal create or update.
type goalMutationMsg struct {
	err error
}

// taskMutationMsg reports the result of a task create or update.
type taskMutationMsg struct {
	err error
}

// doLogin exchanges credentials for a session.
func (m Model) doLogin(username, password string) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		err := sess.Login(context.Background(), username, password)
		return authResultMsg{err: err}
	}
}

// doSignup registers an account and logs in.
func (m Model) doSignup(params session.SignupParams) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		err := sess.Signup(context.Background(), params)
		return authResultMsg{err: err}
	}
}

// prepareTaskForm fetches the goal collection before opening the task
// form, so the parent-goal selector has options.
func (m Model) prepareTaskForm(mode taskFormMode, task model.Task) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		goals, err := c.ListGoals(context.Background())
		return formGoalsLoadedMsg{goals: goals, err: err, mode: mode, task: task}
	}
}

// startPendingTaskForm opens the task form once its goal options are in.
func (m Model) startPendingTaskForm(msg formGoalsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// Without goals there is nothing to attach a task to. Fall back
		// to the opener and show the failure in its banner.
		m.currentView = m.formReturn
		if m.formReturn == ViewTaskDetail {
			m.taskDetail.ShowError(msg.err)
		} else {
			m.taskList.ShowError(msg.err)
		}
		return m, nil
	}
	m.taskForm.SetGoals(msg.goals)
	if msg.mode == taskFormEdit {
		return m, m.taskForm.StartEdit(msg.task)
	}
	return m, m.taskForm.StartCreate(0)
}

// createGoal persists a new goal from a submitted form draft.
func (m Model) createGoal(goal model.Goal) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		_, err := c.CreateGoal(context.Background(), api.GoalCreate{
			Title:       goal.Title,
			Description: goal.Description,
			Category:    goal.Category,
			Priority:    goal.Priority,
			Deadline:    goal.Deadline,
		})
		return goalMutationMsg{err: err}
	}
}

// updateGoal persists an edited goal. The form submits a full draft of
// the editable fields; progress is never among them, it stays derived
// server-side and only the toggle-complete action overrides it.
func (m Model) updateGoal(goal model.Goal) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		update := api.GoalUpdate{
			Title:       &goal.Title,
			Description: &goal.Description,
			Category:    &goal.Category,
			Priority:    &goal.Priority,
			Deadline:    goal.Deadline,
		}
		_, err := c.UpdateGoal(context.Background(), goal.ID, update)
		return goalMutationMsg{err: err}
	}
}

// createTask persists a new task from a submitted form draft.
func (m Model) createTask(task model.Task) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		_, err := c.CreateTask(context.Background(), api.TaskCreate{
			Title:          task.Title,
			Description:    task.Description,
			GoalID:         task.GoalID,
			Priority:       task.Priority,
			DueDate:        task.DueDate,
			EstimatedHours: task.EstimatedHours,
		})
		return taskMutationMsg{err: err}
	}
}

// updateTask persists an edited task, including a possible status
// change and goal reassignment.
func (m Model) updateTask(task model.Task) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		update := api.TaskUpdate{
			Title:          &task.Title,
			Description:    &task.Description,
			GoalID:         &task.GoalID,
			Priority:       &task.Priority,
			Status:         &task.Status,
			DueDate:        task.DueDate,
			EstimatedHours: task.EstimatedHours,
		}
		_, err := c.UpdateTask(context.Background(), task.ID, update)
		return taskMutationMsg{err: err}
	}
}
