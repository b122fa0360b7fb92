package login

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"learntrack/internal/session"
	"learntrack/internal/theme"
	"learntrack/internal/ui"
)

// LoginSubmitMsg carries submitted credentials to the parent.
type LoginSubmitMsg struct {
	Username string
	Password string
}

// SignupSubmitMsg carries a submitted registration to the parent.
type SignupSubmitMsg struct {
	Params session.SignupParams
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	username  string
	password  string
	email     string
	firstName string
	lastName  string
}

// Model is the authentication screen. It starts in login mode and
// toggles to signup with ctrl+s.
type Model struct {
	form       *huh.Form
	fb         *formBindings
	signupMode bool
	busy       bool
	errText    string
	width      int
	height     int
}

// New creates a new login model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the login form with a blank draft.
func (m *Model) Start() tea.Cmd {
	m.signupMode = false
	m.busy = false
	m.errText = ""
	*m.fb = formBindings{}
	m.form = m.buildForm()
	return m.form.Init()
}

// SetError shows a rejected attempt above the form. The draft is kept
// so the user can correct and resubmit.
func (m *Model) SetError(err error) tea.Cmd {
	m.busy = false
	m.errText = err.Error()
	m.fb.password = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the authentication screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "ctrl+s" {
		m.signupMode = !m.signupMode
		m.errText = ""
		m.form = m.buildForm()
		return m, m.form.Init()
	}

	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.busy = true
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		// There is nowhere to go back to; restart the form instead.
		m.form = m.buildForm()
		return m, m.form.Init()
	}

	return m, cmd
}

// View renders the authentication screen.
func (m Model) View() string {
	if m.busy {
		text := "Signing in..."
		if m.signupMode {
			text = "Creating account..."
		}
		return ui.CenterStyle(m.width, m.height).Render(text)
	}

	if m.form == nil {
		return ""
	}

	titleText := "Sign in to LearnTrack"
	toggleHint := "ctrl+s to create an account instead"
	if m.signupMode {
		titleText = "Create a LearnTrack account"
		toggleHint = "ctrl+s to sign in instead"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n"
	if m.errText != "" {
		content += theme.OverdueStyle.Render(m.errText) + "\n\n"
	}
	content += m.form.View()
	content += "\n" + theme.DimmedStyle.Render(toggleHint)

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	var fields []huh.Field

	if m.signupMode {
		fields = append(fields,
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.fb.email).
				Validate(validateRequired("Email")),
		)
	}

	fields = append(fields,
		huh.NewInput().
			Title("Username").
			Value(&m.fb.username).
			Validate(validateRequired("Username")),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&m.fb.password).
			Validate(m.validatePassword),
	)

	if m.signupMode {
		fields = append(fields,
			huh.NewInput().
				Title("First Name").
				Placeholder("optional").
				Value(&m.fb.firstName),
			huh.NewInput().
				Title("Last Name").
				Placeholder("optional").
				Value(&m.fb.lastName),
		)
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	if m.signupMode {
		params := session.SignupParams{
			Email:     strings.TrimSpace(m.fb.email),
			Username:  strings.TrimSpace(m.fb.username),
			Password:  m.fb.password,
			FirstName: strings.TrimSpace(m.fb.firstName),
			LastName:  strings.TrimSpace(m.fb.lastName),
		}
		return func() tea.Msg { return SignupSubmitMsg{Params: params} }
	}

	username := strings.TrimSpace(m.fb.username)
	password := m.fb.password
	return func() tea.Msg {
		return LoginSubmitMsg{Username: username, Password: password}
	}
}

// validatePassword enforces the registration minimum in signup mode
// only; an existing password just has to be non-empty.
func (m *Model) validatePassword(s string) error {
	if s == "" {
		return fmt.Errorf("Password is required")
	}
	if m.signupMode && len(s) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 6
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
