// ABOUTME: Login and registration forms as a bubbletea model
// ABOUTME: Emits typed messages with credentials; the app performs the requests

package login

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/promptlib/promptdeck/internal/tui/styles"
)

// SubmitMsg is sent when the login form is submitted
type SubmitMsg struct {
	Username string
	Password string
}

// RegisterMsg is sent when the registration form is submitted
type RegisterMsg struct {
	Username string
	Password string
	Email    string
}

// Mode selects which form is shown
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// Login is the credential entry screen
type Login struct {
	mode   Mode
	form   *huh.Form
	width  int
	notice string

	username string
	password string
	email    string
}

// New creates the login screen in login mode
func New() *Login {
	l := &Login{mode: ModeLogin}
	l.form = l.createForm()
	return l
}

func (l *Login) createForm() *huh.Form {
	if l.mode == ModeRegister {
		return huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Username").
					CharLimit(150).
					Value(&l.username),
				huh.NewInput().
					Title("Email").
					Description("Optional").
					Value(&l.email),
				huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&l.password),
			).Title("Create account").
				Description("Ctrl+R to switch back to sign in"),
		).WithTheme(styles.FormTheme())
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				CharLimit(150).
				Value(&l.username),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&l.password),
		).Title("Sign in").
			Description("Ctrl+R to create an account instead"),
	).WithTheme(styles.FormTheme())
}

// Init implements tea.Model
func (l *Login) Init() tea.Cmd {
	return l.form.Init()
}

// SetNotice shows a message above the form (login failure, session expiry)
func (l *Login) SetNotice(notice string) {
	l.notice = notice
}

// Reset returns the form to an editable state after a failed submit
func (l *Login) Reset() tea.Cmd {
	l.password = ""
	l.form = l.createForm()
	return l.form.Init()
}

// SetWidth sets the available width for rendering
func (l *Login) SetWidth(width int) {
	l.width = width
}

// Update implements tea.Model
func (l *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+r" {
		l.toggleMode()
		return l, l.form.Init()
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted {
		return l, l.submit()
	}

	return l, cmd
}

func (l *Login) toggleMode() {
	if l.mode == ModeLogin {
		l.mode = ModeRegister
	} else {
		l.mode = ModeLogin
	}
	l.form = l.createForm()
}

func (l *Login) submit() tea.Cmd {
	username := strings.TrimSpace(l.username)
	password := l.password
	email := strings.TrimSpace(l.email)

	if l.mode == ModeRegister {
		return func() tea.Msg {
			return RegisterMsg{Username: username, Password: password, Email: email}
		}
	}
	return func() tea.Msg {
		return SubmitMsg{Username: username, Password: password}
	}
}

// View implements tea.Model
func (l *Login) View() string {
	var sb strings.Builder

	if l.notice != "" {
		sb.WriteString(styles.StatusWarning.Render(l.notice))
		sb.WriteString("\n\n")
	}

	sb.WriteString(l.form.View())

	if l.width > 0 {
		return lipgloss.NewStyle().Width(l.width).Render(sb.String())
	}
	return sb.String()
}
