// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state, session routing, and optimistic mutations

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/promptlib/promptdeck/internal/client"
	"github.com/promptlib/promptdeck/internal/mutate"
	"github.com/promptlib/promptdeck/internal/tui/browse"
	"github.com/promptlib/promptdeck/internal/tui/dashboard"
	"github.com/promptlib/promptdeck/internal/tui/history"
	"github.com/promptlib/promptdeck/internal/tui/icons"
	"github.com/promptlib/promptdeck/internal/tui/login"
	"github.com/promptlib/promptdeck/internal/tui/styles"
	"github.com/promptlib/promptdeck/internal/tui/wizard"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenBrowse
	ScreenDetail
	ScreenWizard
	ScreenDashboard
	ScreenHistory
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before using single-column layout
	framePadding     = 4  // Horizontal padding inside the frame
)

// SessionController is the slice of the session manager the TUI needs
type SessionController interface {
	Login(ctx context.Context, username, password string) (*client.User, error)
	FetchCurrentUser(ctx context.Context) (*client.User, error)
	Logout()
	Authenticated() bool
	User() *client.User
	IsAdmin() bool
}

// sessionCheckedMsg is sent after the startup identity fetch
type sessionCheckedMsg struct {
	user *client.User
	err  error
}

// loginResultMsg is sent when a login attempt settles
type loginResultMsg struct {
	user *client.User
	err  error
}

// registerResultMsg is sent when account creation settles; on success
// the credentials are reused for an automatic login
type registerResultMsg struct {
	username string
	password string
	err      error
}

// promptsLoadedMsg is sent when the browse listing and categories load
type promptsLoadedMsg struct {
	prompts    []client.Prompt
	categories []string
	err        error
}

// queueLoadedMsg is sent when a moderation tab loads
type queueLoadedMsg struct {
	status  string
	prompts []client.Prompt
	err     error
}

// mutationDoneMsg is sent when an optimistic mutation settles.
// rollback holds the exact pre-mutation value for the failure path.
type mutationDoneMsg struct {
	id       int
	prompt   *client.Prompt
	rollback client.Prompt
	err      error
}

// deleteDoneMsg is sent when a permanent delete settles
type deleteDoneMsg struct {
	id  int
	err error
}

// historyLoadedMsg is sent when a prompt's version list loads
type historyLoadedMsg struct {
	promptID int
	versions []client.PromptVersion
	err      error
}

// promptSavedMsg is sent when a create or edit settles
type promptSavedMsg struct {
	prompt *client.Prompt
	edited bool
	err    error
}

// noticeExpiredMsg clears the transient status notice
type noticeExpiredMsg struct {
	at time.Time
}

// App is the root model for the TUI
type App struct {
	api        *client.Client
	session    SessionController
	screen     Screen
	width      int
	height     int
	notice     string
	noticeAt   time.Time
	user       *client.User
	categories []string
	guard      *mutate.Guard
	lastUpdate time.Time

	// loadingUser suppresses the login redirect while the startup
	// identity fetch is in flight.
	loadingUser bool

	// Child models
	loginScreen  *login.Login
	browseScreen *browse.Browse
	dashScreen   *dashboard.Dashboard
	histScreen   *history.History
	wizardScreen *wizard.Wizard

	// Detail view
	detail   *client.Prompt
	viewport viewport.Model
}

// New creates a new TUI application
func New(apiClient *client.Client, sess SessionController) *App {
	return &App{
		api:         apiClient,
		session:     sess,
		screen:      ScreenLogin,
		guard:       mutate.NewGuard(),
		loginScreen: login.New(),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	if a.session.Authenticated() {
		a.loadingUser = true
		return a.checkSession()
	}
	return a.loginScreen.Init()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.browseScreen != nil {
			a.browseScreen.SetSize(a.contentWidth(), a.contentHeight())
		}
		if a.dashScreen != nil {
			a.dashScreen.SetSize(a.contentWidth(), a.contentHeight())
		}
		if a.histScreen != nil {
			a.histScreen.SetSize(a.contentWidth(), a.contentHeight())
		}
		if a.loginScreen != nil {
			a.loginScreen.SetWidth(a.contentWidth())
		}
		if a.detail != nil {
			a.viewport.Width = a.contentWidth()
			a.viewport.Height = a.contentHeight()
		}
		if a.screen == ScreenWizard && a.wizardScreen != nil {
			a.wizardScreen.SetWidth(a.contentWidth())
			return a.updateWizard(msg)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.routeKey(msg)

	case sessionCheckedMsg:
		return a.handleSessionChecked(msg)

	case loginResultMsg:
		return a.handleLoginResult(msg)

	case registerResultMsg:
		if msg.err != nil {
			a.loginScreen.SetNotice(msg.err.Error())
			return a, a.loginScreen.Reset()
		}
		return a, a.doLogin(msg.username, msg.password)

	case login.SubmitMsg:
		return a, a.doLogin(msg.Username, msg.Password)

	case login.RegisterMsg:
		return a, a.doRegister(msg.Username, msg.Password, msg.Email)

	case promptsLoadedMsg:
		return a.handlePromptsLoaded(msg)

	case queueLoadedMsg:
		return a.handleQueueLoaded(msg)

	case mutationDoneMsg:
		return a.handleMutationDone(msg)

	case deleteDoneMsg:
		return a.handleDeleteDone(msg)

	case historyLoadedMsg:
		return a.handleHistoryLoaded(msg)

	case promptSavedMsg:
		return a.handlePromptSaved(msg)

	case noticeExpiredMsg:
		if msg.at.Equal(a.noticeAt) {
			a.notice = ""
		}
		return a, nil

	case browse.SelectMsg:
		return a.openDetail(msg.Prompt)

	case browse.VoteMsg:
		return a.startVote(msg.ID, msg.Value)

	case browse.BookmarkMsg:
		return a.startBookmark(msg.ID)

	case browse.RequestDeleteMsg:
		return a.startRequestDelete(msg.ID)

	case browse.HistoryMsg:
		return a.openHistory(msg.Prompt)

	case browse.CreateMsg:
		return a.openWizard(wizard.New(a.categories))

	case browse.EditMsg:
		return a.openWizard(wizard.NewEdit(msg.Prompt, a.categories))

	case browse.AdminMsg:
		return a.openDashboard()

	case browse.RefreshMsg:
		return a, tea.Batch(a.browseScreen.StartLoading(), a.loadPrompts())

	case browse.LogoutMsg:
		return a.forceLogin("")

	case dashboard.ApproveMsg:
		return a.startApprove(msg.ID)

	case dashboard.RejectMsg:
		return a.startReject(msg.ID)

	case dashboard.DeleteMsg:
		return a, a.doDelete(msg.ID)

	case dashboard.TabChangedMsg:
		return a, tea.Batch(a.dashScreen.StartLoading(), a.loadQueue(msg.Status))

	case dashboard.BackMsg:
		a.screen = ScreenBrowse
		a.dashScreen = nil
		return a, nil

	case history.RevertMsg:
		return a.startRevert(msg.PromptID, msg.Version)

	case history.BackMsg:
		a.screen = ScreenBrowse
		a.histScreen = nil
		return a, nil

	case wizard.CompleteMsg:
		a.wizardScreen = nil
		a.screen = ScreenBrowse
		return a, a.savePrompt(msg.Input, msg.EditID)

	case wizard.CancelledMsg:
		a.wizardScreen = nil
		a.screen = ScreenBrowse
		return a, nil

	default:
		// Forward ticks and form internals to the active child
		switch a.screen {
		case ScreenLogin:
			return a.updateLogin(msg)
		case ScreenBrowse:
			return a.updateBrowse(msg)
		case ScreenDashboard:
			return a.updateDashboard(msg)
		case ScreenHistory:
			return a.updateHistory(msg)
		case ScreenWizard:
			return a.updateWizard(msg)
		}
	}

	return a, nil
}

func (a *App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenLogin:
		return a.updateLogin(msg)
	case ScreenBrowse:
		if msg.String() == "q" && !a.browseScreen.Searching() {
			return a, tea.Quit
		}
		return a.updateBrowse(msg)
	case ScreenDetail:
		return a.updateDetail(msg)
	case ScreenDashboard:
		if msg.String() == "q" {
			return a, tea.Quit
		}
		return a.updateDashboard(msg)
	case ScreenHistory:
		if msg.String() == "q" {
			return a, tea.Quit
		}
		return a.updateHistory(msg)
	case ScreenWizard:
		return a.updateWizard(msg)
	}
	return a, nil
}

func (a *App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.loginScreen == nil {
		return a, nil
	}
	model, cmd := a.loginScreen.Update(msg)
	a.loginScreen = model.(*login.Login)
	return a, cmd
}

func (a *App) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.browseScreen == nil {
		return a, nil
	}
	model, cmd := a.browseScreen.Update(msg)
	a.browseScreen = model.(*browse.Browse)
	return a, cmd
}

func (a *App) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.dashScreen == nil {
		return a, nil
	}
	model, cmd := a.dashScreen.Update(msg)
	a.dashScreen = model.(*dashboard.Dashboard)
	return a, cmd
}

func (a *App) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.histScreen == nil {
		return a, nil
	}
	model, cmd := a.histScreen.Update(msg)
	a.histScreen = model.(*history.History)
	return a, cmd
}

func (a *App) updateWizard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.wizardScreen == nil {
		return a, nil
	}
	model, cmd := a.wizardScreen.Update(msg)
	a.wizardScreen = model.(*wizard.Wizard)
	return a, cmd
}

func (a *App) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "b", "esc":
		a.screen = ScreenBrowse
		a.detail = nil
		return a, nil
	}
	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

// handleSessionChecked finishes the startup identity fetch
func (a *App) handleSessionChecked(msg sessionCheckedMsg) (tea.Model, tea.Cmd) {
	a.loadingUser = false
	if msg.err != nil {
		var authErr *client.AuthError
		if errors.As(msg.err, &authErr) {
			return a.forceLogin("Session expired, sign in again")
		}
		return a.forceLogin(msg.err.Error())
	}
	return a.enterBrowse(msg.user)
}

func (a *App) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.loginScreen.SetNotice(msg.err.Error())
		return a, a.loginScreen.Reset()
	}
	return a.enterBrowse(msg.user)
}

// enterBrowse sets up the browse screen for the signed-in user
func (a *App) enterBrowse(user *client.User) (tea.Model, tea.Cmd) {
	a.user = user
	a.browseScreen = browse.New(user.Username, a.session.IsAdmin())
	a.browseScreen.SetSize(a.contentWidth(), a.contentHeight())
	a.screen = ScreenBrowse
	a.loginScreen = login.New()
	return a, tea.Batch(a.browseScreen.Init(), a.loadPrompts())
}

func (a *App) handlePromptsLoaded(msg promptsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if a.browseScreen != nil {
			a.browseScreen.StopLoading()
		}
		return a.failOrNotice(msg.err)
	}
	a.lastUpdate = time.Now()
	if len(msg.categories) > 0 {
		a.categories = msg.categories
	}
	if a.browseScreen != nil {
		a.browseScreen.SetPrompts(msg.prompts)
	}
	return a, nil
}

func (a *App) handleQueueLoaded(msg queueLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if a.dashScreen != nil {
			a.dashScreen.StopLoading()
		}
		return a.failOrNotice(msg.err)
	}
	if a.dashScreen != nil && a.dashScreen.Status() == msg.status {
		a.dashScreen.SetPrompts(msg.prompts)
	}
	return a, nil
}

func (a *App) handleMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	a.guard.End(msg.id)

	if msg.err != nil {
		// Exact rollback of the optimistic prediction
		if a.browseScreen != nil {
			a.browseScreen.ApplyPrompt(msg.rollback)
		}
		if a.dashScreen != nil {
			a.dashScreen.ApplyPrompt(msg.rollback)
		}
		return a.failOrNotice(msg.err)
	}

	// Server value is authoritative
	if a.browseScreen != nil {
		a.browseScreen.ApplyPrompt(*msg.prompt)
	}
	if a.dashScreen != nil {
		a.dashScreen.ApplyPrompt(*msg.prompt)
		if msg.prompt.Status != a.dashScreen.Status() {
			a.dashScreen.RemovePrompt(msg.prompt.ID)
		}
	}
	if a.detail != nil && a.detail.ID == msg.prompt.ID {
		a.detail = msg.prompt
	}
	return a, nil
}

func (a *App) handleDeleteDone(msg deleteDoneMsg) (tea.Model, tea.Cmd) {
	a.guard.End(msg.id)
	if msg.err != nil {
		return a.failOrNotice(msg.err)
	}
	if a.dashScreen != nil {
		a.dashScreen.RemovePrompt(msg.id)
	}
	if a.browseScreen != nil {
		a.browseScreen.RemovePrompt(msg.id)
	}
	return a.setNotice("Prompt deleted")
}

func (a *App) handleHistoryLoaded(msg historyLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.screen = ScreenBrowse
		a.histScreen = nil
		return a.failOrNotice(msg.err)
	}
	if a.histScreen != nil && a.histScreen.PromptID() == msg.promptID {
		a.histScreen.SetVersions(msg.versions)
	}
	return a, nil
}

func (a *App) handlePromptSaved(msg promptSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return a.failOrNotice(msg.err)
	}
	var cmds []tea.Cmd
	if a.browseScreen != nil {
		cmds = append(cmds, a.browseScreen.StartLoading(), a.loadPrompts())
	}
	notice := "Prompt submitted for review"
	if msg.edited {
		notice = "Prompt updated"
		if msg.prompt != nil && msg.prompt.Status == client.StatusPending {
			notice = "Prompt updated, awaiting review"
		}
	}
	_, noticeCmd := a.setNotice(notice)
	cmds = append(cmds, noticeCmd)
	return a, tea.Batch(cmds...)
}

func (a *App) openDetail(p client.Prompt) (tea.Model, tea.Cmd) {
	a.detail = &p
	a.viewport = viewport.New(a.contentWidth(), a.contentHeight())
	a.viewport.SetContent(a.renderDetailContent(p))
	a.screen = ScreenDetail
	return a, nil
}

func (a *App) openHistory(p client.Prompt) (tea.Model, tea.Cmd) {
	a.histScreen = history.New(p, a.contentWidth(), a.contentHeight())
	a.screen = ScreenHistory
	return a, tea.Batch(a.histScreen.Init(), a.loadHistory(p.ID))
}

func (a *App) openWizard(w *wizard.Wizard) (tea.Model, tea.Cmd) {
	a.wizardScreen = w
	a.wizardScreen.SetWidth(a.contentWidth())
	a.screen = ScreenWizard
	return a, a.wizardScreen.Init()
}

// openDashboard routes to the moderation dashboard. Non-staff users
// stay on the browse screen.
func (a *App) openDashboard() (tea.Model, tea.Cmd) {
	if !a.session.IsAdmin() {
		a.screen = ScreenBrowse
		return a.setNotice("Moderation requires an admin account")
	}
	a.dashScreen = dashboard.New(a.contentWidth(), a.contentHeight())
	a.screen = ScreenDashboard
	return a, tea.Batch(a.dashScreen.Init(), a.loadQueue(a.dashScreen.Status()))
}

// forceLogin clears session state and shows the login screen
func (a *App) forceLogin(notice string) (tea.Model, tea.Cmd) {
	a.session.Logout()
	a.user = nil
	a.browseScreen = nil
	a.dashScreen = nil
	a.histScreen = nil
	a.wizardScreen = nil
	a.detail = nil
	a.loginScreen = login.New()
	a.loginScreen.SetWidth(a.contentWidth())
	if notice != "" {
		a.loginScreen.SetNotice(notice)
	}
	a.screen = ScreenLogin
	return a, a.loginScreen.Init()
}

// failOrNotice routes auth failures to the login screen and surfaces
// everything else as a transient notice.
func (a *App) failOrNotice(err error) (tea.Model, tea.Cmd) {
	var authErr *client.AuthError
	if errors.As(err, &authErr) {
		return a.forceLogin("Session expired, sign in again")
	}
	return a.setNotice(err.Error())
}

func (a *App) setNotice(text string) (tea.Model, tea.Cmd) {
	a.notice = text
	a.noticeAt = time.Now()
	at := a.noticeAt
	return a, tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return noticeExpiredMsg{at: at}
	})
}

// Optimistic mutation starters

func (a *App) startVote(id, value int) (tea.Model, tea.Cmd) {
	current, ok := a.browseScreen.Prompt(id)
	if !ok || !a.guard.Begin(id) {
		return a, nil
	}
	m := mutate.Begin(current, mutate.ApplyVote(value))
	a.browseScreen.ApplyPrompt(m.Predicted())

	call := a.api.Upvote
	if value < 0 {
		call = a.api.Downvote
	}
	return a, func() tea.Msg {
		p, err := call(context.Background(), id)
		return mutationDoneMsg{id: id, prompt: p, rollback: m.Rollback(), err: err}
	}
}

func (a *App) startBookmark(id int) (tea.Model, tea.Cmd) {
	current, ok := a.browseScreen.Prompt(id)
	if !ok || !a.guard.Begin(id) {
		return a, nil
	}
	m := mutate.Begin(current, mutate.ToggleBookmark)
	a.browseScreen.ApplyPrompt(m.Predicted())

	return a, func() tea.Msg {
		p, err := a.api.Bookmark(context.Background(), id)
		return mutationDoneMsg{id: id, prompt: p, rollback: m.Rollback(), err: err}
	}
}

func (a *App) startRequestDelete(id int) (tea.Model, tea.Cmd) {
	current, ok := a.browseScreen.Prompt(id)
	if !ok || !a.guard.Begin(id) {
		return a, nil
	}
	m := mutate.Begin(current, mutate.MarkPendingDeletion)
	a.browseScreen.ApplyPrompt(m.Predicted())

	return a, func() tea.Msg {
		p, err := a.api.RequestDelete(context.Background(), id)
		return mutationDoneMsg{id: id, prompt: p, rollback: m.Rollback(), err: err}
	}
}

// startRevert leaves the history screen and applies the selected
// version's content optimistically, like any other mutation.
func (a *App) startRevert(id int, version client.PromptVersion) (tea.Model, tea.Cmd) {
	a.screen = ScreenBrowse
	a.histScreen = nil

	current, ok := a.browseScreen.Prompt(id)
	if !ok || !a.guard.Begin(id) {
		return a, nil
	}
	m := mutate.Begin(current, mutate.ApplyVersion(version))
	a.browseScreen.ApplyPrompt(m.Predicted())

	return a, func() tea.Msg {
		p, err := a.api.Revert(context.Background(), id, version.ID)
		return mutationDoneMsg{id: id, prompt: p, rollback: m.Rollback(), err: err}
	}
}

func (a *App) startApprove(id int) (tea.Model, tea.Cmd) {
	current, ok := a.dashScreen.Prompt(id)
	if !ok || !a.guard.Begin(id) {
		return a, nil
	}
	m := mutate.Begin(current, mutate.MarkApproved)
	a.dashScreen.ApplyPrompt(m.Predicted())

	return a, func() tea.Msg {
		p, err := a.api.Approve(context.Background(), id)
		return mutationDoneMsg{id: id, prompt: p, rollback: m.Rollback(), err: err}
	}
}

func (a *App) startReject(id int) (tea.Model, tea.Cmd) {
	current, ok := a.dashScreen.Prompt(id)
	if !ok || !a.guard.Begin(id) {
		return a, nil
	}
	m := mutate.Begin(current, mutate.MarkRejected)
	a.dashScreen.ApplyPrompt(m.Predicted())

	return a, func() tea.Msg {
		p, err := a.api.Reject(context.Background(), id)
		return mutationDoneMsg{id: id, prompt: p, rollback: m.Rollback(), err: err}
	}
}

// Network commands

func (a *App) checkSession() tea.Cmd {
	return func() tea.Msg {
		user, err := a.session.FetchCurrentUser(context.Background())
		return sessionCheckedMsg{user: user, err: err}
	}
}

func (a *App) doLogin(username, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := a.session.Login(context.Background(), username, password)
		return loginResultMsg{user: user, err: err}
	}
}

func (a *App) doRegister(username, password, email string) tea.Cmd {
	return func() tea.Msg {
		err := a.api.Register(context.Background(), client.RegisterInput{
			Username: username,
			Password: password,
			Email:    email,
		})
		return registerResultMsg{username: username, password: password, err: err}
	}
}

// loadPrompts fetches the listing and categories concurrently.
// A category failure does not sink the listing.
func (a *App) loadPrompts() tea.Cmd {
	return func() tea.Msg {
		var (
			prompts    []client.Prompt
			categories []string
		)

		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			var err error
			prompts, err = a.api.ListPrompts(ctx, client.ListOptions{})
			return err
		})
		g.Go(func() error {
			cats, err := a.api.Categories(ctx)
			if err == nil {
				categories = cats
			}
			// best effort: the wizard falls back to the predefined set
			return nil
		})

		if err := g.Wait(); err != nil {
			return promptsLoadedMsg{err: err}
		}
		return promptsLoadedMsg{prompts: prompts, categories: categories}
	}
}

func (a *App) loadQueue(status string) tea.Cmd {
	return func() tea.Msg {
		prompts, err := a.api.ListPrompts(context.Background(), client.ListOptions{Status: status})
		return queueLoadedMsg{status: status, prompts: prompts, err: err}
	}
}

func (a *App) loadHistory(promptID int) tea.Cmd {
	return func() tea.Msg {
		versions, err := a.api.History(context.Background(), promptID)
		return historyLoadedMsg{promptID: promptID, versions: versions, err: err}
	}
}

func (a *App) doDelete(id int) tea.Cmd {
	// Permanent removal is deliberately not optimistic; the row only
	// disappears once the server confirms it.
	if !a.guard.Begin(id) {
		return nil
	}
	return func() tea.Msg {
		err := a.api.DeletePrompt(context.Background(), id)
		return deleteDoneMsg{id: id, err: err}
	}
}

func (a *App) savePrompt(input client.PromptInput, editID int) tea.Cmd {
	return func() tea.Msg {
		if editID != 0 {
			p, err := a.api.UpdatePrompt(context.Background(), editID, input)
			return promptSavedMsg{prompt: p, edited: true, err: err}
		}
		p, err := a.api.CreatePrompt(context.Background(), input)
		return promptSavedMsg{prompt: p, err: err}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenLogin:
		content = a.viewLogin()
	case ScreenBrowse:
		if a.browseScreen != nil {
			content = a.browseScreen.View()
		}
	case ScreenDetail:
		content = a.viewDetail()
	case ScreenDashboard:
		if a.dashScreen != nil {
			content = a.dashScreen.View()
		}
	case ScreenHistory:
		if a.histScreen != nil {
			content = a.histScreen.View()
		}
	case ScreenWizard:
		if a.wizardScreen != nil {
			content = a.wizardScreen.View()
		}
	default:
		content = a.viewLogin()
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewLogin() string {
	if a.loadingUser {
		return styles.Subtitle.Render("Checking session...")
	}
	if a.loginScreen != nil {
		return a.loginScreen.View()
	}
	return ""
}

func (a *App) viewDetail() string {
	if a.detail == nil {
		return ""
	}
	return a.viewport.View()
}

// renderDetailContent builds the full prompt view for the viewport
func (a *App) renderDetailContent(p client.Prompt) string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(p.Title))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%s · %s · %s · by %s",
		client.CategoryLabel(p.Category),
		client.TaskTypeLabel(p.TaskType),
		client.OutputFormatLabel(p.OutputFormat),
		p.UserUsername,
	)))
	sb.WriteString("\n")
	sb.WriteString(styles.StatusBadge(p.Status, client.StatusLabel(p.Status)))
	sb.WriteString(fmt.Sprintf("  %s %d  %s %d",
		icons.VoteUp.String(), p.LikeCount,
		icons.VoteDown.String(), p.DislikeCount,
	))
	if p.IsBookmarked {
		sb.WriteString("  " + styles.BookmarkStyle.Render(icons.Bookmark.String()+" bookmarked"))
	}
	sb.WriteString("\n\n")

	if p.Description != "" {
		sb.WriteString(p.Description)
		sb.WriteString("\n\n")
	}

	sb.WriteString(styles.ValueStyle.Render("Prompt"))
	sb.WriteString("\n")
	sb.WriteString(p.Text)
	sb.WriteString("\n")

	if p.Guidance != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.ValueStyle.Render("Usage guidance"))
		sb.WriteString("\n")
		sb.WriteString(p.Guidance)
		sb.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(a.contentWidth()).Render(sb.String())
}

// contentWidth calculates the width available inside the frame
func (a *App) contentWidth() int {
	if a.width < minTerminalWidth {
		return minTerminalWidth - framePadding
	}
	return a.width - framePadding
}

// contentHeight calculates the height available for screen content
func (a *App) contentHeight() int {
	// Header, blank line, notice line, blank line before footer, footer
	return a.height - 5
}

// renderHeader creates the header bar with app branding and context
func (a *App) renderHeader() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("PromptDeck"))

	rightText := ""
	if a.user != nil && a.screen != ScreenLogin {
		who := a.user.Username
		if a.session.IsAdmin() {
			who += " " + icons.Shield.String()
		}
		rightText = contextStyle.Render(who) + " "
	}

	leftRendered := lipgloss.NewStyle().Render(leftText)
	rightRendered := lipgloss.NewStyle().Align(lipgloss.Right).Render(rightText)

	leftWidth := lipgloss.Width(leftRendered)
	rightWidth := lipgloss.Width(rightRendered)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╭─ and ─╮
	if fillWidth < 0 {
		fillWidth = 0
	}

	fill := strings.Repeat("─", fillWidth)
	header := "╭─" + leftRendered + fill + rightRendered + "─╮"

	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var shortcuts []string
	switch a.screen {
	case ScreenLogin:
		shortcuts = []string{"Enter Submit", "Ctrl+R Register", "Ctrl+C Quit"}
	case ScreenBrowse:
		shortcuts = []string{"u/d Vote", "b Bookmark", "/ Search", "c Create", "Tab Mine"}
		if a.session != nil && a.session.IsAdmin() {
			shortcuts = append(shortcuts, "a Admin")
		}
		shortcuts = append(shortcuts, "q Quit")
	case ScreenDetail:
		shortcuts = []string{"↑↓ Scroll", "b Back", "q Quit"}
	case ScreenDashboard:
		shortcuts = []string{"a Approve", "x Reject", "D Delete", "Tab Queue", "b Back"}
	case ScreenHistory:
		shortcuts = []string{"↑↓ Navigate", "Enter Revert", "b Back"}
	case ScreenWizard:
		shortcuts = []string{"↑↓ Select", "Enter Confirm", "Esc Cancel"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	rightText := ""
	rightPlainText := ""
	switch {
	case a.notice != "":
		rightText = statusStyle.Render(a.notice) + " "
		rightPlainText = a.notice + " "
	case !a.lastUpdate.IsZero() && a.screen == ScreenBrowse:
		elapsed := a.formatTimeSince(a.lastUpdate)
		rightText = statusStyle.Render("Updated "+elapsed) + " "
		rightPlainText = "Updated " + elapsed + " "
	}

	leftWidth := lipgloss.Width(leftPlainText)
	rightWidth := lipgloss.Width(rightPlainText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╰─ and ─╯
	if fillWidth < 0 {
		fillWidth = 0
	}

	fill := strings.Repeat("─", fillWidth)
	footer := "╰─" + leftText + fill + rightText + "─╯"

	return borderStyle.Render(footer)
}

// formatTimeSince formats a duration since the given time in human-readable form
func (a *App) formatTimeSince(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}

	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	}

	hours := int(d.Hours())
	if hours == 1 {
		return "1h ago"
	}
	return fmt.Sprintf("%dh ago", hours)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI
func Run(apiClient *client.Client, sess SessionController) error {
	app := New(apiClient, sess)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
