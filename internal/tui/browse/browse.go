// ABOUTME: Prompt browsing screen with search, tabs, and vote indicators
// ABOUTME: Emits typed action messages; the app owns the network side effects

package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/promptlib/promptdeck/internal/client"
	"github.com/promptlib/promptdeck/internal/tui/icons"
	"github.com/promptlib/promptdeck/internal/tui/styles"
)

// SelectMsg is sent when a prompt is opened for detail view
type SelectMsg struct {
	Prompt client.Prompt
}

// VoteMsg is sent when the user votes on the selected prompt
type VoteMsg struct {
	ID    int
	Value int
}

// BookmarkMsg is sent when the user toggles a bookmark
type BookmarkMsg struct {
	ID int
}

// RequestDeleteMsg is sent when the user asks to delete their own prompt
type RequestDeleteMsg struct {
	ID int
}

// HistoryMsg is sent when the user opens a prompt's version history
type HistoryMsg struct {
	Prompt client.Prompt
}

// CreateMsg is sent when the user starts the create wizard
type CreateMsg struct{}

// EditMsg is sent when the user edits their own prompt
type EditMsg struct {
	Prompt client.Prompt
}

// AdminMsg is sent when the user opens the moderation dashboard
type AdminMsg struct{}

// RefreshMsg is sent when the user requests a reload
type RefreshMsg struct{}

// LogoutMsg is sent when the user logs out
type LogoutMsg struct{}

// Tab selects which subset of prompts is listed
type Tab int

const (
	TabAll Tab = iota
	TabMine
)

var tabNames = []string{"All", "Mine"}

// Browse is the prompt listing screen
type Browse struct {
	prompts      []client.Prompt
	cursor       int
	tab          Tab
	bookmarkOnly bool
	search       textinput.Model
	searching    bool
	spinner      spinner.Model
	loading      bool
	username     string
	isAdmin      bool
	width        int
	height       int
}

// New creates the browse screen for the given user
func New(username string, isAdmin bool) *Browse {
	search := textinput.New()
	search.Placeholder = "search prompts..."
	search.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &Browse{
		search:   search,
		spinner:  sp,
		loading:  true,
		username: username,
		isAdmin:  isAdmin,
	}
}

// SetPrompts replaces the listing and clamps the cursor
func (b *Browse) SetPrompts(prompts []client.Prompt) {
	b.prompts = prompts
	b.loading = false
	b.clampCursor()
}

// ApplyPrompt replaces a single prompt in place, matched by ID
func (b *Browse) ApplyPrompt(p client.Prompt) {
	for i := range b.prompts {
		if b.prompts[i].ID == p.ID {
			b.prompts[i] = p
			return
		}
	}
}

// RemovePrompt drops a prompt from the listing
func (b *Browse) RemovePrompt(id int) {
	for i := range b.prompts {
		if b.prompts[i].ID == id {
			b.prompts = append(b.prompts[:i], b.prompts[i+1:]...)
			break
		}
	}
	b.clampCursor()
}

// Prompt returns a prompt by ID, if present
func (b *Browse) Prompt(id int) (client.Prompt, bool) {
	for _, p := range b.prompts {
		if p.ID == id {
			return p, true
		}
	}
	return client.Prompt{}, false
}

// StartLoading shows the spinner until SetPrompts is called
func (b *Browse) StartLoading() tea.Cmd {
	b.loading = true
	return b.spinner.Tick
}

// StopLoading hides the spinner when a load fails and no prompts arrive
func (b *Browse) StopLoading() {
	b.loading = false
}

// SetSize sets the available rendering area
func (b *Browse) SetSize(width, height int) {
	b.width = width
	b.height = height
	b.search.Width = width - 10
}

// Searching reports whether the search input has focus
func (b *Browse) Searching() bool {
	return b.searching
}

// Selected returns the prompt under the cursor
func (b *Browse) Selected() (client.Prompt, bool) {
	visible := b.visible()
	if b.cursor < 0 || b.cursor >= len(visible) {
		return client.Prompt{}, false
	}
	return visible[b.cursor], true
}

// visible applies the tab, bookmark, and search filters
func (b *Browse) visible() []client.Prompt {
	query := strings.ToLower(strings.TrimSpace(b.search.Value()))

	var out []client.Prompt
	for _, p := range b.prompts {
		if b.tab == TabMine && p.UserUsername != b.username {
			continue
		}
		if b.bookmarkOnly && !p.IsBookmarked {
			continue
		}
		if query != "" && !matches(p, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matches(p client.Prompt, query string) bool {
	haystack := strings.ToLower(strings.Join([]string{
		p.Title,
		p.Description,
		client.CategoryLabel(p.Category),
		client.TaskTypeLabel(p.TaskType),
		p.UserUsername,
	}, " "))
	return strings.Contains(haystack, query)
}

func (b *Browse) clampCursor() {
	n := len(b.visible())
	if b.cursor >= n {
		b.cursor = n - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
}

// Init implements tea.Model
func (b *Browse) Init() tea.Cmd {
	return b.spinner.Tick
}

// Update implements tea.Model
func (b *Browse) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !b.loading {
			return b, nil
		}
		var cmd tea.Cmd
		b.spinner, cmd = b.spinner.Update(msg)
		return b, cmd

	case tea.KeyMsg:
		if b.searching {
			return b.updateSearch(msg)
		}
		return b.updateKeys(msg)
	}
	return b, nil
}

func (b *Browse) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		b.searching = false
		b.search.SetValue("")
		b.search.Blur()
		b.clampCursor()
		return b, nil
	case "enter":
		b.searching = false
		b.search.Blur()
		b.clampCursor()
		return b, nil
	}

	var cmd tea.Cmd
	b.search, cmd = b.search.Update(msg)
	b.clampCursor()
	return b, cmd
}

func (b *Browse) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if b.cursor > 0 {
			b.cursor--
		}
	case "down", "j":
		if b.cursor < len(b.visible())-1 {
			b.cursor++
		}
	case "tab":
		b.tab = (b.tab + 1) % Tab(len(tabNames))
		b.clampCursor()
	case "f":
		b.bookmarkOnly = !b.bookmarkOnly
		b.clampCursor()
	case "/":
		b.searching = true
		return b, b.search.Focus()
	case "enter":
		if p, ok := b.Selected(); ok {
			return b, emit(SelectMsg{Prompt: p})
		}
	case "u":
		if p, ok := b.Selected(); ok {
			return b, emit(VoteMsg{ID: p.ID, Value: 1})
		}
	case "d":
		if p, ok := b.Selected(); ok {
			return b, emit(VoteMsg{ID: p.ID, Value: -1})
		}
	case "b":
		if p, ok := b.Selected(); ok {
			return b, emit(BookmarkMsg{ID: p.ID})
		}
	case "x":
		if p, ok := b.Selected(); ok && b.owns(p) && p.Status != client.StatusPendingDeletion {
			return b, emit(RequestDeleteMsg{ID: p.ID})
		}
	case "e":
		if p, ok := b.Selected(); ok && b.owns(p) {
			return b, emit(EditMsg{Prompt: p})
		}
	case "h":
		if p, ok := b.Selected(); ok && (b.owns(p) || b.isAdmin) {
			return b, emit(HistoryMsg{Prompt: p})
		}
	case "c":
		return b, emit(CreateMsg{})
	case "a":
		if b.isAdmin {
			return b, emit(AdminMsg{})
		}
	case "r":
		return b, emit(RefreshMsg{})
	case "L":
		return b, emit(LogoutMsg{})
	}
	return b, nil
}

func (b *Browse) owns(p client.Prompt) bool {
	return p.UserUsername == b.username
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// View implements tea.Model
func (b *Browse) View() string {
	var sb strings.Builder

	sb.WriteString(b.renderTabs())
	sb.WriteString("\n")

	if b.searching || b.search.Value() != "" {
		sb.WriteString(icons.Search.String() + " " + b.search.View())
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if b.loading {
		sb.WriteString(b.spinner.View() + " Loading prompts...")
		return sb.String()
	}

	visible := b.visible()
	if len(visible) == 0 {
		sb.WriteString(styles.Subtitle.Render("No prompts match."))
		return sb.String()
	}

	maxRows := b.height - 4
	if maxRows < 1 {
		maxRows = len(visible)
	}
	start := 0
	if b.cursor >= maxRows {
		start = b.cursor - maxRows + 1
	}

	for i := start; i < len(visible) && i < start+maxRows; i++ {
		sb.WriteString(b.renderRow(visible[i], i == b.cursor))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (b *Browse) renderTabs() string {
	parts := make([]string, 0, len(tabNames)+1)
	for i, name := range tabNames {
		if Tab(i) == b.tab {
			parts = append(parts, styles.TabActive.Render(name))
		} else {
			parts = append(parts, styles.TabInactive.Render(name))
		}
	}
	if b.bookmarkOnly {
		parts = append(parts, styles.BookmarkStyle.Render(icons.Bookmark.String()+" bookmarked"))
	}
	return strings.Join(parts, "  ")
}

func (b *Browse) renderRow(p client.Prompt, selected bool) string {
	cursor := "  "
	titleStyle := lipgloss.NewStyle().Foreground(styles.Text)
	if selected {
		cursor = styles.SelectedRow.Render("> ")
		titleStyle = styles.SelectedRow
	}

	votes := fmt.Sprintf("%+d", p.VoteCount)
	voteStyle := styles.TabInactive
	switch {
	case p.UserVote > 0:
		voteStyle = styles.VoteUp
	case p.UserVote < 0:
		voteStyle = styles.VoteDown
	}

	mark := "  "
	if p.IsBookmarked {
		mark = styles.BookmarkStyle.Render(icons.Bookmark.String()) + " "
	}

	meta := styles.Subtitle.Render(fmt.Sprintf(" %s · %s · by %s",
		client.CategoryLabel(p.Category),
		client.TaskTypeLabel(p.TaskType),
		p.UserUsername,
	))

	badge := ""
	if p.Status != client.StatusApproved {
		badge = " " + styles.StatusBadge(p.Status, client.StatusLabel(p.Status))
	}

	title := p.Title
	maxTitle := b.width - 30
	if runes := []rune(title); maxTitle > 10 && len(runes) > maxTitle {
		title = string(runes[:maxTitle-1]) + "…"
	}

	return cursor + voteStyle.Render(votes) + " " + mark + titleStyle.Render(title) + badge + meta
}
