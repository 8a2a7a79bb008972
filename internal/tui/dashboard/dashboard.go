// ABOUTME: Moderation dashboard for staff users
// ABOUTME: Tabs over pending, approved, and deletion-requested prompts

package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/promptlib/promptdeck/internal/client"
	"github.com/promptlib/promptdeck/internal/tui/icons"
	"github.com/promptlib/promptdeck/internal/tui/styles"
)

// ApproveMsg is sent when the moderator approves a prompt
type ApproveMsg struct {
	ID int
}

// RejectMsg is sent when the moderator rejects a prompt
type RejectMsg struct {
	ID int
}

// DeleteMsg is sent when the moderator permanently deletes a prompt.
// It is only emitted after the confirmation step.
type DeleteMsg struct {
	ID int
}

// TabChangedMsg is sent when the moderator switches tabs; the app
// reloads the listing for the new status.
type TabChangedMsg struct {
	Status string
}

// BackMsg is sent when the moderator leaves the dashboard
type BackMsg struct{}

// tabStatuses maps tab positions to backend status filters
var tabStatuses = []string{
	client.StatusPending,
	client.StatusApproved,
	client.StatusPendingDeletion,
}

var tabTitles = []string{"Pending", "Approved", "Pending Deletion"}

// Dashboard is the moderation queue screen
type Dashboard struct {
	prompts    []client.Prompt
	cursor     int
	tab        int
	confirming bool // delete confirmation pending for the selected prompt
	spinner    spinner.Model
	loading    bool
	width      int
	height     int
}

// New creates the dashboard on the pending tab
func New(width, height int) *Dashboard {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &Dashboard{
		spinner: sp,
		loading: true,
		width:   width,
		height:  height,
	}
}

// Status returns the backend status filter for the active tab
func (d *Dashboard) Status() string {
	return tabStatuses[d.tab]
}

// SetPrompts replaces the listing for the active tab
func (d *Dashboard) SetPrompts(prompts []client.Prompt) {
	d.prompts = prompts
	d.loading = false
	d.clampCursor()
}

// ApplyPrompt replaces a single prompt in place, matched by ID
func (d *Dashboard) ApplyPrompt(p client.Prompt) {
	for i := range d.prompts {
		if d.prompts[i].ID == p.ID {
			d.prompts[i] = p
			return
		}
	}
}

// RemovePrompt drops a prompt from the listing
func (d *Dashboard) RemovePrompt(id int) {
	for i := range d.prompts {
		if d.prompts[i].ID == id {
			d.prompts = append(d.prompts[:i], d.prompts[i+1:]...)
			break
		}
	}
	d.clampCursor()
}

// Prompt returns a prompt by ID, if present
func (d *Dashboard) Prompt(id int) (client.Prompt, bool) {
	for _, p := range d.prompts {
		if p.ID == id {
			return p, true
		}
	}
	return client.Prompt{}, false
}

// StartLoading shows the spinner until SetPrompts is called
func (d *Dashboard) StartLoading() tea.Cmd {
	d.loading = true
	return d.spinner.Tick
}

// StopLoading hides the spinner when a load fails and no prompts arrive
func (d *Dashboard) StopLoading() {
	d.loading = false
}

// SetSize updates the dashboard dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// Confirming reports whether a delete confirmation is pending
func (d *Dashboard) Confirming() bool {
	return d.confirming
}

// Selected returns the prompt under the cursor
func (d *Dashboard) Selected() (client.Prompt, bool) {
	if d.cursor < 0 || d.cursor >= len(d.prompts) {
		return client.Prompt{}, false
	}
	return d.prompts[d.cursor], true
}

func (d *Dashboard) clampCursor() {
	if d.cursor >= len(d.prompts) {
		d.cursor = len(d.prompts) - 1
	}
	if d.cursor < 0 {
		d.cursor = 0
	}
}

// Init implements tea.Model
func (d *Dashboard) Init() tea.Cmd {
	return d.spinner.Tick
}

// Update implements tea.Model
func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !d.loading {
			return d, nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd

	case tea.KeyMsg:
		if d.confirming {
			return d.updateConfirm(msg)
		}
		return d.updateKeys(msg)
	}
	return d, nil
}

func (d *Dashboard) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		d.confirming = false
		if p, ok := d.Selected(); ok {
			return d, emit(DeleteMsg{ID: p.ID})
		}
	default:
		d.confirming = false
	}
	return d, nil
}

func (d *Dashboard) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if d.cursor > 0 {
			d.cursor--
		}
	case "down", "j":
		if d.cursor < len(d.prompts)-1 {
			d.cursor++
		}
	case "tab":
		d.tab = (d.tab + 1) % len(tabStatuses)
		d.cursor = 0
		return d, emit(TabChangedMsg{Status: d.Status()})
	case "shift+tab":
		d.tab = (d.tab + len(tabStatuses) - 1) % len(tabStatuses)
		d.cursor = 0
		return d, emit(TabChangedMsg{Status: d.Status()})
	case "a":
		if p, ok := d.Selected(); ok && p.Status != client.StatusApproved {
			return d, emit(ApproveMsg{ID: p.ID})
		}
	case "x":
		if p, ok := d.Selected(); ok && p.Status != client.StatusRejected {
			return d, emit(RejectMsg{ID: p.ID})
		}
	case "D":
		if _, ok := d.Selected(); ok {
			d.confirming = true
		}
	case "b", "esc":
		return d, emit(BackMsg{})
	}
	return d, nil
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// View implements tea.Model
func (d *Dashboard) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Shield.String() + " Moderation"))
	sb.WriteString("\n")
	sb.WriteString(d.renderTabs())
	sb.WriteString("\n\n")

	if d.loading {
		sb.WriteString(d.spinner.View() + " Loading queue...")
		return sb.String()
	}

	if d.confirming {
		if p, ok := d.Selected(); ok {
			warning := fmt.Sprintf("Permanently delete %q? This cannot be undone. (y/N)", p.Title)
			sb.WriteString(styles.StatusCritical.Render(warning))
			sb.WriteString("\n\n")
		}
	}

	if len(d.prompts) == 0 {
		sb.WriteString(styles.Subtitle.Render("Queue is empty."))
		return sb.String()
	}

	maxRows := d.height - 6
	if maxRows < 1 {
		maxRows = len(d.prompts)
	}
	start := 0
	if d.cursor >= maxRows {
		start = d.cursor - maxRows + 1
	}

	for i := start; i < len(d.prompts) && i < start+maxRows; i++ {
		sb.WriteString(d.renderRow(d.prompts[i], i == d.cursor))
		sb.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(d.width).Render(sb.String())
}

func (d *Dashboard) renderTabs() string {
	parts := make([]string, 0, len(tabTitles))
	for i, name := range tabTitles {
		if i == d.tab {
			parts = append(parts, styles.TabActive.Render(name))
		} else {
			parts = append(parts, styles.TabInactive.Render(name))
		}
	}
	return strings.Join(parts, "  ")
}

func (d *Dashboard) renderRow(p client.Prompt, selected bool) string {
	cursor := "  "
	titleStyle := lipgloss.NewStyle().Foreground(styles.Text)
	if selected {
		cursor = styles.SelectedRow.Render("> ")
		titleStyle = styles.SelectedRow
	}

	badge := styles.StatusBadge(p.Status, client.StatusLabel(p.Status))
	meta := styles.Subtitle.Render(fmt.Sprintf(" %s · by %s",
		client.CategoryLabel(p.Category),
		p.UserUsername,
	))

	return cursor + badge + " " + titleStyle.Render(p.Title) + meta
}
