// ABOUTME: Version history screen for a single prompt
// ABOUTME: Lists prior versions and lets the owner revert to one

package history

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

// RevertMsg is sent when the user reverts to the selected version.
// The full version rides along so the app can predict the outcome.
type RevertMsg struct {
	PromptID int
	Version  client.PromptVersion
}

// BackMsg is sent when the user leaves the history screen
type BackMsg struct{}

// History is the version listing for one prompt
type History struct {
	prompt   client.Prompt
	versions []client.PromptVersion
	cursor   int
	spinner  spinner.Model
	loading  bool
	width    int
	height   int
}

// New creates the history screen for the given prompt
func New(prompt client.Prompt, width, height int) *History {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &History{
		prompt:  prompt,
		spinner: sp,
		loading: true,
		width:   width,
		height:  height,
	}
}

// SetVersions replaces the listing, newest first
func (h *History) SetVersions(versions []client.PromptVersion) {
	h.versions = versions
	h.loading = false
	if h.cursor >= len(versions) {
		h.cursor = len(versions) - 1
	}
	if h.cursor < 0 {
		h.cursor = 0
	}
}

// SetSize sets the available rendering area
func (h *History) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// PromptID returns the prompt whose history is shown
func (h *History) PromptID() int {
	return h.prompt.ID
}

// Selected returns the version under the cursor
func (h *History) Selected() (client.PromptVersion, bool) {
	if h.cursor < 0 || h.cursor >= len(h.versions) {
		return client.PromptVersion{}, false
	}
	return h.versions[h.cursor], true
}

// Init implements tea.Model
func (h *History) Init() tea.Cmd {
	return h.spinner.Tick
}

// Update implements tea.Model
func (h *History) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !h.loading {
			return h, nil
		}
		var cmd tea.Cmd
		h.spinner, cmd = h.spinner.Update(msg)
		return h, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if h.cursor > 0 {
				h.cursor--
			}
		case "down", "j":
			if h.cursor < len(h.versions)-1 {
				h.cursor++
			}
		case "enter":
			if v, ok := h.Selected(); ok {
				return h, func() tea.Msg {
					return RevertMsg{PromptID: h.prompt.ID, Version: v}
				}
			}
		case "b", "esc":
			return h, func() tea.Msg { return BackMsg{} }
		}
	}
	return h, nil
}

// View implements tea.Model
func (h *History) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.History.String() + " History: " + h.prompt.Title))
	sb.WriteString("\n\n")

	if h.loading {
		sb.WriteString(h.spinner.View() + " Loading versions...")
		return sb.String()
	}

	if len(h.versions) == 0 {
		sb.WriteString(styles.Subtitle.Render("No prior versions."))
		return sb.String()
	}

	for i, v := range h.versions {
		cursor := "  "
		titleStyle := lipgloss.NewStyle().Foreground(styles.Text)
		if i == h.cursor {
			cursor = styles.SelectedRow.Render("> ")
			titleStyle = styles.SelectedRow
		}

		meta := styles.Subtitle.Render(fmt.Sprintf(" edited by %s at %s", v.EditedByUsername, v.CreatedAt))
		sb.WriteString(cursor + titleStyle.Render(v.Title) + meta)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("enter revert to selected version"))

	return lipgloss.NewStyle().Width(h.width).Render(sb.String())
}
