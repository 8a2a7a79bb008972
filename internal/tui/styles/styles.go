// ABOUTME: Shared lipgloss styles for consistent TUI appearance
// ABOUTME: Defines colors, borders, and text styles used across components

package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - Core palette
	Primary   = lipgloss.Color("#06B6D4") // Cyan
	Secondary = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
	Text      = lipgloss.Color("#F9FAFB") // Light
	BgDark    = lipgloss.Color("#1F2937") // Dark gray

	// Colors - Extended palette
	Accent  = lipgloss.Color("#22D3EE") // Lighter cyan for highlights
	Surface = lipgloss.Color("#374151") // Elevated surface background
	Info    = lipgloss.Color("#3B82F6") // Blue - informational

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			MarginBottom(1)

	// Status indicators
	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	StatusWarning = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	StatusCritical = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	// Panels
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(1, 2)

	ActivePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	// Help text
	Help = lipgloss.NewStyle().
		Foreground(Muted).
		MarginTop(1)

	// Key style for keyboard shortcuts
	KeyStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	// Value style for emphasized data
	ValueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	// Selected row in lists
	SelectedRow = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	// Vote indicators
	VoteUp = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	VoteDown = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	// Bookmark marker
	BookmarkStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	// Active tab in tab bars
	TabActive = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Underline(true)

	TabInactive = lipgloss.NewStyle().
			Foreground(Muted)
)

// statusColors maps prompt statuses to badge colors
var statusColors = map[string]lipgloss.Color{
	"pending":          Warning,
	"approved":         Secondary,
	"rejected":         Danger,
	"pending_deletion": Muted,
}

// StatusBadge renders a colored badge for a prompt status label
func StatusBadge(status, label string) string {
	color, ok := statusColors[status]
	if !ok {
		color = Muted
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render("[" + label + "]")
}
