// ABOUTME: Prompt create/edit wizard as a bubbletea model
// ABOUTME: Uses huh forms with visual progress indicator for step navigation

package wizard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/promptlib/promptdeck/internal/client"
	"github.com/promptlib/promptdeck/internal/tui/icons"
	"github.com/promptlib/promptdeck/internal/tui/styles"
)

// CompleteMsg is sent when the wizard finishes successfully.
// EditID is zero for a new prompt and the prompt ID for an edit.
type CompleteMsg struct {
	Input  client.PromptInput
	EditID int
}

// CancelledMsg is sent when the wizard is cancelled
type CancelledMsg struct{}

// Wizard collects the prompt fields over two steps
type Wizard struct {
	input  client.PromptInput
	editID int
	form   *huh.Form
	step   int
	width  int

	taskType     string
	outputFormat string
	category     string
	title        string
	description  string
	text         string
	guidance     string

	categories []string
}

// Step names for progress indicator
var stepNames = []string{"Classification", "Content"}

// New creates a wizard for a new prompt. The category list comes from
// the categories endpoint, falling back to the predefined set.
func New(categories []string) *Wizard {
	w := &Wizard{
		step:       1,
		categories: categories,
	}
	w.form = w.createStep1Form()
	return w
}

// NewEdit creates a wizard pre-filled from an existing prompt
func NewEdit(p client.Prompt, categories []string) *Wizard {
	w := &Wizard{
		step:         1,
		editID:       p.ID,
		categories:   categories,
		taskType:     p.TaskType,
		outputFormat: p.OutputFormat,
		category:     p.Category,
		title:        p.Title,
		description:  p.Description,
		text:         p.Text,
		guidance:     p.Guidance,
	}
	w.form = w.createStep1Form()
	return w
}

func (w *Wizard) categoryOptions() []huh.Option[string] {
	if len(w.categories) > 0 {
		opts := make([]huh.Option[string], 0, len(w.categories))
		for _, c := range w.categories {
			opts = append(opts, huh.NewOption(client.CategoryLabel(c), c))
		}
		return opts
	}

	opts := make([]huh.Option[string], 0, len(client.CategoryOptions))
	for _, o := range client.CategoryOptions {
		opts = append(opts, huh.NewOption(o.Label, o.Value))
	}
	return opts
}

func optionsFrom(src []client.Option) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(src))
	for _, o := range src {
		opts = append(opts, huh.NewOption(o.Label, o.Value))
	}
	return opts
}

func (w *Wizard) createStep1Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Task type").
				Description("What kind of work does this prompt do?").
				Options(optionsFrom(client.TaskTypeOptions)...).
				Value(&w.taskType),
			huh.NewSelect[string]().
				Title("Output format").
				Description("What does the model produce?").
				Options(optionsFrom(client.OutputFormatOptions)...).
				Value(&w.outputFormat),
			huh.NewSelect[string]().
				Title("Category").
				Description("Which team is this for?").
				Options(w.categoryOptions()...).
				Value(&w.category),
		).Title("Step 1: Classification").
			Description("Classify the prompt so others can find it"),
	).WithTheme(styles.FormTheme())
}

func (w *Wizard) createStep2Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				CharLimit(255).
				Value(&w.title).
				Validate(validateRequired("title")),
			huh.NewInput().
				Title("Description").
				Description("One line on what the prompt is for (optional)").
				Value(&w.description),
			huh.NewText().
				Title("Prompt text").
				Description("The prompt itself").
				Value(&w.text).
				Validate(validateRequired("prompt text")),
			huh.NewText().
				Title("Usage guidance").
				Description("Tips for getting good results (optional)").
				Value(&w.guidance),
		).Title("Step 2: Content").
			Description("Write the prompt and how to use it"),
	).WithTheme(styles.FormTheme())
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		form, cmd := w.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			w.form = f
		}
		return w, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return w, func() tea.Msg { return CancelledMsg{} }
		}
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		return w.advanceStep()
	}

	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	switch w.step {
	case 1:
		w.step = 2
		w.form = w.createStep2Form()
		return w, w.form.Init()

	case 2:
		w.input = client.PromptInput{
			Title:        strings.TrimSpace(w.title),
			Description:  strings.TrimSpace(w.description),
			Text:         w.text,
			Guidance:     w.guidance,
			TaskType:     w.taskType,
			OutputFormat: w.outputFormat,
			Category:     w.category,
		}
		return w, func() tea.Msg {
			return CompleteMsg{Input: w.input, EditID: w.editID}
		}
	}

	return w, nil
}

// SetWidth sets the wizard width for proper rendering
func (w *Wizard) SetWidth(width int) {
	w.width = width
}

// Editing reports whether the wizard edits an existing prompt
func (w *Wizard) Editing() bool {
	return w.editID != 0
}

// View implements tea.Model
func (w *Wizard) View() string {
	var sb strings.Builder

	sb.WriteString(w.renderProgress())
	sb.WriteString("\n\n")
	sb.WriteString(w.form.View())

	return sb.String()
}

// renderProgress renders the step progress indicator
func (w *Wizard) renderProgress() string {
	width := w.width - 1
	if width < 60 {
		width = 60
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary)

	var steps []string
	for i, name := range stepNames {
		stepNum := i + 1
		var indicator string
		var nameStyle lipgloss.Style

		if stepNum < w.step {
			indicator = lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String())
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		} else if stepNum == w.step {
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		} else {
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		}

		steps = append(steps, fmt.Sprintf("%s %s", indicator, nameStyle.Render(name)))
	}

	stepsLine := strings.Join(steps, "    ")

	// Progress bar line format: "│  " + bar + " │" = 5 chars overhead
	barWidth := width - 5
	totalSteps := len(stepNames)
	filledWidth := (w.step * barWidth) / totalSteps
	emptyWidth := barWidth - filledWidth

	filledBar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filledWidth))
	emptyBar := lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", emptyWidth))
	progressBar := filledBar + emptyBar

	header := "New Prompt"
	if w.Editing() {
		header = "Edit Prompt"
	}
	styledTitle := titleStyle.Render(header)
	titleWidth := lipgloss.Width(header)

	// Top border: "┌─ " + title + " " + fill + "┐"
	topFillWidth := max(0, width-5-titleWidth)
	topBorder := "┌─ " + styledTitle + " " + strings.Repeat("─", topFillWidth) + "┐"

	// Steps line: "│ " + content + padding + " │" = 4 chars overhead
	stepsLineWidth := lipgloss.Width(stepsLine)
	stepsPadding := max(0, width-4-stepsLineWidth)
	stepsLinePadded := "│ " + stepsLine + strings.Repeat(" ", stepsPadding) + " │"

	progressLinePadded := "│  " + progressBar + " │"

	bottomFillWidth := width - 2
	bottomBorder := "└" + strings.Repeat("─", bottomFillWidth) + "┘"

	return borderStyle.Render(strings.Join([]string{
		topBorder,
		stepsLinePadded,
		progressLinePadded,
		bottomBorder,
	}, "\n"))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func validateRequired(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}
