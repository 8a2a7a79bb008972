// ABOUTME: Tests for the prompt create/edit wizard
// ABOUTME: Covers step advancement, prefill, cancellation, and validation

package wizard

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/promptlib/promptdeck/internal/client"
)

func TestNewStartsOnClassificationStep(t *testing.T) {
	w := New(nil)

	if w.step != 1 {
		t.Errorf("expected step 1, got %d", w.step)
	}
	if w.Editing() {
		t.Error("expected a fresh wizard not to be editing")
	}
}

func TestNewEditPrefillsFields(t *testing.T) {
	p := client.Prompt{
		ID:           7,
		Title:        "Release notes drafter",
		Description:  "Turns a changelog into release notes",
		Text:         "Write release notes for...",
		Guidance:     "Paste the changelog first",
		TaskType:     "create_content",
		OutputFormat: "text",
		Category:     "engineering",
	}

	w := NewEdit(p, nil)

	if !w.Editing() {
		t.Error("expected edit mode")
	}
	if w.editID != 7 {
		t.Errorf("expected edit ID 7, got %d", w.editID)
	}
	if w.title != p.Title || w.text != p.Text || w.category != p.Category {
		t.Error("expected fields to be prefilled from the prompt")
	}
}

func TestAdvanceToContentStep(t *testing.T) {
	w := New(nil)
	w.taskType = "research"
	w.outputFormat = "text"
	w.category = "marketing"

	model, cmd := w.advanceStep()
	w = model.(*Wizard)

	if w.step != 2 {
		t.Errorf("expected step 2, got %d", w.step)
	}
	if cmd == nil {
		t.Error("expected the new form's init command")
	}
}

func TestCompleteCarriesInput(t *testing.T) {
	w := New(nil)
	w.step = 2
	w.taskType = "summarize"
	w.outputFormat = "checklist_table"
	w.category = "support"
	w.title = "  Ticket summarizer  "
	w.text = "Summarize this ticket thread"

	_, cmd := w.advanceStep()
	if cmd == nil {
		t.Fatal("expected a completion command")
	}

	done, ok := cmd().(CompleteMsg)
	if !ok {
		t.Fatalf("expected CompleteMsg, got %T", cmd())
	}
	if done.Input.Title != "Ticket summarizer" {
		t.Errorf("expected trimmed title, got %q", done.Input.Title)
	}
	if done.Input.TaskType != "summarize" || done.Input.Category != "support" {
		t.Errorf("unexpected input: %+v", done.Input)
	}
	if done.EditID != 0 {
		t.Errorf("expected zero edit ID for a new prompt, got %d", done.EditID)
	}
}

func TestCompleteCarriesEditID(t *testing.T) {
	w := NewEdit(client.Prompt{ID: 9, Title: "t", Text: "x"}, nil)
	w.step = 2

	_, cmd := w.advanceStep()
	done := cmd().(CompleteMsg)
	if done.EditID != 9 {
		t.Errorf("expected edit ID 9, got %d", done.EditID)
	}
}

func TestEscCancels(t *testing.T) {
	w := New(nil)

	_, cmd := w.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a cancel command")
	}
	if _, ok := cmd().(CancelledMsg); !ok {
		t.Errorf("expected CancelledMsg, got %T", cmd())
	}
}

func TestCategoryOptionsPreferServerList(t *testing.T) {
	w := New([]string{"engineering", "design"})

	opts := w.categoryOptions()
	if len(opts) != 2 {
		t.Fatalf("expected 2 options from the server list, got %d", len(opts))
	}

	fallback := New(nil)
	if len(fallback.categoryOptions()) != len(client.CategoryOptions) {
		t.Error("expected fallback to the predefined categories")
	}
}

func TestValidateRequired(t *testing.T) {
	validate := validateRequired("title")

	if err := validate(""); err == nil {
		t.Error("expected error for empty value")
	}
	if err := validate("   "); err == nil {
		t.Error("expected error for whitespace-only value")
	}
	if err := validate("ok"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestProgressHeaderReflectsMode(t *testing.T) {
	w := New(nil)
	w.SetWidth(100)
	if !strings.Contains(w.renderProgress(), "New Prompt") {
		t.Error("expected New Prompt header")
	}

	e := NewEdit(client.Prompt{ID: 3}, nil)
	e.SetWidth(100)
	if !strings.Contains(e.renderProgress(), "Edit Prompt") {
		t.Error("expected Edit Prompt header")
	}
}

func TestViewShowsStepNames(t *testing.T) {
	w := New(nil)
	w.SetWidth(100)

	view := w.View()
	for _, want := range []string{"Classification", "Content"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}
