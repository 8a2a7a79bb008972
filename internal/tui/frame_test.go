// ABOUTME: Test to verify header/footer width alignment
// ABOUTME: Ensures frame renders at correct terminal width

package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/promptlib/promptdeck/internal/client"
)

func TestFrameAlignment(t *testing.T) {
	widths := []int{80, 100, 120}

	for _, targetWidth := range widths {
		t.Run(fmt.Sprintf("width_%d", targetWidth), func(t *testing.T) {
			app := New(client.New("http://localhost:1"), member())

			model, _ := app.Update(tea.WindowSizeMsg{Width: targetWidth, Height: 30})
			app = model.(*App)

			view := app.View()

			lines := strings.Split(view, "\n")
			headerFound := false
			footerFound := false

			// Frame clamps to a minimum of 80 columns for usability
			expectedWidth := targetWidth
			if expectedWidth < 80 {
				expectedWidth = 80
			}

			for _, line := range lines {
				if strings.HasPrefix(line, "╭") {
					headerFound = true
					if w := lipgloss.Width(line); w != expectedWidth {
						t.Errorf("Header width mismatch at width %d: expected %d, got %d", targetWidth, expectedWidth, w)
						t.Logf("Header line: %q", line)
					}
				}

				if strings.Contains(line, "╰") {
					footerFound = true
					footerIdx := strings.Index(line, "╰")
					footerLine := line[footerIdx:]
					if w := lipgloss.Width(footerLine); w != expectedWidth {
						t.Errorf("Footer width mismatch at width %d: expected %d, got %d", targetWidth, expectedWidth, w)
						t.Logf("Footer line: %q", footerLine)
					}
				}
			}

			if !headerFound {
				t.Error("Header not found in output")
			}
			if !footerFound {
				t.Error("Footer not found in output")
			}
		})
	}
}
