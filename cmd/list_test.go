// ABOUTME: Tests for the list command
// ABOUTME: Covers status validation, table output, and the end-to-end listing

package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/promptlib/promptdeck/internal/client"
	"github.com/promptlib/promptdeck/internal/session"
)

func TestValidateStatus(t *testing.T) {
	for _, valid := range []string{"", "pending", "approved", "rejected", "pending_deletion"} {
		if err := validateStatus(valid); err != nil {
			t.Errorf("expected %q to be valid, got %v", valid, err)
		}
	}
	if err := validateStatus("published"); err == nil {
		t.Error("expected unknown status to be rejected")
	}
}

func TestFilterOwned(t *testing.T) {
	prompts := []client.Prompt{
		{ID: 1, UserUsername: "alice"},
		{ID: 2, UserUsername: "bob"},
		{ID: 3, UserUsername: "alice"},
	}

	owned := filterOwned(prompts, &client.User{Username: "alice"})
	if len(owned) != 2 {
		t.Errorf("expected 2 owned prompts, got %d", len(owned))
	}

	// Without a cached user the filter is a no-op
	if got := filterOwned(prompts, nil); len(got) != 3 {
		t.Errorf("expected passthrough without a user, got %d", len(got))
	}
}

func TestFormatListTable(t *testing.T) {
	prompts := []client.Prompt{
		{ID: 1, Title: "Standup summarizer", Category: "engineering", Status: "approved", VoteCount: 4, UserUsername: "alice"},
		{ID: 2, Title: "Cold email opener", Category: "sales", Status: "pending", VoteCount: -1, UserUsername: "bob"},
	}

	out := formatListTable(prompts)
	for _, want := range []string{"ID", "TITLE", "Standup summarizer", "Engineering", "+4", "-1", "bob"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected table to contain %q, got:\n%s", want, out)
		}
	}
}

func TestFormatListTable_Empty(t *testing.T) {
	if out := formatListTable(nil); !strings.Contains(out, "No prompts found") {
		t.Errorf("expected empty message, got %q", out)
	}
}

// seedSession writes a signed-in session into the config dir
func seedSession(t *testing.T, dir string) {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	access, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	store := session.NewStore(dir)
	if err := store.Save(&session.State{
		AccessToken:  access,
		RefreshToken: "refresh-1",
		User:         &client.User{ID: 1, Username: "alice"},
	}); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
}

func TestRunList_EndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/prompts/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]client.Prompt{
			{ID: 1, Title: "Standup summarizer", Category: "engineering", Status: "approved", VoteCount: 4, UserUsername: "alice"},
		})
	}))
	defer server.Close()

	dir := t.TempDir()
	seedSession(t, dir)
	os.Setenv("PROMPTDECK_CONFIG_DIR", dir)
	os.Setenv("PROMPTDECK_API_URL", server.URL)
	defer os.Unsetenv("PROMPTDECK_CONFIG_DIR")
	defer os.Unsetenv("PROMPTDECK_API_URL")
	listStatus = ""
	listMine = false

	var sb strings.Builder
	if code := runList(context.Background(), &sb); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, sb.String())
	}
	if !strings.Contains(sb.String(), "Standup summarizer") {
		t.Errorf("expected listing in output, got:\n%s", sb.String())
	}
}

func TestRunList_NotSignedIn(t *testing.T) {
	os.Setenv("PROMPTDECK_CONFIG_DIR", t.TempDir())
	defer os.Unsetenv("PROMPTDECK_CONFIG_DIR")
	listStatus = ""
	listMine = false

	var sb strings.Builder
	if code := runList(context.Background(), &sb); code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(sb.String(), "not signed in") {
		t.Errorf("expected sign-in hint, got %q", sb.String())
	}
}

func TestRunList_InvalidStatus(t *testing.T) {
	listStatus = "published"
	defer func() { listStatus = "" }()

	var sb strings.Builder
	if code := runList(context.Background(), &sb); code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(sb.String(), "unknown status") {
		t.Errorf("expected status error, got %q", sb.String())
	}
}
