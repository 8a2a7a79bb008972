// ABOUTME: Tests for the prompt library API client
// ABOUTME: Uses httptest to verify auth, refresh, and error mapping

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// fakeTokens is a minimal TokenSource for transport tests
type fakeTokens struct {
	access       string
	refreshed    string
	refreshErr   error
	refreshCalls int32
}

func (f *fakeTokens) AccessToken() string {
	return f.access
}

func (f *fakeTokens) Refresh(ctx context.Context) (string, error) {
	atomic.AddInt32(&f.refreshCalls, 1)
	if f.refreshErr != nil {
		return "", f.refreshErr
	}
	f.access = f.refreshed
	return f.refreshed, nil
}

func TestLogin_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/token/" {
			t.Errorf("expected path /token/, got %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		if r.PostForm.Get("username") != "alice" {
			t.Errorf("expected username alice, got %s", r.PostForm.Get("username"))
		}
		json.NewEncoder(w).Encode(TokenPair{Access: "access-1", Refresh: "refresh-1"})
	}))
	defer server.Close()

	c := New(server.URL)
	pair, err := c.Login(context.Background(), "alice", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pair.Access != "access-1" || pair.Refresh != "refresh-1" {
		t.Errorf("unexpected token pair: %+v", pair)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "No active account found"})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Login(context.Background(), "alice", "wrong")

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
}

func TestCurrentUser_BearerHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token-a" {
			t.Errorf("expected bearer header, got %q", got)
		}
		json.NewEncoder(w).Encode(User{ID: 1, Username: "alice", IsStaff: true})
	}))
	defer server.Close()

	c := New(server.URL)
	c.SetTokenSource(&fakeTokens{access: "token-a"})

	user, err := c.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !user.IsStaff {
		t.Error("expected is_staff to be true")
	}
}

func TestCurrentUser_401NeverRefreshes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	tokens := &fakeTokens{access: "stale", refreshed: "fresh"}
	c := New(server.URL)
	c.SetTokenSource(tokens)

	_, err := c.CurrentUser(context.Background())

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if tokens.refreshCalls != 0 {
		t.Errorf("expected no refresh attempts, got %d", tokens.refreshCalls)
	}
}

func TestListPrompts_401RefreshesOnceAndRetries(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&requests, 1)
		if n == 1 {
			if r.Header.Get("Authorization") != "Bearer stale" {
				t.Errorf("first request should carry stale token, got %q", r.Header.Get("Authorization"))
			}
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.Header.Get("Authorization") != "Bearer fresh" {
			t.Errorf("retry should carry refreshed token, got %q", r.Header.Get("Authorization"))
		}
		json.NewEncoder(w).Encode([]Prompt{{ID: 1, Title: "hello"}})
	}))
	defer server.Close()

	tokens := &fakeTokens{access: "stale", refreshed: "fresh"}
	c := New(server.URL)
	c.SetTokenSource(tokens)

	prompts, err := c.ListPrompts(context.Background(), ListOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prompts) != 1 || prompts[0].ID != 1 {
		t.Errorf("unexpected prompts: %+v", prompts)
	}
	if tokens.refreshCalls != 1 {
		t.Errorf("expected exactly one refresh, got %d", tokens.refreshCalls)
	}
	if requests != 2 {
		t.Errorf("expected exactly two requests, got %d", requests)
	}
}

func TestListPrompts_RefreshFailureIsTerminal(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	tokens := &fakeTokens{access: "stale", refreshErr: errors.New("refresh rejected")}
	c := New(server.URL)
	c.SetTokenSource(tokens)

	_, err := c.ListPrompts(context.Background(), ListOptions{})

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if requests != 1 {
		t.Errorf("expected original request only, got %d", requests)
	}
	if tokens.refreshCalls != 1 {
		t.Errorf("expected one refresh attempt, got %d", tokens.refreshCalls)
	}
}

func TestListPrompts_RetryStillUnauthorized(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	tokens := &fakeTokens{access: "stale", refreshed: "still-bad"}
	c := New(server.URL)
	c.SetTokenSource(tokens)

	_, err := c.ListPrompts(context.Background(), ListOptions{})

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if requests != 2 {
		t.Errorf("expected one retry only, got %d requests", requests)
	}
	if tokens.refreshCalls != 1 {
		t.Errorf("expected one refresh only, got %d", tokens.refreshCalls)
	}
}

func TestListPrompts_QueryParameters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("status") != "pending" {
			t.Errorf("expected status=pending, got %s", r.URL.Query().Get("status"))
		}
		if r.URL.Query().Get("mine") != "1" {
			t.Errorf("expected mine=1, got %s", r.URL.Query().Get("mine"))
		}
		json.NewEncoder(w).Encode([]Prompt{})
	}))
	defer server.Close()

	c := New(server.URL)
	if _, err := c.ListPrompts(context.Background(), ListOptions{Status: "pending", Mine: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestForbiddenMapsToAuthorizationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Only the owner can request deletion."})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.RequestDelete(context.Background(), 7)

	var forbidden *AuthorizationError
	if !errors.As(err, &forbidden) {
		t.Fatalf("expected AuthorizationError, got %v", err)
	}
	if forbidden.Message != "Only the owner can request deletion." {
		t.Errorf("expected server detail message, got %q", forbidden.Message)
	}
}

func TestAPIErrorCarriesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Prompt is already approved."})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Approve(context.Background(), 3)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "Prompt is already approved." {
		t.Errorf("expected server message, got %q", apiErr.Message)
	}
}

func TestCreatePrompt_ValidationBeforeRequest(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.CreatePrompt(context.Background(), PromptInput{Title: "no body"})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"Text", "TaskType", "OutputFormat", "Category"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("expected %s to be reported, fields: %v", field, verr.Fields)
		}
	}
	if requests != 0 {
		t.Errorf("expected no HTTP request for invalid input, got %d", requests)
	}
}

func TestDeletePrompt_NoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		if r.URL.Path != "/prompts/42/" {
			t.Errorf("expected /prompts/42/, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := New(server.URL)
	if err := c.DeletePrompt(context.Background(), 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRevert_Path(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/prompts/7/revert/12/" {
			t.Errorf("expected /prompts/7/revert/12/, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Prompt{ID: 7, Title: "restored"})
	}))
	defer server.Close()

	c := New(server.URL)
	p, err := c.Revert(context.Background(), 7, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Title != "restored" {
		t.Errorf("expected restored title, got %q", p.Title)
	}
}

func TestSetTimeout(t *testing.T) {
	c := New("http://localhost:1")
	if c.httpClient.Timeout != 30*time.Second {
		t.Errorf("expected 30s default timeout, got %v", c.httpClient.Timeout)
	}

	c.SetTimeout(5 * time.Second)
	if c.httpClient.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", c.httpClient.Timeout)
	}

	// Zero and negative values keep the previous timeout
	c.SetTimeout(0)
	if c.httpClient.Timeout != 5*time.Second {
		t.Errorf("expected timeout unchanged, got %v", c.httpClient.Timeout)
	}
}

func TestConnectionError(t *testing.T) {
	c := New("http://localhost:1")
	_, err := c.Categories(context.Background())
	if err == nil {
		t.Error("expected connection error, got nil")
	}
}
