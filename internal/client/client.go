// ABOUTME: HTTP client for the prompt library API
// ABOUTME: Single request pipeline with bearer auth and silent token refresh

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/promptlib/promptdeck/internal/debuglog"
)

// TokenSource supplies bearer tokens to the request pipeline.
// Refresh exchanges the stored refresh token for a new access token;
// implementations clear their own state when the refresh is rejected.
type TokenSource interface {
	AccessToken() string
	Refresh(ctx context.Context) (string, error)
}

// Client is the API client for the prompt library backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	validate   *validator.Validate
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		validate: validator.New(),
	}
}

// SetTokenSource attaches the session's token source. Requests made
// without one are sent unauthenticated.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

// SetTimeout overrides the default per-request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	if timeout > 0 {
		c.httpClient.Timeout = timeout
	}
}

// requestOptions control per-request pipeline behavior
type requestOptions struct {
	// skipAuth leaves the Authorization header off entirely
	// (token and register endpoints).
	skipAuth bool
	// noRefresh disables the 401 refresh-and-retry path. Used for
	// /auth/user/ so a stale identity probe cannot loop into refresh.
	noRefresh bool
	// form sends the body as application/x-www-form-urlencoded
	form url.Values
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any, opts requestOptions) error {
	retried := false
	for {
		resp, err := c.send(ctx, method, path, body, opts)
		if err != nil {
			return err
		}

		if resp.StatusCode == http.StatusUnauthorized && !opts.skipAuth && !opts.noRefresh && !retried && c.tokens != nil {
			resp.Body.Close()
			retried = true
			if _, err := c.tokens.Refresh(ctx); err != nil {
				return &AuthError{Message: "session expired"}
			}
			continue
		}

		return c.finish(resp, out)
	}
}

func (c *Client) send(ctx context.Context, method, path string, body any, opts requestOptions) (*http.Response, error) {
	var reader io.Reader
	contentType := ""
	switch {
	case opts.form != nil:
		reader = strings.NewReader(opts.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case body != nil:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if !opts.skipAuth && c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	reqID := uuid.NewString()
	debuglog.Request(reqID, method, path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		debuglog.Error("request "+reqID, err)
		return nil, c.handleRequestError(ctx, err)
	}
	debuglog.Response(reqID, resp.StatusCode)
	return resp, nil
}

// finish consumes the response, mapping non-2xx statuses to typed errors
func (c *Client) finish(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("invalid response from backend: %w", err)
		}
		return nil
	}

	msg := c.errorMessage(resp.Body)
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &AuthError{Message: msg}
	case http.StatusForbidden:
		return &AuthorizationError{Message: msg}
	default:
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
}

// errorMessage extracts the server's message from an error body.
// The backend uses {"detail": "..."} for most failures and per-field
// maps for serializer errors.
func (c *Client) errorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}

	var detail struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(data, &detail); err == nil {
		if detail.Detail != "" {
			return detail.Detail
		}
		if detail.Error != "" {
			return detail.Error
		}
	}

	var fields map[string][]string
	if err := json.Unmarshal(data, &fields); err == nil && len(fields) > 0 {
		parts := make([]string, 0, len(fields))
		for field, msgs := range fields {
			parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, ", ")))
		}
		return strings.Join(parts, "; ")
	}

	return strings.TrimSpace(string(data))
}

// handleRequestError converts transport errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// validateInput maps struct tag violations onto a ValidationError
func (c *Client) validateInput(input any) error {
	err := c.validate.Struct(input)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = "is required"
		case "min":
			fields[fe.Field()] = fmt.Sprintf("must be at least %s characters", fe.Param())
		case "max":
			fields[fe.Field()] = fmt.Sprintf("must be at most %s characters", fe.Param())
		case "email":
			fields[fe.Field()] = "must be a valid email address"
		default:
			fields[fe.Field()] = "is invalid"
		}
	}
	return &ValidationError{Fields: fields}
}

// Login exchanges credentials for a token pair via POST /token/
func (c *Client) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var pair TokenPair
	err := c.do(ctx, http.MethodPost, "/token/", nil, &pair, requestOptions{skipAuth: true, form: form})
	if err != nil {
		var authErr *AuthError
		if errors.As(err, &authErr) {
			return nil, &AuthError{Message: "invalid username or password"}
		}
		return nil, err
	}
	return &pair, nil
}

// RefreshAccess exchanges a refresh token for a new access token
func (c *Client) RefreshAccess(ctx context.Context, refreshToken string) (string, error) {
	payload := map[string]string{"refresh": refreshToken}
	var result struct {
		Access string `json:"access"`
	}
	err := c.do(ctx, http.MethodPost, "/token/refresh/", payload, &result, requestOptions{skipAuth: true})
	if err != nil {
		return "", err
	}
	return result.Access, nil
}

// Register creates a new account via POST /register/
func (c *Client) Register(ctx context.Context, input RegisterInput) error {
	if err := c.validateInput(input); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/register/", input, nil, requestOptions{skipAuth: true})
}

// CurrentUser fetches the authenticated identity. A 401 here is
// returned directly; the refresh path is intentionally disabled.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	err := c.do(ctx, http.MethodGet, "/auth/user/", nil, &user, requestOptions{noRefresh: true})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListOptions filter the prompt listing
type ListOptions struct {
	Status string // pending, approved, rejected, pending_deletion
	Mine   bool   // restrict to prompts owned by the caller
}

// ListPrompts calls GET /prompts/ with optional filters
func (c *Client) ListPrompts(ctx context.Context, opts ListOptions) ([]Prompt, error) {
	q := url.Values{}
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}
	if opts.Mine {
		q.Set("mine", "1")
	}
	path := "/prompts/"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var prompts []Prompt
	if err := c.do(ctx, http.MethodGet, path, nil, &prompts, requestOptions{}); err != nil {
		return nil, err
	}
	return prompts, nil
}

// CreatePrompt submits a new prompt, which enters the moderation queue
func (c *Client) CreatePrompt(ctx context.Context, input PromptInput) (*Prompt, error) {
	if err := c.validateInput(input); err != nil {
		return nil, err
	}
	var prompt Prompt
	if err := c.do(ctx, http.MethodPost, "/prompts/", input, &prompt, requestOptions{}); err != nil {
		return nil, err
	}
	return &prompt, nil
}

// UpdatePrompt edits an existing prompt. Edits by non-staff owners
// send the prompt back to the moderation queue on the server side.
func (c *Client) UpdatePrompt(ctx context.Context, id int, input PromptInput) (*Prompt, error) {
	if err := c.validateInput(input); err != nil {
		return nil, err
	}
	var prompt Prompt
	path := fmt.Sprintf("/prompts/%d/", id)
	if err := c.do(ctx, http.MethodPut, path, input, &prompt, requestOptions{}); err != nil {
		return nil, err
	}
	return &prompt, nil
}

// Upvote toggles an upvote on a prompt
func (c *Client) Upvote(ctx context.Context, id int) (*Prompt, error) {
	return c.promptAction(ctx, id, "upvote")
}

// Downvote toggles a downvote on a prompt
func (c *Client) Downvote(ctx context.Context, id int) (*Prompt, error) {
	return c.promptAction(ctx, id, "downvote")
}

// Bookmark toggles the caller's bookmark on a prompt
func (c *Client) Bookmark(ctx context.Context, id int) (*Prompt, error) {
	return c.promptAction(ctx, id, "bookmark")
}

// RequestDelete asks moderators to remove the caller's own prompt
func (c *Client) RequestDelete(ctx context.Context, id int) (*Prompt, error) {
	return c.promptAction(ctx, id, "request_delete")
}

// Approve accepts a pending prompt (staff only)
func (c *Client) Approve(ctx context.Context, id int) (*Prompt, error) {
	return c.promptAction(ctx, id, "approve")
}

// Reject declines a pending prompt (staff only)
func (c *Client) Reject(ctx context.Context, id int) (*Prompt, error) {
	return c.promptAction(ctx, id, "reject")
}

func (c *Client) promptAction(ctx context.Context, id int, action string) (*Prompt, error) {
	var prompt Prompt
	path := fmt.Sprintf("/prompts/%d/%s/", id, action)
	if err := c.do(ctx, http.MethodPost, path, nil, &prompt, requestOptions{}); err != nil {
		return nil, err
	}
	return &prompt, nil
}

// DeletePrompt permanently removes a prompt (staff only)
func (c *Client) DeletePrompt(ctx context.Context, id int) error {
	path := fmt.Sprintf("/prompts/%d/", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, requestOptions{})
}

// History fetches the version history of a prompt, newest first
func (c *Client) History(ctx context.Context, id int) ([]PromptVersion, error) {
	var versions []PromptVersion
	path := fmt.Sprintf("/prompts/%d/history/", id)
	if err := c.do(ctx, http.MethodGet, path, nil, &versions, requestOptions{}); err != nil {
		return nil, err
	}
	return versions, nil
}

// Revert restores a prompt to one of its historical versions
func (c *Client) Revert(ctx context.Context, id, versionID int) (*Prompt, error) {
	var prompt Prompt
	path := fmt.Sprintf("/prompts/%d/revert/%d/", id, versionID)
	if err := c.do(ctx, http.MethodPost, path, nil, &prompt, requestOptions{}); err != nil {
		return nil, err
	}
	return &prompt, nil
}

// Categories fetches the available category identifiers
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, http.MethodGet, "/categories/", nil, &categories, requestOptions{}); err != nil {
		return nil, err
	}
	return categories, nil
}
