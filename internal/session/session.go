// ABOUTME: Session manager owning tokens, identity, and the refresh grant
// ABOUTME: Implements the client's TokenSource so the transport can refresh silently

package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/promptlib/promptdeck/internal/client"
	"github.com/promptlib/promptdeck/internal/debuglog"
)

// Role is the closed set of access levels. Screen routing decides on
// the role, never on the raw staff flag.
type Role int

const (
	RoleMember Role = iota
	RoleAdmin
)

func (r Role) String() string {
	if r == RoleAdmin {
		return "admin"
	}
	return "member"
}

// Manager owns the session lifecycle: login, logout, identity, and
// the single-retry refresh grant used by the request pipeline.
type Manager struct {
	mu     sync.Mutex
	client *client.Client
	store  *Store
	state  *State
}

// NewManager loads any persisted session and wires itself into the
// client as its token source.
func NewManager(c *client.Client, configDir string) (*Manager, error) {
	store := NewStore(configDir)
	state, err := store.Load()
	if err != nil {
		return nil, err
	}

	m := &Manager{
		client: c,
		store:  store,
		state:  state,
	}
	c.SetTokenSource(m)
	return m, nil
}

// AccessToken returns the current access token, or "" when logged out
func (m *Manager) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.AccessToken
}

// Refresh exchanges the stored refresh token for a new access token.
// A rejected refresh clears the session; the caller is logged out.
// Each caller refreshes independently; overlapping refreshes are
// harmless since every granted access token is valid.
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	m.mu.Lock()
	refreshToken := m.state.RefreshToken
	m.mu.Unlock()

	if refreshToken == "" {
		m.clear()
		return "", errors.New("no refresh token")
	}

	access, err := m.client.RefreshAccess(ctx, refreshToken)
	if err != nil {
		debuglog.Error("token refresh", err)
		m.clear()
		return "", err
	}

	m.mu.Lock()
	m.state.AccessToken = access
	m.persistLocked()
	m.mu.Unlock()

	return access, nil
}

// Login authenticates, persists the token pair, and caches the identity
func (m *Manager) Login(ctx context.Context, username, password string) (*client.User, error) {
	pair, err := m.client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.state = &State{AccessToken: pair.Access, RefreshToken: pair.Refresh}
	m.persistLocked()
	m.mu.Unlock()

	user, err := m.client.CurrentUser(ctx)
	if err != nil {
		// A login that cannot establish the identity is a failed
		// login; keeping the tokens would let the next launch enter
		// a session the user was told did not open.
		debuglog.Error("identity fetch after login", err)
		m.clear()
		return nil, err
	}

	m.mu.Lock()
	m.state.User = user
	m.persistLocked()
	m.mu.Unlock()

	return user, nil
}

// FetchCurrentUser refreshes the cached identity from the backend.
// A 401 means the stored tokens are stale: the session is cleared
// without attempting a token refresh, so a dead session cannot loop.
func (m *Manager) FetchCurrentUser(ctx context.Context) (*client.User, error) {
	user, err := m.client.CurrentUser(ctx)
	if err != nil {
		var authErr *client.AuthError
		if errors.As(err, &authErr) {
			m.clear()
		}
		return nil, err
	}

	m.mu.Lock()
	m.state.User = user
	m.persistLocked()
	m.mu.Unlock()

	return user, nil
}

// Logout clears tokens and identity from memory and disk
func (m *Manager) Logout() {
	m.clear()
}

// User returns the cached identity, or nil when unknown
func (m *Manager) User() *client.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.User
}

// Role derives the access level from the cached identity
func (m *Manager) Role() Role {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.User != nil && m.state.User.IsStaff {
		return RoleAdmin
	}
	return RoleMember
}

// IsAdmin reports whether the session holds the admin role
func (m *Manager) IsAdmin() bool {
	return m.Role() == RoleAdmin
}

// Authenticated reports whether a usable session is stored: a live
// access token, or an expired one with a refresh token to redeem.
func (m *Manager) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.AccessToken == "" {
		return false
	}
	if !tokenExpired(m.state.AccessToken) {
		return true
	}
	return m.state.RefreshToken != ""
}

// tokenExpired reads the exp claim without verifying the signature.
// Verification is the backend's job; the client only needs to know
// whether sending this token is pointless.
func tokenExpired(token string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

func (m *Manager) clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = &State{}
	if err := m.store.Clear(); err != nil {
		debuglog.Error("session clear", err)
	}
}

// persistLocked writes the state to disk; callers hold m.mu
func (m *Manager) persistLocked() {
	if err := m.store.Save(m.state); err != nil {
		debuglog.Error("session persist", err)
	}
}
