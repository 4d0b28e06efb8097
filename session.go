package boclient

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/kittipatv/boclient/store"
)

// Manager owns the local session: it is the only writer of authentication
// state. Login, Me, and Logout mutate the credential store and the in-memory
// session; the guard and UI layers only read. Callers may run in parallel, so
// all mutation is serialized behind a mutex.
type Manager struct {
	store  *store.Store
	gw     *Gateway
	nav    Navigator
	routes RouteConfig
	logger *zap.Logger

	mu    sync.RWMutex
	user  *User
	state SessionState

	// loginInFlight prevents two login chains from interleaving. A second
	// Login while one is running is a no-op.
	loginInFlight atomic.Bool
}

func newManager(st *store.Store, gw *Gateway, nav Navigator, routes RouteConfig, logger *zap.Logger) *Manager {
	return &Manager{
		store:  st,
		gw:     gw,
		nav:    nav,
		routes: routes,
		logger: logger,
	}
}

// Login sends credentials to the login endpoint. On success it stores the
// returned token, refreshes the identity, and navigates to the landing route.
// Failures are deliberately swallowed: the gateway has already surfaced the
// single user-visible notification, and the login caller has no
// distinguishable failure to act on.
func (m *Manager) Login(ctx context.Context, creds Credentials) {
	if !m.loginInFlight.CompareAndSwap(false, true) {
		m.logger.Debug("login chain already in flight, ignoring")
		return
	}
	defer m.loginInFlight.Store(false)

	m.setState(StateAuthenticating)

	data, err := m.gw.Post(ctx, loginEndpoint, creds)
	if err != nil {
		m.setState(StateAnonymous)
		m.logger.Debug("login rejected", zap.Error(err))
		return
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.Token == "" {
		m.setState(StateAnonymous)
		m.logger.Warn("login response missing token", zap.Error(err))
		return
	}
	if err := m.store.SaveToken(ctx, payload.Token); err != nil {
		m.setState(StateAnonymous)
		m.logger.Warn("token persist failed", zap.Error(err))
		return
	}

	m.Me(ctx)

	if m.Authenticated() {
		m.nav.Navigate(m.routes.LandingPath)
	}
}

// Me fetches the current identity and permission set using the stored token.
// Success populates the session and persists the snapshot; any failure is
// treated as an invalid session and recovered by Logout. The triggering
// gateway call has already surfaced a message, so Me adds none.
func (m *Manager) Me(ctx context.Context) {
	data, err := m.gw.Get(ctx, meEndpoint)
	if err != nil {
		m.Logout(ctx)
		return
	}

	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		m.logger.Warn("identity payload undecodable", zap.Error(err))
		m.Logout(ctx)
		return
	}

	m.mu.Lock()
	m.user = &user
	m.state = StateAuthenticated
	m.mu.Unlock()

	// Snapshot persistence is best-effort: a failed write only costs the
	// rehydration shortcut on next start.
	if err := m.store.SaveSession(ctx, &store.Snapshot{
		Authenticated: true,
		User:          json.RawMessage(data),
	}); err != nil {
		m.logger.Warn("session snapshot persist failed", zap.Error(err))
	}
}

// Logout clears the credential store, resets the session to unauthenticated,
// and navigates to the login route. Safe to call repeatedly; logging out an
// anonymous session produces the same end state. No backend call is made.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.user = nil
	m.state = StateAnonymous
	m.mu.Unlock()

	if err := m.store.DeleteToken(ctx); err != nil {
		m.logger.Warn("token delete failed", zap.Error(err))
	}
	if err := m.store.DeleteSession(ctx); err != nil {
		m.logger.Warn("session snapshot delete failed", zap.Error(err))
	}

	m.nav.Navigate(m.routes.LoginPath)
}

// Restore rehydrates the session from the persisted snapshot without a
// network call. The restored identity may be stale; a following Me call
// revalidates it against the backend. Returns true when a session was
// restored.
func (m *Manager) Restore(ctx context.Context) bool {
	snap, err := m.store.LoadSession(ctx)
	if err != nil {
		return false
	}
	if !snap.Authenticated || len(snap.User) == 0 {
		return false
	}

	var user User
	if err := json.Unmarshal(snap.User, &user); err != nil {
		m.logger.Warn("persisted snapshot undecodable, discarding", zap.Error(err))
		if delErr := m.store.DeleteSession(ctx); delErr != nil {
			m.logger.Warn("session snapshot delete failed", zap.Error(delErr))
		}
		return false
	}

	m.mu.Lock()
	m.user = &user
	m.state = StateAuthenticated
	m.mu.Unlock()
	return true
}

// State returns the current session lifecycle state.
func (m *Manager) State() SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Authenticated reports whether a successful identity fetch populated the
// session. True implies User returns a non-nil record.
func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == StateAuthenticated && m.user != nil
}

// User returns a copy of the current identity record, or nil when anonymous.
func (m *Manager) User() *User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	u.Permissions = append([]string(nil), m.user.Permissions...)
	return &u
}

// HasPermission reports whether the current user holds the named permission.
// Always false when anonymous.
func (m *Manager) HasPermission(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != StateAuthenticated {
		return false
	}
	return m.user.HasPermission(name)
}

func (m *Manager) setState(s SessionState) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}
