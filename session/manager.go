package session

import (
	"encoding/json"
	"sync"

	"github.com/oleastore/go-admin-console/tokenstore"
	"github.com/oleastore/go-admin-console/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Manager owns the Session and synchronises it with two credential stores:
// a persistent one (survives restarts, the remember-me path) and an
// ephemeral one (process lifetime only). Exactly one of them holds the
// credentials of the active session.
type Manager struct {
	mu         sync.RWMutex
	current    Session
	active     tokenstore.Store // store holding the live session's credentials
	persistent tokenstore.Store
	ephemeral  tokenstore.Store
	navigator  Navigator
	log        zerolog.Logger
}

// ManagerOption modifies a Manager during construction.
type ManagerOption func(*Manager)

// WithNavigator sets the navigation callback used on logout and forced
// sign-out.
func WithNavigator(n Navigator) ManagerOption {
	return func(m *Manager) {
		m.navigator = n
	}
}

// WithLogger sets the manager's logger.
func WithLogger(log zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = log
	}
}

// NewManager builds a Manager and restores any persisted session. A stored
// credential is trusted optimistically; the first protected call proves it
// wrong if it has expired server-side.
func NewManager(persistent, ephemeral tokenstore.Store, options ...ManagerOption) (*Manager, error) {
	if persistent == nil {
		return nil, errors.New("[NewManager] persistent store is required")
	}
	if ephemeral == nil {
		return nil, errors.New("[NewManager] ephemeral store is required")
	}

	m := &Manager{
		persistent: persistent,
		ephemeral:  ephemeral,
		active:     ephemeral,
		navigator:  NavigatorFunc(func(string) {}),
		log:        zerolog.Nop(),
	}
	for _, opt := range options {
		opt(m)
	}

	m.restore()
	return m, nil
}

// Current returns a copy of the session state.
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.current
}

// Login records a successful authentication. rememberMe selects where the
// credentials land: the persistent store when true, the ephemeral store
// otherwise. The other store is wiped so a stale session can never shadow
// the live one.
func (m *Manager) Login(user users.User, accessToken, refreshToken string, rememberMe bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	store := m.ephemeral
	other := m.persistent
	if rememberMe {
		store = m.persistent
		other = m.ephemeral
	}
	other.Clear()

	store.Set(tokenstore.KeyAccessToken, accessToken)
	if refreshToken != "" {
		store.Set(tokenstore.KeyRefreshToken, refreshToken)
	}
	store.Set(tokenstore.KeyIsLoggedIn, tokenstore.LoggedInValue)
	if snapshot, err := json.Marshal(user); err != nil {
		m.log.Warn().Err(err).Msg("session: cannot snapshot user")
	} else {
		store.Set(tokenstore.KeyUser, string(snapshot))
	}

	m.active = store
	m.current = Session{LoggedIn: true, User: &user, AccessToken: accessToken}
	m.log.Info().Str("user", user.Email).Bool("remember_me", rememberMe).Msg("session: logged in")
}

// Logout clears the session and both stores, then navigates to the
// application root. Idempotent: a second call only repeats the navigation.
func (m *Manager) Logout() {
	m.mu.Lock()
	wasLoggedIn := m.current.LoggedIn
	m.reset()
	m.mu.Unlock()

	if wasLoggedIn {
		m.log.Info().Msg("session: logged out")
	}
	m.navigator.NavigateTo(RootPath)
}

// ForceLogout is the irrecoverable-refresh path: everything is cleared and
// the UI is sent to the login entry point.
func (m *Manager) ForceLogout() {
	m.mu.Lock()
	m.reset()
	m.mu.Unlock()

	m.log.Warn().Msg("session: forced sign-out")
	m.navigator.NavigateTo(LoginPath)
}

// Clear wipes the session and both stores without navigating anywhere.
// The HTTP client calls this when a refresh fails irrecoverably.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reset()
}

// reset clears state and stores. Callers hold the lock.
func (m *Manager) reset() {
	m.persistent.Clear()
	m.ephemeral.Clear()
	m.active = m.ephemeral
	m.current = Session{}
}

// AccessToken returns the live session's access credential, if any. It is
// read from the active store so the HTTP client always sees the value the
// storage medium holds.
func (m *Manager) AccessToken() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.active.Get(tokenstore.KeyAccessToken)
}

// RefreshToken returns the stored refresh credential, if any.
func (m *Manager) RefreshToken() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.active.Get(tokenstore.KeyRefreshToken)
}

// SetAccessToken replaces the access credential after a successful refresh.
func (m *Manager) SetAccessToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.active.Set(tokenstore.KeyAccessToken, token)
	if m.current.LoggedIn {
		m.current.AccessToken = token
	}
}

// restore rebuilds the session from whichever store persisted one. The
// persistent store wins when both somehow hold credentials.
func (m *Manager) restore() {
	for _, store := range []tokenstore.Store{m.persistent, m.ephemeral} {
		token, ok := store.Get(tokenstore.KeyAccessToken)
		if !ok || token == "" {
			continue
		}
		snapshot, ok := store.Get(tokenstore.KeyUser)
		if !ok {
			continue
		}
		var user users.User
		if err := json.Unmarshal([]byte(snapshot), &user); err != nil {
			m.log.Warn().Err(err).Msg("session: corrupt user snapshot, ignoring stored session")
			continue
		}

		m.active = store
		m.current = Session{LoggedIn: true, User: &user, AccessToken: token}
		m.log.Info().Str("user", user.Email).Msg("session: restored from store")
		return
	}
}
