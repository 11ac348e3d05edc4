package session_test

import (
	"testing"

	"github.com/oleastore/go-admin-console/session"
	"github.com/oleastore/go-admin-console/tokenstore"
	"github.com/oleastore/go-admin-console/users"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	persistent *tokenstore.MemoryStore
	ephemeral  *tokenstore.MemoryStore
	navigated  []string
	manager    *session.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		persistent: tokenstore.NewMemoryStore(),
		ephemeral:  tokenstore.NewMemoryStore(),
	}
	manager, err := session.NewManager(f.persistent, f.ephemeral,
		session.WithNavigator(session.NavigatorFunc(func(path string) {
			f.navigated = append(f.navigated, path)
		})),
	)
	require.NoError(t, err)
	f.manager = manager
	return f
}

func adminUser() users.User {
	return users.User{ID: "u-1", Email: "admin@olea.store", Username: "admin", Role: users.RoleAdmin}
}

func TestNewManagerRequiresStores(t *testing.T) {
	_, err := session.NewManager(nil, tokenstore.NewMemoryStore())
	require.Error(t, err)
	_, err = session.NewManager(tokenstore.NewMemoryStore(), nil)
	require.Error(t, err)
}

func TestLoginRememberMePersists(t *testing.T) {
	f := newFixture(t)

	f.manager.Login(adminUser(), "access-1", "refresh-1", true)

	current := f.manager.Current()
	require.True(t, current.LoggedIn)
	require.Equal(t, "access-1", current.AccessToken)
	require.Equal(t, "admin@olea.store", current.User.Email)

	token, ok := f.persistent.Get(tokenstore.KeyAccessToken)
	require.True(t, ok)
	require.Equal(t, "access-1", token)
	flag, ok := f.persistent.Get(tokenstore.KeyIsLoggedIn)
	require.True(t, ok)
	require.Equal(t, tokenstore.LoggedInValue, flag)

	_, ok = f.ephemeral.Get(tokenstore.KeyAccessToken)
	require.False(t, ok)
}

func TestLoginSessionOnlyStaysEphemeral(t *testing.T) {
	f := newFixture(t)

	f.manager.Login(adminUser(), "access-1", "refresh-1", false)

	require.True(t, f.manager.Current().LoggedIn)

	token, ok := f.ephemeral.Get(tokenstore.KeyAccessToken)
	require.True(t, ok)
	require.Equal(t, "access-1", token)
	_, ok = f.persistent.Get(tokenstore.KeyAccessToken)
	require.False(t, ok)
}

func TestLoginSwitchingStoresClearsTheOther(t *testing.T) {
	f := newFixture(t)

	f.manager.Login(adminUser(), "access-1", "refresh-1", true)
	f.manager.Login(adminUser(), "access-2", "refresh-2", false)

	_, ok := f.persistent.Get(tokenstore.KeyAccessToken)
	require.False(t, ok)
	token, ok := f.ephemeral.Get(tokenstore.KeyAccessToken)
	require.True(t, ok)
	require.Equal(t, "access-2", token)
}

func TestLogoutIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.manager.Login(adminUser(), "access-1", "refresh-1", true)

	f.manager.Logout()
	first := f.manager.Current()
	require.False(t, first.LoggedIn)
	require.Nil(t, first.User)
	_, ok := f.persistent.Get(tokenstore.KeyAccessToken)
	require.False(t, ok)

	f.manager.Logout()
	require.Equal(t, first, f.manager.Current())
	require.Equal(t, []string{session.RootPath, session.RootPath}, f.navigated)
}

func TestForceLogoutNavigatesToLogin(t *testing.T) {
	f := newFixture(t)
	f.manager.Login(adminUser(), "access-1", "refresh-1", true)

	f.manager.ForceLogout()

	require.False(t, f.manager.Current().LoggedIn)
	_, ok := f.persistent.Get(tokenstore.KeyAccessToken)
	require.False(t, ok)
	_, ok = f.persistent.Get(tokenstore.KeyIsLoggedIn)
	require.False(t, ok)
	require.Equal(t, []string{session.LoginPath}, f.navigated)
}

func TestRestoreFromPersistedSession(t *testing.T) {
	f := newFixture(t)
	f.manager.Login(adminUser(), "access-1", "refresh-1", true)

	// A second manager over the same stores models a console restart.
	restarted, err := session.NewManager(f.persistent, f.ephemeral)
	require.NoError(t, err)

	current := restarted.Current()
	require.True(t, current.LoggedIn)
	require.Equal(t, "access-1", current.AccessToken)
	require.Equal(t, "admin@olea.store", current.User.Email)

	refresh, ok := restarted.RefreshToken()
	require.True(t, ok)
	require.Equal(t, "refresh-1", refresh)
}

func TestRestoreIgnoresCorruptSnapshot(t *testing.T) {
	persistent := tokenstore.NewMemoryStore()
	persistent.Set(tokenstore.KeyAccessToken, "access-1")
	persistent.Set(tokenstore.KeyUser, "{corrupt")

	manager, err := session.NewManager(persistent, tokenstore.NewMemoryStore())
	require.NoError(t, err)
	require.False(t, manager.Current().LoggedIn)
}

func TestSetAccessTokenUpdatesSessionAndStore(t *testing.T) {
	f := newFixture(t)
	f.manager.Login(adminUser(), "access-1", "refresh-1", false)

	f.manager.SetAccessToken("access-2")

	require.Equal(t, "access-2", f.manager.Current().AccessToken)
	token, ok := f.manager.AccessToken()
	require.True(t, ok)
	require.Equal(t, "access-2", token)
}

func TestAdminAccessPredicate(t *testing.T) {
	require.False(t, session.Session{}.AdminAccess())

	regular := users.User{Role: users.RoleUser}
	require.False(t, session.Session{LoggedIn: true, User: &regular}.AdminAccess())

	admin := users.User{Role: users.RoleAdmin}
	require.True(t, session.Session{LoggedIn: true, User: &admin}.AdminAccess())
}
