// Package session holds the console's in-memory login state and keeps it in
// step with the credential stores. A Manager is constructed once and
// injected wherever login state is needed; there is no package-level
// singleton.
package session

import "github.com/oleastore/go-admin-console/users"

// Session is the current operator's login state for this console instance.
// Invariant: LoggedIn is true exactly when both User and AccessToken are
// present.
type Session struct {
	LoggedIn    bool
	User        *users.User
	AccessToken string
}

// AdminAccess is the route-guard predicate: only a logged-in operator with
// the admin role may enter guarded screens. Pure and stateless; callers
// re-evaluate it on every navigation.
func (s Session) AdminAccess() bool {
	return s.LoggedIn && s.User.IsAdmin()
}

// Navigator is how the session layer asks the embedding UI to move
// somewhere else, e.g. back to the login screen after a forced sign-out.
// The UI layer is an opaque caller; the default navigator does nothing.
type Navigator interface {
	NavigateTo(path string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(path string)

func (f NavigatorFunc) NavigateTo(path string) { f(path) }

// Navigation targets used by logout and forced sign-out.
const (
	RootPath  = "/"
	LoginPath = "/login"
)
