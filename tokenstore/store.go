// Package tokenstore persists the console's session credentials between
// page loads. It is a plain key-value store: reads that fail for any
// storage-medium reason report the key as absent so the caller falls back
// to a logged-out state instead of crashing.
package tokenstore

// Logical key names for the stored session state.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyUser         = "user"
	KeyIsLoggedIn   = "isLoggedIn"
)

// LoggedInValue is the value stored under KeyIsLoggedIn for an active session.
const LoggedInValue = "true"

// Store is the credential storage contract. Implementations must treat
// medium failures as "absent" on reads and must never panic; writes that
// fail are logged by the implementation and otherwise ignored.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool)

	// Set persists value under key, overwriting any prior value.
	Set(key, value string)

	// Delete removes the given keys. Missing keys are not an error.
	Delete(keys ...string)

	// Clear removes every stored entry.
	Clear()
}
