package apiclient

import "net/http"

// Credentials is the client's view of the token store. The session manager
// satisfies it; tests supply a fake.
type Credentials interface {
	// AccessToken returns the current access credential, if present.
	AccessToken() (string, bool)

	// RefreshToken returns the long-lived refresh credential, if present.
	RefreshToken() (string, bool)

	// SetAccessToken replaces the access credential after a refresh.
	SetAccessToken(token string)

	// Clear wipes every stored credential.
	Clear()
}

// AttachBearer decorates every outgoing request with the current access
// credential. Requests sent while no credential is stored go out unmodified;
// unauthenticated endpoints must tolerate that.
func AttachBearer(creds Credentials) Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			if token, ok := creds.AccessToken(); ok && token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}
			return next.Do(req)
		})
	}
}
