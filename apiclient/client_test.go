package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/oleastore/go-admin-console/apiclient"
	"github.com/oleastore/go-admin-console/products"
	"github.com/oleastore/go-admin-console/session"
	"github.com/oleastore/go-admin-console/tokenstore"
	"github.com/oleastore/go-admin-console/users"
	"github.com/stretchr/testify/require"
)

// fakeCreds is a minimal credential store for driving the client directly.
type fakeCreds struct {
	mu      sync.Mutex
	access  string
	refresh string
	cleared bool
}

func (f *fakeCreds) AccessToken() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.access, f.access != ""
}

func (f *fakeCreds) RefreshToken() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refresh, f.refresh != ""
}

func (f *fakeCreds) SetAccessToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.access = token
}

func (f *fakeCreds) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.access, f.refresh = "", ""
	f.cleared = true
}

func productFixture(name string) products.Product {
	return products.Product{
		Name:     name,
		Category: products.CategoryToys,
		Price:    24.99,
		Stock:    10,
		Status:   products.StatusActive,
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

func TestAttachesBearerWhenCredentialPresent(t *testing.T) {
	var gotAuth string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, apiclient.UserPage{})
	}))
	defer backend.Close()

	client, err := apiclient.New(backend.URL, &fakeCreds{access: "access-1"})
	require.NoError(t, err)

	_, err = client.Users.List(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, "Bearer access-1", gotAuth)
}

func TestNoBearerWhenCredentialAbsent(t *testing.T) {
	var gotAuth string
	var hadHeader bool
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hadHeader = r.Header["Authorization"]
		writeJSON(w, http.StatusOK, apiclient.LoginResponse{Access: "a", Refresh: "r"})
	}))
	defer backend.Close()

	client, err := apiclient.New(backend.URL, &fakeCreds{})
	require.NoError(t, err)

	_, err = client.Login(context.Background(), "admin@olea.store", "password")
	require.NoError(t, err)
	require.False(t, hadHeader)
	require.Empty(t, gotAuth)
}

func TestRefreshSuccessRetriesOriginalRequest(t *testing.T) {
	var requests []string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.Method+" "+r.URL.Path+" "+r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/token/refresh/":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, "refresh-1", body["refresh"])
			writeJSON(w, http.StatusOK, map[string]string{"access": "access-2"})
		case "/users/":
			if r.Header.Get("Authorization") != "Bearer access-2" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
				return
			}
			writeJSON(w, http.StatusOK, apiclient.UserPage{Count: 1, Results: []users.User{{ID: "u-1"}}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer backend.Close()

	creds := &fakeCreds{access: "access-1", refresh: "refresh-1"}
	client, err := apiclient.New(backend.URL, creds)
	require.NoError(t, err)

	page, err := client.Users.List(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, 1, page.Count)
	require.Equal(t, "u-1", page.Results[0].ID)

	// Original call, refresh, then the resubmission with the new credential.
	require.Equal(t, []string{
		"GET /users/ Bearer access-1",
		"POST /token/refresh/ ",
		"GET /users/ Bearer access-2",
	}, requests)

	access, ok := creds.AccessToken()
	require.True(t, ok)
	require.Equal(t, "access-2", access)
}

func TestAtMostOneRetryOnRepeated401(t *testing.T) {
	var resourceCalls, refreshCalls int32
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/token/refresh/" {
			atomic.AddInt32(&refreshCalls, 1)
			writeJSON(w, http.StatusOK, map[string]string{"access": "access-2"})
			return
		}
		atomic.AddInt32(&resourceCalls, 1)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "still unauthorized"})
	}))
	defer backend.Close()

	client, err := apiclient.New(backend.URL, &fakeCreds{access: "access-1", refresh: "refresh-1"})
	require.NoError(t, err)

	_, err = client.Users.List(context.Background(), 0)
	require.Error(t, err)
	require.True(t, apiclient.IsStatus(err, http.StatusUnauthorized))
	require.EqualValues(t, 2, atomic.LoadInt32(&resourceCalls))
	require.EqualValues(t, 1, atomic.LoadInt32(&refreshCalls))
}

func TestNoRefreshWithoutRefreshCredential(t *testing.T) {
	var refreshCalled bool
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/token/refresh/" {
			refreshCalled = true
		}
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "unauthorized"})
	}))
	defer backend.Close()

	client, err := apiclient.New(backend.URL, &fakeCreds{access: "stale"})
	require.NoError(t, err)

	_, err = client.Users.List(context.Background(), 0)
	require.True(t, apiclient.IsStatus(err, http.StatusUnauthorized))
	require.False(t, refreshCalled)
}

func TestRefreshFailureClearsCredentialsAndSignsOut(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/token/refresh/" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "refresh expired"})
			return
		}
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
	}))
	defer backend.Close()

	creds := &fakeCreds{access: "stale", refresh: "expired"}
	var signedOut bool
	client, err := apiclient.New(backend.URL, creds,
		apiclient.WithAuthFailureHandler(func() { signedOut = true }))
	require.NoError(t, err)

	_, err = client.Users.List(context.Background(), 0)
	require.Error(t, err)
	// The caller sees the original 401, not the refresh failure.
	require.True(t, apiclient.IsStatus(err, http.StatusUnauthorized))
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "token expired", apiErr.Detail)

	require.True(t, creds.cleared)
	require.True(t, signedOut)
	_, ok := creds.AccessToken()
	require.False(t, ok)
}

func TestConcurrent401sShareOneRefresh(t *testing.T) {
	const concurrency = 8

	var refreshCalls int32
	// Holds every stale request at the backend until all of them have
	// arrived, so their 401s and refresh attempts genuinely overlap.
	var barrier sync.WaitGroup
	barrier.Add(concurrency)

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token/refresh/":
			atomic.AddInt32(&refreshCalls, 1)
			time.Sleep(100 * time.Millisecond)
			writeJSON(w, http.StatusOK, map[string]string{"access": "access-2"})
		default:
			if r.Header.Get("Authorization") == "Bearer access-1" {
				barrier.Done()
				barrier.Wait()
				writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
				return
			}
			writeJSON(w, http.StatusOK, apiclient.ProductPage{})
		}
	}))
	defer backend.Close()

	client, err := apiclient.New(backend.URL, &fakeCreds{access: "access-1", refresh: "refresh-1"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, concurrency)
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = client.Products.List(context.Background(), 0)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	// Every request that 401ed shared a single refresh call.
	require.EqualValues(t, 1, atomic.LoadInt32(&refreshCalls))
}

func TestPostBodyIsReplayedOnRetry(t *testing.T) {
	var bodies []string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token/refresh/":
			writeJSON(w, http.StatusOK, map[string]string{"access": "access-2"})
		case "/products/":
			var product map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&product))
			bodies = append(bodies, product["name"].(string))
			if r.Header.Get("Authorization") != "Bearer access-2" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
				return
			}
			writeJSON(w, http.StatusCreated, product)
		default:
			http.NotFound(w, r)
		}
	}))
	defer backend.Close()

	client, err := apiclient.New(backend.URL, &fakeCreds{access: "stale", refresh: "refresh-1"})
	require.NoError(t, err)

	created, err := client.Products.Create(context.Background(), productFixture("Wooden Train"))
	require.NoError(t, err)
	require.Equal(t, "Wooden Train", created.Name)
	require.Equal(t, []string{"Wooden Train", "Wooden Train"}, bodies)
}

func TestNon401FailuresPassThroughUnchanged(t *testing.T) {
	var refreshCalled bool
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/token/refresh/" {
			refreshCalled = true
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "product not found"})
	}))
	defer backend.Close()

	client, err := apiclient.New(backend.URL, &fakeCreds{access: "access-1", refresh: "refresh-1"})
	require.NoError(t, err)

	_, err = client.Products.Get(context.Background(), "missing")
	require.True(t, apiclient.IsStatus(err, http.StatusNotFound))
	require.False(t, refreshCalled)

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "product not found", apiErr.Detail)
}

// The session manager satisfies the client's credential contract, so a
// refresh failure drives the whole forced sign-out path end to end.
func TestSessionManagerAsCredentialSource(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/token/refresh/" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "refresh expired"})
			return
		}
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
	}))
	defer backend.Close()

	persistent := tokenstore.NewMemoryStore()
	var navigated []string
	manager, err := session.NewManager(persistent, tokenstore.NewMemoryStore(),
		session.WithNavigator(session.NavigatorFunc(func(path string) {
			navigated = append(navigated, path)
		})),
	)
	require.NoError(t, err)
	manager.Login(users.User{ID: "u-1", Email: "admin@olea.store", Role: users.RoleAdmin}, "stale", "expired", true)

	client, err := apiclient.New(backend.URL, manager,
		apiclient.WithAuthFailureHandler(manager.ForceLogout))
	require.NoError(t, err)

	_, err = client.Orders.List(context.Background(), 1)
	require.True(t, apiclient.IsStatus(err, http.StatusUnauthorized))

	require.False(t, manager.Current().LoggedIn)
	_, ok := persistent.Get(tokenstore.KeyAccessToken)
	require.False(t, ok)
	_, ok = persistent.Get(tokenstore.KeyIsLoggedIn)
	require.False(t, ok)
	require.Equal(t, []string{session.LoginPath}, navigated)
}
