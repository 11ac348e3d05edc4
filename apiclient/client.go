// Package apiclient is the console's HTTP client for the Olea REST backend.
// All requests flow through one middleware pipeline that attaches the
// stored bearer credential on the way out and recovers from expired
// credentials on the way back, so no caller repeats auth logic.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oleastore/go-admin-console/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Backend paths, joined onto the configured base URL. The origin itself is
// deployment config, never hard-coded here.
const (
	loginPath   = "/login/"
	refreshPath = "/token/refresh/"

	usersPath    = "/users/"
	productsPath = "/products/"
	ordersPath   = "/orders/"
)

const defaultTimeout = 30 * time.Second

// Client talks to the backend through the interceptor pipeline. Resource
// access hangs off the Users, Products and Orders services.
type Client struct {
	baseURL       string
	base          Doer // raw transport, also used for the out-of-pipeline refresh call
	pipeline      Doer
	creds         Credentials
	onAuthFailure func()
	log           zerolog.Logger

	Users    *UsersService
	Products *ProductsService
	Orders   *OrdersService
}

// Option modifies a Client during construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.base = httpClient
	}
}

// WithLogger sets the client's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithAuthFailureHandler registers the callback run when a refresh fails
// irrecoverably, after the credentials are cleared. Wire the session's
// forced sign-out here.
func WithAuthFailureHandler(handler func()) Option {
	return func(c *Client) {
		c.onAuthFailure = handler
	}
}

// New builds a Client for the backend at baseURL, reading and updating
// credentials through creds.
func New(baseURL string, creds Credentials, options ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, MissingBaseURLErr
	}
	if creds == nil {
		return nil, MissingCredsErr
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		log:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	if c.base == nil {
		c.base = &http.Client{Timeout: defaultTimeout}
	}

	rm := &refreshMiddleware{
		creds:         creds,
		refresh:       c.refreshAccessToken,
		onAuthFailure: c.onAuthFailure,
		log:           c.log,
	}
	c.pipeline = Chain(c.base, AttachBearer(creds), rm.wrap)
	rm.resubmit = c.pipeline.Do

	c.Users = &UsersService{client: c}
	c.Products = &ProductsService{client: c}
	c.Orders = &OrdersService{client: c}
	return c, nil
}

// LoginResponse is the backend's answer to a successful login.
type LoginResponse struct {
	Access  string     `json:"access"`
	Refresh string     `json:"refresh"`
	User    users.User `json:"user"`
}

// Login exchanges an email and password for a credential pair and the
// user's profile. It runs through the normal pipeline; with no stored
// credential the request simply goes out without an Authorization header.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	payload := map[string]string{"email": email, "password": password}
	var response LoginResponse
	if err := c.do(ctx, http.MethodPost, loginPath, payload, &response); err != nil {
		return nil, errors.Wrap(err, "[Login] login request")
	}
	return &response, nil
}

// refreshAccessToken trades the stored refresh credential for a new access
// credential and stores it. The call bypasses the pipeline: a 401 here must
// surface as a refresh failure, not trigger another refresh.
func (c *Client) refreshAccessToken(original *http.Request) (string, error) {
	refreshToken, ok := c.creds.RefreshToken()
	if !ok || refreshToken == "" {
		return "", NoRefreshTokenErr
	}

	payload, err := json.Marshal(map[string]string{"refresh": refreshToken})
	if err != nil {
		return "", errors.Wrap(err, "[refreshAccessToken] marshal")
	}
	req, err := http.NewRequestWithContext(original.Context(), http.MethodPost, c.baseURL+refreshPath, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "[refreshAccessToken] build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.base.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "[refreshAccessToken] refresh call")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Wrapf(RefreshRejectedErr, "[refreshAccessToken] status %d", resp.StatusCode)
	}

	var body struct {
		Access string `json:"access"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", errors.Wrap(err, "[refreshAccessToken] decode")
	}
	if body.Access == "" {
		return "", EmptyCredentialErr
	}

	c.creds.SetAccessToken(body.Access)
	return body.Access, nil
}

// do sends one JSON request through the pipeline and decodes the answer
// into out (when non-nil). Non-2xx statuses come back as *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "[do] marshal %s %s", method, path)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrapf(err, "[do] build %s %s", method, path)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.pipeline.Do(req)
	if err != nil {
		return errors.Wrapf(err, "[do] %s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return newAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "[do] decode %s %s", method, path)
	}
	return nil
}
