package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	NoRefreshTokenErr   = errors.New("no refresh credential stored")
	RefreshRejectedErr  = errors.New("refresh credential rejected")
	EmptyCredentialErr  = errors.New("backend returned an empty credential")
	MissingBaseURLErr   = errors.New("base URL is required")
	MissingCredsErr     = errors.New("credential store is required")
)

// APIError is any non-2xx answer from the backend, carrying the status and
// the backend's human-readable detail message. Everything other than the
// 401-refresh concern is passed through to the caller as one of these,
// untouched.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api: %s", http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api: %s: %s", http.StatusText(e.StatusCode), e.Detail)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, statusCode int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == statusCode
}

const maxErrorBody = 4 << 10

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apiErr
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		apiErr.Detail = payload.Detail
	}
	return apiErr
}
