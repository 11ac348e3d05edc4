package apiclient

import (
	"context"
	"net/http"
)

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DoerFunc adapts a function to the Doer interface.
type DoerFunc func(req *http.Request) (*http.Response, error)

func (f DoerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

// Middleware wraps a Doer with request decoration or response handling.
type Middleware func(Doer) Doer

// Chain composes middleware around a base Doer. Middleware is applied in
// reverse order so the first entry becomes the outermost wrapper.
func Chain(base Doer, mw ...Middleware) Doer {
	chained := base
	for i := len(mw) - 1; i >= 0; i-- {
		chained = mw[i](chained)
	}
	return chained
}

type contextKey int

const retriedKey contextKey = iota

// markRetried clones the request with its one-shot retry marker set. The
// marker is what keeps a 401->refresh->401 sequence from looping.
func markRetried(req *http.Request) *http.Request {
	return req.Clone(context.WithValue(req.Context(), retriedKey, true))
}

// wasRetried reports whether the request already went through a
// refresh-and-retry cycle.
func wasRetried(req *http.Request) bool {
	retried, _ := req.Context().Value(retriedKey).(bool)
	return retried
}
