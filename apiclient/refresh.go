package apiclient

import (
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// refreshMiddleware recovers from expired access credentials. A 401
// response triggers one silent refresh followed by one resubmission of the
// original request; a second 401 on the same request is terminal. Requests
// that 401 concurrently share a single in-flight refresh call.
type refreshMiddleware struct {
	creds Credentials

	// refresh exchanges the stored refresh credential for a new access
	// credential and stores it. Implemented by the Client outside the
	// pipeline so a 401 from the refresh endpoint cannot recurse.
	refresh func(req *http.Request) (string, error)

	// resubmit re-enters the full pipeline. Bound late by the Client,
	// after the chain exists.
	resubmit func(req *http.Request) (*http.Response, error)

	// onAuthFailure runs after an irrecoverable refresh failure, once the
	// credentials are cleared. Typically the session's forced sign-out.
	onAuthFailure func()

	group singleflight.Group
	log   zerolog.Logger
}

func (rm *refreshMiddleware) wrap(next Doer) Doer {
	return DoerFunc(func(req *http.Request) (*http.Response, error) {
		resp, err := next.Do(req)
		if err != nil || resp.StatusCode != http.StatusUnauthorized {
			return resp, err
		}
		if wasRetried(req) {
			// Already refreshed once for this request; propagate.
			return resp, nil
		}

		retryReq := markRetried(req)
		if req.GetBody != nil {
			body, bodyErr := req.GetBody()
			if bodyErr != nil {
				rm.log.Warn().Err(bodyErr).Msg("apiclient: request body not replayable, skipping retry")
				return resp, nil
			}
			retryReq.Body = body
		} else if req.Body != nil {
			rm.log.Warn().Str("url", req.URL.Path).Msg("apiclient: request body not replayable, skipping retry")
			return resp, nil
		}

		if _, ok := rm.creds.RefreshToken(); !ok {
			return resp, nil
		}

		token, refreshErr, _ := rm.group.Do("refresh", func() (interface{}, error) {
			return rm.refresh(req)
		})
		if refreshErr != nil {
			// The refresh failure is fatal to the session. The caller still
			// sees the original 401; the refresh error is only logged.
			rm.log.Error().Err(refreshErr).Msg("apiclient: credential refresh failed, signing out")
			rm.creds.Clear()
			if rm.onAuthFailure != nil {
				rm.onAuthFailure()
			}
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		resp.Body.Close()

		retryReq.Header.Set("Authorization", "Bearer "+token.(string))
		return rm.resubmit(retryReq)
	})
}
