package config

import "time"

const baseURLVar = "API_BASE_URL"

// APIConfig describes where the Olea REST backend lives. The origin varies
// per deployment, so it is never hard-coded outside this package.
type APIConfig interface {
	GetAPIBaseURL() string
	GetRequestTimeout() time.Duration
}

type API struct{}

var _ APIConfig = API{}

func (API) GetAPIBaseURL() string {
	return GetEnv(baseURLVar, "http://127.0.0.1:8000/api")
}

func (API) GetRequestTimeout() time.Duration {
	return 30 * time.Second
}
