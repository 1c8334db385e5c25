package config

import (
	"strings"
	"time"
)

const (
	apiBaseURLVar = "API_BASE_URL"
	apiTimeoutVar = "API_TIMEOUT"
)

type API struct{}

var _ APIConfig = API{}

// GetAPIBaseURL returns the CRM API address every relative request path is resolved against.
func (API) GetAPIBaseURL() string {
	return strings.TrimRight(GetEnv(apiBaseURLVar, "http://127.0.0.1:8000"), "/")
}

func (API) GetAPITimeout() time.Duration {
	return GetEnvDuration(apiTimeoutVar, 10*time.Second)
}
