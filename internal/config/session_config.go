package config

import "time"

type SessionBackend string

const (
	SessionBackendCookie SessionBackend = "cookie"
	SessionBackendMemory SessionBackend = "memory"
	SessionBackendRedis  SessionBackend = "redis"
)

const devSessionSecret = "dev-session-secret-change-in-production"

type SessionConfig interface {
	GetSessionBackend() SessionBackend
	GetSessionSecret() string
	GetSessionMaxAge() time.Duration
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
	GetToastTTL() time.Duration
}

type Session struct{}

var _ SessionConfig = Session{}

func (Session) GetSessionBackend() SessionBackend {
	switch backend := SessionBackend(GetEnv("SESSION_BACKEND", string(SessionBackendCookie))); backend {
	case SessionBackendMemory, SessionBackendRedis:
		return backend
	default:
		return SessionBackendCookie
	}
}

func (Session) GetSessionSecret() string {
	return GetEnv("SESSION_SECRET", devSessionSecret)
}

func (Session) GetSessionMaxAge() time.Duration {
	return GetEnvDuration("SESSION_MAX_AGE", 7*24*time.Hour)
}

func (Session) GetRedisAddr() string {
	return GetEnv("REDIS_ADDR", "127.0.0.1:6379")
}

func (Session) GetRedisPassword() string {
	return GetEnv("REDIS_PASSWORD", "")
}

func (Session) GetRedisDB() int {
	return GetEnvInt("REDIS_DB", 0)
}

// GetToastTTL is how long a toast stays on screen before it dismisses itself.
func (Session) GetToastTTL() time.Duration {
	return GetEnvDuration("TOAST_TTL", 3*time.Second)
}

// IsDevSecret reports whether the built-in development secret is in use.
func IsDevSecret(secret string) bool {
	return secret == devSessionSecret
}
