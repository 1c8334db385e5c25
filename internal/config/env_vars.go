package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	portEnvVar     = "PORT"
	appNameVar     = "APP_NAME"
	envVar         = "ENV"
	logLevelEnvVar = "LOG_LEVEL"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "ClientConnect")
}

func (EnvVars) GetEnv() string {
	return strings.ToUpper(GetEnv(envVar, "DEV"))
}

// GetLogLevel returns a zerolog level name (debug, info, warn, error).
func (EnvVars) GetLogLevel() string {
	return strings.ToLower(GetEnv(logLevelEnvVar, "info"))
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvInt falls back to defaultValue when the variable is unset or not an integer.
func GetEnvInt(envVar string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(envVar))
	if err != nil {
		return defaultValue
	}
	return value
}

// GetEnvFloat falls back to defaultValue when the variable is unset or not a number.
func GetEnvFloat(envVar string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(envVar), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// GetEnvDuration accepts Go duration strings ("3s", "1h30m").
func GetEnvDuration(envVar string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(envVar))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
