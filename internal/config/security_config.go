package config

import "strings"

type SecurityConfig interface {
	GetLoginRatePerSecond() float64
	GetLoginBurst() int
	GetTrustedProxies() []string
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetLoginRatePerSecond limits login, register and forgot-password submissions per client IP.
func (Security) GetLoginRatePerSecond() float64 {
	return GetEnvFloat("LOGIN_RATE_PER_SEC", 1)
}

func (Security) GetLoginBurst() int {
	return GetEnvInt("LOGIN_BURST", 5)
}

// GetTrustedProxies lists the IPs or CIDRs whose X-Forwarded-For header is believed.
// Empty means the header is ignored.
func (Security) GetTrustedProxies() []string {
	var proxies []string
	for _, p := range strings.Split(GetEnv("TRUSTED_PROXIES", ""), ",") {
		if p = strings.TrimSpace(p); p != "" {
			proxies = append(proxies, p)
		}
	}
	return proxies
}
