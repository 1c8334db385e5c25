package auth

import (
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Claims are the parts of the access token the dashboard reads. The CRM API
// signs its tokens; we never hold the key, so they are read unverified and only
// used to pick a display identity and to notice expiry early.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the token carried an exp claim that is at or before now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// ParseClaims reads sub and exp from a JWT access token. Opaque tokens return an error.
func ParseClaims(rawToken string) (Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return Claims{}, errors.New("empty token")
	}

	token, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return Claims{}, err
	}
	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return Claims{}, errors.New("error extracting claims")
	}

	var out Claims
	out.Subject, _ = claims.GetSubject()
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
