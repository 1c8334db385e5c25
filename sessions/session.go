package sessions

import "github.com/jrsteele09/clientconnect/crm"

// StorageKey is the well-known key the serialized Session is kept under in a browser's storage.
const StorageKey = "user"

// Session is the authenticated user's identity plus the bearer token the CRM API issued.
// At most one Session exists per browser storage.
type Session struct {
	User        crm.User `json:"user"`
	AccessToken string   `json:"access_token"`
}

// Valid reports whether the session carries a token to authorise requests with.
func (s Session) Valid() bool {
	return s.AccessToken != ""
}
