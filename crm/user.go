package crm

// User is the authenticated identity held in a session and shown on the settings page.
type User struct {
	ID    int64  `json:"id,omitempty"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// DisplayName prefers the profile name over the email address.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// ProfileUpdate is the body of PUT /api/users/me.
type ProfileUpdate struct {
	Name string `json:"name"`
}

// Credentials is the body of POST /api/register.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	if err := required("Email", c.Email); err != nil {
		return err
	}
	return required("Password", c.Password)
}

// TokenResponse is what POST /api/login returns. User is absent on servers
// that only hand back the token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	User        *User  `json:"user,omitempty"`
}

// MessageResponse covers the {"msg": ...} replies of the account endpoints.
type MessageResponse struct {
	Msg        string `json:"msg"`
	ResetToken string `json:"reset_token,omitempty"`
}

type PasswordReset struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}
