package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jrsteele09/clientconnect/crm"
)

// Login exchanges credentials for a token using the password form the API expects.
func (c *Client) Login(ctx context.Context, email, password string) (*crm.TokenResponse, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var out crm.TokenResponse
	if err := c.sendForm(ctx, "/api/login", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, creds crm.Credentials) (*crm.MessageResponse, error) {
	var out crm.MessageResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/api/register", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (*crm.MessageResponse, error) {
	var out crm.MessageResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/api/forgot-password", map[string]string{"email": email}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResetPassword(ctx context.Context, reset crm.PasswordReset) (*crm.MessageResponse, error) {
	var out crm.MessageResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/api/reset-password", reset, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the profile of the user the current token belongs to.
func (c *Client) Me(ctx context.Context) (*crm.User, error) {
	var out crm.User
	if err := c.getJSON(ctx, "/api/users/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMe(ctx context.Context, update crm.ProfileUpdate) (*crm.User, error) {
	var out crm.User
	if err := c.sendJSON(ctx, http.MethodPut, "/api/users/me", update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
