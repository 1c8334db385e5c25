package pages

import (
	"context"
	"strings"

	"github.com/jrsteele09/clientconnect/api"
	"github.com/jrsteele09/clientconnect/crm"
	apperrors "github.com/jrsteele09/clientconnect/internal/errors"
)

type AccountAPI interface {
	Login(ctx context.Context, email, password string) (*crm.TokenResponse, error)
	Register(ctx context.Context, creds crm.Credentials) (*crm.MessageResponse, error)
	ForgotPassword(ctx context.Context, email string) (*crm.MessageResponse, error)
	ResetPassword(ctx context.Context, reset crm.PasswordReset) (*crm.MessageResponse, error)
}

// Authenticator records a successful login for the current browser.
type Authenticator interface {
	Login(ctx context.Context, resp crm.TokenResponse, fallbackEmail string) (*crm.User, error)
}

// Account drives the signed out pages: login, registration and password reset.
// Their failures are shown inline in Error rather than as toasts.
type Account struct {
	Page
	Email string
	// Message is the confirmation shown after a successful request.
	Message string
	// ResetToken is returned by APIs that hand the reset token back directly instead of emailing it.
	ResetToken string

	api AccountAPI
}

func NewAccount(api AccountAPI, opts Options) *Account {
	return &Account{Page: newPage(opts), api: api}
}

func (a *Account) Login(ctx context.Context, auth Authenticator, email, password string) error {
	a.Error = ""
	a.Email = strings.TrimSpace(email)
	if err := (crm.Credentials{Email: a.Email, Password: password}).Validate(); err != nil {
		a.Error = err.Error()
		return err
	}

	resp, err := a.api.Login(ctx, a.Email, password)
	if stale(ctx) {
		return ctx.Err()
	}
	if err != nil {
		a.Error = api.Message(err, "Login failed. Please check your credentials.")
		return err
	}
	if _, err := auth.Login(ctx, *resp, a.Email); err != nil {
		a.Error = "Login failed. Please check your credentials."
		return err
	}

	a.RedirectTo = "/dashboard"
	return nil
}

func (a *Account) Register(ctx context.Context, email, password, confirm string) error {
	a.Error = ""
	a.Email = strings.TrimSpace(email)
	if password != confirm {
		a.Error = "Passwords do not match"
		return apperrors.Wrapf(apperrors.ErrInvalidPayload, "password confirmation")
	}
	creds := crm.Credentials{Email: a.Email, Password: password}
	if err := creds.Validate(); err != nil {
		a.Error = err.Error()
		return err
	}

	_, err := a.api.Register(ctx, creds)
	if stale(ctx) {
		return ctx.Err()
	}
	if err != nil {
		a.Error = api.Message(err, "Registration failed. Please try again.")
		return err
	}

	a.Message = "Registration successful! Please login."
	a.succeed(a.Message)
	a.RedirectTo = "/login"
	return nil
}

func (a *Account) ForgotPassword(ctx context.Context, email string) error {
	a.Error = ""
	a.Message = ""
	a.Email = strings.TrimSpace(email)
	if a.Email == "" {
		a.Error = "Email is required."
		return apperrors.ErrRequired
	}

	resp, err := a.api.ForgotPassword(ctx, a.Email)
	if stale(ctx) {
		return ctx.Err()
	}
	if err != nil {
		a.Error = api.Message(err, "Error sending reset link.")
		return err
	}

	a.Message = resp.Msg
	if a.Message == "" {
		a.Message = "If that email exists, a reset link was sent."
	}
	a.ResetToken = resp.ResetToken
	return nil
}

func (a *Account) ResetPassword(ctx context.Context, token, password, confirm string) error {
	a.Error = ""
	a.Message = ""
	if password != confirm {
		a.Error = "Passwords do not match"
		return apperrors.Wrapf(apperrors.ErrInvalidPayload, "password confirmation")
	}
	if strings.TrimSpace(token) == "" {
		a.Error = "Invalid or missing reset token."
		return apperrors.Wrapf(apperrors.ErrInvalidPayload, "missing reset token")
	}
	if password == "" {
		a.Error = "Password is required."
		return apperrors.ErrRequired
	}

	resp, err := a.api.ResetPassword(ctx, crm.PasswordReset{Token: token, NewPassword: password})
	if stale(ctx) {
		return ctx.Err()
	}
	if err != nil {
		a.Error = api.Message(err, "Error resetting password. The link may be invalid or expired.")
		return err
	}

	a.Message = resp.Msg
	if a.Message == "" {
		a.Message = "Password reset successful. You can now login."
	}
	return nil
}
