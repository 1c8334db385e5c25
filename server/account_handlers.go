package server

import (
	"net/http"

	"github.com/jrsteele09/clientconnect/auth"
	"github.com/jrsteele09/clientconnect/pages"
	"github.com/rs/zerolog/log"
)

// LoginPageHandler displays the login page (GET /login)
func (s *Server) LoginPageHandler() (http.HandlerFunc, error) {
	loginTmpl, err := ParseTemplate("login.html")
	if err != nil {
		return nil, err
	}

	return func(w http.ResponseWriter, r *http.Request) {
		page := pages.NewAccount(s.crm, s.pageOptions())
		page.Email = r.URL.Query().Get("email")
		s.render(w, r, loginTmpl, "Login", "login", page)
	}, nil
}

// LoginSubmissionHandler processes the login form submission (POST /login)
func (s *Server) LoginSubmissionHandler() (http.HandlerFunc, error) {
	loginTmpl, err := ParseTemplate("login.html")
	if err != nil {
		return nil, err
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		provider, ok := auth.FromContext(ctx)
		if !ok {
			log.Error().Msg("login submitted without an auth provider on the context")
			http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
			return
		}

		page := pages.NewAccount(s.crm, s.pageOptions())
		if err := page.Login(ctx, provider, r.FormValue("email"), r.FormValue("password")); err != nil {
			log.Info().Err(err).Str("email", page.Email).Msg("login failed")
			s.render(w, r, loginTmpl, "Login", "login", page)
			return
		}
		redirectSuccess(w, r, page.RedirectTo)
	}, nil
}

// RegisterHandler displays and processes the registration form (GET, POST /register)
func (s *Server) RegisterHandler() (http.HandlerFunc, error) {
	registerTmpl, err := ParseTemplate("register.html")
	if err != nil {
		return nil, err
	}

	return func(w http.ResponseWriter, r *http.Request) {
		page := pages.NewAccount(s.crm, s.pageOptions())
		if r.Method == http.MethodPost {
			err := page.Register(r.Context(), r.FormValue("email"), r.FormValue("password"), r.FormValue("confirm_password"))
			if err == nil {
				s.finish(w, r, page, page.RedirectTo)
				return
			}
			log.Info().Err(err).Str("email", page.Email).Msg("registration failed")
		}
		s.render(w, r, registerTmpl, "Register", "register", page)
	}, nil
}

// ForgotPasswordHandler requests a password reset link (GET, POST /forgot-password)
func (s *Server) ForgotPasswordHandler() (http.HandlerFunc, error) {
	forgotTmpl, err := ParseTemplate("forgot_password.html")
	if err != nil {
		return nil, err
	}

	return func(w http.ResponseWriter, r *http.Request) {
		page := pages.NewAccount(s.crm, s.pageOptions())
		if r.Method == http.MethodPost {
			if err := page.ForgotPassword(r.Context(), r.FormValue("email")); err != nil {
				log.Info().Err(err).Msg("forgot password request failed")
			}
		}
		s.render(w, r, forgotTmpl, "Forgot Password", "forgot-password", page)
	}, nil
}

// ResetPasswordHandler sets a new password from a reset token (GET, POST /reset-password)
func (s *Server) ResetPasswordHandler() (http.HandlerFunc, error) {
	resetTmpl, err := ParseTemplate("reset_password.html")
	if err != nil {
		return nil, err
	}

	return func(w http.ResponseWriter, r *http.Request) {
		page := pages.NewAccount(s.crm, s.pageOptions())
		page.ResetToken = r.FormValue("token")
		if r.Method == http.MethodPost {
			err := page.ResetPassword(r.Context(), page.ResetToken, r.FormValue("password"), r.FormValue("confirm_password"))
			if err != nil {
				log.Info().Err(err).Msg("password reset failed")
			}
		}
		s.render(w, r, resetTmpl, "Reset Password", "reset-password", page)
	}, nil
}

// LogoutHandler clears the browser's session (POST /logout)
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if provider, ok := auth.FromContext(ctx); ok {
			if err := provider.Logout(ctx); err != nil {
				log.Err(err).Msg("failed to clear session on logout")
			}
		}
		redirectSuccess(w, r, RouteLogin)
	}
}
