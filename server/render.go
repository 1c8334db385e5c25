package server

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/jrsteele09/clientconnect/api"
	"github.com/jrsteele09/clientconnect/auth"
	"github.com/jrsteele09/clientconnect/crm"
	"github.com/jrsteele09/clientconnect/feedback"
	"github.com/jrsteele09/clientconnect/pages"
	"github.com/jrsteele09/clientconnect/sessions"
	"github.com/rs/zerolog/log"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"

	sessionExpiredMessage = "Your session has expired. Please log in again."
)

// feedbackPage is satisfied by every page controller.
type feedbackPage interface {
	Feedback() *feedback.Toast
}

// view is the data every template is executed with.
type view struct {
	AppName string
	Title   string
	// Active names the sidebar entry to highlight.
	Active string
	User   *crm.User
	Toast  feedback.Toast
	// ToastRemaining is how long the toast stays before the browser dismisses it.
	ToastRemaining time.Duration
	Page           any
}

func (s *Server) pageOptions() pages.Options {
	return pages.Options{Now: s.now, ToastTTL: s.toastTTL}
}

// render executes tmpl for page. A flash saved by the previous request is shown
// when the page has no toast of its own.
func (s *Server) render(w http.ResponseWriter, r *http.Request, tmpl *template.Template, title, active string, page feedbackPage) {
	ctx := r.Context()
	now := s.now()

	toast := page.Feedback()
	if !toast.Visible() {
		if store, ok := sessions.FromContext(ctx); ok {
			feedback.TakeFlash(ctx, store.Storage(), toast, now)
		}
	}
	toast.Tick(now)

	v := view{
		AppName:        s.appName,
		Title:          title,
		Active:         active,
		Toast:          *toast,
		ToastRemaining: toast.Remaining(now),
		Page:           page,
	}
	if provider, ok := auth.FromContext(ctx); ok {
		v.User = provider.User()
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, v); err != nil {
		log.Err(err).Str("template", title).Msg("failed to render page")
		http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	if _, err := buf.WriteTo(w); err != nil {
		log.Debug().Err(err).Msg("failed to write page")
	}
}

// finish ends a successful form post: the page's toast moves to a flash and
// the browser is redirected so a reload does not resubmit.
func (s *Server) finish(w http.ResponseWriter, r *http.Request, page feedbackPage, location string) {
	toast := page.Feedback()
	s.saveFlash(r, *toast)
	toast.Dismiss()
	redirectSuccess(w, r, location)
}

func (s *Server) saveFlash(r *http.Request, toast feedback.Toast) {
	if !toast.Visible() {
		return
	}
	ctx := r.Context()
	store, ok := sessions.FromContext(ctx)
	if !ok {
		return
	}
	if err := feedback.SaveFlash(ctx, store.Storage(), toast.Message, toast.Kind); err != nil {
		log.Err(err).Msg("failed to save flash")
	}
}

// sessionExpired handles an API rejection of the stored token: the session is
// cleared and the browser sent to the login page with an explanation.
func (s *Server) sessionExpired(w http.ResponseWriter, r *http.Request, err error) bool {
	if !api.IsUnauthorized(err) {
		return false
	}
	ctx := r.Context()
	if provider, ok := auth.FromContext(ctx); ok {
		if err := provider.Logout(ctx); err != nil {
			log.Err(err).Msg("failed to clear rejected session")
		}
	}
	toast := feedback.NewToast(s.toastTTL)
	toast.Error(sessionExpiredMessage, s.now())
	s.saveFlash(r, toast)

	log.Info().Str("path", r.URL.Path).Msg("api rejected session token, signing out")
	redirectSuccess(w, r, RouteLogin)
	return true
}

func clientNotesPath(id int64) string {
	return fmt.Sprintf("/clients/%d/notes", id)
}

func projectPath(id int64) string {
	return fmt.Sprintf("/projects/%d", id)
}
