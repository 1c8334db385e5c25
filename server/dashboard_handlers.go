package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/clientconnect/auth"
	"github.com/jrsteele09/clientconnect/pages"
	"github.com/rs/zerolog/log"
)

// DashboardHandler shows the KPI cards and recent activity (GET /dashboard)
func (s *Server) DashboardHandler() (http.HandlerFunc, error) {
	dashboardTmpl, err := ParseTemplate("dashboard.html")
	if err != nil {
		return nil, err
	}

	return func(w http.ResponseWriter, r *http.Request) {
		page := pages.NewDashboard(s.crm, s.pageOptions())
		if err := page.Mount(r.Context()); s.sessionExpired(w, r, err) {
			return
		}
		s.render(w, r, dashboardTmpl, "Dashboard", "dashboard", page)
	}, nil
}

// SettingsHandler shows and updates the signed in user's profile (GET, POST /settings)
func (s *Server) SettingsHandler() (http.HandlerFunc, error) {
	settingsTmpl, err := ParseTemplate("settings.html")
	if err != nil {
		return nil, err
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		page := pages.NewSettings(s.crm, s.pageOptions())
		if err := page.Mount(ctx); s.sessionExpired(w, r, err) {
			return
		}

		if r.Method == http.MethodPost {
			user, err := page.Update(ctx, r.FormValue("name"))
			if s.sessionExpired(w, r, err) {
				return
			}
			if err == nil {
				if provider, ok := auth.FromContext(ctx); ok {
					if err := provider.UpdateUser(ctx, *user); err != nil {
						log.Err(err).Msg("failed to store updated profile in session")
					}
				}
				s.finish(w, r, page, RouteSettings)
				return
			}
		}
		s.render(w, r, settingsTmpl, "Settings", "settings", page)
	}, nil
}

// HealthHandler reports liveness for load balancers (GET /healthz)
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok", "app": s.appName}); err != nil {
			log.Debug().Err(err).Msg("failed to write health response")
		}
	}
}
