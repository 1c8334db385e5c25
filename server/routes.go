package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/clientconnect/internal/metrics"
)

func (s *Server) initRoutes() error {
	login, err := s.LoginPageHandler()
	if err != nil {
		return err
	}
	loginSubmit, err := s.LoginSubmissionHandler()
	if err != nil {
		return err
	}
	register, err := s.RegisterHandler()
	if err != nil {
		return err
	}
	forgot, err := s.ForgotPasswordHandler()
	if err != nil {
		return err
	}
	reset, err := s.ResetPasswordHandler()
	if err != nil {
		return err
	}
	dashboard, err := s.DashboardHandler()
	if err != nil {
		return err
	}
	clients, err := s.ClientsHandler()
	if err != nil {
		return err
	}
	clientDetails, err := s.ClientDetailsHandler()
	if err != nil {
		return err
	}
	notes, err := s.ClientNotesHandler()
	if err != nil {
		return err
	}
	noteUpdate, err := s.UpdateNoteHandler()
	if err != nil {
		return err
	}
	projects, err := s.ProjectsHandler()
	if err != nil {
		return err
	}
	projectDetail, err := s.ProjectDetailHandler()
	if err != nil {
		return err
	}
	payments, err := s.PaymentsHandler()
	if err != nil {
		return err
	}
	settings, err := s.SettingsHandler()
	if err != nil {
		return err
	}

	// Root and unknown paths are resolved entirely by the route guard
	s.RegisterRouteHandler(RouteRoot, ChainMiddleware(http.NotFound, s.PageMiddleware()...))

	// ACCOUNT
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(login, s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteLogin, ChainMiddleware(loginSubmit, s.PageMiddleware(s.RateLimitMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteRegister, ChainMiddleware(register, s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteRegister, ChainMiddleware(register, s.PageMiddleware(s.RateLimitMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteForgotPassword, ChainMiddleware(forgot, s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteForgotPassword, ChainMiddleware(forgot, s.PageMiddleware(s.RateLimitMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteResetPassword, ChainMiddleware(reset, s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteResetPassword, ChainMiddleware(reset, s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.PageMiddleware()...))

	// DASHBOARD
	s.RegisterRouteHandler("GET "+RouteDashboard, ChainMiddleware(dashboard, s.PageMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteClients, ChainMiddleware(clients, s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteClients, ChainMiddleware(clients, s.PageMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteClient, ChainMiddleware(clientDetails, s.PageMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteClientDelete, ChainMiddleware(clients, s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteClientDelete, ChainMiddleware(s.DeleteClientHandler(), s.PageMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteClientNotes, ChainMiddleware(notes, s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteClientNotes, ChainMiddleware(notes, s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteNote, ChainMiddleware(noteUpdate, s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteNoteDelete, ChainMiddleware(s.DeleteNoteHandler(), s.PageMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteProjects, ChainMiddleware(projects, s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteProjects, ChainMiddleware(projects, s.PageMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteProject, ChainMiddleware(projectDetail, s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteProject, ChainMiddleware(projectDetail, s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteProjectDelete, ChainMiddleware(s.DeleteProjectHandler(), s.PageMiddleware()...))

	s.RegisterRouteHandler("GET "+RoutePayments, ChainMiddleware(payments, s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RoutePayments, ChainMiddleware(payments, s.PageMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteSettings, ChainMiddleware(settings, s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteSettings, ChainMiddleware(settings, s.PageMiddleware()...))

	// OPERATIONAL
	s.RegisterRouteHandler("GET "+RouteMetrics, metrics.Handler())
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())

	s.RegisterRouteHandler("GET "+RouteStatic, ChainMiddleware(s.serveFileHandler(), s.HTMLMiddleWare(s.CacheMiddleware, s.CompressionMiddleware)...))
	return nil
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(r.PathValue("file"), "/")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		err := StreamFile(w, r, filePath)
		if err != nil {
			logError("GET", filePath, err.Error())
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}
