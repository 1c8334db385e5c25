package server

import (
	"fmt"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/jrsteele09/clientconnect/api"
	"github.com/jrsteele09/clientconnect/guard"
	"github.com/jrsteele09/clientconnect/internal/config"
	"github.com/jrsteele09/clientconnect/pages"
	"github.com/jrsteele09/clientconnect/sessions"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// CRM is everything the dashboard pages ask of the CRM API.
type CRM interface {
	pages.AccountAPI
	pages.DashboardAPI
	pages.ClientsAPI
	pages.ClientDetailsAPI
	pages.ClientNotesAPI
	pages.ProjectsAPI
	pages.ProjectDetailAPI
	pages.PaymentsAPI
	pages.SettingsAPI
}

var _ CRM = (*api.Client)(nil)

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	appName  string
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	crm      CRM
	storage  sessions.Provider
	guard    *guard.Guard
	limiter  *ipRateLimiter
	proxies  []netip.Prefix
	toastTTL time.Duration
	now      func() time.Time
}

type Option func(*Server)

// WithClock replaces time.Now for page state such as toast timers.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

func New(cfg config.Config, crm CRM, storage sessions.Provider, opts ...Option) (*Server, error) {
	if crm == nil {
		return nil, errors.New("[Server New] CRM api client is required")
	}
	if storage == nil {
		return nil, errors.New("[Server New] session storage provider is required")
	}

	proxies, err := parseTrustedProxies(cfg.GetTrustedProxies())
	if err != nil {
		return nil, errors.Wrap(err, "[Server New] invalid TRUSTED_PROXIES")
	}

	s := &Server{
		env:      cfg.GetEnv(),
		appName:  cfg.GetAppName(),
		mux:      http.NewServeMux(),
		config:   cfg,
		crm:      crm,
		storage:  storage,
		guard:    guard.New(),
		limiter:  newIPRateLimiter(cfg.GetLoginRatePerSecond(), cfg.GetLoginBurst()),
		proxies:  proxies,
		toastTTL: cfg.GetToastTTL(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.initRoutes(); err != nil {
		return nil, fmt.Errorf("[Server New] failed to initialise routes: %w", err)
	}
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// Routes lists the registered patterns in registration order.
func (s *Server) Routes() []string {
	return append([]string(nil), s.routes...)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func colouredMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		return color + paddedMethod + ResetColor
	}
	return Gray + paddedMethod + ResetColor
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", colouredMethod(method), path)
}

func logError(method, path, error string) {
	log.Error().Msgf("[%-19s] %s %s", colouredMethod(method), path, Red+error+ResetColor)
}
