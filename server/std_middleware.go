package server

import (
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/jrsteele09/clientconnect/auth"
	"github.com/jrsteele09/clientconnect/crm"
	"github.com/jrsteele09/clientconnect/guard"
	"github.com/jrsteele09/clientconnect/internal/metrics"
	"github.com/jrsteele09/clientconnect/sessions"
	"github.com/rs/zerolog/log"
)

func ChainMiddleware(routeFunction http.HandlerFunc, mw ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	chainedHandler := routeFunction
	// Apply middleware in reverse order
	for i := len(mw) - 1; i >= 0; i-- {
		chainedHandler = mw[i](chainedHandler) // Call the middleware function
	}
	return chainedHandler
}

func (s *Server) HTMLMiddleWare(mw ...func(http.HandlerFunc) http.HandlerFunc) []func(http.HandlerFunc) http.HandlerFunc {
	chainedMiddleWare := []func(http.HandlerFunc) http.HandlerFunc{
		s.WWWRedirectMiddleware,
		s.LoggingMiddleware,
		s.RecoverMiddleware,
		s.FrameSecurityMiddleware,
	}
	chainedMiddleWare = append(chainedMiddleWare, mw...)
	return chainedMiddleWare
}

// PageMiddleware is the chain for every server-rendered page: the HTML chain,
// then metrics, the browser session and the route guard.
func (s *Server) PageMiddleware(mw ...func(http.HandlerFunc) http.HandlerFunc) []func(http.HandlerFunc) http.HandlerFunc {
	pageMiddleWare := []func(http.HandlerFunc) http.HandlerFunc{
		metrics.InstrumentHandler,
		s.SessionMiddleware,
		s.GuardMiddleware,
	}
	pageMiddleWare = append(pageMiddleWare, mw...)
	return s.HTMLMiddleWare(pageMiddleWare...)
}

func (s *Server) WWWRedirectMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		host := r.Host
		// If host starts with www., redirect to non-www
		if strings.HasPrefix(host, "www.") {
			nonWWWHost := strings.TrimPrefix(host, "www.")
			newURL := fmt.Sprintf("%s://%s%s", getScheme(r), nonWWWHost, r.RequestURI)
			http.Redirect(w, r, newURL, http.StatusMovedPermanently)
			return
		}
		next(w, r)
	}
}

func (s *Server) LoggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.env != "DEV" {
			next(w, r)
			return
		}
		logRoute(r.Method, r.URL.Path)
		next(w, r)
	}
}

func (s *Server) FrameSecurityMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Prevent embedding on other sites
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'self'")
		next(w, r)
	}
}

func (s *Server) RecoverMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error().
					Interface("panic", rec).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Bytes("stack", debug.Stack()).
					Msg("recovered from handler panic")
				http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next(w, r)
	}
}

// SessionMiddleware resolves the browser's storage and places its Session Store
// and Auth Provider on the request context. API calls made with that context
// carry the stored bearer token.
func (s *Server) SessionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storage, err := s.storage.Storage(w, r)
		if err != nil {
			log.Err(err).Str("path", r.URL.Path).Msg("failed to open browser storage")
			http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
			return
		}
		store := sessions.NewStore(storage)
		ctx := sessions.NewContext(r.Context(), store)
		provider := auth.New(ctx, store, auth.WithClock(s.now))
		if rotator, ok := s.storage.(sessions.Rotator); ok {
			provider.Subscribe(rotateOnSignIn(w, r, store, rotator, provider.Authenticated()))
		}
		ctx = auth.NewContext(ctx, provider)
		next(w, r.WithContext(ctx))
	}
}

// rotateOnSignIn moves the browser to a new storage id when it becomes signed in.
func rotateOnSignIn(w http.ResponseWriter, r *http.Request, store *sessions.Store, rotator sessions.Rotator, signedIn bool) func(*crm.User) {
	return func(user *crm.User) {
		was := signedIn
		signedIn = user != nil
		if was || !signedIn {
			return
		}
		storage, err := rotator.Rotate(w, r, store.Storage())
		if err != nil {
			log.Err(err).Msg("failed to rotate browser id at sign in")
			return
		}
		store.Rebind(storage)
	}
}

// GuardMiddleware renders or redirects according to the route guard. It must
// run after SessionMiddleware.
func (s *Server) GuardMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var user *crm.User
		if provider, ok := auth.FromContext(r.Context()); ok {
			user = provider.User()
		}
		decision := s.guard.Decide(guard.StateOf(user), r.URL.Path)
		if decision.Redirects() {
			redirectSuccess(w, r, decision.Location)
			return
		}
		next(w, r)
	}
}

// RateLimitMiddleware throttles form submissions per client IP.
func (s *Server) RateLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r, s.proxies)
		if !s.limiter.allow(ip) {
			log.Warn().Str("ip", ip).Str("path", r.URL.Path).Msg("rate limit exceeded")
			http.Error(w, "429 - Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// gzipResponseWriter wraps http.ResponseWriter to compress response with gzip
type gzipResponseWriter struct {
	io.Writer
	http.ResponseWriter
}

func (w gzipResponseWriter) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}

// CompressionMiddleware adds gzip compression to responses
func (s *Server) CompressionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next(w, r)
			return
		}

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Add("Vary", "Accept-Encoding")
		w.Header().Del("Content-Length") // Length will change after compression

		gz := gzip.NewWriter(w)
		defer gz.Close()

		next(gzipResponseWriter{Writer: gz, ResponseWriter: w}, r)
	}
}

// CacheMiddleware sets cache headers for static assets
func (s *Server) CacheMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if isImageAsset(path) {
			w.Header().Set("Cache-Control", "public, max-age=3600, must-revalidate")
		} else if isOtherStaticAsset(path) {
			w.Header().Set("Cache-Control", "public, max-age=300, must-revalidate")
		}

		next(w, r)
	}
}

func hasExtension(path string, extensions ...string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func isImageAsset(path string) bool {
	return hasExtension(path, ".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico")
}

// CSS, JS and fonts
func isOtherStaticAsset(path string) bool {
	return hasExtension(path, ".css", ".js", ".woff", ".woff2", ".ttf")
}
