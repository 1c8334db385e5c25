package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/jrsteele09/clientconnect/api"
	"github.com/jrsteele09/clientconnect/internal/config"
	"github.com/jrsteele09/clientconnect/server"
	"github.com/jrsteele09/clientconnect/sessions"
	"github.com/jrsteele09/clientconnect/sessions/cookiestore"
	"github.com/jrsteele09/clientconnect/sessions/memstore"
	"github.com/jrsteele09/clientconnect/sessions/redisstore"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// A missing .env is normal outside development
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	for {
		if err := run(); err != nil {
			log.Err(err).Msg("Error running server, restarting")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	setupLogging(c)
	displayAppname(c.GetAppName())

	storage, closeStorage, err := sessionProvider(c)
	if err != nil {
		return err
	}
	defer closeStorage()

	client, err := api.New(c.GetAPIBaseURL(), api.WithTimeout(c.GetAPITimeout()))
	if err != nil {
		return errors.Wrap(err, "[run] api client")
	}
	log.Info().Str("api", client.BaseURL()).Msg("CRM API configured")

	handler, err := server.New(c, client, storage)
	if err != nil {
		return errors.Wrap(err, "[run] server")
	}

	httpServer := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- listenAndServe(httpServer)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(httpServer)
}

func setupLogging(c config.Config) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// sessionProvider builds the browser storage named by SESSION_BACKEND. The
// returned func releases any connection it opened.
func sessionProvider(c config.Config) (sessions.Provider, func(), error) {
	noop := func() {}

	switch c.GetSessionBackend() {
	case config.SessionBackendMemory:
		log.Info().Msg("Session storage: in memory")
		return sessions.NewKeyedProvider(memstore.New(memstore.WithIdleTimeout(c.GetSessionMaxAge())), c.GetSessionMaxAge()), noop, nil

	case config.SessionBackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     c.GetRedisAddr(),
			Password: c.GetRedisPassword(),
			DB:       c.GetRedisDB(),
		})
		backend := redisstore.New(rdb, redisstore.DefaultPrefix, c.GetSessionMaxAge())
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := backend.Ping(ctx); err != nil {
			_ = rdb.Close()
			return nil, noop, errors.Wrapf(err, "[sessionProvider] redis at %s", c.GetRedisAddr())
		}
		log.Info().Str("addr", c.GetRedisAddr()).Msg("Session storage: redis")
		return sessions.NewKeyedProvider(backend, c.GetSessionMaxAge()), func() { _ = rdb.Close() }, nil

	default:
		secret := c.GetSessionSecret()
		if config.IsDevSecret(secret) {
			if c.GetEnv() != "DEV" {
				return nil, noop, errors.New("[sessionProvider] SESSION_SECRET must be set outside DEV")
			}
			log.Warn().Msg("Using the development session secret; set SESSION_SECRET before deploying")
		}
		provider, err := cookiestore.New([]byte(secret), c.GetSessionMaxAge(), c.GetEnv() != "DEV")
		if err != nil {
			return nil, noop, errors.Wrap(err, "[sessionProvider] cookie store")
		}
		log.Info().Msg("Session storage: encrypted cookie")
		return provider, noop, nil
	}
}

func listenAndServe(server *http.Server) error {
	log.Info().Msgf("Server listening on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
