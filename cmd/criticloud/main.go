package main

import (
	"context"
	"errors"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/example/criticloud/internal/handlers"
	"github.com/example/criticloud/internal/platform/auth"
	"github.com/example/criticloud/internal/platform/config"
	"github.com/example/criticloud/internal/platform/httpserver"
	"github.com/example/criticloud/internal/platform/logging"
	"github.com/example/criticloud/internal/platform/run"
	"github.com/example/criticloud/internal/ratings"
	"github.com/example/criticloud/internal/resolve"
	"github.com/example/criticloud/internal/session"
	"github.com/example/criticloud/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logging.New(cfg.LogLevel, cfg.ServiceName)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	sessionTTL := time.Duration(cfg.Session.TTLSec) * time.Second
	var store session.Store
	switch cfg.Session.Backend {
	case "redis":
		rs, err := session.NewRedisStore(cfg.Session.RedisURL, sessionTTL)
		if err != nil {
			log.Error("init redis session store", zap.Error(err))
			run.Exit(1)
		}
		store = rs
	default:
		store = session.NewMemoryStore(sessionTTL)
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "upstream",
		MaxRequests: cfg.Breaker.MaxRequests,
		Interval:    cfg.Breaker.Interval,
		Timeout:     cfg.Breaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.Breaker.FailureThreshold
		},
		// Not-found and unauthorized are per-request outcomes, not upstream
		// health signals.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, upstream.ErrNotFound) || errors.Is(err, upstream.ErrUnauthorized)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info("circuit-breaker state change", zap.String("name", name), zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})

	client := upstream.New(cfg.UpstreamBase,
		upstream.WithCircuitBreaker(cb),
		upstream.WithLogger(log.Named("upstream")))

	gw := &handlers.Gateway{
		Upstream: client,
		Resolver: resolve.New(client, log.Named("resolve")),
		Sessions: store,
		Signer:   auth.Signer{Secret: cfg.Session.JWTSecret, TTL: sessionTTL},
		Verifier: auth.Verifier{Secret: cfg.Session.JWTSecret},
		Scale:    ratings.ScaleFor(cfg.RatingScaleMax),
		Cache:    handlers.NewTTLCache(cfg.CacheTTLSec),
		Log:      log.Named("handlers"),
	}

	r := chi.NewRouter()
	httpserver.SetupRouter(r, config.CORSOrigins())
	gw.Routes(r)

	srv := httpserver.New(httpserver.Options{Addr: cfg.HTTP.Addr, ServiceName: cfg.ServiceName, Logger: log, Router: r})

	runner := run.New(log)
	code := runner.WithSignals(func(ctx context.Context) error {
		go func() {
			<-ctx.Done()
			_ = srv.Shutdown(context.Background())
		}()
		return srv.Start()
	})

	log.Info("exit", zap.Int("code", code))
	run.Exit(code)
}
