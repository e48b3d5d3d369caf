package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Server struct {
	HTTP *http.Server
	name string
	log  *zap.Logger
}

type Options struct {
	Addr        string
	ServiceName string
	Logger      *zap.Logger
	Router      chi.Router
}

func New(opts Options) *Server {
	if opts.Router == nil {
		opts.Router = chi.NewRouter()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           opts.Router,
		ReadHeaderTimeout: 5 * time.Second,
		// The gateway only proxies small JSON payloads; generous write
		// headroom for slow upstream round trips.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return &Server{HTTP: srv, name: opts.ServiceName, log: opts.Logger}
}

func (s *Server) Start() error {
	s.log.Info("http server starting", zap.String("service", s.name), zap.String("addr", s.HTTP.Addr))
	return s.HTTP.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.HTTP.Shutdown(ctx)
}
