// Package api serves the dialogue engine over HTTP.
//
// It exposes JSON endpoints for chat turns, pre-classified turns, conversation
// administration and prescription summaries, a WebSocket chat transport, and
// the inbound Twilio webhook when a Twilio channel is configured.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/BTreeMap/SehatSahara/internal/assistant"
	"github.com/BTreeMap/SehatSahara/internal/nlu"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
)

// Server configuration defaults
const (
	DefaultServerAddr      = ":8080"
	DefaultReadTimeout     = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	// maxRequestBodyBytes bounds every JSON request body.
	maxRequestBodyBytes = 1 << 20
)

// Opts holds configuration for the API server.
type Opts struct {
	Addr            string
	Classifier      nlu.Classifier
	TwilioWebhook   http.HandlerFunc
	ShutdownTimeout time.Duration
}

// Option configures the API server.
type Option func(*Opts)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) {
		o.Addr = addr
	}
}

// WithClassifier sets the classifier used by /v1/classify. The default is the
// keyword classifier.
func WithClassifier(c nlu.Classifier) Option {
	return func(o *Opts) {
		o.Classifier = c
	}
}

// WithTwilioWebhook mounts h at POST /webhooks/twilio.
func WithTwilioWebhook(h http.HandlerFunc) Option {
	return func(o *Opts) {
		o.TwilioWebhook = h
	}
}

// WithShutdownTimeout bounds graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *Opts) {
		o.ShutdownTimeout = d
	}
}

// Server is the HTTP front end of an Engine.
type Server struct {
	engine     *assistant.Engine
	classifier nlu.Classifier
	opts       Opts
	router     chi.Router
}

// NewServer creates a Server for engine.
func NewServer(engine *assistant.Engine, opts ...Option) *Server {
	cfg := Opts{Addr: DefaultServerAddr, ShutdownTimeout: DefaultShutdownTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Classifier == nil {
		cfg.Classifier = nlu.NewKeywordClassifier()
	}
	s := &Server{engine: engine, classifier: cfg.Classifier, opts: cfg}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/chat", s.chatHandler)
		r.Post("/respond", s.respondHandler)
		r.Post("/classify", s.classifyHandler)
		r.Post("/progress", s.progressHandler)
		r.Post("/prescriptions/summary", s.summaryHandler)
		r.Get("/meta", s.metaHandler)
		r.Get("/conversations/{userID}", s.getConversationHandler)
		r.Delete("/conversations/{userID}", s.deleteConversationHandler)
		r.Get("/ws", s.wsHandler)
	})
	if s.opts.TwilioWebhook != nil {
		r.Post("/webhooks/twilio", s.opts.TwilioWebhook)
	}
	return r
}

// Handler returns the router, for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:        s.opts.Addr,
		Handler:     s.router,
		ReadTimeout: DefaultReadTimeout,
		IdleTimeout: DefaultIdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("API server listening", "addr", s.opts.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		slog.Info("API server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
