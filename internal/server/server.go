// Package server serves the wizard over HTTP. Each session holds one
// controller; posted forms apply their values and then the event named by
// the _event field.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"sync"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/internal/metrics"
	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla"
	"github.com/goliatone/go-formwizard/pkg/submit"
)

const (
	// BasePath is the route that starts a new solicitud.
	BasePath = "/solicitudes/crear"

	csrfContextKey = "csrf"
	defaultTTL     = 30 * time.Minute
)

// Submitter delivers an accepted solicitud to the backend.
type Submitter interface {
	Submit(ctx context.Context, payload submit.Payload) (submit.Created, error)
}

// Config holds the listener address and session lifetime.
type Config struct {
	Host       string
	Port       int
	SessionTTL time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithRenderers replaces the default HTML and JSON renderers. The first
// renderer of the registry answers requests that match no content type.
func WithRenderers(registry *render.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.renderers = registry
		}
	}
}

// WithSubmitter posts accepted solicitudes to a backend. Without one,
// submissions end at the gate.
func WithSubmitter(submitter Submitter) Option {
	return func(s *Server) {
		s.submitter = submitter
	}
}

// WithMetrics records wizard and HTTP metrics and serves them at /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithTheme applies a resolved theme to every render.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(s *Server) {
		s.theme = cfg
	}
}

// WithAssets serves files under prefix.
func WithAssets(prefix string, files fs.FS) Option {
	return func(s *Server) {
		s.assetsPrefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
		s.assets = files
	}
}

// WithoutCSRF disables the anti-forgery check.
func WithoutCSRF() Option {
	return func(s *Server) {
		s.csrf = false
	}
}

// Server provides the wizard HTTP endpoints.
type Server struct {
	echo   *echo.Echo
	logger *zap.Logger
	config Config

	def          model.Definition
	aliases      map[string]string
	renderers    *render.Registry
	submitter    Submitter
	metrics      *metrics.Metrics
	theme        *theme.RendererConfig
	assetsPrefix string
	assets       fs.FS
	csrf         bool

	sessions *sessionStore
	stop     chan struct{}
	stopOnce sync.Once
}

// New builds the server for def.
func New(def model.Definition, logger *zap.Logger, cfg Config, options ...Option) (*Server, error) {
	if logger == nil {
		return nil, fmt.Errorf("server: logger is required")
	}
	if def.TotalSteps() == 0 {
		return nil, fmt.Errorf("server: definition %q has no steps", def.ID)
	}
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = defaultTTL
	}

	s := &Server{
		logger:  logger,
		config:  cfg,
		def:     def,
		aliases: submit.PayloadAliases(def),
		csrf:    true,
		stop:    make(chan struct{}),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	s.sessions = newSessionStore(cfg.SessionTTL)

	if s.renderers == nil {
		registry, err := s.defaultRenderers()
		if err != nil {
			return nil, err
		}
		s.renderers = registry
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(s.observe)
	s.echo = e

	s.registerRoutes()
	return s, nil
}

func (s *Server) defaultRenderers() (*render.Registry, error) {
	opts := []vanilla.Option{vanilla.WithDocument("es")}
	if s.assets != nil && s.assetsPrefix != "" {
		opts = append(opts, vanilla.WithAssetsURL(s.assetsPrefix))
	}
	html, err := vanilla.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	registry := render.NewRegistry()
	registry.MustRegister(html)
	registry.MustRegister(render.NewJSONRenderer())
	return registry, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	if s.metrics != nil {
		s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	}
	if s.assets != nil && s.assetsPrefix != "" {
		s.echo.StaticFS(s.assetsPrefix, s.assets)
	}

	wizardRoutes := s.echo.Group(BasePath)
	if s.csrf {
		wizardRoutes.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
			TokenLookup:    "form:" + render.CSRFFieldName,
			ContextKey:     csrfContextKey,
			CookieName:     render.CSRFFieldName,
			CookiePath:     BasePath,
			CookieHTTPOnly: true,
			CookieSameSite: http.SameSiteStrictMode,
		}))
	}
	wizardRoutes.GET("", s.handleStart)
	wizardRoutes.GET("/:id", s.handleShow)
	wizardRoutes.POST("/:id", s.handleEvent)
}

// observe logs each request and records it in the metrics.
func (s *Server) observe(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		duration := time.Since(start)

		s.logger.Info("http request",
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
			zap.Int("status", c.Response().Status),
			zap.Duration("duration", duration),
			zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		)
		if s.metrics != nil {
			s.metrics.ObserveHTTP(c.Request().Method, c.Path(), c.Response().Status, duration)
		}
		return nil
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start sweeps idle sessions in the background and serves until Shutdown.
func (s *Server) Start() error {
	go s.sweepLoop()
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	s.stopOnce.Do(func() { close(s.stop) })
	return s.echo.Shutdown(ctx)
}

func (s *Server) sweepLoop() {
	if s.config.SessionTTL <= 0 {
		return
	}
	ticker := time.NewTicker(s.config.SessionTTL / 2)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if removed := s.sessions.sweep(); removed > 0 {
				s.logger.Debug("expired sessions removed", zap.Int("count", removed))
			}
			s.trackSessions()
		}
	}
}

func (s *Server) trackSessions() {
	if s.metrics != nil {
		s.metrics.SessionsActive.Set(float64(s.sessions.len()))
	}
}
