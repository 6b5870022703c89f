// Package httpapi exposes the account service over REST. Routes default to
// requiring a bearer token; public endpoints are marked explicitly in the
// route table.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/famly-app/identity/internal/logging"
	"github.com/famly-app/identity/internal/server/accounts"
	"github.com/famly-app/identity/internal/server/config"
)

type Server struct {
	address   string
	accounts  *accounts.Service
	logger    logging.Logger
	jwtSecret []byte
}

func NewServer(service *accounts.Service, cfg *config.Config, logger logging.Logger) *Server {
	return &Server{
		address:   cfg.EndpointAddr,
		accounts:  service,
		logger:    logger.With("module", "httpapi"),
		jwtSecret: []byte(cfg.SecretKey),
	}
}

// route binds a handler to a method and path. Handlers are protected by the
// access guard unless public is set.
type route struct {
	method  string
	path    string
	public  bool
	handler gin.HandlerFunc
}

func (s *Server) routes() []route {
	return []route{
		{method: http.MethodPost, path: "/api/auth/register", public: true, handler: s.handleRegister},
		{method: http.MethodPost, path: "/api/auth/login", public: true, handler: s.handleLogin},
		{method: http.MethodGet, path: "/api/auth/me", handler: s.handleMe},
		{method: http.MethodGet, path: "/api/health", public: true, handler: s.handleHealth},
	}
}

// Engine builds the router. The guard runs per route rather than globally so
// that new routes are protected unless deliberately marked public.
func (s *Server) Engine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(s.requestLogger())

	guard := s.accessGuard()
	for _, r := range s.routes() {
		if r.public {
			engine.Handle(r.method, r.path, r.handler)
		} else {
			engine.Handle(r.method, r.path, guard, r.handler)
		}
	}

	return engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Engine(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "error shutting down http server", "error", err)
		}
	}()

	s.logger.Info(ctx, "starting http server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
