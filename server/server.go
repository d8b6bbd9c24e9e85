package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/promptkit/logger"
	"github.com/kbukum/promptkit/observability"
	"github.com/kbukum/promptkit/server/middleware"
)

const shutdownTimeout = 5 * time.Second

// Server is the HTTP surface: a Gin engine mounted on a ServeMux behind
// h2c, with server-level middleware wrapping the whole mux.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	mux        *http.ServeMux
	config     Config
	log        *logger.Logger

	mu       sync.Mutex
	handler  http.Handler
	listener net.Listener
}

// New creates a Server. Call ApplyMiddleware before serving.
func New(cfg Config, log *logger.Logger) *Server {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	mux := http.NewServeMux()
	mux.Handle("/", engine)

	s := &Server{
		engine:  engine,
		mux:     mux,
		config:  cfg,
		log:     log.WithComponent("server"),
		handler: mux,
	}

	h2s := &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          time.Duration(cfg.IdleTimeout) * time.Second,
	}
	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h2c.NewHandler(http.HandlerFunc(s.serveHTTP), h2s),
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
	}
	return s
}

func (s *Server) serveHTTP(w http.ResponseWriter, r *http.Request) {
	s.Handler().ServeHTTP(w, r)
}

// GinEngine returns the underlying Gin engine for route registration.
func (s *Server) GinEngine() *gin.Engine {
	return s.engine
}

// Handler returns the mux wrapped in the server-level middleware.
func (s *Server) Handler() http.Handler {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handler
}

// Handle mounts an http.Handler at pattern on the root ServeMux.
func (s *Server) Handle(pattern string, handler http.Handler) {
	s.mux.Handle(pattern, handler)
	s.log.Debug("Handler mounted", logger.Fields("pattern", pattern))
}

// ApplyMiddleware wraps the mux in recovery, request id, tracing, CORS,
// body size limit and request logging, outermost first.
func (s *Server) ApplyMiddleware(service string, metrics *observability.Metrics) {
	chain := middleware.Chain(
		middleware.Recovery(s.log),
		middleware.RequestID(),
		middleware.Tracing(service, metrics),
		middleware.CORS(&s.config.CORS),
		middleware.BodySizeLimit(s.config.MaxBodySize),
		middleware.RequestLogger(s.log),
	)
	s.mu.Lock()
	s.handler = chain(s.mux)
	s.mu.Unlock()
}

// Start binds the port and serves in a goroutine. It returns once the
// listener is bound.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.WithError(err).Error("Server error")
		}
	}()

	s.log.Info("HTTP server started", logger.Fields("addr", listener.Addr().String()))
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.log.WithError(err).Error("Server shutdown error")
		return fmt.Errorf("server shutdown error: %w", err)
	}
	s.log.Info("HTTP server shut down")
	return nil
}

// Addr returns the bound address once started, or the configured one.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}
