package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"user-gate/config"
	"user-gate/internal/handler"
	"user-gate/internal/middleware"
	"user-gate/internal/pipeline"
	"user-gate/internal/transport/httpdto"
	"user-gate/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
	onShutdown []func(ctx context.Context) error
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

const hookTimeout = 5 * time.Second

type Handlers struct {
	Auth  *handler.AuthHandler
	Fault *handler.FaultHandler
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.AppPort),
			Handler:           corsHandler.Handler(engine),
			ReadHeaderTimeout: 10 * time.Second,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

// SetupRoutes installs the middleware chain and routes. ErrorHandler wraps
// Recovery so recovered panics reach the pipeline like any other error.
func (s *Server) SetupRoutes(handlers *Handlers, errPipeline *pipeline.Pipeline) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(errPipeline, s.logger))
	s.engine.Use(middleware.Recovery())

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"message": "pong"}))
	})

	s.engine.POST("/register", handlers.Auth.Register)
	s.engine.POST("/login", handlers.Auth.Login)

	faults := s.engine.Group("/panic")
	{
		faults.GET("/sync", handlers.Fault.Sync)
		faults.GET("/async", handlers.Fault.Async)
	}

	s.engine.NoRoute(handler.NotFound)
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// OnShutdown registers a hook run, in order, after the HTTP server stopped.
func (s *Server) OnShutdown(fn func(ctx context.Context) error) {
	s.onShutdown = append(s.onShutdown, fn)
}

// Start serves until SIGINT/SIGTERM or until the listener fails, then shuts
// down. A listen failure still runs the shutdown hooks.
func (s *Server) Start() error {
	listenErr := make(chan error, 1)
	go func() {
		s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(quit)

	s.logger.Infof("Server is running on :%s", s.config.AppPort)

	select {
	case err := <-listenErr:
		s.logger.Errorf("Error in starting the server: %s", err)
		ctx, cancel := context.WithTimeout(context.Background(), hookTimeout)
		defer cancel()
		s.runHooks(ctx)
		return fmt.Errorf("listen on :%s: %w", s.config.AppPort, err)
	case <-quit:
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	return s.Shutdown(ctx)
}

// Shutdown stops accepting requests and runs the shutdown hooks. The hooks
// run even when the graceful stop times out.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		s.logger.Infof("Error in the graceful shutdown of the server: %s", err)
		hookCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), hookTimeout)
		defer cancel()
		s.runHooks(hookCtx)
		return err
	}

	s.runHooks(ctx)
	s.logger.Infof("Server stopped gracefully")
	return nil
}

func (s *Server) runHooks(ctx context.Context) {
	for _, fn := range s.onShutdown {
		if err := fn(ctx); err != nil {
			s.logger.Errorf("shutdown hook failed: %s", err)
		}
	}
}
