package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/santhosh-patel/snapkeep-core/internal/core/ports/driven"
	"github.com/santhosh-patel/snapkeep-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Services
	authService      driving.AuthService
	ingestionService driving.IngestionService
	searchService    driving.SearchService
	docService       driving.DocumentService

	// Infrastructure
	taskQueue   driven.TaskQueue
	db          Pinger // PostgreSQL health check
	redisClient Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:    "0.0.0.0",
		Port:    8080,
		Version: "dev",
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	authService driving.AuthService,
	ingestionService driving.IngestionService,
	searchService driving.SearchService,
	docService driving.DocumentService,
	taskQueue driven.TaskQueue,
	db Pinger,
	redisClient Pinger, // can be nil
) *Server {
	s := &Server{
		router:           http.NewServeMux(),
		version:          cfg.Version,
		authService:      authService,
		ingestionService: ingestionService,
		searchService:    searchService,
		docService:       docService,
		taskQueue:        taskQueue,
		db:               db,
		redisClient:      redisClient,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	authMiddleware := NewAuthMiddleware(s.authService)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Setup endpoint (public, one-time use)
	s.router.HandleFunc("POST /api/v1/setup", s.handleSetup)

	// Auth endpoints
	s.router.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	s.router.Handle("POST /api/v1/auth/logout",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleLogout)))
	s.router.Handle("GET /api/v1/me",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetMe)))

	// Document endpoints (authenticated)
	s.router.Handle("GET /api/v1/documents",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListDocuments)))
	s.router.Handle("POST /api/v1/documents",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleIngestDocument)))
	s.router.Handle("POST /api/v1/documents/preview",
		authMiddleware.Authenticate(http.HandlerFunc(s.handlePreviewDocument)))
	s.router.Handle("GET /api/v1/documents/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetDocument)))
	s.router.Handle("PUT /api/v1/documents/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleRenameDocument)))
	s.router.Handle("PUT /api/v1/documents/{id}/tags",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleSetDocumentTags)))
	s.router.Handle("POST /api/v1/documents/{id}/reextract",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleReextractDocument)))
	s.router.Handle("DELETE /api/v1/documents/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleDeleteDocument)))

	// Tag vocabulary (authenticated)
	s.router.Handle("GET /api/v1/tags",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListTags)))

	// Search and chat endpoints (authenticated)
	s.router.Handle("POST /api/v1/search",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleSearch)))
	s.router.Handle("POST /api/v1/chat",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleChat)))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
