package main

// @title           SnapKeep Core API
// @version         1.0
// @description     Personal document intelligence API. SnapKeep Core extracts fields, tags, and duplicates from your documents and answers natural-language questions about them.

// @contact.name   SnapKeep OSS
// @contact.url    https://github.com/santhosh-patel/snapkeep-core/issues

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Format: "Bearer {token}"

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/santhosh-patel/snapkeep-core/internal/adapters/driven/auth"
	"github.com/santhosh-patel/snapkeep-core/internal/adapters/driven/postgres"
	redisadapter "github.com/santhosh-patel/snapkeep-core/internal/adapters/driven/redis"
	"github.com/santhosh-patel/snapkeep-core/internal/adapters/driving/http"
	"github.com/santhosh-patel/snapkeep-core/internal/config"
	"github.com/santhosh-patel/snapkeep-core/internal/core/ports/driven"
	"github.com/santhosh-patel/snapkeep-core/internal/core/ports/driving"
	"github.com/santhosh-patel/snapkeep-core/internal/core/services"
	"github.com/santhosh-patel/snapkeep-core/internal/worker"
)

var version = "dev"

func main() {
	cfg := config.MustLoad("")

	// Command line arg overrides the configured run mode
	mode := cfg.Mode
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	log.Printf("snapkeep-core %s starting in %s mode", version, mode)

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutdown signal received, stopping...")
		cancel()
	}()

	// ===== Initialize PostgreSQL =====
	log.Println("Connecting to PostgreSQL...")
	dbConfig := postgres.Config{
		URL:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetimeSec) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Database.ConnMaxIdleSec) * time.Second,
	}
	db, err := postgres.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize schema (idempotent)
	if err := db.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	log.Println("PostgreSQL connected and schema initialized")

	// ===== Initialize Redis (optional) =====
	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		log.Println("Connecting to Redis...")
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Println("Redis connected")
	}

	// ===== Driven adapters (infrastructure) =====
	authAdapter := auth.NewAdapter(cfg.Auth.JWTSecret)

	// ===== PostgreSQL Stores =====
	userStore := postgres.NewUserStore(db)
	documentStore := postgres.NewDocumentStore(db)

	// ===== Session Store (Redis if available, otherwise PostgreSQL) =====
	var sessionStore driven.SessionStore
	if redisClient != nil {
		sessionStore = redisadapter.NewSessionStore(redisClient)
		log.Println("Using Redis session store")
	} else {
		sessionStore = postgres.NewSessionStore(db)
		log.Println("Using PostgreSQL session store")
	}

	// ===== Task Queue (Redis if available, otherwise PostgreSQL) =====
	var taskQueue driven.TaskQueue
	if redisClient != nil {
		taskQueue, err = redisadapter.NewQueue(redisClient)
		if err != nil {
			log.Fatalf("Failed to create task queue: %v", err)
		}
		log.Println("Using Redis task queue")
	} else {
		taskQueue = postgres.NewQueue(db)
		log.Println("Using PostgreSQL task queue")
	}

	// Services (core business logic)
	authService := services.NewAuthService(userStore, sessionStore, authAdapter, authAdapter)
	ingestionService := services.NewIngestionService(documentStore, slog.Default())
	searchService := services.NewSearchService(documentStore, slog.Default())
	documentService := services.NewDocumentService(documentStore)

	var redisPinger http.Pinger
	if redisClient != nil {
		redisPinger = pingAdapter{redisClient}
	}

	runAPIServer := func() {
		serverCfg := http.Config{
			Host:    cfg.Server.Host,
			Port:    cfg.Server.Port,
			Version: version,
		}
		server := http.NewServer(
			serverCfg,
			authService,
			ingestionService,
			searchService,
			documentService,
			taskQueue,
			db,
			redisPinger,
		)
		log.Printf("API server starting on %s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := server.Start(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}

	switch mode {
	case "api":
		// API-only mode: HTTP server, no worker
		runAPIServer()

	case "worker":
		// Worker-only mode: task processing, no HTTP server
		runWorkerMode(ctx, cfg, taskQueue, ingestionService)

	case "all":
		// Combined mode: worker in background, API in foreground (blocks)
		go runWorkerMode(ctx, cfg, taskQueue, ingestionService)
		runAPIServer()

	default:
		log.Fatalf("Unknown mode: %s (use: api, worker, or all)", mode)
	}
}

// runWorkerMode starts the background worker and blocks until the
// context is cancelled.
func runWorkerMode(
	ctx context.Context,
	cfg config.Config,
	taskQueue driven.TaskQueue,
	ingestionService driving.IngestionService,
) {
	log.Println("Starting worker mode...")

	w := worker.New(worker.Config{
		TaskQueue:      taskQueue,
		Ingestion:      ingestionService,
		Logger:         slog.Default(),
		Concurrency:    cfg.Worker.Concurrency,
		DequeueTimeout: cfg.Worker.DequeueTimeoutSec,
	})

	if err := w.Start(ctx); err != nil {
		log.Fatalf("Failed to start worker: %v", err)
	}

	log.Println("Worker started, processing tasks...")
	log.Println("Worker handles:")
	log.Println("  - ingest_document: Extract, classify, and store a document")

	<-ctx.Done()

	log.Println("Stopping worker...")
	w.Stop()
	log.Println("Worker stopped")
}

// pingAdapter exposes a redis client through the server's health check
// interface.
type pingAdapter struct {
	client *redis.Client
}

func (p pingAdapter) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
