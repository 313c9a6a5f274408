package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberSwagger "github.com/gofiber/swagger"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/genaimarketing/api/docs"
	"github.com/genaimarketing/api/internal/auth"
	"github.com/genaimarketing/api/internal/client"
	"github.com/genaimarketing/api/internal/config"
	"github.com/genaimarketing/api/internal/generation"
	"github.com/genaimarketing/api/internal/handler"
	"github.com/genaimarketing/api/internal/logging"
	"github.com/genaimarketing/api/internal/middleware"
	"github.com/genaimarketing/api/internal/service"
	"github.com/genaimarketing/api/internal/store"
	"github.com/genaimarketing/api/internal/store/pgstore"
	"github.com/genaimarketing/api/internal/store/redisstore"
	ws "github.com/genaimarketing/api/internal/websocket"
	"github.com/genaimarketing/api/internal/worker"
)

// @title          GenAI Marketing API
// @version        1.0
// @description    Backend API for campaign generation: briefs, generated assets and stage tracking.
// @host           localhost:8000
// @BasePath       /
// @schemes        http https
// @securityDefinitions.apikey BearerAuth
// @in             header
// @name           Authorization
// @description    Enter your bearer token in the format **Bearer &lt;token&gt;**
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.Server.LogLevel, cfg.Server.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if cfg.Server.ApiDomain != "" {
		docs.SwaggerInfo.Host = cfg.Server.ApiDomain
		docs.SwaggerInfo.Schemes = []string{"https"}
	} else {
		docs.SwaggerInfo.Host = "localhost:" + cfg.Server.Port
		docs.SwaggerInfo.Schemes = []string{"http"}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn("redis not available", zap.Error(err))
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	// Initialize Asynq client and inspector
	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()
	inspector := asynq.NewInspector(redisOpt)
	defer inspector.Close()

	// Record store
	records, err := openStore(ctx, cfg, redisClient)
	if err != nil {
		log.Fatal("failed to open record store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer records.Close()
	log.Info("record store ready", zap.String("driver", cfg.Store.Driver))

	waiter := generation.NewWaiter(newWatcher(cfg, records, redisClient, log))

	// Initialize WebSocket hub
	hub := ws.NewHub(log)
	go hub.Run(ctx)

	// Initialize R2 client (optional - continues if not configured)
	var storage client.StorageClient
	if cfg.R2.AccessKeyID != "" && cfg.R2.SecretAccessKey != "" {
		r2Client, err := client.NewR2Client(ctx, &cfg.R2)
		if err != nil {
			log.Warn("R2 client not initialized", zap.Error(err))
		} else {
			storage = r2Client
		}
	} else {
		log.Info("R2 storage not configured, using mock storage")
	}

	// Webhook (optional - an empty URL disables delivery)
	var webhookTasks service.TaskEnqueuer
	var webhookSender client.WebhookSender
	if wc := client.NewWebhookClient(&cfg.Webhook); wc != nil {
		webhookTasks = asynqClient
		webhookSender = wc
	} else {
		log.Info("webhook URL not configured, campaign notifications disabled")
	}

	// Initialize Zitadel JWKS verifier (optional - falls back to legacy JWT)
	var jwksVerifier *auth.JWKSVerifier
	if cfg.Zitadel.Issuer != "" {
		jwksVerifier, err = auth.NewJWKSVerifier(ctx, &cfg.Zitadel)
		if err != nil {
			log.Warn("JWKS verifier not initialized", zap.Error(err))
			jwksVerifier = nil
		} else {
			defer jwksVerifier.Close()
		}
	}

	// Initialize services
	campaignService := service.NewCampaignService(records, webhookTasks, waiter, log)
	assetService := service.NewAssetService(records)
	uploadService := service.NewUploadService(storage, records, log)
	generationService := service.NewGenerationService(service.NewRedisJobStore(redisClient), asynqClient, inspector, log)

	orchestrator := generation.NewOrchestrator(campaignService, waiter, generation.Options{
		Timeout:       cfg.Generation.Timeout,
		PollInterval:  cfg.Generation.PollInterval,
		StageTimeouts: cfg.Generation.StageTimeouts,
	}, log)

	// Initialize auth handler for ForwardAuth verification
	var tokenVerifier auth.TokenVerifier
	if jwksVerifier != nil {
		tokenVerifier = jwksVerifier
	}

	handlers := handler.Handlers{
		Auth:        handler.NewAuthHandler(tokenVerifier, cfg.JWT.Secret),
		Campaigns:   handler.NewCampaignHandler(campaignService, cfg.Generation.AwaitMax),
		Assets:      handler.NewAssetHandler(assetService),
		Uploads:     handler.NewUploadHandler(uploadService),
		Generations: handler.NewGenerationHandler(generationService),
	}

	// Initialize middleware (with fallback support)
	var apiAuthMiddleware fiber.Handler
	if cfg.Gateway.Enabled {
		// Behind Traefik: auth is handled by ForwardAuth, read X-User-* headers
		log.Info("gateway mode enabled, using header-based auth")
		apiAuthMiddleware = middleware.GatewayAuthMiddleware()
	} else {
		var authMiddleware *middleware.AuthMiddleware
		if jwksVerifier != nil && cfg.JWT.Secret != "" {
			authMiddleware = middleware.NewAuthMiddlewareWithFallback(jwksVerifier, cfg.JWT.Secret)
		} else if jwksVerifier != nil {
			authMiddleware = middleware.NewAuthMiddleware(jwksVerifier)
		} else {
			authMiddleware = middleware.NewLegacyAuthMiddleware(cfg.JWT.Secret)
		}
		apiAuthMiddleware = authMiddleware.Authenticate()
	}
	rateLimiter := middleware.NewRateLimiter(redisClient, log)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    120 * 1024 * 1024, // video creatives up to 100MB
	})

	// Global middleware
	app.Use(recover.New())
	logFormat := "[${time}] ${status} - ${latency} ${method} ${path}\n"
	if strings.EqualFold(cfg.Server.LogLevel, "debug") {
		logFormat = "[${time}] ${status} - ${latency} ${method} ${path} ${queryParams} ${body} ${reqHeaders}\n"
	}
	app.Use(logger.New(logger.Config{
		Format: logFormat,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"services": fiber.Map{
				"store":   cfg.Store.Driver,
				"watch":   cfg.Generation.WatchMode,
				"r2":      storage != nil,
				"webhook": webhookSender != nil,
				"auth":    jwksVerifier != nil || cfg.JWT.Secret != "" || cfg.Gateway.Enabled,
			},
		})
	})

	app.Get("/swagger/*", fiberSwagger.HandlerDefault)

	handler.RegisterRoutes(app, handlers, apiAuthMiddleware, handler.Limits{
		Generation: rateLimiter.GenerationLimit(cfg.RateLimit.GenerationsPerHour),
		Upload:     rateLimiter.UploadLimit(cfg.RateLimit.UploadsPerHour),
	})

	// WebSocket routes
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/jobs/:jobId", websocket.New(func(c *websocket.Conn) {
		jobID := c.Params("jobId")
		hub.HandleConnection(c, jobID)
	}))

	// Start Asynq worker server
	workers := newWorkerServer(cfg, redisOpt, log)
	mux := asynq.NewServeMux()
	mux.Handle(service.TaskTypeGeneration, worker.NewGenerationWorker(orchestrator, generationService, hub, log))
	mux.Handle(service.TaskTypeWebhook, worker.NewWebhookWorker(webhookSender, log))
	go func() {
		if err := workers.Run(mux); err != nil {
			log.Error("asynq worker error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		log.Info("shutting down server")
		workers.Shutdown()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	// Start server
	addr := ":" + cfg.Server.Port
	log.Info("server starting", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg *config.Config, redisClient *redis.Client) (store.Store, error) {
	switch cfg.Store.Driver {
	case "memory":
		return store.NewMemory(), nil
	case "redis":
		return redisstore.New(redisClient), nil
	case "postgres":
		pg, err := pgstore.Open(ctx, cfg.Store.PostgresURL)
		if err != nil {
			return nil, err
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Close()
			return nil, err
		}
		return pg, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// newWatcher picks how stage waits observe the record. Change notifications are only
// published by the redis store; every other driver polls.
func newWatcher(cfg *config.Config, records store.Store, redisClient *redis.Client, log *zap.Logger) generation.Watcher {
	if cfg.Generation.WatchMode == "pubsub" {
		if cfg.Store.Driver == "redis" {
			return generation.NewNotifyingWatcher(records, redisstore.NewChangeFeed(redisClient))
		}
		log.Warn("pubsub watch mode needs the redis store, polling instead", zap.String("driver", cfg.Store.Driver))
	}
	return generation.NewPollingWatcher(records)
}

func newWorkerServer(cfg *config.Config, redisOpt asynq.RedisClientOpt, log *zap.Logger) *asynq.Server {
	asynqLogLevel := asynq.InfoLevel
	if strings.EqualFold(cfg.Server.LogLevel, "debug") {
		asynqLogLevel = asynq.DebugLevel
	} else if strings.EqualFold(cfg.Server.LogLevel, "warn") {
		asynqLogLevel = asynq.WarnLevel
	} else if strings.EqualFold(cfg.Server.LogLevel, "error") {
		asynqLogLevel = asynq.ErrorLevel
	}

	return asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.Generation.Concurrency,
		Queues: map[string]int{
			service.QueueGeneration: 6,
			service.QueueWebhook:    4,
		},
		Logger:   log.Named("asynq").Sugar(),
		LogLevel: asynqLogLevel,
	})
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "SERVICE_ERROR",
			"message": message,
		},
	})
}
