package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/core/filter"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/core/session"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/infra/gateway/ptb"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/infra/gateway/uba"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/infra/gateway/zenith"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/infra/postgres"
	infraRedis "github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/infra/redis"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/platform/operator"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/statement"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/transport/httpapi"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/transport/httpapi/handler"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/transport/httpapi/middleware"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/pkg/config"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/pkg/logger"
)

// redisPinger adapts the go-redis client to the health check interface.
type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func main() {
	// Create context that listens for termination signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewDefault(cfg.Env)
	log.Info("Starting Statement Hub API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Initialize database connection pool
	dbCfg := postgres.Config{
		URL: cfg.DatabaseURL,
	}
	db, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("Database connection established")

	// Initialize Redis client for durable bank selections
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	// Test Redis connection
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	log.Info("Redis connection established")

	// Load bank gateway configuration
	banksCfg, err := config.LoadBanksConfig(cfg.BanksConfigPath)
	if err != nil {
		log.Error("Failed to load banks configuration", "error", err, "path", cfg.BanksConfigPath)
		os.Exit(1)
	}

	// Build the statement source registry from the configured banks
	registry := statement.NewRegistry()
	for _, bank := range banksCfg.Banks {
		token := bank.APIToken()
		if token == "" {
			log.Warn("No API token configured for bank, skipping",
				"bank", bank.ID, "env_var", bank.APITokenEnv)
			continue
		}

		switch bank.ID {
		case statement.BankZenith:
			client := zenith.NewClient(token, log)
			if bank.BaseURL != "" {
				client.SetBaseURL(bank.BaseURL)
			}
			registry.Register(bank.ID, zenith.NewSourceAdapter(client))
		case statement.BankUBA:
			client := uba.NewClient(token, log)
			if bank.BaseURL != "" {
				client.SetBaseURL(bank.BaseURL)
			}
			registry.Register(bank.ID, uba.NewSourceAdapter(client))
		case statement.BankPTB:
			client := ptb.NewClient(token, log)
			if bank.BaseURL != "" {
				client.SetBaseURL(bank.BaseURL)
			}
			registry.Register(bank.ID, ptb.NewSourceAdapter(client))
		default:
			log.Warn("No gateway implementation for configured bank", "bank", bank.ID)
		}
	}
	log.Info("Statement sources registered", "banks", registry.BankIDs())

	// Durable bank-selection store backed by Redis
	bankStore := infraRedis.NewBankStore(redisClient, log)
	storeFactory := func(operatorID string) filter.BankStore {
		return bankStore.For(operatorID)
	}

	// Per-operator statement sessions
	sessions := session.NewManager(cfg.StatementPageSize, registry, storeFactory, log)

	// Initialize operator service
	operatorRepo := postgres.NewOperatorRepository(db.Pool)
	operatorSvc := operator.NewService(operatorRepo, log)

	jwtSvc := middleware.NewJWTService(cfg.JWTSecret)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(operatorSvc, jwtSvc)
	statementHandler := handler.NewStatementHandler(sessions, registry)
	healthHandler := handler.NewHealthHandler(db, redisPinger{client: redisClient})

	// Create JWT middleware
	jwtMiddleware := middleware.JWTMiddleware(jwtSvc)

	// Determine allowed origins for CORS
	allowedOrigins := []string{"http://localhost:5173", "http://localhost:5174"} // Vite ports
	if cfg.IsProduction() {
		// In production, read from environment variable
		if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
			allowedOrigins = []string{origins}
		}
	}

	// Create HTTP router
	routerCfg := httpapi.Config{
		Logger:           log,
		AllowedOrigins:   allowedOrigins,
		AuthHandler:      authHandler,
		StatementHandler: statementHandler,
		HealthHandler:    healthHandler,
		JWTMiddleware:    jwtMiddleware,
	}
	r := httpapi.NewRouter(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for termination signal
	<-ctx.Done()
	log.Info("Shutdown signal received")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped gracefully")
}
