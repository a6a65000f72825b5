package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/Thakshaka/clinic-management-system/cmd/mainconfig"
	"github.com/Thakshaka/clinic-management-system/internal/api/router"
	"github.com/Thakshaka/clinic-management-system/internal/assistant"
	"github.com/Thakshaka/clinic-management-system/internal/compliance"
	appconfig "github.com/Thakshaka/clinic-management-system/internal/config"
	"github.com/Thakshaka/clinic-management-system/internal/history"
	"github.com/Thakshaka/clinic-management-system/internal/observability/metrics"
	"github.com/Thakshaka/clinic-management-system/internal/records"
	"github.com/Thakshaka/clinic-management-system/internal/webchat"
	"github.com/Thakshaka/clinic-management-system/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting clinic assistant API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	// Patient records live in DynamoDB, keyed by patient email via a GSI.
	dynamoClient := dynamodb.NewFromConfig(awsCfg)
	recordStore := records.NewStore(dynamoClient, cfg.AppointmentsTable, cfg.PrescriptionsTable, cfg.PatientEmailIndex, logger)
	fetcher := records.NewFetcher(recordStore, logger)

	// Gemini is the primary generative endpoint, Bedrock the fallback. Either
	// may be absent; with neither configured the composer uses canned replies.
	var llm assistant.LLMClient
	var geminiClient *assistant.GeminiLLMClient
	if cfg.GeminiAPIKey != "" {
		geminiClient, err = assistant.NewGeminiLLMClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
		if err != nil {
			logger.Error("failed to initialize Gemini client", "error", err)
			os.Exit(1)
		}
		defer geminiClient.Close()
		llm = geminiClient
	}
	if cfg.BedrockModelID != "" {
		bedrock := assistant.NewBedrockLLMClient(bedrockruntime.NewFromConfig(awsCfg), cfg.BedrockModelID)
		if llm != nil {
			llm = assistant.NewFallbackLLMClient(llm, bedrock, logger)
		} else {
			llm = bedrock
		}
	}
	if llm == nil {
		logger.Warn("no generative endpoint configured, freeform questions get canned replies")
	}

	redisOpts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
		os.Exit(1)
	}
	historyStore := history.NewStore(redisClient, cfg.HistoryTTL, logger)

	// The audit trail is optional: without a database the assistant still
	// answers, it just leaves no compliance record.
	var audit assistant.Auditor
	var disclaimer assistant.Disclaimer
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open audit database", "error", err)
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()
		if err := db.PingContext(ctx); err != nil {
			logger.Error("failed to ping audit database", "error", err)
			os.Exit(1)
		}
		auditService := compliance.NewAuditService(db)
		audit = auditService
		disclaimer = compliance.NewDisclaimerService(auditService, compliance.DefaultDisclaimerConfig())
	} else {
		logger.Warn("DATABASE_URL not set, compliance audit trail disabled")
		disclaimer = compliance.NewDisclaimerService(nil, compliance.DefaultDisclaimerConfig())
	}

	assistantMetrics := metrics.NewAssistantMetrics(nil)

	clinic := assistant.ClinicInfo{
		Name:     cfg.ClinicName,
		Location: cfg.ClinicLocation,
		Phone:    cfg.ClinicPhone,
		Email:    cfg.ClinicEmail,
		Hours:    cfg.ClinicHours,
	}
	composer := assistant.NewComposer(fetcher, llm, clinic, cfg.LLMTimeout, nil, assistantMetrics, logger)
	service := assistant.NewService(composer, historyStore, audit, disclaimer, logger)

	routerCfg := &router.Config{
		Logger:             logger,
		AssistantHandler:   assistant.NewHandler(service, logger),
		WebChatHandler:     webchat.NewHandler(service, logger),
		MetricsHandler:     promhttp.Handler(),
		PatientJWTSecret:   cfg.PatientJWTSecret,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerSecond: 5,
		RateLimitBurst:     10,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
