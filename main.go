package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sitewave/order-api-go/handlers"
	"github.com/sitewave/order-api-go/middleware"
	"github.com/sitewave/order-api-go/monitoring"
	"github.com/sitewave/order-api-go/utils"
)

func main() {
	// Load .env file if it exists (optional - fails silently if not found)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true}))
	slog.SetDefault(logger)

	slog.Info("Starting Order API server initialization")

	dbConfig := NewDatabaseConfig()
	gormDB, err := ConnectGormDB(dbConfig)
	if err != nil {
		slog.Error("Failed to connect to GORM database", "error", err)
		os.Exit(1)
	}

	apiServer := handlers.NewAPIServer(gormDB)

	mux := http.NewServeMux()
	apiServer.SetupRoutes(mux)

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","service":"order-api","timestamp":"%s"}`, time.Now().Format(time.RFC3339))
	})

	// Prometheus metrics endpoint
	mux.Handle("/metrics", monitoring.Handler())

	// Setup JWT authentication middleware
	jwksURL := os.Getenv("IDP_JWKS_URL")
	if jwksURL == "" {
		slog.Error("IDP_JWKS_URL environment variable is required")
		os.Exit(1)
	}

	jwtConfig := middleware.JWTAuthConfig{
		JWKSURL:          jwksURL,
		ExpectedIssuer:   utils.GetEnvOrDefault("IDP_ISSUER", ""),
		ExpectedAudience: utils.GetEnvOrDefault("IDP_AUDIENCE", ""),
		Timeout:          10 * time.Second,
	}
	if err := jwtConfig.Validate(); err != nil {
		slog.Error("Invalid JWT configuration", "error", err)
		os.Exit(1)
	}
	jwtAuthMiddleware := middleware.NewJWTAuthMiddleware(jwtConfig)

	rateLimit, err := strconv.Atoi(utils.GetEnvOrDefault("RATE_LIMIT_PER_MINUTE", "120"))
	if err != nil || rateLimit <= 0 {
		rateLimit = 120
	}

	// Middleware chain: CORS -> security headers -> request logging ->
	// rate limiting -> JWT auth (webhooks excluded) -> routes
	handler := middleware.NewCORSMiddleware()(
		middleware.SecurityHeaders(
			middleware.RequestLogging(
				middleware.RateLimitMiddleware(rateLimit, time.Minute)(
					jwtAuthMiddleware.AuthenticateJWT(mux)))))

	port := utils.GetEnvOrDefault("PORT", "8080")
	addr := ":" + port
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Order API server starting", "port", port, "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Failed to start Order API server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down Order API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Order API server exited")
}
