// Command scene-validator runs the scene activation validator as a standalone
// process: it loads configuration, wires the validator, subscribes to the
// hub, and serves a minimal health endpoint.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/codeready-toolchain/scene-validator/pkg/config"
	"github.com/codeready-toolchain/scene-validator/pkg/hub"
	"github.com/codeready-toolchain/scene-validator/pkg/scheduler"
	"github.com/codeready-toolchain/scene-validator/pkg/validator"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	configDir := flag.String("config-dir",
		getEnv("CONFIG_DIR", "./deploy/config"),
		"Path to configuration directory")
	flag.Parse()

	envPath := filepath.Join(*configDir, ".env")
	if err := godotenv.Load(envPath); err != nil {
		log.Printf("warning: could not load %s: %v", envPath, err)
		log.Printf("continuing with existing environment variables")
	} else {
		log.Printf("loaded environment from %s", envPath)
	}

	httpPort := getEnv("HTTP_PORT", "8080")
	ginMode := getEnv("GIN_MODE", "release")
	gin.SetMode(ginMode)

	cfgPath := filepath.Join(*configDir, "config.yaml")
	cfg, err := config.Initialize(cfgPath)
	if err != nil {
		log.Fatalf("failed to initialize configuration: %v", err)
	}

	hubBaseURL := getEnv("HUB_BASE_URL", "http://homeassistant.local:8123")
	hubToken := os.Getenv("HUB_TOKEN")
	if hubToken == "" {
		log.Fatalf("HUB_TOKEN must be set")
	}

	hubClient := hub.NewRESTClient(hubBaseURL, hubToken, 5*time.Second)
	sched := scheduler.NewReal()

	v, err := validator.New(cfg, hubClient, sched)
	if err != nil {
		log.Fatalf("failed to initialize validator: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := v.Start(ctx); err != nil {
		log.Fatalf("failed to start validator: %v", err)
	}

	router := gin.Default()
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, v.Health())
	})

	server := &http.Server{
		Addr:    ":" + httpPort,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("health server stopped unexpectedly", "error", err)
		}
	}()

	slog.Info("scene validator running", "http_port", httpPort, "inventory_dir", cfg.InventoryDir)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	slog.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("error during health server shutdown", "error", err)
	}
}
