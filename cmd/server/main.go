package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vinestrading/catalog-service/config"
	"github.com/vinestrading/catalog-service/internal/app"
	"github.com/vinestrading/catalog-service/internal/logger"
	"github.com/vinestrading/catalog-service/internal/server"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// 2. Initialize Logger
	appLogger := app.NewLogger(cfg)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	err = run(cfg, appLogger)
	if err != nil {
		appLogger.Error("Server exited with error", zap.Error(err))
	}
	_ = appLogger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run owns every resource that has to be released before the process exits.
func run(cfg *config.Config, appLogger logger.ZapLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Connect to Database and build services
	a, err := app.New(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("initialize service: %w", err)
	}
	defer a.Close()

	// 4. Migrations, upload dir and the first super admin
	if err := a.Prepare(ctx); err != nil {
		return fmt.Errorf("prepare service: %w", err)
	}

	// 5. Start HTTP Server
	router, err := a.Router()
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	srv := server.New(cfg.Server, router)
	return server.Run(ctx, srv, cfg.Server.ShutdownTimeout, appLogger)
}
