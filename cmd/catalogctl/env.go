package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vinestrading/catalog-service/config"
	"github.com/vinestrading/catalog-service/internal/app"
)

// withApp loads the configuration, connects and hands the wired services to fn.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	_ = godotenv.Load()
	cfg, err := config.LoadEnv()
	if err != nil {
		return err
	}

	log := app.NewLogger(cfg)
	defer log.Sync()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}
