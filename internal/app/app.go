// Package app wires configuration into the stores, usecases and services
// shared by the HTTP server and the maintenance CLI.
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/vinestrading/catalog-service/config"
	"github.com/vinestrading/catalog-service/internal/admin"
	adminRepoPkg "github.com/vinestrading/catalog-service/internal/admin/repository"
	adminUCPkg "github.com/vinestrading/catalog-service/internal/admin/usecase"
	"github.com/vinestrading/catalog-service/internal/auth"
	"github.com/vinestrading/catalog-service/internal/category"
	catRepoPkg "github.com/vinestrading/catalog-service/internal/category/repository"
	catUCPkg "github.com/vinestrading/catalog-service/internal/category/usecase"
	"github.com/vinestrading/catalog-service/internal/database"
	"github.com/vinestrading/catalog-service/internal/i18n"
	"github.com/vinestrading/catalog-service/internal/logger"
	"github.com/vinestrading/catalog-service/internal/product"
	prodRepoPkg "github.com/vinestrading/catalog-service/internal/product/repository"
	prodUCPkg "github.com/vinestrading/catalog-service/internal/product/usecase"
	"github.com/vinestrading/catalog-service/internal/seed"
	"github.com/vinestrading/catalog-service/internal/server"
	"github.com/vinestrading/catalog-service/internal/upload"
)

// NewLogger builds the service logger. Development runs log debug to the
// console, everything else logs info as json. LOGGER_LEVEL and
// LOGGER_ENCODING win over both.
func NewLogger(cfg *config.Config) logger.ZapLogger {
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}

	if cfg.IsDevelopment() {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}
	if cfg.Logger.Level != "" {
		logConfig.Level = cfg.Logger.Level
	}
	if cfg.Logger.Encoding != "" {
		logConfig.Encoding = cfg.Logger.Encoding
	}

	return logger.NewZapLogger(logConfig)
}

type App struct {
	Config     *config.Config
	Logger     logger.ZapLogger
	DB         *sqlx.DB
	Uploads    *upload.Store
	Categories category.UseCase
	Products   product.UseCase
	Admins     admin.UseCase
	Auth       *auth.Service
	I18n       *i18n.Bundle
	Limiter    *auth.LoginLimiter
}

// New connects to the database and builds every service. Close releases
// the connection pool.
func New(ctx context.Context, cfg *config.Config, log logger.ZapLogger) (*App, error) {
	return NewWithFs(ctx, cfg, afero.NewOsFs(), log)
}

// NewWithFs is New with the upload filesystem supplied by the caller.
func NewWithFs(ctx context.Context, cfg *config.Config, fs afero.Fs, log logger.ZapLogger) (*App, error) {
	db, err := database.NewDB(ctx, &database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DataSourceName(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	log.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

	bundle, err := i18n.NewBundle(cfg.I18n.DefaultLanguage)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load translations: %w", err)
	}

	uploads := upload.NewStore(fs, cfg.Upload.Dir, cfg.Upload.URLPrefix, cfg.Upload.MaxBytes)

	catRepo := catRepoPkg.NewSQLRepository(db)
	prodRepo := prodRepoPkg.NewSQLRepository(db)
	adminRepo := adminRepoPkg.NewSQLRepository(db)

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	adminUC := adminUCPkg.NewAdminUseCase(adminRepo, hasher, log)

	return &App{
		Config:     cfg,
		Logger:     log,
		DB:         db,
		Uploads:    uploads,
		Categories: catUCPkg.NewCategoryUseCase(catRepo, uploads, log),
		Products:   prodUCPkg.NewProductUseCase(prodRepo, catRepo, uploads, log),
		Admins:     adminUC,
		Auth: auth.NewService(
			adminUC,
			hasher,
			auth.NewTokenIssuer(cfg.JWT.SecretKey, cfg.JWT.Issuer, cfg.JWT.TTL),
			auth.BootstrapCredentials{
				Username: cfg.Bootstrap.Username,
				Password: cfg.Bootstrap.Password,
			},
			log,
		),
		I18n:    bundle,
		Limiter: auth.NewLoginLimiter(cfg.Server.LoginRateLimit, cfg.Server.LoginBurst),
	}, nil
}

// Prepare brings the schema up to date, creates the upload directory and
// makes sure a super admin exists.
func (a *App) Prepare(ctx context.Context) error {
	applied, err := database.Migrate(ctx, a.DB)
	if err != nil {
		return err
	}
	for _, name := range applied {
		a.Logger.Info("Applied migration", zap.String("name", name))
	}

	if err := a.Uploads.Init(); err != nil {
		return fmt.Errorf("init uploads: %w", err)
	}

	if _, err := a.Auth.BootstrapSuperAdmin(ctx); err != nil {
		return fmt.Errorf("bootstrap super admin: %w", err)
	}
	return nil
}

func (a *App) Seeder() *seed.Seeder {
	return seed.NewSeeder(a.Categories, a.Products, a.Logger)
}

func (a *App) Router() (*gin.Engine, error) {
	return server.NewRouter(server.Deps{
		DB:           a.DB,
		Auth:         a.Auth,
		Categories:   a.Categories,
		Products:     a.Products,
		Admins:       a.Admins,
		Uploads:      a.Uploads,
		I18n:         a.I18n,
		Limiter:      a.Limiter,
		SecureCookie: a.Config.Server.CookieSecure,
		Logger:       a.Logger,
	})
}

func (a *App) Close() error {
	return a.DB.Close()
}
