// Package server assembles the HTTP router and runs the listener.
package server

import (
	"context"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/vinestrading/catalog-service/internal/admin"
	adminhandler "github.com/vinestrading/catalog-service/internal/admin/handler"
	"github.com/vinestrading/catalog-service/internal/auth"
	"github.com/vinestrading/catalog-service/internal/category"
	categoryhandler "github.com/vinestrading/catalog-service/internal/category/handler"
	"github.com/vinestrading/catalog-service/internal/i18n"
	"github.com/vinestrading/catalog-service/internal/logger"
	"github.com/vinestrading/catalog-service/internal/product"
	producthandler "github.com/vinestrading/catalog-service/internal/product/handler"
	"github.com/vinestrading/catalog-service/internal/upload"
	"github.com/vinestrading/catalog-service/internal/web"
)

const apiPrefix = "/api/v1"

type Deps struct {
	DB           *sqlx.DB
	Auth         *auth.Service
	Categories   category.UseCase
	Products     product.UseCase
	Admins       admin.UseCase
	Uploads      *upload.Store
	I18n         *i18n.Bundle
	Limiter      *auth.LoginLimiter
	SecureCookie bool
	Logger       logger.ZapLogger
}

func NewRouter(d Deps) (*gin.Engine, error) {
	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.HTMLRender = renderer
	r.Use(
		RequestID(),
		RequestLogger(d.Logger),
		Recovery(d.Logger),
		d.I18n.Middleware(d.SecureCookie),
		d.Auth.Resolve(),
	)

	r.GET("/healthz", health(d.DB))
	r.StaticFS("/assets", filesOnly{web.Assets()})
	r.StaticFS(d.Uploads.URLPrefix(), filesOnly{d.Uploads.FileSystem()})

	registerAPI(r.Group(apiPrefix), d)

	web.NewHandler(web.Deps{
		Auth:         d.Auth,
		Categories:   d.Categories,
		Products:     d.Products,
		Admins:       d.Admins,
		Limiter:      d.Limiter,
		SecureCookie: d.SecureCookie,
		Logger:       d.Logger,
	}).Register(r)

	return r, nil
}

func registerAPI(api *gin.RouterGroup, d Deps) {
	authH := auth.NewHandler(d.Auth)
	catH := categoryhandler.NewCategoryHandler(d.Categories, d.Logger)
	prodH := producthandler.NewProductHandler(d.Products, d.Logger)
	adminH := adminhandler.NewAdminHandler(d.Admins, d.Logger)

	token := []gin.HandlerFunc{authH.Token}
	if d.Limiter != nil {
		token = append([]gin.HandlerFunc{d.Limiter.Middleware(auth.ModeAPI)}, token...)
	}
	api.POST("/auth/token", token...)

	api.GET("/categories", catH.ListCategories)
	api.GET("/categories/:id", catH.GetCategory)
	api.GET("/products", prodH.ListProducts)
	api.GET("/products/:id", prodH.GetProduct)

	staff := api.Group("", auth.RequireAuthenticated(auth.ModeAPI))
	staff.GET("/auth/me", authH.Me)
	staff.POST("/categories", catH.CreateCategory)
	staff.PUT("/categories/:id", catH.UpdateCategory)
	staff.DELETE("/categories/:id", catH.DeleteCategory)
	staff.POST("/products", prodH.CreateProduct)
	staff.PUT("/products/:id", prodH.UpdateProduct)
	staff.DELETE("/products/:id", prodH.DeleteProduct)
	staff.PUT("/admins/me/password", adminH.ChangePassword)

	super := api.Group("/admins", auth.RequireSuperAdmin(auth.ModeAPI))
	super.GET("", adminH.ListAdmins)
	super.POST("", adminH.CreateAdmin)
	super.DELETE("/:id", adminH.DeleteAdmin)
}

func health(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func isAPI(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, apiPrefix+"/")
}

// filesOnly hides directory listings.
type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}

var _ http.FileSystem = filesOnly{}
