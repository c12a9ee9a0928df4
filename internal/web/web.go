// Package web serves the public catalog pages and the admin forms.
package web

import (
	"errors"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vinestrading/catalog-service/internal/admin"
	"github.com/vinestrading/catalog-service/internal/auth"
	"github.com/vinestrading/catalog-service/internal/category"
	"github.com/vinestrading/catalog-service/internal/error/apperr"
	"github.com/vinestrading/catalog-service/internal/error/code"
	"github.com/vinestrading/catalog-service/internal/i18n"
	"github.com/vinestrading/catalog-service/internal/logger"
	"github.com/vinestrading/catalog-service/internal/model"
	"github.com/vinestrading/catalog-service/internal/product"
)

const (
	dashboardPath = "/admin/dashboard"
	usersPath     = "/admin/users"
	passwordPath  = "/admin/password"
)

type Deps struct {
	Auth       *auth.Service
	Categories category.UseCase
	Products   product.UseCase
	Admins     admin.UseCase
	// Limiter throttles POST /admin/login. Nil disables throttling.
	Limiter      *auth.LoginLimiter
	SecureCookie bool
	Logger       logger.ZapLogger
}

type Handler struct {
	auth       *auth.Service
	categories category.UseCase
	products   product.UseCase
	admins     admin.UseCase
	limiter    *auth.LoginLimiter
	secure     bool
	logger     logger.ZapLogger
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		auth:       d.Auth,
		categories: d.Categories,
		products:   d.Products,
		admins:     d.Admins,
		limiter:    d.Limiter,
		secure:     d.SecureCookie,
		logger:     d.Logger,
	}
}

// Register mounts the public pages and the /admin forms on r. The engine must
// use a Renderer and run auth.Service.Resolve before these routes.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/", h.Home)
	r.GET("/about", h.About)
	r.GET("/contact", h.Contact)
	r.GET("/products", h.Products)

	a := r.Group("/admin")
	a.GET("", func(c *gin.Context) { c.Redirect(http.StatusSeeOther, dashboardPath) })
	a.GET("/login", h.LoginPage)
	login := []gin.HandlerFunc{h.Login}
	if h.limiter != nil {
		login = append([]gin.HandlerFunc{h.limiter.Middleware(auth.ModeBrowser)}, login...)
	}
	a.POST("/login", login...)
	a.GET("/logout", h.Logout)

	staff := a.Group("", auth.RequireAuthenticated(auth.ModeBrowser))
	staff.GET("/dashboard", h.Dashboard)
	staff.POST("/products/add", h.AddProduct)
	staff.POST("/products/edit/:id", h.EditProduct)
	staff.POST("/products/delete/:id", h.DeleteProduct)
	staff.POST("/categories/add", h.AddCategory)
	staff.POST("/categories/edit/:id", h.EditCategory)
	staff.POST("/categories/delete/:id", h.DeleteCategory)
	staff.GET("/password", h.PasswordPage)
	staff.POST("/password", h.ChangePassword)

	super := a.Group("/users", auth.RequireSuperAdmin(auth.ModeBrowser))
	super.GET("", h.Users)
	super.POST("/add", h.AddAdmin)
	super.POST("/delete/:id", h.DeleteAdmin)
}

// Page is the data every template receives.
type Page struct {
	L      *i18n.Localizer
	Lang   string
	Dir    string
	Active string
	Admin  *model.Admin

	// Error and Notice are message ids carried over a redirect.
	Error      string
	Notice     string
	FieldLabel string

	Categories []model.Category
	Products   []model.Product
	Admins     []model.Admin
	Selected   *int64
	Search     string
	Username   string
}

func (p *Page) OtherLang() string {
	if p.Lang == "ar" {
		return "en"
	}
	return "ar"
}

var flashPattern = regexp.MustCompile(`^[a-z_]+$`)

// fieldLabels maps form fields to the message id of their label.
var fieldLabels = map[string]string{
	"name_en":          "field_name_en",
	"name_ar":          "field_name_ar",
	"description_en":   "field_description_en",
	"description_ar":   "field_description_ar",
	"slug":             "category_slug",
	"code":             "product_code",
	"weight":           "product_weight",
	"category_id":      "product_category",
	"image":            "product_image",
	"username":         "admin_username",
	"password":         "admin_password",
	"role":             "admin_role",
	"current_password": "admin_current_password",
	"new_password":     "admin_new_password",
}

func (h *Handler) page(c *gin.Context, active string) *Page {
	loc := i18n.FromContext(c)
	p := &Page{
		L:          loc,
		Lang:       "en",
		Dir:        loc.Dir(),
		Active:     active,
		Admin:      auth.CurrentAdmin(c),
		Error:      flash(c.Query("error"), "error_"),
		Notice:     flash(c.Query("notice"), "notice_"),
		FieldLabel: fieldLabels[c.Query("field")],
	}
	if loc != nil {
		p.Lang = loc.Lang
	}
	return p
}

func flash(v, prefix string) string {
	if strings.HasPrefix(v, prefix) && flashPattern.MatchString(v) {
		return v
	}
	return ""
}

func notice(c *gin.Context, target, msgID string) {
	c.Redirect(http.StatusSeeOther, target+"?notice="+url.QueryEscape(msgID))
}

// fail redirects back to target with the localizable message of err.
func (h *Handler) fail(c *gin.Context, target, op string, err error) {
	if code.FromError(err) == code.ErrUnknown {
		h.logger.Error("failed to "+op, zap.Error(err))
	} else {
		h.logger.Debug(op+" rejected", zap.Error(err))
	}

	msgID := apperr.MessageID(err)
	if msgID == "" {
		msgID = code.GetMessage(code.FromError(err))
	}
	q := url.Values{}
	q.Set("error", msgID)
	var appErr *apperr.Error
	if errors.As(err, &appErr) && appErr.Field != "" {
		q.Set("field", appErr.Field)
	}
	c.Redirect(http.StatusSeeOther, target+"?"+q.Encode())
}

func (h *Handler) serverError(c *gin.Context, op string, err error) {
	h.logger.Error("failed to "+op, zap.Error(err))
	c.String(http.StatusInternalServerError, i18n.FromContext(c).T(code.MsgUnknown))
	c.Abort()
}

func bindError(err error) error {
	return apperr.Invalid("", code.MsgBind, err)
}

func (h *Handler) id(c *gin.Context, target string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.fail(c, target, "parse id", bindError(err))
		return 0, false
	}
	return id, true
}
