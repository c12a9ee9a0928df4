package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vinestrading/catalog-service/internal/error/code"
	"github.com/vinestrading/catalog-service/internal/error/response"
	"github.com/vinestrading/catalog-service/internal/i18n"
)

const (
	// CookieName holds "Bearer <jwt>" for browser sessions.
	CookieName = "access_token"
	LoginPath  = "/admin/login"
)

// Mode selects how guards reject a request.
type Mode int

const (
	// ModeAPI answers with the JSON envelope.
	ModeAPI Mode = iota
	// ModeBrowser redirects anonymous visitors to the login page.
	ModeBrowser
)

// Resolve attaches the admin behind the session cookie or the Authorization
// header to the request. Anonymous requests pass through untouched.
func (s *Service) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, raw := range credentials(c) {
			if a, ok := s.ResolveToken(c.Request.Context(), raw); ok {
				setAdmin(c, a)
				break
			}
		}
		c.Next()
	}
}

func credentials(c *gin.Context) []string {
	var raws []string
	if v, err := c.Cookie(CookieName); err == nil && v != "" {
		raws = append(raws, v)
	}
	if h := c.GetHeader("Authorization"); h != "" {
		raws = append(raws, h)
	}
	return raws
}

func RequireAuthenticated(mode Mode) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentAdmin(c) == nil {
			unauthorized(c, mode)
			return
		}
		c.Next()
	}
}

func RequireSuperAdmin(mode Mode) gin.HandlerFunc {
	return func(c *gin.Context) {
		a := CurrentAdmin(c)
		if a == nil {
			unauthorized(c, mode)
			return
		}
		if !a.IsSuperAdmin() {
			forbidden(c, mode)
			return
		}
		c.Next()
	}
}

func unauthorized(c *gin.Context, mode Mode) {
	if mode == ModeBrowser {
		c.Redirect(http.StatusSeeOther, LoginPath)
		c.Abort()
		return
	}
	c.Header("WWW-Authenticate", "Bearer")
	response.Fail(c, code.ErrTokenInvalid, nil)
}

func forbidden(c *gin.Context, mode Mode) {
	if mode == ModeBrowser {
		c.String(http.StatusForbidden, i18n.FromContext(c).T(code.MsgForbidden))
		c.Abort()
		return
	}
	response.Fail(c, code.ErrForbidden, nil)
}

// SetSessionCookie stores token as the browser session.
func SetSessionCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "Bearer "+token, int(ttl/time.Second), "/", "", secure, true)
}

func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", secure, true)
}
