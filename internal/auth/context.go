package auth

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/vinestrading/catalog-service/internal/model"
)

type ctxKey struct{}

const ginAdminKey = "auth.admin"

// WithAdmin returns a copy of ctx carrying the resolved admin.
func WithAdmin(ctx context.Context, a *model.Admin) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// AdminFromContext returns the admin resolved for the request, if any.
func AdminFromContext(ctx context.Context) (*model.Admin, bool) {
	a, ok := ctx.Value(ctxKey{}).(*model.Admin)
	return a, ok && a != nil
}

// CurrentAdmin is AdminFromContext for gin handlers; nil when anonymous.
func CurrentAdmin(c *gin.Context) *model.Admin {
	if v, ok := c.Get(ginAdminKey); ok {
		if a, ok := v.(*model.Admin); ok {
			return a
		}
	}
	if a, ok := AdminFromContext(c.Request.Context()); ok {
		return a
	}
	return nil
}

func setAdmin(c *gin.Context, a *model.Admin) {
	c.Set(ginAdminKey, a)
	c.Request = c.Request.WithContext(WithAdmin(c.Request.Context(), a))
}
