package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vinestrading/catalog-service/internal/admin"
	"github.com/vinestrading/catalog-service/internal/admin/dto"
	"github.com/vinestrading/catalog-service/internal/auth"
	"github.com/vinestrading/catalog-service/internal/error/code"
	"github.com/vinestrading/catalog-service/internal/error/response"
	"github.com/vinestrading/catalog-service/internal/logger"
)

type AdminHandler struct {
	uc     admin.UseCase
	logger logger.ZapLogger
}

func NewAdminHandler(uc admin.UseCase, log logger.ZapLogger) *AdminHandler {
	return &AdminHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *AdminHandler) ListAdmins(c *gin.Context) {
	admins, err := h.uc.ListAdmins(c.Request.Context())
	if err != nil {
		h.fail(c, "list admins", err)
		return
	}
	response.Success(c, admins)
}

func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	var input dto.CreateAdminInput
	if err := c.ShouldBind(&input); err != nil {
		response.ParamError(c, err)
		return
	}
	a, err := h.uc.CreateAdmin(c.Request.Context(), &input)
	if err != nil {
		h.fail(c, "create admin", err)
		return
	}
	response.Created(c, a)
}

func (h *AdminHandler) DeleteAdmin(c *gin.Context) {
	id, ok := response.IDParam(c, "id")
	if !ok {
		return
	}
	if err := h.uc.DeleteAdmin(c.Request.Context(), id, auth.CurrentAdmin(c)); err != nil {
		h.fail(c, "delete admin", err)
		return
	}
	response.Success(c, nil)
}

// ChangePassword changes the password of the calling admin.
func (h *AdminHandler) ChangePassword(c *gin.Context) {
	var input dto.ChangePasswordInput
	if err := c.ShouldBind(&input); err != nil {
		response.ParamError(c, err)
		return
	}
	input.AdminID = auth.CurrentAdmin(c).ID

	if err := h.uc.ChangePassword(c.Request.Context(), &input); err != nil {
		h.fail(c, "change password", err)
		return
	}
	response.Success(c, nil)
}

func (h *AdminHandler) fail(c *gin.Context, op string, err error) {
	if code.FromError(err) == code.ErrUnknown {
		h.logger.Error("failed to "+op, zap.Error(err))
	} else {
		h.logger.Debug(op+" rejected", zap.Error(err))
	}
	response.Error(c, err)
}
