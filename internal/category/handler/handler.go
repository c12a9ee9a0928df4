package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vinestrading/catalog-service/internal/category"
	"github.com/vinestrading/catalog-service/internal/category/dto"
	"github.com/vinestrading/catalog-service/internal/error/code"
	"github.com/vinestrading/catalog-service/internal/error/response"
	"github.com/vinestrading/catalog-service/internal/logger"
	"github.com/vinestrading/catalog-service/internal/upload"
)

// CategoryHandler serves the category part of the JSON API.
type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	cats, err := h.uc.ListCategories(c.Request.Context())
	if err != nil {
		h.fail(c, "list categories", err)
		return
	}
	response.Success(c, cats)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := response.IDParam(c, "id")
	if !ok {
		return
	}
	cat, err := h.uc.GetCategory(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get category", err)
		return
	}
	response.Success(c, cat)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var input dto.CreateCategoryInput
	if err := c.ShouldBind(&input); err != nil {
		response.ParamError(c, err)
		return
	}
	img, err := upload.FormImage(c.Request, "image")
	if err != nil {
		response.ParamError(c, err)
		return
	}
	defer img.Close()
	input.Image = img

	cat, err := h.uc.CreateCategory(c.Request.Context(), &input)
	if err != nil {
		h.fail(c, "create category", err)
		return
	}
	response.Created(c, cat)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := response.IDParam(c, "id")
	if !ok {
		return
	}
	var input dto.UpdateCategoryInput
	if err := c.ShouldBind(&input); err != nil {
		response.ParamError(c, err)
		return
	}
	img, err := upload.FormImage(c.Request, "image")
	if err != nil {
		response.ParamError(c, err)
		return
	}
	defer img.Close()
	input.ID = id
	input.Image = img

	cat, err := h.uc.UpdateCategory(c.Request.Context(), &input)
	if err != nil {
		h.fail(c, "update category", err)
		return
	}
	response.Success(c, cat)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := response.IDParam(c, "id")
	if !ok {
		return
	}
	if err := h.uc.DeleteCategory(c.Request.Context(), id); err != nil {
		h.fail(c, "delete category", err)
		return
	}
	response.Success(c, nil)
}

func (h *CategoryHandler) fail(c *gin.Context, op string, err error) {
	if code.FromError(err) == code.ErrUnknown {
		h.logger.Error("failed to "+op, zap.Error(err))
	} else {
		h.logger.Debug(op+" rejected", zap.Error(err))
	}
	response.Error(c, err)
}
