package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vinestrading/catalog-service/internal/error/code"
	"github.com/vinestrading/catalog-service/internal/error/response"
	"github.com/vinestrading/catalog-service/internal/logger"
	"github.com/vinestrading/catalog-service/internal/product"
	"github.com/vinestrading/catalog-service/internal/product/dto"
	"github.com/vinestrading/catalog-service/internal/upload"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

// ListProducts accepts ?category_id= and ?search=.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	filters, err := ParseFilters(c)
	if err != nil {
		response.ParamError(c, err)
		return
	}
	products, err := h.uc.ListProducts(c.Request.Context(), filters)
	if err != nil {
		h.fail(c, "list products", err)
		return
	}
	response.Success(c, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := response.IDParam(c, "id")
	if !ok {
		return
	}
	p, err := h.uc.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get product", err)
		return
	}
	response.Success(c, p)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var input dto.CreateProductInput
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

	p, err := h.uc.CreateProduct(c.Request.Context(), &input)
	if err != nil {
		h.fail(c, "create product", err)
		return
	}
	response.Created(c, p)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := response.IDParam(c, "id")
	if !ok {
		return
	}
	var input dto.UpdateProductInput
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

	p, err := h.uc.UpdateProduct(c.Request.Context(), &input)
	if err != nil {
		h.fail(c, "update product", err)
		return
	}
	response.Success(c, p)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := response.IDParam(c, "id")
	if !ok {
		return
	}
	if err := h.uc.DeleteProduct(c.Request.Context(), id); err != nil {
		h.fail(c, "delete product", err)
		return
	}
	response.Success(c, nil)
}

func (h *ProductHandler) fail(c *gin.Context, op string, err error) {
	if code.FromError(err) == code.ErrUnknown {
		h.logger.Error("failed to "+op, zap.Error(err))
	} else {
		h.logger.Debug(op+" rejected", zap.Error(err))
	}
	response.Error(c, err)
}

// ParseFilters reads the public listing filters from the query string. An
// empty or zero category_id means every category.
func ParseFilters(c *gin.Context) (*dto.ProductFilters, error) {
	filters := &dto.ProductFilters{SearchQuery: c.Query("search")}
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		if id > 0 {
			filters.CategoryID = &id
		}
	}
	return filters, nil
}
