package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vinestrading/catalog-service/internal/product/dto"
	producthandler "github.com/vinestrading/catalog-service/internal/product/handler"
)

func (h *Handler) Home(c *gin.Context) {
	p := h.page(c, "home")
	cats, err := h.categories.ListCategories(c.Request.Context())
	if err != nil {
		h.serverError(c, "list categories", err)
		return
	}
	p.Categories = cats
	c.HTML(http.StatusOK, "home", p)
}

func (h *Handler) About(c *gin.Context) {
	c.HTML(http.StatusOK, "about", h.page(c, "about"))
}

func (h *Handler) Contact(c *gin.Context) {
	c.HTML(http.StatusOK, "contact", h.page(c, "contact"))
}

// Products lists the catalog. A malformed category_id is ignored rather than
// rejected.
func (h *Handler) Products(c *gin.Context) {
	ctx := c.Request.Context()
	filters, err := producthandler.ParseFilters(c)
	if err != nil {
		filters = &dto.ProductFilters{SearchQuery: c.Query("search")}
	}
	filters.SearchQuery = strings.TrimSpace(filters.SearchQuery)

	p := h.page(c, "products")
	if p.Categories, err = h.categories.ListCategories(ctx); err != nil {
		h.serverError(c, "list categories", err)
		return
	}
	if p.Products, err = h.products.ListProducts(ctx, filters); err != nil {
		h.serverError(c, "list products", err)
		return
	}
	p.Selected = filters.CategoryID
	p.Search = filters.SearchQuery
	c.HTML(http.StatusOK, "products", p)
}
