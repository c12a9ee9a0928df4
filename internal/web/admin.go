package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	admindto "github.com/vinestrading/catalog-service/internal/admin/dto"
	"github.com/vinestrading/catalog-service/internal/auth"
	categorydto "github.com/vinestrading/catalog-service/internal/category/dto"
	"github.com/vinestrading/catalog-service/internal/error/code"
	productdto "github.com/vinestrading/catalog-service/internal/product/dto"
	"github.com/vinestrading/catalog-service/internal/upload"
)

func (h *Handler) LoginPage(c *gin.Context) {
	if auth.CurrentAdmin(c) != nil {
		c.Redirect(http.StatusSeeOther, dashboardPath)
		return
	}
	c.HTML(http.StatusOK, "login", h.page(c, "login"))
}

func (h *Handler) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	a, ok := h.auth.Authenticate(c.Request.Context(), username, c.PostForm("password"))
	if !ok {
		p := h.page(c, "login")
		p.Error = code.MsgPasswordIncorrect
		p.Username = username
		c.HTML(http.StatusUnauthorized, "login", p)
		return
	}

	token, err := h.auth.IssueToken(a)
	if err != nil {
		h.serverError(c, "issue token", err)
		return
	}
	auth.SetSessionCookie(c, token, h.auth.Tokens().TTL(), h.secure)
	c.Redirect(http.StatusSeeOther, dashboardPath)
}

func (h *Handler) Logout(c *gin.Context) {
	auth.ClearSessionCookie(c, h.secure)
	c.Redirect(http.StatusSeeOther, auth.LoginPath)
}

func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	p := h.page(c, "dashboard")

	var err error
	if p.Products, err = h.products.ListProducts(ctx, nil); err != nil {
		h.serverError(c, "list products", err)
		return
	}
	if p.Categories, err = h.categories.ListCategories(ctx); err != nil {
		h.serverError(c, "list categories", err)
		return
	}
	c.HTML(http.StatusOK, "dashboard", p)
}

func (h *Handler) AddProduct(c *gin.Context) {
	var input productdto.CreateProductInput
	if err := c.ShouldBind(&input); err != nil {
		h.fail(c, dashboardPath, "bind product", bindError(err))
		return
	}
	img, err := upload.FormImage(c.Request, "image")
	if err != nil {
		h.fail(c, dashboardPath, "read product image", bindError(err))
		return
	}
	defer img.Close()
	input.Image = img

	if _, err := h.products.CreateProduct(c.Request.Context(), &input); err != nil {
		h.fail(c, dashboardPath, "create product", err)
		return
	}
	notice(c, dashboardPath, code.MsgProductCreated)
}

func (h *Handler) EditProduct(c *gin.Context) {
	id, ok := h.id(c, dashboardPath)
	if !ok {
		return
	}
	var input productdto.UpdateProductInput
	if err := c.ShouldBind(&input); err != nil {
		h.fail(c, dashboardPath, "bind product", bindError(err))
		return
	}
	img, err := upload.FormImage(c.Request, "image")
	if err != nil {
		h.fail(c, dashboardPath, "read product image", bindError(err))
		return
	}
	defer img.Close()
	input.ID = id
	input.Image = img

	if _, err := h.products.UpdateProduct(c.Request.Context(), &input); err != nil {
		h.fail(c, dashboardPath, "update product", err)
		return
	}
	notice(c, dashboardPath, code.MsgProductUpdated)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := h.id(c, dashboardPath)
	if !ok {
		return
	}
	if err := h.products.DeleteProduct(c.Request.Context(), id); err != nil {
		h.fail(c, dashboardPath, "delete product", err)
		return
	}
	notice(c, dashboardPath, code.MsgProductDeleted)
}

func (h *Handler) AddCategory(c *gin.Context) {
	var input categorydto.CreateCategoryInput
	if err := c.ShouldBind(&input); err != nil {
		h.fail(c, dashboardPath, "bind category", bindError(err))
		return
	}
	img, err := upload.FormImage(c.Request, "image")
	if err != nil {
		h.fail(c, dashboardPath, "read category image", bindError(err))
		return
	}
	defer img.Close()
	input.Image = img

	if _, err := h.categories.CreateCategory(c.Request.Context(), &input); err != nil {
		h.fail(c, dashboardPath, "create category", err)
		return
	}
	notice(c, dashboardPath, code.MsgCategoryCreated)
}

func (h *Handler) EditCategory(c *gin.Context) {
	id, ok := h.id(c, dashboardPath)
	if !ok {
		return
	}
	var input categorydto.UpdateCategoryInput
	if err := c.ShouldBind(&input); err != nil {
		h.fail(c, dashboardPath, "bind category", bindError(err))
		return
	}
	img, err := upload.FormImage(c.Request, "image")
	if err != nil {
		h.fail(c, dashboardPath, "read category image", bindError(err))
		return
	}
	defer img.Close()
	input.ID = id
	input.Image = img

	if _, err := h.categories.UpdateCategory(c.Request.Context(), &input); err != nil {
		h.fail(c, dashboardPath, "update category", err)
		return
	}
	notice(c, dashboardPath, code.MsgCategoryUpdated)
}

// DeleteCategory also removes every product of the category.
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := h.id(c, dashboardPath)
	if !ok {
		return
	}
	if err := h.categories.DeleteCategory(c.Request.Context(), id); err != nil {
		h.fail(c, dashboardPath, "delete category", err)
		return
	}
	notice(c, dashboardPath, code.MsgCategoryDeleted)
}

func (h *Handler) Users(c *gin.Context) {
	p := h.page(c, "users")
	admins, err := h.admins.ListAdmins(c.Request.Context())
	if err != nil {
		h.serverError(c, "list admins", err)
		return
	}
	p.Admins = admins
	c.HTML(http.StatusOK, "users", p)
}

func (h *Handler) AddAdmin(c *gin.Context) {
	var input admindto.CreateAdminInput
	if err := c.ShouldBind(&input); err != nil {
		h.fail(c, usersPath, "bind admin", bindError(err))
		return
	}
	if _, err := h.admins.CreateAdmin(c.Request.Context(), &input); err != nil {
		h.fail(c, usersPath, "create admin", err)
		return
	}
	notice(c, usersPath, code.MsgAdminCreated)
}

func (h *Handler) DeleteAdmin(c *gin.Context) {
	id, ok := h.id(c, usersPath)
	if !ok {
		return
	}
	if err := h.admins.DeleteAdmin(c.Request.Context(), id, auth.CurrentAdmin(c)); err != nil {
		h.fail(c, usersPath, "delete admin", err)
		return
	}
	notice(c, usersPath, code.MsgAdminDeleted)
}

func (h *Handler) PasswordPage(c *gin.Context) {
	c.HTML(http.StatusOK, "password", h.page(c, "password"))
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var input admindto.ChangePasswordInput
	if err := c.ShouldBind(&input); err != nil {
		h.fail(c, passwordPath, "bind password", bindError(err))
		return
	}
	input.AdminID = auth.CurrentAdmin(c).ID

	if err := h.admins.ChangePassword(c.Request.Context(), &input); err != nil {
		h.fail(c, passwordPath, "change password", err)
		return
	}
	notice(c, passwordPath, code.MsgPasswordChanged)
}
