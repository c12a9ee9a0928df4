package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/vinestrading/catalog-service/internal/error/code"
	"github.com/vinestrading/catalog-service/internal/error/response"
)

type loginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Handler exposes token issuance on the JSON API.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Token exchanges username and password for a bearer token.
func (h *Handler) Token(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ParamError(c, err)
		return
	}

	a, ok := h.svc.Authenticate(c.Request.Context(), req.Username, req.Password)
	if !ok {
		response.Fail(c, code.ErrPasswordIncorrect, nil)
		return
	}
	token, err := h.svc.IssueToken(a)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(h.svc.Tokens().TTL().Seconds()),
	})
}

// Me returns the calling admin.
func (h *Handler) Me(c *gin.Context) {
	response.Success(c, CurrentAdmin(c))
}
