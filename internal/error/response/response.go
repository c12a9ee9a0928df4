package response

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vinestrading/catalog-service/internal/error/apperr"
	"github.com/vinestrading/catalog-service/internal/error/code"
	"github.com/vinestrading/catalog-service/internal/i18n"
)

// Response is the JSON envelope of every API answer.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    code.ErrSuccess,
		Message: i18n.FromContext(c).T(code.GetMessage(code.ErrSuccess)),
		Data:    data,
	})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Response{
		Code:    code.ErrSuccess,
		Message: i18n.FromContext(c).T(code.GetMessage(code.ErrSuccess)),
		Data:    data,
	})
}

// Fail aborts the request with the status and message of errorCode.
func Fail(c *gin.Context, errorCode int, data any) {
	c.AbortWithStatusJSON(code.GetStatus(errorCode), Response{
		Code:    errorCode,
		Message: i18n.FromContext(c).T(code.GetMessage(errorCode)),
		Data:    data,
	})
}

// Error maps err onto the envelope. apperr message ids win over the generic
// message of the code.
func Error(c *gin.Context, err error) {
	errorCode := code.FromError(err)
	msgID := apperr.MessageID(err)
	if msgID == "" {
		msgID = code.GetMessage(errorCode)
	}

	resp := Response{
		Code:    errorCode,
		Message: i18n.FromContext(c).T(msgID),
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		resp.Field = appErr.Field
	}
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(code.GetStatus(errorCode), resp)
}

func ParamError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	Fail(c, code.ErrBind, nil)
}

// IDParam parses the :name path parameter as a positive id. On failure it
// answers with a bind error and returns false.
func IDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ParamError(c, err)
		return 0, false
	}
	return id, true
}
