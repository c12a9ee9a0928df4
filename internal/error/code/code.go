package code

import (
	"errors"
	"net/http"

	"github.com/vinestrading/catalog-service/internal/error/apperr"
)

// Generic codes (100xxx).
const (
	ErrSuccess int = iota + 100000
	ErrUnknown
	ErrBind
	ErrValidation
	ErrTokenInvalid
	ErrTooManyRequests
	ErrForbidden
)

// Catalog and admin codes (101xxx).
const (
	ErrRecordNotFound int = iota + 101000
	ErrAlreadyExist
	ErrSelfDelete
	ErrPasswordIncorrect
)

var codeStatusMap = map[int]int{
	ErrSuccess:           http.StatusOK,
	ErrUnknown:           http.StatusInternalServerError,
	ErrBind:              http.StatusBadRequest,
	ErrValidation:        http.StatusBadRequest,
	ErrTokenInvalid:      http.StatusUnauthorized,
	ErrTooManyRequests:   http.StatusTooManyRequests,
	ErrForbidden:         http.StatusForbidden,
	ErrRecordNotFound:    http.StatusNotFound,
	ErrAlreadyExist:      http.StatusConflict,
	ErrSelfDelete:        http.StatusBadRequest,
	ErrPasswordIncorrect: http.StatusUnauthorized,
}

// GetStatus returns the HTTP status for an error code.
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// FromError maps an apperr kind to its code. Unknown errors map to ErrUnknown.
func FromError(err error) int {
	switch {
	case err == nil:
		return ErrSuccess
	case errors.Is(err, apperr.ErrSelfDelete):
		return ErrSelfDelete
	case errors.Is(err, apperr.ErrUnauthorized):
		return ErrTokenInvalid
	case errors.Is(err, apperr.ErrForbidden):
		return ErrForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return ErrRecordNotFound
	case errors.Is(err, apperr.ErrConflict):
		return ErrAlreadyExist
	case errors.Is(err, apperr.ErrValidation):
		return ErrValidation
	default:
		return ErrUnknown
	}
}
