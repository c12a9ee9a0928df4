// Package validation checks usecase inputs with go-playground/validator and
// turns the first failure into an apperr validation error.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/vinestrading/catalog-service/internal/error/apperr"
	"github.com/vinestrading/catalog-service/internal/error/code"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Password length limits. bcrypt only looks at the first 72 bytes.
const (
	MinPasswordLength = 8
	MaxPasswordBytes  = 72
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator with the custom rules registered.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(fieldName)
		if err := validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return IsSlug(fl.Field().String())
		}); err != nil {
			panic(err)
		}
		// maxbytes=N limits the UTF-8 length, where max counts runes.
		if err := validate.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
			limit, err := strconv.Atoi(fl.Param())
			if err != nil {
				panic(fmt.Sprintf("maxbytes: bad parameter %q", fl.Param()))
			}
			return len(fl.Field().String()) <= limit
		}); err != nil {
			panic(err)
		}
	})
	return validate
}

// IsSlug reports whether s is lowercase words of [a-z0-9] joined by single dashes.
func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// Struct validates v. The returned error names the first offending field
// with the same name the forms and JSON bodies use.
func Struct(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Invalid("", code.MsgValidation, err)
	}
	fe := verrs[0]
	return apperr.Invalid(fe.Field(), messageFor(fe), err)
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return code.MsgRequiredField
	case "max", "maxbytes":
		return code.MsgFieldTooLong
	case "min":
		if fe.Field() == "password" || fe.Field() == "new_password" {
			return code.MsgPasswordTooShort
		}
		return code.MsgValidation
	case "slug":
		return code.MsgInvalidSlug
	case "oneof":
		if fe.Field() == "role" {
			return code.MsgInvalidRole
		}
		return code.MsgValidation
	default:
		return code.MsgValidation
	}
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"form", "json"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}
