package code

// Message ids resolved through the i18n bundle. A missing translation renders
// the id itself.
const (
	MsgSuccess           = "success"
	MsgUnknown           = "error_internal"
	MsgBind              = "error_bind"
	MsgValidation        = "error_invalid_input"
	MsgTokenInvalid      = "error_unauthorized"
	MsgTooManyRequests   = "error_too_many_requests"
	MsgForbidden         = "error_forbidden"
	MsgRecordNotFound    = "error_not_found"
	MsgAlreadyExist      = "error_already_exists"
	MsgSelfDelete        = "error_self_delete"
	MsgPasswordIncorrect = "error_invalid_credentials"
	MsgSlugExists        = "error_slug_exists"
	MsgCodeExists        = "error_code_exists"
	MsgUsernameExists    = "error_username_exists"
	MsgCategoryNotFound  = "error_category_not_found"
	MsgProductNotFound   = "error_product_not_found"
	MsgAdminNotFound     = "error_admin_not_found"
	MsgInvalidSlug       = "error_invalid_slug"
	MsgInvalidRole       = "error_invalid_role"
	MsgPasswordTooShort  = "error_password_too_short"
	MsgWrongPassword     = "error_wrong_password"
	MsgInvalidImage      = "error_invalid_image"
	MsgImageTooLarge     = "error_image_too_large"
	MsgUnknownCategory   = "error_unknown_category"
	MsgRequiredField     = "error_required_field"
	MsgFieldTooLong      = "error_field_too_long"
	MsgCategoryCreated   = "notice_category_created"
	MsgCategoryUpdated   = "notice_category_updated"
	MsgCategoryDeleted   = "notice_category_deleted"
	MsgProductCreated    = "notice_product_created"
	MsgProductUpdated    = "notice_product_updated"
	MsgProductDeleted    = "notice_product_deleted"
	MsgAdminCreated      = "notice_admin_created"
	MsgAdminDeleted      = "notice_admin_deleted"
	MsgPasswordChanged   = "notice_password_changed"
	MsgNothingChanged    = "notice_nothing_changed"
)

var codeMessageMap = map[int]string{
	ErrSuccess:           MsgSuccess,
	ErrUnknown:           MsgUnknown,
	ErrBind:              MsgBind,
	ErrValidation:        MsgValidation,
	ErrTokenInvalid:      MsgTokenInvalid,
	ErrTooManyRequests:   MsgTooManyRequests,
	ErrForbidden:         MsgForbidden,
	ErrRecordNotFound:    MsgRecordNotFound,
	ErrAlreadyExist:      MsgAlreadyExist,
	ErrSelfDelete:        MsgSelfDelete,
	ErrPasswordIncorrect: MsgPasswordIncorrect,
}

// GetMessage returns the message id for an error code.
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return MsgUnknown
}
