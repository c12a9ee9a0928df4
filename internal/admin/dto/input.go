package dto

type CreateAdminInput struct {
	Username string `form:"username" json:"username" validate:"required,max=64"`
	Password string `form:"password" json:"password" validate:"required,min=8,maxbytes=72"`
	Role     string `form:"role" json:"role" validate:"required,oneof=admin super_admin"`
}

type ChangePasswordInput struct {
	AdminID         int64  `form:"-" json:"-"`
	CurrentPassword string `form:"current_password" json:"current_password" validate:"required"`
	NewPassword     string `form:"new_password" json:"new_password" validate:"required,min=8,maxbytes=72"`
}
