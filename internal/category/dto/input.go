package dto

import "github.com/vinestrading/catalog-service/internal/upload"

type CreateCategoryInput struct {
	NameEN string        `form:"name_en" json:"name_en" validate:"required,max=255"`
	NameAR string        `form:"name_ar" json:"name_ar" validate:"required,max=255"`
	Slug   string        `form:"slug" json:"slug" validate:"required,max=191,slug"`
	Image  *upload.Image `form:"-" json:"-"`
}

type UpdateCategoryInput struct {
	ID     int64         `form:"-" json:"-"`
	NameEN string        `form:"name_en" json:"name_en" validate:"required,max=255"`
	NameAR string        `form:"name_ar" json:"name_ar" validate:"required,max=255"`
	Slug   string        `form:"slug" json:"slug" validate:"required,max=191,slug"`
	Image  *upload.Image `form:"-" json:"-"` // Nil keeps the current image
}
