package dto

import "github.com/vinestrading/catalog-service/internal/upload"

type CreateProductInput struct {
	CategoryID    int64         `form:"category_id" json:"category_id" validate:"required,gt=0"`
	NameEN        string        `form:"name_en" json:"name_en" validate:"required,max=255"`
	NameAR        string        `form:"name_ar" json:"name_ar" validate:"required,max=255"`
	Code          string        `form:"code" json:"code" validate:"required,max=191"`
	Weight        string        `form:"weight" json:"weight" validate:"required,max=64"`
	DescriptionEN string        `form:"description_en" json:"description_en" validate:"max=5000"`
	DescriptionAR string        `form:"description_ar" json:"description_ar" validate:"max=5000"`
	Image         *upload.Image `form:"-" json:"-"`
}

type UpdateProductInput struct {
	ID            int64         `form:"-" json:"-"`
	CategoryID    int64         `form:"category_id" json:"category_id" validate:"required,gt=0"`
	NameEN        string        `form:"name_en" json:"name_en" validate:"required,max=255"`
	NameAR        string        `form:"name_ar" json:"name_ar" validate:"required,max=255"`
	Code          string        `form:"code" json:"code" validate:"required,max=191"`
	Weight        string        `form:"weight" json:"weight" validate:"required,max=64"`
	DescriptionEN string        `form:"description_en" json:"description_en" validate:"max=5000"`
	DescriptionAR string        `form:"description_ar" json:"description_ar" validate:"max=5000"`
	Image         *upload.Image `form:"-" json:"-"` // Nil keeps the current image
}
