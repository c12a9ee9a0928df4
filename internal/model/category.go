package model

type Category struct {
	BaseModel
	NameEN string  `db:"name_en" json:"name_en"`
	NameAR string  `db:"name_ar" json:"name_ar"`
	Slug   string  `db:"slug" json:"slug"`
	Image  *string `db:"image" json:"image"` // Nullable
}
