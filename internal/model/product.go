package model

type Product struct {
	BaseModel
	CategoryID    int64     `db:"category_id" json:"category_id"`
	NameEN        string    `db:"name_en" json:"name_en"`
	NameAR        string    `db:"name_ar" json:"name_ar"`
	Code          string    `db:"code" json:"code"`
	Weight        string    `db:"weight" json:"weight"`
	DescriptionEN *string   `db:"description_en" json:"description_en"`
	DescriptionAR *string   `db:"description_ar" json:"description_ar"`
	Image         *string   `db:"image" json:"image"`
	Category      *Category `db:"-" json:"category,omitempty"` // Joined data
}
