package dto

type ProductFilters struct {
	CategoryID  *int64 // Nil means all categories
	SearchQuery string // Substring of name_en, name_ar or code
}
