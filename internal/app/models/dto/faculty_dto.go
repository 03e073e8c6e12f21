package dto

// ColorQuery selects faculties by exact color
type ColorQuery struct {
	Color string `form:"color"`
}

// SearchQuery selects faculties whose name or color contains Search, ignoring case
type SearchQuery struct {
	Search string `form:"search"`
}
