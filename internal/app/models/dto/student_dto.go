package dto

// AgeQuery selects students of an exact age. Ages of 18 and below yield an empty list.
type AgeQuery struct {
	Age *int `form:"age"`
}

// AgeRangeQuery selects students with MinAge <= age <= MaxAge
type AgeRangeQuery struct {
	MinAge *int `form:"minAge" binding:"required"`
	MaxAge *int `form:"maxAge" binding:"required"`
}
