package models

// Faculty represents a school house. Students point at it; it owns none of them.
type Faculty struct {
	ID    int64  `json:"id" db:"id" example:"1"`
	Name  string `json:"name" db:"name" example:"Gryffindor"`
	Color string `json:"color" db:"color" example:"red"`
}
