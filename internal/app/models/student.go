package models

// Student defines the student model based on the 'students' table
type Student struct {
	ID   int64  `json:"id" db:"id" example:"1"`
	Name string `json:"name" db:"name" example:"Harry Potter"`
	Age  int    `json:"age" db:"age" example:"17"`

	// Faculty is the owning side of the student/faculty relation. Only its ID
	// is read on save; lookups return the full faculty row.
	Faculty *Faculty `json:"faculty"`
}

// FacultyID returns the referenced faculty id, or nil when the student is unassigned.
func (s *Student) FacultyID() *int64 {
	if s == nil || s.Faculty == nil || s.Faculty.ID == 0 {
		return nil
	}
	id := s.Faculty.ID
	return &id
}
