package services

import "github.com/hogwarts/school/internal/app/repositories"

// Services groups every service the HTTP layer depends on
type Services struct {
	StudentService StudentService
	FacultyService FacultyService
	ExportService  ExportService
}

// NewServices builds the service layer over repos
func NewServices(repos *repositories.Repositories, sheets ExportSheets) *Services {
	students := NewStudentService(repos.StudentRepository, repos.FacultyRepository)
	faculties := NewFacultyService(repos.FacultyRepository)
	return &Services{
		StudentService: students,
		FacultyService: faculties,
		ExportService:  NewExportService(students, faculties, sheets),
	}
}
