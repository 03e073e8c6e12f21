package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/hogwarts/school/internal/app/models"
	"github.com/hogwarts/school/internal/app/repositories"
	"github.com/hogwarts/school/internal/pkg/apperrors"
)

// StudentService defines the interface for student-related operations
type StudentService interface {
	CreateStudent(ctx context.Context, student *models.Student) (*models.Student, error)
	FindStudent(ctx context.Context, id int64) (*models.Student, error)
	EditStudent(ctx context.Context, student *models.Student) (*models.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
	FindByAge(ctx context.Context, age int) ([]*models.Student, error)
	GetAllStudents(ctx context.Context) ([]*models.Student, error)
	FindStudentsByAgeRange(ctx context.Context, min, max int) ([]*models.Student, error)
	GetStudentFaculty(ctx context.Context, studentID int64) (*models.Faculty, error)
	GetFacultyStudents(ctx context.Context, facultyID int64) ([]*models.Student, error)
}

type studentServiceImpl struct {
	studentRepo repositories.StudentRepository
	facultyRepo repositories.FacultyRepository
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo repositories.StudentRepository, facultyRepo repositories.FacultyRepository) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
		facultyRepo: facultyRepo,
	}
}

// CreateStudent stores the student and returns it with its id and faculty populated
func (s *studentServiceImpl) CreateStudent(ctx context.Context, student *models.Student) (*models.Student, error) {
	if student == nil {
		return nil, apperrors.NewBadRequestError("student is required")
	}

	saved, err := s.studentRepo.Save(ctx, student)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidFacultyReference) {
			return nil, apperrors.ErrInvalidFacultyReference
		}
		return nil, fmt.Errorf("error saving student: %w", err)
	}
	return saved, nil
}

// EditStudent behaves exactly like CreateStudent; unknown ids are inserted as new rows
func (s *studentServiceImpl) EditStudent(ctx context.Context, student *models.Student) (*models.Student, error) {
	return s.CreateStudent(ctx, student)
}

// FindStudent retrieves a student by ID
func (s *studentServiceImpl) FindStudent(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// DeleteStudent deletes a student by ID. Deleting an unknown id is a no-op.
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) error {
	if err := s.studentRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	return nil
}

// FindByAge scans all students and keeps those of exactly the given age
func (s *studentServiceImpl) FindByAge(ctx context.Context, age int) ([]*models.Student, error) {
	all, err := s.GetAllStudents(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*models.Student, 0)
	for _, student := range all {
		if student.Age == age {
			matched = append(matched, student)
		}
	}
	return matched, nil
}

// GetAllStudents retrieves all students
func (s *studentServiceImpl) GetAllStudents(ctx context.Context) ([]*models.Student, error) {
	students, err := s.studentRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	return students, nil
}

// FindStudentsByAgeRange returns students with min <= age <= max
func (s *studentServiceImpl) FindStudentsByAgeRange(ctx context.Context, min, max int) ([]*models.Student, error) {
	students, err := s.studentRepo.FindByAgeBetween(ctx, min, max)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students by age range: %w", err)
	}
	return students, nil
}

// GetStudentFaculty resolves the faculty a student belongs to. A missing
// student and a student without a faculty both yield ErrFacultyNotFound.
func (s *studentServiceImpl) GetStudentFaculty(ctx context.Context, studentID int64) (*models.Faculty, error) {
	faculty, err := s.facultyRepo.FindByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, fmt.Errorf("error retrieving student faculty: %w", err)
	}
	return faculty, nil
}

// GetFacultyStudents returns the students of a faculty, an empty slice when there are none
func (s *studentServiceImpl) GetFacultyStudents(ctx context.Context, facultyID int64) ([]*models.Student, error) {
	students, err := s.studentRepo.FindByFacultyID(ctx, facultyID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving faculty students: %w", err)
	}
	return students, nil
}
