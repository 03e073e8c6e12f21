package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hogwarts/school/internal/app/models"
	"github.com/hogwarts/school/internal/app/repositories"
	"github.com/hogwarts/school/internal/pkg/apperrors"
)

// FacultyService defines the interface for faculty-related operations
type FacultyService interface {
	CreateFaculty(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error)
	EditFaculty(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error)
	DeleteFaculty(ctx context.Context, id int64) error
	FindFaculty(ctx context.Context, id int64) (*models.Faculty, error)
	FindByColor(ctx context.Context, color string) ([]*models.Faculty, error)
	SearchFaculties(ctx context.Context, term string) ([]*models.Faculty, error)
	GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error)
	GetAllFaculties(ctx context.Context) ([]*models.Faculty, error)
}

// facultyServiceImpl implements the FacultyService interface
type facultyServiceImpl struct {
	facultyRepo repositories.FacultyRepository
}

// NewFacultyService creates a new faculty service instance
func NewFacultyService(facultyRepo repositories.FacultyRepository) FacultyService {
	return &facultyServiceImpl{
		facultyRepo: facultyRepo,
	}
}

// CreateFaculty stores a new faculty and returns it with its generated id
func (s *facultyServiceImpl) CreateFaculty(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error) {
	if faculty == nil {
		return nil, apperrors.NewBadRequestError("faculty is required")
	}

	saved, err := s.facultyRepo.Save(ctx, faculty)
	if err != nil {
		return nil, fmt.Errorf("error saving faculty: %w", err)
	}
	return saved, nil
}

// EditFaculty saves the faculty. An id that matches no row is stored as a
// new faculty with a freshly generated id.
func (s *facultyServiceImpl) EditFaculty(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error) {
	return s.CreateFaculty(ctx, faculty)
}

// DeleteFaculty deletes a faculty by ID. Deleting an unknown id is a no-op.
func (s *facultyServiceImpl) DeleteFaculty(ctx context.Context, id int64) error {
	if err := s.facultyRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("error deleting faculty: %w", err)
	}
	return nil
}

// FindFaculty retrieves a faculty by ID
func (s *facultyServiceImpl) FindFaculty(ctx context.Context, id int64) (*models.Faculty, error) {
	faculty, err := s.facultyRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, fmt.Errorf("error retrieving faculty: %w", err)
	}
	return faculty, nil
}

// GetFacultyByID is an alias of FindFaculty kept for the roster endpoints
func (s *facultyServiceImpl) GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error) {
	return s.FindFaculty(ctx, id)
}

// FindByColor returns faculties whose color equals color exactly (case-sensitive)
func (s *facultyServiceImpl) FindByColor(ctx context.Context, color string) ([]*models.Faculty, error) {
	all, err := s.GetAllFaculties(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*models.Faculty, 0)
	for _, f := range all {
		if f.Color == color {
			matched = append(matched, f)
		}
	}
	return matched, nil
}

// SearchFaculties returns every faculty for a blank term, otherwise those whose
// name or color contains term ignoring case
func (s *facultyServiceImpl) SearchFaculties(ctx context.Context, term string) ([]*models.Faculty, error) {
	if strings.TrimSpace(term) == "" {
		return s.GetAllFaculties(ctx)
	}

	faculties, err := s.facultyRepo.FindByNameOrColorContainingIgnoreCase(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("error searching faculties: %w", err)
	}
	return faculties, nil
}

// GetAllFaculties retrieves all faculties
func (s *facultyServiceImpl) GetAllFaculties(ctx context.Context) ([]*models.Faculty, error) {
	faculties, err := s.facultyRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving faculties: %w", err)
	}
	return faculties, nil
}
