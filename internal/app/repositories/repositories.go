package repositories

import (
	"context"
	"errors"

	"github.com/hogwarts/school/internal/app/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound is returned by every lookup that matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidFacultyReference is returned when a student is saved with a
	// faculty id that has no row behind it.
	ErrInvalidFacultyReference = errors.New("referenced faculty does not exist")
)

// StudentRepository is the persistence contract for students.
//
// Save inserts when the id is zero and updates in place otherwise. Updating an
// id with no row behind it inserts the student as a new record with a freshly
// generated id. DeleteByID is idempotent.
type StudentRepository interface {
	Save(ctx context.Context, student *models.Student) (*models.Student, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	FindAll(ctx context.Context) ([]*models.Student, error)
	DeleteByID(ctx context.Context, id int64) error
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// FindByAgeBetween returns students with min <= age <= max.
	FindByAgeBetween(ctx context.Context, min, max int) ([]*models.Student, error)
	FindByFacultyID(ctx context.Context, facultyID int64) ([]*models.Student, error)
}

// FacultyRepository is the persistence contract for faculties. Save, delete
// and lookup semantics match StudentRepository.
type FacultyRepository interface {
	Save(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error)
	FindByID(ctx context.Context, id int64) (*models.Faculty, error)
	FindAll(ctx context.Context) ([]*models.Faculty, error)
	DeleteByID(ctx context.Context, id int64) error
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// FindByNameOrColorContainingIgnoreCase matches term as a case-insensitive
	// substring of either the name or the color.
	FindByNameOrColorContainingIgnoreCase(ctx context.Context, term string) ([]*models.Faculty, error)
	// FindByStudentID resolves the faculty through the student's foreign key.
	FindByStudentID(ctx context.Context, studentID int64) (*models.Faculty, error)
}

// DBTX is the subset of *pgxpool.Pool the PostgreSQL repositories use.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository StudentRepository
	FacultyRepository FacultyRepository
}

// NewRepositories initializes the PostgreSQL-backed repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		StudentRepository: NewStudentRepository(db),
		FacultyRepository: NewFacultyRepository(db),
	}
}
