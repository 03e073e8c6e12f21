// Package gormstore implements the repository contracts on top of GORM. It is
// used with the SQLite driver for single-file local deployments.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hogwarts/school/internal/app/models"
	"github.com/hogwarts/school/internal/app/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type facultyRecord struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"not null;default:''"`
	Color string `gorm:"not null;default:''"`
}

func (facultyRecord) TableName() string { return "faculties" }

type studentRecord struct {
	ID        int64          `gorm:"primaryKey;autoIncrement"`
	Name      string         `gorm:"not null;default:''"`
	Age       int            `gorm:"not null;default:0;index"`
	FacultyID *int64         `gorm:"index"`
	Faculty   *facultyRecord `gorm:"constraint:OnDelete:SET NULL"`
}

func (studentRecord) TableName() string { return "students" }

func (r facultyRecord) toModel() *models.Faculty {
	return &models.Faculty{ID: r.ID, Name: r.Name, Color: r.Color}
}

func (r studentRecord) toModel() *models.Student {
	s := &models.Student{ID: r.ID, Name: r.Name, Age: r.Age}
	if r.Faculty != nil {
		s.Faculty = r.Faculty.toModel()
	}
	return s
}

// Migrate creates or updates the faculties and students tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&facultyRecord{}, &studentRecord{}); err != nil {
		return fmt.Errorf("failed to migrate gorm schema: %w", err)
	}
	return nil
}

// NewRepositories wires both GORM repositories over db
func NewRepositories(db *gorm.DB) *repositories.Repositories {
	return &repositories.Repositories{
		StudentRepository: NewStudentRepository(db),
		FacultyRepository: NewFacultyRepository(db),
	}
}

// FacultyRepository implements repositories.FacultyRepository with GORM
type FacultyRepository struct{ db *gorm.DB }

var _ repositories.FacultyRepository = (*FacultyRepository)(nil)

// NewFacultyRepository creates a new FacultyRepository
func NewFacultyRepository(db *gorm.DB) *FacultyRepository { return &FacultyRepository{db: db} }

func (r *FacultyRepository) Save(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error) {
	rec := facultyRecord{ID: faculty.ID, Name: faculty.Name, Color: faculty.Color}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if rec.ID != 0 {
			res := tx.Model(&facultyRecord{}).Where("id = ?", rec.ID).
				Updates(map[string]interface{}{"name": rec.Name, "color": rec.Color})
			if res.Error != nil || res.RowsAffected > 0 {
				return res.Error
			}
			rec.ID = 0
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return nil, fmt.Errorf("error saving faculty: %w", err)
	}
	return rec.toModel(), nil
}

func (r *FacultyRepository) FindByID(ctx context.Context, id int64) (*models.Faculty, error) {
	var rec facultyRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, notFound(err, "faculty")
	}
	return rec.toModel(), nil
}

func (r *FacultyRepository) FindAll(ctx context.Context) ([]*models.Faculty, error) {
	var recs []facultyRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("error listing faculties: %w", err)
	}
	out := make([]*models.Faculty, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.toModel())
	}
	return out, nil
}

// DeleteByID detaches the faculty's students before removing it, so the
// result does not depend on SQLite's foreign_keys pragma.
func (r *FacultyRepository) DeleteByID(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&studentRecord{}).Where("faculty_id = ?", id).
			Update("faculty_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&facultyRecord{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("error deleting faculty: %w", err)
	}
	return nil
}

func (r *FacultyRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return exists(r.db.WithContext(ctx), &facultyRecord{}, id)
}

// FindByNameOrColorContainingIgnoreCase filters in Go: SQLite's LIKE and
// lower() only fold ASCII, and faculty names are routinely Cyrillic.
func (r *FacultyRepository) FindByNameOrColorContainingIgnoreCase(ctx context.Context, term string) ([]*models.Faculty, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(term)
	out := []*models.Faculty{}
	for _, f := range all {
		if strings.Contains(strings.ToLower(f.Name), needle) || strings.Contains(strings.ToLower(f.Color), needle) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *FacultyRepository) FindByStudentID(ctx context.Context, studentID int64) (*models.Faculty, error) {
	var rec facultyRecord
	err := r.db.WithContext(ctx).
		Model(&facultyRecord{}).
		Select("faculties.id, faculties.name, faculties.color").
		Joins("JOIN students ON students.faculty_id = faculties.id").
		Where("students.id = ?", studentID).
		Take(&rec).Error
	if err != nil {
		return nil, notFound(err, "faculty by student")
	}
	return rec.toModel(), nil
}

// StudentRepository implements repositories.StudentRepository with GORM
type StudentRepository struct{ db *gorm.DB }

var _ repositories.StudentRepository = (*StudentRepository)(nil)

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *gorm.DB) *StudentRepository { return &StudentRepository{db: db} }

func (r *StudentRepository) Save(ctx context.Context, student *models.Student) (*models.Student, error) {
	rec := studentRecord{ID: student.ID, Name: student.Name, Age: student.Age, FacultyID: student.FacultyID()}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if rec.FacultyID != nil {
			ok, err := exists(tx, &facultyRecord{}, *rec.FacultyID)
			if err != nil {
				return err
			}
			if !ok {
				return repositories.ErrInvalidFacultyReference
			}
		}

		if rec.ID != 0 {
			res := tx.Model(&studentRecord{}).Where("id = ?", rec.ID).
				Updates(map[string]interface{}{"name": rec.Name, "age": rec.Age, "faculty_id": rec.FacultyID})
			if res.Error != nil || res.RowsAffected > 0 {
				return res.Error
			}
			rec.ID = 0
		}
		return tx.Omit(clause.Associations).Create(&rec).Error
	})
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidFacultyReference) {
			return nil, err
		}
		return nil, fmt.Errorf("error saving student: %w", err)
	}

	return r.FindByID(ctx, rec.ID)
}

func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	var rec studentRecord
	if err := r.db.WithContext(ctx).Preload("Faculty").First(&rec, id).Error; err != nil {
		return nil, notFound(err, "student")
	}
	return rec.toModel(), nil
}

func (r *StudentRepository) FindAll(ctx context.Context) ([]*models.Student, error) {
	return r.list(r.db.WithContext(ctx))
}

func (r *StudentRepository) DeleteByID(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&studentRecord{}, id).Error; err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	return nil
}

func (r *StudentRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return exists(r.db.WithContext(ctx), &studentRecord{}, id)
}

func (r *StudentRepository) FindByAgeBetween(ctx context.Context, min, max int) ([]*models.Student, error) {
	return r.list(r.db.WithContext(ctx).Where("age BETWEEN ? AND ?", min, max))
}

func (r *StudentRepository) FindByFacultyID(ctx context.Context, facultyID int64) ([]*models.Student, error) {
	return r.list(r.db.WithContext(ctx).Where("faculty_id = ?", facultyID))
}

func (r *StudentRepository) list(q *gorm.DB) ([]*models.Student, error) {
	var recs []studentRecord
	if err := q.Preload("Faculty").Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	out := make([]*models.Student, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.toModel())
	}
	return out, nil
}

func exists(db *gorm.DB, model interface{}, id int64) (bool, error) {
	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("error checking existence: %w", err)
	}
	return count > 0, nil
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrNotFound
	}
	return fmt.Errorf("error getting %s: %w", what, err)
}
