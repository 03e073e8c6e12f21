package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/hogwarts/school/internal/app/models"
	"github.com/hogwarts/school/internal/pkg/dberrors"
	"github.com/hogwarts/school/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
)

const studentFacultyFK = "students_faculty_id_fkey"

var studentColumns = []string{"s.id", "s.name", "s.age", "f.id", "f.name", "f.color"}

// PostgresStudentRepository handles student database operations
type PostgresStudentRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new PostgresStudentRepository
func NewStudentRepository(db DBTX) *PostgresStudentRepository {
	return &PostgresStudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Save inserts or updates a student and returns it reloaded with its faculty
func (r *PostgresStudentRepository) Save(ctx context.Context, student *models.Student) (*models.Student, error) {
	id := student.ID
	facultyID := student.FacultyID()

	updated := false
	if id != 0 {
		sql, args, err := r.sb.Update("students").
			SetMap(map[string]interface{}{
				"name":       student.Name,
				"age":        student.Age,
				"faculty_id": facultyID,
			}).
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building update student SQL")
			return nil, fmt.Errorf("failed to build update student query: %w", err)
		}

		cmdTag, err := r.db.Exec(ctx, sql, args...)
		if err != nil {
			return nil, r.writeError(err, id, "update")
		}
		updated = cmdTag.RowsAffected() > 0
	}

	if !updated {
		sql, args, err := r.sb.Insert("students").
			Columns("name", "age", "faculty_id").
			Values(student.Name, student.Age, facultyID).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building create student SQL")
			return nil, fmt.Errorf("failed to build create student query: %w", err)
		}

		if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
			return nil, r.writeError(err, student.ID, "create")
		}
	}

	return r.FindByID(ctx, id)
}

func (r *PostgresStudentRepository) writeError(err error, id int64, op string) error {
	if dberrors.IsForeignKeyViolation(err, studentFacultyFK) {
		return ErrInvalidFacultyReference
	}
	logger.Error().Err(err).Int64("studentID", id).Str("op", op).Msg("Error executing student write query")
	return fmt.Errorf("error on student %s: %w", op, err)
}

// FindByID retrieves a student with its faculty
func (r *PostgresStudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.selectStudents().
		Where(squirrel.Eq{"s.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by ID SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}

	return student, nil
}

// FindAll retrieves all students ordered by id
func (r *PostgresStudentRepository) FindAll(ctx context.Context) ([]*models.Student, error) {
	return r.list(ctx, "find all students", r.selectStudents())
}

// DeleteByID deletes a student. Deleting a missing id is not an error.
func (r *PostgresStudentRepository) DeleteByID(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete student SQL")
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}

	return nil
}

// ExistsByID reports whether a student row exists
func (r *PostgresStudentRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return existsByID(ctx, r.db, r.sb, "students", id)
}

// FindByAgeBetween returns students whose age lies in [min, max]
func (r *PostgresStudentRepository) FindByAgeBetween(ctx context.Context, min, max int) ([]*models.Student, error) {
	query := r.selectStudents().Where("s.age BETWEEN ? AND ?", min, max)
	return r.list(ctx, "find students by age range", query)
}

// FindByFacultyID returns the students referencing a faculty
func (r *PostgresStudentRepository) FindByFacultyID(ctx context.Context, facultyID int64) ([]*models.Student, error) {
	query := r.selectStudents().Where(squirrel.Eq{"s.faculty_id": facultyID})
	return r.list(ctx, "find students by faculty", query)
}

func (r *PostgresStudentRepository) selectStudents() squirrel.SelectBuilder {
	return r.sb.Select(studentColumns...).
		From("students s").
		LeftJoin("faculties f ON f.id = s.faculty_id")
}

func (r *PostgresStudentRepository) list(ctx context.Context, op string, query squirrel.SelectBuilder) ([]*models.Student, error) {
	sql, args, err := query.OrderBy("s.id ASC").ToSql()
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error building student list SQL")
		return nil, fmt.Errorf("failed to build %s query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error executing student list query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			logger.Error().Err(err).Str("op", op).Msg("Error scanning student row")
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error iterating student rows")
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var (
		student      models.Student
		facultyID    *int64
		facultyName  *string
		facultyColor *string
	)
	if err := row.Scan(&student.ID, &student.Name, &student.Age, &facultyID, &facultyName, &facultyColor); err != nil {
		return nil, err
	}

	if facultyID != nil {
		student.Faculty = &models.Faculty{ID: *facultyID}
		if facultyName != nil {
			student.Faculty.Name = *facultyName
		}
		if facultyColor != nil {
			student.Faculty.Color = *facultyColor
		}
	}

	return &student, nil
}
