package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/hogwarts/school/internal/app/models"
	"github.com/hogwarts/school/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
)

var facultyColumns = []string{"f.id", "f.name", "f.color"}

// PostgresFacultyRepository handles faculty database operations
type PostgresFacultyRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewFacultyRepository creates a new PostgresFacultyRepository
func NewFacultyRepository(db DBTX) *PostgresFacultyRepository {
	return &PostgresFacultyRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Save inserts or updates a faculty
func (r *PostgresFacultyRepository) Save(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error) {
	saved := *faculty

	if saved.ID != 0 {
		sql, args, err := r.sb.Update("faculties").
			SetMap(map[string]interface{}{
				"name":  saved.Name,
				"color": saved.Color,
			}).
			Where(squirrel.Eq{"id": saved.ID}).
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building update faculty SQL")
			return nil, fmt.Errorf("failed to build update faculty query: %w", err)
		}

		cmdTag, err := r.db.Exec(ctx, sql, args...)
		if err != nil {
			logger.Error().Err(err).Int64("facultyID", saved.ID).Msg("Error executing update faculty query")
			return nil, fmt.Errorf("error updating faculty: %w", err)
		}
		if cmdTag.RowsAffected() > 0 {
			return &saved, nil
		}
		// No row behind the id: fall through and store it as a new faculty.
	}

	sql, args, err := r.sb.Insert("faculties").
		Columns("name", "color").
		Values(saved.Name, saved.Color).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create faculty SQL")
		return nil, fmt.Errorf("failed to build create faculty query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&saved.ID); err != nil {
		logger.Error().Err(err).Str("name", saved.Name).Msg("Error executing create faculty query")
		return nil, fmt.Errorf("error creating faculty: %w", err)
	}

	return &saved, nil
}

// FindByID retrieves a faculty by ID
func (r *PostgresFacultyRepository) FindByID(ctx context.Context, id int64) (*models.Faculty, error) {
	sql, args, err := r.sb.Select(facultyColumns...).
		From("faculties f").
		Where(squirrel.Eq{"f.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get faculty by ID SQL")
		return nil, fmt.Errorf("failed to build get faculty query: %w", err)
	}

	faculty, err := scanFaculty(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("facultyID", id).Msg("Error scanning faculty row")
		return nil, fmt.Errorf("error getting faculty by ID: %w", err)
	}

	return faculty, nil
}

// FindAll retrieves all faculties ordered by id
func (r *PostgresFacultyRepository) FindAll(ctx context.Context) ([]*models.Faculty, error) {
	return r.list(ctx, "find all faculties", r.sb.Select(facultyColumns...).From("faculties f"))
}

// DeleteByID deletes a faculty. Deleting a missing id is not an error.
func (r *PostgresFacultyRepository) DeleteByID(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("faculties").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete faculty SQL")
		return fmt.Errorf("failed to build delete faculty query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("facultyID", id).Msg("Error executing delete faculty query")
		return fmt.Errorf("error deleting faculty: %w", err)
	}

	return nil
}

// ExistsByID reports whether a faculty row exists
func (r *PostgresFacultyRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return existsByID(ctx, r.db, r.sb, "faculties", id)
}

// FindByNameOrColorContainingIgnoreCase performs an ILIKE search over name and color
func (r *PostgresFacultyRepository) FindByNameOrColorContainingIgnoreCase(ctx context.Context, term string) ([]*models.Faculty, error) {
	pattern := containsPattern(term)
	query := r.sb.Select(facultyColumns...).
		From("faculties f").
		Where(squirrel.Or{
			squirrel.ILike{"f.name": pattern},
			squirrel.ILike{"f.color": pattern},
		})

	return r.list(ctx, "search faculties", query)
}

// FindByStudentID resolves a student's faculty through students.faculty_id
func (r *PostgresFacultyRepository) FindByStudentID(ctx context.Context, studentID int64) (*models.Faculty, error) {
	sql, args, err := r.sb.Select(facultyColumns...).
		From("students s").
		Join("faculties f ON f.id = s.faculty_id").
		Where(squirrel.Eq{"s.id": studentID}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get faculty by student SQL")
		return nil, fmt.Errorf("failed to build get faculty by student query: %w", err)
	}

	faculty, err := scanFaculty(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error scanning student faculty row")
		return nil, fmt.Errorf("error getting faculty by student ID: %w", err)
	}

	return faculty, nil
}

func (r *PostgresFacultyRepository) list(ctx context.Context, op string, query squirrel.SelectBuilder) ([]*models.Faculty, error) {
	sql, args, err := query.OrderBy("f.id ASC").ToSql()
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error building faculty list SQL")
		return nil, fmt.Errorf("failed to build %s query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error executing faculty list query")
		return nil, fmt.Errorf("error querying faculties: %w", err)
	}
	defer rows.Close()

	faculties := []*models.Faculty{}
	for rows.Next() {
		faculty, err := scanFaculty(rows)
		if err != nil {
			logger.Error().Err(err).Str("op", op).Msg("Error scanning faculty row")
			return nil, fmt.Errorf("error scanning faculty row: %w", err)
		}
		faculties = append(faculties, faculty)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error iterating faculty rows")
		return nil, fmt.Errorf("error iterating faculty rows: %w", err)
	}

	return faculties, nil
}

func scanFaculty(row pgx.Row) (*models.Faculty, error) {
	faculty := &models.Faculty{}
	if err := row.Scan(&faculty.ID, &faculty.Name, &faculty.Color); err != nil {
		return nil, err
	}
	return faculty, nil
}

// containsPattern turns a search term into a LIKE pattern matching it anywhere,
// with the term's own wildcard characters escaped.
func containsPattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return "%" + escaped + "%"
}

func existsByID(ctx context.Context, db DBTX, sb squirrel.StatementBuilderType, table string, id int64) (bool, error) {
	sql, args, err := sb.Select("1").
		From(table).
		Where(squirrel.Eq{"id": id}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Str("table", table).Msg("Error building exists SQL")
		return false, fmt.Errorf("failed to build %s existence query: %w", table, err)
	}

	var exists bool
	if err := db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Str("table", table).Int64("id", id).Msg("Error checking row existence")
		return false, fmt.Errorf("error checking %s existence: %w", table, err)
	}

	return exists, nil
}
