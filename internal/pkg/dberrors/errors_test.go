package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsForeignKeyViolation(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "students_faculty_id_fkey"}

	assert.True(t, IsForeignKeyViolation(fk, ""))
	assert.True(t, IsForeignKeyViolation(fmt.Errorf("insert student: %w", fk), "students_faculty_id_fkey"))
	assert.False(t, IsForeignKeyViolation(fk, "other_fkey"))
	assert.False(t, IsForeignKeyViolation(errors.New("boom"), ""))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}, ""))
}
