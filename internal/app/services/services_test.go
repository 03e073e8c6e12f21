package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/hogwarts/school/internal/app/models"
	"github.com/hogwarts/school/internal/app/repositories"
	"github.com/hogwarts/school/internal/app/repositories/memory"
	"github.com/hogwarts/school/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestServices(t *testing.T) *Services {
	t.Helper()
	return NewServices(memory.NewRepositories(), ExportSheets{})
}

func TestFindByColorIsExactWhileSearchIgnoresCase(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	_, err := svc.FacultyService.CreateFaculty(ctx, &models.Faculty{Name: "ПК", Color: "Красный"})
	require.NoError(t, err)

	exact, err := svc.FacultyService.FindByColor(ctx, "красный")
	require.NoError(t, err)
	assert.Empty(t, exact)

	found, err := svc.FacultyService.SearchFaculties(ctx, "красный")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Красный", found[0].Color)

	exact, err = svc.FacultyService.FindByColor(ctx, "Красный")
	require.NoError(t, err)
	assert.Len(t, exact, 1)
}

func TestSearchFaculties_BlankTermReturnsAll(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	for _, name := range []string{"Gryffindor", "Hufflepuff"} {
		_, err := svc.FacultyService.CreateFaculty(ctx, &models.Faculty{Name: name, Color: "x"})
		require.NoError(t, err)
	}

	all, err := svc.FacultyService.SearchFaculties(ctx, "   ")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestFindFaculty_NotFound(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.FacultyService.FindFaculty(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrFacultyNotFound)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	_, err = svc.FacultyService.GetFacultyByID(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrFacultyNotFound)
}

func TestEditFaculty_UnknownIDInsertsNew(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	saved, err := svc.FacultyService.EditFaculty(ctx, &models.Faculty{ID: 42, Name: "Slytherin", Color: "green"})
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)

	found, err := svc.FacultyService.FindFaculty(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Slytherin", found.Name)
}

func TestStudentLifecycle(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	created, err := svc.StudentService.CreateStudent(ctx, &models.Student{Name: "Harry", Age: 17})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	found, err := svc.StudentService.FindStudent(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	found.Age = 18
	edited, err := svc.StudentService.EditStudent(ctx, found)
	require.NoError(t, err)
	assert.Equal(t, 18, edited.Age)

	require.NoError(t, svc.StudentService.DeleteStudent(ctx, created.ID))
	require.NoError(t, svc.StudentService.DeleteStudent(ctx, created.ID))

	_, err = svc.StudentService.FindStudent(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestFindByAge_ExactMatchScan(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	for _, age := range []int{19, 20, 19, 21} {
		_, err := svc.StudentService.CreateStudent(ctx, &models.Student{Name: "s", Age: age})
		require.NoError(t, err)
	}

	students, err := svc.StudentService.FindByAge(ctx, 19)
	require.NoError(t, err)
	assert.Len(t, students, 2)

	none, err := svc.StudentService.FindByAge(ctx, 30)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestFindStudentsByAgeRange_Inclusive(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	for _, age := range []int{11, 12, 17, 18} {
		_, err := svc.StudentService.CreateStudent(ctx, &models.Student{Name: "s", Age: age})
		require.NoError(t, err)
	}

	students, err := svc.StudentService.FindStudentsByAgeRange(ctx, 12, 17)
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, 12, students[0].Age)
	assert.Equal(t, 17, students[1].Age)
}

func TestStudentFacultyAssociation(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	faculty, err := svc.FacultyService.CreateFaculty(ctx, &models.Faculty{Name: "Gryffindor", Color: "red"})
	require.NoError(t, err)
	student, err := svc.StudentService.CreateStudent(ctx, &models.Student{Name: "Ron", Age: 17, Faculty: &models.Faculty{ID: faculty.ID}})
	require.NoError(t, err)
	require.NotNil(t, student.Faculty)
	assert.Equal(t, "Gryffindor", student.Faculty.Name)

	got, err := svc.StudentService.GetStudentFaculty(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, faculty.ID, got.ID)

	members, err := svc.StudentService.GetFacultyStudents(ctx, faculty.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, student.ID, members[0].ID)

	loner, err := svc.StudentService.CreateStudent(ctx, &models.Student{Name: "Loner", Age: 12})
	require.NoError(t, err)
	_, err = svc.StudentService.GetStudentFaculty(ctx, loner.ID)
	assert.ErrorIs(t, err, apperrors.ErrFacultyNotFound)

	empty, err := svc.StudentService.GetFacultyStudents(ctx, faculty.ID+100)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestCreateStudent_DanglingFaculty(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.StudentService.CreateStudent(context.Background(), &models.Student{
		Name: "Ghost", Age: 300, Faculty: &models.Faculty{ID: 99},
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidFacultyReference)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreate_NilEntityIsBadRequest(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.StudentService.CreateStudent(context.Background(), nil)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	_, err = svc.FacultyService.CreateFaculty(context.Background(), nil)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

type failingStudents struct{ repositories.StudentRepository }

func (failingStudents) FindAll(context.Context) ([]*models.Student, error) {
	return nil, errors.New("disk on fire")
}

func TestGetAllStudents_WrapsStoreErrors(t *testing.T) {
	repos := memory.NewRepositories()
	svc := NewStudentService(failingStudents{repos.StudentRepository}, repos.FacultyRepository)

	_, err := svc.GetAllStudents(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
	assert.False(t, errors.Is(err, apperrors.ErrResourceNotFound))
}

func TestExportStudents(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	faculty, err := svc.FacultyService.CreateFaculty(ctx, &models.Faculty{Name: "Ravenclaw", Color: "blue"})
	require.NoError(t, err)
	_, err = svc.StudentService.CreateStudent(ctx, &models.Student{Name: "Luna", Age: 15, Faculty: faculty})
	require.NoError(t, err)
	_, err = svc.StudentService.CreateStudent(ctx, &models.Student{Name: "Loner", Age: 12})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportService.ExportStudents(ctx, &buf))

	rows := readSheet(t, &buf, "Students")
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Name", "Age", "Faculty ID", "Faculty"}, rows[0])
	assert.Equal(t, []string{"1", "Luna", "15", "1", "Ravenclaw"}, rows[1])
	assert.Equal(t, []string{"2", "Loner", "12"}, rows[2][:3])
}

func TestExportFaculties_CountsStudents(t *testing.T) {
	svc := NewServices(memory.NewRepositories(), ExportSheets{Faculties: "Houses"})
	ctx := context.Background()

	gryffindor, err := svc.FacultyService.CreateFaculty(ctx, &models.Faculty{Name: "Gryffindor", Color: "red"})
	require.NoError(t, err)
	_, err = svc.FacultyService.CreateFaculty(ctx, &models.Faculty{Name: "Hufflepuff", Color: "yellow"})
	require.NoError(t, err)
	for _, name := range []string{"Harry", "Hermione"} {
		_, err = svc.StudentService.CreateStudent(ctx, &models.Student{Name: name, Age: 17, Faculty: gryffindor})
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	require.NoError(t, svc.ExportService.ExportFaculties(ctx, &buf))

	rows := readSheet(t, &buf, "Houses")
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Name", "Color", "Students"}, rows[0])
	assert.Equal(t, []string{"1", "Gryffindor", "red", "2"}, rows[1])
	assert.Equal(t, []string{"2", "Hufflepuff", "yellow", "0"}, rows[2])
}

func readSheet(t *testing.T, buf *bytes.Buffer, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}
