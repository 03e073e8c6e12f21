// Package repotest holds the behavioural contract every repository
// implementation must satisfy. Store packages run it from their own tests.
package repotest

import (
	"context"
	"testing"

	"github.com/hogwarts/school/internal/app/models"
	"github.com/hogwarts/school/internal/app/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns repositories over an empty store.
type Factory func(t *testing.T) *repositories.Repositories

// Run executes the contract against stores built by newRepos.
func Run(t *testing.T, newRepos Factory) {
	t.Run("SaveThenFindByID", func(t *testing.T) { testSaveThenFindByID(t, newRepos(t)) })
	t.Run("SaveWithUnknownIDInsertsNew", func(t *testing.T) { testSaveWithUnknownIDInsertsNew(t, newRepos(t)) })
	t.Run("UpdateInPlace", func(t *testing.T) { testUpdateInPlace(t, newRepos(t)) })
	t.Run("DeleteIsIdempotent", func(t *testing.T) { testDeleteIsIdempotent(t, newRepos(t)) })
	t.Run("FindAllEmptyIsNotNil", func(t *testing.T) { testFindAllEmptyIsNotNil(t, newRepos(t)) })
	t.Run("AgeBetweenIsInclusive", func(t *testing.T) { testAgeBetweenIsInclusive(t, newRepos(t)) })
	t.Run("FacultyAssociation", func(t *testing.T) { testFacultyAssociation(t, newRepos(t)) })
	t.Run("DanglingFacultyReference", func(t *testing.T) { testDanglingFacultyReference(t, newRepos(t)) })
	t.Run("SubstringSearchIgnoresCase", func(t *testing.T) { testSubstringSearchIgnoresCase(t, newRepos(t)) })
	t.Run("DeletingFacultyDetachesStudents", func(t *testing.T) { testDeletingFacultyDetachesStudents(t, newRepos(t)) })
}

func mustSaveFaculty(t *testing.T, repos *repositories.Repositories, name, color string) *models.Faculty {
	t.Helper()
	f, err := repos.FacultyRepository.Save(context.Background(), &models.Faculty{Name: name, Color: color})
	require.NoError(t, err)
	return f
}

func mustSaveStudent(t *testing.T, repos *repositories.Repositories, name string, age int, faculty *models.Faculty) *models.Student {
	t.Helper()
	s, err := repos.StudentRepository.Save(context.Background(), &models.Student{Name: name, Age: age, Faculty: faculty})
	require.NoError(t, err)
	return s
}

func testSaveThenFindByID(t *testing.T, repos *repositories.Repositories) {
	ctx := context.Background()

	f := mustSaveFaculty(t, repos, "ПК", "Красный")
	require.NotZero(t, f.ID)

	found, err := repos.FacultyRepository.FindByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, f.ID, found.ID)
	assert.Equal(t, "ПК", found.Name)
	assert.Equal(t, "Красный", found.Color)

	s := mustSaveStudent(t, repos, "Егор", 20, &models.Faculty{ID: f.ID})
	require.NotZero(t, s.ID)

	foundStudent, err := repos.StudentRepository.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, foundStudent.ID)
	assert.Equal(t, 20, foundStudent.Age)
	require.NotNil(t, foundStudent.Faculty)
	assert.Equal(t, "Красный", foundStudent.Faculty.Color)

	_, err = repos.StudentRepository.FindByID(ctx, s.ID+1000)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = repos.FacultyRepository.FindByID(ctx, f.ID+1000)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func testSaveWithUnknownIDInsertsNew(t *testing.T, repos *repositories.Repositories) {
	ctx := context.Background()

	saved, err := repos.FacultyRepository.Save(ctx, &models.Faculty{ID: 500, Name: "Slytherin", Color: "green"})
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)

	all, err := repos.FacultyRepository.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, saved.ID, all[0].ID)

	student, err := repos.StudentRepository.Save(ctx, &models.Student{ID: 700, Name: "Draco", Age: 17})
	require.NoError(t, err)
	exists, err := repos.StudentRepository.ExistsByID(ctx, student.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func testUpdateInPlace(t *testing.T, repos *repositories.Repositories) {
	ctx := context.Background()

	f := mustSaveFaculty(t, repos, "Ravenclaw", "blue")
	f.Color = "bronze"
	updated, err := repos.FacultyRepository.Save(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, f.ID, updated.ID)

	s := mustSaveStudent(t, repos, "Luna", 15, nil)
	s.Age = 16
	s.Faculty = &models.Faculty{ID: f.ID}
	updatedStudent, err := repos.StudentRepository.Save(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, s.ID, updatedStudent.ID)

	found, err := repos.StudentRepository.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 16, found.Age)
	require.NotNil(t, found.Faculty)
	assert.Equal(t, "bronze", found.Faculty.Color)

	all, err := repos.StudentRepository.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func testDeleteIsIdempotent(t *testing.T, repos *repositories.Repositories) {
	ctx := context.Background()

	s := mustSaveStudent(t, repos, "Neville", 17, nil)

	require.NoError(t, repos.StudentRepository.DeleteByID(ctx, s.ID))
	require.NoError(t, repos.StudentRepository.DeleteByID(ctx, s.ID))
	require.NoError(t, repos.StudentRepository.DeleteByID(ctx, 987654))
	require.NoError(t, repos.FacultyRepository.DeleteByID(ctx, 987654))

	exists, err := repos.StudentRepository.ExistsByID(ctx, s.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repos.FacultyRepository.ExistsByID(ctx, 987654)
	require.NoError(t, err)
	assert.False(t, exists)
}

func testFindAllEmptyIsNotNil(t *testing.T, repos *repositories.Repositories) {
	ctx := context.Background()

	students, err := repos.StudentRepository.FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)

	faculties, err := repos.FacultyRepository.FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, faculties)
	assert.Empty(t, faculties)
}

func testAgeBetweenIsInclusive(t *testing.T, repos *repositories.Repositories) {
	ctx := context.Background()

	for i, age := range []int{10, 11, 14, 17, 18} {
		mustSaveStudent(t, repos, string(rune('A'+i)), age, nil)
	}

	students, err := repos.StudentRepository.FindByAgeBetween(ctx, 11, 17)
	require.NoError(t, err)

	ages := make([]int, 0, len(students))
	for _, s := range students {
		ages = append(ages, s.Age)
	}
	assert.ElementsMatch(t, []int{11, 14, 17}, ages)

	none, err := repos.StudentRepository.FindByAgeBetween(ctx, 30, 20)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testFacultyAssociation(t *testing.T, repos *repositories.Repositories) {
	ctx := context.Background()

	gryffindor := mustSaveFaculty(t, repos, "Gryffindor", "red")
	hufflepuff := mustSaveFaculty(t, repos, "Hufflepuff", "yellow")
	harry := mustSaveStudent(t, repos, "Harry", 17, &models.Faculty{ID: gryffindor.ID})
	mustSaveStudent(t, repos, "Ron", 17, &models.Faculty{ID: gryffindor.ID})
	loner := mustSaveStudent(t, repos, "Loner", 12, nil)

	members, err := repos.StudentRepository.FindByFacultyID(ctx, gryffindor.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	empty, err := repos.StudentRepository.FindByFacultyID(ctx, hufflepuff.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	faculty, err := repos.FacultyRepository.FindByStudentID(ctx, harry.ID)
	require.NoError(t, err)
	assert.Equal(t, gryffindor.ID, faculty.ID)
	assert.Equal(t, "Gryffindor", faculty.Name)

	_, err = repos.FacultyRepository.FindByStudentID(ctx, loner.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = repos.FacultyRepository.FindByStudentID(ctx, 424242)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func testDanglingFacultyReference(t *testing.T, repos *repositories.Repositories) {
	_, err := repos.StudentRepository.Save(context.Background(), &models.Student{
		Name: "Ghost", Age: 300, Faculty: &models.Faculty{ID: 31337},
	})
	assert.ErrorIs(t, err, repositories.ErrInvalidFacultyReference)
}

func testSubstringSearchIgnoresCase(t *testing.T, repos *repositories.Repositories) {
	ctx := context.Background()

	mustSaveFaculty(t, repos, "ПК", "Красный")
	mustSaveFaculty(t, repos, "ПК-2", "Синий")
	mustSaveFaculty(t, repos, "ИВТ", "Зелёный")

	byColor, err := repos.FacultyRepository.FindByNameOrColorContainingIgnoreCase(ctx, "красный")
	require.NoError(t, err)
	require.Len(t, byColor, 1)
	assert.Equal(t, "Красный", byColor[0].Color)

	byName, err := repos.FacultyRepository.FindByNameOrColorContainingIgnoreCase(ctx, "пк")
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	either, err := repos.FacultyRepository.FindByNameOrColorContainingIgnoreCase(ctx, "И")
	require.NoError(t, err)
	assert.Len(t, either, 2, "matches ИВТ by name and Синий by color")

	none, err := repos.FacultyRepository.FindByNameOrColorContainingIgnoreCase(ctx, "%")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testDeletingFacultyDetachesStudents(t *testing.T, repos *repositories.Repositories) {
	ctx := context.Background()

	f := mustSaveFaculty(t, repos, "Durmstrang", "crimson")
	s := mustSaveStudent(t, repos, "Viktor", 18, &models.Faculty{ID: f.ID})

	require.NoError(t, repos.FacultyRepository.DeleteByID(ctx, f.ID))

	found, err := repos.StudentRepository.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, found.Faculty)
}
