// Package memory provides process-local implementations of the repository
// contracts. Rows live in maps guarded by a single RWMutex shared by both
// repositories so the student/faculty foreign key can be enforced.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/hogwarts/school/internal/app/models"
	"github.com/hogwarts/school/internal/app/repositories"
)

type studentRow struct {
	id        int64
	name      string
	age       int
	facultyID *int64
}

// Store owns the tables. Use Students and Faculties to get repository views.
type Store struct {
	mu            sync.RWMutex
	faculties     map[int64]models.Faculty
	students      map[int64]studentRow
	nextFacultyID int64
	nextStudentID int64
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		faculties: make(map[int64]models.Faculty),
		students:  make(map[int64]studentRow),
	}
}

// NewRepositories returns both repositories backed by a fresh store
func NewRepositories() *repositories.Repositories {
	s := NewStore()
	return &repositories.Repositories{
		StudentRepository: s.Students(),
		FacultyRepository: s.Faculties(),
	}
}

// Students returns the student repository view of the store
func (s *Store) Students() *StudentRepository { return &StudentRepository{s: s} }

// Faculties returns the faculty repository view of the store
func (s *Store) Faculties() *FacultyRepository { return &FacultyRepository{s: s} }

// FacultyRepository implements repositories.FacultyRepository in memory
type FacultyRepository struct{ s *Store }

var _ repositories.FacultyRepository = (*FacultyRepository)(nil)

func (r *FacultyRepository) Save(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	saved := *faculty
	if _, ok := r.s.faculties[saved.ID]; saved.ID == 0 || !ok {
		r.s.nextFacultyID++
		saved.ID = r.s.nextFacultyID
	}
	r.s.faculties[saved.ID] = saved
	return &saved, nil
}

func (r *FacultyRepository) FindByID(ctx context.Context, id int64) (*models.Faculty, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	f, ok := r.s.faculties[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &f, nil
}

func (r *FacultyRepository) FindAll(ctx context.Context) ([]*models.Faculty, error) {
	return r.filter(ctx, func(models.Faculty) bool { return true })
}

// DeleteByID removes the faculty and clears the reference of every student
// pointing at it, mirroring ON DELETE SET NULL.
func (r *FacultyRepository) DeleteByID(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.faculties, id)
	for sid, row := range r.s.students {
		if row.facultyID != nil && *row.facultyID == id {
			row.facultyID = nil
			r.s.students[sid] = row
		}
	}
	return nil
}

func (r *FacultyRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.faculties[id]
	return ok, nil
}

func (r *FacultyRepository) FindByNameOrColorContainingIgnoreCase(ctx context.Context, term string) ([]*models.Faculty, error) {
	needle := strings.ToLower(term)
	return r.filter(ctx, func(f models.Faculty) bool {
		return strings.Contains(strings.ToLower(f.Name), needle) ||
			strings.Contains(strings.ToLower(f.Color), needle)
	})
}

func (r *FacultyRepository) FindByStudentID(ctx context.Context, studentID int64) (*models.Faculty, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.students[studentID]
	if !ok || row.facultyID == nil {
		return nil, repositories.ErrNotFound
	}
	f, ok := r.s.faculties[*row.facultyID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &f, nil
}

func (r *FacultyRepository) filter(ctx context.Context, keep func(models.Faculty) bool) ([]*models.Faculty, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*models.Faculty{}
	for _, id := range sortedKeys(r.s.faculties) {
		f := r.s.faculties[id]
		if keep(f) {
			out = append(out, &f)
		}
	}
	return out, nil
}

// StudentRepository implements repositories.StudentRepository in memory
type StudentRepository struct{ s *Store }

var _ repositories.StudentRepository = (*StudentRepository)(nil)

func (r *StudentRepository) Save(ctx context.Context, student *models.Student) (*models.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row := studentRow{
		id:        student.ID,
		name:      student.Name,
		age:       student.Age,
		facultyID: student.FacultyID(),
	}
	if row.facultyID != nil {
		if _, ok := r.s.faculties[*row.facultyID]; !ok {
			return nil, repositories.ErrInvalidFacultyReference
		}
	}
	if _, ok := r.s.students[row.id]; row.id == 0 || !ok {
		r.s.nextStudentID++
		row.id = r.s.nextStudentID
	}
	r.s.students[row.id] = row
	return r.s.toStudent(row), nil
}

func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.students[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return r.s.toStudent(row), nil
}

func (r *StudentRepository) FindAll(ctx context.Context) ([]*models.Student, error) {
	return r.filter(ctx, func(studentRow) bool { return true })
}

func (r *StudentRepository) DeleteByID(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.students, id)
	return nil
}

func (r *StudentRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.students[id]
	return ok, nil
}

func (r *StudentRepository) FindByAgeBetween(ctx context.Context, min, max int) ([]*models.Student, error) {
	return r.filter(ctx, func(row studentRow) bool { return row.age >= min && row.age <= max })
}

func (r *StudentRepository) FindByFacultyID(ctx context.Context, facultyID int64) ([]*models.Student, error) {
	return r.filter(ctx, func(row studentRow) bool {
		return row.facultyID != nil && *row.facultyID == facultyID
	})
}

func (r *StudentRepository) filter(ctx context.Context, keep func(studentRow) bool) ([]*models.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*models.Student{}
	for _, id := range sortedKeys(r.s.students) {
		if row := r.s.students[id]; keep(row) {
			out = append(out, r.s.toStudent(row))
		}
	}
	return out, nil
}

// toStudent must be called with mu held.
func (s *Store) toStudent(row studentRow) *models.Student {
	student := &models.Student{ID: row.id, Name: row.name, Age: row.age}
	if row.facultyID != nil {
		if f, ok := s.faculties[*row.facultyID]; ok {
			student.Faculty = &f
		}
	}
	return student
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
