package controllers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hogwarts/school/internal/app/controllers"
	"github.com/hogwarts/school/internal/app/models"
	"github.com/hogwarts/school/internal/app/models/dto"
	"github.com/hogwarts/school/internal/app/repositories/memory"
	"github.com/hogwarts/school/internal/app/routes"
	"github.com/hogwarts/school/internal/app/services"
	"github.com/hogwarts/school/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T, ping controllers.Pinger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svcs := services.NewServices(memory.NewRepositories(), services.ExportSheets{})
	router := gin.New()
	router.Use(middleware.RequestID())
	routes.SetupRouter(router,
		controllers.NewStudentController(svcs.StudentService, svcs.ExportService),
		controllers.NewFacultyController(svcs.FacultyService, svcs.StudentService, svcs.ExportService),
		controllers.NewHealthController(ping),
	)
	return router
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func createFaculty(t *testing.T, router *gin.Engine, name, color string) models.Faculty {
	t.Helper()
	w := do(router, http.MethodPost, "/faculty", fmt.Sprintf(`{"name":%q,"color":%q}`, name, color))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[models.Faculty](t, w)
}

func createStudent(t *testing.T, router *gin.Engine, body string) models.Student {
	t.Helper()
	w := do(router, http.MethodPost, "/student", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[models.Student](t, w)
}

func TestCreateThenGetFaculty(t *testing.T) {
	router := newRouter(t, nil)

	created := createFaculty(t, router, "ПК", "Красный")
	require.NotZero(t, created.ID)

	w := do(router, http.MethodGet, fmt.Sprintf("/faculty/%d", created.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[models.Faculty](t, w)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "ПК", got.Name)
	assert.Equal(t, "Красный", got.Color)
}

func TestGetFaculty_NotFoundAndBadID(t *testing.T) {
	router := newRouter(t, nil)

	w := do(router, http.MethodGet, "/faculty/77", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decode[dto.ErrorResponse](t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, resp.Error.Code)
	assert.NotEmpty(t, resp.RequestID)

	w = do(router, http.MethodGet, "/faculty/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFindFacultiesByColor(t *testing.T) {
	router := newRouter(t, nil)
	createFaculty(t, router, "ПК", "Красный")

	w := do(router, http.MethodGet, "/faculty?color=", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(router, http.MethodGet, "/faculty", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(router, http.MethodGet, "/faculty?color=%D0%9A%D1%80%D0%B0%D1%81%D0%BD%D1%8B%D0%B9", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Faculty](t, w), 1)

	w = do(router, http.MethodGet, "/faculty?color=%D0%BA%D1%80%D0%B0%D1%81%D0%BD%D1%8B%D0%B9", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]models.Faculty](t, w))
}

func TestSearchFaculties(t *testing.T) {
	router := newRouter(t, nil)

	w := do(router, http.MethodGet, "/faculty/faculties", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	createFaculty(t, router, "ПК", "Красный")
	createFaculty(t, router, "Hufflepuff", "yellow")

	w = do(router, http.MethodGet, "/faculty/faculties?search=%D0%BA%D1%80%D0%B0%D1%81%D0%BD%D1%8B%D0%B9", "")
	require.Equal(t, http.StatusOK, w.Code)
	found := decode[[]models.Faculty](t, w)
	require.Len(t, found, 1)
	assert.Equal(t, "Красный", found[0].Color)

	w = do(router, http.MethodGet, "/faculty/faculties?search=", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Faculty](t, w), 2)

	w = do(router, http.MethodGet, "/faculty/faculties?search=zzz", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEditFaculty_UnknownIDInsertsNew(t *testing.T) {
	router := newRouter(t, nil)

	w := do(router, http.MethodPut, "/faculty", `{"id":500,"name":"Slytherin","color":"green"}`)
	require.Equal(t, http.StatusOK, w.Code)
	saved := decode[models.Faculty](t, w)
	assert.NotZero(t, saved.ID)

	w = do(router, http.MethodGet, fmt.Sprintf("/faculty/%d", saved.ID), "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteIsAlwaysOK(t *testing.T) {
	router := newRouter(t, nil)
	f := createFaculty(t, router, "Gryffindor", "red")
	s := createStudent(t, router, fmt.Sprintf(`{"name":"Harry","age":17,"faculty":{"id":%d}}`, f.ID))

	assert.Equal(t, http.StatusOK, do(router, http.MethodDelete, "/student/999", "").Code)
	assert.Equal(t, http.StatusOK, do(router, http.MethodDelete, "/faculty/999", "").Code)

	assert.Equal(t, http.StatusOK, do(router, http.MethodDelete, fmt.Sprintf("/faculty/%d", f.ID), "").Code)
	w := do(router, http.MethodGet, fmt.Sprintf("/student/%d", s.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode[models.Student](t, w).Faculty)

	assert.Equal(t, http.StatusOK, do(router, http.MethodDelete, fmt.Sprintf("/student/%d", s.ID), "").Code)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, fmt.Sprintf("/student/%d", s.ID), "").Code)
}

func TestFacultyStudents(t *testing.T) {
	router := newRouter(t, nil)
	gryffindor := createFaculty(t, router, "Gryffindor", "red")
	hufflepuff := createFaculty(t, router, "Hufflepuff", "yellow")
	harry := createStudent(t, router, fmt.Sprintf(`{"name":"Harry","age":17,"faculty":{"id":%d}}`, gryffindor.ID))

	w := do(router, http.MethodGet, fmt.Sprintf("/faculty/%d/students", gryffindor.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	students := decode[[]models.Student](t, w)
	require.Len(t, students, 1)
	assert.Equal(t, harry.ID, students[0].ID)

	w = do(router, http.MethodGet, fmt.Sprintf("/faculty/%d/students", hufflepuff.ID), "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestStudentFaculty(t *testing.T) {
	router := newRouter(t, nil)
	f := createFaculty(t, router, "Ravenclaw", "blue")
	luna := createStudent(t, router, fmt.Sprintf(`{"name":"Luna","age":15,"faculty":{"id":%d}}`, f.ID))
	require.NotNil(t, luna.Faculty)
	assert.Equal(t, "Ravenclaw", luna.Faculty.Name)
	loner := createStudent(t, router, `{"name":"Loner","age":12}`)
	assert.Nil(t, loner.Faculty)

	w := do(router, http.MethodGet, fmt.Sprintf("/student/%d/faculty", luna.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, f.ID, decode[models.Faculty](t, w).ID)

	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, fmt.Sprintf("/student/%d/faculty", loner.ID), "").Code)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/student/4242/faculty", "").Code)
}

func TestCreateStudent_UnknownFacultyIsBadRequest(t *testing.T) {
	router := newRouter(t, nil)

	w := do(router, http.MethodPost, "/student", `{"name":"Ghost","age":300,"faculty":{"id":31337}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode[dto.ErrorResponse](t, w)
	assert.Equal(t, "faculty.id", resp.Error.Field)
}

func TestMalformedBodyIsBadRequest(t *testing.T) {
	router := newRouter(t, nil)

	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodPost, "/student", `{"name":`).Code)
	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodPut, "/faculty", `{"id":"x"}`).Code)
}

func TestListStudents(t *testing.T) {
	router := newRouter(t, nil)

	w := do(router, http.MethodGet, "/student", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	createStudent(t, router, `{"name":"Harry","age":17}`)
	createStudent(t, router, `{"name":"Hermione","age":18}`)

	w = do(router, http.MethodGet, "/student", "")
	students := decode[[]models.Student](t, w)
	require.Len(t, students, 2)
	assert.Equal(t, "Harry", students[0].Name)
}

func TestEditStudent(t *testing.T) {
	router := newRouter(t, nil)
	s := createStudent(t, router, `{"name":"Neville","age":16}`)

	w := do(router, http.MethodPut, "/student", fmt.Sprintf(`{"id":%d,"name":"Neville","age":17}`, s.ID))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 17, decode[models.Student](t, w).Age)

	w = do(router, http.MethodPut, "/student", `{"id":9000,"name":"New","age":11}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, int64(9000), decode[models.Student](t, w).ID)
}

func TestFindByAge(t *testing.T) {
	router := newRouter(t, nil)
	createStudent(t, router, `{"name":"Young","age":15}`)
	createStudent(t, router, `{"name":"Adult","age":20}`)

	w := do(router, http.MethodGet, "/student/age?age=15", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(router, http.MethodGet, "/student/age", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(router, http.MethodGet, "/student/age?age=20", "")
	require.Equal(t, http.StatusOK, w.Code)
	students := decode[[]models.Student](t, w)
	require.Len(t, students, 1)
	assert.Equal(t, "Adult", students[0].Name)

	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodGet, "/student/age?age=old", "").Code)
}

func TestFindByAgeRange(t *testing.T) {
	router := newRouter(t, nil)
	for _, age := range []int{10, 11, 14, 17, 18} {
		createStudent(t, router, fmt.Sprintf(`{"name":"s%d","age":%d}`, age, age))
	}

	w := do(router, http.MethodGet, "/student/age-range?minAge=11&maxAge=17", "")
	require.Equal(t, http.StatusOK, w.Code)
	students := decode[[]models.Student](t, w)
	ages := make([]int, 0, len(students))
	for _, s := range students {
		ages = append(ages, s.Age)
	}
	assert.Equal(t, []int{11, 14, 17}, ages)

	w = do(router, http.MethodGet, "/student/age-range?minAge=40&maxAge=50", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodGet, "/student/age-range?minAge=11", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodGet, "/student/age-range?minAge=a&maxAge=3", "").Code)
}

func TestExportEndpoints(t *testing.T) {
	router := newRouter(t, nil)
	createStudent(t, router, `{"name":"Harry","age":17}`)

	for _, path := range []string{"/student/export", "/faculty/export"} {
		w := do(router, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
		assert.True(t, strings.HasPrefix(w.Body.String(), "PK"), "xlsx is a zip archive")
	}
}

func TestHealth(t *testing.T) {
	w := do(newRouter(t, nil), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	down := func(context.Context) error { return errors.New("connection refused") }
	w = do(newRouter(t, down), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
