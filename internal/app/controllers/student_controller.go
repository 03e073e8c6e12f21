package controllers

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hogwarts/school/internal/app/models"
	"github.com/hogwarts/school/internal/app/models/dto"
	"github.com/hogwarts/school/internal/app/services"
	"github.com/hogwarts/school/internal/middleware"
	"github.com/hogwarts/school/internal/pkg/apperrors"
)

// minFilterAge is the age a student must exceed to be listed by GET /student/age
const minFilterAge = 18

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StudentController handles student-related operations
type StudentController struct {
	studentService services.StudentService
	exportService  services.ExportService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, exportService services.ExportService) *StudentController {
	return &StudentController{
		studentService: studentService,
		exportService:  exportService,
	}
}

// GetStudent retrieves a student by ID
// @Summary Get student
// @Tags student
// @Produce json
// @Param id path int true "Student ID" Format(int64)
// @Success 200 {object} models.Student
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID format"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /student/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := middleware.PathID(ctx, "id")
	if !ok {
		return
	}

	student, err := c.studentService.FindStudent(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// GetAllStudents lists every student
// @Summary List students
// @Tags student
// @Produce json
// @Success 200 {array} models.Student
// @Router /student [get]
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	students, err := c.studentService.GetAllStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, students)
}

// CreateStudent handles student creation
// @Summary Create student
// @Description Stores a new student. faculty.id, when given, must reference an existing faculty.
// @Tags student
// @Accept json
// @Produce json
// @Param request body models.Student true "Student"
// @Success 200 {object} models.Student
// @Failure 400 {object} dto.ErrorResponse "Malformed body or unknown faculty"
// @Router /student [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var student models.Student
	if !middleware.BindJSON(ctx, &student) {
		return
	}

	created, err := c.studentService.CreateStudent(ctx.Request.Context(), &student)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, created)
}

// EditStudent handles student updates
// @Summary Edit student
// @Description Saves the student. An unknown id is stored as a new student.
// @Tags student
// @Accept json
// @Produce json
// @Param request body models.Student true "Student"
// @Success 200 {object} models.Student
// @Failure 400 {object} dto.ErrorResponse "Malformed body or unknown faculty"
// @Failure 404 {object} dto.ErrorResponse "Nothing was saved"
// @Router /student [put]
func (c *StudentController) EditStudent(ctx *gin.Context) {
	var student models.Student
	if !middleware.BindJSON(ctx, &student) {
		return
	}

	edited, err := c.studentService.EditStudent(ctx.Request.Context(), &student)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if edited == nil {
		middleware.HandleAPIError(ctx, apperrors.ErrStudentNotFound)
		return
	}

	ctx.JSON(http.StatusOK, edited)
}

// DeleteStudent deletes a student by ID
// @Summary Delete student
// @Description Unknown ids are ignored.
// @Tags student
// @Param id path int true "Student ID" Format(int64)
// @Success 200
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID format"
// @Router /student/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := middleware.PathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusOK)
}

// FindByAge lists students of an exact age
// @Summary Find students by age
// @Description Only ages above 18 are looked up; anything else yields an empty list.
// @Tags student
// @Produce json
// @Param age query int false "Age"
// @Success 200 {array} models.Student
// @Failure 400 {object} dto.ErrorResponse "Non-numeric age"
// @Router /student/age [get]
func (c *StudentController) FindByAge(ctx *gin.Context) {
	var query dto.AgeQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	if query.Age == nil || *query.Age <= minFilterAge {
		ctx.JSON(http.StatusOK, []*models.Student{})
		return
	}

	students, err := c.studentService.FindByAge(ctx.Request.Context(), *query.Age)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, students)
}

// FindByAgeRange lists students whose age lies in [minAge, maxAge]
// @Summary Find students by age range
// @Tags student
// @Produce json
// @Param minAge query int true "Lower bound, inclusive"
// @Param maxAge query int true "Upper bound, inclusive"
// @Success 200 {array} models.Student
// @Failure 400 {object} dto.ErrorResponse "Missing or non-numeric bounds"
// @Router /student/age-range [get]
func (c *StudentController) FindByAgeRange(ctx *gin.Context) {
	var query dto.AgeRangeQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	students, err := c.studentService.FindStudentsByAgeRange(ctx.Request.Context(), *query.MinAge, *query.MaxAge)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, students)
}

// GetStudentFaculty returns the faculty a student belongs to
// @Summary Student faculty
// @Tags student
// @Produce json
// @Param id path int true "Student ID" Format(int64)
// @Success 200 {object} models.Faculty
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID format"
// @Failure 404 {object} dto.ErrorResponse "Student missing or without faculty"
// @Router /student/{id}/faculty [get]
func (c *StudentController) GetStudentFaculty(ctx *gin.Context) {
	id, ok := middleware.PathID(ctx, "id")
	if !ok {
		return
	}

	faculty, err := c.studentService.GetStudentFaculty(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, faculty)
}

// ExportStudents downloads every student as XLSX
// @Summary Export students
// @Tags student
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /student/export [get]
func (c *StudentController) ExportStudents(ctx *gin.Context) {
	sendWorkbook(ctx, "students.xlsx", c.exportService.ExportStudents)
}

// sendWorkbook renders into memory first so a failed export still gets a JSON error
func sendWorkbook(ctx *gin.Context, filename string, render func(context.Context, io.Writer) error) {
	var buf bytes.Buffer
	if err := render(ctx.Request.Context(), &buf); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
