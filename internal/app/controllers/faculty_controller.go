package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hogwarts/school/internal/app/models"
	"github.com/hogwarts/school/internal/app/models/dto"
	"github.com/hogwarts/school/internal/app/services"
	"github.com/hogwarts/school/internal/middleware"
	"github.com/hogwarts/school/internal/pkg/apperrors"
)

// FacultyController handles faculty-related operations
type FacultyController struct {
	facultyService services.FacultyService
	studentService services.StudentService
	exportService  services.ExportService
}

// NewFacultyController creates a new FacultyController
func NewFacultyController(facultyService services.FacultyService, studentService services.StudentService, exportService services.ExportService) *FacultyController {
	return &FacultyController{
		facultyService: facultyService,
		studentService: studentService,
		exportService:  exportService,
	}
}

// GetFaculty retrieves a faculty by ID
// @Summary Get faculty
// @Description Retrieves a faculty by its ID
// @Tags faculty
// @Produce json
// @Param id path int true "Faculty ID" Format(int64)
// @Success 200 {object} models.Faculty
// @Failure 400 {object} dto.ErrorResponse "Invalid faculty ID format"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Router /faculty/{id} [get]
func (c *FacultyController) GetFaculty(ctx *gin.Context) {
	id, ok := middleware.PathID(ctx, "id")
	if !ok {
		return
	}

	faculty, err := c.facultyService.FindFaculty(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, faculty)
}

// CreateFaculty handles faculty creation
// @Summary Create faculty
// @Description Stores a new faculty and returns it with its generated id
// @Tags faculty
// @Accept json
// @Produce json
// @Param request body models.Faculty true "Faculty"
// @Success 200 {object} models.Faculty
// @Failure 400 {object} dto.ErrorResponse "Malformed body"
// @Router /faculty [post]
func (c *FacultyController) CreateFaculty(ctx *gin.Context) {
	var faculty models.Faculty
	if !middleware.BindJSON(ctx, &faculty) {
		return
	}

	created, err := c.facultyService.CreateFaculty(ctx.Request.Context(), &faculty)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, created)
}

// EditFaculty handles faculty updates
// @Summary Edit faculty
// @Description Saves the faculty. An unknown id is stored as a new faculty.
// @Tags faculty
// @Accept json
// @Produce json
// @Param request body models.Faculty true "Faculty"
// @Success 200 {object} models.Faculty
// @Failure 400 {object} dto.ErrorResponse "Malformed body"
// @Failure 404 {object} dto.ErrorResponse "Nothing was saved"
// @Router /faculty [put]
func (c *FacultyController) EditFaculty(ctx *gin.Context) {
	var faculty models.Faculty
	if !middleware.BindJSON(ctx, &faculty) {
		return
	}

	edited, err := c.facultyService.EditFaculty(ctx.Request.Context(), &faculty)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if edited == nil {
		middleware.HandleAPIError(ctx, apperrors.ErrFacultyNotFound)
		return
	}

	ctx.JSON(http.StatusOK, edited)
}

// DeleteFaculty deletes a faculty by ID
// @Summary Delete faculty
// @Description Deletes a faculty. Students of the faculty are left without one. Unknown ids are ignored.
// @Tags faculty
// @Param id path int true "Faculty ID" Format(int64)
// @Success 200
// @Failure 400 {object} dto.ErrorResponse "Invalid faculty ID format"
// @Router /faculty/{id} [delete]
func (c *FacultyController) DeleteFaculty(ctx *gin.Context) {
	id, ok := middleware.PathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.facultyService.DeleteFaculty(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusOK)
}

// FindFaculties lists faculties of an exact color
// @Summary Find faculties by color
// @Description Exact, case-sensitive color match. A blank or missing color yields an empty list.
// @Tags faculty
// @Produce json
// @Param color query string false "Color"
// @Success 200 {array} models.Faculty
// @Router /faculty [get]
func (c *FacultyController) FindFaculties(ctx *gin.Context) {
	var query dto.ColorQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	if strings.TrimSpace(query.Color) == "" {
		ctx.JSON(http.StatusOK, []*models.Faculty{})
		return
	}

	faculties, err := c.facultyService.FindByColor(ctx.Request.Context(), query.Color)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, faculties)
}

// SearchFaculties lists faculties whose name or color contains the search term
// @Summary Search faculties
// @Description Case-insensitive substring search over name and color. A blank term matches every faculty.
// @Tags faculty
// @Produce json
// @Param search query string false "Search term"
// @Success 200 {array} models.Faculty
// @Failure 404 {object} dto.ErrorResponse "No faculty matched"
// @Router /faculty/faculties [get]
func (c *FacultyController) SearchFaculties(ctx *gin.Context) {
	var query dto.SearchQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	faculties, err := c.facultyService.SearchFaculties(ctx.Request.Context(), query.Search)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if len(faculties) == 0 {
		middleware.HandleAPIError(ctx, apperrors.NewResourceNotFoundError("No faculty matches the search"))
		return
	}

	ctx.JSON(http.StatusOK, faculties)
}

// GetFacultyStudents lists the students of a faculty
// @Summary Faculty students
// @Tags faculty
// @Produce json
// @Param id path int true "Faculty ID" Format(int64)
// @Success 200 {array} models.Student
// @Success 204 "The faculty has no students"
// @Failure 400 {object} dto.ErrorResponse "Invalid faculty ID format"
// @Router /faculty/{id}/students [get]
func (c *FacultyController) GetFacultyStudents(ctx *gin.Context) {
	id, ok := middleware.PathID(ctx, "id")
	if !ok {
		return
	}

	students, err := c.studentService.GetFacultyStudents(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if len(students) == 0 {
		ctx.Status(http.StatusNoContent)
		return
	}

	ctx.JSON(http.StatusOK, students)
}

// ExportFaculties downloads every faculty with its student count as XLSX
// @Summary Export faculties
// @Tags faculty
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /faculty/export [get]
func (c *FacultyController) ExportFaculties(ctx *gin.Context) {
	sendWorkbook(ctx, "faculties.xlsx", c.exportService.ExportFaculties)
}
