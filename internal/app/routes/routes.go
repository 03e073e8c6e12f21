package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/hogwarts/school/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	studentController *controllers.StudentController,
	facultyController *controllers.FacultyController,
	healthController *controllers.HealthController,
) {
	router.GET("/health", healthController.Health)

	faculty := router.Group("/faculty")
	{
		faculty.GET("", facultyController.FindFaculties)
		faculty.POST("", facultyController.CreateFaculty)
		faculty.PUT("", facultyController.EditFaculty)
		faculty.GET("/faculties", facultyController.SearchFaculties)
		faculty.GET("/export", facultyController.ExportFaculties)
		faculty.GET("/:id", facultyController.GetFaculty)
		faculty.DELETE("/:id", facultyController.DeleteFaculty)
		faculty.GET("/:id/students", facultyController.GetFacultyStudents)
	}

	student := router.Group("/student")
	{
		student.GET("", studentController.GetAllStudents)
		student.POST("", studentController.CreateStudent)
		student.PUT("", studentController.EditStudent)
		student.GET("/age", studentController.FindByAge)
		student.GET("/age-range", studentController.FindByAgeRange)
		student.GET("/export", studentController.ExportStudents)
		student.GET("/:id", studentController.GetStudent)
		student.DELETE("/:id", studentController.DeleteStudent)
		student.GET("/:id/faculty", studentController.GetStudentFaculty)
	}
}
