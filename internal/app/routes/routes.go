package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/berkecan/unienroll/internal/app/controllers"
	"github.com/berkecan/unienroll/internal/app/models"
	"github.com/berkecan/unienroll/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	teacherController *controllers.TeacherController,
	catalogController *controllers.CatalogController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", authController.Signup)
		auth.POST("/signin", authController.Signin)
		auth.POST("/refresh", authController.Refresh)
		auth.POST("/logout", authController.Logout)
	}

	// --- Public catalog routes ---
	specializations := v1.Group("/specializations")
	{
		specializations.GET("", catalogController.GetSpecializations)
		specializations.GET("/:id/courses", catalogController.GetCourses)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		students := authenticated.Group("/students/:studentId")
		studentOrStaff := students.Group("")
		studentOrStaff.Use(authMiddleware.RoleRequired(
			string(models.RoleStudent),
			string(models.RoleStaff),
			string(models.RoleAdministrator),
		))
		{
			studentOrStaff.GET("/contracts", studentController.GetContracts)
			studentOrStaff.GET("/contracts/generate", studentController.GenerateContract)
			studentOrStaff.POST("/contracts/upload", studentController.UploadContract)
			studentOrStaff.GET("/specializations", studentController.GetSpecializations)
			studentOrStaff.GET("/specializations/:specializationId/courses", studentController.GetCurrentCourses)
			studentOrStaff.GET("/specializations/:specializationId/optionals", studentController.GetOptionalPreferences)
			studentOrStaff.POST("/specializations/:specializationId/optionals", studentController.SubmitOptionalPreferences)
			studentOrStaff.GET("/specializations/:specializationId/grades", studentController.GetGrades)
		}

		teachers := authenticated.Group("/teachers/:teacherId")
		teachersProtected := teachers.Group("")
		teachersProtected.Use(authMiddleware.RoleRequired(
			string(models.RoleTeacher),
			string(models.RoleChief),
			string(models.RoleAdministrator),
		))
		{
			teachersProtected.GET("/courses", teacherController.GetCourses)
		}
	}

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
