package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/berkecan/unienroll/internal/app/models/dto"
	"github.com/berkecan/unienroll/internal/app/services"
	"github.com/berkecan/unienroll/internal/middleware"
)

// TeacherController handles teacher-facing reads
type TeacherController struct {
	teacherService *services.TeacherService
}

// NewTeacherController creates a new TeacherController
func NewTeacherController(teacherService *services.TeacherService) *TeacherController {
	return &TeacherController{
		teacherService: teacherService,
	}
}

// GetCourses lists the courses assigned to a teacher
// @Summary List a teacher's courses
// @Tags teachers
// @Produce json
// @Security BearerAuth
// @Param teacherId path int true "Teacher ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseDTO}
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /teachers/{teacherId}/courses [get]
func (c *TeacherController) GetCourses(ctx *gin.Context) {
	teacherID, ok := parseIDParam(ctx, "teacherId")
	if !ok {
		return
	}

	courses, err := c.teacherService.CoursesOf(ctx, teacherID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	result := make([]dto.CourseDTO, 0, len(courses))
	for _, course := range courses {
		result = append(result, dto.NewCourseDTO(course))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}
