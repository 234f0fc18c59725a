package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/berkecan/unienroll/internal/app/models/dto"
	"github.com/berkecan/unienroll/internal/app/services"
	"github.com/berkecan/unienroll/internal/middleware"
)

// CatalogController serves public specialization and course reads
type CatalogController struct {
	catalogService *services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService *services.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// GetSpecializations lists all specializations
// @Summary List specializations
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.SpecializationDTO}
// @Router /specializations [get]
func (c *CatalogController) GetSpecializations(ctx *gin.Context) {
	specializations, err := c.catalogService.Specializations(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	result := make([]dto.SpecializationDTO, 0, len(specializations))
	for _, specialization := range specializations {
		result = append(result, dto.NewSpecializationDTO(specialization))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// GetCourses lists all courses of a specialization
// @Summary List a specialization's courses
// @Tags catalog
// @Produce json
// @Param id path int true "Specialization ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseDTO}
// @Failure 404 {object} dto.ErrorResponse "Specialization not found"
// @Router /specializations/{id}/courses [get]
func (c *CatalogController) GetCourses(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if _, err := c.catalogService.Specialization(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	courses, err := c.catalogService.Courses(ctx, id)
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
