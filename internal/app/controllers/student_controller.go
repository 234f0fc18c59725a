package controllers

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/berkecan/unienroll/internal/app/models"
	"github.com/berkecan/unienroll/internal/app/models/dto"
	"github.com/berkecan/unienroll/internal/app/services"
	"github.com/berkecan/unienroll/internal/middleware"
)

// StudentController handles student-facing enrollment operations
type StudentController struct {
	enrollmentService *services.EnrollmentService
	preferenceService *services.PreferenceService
}

// NewStudentController creates a new StudentController
func NewStudentController(enrollmentService *services.EnrollmentService, preferenceService *services.PreferenceService) *StudentController {
	return &StudentController{
		enrollmentService: enrollmentService,
		preferenceService: preferenceService,
	}
}

func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name)
		errorDetail = errorDetail.WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// GetContracts lists all contracts of a student
// @Summary List a student's contracts
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ContractDTO}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{studentId}/contracts [get]
func (c *StudentController) GetContracts(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	contracts, err := c.enrollmentService.ContractsOf(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	result := make([]dto.ContractDTO, 0, len(contracts))
	for _, contract := range contracts {
		result = append(result, dto.NewContractDTO(contract))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// GetSpecializations lists the specializations a student is enrolled in
// @Summary List a student's specializations
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.SpecializationDTO}
// @Router /students/{studentId}/specializations [get]
func (c *StudentController) GetSpecializations(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	specializations, err := c.enrollmentService.SpecializationsOf(ctx, studentID)
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

// GetCurrentCourses lists the courses of the student's current semester
// @Summary List current-semester courses
// @Description Courses of the semester the student's latest contract covers
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Param specializationId path int true "Specialization ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseDTO}
// @Failure 404 {object} dto.ErrorResponse "No contract in this specialization"
// @Router /students/{studentId}/specializations/{specializationId}/courses [get]
func (c *StudentController) GetCurrentCourses(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}
	specializationID, ok := parseIDParam(ctx, "specializationId")
	if !ok {
		return
	}

	courses, err := c.enrollmentService.CoursesForCurrentSemester(ctx, studentID, specializationID)
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

// GetOptionalPreferences lists the student's ranked optional preferences
// @Summary List ranked optional preferences
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Param specializationId path int true "Specialization ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.OptionalPreferenceDTO}
// @Router /students/{studentId}/specializations/{specializationId}/optionals [get]
func (c *StudentController) GetOptionalPreferences(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}
	specializationID, ok := parseIDParam(ctx, "specializationId")
	if !ok {
		return
	}

	preferences, err := c.preferenceService.RankedPreferences(ctx, studentID, specializationID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	result := make([]dto.OptionalPreferenceDTO, 0, len(preferences))
	for _, preference := range preferences {
		entry := dto.OptionalPreferenceDTO{Rank: preference.Rank}
		if preference.Course != nil {
			entry.Course = dto.NewCourseDTO(preference.Course)
		}
		result = append(result, entry)
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// SubmitOptionalPreferences replaces the student's optional ranking
// @Summary Submit optional preferences
// @Description Replaces the student's optional-course ranking for the specialization
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Param specializationId path int true "Specialization ID"
// @Param request body dto.SubmitPreferencesRequest true "Ranked preferences"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 409 {object} dto.ErrorResponse "Duplicate rank"
// @Router /students/{studentId}/specializations/{specializationId}/optionals [post]
func (c *StudentController) SubmitOptionalPreferences(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}
	specializationID, ok := parseIDParam(ctx, "specializationId")
	if !ok {
		return
	}

	var req dto.SubmitPreferencesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid preference data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	preferences := make([]*models.OptionalPreference, 0, len(req.Preferences))
	for _, entry := range req.Preferences {
		preferences = append(preferences, &models.OptionalPreference{
			StudentID: studentID,
			CourseID:  entry.CourseID,
			Rank:      entry.Rank,
		})
	}

	if err := c.preferenceService.SubmitPreferences(ctx, studentID, specializationID, preferences); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Preferences saved"},
		Timestamp: time.Now(),
	})
}

// GetGrades lists the student's grades within a specialization
// @Summary List grades
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Param specializationId path int true "Specialization ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.GradeDTO}
// @Router /students/{studentId}/specializations/{specializationId}/grades [get]
func (c *StudentController) GetGrades(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}
	specializationID, ok := parseIDParam(ctx, "specializationId")
	if !ok {
		return
	}

	grades, err := c.enrollmentService.GradesFor(ctx, studentID, specializationID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	result := make([]dto.GradeDTO, 0, len(grades))
	for _, grade := range grades {
		result = append(result, dto.NewGradeDTO(grade))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// GenerateContract validates progression, records the contract and streams
// the rendered PDF.
// @Summary Generate an enrollment contract
// @Tags students
// @Produce application/pdf
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Param specializationId query int true "Specialization ID"
// @Param semester query int true "Target semester"
// @Success 200 {file} binary "Rendered contract"
// @Failure 409 {object} dto.ErrorResponse "Progression violation or duplicate"
// @Router /students/{studentId}/contracts/generate [get]
func (c *StudentController) GenerateContract(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	specializationID, err := strconv.ParseInt(ctx.Query("specializationId"), 10, 64)
	if err != nil || specializationID < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid specializationId")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	semester, err := strconv.Atoi(ctx.Query("semester"))
	if err != nil || semester < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid semester")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	filename, document, err := c.enrollmentService.GenerateContract(ctx, studentID, specializationID, semester)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, "application/pdf", document)
}

// UploadContract stores a signed contract file
// @Summary Upload a signed contract
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Param specializationId formData int true "Specialization ID"
// @Param semester formData int true "Semester"
// @Param file formData file true "Signed contract PDF"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 502 {object} dto.ErrorResponse "Storage failure"
// @Router /students/{studentId}/contracts/upload [post]
func (c *StudentController) UploadContract(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	var req dto.UploadContractRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid upload form")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Contract file is required")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filename, err := c.enrollmentService.UploadContract(ctx, studentID, req.SpecializationID, req.Semester, data)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Contract stored as " + filename},
		Timestamp: time.Now(),
	})
}
