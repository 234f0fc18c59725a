package dto

import (
	"time"

	"github.com/berkecan/unienroll/internal/app/models"
)

// ContractDTO represents one enrollment contract
type ContractDTO struct {
	ID                 int64     `json:"id"`
	SpecializationID   int64     `json:"specializationId"`
	SpecializationName string    `json:"specializationName,omitempty"`
	SemesterNumber     int       `json:"semesterNumber"`
	CreatedAt          time.Time `json:"createdAt"`
}

// NewContractDTO converts a contract model
func NewContractDTO(c *models.Contract) ContractDTO {
	dto := ContractDTO{
		ID:               c.ID,
		SpecializationID: c.SpecializationID,
		SemesterNumber:   c.SemesterNumber,
		CreatedAt:        c.CreatedAt,
	}
	if c.Specialization != nil {
		dto.SpecializationName = c.Specialization.Name
	}
	return dto
}

// SpecializationDTO represents a program of study
type SpecializationDTO struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	SemesterCount int    `json:"semesterCount"`
}

// NewSpecializationDTO converts a specialization model
func NewSpecializationDTO(s *models.Specialization) SpecializationDTO {
	return SpecializationDTO{
		ID:            s.ID,
		Name:          s.Name,
		SemesterCount: s.SemesterCount,
	}
}

// CourseDTO represents a course within a specialization
type CourseDTO struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	SemesterNumber int    `json:"semesterNumber"`
	IsOptional     bool   `json:"isOptional"`
}

// NewCourseDTO converts a course model
func NewCourseDTO(c *models.Course) CourseDTO {
	return CourseDTO{
		ID:             c.ID,
		Name:           c.Name,
		SemesterNumber: c.SemesterNumber,
		IsOptional:     c.IsOptional,
	}
}

// OptionalPreferenceDTO pairs an optional course with its declared rank
type OptionalPreferenceDTO struct {
	Course CourseDTO `json:"course"`
	Rank   int       `json:"rank"`
}

// GradeDTO represents a grade together with the course's semester number
type GradeDTO struct {
	CourseID       int64   `json:"courseId"`
	CourseName     string  `json:"courseName,omitempty"`
	SemesterNumber int     `json:"semesterNumber"`
	Score          float64 `json:"score"`
}

// NewGradeDTO converts a grade model; the semester number comes from the
// associated course.
func NewGradeDTO(g *models.Grade) GradeDTO {
	dto := GradeDTO{
		CourseID: g.CourseID,
		Score:    g.Score,
	}
	if g.Course != nil {
		dto.CourseName = g.Course.Name
		dto.SemesterNumber = g.Course.SemesterNumber
	}
	return dto
}

// SubmitPreferencesRequest replaces a student's optional-course ranking for
// one specialization.
type SubmitPreferencesRequest struct {
	Preferences []PreferenceEntry `json:"preferences" binding:"required,min=1,dive"`
}

// PreferenceEntry is one (course, rank) pair
type PreferenceEntry struct {
	CourseID int64 `json:"courseId" binding:"required,min=1"`
	Rank     int   `json:"rank" binding:"required,min=1"`
}

// UploadContractRequest carries the metadata part of a contract upload
type UploadContractRequest struct {
	SpecializationID int64 `json:"specializationId" form:"specializationId" binding:"required,min=1"`
	Semester         int   `json:"semester" form:"semester" binding:"required,min=1"`
}
