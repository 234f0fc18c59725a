package services

import (
	"context"

	"github.com/berkecan/unienroll/internal/app/models"
)

// TeacherStore resolves teacher owner records and their assignments
type TeacherStore interface {
	GetByID(ctx context.Context, id int64) (*models.Teacher, error)
	ListCourses(ctx context.Context, teacherID int64) ([]*models.Course, error)
}

// TeacherService serves teacher-side reads
type TeacherService struct {
	teachers TeacherStore
}

// NewTeacherService creates a new TeacherService
func NewTeacherService(teachers TeacherStore) *TeacherService {
	return &TeacherService{teachers: teachers}
}

// CoursesOf returns the courses assigned to a teacher
func (s *TeacherService) CoursesOf(ctx context.Context, teacherID int64) ([]*models.Course, error) {
	if _, err := s.teachers.GetByID(ctx, teacherID); err != nil {
		return nil, err
	}
	return s.teachers.ListCourses(ctx, teacherID)
}
