package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berkecan/unienroll/internal/app/models"
	"github.com/berkecan/unienroll/internal/pkg/apperrors"
)

type fakeTeacherStore struct {
	teachers map[int64]*models.Teacher
	courses  map[int64][]*models.Course
}

func (s *fakeTeacherStore) GetByID(_ context.Context, id int64) (*models.Teacher, error) {
	teacher, ok := s.teachers[id]
	if !ok {
		return nil, apperrors.ErrTeacherNotFound
	}
	return teacher, nil
}

func (s *fakeTeacherStore) ListCourses(_ context.Context, teacherID int64) ([]*models.Course, error) {
	return s.courses[teacherID], nil
}

func TestCoursesOfTeacher(t *testing.T) {
	store := &fakeTeacherStore{
		teachers: map[int64]*models.Teacher{1: {ID: 1, AccountID: 20}},
		courses: map[int64][]*models.Course{
			1: {
				{ID: 5, SpecializationID: 1, Name: "Algorithms", SemesterNumber: 3},
			},
		},
	}
	svc := NewTeacherService(store)

	courses, err := svc.CoursesOf(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Algorithms", courses[0].Name)
}

func TestCoursesOfUnknownTeacher(t *testing.T) {
	svc := NewTeacherService(&fakeTeacherStore{teachers: map[int64]*models.Teacher{}})

	_, err := svc.CoursesOf(context.Background(), 9)
	assert.ErrorIs(t, err, apperrors.ErrTeacherNotFound)
}
