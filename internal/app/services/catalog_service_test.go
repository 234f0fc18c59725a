package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berkecan/unienroll/internal/app/models"
)

// Without a Redis client the catalog serves straight from the store.
func newUncachedCatalog() (*fakeSpecializationStore, *CatalogService) {
	specs := &fakeSpecializationStore{
		specializations: map[int64]*models.Specialization{
			1: {ID: 1, Name: "Computer Science", SemesterCount: 6},
		},
		courses: []*models.Course{
			{ID: 1, SpecializationID: 1, Name: "Programming Fundamentals", SemesterNumber: 1},
			{ID: 2, SpecializationID: 1, Name: "Data Structures", SemesterNumber: 2},
			{ID: 3, SpecializationID: 1, Name: "Machine Learning", SemesterNumber: 5, IsOptional: true},
			{ID: 4, SpecializationID: 1, Name: "Computer Graphics", SemesterNumber: 5, IsOptional: true},
		},
	}
	return specs, NewCatalogService(specs, nil, time.Minute, zerolog.Nop())
}

func TestCoursesForSemesterWithoutCache(t *testing.T) {
	_, svc := newUncachedCatalog()

	courses, err := svc.CoursesForSemester(context.Background(), 1, 5)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "Machine Learning", courses[0].Name)
}

func TestOptionalCoursesFiltersMandatory(t *testing.T) {
	_, svc := newUncachedCatalog()

	courses, err := svc.OptionalCourses(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	for _, course := range courses {
		assert.True(t, course.IsOptional)
	}
}

func TestCoursesListsAllSemesters(t *testing.T) {
	_, svc := newUncachedCatalog()

	courses, err := svc.Courses(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, courses, 4)
}
