package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/berkecan/unienroll/internal/app/models"
)

// CatalogService serves course listings with a Redis cache-aside layer.
// Course catalogs change rarely, so a short TTL keeps reads cheap without an
// invalidation scheme. With no Redis client configured it degrades to plain
// repository reads.
type CatalogService struct {
	specializations SpecializationStore
	cache           *redis.Client
	ttl             time.Duration
	logger          zerolog.Logger
}

// NewCatalogService creates a new CatalogService. cache may be nil.
func NewCatalogService(specializations SpecializationStore, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		specializations: specializations,
		cache:           cache,
		ttl:             ttl,
		logger:          logger,
	}
}

// Specializations returns the full specialization catalog
func (s *CatalogService) Specializations(ctx context.Context) ([]*models.Specialization, error) {
	return s.specializations.GetAll(ctx)
}

// Specialization returns one specialization by id
func (s *CatalogService) Specialization(ctx context.Context, id int64) (*models.Specialization, error) {
	return s.specializations.GetByID(ctx, id)
}

// Courses returns all courses of a specialization across semesters
func (s *CatalogService) Courses(ctx context.Context, specializationID int64) ([]*models.Course, error) {
	key := fmt.Sprintf("catalog:spec:%d:courses", specializationID)
	return s.cached(ctx, key, func() ([]*models.Course, error) {
		return s.specializations.ListCourses(ctx, specializationID, nil, false)
	})
}

// CoursesForSemester returns the specialization's courses for one semester
func (s *CatalogService) CoursesForSemester(ctx context.Context, specializationID int64, semester int) ([]*models.Course, error) {
	key := fmt.Sprintf("catalog:spec:%d:semester:%d", specializationID, semester)
	return s.cached(ctx, key, func() ([]*models.Course, error) {
		return s.specializations.ListCourses(ctx, specializationID, &semester, false)
	})
}

// OptionalCourses returns the specialization's optional courses across all
// semesters.
func (s *CatalogService) OptionalCourses(ctx context.Context, specializationID int64) ([]*models.Course, error) {
	key := fmt.Sprintf("catalog:spec:%d:optionals", specializationID)
	return s.cached(ctx, key, func() ([]*models.Course, error) {
		return s.specializations.ListCourses(ctx, specializationID, nil, true)
	})
}

// cached wraps a catalog read with cache-aside semantics. Cache errors are
// logged and treated as misses; the database stays the source of truth.
func (s *CatalogService) cached(ctx context.Context, key string, load func() ([]*models.Course, error)) ([]*models.Course, error) {
	if s.cache != nil {
		payload, err := s.cache.Get(ctx, key).Bytes()
		if err == nil {
			var courses []*models.Course
			if err := json.Unmarshal(payload, &courses); err == nil {
				return courses, nil
			}
			s.logger.Warn().Str("key", key).Msg("Discarding unreadable catalog cache entry")
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("Catalog cache read failed")
		}
	}

	courses, err := load()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(courses); err == nil {
			if err := s.cache.Set(ctx, key, payload, s.ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Str("key", key).Msg("Catalog cache write failed")
			}
		}
	}

	return courses, nil
}
