package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/berkecan/unienroll/internal/app/models"
	"github.com/berkecan/unienroll/internal/pkg/apperrors"
	"github.com/berkecan/unienroll/internal/pkg/logger"
)

// SpecializationRepository handles specialization and course catalog reads
type SpecializationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSpecializationRepository creates a new SpecializationRepository
func NewSpecializationRepository(db *pgxpool.Pool) *SpecializationRepository {
	return &SpecializationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByID retrieves a specialization by ID
func (r *SpecializationRepository) GetByID(ctx context.Context, id int64) (*models.Specialization, error) {
	query := `
		SELECT id, name, semester_count
		FROM specializations
		WHERE id = $1
	`

	var spec models.Specialization
	err := r.db.QueryRow(ctx, query, id).Scan(&spec.ID, &spec.Name, &spec.SemesterCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSpecializationNotFound
		}
		return nil, fmt.Errorf("error retrieving specialization: %w", err)
	}

	return &spec, nil
}

// GetAll retrieves all specializations
func (r *SpecializationRepository) GetAll(ctx context.Context) ([]*models.Specialization, error) {
	query := `
		SELECT id, name, semester_count
		FROM specializations
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var specs []*models.Specialization
	for rows.Next() {
		var spec models.Specialization
		if err := rows.Scan(&spec.ID, &spec.Name, &spec.SemesterCount); err != nil {
			return nil, err
		}
		specs = append(specs, &spec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return specs, nil
}

// ListCourses retrieves courses of a specialization, optionally filtered by
// semester and optional flag. The order is the catalog's natural one:
// semester number, then course ID.
func (r *SpecializationRepository) ListCourses(ctx context.Context, specializationID int64, semester *int, optionalOnly bool) ([]*models.Course, error) {
	builder := r.sb.Select("id", "specialization_id", "teacher_id", "name", "semester_number", "is_optional").
		From("courses").
		Where(squirrel.Eq{"specialization_id": specializationID}).
		OrderBy("semester_number", "id")

	if semester != nil {
		builder = builder.Where(squirrel.Eq{"semester_number": *semester})
	}
	if optionalOnly {
		builder = builder.Where(squirrel.Eq{"is_optional": true})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCourses(rows)
}

// scanCourses scans course rows into models
func scanCourses(rows pgx.Rows) ([]*models.Course, error) {
	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID, &course.SpecializationID, &course.TeacherID,
			&course.Name, &course.SemesterNumber, &course.IsOptional,
		); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}
