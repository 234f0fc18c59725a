package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/berkecan/unienroll/internal/app/models"
	"github.com/berkecan/unienroll/internal/db"
	"github.com/berkecan/unienroll/internal/pkg/apperrors"
	"github.com/berkecan/unienroll/internal/pkg/dberrors"
)

// PreferenceRepository handles optional-course preference operations. The
// table carries the course's specialization_id so the store can enforce
// rank uniqueness per (student, specialization) with a plain constraint.
type PreferenceRepository struct {
	db *pgxpool.Pool
}

// NewPreferenceRepository creates a new PreferenceRepository
func NewPreferenceRepository(db *pgxpool.Pool) *PreferenceRepository {
	return &PreferenceRepository{
		db: db,
	}
}

// ListForSpecialization retrieves a student's optional preferences whose
// courses belong to the given specialization, ordered by rank with the
// course ID as a deterministic tiebreak.
func (r *PreferenceRepository) ListForSpecialization(ctx context.Context, studentID, specializationID int64) ([]*models.OptionalPreference, error) {
	query := `
		SELECT p.student_id, p.course_id, p.rank,
		       c.id, c.specialization_id, c.teacher_id, c.name, c.semester_number, c.is_optional
		FROM optional_preferences p
		JOIN courses c ON c.id = p.course_id
		WHERE p.student_id = $1 AND p.specialization_id = $2
		ORDER BY p.rank, c.id
	`

	rows, err := r.db.Query(ctx, query, studentID, specializationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prefs []*models.OptionalPreference
	for rows.Next() {
		pref := &models.OptionalPreference{Course: &models.Course{}}
		if err := rows.Scan(
			&pref.StudentID, &pref.CourseID, &pref.Rank,
			&pref.Course.ID, &pref.Course.SpecializationID, &pref.Course.TeacherID,
			&pref.Course.Name, &pref.Course.SemesterNumber, &pref.Course.IsOptional,
		); err != nil {
			return nil, err
		}
		prefs = append(prefs, pref)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return prefs, nil
}

// ReplaceForSpecialization replaces a student's optional preferences for
// one specialization in a single transaction. The unique constraint on
// (student_id, specialization_id, rank) rejects tied ranks at the store
// level.
func (r *PreferenceRepository) ReplaceForSpecialization(ctx context.Context, studentID, specializationID int64, prefs []*models.OptionalPreference) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			DELETE FROM optional_preferences
			WHERE student_id = $1 AND specialization_id = $2`,
			studentID, specializationID)
		if err != nil {
			return fmt.Errorf("error clearing optional preferences: %w", err)
		}

		for _, pref := range prefs {
			tag, err := tx.Exec(ctx, `
				INSERT INTO optional_preferences (student_id, specialization_id, course_id, rank)
				SELECT $1, c.specialization_id, c.id, $3
				FROM courses c
				WHERE c.id = $2 AND c.specialization_id = $4 AND c.is_optional`,
				studentID, pref.CourseID, pref.Rank, specializationID)
			if err != nil {
				return fmt.Errorf("error inserting optional preference: %w", err)
			}
			// Zero rows means the course is not an optional of this specialization
			if tag.RowsAffected() == 0 {
				return apperrors.ErrCourseNotFound
			}
		}

		return nil
	})

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "optional_preferences_student_specialization_rank_key") {
			return apperrors.ErrDuplicateRank
		}
		return err
	}

	return nil
}
