package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/berkecan/unienroll/internal/app/models"
)

// GradeRepository handles grade reads. Grade entry is out of scope; the
// enrollment core only consumes grades.
type GradeRepository struct {
	db *pgxpool.Pool
}

// NewGradeRepository creates a new GradeRepository
func NewGradeRepository(db *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{
		db: db,
	}
}

// ListForSpecialization retrieves a student's grades for courses belonging
// to one specialization, each joined with its course for semester display.
func (r *GradeRepository) ListForSpecialization(ctx context.Context, studentID, specializationID int64) ([]*models.Grade, error) {
	query := `
		SELECT g.id, g.student_id, g.course_id, g.score,
		       c.id, c.specialization_id, c.teacher_id, c.name, c.semester_number, c.is_optional
		FROM grades g
		JOIN courses c ON c.id = g.course_id
		WHERE g.student_id = $1 AND c.specialization_id = $2
		ORDER BY c.semester_number, c.id
	`

	rows, err := r.db.Query(ctx, query, studentID, specializationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grades []*models.Grade
	for rows.Next() {
		grade := &models.Grade{Course: &models.Course{}}
		if err := rows.Scan(
			&grade.ID, &grade.StudentID, &grade.CourseID, &grade.Score,
			&grade.Course.ID, &grade.Course.SpecializationID, &grade.Course.TeacherID,
			&grade.Course.Name, &grade.Course.SemesterNumber, &grade.Course.IsOptional,
		); err != nil {
			return nil, err
		}
		grades = append(grades, grade)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return grades, nil
}
