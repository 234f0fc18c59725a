package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/berkecan/unienroll/internal/app/models"
	"github.com/berkecan/unienroll/internal/pkg/apperrors"
)

// TeacherRepository handles teacher database operations
type TeacherRepository struct {
	db *pgxpool.Pool
}

// NewTeacherRepository creates a new TeacherRepository
func NewTeacherRepository(db *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{
		db: db,
	}
}

// GetByID retrieves a teacher together with its account
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	query := `
		SELECT t.id, t.account_id,
		       a.id, a.username, a.email, a.first_name, a.last_name
		FROM teachers t
		JOIN accounts a ON a.id = t.account_id
		WHERE t.id = $1
	`

	teacher := &models.Teacher{Account: &models.Account{}}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&teacher.ID, &teacher.AccountID,
		&teacher.Account.ID, &teacher.Account.Username, &teacher.Account.Email,
		&teacher.Account.FirstName, &teacher.Account.LastName)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}

	return teacher, nil
}

// ListCourses retrieves all courses taught by a teacher, catalog order
func (r *TeacherRepository) ListCourses(ctx context.Context, teacherID int64) ([]*models.Course, error) {
	query := `
		SELECT id, specialization_id, teacher_id, name, semester_number, is_optional
		FROM courses
		WHERE teacher_id = $1
		ORDER BY semester_number, id
	`

	rows, err := r.db.Query(ctx, query, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCourses(rows)
}
