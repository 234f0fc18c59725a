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

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// GetByID retrieves a student together with its account
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getBy(ctx, "s.id = $1", id)
}

// GetByAccountID retrieves a student by the owning account's ID
func (r *StudentRepository) GetByAccountID(ctx context.Context, accountID int64) (*models.Student, error) {
	return r.getBy(ctx, "s.account_id = $1", accountID)
}

func (r *StudentRepository) getBy(ctx context.Context, where string, arg interface{}) (*models.Student, error) {
	query := fmt.Sprintf(`
		SELECT s.id, s.account_id, s.registration_number,
		       a.id, a.username, a.email, a.first_name, a.last_name, a.birth_date
		FROM students s
		JOIN accounts a ON a.id = s.account_id
		WHERE %s`, where)

	student := &models.Student{Account: &models.Account{}}
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&student.ID, &student.AccountID, &student.RegistrationNumber,
		&student.Account.ID, &student.Account.Username, &student.Account.Email,
		&student.Account.FirstName, &student.Account.LastName, &student.Account.BirthDate)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}
