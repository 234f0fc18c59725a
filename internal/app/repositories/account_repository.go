package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/berkecan/unienroll/internal/app/models"
	"github.com/berkecan/unienroll/internal/db"
	"github.com/berkecan/unienroll/internal/pkg/apperrors"
	"github.com/berkecan/unienroll/internal/pkg/dberrors"
	"github.com/berkecan/unienroll/internal/pkg/logger"
)

// AccountRepository handles account database operations, including the
// transactional creation of an account together with its owner record.
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

// CreateWithOwner persists the account and its role-specific owner record
// in one transaction. Either both rows become visible or neither does.
func (r *AccountRepository) CreateWithOwner(ctx context.Context, account *models.Account, owner models.OwnerRecord) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO accounts (username, email, password, first_name, last_name, birth_date, role_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at`,
			account.Username, account.Email, account.Password,
			account.FirstName, account.LastName, account.BirthDate, account.Role.ID,
		).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
		if err != nil {
			return fmt.Errorf("error creating account: %w", err)
		}

		// Administrator accounts carry no owner record
		if owner == nil {
			return nil
		}

		switch o := owner.(type) {
		case *models.Student:
			o.AccountID = account.ID
			err = tx.QueryRow(ctx, `
				INSERT INTO students (account_id, registration_number)
				VALUES ($1, $2)
				RETURNING id`,
				o.AccountID, o.RegistrationNumber,
			).Scan(&o.ID)
		case *models.Teacher:
			o.AccountID = account.ID
			err = tx.QueryRow(ctx, `
				INSERT INTO teachers (account_id)
				VALUES ($1)
				RETURNING id`,
				o.AccountID,
			).Scan(&o.ID)
		case *models.StaffMember:
			o.AccountID = account.ID
			err = tx.QueryRow(ctx, `
				INSERT INTO staff_members (account_id)
				VALUES ($1)
				RETURNING id`,
				o.AccountID,
			).Scan(&o.ID)
		default:
			return fmt.Errorf("unsupported owner record type %T", owner)
		}
		if err != nil {
			return fmt.Errorf("error creating owner record: %w", err)
		}

		return nil
	})

	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "accounts_username_key"):
			return apperrors.ErrUsernameExists
		case dberrors.IsDuplicateConstraintError(err, "accounts_email_key"):
			return apperrors.ErrEmailExists
		case dberrors.IsDuplicateConstraintError(err, "students_registration_number_key"):
			return apperrors.ErrRegistrationNumberExists
		}
		logger.Error().Err(err).Str("username", account.Username).Msg("Error provisioning account")
		return err
	}

	logger.Info().Int64("accountID", account.ID).Str("role", string(account.Role.Name)).Msg("Account provisioned")
	return nil
}

// NextRegistrationNumber allocates a fresh registration number from a
// database sequence. The sequence guarantees distinct values under
// concurrent signups; the unique constraint on students.registration_number
// remains the final guard.
func (r *AccountRepository) NextRegistrationNumber(ctx context.Context) (string, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT nextval('registration_number_seq')`).Scan(&n); err != nil {
		return "", fmt.Errorf("error allocating registration number: %w", err)
	}

	return fmt.Sprintf("%d%06d", time.Now().Year(), n), nil
}

// UsernameExists checks if a username is already registered
func (r *AccountRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM accounts WHERE username = $1)`,
		username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking username: %w", err)
	}

	return exists, nil
}

// EmailExists checks if an email is already registered
func (r *AccountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM accounts WHERE email = $1)`,
		email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}

// GetByUsername retrieves an account with its role by username
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	return r.getBy(ctx, "a.username = $1", username)
}

// GetByID retrieves an account with its role by ID
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	return r.getBy(ctx, "a.id = $1", id)
}

func (r *AccountRepository) getBy(ctx context.Context, where string, arg interface{}) (*models.Account, error) {
	query := fmt.Sprintf(`
		SELECT a.id, a.username, a.email, a.password, a.first_name, a.last_name,
		       a.birth_date, a.created_at, a.updated_at, r.id, r.name
		FROM accounts a
		JOIN roles r ON r.id = a.role_id
		WHERE %s`, where)

	account := &models.Account{}
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&account.ID, &account.Username, &account.Email, &account.Password,
		&account.FirstName, &account.LastName, &account.BirthDate,
		&account.CreatedAt, &account.UpdatedAt,
		&account.Role.ID, &account.Role.Name)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("error retrieving account: %w", err)
	}

	return account, nil
}
