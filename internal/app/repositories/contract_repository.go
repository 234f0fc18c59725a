package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/berkecan/unienroll/internal/app/models"
	"github.com/berkecan/unienroll/internal/pkg/apperrors"
	"github.com/berkecan/unienroll/internal/pkg/dberrors"
	"github.com/berkecan/unienroll/internal/pkg/logger"
)

// ContractRepository handles enrollment contract database operations.
// Contracts are append-only; there is no update or delete.
type ContractRepository struct {
	db *pgxpool.Pool
}

// NewContractRepository creates a new ContractRepository
func NewContractRepository(db *pgxpool.Pool) *ContractRepository {
	return &ContractRepository{
		db: db,
	}
}

// Create inserts a new contract. The unique constraint on
// (student_id, specialization_id, semester_number) is the final guard
// against two concurrent requests creating the same semester's contract.
func (r *ContractRepository) Create(ctx context.Context, contract *models.Contract) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO contracts (student_id, specialization_id, semester_number)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		contract.StudentID, contract.SpecializationID, contract.SemesterNumber,
	).Scan(&contract.ID, &contract.CreatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "contracts_student_specialization_semester_key") {
			logger.Warn().
				Int64("studentID", contract.StudentID).
				Int64("specializationID", contract.SpecializationID).
				Int("semester", contract.SemesterNumber).
				Msg("Attempted to create duplicate contract")
			return apperrors.ErrContractAlreadyExists
		}
		logger.Error().Err(err).Int64("studentID", contract.StudentID).Msg("Error creating contract")
		return fmt.Errorf("error creating contract: %w", err)
	}

	return nil
}

// GetLatest returns the contract with the maximum semester number among a
// student's contracts for one specialization, or nil when the student has
// no contract in that specialization.
func (r *ContractRepository) GetLatest(ctx context.Context, studentID, specializationID int64) (*models.Contract, error) {
	query := `
		SELECT id, student_id, specialization_id, semester_number, created_at
		FROM contracts
		WHERE student_id = $1 AND specialization_id = $2
		ORDER BY semester_number DESC
		LIMIT 1
	`

	var contract models.Contract
	err := r.db.QueryRow(ctx, query, studentID, specializationID).Scan(
		&contract.ID, &contract.StudentID, &contract.SpecializationID,
		&contract.SemesterNumber, &contract.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving latest contract: %w", err)
	}

	return &contract, nil
}

// ListByStudent retrieves all contracts of a student with their
// specializations, ordered by specialization then semester.
func (r *ContractRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Contract, error) {
	query := `
		SELECT c.id, c.student_id, c.specialization_id, c.semester_number, c.created_at,
		       s.id, s.name, s.semester_count
		FROM contracts c
		JOIN specializations s ON s.id = c.specialization_id
		WHERE c.student_id = $1
		ORDER BY s.name, c.semester_number
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []*models.Contract
	for rows.Next() {
		contract := &models.Contract{Specialization: &models.Specialization{}}
		if err := rows.Scan(
			&contract.ID, &contract.StudentID, &contract.SpecializationID,
			&contract.SemesterNumber, &contract.CreatedAt,
			&contract.Specialization.ID, &contract.Specialization.Name,
			&contract.Specialization.SemesterCount,
		); err != nil {
			return nil, err
		}
		contracts = append(contracts, contract)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return contracts, nil
}
