package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/berkecan/unienroll/internal/app/models"
)

// RoleDirectory supplies seeded roles by name
type RoleDirectory interface {
	GetByName(ctx context.Context, name models.RoleName) (*models.Role, error)
}

// AccountStore persists accounts together with their owner records
type AccountStore interface {
	CreateWithOwner(ctx context.Context, account *models.Account, owner models.OwnerRecord) error
	NextRegistrationNumber(ctx context.Context) (string, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	GetByID(ctx context.Context, id int64) (*models.Account, error)
}

// MapRoleLabel resolves a free-text role label to a seeded role name.
// The mapping is case-sensitive and closed; "chief" and "teacher" both
// resolve to TEACHER. Unrecognized labels fall back to STUDENT rather than
// failing -- longstanding behavior the API's clients rely on.
func MapRoleLabel(label string) models.RoleName {
	switch label {
	case "administrator":
		return models.RoleAdministrator
	case "staff":
		return models.RoleStaff
	case "chief", "teacher":
		return models.RoleTeacher
	case "student":
		return models.RoleStudent
	default:
		return models.RoleStudent
	}
}

// ProvisioningService creates accounts with exactly one role and the
// matching owner record in a single transaction.
type ProvisioningService struct {
	roles    RoleDirectory
	accounts AccountStore
	logger   zerolog.Logger
}

// NewProvisioningService creates a new ProvisioningService
func NewProvisioningService(roles RoleDirectory, accounts AccountStore, logger zerolog.Logger) *ProvisioningService {
	return &ProvisioningService{
		roles:    roles,
		accounts: accounts,
		logger:   logger,
	}
}

// Provision resolves the role label, assigns the role to the account and
// persists the account together with its owner record. The owner record is
// keyed on the resolved role, not the original label. Returns the created
// owner record (nil for administrators, which carry none).
func (s *ProvisioningService) Provision(ctx context.Context, account *models.Account, roleLabel string) (models.OwnerRecord, error) {
	roleName := MapRoleLabel(roleLabel)
	if roleName == models.RoleStudent && roleLabel != "student" {
		s.logger.Warn().Str("roleLabel", roleLabel).Msg("Unrecognized role label, defaulting to student")
	}

	role, err := s.roles.GetByName(ctx, roleName)
	if err != nil {
		// A missing seeded role means the registry was never seeded
		return nil, fmt.Errorf("resolving role %q: %w", roleName, err)
	}
	account.Role = *role

	var owner models.OwnerRecord
	switch role.Name {
	case models.RoleStaff:
		owner = &models.StaffMember{}

	case models.RoleStudent:
		registrationNumber, err := s.accounts.NextRegistrationNumber(ctx)
		if err != nil {
			return nil, fmt.Errorf("allocating registration number: %w", err)
		}
		owner = &models.Student{RegistrationNumber: registrationNumber}

	case models.RoleTeacher, models.RoleChief:
		owner = &models.Teacher{}
	}

	if err := s.accounts.CreateWithOwner(ctx, account, owner); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("accountID", account.ID).
		Str("role", string(account.Role.Name)).
		Msg("Account provisioned with owner record")

	return owner, nil
}
