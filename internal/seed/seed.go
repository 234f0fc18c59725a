package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/berkecan/unienroll/internal/app/models"
)

// CreateDefaultData seeds the role registry and, when the catalog is empty,
// a demo specialization with its courses. Roles are mandatory: provisioning
// resolves them by name at signup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	if err := seedRoles(ctx, dbPool); err != nil {
		return fmt.Errorf("seeding roles: %w", err)
	}
	lgr.Info().Msg("Role registry seeded")

	seeded, err := seedDemoCatalog(ctx, dbPool)
	if err != nil {
		return fmt.Errorf("seeding demo catalog: %w", err)
	}
	if seeded {
		lgr.Info().Msg("Demo specialization catalog created")
	}

	return nil
}

func seedRoles(ctx context.Context, dbPool *pgxpool.Pool) error {
	roleNames := []models.RoleName{
		models.RoleAdministrator,
		models.RoleStaff,
		models.RoleTeacher,
		models.RoleChief,
		models.RoleStudent,
	}

	for _, name := range roleNames {
		_, err := dbPool.Exec(ctx, `
			INSERT INTO roles (name) VALUES ($1)
			ON CONFLICT ON CONSTRAINT roles_name_key DO NOTHING`,
			string(name))
		if err != nil {
			return err
		}
	}
	return nil
}

func seedDemoCatalog(ctx context.Context, dbPool *pgxpool.Pool) (bool, error) {
	var count int
	if err := dbPool.QueryRow(ctx, `SELECT COUNT(*) FROM specializations`).Scan(&count); err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	var specializationID int64
	err := dbPool.QueryRow(ctx, `
		INSERT INTO specializations (name, semester_count)
		VALUES ('Computer Science', 6)
		RETURNING id`).Scan(&specializationID)
	if err != nil {
		return false, err
	}

	courses := []struct {
		name     string
		semester int
		optional bool
	}{
		{"Programming Fundamentals", 1, false},
		{"Discrete Mathematics", 1, false},
		{"Data Structures", 2, false},
		{"Computer Architecture", 2, false},
		{"Algorithms", 3, false},
		{"Databases", 3, false},
		{"Operating Systems", 4, false},
		{"Computer Networks", 4, false},
		{"Distributed Systems", 5, false},
		{"Machine Learning", 5, true},
		{"Computer Graphics", 5, true},
		{"Compilers", 6, false},
		{"Information Security", 6, true},
		{"Cloud Computing", 6, true},
	}

	for _, course := range courses {
		_, err := dbPool.Exec(ctx, `
			INSERT INTO courses (specialization_id, name, semester_number, is_optional)
			VALUES ($1, $2, $3, $4)`,
			specializationID, course.name, course.semester, course.optional)
		if err != nil {
			return false, err
		}
	}

	return true, nil
}
