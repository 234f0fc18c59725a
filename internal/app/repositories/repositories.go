package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	RoleRepository           *RoleRepository
	AccountRepository        *AccountRepository
	StudentRepository        *StudentRepository
	TeacherRepository        *TeacherRepository
	SpecializationRepository *SpecializationRepository
	ContractRepository       *ContractRepository
	GradeRepository          *GradeRepository
	PreferenceRepository     *PreferenceRepository
	TokenRepository          *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		RoleRepository:           NewRoleRepository(db),
		AccountRepository:        NewAccountRepository(db),
		StudentRepository:        NewStudentRepository(db),
		TeacherRepository:        NewTeacherRepository(db),
		SpecializationRepository: NewSpecializationRepository(db),
		ContractRepository:       NewContractRepository(db),
		GradeRepository:          NewGradeRepository(db),
		PreferenceRepository:     NewPreferenceRepository(db),
		TokenRepository:          NewTokenRepository(db),
	}
}
