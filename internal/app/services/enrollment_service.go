package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/berkecan/unienroll/internal/app/models"
	"github.com/berkecan/unienroll/internal/pkg/apperrors"
)

// StudentStore resolves student owner records
type StudentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByAccountID(ctx context.Context, accountID int64) (*models.Student, error)
}

// SpecializationStore reads the specialization catalog
type SpecializationStore interface {
	GetByID(ctx context.Context, id int64) (*models.Specialization, error)
	GetAll(ctx context.Context) ([]*models.Specialization, error)
	ListCourses(ctx context.Context, specializationID int64, semester *int, optionalOnly bool) ([]*models.Course, error)
}

// ContractStore persists the append-only enrollment ledger
type ContractStore interface {
	Create(ctx context.Context, contract *models.Contract) error
	GetLatest(ctx context.Context, studentID, specializationID int64) (*models.Contract, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Contract, error)
}

// GradeStore reads recorded grades
type GradeStore interface {
	ListForSpecialization(ctx context.Context, studentID, specializationID int64) ([]*models.Grade, error)
}

// CourseCatalog serves course listings, possibly from a cache
type CourseCatalog interface {
	CoursesForSemester(ctx context.Context, specializationID int64, semester int) ([]*models.Course, error)
	OptionalCourses(ctx context.Context, specializationID int64) ([]*models.Course, error)
}

// ContractDocument carries everything the renderer needs for one contract
type ContractDocument struct {
	Student        *models.Student
	Specialization *models.Specialization
	Semester       int
	Courses        []*models.Course
	GeneratedAt    time.Time
}

// DocumentRenderer renders a contract document to a byte stream
type DocumentRenderer interface {
	RenderContract(doc *ContractDocument) ([]byte, error)
}

// ContractFileStore stores contract files under a caller-derived name
type ContractFileStore interface {
	Save(filename string, data []byte) (string, error)
}

// EnrollmentService implements contract progression, catalog reads and
// grade reads for a student within a specialization.
type EnrollmentService struct {
	students        StudentStore
	specializations SpecializationStore
	contracts       ContractStore
	grades          GradeStore
	catalog         CourseCatalog
	renderer        DocumentRenderer
	storage         ContractFileStore
	logger          zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	students StudentStore,
	specializations SpecializationStore,
	contracts ContractStore,
	grades GradeStore,
	catalog CourseCatalog,
	renderer DocumentRenderer,
	storage ContractFileStore,
	logger zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		students:        students,
		specializations: specializations,
		contracts:       contracts,
		grades:          grades,
		catalog:         catalog,
		renderer:        renderer,
		storage:         storage,
		logger:          logger,
	}
}

// LatestContract returns the student's highest-semester contract for the
// specialization, or nil when the student has never enrolled in it.
func (s *EnrollmentService) LatestContract(ctx context.Context, studentID, specializationID int64) (*models.Contract, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.contracts.GetLatest(ctx, studentID, specializationID)
}

// ContractsOf returns all contracts of a student across specializations
func (s *EnrollmentService) ContractsOf(ctx context.Context, studentID int64) ([]*models.Contract, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.contracts.ListByStudent(ctx, studentID)
}

// SpecializationsOf returns the specializations a student holds at least one
// contract in, deduplicated, in the ledger's listing order.
func (s *EnrollmentService) SpecializationsOf(ctx context.Context, studentID int64) ([]*models.Specialization, error) {
	contracts, err := s.ContractsOf(ctx, studentID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool, len(contracts))
	specializations := make([]*models.Specialization, 0, len(contracts))
	for _, contract := range contracts {
		if contract.Specialization == nil || seen[contract.SpecializationID] {
			continue
		}
		seen[contract.SpecializationID] = true
		specializations = append(specializations, contract.Specialization)
	}
	return specializations, nil
}

// CoursesForCurrentSemester returns the courses of the semester the student
// is currently contracted for in the specialization.
func (s *EnrollmentService) CoursesForCurrentSemester(ctx context.Context, studentID, specializationID int64) ([]*models.Course, error) {
	contract, err := s.LatestContract(ctx, studentID, specializationID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, apperrors.ErrContractNotFound
	}
	return s.catalog.CoursesForSemester(ctx, specializationID, contract.SemesterNumber)
}

// GradesFor returns the student's grades within the specialization, joined
// with each grade's course so callers see the course semester.
func (s *EnrollmentService) GradesFor(ctx context.Context, studentID, specializationID int64) ([]*models.Grade, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	if _, err := s.specializations.GetByID(ctx, specializationID); err != nil {
		return nil, err
	}
	return s.grades.ListForSpecialization(ctx, studentID, specializationID)
}

// ValidateProgression checks whether the student may contract for the target
// semester. Semester 1 always passes regardless of contract history; any
// later semester requires the latest contract to sit at exactly the
// preceding semester. A later semester already contracted is a duplicate,
// not a progression gap.
func (s *EnrollmentService) ValidateProgression(ctx context.Context, studentID, specializationID int64, targetSemester int) error {
	specialization, err := s.specializations.GetByID(ctx, specializationID)
	if err != nil {
		return err
	}
	if targetSemester < 1 || targetSemester > specialization.SemesterCount {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed,
			fmt.Sprintf("Semester must be between 1 and %d", specialization.SemesterCount))
	}

	latest, err := s.contracts.GetLatest(ctx, studentID, specializationID)
	if err != nil {
		return err
	}

	switch {
	case targetSemester == 1:
		// the first semester is always open; the unique constraint on the
		// contracts table remains the guard against a duplicate record
	case latest == nil:
		return apperrors.ErrPrerequisiteContractMissing
	case targetSemester <= latest.SemesterNumber:
		return apperrors.ErrContractAlreadyExists
	case targetSemester != latest.SemesterNumber+1:
		return apperrors.ErrPrerequisiteContractMissing
	}
	return nil
}

// GenerateContract validates progression, renders the contract document and
// only then records the contract. A rendering failure leaves the ledger
// untouched. Returns the rendered PDF with its canonical filename.
func (s *EnrollmentService) GenerateContract(ctx context.Context, studentID, specializationID int64, semester int) (string, []byte, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return "", nil, err
	}
	specialization, err := s.specializations.GetByID(ctx, specializationID)
	if err != nil {
		return "", nil, err
	}

	if err := s.ValidateProgression(ctx, studentID, specializationID, semester); err != nil {
		return "", nil, err
	}

	courses, err := s.catalog.CoursesForSemester(ctx, specializationID, semester)
	if err != nil {
		return "", nil, err
	}

	document, err := s.renderer.RenderContract(&ContractDocument{
		Student:        student,
		Specialization: specialization,
		Semester:       semester,
		Courses:        courses,
		GeneratedAt:    time.Now(),
	})
	if err != nil {
		return "", nil, apperrors.NewCustomError(apperrors.ErrRenderingFailure, err.Error())
	}

	contract := &models.Contract{
		StudentID:        studentID,
		SpecializationID: specializationID,
		SemesterNumber:   semester,
	}
	if err := s.contracts.Create(ctx, contract); err != nil {
		return "", nil, err
	}

	s.logger.Info().
		Int64("studentID", studentID).
		Int64("specializationID", specializationID).
		Int("semester", semester).
		Msg("Contract generated")

	return ContractFileName(student, specialization, semester), document, nil
}

// UploadContract stores a signed contract file under its canonical name.
// Storage failures propagate to the caller instead of being swallowed.
func (s *EnrollmentService) UploadContract(ctx context.Context, studentID, specializationID int64, semester int, data []byte) (string, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return "", err
	}
	specialization, err := s.specializations.GetByID(ctx, specializationID)
	if err != nil {
		return "", err
	}

	filename := ContractFileName(student, specialization, semester)
	path, err := s.storage.Save(filename, data)
	if err != nil {
		return "", apperrors.NewCustomError(apperrors.ErrStorageFailure, err.Error())
	}

	s.logger.Info().
		Int64("studentID", studentID).
		Str("path", path).
		Msg("Signed contract stored")

	return filename, nil
}

// ContractFileName derives the canonical contract filename:
// <LastName>-<FirstName>_<Specialization-with-hyphens>_<semester>.pdf
func ContractFileName(student *models.Student, specialization *models.Specialization, semester int) string {
	specName := strings.ReplaceAll(specialization.Name, " ", "-")
	last := student.Account.LastName
	first := student.Account.FirstName
	return fmt.Sprintf("%s-%s_%s_%d.pdf", last, first, specName, semester)
}
