package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berkecan/unienroll/internal/app/models"
	"github.com/berkecan/unienroll/internal/pkg/apperrors"
)

type fakeStudentStore struct {
	students map[int64]*models.Student
}

func (s *fakeStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	student, ok := s.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

func (s *fakeStudentStore) GetByAccountID(_ context.Context, accountID int64) (*models.Student, error) {
	for _, student := range s.students {
		if student.AccountID == accountID {
			return student, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

type fakeSpecializationStore struct {
	specializations map[int64]*models.Specialization
	courses         []*models.Course
}

func (s *fakeSpecializationStore) GetByID(_ context.Context, id int64) (*models.Specialization, error) {
	specialization, ok := s.specializations[id]
	if !ok {
		return nil, apperrors.ErrSpecializationNotFound
	}
	return specialization, nil
}

func (s *fakeSpecializationStore) GetAll(_ context.Context) ([]*models.Specialization, error) {
	var all []*models.Specialization
	for _, specialization := range s.specializations {
		all = append(all, specialization)
	}
	return all, nil
}

func (s *fakeSpecializationStore) ListCourses(_ context.Context, specializationID int64, semester *int, optionalOnly bool) ([]*models.Course, error) {
	var result []*models.Course
	for _, course := range s.courses {
		if course.SpecializationID != specializationID {
			continue
		}
		if semester != nil && course.SemesterNumber != *semester {
			continue
		}
		if optionalOnly && !course.IsOptional {
			continue
		}
		result = append(result, course)
	}
	return result, nil
}

type fakeContractStore struct {
	contracts []*models.Contract
	nextID    int64
}

func (s *fakeContractStore) Create(_ context.Context, contract *models.Contract) error {
	for _, existing := range s.contracts {
		if existing.StudentID == contract.StudentID &&
			existing.SpecializationID == contract.SpecializationID &&
			existing.SemesterNumber == contract.SemesterNumber {
			return apperrors.ErrContractAlreadyExists
		}
	}
	s.nextID++
	contract.ID = s.nextID
	contract.CreatedAt = time.Now()
	s.contracts = append(s.contracts, contract)
	return nil
}

func (s *fakeContractStore) GetLatest(_ context.Context, studentID, specializationID int64) (*models.Contract, error) {
	var latest *models.Contract
	for _, contract := range s.contracts {
		if contract.StudentID != studentID || contract.SpecializationID != specializationID {
			continue
		}
		if latest == nil || contract.SemesterNumber > latest.SemesterNumber {
			latest = contract
		}
	}
	return latest, nil
}

func (s *fakeContractStore) ListByStudent(_ context.Context, studentID int64) ([]*models.Contract, error) {
	var result []*models.Contract
	for _, contract := range s.contracts {
		if contract.StudentID == studentID {
			result = append(result, contract)
		}
	}
	return result, nil
}

type fakeGradeStore struct {
	grades []*models.Grade
}

func (s *fakeGradeStore) ListForSpecialization(_ context.Context, studentID, specializationID int64) ([]*models.Grade, error) {
	var result []*models.Grade
	for _, grade := range s.grades {
		if grade.StudentID == studentID && grade.Course != nil &&
			grade.Course.SpecializationID == specializationID {
			result = append(result, grade)
		}
	}
	return result, nil
}

// passthroughCatalog serves courses straight from the specialization store
type passthroughCatalog struct {
	specializations *fakeSpecializationStore
}

func (c *passthroughCatalog) CoursesForSemester(ctx context.Context, specializationID int64, semester int) ([]*models.Course, error) {
	return c.specializations.ListCourses(ctx, specializationID, &semester, false)
}

func (c *passthroughCatalog) OptionalCourses(ctx context.Context, specializationID int64) ([]*models.Course, error) {
	return c.specializations.ListCourses(ctx, specializationID, nil, true)
}

type stubRenderer struct {
	err      error
	rendered int
}

func (r *stubRenderer) RenderContract(doc *ContractDocument) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.rendered++
	return []byte("%PDF-stub"), nil
}

type memoryFileStore struct {
	files map[string][]byte
	err   error
}

func (s *memoryFileStore) Save(filename string, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.files == nil {
		s.files = map[string][]byte{}
	}
	s.files[filename] = data
	return "uploads/" + filename, nil
}

type enrollmentFixture struct {
	students  *fakeStudentStore
	specs     *fakeSpecializationStore
	contracts *fakeContractStore
	grades    *fakeGradeStore
	renderer  *stubRenderer
	storage   *memoryFileStore
	svc       *EnrollmentService
}

func newEnrollmentFixture() *enrollmentFixture {
	students := &fakeStudentStore{students: map[int64]*models.Student{
		1: {
			ID:                 1,
			AccountID:          10,
			RegistrationNumber: "2026000001",
			Account:            &models.Account{ID: 10, FirstName: "Ana", LastName: "Pop"},
		},
	}}
	specs := &fakeSpecializationStore{
		specializations: map[int64]*models.Specialization{
			1: {ID: 1, Name: "Computer Science", SemesterCount: 6},
		},
		courses: []*models.Course{
			{ID: 1, SpecializationID: 1, Name: "Programming Fundamentals", SemesterNumber: 1},
			{ID: 2, SpecializationID: 1, Name: "Discrete Mathematics", SemesterNumber: 1},
			{ID: 3, SpecializationID: 1, Name: "Data Structures", SemesterNumber: 2},
			{ID: 4, SpecializationID: 1, Name: "Machine Learning", SemesterNumber: 5, IsOptional: true},
		},
	}
	contracts := &fakeContractStore{}
	grades := &fakeGradeStore{}
	renderer := &stubRenderer{}
	storage := &memoryFileStore{}

	return &enrollmentFixture{
		students:  students,
		specs:     specs,
		contracts: contracts,
		grades:    grades,
		renderer:  renderer,
		storage:   storage,
		svc: NewEnrollmentService(
			students, specs, contracts, grades,
			&passthroughCatalog{specializations: specs},
			renderer, storage, zerolog.Nop(),
		),
	}
}

func TestValidateProgressionFirstSemester(t *testing.T) {
	f := newEnrollmentFixture()
	assert.NoError(t, f.svc.ValidateProgression(context.Background(), 1, 1, 1))
}

func TestValidateProgressionSkippingAhead(t *testing.T) {
	f := newEnrollmentFixture()
	err := f.svc.ValidateProgression(context.Background(), 1, 1, 2)
	assert.ErrorIs(t, err, apperrors.ErrPrerequisiteContractMissing)
}

func TestValidateProgressionNextSemester(t *testing.T) {
	f := newEnrollmentFixture()
	require.NoError(t, f.contracts.Create(context.Background(), &models.Contract{
		StudentID: 1, SpecializationID: 1, SemesterNumber: 1,
	}))

	assert.NoError(t, f.svc.ValidateProgression(context.Background(), 1, 1, 2))
	assert.ErrorIs(t, f.svc.ValidateProgression(context.Background(), 1, 1, 3),
		apperrors.ErrPrerequisiteContractMissing)
}

func TestValidateProgressionDuplicateSemester(t *testing.T) {
	f := newEnrollmentFixture()
	require.NoError(t, f.contracts.Create(context.Background(), &models.Contract{
		StudentID: 1, SpecializationID: 1, SemesterNumber: 1,
	}))
	require.NoError(t, f.contracts.Create(context.Background(), &models.Contract{
		StudentID: 1, SpecializationID: 1, SemesterNumber: 2,
	}))

	assert.ErrorIs(t, f.svc.ValidateProgression(context.Background(), 1, 1, 2),
		apperrors.ErrContractAlreadyExists)
}

func TestValidateProgressionFirstSemesterIgnoresHistory(t *testing.T) {
	f := newEnrollmentFixture()
	require.NoError(t, f.contracts.Create(context.Background(), &models.Contract{
		StudentID: 1, SpecializationID: 1, SemesterNumber: 1,
	}))
	require.NoError(t, f.contracts.Create(context.Background(), &models.Contract{
		StudentID: 1, SpecializationID: 1, SemesterNumber: 2,
	}))

	assert.NoError(t, f.svc.ValidateProgression(context.Background(), 1, 1, 1))
}

func TestValidateProgressionSemesterBounds(t *testing.T) {
	f := newEnrollmentFixture()
	assert.ErrorIs(t, f.svc.ValidateProgression(context.Background(), 1, 1, 0),
		apperrors.ErrValidationFailed)
	assert.ErrorIs(t, f.svc.ValidateProgression(context.Background(), 1, 1, 7),
		apperrors.ErrValidationFailed)
}

func TestLatestContractNoneIsNil(t *testing.T) {
	f := newEnrollmentFixture()
	latest, err := f.svc.LatestContract(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestLatestContractPicksHighestSemester(t *testing.T) {
	f := newEnrollmentFixture()
	for semester := 1; semester <= 3; semester++ {
		require.NoError(t, f.contracts.Create(context.Background(), &models.Contract{
			StudentID: 1, SpecializationID: 1, SemesterNumber: semester,
		}))
	}

	latest, err := f.svc.LatestContract(context.Background(), 1, 1)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 3, latest.SemesterNumber)
}

func TestCoursesForCurrentSemesterWithoutContract(t *testing.T) {
	f := newEnrollmentFixture()
	_, err := f.svc.CoursesForCurrentSemester(context.Background(), 1, 1)
	assert.ErrorIs(t, err, apperrors.ErrContractNotFound)
}

func TestCoursesForCurrentSemester(t *testing.T) {
	f := newEnrollmentFixture()
	require.NoError(t, f.contracts.Create(context.Background(), &models.Contract{
		StudentID: 1, SpecializationID: 1, SemesterNumber: 2,
	}))

	courses, err := f.svc.CoursesForCurrentSemester(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Data Structures", courses[0].Name)
}

func TestGenerateContractRecordsLedgerEntry(t *testing.T) {
	f := newEnrollmentFixture()

	filename, document, err := f.svc.GenerateContract(context.Background(), 1, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "Pop-Ana_Computer-Science_1.pdf", filename)
	assert.NotEmpty(t, document)
	assert.Len(t, f.contracts.contracts, 1)
}

func TestGenerateContractRenderFailureLeavesNoRecord(t *testing.T) {
	f := newEnrollmentFixture()
	f.renderer.err = errors.New("font table corrupted")

	_, _, err := f.svc.GenerateContract(context.Background(), 1, 1, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrRenderingFailure)
	assert.Empty(t, f.contracts.contracts, "rendering failure must not create a contract")
}

func TestGenerateContractProgressionGate(t *testing.T) {
	f := newEnrollmentFixture()

	_, _, err := f.svc.GenerateContract(context.Background(), 1, 1, 3)
	assert.ErrorIs(t, err, apperrors.ErrPrerequisiteContractMissing)
	assert.Zero(t, f.renderer.rendered, "no rendering before the progression gate")
}

func TestGenerateContractUnknownStudent(t *testing.T) {
	f := newEnrollmentFixture()
	_, _, err := f.svc.GenerateContract(context.Background(), 99, 1, 1)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestUploadContractStoresUnderCanonicalName(t *testing.T) {
	f := newEnrollmentFixture()

	filename, err := f.svc.UploadContract(context.Background(), 1, 1, 2, []byte("signed"))
	require.NoError(t, err)
	assert.Equal(t, "Pop-Ana_Computer-Science_2.pdf", filename)
	assert.Equal(t, []byte("signed"), f.storage.files[filename])
}

func TestUploadContractStorageFailureSurfaces(t *testing.T) {
	f := newEnrollmentFixture()
	f.storage.err = errors.New("disk full")

	_, err := f.svc.UploadContract(context.Background(), 1, 1, 2, []byte("signed"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStorageFailure)
}

func TestGradesForJoinsCourseSemester(t *testing.T) {
	f := newEnrollmentFixture()
	f.grades.grades = []*models.Grade{
		{StudentID: 1, CourseID: 1, Score: 9.5, Course: f.specs.courses[0]},
		{StudentID: 1, CourseID: 3, Score: 7, Course: f.specs.courses[2]},
	}

	grades, err := f.svc.GradesFor(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Len(t, grades, 2)
	assert.Equal(t, 1, grades[0].Course.SemesterNumber)
	assert.Equal(t, 2, grades[1].Course.SemesterNumber)
}

func TestSpecializationsOfDeduplicates(t *testing.T) {
	f := newEnrollmentFixture()
	spec := f.specs.specializations[1]
	for semester := 1; semester <= 2; semester++ {
		contract := &models.Contract{
			StudentID: 1, SpecializationID: 1, SemesterNumber: semester,
			Specialization: spec,
		}
		require.NoError(t, f.contracts.Create(context.Background(), contract))
	}

	specializations, err := f.svc.SpecializationsOf(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, specializations, 1)
}

func TestContractFileNameHyphenatesSpecialization(t *testing.T) {
	student := &models.Student{Account: &models.Account{FirstName: "Ion", LastName: "Dragomir"}}
	spec := &models.Specialization{Name: "Applied Software Engineering"}
	assert.Equal(t, "Dragomir-Ion_Applied-Software-Engineering_3.pdf", ContractFileName(student, spec, 3))
}
