package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berkecan/unienroll/internal/app/models"
	"github.com/berkecan/unienroll/internal/pkg/apperrors"
)

type fakeRoleDirectory struct {
	roles map[models.RoleName]*models.Role
}

func newFakeRoleDirectory() *fakeRoleDirectory {
	roles := map[models.RoleName]*models.Role{}
	for i, name := range []models.RoleName{
		models.RoleAdministrator, models.RoleStaff,
		models.RoleTeacher, models.RoleChief, models.RoleStudent,
	} {
		roles[name] = &models.Role{ID: int64(i + 1), Name: name}
	}
	return &fakeRoleDirectory{roles: roles}
}

func (d *fakeRoleDirectory) GetByName(_ context.Context, name models.RoleName) (*models.Role, error) {
	role, ok := d.roles[name]
	if !ok {
		return nil, apperrors.ErrRoleNotFound
	}
	return role, nil
}

type fakeAccountStore struct {
	mu        sync.Mutex
	seq       int64
	nextID    int64
	accounts  map[string]*models.Account
	owners    map[int64]models.OwnerRecord
	createErr error
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{
		accounts: map[string]*models.Account{},
		owners:   map[int64]models.OwnerRecord{},
	}
}

func (s *fakeAccountStore) CreateWithOwner(_ context.Context, account *models.Account, owner models.OwnerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	if _, exists := s.accounts[account.Username]; exists {
		return apperrors.ErrUsernameExists
	}
	for _, existing := range s.accounts {
		if existing.Email == account.Email {
			return apperrors.ErrEmailExists
		}
	}
	s.nextID++
	account.ID = s.nextID
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	s.accounts[account.Username] = account
	switch o := owner.(type) {
	case *models.Student:
		o.AccountID = account.ID
	case *models.Teacher:
		o.AccountID = account.ID
	case *models.StaffMember:
		o.AccountID = account.ID
	}
	if owner != nil {
		s.owners[account.ID] = owner
	}
	return nil
}

func (s *fakeAccountStore) NextRegistrationNumber(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return fmt.Sprintf("%d%06d", time.Now().Year(), s.seq), nil
}

func (s *fakeAccountStore) UsernameExists(_ context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.accounts[username]
	return ok, nil
}

func (s *fakeAccountStore) EmailExists(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, account := range s.accounts {
		if account.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeAccountStore) GetByUsername(_ context.Context, username string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[username]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	return account, nil
}

func (s *fakeAccountStore) GetByID(_ context.Context, id int64) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, account := range s.accounts {
		if account.ID == id {
			return account, nil
		}
	}
	return nil, apperrors.ErrAccountNotFound
}

func TestMapRoleLabel(t *testing.T) {
	tests := []struct {
		label string
		want  models.RoleName
	}{
		{"administrator", models.RoleAdministrator},
		{"staff", models.RoleStaff},
		{"chief", models.RoleTeacher},
		{"teacher", models.RoleTeacher},
		{"student", models.RoleStudent},
		{"", models.RoleStudent},
		{"janitor", models.RoleStudent},
		{"STUDENT", models.RoleStudent}, // mapping is case-sensitive
		{"Teacher", models.RoleStudent},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MapRoleLabel(tt.label), "label %q", tt.label)
	}
}

func newProvisioningService(store *fakeAccountStore) *ProvisioningService {
	return NewProvisioningService(newFakeRoleDirectory(), store, zerolog.Nop())
}

func TestProvisionStudent(t *testing.T) {
	store := newFakeAccountStore()
	svc := newProvisioningService(store)

	account := &models.Account{Username: "ana", Email: "ana@example.com"}
	owner, err := svc.Provision(context.Background(), account, "student")
	require.NoError(t, err)

	student, ok := owner.(*models.Student)
	require.True(t, ok, "expected a student owner record, got %T", owner)
	assert.Equal(t, models.RoleStudent, account.Role.Name)
	assert.Equal(t, account.ID, student.AccountID)
	assert.NotEmpty(t, student.RegistrationNumber)
	assert.Contains(t, student.RegistrationNumber, fmt.Sprint(time.Now().Year()))
}

func TestProvisionUnknownLabelDefaultsToStudent(t *testing.T) {
	store := newFakeAccountStore()
	svc := newProvisioningService(store)

	account := &models.Account{Username: "bo", Email: "bo@example.com"}
	owner, err := svc.Provision(context.Background(), account, "superuser")
	require.NoError(t, err)

	assert.Equal(t, models.RoleStudent, account.Role.Name)
	assert.IsType(t, &models.Student{}, owner)
}

func TestProvisionTeacherLabels(t *testing.T) {
	for _, label := range []string{"teacher", "chief"} {
		store := newFakeAccountStore()
		svc := newProvisioningService(store)

		account := &models.Account{Username: "t-" + label, Email: label + "@example.com"}
		owner, err := svc.Provision(context.Background(), account, label)
		require.NoError(t, err)

		assert.Equal(t, models.RoleTeacher, account.Role.Name, "label %q", label)
		assert.IsType(t, &models.Teacher{}, owner)
	}
}

func TestProvisionStaff(t *testing.T) {
	store := newFakeAccountStore()
	svc := newProvisioningService(store)

	account := &models.Account{Username: "sam", Email: "sam@example.com"}
	owner, err := svc.Provision(context.Background(), account, "staff")
	require.NoError(t, err)

	assert.Equal(t, models.RoleStaff, account.Role.Name)
	assert.IsType(t, &models.StaffMember{}, owner)
}

func TestProvisionAdministratorHasNoOwnerRecord(t *testing.T) {
	store := newFakeAccountStore()
	svc := newProvisioningService(store)

	account := &models.Account{Username: "root", Email: "root@example.com"}
	owner, err := svc.Provision(context.Background(), account, "administrator")
	require.NoError(t, err)

	assert.Nil(t, owner)
	assert.Equal(t, models.RoleAdministrator, account.Role.Name)
	assert.NotZero(t, account.ID)
	assert.Empty(t, store.owners)
}

func TestProvisionMissingRoleSeed(t *testing.T) {
	store := newFakeAccountStore()
	dir := newFakeRoleDirectory()
	delete(dir.roles, models.RoleStudent)
	svc := NewProvisioningService(dir, store, zerolog.Nop())

	account := &models.Account{Username: "eva", Email: "eva@example.com"}
	_, err := svc.Provision(context.Background(), account, "student")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrRoleNotFound)
	assert.Zero(t, account.ID, "no account may be created without a role")
}

func TestProvisionDuplicateUsername(t *testing.T) {
	store := newFakeAccountStore()
	svc := newProvisioningService(store)

	first := &models.Account{Username: "dup", Email: "one@example.com"}
	_, err := svc.Provision(context.Background(), first, "student")
	require.NoError(t, err)

	second := &models.Account{Username: "dup", Email: "two@example.com"}
	_, err = svc.Provision(context.Background(), second, "student")
	assert.ErrorIs(t, err, apperrors.ErrUsernameExists)
}

func TestConcurrentRegistrationNumbersAreDistinct(t *testing.T) {
	store := newFakeAccountStore()
	svc := newProvisioningService(store)

	const n = 50
	results := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			account := &models.Account{
				Username: fmt.Sprintf("user%d", i),
				Email:    fmt.Sprintf("user%d@example.com", i),
			}
			owner, err := svc.Provision(context.Background(), account, "student")
			if err != nil {
				t.Error(err)
				return
			}
			results <- owner.(*models.Student).RegistrationNumber
		}(i)
	}
	wg.Wait()
	close(results)

	seen := map[string]bool{}
	for number := range results {
		assert.False(t, seen[number], "registration number %s allocated twice", number)
		seen[number] = true
	}
	assert.Len(t, seen, n)
}
