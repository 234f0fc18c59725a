package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berkecan/unienroll/internal/app/models/dto"
	"github.com/berkecan/unienroll/internal/pkg/apperrors"
	"github.com/berkecan/unienroll/internal/pkg/auth"
)

type fakeTokenStore struct {
	tokens map[string]struct {
		accountID int64
		expiry    time.Time
		revoked   bool
	}
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]struct {
		accountID int64
		expiry    time.Time
		revoked   bool
	}{}}
}

func (s *fakeTokenStore) CreateToken(_ context.Context, token string, accountID int64, expiryDate time.Time) error {
	s.tokens[token] = struct {
		accountID int64
		expiry    time.Time
		revoked   bool
	}{accountID, expiryDate, false}
	return nil
}

func (s *fakeTokenStore) GetTokenByValue(_ context.Context, token string) (int64, time.Time, error) {
	entry, ok := s.tokens[token]
	if !ok {
		return 0, time.Time{}, apperrors.ErrTokenNotFound
	}
	if entry.revoked {
		return 0, time.Time{}, apperrors.ErrTokenRevoked
	}
	if entry.expiry.Before(time.Now()) {
		return 0, time.Time{}, apperrors.ErrTokenExpired
	}
	return entry.accountID, entry.expiry, nil
}

func (s *fakeTokenStore) RevokeToken(_ context.Context, token string) error {
	entry, ok := s.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	entry.revoked = true
	s.tokens[token] = entry
	return nil
}

func newAuthFixture() (*fakeAccountStore, *fakeTokenStore, *AuthService) {
	accounts := newFakeAccountStore()
	tokens := newFakeTokenStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "unienroll.test",
	})
	provisioning := NewProvisioningService(newFakeRoleDirectory(), accounts, zerolog.Nop())
	svc := NewAuthService(provisioning, accounts, tokens, jwtService, zerolog.Nop())
	return accounts, tokens, svc
}

func signupRequest(username string) *dto.SignupRequest {
	return &dto.SignupRequest{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "hunter2hunter2",
		FirstName: "Ana",
		LastName:  "Pop",
		BirthDate: "2001-09-14",
		Role:      "student",
	}
}

func TestSignupCreatesStudentWithRegistrationNumber(t *testing.T) {
	_, _, svc := newAuthFixture()

	resp, err := svc.Signup(context.Background(), signupRequest("ana"))
	require.NoError(t, err)

	assert.Equal(t, "ana", resp.Username)
	assert.Equal(t, "STUDENT", resp.Role)
	assert.NotEmpty(t, resp.RegistrationNumber)
	assert.NotZero(t, resp.AccountID)
}

func TestSignupHashesPassword(t *testing.T) {
	accounts, _, svc := newAuthFixture()

	_, err := svc.Signup(context.Background(), signupRequest("ana"))
	require.NoError(t, err)

	account, err := accounts.GetByUsername(context.Background(), "ana")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", account.Password)
	assert.NoError(t, auth.CheckPassword(account.Password, "hunter2hunter2"))
}

func TestSignupDuplicateUsername(t *testing.T) {
	_, _, svc := newAuthFixture()

	_, err := svc.Signup(context.Background(), signupRequest("ana"))
	require.NoError(t, err)

	req := signupRequest("ana")
	req.Email = "other@example.com"
	_, err = svc.Signup(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrUsernameExists)
}

func TestSignupDuplicateEmail(t *testing.T) {
	_, _, svc := newAuthFixture()

	_, err := svc.Signup(context.Background(), signupRequest("ana"))
	require.NoError(t, err)

	req := signupRequest("bianca")
	req.Email = "ana@example.com"
	_, err = svc.Signup(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrEmailExists)
}

func TestSignupInvalidBirthDate(t *testing.T) {
	_, _, svc := newAuthFixture()

	req := signupRequest("ana")
	req.BirthDate = "14/09/2001"
	_, err := svc.Signup(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestLoginIssuesTokenPair(t *testing.T) {
	_, tokens, svc := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupRequest("ana"))
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Username: "ana", Password: "hunter2hunter2"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.NotEmpty(t, resp.Token.RefreshToken)
	assert.Equal(t, "STUDENT", resp.Role)
	assert.Equal(t, "2001-09-14", resp.BirthDate)
	assert.Contains(t, tokens.tokens, resp.Token.RefreshToken)
}

func TestLoginWrongPassword(t *testing.T) {
	_, _, svc := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupRequest("ana"))
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "ana", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownUsername(t *testing.T) {
	_, _, svc := newAuthFixture()
	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "ghost", Password: "whatever"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRefreshTokenRotation(t *testing.T) {
	_, tokens, svc := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupRequest("ana"))
	require.NoError(t, err)

	signin, err := svc.Login(ctx, &dto.LoginRequest{Username: "ana", Password: "hunter2hunter2"})
	require.NoError(t, err)
	oldToken := signin.Token.RefreshToken

	refreshed, err := svc.RefreshToken(ctx, oldToken)
	require.NoError(t, err)
	assert.NotEqual(t, oldToken, refreshed.Token.RefreshToken)

	// The rotated-out token no longer works
	_, err = svc.RefreshToken(ctx, oldToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	assert.True(t, tokens.tokens[oldToken].revoked)
}

func TestRefreshUnknownToken(t *testing.T) {
	_, _, svc := newAuthFixture()
	_, err := svc.RefreshToken(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}
