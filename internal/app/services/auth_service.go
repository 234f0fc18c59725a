package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/berkecan/unienroll/internal/app/models"
	"github.com/berkecan/unienroll/internal/app/models/dto"
	"github.com/berkecan/unienroll/internal/pkg/apperrors"
	"github.com/berkecan/unienroll/internal/pkg/auth"
)

// RefreshTokenStore persists opaque refresh tokens
type RefreshTokenStore interface {
	CreateToken(ctx context.Context, token string, accountID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (int64, time.Time, error)
	RevokeToken(ctx context.Context, token string) error
}

// AuthService handles signup, signin and refresh token rotation
type AuthService struct {
	provisioning *ProvisioningService
	accounts     AccountStore
	tokens       RefreshTokenStore
	jwtService   *auth.JWTService
	logger       zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	provisioning *ProvisioningService,
	accounts AccountStore,
	tokens RefreshTokenStore,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		provisioning: provisioning,
		accounts:     accounts,
		tokens:       tokens,
		jwtService:   jwtService,
		logger:       logger,
	}
}

// Signup registers a new account and provisions its owner record.
func (s *AuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error) {
	// Pre-checks give clean errors without burning a registration number;
	// the unique constraints remain the final guard under races.
	exists, err := s.accounts.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrUsernameExists
	}

	exists, err = s.accounts.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Birth date must be in yyyy-MM-dd format")
	}
	account.BirthDate = birthDate

	owner, err := s.provisioning.Provision(ctx, account, req.Role)
	if err != nil {
		return nil, err
	}

	resp := &dto.SignupResponse{
		AccountID: account.ID,
		Username:  account.Username,
		Role:      string(account.Role.Name),
	}
	if student, ok := owner.(*models.Student); ok {
		resp.RegistrationNumber = student.RegistrationNumber
	}

	return resp, nil
}

// Login verifies credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.SigninResponse, error) {
	account, err := s.accounts.GetByUsername(ctx, req.Username)
	if err != nil {
		// Do not leak whether the username exists
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := auth.CheckPassword(account.Password, req.Password); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, account)
}

// RefreshToken rotates a refresh token: the presented token is revoked and a
// fresh pair is issued. A revoked or expired token is rejected.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.SigninResponse, error) {
	accountID, _, err := s.tokens.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.RevokeToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, account)
}

// Logout revokes the presented refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.RevokeToken(ctx, refreshToken)
}

func (s *AuthService) issueTokens(ctx context.Context, account *models.Account) (*dto.SigninResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(account)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.CreateToken(ctx, refreshToken, account.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	resp := &dto.SigninResponse{
		Token: dto.TokenResponse{
			AccessToken:           accessToken,
			TokenType:             "Bearer",
			ExpiresIn:             int64(expiresIn),
			RefreshToken:          refreshToken,
			RefreshTokenExpiresIn: int64(refreshExpiresIn),
		},
		ID:        account.ID,
		Username:  account.Username,
		Email:     account.Email,
		Role:      string(account.Role.Name),
		FirstName: account.FirstName,
		LastName:  account.LastName,
	}
	if !account.BirthDate.IsZero() {
		resp.BirthDate = account.BirthDate.Format("2006-01-02")
	}

	s.logger.Debug().Int64("accountID", account.ID).Msg("Issued token pair")
	return resp, nil
}
