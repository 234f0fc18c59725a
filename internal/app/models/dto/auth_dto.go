package dto

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignupRequest represents a registration request. Role is a free-text
// label; unrecognized labels fall back to the student role.
type SignupRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	BirthDate string `json:"birthDate" binding:"required"` // yyyy-MM-dd
	Role      string `json:"role" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType"`
	ExpiresIn             int64  `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty"`
}

// RefreshTokenRequest represents a refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// SigninResponse carries the issued token together with the authenticated
// identity and its single role.
type SigninResponse struct {
	Token     TokenResponse `json:"token"`
	ID        int64         `json:"id"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	Role      string        `json:"role"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	BirthDate string        `json:"birthDate"`
}

// SignupResponse confirms a successful registration
type SignupResponse struct {
	AccountID int64  `json:"accountId"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	// RegistrationNumber is set only for student accounts
	RegistrationNumber string `json:"registrationNumber,omitempty"`
}
