package middleware

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/berkecan/unienroll/internal/app/models/dto"
	"github.com/berkecan/unienroll/internal/pkg/apperrors"
)

// HandleAPIError maps service errors to API responses. Controllers call it
// for every error coming back from a service or repository.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrAccountNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrTeacherNotFound),
		errors.Is(err, apperrors.ErrSpecializationNotFound),
		errors.Is(err, apperrors.ErrCourseNotFound),
		errors.Is(err, apperrors.ErrContractNotFound):
		respond(c, 404, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error()))

	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, 403, dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied"))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, 401, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"))

	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, 401, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired"))

	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(c, 401, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token"))

	case errors.Is(err, apperrors.ErrTokenNotFound):
		respond(c, 401, dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found"))

	case errors.Is(err, apperrors.ErrTokenRevoked):
		respond(c, 401, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Token revoked"))

	case errors.Is(err, apperrors.ErrValidationFailed):
		respond(c, 400, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error()))

	case errors.Is(err, apperrors.ErrUsernameExists):
		respond(c, 409, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Username already exists"))

	case errors.Is(err, apperrors.ErrEmailExists):
		respond(c, 409, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists"))

	case errors.Is(err, apperrors.ErrRegistrationNumberExists):
		respond(c, 409, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Registration number already in use"))

	case errors.Is(err, apperrors.ErrContractAlreadyExists):
		respond(c, 409, dto.NewErrorDetail(dto.ErrorCodeDuplicateContract, "Contract for this semester already exists"))

	case errors.Is(err, apperrors.ErrPrerequisiteContractMissing):
		respond(c, 409, dto.NewErrorDetail(dto.ErrorCodePrerequisiteMissing, "Contract for the previous semester is missing"))

	case errors.Is(err, apperrors.ErrDuplicateRank):
		respond(c, 409, dto.NewErrorDetail(dto.ErrorCodeDuplicateRank, "Preference ranks must be unique"))

	case errors.Is(err, apperrors.ErrStorageFailure):
		respond(c, 502, dto.NewErrorDetail(dto.ErrorCodeStorageFailure, "File storage failed"))

	case errors.Is(err, apperrors.ErrRenderingFailure):
		respond(c, 502, dto.NewErrorDetail(dto.ErrorCodeRenderFailure, "Contract rendering failed"))

	default:
		respond(c, 500, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"))
	}
}

func respond(c *gin.Context, status int, detail *dto.ErrorDetail) {
	c.JSON(status, dto.APIResponse{
		Error:     detail,
		Timestamp: time.Now(),
	})
}
