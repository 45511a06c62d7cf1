package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "goldbook/internal/errors"
	"goldbook/internal/identity"
	"goldbook/internal/logger"
	"goldbook/internal/middleware"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// getSession builds the caller's session from the values AuthMiddleware set.
func getSession(c *gin.Context) (identity.Session, error) {
	userID, err := getUserID(c)
	if err != nil {
		return identity.Session{}, err
	}
	return identity.Session{UserID: userID, Token: c.GetString(middleware.TokenKey)}, nil
}

// bindingError turns a binding failure into a validation error that names
// the first offending field.
func bindingError(err error) *apperrors.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperrors.WithField(apperrors.ErrValidation, fe.Field(), validationMessage(fe))
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "trade_type":
		return fe.Field() + " must be buy or sell"
	case "calendar_date":
		return fe.Field() + " must be YYYY-MM-DD or RFC 3339"
	case "email":
		return fe.Field() + " must be a valid email address"
	default:
		return fe.Field() + " is invalid"
	}
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		detail := gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		}
		if appErr.Field != "" {
			detail["field"] = appErr.Field
		}
		c.JSON(appErr.StatusCode, gin.H{"error": detail})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
