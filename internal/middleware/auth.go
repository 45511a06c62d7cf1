package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "goldbook/internal/errors"
	"goldbook/internal/identity"
)

// Context keys set by AuthMiddleware.
const (
	UserIDKey = "userID"
	EmailKey  = "email"
	TokenKey  = "token"
)

// AuthMiddleware verifies the bearer token and sets the user in the context
func AuthMiddleware(issuer *identity.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWith(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Authorization header is required"))
			return
		}

		// Check if the header is in the correct format
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortWith(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid authorization header format"))
			return
		}

		claims, err := issuer.Validate(parts[1])
		if err != nil {
			abortWith(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid or expired token"))
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(EmailKey, claims.Email)
		c.Set(TokenKey, parts[1])
		c.Next()
	}
}

func abortWith(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
		"error": gin.H{"code": appErr.Code, "message": appErr.Message},
	})
}
