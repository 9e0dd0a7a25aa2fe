package middleware

import (
	"context"
	"strings"

	"github.com/ArowuTest/lottery-ticket-backend/internal/apperrors"
	"github.com/ArowuTest/lottery-ticket-backend/internal/models"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Header failure codes. Token failures come from the Authenticator.
const (
	CodeMissingHeader   = "missing_header"
	CodeMalformedHeader = "malformed_header"
	CodeEmptyToken      = "empty_token"
)

const adminContextKey = "admin"

// Authenticator resolves a bearer token to an admin
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.AdminUser, error)
}

// AdminAuthMiddleware rejects requests that do not carry a valid admin bearer token.
func AdminAuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		const bearerSchema = "Bearer "
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, apperrors.Auth(CodeMissingHeader, "No token provided"))
			return
		}
		if !strings.HasPrefix(authHeader, bearerSchema) {
			abort(c, apperrors.Auth(CodeMalformedHeader, "Authorization header must start with Bearer"))
			return
		}
		token := strings.TrimSpace(authHeader[len(bearerSchema):])
		if token == "" {
			abort(c, apperrors.Auth(CodeEmptyToken, "Token is empty"))
			return
		}

		admin, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			appErr := apperrors.As(err)
			log.WithFields(log.Fields{
				"code":      appErr.Code,
				"requestId": c.GetString(RequestIDKey),
			}).Warn("admin authentication failed")
			abort(c, appErr)
			return
		}

		c.Set(adminContextKey, admin)
		c.Next()
	}
}

// AdminFromContext returns the admin set by AdminAuthMiddleware.
func AdminFromContext(c *gin.Context) (*models.AdminUser, bool) {
	v, ok := c.Get(adminContextKey)
	if !ok {
		return nil, false
	}
	admin, ok := v.(*models.AdminUser)
	return admin, ok
}

func abort(c *gin.Context, appErr *apperrors.Error) {
	c.AbortWithStatusJSON(apperrors.HTTPStatus(appErr.Kind), gin.H{
		"message": appErr.Message,
		"code":    appErr.Code,
	})
}
