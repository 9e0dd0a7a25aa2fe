package handlers

import (
	"net/http"

	"github.com/ArowuTest/lottery-ticket-backend/internal/apperrors"
	"github.com/ArowuTest/lottery-ticket-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ErrorRenderer writes service errors as JSON responses.
// With HideDetails set, unexpected errors carry only a generic message.
type ErrorRenderer struct {
	HideDetails bool
}

// Render maps err to its status and body and aborts the request.
func (r ErrorRenderer) Render(c *gin.Context, err error) {
	appErr := apperrors.As(err)
	status := apperrors.HTTPStatus(appErr.Kind)

	body := gin.H{"message": appErr.Message, "code": appErr.Code}
	if appErr.Field != "" {
		body["field"] = appErr.Field
	}

	if appErr.Kind == apperrors.KindUnexpected || appErr.Kind == apperrors.KindConfig {
		_ = c.Error(err)
		log.WithError(err).WithField("requestId", c.GetString(middleware.RequestIDKey)).Error("request failed")
		if r.HideDetails {
			body["message"] = "Server error"
		} else if appErr.Err != nil {
			body["error"] = appErr.Err.Error()
		}
	}
	c.AbortWithStatusJSON(status, body)
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": message, "code": "invalid_input"})
}
