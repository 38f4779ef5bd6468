package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yigit/devcamper/internal/app/models/dto"
	"github.com/yigit/devcamper/internal/pkg/apperrors"
	"github.com/yigit/devcamper/internal/pkg/dberrors"
	"github.com/yigit/devcamper/internal/pkg/logger"
)

const (
	messageResourceNotFound = "resource not found"
	messageServerError      = "server error"
)

// Normalize classifies err and returns the HTTP status and client message.
// The first matching rule wins:
//  1. malformed identifier      -> 404 "resource not found"
//  2. schema validation failure -> 400, field messages joined by ", "
//  3. unique index violation    -> 400 naming the field and value
//  4. anything else             -> carried status (or 500) and message (or "server error")
func Normalize(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, messageServerError
	}

	var castErr *apperrors.CastError
	if errors.As(err, &castErr) {
		return http.StatusNotFound, messageResourceNotFound
	}

	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		message := strings.Join(validationErr.Messages(), ", ")
		if message == "" {
			message = validationErr.Error()
		}
		return http.StatusBadRequest, message
	}

	var dupErr *apperrors.DuplicateFieldError
	if errors.As(err, &dupErr) {
		return http.StatusBadRequest, dupErr.Error()
	}
	if dberrors.IsDuplicateKeyError(err) {
		if field, value, ok := dberrors.DuplicateKey(err); ok {
			return http.StatusBadRequest, fmt.Sprintf("duplicate field value is passed: { %s: %v }", field, value)
		}
		return http.StatusBadRequest, "duplicate field value is passed"
	}

	status := http.StatusInternalServerError
	message := err.Error()
	var statusErr *apperrors.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode != 0 {
			status = statusErr.StatusCode
		}
		message = statusErr.Error()
	}
	if message == "" {
		message = messageServerError
	}
	return status, message
}

// HandleAPIError is the single funnel every failure passes through before it
// reaches a client. It writes the {success:false, error} envelope.
func HandleAPIError(c *gin.Context, err error) {
	status, message := Normalize(err)

	lgr := logger.FromContext(c.Request.Context())
	event := lgr.Warn()
	if status >= http.StatusInternalServerError {
		event = lgr.Error()
	}
	event.Err(err).Int("status", status).Str("path", c.Request.URL.Path).Msg("Request failed")

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message))
}

// ErrorHandler forwards errors attached with c.Error to HandleAPIError when
// the handler did not write a response itself.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		HandleAPIError(c, c.Errors.Last().Err)
	}
}

// Recovery turns panics into a 500 envelope
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.FromContext(c.Request.Context()).Error().
			Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Msg("Recovered from panic")
		HandleAPIError(c, apperrors.NewStatusError(http.StatusInternalServerError, ""))
	})
}

// NoRoute answers unknown routes with a 404 envelope
func NoRoute(c *gin.Context) {
	HandleAPIError(c, apperrors.NewStatusError(http.StatusNotFound, "route not found"))
}
