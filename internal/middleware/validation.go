package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/yigit/devcamper/internal/pkg/apperrors"
)

// BindJSON decodes the request body into obj. Schema validation is left to
// the services so that updates can be validated against the merged
// document; only malformed bodies fail here.
func BindJSON(c *gin.Context, obj interface{}) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}

	if err := c.ShouldBindBodyWith(obj, binding.JSON); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &apperrors.StatusError{
			Err:        fmt.Errorf("%w: %v", apperrors.ErrBadRequest, err),
			StatusCode: http.StatusBadRequest,
			Message:    formatBindError(err),
		}
	}
	return nil
}

// formatBindError creates a human-readable message for a body decode failure
func formatBindError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("Invalid value for field %s: expected %s", typeErr.Field, typeErr.Type.String())
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return "Malformed JSON body"
	}
	return "Invalid request body"
}
