package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yigit/devcamper/internal/pkg/apperrors"
)

// Messages maps "<field>.<rule>" to the message reported when that rule
// fails, e.g. "title.required". Field names are the JSON names.
type Messages map[string]string

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct validates s against its validate tags. Failures are returned as an
// *apperrors.ValidationError holding one message per field, in declaration
// order.
func Struct(s interface{}, messages Messages) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}

	result := &apperrors.ValidationError{}
	seen := make(map[string]bool, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := baseField(fe.Field())
		if seen[field] {
			continue
		}
		seen[field] = true
		result.Add(field, messageFor(field, fe, messages))
	}
	return result
}

// baseField strips a slice index such as "careers[1]"
func baseField(field string) string {
	if i := strings.IndexByte(field, '['); i >= 0 {
		return field[:i]
	}
	return field
}

func messageFor(field string, fe validator.FieldError, messages Messages) string {
	if msg, ok := messages[field+"."+fe.Tag()]; ok {
		return msg
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Path `%s` is required.", field)
	case "oneof":
		return fmt.Sprintf("`%v` is not a valid enum value for path `%s`.", fe.Value(), field)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Path `%s` (`%v`) is longer than the maximum allowed length (%s).", field, fe.Value(), fe.Param())
		}
		return fmt.Sprintf("Path `%s` (%v) is more than maximum allowed value (%s).", field, fe.Value(), fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Path `%s` (`%v`) is shorter than the minimum allowed length (%s).", field, fe.Value(), fe.Param())
		}
		return fmt.Sprintf("Path `%s` (%v) is less than minimum allowed value (%s).", field, fe.Value(), fe.Param())
	case "email", "url", "http_url":
		return fmt.Sprintf("Path `%s` is invalid (%v).", field, fe.Value())
	default:
		return fmt.Sprintf("Path `%s` failed on the '%s' rule.", field, fe.Tag())
	}
}
