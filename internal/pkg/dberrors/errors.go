package dberrors

import (
	"errors"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yigit/devcamper/internal/pkg/apperrors"
)

// duplicateKeyCode is the server code for unique index violations
const duplicateKeyCode = 11000

// dupKeyPattern matches the "dup key: { title: "T1" }" tail of E11000 messages
var dupKeyPattern = regexp.MustCompile(`dup key: \{\s*"?([^":\s]+)"?\s*:\s*(.*?)\s*\}`)

// IsDuplicateKeyError checks if the error is a MongoDB unique index violation.
func IsDuplicateKeyError(err error) bool {
	return err != nil && mongo.IsDuplicateKeyError(err)
}

// DuplicateKey extracts the offending field and value of a unique index
// violation. The server's keyValue document is preferred; the errmsg text is
// parsed as a fallback.
func DuplicateKey(err error) (field string, value interface{}, ok bool) {
	if !IsDuplicateKeyError(err) {
		return "", nil, false
	}

	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			if we.Code != duplicateKeyCode {
				continue
			}
			if field, value, ok := fromKeyValue(we.Raw); ok {
				return field, value, true
			}
			if field, value, ok := fromMessage(we.Message); ok {
				return field, value, true
			}
		}
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		if field, value, ok := fromMessage(cmdErr.Message); ok {
			return field, value, true
		}
	}

	return fromMessage(err.Error())
}

// Translate rewrites a unique index violation into an
// *apperrors.DuplicateFieldError; other errors are returned unchanged.
// fallbackField names the field reported when the driver error carries no key.
func Translate(err error, fallbackField string, fallbackValue interface{}) error {
	if !IsDuplicateKeyError(err) {
		return err
	}
	if field, value, ok := DuplicateKey(err); ok {
		return apperrors.NewDuplicateFieldError(field, value)
	}
	return apperrors.NewDuplicateFieldError(fallbackField, fallbackValue)
}

func fromKeyValue(raw bson.Raw) (string, interface{}, bool) {
	if len(raw) == 0 {
		return "", nil, false
	}
	kv, err := raw.LookupErr("keyValue")
	if err != nil {
		return "", nil, false
	}
	doc, ok := kv.DocumentOK()
	if !ok {
		return "", nil, false
	}
	elems, err := doc.Elements()
	if err != nil || len(elems) == 0 {
		return "", nil, false
	}
	val := elems[0].Value()
	if s, ok := val.StringValueOK(); ok {
		return elems[0].Key(), s, true
	}
	return elems[0].Key(), val.String(), true
}

func fromMessage(msg string) (string, interface{}, bool) {
	m := dupKeyPattern.FindStringSubmatch(msg)
	if m == nil {
		return "", nil, false
	}
	return m[1], strings.Trim(m[2], `"`), true
}
