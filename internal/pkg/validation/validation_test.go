package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/devcamper/internal/pkg/apperrors"
)

type sample struct {
	Title  *string  `json:"title" validate:"required,min=1"`
	Level  *string  `json:"level" validate:"required,oneof=low high"`
	Weeks  *int     `json:"weeks" validate:"required,min=1"`
	Tags   []string `json:"tags" validate:"omitempty,dive,oneof=a b"`
	Note   string   `json:"note" validate:"max=3"`
	Ignore string   `json:"-"`
}

var sampleMessages = Messages{
	"title.required": "Please add a title",
	"title.min":      "Please add a title",
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestStructValid(t *testing.T) {
	s := sample{Title: strPtr("t"), Level: strPtr("low"), Weeks: intPtr(2), Tags: []string{"a"}}
	assert.NoError(t, Struct(&s, sampleMessages))
}

func TestStructCollectsFieldsInOrder(t *testing.T) {
	err := Struct(&sample{Note: "toolong"}, sampleMessages)
	require.Error(t, err)

	var vErr *apperrors.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
	assert.Equal(t, []string{
		"Please add a title",
		"Path `level` is required.",
		"Path `weeks` is required.",
		"Path `note` (`toolong`) is longer than the maximum allowed length (3).",
	}, vErr.Messages())
}

func TestStructCustomMessageForBlankValue(t *testing.T) {
	s := sample{Title: strPtr(""), Level: strPtr("low"), Weeks: intPtr(1)}
	err := Struct(&s, sampleMessages)

	var vErr *apperrors.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{"Please add a title"}, vErr.Messages())
}

func TestStructEnumMessages(t *testing.T) {
	s := sample{Title: strPtr("t"), Level: strPtr("expert"), Weeks: intPtr(1), Tags: []string{"a", "z", "y"}}
	err := Struct(&s, nil)

	var vErr *apperrors.ValidationError
	require.True(t, errors.As(err, &vErr))
	require.Len(t, vErr.Fields, 2)
	assert.Equal(t, "level", vErr.Fields[0].Field)
	assert.Equal(t, "`expert` is not a valid enum value for path `level`.", vErr.Fields[0].Message)
	assert.Equal(t, "tags", vErr.Fields[1].Field)
	assert.Equal(t, "`z` is not a valid enum value for path `tags`.", vErr.Fields[1].Message)
}

func TestStructNumericMinimum(t *testing.T) {
	s := sample{Title: strPtr("t"), Level: strPtr("high"), Weeks: intPtr(0)}
	err := Struct(&s, nil)

	var vErr *apperrors.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{"Path `weeks` (0) is less than minimum allowed value (1)."}, vErr.Messages())
}
