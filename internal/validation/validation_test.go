package validation_test

import (
	"errors"
	"strings"
	"testing"

	"student-attendance-manager/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slot struct {
	Label string `json:"label" validate:"required,upper"`
	Day   int    `json:"day" validate:"required,min=1,max=7"`
	From  int    `json:"from"`
	To    int    `json:"to"`
}

func newValidator(t *testing.T) *validation.Validator {
	t.Helper()

	v := validation.New()
	err := v.RegisterValidation("upper", "Must be upper case.", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == strings.ToUpper(s)
	})
	require.NoError(t, err)

	v.RegisterMessage("after_from", "to must be after from")
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		s := sl.Current().Interface().(slot)
		if s.To <= s.From {
			sl.ReportError(s.To, "to", "To", "after_from", "")
		}
	}, slot{})

	return v
}

func TestValidator_Struct(t *testing.T) {
	v := newValidator(t)

	t.Run("Valid", func(t *testing.T) {
		err := v.Struct(slot{Label: "A", Day: 3, From: 1, To: 2})
		assert.NoError(t, err)
	})

	t.Run("Required", func(t *testing.T) {
		err := v.Struct(slot{Day: 3, From: 1, To: 2})

		var validationErr *validation.Error
		require.True(t, errors.As(err, &validationErr))
		msg, ok := validationErr.Field("label")
		require.True(t, ok)
		assert.Equal(t, "Missing data for required field.", msg)
	})

	t.Run("Range", func(t *testing.T) {
		err := v.Struct(slot{Label: "A", Day: 8, From: 1, To: 2})

		var validationErr *validation.Error
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, map[string]string{"day": "Must be less than or equal to 7."}, validationErr.Fields)
	})

	t.Run("CustomTagMessage", func(t *testing.T) {
		err := v.Struct(slot{Label: "a", Day: 1, From: 1, To: 2})

		var validationErr *validation.Error
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "Must be upper case.", validationErr.Fields["label"])
	})

	t.Run("StructLevelRule", func(t *testing.T) {
		err := v.Struct(slot{Label: "A", Day: 1, From: 5, To: 5})

		var validationErr *validation.Error
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "to must be after from", validationErr.Fields["to"])
	})

	t.Run("ErrorStringIsSorted", func(t *testing.T) {
		err := v.Struct(slot{Day: 0, From: 2, To: 1})
		require.Error(t, err)

		assert.Equal(t,
			"invalid data: day: Missing data for required field.; label: Missing data for required field.; to: to must be after from",
			err.Error(),
		)
	})
}
