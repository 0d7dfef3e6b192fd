// Package validation wraps go-playground/validator and reports failures as a
// single *Error carrying one message per field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error is returned for every field-level construction failure.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "invalid data: " + strings.Join(parts, "; ")
}

// Field returns the message recorded for name.
func (e *Error) Field(name string) (string, bool) {
	msg, ok := e.Fields[name]
	return msg, ok
}

type Validator struct {
	validate *validator.Validate
	messages map[string]string
}

// New returns a Validator that names fields after their json tag.
func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return &Validator{
		validate: validate,
		messages: map[string]string{},
	}
}

// RegisterValidation adds a field-level tag together with its failure message.
func (v *Validator) RegisterValidation(tag, message string, fn validator.Func) error {
	if err := v.validate.RegisterValidation(tag, fn); err != nil {
		return err
	}
	v.messages[tag] = message
	return nil
}

// RegisterStructValidation adds a cross-field rule. Rules report failures with
// sl.ReportError using a tag whose message was set with RegisterMessage.
func (v *Validator) RegisterStructValidation(fn validator.StructLevelFunc, types ...interface{}) {
	v.validate.RegisterStructValidation(fn, types...)
}

func (v *Validator) RegisterMessage(tag, message string) {
	v.messages[tag] = message
}

// Struct validates s and returns nil or an *Error.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &Error{Fields: map[string]string{"_schema": err.Error()}}
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fieldErr := range validationErrs {
		if _, seen := fields[fieldErr.Field()]; seen {
			continue
		}
		fields[fieldErr.Field()] = v.message(fieldErr)
	}
	return &Error{Fields: fields}
}

func (v *Validator) message(fieldErr validator.FieldError) string {
	if msg, ok := v.messages[fieldErr.Tag()]; ok {
		return msg
	}

	switch fieldErr.Tag() {
	case "required":
		return "Missing data for required field."
	case "min", "gte":
		return fmt.Sprintf("Must be greater than or equal to %s.", fieldErr.Param())
	case "max", "lte":
		return fmt.Sprintf("Must be less than or equal to %s.", fieldErr.Param())
	default:
		return "Invalid value."
	}
}
