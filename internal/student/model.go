package student

import (
	"student-attendance-manager/internal/validation"

	"github.com/uptrace/bun"
)

type Student struct {
	bun.BaseModel `bun:"table:students,alias:s"`

	ID   int    `bun:"id,pk,autoincrement" json:"id"`
	Name string `bun:"name,unique,notnull" json:"name"`
}

// Input holds the raw fields a Student is built from.
type Input struct {
	Name string `json:"name" validate:"required"`
}

var validate = validation.New()

// New validates in and returns an unsaved Student. Failures are *validation.Error.
func New(in Input) (*Student, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	return &Student{Name: in.Name}, nil
}
