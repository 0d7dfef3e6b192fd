package student

import (
	"errors"
	"fmt"
)

var ErrStudentNotFound = errors.New("student not found")

// NotFoundError names a student that has not been added.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("student %s does not exist", e.Name)
}

func (e *NotFoundError) Unwrap() error {
	return ErrStudentNotFound
}
