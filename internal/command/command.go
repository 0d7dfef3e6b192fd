// Package command turns whitespace-delimited input lines into service calls.
package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"student-attendance-manager/internal/presence"
	"student-attendance-manager/internal/student"
)

const (
	NameStudent  = "Student"
	NamePresence = "Presence"
)

var ErrInvalidArguments = errors.New("invalid arguments")

type Command interface {
	Execute(ctx context.Context, args []string) error
}

// StudentCommand handles "Student <name>".
type StudentCommand struct {
	service student.Service
}

func NewStudentCommand(service student.Service) *StudentCommand {
	return &StudentCommand{service: service}
}

func (c *StudentCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: %s expects 1 argument, got %d", ErrInvalidArguments, NameStudent, len(args))
	}

	_, err := c.service.AddStudent(ctx, args[0])
	return err
}

// PresenceCommand handles "Presence <name> <day> <start> <end> <room>".
type PresenceCommand struct {
	service presence.Service
}

func NewPresenceCommand(service presence.Service) *PresenceCommand {
	return &PresenceCommand{service: service}
}

func (c *PresenceCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 5 {
		return fmt.Errorf("%w: %s expects 5 arguments, got %d", ErrInvalidArguments, NamePresence, len(args))
	}

	day, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: day %q is not an integer", ErrInvalidArguments, args[1])
	}

	_, err = c.service.RecordPresence(ctx, args[0], day, args[2], args[3], args[4])
	return err
}

// Registry maps command names to their handlers.
type Registry map[string]Command

func NewRegistry(students student.Service, presences presence.Service) Registry {
	return Registry{
		NameStudent:  NewStudentCommand(students),
		NamePresence: NewPresenceCommand(presences),
	}
}

func (r Registry) Get(name string) (Command, bool) {
	cmd, ok := r[name]
	return cmd, ok
}
