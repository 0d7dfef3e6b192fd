package command_test

import (
	"context"
	"testing"

	"student-attendance-manager/internal/command"
	"student-attendance-manager/internal/presence"
	"student-attendance-manager/internal/student"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStudents struct {
	added []string
}

func (f *fakeStudents) AddStudent(_ context.Context, name string) (*student.Student, error) {
	f.added = append(f.added, name)
	return &student.Student{ID: len(f.added), Name: name}, nil
}

func (f *fakeStudents) GetStudentByName(context.Context, string) (*student.Student, error) {
	return nil, student.ErrStudentNotFound
}

func (f *fakeStudents) GetAllStudents(context.Context) ([]student.Student, error) {
	return nil, nil
}

type recordCall struct {
	name       string
	day        int
	start, end string
	room       string
}

type fakePresences struct {
	calls []recordCall
}

func (f *fakePresences) RecordPresence(_ context.Context, name string, day int, start, end, room string) (*presence.Presence, error) {
	f.calls = append(f.calls, recordCall{name: name, day: day, start: start, end: end, room: room})
	return &presence.Presence{}, nil
}

func (f *fakePresences) Report(context.Context) ([]presence.Summary, error) {
	return nil, nil
}

func (f *fakePresences) GenerateReport(context.Context) ([]string, error) {
	return nil, nil
}

func TestStudentCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("AddsStudent", func(t *testing.T) {
		students := &fakeStudents{}
		err := command.NewStudentCommand(students).Execute(ctx, []string{"Alice"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Alice"}, students.added)
	})

	t.Run("WrongArity", func(t *testing.T) {
		students := &fakeStudents{}
		cmd := command.NewStudentCommand(students)

		assert.ErrorIs(t, cmd.Execute(ctx, nil), command.ErrInvalidArguments)
		assert.ErrorIs(t, cmd.Execute(ctx, []string{"Alice", "Smith"}), command.ErrInvalidArguments)
		assert.Empty(t, students.added)
	})
}

func TestPresenceCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("MapsArgumentsPositionally", func(t *testing.T) {
		presences := &fakePresences{}
		err := command.NewPresenceCommand(presences).Execute(ctx, []string{"Alice", "3", "09:00", "10:00", "R101"})
		require.NoError(t, err)

		require.Len(t, presences.calls, 1)
		assert.Equal(t, recordCall{name: "Alice", day: 3, start: "09:00", end: "10:00", room: "R101"}, presences.calls[0])
	})

	t.Run("NonIntegerDay", func(t *testing.T) {
		presences := &fakePresences{}
		err := command.NewPresenceCommand(presences).Execute(ctx, []string{"Alice", "Mon", "09:00", "10:00", "R101"})

		assert.ErrorIs(t, err, command.ErrInvalidArguments)
		assert.Empty(t, presences.calls)
	})

	t.Run("WrongArity", func(t *testing.T) {
		presences := &fakePresences{}
		err := command.NewPresenceCommand(presences).Execute(ctx, []string{"Alice", "1", "09:00", "10:00"})

		assert.ErrorIs(t, err, command.ErrInvalidArguments)
	})
}

func TestRegistry(t *testing.T) {
	registry := command.NewRegistry(&fakeStudents{}, &fakePresences{})

	_, ok := registry.Get("Student")
	assert.True(t, ok)
	_, ok = registry.Get("Presence")
	assert.True(t, ok)
	_, ok = registry.Get("student")
	assert.False(t, ok)
}
