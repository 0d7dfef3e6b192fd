package presence_test

import (
	"context"
	"testing"

	"student-attendance-manager/internal/db"
	"student-attendance-manager/internal/metrics"
	"student-attendance-manager/internal/presence"
	"student-attendance-manager/internal/student"
	"student-attendance-manager/testing/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (presence.Repository, *student.Student) {
		database := testdb.NewSQLite(t, (*student.Student)(nil), (*presence.Presence)(nil))

		owner, err := student.NewRepository(database, metrics.NewMock()).
			Create(ctx, &student.Student{Name: "Alice"})
		require.NoError(t, err)

		return presence.NewRepository(database, metrics.NewMock()), owner
	}

	t.Run("CreateAndList", func(t *testing.T) {
		repo, owner := setup(t)

		first := slot(2, "09:00", "10:30")
		first.StudentID = owner.ID
		second := slot(1, "13:00:15", "14:00")
		second.StudentID = owner.ID

		created, err := repo.Create(ctx, &first)
		require.NoError(t, err)
		assert.Positive(t, created.ID)
		_, err = repo.Create(ctx, &second)
		require.NoError(t, err)

		presences, err := repo.GetByStudent(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, presences, 2)

		assert.Equal(t, 2, presences[0].Day)
		assert.Equal(t, presence.TimeOfDay{Hour: 9}, presences[0].StartTime)
		assert.Equal(t, presence.TimeOfDay{Hour: 10, Minute: 30}, presences[0].EndTime)
		assert.Equal(t, presence.TimeOfDay{Hour: 13, Second: 15}, presences[1].StartTime)
		assert.Equal(t, "101", presences[1].Room)
	})

	t.Run("UnknownStudentViolatesForeignKey", func(t *testing.T) {
		repo, _ := setup(t)

		orphan := slot(1, "09:00", "10:00")
		orphan.StudentID = 999

		_, err := repo.Create(ctx, &orphan)

		var constraintErr *db.ConstraintError
		require.ErrorAs(t, err, &constraintErr)
		assert.Equal(t, db.ConstraintForeignKey, constraintErr.Kind)
		assert.Equal(t, "presences", constraintErr.Table)
	})

	t.Run("GetByStudent_Empty", func(t *testing.T) {
		repo, owner := setup(t)

		presences, err := repo.GetByStudent(ctx, owner.ID)
		require.NoError(t, err)
		assert.Empty(t, presences)
	})
}

func TestRepository_Postgres(t *testing.T) {
	pgContainer := testdb.SetupSharedPostgres(t)
	defer pgContainer.Cleanup(t)

	pgContainer.RunMigrations(t, (*student.Student)(nil), (*presence.Presence)(nil))
	ctx := context.Background()

	students := student.NewRepository(pgContainer.DB, metrics.NewMock())
	repo := presence.NewRepository(pgContainer.DB, metrics.NewMock())

	t.Run("TimeRoundTrip", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "presences", "students")

		owner, err := students.Create(ctx, &student.Student{Name: "Alice"})
		require.NoError(t, err)

		p := slot(4, "08:15:30", "09:45")
		p.StudentID = owner.ID
		_, err = repo.Create(ctx, &p)
		require.NoError(t, err)

		presences, err := repo.GetByStudent(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, presences, 1)
		assert.Equal(t, presence.TimeOfDay{Hour: 8, Minute: 15, Second: 30}, presences[0].StartTime)
		assert.Equal(t, 90, presences[0].DurationMinutes())
	})

	t.Run("UnknownStudentViolatesForeignKey", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "presences", "students")

		orphan := slot(1, "09:00", "10:00")
		orphan.StudentID = 999

		_, err := repo.Create(ctx, &orphan)
		assert.ErrorIs(t, err, db.ErrConstraint)
	})
}
