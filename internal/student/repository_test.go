package student_test

import (
	"context"
	"testing"

	"student-attendance-manager/internal/db"
	"student-attendance-manager/internal/metrics"
	"student-attendance-manager/internal/student"
	"student-attendance-manager/testing/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) student.Repository {
		database := testdb.NewSQLite(t, (*student.Student)(nil))
		return student.NewRepository(database, metrics.NewMock())
	}

	t.Run("Create_AssignsID", func(t *testing.T) {
		repo := setup(t)

		created, err := repo.Create(ctx, &student.Student{Name: "Alice"})
		require.NoError(t, err)
		assert.Positive(t, created.ID)
		assert.Equal(t, "Alice", created.Name)
	})

	t.Run("Create_DuplicateName", func(t *testing.T) {
		repo := setup(t)

		_, err := repo.Create(ctx, &student.Student{Name: "Alice"})
		require.NoError(t, err)
		_, err = repo.Create(ctx, &student.Student{Name: "Alice"})

		var constraintErr *db.ConstraintError
		require.ErrorAs(t, err, &constraintErr)
		assert.Equal(t, db.ConstraintUnique, constraintErr.Kind)
		assert.Equal(t, "students", constraintErr.Table)
	})

	t.Run("GetByName", func(t *testing.T) {
		repo := setup(t)

		created, err := repo.Create(ctx, &student.Student{Name: "Alice"})
		require.NoError(t, err)

		found, err := repo.GetByName(ctx, "Alice")
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
	})

	t.Run("GetByName_NotFound", func(t *testing.T) {
		repo := setup(t)

		_, err := repo.GetByName(ctx, "Nobody")
		assert.ErrorIs(t, err, student.ErrStudentNotFound)
	})

	t.Run("GetAll_InsertionOrder", func(t *testing.T) {
		repo := setup(t)

		for _, name := range []string{"Carol", "Alice", "Bob"} {
			_, err := repo.Create(ctx, &student.Student{Name: name})
			require.NoError(t, err)
		}

		students, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, students, 3)
		assert.Equal(t, "Carol", students[0].Name)
		assert.Equal(t, "Alice", students[1].Name)
		assert.Equal(t, "Bob", students[2].Name)
	})

	t.Run("GetAll_Empty", func(t *testing.T) {
		repo := setup(t)

		students, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, students)
	})
}

func TestRepository_Postgres(t *testing.T) {
	pgContainer := testdb.SetupSharedPostgres(t)
	defer pgContainer.Cleanup(t)

	pgContainer.RunMigrations(t, (*student.Student)(nil))
	repo := student.NewRepository(pgContainer.DB, metrics.NewMock())
	ctx := context.Background()

	t.Run("DuplicateName", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "students")

		_, err := repo.Create(ctx, &student.Student{Name: "Alice"})
		require.NoError(t, err)
		_, err = repo.Create(ctx, &student.Student{Name: "Alice"})

		assert.ErrorIs(t, err, db.ErrConstraint)
	})

	t.Run("GetByName_NotFound", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "students")

		_, err := repo.GetByName(ctx, "Nobody")
		assert.ErrorIs(t, err, student.ErrStudentNotFound)
	})
}
