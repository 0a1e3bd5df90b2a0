package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/mtorres-dev/sortboard/internal/models"
	"github.com/mtorres-dev/sortboard/internal/shared"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func mustCreate(t *testing.T, repo *StudentRepository, name, roll string, marks int) *models.Student {
	t.Helper()

	student := models.NewStudent(0, name, roll, marks)
	if err := repo.Create(student); err != nil {
		t.Fatalf("failed to create %s: %v", name, err)
	}
	return student
}

func TestStudentCreate(t *testing.T) {
	t.Run("assigns id and increasing sequence", func(t *testing.T) {
		repo := NewStudentRepository(setupTestDB(t))

		first := mustCreate(t, repo, "Asha", "R-01", 30)
		second := mustCreate(t, repo, "Bilal", "R-02", 10)

		if first.ID() == "" || second.ID() == "" {
			t.Error("expected generated IDs")
		}
		if second.Sequence() <= first.Sequence() {
			t.Errorf("expected increasing sequence: %d then %d", first.Sequence(), second.Sequence())
		}
	})

	t.Run("rejects duplicate roll numbers", func(t *testing.T) {
		repo := NewStudentRepository(setupTestDB(t))
		mustCreate(t, repo, "Asha", "R-01", 30)

		err := repo.Create(models.NewStudent(0, "Impostor", "R-01", 50))
		if !errors.Is(err, shared.ErrDuplicateRoll) {
			t.Errorf("expected ErrDuplicateRoll, got %v", err)
		}
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		repo := NewStudentRepository(setupTestDB(t))

		err := repo.Create(models.NewStudent(0, "", "R-01", 30))
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for empty name, got %v", err)
		}

		err = repo.Create(models.NewStudent(0, "Asha", "R-01", -1))
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for negative marks, got %v", err)
		}
	})
}

func TestStudentGet(t *testing.T) {
	t.Run("retrieves by id and by roll", func(t *testing.T) {
		repo := NewStudentRepository(setupTestDB(t))
		created := mustCreate(t, repo, "Asha", "R-01", 30)

		byID, err := repo.Get(created.ID())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if byID.Name() != "Asha" || byID.Marks() != 30 {
			t.Errorf("unexpected record: %s/%d", byID.Name(), byID.Marks())
		}

		byRoll, err := repo.GetByRoll("R-01")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if byRoll.ID() != created.ID() {
			t.Errorf("roll lookup returned different record: %s", byRoll.ID())
		}
	})

	t.Run("missing records surface ErrStudentNotFound", func(t *testing.T) {
		repo := NewStudentRepository(setupTestDB(t))

		if _, err := repo.Get("nope"); !errors.Is(err, shared.ErrStudentNotFound) {
			t.Errorf("expected ErrStudentNotFound, got %v", err)
		}
		if _, err := repo.GetByRoll("nope"); !errors.Is(err, shared.ErrStudentNotFound) {
			t.Errorf("expected ErrStudentNotFound, got %v", err)
		}
	})
}

func TestStudentUpdate(t *testing.T) {
	t.Run("persists changed fields", func(t *testing.T) {
		repo := NewStudentRepository(setupTestDB(t))
		student := mustCreate(t, repo, "Asha", "R-01", 30)

		student.SetName("Asha K")
		student.SetMarks(45)
		if err := repo.Update(student); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := repo.Get(student.ID())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Name() != "Asha K" || got.Marks() != 45 {
			t.Errorf("update not persisted: %s/%d", got.Name(), got.Marks())
		}
	})

	t.Run("rejects a roll change that collides", func(t *testing.T) {
		repo := NewStudentRepository(setupTestDB(t))
		mustCreate(t, repo, "Asha", "R-01", 30)
		student := mustCreate(t, repo, "Bilal", "R-02", 10)

		student.SetRoll("R-01")
		if err := repo.Update(student); !errors.Is(err, shared.ErrDuplicateRoll) {
			t.Errorf("expected ErrDuplicateRoll, got %v", err)
		}
	})

	t.Run("unknown id surfaces ErrStudentNotFound", func(t *testing.T) {
		repo := NewStudentRepository(setupTestDB(t))

		ghost := models.NewStudent(0, "Ghost", "R-99", 1)
		ghost.SetID("missing")
		if err := repo.Update(ghost); !errors.Is(err, shared.ErrStudentNotFound) {
			t.Errorf("expected ErrStudentNotFound, got %v", err)
		}
	})
}

func TestStudentDelete(t *testing.T) {
	t.Run("soft-deleted rows disappear from reads", func(t *testing.T) {
		repo := NewStudentRepository(setupTestDB(t))
		student := mustCreate(t, repo, "Asha", "R-01", 30)

		if err := repo.Delete(student.ID()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := repo.Get(student.ID()); !errors.Is(err, shared.ErrStudentNotFound) {
			t.Errorf("expected deleted record to be invisible, got %v", err)
		}

		students, err := repo.List(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(students) != 0 {
			t.Errorf("expected empty list, got %d", len(students))
		}
	})

	t.Run("double delete surfaces ErrStudentNotFound", func(t *testing.T) {
		repo := NewStudentRepository(setupTestDB(t))
		student := mustCreate(t, repo, "Asha", "R-01", 30)

		if err := repo.Delete(student.ID()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := repo.Delete(student.ID()); !errors.Is(err, shared.ErrStudentNotFound) {
			t.Errorf("expected ErrStudentNotFound, got %v", err)
		}
	})
}

func TestStudentList(t *testing.T) {
	t.Run("returns rows in insertion order", func(t *testing.T) {
		repo := NewStudentRepository(setupTestDB(t))
		mustCreate(t, repo, "Asha", "R-01", 30)
		mustCreate(t, repo, "Bilal", "R-02", 10)
		mustCreate(t, repo, "Chitra", "R-03", 20)

		students, err := repo.List(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"Asha", "Bilal", "Chitra"}
		if len(students) != len(want) {
			t.Fatalf("expected %d rows, got %d", len(want), len(students))
		}
		for i, name := range want {
			if students[i].Name() != name {
				t.Errorf("index %d: expected %s, got %s", i, name, students[i].Name())
			}
		}
	})

	t.Run("filters by name substring and exact roll", func(t *testing.T) {
		repo := NewStudentRepository(setupTestDB(t))
		mustCreate(t, repo, "Asha", "R-01", 30)
		mustCreate(t, repo, "Bilal", "R-02", 10)

		byName, err := repo.List(map[string]any{"name": "sha"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(byName) != 1 || byName[0].Name() != "Asha" {
			t.Errorf("name filter returned %d rows", len(byName))
		}

		byRoll, err := repo.List(map[string]any{"roll": "R-02"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(byRoll) != 1 || byRoll[0].Roll() != "R-02" {
			t.Errorf("roll filter returned %d rows", len(byRoll))
		}
	})
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)

	first, err := NextSequence(db, "students")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := NextSequence(db, "students")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if second != first+1 {
		t.Errorf("expected consecutive sequence values: %d then %d", first, second)
	}
}
