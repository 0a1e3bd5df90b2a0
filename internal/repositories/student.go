package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mtorres-dev/sortboard/internal/models"
	"github.com/mtorres-dev/sortboard/internal/shared"
)

// StudentRepository implements models.Repository[*models.Student].
//
// Roll numbers are unique; inserting or updating to a duplicate roll
// surfaces [shared.ErrDuplicateRoll].
type StudentRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.Student] = (*StudentRepository)(nil)

// NewStudentRepository creates a new StudentRepository with the given database connection
func NewStudentRepository(db *sql.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// Create inserts a new [models.Student] into the database with generated ID and sequence
func (r *StudentRepository) Create(student *models.Student) error {
	if err := student.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	sequence, err := NextSequence(r.db, "students")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	student.SetID(id)
	student.SetSequence(sequence)

	query := `
		INSERT INTO students (id, sequence, name, roll, marks, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		student.Name(),
		student.Roll(),
		student.Marks(),
		student.CreatedAt(),
		student.UpdatedAt(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", shared.ErrDuplicateRoll, student.Roll())
		}
		return fmt.Errorf("failed to insert student: %w", err)
	}

	return nil
}

// Get retrieves a student by ID, excluding soft-deleted rows
func (r *StudentRepository) Get(id string) (*models.Student, error) {
	query := `
		SELECT id, sequence, name, roll, marks, created_at, updated_at, deleted_at
		FROM students
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByRoll retrieves a student by roll number
func (r *StudentRepository) GetByRoll(roll string) (*models.Student, error) {
	query := `
		SELECT id, sequence, name, roll, marks, created_at, updated_at, deleted_at
		FROM students
		WHERE roll = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, roll))
}

// Update modifies an existing student in the database
func (r *StudentRepository) Update(student *models.Student) error {
	if err := student.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	now := time.Now()
	student.SetUpdatedAt(now)

	query := `
		UPDATE students
		SET name = ?, roll = ?, marks = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		student.Name(),
		student.Roll(),
		student.Marks(),
		now,
		student.ID(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", shared.ErrDuplicateRoll, student.Roll())
		}
		return fmt.Errorf("failed to update student: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrStudentNotFound, student.ID())
	}

	return nil
}

// Delete soft-deletes a student by ID
func (r *StudentRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE students
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrStudentNotFound, id)
	}

	return nil
}

// List retrieves all students matching the given criteria, excluding
// soft-deleted rows, ordered by sequence (insertion order).
func (r *StudentRepository) List(criteria map[string]any) ([]*models.Student, error) {
	query := `
		SELECT id, sequence, name, roll, marks, created_at, updated_at, deleted_at
		FROM students
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if name, ok := criteria["name"].(string); ok && name != "" {
		query += " AND name LIKE ?"
		args = append(args, "%"+name+"%")
	}

	if roll, ok := criteria["roll"].(string); ok && roll != "" {
		query += " AND roll = ?"
		args = append(args, roll)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return students, nil
}

// scanOne scans a single [sql.Row] into a [models.Student]
func (r *StudentRepository) scanOne(row *sql.Row) (*models.Student, error) {
	var (
		id        string
		sequence  int
		name      string
		roll      string
		marks     int
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&id, &sequence, &name, &roll, &marks, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, shared.ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan student: %w", err)
	}

	return buildStudent(id, sequence, name, roll, marks, createdAt, updatedAt, deletedAt), nil
}

// scanRow scans a row from [sql.Rows] into a [models.Student]
func (r *StudentRepository) scanRow(rows *sql.Rows) (*models.Student, error) {
	var (
		id        string
		sequence  int
		name      string
		roll      string
		marks     int
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := rows.Scan(&id, &sequence, &name, &roll, &marks, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan student: %w", err)
	}

	return buildStudent(id, sequence, name, roll, marks, createdAt, updatedAt, deletedAt), nil
}

func buildStudent(id string, sequence int, name, roll string, marks int, createdAt, updatedAt time.Time, deletedAt sql.NullTime) *models.Student {
	student := models.NewStudent(sequence, name, roll, marks)
	student.SetID(id)
	student.SetCreatedAt(createdAt)
	student.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		student.SetDeletedAt(&deletedAt.Time)
	}
	return student
}

// isUniqueViolation reports whether err is a sqlite UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
