package models

import (
	"fmt"
	"strings"
	"time"
)

// Student is a persisted student record.
//
// Roll numbers are unique across the table; marks drive the sort
// visualization ordering.
type Student struct {
	id        string
	sequence  int
	name      string
	roll      string
	marks     int
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

var _ Model = (*Student)(nil)

// NewStudent creates a Student with the given sequence number and fields.
// The ID is assigned by the repository on Create.
func NewStudent(sequence int, name, roll string, marks int) *Student {
	now := time.Now()
	return &Student{
		sequence:  sequence,
		name:      name,
		roll:      roll,
		marks:     marks,
		createdAt: now,
		updatedAt: now,
	}
}

func (s *Student) ID() string            { return s.id }
func (s *Student) Sequence() int         { return s.sequence }
func (s *Student) Name() string          { return s.name }
func (s *Student) Roll() string          { return s.roll }
func (s *Student) Marks() int            { return s.marks }
func (s *Student) CreatedAt() time.Time  { return s.createdAt }
func (s *Student) UpdatedAt() time.Time  { return s.updatedAt }
func (s *Student) DeletedAt() *time.Time { return s.deletedAt }

func (s *Student) SetID(id string)           { s.id = id }
func (s *Student) SetSequence(seq int)       { s.sequence = seq }
func (s *Student) SetName(name string)       { s.name = name }
func (s *Student) SetRoll(roll string)       { s.roll = roll }
func (s *Student) SetMarks(marks int)        { s.marks = marks }
func (s *Student) SetUpdatedAt(t time.Time)  { s.updatedAt = t }
func (s *Student) SetDeletedAt(t *time.Time) { s.deletedAt = t }
func (s *Student) SetCreatedAt(t time.Time)  { s.createdAt = t }

// Validate checks that required fields are present.
func (s *Student) Validate() error {
	if strings.TrimSpace(s.name) == "" {
		return fmt.Errorf("student name is required")
	}
	if strings.TrimSpace(s.roll) == "" {
		return fmt.Errorf("student roll number is required")
	}
	if s.marks < 0 {
		return fmt.Errorf("student marks must not be negative")
	}
	return nil
}
