package main

import (
	"context"
	"errors"

	"github.com/mtorres-dev/sortboard/internal/models"
	"github.com/mtorres-dev/sortboard/internal/shared"
	"github.com/urfave/cli/v3"
)

// studentRow is the JSON shape for list output.
type studentRow struct {
	ID    string `json:"id"`
	Seq   int    `json:"seq"`
	Name  string `json:"name"`
	Roll  string `json:"roll"`
	Marks int    `json:"marks"`
}

// Setup initializes the database, applies migrations, and writes a
// default config file when one does not exist.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := shared.CreateConfigFile(path); err != nil {
		r.logger.Debug("config file not created", "path", path, "reason", err)
	} else {
		r.writePlainln("Created %s", path)
	}

	if err := r.openDatabase(cmd); err != nil {
		return err
	}

	r.writePlainln("Database ready at %s", r.config.Database.Path)
	return nil
}

// StudentAdd inserts a new student record.
func (r *Runner) StudentAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.openDatabase(cmd); err != nil {
		return err
	}

	student := models.NewStudent(0, cmd.String("name"), cmd.String("roll"), cmd.Int("marks"))
	if err := r.repo.Create(student); err != nil {
		if errors.Is(err, shared.ErrDuplicateRoll) {
			r.writePlainln("Roll number must be unique: %s", student.Roll())
			return nil
		}
		return err
	}

	r.writePlainln("Added %s (roll %s, marks %d)", student.Name(), student.Roll(), student.Marks())
	return nil
}

// StudentList prints all student records.
func (r *Runner) StudentList(ctx context.Context, cmd *cli.Command) error {
	if err := r.openDatabase(cmd); err != nil {
		return err
	}

	students, err := r.repo.List(nil)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		rows := make([]studentRow, len(students))
		for i, s := range students {
			rows[i] = studentRow{ID: s.ID(), Seq: s.Sequence(), Name: s.Name(), Roll: s.Roll(), Marks: s.Marks()}
		}
		return r.writeJSON(rows, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Students")
	for _, s := range students {
		r.writePlain("%4d  %-24s %-12s %d\n", s.Sequence(), s.Name(), s.Roll(), s.Marks())
	}
	r.writePlain("%d record(s)\n", len(students))
	return nil
}

// StudentUpdate modifies an existing record located by roll number.
func (r *Runner) StudentUpdate(ctx context.Context, cmd *cli.Command) error {
	if err := r.openDatabase(cmd); err != nil {
		return err
	}

	student, err := r.repo.GetByRoll(cmd.String("roll"))
	if err != nil {
		if errors.Is(err, shared.ErrStudentNotFound) {
			r.writePlainln("No student with roll %s", cmd.String("roll"))
			return nil
		}
		return err
	}

	if name := cmd.String("name"); name != "" {
		student.SetName(name)
	}
	if marks := cmd.Int("marks"); marks >= 0 {
		student.SetMarks(marks)
	}

	if err := r.repo.Update(student); err != nil {
		return err
	}

	r.writePlainln("Updated %s (roll %s, marks %d)", student.Name(), student.Roll(), student.Marks())
	return nil
}

// StudentDelete removes a record located by roll number.
func (r *Runner) StudentDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.openDatabase(cmd); err != nil {
		return err
	}

	student, err := r.repo.GetByRoll(cmd.String("roll"))
	if err != nil {
		if errors.Is(err, shared.ErrStudentNotFound) {
			r.writePlainln("No student with roll %s", cmd.String("roll"))
			return nil
		}
		return err
	}

	if err := r.repo.Delete(student.ID()); err != nil {
		return err
	}

	r.writePlainln("Deleted %s (roll %s)", student.Name(), student.Roll())
	return nil
}
