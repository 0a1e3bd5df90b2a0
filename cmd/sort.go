package main

import (
	"context"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mtorres-dev/sortboard/internal/engine"
	"github.com/mtorres-dev/sortboard/internal/ui"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"
)

// progressEchoRate caps how many intermediate orders are printed per
// second; the engine can emit far faster than a terminal is worth
// scrolling.
const progressEchoRate = 10

// Sort runs an algorithm headlessly over the stored records, echoing
// intermediate orders as the engine reports them and the final order on
// completion.
func (r *Runner) Sort(ctx context.Context, cmd *cli.Command) error {
	if err := r.openDatabase(cmd); err != nil {
		return err
	}

	students, err := r.repo.List(nil)
	if err != nil {
		return err
	}
	if len(students) == 0 {
		r.writePlainln("No data.")
		return nil
	}

	sorter, err := engine.Lookup(cmd.String("algo"))
	if err != nil {
		return err
	}

	speed := int(cmd.Int("speed"))
	surface := engine.NopSurface{}
	seq := engine.NewSequence(surface, engine.DefaultLayout())
	anim := engine.NewAnimator(seq, surface, func() int { return speed }, engine.AnimatorOpts{
		Steps:    1,
		MinDelay: time.Microsecond,
	})
	controller := engine.NewController(seq, anim, r.logger)

	records := make([]engine.Record, len(students))
	for i, s := range students {
		records[i] = engine.Record{ID: s.ID(), Label: s.Name(), Key: s.Marks()}
	}

	progress := make(chan engine.ProgressUpdate, 64)
	done := make(chan engine.RunResult, 1)

	if err := controller.Start(sorter, records, progress, done); err != nil {
		return err
	}

	limiter := rate.NewLimiter(rate.Limit(progressEchoRate), 1)
	for {
		select {
		case <-ctx.Done():
			controller.Stop()
			result := <-done
			r.printOrder(result.Order)
			return ctx.Err()

		case update := <-progress:
			if limiter.Allow() {
				r.writePlain("  %s\n", formatOrder(update.Order))
			}

		case result := <-done:
			r.writePlainHeader(sorter.Name() + " sort finished")
			r.printOrder(result.Order)
			return nil
		}
	}
}

func (r *Runner) printOrder(order []engine.Record) {
	for i, rec := range order {
		r.writePlain("%4d  %-24s %d\n", i+1, rec.Label, rec.Key)
	}
}

// formatOrder renders an order as "label:key" pairs on one line.
func formatOrder(order []engine.Record) string {
	parts := make([]string, len(order))
	for i, rec := range order {
		parts[i] = rec.Label + ":" + strconv.Itoa(rec.Key)
	}
	return strings.Join(parts, " ")
}

// TUI launches the interactive table and visualizer.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.openDatabase(cmd); err != nil {
		return err
	}

	model := ui.NewModel(ctx, r.repo, r.config, r.logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
