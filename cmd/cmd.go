// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// configFlag is shared by every command that touches the database.
func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// studentCommand handles student record operations
func studentCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "student",
		Aliases: []string{"s"},
		Usage:   "Student record operations",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a student record",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Student name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "roll",
						Usage:    "Roll number (unique)",
						Required: true,
					},
					&cli.IntFlag{
						Name:     "marks",
						Usage:    "Marks (integer)",
						Required: true,
					},
				},
				Action: r.StudentAdd,
			},
			{
				Name:  "list",
				Usage: "List student records",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.StudentList,
			},
			{
				Name:  "update",
				Usage: "Update a student record by roll number",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "roll",
						Usage:    "Roll number of the record to update",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "New name",
					},
					&cli.IntFlag{
						Name:  "marks",
						Usage: "New marks",
						Value: -1,
					},
				},
				Action: r.StudentUpdate,
			},
			{
				Name:  "delete",
				Usage: "Delete a student record by roll number",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "roll",
						Usage:    "Roll number of the record to delete",
						Required: true,
					},
				},
				Action: r.StudentDelete,
			},
		},
	}
}

// sortCommand runs a sorting algorithm headlessly, echoing each
// intermediate order to stdout
func sortCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sort",
		Usage: "Run a sorting algorithm over the records and print progress",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "algo",
				Aliases: []string{"a"},
				Usage:   "Algorithm: insertion or selection",
				Value:   "insertion",
			},
			&cli.IntFlag{
				Name:  "speed",
				Usage: "Speed parameter in [1,100]",
				Value: 100,
			},
		},
		Action: r.Sort,
	}
}

// tuiCommand launches the interactive terminal interface
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Launch the interactive student table & sort visualizer",
		Flags:  []cli.Flag{configFlag()},
		Action: r.TUI,
	}
}
