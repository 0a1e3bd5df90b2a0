// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a three-view workflow for the student records application:
//  1. [TableView] : Browse records with add/edit/delete bindings
//  2. [FormView] : Enter or edit a student's name, roll and marks
//  3. [VisualizerView] : Watch a sorting run animate on the [Canvas]
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates and the final order flow through channels from the
// engine's Controller, keeping the table in sync while a run animates;
// a frame tick repaints the canvas at ~30fps for the duration of a run.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with
// contextual help displayed via charmbracelet/bubbles/help. The +/- keys
// adjust the speed parameter live; the next animation step picks it up.
package ui
