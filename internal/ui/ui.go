package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mtorres-dev/sortboard/internal/engine"
	"github.com/mtorres-dev/sortboard/internal/models"
	"github.com/mtorres-dev/sortboard/internal/repositories"
	"github.com/mtorres-dev/sortboard/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	TableView ViewState = iota
	FormView
	VisualizerView
)

// Frame rate for repainting the canvas while a run animates.
const frameInterval = time.Second / 30

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	view       ViewState
	repo       *repositories.StudentRepository
	controller *engine.Controller
	canvas     *Canvas
	logger     *log.Logger

	speed   atomic.Int64
	sorting bool
	status  string

	students []*models.Student
	byID     map[string]*models.Student
	rowIDs   []string

	table      table.Model
	inputs     []textinput.Model
	focusIndex int
	editingID  string

	progressChan chan engine.ProgressUpdate
	doneChan     chan engine.RunResult

	width  int
	height int
	err    error
	help   help.Model
	keys   keyMap
}

type studentsLoadedMsg struct {
	students []*models.Student
	err      error
}

type studentSavedMsg struct {
	err error
}

type studentDeletedMsg struct {
	err error
}

type progressMsg engine.ProgressUpdate

type runDoneMsg engine.RunResult

type frameMsg time.Time

// NewModel creates a new TUI model wired to the student repository and a
// fresh visualization engine built from the visual configuration.
func NewModel(ctx context.Context, repo *repositories.StudentRepository, cfg *shared.Config, logger *log.Logger) *Model {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	layout := layoutFromConfig(cfg.Visual)
	canvas := NewCanvas(layout)

	m := &Model{
		ctx:          ctx,
		view:         TableView,
		repo:         repo,
		canvas:       canvas,
		logger:       logger,
		status:       "Ready",
		byID:         make(map[string]*models.Student),
		progressChan: make(chan engine.ProgressUpdate, 64),
		doneChan:     make(chan engine.RunResult, 1),
		help:         help.New(),
		keys:         newKeyMap(),
	}
	m.speed.Store(int64(cfg.Visual.DefaultSpeed))

	seq := engine.NewSequence(canvas, layout)
	anim := engine.NewAnimator(seq, canvas, func() int { return int(m.speed.Load()) }, engine.AnimatorOpts{
		Steps:        cfg.Visual.Steps,
		Lift:         float64(cfg.Visual.Lift),
		SpeedDivisor: cfg.Visual.SpeedDivisor,
		MinDelay:     time.Duration(cfg.Visual.MinDelayMS) * time.Millisecond,
	})
	m.controller = engine.NewController(seq, anim, logger)

	m.table = newStudentTable()
	m.inputs = newStudentForm()

	return m
}

// layoutFromConfig maps the visual configuration onto an engine layout.
func layoutFromConfig(v shared.VisualConfig) engine.Layout {
	layout := engine.DefaultLayout()
	if v.CanvasWidth > 0 {
		layout.Width = float64(v.CanvasWidth)
	}
	if v.CanvasHeight > 0 {
		layout.Height = float64(v.CanvasHeight)
	}
	if v.Padding > 0 {
		layout.Padding = float64(v.Padding)
	}
	if v.BarGap > 0 {
		layout.Gap = float64(v.BarGap)
	}
	return layout
}

func newStudentTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Name", Width: 24},
		{Title: "Roll", Width: 12},
		{Title: "Marks", Width: 8},
	}
	t := table.New(table.WithColumns(columns), table.WithFocused(true), table.WithHeight(12))
	return t
}

func newStudentForm() []textinput.Model {
	placeholders := []string{"Name", "Roll No", "Marks (integer)"}
	inputs := make([]textinput.Model, len(placeholders))
	for i, p := range placeholders {
		in := textinput.New()
		in.Placeholder = p
		in.CharLimit = 64
		inputs[i] = in
	}
	inputs[0].Focus()
	return inputs
}

// Init loads students and arms the progress and completion pumps.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadStudents(), m.waitForProgress(), m.waitForDone())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case TableView:
			return m.handleTableKeys(msg)
		case FormView:
			return m.handleFormKeys(msg)
		case VisualizerView:
			return m.handleVisualizerKeys(msg)
		}

	case studentsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.students = msg.students
		m.byID = make(map[string]*models.Student, len(msg.students))
		for _, s := range msg.students {
			m.byID[s.ID()] = s
		}
		m.setRowsFromStudents(msg.students)
		return m, nil

	case studentSavedMsg:
		if msg.err != nil {
			m.status = statusForError(msg.err)
			return m, nil
		}
		m.status = "Saved"
		m.view = TableView
		return m, m.loadStudents()

	case studentDeletedMsg:
		if msg.err != nil {
			m.status = statusForError(msg.err)
			return m, nil
		}
		m.status = "Deleted"
		return m, m.loadStudents()

	case progressMsg:
		m.setRowsFromOrder(msg.Order)
		return m, m.waitForProgress()

	case runDoneMsg:
		m.sorting = false
		if msg.Cancelled {
			m.status = fmt.Sprintf("%s sort stopped", msg.Algorithm)
		} else {
			m.status = fmt.Sprintf("%s sort finished", msg.Algorithm)
		}
		m.setRowsFromOrder(msg.Order)
		return m, m.waitForDone()

	case frameMsg:
		if m.sorting {
			return m, m.frameTick()
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.view == TableView {
		m.table, cmd = m.table.Update(msg)
	}
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case TableView:
		return m.renderTable()
	case FormView:
		return m.renderForm()
	case VisualizerView:
		return m.renderVisualizer()
	default:
		return ""
	}
}

func (m *Model) handleTableKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.add):
		m.openForm(nil)
		return m, nil

	case key.Matches(msg, m.keys.edit):
		if s := m.selectedStudent(); s != nil {
			m.openForm(s)
		}
		return m, nil

	case key.Matches(msg, m.keys.delete):
		if s := m.selectedStudent(); s != nil {
			return m, m.deleteStudent(s.ID())
		}
		return m, nil

	case key.Matches(msg, m.keys.visualize):
		m.view = VisualizerView
		if !m.sorting {
			if err := m.controller.Load(recordsFromStudents(m.students)); err != nil {
				m.status = statusForError(err)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.view = TableView
		return m, nil

	case key.Matches(msg, m.keys.next):
		m.focusField(m.focusIndex + 1)
		return m, nil

	case key.Matches(msg, m.keys.submit):
		return m, m.submitForm()
	}

	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m *Model) handleVisualizerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.back):
		m.view = TableView
		return m, nil

	case key.Matches(msg, m.keys.insertion):
		return m, m.startSort("insertion")

	case key.Matches(msg, m.keys.selection):
		return m, m.startSort("selection")

	case key.Matches(msg, m.keys.stop):
		if m.sorting {
			m.controller.Stop()
			m.status = "Stopping..."
		}
		return m, nil

	case key.Matches(msg, m.keys.faster):
		m.adjustSpeed(5)
		return m, nil

	case key.Matches(msg, m.keys.slower):
		m.adjustSpeed(-5)
		return m, nil
	}
	return m, nil
}

// openForm prepares the entry form, prefilled when editing an existing student.
func (m *Model) openForm(s *models.Student) {
	if s != nil {
		m.editingID = s.ID()
		m.inputs[0].SetValue(s.Name())
		m.inputs[1].SetValue(s.Roll())
		m.inputs[2].SetValue(strconv.Itoa(s.Marks()))
	} else {
		m.editingID = ""
		for i := range m.inputs {
			m.inputs[i].SetValue("")
		}
	}
	m.focusField(0)
	m.view = FormView
}

func (m *Model) focusField(index int) {
	m.focusIndex = index % len(m.inputs)
	for i := range m.inputs {
		if i == m.focusIndex {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *Model) submitForm() tea.Cmd {
	name := m.inputs[0].Value()
	roll := m.inputs[1].Value()
	marks, err := strconv.Atoi(m.inputs[2].Value())
	if err != nil {
		m.status = "Marks must be an integer"
		return nil
	}

	editingID := m.editingID
	return func() tea.Msg {
		if editingID != "" {
			student, err := m.repo.Get(editingID)
			if err != nil {
				return studentSavedMsg{err: err}
			}
			student.SetName(name)
			student.SetRoll(roll)
			student.SetMarks(marks)
			return studentSavedMsg{err: m.repo.Update(student)}
		}

		student := models.NewStudent(0, name, roll, marks)
		return studentSavedMsg{err: m.repo.Create(student)}
	}
}

func (m *Model) deleteStudent(id string) tea.Cmd {
	return func() tea.Msg {
		return studentDeletedMsg{err: m.repo.Delete(id)}
	}
}

// startSort kicks off a run on the controller's background goroutine and
// begins repainting frames. Busy and empty-data outcomes surface as
// informational status text, never as failures.
func (m *Model) startSort(name string) tea.Cmd {
	sorter, err := engine.Lookup(name)
	if err != nil {
		m.status = statusForError(err)
		return nil
	}

	err = m.controller.Start(sorter, recordsFromStudents(m.students), m.progressChan, m.doneChan)
	if err != nil {
		m.status = statusForError(err)
		return nil
	}

	m.sorting = true
	m.status = fmt.Sprintf("%s sort running...", name)
	return m.frameTick()
}

func (m *Model) adjustSpeed(delta int64) {
	v := m.speed.Load() + delta
	if v < 1 {
		v = 1
	} else if v > 100 {
		v = 100
	}
	m.speed.Store(v)
}

func (m *Model) selectedStudent() *models.Student {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.rowIDs) {
		return nil
	}
	return m.byID[m.rowIDs[cursor]]
}

func (m *Model) setRowsFromStudents(students []*models.Student) {
	rows := make([]table.Row, len(students))
	ids := make([]string, len(students))
	for i, s := range students {
		rows[i] = table.Row{strconv.Itoa(s.Sequence()), s.Name(), s.Roll(), strconv.Itoa(s.Marks())}
		ids[i] = s.ID()
	}
	m.table.SetRows(rows)
	m.rowIDs = ids
}

// setRowsFromOrder refreshes the table to match the engine's current
// record order, keeping the list view in sync mid-run.
func (m *Model) setRowsFromOrder(order []engine.Record) {
	rows := make([]table.Row, 0, len(order))
	ids := make([]string, 0, len(order))
	for _, r := range order {
		s, ok := m.byID[r.ID]
		if !ok {
			continue
		}
		rows = append(rows, table.Row{strconv.Itoa(s.Sequence()), s.Name(), s.Roll(), strconv.Itoa(s.Marks())})
		ids = append(ids, s.ID())
	}
	m.table.SetRows(rows)
	m.rowIDs = ids
}

func (m *Model) loadStudents() tea.Cmd {
	return func() tea.Msg {
		students, err := m.repo.List(nil)
		return studentsLoadedMsg{students: students, err: err}
	}
}

// waitForProgress blocks for the next mid-run order update. The channel
// is reused across runs, so the pump stays armed for the app's lifetime.
func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		return progressMsg(<-m.progressChan)
	}
}

func (m *Model) waitForDone() tea.Cmd {
	return func() tea.Msg {
		return runDoneMsg(<-m.doneChan)
	}
}

func (m *Model) frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) renderTable() string {
	title := styles.title.Render("Students")
	helpKeys := []key.Binding{m.keys.add, m.keys.edit, m.keys.delete, m.keys.visualize, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n\n%s\n%s", title, m.table.View(), styles.help.Render(m.status), helpView)
}

func (m *Model) renderForm() string {
	heading := "Add Student"
	if m.editingID != "" {
		heading = "Edit Student"
	}
	title := styles.title.Render(heading)

	body := ""
	for i := range m.inputs {
		body += m.inputs[i].View() + "\n"
	}

	helpKeys := []key.Binding{m.keys.next, m.keys.submit, m.keys.back}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n%s\n%s", title, body, styles.help.Render(m.status), helpView)
}

func (m *Model) renderVisualizer() string {
	title := styles.title.Render("Sorting Visualizer")
	speed := styles.help.Render(fmt.Sprintf("speed: %d/100", m.speed.Load()))

	helpKeys := []key.Binding{m.keys.insertion, m.keys.selection, m.keys.stop, m.keys.faster, m.keys.slower, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n\n%s  %s\n%s", title, m.canvas.View(), styles.help.Render(m.status), speed, helpView)
}

// recordsFromStudents converts persisted students into engine records.
// Marks are the sort key; the student's name is the display label.
func recordsFromStudents(students []*models.Student) []engine.Record {
	records := make([]engine.Record, len(students))
	for i, s := range students {
		records[i] = engine.Record{ID: s.ID(), Label: s.Name(), Key: s.Marks()}
	}
	return records
}

// statusForError maps engine and repository errors onto the status line.
func statusForError(err error) string {
	switch {
	case errors.Is(err, shared.ErrBusy):
		return "A sort is already running."
	case errors.Is(err, shared.ErrNoData):
		return "No data."
	case errors.Is(err, shared.ErrDuplicateRoll):
		return "Roll number must be unique."
	case errors.Is(err, shared.ErrInvalidInput):
		return "Fill all fields."
	default:
		return err.Error()
	}
}
