// ABOUTME: Terminal main window composing the measurement forms and data tables.
// ABOUTME: Wires page navigation, commits, deletes, and settings persistence to keys.
package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/harperreed/minds/internal/form"
	"github.com/harperreed/minds/internal/models"
	"github.com/harperreed/minds/internal/navigation"
	"github.com/harperreed/minds/internal/settings"
	"github.com/harperreed/minds/internal/storage"
	"go.uber.org/zap"
)

// Settings is the persisted UI state the window restores and saves.
type Settings interface {
	navigation.PageStore
	LastPageIndex() (int, error)
	Geometry() (settings.Geometry, bool, error)
	SaveGeometry(settings.Geometry) error
	WindowState() (settings.WindowState, bool, error)
	SaveWindowState(settings.WindowState) error
	SaveSliders(models.Category, map[string]int) error
	RestoreSliders(models.Category) (map[string]int, error)
}

// Options configures the main window.
type Options struct {
	Store         storage.Repository
	Settings      Settings
	Log           *zap.SugaredLogger
	Clock         func() time.Time
	RestoreDrafts bool
}

// frame is the window whose size follows the page shown.
type frame struct {
	size navigation.Size
}

func (f *frame) SetFixedSize(s navigation.Size) {
	f.size = s
}

const tableHeight = 12

var pageActions = map[string]string{
	"1": "show-mm",
	"2": "show-wefe",
	"3": "show-cspr",
	"4": "show-data",
}

// Model is the bubbletea model of the main window.
type Model struct {
	ctx      context.Context
	log      *zap.SugaredLogger
	settings Settings

	forms       map[models.Category]*form.Form
	projections []*storage.Projection
	nav         *navigation.Navigator
	frame       *frame

	focus     map[navigation.Page]int
	dataTable int
	selected  map[int]bool

	table         table.Model
	tableCategory models.Category

	width, height int
	status        string
	statusErr     bool
	saveErr       error
}

// New builds the main window and restores the saved state.
func New(ctx context.Context, opts Options) (*Model, error) {
	if opts.Store == nil {
		return nil, errors.New("tui: no store")
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	m := &Model{
		ctx:      ctx,
		log:      log,
		settings: opts.Settings,
		forms:    make(map[models.Category]*form.Form, len(models.AllCategories)),
		frame:    &frame{},
		focus:    make(map[navigation.Page]int),
		selected: make(map[int]bool),
	}

	for _, c := range models.AllCategories {
		p, err := storage.NewProjection(opts.Store, c)
		if err != nil {
			return nil, err
		}
		if err := p.Select(ctx); err != nil {
			return nil, fmt.Errorf("load %s: %w", c, err)
		}
		m.projections = append(m.projections, p)

		f, err := form.New(c, opts.Store, form.WithClock(clock), form.WithLogger(log))
		if err != nil {
			return nil, err
		}
		f.OnCommitted(m.committed)
		m.forms[c] = f
	}

	var pageStore navigation.PageStore
	if opts.Settings != nil {
		pageStore = opts.Settings
	}
	m.nav = navigation.New(m.frame, pageStore, log)

	start := navigation.PageMentalMental
	if opts.Settings != nil {
		if err := m.restore(opts.RestoreDrafts); err != nil {
			m.setError(err)
		}
		i, err := opts.Settings.LastPageIndex()
		if err != nil {
			m.setError(err)
		}
		start = navigation.PageFromIndex(i)
	}
	if err := m.nav.Switch(start); err != nil {
		m.setError(err)
	}
	m.refreshTable()
	return m, nil
}

func (m *Model) restore(drafts bool) error {
	var errs []error

	g, ok, err := m.settings.Geometry()
	if err != nil {
		errs = append(errs, err)
	} else if ok {
		m.width, m.height = g.Width, g.Height
	}

	ws, ok, err := m.settings.WindowState()
	if err != nil {
		errs = append(errs, err)
	} else if ok {
		for name, i := range ws.Focus {
			if p, err := navigation.ParsePage(name); err == nil {
				m.focus[p] = i
			}
		}
		if ws.DataTable >= 0 && ws.DataTable < len(m.projections) {
			m.dataTable = ws.DataTable
		}
	}

	if drafts {
		for _, c := range models.AllCategories {
			values, err := m.settings.RestoreSliders(c)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if values != nil {
				m.forms[c].Restore(values)
			}
		}
	}
	return errors.Join(errs...)
}

// Save writes geometry, window state, and slider drafts.
func (m *Model) Save() error {
	if m.settings == nil {
		return nil
	}
	var errs []error
	if err := m.settings.SaveGeometry(settings.Geometry{Width: m.width, Height: m.height}); err != nil {
		errs = append(errs, err)
	}

	ws := settings.WindowState{Focus: make(map[string]int, len(m.focus)), DataTable: m.dataTable}
	for p, i := range m.focus {
		ws.Focus[p.String()] = i
	}
	if err := m.settings.SaveWindowState(ws); err != nil {
		errs = append(errs, err)
	}

	for _, c := range models.AllCategories {
		if err := m.settings.SaveSliders(c, m.forms[c].Values()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Err returns the error from the final save, if any.
func (m *Model) Err() error {
	return m.saveErr
}

// Page returns the page being shown.
func (m *Model) Page() navigation.Page {
	return m.nav.Current()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		if err := m.Save(); err != nil {
			m.log.Errorw("save window state failed", "error", err)
			m.saveErr = err
		}
		return m, tea.Quit
	}

	if action, ok := pageActions[key]; ok {
		if err := m.nav.Trigger(action); err != nil {
			m.setError(err)
			return m, nil
		}
		m.clearStatus()
		if m.nav.Current() == navigation.PageData {
			m.refreshTable()
		}
		return m, nil
	}

	if c, ok := m.nav.Current().Category(); ok {
		return m.handleFormKey(c, key)
	}
	return m.handleDataKey(msg)
}

func (m *Model) handleFormKey(c models.Category, key string) (tea.Model, tea.Cmd) {
	f := m.forms[c]
	page := m.nav.Current()
	n := len(f.Spec().Fields)
	i := m.focused(page, n)

	switch key {
	case "tab", "down", "j":
		m.focus[page] = (i + 1) % n
	case "shift+tab", "up", "k":
		m.focus[page] = (i + n - 1) % n
	case "left", "h":
		f.Nudge(i, -1)
	case "right", "l":
		f.Nudge(i, 1)
	case "ctrl+s", "enter":
		e, err := f.Commit(m.ctx)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Saved %s #%d at %s %s", f.Spec().Table, e.ID, e.Date, e.Time))
	}
	return m, nil
}

func (m *Model) handleDataKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.dataTable = (m.dataTable + 1) % len(m.projections)
		m.selected = make(map[int]bool)
		m.refreshTable()
		return m, nil
	case "shift+tab":
		m.dataTable = (m.dataTable + len(m.projections) - 1) % len(m.projections)
		m.selected = make(map[int]bool)
		m.refreshTable()
		return m, nil
	case " ", "space":
		if m.projection().Len() == 0 {
			return m, nil
		}
		row := m.table.Cursor()
		m.selected[row] = !m.selected[row]
		if !m.selected[row] {
			delete(m.selected, row)
		}
		m.refreshTable()
		return m, nil
	case "x", "delete":
		m.deleteSelected()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) deleteSelected() {
	p := m.projection()
	if p.Len() == 0 {
		return
	}
	rows := make([]int, 0, len(m.selected))
	for row := range m.selected {
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		rows = append(rows, m.table.Cursor())
	}
	sort.Ints(rows)

	n, err := p.DeleteRows(m.ctx, rows...)
	if err != nil {
		m.setError(err)
		return
	}
	m.selected = make(map[int]bool)
	m.refreshTable()
	m.setStatus(fmt.Sprintf("Deleted %d row(s) from %s", n, models.MustSpec(p.Category()).Table))
}

// committed re-selects the projection of the form that just wrote a row.
func (m *Model) committed(e *models.Entry) {
	for _, p := range m.projections {
		if p.Category() != e.Category {
			continue
		}
		if err := p.Select(m.ctx); err != nil {
			m.setError(err)
			return
		}
	}
	m.refreshTable()
}

func (m *Model) projection() *storage.Projection {
	return m.projections[m.dataTable]
}

func (m *Model) focused(page navigation.Page, n int) int {
	i := m.focus[page]
	if i < 0 || i >= n {
		i = 0
	}
	return i
}

func (m *Model) refreshTable() {
	p := m.projection()
	headers := p.Headers()

	cols := make([]table.Column, 0, len(headers)+1)
	cols = append(cols, table.Column{Title: " ", Width: 1})
	for _, h := range headers {
		w := len(h)
		if w < 4 {
			w = 4
		}
		cols = append(cols, table.Column{Title: h, Width: w})
	}

	rows := make([]table.Row, 0, p.Len())
	for i, e := range p.Rows() {
		mark := " "
		if m.selected[i] {
			mark = "*"
		}
		row := table.Row{mark, fmt.Sprintf("%d", e.ID), e.Date, e.Time}
		for _, v := range e.Values {
			row = append(row, fmt.Sprintf("%d", v))
		}
		if e.Summary != nil {
			row = append(row, fmt.Sprintf("%d", *e.Summary))
		} else if len(row) < len(cols) {
			row = append(row, "")
		}
		rows = append(rows, row)
	}

	if m.tableCategory != p.Category() {
		m.table = table.New(
			table.WithColumns(cols),
			table.WithRows(rows),
			table.WithFocused(true),
			table.WithHeight(tableHeight),
		)
		m.tableCategory = p.Category()
		return
	}
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
	m.table.SetRows(rows)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.log.Errorw("ui error", "page", m.pageName(), "error", err)
	m.status = err.Error()
	m.statusErr = true
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

func (m *Model) pageName() string {
	if m.nav == nil {
		return ""
	}
	return m.nav.Current().String()
}

// Run starts the main window and blocks until it quits.
func Run(ctx context.Context, opts Options) error {
	m, err := New(ctx, opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return m.Err()
}
