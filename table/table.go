package table

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/pkg/errors"

	"shopkeep/action"
	"shopkeep/column"
	nt "shopkeep/entity"
	"shopkeep/list"
	"shopkeep/message"
	"shopkeep/mutation"
	"shopkeep/theme"
)

// Config configures the table panel.
type Config struct {
	Kind     nt.ListKind
	PageSize int
	Columns  []column.Column
}

// TablePanel renders the current page of a product list, one action cell per row.
type TablePanel struct {
	list     list.State
	selected int // Position of selected row on the current page

	width  int
	height int

	cols         []column.Column
	headerBuilds int
	rows         []nt.Row
	body         [][]string
	failed       map[int64]error
	reported     map[int64]bool
	cells        map[int64]action.Cell

	env   column.Env
	table *table.Table

	caller mutation.Caller
	ctx    context.Context
	logger nt.Logger
}

// New creates a table panel showing cfg.Kind.
func (cfg *Config) New(ctx context.Context, env column.Env, caller mutation.Caller, lgr nt.Logger) TablePanel {

	kind := cfg.Kind
	if kind == "" {
		kind = nt.MainList
	}

	pnl := TablePanel{
		list:     list.New(kind, cfg.PageSize),
		failed:   map[int64]error{},
		reported: map[int64]bool{},
		cells:    map[int64]action.Cell{},
		env:      env,
		table:    table.New(),
		caller:   caller,
		ctx:      ctx,
		logger:   lgr,
	}

	cols := cfg.Columns
	if len(cols) == 0 {
		cols = column.Registry()
	}
	pnl = pnl.setColumns(column.Visible(cols))

	return pnl
}

func (pnl TablePanel) Init() tea.Cmd {
	return pnl.pageCmd()
}

func (pnl TablePanel) Update(msg tea.Msg) (TablePanel, tea.Cmd) {

	switch msg := msg.(type) {

	case SizeMsg:
		pnl.width = msg.Width
		pnl.height = msg.Height

	case PageMsg:
		if msg.Kind != pnl.list.Kind {
			return pnl, nil
		}
		before := pnl.list.Index
		pnl.list = pnl.list.SetPage(msg.Index, msg.Products, msg.Total)

		if pnl.list.Index != before {
			pnl.selected = 0
			if !pnl.list.Loaded() {
				var cmd tea.Cmd
				pnl, cmd = pnl.load()
				return pnl, tea.Batch(cmd, pnl.pageCmd())
			}
			return pnl.load()
		}
		if msg.Index != pnl.list.Index {
			return pnl, nil
		}
		return pnl.load()

	case ColumnsMsg:
		visible := column.Visible(msg.Columns)
		if column.Same(visible, pnl.cols) {
			return pnl, nil
		}
		pnl = pnl.setColumns(visible)
		return pnl.render()

	case ThemeMsg:
		pnl.env.Theme = msg.Theme
		return pnl.render()

	case ListMsg:
		if msg.Kind == pnl.list.Kind {
			return pnl, nil
		}
		pnl.list = list.New(msg.Kind, pnl.list.Size)
		pnl.selected = 0

		var cmd tea.Cmd
		pnl, cmd = pnl.load()
		return pnl, tea.Batch(cmd, pnl.pageCmd())

	case message.RefreshMsg:
		pnl.list = pnl.list.Stale()
		return pnl, pnl.pageCmd()

	case message.CloseModalMsg, mutation.ResultMsg:
		var cmds []tea.Cmd
		cells := make(map[int64]action.Cell, len(pnl.cells))
		for id, cell := range pnl.cells {
			var cmd tea.Cmd
			cells[id], cmd = cell.Update(msg)
			cmds = append(cmds, cmd)
		}
		pnl.cells = cells
		return pnl, tea.Batch(cmds...)

	case tea.KeyPressMsg:
		return pnl.key(msg)
	}

	return pnl, nil
}

// Render renders the table with the current page.
func (pnl TablePanel) Render() string {

	pnl.env.Theme.StyleTable(pnl.table)
	pnl.table.StyleFunc(pnl.env.Theme.RowStyler(pnl.selected))

	pnl.table.ClearRows()
	for _, cells := range pnl.body {
		pnl.table.Row(cells...)
	}

	return clip(pnl.table.String(), pnl.width, pnl.height)
}

func (pnl TablePanel) View() tea.View {
	return tea.NewView(pnl.Render())
}

// Selected returns the selected row.
func (pnl TablePanel) Selected() (row nt.Row, ok bool) {

	if pnl.selected < 0 || pnl.selected >= len(pnl.rows) {
		return
	}
	return pnl.rows[pnl.selected], true
}

// List returns the list state.
func (pnl TablePanel) List() list.State {
	return pnl.list
}

// Failed returns the render error of product id's row, if any.
func (pnl TablePanel) Failed(id int64) error {
	return pnl.failed[id]
}

// Columns returns the visible columns.
func (pnl TablePanel) Columns() []column.Column {
	return pnl.cols
}

// Cell returns the action cell of product id.
func (pnl TablePanel) Cell(id int64) (cell action.Cell, ok bool) {
	cell, ok = pnl.cells[id]
	return
}

// ModalView renders an open modal by id, "" when no row owns it.
func (pnl TablePanel) ModalView(modalId string) string {

	for _, cell := range pnl.cells {
		if ctl, ok := cell.Owns(modalId); ok {
			return cell.View(pnl.env.Theme, ctl)
		}
	}
	return ""
}

// ModalKey routes a key press to the row owning modalId.
func (pnl TablePanel) ModalKey(modalId string, msg tea.KeyPressMsg) (TablePanel, tea.Cmd) {

	for id, cell := range pnl.cells {
		ctl, ok := cell.Owns(modalId)
		if !ok {
			continue
		}

		var cmd tea.Cmd
		cell, cmd = cell.Key(ctl, msg)
		pnl.cells = cloneCells(pnl.cells)
		pnl.cells[id] = cell
		return pnl, cmd
	}
	return pnl, nil
}

// unexported

func (pnl TablePanel) key(msg tea.KeyPressMsg) (TablePanel, tea.Cmd) {

	last := len(pnl.rows) - 1
	before := pnl.selected

	switch msg.String() {
	case "up", "k":
		if pnl.selected > 0 {
			pnl.selected--
		}

	case "down", "j":
		if pnl.selected < last {
			pnl.selected++
		}

	case "g":
		pnl.selected = 0

	case "G":
		pnl.selected = max(last, 0)

	case "n", "pgdown":
		return pnl.turn(pnl.list.Index + 1)

	case "p", "pgup":
		return pnl.turn(pnl.list.Index - 1)

	default:
		ctl, ok := action.ForKey(msg.String())
		if ok {
			return pnl.toggle(ctl)
		}
		return pnl, nil
	}

	if pnl.selected != before {
		return pnl, pnl.selectedCmd()
	}
	return pnl, nil
}

func (pnl TablePanel) turn(index int) (TablePanel, tea.Cmd) {

	if index < 0 || index == pnl.list.Index {
		return pnl, nil
	}
	if count := pnl.list.PageCount(); count > 0 && index >= count {
		return pnl, nil
	}

	pnl.list = pnl.list.Goto(index)
	pnl.selected = 0

	if pnl.list.Loaded() {
		return pnl.load()
	}

	var cmd tea.Cmd
	pnl, cmd = pnl.load()
	return pnl, tea.Batch(cmd, pnl.pageCmd())
}

func (pnl TablePanel) toggle(ctl action.Control) (TablePanel, tea.Cmd) {

	row, ok := pnl.Selected()
	if !ok {
		return pnl, nil
	}

	cell, ok := pnl.cells[row.Key()]
	if !ok {
		return pnl, message.ErrorCmd(errors.Errorf("no action cell for product %d", row.Key()))
	}

	cell, cmd, err := cell.Toggle(ctl)
	if err != nil {
		ctx := pnl.logger.WithFields(pnl.ctx, "product_id", row.Key())
		pnl.logger.Error(ctx, "failed to open action", err, "control", ctl.String())
		return pnl, message.ErrorCmd(err)
	}

	pnl.cells = cloneCells(pnl.cells)
	pnl.cells[row.Key()] = cell

	return pnl, cmd
}

// load takes rows from the current page, syncs cells and renders.
func (pnl TablePanel) load() (TablePanel, tea.Cmd) {

	pnl.rows = pnl.list.Rows()
	if pnl.selected >= len(pnl.rows) {
		pnl.selected = max(len(pnl.rows)-1, 0)
	}

	pnl, syncCmd := pnl.syncCells()
	pnl, renderCmd := pnl.render()

	return pnl, tea.Batch(syncCmd, renderCmd, pnl.selectedCmd())
}

// syncCells keeps cells of products still shown and drops the rest, closing their modals.
func (pnl TablePanel) syncCells() (TablePanel, tea.Cmd) {

	var cmds []tea.Cmd
	cells := make(map[int64]action.Cell, len(pnl.rows))

	for _, row := range pnl.rows {
		cell, ok := pnl.cells[row.Key()]
		if !ok {
			cells[row.Key()] = action.New(pnl.ctx, row, pnl.caller, pnl.logger)
			continue
		}

		var cmd tea.Cmd
		cells[row.Key()], cmd = cell.SetRow(row)
		cmds = append(cmds, cmd)
	}

	for id, cell := range pnl.cells {
		if _, ok := cells[id]; ok {
			continue
		}
		for _, ctl := range []action.Control{action.UpdateControl, action.DeleteControl, action.RestoreControl} {
			if cell.IsOpen(ctl) {
				cmds = append(cmds, message.CloseModalCmd(action.ModalId(id, ctl)))
			}
		}
	}

	pnl.cells = cells
	return pnl, tea.Batch(cmds...)
}

// render renders body cells, isolating failures to the row they occur in.
// Each failing row is reported once.
func (pnl TablePanel) render() (TablePanel, tea.Cmd) {

	var cmds []tea.Cmd
	body := make([][]string, len(pnl.rows))
	failed := map[int64]error{}

	for i, row := range pnl.rows {
		cells := make([]string, len(pnl.cols))

		for j, col := range pnl.cols {
			cell, err := column.Render(pnl.env, row, col)
			if err != nil {
				failed[row.Key()] = err
				cell = errorCell(err, col.Width)
			}
			cells[j] = cell
		}
		body[i] = cells

		err, ok := failed[row.Key()]
		if ok && !pnl.reported[row.Key()] {
			pnl.reported = cloneReported(pnl.reported)
			pnl.reported[row.Key()] = true

			ctx := pnl.logger.WithFields(pnl.ctx, "product_id", row.Key())
			pnl.logger.Error(ctx, "failed to render row", err)
			cmds = append(cmds, message.ErrorCmd(err))
		}
	}

	pnl.body = body
	pnl.failed = failed

	return pnl, tea.Batch(cmds...)
}

func (pnl TablePanel) setColumns(cols []column.Column) TablePanel {

	headers := make([]string, len(cols))
	for i, col := range cols {
		headers[i] = fmt.Sprintf("%-*s", col.Width, col.Header)
	}

	pnl.table.Headers(headers...)
	pnl.cols = cols
	pnl.headerBuilds++

	return pnl
}

// help

func errorCell(err error, width int) string {

	text := errors.Cause(err).Error()

	var se *nt.StatusError
	if errors.As(err, &se) {
		text = "!" + se.Value
	}
	text = strings.ReplaceAll(text, "\n", " ")
	if width > 0 {
		text = ansi.Truncate(text, width, "…")
	}
	return theme.ErrorStyle.Render(text)
}

// clip cuts rendered output to the panel, zero meaning unbounded.
func clip(out string, width, height int) string {

	lines := strings.Split(out, "\n")
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	if width > 0 {
		for i, line := range lines {
			lines[i] = ansi.Truncate(line, width, "")
		}
	}
	return strings.Join(lines, "\n")
}

func cloneCells(in map[int64]action.Cell) map[int64]action.Cell {

	out := make(map[int64]action.Cell, len(in))
	for id, cell := range in {
		out[id] = cell
	}
	return out
}

func cloneReported(in map[int64]bool) map[int64]bool {

	out := make(map[int64]bool, len(in)+1)
	for id, done := range in {
		out[id] = done
	}
	return out
}
