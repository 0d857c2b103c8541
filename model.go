package shopkeep

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/pkg/errors"

	"shopkeep/column"
	"shopkeep/detail"
	nt "shopkeep/entity"
	"shopkeep/form"
	"shopkeep/imgview"
	"shopkeep/message"
	"shopkeep/modal"
	"shopkeep/mutation"
	"shopkeep/table"
	"shopkeep/theme"
)

const (
	footerHeight  = 2
	createModalId = "create"
	formWidth     = 64
)

// Model is the bubbletea model for the product admin panel.
type Model struct {
	store       Store
	cfg         Config
	logger      nt.Logger
	ctx         context.Context
	errorString string

	theme      theme.Theme
	screen     Screen
	stack      modal.Stack
	focusTable bool // Keys go to the table while modals stay open

	create     modal.Modal
	createForm *form.Form

	TablePanel  table.TablePanel
	DetailPanel detail.DetailPanel
	selectedRow int

	Width  int
	Height int
}

// New creates the admin panel model.
func (cfg *Config) New(ctx context.Context, store Store, lgr nt.Logger) (model Model, err error) {

	mode, err := theme.ParseMode(cfg.Mode)
	if err != nil {
		return
	}
	th := theme.New(mode)

	loc := time.Local
	if cfg.Timezone != "" {
		loc, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			err = errors.Wrapf(err, "failed to load timezone %q", cfg.Timezone)
			return
		}
	}

	dates, err := column.NewDateFormat(cfg.Locale, loc)
	if err != nil {
		return
	}

	cols, err := loadLayout(cfg.LayoutFile)
	if err != nil {
		return
	}

	env := column.Env{
		Theme:  th,
		Dates:  dates,
		Images: imgview.Thumb{Border: th.MutedStyle()},
	}

	tableCfg := &table.Config{
		Kind:     nt.MainList,
		PageSize: cfg.PageSize,
		Columns:  cols,
	}

	model = Model{
		store:  store,
		cfg:    *cfg,
		logger: lgr,
		ctx:    ctx,
		theme:  th,
		screen: TableScreen,
		create: modal.Modal{
			Id:    createModalId,
			Title: "Create A new product?",
			Width: formWidth,
		},
		TablePanel:  tableCfg.New(ctx, env, store, lgr),
		DetailPanel: detail.NewDetailPanel(),
	}
	return
}

func (m Model) Init() tea.Cmd {
	return m.TablePanel.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {

	switch msg := msg.(type) {

	case message.GetPageMsg:
		return m, m.getPage(msg)

	case message.ErrorMsg:
		m.logger.Error(m.ctx, "error msg", msg.Err)
		m.errorString = msg.Err.Error()
		return m, nil

	case message.SelectedMsg:
		m.selectedRow = msg.Row
		var cmd tea.Cmd
		m.DetailPanel, cmd = m.DetailPanel.Update(detail.ProductMsg{Product: msg.Product})
		return m, cmd

	case message.ModalOpenedMsg:
		m.stack = m.stack.Push(msg.ModalId)
		m.focusTable = false
		return m, nil

	case message.ModalClosedMsg:
		m.stack = m.stack.Remove(msg.ModalId)
		return m, nil

	case message.CloseModalMsg:
		m.stack = m.stack.Remove(msg.ModalId)
		if msg.ModalId == createModalId {
			m = m.closeCreate()
			return m, nil
		}

	case mutation.ResultMsg:
		if m.createForm != nil {
			frm, cmd1 := m.createForm.Update(msg)
			m.createForm = &frm

			var cmd2 tea.Cmd
			m.TablePanel, cmd2 = m.TablePanel.Update(msg)
			return m, tea.Batch(cmd1, cmd2)
		}

	case tea.KeyPressMsg:
		if m.errorString != "" {
			m.errorString = ""
		}

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if msg.String() == "ctrl+b" && m.stack.Len() > 0 {
			m.focusTable = !m.focusTable
			return m, nil
		}

		if top, ok := m.stack.Top(); ok && !m.focusTable {
			return m.modalKey(top, msg)
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit

		case "esc":
			if m.screen != TableScreen {
				return m.switchToTable()
			}
			return m, tea.Quit

		case "c":
			if m.create.Visible {
				m.stack = m.stack.Push(createModalId)
				m.focusTable = false
				return m, nil
			}
			return m.openCreate()

		case "tab":
			return m.switchList()

		case "t":
			m.theme = m.theme.Toggle()
			var cmd tea.Cmd
			m.TablePanel, cmd = m.TablePanel.Update(table.ThemeMsg{Theme: m.theme})
			return m, cmd

		case "L":
			return m, m.reloadColumns()

		case "enter", "right", "l":
			if m.screen == TableScreen {
				return m.switchToDetail()
			}

		case "left", "h":
			if m.screen == DetailScreen {
				return m.switchToTable()
			}
		}

		var cmd tea.Cmd
		switch m.screen {
		case DetailScreen:
			m.DetailPanel, cmd = m.DetailPanel.Update(msg)
		default:
			m.TablePanel, cmd = m.TablePanel.Update(msg)
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

		var cmd1, cmd2 tea.Cmd
		m.TablePanel, cmd1 = m.TablePanel.Update(table.SizeMsg{Width: msg.Width, Height: msg.Height - footerHeight})
		m.DetailPanel, cmd2 = m.DetailPanel.Update(detail.SizeMsg{Width: msg.Width, Height: msg.Height - footerHeight})
		return m, tea.Batch(cmd1, cmd2)
	}

	var cmd1, cmd2 tea.Cmd
	m.TablePanel, cmd1 = m.TablePanel.Update(msg)
	m.DetailPanel, cmd2 = m.DetailPanel.Update(msg)
	return m, tea.Batch(cmd1, cmd2)
}

func (m Model) View() tea.View {

	if m.Width == 0 {
		return tea.NewView("Loading...")
	}

	var screenContent string
	switch m.screen {
	case DetailScreen:
		screenContent = m.DetailPanel.Render()
	default:
		screenContent = m.TablePanel.Render()
	}

	canvas := lipgloss.NewCanvas(m.Width, m.Height)
	canvas.Compose(lipgloss.NewLayer("screen", screenContent))

	for i, id := range m.stack.Ids() {
		content := m.modalView(id)
		if content == "" {
			continue
		}
		x := max((m.Width-lipgloss.Width(content))/2, 0) + i*2
		y := max((m.Height-footerHeight-lipgloss.Height(content))/2, 0) + i
		canvas.Compose(lipgloss.NewLayer(id, content).X(x).Y(y))
	}

	footerContent := RenderFooter(m.theme, m.TablePanel.List(), m.selectedRow, m.store.Name(), m.Width)
	if m.errorString != "" {
		footerContent = theme.ErrorStyle.Render(m.errorString)
	}
	footer := lipgloss.JoinVertical(lipgloss.Left, footerContent, m.theme.MutedStyle().Render(helpText))
	canvas.Compose(lipgloss.NewLayer("footer", footer).Y(m.Height - footerHeight))

	view := tea.NewView(canvas)
	view.AltScreen = true
	return view
}

// unexported

func (m Model) modalKey(id string, msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {

	if id != createModalId {
		var cmd tea.Cmd
		m.TablePanel, cmd = m.TablePanel.ModalKey(id, msg)
		return m, cmd
	}

	if msg.String() == "esc" {
		m.stack = m.stack.Remove(createModalId)
		m = m.closeCreate()
		return m, nil
	}

	if m.createForm == nil {
		return m, nil
	}

	frm, cmd := m.createForm.Update(msg)
	m.createForm = &frm
	return m, cmd
}

func (m Model) modalView(id string) string {

	if id != createModalId {
		return m.TablePanel.ModalView(id)
	}
	if m.createForm == nil {
		return ""
	}
	return m.create.Render(m.theme, m.createForm.View(m.theme))
}

func (m Model) openCreate() (tea.Model, tea.Cmd) {

	cfg := &form.Config{
		Kind:    form.Create,
		ModalId: createModalId,
		Init:    nt.Values{Status: nt.Hidden},
	}
	frm := cfg.New(m.ctx, m.store, m.logger)

	m.createForm = &frm
	m.create = m.create.Toggle()
	m.stack = m.stack.Push(createModalId)
	m.focusTable = false

	return m, nil
}

func (m Model) closeCreate() Model {

	m.create = m.create.Close()
	m.createForm = nil
	return m
}

func (m Model) switchList() (tea.Model, tea.Cmd) {

	kind := nt.RemovedList
	if m.TablePanel.List().Kind == nt.RemovedList {
		kind = nt.MainList
	}

	var cmd tea.Cmd
	m.TablePanel, cmd = m.TablePanel.Update(table.ListMsg{Kind: kind})
	return m, cmd
}

func (m Model) switchToDetail() (tea.Model, tea.Cmd) {

	if _, ok := m.TablePanel.Selected(); !ok {
		return m, nil
	}

	m.screen = DetailScreen
	m.DetailPanel.Focused = true
	return m, nil
}

func (m Model) switchToTable() (tea.Model, tea.Cmd) {

	m.screen = TableScreen
	m.DetailPanel.Focused = false
	return m, nil
}
