// Package tui implements the interactive expense-tracker menu on bubbletea.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ledgerworks/outlay/internal/input"
	"github.com/ledgerworks/outlay/internal/model"
)

// Store is the slice of the storage engine the menu consumes.
type Store interface {
	CreateCategory(ctx context.Context, name string) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateExpense(ctx context.Context, date string, categoryID int64, description string, amount float64) (*model.Expense, error)
	ListExpenses(ctx context.Context) ([]model.ExpenseView, error)
	SumExpenses(ctx context.Context) (float64, error)
	ListExpensesByDateRange(ctx context.Context, start, end string) ([]model.ExpenseView, error)
	TotalsByCategory(ctx context.Context) ([]model.CategoryTotal, error)
	UpdateExpenseAmount(ctx context.Context, id int64, amount float64) (bool, error)
	DeleteExpense(ctx context.Context, id int64) (bool, error)
}

// State represents the current state of the menu.
type State int

const (
	StateMenu State = iota
	StateForm
	StateResult
)

type action int

const (
	actionAddCategory action = iota
	actionViewCategories
	actionAddExpense
	actionViewExpenses
	actionViewRange
	actionViewTotals
	actionUpdateAmount
	actionDeleteExpense
	actionQuit
)

type menuItem struct {
	title  string
	action action
}

func menuItems() []menuItem {
	return []menuItem{
		{title: "Add category", action: actionAddCategory},
		{title: "View categories", action: actionViewCategories},
		{title: "Add expense", action: actionAddExpense},
		{title: "View all expenses", action: actionViewExpenses},
		{title: "View expenses between dates", action: actionViewRange},
		{title: "View total per category", action: actionViewTotals},
		{title: "Update expense amount", action: actionUpdateAmount},
		{title: "Delete expense", action: actionDeleteExpense},
		{title: "Quit", action: actionQuit},
	}
}

type fieldSpec struct {
	label       string
	placeholder string
}

func formFields(a action) []fieldSpec {
	switch a {
	case actionAddCategory:
		return []fieldSpec{{label: "Category name", placeholder: "Food"}}
	case actionAddExpense:
		return []fieldSpec{
			{label: "Date (empty for today)", placeholder: "YYYY-MM-DD"},
			{label: "Category ID", placeholder: "1"},
			{label: "Description", placeholder: "optional"},
			{label: "Amount", placeholder: "12.75"},
		}
	case actionViewRange:
		return []fieldSpec{
			{label: "Start date", placeholder: "YYYY-MM-DD"},
			{label: "End date", placeholder: "YYYY-MM-DD"},
		}
	case actionUpdateAmount:
		return []fieldSpec{
			{label: "Expense ID", placeholder: "1"},
			{label: "New amount", placeholder: "20.00"},
		}
	case actionDeleteExpense:
		return []fieldSpec{{label: "Expense ID", placeholder: "1"}}
	default:
		return nil
	}
}

// Model holds the interactive menu state.
type Model struct {
	ctx        context.Context
	store      Store
	err        error
	formError  string
	result     string
	formHint   string
	items      []menuItem
	inputs     []textinput.Model
	labels     []string
	keymap     KeyMap
	state      State
	action     action
	cursor     int
	focusIndex int
	width      int
	height     int
	quitting   bool
}

// NewModel creates the menu model over the given store. Storage
// operations dispatched by the menu run under ctx, so cancelling it
// (e.g. on SIGINT) aborts any in-flight statement.
func NewModel(ctx context.Context, store Store) Model {
	return Model{
		ctx:    ctx,
		store:  store,
		keymap: DefaultKeyMap(),
		state:  StateMenu,
		items:  menuItems(),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.state {
		case StateMenu:
			return m.updateMenu(msg)
		case StateForm:
			return m.updateForm(msg)
		case StateResult:
			return m.updateResult(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case resultMsg:
		m.state = StateResult
		m.result = msg.content

	case noticeMsg:
		m.state = StateResult
		m.result = renderNotice(msg)

	case categoriesHintMsg:
		m.formHint = msg.content

	case fatalErrMsg:
		m.err = msg.err
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Select):
		return m.selectItem(m.items[m.cursor].action)
	default:
		// Number keys jump straight to a menu entry, like the
		// classic numbered menu.
		if n := digitIndex(msg); n >= 0 && n < len(m.items) {
			m.cursor = n
			return m.selectItem(m.items[n].action)
		}
	}
	return m, nil
}

func digitIndex(msg tea.KeyMsg) int {
	s := msg.String()
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		return int(s[0] - '1')
	}
	return -1
}

func (m Model) selectItem(a action) (tea.Model, tea.Cmd) {
	switch a {
	case actionQuit:
		m.quitting = true
		return m, tea.Quit
	case actionViewCategories:
		return m, listCategoriesCmd(m.ctx, m.store)
	case actionViewExpenses:
		return m, listExpensesCmd(m.ctx, m.store)
	case actionViewTotals:
		return m, totalsCmd(m.ctx, m.store)
	default:
		return m.enterForm(a)
	}
}

func (m Model) enterForm(a action) (tea.Model, tea.Cmd) {
	specs := formFields(a)
	m.inputs = make([]textinput.Model, len(specs))
	m.labels = make([]string, len(specs))
	for i, spec := range specs {
		ti := textinput.New()
		ti.Placeholder = spec.placeholder
		ti.CharLimit = 64
		m.inputs[i] = ti
		m.labels[i] = spec.label
	}
	m.inputs[0].Focus()
	m.focusIndex = 0
	m.formError = ""
	m.formHint = ""
	m.action = a
	m.state = StateForm

	// Picking a category is easier with the list on screen.
	if a == actionAddExpense {
		return m, categoriesHintCmd(m.ctx, m.store)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A submitted form has no inputs while its storage result is in
	// flight; ignore keys until the result message lands.
	if len(m.inputs) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Back):
		m.state = StateMenu
		m.inputs = nil
		return m, nil

	case key.Matches(msg, m.keymap.NextField):
		if m.focusIndex == len(m.inputs)-1 && msg.String() == "enter" {
			return m.submitForm()
		}
		m.inputs[m.focusIndex].Blur()
		m.focusIndex = (m.focusIndex + 1) % len(m.inputs)
		m.inputs[m.focusIndex].Focus()
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return m, cmd
}

// submitForm validates the collected fields and dispatches the storage
// operation. Validation failures re-prompt without touching storage.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	values := make([]string, len(m.inputs))
	for i := range m.inputs {
		values[i] = m.inputs[i].Value()
	}

	switch m.action {
	case actionAddCategory:
		name, err := input.Name(values[0])
		if err != nil {
			return m.rejectForm(err)
		}
		return m.acceptForm(createCategoryCmd(m.ctx, m.store, name))

	case actionAddExpense:
		date, err := input.DateOrToday(values[0])
		if err != nil {
			return m.rejectForm(err)
		}
		categoryID, err := input.ID(strings.TrimSpace(values[1]))
		if err != nil {
			return m.rejectForm(err)
		}
		amount, err := input.Amount(values[3])
		if err != nil {
			return m.rejectForm(err)
		}
		description := strings.TrimSpace(values[2])
		return m.acceptForm(createExpenseCmd(m.ctx, m.store, date, categoryID, description, amount))

	case actionViewRange:
		start, err := input.Date(values[0])
		if err != nil {
			return m.rejectForm(err)
		}
		end, err := input.Date(values[1])
		if err != nil {
			return m.rejectForm(err)
		}
		return m.acceptForm(listRangeCmd(m.ctx, m.store, start, end))

	case actionUpdateAmount:
		id, err := input.ID(strings.TrimSpace(values[0]))
		if err != nil {
			return m.rejectForm(err)
		}
		amount, err := input.Amount(values[1])
		if err != nil {
			return m.rejectForm(err)
		}
		return m.acceptForm(updateAmountCmd(m.ctx, m.store, id, amount))

	case actionDeleteExpense:
		id, err := input.ID(strings.TrimSpace(values[0]))
		if err != nil {
			return m.rejectForm(err)
		}
		return m.acceptForm(deleteExpenseCmd(m.ctx, m.store, id))
	}

	return m, nil
}

func (m Model) rejectForm(err error) (tea.Model, tea.Cmd) {
	m.formError = err.Error()
	return m, nil
}

func (m Model) acceptForm(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.formError = ""
	m.inputs = nil
	return m, cmd
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Back), key.Matches(msg, m.keymap.Select):
		m.state = StateMenu
		m.result = ""
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// Err returns the fatal storage error that ended the session, if any.
func (m Model) Err() error {
	return m.err
}
