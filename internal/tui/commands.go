package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ledgerworks/outlay/internal/cli"
	"github.com/ledgerworks/outlay/internal/storage"
)

// categoriesHintMsg carries the category list shown above the
// add-expense form.
type categoriesHintMsg struct {
	content string
}

// Storage operations run as commands so the update loop never blocks.
// They inherit the session context, so cancelling it aborts them.
// Domain outcomes come back as notices; anything else is fatal.

func createCategoryCmd(ctx context.Context, store Store, name string) tea.Cmd {
	return func() tea.Msg {
		cat, err := store.CreateCategory(ctx, name)
		if errors.Is(err, storage.ErrDuplicateCategory) {
			return noticeMsg{text: "Category already exists."}
		}
		if err != nil {
			return fatalErrMsg{err: err}
		}
		return noticeMsg{ok: true, text: fmt.Sprintf("Category %q added with ID %d.", cat.Name, cat.ID)}
	}
}

func listCategoriesCmd(ctx context.Context, store Store) tea.Cmd {
	return func() tea.Msg {
		categories, err := store.ListCategories(ctx)
		if err != nil {
			return fatalErrMsg{err: err}
		}
		if len(categories) == 0 {
			return noticeMsg{text: "No categories found. Add some first."}
		}
		return resultMsg{content: cli.FormatCategoryTable(categories)}
	}
}

func categoriesHintCmd(ctx context.Context, store Store) tea.Cmd {
	return func() tea.Msg {
		categories, err := store.ListCategories(ctx)
		if err != nil {
			return fatalErrMsg{err: err}
		}
		if len(categories) == 0 {
			return categoriesHintMsg{content: cli.WarningStyle.Render("No categories exist yet; add one first.")}
		}
		return categoriesHintMsg{content: cli.FormatCategoryTable(categories)}
	}
}

func createExpenseCmd(ctx context.Context, store Store, date string, categoryID int64, description string, amount float64) tea.Cmd {
	return func() tea.Msg {
		exp, err := store.CreateExpense(ctx, date, categoryID, description, amount)
		if errors.Is(err, storage.ErrCategoryNotFound) {
			return noticeMsg{text: "Category ID not found."}
		}
		if err != nil {
			return fatalErrMsg{err: err}
		}
		return noticeMsg{ok: true, text: fmt.Sprintf("Expense added with ID %d.", exp.ID)}
	}
}

func listExpensesCmd(ctx context.Context, store Store) tea.Cmd {
	return func() tea.Msg {
		expenses, err := store.ListExpenses(ctx)
		if err != nil {
			return fatalErrMsg{err: err}
		}
		total, err := store.SumExpenses(ctx)
		if err != nil {
			return fatalErrMsg{err: err}
		}
		if len(expenses) == 0 {
			return noticeMsg{text: "No expenses recorded."}
		}

		content := cli.FormatExpenseTable(expenses) +
			"\n" + cli.TotalStyle.Render("Total spent: "+cli.FormatAmount(total))
		return resultMsg{content: content}
	}
}

func listRangeCmd(ctx context.Context, store Store, start, end string) tea.Cmd {
	return func() tea.Msg {
		expenses, err := store.ListExpensesByDateRange(ctx, start, end)
		if err != nil {
			return fatalErrMsg{err: err}
		}
		if len(expenses) == 0 {
			return noticeMsg{text: "No expenses in this date range."}
		}
		return resultMsg{content: cli.FormatExpenseTable(expenses)}
	}
}

func totalsCmd(ctx context.Context, store Store) tea.Cmd {
	return func() tea.Msg {
		totals, err := store.TotalsByCategory(ctx)
		if err != nil {
			return fatalErrMsg{err: err}
		}
		if len(totals) == 0 {
			return noticeMsg{text: "No expenses to summarize."}
		}
		return resultMsg{content: cli.FormatTotalsTable(totals)}
	}
}

func updateAmountCmd(ctx context.Context, store Store, id int64, amount float64) tea.Cmd {
	return func() tea.Msg {
		updated, err := store.UpdateExpenseAmount(ctx, id, amount)
		if err != nil {
			return fatalErrMsg{err: err}
		}
		if !updated {
			return noticeMsg{text: "No expense found with that ID."}
		}
		return noticeMsg{ok: true, text: fmt.Sprintf("Expense %d updated.", id)}
	}
}

func deleteExpenseCmd(ctx context.Context, store Store, id int64) tea.Cmd {
	return func() tea.Msg {
		deleted, err := store.DeleteExpense(ctx, id)
		if err != nil {
			return fatalErrMsg{err: err}
		}
		if !deleted {
			return noticeMsg{text: "No expense found with that ID."}
		}
		return noticeMsg{ok: true, text: fmt.Sprintf("Expense %d deleted.", id)}
	}
}
