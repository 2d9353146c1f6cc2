package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ledgerworks/outlay/internal/model"
	sqlite3 "github.com/mattn/go-sqlite3"
)

// CreateExpense inserts a new expense and returns it with its assigned id.
// Returns ErrCategoryNotFound if categoryID does not reference a live category.
func (s *SQLiteStorage) CreateExpense(ctx context.Context, date string, categoryID int64, description string, amount float64) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(date, "date"); err != nil {
		return nil, err
	}

	exists, err := s.CategoryExists(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: id %d", ErrCategoryNotFound, categoryID)
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (date, category_id, description, amount) VALUES (?, ?, ?, ?)`,
		date, categoryID, description, amount)
	if err != nil {
		// The existence pre-check can race a concurrent category delete;
		// the foreign key constraint is the authoritative answer.
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
			return nil, fmt.Errorf("%w: id %d", ErrCategoryNotFound, categoryID)
		}
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get expense ID: %w", err)
	}

	slog.Info("created new expense", "id", id, "date", date, "category_id", categoryID, "amount", amount)
	return &model.Expense{
		ID:          id,
		Date:        date,
		CategoryID:  categoryID,
		Description: description,
		Amount:      amount,
	}, nil
}

// ListExpenses returns all expenses joined with their category names,
// most recent first (date descending, id descending within a date).
func (s *SQLiteStorage) ListExpenses(ctx context.Context) ([]model.ExpenseView, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT e.id, e.date, c.name, COALESCE(e.description, ''), e.amount
		FROM expenses e
		JOIN categories c ON e.category_id = c.id
		ORDER BY e.date DESC, e.id DESC`

	return s.queryExpenseViews(ctx, query)
}

// ListExpensesByDateRange returns expenses with start <= date <= end,
// joined with category names, ordered by date ascending.
// An inverted range yields an empty result, not an error.
func (s *SQLiteStorage) ListExpensesByDateRange(ctx context.Context, start, end string) ([]model.ExpenseView, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(start, "start"); err != nil {
		return nil, err
	}
	if err := validateString(end, "end"); err != nil {
		return nil, err
	}

	query := `
		SELECT e.id, e.date, c.name, COALESCE(e.description, ''), e.amount
		FROM expenses e
		JOIN categories c ON e.category_id = c.id
		WHERE e.date BETWEEN ? AND ?
		ORDER BY e.date, e.id`

	return s.queryExpenseViews(ctx, query, start, end)
}

// GetExpense returns the expense with the given id joined with its category
// name, or nil if no such expense exists.
func (s *SQLiteStorage) GetExpense(ctx context.Context, id int64) (*model.ExpenseView, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT e.id, e.date, c.name, COALESCE(e.description, ''), e.amount
		FROM expenses e
		JOIN categories c ON e.category_id = c.id
		WHERE e.id = ?`

	var view model.ExpenseView
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&view.ID, &view.Date, &view.Category, &view.Description, &view.Amount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query expense: %w", err)
	}

	return &view, nil
}

// SumExpenses returns the grand total of all expense amounts.
// An empty table sums to 0.
func (s *SQLiteStorage) SumExpenses(ctx context.Context) (float64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var total float64
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount), 0) FROM expenses`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum expenses: %w", err)
	}

	return total, nil
}

// CountExpenses returns the number of expense rows.
func (s *SQLiteStorage) CountExpenses(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	return count, nil
}

// TotalsByCategory returns per-category spending totals, largest first.
// Categories whose expenses sum to zero or below are omitted, as are
// categories with no expenses at all.
func (s *SQLiteStorage) TotalsByCategory(ctx context.Context) ([]model.CategoryTotal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT c.name, SUM(e.amount) AS total
		FROM expenses e
		JOIN categories c ON e.category_id = c.id
		GROUP BY c.name
		HAVING SUM(e.amount) > 0
		ORDER BY total DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query category totals: %w", err)
	}
	defer rows.Close()

	var totals []model.CategoryTotal
	for rows.Next() {
		var ct model.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		totals = append(totals, ct)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category totals: %w", err)
	}

	return totals, nil
}

// UpdateExpenseAmount sets the amount on the expense with the given id,
// leaving every other field untouched. Returns whether a row was affected.
func (s *SQLiteStorage) UpdateExpenseAmount(ctx context.Context, id int64, amount float64) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}

	result, err := s.db.ExecContext(ctx, `UPDATE expenses SET amount = ? WHERE id = ?`, amount, id)
	if err != nil {
		return false, fmt.Errorf("failed to update expense: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected > 0 {
		slog.Info("updated expense amount", "id", id, "amount", amount)
	}
	return affected > 0, nil
}

// DeleteExpense removes the expense with the given id.
// Returns whether a row was affected.
func (s *SQLiteStorage) DeleteExpense(ctx context.Context, id int64) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete expense: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected > 0 {
		slog.Info("deleted expense", "id", id)
	}
	return affected > 0, nil
}

// queryExpenseViews runs a query whose columns match the ExpenseView shape.
func (s *SQLiteStorage) queryExpenseViews(ctx context.Context, query string, args ...any) ([]model.ExpenseView, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var views []model.ExpenseView
	for rows.Next() {
		var view model.ExpenseView
		if err := rows.Scan(&view.ID, &view.Date, &view.Category, &view.Description, &view.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	slog.Debug("retrieved expenses", "count", len(views))
	return views, nil
}
