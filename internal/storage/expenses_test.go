package storage

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/ledgerworks/outlay/internal/model"
)

// Helper to create storage pre-seeded with a category.
func createTestStorageWithCategory(t *testing.T, name string) (*SQLiteStorage, *model.Category, func()) {
	t.Helper()
	store, cleanup := createTestStorage(t)

	cat, err := store.CreateCategory(context.Background(), name)
	if err != nil {
		cleanup()
		t.Fatalf("Failed to create category: %v", err)
	}
	return store, cat, cleanup
}

func TestSQLiteStorage_CreateExpense(t *testing.T) {
	store, cat, cleanup := createTestStorageWithCategory(t, "Food")
	defer cleanup()
	ctx := context.Background()

	exp, err := store.CreateExpense(ctx, "2024-05-12", cat.ID, "lunch", 12.75)
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	if exp.ID <= 0 {
		t.Errorf("Expected positive id, got %d", exp.ID)
	}

	views, err := store.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("Expected 1 expense, got %d", len(views))
	}

	got := views[0]
	if got.ID != exp.ID || got.Date != "2024-05-12" || got.Category != "Food" ||
		got.Description != "lunch" || got.Amount != 12.75 {
		t.Errorf("Round trip mismatch: %+v", got)
	}
}

func TestSQLiteStorage_CreateExpense_UnknownCategory(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.CreateExpense(ctx, "2024-05-12", 42, "lunch", 12.75)
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("Expected ErrCategoryNotFound, got %v", err)
	}

	// Failed insert leaves the expense set unchanged
	count, err := store.CountExpenses(ctx)
	if err != nil {
		t.Fatalf("CountExpenses failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 expenses, got %d", count)
	}
}

func TestSQLiteStorage_CreateExpense_EmptyDescriptionAndNegativeAmount(t *testing.T) {
	store, cat, cleanup := createTestStorageWithCategory(t, "Refunds")
	defer cleanup()
	ctx := context.Background()

	// Description is optional; negative amounts are accepted as-is
	if _, err := store.CreateExpense(ctx, "2024-05-12", cat.ID, "", -30.00); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	views, err := store.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(views) != 1 || views[0].Description != "" || views[0].Amount != -30.00 {
		t.Errorf("Unexpected expense row: %+v", views)
	}
}

func TestSQLiteStorage_ListExpenses_NewestFirst(t *testing.T) {
	store, cat, cleanup := createTestStorageWithCategory(t, "Food")
	defer cleanup()
	ctx := context.Background()

	// Inserted out of date order; two rows share a date to exercise the
	// id tiebreak.
	dates := []string{"2024-01-15", "2024-02-01", "2024-01-15", "2024-01-01"}
	ids := make([]int64, len(dates))
	for i, date := range dates {
		exp, err := store.CreateExpense(ctx, date, cat.ID, "", float64(i+1))
		if err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		ids[i] = exp.ID
	}

	views, err := store.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(views) != 4 {
		t.Fatalf("Expected 4 expenses, got %d", len(views))
	}

	// date DESC, then id DESC within the shared 2024-01-15 date
	wantIDs := []int64{ids[1], ids[2], ids[0], ids[3]}
	for i, want := range wantIDs {
		if views[i].ID != want {
			t.Errorf("Position %d: expected id %d, got %d", i, want, views[i].ID)
		}
	}
}

func TestSQLiteStorage_SumExpenses(t *testing.T) {
	store, cat, cleanup := createTestStorageWithCategory(t, "Food")
	defer cleanup()
	ctx := context.Background()

	// Empty table sums to zero, not an error
	total, err := store.SumExpenses(ctx)
	if err != nil {
		t.Fatalf("SumExpenses failed: %v", err)
	}
	if total != 0 {
		t.Errorf("Expected 0 on empty table, got %v", total)
	}

	for _, amount := range []float64{10.50, 4.25, -2.00} {
		if _, err := store.CreateExpense(ctx, "2024-01-01", cat.ID, "", amount); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
	}

	total, err = store.SumExpenses(ctx)
	if err != nil {
		t.Fatalf("SumExpenses failed: %v", err)
	}
	if math.Abs(total-12.75) > 1e-9 {
		t.Errorf("Expected 12.75, got %v", total)
	}
}

func TestSQLiteStorage_ListExpensesByDateRange(t *testing.T) {
	store, cat, cleanup := createTestStorageWithCategory(t, "Food")
	defer cleanup()
	ctx := context.Background()

	for _, date := range []string{"2024-01-01", "2024-01-15", "2024-02-01"} {
		if _, err := store.CreateExpense(ctx, date, cat.ID, "", 1); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
	}

	tests := []struct {
		name      string
		start     string
		end       string
		wantDates []string
	}{
		{
			name:      "inclusive bounds",
			start:     "2024-01-01",
			end:       "2024-01-31",
			wantDates: []string{"2024-01-01", "2024-01-15"},
		},
		{
			name:      "exact single day",
			start:     "2024-02-01",
			end:       "2024-02-01",
			wantDates: []string{"2024-02-01"},
		},
		{
			name:      "no matches",
			start:     "2023-01-01",
			end:       "2023-12-31",
			wantDates: nil,
		},
		{
			name:      "inverted range yields empty result",
			start:     "2024-02-01",
			end:       "2024-01-01",
			wantDates: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			views, err := store.ListExpensesByDateRange(ctx, tt.start, tt.end)
			if err != nil {
				t.Fatalf("ListExpensesByDateRange failed: %v", err)
			}
			if len(views) != len(tt.wantDates) {
				t.Fatalf("Expected %d rows, got %d", len(tt.wantDates), len(views))
			}
			// Ordered by date ascending
			for i, date := range tt.wantDates {
				if views[i].Date != date {
					t.Errorf("Position %d: expected date %s, got %s", i, date, views[i].Date)
				}
			}
		})
	}
}

func TestSQLiteStorage_TotalsByCategory(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	food, err := store.CreateCategory(ctx, "Food")
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	travel, err := store.CreateCategory(ctx, "Travel")
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	if _, err := store.CreateCategory(ctx, "Unused"); err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}

	for _, exp := range []struct {
		catID  int64
		amount float64
	}{
		{food.ID, 10},
		{food.ID, 5},
		{travel.ID, 20},
	} {
		if _, err := store.CreateExpense(ctx, "2024-01-01", exp.catID, "", exp.amount); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
	}

	totals, err := store.TotalsByCategory(ctx)
	if err != nil {
		t.Fatalf("TotalsByCategory failed: %v", err)
	}

	want := []model.CategoryTotal{
		{Category: "Travel", Total: 20},
		{Category: "Food", Total: 15},
	}
	if len(totals) != len(want) {
		t.Fatalf("Expected %d totals, got %d: %+v", len(want), len(totals), totals)
	}
	for i, w := range want {
		if totals[i].Category != w.Category || math.Abs(totals[i].Total-w.Total) > 1e-9 {
			t.Errorf("Position %d: expected %+v, got %+v", i, w, totals[i])
		}
	}
}

func TestSQLiteStorage_TotalsByCategory_ExcludesNonPositiveGroups(t *testing.T) {
	store, cat, cleanup := createTestStorageWithCategory(t, "Refunds")
	defer cleanup()
	ctx := context.Background()

	if _, err := store.CreateExpense(ctx, "2024-01-01", cat.ID, "", 30); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	if _, err := store.CreateExpense(ctx, "2024-01-02", cat.ID, "", -30); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	totals, err := store.TotalsByCategory(ctx)
	if err != nil {
		t.Fatalf("TotalsByCategory failed: %v", err)
	}
	if len(totals) != 0 {
		t.Errorf("Expected zero-sum group to be excluded, got %+v", totals)
	}
}

func TestSQLiteStorage_UpdateExpenseAmount(t *testing.T) {
	store, cat, cleanup := createTestStorageWithCategory(t, "Food")
	defer cleanup()
	ctx := context.Background()

	exp, err := store.CreateExpense(ctx, "2024-05-12", cat.ID, "lunch", 12.75)
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	// Nonexistent id reports not found and changes nothing
	updated, err := store.UpdateExpenseAmount(ctx, exp.ID+100, 99)
	if err != nil {
		t.Fatalf("UpdateExpenseAmount failed: %v", err)
	}
	if updated {
		t.Error("Expected no row to be updated")
	}

	updated, err = store.UpdateExpenseAmount(ctx, exp.ID, 20.00)
	if err != nil {
		t.Fatalf("UpdateExpenseAmount failed: %v", err)
	}
	if !updated {
		t.Fatal("Expected the row to be updated")
	}

	// Only the amount changed
	view, err := store.GetExpense(ctx, exp.ID)
	if err != nil {
		t.Fatalf("GetExpense failed: %v", err)
	}
	if view == nil {
		t.Fatal("Expected the expense to still exist")
	}
	if view.Amount != 20.00 {
		t.Errorf("Expected amount 20.00, got %v", view.Amount)
	}
	if view.Date != "2024-05-12" || view.Category != "Food" || view.Description != "lunch" {
		t.Errorf("Fields other than amount changed: %+v", view)
	}
}

func TestSQLiteStorage_DeleteExpense(t *testing.T) {
	store, cat, cleanup := createTestStorageWithCategory(t, "Food")
	defer cleanup()
	ctx := context.Background()

	exp, err := store.CreateExpense(ctx, "2024-05-12", cat.ID, "", 5)
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	deleted, err := store.DeleteExpense(ctx, exp.ID+100)
	if err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}
	if deleted {
		t.Error("Expected no row to be deleted")
	}

	deleted, err = store.DeleteExpense(ctx, exp.ID)
	if err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}
	if !deleted {
		t.Fatal("Expected the row to be deleted")
	}

	view, err := store.GetExpense(ctx, exp.ID)
	if err != nil {
		t.Fatalf("GetExpense failed: %v", err)
	}
	if view != nil {
		t.Errorf("Expected expense to be gone, got %+v", view)
	}
}

func TestSQLiteStorage_ZeroIDIsNotFound(t *testing.T) {
	store, cat, cleanup := createTestStorageWithCategory(t, "Food")
	defer cleanup()
	ctx := context.Background()

	if _, err := store.CreateExpense(ctx, "2024-05-12", cat.ID, "", 5); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	// Id 0 matches no row; it is a not-found outcome, never an error
	updated, err := store.UpdateExpenseAmount(ctx, 0, 20)
	if err != nil {
		t.Fatalf("UpdateExpenseAmount(0) returned error: %v", err)
	}
	if updated {
		t.Error("Expected no row to be updated for id 0")
	}

	deleted, err := store.DeleteExpense(ctx, 0)
	if err != nil {
		t.Fatalf("DeleteExpense(0) returned error: %v", err)
	}
	if deleted {
		t.Error("Expected no row to be deleted for id 0")
	}

	view, err := store.GetExpense(ctx, 0)
	if err != nil {
		t.Fatalf("GetExpense(0) returned error: %v", err)
	}
	if view != nil {
		t.Errorf("Expected nil for id 0, got %+v", view)
	}

	exists, err := store.CategoryExists(ctx, 0)
	if err != nil {
		t.Fatalf("CategoryExists(0) returned error: %v", err)
	}
	if exists {
		t.Error("Expected no category with id 0")
	}

	if _, err := store.CreateExpense(ctx, "2024-05-12", 0, "", 5); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound for category id 0, got %v", err)
	}

	// The existing expense is untouched
	count, err := store.CountExpenses(ctx)
	if err != nil {
		t.Fatalf("CountExpenses failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 expense, got %d", count)
	}
}

func TestSQLiteStorage_GetExpense_NotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	view, err := store.GetExpense(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetExpense failed: %v", err)
	}
	if view != nil {
		t.Errorf("Expected nil for missing expense, got %+v", view)
	}
}
