// Package model defines the core domain records shared across the application.
package model

// DateLayout is the canonical calendar-date format for expense dates.
// Dates are stored as text in this layout, which sorts chronologically.
const DateLayout = "2006-01-02"

// Expense is a single dated monetary record attributed to one category.
type Expense struct {
	Date        string
	Description string
	Amount      float64
	ID          int64
	CategoryID  int64
}

// ExpenseView is an expense joined with its category's current name.
// The name is resolved at query time, never denormalized onto the row.
type ExpenseView struct {
	Date        string
	Category    string
	Description string
	Amount      float64
	ID          int64
}
