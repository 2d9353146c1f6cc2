package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/ledgerworks/outlay/internal/model"
)

// FormatAmount renders a monetary value with two decimal places.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatCategoryTable renders categories as an aligned id/name table.
func FormatCategoryTable(categories []model.Category) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\n", TableHeaderStyle.Render("ID"), TableHeaderStyle.Render("Name"))
	fmt.Fprintf(w, "%s\t%s\n", strings.Repeat("-", 4), strings.Repeat("-", 20))
	for _, cat := range categories {
		fmt.Fprintf(w, "%d\t%s\n", cat.ID, cat.Name)
	}

	_ = w.Flush()
	return sb.String()
}

// FormatExpenseTable renders joined expense rows as an aligned table.
func FormatExpenseTable(expenses []model.ExpenseView) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		TableHeaderStyle.Render("ID"),
		TableHeaderStyle.Render("Date"),
		TableHeaderStyle.Render("Category"),
		TableHeaderStyle.Render("Description"),
		TableHeaderStyle.Render("Amount"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 4),
		strings.Repeat("-", 10),
		strings.Repeat("-", 12),
		strings.Repeat("-", 20),
		strings.Repeat("-", 10))

	for _, exp := range expenses {
		desc := exp.Description
		if desc == "" {
			desc = SubtleStyle.Render("(no description)")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", exp.ID, exp.Date, exp.Category, desc, FormatAmount(exp.Amount))
	}

	_ = w.Flush()
	return sb.String()
}

// FormatTotalsTable renders per-category totals as an aligned table.
func FormatTotalsTable(totals []model.CategoryTotal) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\n", TableHeaderStyle.Render("Category"), TableHeaderStyle.Render("Total"))
	fmt.Fprintf(w, "%s\t%s\n", strings.Repeat("-", 12), strings.Repeat("-", 10))
	for _, ct := range totals {
		fmt.Fprintf(w, "%s\t%s\n", ct.Category, FormatAmount(ct.Total))
	}

	_ = w.Flush()
	return sb.String()
}
