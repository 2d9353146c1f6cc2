package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerworks/outlay/internal/cli"
	"github.com/ledgerworks/outlay/internal/input"
	"github.com/ledgerworks/outlay/internal/storage"
)

func expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Record and query expenses",
		Long:  `Add, list, update, and delete expenses, and query totals and date ranges.`,
	}

	cmd.AddCommand(addExpenseCmd())
	cmd.AddCommand(listExpensesCmd())
	cmd.AddCommand(rangeExpensesCmd())
	cmd.AddCommand(totalsCmd())
	cmd.AddCommand(updateExpenseCmd())
	cmd.AddCommand(deleteExpenseCmd())

	return cmd
}

func addExpenseCmd() *cobra.Command {
	var (
		dateFlag        string
		descriptionFlag string
	)

	cmd := &cobra.Command{
		Use:   "add <category-id> <amount>",
		Short: "Add a new expense",
		Long:  `Record an expense against an existing category. The date defaults to today.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			categoryID, err := input.ID(args[0])
			if err != nil {
				return err
			}
			amount, err := input.Amount(args[1])
			if err != nil {
				return err
			}
			date, err := input.DateOrToday(dateFlag)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			exp, err := store.CreateExpense(ctx, date, categoryID, descriptionFlag, amount)
			if errors.Is(err, storage.ErrCategoryNotFound) {
				return fmt.Errorf("category ID %d not found; run 'outlay categories list'", categoryID)
			}
			if err != nil {
				return fmt.Errorf("failed to create expense: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✔ Expense added with ID %d (%s, %s)", exp.ID, exp.Date, cli.FormatAmount(exp.Amount))))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "expense date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&descriptionFlag, "description", "", "free-text description")

	return cmd
}

func listExpensesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all expenses",
		Long:  `Display every expense with its category name, most recent first, and the grand total.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			expenses, err := store.ListExpenses(ctx)
			if err != nil {
				return fmt.Errorf("failed to list expenses: %w", err)
			}
			total, err := store.SumExpenses(ctx)
			if err != nil {
				return fmt.Errorf("failed to sum expenses: %w", err)
			}

			if len(expenses) == 0 {
				fmt.Println(cli.InfoStyle.Render("No expenses recorded."))
			} else {
				fmt.Print(cli.FormatExpenseTable(expenses))
			}
			fmt.Println(cli.TotalStyle.Render("Total spent: " + cli.FormatAmount(total)))
			return nil
		},
	}
}

func rangeExpensesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "range <start> <end>",
		Short: "List expenses between two dates",
		Long:  `Display expenses with start <= date <= end, ordered by date ascending.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			start, err := input.Date(args[0])
			if err != nil {
				return err
			}
			end, err := input.Date(args[1])
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			expenses, err := store.ListExpensesByDateRange(ctx, start, end)
			if err != nil {
				return fmt.Errorf("failed to list expenses: %w", err)
			}

			if len(expenses) == 0 {
				fmt.Println(cli.InfoStyle.Render("No expenses in this date range."))
				return nil
			}

			fmt.Print(cli.FormatExpenseTable(expenses))
			return nil
		},
	}
}

func totalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "totals",
		Short: "Show spending totals per category",
		Long:  `Display per-category spending totals, largest first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			totals, err := store.TotalsByCategory(ctx)
			if err != nil {
				return fmt.Errorf("failed to compute totals: %w", err)
			}

			if len(totals) == 0 {
				fmt.Println(cli.InfoStyle.Render("No expenses to summarize."))
				return nil
			}

			fmt.Print(cli.FormatTotalsTable(totals))
			return nil
		},
	}
}

func updateExpenseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <amount>",
		Short: "Update an expense's amount",
		Long:  `Set a new amount on an existing expense; every other field is left untouched.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := input.ID(args[0])
			if err != nil {
				return err
			}
			amount, err := input.Amount(args[1])
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			updated, err := store.UpdateExpenseAmount(ctx, id, amount)
			if err != nil {
				return fmt.Errorf("failed to update expense: %w", err)
			}

			if !updated {
				fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("No expense found with ID %d.", id)))
				return nil
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✔ Expense %d updated to %s", id, cli.FormatAmount(amount))))
			return nil
		},
	}
}

func deleteExpenseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Long:  `Remove an expense by ID.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := input.ID(args[0])
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			deleted, err := store.DeleteExpense(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to delete expense: %w", err)
			}

			if !deleted {
				fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("No expense found with ID %d.", id)))
				return nil
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✔ Expense %d deleted", id)))
			return nil
		},
	}
}
