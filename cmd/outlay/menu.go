package main

import (
	"github.com/spf13/cobra"

	"github.com/ledgerworks/outlay/internal/tui"
)

func menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Open the interactive menu",
		Long:  `Drive the expense tracker through a full-screen menu instead of subcommands.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			return tui.Run(cmd.Context(), store)
		},
	}
}
