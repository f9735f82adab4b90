package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Scan the chat and update the ledger without sending anything",
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := buildEngine(cmd.Context())
			if err != nil {
				return err
			}
			res := eng.Scan(cmd.Context())
			slog.Info("ledger updated",
				"periods", res.Ledger.Len(),
				"new_payments", res.NewPayments)
			return nil
		},
	}
}
