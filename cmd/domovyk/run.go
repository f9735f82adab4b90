package main

import (
	"github.com/spf13/cobra"
)

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Scan the chat and send whatever today's schedule calls for",
		Long: `The scheduled entry point. Scans recent chat messages for payment
confirmations, updates the ledger, and — on milestone days or when the
invocation came from a manual workflow dispatch — sends the
announcement, status report, or reminder.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := buildEngine(cmd.Context())
			if err != nil {
				return err
			}
			return eng.Run(cmd.Context())
		},
	}
}
