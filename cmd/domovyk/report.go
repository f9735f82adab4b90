package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ostapenco/domovyk/internal/cli"
)

func reportCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Send the announcement, report, and reminder for the target period",
		Long: `Forces the full message set for the current target period, regardless
of the day of month. With --dry-run the messages are printed to the
terminal instead of being sent, using only the persisted ledger.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dryRun {
				return previewMessages()
			}
			eng, err := buildEngine(cmd.Context())
			if err != nil {
				return err
			}
			res := eng.Scan(cmd.Context())
			eng.Announce(cmd.Context(), res.Ledger)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the rendered messages instead of sending them")
	return cmd
}

// previewMessages renders from the persisted ledger only; no Telegram
// connection and no scan.
func previewMessages() error {
	c, err := loadComponents()
	if err != nil {
		return err
	}

	led := c.store.Load()
	p := c.calc.Target(c.settings.Now())

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Target period: %s", p.Key())))

	fmt.Println(cli.SubtleStyle.Render("announcement (pinned)"))
	fmt.Println(cli.BoxStyle.Render(c.renderer.Announcement(p)))

	fmt.Println(cli.SubtleStyle.Render("status report"))
	fmt.Println(cli.BoxStyle.Render(c.renderer.StatusReport(led, p)))

	if text, due := c.renderer.Reminder(led, p); due {
		fmt.Println(cli.SubtleStyle.Render("reminder"))
		fmt.Println(cli.BoxStyle.Render(text))
	} else {
		fmt.Println(cli.WarningStyle.Render("everyone paid — no reminder would be sent"))
	}
	return nil
}
