package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sujink1999/vanta-society-sub000/internal/engine"
	"github.com/sujink1999/vanta-society-sub000/internal/ui"
)

func newTodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's due items and daily stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			now := time.Now()
			today := engine.DayKey(now)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconVital, "Today "+today))

			due, err := svc.DueToday(ctx)
			if err != nil {
				return err
			}
			if len(due) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Nothing due today."))
			}
			for _, d := range due {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s %s %s\n",
					ui.Key.Render(d.Item.ID), d.Item.Title, ui.StatusText(string(d.Status)))
			}

			stats := svc.Completions().GetDailyStats(today)
			fmt.Fprintln(cmd.OutOrStdout(), "")
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Done", stats.Done))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Skipped", stats.Skipped))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Engagement", string(svc.Engagement(now))))
			return nil
		},
	}
}
