package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sujink1999/vanta-society-sub000/internal/engine"
	"github.com/sujink1999/vanta-society-sub000/internal/ui"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show streaks, progress and projected vitals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			stats, err := svc.Stats(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconChart, "Progress"))
			if stats.ProgramDay > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Program day", fmt.Sprintf("%d of %d", stats.ProgramDay, engine.ProgramLengthDays)))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Program not started yet (run `vanta init`)."))
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Streak", fmt.Sprintf("%s %d days", ui.IconFlame, stats.CurrentStreak)))

			if n := len(stats.CumulativeCompleted); n > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Total completed", stats.CumulativeCompleted[n-1]))
			}

			var week strings.Builder
			for _, on := range stats.Last7DaysCadence {
				if on == 1 {
					week.WriteString(ui.Good.Render("●"))
				} else {
					week.WriteString(ui.Dim.Render("○"))
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Last 7 days", week.String()))

			scores := svc.Scores().Get()
			fmt.Fprintln(cmd.OutOrStdout(), "")
			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render("Vitals (current → potential)"))
			if scores == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Not initialized."))
				return nil
			}
			p := stats.PotentialScores
			rows := []struct {
				name      string
				cur, pot  float64
			}{
				{"discipline", scores.Discipline, p.Discipline},
				{"mindset", scores.Mindset, p.Mindset},
				{"strength", scores.Strength, p.Strength},
				{"momentum", scores.Momentum, p.Momentum},
				{"confidence", scores.Confidence, p.Confidence},
				{"society", scores.Society, p.Society},
			}
			for _, row := range rows {
				fmt.Fprintf(cmd.OutOrStdout(), "- %-11s %5.1f → %5.1f\n", row.name, row.cur, row.pot)
			}
			return nil
		},
	}
}
