package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sujink1999/vanta-society-sub000/internal/ui"
)

func newCheckinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkin",
		Short: "Record today's check-in",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			svc.Checkins().MarkToday(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Checked in."))
			return nil
		},
	}
}
