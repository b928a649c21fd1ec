package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sujink1999/vanta-society-sub000/internal/tui"
)

func newBoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Interactive today board (TUI)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunToday(ctx, svc)
		},
	}
}
