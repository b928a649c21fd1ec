package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sujink1999/vanta-society-sub000/internal/ui"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Push local state to the backup store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if !svc.Sync().Push(ctx) {
				return errors.New("push failed or skipped; see log output")
			}
			line := ui.Good.Render(ui.IconSync + " Backed up")
			if last := svc.Sync().LastSyncedAt(); last != nil {
				line += " " + ui.Muted.Render(last.Format("2006-01-02 15:04:05"))
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}
}

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Pull the remote backup and apply it if newer than local",
		Long: `Fetch the remote backup and apply it with last-writer-wins semantics.

If the local state was synced at or after the remote backup's timestamp the
pull is a no-op (local wins). Otherwise the remote payload wholesale-replaces
local scores, completions, check-ins and workouts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if !svc.Sync().Pull(ctx) {
				return errors.New("restore failed; see log output")
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconSync+" Restore complete."))
			return nil
		},
	}
}
