package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sujink1999/vanta-society-sub000/internal/engine"
	"github.com/sujink1999/vanta-society-sub000/internal/ui"
)

func oneItemArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("routine item id is required")
	}
	return nil
}

func newDoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "do <item>",
		Short: "Mark a routine item done for today",
		Args:  oneItemArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return resolveItem(cmd, args[0], engine.StatusDone)
		},
	}
}

func newSkipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "skip <item>",
		Short: "Mark a routine item skipped for today",
		Args:  oneItemArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return resolveItem(cmd, args[0], engine.StatusSkipped)
		},
	}
}

func newUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo <item>",
		Short: "Remove today's record for a routine item",
		Args:  oneItemArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			svc.UndoItem(ctx, args[0])
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconUndo+" Reset ")+args[0])
			return nil
		},
	}
}

func resolveItem(cmd *cobra.Command, itemID string, status engine.Status) error {
	ctx := context.Background()
	svc, cleanup, err := openService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.ResolveItem(ctx, itemID, status); err != nil {
		return err
	}

	if status == engine.StatusDone {
		line := fmt.Sprintf("%s %s", ui.Good.Render(ui.IconDone+" Done"), itemID)
		if scores := svc.Scores().Get(); scores != nil {
			line += ui.Muted.Render(fmt.Sprintf(" (society %.1f)", scores.Society))
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconSkip+" Skipped ")+itemID)
	}
	return nil
}
