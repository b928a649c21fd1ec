package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sujink1999/vanta-society-sub000/internal/engine"
	"github.com/sujink1999/vanta-society-sub000/internal/ui"
)

// stdoutNotifier prints composed notifications; actual delivery is outside
// this layer.
type stdoutNotifier struct {
	cmd *cobra.Command
}

func (n stdoutNotifier) Notify(slot engine.Slot, message string) error {
	fmt.Fprintf(n.cmd.OutOrStdout(), "%s [%s] %s\n", ui.IconBell, slot, message)
	return nil
}

func newRemindCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Show the planned notification for the current slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			planner := engine.NewNotificationPlanner(svc.Engagement, stdoutNotifier{cmd: cmd}, svc.Logger(), nil)

			if watch {
				// Live triggers: state is recomputed when each slot fires.
				planner.Run(ctx)
				return nil
			}

			now := time.Now()
			slot := engine.CurrentSlot(now)
			state := svc.Engagement(now)
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Slot", string(slot)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Engagement", string(state)))
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.IconBell, planner.PlanFor(slot, state))
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Keep running and fire at each slot hour")

	return cmd
}
