package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sujink1999/vanta-society-sub000/internal/engine"
	"github.com/sujink1999/vanta-society-sub000/internal/storage"
	"github.com/sujink1999/vanta-society-sub000/internal/ui"
)

func newInitCmd() *cobra.Command {
	var startStr string
	var seed float64

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize vitals and the program start date",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			start := time.Now()
			if startStr != "" {
				start, err = time.ParseInLocation(engine.DateKey, startStr, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --start date: %w", err)
				}
			}

			err = svc.Scores().Initialize(ctx, storage.Vitals{
				Discipline: seed,
				Mindset:    seed,
				Strength:   seed,
				Momentum:   seed,
				Confidence: seed,
			})
			if errors.Is(err, engine.ErrAlreadyInitialized) {
				return errors.New("already initialized; vitals exist")
			}
			if err != nil {
				return err
			}
			if err := svc.SetStartDate(ctx, start); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, "Vanta initialized"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Start date", start.Format(engine.DateKey)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Vitals", fmt.Sprintf("all at %.0f", seed)))
			return nil
		},
	}

	cmd.Flags().StringVar(&startStr, "start", "", "Program start date (YYYY-MM-DD, default today)")
	cmd.Flags().Float64Var(&seed, "seed", 50, "Initial value for every vital (0-100)")

	return cmd
}
