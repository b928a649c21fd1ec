package root

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sujink1999/vanta-society-sub000/internal/engine"
	"github.com/sujink1999/vanta-society-sub000/internal/storage"
	"github.com/sujink1999/vanta-society-sub000/internal/ui"
)

func newRoutineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routine",
		Short: "Manage the active routine",
	}
	cmd.AddCommand(newRoutineAddCmd(), newRoutineListCmd(), newRoutinePauseCmd(), newRoutineResumeCmd())
	return cmd
}

func newRoutineAddCmd() *cobra.Command {
	var id string
	var category string
	var cadence string
	var impact float64

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a routine item",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			vital, err := engine.ParseVital(category)
			if err != nil {
				return err
			}
			parsed, err := engine.ParseCadence(cadence)
			if err != nil {
				return err
			}
			if id == "" {
				return errors.New("--id is required")
			}

			item := storage.RoutineItem{
				ID:       id,
				Title:    args[0],
				Category: string(vital),
				Cadence:  parsed.String(),
				Active:   true,
				Impact:   map[string]float64{string(vital): impact},
			}
			if err := svc.Routine().Upsert(ctx, &item); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Good.Render(ui.IconDone+" Added"), ui.Key.Render(id), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Stable item id")
	cmd.Flags().StringVarP(&category, "category", "c", "discipline", "Vital category (discipline|mindset|strength|momentum|confidence)")
	cmd.Flags().StringVar(&cadence, "cadence", "daily", "7-digit day mask, Sunday first, or \"daily\"")
	cmd.Flags().Float64Var(&impact, "impact", 0.5, "Score delta awarded per completion")

	return cmd
}

func newRoutineListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List routine items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			items, err := svc.Routine().ListAll(ctx)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No routine items yet."))
				return nil
			}
			for _, item := range items {
				state := ui.Good.Render("active")
				if !item.Active {
					state = ui.Muted.Render("paused")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "- %s %s [%s] %s %s\n",
					ui.Key.Render(item.ID), item.Title, item.Category,
					ui.Muted.Render(item.Cadence), state)
			}
			return nil
		},
	}
}

func newRoutinePauseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pause <item>",
		Short: "Pause a routine item",
		Args:  oneItemArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return setRoutineActive(cmd, args[0], false)
		},
	}
}

func newRoutineResumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume <item>",
		Short: "Resume a paused routine item",
		Args:  oneItemArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return setRoutineActive(cmd, args[0], true)
		},
	}
}

func setRoutineActive(cmd *cobra.Command, id string, active bool) error {
	ctx := context.Background()
	svc, cleanup, err := openService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.Routine().SetActive(ctx, id, active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("routine item %q not found", id)
		}
		return err
	}
	verb := "Paused"
	if active {
		verb = "Resumed"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render(verb), id)
	return nil
}
