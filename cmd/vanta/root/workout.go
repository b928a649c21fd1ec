package root

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sujink1999/vanta-society-sub000/internal/engine"
	"github.com/sujink1999/vanta-society-sub000/internal/storage"
	"github.com/sujink1999/vanta-society-sub000/internal/ui"
)

func newWorkoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workout",
		Short: "Log and browse workout sessions",
	}
	cmd.AddCommand(newWorkoutAddCmd(), newWorkoutListCmd(), newWorkoutExercisesCmd())
	return cmd
}

func newWorkoutAddCmd() *cobra.Command {
	var dateStr string
	var exercises []string
	var notes string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Log a workout session",
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

			date := engine.DayKey(time.Now())
			if dateStr != "" {
				if _, err := time.ParseInLocation(engine.DateKey, dateStr, time.Local); err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
				date = dateStr
			}

			id := svc.Workouts().Save(ctx, storage.Workout{
				Date:      date,
				Title:     args[0],
				Exercises: exercises,
				Notes:     notes,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Good.Render(ui.IconLift+" Logged"), args[0], ui.Muted.Render("("+id+")"))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "Session date (YYYY-MM-DD, default today)")
	cmd.Flags().StringSliceVarP(&exercises, "exercise", "e", nil, "Exercise name (repeatable)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	return cmd
}

func newWorkoutListCmd() *cobra.Command {
	var monthStr string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workout sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var sessions []storage.Workout
			if monthStr != "" {
				m, err := time.Parse("2006-01", monthStr)
				if err != nil {
					return fmt.Errorf("invalid --month: %w", err)
				}
				sessions = svc.Workouts().ForMonth(m.Year(), m.Month())
			} else {
				now := time.Now()
				sessions = svc.Workouts().ForRange(engine.DayKey(now.AddDate(0, 0, -30)), engine.DayKey(now))
			}

			if len(sessions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No workouts logged."))
				return nil
			}
			for _, w := range sessions {
				line := fmt.Sprintf("- %s %s", ui.Key.Render(w.Date), w.Title)
				if len(w.Exercises) > 0 {
					line += " " + ui.Muted.Render("("+strings.Join(w.Exercises, ", ")+")")
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&monthStr, "month", "", "Limit to a month (YYYY-MM)")

	return cmd
}

func newWorkoutExercisesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exercises",
		Short: "List every exercise name ever logged",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			names := svc.Workouts().ExerciseNames()
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No exercises logged."))
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), "- "+name)
			}
			return nil
		},
	}
}
