package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sujink1999/vanta-society-sub000/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "vanta",
	Short:         "Vanta — local-first habit & vitals tracker",
	Long:          "Vanta is a local-first habit tracker that scores five vitals, derives streaks and projections, and backs its state up to a remote store.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newInitCmd(),
		newDoCmd(),
		newSkipCmd(),
		newUndoCmd(),
		newCheckinCmd(),
		newTodayCmd(),
		newStatsCmd(),
		newRoutineCmd(),
		newWorkoutCmd(),
		newSyncCmd(),
		newRestoreCmd(),
		newRemindCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
