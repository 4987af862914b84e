package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetYes bool

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all momentum data",
	Long: `Remove every goal plan, retro, badge, program enrollment and character
progress. This is the sign-out path; there is no undo.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes && !confirmAction("Delete ALL plans, progress and history") {
			fmt.Println("Operation cancelled.")
			return nil
		}

		svc, st, err := GetPlanService()
		if err != nil {
			return fmt.Errorf("could not initialize the plan store: %w", err)
		}
		defer func() {
			if err := st.Close(); err != nil {
				LogError("failed to close plan store", err)
			}
		}()

		if err := svc.Reset(); err != nil {
			return fmt.Errorf("failed to reset plans: %w", err)
		}
		if err := GetEvolutionDetector().Reset(); err != nil {
			PrintError("Warning: could not reset character progress.", err)
		}
		if err := GetBadgeTracker().Reset(); err != nil {
			PrintError("Warning: could not reset badges.", err)
		}
		prog, err := GetProgramService()
		if err == nil {
			if err := prog.Reset(); err != nil {
				PrintError("Warning: could not reset program enrollment.", err)
			}
		}
		if err := saveDayOffset(0); err != nil {
			PrintError("Warning: could not reset the day offset.", err)
		}

		fmt.Println("All momentum data removed. Fresh start: momentum new")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "reset without confirmation")
}
