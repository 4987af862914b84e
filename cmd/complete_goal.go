package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/momentumhq/momentum/internal/ui"
)

var completeGoalYes bool

// completeGoalCmd represents the complete-goal command
var completeGoalCmd = &cobra.Command{
	Use:   "complete-goal [plan]",
	Short: "Mark a goal as achieved",
	Long: `Declare victory on a goal. The plan keeps its history but stops
presenting challenges, and another plan becomes active if one exists.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, st, err := GetPlanService()
		if err != nil {
			return fmt.Errorf("could not initialize the plan store: %w", err)
		}
		defer func() {
			if err := st.Close(); err != nil {
				LogError("failed to close plan store", err)
			}
		}()

		p, err := activePlan(svc)
		if len(args) > 0 {
			p, err = resolvePlan(svc, args[0])
		}
		if err != nil {
			fmt.Println(err)
			return nil
		}
		if p.IsTerminal() {
			fmt.Println("That goal is already completed.")
			return nil
		}

		if !completeGoalYes && !confirmAction(fmt.Sprintf("Mark %q as achieved", p.Goal)) {
			fmt.Println("Operation cancelled.")
			return nil
		}

		svc.CompleteGoal(p.ID)
		fmt.Println(ui.StyleCelebrationBox.Render(
			fmt.Sprintf("🏆 Goal achieved: %s\n%d challenges and %d retros along the way.",
				ui.StyleTitle.Render(p.Goal), p.CompletedCount(), len(p.Retros))))

		showCelebrations(svc)

		if id := svc.ActivePlanID(); id != "" {
			if next, err := resolvePlan(svc, id); err == nil {
				fmt.Printf("\nNow working on: %s\n", next.Goal)
			}
		} else {
			fmt.Println("\nReady for the next one? " + ui.StylePrimary.Render("momentum new"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completeGoalCmd)
	completeGoalCmd.Flags().BoolVarP(&completeGoalYes, "yes", "y", false, "complete without confirmation")
}
