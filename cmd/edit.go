package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/momentumhq/momentum/internal/plan"
)

var (
	editGoalText    string
	editDescription string
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit [plan]",
	Short: "Edit a goal plan's text",
	Long: `Update the goal or description of a plan. Challenges and progress are
untouched; already-generated challenges keep reflecting the old wording
until the next retro.`,
	Example: `  momentum edit --goal "Run a 10k instead"
  momentum edit 3f2a --description "Stretch target for spring"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if editGoalText == "" && editDescription == "" {
			return fmt.Errorf("nothing to change: pass --goal and/or --description")
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

		p, err := activePlan(svc)
		if len(args) > 0 {
			p, err = resolvePlan(svc, args[0])
		}
		if err != nil {
			fmt.Println(err)
			return nil
		}

		updates := plan.EditGoalUpdates{}
		if editGoalText != "" {
			updates.Goal = &editGoalText
		}
		if editDescription != "" {
			updates.Description = &editDescription
		}
		svc.EditGoal(p.ID, updates)

		updated, err := resolvePlan(svc, p.ID)
		if err != nil {
			return err
		}
		fmt.Printf("Updated: %s\n", updated.Goal)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVar(&editGoalText, "goal", "", "new goal text")
	editCmd.Flags().StringVar(&editDescription, "description", "", "new description")
}
