package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/momentumhq/momentum/internal/premium"
	"github.com/momentumhq/momentum/models"
)

var deleteYes bool

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "delete [plan]",
	Aliases: []string{"rm"},
	Short:   "Delete a goal plan",
	Long:    `Delete a goal plan and all of its history. This cannot be undone.`,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config := GetConfig()

		svc, st, err := GetPlanService()
		if err != nil {
			return fmt.Errorf("could not initialize the plan store: %w", err)
		}
		defer func() {
			if err := st.Close(); err != nil {
				LogError("failed to close plan store", err)
			}
		}()

		if !premium.CanDeleteGoalPlan(config.Premium.Entitled, len(svc.Plans())) {
			fmt.Println("Deleting is not available right now.")
			return nil
		}

		var target models.GoalPlan
		if len(args) > 0 {
			target, err = resolvePlan(svc, args[0])
			if err != nil {
				return err
			}
		} else {
			target, err = selectPlanInteractive(svc, nil, "Select plan to delete")
			if err != nil {
				if err == promptui.ErrInterrupt {
					fmt.Println("Operation cancelled.")
					return nil
				}
				if err == ErrNoPlansFound {
					fmt.Println("No plans to delete.")
					return nil
				}
				return err
			}
		}

		if !deleteYes && !confirmAction(fmt.Sprintf("Delete %q and all its history", target.Goal)) {
			fmt.Println("Operation cancelled.")
			return nil
		}

		svc.DeletePlan(target.ID)
		fmt.Printf("Deleted %q.\n", target.Goal)
		if id := svc.ActivePlanID(); id != "" && id != target.ID {
			if next, err := resolvePlan(svc, id); err == nil {
				fmt.Printf("Now working on: %s\n", next.Goal)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "delete without confirmation")
}
