package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/momentumhq/momentum/internal/ui"
	"github.com/momentumhq/momentum/models"
)

// switchCmd represents the switch command
var switchCmd = &cobra.Command{
	Use:   "switch [plan]",
	Short: "Switch the active goal plan",
	Long: `Make another goal plan the active one. Accepts an id prefix or the
goal text; without an argument an interactive list is shown.`,
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

		var target models.GoalPlan
		if len(args) > 0 {
			target, err = resolvePlan(svc, args[0])
			if err != nil {
				return err
			}
		} else {
			notActive := func(p models.GoalPlan) bool { return !p.IsActive }
			target, err = selectPlanInteractive(svc, notActive, "Select plan to activate")
			if err != nil {
				if err == promptui.ErrInterrupt {
					fmt.Println("Operation cancelled.")
					return nil
				}
				if err == ErrNoPlansFound {
					fmt.Println("No other plans to switch to.")
					return nil
				}
				return err
			}
		}

		svc.SetActivePlan(target.ID)
		fmt.Printf("%s Now working on: %s\n", ui.Icon("✔", ui.StyleSuccess), ui.StyleTitle.Render(target.Goal))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(switchCmd)
}
