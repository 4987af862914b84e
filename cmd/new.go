package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/momentumhq/momentum/internal/logger"
	"github.com/momentumhq/momentum/internal/premium"
	"github.com/momentumhq/momentum/internal/ui"
	"github.com/momentumhq/momentum/types"
)

var newFocusAreas []string

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:     "new [goal]",
	Aliases: []string{"create", "n"},
	Short:   "Create a new goal plan",
	Long: `Create a new goal plan with a generated batch of daily micro-challenges.
The new plan becomes the active one. Without an API key the built-in
challenge set is used.`,
	Example: `  # Interactive mode
  momentum new

  # Direct
  momentum new "Learn to play guitar" --focus practice,theory`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.SetCommand("new")
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

		if !premium.CanCreateGoalPlan(config.Premium.Entitled, len(svc.Plans())) {
			fmt.Println("The free tier supports one goal plan at a time.")
			fmt.Println("Delete your current plan or enable momentum plus (premium.entitled) to add more.")
			return nil
		}

		var goal string
		if len(args) > 0 {
			goal = strings.TrimSpace(args[0])
		}
		if goal == "" {
			prompt := promptui.Prompt{
				Label: "What do you want to achieve",
				Validate: func(input string) error {
					if strings.TrimSpace(input) == "" {
						return errors.New("goal cannot be empty")
					}
					return nil
				},
			}
			goal, err = prompt.Run()
			if err != nil {
				if err == promptui.ErrInterrupt {
					fmt.Println("Operation cancelled.")
					return nil
				}
				return err
			}
			goal = strings.TrimSpace(goal)
		}
		logger.SetLastInput(goal)

		fmt.Println(ui.StyleSubtle.Render("Generating your first challenges..."))
		p, err := svc.CreatePlan(cmd.Context(), goal, newFocusAreas)
		if err != nil {
			if errors.Is(err, types.ErrGenerationBusy) {
				fmt.Println("Another generation is already in progress. Try again in a moment.")
				return nil
			}
			return fmt.Errorf("failed to create goal plan: %w", err)
		}

		fmt.Printf("%s New goal plan created: %s\n", ui.Icon("🎯", ui.StyleSuccess), ui.StyleTitle.Render(p.Goal))
		fmt.Printf("%d challenges ready. First up:\n\n", len(p.Challenges))
		first := p.Challenges[0]
		fmt.Println(ui.StyleChallengeBox.Render(
			ui.StyleTitle.Render(first.Title) + "\n" +
				first.Description + "\n\n" +
				ui.StyleSubtle.Render(first.Encouragement)))
		fmt.Printf("\n💡 When you've done it: %s\n", ui.StylePrimary.Render("momentum done"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringSliceVar(&newFocusAreas, "focus", nil, "comma-separated focus areas to steer generation")
}
