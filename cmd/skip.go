package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/momentumhq/momentum/internal/logger"
	"github.com/momentumhq/momentum/internal/plan"
	"github.com/momentumhq/momentum/internal/ui"
)

var skipYes bool

// skipCmd represents the skip command
var skipCmd = &cobra.Command{
	Use:   "skip",
	Short: "Skip the current challenge",
	Long: `Permanently remove the active plan's current challenge and move on to
the next one. Skipped challenges are gone; they don't count as completed
and don't come back.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.SetCommand("skip")

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
		if err != nil {
			fmt.Println(err)
			return nil
		}
		if plan.RetroRequired(&p) {
			fmt.Println("Your challenge batch is finished. Reflect first: momentum retro")
			return nil
		}
		c := svc.CurrentChallenge(p.ID)
		if c == nil || c.Completed {
			fmt.Println("Nothing to skip right now.")
			return nil
		}

		if !skipYes && !confirmAction(fmt.Sprintf("Skip %q for good", c.Title)) {
			fmt.Println("Operation cancelled.")
			return nil
		}

		svc.SkipCurrentChallenge(p.ID)
		fmt.Printf("Skipped %s\n", ui.StyleSubtle.Render(c.Title))
		if next := svc.CurrentChallenge(p.ID); next != nil {
			fmt.Printf("Next up: %s\n", ui.StyleTitle.Render(next.Title))
		} else {
			fmt.Println("That was the last challenge in the batch. Time to reflect: momentum retro")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(skipCmd)
	skipCmd.Flags().BoolVarP(&skipYes, "yes", "y", false, "skip without confirmation")
}
