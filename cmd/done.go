package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/momentumhq/momentum/internal/badges"
	"github.com/momentumhq/momentum/internal/character"
	"github.com/momentumhq/momentum/internal/logger"
	"github.com/momentumhq/momentum/internal/plan"
	"github.com/momentumhq/momentum/internal/ui"
)

var doneNotes string

// doneCmd represents the done command
var doneCmd = &cobra.Command{
	Use:     "done",
	Aliases: []string{"complete", "d"},
	Short:   "Mark today's challenge as done",
	Long: `Mark the active plan's current challenge as completed. One challenge
per day: once today's is done, the next one opens tomorrow.`,
	Example: `  momentum done
  momentum done --notes "Did it on my lunch break"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.SetCommand("done")

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

		if p.IsTerminal() {
			fmt.Println("This goal is already completed. Start a new one with: momentum new")
			return nil
		}
		if plan.RetroRequired(&p) {
			fmt.Println("Your challenge batch is finished. Reflect first: momentum retro")
			return nil
		}
		if svc.CompletedToday(p.ID) {
			fmt.Println("You already completed a challenge today. The next one opens tomorrow.")
			return nil
		}

		c := svc.CurrentChallenge(p.ID)
		if c == nil {
			fmt.Println("No challenge available.")
			return nil
		}
		logger.SetLastInput(doneNotes)

		svc.CompleteCurrentChallenge(p.ID, doneNotes)
		fmt.Printf("%s %s\n", ui.Icon("🎉", ui.StyleSuccess), ui.StyleTitle.Render(c.Title))
		fmt.Println(ui.StyleSubtle.Render(c.Encouragement))

		showCelebrations(svc)

		if refreshed, err := resolvePlan(svc, p.ID); err == nil {
			if plan.RetroRequired(&refreshed) {
				fmt.Println("\nThat was the last challenge in the batch. Time to reflect: " + ui.StylePrimary.Render("momentum retro"))
			} else if plan.RetroEligible(&refreshed) {
				fmt.Println("\nA weekly retro is available: " + ui.StylePrimary.Render("momentum retro"))
			}
		}
		return nil
	},
}

// showCelebrations surfaces at most one evolution and one badge unlock,
// marking them seen so they never replay.
func showCelebrations(svc *plan.Service) {
	state := character.ComputeState(svc.TotalCompleted())

	detector := GetEvolutionDetector()
	if ev := detector.Check(state.StageIndex); ev != nil {
		to := character.Stages[ev.ToStageIndex]
		fmt.Println()
		fmt.Println(ui.StyleCelebrationBox.Render(
			fmt.Sprintf("%s Your character evolved into %s!\n%s", to.Emoji, ui.StyleTitle.Render(to.Name), to.Narrative)))
		if err := detector.Dismiss(); err != nil {
			LogError("failed to persist evolution state", err)
		}
	}

	tracker := GetBadgeTracker()
	earned := badges.Earned(badges.ComputeAll(badges.InputFromPlans(svc.Plans())))
	if b := tracker.Check(earned); b != nil {
		fmt.Println()
		fmt.Println(ui.StyleCelebrationBox.Render(
			fmt.Sprintf("%s Badge unlocked: %s\n%s", b.Emoji, ui.StyleTitle.Render(b.Title), b.Description)))
		if err := tracker.Dismiss(); err != nil {
			LogError("failed to persist badge state", err)
		}
	}
}

func init() {
	rootCmd.AddCommand(doneCmd)
	doneCmd.Flags().StringVarP(&doneNotes, "notes", "n", "", "reflection note to attach to the completed challenge")
}
