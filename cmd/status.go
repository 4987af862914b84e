package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/momentumhq/momentum/internal/character"
	"github.com/momentumhq/momentum/internal/plan"
	"github.com/momentumhq/momentum/internal/ui"
	"github.com/momentumhq/momentum/models"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"st", "today"},
	Short:   "Show today's challenge and overall progress",
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
		if err != nil {
			fmt.Println(err)
			return nil
		}

		state := character.ComputeState(svc.TotalCompleted())
		fmt.Printf("%s %s  %s\n", state.Stage.Emoji, ui.StyleTitle.Render(state.Stage.Name), ui.StyleSubtle.Render(state.ProgressMessage))
		fmt.Println()

		fmt.Printf("Goal: %s\n", ui.StyleTitle.Render(p.Goal))
		fmt.Printf("Progress: %s %d/%d challenges\n", ui.ProgressBar(progressFraction(&p), 20), p.CompletedCount(), len(p.Challenges))
		fmt.Println()

		switch {
		case p.IsTerminal():
			fmt.Println(ui.StyleSuccess.Render("🏆 Goal completed. Start your next one with: momentum new"))
		case plan.RetroRequired(&p):
			fmt.Println(ui.StyleWarning.Render("Your challenge batch is finished. Reflect to unlock the next one:"))
			fmt.Println("  " + ui.StylePrimary.Render("momentum retro"))
		case svc.CompletedToday(p.ID):
			fmt.Println(ui.StyleSuccess.Render("✔ Today's challenge is done. Come back tomorrow."))
			if plan.RetroEligible(&p) {
				fmt.Println(ui.StyleSubtle.Render("A weekly retro is available: momentum retro"))
			}
		default:
			c := svc.CurrentChallenge(p.ID)
			if c == nil {
				fmt.Println("No challenge available.")
				break
			}
			fmt.Println(ui.StyleChallengeBox.Render(
				ui.StyleTitle.Render(c.Title) + "\n" +
					c.Description + "\n\n" +
					ui.StyleSubtle.Render(c.Encouragement)))
			if n := plan.ChallengesUntilRetro(&p); n > 0 {
				fmt.Printf("\n%s\n", ui.StyleSubtle.Render(fmt.Sprintf("%d challenges until your next retro.", n)))
			} else {
				fmt.Printf("\n%s\n", ui.StyleSubtle.Render("A weekly retro is available: momentum retro"))
			}
		}

		// Show program day alongside, if enrolled.
		prog, err := GetProgramService()
		if err == nil && prog.ActiveProgram() != nil {
			cp := prog.ActiveProgram()
			fmt.Println()
			fmt.Printf("Program: %s (day %d/%d)\n", ui.StyleTitle.Render(cp.Title), prog.Active().CurrentDay, cp.DurationDays)
			if prog.CompletedToday() {
				fmt.Println(ui.StyleSuccess.Render("✔ Today's program day is done."))
			} else if d := prog.TodayDay(); d != nil {
				fmt.Printf("  %s — %s\n", ui.StyleTitle.Render(d.Title), ui.StyleSubtle.Render("momentum program done"))
			}
		}
		return nil
	},
}

func progressFraction(p *models.GoalPlan) float64 {
	if len(p.Challenges) == 0 {
		return 0
	}
	return float64(p.CompletedCount()) / float64(len(p.Challenges))
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
