package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/momentumhq/momentum/internal/plan"
	"github.com/momentumhq/momentum/internal/ui"
)

// plansCmd represents the plans command
var plansCmd = &cobra.Command{
	Use:     "plans",
	Aliases: []string{"list", "ls"},
	Short:   "List all goal plans",
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

		plans := svc.Plans()
		if len(plans) == 0 {
			fmt.Println("No goal plans yet. Create one with: momentum new")
			return nil
		}

		for _, p := range plans {
			marker := "  "
			if p.IsActive {
				marker = ui.StyleSuccess.Render("● ")
			}
			line := fmt.Sprintf("%s%s", marker, ui.StyleTitle.Render(p.Goal))
			switch {
			case p.IsTerminal():
				line += ui.StyleSuccess.Render("  🏆 completed")
			case plan.RetroRequired(&p):
				line += ui.StyleWarning.Render("  retro due")
			}
			fmt.Println(line)
			fmt.Printf("    %s  %d/%d challenges, %d retros  %s\n",
				ui.StyleSubtle.Render(shortID(p.ID)),
				p.CompletedCount(), len(p.Challenges), len(p.Retros),
				ui.ProgressBar(progressFraction(&p), 12))
		}

		stats := svc.CollectionStats()
		fmt.Println()
		fmt.Println(ui.StyleSubtle.Render(fmt.Sprintf(
			"%d plans · %d challenges completed · %d retros · %d goals achieved",
			stats.TotalPlans, stats.TotalCompleted, stats.TotalRetros, stats.CompletedGoals)))
		return nil
	},
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	rootCmd.AddCommand(plansCmd)
}
