package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/momentumhq/momentum/internal/character"
	"github.com/momentumhq/momentum/internal/ui"
)

// characterCmd represents the character command
var characterCmd = &cobra.Command{
	Use:     "character",
	Aliases: []string{"me"},
	Short:   "Show your character's evolution",
	Long: `Your character grows with every completed challenge, across all plans.
It evolves at fixed milestones and never regresses.`,
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

		state := character.ComputeState(svc.TotalCompleted())

		fmt.Println(ui.StyleChallengeBox.Render(
			fmt.Sprintf("%s  %s\n%s\n\n%s",
				state.Stage.Emoji,
				ui.StyleTitle.Render(state.Stage.Name),
				ui.StyleSubtle.Render(state.Stage.Description),
				state.Stage.Narrative)))
		fmt.Println()

		if state.NextMilestone > 0 {
			fmt.Printf("%s %d/%d\n", ui.ProgressBar(state.ProgressToNext, 20), state.TotalCompleted, state.NextMilestone)
		}
		fmt.Println(ui.StyleSubtle.Render(state.ProgressMessage))

		fmt.Println()
		fmt.Println(ui.StyleSectionTitle.Render("The journey"))
		for i, stage := range character.Stages {
			marker := "  "
			style := ui.StyleSubtle
			if i == state.StageIndex {
				marker = ui.StyleSuccess.Render("● ")
				style = ui.StyleTitle
			} else if i < state.StageIndex {
				marker = ui.StyleSuccess.Render("✔ ")
				style = ui.StyleText
			}
			fmt.Printf("%s%s %s %s\n", marker, stage.Emoji, style.Render(stage.Name),
				ui.StyleSubtle.Render(fmt.Sprintf("(%d+)", stage.MinChallenges)))
		}

		showCelebrations(svc)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(characterCmd)
}
