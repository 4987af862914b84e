package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/momentumhq/momentum/internal/badges"
	"github.com/momentumhq/momentum/internal/ui"
)

// badgesCmd represents the badges command
var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "Show your badge collection",
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

		all := badges.ComputeAll(badges.InputFromPlans(svc.Plans()))

		earned := 0
		var category badges.Category
		for _, b := range all {
			if b.Category != category {
				category = b.Category
				fmt.Println(ui.StyleSectionTitle.Render(string(category)))
			}
			if b.Earned {
				earned++
				fmt.Printf("  %s %s — %s\n", b.Emoji, ui.StyleTitle.Render(b.Title), ui.StyleSubtle.Render(b.Description))
			} else {
				fmt.Printf("  🔒 %s\n", ui.StyleSubtle.Render(b.Title))
			}
		}

		fmt.Println()
		fmt.Println(ui.StyleSubtle.Render(fmt.Sprintf("%d of %d badges earned", earned, len(all))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(badgesCmd)
}
