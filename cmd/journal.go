package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/momentumhq/momentum/internal/clock"
	"github.com/momentumhq/momentum/internal/ui"
)

var journalLimit int

// journalCmd represents the journal command
var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show your completed challenges and reflections",
	Long: `A reverse-chronological journal of everything you've completed across
all plans, including the notes you left, plus your retro reflections.`,
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

		history := svc.CompletedHistory()
		if len(history) == 0 {
			fmt.Println("Nothing in the journal yet. Complete your first challenge: momentum done")
			return nil
		}

		shown := 0
		for _, entry := range history {
			if journalLimit > 0 && shown >= journalLimit {
				break
			}
			day := ""
			if entry.Challenge.CompletedAt != nil {
				day = clock.DayKey(*entry.Challenge.CompletedAt)
			}
			fmt.Printf("%s  %s %s\n", ui.StyleSubtle.Render(day), ui.StyleTitle.Render(entry.Challenge.Title), ui.StyleSubtle.Render("("+entry.Goal+")"))
			if entry.Challenge.Notes != "" {
				fmt.Printf("      %s\n", ui.StyleInsight.Render("“"+entry.Challenge.Notes+"”"))
			}
			shown++
		}

		// Retro reflections, newest last so they read chronologically.
		var printedHeader bool
		for _, p := range svc.Plans() {
			for _, r := range p.Retros {
				if !printedHeader {
					fmt.Println()
					fmt.Println(ui.StyleSectionTitle.Render("Retros"))
					printedHeader = true
				}
				kind := ""
				if r.IsManual {
					kind = ui.StyleSubtle.Render(" (early)")
				}
				fmt.Printf("%s%s  %s\n", ui.StyleSubtle.Render(clock.DayKey(r.CreatedAt)), kind, r.Reflection)
				fmt.Printf("      %s\n", ui.StyleInsight.Render(r.Insight.BehavioralInsight))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.Flags().IntVar(&journalLimit, "limit", 15, "max completed challenges to show (0 for all)")
}
