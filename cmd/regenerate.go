package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/momentumhq/momentum/internal/logger"
	"github.com/momentumhq/momentum/internal/premium"
	"github.com/momentumhq/momentum/internal/ui"
	"github.com/momentumhq/momentum/types"
)

var regenerateYes bool

// regenerateCmd represents the regenerate command
var regenerateCmd = &cobra.Command{
	Use:   "regenerate [plan]",
	Short: "Replace a plan's challenges with a fresh batch",
	Long: `Throw away the remaining challenges and generate a brand new batch from
scratch. Progress within the batch resets; retro history is kept.
Available with momentum plus.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.SetCommand("regenerate")
		config := GetConfig()

		if !premium.CanRegeneratePlan(config.Premium.Entitled) {
			fmt.Println("Regenerating challenges is a momentum plus feature.")
			fmt.Println("Enable it with premium.entitled in your config.")
			return nil
		}

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
		if len(args) > 0 {
			p, err = resolvePlan(svc, args[0])
		}
		if err != nil {
			fmt.Println(err)
			return nil
		}

		if !regenerateYes && !confirmAction(fmt.Sprintf("Replace all challenges of %q and reset batch progress", p.Goal)) {
			fmt.Println("Operation cancelled.")
			return nil
		}

		fmt.Println(ui.StyleSubtle.Render("Generating a fresh batch..."))
		if err := svc.RegeneratePlan(cmd.Context(), p.ID); err != nil {
			if errors.Is(err, types.ErrGenerationBusy) {
				fmt.Println("Another generation is already in progress. Try again in a moment.")
				return nil
			}
			return fmt.Errorf("failed to regenerate challenges: %w", err)
		}

		fmt.Printf("%s New challenges ready. See today's: %s\n", ui.Icon("✨", ui.StyleSuccess), ui.StylePrimary.Render("momentum status"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(regenerateCmd)
	regenerateCmd.Flags().BoolVarP(&regenerateYes, "yes", "y", false, "regenerate without confirmation")
}
