package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/momentumhq/momentum/internal/logger"
	"github.com/momentumhq/momentum/internal/plan"
	"github.com/momentumhq/momentum/internal/ui"
	"github.com/momentumhq/momentum/models"
	"github.com/momentumhq/momentum/types"
)

// freeManualRetroLimit caps user-initiated retros on the free tier.
// Scheduled retros (threshold reached or batch exhausted) are always free.
const freeManualRetroLimit = 3

var retroManual bool

type feelingChoice struct {
	Label   string
	Feeling models.RetroFeeling
}

var feelingChoices = []feelingChoice{
	{"💪 Confident — this felt good", models.FeelingConfident},
	{"🔥 Motivated — ready for more", models.FeelingMotivated},
	{"😐 Neutral — just fine", models.FeelingNeutral},
	{"🌀 Stuck — not sure it's working", models.FeelingStuck},
	{"😮‍💨 Overwhelmed — it was too much", models.FeelingOverwhelmed},
	{"Skip this question", ""},
}

// retroCmd represents the retro command
var retroCmd = &cobra.Command{
	Use:     "retro",
	Aliases: []string{"reflect", "r"},
	Short:   "Run a weekly retro and adapt the next challenges",
	Long: `Reflect on the past week. Momentum analyzes your completion pattern,
adapts the difficulty, and generates the next batch of challenges.

A retro unlocks after 7 completed challenges, and is required once a
batch runs out. Use --manual to reflect early.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.SetCommand("retro")
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

		p, err := activePlan(svc)
		if err != nil {
			fmt.Println(err)
			return nil
		}
		if p.IsTerminal() {
			fmt.Println("This goal is already completed.")
			return nil
		}

		required := plan.RetroRequired(&p)
		eligible := plan.RetroEligible(&p)
		isManual := retroManual && !required && !eligible

		if !required && !eligible && !retroManual {
			n := plan.ChallengesUntilRetro(&p)
			fmt.Printf("Your retro unlocks after %d more completed challenges.\n", n)
			fmt.Println("Reflect early anyway with: momentum retro --manual")
			return nil
		}
		if isManual && !config.Premium.Entitled && svc.ManualRetroCount() >= freeManualRetroLimit {
			fmt.Printf("The free tier includes %d early retros, and you've used them all.\n", freeManualRetroLimit)
			fmt.Println("Scheduled retros stay free; enable momentum plus for unlimited early ones.")
			return nil
		}

		reflectionPrompt := promptui.Prompt{
			Label: "How did this week go",
			Validate: func(input string) error {
				if strings.TrimSpace(input) == "" {
					return errors.New("reflection cannot be empty")
				}
				return nil
			},
		}
		reflection, err := reflectionPrompt.Run()
		if err != nil {
			if err == promptui.ErrInterrupt {
				fmt.Println("Operation cancelled.")
				return nil
			}
			return err
		}
		reflection = strings.TrimSpace(reflection)
		logger.SetLastInput(reflection)

		feelingSelect := promptui.Select{
			Label: "How are you feeling about your progress",
			Items: feelingChoices,
			Templates: &promptui.SelectTemplates{
				Label:    "{{ . }}?",
				Active:   "> {{ .Label | cyan }}",
				Inactive: "  {{ .Label | faint }}",
				Selected: `{{ "✔" | green }} {{ .Label | faint }}`,
			},
		}
		i, _, err := feelingSelect.Run()
		if err != nil {
			if err == promptui.ErrInterrupt {
				fmt.Println("Operation cancelled.")
				return nil
			}
			return err
		}
		feeling := feelingChoices[i].Feeling

		fmt.Println(ui.StyleSubtle.Render("Analyzing your week and generating the next batch..."))
		if err := svc.SubmitRetro(cmd.Context(), p.ID, reflection, feeling, isManual); err != nil {
			if errors.Is(err, types.ErrGenerationBusy) {
				fmt.Println("Another generation is already in progress. Try again in a moment.")
				return nil
			}
			if errors.Is(err, types.ErrGenerationFailed) {
				fmt.Println("Generation didn't go through, nothing was changed. Try again in a moment.")
				LogError("retro generation failed", err)
				return nil
			}
			return err
		}

		refreshed, err := resolvePlan(svc, p.ID)
		if err != nil {
			return err
		}
		retro := refreshed.Retros[len(refreshed.Retros)-1]

		fmt.Println()
		fmt.Println(ui.StyleSectionTitle.Render("This week"))
		fmt.Printf("  Completed %d of %d challenges (%.0f%%)\n", retro.Insight.CompletedCount, retro.Insight.TotalCount, retro.Insight.CompletionRate*100)
		if retro.Insight.TimePattern != models.PatternMixed {
			fmt.Printf("  You tend to complete challenges in the %s.\n", retro.Insight.TimePattern)
		}
		fmt.Println("  " + ui.StyleInsight.Render(retro.Insight.BehavioralInsight))

		fmt.Println()
		fmt.Println(ui.StyleSectionTitle.Render("Adapting"))
		for _, adj := range retro.Adaptation.Adjustments {
			fmt.Println("  • " + adj)
		}
		if retro.Adaptation.Reason != "" {
			fmt.Println("  " + ui.StyleSubtle.Render(retro.Adaptation.Reason))
		}
		if retro.Adaptation.Expectation != "" {
			fmt.Println("  " + ui.StyleSubtle.Render(retro.Adaptation.Expectation))
		}

		fmt.Println()
		fmt.Printf("%s Fresh challenges are ready. See today's: %s\n", ui.Icon("✨", ui.StyleSuccess), ui.StylePrimary.Render("momentum status"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(retroCmd)
	retroCmd.Flags().BoolVar(&retroManual, "manual", false, "reflect before the retro threshold is reached")
}
