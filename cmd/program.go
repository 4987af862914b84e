package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/momentumhq/momentum/internal/program"
	"github.com/momentumhq/momentum/internal/ui"
)

// programCmd is the parent for creator-program subcommands.
var programCmd = &cobra.Command{
	Use:   "program",
	Short: "Browse and follow creator-led programs",
	Long: `Creator programs are fixed guided journeys: one authored challenge per
day for a set number of days. You can follow one program at a time,
alongside your goal plans.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return programStatus()
	},
}

var programListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available programs",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, p := range program.Catalog() {
			lock := ""
			if p.Premium {
				lock = ui.StyleWarning.Render(" [plus]")
			}
			fmt.Printf("%s%s\n", ui.StyleTitle.Render(p.Title), lock)
			fmt.Printf("  %s · %d days · ★ %.1f (%d enrolled)\n",
				ui.StyleSubtle.Render("by "+p.CreatorName), p.DurationDays, p.SocialProof.AverageRating, p.SocialProof.EnrolledCount)
			fmt.Printf("  %s\n", p.Description)
			fmt.Printf("  %s\n\n", ui.StyleSubtle.Render("momentum program enroll "+p.ID))
		}
		return nil
	},
}

var programEnrollCmd = &cobra.Command{
	Use:   "enroll <program-id>",
	Short: "Enroll in a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config := GetConfig()
		p := program.Lookup(args[0])
		if p == nil {
			return fmt.Errorf("no program with id %q; see: momentum program list", args[0])
		}
		if p.Premium && !config.Premium.Entitled {
			fmt.Printf("%q is a momentum plus program.\n", p.Title)
			fmt.Println("Enable premium.entitled in your config to follow it.")
			return nil
		}

		svc, err := GetProgramService()
		if err != nil {
			return err
		}
		if cur := svc.ActiveProgram(); cur != nil && cur.ID != p.ID {
			if !confirmAction(fmt.Sprintf("Leave %q and start %q", cur.Title, p.Title)) {
				fmt.Println("Operation cancelled.")
				return nil
			}
		}

		svc.Enroll(p.ID)
		fmt.Printf("%s Enrolled in %s. Day 1 awaits:\n\n", ui.Icon("🎯", ui.StyleSuccess), ui.StyleTitle.Render(p.Title))
		printProgramDay(svc.TodayDay())
		return nil
	},
}

var programDoneCmd = &cobra.Command{
	Use:   "done",
	Short: "Complete today's program day",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := GetProgramService()
		if err != nil {
			return err
		}
		p := svc.ActiveProgram()
		if p == nil {
			fmt.Println("You're not following a program. Browse them with: momentum program list")
			return nil
		}
		if svc.CompletedToday() {
			fmt.Println("You already completed a program day today. The next one opens tomorrow.")
			return nil
		}

		day := svc.TodayDay()
		svc.CompleteDay()

		if day != nil {
			fmt.Printf("%s %s\n", ui.Icon("🎉", ui.StyleSuccess), ui.StyleTitle.Render(day.Title))
			fmt.Println(ui.StyleSubtle.Render(day.Encouragement))
		}
		if svc.Active() == nil {
			fmt.Println()
			fmt.Println(ui.StyleCelebrationBox.Render(
				fmt.Sprintf("🏆 You finished %s — all %d days!", ui.StyleTitle.Render(p.Title), p.DurationDays)))
		} else {
			fmt.Printf("\nDay %d/%d. Keep going.\n", svc.Active().CurrentDay, p.DurationDays)
		}
		return nil
	},
}

var programAbandonCmd = &cobra.Command{
	Use:   "abandon",
	Short: "Leave the current program",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := GetProgramService()
		if err != nil {
			return err
		}
		p := svc.ActiveProgram()
		if p == nil {
			fmt.Println("You're not following a program.")
			return nil
		}
		if !confirmAction(fmt.Sprintf("Leave %q and lose its progress", p.Title)) {
			fmt.Println("Operation cancelled.")
			return nil
		}
		svc.Abandon()
		fmt.Printf("Left %s.\n", p.Title)
		return nil
	},
}

func programStatus() error {
	svc, err := GetProgramService()
	if err != nil {
		return err
	}
	p := svc.ActiveProgram()
	if p == nil {
		fmt.Println("You're not following a program. Browse them with: momentum program list")
		return nil
	}

	e := svc.Active()
	fmt.Printf("%s %s\n", ui.StyleTitle.Render(p.Title), ui.StyleSubtle.Render("by "+p.CreatorName))
	fmt.Printf("%s day %d of %d\n\n", ui.ProgressBar(svc.Progress(), 20), e.CurrentDay, p.DurationDays)

	if svc.CompletedToday() {
		fmt.Println(ui.StyleSuccess.Render("✔ Today's program day is done. Come back tomorrow."))
		return nil
	}
	printProgramDay(svc.TodayDay())
	fmt.Println("\n💡 When you've done it: " + ui.StylePrimary.Render("momentum program done"))
	return nil
}

func printProgramDay(d *program.Day) {
	if d == nil {
		return
	}
	fmt.Println(ui.StyleChallengeBox.Render(
		ui.StyleTitle.Render(fmt.Sprintf("Day %d: %s", d.Day, d.Title)) + "\n" +
			d.Description + "\n\n" +
			ui.StyleSubtle.Render(d.Encouragement)))
}

func init() {
	rootCmd.AddCommand(programCmd)
	programCmd.AddCommand(programListCmd)
	programCmd.AddCommand(programEnrollCmd)
	programCmd.AddCommand(programDoneCmd)
	programCmd.AddCommand(programAbandonCmd)
}
