package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/momentumhq/momentum/internal/ui"
)

// timetravelCmd represents the timetravel command. Development tool: the
// whole engine keys "today" off the clock abstraction, so shifting the
// offset exercises day gating, retro windows and missed-day counting
// without waiting for real days to pass.
var timetravelCmd = &cobra.Command{
	Use:    "timetravel [+N|-N|0]",
	Hidden: true,
	Short:  "Shift the engine's notion of today (debug)",
	Example: `  momentum timetravel +1   # jump one day forward
  momentum timetravel -2   # back two days
  momentum timetravel 0    # return to the present
  momentum timetravel      # show the current offset`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		current := loadDayOffset()

		if len(args) == 0 {
			fmt.Printf("Day offset: %+d (today is %s)\n", current, GetClock().TodayKey())
			return nil
		}

		arg := strings.TrimSpace(args[0])
		var next int
		switch {
		case arg == "0":
			next = 0
		case strings.HasPrefix(arg, "+") || strings.HasPrefix(arg, "-"):
			delta, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid offset %q: use +N, -N or 0", arg)
			}
			next = current + delta
		default:
			abs, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid offset %q: use +N, -N or 0", arg)
			}
			next = abs
		}

		if err := saveDayOffset(next); err != nil {
			return fmt.Errorf("failed to persist day offset: %w", err)
		}
		fmt.Printf("Day offset: %+d (today is now %s)\n", next, GetClock().TodayKey())
		if next != 0 {
			fmt.Println(ui.StyleWarning.Render("Remember to come back: momentum timetravel 0"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(timetravelCmd)
}
