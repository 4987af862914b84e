/*
Copyright © 2025 Momentum HQ
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/momentumhq/momentum/internal/badges"
	"github.com/momentumhq/momentum/internal/character"
	"github.com/momentumhq/momentum/internal/clock"
	"github.com/momentumhq/momentum/internal/generate"
	"github.com/momentumhq/momentum/internal/logger"
	"github.com/momentumhq/momentum/internal/plan"
	"github.com/momentumhq/momentum/internal/program"
	"github.com/momentumhq/momentum/llm"
	"github.com/momentumhq/momentum/models"
	"github.com/momentumhq/momentum/store"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// ErrNoPlansFound is returned when an interactive selection is attempted but no plans are available.
	ErrNoPlansFound = errors.New("no goal plans found matching your criteria")
	// version is the application version.
	version = "0.3.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "momentum",
	Short: "Momentum helps you build habits through daily micro-challenges.",
	Long: `Momentum turns a goal into a sequence of small daily challenges.
Complete one challenge per day, reflect weekly, and the next batch adapts
to how your week actually went.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer logger.HandlePanic()
	logger.SetVersion(version)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.momentum.yaml or ./.momentum.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// GetPlansFilePath returns the full path to the goal plans file.
func GetPlansFilePath() string {
	config := GetConfig()
	return filepath.Join(config.Data.Dir, config.Data.PlansFile)
}

// GetStore initializes and returns the plan store.
func GetStore() (store.PlanStore, error) {
	s := store.NewFilePlanStore()
	plansFilePath := GetPlansFilePath()

	if err := s.Initialize(map[string]string{"dataFile": plansFilePath}); err != nil {
		return nil, fmt.Errorf("failed to initialize store at %s: %w", plansFilePath, err)
	}
	return s, nil
}

// GetClock builds the engine clock: system time shifted by the persisted
// timetravel offset plus any configured debug offset.
func GetClock() clock.Clock {
	config := GetConfig()
	return clock.NewSystemClock(config.Debug.DayOffset + loadDayOffset())
}

// GetPlanService wires the full state machine: store, generation gateway
// and clock, hydrated from disk. The caller owns closing the store.
func GetPlanService() (*plan.Service, store.PlanStore, error) {
	config := GetConfig()

	st, err := GetStore()
	if err != nil {
		return nil, nil, err
	}

	provider, err := llm.NewProvider(&config.LLM)
	if err != nil {
		// No provider means the gateway serves fallback challenges. Fine
		// for offline use; mention it when verbose.
		if config.Verbose {
			fmt.Fprintf(os.Stderr, "Notice: generation provider unavailable (%v), using built-in challenges\n", err)
		}
		provider = nil
	}
	gateway := generate.NewGateway(provider, config.Data.TemplatesDir, config.Verbose)

	svc := plan.NewService(st, gateway, GetClock())
	if err := svc.Hydrate(); err != nil {
		_ = st.Close()
		return nil, nil, err
	}
	return svc, st, nil
}

// GetProgramService returns the hydrated creator-program store.
func GetProgramService() (*program.Service, error) {
	config := GetConfig()
	svc := program.NewService(afero.NewOsFs(), filepath.Join(config.Data.Dir, config.Data.ProgramFile), GetClock())
	if err := svc.Hydrate(); err != nil {
		return nil, err
	}
	return svc, nil
}

// GetEvolutionDetector returns the stage-celebration detector.
func GetEvolutionDetector() *character.Detector {
	config := GetConfig()
	return character.NewDetector(filepath.Join(config.Data.Dir, config.Data.EvolutionFile))
}

// GetBadgeTracker returns the badge-celebration tracker.
func GetBadgeTracker() *badges.Tracker {
	config := GetConfig()
	return badges.NewTracker(filepath.Join(config.Data.Dir, config.Data.BadgesFile))
}

// dayOffsetPath is where the timetravel command persists its offset.
func dayOffsetPath() string {
	return filepath.Join(GetConfig().Data.Dir, "day_offset")
}

func loadDayOffset() int {
	data, err := os.ReadFile(dayOffsetPath())
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return n
}

func saveDayOffset(n int) error {
	path := dayOffsetPath()
	if n == 0 {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strconv.Itoa(n)), 0o644)
}

// resolvePlan finds a plan by id prefix or exact goal text match.
func resolvePlan(svc *plan.Service, ref string) (models.GoalPlan, error) {
	var matches []models.GoalPlan
	for _, p := range svc.Plans() {
		if p.ID == ref {
			return p, nil
		}
		if strings.HasPrefix(p.ID, ref) || strings.EqualFold(p.Goal, ref) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.GoalPlan{}, fmt.Errorf("no goal plan matches %q", ref)
	default:
		return models.GoalPlan{}, fmt.Errorf("%q is ambiguous, matches %d plans", ref, len(matches))
	}
}

// activePlan returns the active plan, or an error nudging toward `new`.
func activePlan(svc *plan.Service) (models.GoalPlan, error) {
	id := svc.ActivePlanID()
	if id == "" {
		return models.GoalPlan{}, errors.New("no active goal plan; create one with: momentum new")
	}
	return resolvePlan(svc, id)
}

// selectPlanInteractive presents a prompt to the user to select a plan from a list.
// It can be filtered using the provided filter function.
func selectPlanInteractive(svc *plan.Service, filterFn func(models.GoalPlan) bool, label string) (models.GoalPlan, error) {
	var plans []models.GoalPlan
	for _, p := range svc.Plans() {
		if filterFn == nil || filterFn(p) {
			plans = append(plans, p)
		}
	}
	if len(plans) == 0 {
		return models.GoalPlan{}, ErrNoPlansFound
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   `> {{ .Goal | cyan }} ({{ .CompletedCount }}/{{ len .Challenges }} done)`,
		Inactive: `  {{ .Goal | faint }} ({{ .CompletedCount }}/{{ len .Challenges }} done)`,
		Selected: `{{ "✔" | green }} {{ .Goal | faint }}`,
	}

	searcher := func(input string, index int) bool {
		p := plans[index]
		return strings.Contains(strings.ToLower(p.Goal), strings.ToLower(input))
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     plans,
		Templates: templates,
		Searcher:  searcher,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return models.GoalPlan{}, err // includes promptui.ErrInterrupt
	}
	return plans[i], nil
}

// confirmAction asks a y/N question, defaulting to no.
func confirmAction(label string) bool {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	return err == nil
}
