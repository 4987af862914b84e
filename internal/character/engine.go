// Package character implements the deterministic, milestone-based character
// evolution ladder. Growth keys off total completed challenges across all
// goal plans; the character never regresses.
package character

import "fmt"

// Stage is one tier in the evolution ladder.
type Stage struct {
	Name          string
	Emoji         string
	MinChallenges int
	Description   string
	Narrative     string
}

// Badge is a cosmetic unlock tied to reaching a stage.
type Badge struct {
	ID          string
	Emoji       string
	Title       string
	Description string
}

// Stages is the fixed ascending-threshold stage table.
var Stages = []Stage{
	{Name: "Seed", Emoji: "🌰", MinChallenges: 0, Description: "Every journey starts here", Narrative: "A quiet beginning, full of potential."},
	{Name: "Sprout", Emoji: "🌱", MinChallenges: 3, Description: "Breaking through the surface", Narrative: "The first signs of growth are showing."},
	{Name: "Sapling", Emoji: "🌿", MinChallenges: 7, Description: "Growing stronger each day", Narrative: "Small daily wins are adding up."},
	{Name: "Young Tree", Emoji: "🪴", MinChallenges: 15, Description: "Roots are deepening", Narrative: "Your habits are taking hold."},
	{Name: "Tree", Emoji: "🌳", MinChallenges: 30, Description: "Standing tall and steady", Narrative: "Consistency has become your nature."},
	{Name: "Mighty Oak", Emoji: "🏔️", MinChallenges: 50, Description: "Unmovable, unstoppable", Narrative: "Little can shake what you've built."},
	{Name: "Ancient Grove", Emoji: "✨", MinChallenges: 100, Description: "A force of nature", Narrative: "Your growth now shelters everything around it."},
}

// stageBadges are the cosmetic unlocks granted at each stage index.
var stageBadges = []Badge{
	{ID: "stage-0", Emoji: "🌰", Title: "First Light", Description: "Planted the seed of a new habit."},
	{ID: "stage-1", Emoji: "🌱", Title: "Breakthrough", Description: "Broke through with your first streak of wins."},
	{ID: "stage-2", Emoji: "🌿", Title: "Taking Root", Description: "A full week of completed challenges."},
	{ID: "stage-3", Emoji: "🪴", Title: "Steady Grower", Description: "Fifteen challenges down and counting."},
	{ID: "stage-4", Emoji: "🌳", Title: "Deep Roots", Description: "Thirty completions. This is who you are now."},
	{ID: "stage-5", Emoji: "🏔️", Title: "Unshakeable", Description: "Fifty challenges conquered."},
	{ID: "stage-6", Emoji: "✨", Title: "Force of Nature", Description: "One hundred challenges. Extraordinary."},
}

// StageBadges returns the full ladder of stage unlocks in order, one per
// stage.
func StageBadges() []Badge {
	return append([]Badge(nil), stageBadges...)
}

// State is the fully derived character snapshot. Pure function of one
// integer input; nothing here is persisted.
type State struct {
	Stage          Stage
	StageIndex     int
	TotalCompleted int
	// NextMilestone is the completed-count needed for the next stage, or 0
	// at the final stage.
	NextMilestone int
	// ProgressToNext is the linear fraction toward the next stage, 1.0 at
	// the final stage.
	ProgressToNext  float64
	UnlockedBadges  []Badge
	ProgressMessage string
}

// ComputeState derives the character snapshot from the total completed
// challenge count. Negative input clamps to 0.
func ComputeState(totalCompleted int) State {
	if totalCompleted < 0 {
		totalCompleted = 0
	}

	stageIndex := 0
	for i := len(Stages) - 1; i >= 0; i-- {
		if totalCompleted >= Stages[i].MinChallenges {
			stageIndex = i
			break
		}
	}

	stage := Stages[stageIndex]
	nextMilestone := 0
	progress := 1.0
	if stageIndex < len(Stages)-1 {
		next := Stages[stageIndex+1]
		nextMilestone = next.MinChallenges
		progress = float64(totalCompleted-stage.MinChallenges) / float64(next.MinChallenges-stage.MinChallenges)
		if progress < 0 {
			progress = 0
		}
		if progress > 1 {
			progress = 1
		}
	}

	return State{
		Stage:           stage,
		StageIndex:      stageIndex,
		TotalCompleted:  totalCompleted,
		NextMilestone:   nextMilestone,
		ProgressToNext:  progress,
		UnlockedBadges:  append([]Badge(nil), stageBadges[:stageIndex+1]...),
		ProgressMessage: progressMessage(totalCompleted, stage, nextMilestone),
	}
}

func progressMessage(totalCompleted int, stage Stage, nextMilestone int) string {
	if nextMilestone == 0 {
		return fmt.Sprintf("%s has reached its final form. Keep going for the love of it.", stage.Name)
	}
	remaining := nextMilestone - totalCompleted
	if remaining == 1 {
		return fmt.Sprintf("1 challenge until your %s evolves.", stage.Name)
	}
	return fmt.Sprintf("%d challenges until your %s evolves.", remaining, stage.Name)
}
