// Package badges derives the achievement grid shown to the user. All badge
// state is a pure function of the plan collection and the character stage;
// only the "seen" set for celebrations is persisted.
package badges

import (
	"github.com/momentumhq/momentum/internal/character"
	"github.com/momentumhq/momentum/models"
)

// Category separates stage unlocks from behavior achievements.
type Category string

const (
	CategoryEvolution   Category = "Evolution"
	CategoryAchievement Category = "Achievement"
)

// Badge is one entry in the achievement grid.
type Badge struct {
	ID          string
	Emoji       string
	Title       string
	Description string
	Category    Category
	Earned      bool
}

// Input is the pre-aggregated collection state badge rules run against.
type Input struct {
	TotalCompleted     int
	StageIndex         int
	PlanCount          int
	CompletedGoals     int
	TotalRetros        int
	HasNotes           bool
	CompletedWithNotes int
}

// InputFromPlans aggregates the collection into badge inputs. The stage
// index is derived from lifetime completions so evolution badges and the
// character screen can never disagree.
func InputFromPlans(plans []models.GoalPlan) Input {
	var in Input
	in.PlanCount = len(plans)
	for i := range plans {
		p := &plans[i]
		in.TotalCompleted += p.CompletedCount()
		in.TotalRetros += len(p.Retros)
		if p.GoalCompletedAt != nil {
			in.CompletedGoals++
		}
		for _, c := range p.Challenges {
			if c.Notes != "" {
				in.HasNotes = true
				if c.Completed {
					in.CompletedWithNotes++
				}
			}
		}
	}
	in.StageIndex = character.ComputeState(in.TotalCompleted).StageIndex
	return in
}

// ComputeStageBadges maps the evolution ladder into badges, earned up to and
// including the current stage.
func ComputeStageBadges(stageIndex int) []Badge {
	ladder := character.StageBadges()
	out := make([]Badge, len(ladder))
	for i, b := range ladder {
		out[i] = Badge{
			ID:          b.ID,
			Emoji:       b.Emoji,
			Title:       b.Title,
			Description: b.Description,
			Category:    CategoryEvolution,
			Earned:      i <= stageIndex,
		}
	}
	return out
}

// ComputeAchievementBadges evaluates the behavior achievements. The rule
// set is fixed; every badge always appears, earned or not.
func ComputeAchievementBadges(in Input) []Badge {
	return []Badge{
		{ID: "first-challenge", Emoji: "⭐", Title: "First Step",
			Description: "Completed your very first challenge.",
			Category:    CategoryAchievement, Earned: in.TotalCompleted >= 1},
		{ID: "first-goal-complete", Emoji: "🎯", Title: "Goal Crusher",
			Description: "Completed an entire goal plan from start to finish.",
			Category:    CategoryAchievement, Earned: in.CompletedGoals >= 1},
		{ID: "two-goals", Emoji: "🌐", Title: "Multi-Tasker",
			Description: "Started 2 or more goal plans.",
			Category:    CategoryAchievement, Earned: in.PlanCount >= 2},
		{ID: "first-retro", Emoji: "🔄", Title: "Reflector",
			Description: "Completed your first weekly retro.",
			Category:    CategoryAchievement, Earned: in.TotalRetros >= 1},
		{ID: "three-retros", Emoji: "🪞", Title: "Deep Thinker",
			Description: "Completed 3 weekly retros. Self-awareness is a superpower.",
			Category:    CategoryAchievement, Earned: in.TotalRetros >= 3},
		{ID: "first-note", Emoji: "📝", Title: "Journaler",
			Description: "Left a reflection note on a challenge.",
			Category:    CategoryAchievement, Earned: in.HasNotes},
		{ID: "five-notes", Emoji: "📖", Title: "Storyteller",
			Description: "Left reflection notes on 5 challenges.",
			Category:    CategoryAchievement, Earned: in.CompletedWithNotes >= 5},
		{ID: "ten-challenges", Emoji: "🔟", Title: "Double Digits",
			Description: "Completed 10 challenges. You're in the groove.",
			Category:    CategoryAchievement, Earned: in.TotalCompleted >= 10},
		{ID: "three-goals-complete", Emoji: "🏆", Title: "Hat Trick",
			Description: "Completed 3 goal plans. You finish what you start.",
			Category:    CategoryAchievement, Earned: in.CompletedGoals >= 3},
		{ID: "twenty-five-challenges", Emoji: "💎", Title: "Quarter Century",
			Description: "25 challenges completed. Consistency personified.",
			Category:    CategoryAchievement, Earned: in.TotalCompleted >= 25},
	}
}

// ComputeAll returns the full grid: evolution ladder first, then
// achievements.
func ComputeAll(in Input) []Badge {
	return append(ComputeStageBadges(in.StageIndex), ComputeAchievementBadges(in)...)
}

// Earned filters to earned badges only, preserving order.
func Earned(all []Badge) []Badge {
	var out []Badge
	for _, b := range all {
		if b.Earned {
			out = append(out, b)
		}
	}
	return out
}
