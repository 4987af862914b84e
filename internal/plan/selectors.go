package plan

import (
	"sort"

	"github.com/momentumhq/momentum/internal/clock"
	"github.com/momentumhq/momentum/models"
)

// Stats aggregates progress across the whole collection.
type Stats struct {
	TotalPlans     int
	TotalCompleted int
	TotalRetros    int
	ManualRetros   int
	CompletedGoals int
}

// HistoryEntry is one completed challenge paired with the goal it served.
type HistoryEntry struct {
	PlanID    string
	Goal      string
	Challenge models.MicroChallenge
}

// CurrentChallenge returns a copy of the challenge at the plan's index, or
// nil when the plan is missing or the batch is exhausted.
func (s *Service) CurrentChallenge(planID string) *models.MicroChallenge {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findLocked(planID)
	if idx < 0 {
		return nil
	}
	p := &s.plans[idx]
	if p.CurrentIndex >= len(p.Challenges) {
		return nil
	}
	c := p.Challenges[p.CurrentIndex]
	return &c
}

// CompletedToday reports whether any challenge in the plan was completed on
// the clock's current day. Day identity is a UTC calendar date, so the
// answer flips at midnight without any timer.
func (s *Service) CompletedToday(planID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findLocked(planID)
	if idx < 0 {
		return false
	}
	today := s.clock.TodayKey()
	for _, c := range s.plans[idx].Challenges {
		if c.Completed && c.CompletedAt != nil && clock.DayKey(*c.CompletedAt) == today {
			return true
		}
	}
	return false
}

// HasNewChallenge reports whether the plan has an incomplete current
// challenge the user is allowed to do now: one challenge per day.
func (s *Service) HasNewChallenge(planID string) bool {
	s.mu.Lock()
	idx := s.findLocked(planID)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	p := &s.plans[idx]
	ok := p.CurrentIndex < len(p.Challenges) &&
		!p.Challenges[p.CurrentIndex].Completed &&
		!p.IsTerminal()
	s.mu.Unlock()

	return ok && !s.CompletedToday(planID)
}

// RetroRequired reports whether the plan's batch is exhausted, forcing a
// retro before any further progress.
func RetroRequired(p *models.GoalPlan) bool {
	return len(p.Challenges) > 0 && p.CurrentIndex >= len(p.Challenges) && !p.IsTerminal()
}

// RetroEligible reports whether enough challenges have been completed since
// the last retro to offer a voluntary one.
func RetroEligible(p *models.GoalPlan) bool {
	return completedSinceRetro(p) >= RetroChallengeThreshold && !p.IsTerminal()
}

// ChallengesUntilRetro counts the remaining completions before the next
// voluntary retro unlocks.
func ChallengesUntilRetro(p *models.GoalPlan) int {
	n := RetroChallengeThreshold - completedSinceRetro(p)
	if n < 0 {
		return 0
	}
	return n
}

func completedSinceRetro(p *models.GoalPlan) int {
	return p.CompletedCount() - p.CompletedAtLastRetro
}

// CollectionStats rolls progress counters up across all plans.
func (s *Service) CollectionStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var st Stats
	st.TotalPlans = len(s.plans)
	for i := range s.plans {
		p := &s.plans[i]
		st.TotalCompleted += p.CompletedCount()
		st.TotalRetros += len(p.Retros)
		for _, r := range p.Retros {
			if r.IsManual {
				st.ManualRetros++
			}
		}
		if p.GoalCompletedAt != nil {
			st.CompletedGoals++
		}
	}
	return st
}

// TotalCompleted counts completed challenges across all plans. This feeds
// the character progression, which tracks lifetime effort rather than any
// single goal.
func (s *Service) TotalCompleted() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for i := range s.plans {
		total += s.plans[i].CompletedCount()
	}
	return total
}

// CompletedHistory returns every completed challenge across all plans,
// newest first.
func (s *Service) CompletedHistory() []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []HistoryEntry
	for i := range s.plans {
		p := &s.plans[i]
		for _, c := range p.Challenges {
			if c.Completed {
				out = append(out, HistoryEntry{PlanID: p.ID, Goal: p.Goal, Challenge: c})
			}
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		ca, cb := out[a].Challenge.CompletedAt, out[b].Challenge.CompletedAt
		if ca == nil || cb == nil {
			return cb == nil && ca != nil
		}
		return ca.After(*cb)
	})
	return out
}

// ManualRetroCount counts user-initiated journal retros across all plans.
// The free tier caps these.
func (s *Service) ManualRetroCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for i := range s.plans {
		for _, r := range s.plans[i].Retros {
			if r.IsManual {
				n++
			}
		}
	}
	return n
}
