// Package insight holds the two pure functions behind the weekly retro: the
// insight computer (behavioral signals from completion history) and the
// adaptation rule engine (feeling + insight -> directive).
package insight

import (
	"fmt"
	"time"

	"github.com/momentumhq/momentum/internal/clock"
	"github.com/momentumhq/momentum/models"
)

// Time-bucket boundaries and the dominance threshold are tuning constants,
// not hard law.
const (
	morningEndHour   = 12
	afternoonEndHour = 17
	dominanceRatio   = 0.5
	minPatternSample = 2
)

// classifyTime buckets a completion timestamp by its hour.
func classifyTime(t time.Time) models.TimePattern {
	hour := t.Hour()
	switch {
	case hour < morningEndHour:
		return models.PatternMorning
	case hour < afternoonEndHour:
		return models.PatternAfternoon
	default:
		return models.PatternEvening
	}
}

// daysBetween counts whole calendar days between two instants, ignoring the
// time-of-day component.
func daysBetween(a, b time.Time) int {
	au := a.UTC()
	bu := b.UTC()
	ad := time.Date(au.Year(), au.Month(), au.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(bu.Year(), bu.Month(), bu.Day(), 0, 0, 0, 0, time.UTC)
	d := int(bd.Sub(ad).Hours() / 24)
	if d < 0 {
		return -d
	}
	return d
}

// ComputeWeeklyInsight derives quantitative and qualitative signals from the
// challenges added since the last retro. Pure: the caller supplies now.
func ComputeWeeklyInsight(plan *models.GoalPlan, now time.Time) models.WeeklyInsight {
	sinceIndex := plan.CompletedAtLastRetro
	if sinceIndex > len(plan.Challenges) {
		sinceIndex = len(plan.Challenges)
	}
	relevant := plan.Challenges[sinceIndex:]

	var completed []models.MicroChallenge
	for _, c := range relevant {
		if c.Completed {
			completed = append(completed, c)
		}
	}

	total := len(relevant)
	completionRate := 0.0
	if total > 0 {
		completionRate = float64(len(completed)) / float64(total)
	}

	// Time pattern: needs at least two classified samples and a bucket
	// holding at least half of them. Ties resolve morning > afternoon >
	// evening.
	counts := map[models.TimePattern]int{}
	samples := 0
	for _, c := range completed {
		if c.CompletedAt != nil {
			counts[classifyTime(*c.CompletedAt)]++
			samples++
		}
	}
	timePattern := models.PatternMixed
	if samples >= minPatternSample {
		maxCount := 0
		for _, p := range []models.TimePattern{models.PatternMorning, models.PatternAfternoon, models.PatternEvening} {
			if counts[p] > maxCount {
				maxCount = counts[p]
			}
		}
		if float64(maxCount) >= float64(samples)*dominanceRatio {
			for _, p := range []models.TimePattern{models.PatternMorning, models.PatternAfternoon, models.PatternEvening} {
				if counts[p] == maxCount {
					timePattern = p
					break
				}
			}
		}
	}

	// Day span counts from the later of plan creation and last retro.
	daySpan := daysBetween(plan.LastRetroAt(), now)
	if daySpan < 1 {
		daySpan = 1
	}

	completedDays := map[string]bool{}
	for _, c := range completed {
		if c.CompletedAt != nil {
			completedDays[clock.DayKey(*c.CompletedAt)] = true
		}
	}
	missedDays := daySpan - len(completedDays)
	if missedDays < 0 {
		missedDays = 0
	}

	return models.WeeklyInsight{
		CompletedCount:    len(completed),
		TotalCount:        total,
		CompletionRate:    completionRate,
		TimePattern:       timePattern,
		MissedDays:        missedDays,
		BehavioralInsight: behavioralInsight(completionRate, timePattern, missedDays, len(completed), daySpan),
		DaySpan:           daySpan,
	}
}

// behavioralInsight is a fixed decision list, evaluated top to bottom; the
// first match wins.
func behavioralInsight(rate float64, pattern models.TimePattern, missedDays, completed, daySpan int) string {
	if completed == 0 {
		return "This is a fresh start. Let's find a rhythm that works for you."
	}

	if rate >= 0.85 && pattern != models.PatternMixed {
		return fmt.Sprintf("%s are your strongest consistency window. You're in a great rhythm.", timeLabel(pattern, true))
	}

	if rate >= 0.85 {
		return "You're crushing it — high completion with a flexible schedule."
	}

	if float64(missedDays) >= float64(daySpan)*0.5 {
		return fmt.Sprintf("You had %d inactive days. Shorter, easier challenges might help build momentum.", missedDays)
	}

	if pattern != models.PatternMixed && rate >= 0.5 {
		return fmt.Sprintf("You tend to complete challenges in the %s. Leaning into that could boost consistency.", timeLabel(pattern, false))
	}

	if rate < 0.5 {
		return "Completion was lower this cycle. We'll simplify things to help you build momentum."
	}

	return "Steady progress. Let's keep building on what's working."
}

func timeLabel(pattern models.TimePattern, capitalize bool) string {
	var label string
	switch pattern {
	case models.PatternMorning:
		label = "mornings"
	case models.PatternAfternoon:
		label = "afternoons"
	default:
		label = "evenings"
	}
	if capitalize {
		switch pattern {
		case models.PatternMorning:
			return "Mornings"
		case models.PatternAfternoon:
			return "Afternoons"
		default:
			return "Evenings"
		}
	}
	return label
}
