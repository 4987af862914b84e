package insight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/momentumhq/momentum/models"
)

func at(day, hour int) time.Time {
	return time.Date(2025, 3, day, hour, 0, 0, 0, time.UTC)
}

// windowPlan builds a plan whose whole challenge list is the current retro
// window. completedAt entries mark completions; a nil entry leaves the
// challenge open.
func windowPlan(createdAt time.Time, completedAt []*time.Time) *models.GoalPlan {
	p := &models.GoalPlan{CreatedAt: createdAt}
	for i, ts := range completedAt {
		c := models.MicroChallenge{Order: i, Title: "c"}
		if ts != nil {
			c.Completed = true
			c.CompletedAt = ts
		}
		p.Challenges = append(p.Challenges, c)
	}
	return p
}

func ptr(t time.Time) *time.Time { return &t }

func TestComputeWeeklyInsightFreshStart(t *testing.T) {
	p := windowPlan(at(3, 9), []*time.Time{nil, nil, nil})
	in := ComputeWeeklyInsight(p, at(10, 9))

	assert.Equal(t, 0, in.CompletedCount)
	assert.Equal(t, 3, in.TotalCount)
	assert.Equal(t, 0.0, in.CompletionRate)
	assert.Equal(t, models.PatternMixed, in.TimePattern)
	assert.Contains(t, in.BehavioralInsight, "fresh start")
}

func TestComputeWeeklyInsightMorningRhythm(t *testing.T) {
	p := windowPlan(at(3, 9), []*time.Time{
		ptr(at(3, 7)), ptr(at(4, 8)), ptr(at(5, 9)),
		ptr(at(6, 8)), ptr(at(7, 10)), ptr(at(8, 7)),
		nil,
	})
	in := ComputeWeeklyInsight(p, at(10, 9))

	assert.Equal(t, 6, in.CompletedCount)
	assert.Equal(t, 7, in.TotalCount)
	assert.InDelta(t, 6.0/7.0, in.CompletionRate, 1e-9)
	assert.Equal(t, models.PatternMorning, in.TimePattern)
	assert.Contains(t, in.BehavioralInsight, "Mornings")
}

func TestComputeWeeklyInsightMissedDays(t *testing.T) {
	// Two active days across a 7-day span: 5 missed.
	p := windowPlan(at(3, 9), []*time.Time{
		ptr(at(3, 20)), ptr(at(4, 21)), nil, nil, nil, nil,
	})
	in := ComputeWeeklyInsight(p, at(10, 9))

	assert.Equal(t, 7, in.DaySpan)
	assert.Equal(t, 5, in.MissedDays)
	assert.Contains(t, in.BehavioralInsight, "5 inactive days")
}

func TestComputeWeeklyInsightLowCompletion(t *testing.T) {
	p := windowPlan(at(9, 9), []*time.Time{
		ptr(at(9, 8)), ptr(at(9, 14)), ptr(at(10, 20)), nil, nil, nil, nil,
	})
	in := ComputeWeeklyInsight(p, at(10, 22))

	assert.Less(t, in.CompletionRate, 0.5)
	assert.Equal(t, models.PatternMixed, in.TimePattern, "three spread-out samples never dominate")
	assert.Contains(t, in.BehavioralInsight, "simplify")
}

func TestComputeWeeklyInsightWindowStartsAtLastRetro(t *testing.T) {
	p := windowPlan(at(1, 9), []*time.Time{
		ptr(at(1, 9)), ptr(at(2, 9)), ptr(at(3, 9)),
		ptr(at(8, 9)), nil,
	})
	p.CompletedAtLastRetro = 3
	p.Retros = []models.WeeklyRetro{{CreatedAt: at(7, 9)}}

	in := ComputeWeeklyInsight(p, at(10, 9))
	assert.Equal(t, 2, in.TotalCount, "only challenges after the last retro count")
	assert.Equal(t, 1, in.CompletedCount)
	assert.Equal(t, 3, in.DaySpan, "span starts at the last retro, not plan creation")
}

func TestComputeWeeklyInsightDaySpanClampsToOne(t *testing.T) {
	p := windowPlan(at(10, 8), []*time.Time{ptr(at(10, 9))})
	in := ComputeWeeklyInsight(p, at(10, 10))

	assert.Equal(t, 1, in.DaySpan)
	assert.Equal(t, 0, in.MissedDays)
}

func TestComputeWeeklyInsightSingleSampleIsMixed(t *testing.T) {
	p := windowPlan(at(9, 9), []*time.Time{ptr(at(9, 7)), nil})
	in := ComputeWeeklyInsight(p, at(10, 9))

	assert.Equal(t, models.PatternMixed, in.TimePattern, "one sample is not a pattern")
}
