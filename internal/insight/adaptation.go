package insight

import (
	"fmt"
	"math"
	"strings"

	"github.com/momentumhq/momentum/models"
)

// Default targets unless a rule overrides them.
const (
	defaultDurationMinutes     = 10
	overwhelmedDurationMinutes = 5
)

// ComputeAdaptation maps the self-reported feeling and the weekly insight to
// a structured adaptation directive. Total and pure: identical inputs always
// produce identical output, so the retro UI can preview the result before
// the user confirms.
//
// Rule precedence: the feeling rule fires first, then completion-rate
// overrides apply on top (never fighting the overwhelmed rule), then the
// high-performer override for retros submitted without a feeling, then the
// time hint, then the neutral default.
func ComputeAdaptation(feeling models.RetroFeeling, in models.WeeklyInsight) models.AdaptationResult {
	rate := in.CompletionRate
	ratePct := int(math.Round(rate * 100))

	var adjustments []string
	difficultyDelta := 0
	targetDuration := defaultDurationMinutes
	addGuidance := false
	addStretchTask := false
	reason := ""
	expectation := ""
	var preferredTimeHint models.TimePattern

	if in.TimePattern != models.PatternMixed {
		preferredTimeHint = in.TimePattern
	}

	switch feeling {
	case models.FeelingOverwhelmed:
		difficultyDelta = -1
		targetDuration = overwhelmedDurationMinutes
		adjustments = append(adjustments, "Reducing challenge difficulty", "Shortening to ~5 minute tasks")
		reason = fmt.Sprintf("You're feeling overwhelmed with a %d%% completion rate.", ratePct)
		expectation = "Expect lighter, quicker challenges next week to ease the pressure."
	case models.FeelingStuck:
		addGuidance = true
		adjustments = append(adjustments, "Adding step-by-step guidance to challenges")
		if rate < 0.5 {
			difficultyDelta = -1
			adjustments = append(adjustments, "Lowering difficulty")
		}
		reason = "You're feeling stuck, so we're adding more guidance."
		expectation = "Next challenges will include clearer steps and tips to get unstuck."
	case models.FeelingConfident:
		difficultyDelta = 1
		adjustments = append(adjustments, "Increasing challenge intensity")
		if rate > 0.85 {
			addStretchTask = true
			adjustments = append(adjustments, "Adding a bonus stretch task")
		}
		reason = "You're feeling confident and performing well."
		expectation = "Expect more ambitious challenges to keep you growing."
	case models.FeelingMotivated:
		if rate > 0.85 {
			difficultyDelta = 1
			addStretchTask = true
			adjustments = append(adjustments, "Stepping up the challenge", "Adding a stretch task")
			expectation = "We're raising the bar to match your momentum."
		} else {
			expectation = "Keeping the current pace with your strong motivation."
		}
		reason = "You're motivated — let's channel that energy."
	}

	// Completion-rate override, applied on top of the feeling rules but
	// never against the overwhelmed rule.
	if rate < 0.5 && feeling != models.FeelingOverwhelmed {
		if difficultyDelta >= 0 {
			difficultyDelta = -1
		}
		hasDifficultyAdjustment := false
		for _, a := range adjustments {
			if strings.Contains(strings.ToLower(a), "difficulty") {
				hasDifficultyAdjustment = true
				break
			}
		}
		if !hasDifficultyAdjustment {
			adjustments = append(adjustments, "Simplifying challenges due to low completion")
		}
		if reason == "" {
			reason = fmt.Sprintf("Completion rate was %d%%, so we're simplifying.", ratePct)
		}
		if expectation == "" {
			expectation = "Expect easier, more approachable challenges."
		}
	}

	// High performers who skipped the feeling question still get pushed.
	if rate > 0.85 && feeling == "" {
		difficultyDelta = 1
		addStretchTask = true
		adjustments = append(adjustments, "Adding stretch tasks for high performers")
		reason = fmt.Sprintf("%d%% completion — you're ready for more.", ratePct)
		expectation = "We're adding a stretch challenge to push your growth."
	}

	if len(adjustments) == 0 {
		adjustments = append(adjustments, "Maintaining current difficulty")
		reason = "Your pace looks balanced."
		expectation = "Challenges will stay at a similar level next week."
	}

	return models.AdaptationResult{
		Adjustments:           adjustments,
		Reason:                reason,
		Expectation:           expectation,
		DifficultyDelta:       difficultyDelta,
		TargetDurationMinutes: targetDuration,
		AddGuidance:           addGuidance,
		AddStretchTask:        addStretchTask,
		PreferredTimeHint:     preferredTimeHint,
	}
}
