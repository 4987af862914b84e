package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// RetroFeeling is the self-reported feeling a user picks when submitting a
// weekly retro. Optional: an empty value means the user declined to answer.
type RetroFeeling string

const (
	FeelingConfident   RetroFeeling = "confident"
	FeelingStuck       RetroFeeling = "stuck"
	FeelingOverwhelmed RetroFeeling = "overwhelmed"
	FeelingMotivated   RetroFeeling = "motivated"
	FeelingNeutral     RetroFeeling = "neutral"
)

// TimePattern is the dominant time-of-day bucket observed in a retro window.
type TimePattern string

const (
	PatternMorning   TimePattern = "morning"
	PatternAfternoon TimePattern = "afternoon"
	PatternEvening   TimePattern = "evening"
	PatternMixed     TimePattern = "mixed"
)

// MicroChallenge is one atomic daily task inside a goal plan.
//
// Invariant: CompletedAt is set if and only if Completed is true. There is no
// un-complete operation; once Completed flips to true it stays true.
type MicroChallenge struct {
	ID            string     `json:"id" validate:"required,uuid4"`
	Title         string     `json:"title" validate:"required"`
	Description   string     `json:"description" validate:"required"`
	Encouragement string     `json:"encouragement" validate:"required"`
	Order         int        `json:"order" validate:"min=0"`
	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

// WeeklyInsight summarizes completion behavior since the last retro.
// Derived, never persisted on its own; a snapshot is embedded in each retro.
type WeeklyInsight struct {
	CompletedCount    int         `json:"completedCount"`
	TotalCount        int         `json:"totalCount"`
	CompletionRate    float64     `json:"completionRate"`
	TimePattern       TimePattern `json:"timePattern"`
	MissedDays        int         `json:"missedDays"`
	BehavioralInsight string      `json:"behavioralInsight"`
	DaySpan           int         `json:"daySpan"`
}

// AdaptationResult is the structured directive describing how the next batch
// of challenges should change. Embedded in a retro once computed.
type AdaptationResult struct {
	Adjustments           []string    `json:"adjustments"`
	Reason                string      `json:"reason"`
	Expectation           string      `json:"expectation"`
	DifficultyDelta       int         `json:"difficultyDelta" validate:"min=-1,max=1"`
	TargetDurationMinutes int         `json:"targetDurationMinutes"`
	AddGuidance           bool        `json:"addGuidance"`
	AddStretchTask        bool        `json:"addStretchTask"`
	PreferredTimeHint     TimePattern `json:"preferredTimeHint,omitempty"`
}

// WeeklyRetro is an immutable record of one reflection event. Appended to the
// plan's retro history and never modified afterwards.
type WeeklyRetro struct {
	ID                      string           `json:"id" validate:"required,uuid4"`
	PlanID                  string           `json:"planId" validate:"required,uuid4"`
	Reflection              string           `json:"reflection" validate:"required"`
	Feeling                 RetroFeeling     `json:"feeling,omitempty" validate:"omitempty,oneof=confident stuck overwhelmed motivated neutral"`
	CompletedChallengeCount int              `json:"completedChallengeCount"`
	CreatedAt               time.Time        `json:"createdAt" validate:"required"`
	Adaptation              AdaptationResult `json:"adaptation"`
	Insight                 WeeklyInsight    `json:"insight"`
	IsManual                bool             `json:"isManual"`
}

// GoalPlan is one user-declared goal and its ordered challenge sequence.
//
// CurrentIndex points at the next not-yet-completed challenge. Everything
// before CurrentIndex is completed; CurrentIndex may equal len(Challenges)
// when the batch is exhausted and a retro is pending.
type GoalPlan struct {
	ID                   string           `json:"id" validate:"required,uuid4"`
	Goal                 string           `json:"goal" validate:"required"`
	Description          string           `json:"description,omitempty"`
	FocusAreas           []string         `json:"focusAreas"`
	Challenges           []MicroChallenge `json:"challenges" validate:"dive"`
	CurrentIndex         int              `json:"currentIndex" validate:"min=0"`
	CreatedAt            time.Time        `json:"createdAt" validate:"required"`
	UpdatedAt            time.Time        `json:"updatedAt" validate:"required"`
	IsActive             bool             `json:"isActive"`
	Retros               []WeeklyRetro    `json:"retros"`
	CompletedAtLastRetro int              `json:"completedAtLastRetro" validate:"min=0"`
	GoalCompletedAt      *time.Time       `json:"goalCompletedAt,omitempty"`
}

// CompletedCount returns how many challenges in the plan are completed.
func (p *GoalPlan) CompletedCount() int {
	n := 0
	for _, c := range p.Challenges {
		if c.Completed {
			n++
		}
	}
	return n
}

// IsTerminal reports whether the goal has been marked achieved. Terminal
// plans keep their history readable but present no further challenges.
func (p *GoalPlan) IsTerminal() bool {
	return p.GoalCompletedAt != nil
}

// LastRetroAt returns the timestamp of the most recent retro, or the plan's
// creation time when no retro has happened yet.
func (p *GoalPlan) LastRetroAt() time.Time {
	if len(p.Retros) > 0 {
		return p.Retros[len(p.Retros)-1].CreatedAt
	}
	return p.CreatedAt
}

// PlanList is the persisted collection shape: the full set of goal plans
// owned by one user, serialized as a single JSON document.
type PlanList struct {
	Plans      []GoalPlan `json:"plans" validate:"dive"`
	TotalCount int        `json:"totalCount"`
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		validate = validator.New()
	}
	err := validate.Struct(s)
	if err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
	}
	return nil
}
