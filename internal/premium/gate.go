// Package premium centralizes entitlement checks. The plan store stays
// policy-agnostic; the command layer consults this gate before invoking
// gated operations.
package premium

import "math"

// FreePlanLimit is how many concurrent goal plans the free tier allows.
const FreePlanLimit = 1

// Limits is the feature table for one entitlement level.
type Limits struct {
	MaxGoalPlans   int
	CanRegenerate  bool
	CanEditGoal    bool
	CanDeleteGoal  bool
	CanSubmitRetro bool
}

// LimitsFor returns the feature table. Editing, deleting and retros are
// available to everyone; plan count and regeneration are the paid levers.
func LimitsFor(entitled bool) Limits {
	maxPlans := FreePlanLimit
	if entitled {
		maxPlans = math.MaxInt
	}
	return Limits{
		MaxGoalPlans:   maxPlans,
		CanRegenerate:  entitled,
		CanEditGoal:    true,
		CanDeleteGoal:  true,
		CanSubmitRetro: true,
	}
}

// CanCreateGoalPlan reports whether another plan fits under the tier limit.
func CanCreateGoalPlan(entitled bool, currentPlanCount int) bool {
	return currentPlanCount < LimitsFor(entitled).MaxGoalPlans
}

// CanRegeneratePlan reports whether full-batch regeneration is available.
func CanRegeneratePlan(entitled bool) bool {
	return entitled
}

// CanDeleteGoalPlan reports whether deletion is allowed. Deleting the last
// remaining plan is always allowed.
func CanDeleteGoalPlan(entitled bool, currentPlanCount int) bool {
	if currentPlanCount <= 1 {
		return true
	}
	return entitled || currentPlanCount > 1
}
