package store

import "github.com/momentumhq/momentum/models"

// PlanStore is the durable storage boundary for the goal-plan collection.
//
// The contract is deliberately coarse: the engine holds the authoritative
// in-memory collection and mirrors it write-through, so storage only needs
// get-all, set-all (atomic overwrite) and clear.
type PlanStore interface {
	// Initialize configures the store. The config map expects a "dataFile"
	// key pointing at the plans file.
	Initialize(config map[string]string) error

	// LoadPlans reads the full plan collection. A missing file yields an
	// empty collection, not an error.
	LoadPlans() ([]models.GoalPlan, error)

	// SavePlans atomically overwrites the full plan collection. A crash
	// mid-write must leave the previous successful write intact.
	SavePlans(plans []models.GoalPlan) error

	// Clear removes all persisted plans (sign-out).
	Clear() error

	// Close releases any resources held by the store, such as file locks.
	Close() error
}
