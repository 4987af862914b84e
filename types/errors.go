package types

import "errors"

var (
	// ErrGenerationFailed is surfaced when the generation gateway itself
	// errors unexpectedly (not the handled bad-response case, which falls
	// back silently). The mutation is aborted; the caller may retry.
	ErrGenerationFailed = errors.New("failed to generate challenges")

	// ErrGenerationBusy rejects an overlapping createPlan, regeneratePlan or
	// submitRetro while a generation call is already in flight.
	ErrGenerationBusy = errors.New("a generation operation is already in progress")

	// ErrPlanNotFound is returned by operations that must report a missing
	// plan instead of treating it as a silent no-op.
	ErrPlanNotFound = errors.New("goal plan not found")
)
