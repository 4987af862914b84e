// Package plan owns the authoritative goal-plan collection and its state
// machine: creation, one-per-day challenge completion, skipping, weekly
// retros with adaptive regeneration, and write-through persistence.
package plan

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/momentumhq/momentum/internal/character"
	"github.com/momentumhq/momentum/internal/clock"
	"github.com/momentumhq/momentum/internal/generate"
	"github.com/momentumhq/momentum/internal/insight"
	"github.com/momentumhq/momentum/models"
	"github.com/momentumhq/momentum/store"
	"github.com/momentumhq/momentum/types"
)

// RetroChallengeThreshold is the number of completed challenges (since the
// last retro) that unlocks a voluntary retro, and the batch size generated
// by a retro.
const RetroChallengeThreshold = 7

// Generator is the slice of the generation gateway the service depends on.
type Generator interface {
	Generate(ctx context.Context, goal string, focusAreas []string, count int) ([]models.MicroChallenge, error)
	RegenerateWithContext(ctx context.Context, goal string, focusAreas []string, rc generate.RetroContext, count int) ([]models.MicroChallenge, error)
}

// Service is the single writer over the plan collection. Mutating operations
// are serialized with a mutex; several of them read-then-write whole plan
// objects and are not safe under interleaving. In-memory state is the source
// of truth for the session: it is updated first and then mirrored to durable
// storage, and a persistence failure is logged but never rolls the mutation
// back.
type Service struct {
	mu           sync.Mutex
	plans        []models.GoalPlan
	activePlanID string
	generating   bool

	store   store.PlanStore
	gateway Generator
	clock   clock.Clock
}

// EditGoalUpdates carries the optional text-field changes for EditGoal.
// Nil fields are left untouched.
type EditGoalUpdates struct {
	Goal        *string
	Description *string
}

// NewService wires the state machine to its collaborators. Call Hydrate
// before first use.
func NewService(st store.PlanStore, gateway Generator, clk clock.Clock) *Service {
	return &Service{store: st, gateway: gateway, clock: clk}
}

// Hydrate loads the collection from durable storage and selects the active
// plan: the one flagged active, else the first, else none. Idempotent.
func (s *Service) Hydrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	plans, err := s.store.LoadPlans()
	if err != nil {
		return fmt.Errorf("failed to hydrate goal plans: %w", err)
	}
	s.plans = plans
	s.activePlanID = ""
	for i := range plans {
		if plans[i].IsActive {
			s.activePlanID = plans[i].ID
			break
		}
	}
	if s.activePlanID == "" && len(plans) > 0 {
		s.activePlanID = plans[0].ID
	}
	return nil
}

// Plans returns a snapshot copy of the collection.
func (s *Service) Plans() []models.GoalPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.GoalPlan, len(s.plans))
	copy(out, s.plans)
	return out
}

// ActivePlanID returns the id of the selected plan, or "" if none.
func (s *Service) ActivePlanID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activePlanID
}

// IsGenerating reports whether a generation-backed operation is in flight.
func (s *Service) IsGenerating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generating
}

// beginGeneration marks the store busy, rejecting overlap.
func (s *Service) beginGeneration() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generating {
		return types.ErrGenerationBusy
	}
	s.generating = true
	return nil
}

func (s *Service) endGeneration() {
	s.mu.Lock()
	s.generating = false
	s.mu.Unlock()
}

// persistLocked mirrors the in-memory collection to durable storage. Caller
// holds the mutex. Failures are logged, not propagated: the next successful
// write reconciles storage.
func (s *Service) persistLocked() {
	if err := s.store.SavePlans(s.plans); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to persist goal plans: %v\n", err)
	}
}

// findLocked returns the index of the plan with the given id, or -1.
func (s *Service) findLocked(planID string) int {
	for i := range s.plans {
		if s.plans[i].ID == planID {
			return i
		}
	}
	return -1
}

// CreatePlan generates an initial challenge batch and installs a new plan as
// the single active one. The gateway guarantees fallback content, so the
// only failure mode is an unexpected gateway fault, which aborts without
// mutating state.
func (s *Service) CreatePlan(ctx context.Context, goal string, focusAreas []string) (*models.GoalPlan, error) {
	if err := s.beginGeneration(); err != nil {
		return nil, err
	}
	defer s.endGeneration()

	challenges, err := s.gateway.Generate(ctx, goal, focusAreas, generate.DefaultChallengeCount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrGenerationFailed, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if focusAreas == nil {
		focusAreas = []string{}
	}
	newPlan := models.GoalPlan{
		ID:                   uuid.NewString(),
		Goal:                 goal,
		FocusAreas:           focusAreas,
		Challenges:           challenges,
		CurrentIndex:         0,
		CreatedAt:            now,
		UpdatedAt:            now,
		IsActive:             true,
		Retros:               []models.WeeklyRetro{},
		CompletedAtLastRetro: 0,
	}

	// Exactly one active plan at a time.
	for i := range s.plans {
		s.plans[i].IsActive = false
	}
	s.plans = append(s.plans, newPlan)
	s.activePlanID = newPlan.ID
	s.persistLocked()

	created := newPlan
	return &created, nil
}

// SetActivePlan reassigns the active flag to exactly the named plan. If the
// plan does not exist, no plan ends up active.
func (s *Service) SetActivePlan(planID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activePlanID = ""
	for i := range s.plans {
		s.plans[i].IsActive = s.plans[i].ID == planID
		if s.plans[i].IsActive {
			s.activePlanID = planID
		}
	}
	s.persistLocked()
}

// CompleteCurrentChallenge marks the challenge at CurrentIndex completed
// with the clock's current timestamp, then advances the index past any
// already-completed entries. A missing plan, exhausted batch or
// already-completed current challenge is a silent no-op, which makes
// double-submission idempotent.
func (s *Service) CompleteCurrentChallenge(planID, notes string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findLocked(planID)
	if idx < 0 {
		return
	}
	p := &s.plans[idx]
	if p.CurrentIndex >= len(p.Challenges) || p.Challenges[p.CurrentIndex].Completed {
		return
	}

	now := s.clock.Now()
	c := &p.Challenges[p.CurrentIndex]
	c.Completed = true
	c.CompletedAt = &now
	c.Notes = strings.TrimSpace(notes)

	next := p.CurrentIndex + 1
	for next < len(p.Challenges) && p.Challenges[next].Completed {
		next++
	}
	p.CurrentIndex = next
	p.UpdatedAt = now
	s.persistLocked()
}

// SkipCurrentChallenge permanently removes the challenge at CurrentIndex.
// Skip is not complete: the challenge is discarded with no history, and the
// index keeps its numeric value, now referring to the following challenge.
func (s *Service) SkipCurrentChallenge(planID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findLocked(planID)
	if idx < 0 {
		return
	}
	p := &s.plans[idx]
	if p.CurrentIndex >= len(p.Challenges) || p.Challenges[p.CurrentIndex].Completed {
		return
	}

	p.Challenges = append(p.Challenges[:p.CurrentIndex], p.Challenges[p.CurrentIndex+1:]...)
	if p.CurrentIndex > len(p.Challenges) {
		p.CurrentIndex = len(p.Challenges)
	}
	p.UpdatedAt = s.clock.Now()
	s.persistLocked()
}

// DeletePlan removes the plan. If it was active, the first remaining plan
// becomes active.
func (s *Service) DeletePlan(planID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findLocked(planID)
	if idx < 0 {
		return
	}
	wasActive := planID == s.activePlanID
	s.plans = append(s.plans[:idx], s.plans[idx+1:]...)

	if wasActive {
		s.activePlanID = ""
		if len(s.plans) > 0 {
			s.plans[0].IsActive = true
			s.activePlanID = s.plans[0].ID
		}
	}
	s.persistLocked()
}

// RegeneratePlan replaces the whole challenge sequence with a fresh batch
// and resets progress. Entitlement gating is the caller's job; the store is
// policy-agnostic.
func (s *Service) RegeneratePlan(ctx context.Context, planID string) error {
	s.mu.Lock()
	idx := s.findLocked(planID)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	goal := s.plans[idx].Goal
	focusAreas := append([]string(nil), s.plans[idx].FocusAreas...)
	s.mu.Unlock()

	if err := s.beginGeneration(); err != nil {
		return err
	}
	defer s.endGeneration()

	challenges, err := s.gateway.Generate(ctx, goal, focusAreas, generate.DefaultChallengeCount)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrGenerationFailed, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx = s.findLocked(planID)
	if idx < 0 {
		return nil
	}
	p := &s.plans[idx]
	p.Challenges = challenges
	p.CurrentIndex = 0
	p.UpdatedAt = s.clock.Now()
	s.persistLocked()
	return nil
}

// EditGoal updates the goal and/or description text. Challenges and index
// are untouched.
func (s *Service) EditGoal(planID string, updates EditGoalUpdates) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findLocked(planID)
	if idx < 0 {
		return
	}
	p := &s.plans[idx]
	if updates.Goal != nil {
		p.Goal = *updates.Goal
	}
	if updates.Description != nil {
		p.Description = *updates.Description
	}
	p.UpdatedAt = s.clock.Now()
	s.persistLocked()
}

// SubmitRetro runs the weekly reflection: compute insight and adaptation
// from the current state, regenerate a batch with that context, then either
// replace the remaining incomplete challenges (early retro) or append after
// the exhausted batch (forced retro). The retro record is immutable and
// appended to the plan's history. On a gateway fault nothing is mutated and
// the caller may retry.
func (s *Service) SubmitRetro(ctx context.Context, planID, reflection string, feeling models.RetroFeeling, isManual bool) error {
	s.mu.Lock()
	idx := s.findLocked(planID)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	snapshot := s.plans[idx]
	totalCompleted := 0
	for i := range s.plans {
		totalCompleted += s.plans[i].CompletedCount()
	}
	s.mu.Unlock()

	weekly := insight.ComputeWeeklyInsight(&snapshot, s.clock.Now())
	adaptation := insight.ComputeAdaptation(feeling, weekly)

	var completedTitles []string
	for _, c := range snapshot.Challenges {
		if c.Completed {
			completedTitles = append(completedTitles, c.Title)
		}
	}
	rc := generate.RetroContext{
		CompletedChallengeTitles: completedTitles,
		Reflection:               reflection,
		Feeling:                  feeling,
		ProgressStage:            character.ComputeState(totalCompleted).Stage.Name,
		Adaptation:               adaptation,
	}

	generateCount := RetroChallengeThreshold
	if adaptation.AddStretchTask {
		generateCount++
	}

	if err := s.beginGeneration(); err != nil {
		return err
	}
	defer s.endGeneration()

	newChallenges, err := s.gateway.RegenerateWithContext(ctx, snapshot.Goal, snapshot.FocusAreas, rc, generateCount)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrGenerationFailed, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx = s.findLocked(planID)
	if idx < 0 {
		return nil
	}
	p := &s.plans[idx]
	now := s.clock.Now()
	completedCount := p.CompletedCount()

	retro := models.WeeklyRetro{
		ID:                      uuid.NewString(),
		PlanID:                  planID,
		Reflection:              reflection,
		Feeling:                 feeling,
		CompletedChallengeCount: completedCount,
		CreatedAt:               now,
		Adaptation:              adaptation,
		Insight:                 weekly,
		IsManual:                isManual,
	}

	if p.CurrentIndex < len(p.Challenges) {
		// Early retro: keep completed challenges, discard the remaining
		// incomplete ones, point the index at the first new challenge.
		kept := make([]models.MicroChallenge, 0, completedCount)
		for _, c := range p.Challenges {
			if c.Completed {
				kept = append(kept, c)
			}
		}
		for i := range newChallenges {
			newChallenges[i].Order = len(kept) + i
		}
		p.Challenges = append(kept, newChallenges...)
		p.CurrentIndex = len(kept)
		p.CompletedAtLastRetro = len(kept)
	} else {
		// Forced retro: the batch is exhausted, append after it. The index
		// already equals the pre-append length and lands on the new batch.
		for i := range newChallenges {
			newChallenges[i].Order = len(p.Challenges) + i
		}
		p.Challenges = append(p.Challenges, newChallenges...)
		p.CompletedAtLastRetro = completedCount
	}

	p.Retros = append(p.Retros, retro)
	p.UpdatedAt = now
	s.persistLocked()
	return nil
}

// CompleteGoal marks the goal achieved and deactivates the plan, handing the
// active slot to another non-completed plan when one exists.
func (s *Service) CompleteGoal(planID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findLocked(planID)
	if idx < 0 {
		return
	}
	now := s.clock.Now()
	p := &s.plans[idx]
	p.GoalCompletedAt = &now
	p.IsActive = false
	p.UpdatedAt = now

	if planID == s.activePlanID {
		s.activePlanID = ""
		for i := range s.plans {
			if s.plans[i].ID != planID && !s.plans[i].IsTerminal() {
				s.plans[i].IsActive = true
				s.activePlanID = s.plans[i].ID
				break
			}
		}
	}
	s.persistLocked()
}

// Reset clears all plans and durable storage (sign-out).
func (s *Service) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear plan storage: %w", err)
	}
	s.plans = nil
	s.activePlanID = ""
	s.generating = false
	return nil
}
