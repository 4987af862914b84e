package plan

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentumhq/momentum/internal/clock"
	"github.com/momentumhq/momentum/internal/generate"
	"github.com/momentumhq/momentum/models"
	"github.com/momentumhq/momentum/types"
)

type memStore struct {
	plans   []models.GoalPlan
	saveErr error
	saves   int
}

func (m *memStore) Initialize(map[string]string) error { return nil }
func (m *memStore) LoadPlans() ([]models.GoalPlan, error) {
	return append([]models.GoalPlan(nil), m.plans...), nil
}
func (m *memStore) SavePlans(plans []models.GoalPlan) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.plans = append([]models.GoalPlan(nil), plans...)
	return nil
}
func (m *memStore) Clear() error { m.plans = nil; return nil }
func (m *memStore) Close() error { return nil }

type stubGenerator struct {
	err        error
	regenCalls int
	lastRC     generate.RetroContext
}

func stubChallenges(prefix string, count int) []models.MicroChallenge {
	out := make([]models.MicroChallenge, count)
	for i := range out {
		out[i] = models.MicroChallenge{
			ID:            fmt.Sprintf("%s-%d", prefix, i),
			Title:         fmt.Sprintf("%s title %d", prefix, i),
			Description:   "do the thing",
			Encouragement: "you got this",
			Order:         i,
		}
	}
	return out
}

func (g *stubGenerator) Generate(_ context.Context, _ string, _ []string, count int) ([]models.MicroChallenge, error) {
	if g.err != nil {
		return nil, g.err
	}
	return stubChallenges("gen", count), nil
}

func (g *stubGenerator) RegenerateWithContext(_ context.Context, _ string, _ []string, rc generate.RetroContext, count int) ([]models.MicroChallenge, error) {
	g.regenCalls++
	g.lastRC = rc
	if g.err != nil {
		return nil, g.err
	}
	return stubChallenges("regen", count), nil
}

func newTestService(t *testing.T) (*Service, *memStore, *stubGenerator, *clock.Fixed) {
	t.Helper()
	st := &memStore{}
	gen := &stubGenerator{}
	clk := &clock.Fixed{T: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	svc := NewService(st, gen, clk)
	require.NoError(t, svc.Hydrate())
	return svc, st, gen, clk
}

func TestCreatePlanActivatesAndDeactivatesOthers(t *testing.T) {
	svc, st, _, _ := newTestService(t)

	first, err := svc.CreatePlan(context.Background(), "learn guitar", []string{"practice"})
	require.NoError(t, err)
	assert.True(t, first.IsActive)
	assert.Len(t, first.Challenges, generate.DefaultChallengeCount)
	assert.Equal(t, first.ID, svc.ActivePlanID())

	second, err := svc.CreatePlan(context.Background(), "run a 5k", nil)
	require.NoError(t, err)
	assert.Equal(t, second.ID, svc.ActivePlanID())

	plans := svc.Plans()
	require.Len(t, plans, 2)
	for _, p := range plans {
		assert.Equal(t, p.ID == second.ID, p.IsActive)
	}
	assert.NotNil(t, second.FocusAreas, "focus areas default to empty, not nil")
	assert.Greater(t, st.saves, 0)
}

func TestCreatePlanGeneratorFaultLeavesStateUntouched(t *testing.T) {
	svc, _, gen, _ := newTestService(t)
	gen.err = errors.New("boom")

	_, err := svc.CreatePlan(context.Background(), "goal", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrGenerationFailed))
	assert.Empty(t, svc.Plans())
	assert.False(t, svc.IsGenerating())
}

func TestGenerationBusyGuard(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	require.NoError(t, svc.beginGeneration())

	_, err := svc.CreatePlan(context.Background(), "goal", nil)
	assert.ErrorIs(t, err, types.ErrGenerationBusy)
	assert.ErrorIs(t, svc.RegeneratePlan(context.Background(), "missing"), types.ErrGenerationBusy)

	svc.endGeneration()
	_, err = svc.CreatePlan(context.Background(), "goal", nil)
	assert.NoError(t, err)
}

// Covers the daily loop: complete today, be blocked until the next day,
// advance the clock, and the next challenge opens up.
func TestDailyCompletionLoop(t *testing.T) {
	svc, _, _, clk := newTestService(t)
	p, err := svc.CreatePlan(context.Background(), "write daily", nil)
	require.NoError(t, err)

	assert.True(t, svc.HasNewChallenge(p.ID))
	assert.False(t, svc.CompletedToday(p.ID))

	svc.CompleteCurrentChallenge(p.ID, "  felt great  ")
	got := svc.Plans()[0]
	assert.Equal(t, 1, got.CurrentIndex)
	require.True(t, got.Challenges[0].Completed)
	require.NotNil(t, got.Challenges[0].CompletedAt)
	assert.Equal(t, "felt great", got.Challenges[0].Notes)

	assert.True(t, svc.CompletedToday(p.ID))
	assert.False(t, svc.HasNewChallenge(p.ID), "one challenge per day")

	// The store itself does not enforce the day gate; callers consult
	// HasNewChallenge first. An explicit second complete advances again.
	before := svc.Plans()[0]
	svc.CompleteCurrentChallenge(p.ID, "again")
	after := svc.Plans()[0]
	assert.Equal(t, before.CurrentIndex+1, after.CurrentIndex)

	clk.AdvanceDays(1)
	assert.False(t, svc.CompletedToday(p.ID))
	assert.True(t, svc.HasNewChallenge(p.ID))
}

func TestCompleteIsIdempotentWhenCurrentAlreadyCompleted(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	p, err := svc.CreatePlan(context.Background(), "goal", nil)
	require.NoError(t, err)

	svc.CompleteCurrentChallenge(p.ID, "")
	got := svc.Plans()[0]
	require.Equal(t, 1, got.CurrentIndex)

	// Force the plan into the "current already completed" shape.
	svc.mu.Lock()
	svc.plans[0].CurrentIndex = 0
	svc.mu.Unlock()

	svc.CompleteCurrentChallenge(p.ID, "")
	assert.Equal(t, 0, svc.Plans()[0].CurrentIndex, "no-op on completed current")
	assert.Equal(t, 1, svc.Plans()[0].CompletedCount())
}

func TestSkipRemovesChallengeKeepingIndex(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	p, err := svc.CreatePlan(context.Background(), "goal", nil)
	require.NoError(t, err)

	skipped := svc.Plans()[0].Challenges[0].ID
	svc.SkipCurrentChallenge(p.ID)

	got := svc.Plans()[0]
	assert.Len(t, got.Challenges, generate.DefaultChallengeCount-1)
	assert.Equal(t, 0, got.CurrentIndex)
	for _, c := range got.Challenges {
		assert.NotEqual(t, skipped, c.ID)
	}
}

func TestDeletePlanReassignsActive(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	a, err := svc.CreatePlan(context.Background(), "a", nil)
	require.NoError(t, err)
	b, err := svc.CreatePlan(context.Background(), "b", nil)
	require.NoError(t, err)

	svc.DeletePlan(b.ID)
	assert.Equal(t, a.ID, svc.ActivePlanID())
	require.Len(t, svc.Plans(), 1)
	assert.True(t, svc.Plans()[0].IsActive)

	svc.DeletePlan(a.ID)
	assert.Equal(t, "", svc.ActivePlanID())
	assert.Empty(t, svc.Plans())
}

func TestRegeneratePlanResetsProgress(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	p, err := svc.CreatePlan(context.Background(), "goal", nil)
	require.NoError(t, err)
	svc.CompleteCurrentChallenge(p.ID, "")

	require.NoError(t, svc.RegeneratePlan(context.Background(), p.ID))
	got := svc.Plans()[0]
	assert.Equal(t, 0, got.CurrentIndex)
	assert.Equal(t, 0, got.CompletedCount())
	assert.Len(t, got.Challenges, generate.DefaultChallengeCount)
}

// Early retro: completed challenges survive, the incomplete tail is
// replaced, and the index lands on the first fresh challenge.
func TestSubmitRetroEarlyReplacesIncompleteTail(t *testing.T) {
	svc, _, gen, clk := newTestService(t)
	p, err := svc.CreatePlan(context.Background(), "goal", nil)
	require.NoError(t, err)

	for i := 0; i < RetroChallengeThreshold; i++ {
		svc.CompleteCurrentChallenge(p.ID, "")
		clk.AdvanceDays(1)
	}
	got := svc.Plans()[0]
	require.True(t, RetroEligible(&got))
	require.False(t, RetroRequired(&got))

	require.NoError(t, svc.SubmitRetro(context.Background(), p.ID, "solid week", models.FeelingNeutral, false))

	got = svc.Plans()[0]
	assert.Len(t, got.Challenges, RetroChallengeThreshold*2)
	assert.Equal(t, RetroChallengeThreshold, got.CurrentIndex)
	assert.Equal(t, RetroChallengeThreshold, got.CompletedAtLastRetro)
	for i, c := range got.Challenges {
		assert.Equal(t, i < RetroChallengeThreshold, c.Completed)
		assert.Equal(t, i, c.Order, "orders renumbered contiguously")
	}

	require.Len(t, got.Retros, 1)
	retro := got.Retros[0]
	assert.Equal(t, RetroChallengeThreshold, retro.CompletedChallengeCount)
	assert.Equal(t, "solid week", retro.Reflection)
	assert.False(t, retro.IsManual)
	assert.NotEmpty(t, retro.Insight.BehavioralInsight)
	assert.Equal(t, 1, gen.regenCalls)
	assert.Len(t, gen.lastRC.CompletedChallengeTitles, RetroChallengeThreshold)

	fresh := got
	assert.True(t, svc.HasNewChallenge(p.ID))
	assert.Equal(t, RetroChallengeThreshold, ChallengesUntilRetro(&fresh), "eligibility counter resets")
}

// Forced retro: the batch is exhausted, new challenges are appended and the
// untouched index already points at the first of them.
func TestSubmitRetroForcedAppendsBatch(t *testing.T) {
	svc, _, _, clk := newTestService(t)
	p, err := svc.CreatePlan(context.Background(), "goal", nil)
	require.NoError(t, err)

	total := generate.DefaultChallengeCount
	for i := 0; i < total; i++ {
		svc.CompleteCurrentChallenge(p.ID, "")
		clk.AdvanceDays(1)
	}
	got := svc.Plans()[0]
	require.Equal(t, total, got.CurrentIndex)
	require.True(t, RetroRequired(&got))
	assert.Nil(t, svc.CurrentChallenge(p.ID))
	assert.False(t, svc.HasNewChallenge(p.ID))

	require.NoError(t, svc.SubmitRetro(context.Background(), p.ID, "made it through", models.FeelingNeutral, false))

	got = svc.Plans()[0]
	assert.Len(t, got.Challenges, total+RetroChallengeThreshold)
	assert.Equal(t, total, got.CurrentIndex)
	assert.Equal(t, total, got.CompletedAtLastRetro)
	assert.Equal(t, total, got.Challenges[total].Order)
	require.NotNil(t, svc.CurrentChallenge(p.ID))
	assert.False(t, got.Challenges[total].Completed)
}

func TestSubmitRetroStretchTaskGrowsBatch(t *testing.T) {
	svc, _, _, clk := newTestService(t)
	p, err := svc.CreatePlan(context.Background(), "goal", nil)
	require.NoError(t, err)

	// Complete the whole batch at a high rate and report confident: the
	// adaptation asks for a stretch task, so the retro generates one extra.
	for i := 0; i < generate.DefaultChallengeCount; i++ {
		svc.CompleteCurrentChallenge(p.ID, "")
		clk.AdvanceDays(1)
	}
	require.NoError(t, svc.SubmitRetro(context.Background(), p.ID, "easy", models.FeelingConfident, false))

	got := svc.Plans()[0]
	assert.Len(t, got.Challenges, generate.DefaultChallengeCount+RetroChallengeThreshold+1)
	assert.True(t, got.Retros[0].Adaptation.AddStretchTask)
}

func TestSubmitRetroGeneratorFaultMutatesNothing(t *testing.T) {
	svc, _, gen, clk := newTestService(t)
	p, err := svc.CreatePlan(context.Background(), "goal", nil)
	require.NoError(t, err)
	svc.CompleteCurrentChallenge(p.ID, "")
	clk.AdvanceDays(1)

	before := svc.Plans()[0]
	gen.err = errors.New("provider down")
	err = svc.SubmitRetro(context.Background(), p.ID, "r", models.FeelingStuck, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrGenerationFailed)

	after := svc.Plans()[0]
	assert.Equal(t, len(before.Challenges), len(after.Challenges))
	assert.Empty(t, after.Retros)
	assert.False(t, svc.IsGenerating())
}

func TestCompleteGoalHandsActiveSlotToRemainingPlan(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	a, err := svc.CreatePlan(context.Background(), "a", nil)
	require.NoError(t, err)
	b, err := svc.CreatePlan(context.Background(), "b", nil)
	require.NoError(t, err)

	svc.CompleteGoal(b.ID)
	assert.Equal(t, a.ID, svc.ActivePlanID())

	plans := svc.Plans()
	for _, p := range plans {
		if p.ID == b.ID {
			assert.True(t, p.IsTerminal())
			assert.False(t, p.IsActive)
			assert.False(t, svc.HasNewChallenge(p.ID))
		}
	}

	svc.CompleteGoal(a.ID)
	assert.Equal(t, "", svc.ActivePlanID(), "no non-completed plan left")
}

func TestPersistenceFailureDoesNotRollBack(t *testing.T) {
	svc, st, _, _ := newTestService(t)
	p, err := svc.CreatePlan(context.Background(), "goal", nil)
	require.NoError(t, err)

	st.saveErr = errors.New("disk full")
	svc.CompleteCurrentChallenge(p.ID, "")
	assert.Equal(t, 1, svc.Plans()[0].CurrentIndex, "memory is source of truth")
}

func TestHydratePrefersFlaggedActive(t *testing.T) {
	clk := &clock.Fixed{T: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	now := clk.Now()
	st := &memStore{plans: []models.GoalPlan{
		{ID: "p1", Goal: "one", CreatedAt: now, UpdatedAt: now},
		{ID: "p2", Goal: "two", CreatedAt: now, UpdatedAt: now, IsActive: true},
	}}
	svc := NewService(st, &stubGenerator{}, clk)
	require.NoError(t, svc.Hydrate())
	assert.Equal(t, "p2", svc.ActivePlanID())

	st.plans[1].IsActive = false
	require.NoError(t, svc.Hydrate())
	assert.Equal(t, "p1", svc.ActivePlanID(), "falls back to first plan")
}

func TestResetClearsEverything(t *testing.T) {
	svc, st, _, _ := newTestService(t)
	_, err := svc.CreatePlan(context.Background(), "goal", nil)
	require.NoError(t, err)

	require.NoError(t, svc.Reset())
	assert.Empty(t, svc.Plans())
	assert.Equal(t, "", svc.ActivePlanID())
	assert.Empty(t, st.plans)
}
