package program

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentumhq/momentum/internal/clock"
)

func newTestService(t *testing.T) (*Service, afero.Fs, *clock.Fixed) {
	t.Helper()
	fs := afero.NewMemMapFs()
	clk := &clock.Fixed{T: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	svc := NewService(fs, "/data/active_program.json", clk)
	require.NoError(t, svc.Hydrate())
	return svc, fs, clk
}

func TestCatalogIsWellFormed(t *testing.T) {
	programs := Catalog()
	require.Len(t, programs, 3)
	for _, p := range programs {
		assert.Len(t, p.Days, p.DurationDays, p.ID)
		for i, d := range p.Days {
			assert.Equal(t, i+1, d.Day, "%s days are 1-indexed and ordered", p.ID)
			assert.NotEmpty(t, d.Title)
			assert.NotEmpty(t, d.Encouragement)
		}
		assert.NotNil(t, Lookup(p.ID))
	}
	assert.Nil(t, Lookup("prog_unknown"))
}

func TestEnrollStartsAtDayOne(t *testing.T) {
	svc, _, _ := newTestService(t)

	svc.Enroll("prog_unknown")
	assert.Nil(t, svc.Active(), "unknown program id is a no-op")

	svc.Enroll("prog_confidence_7d")
	e := svc.Active()
	require.NotNil(t, e)
	assert.Equal(t, 1, e.CurrentDay)
	assert.Empty(t, e.CompletedDays)

	day := svc.TodayDay()
	require.NotNil(t, day)
	assert.Equal(t, "Speak up once today", day.Title)
}

func TestEnrollReplacesCurrentEnrollment(t *testing.T) {
	svc, _, clk := newTestService(t)
	svc.Enroll("prog_confidence_7d")
	svc.CompleteDay()
	clk.AdvanceDays(1)

	svc.Enroll("prog_focus_10d")
	e := svc.Active()
	require.NotNil(t, e)
	assert.Equal(t, "prog_focus_10d", e.ProgramID)
	assert.Equal(t, 1, e.CurrentDay)
	assert.Empty(t, e.CompletedDays)
}

func TestCompleteDayAdvancesWithDayGate(t *testing.T) {
	svc, _, clk := newTestService(t)
	svc.Enroll("prog_confidence_7d")

	svc.CompleteDay()
	e := svc.Active()
	assert.Equal(t, 2, e.CurrentDay)
	assert.Equal(t, []int{1}, e.CompletedDays)
	assert.True(t, svc.CompletedToday())

	// Same calendar day: gated.
	svc.CompleteDay()
	assert.Equal(t, 2, svc.Active().CurrentDay)

	clk.AdvanceDays(1)
	assert.False(t, svc.CompletedToday())
	svc.CompleteDay()
	assert.Equal(t, 3, svc.Active().CurrentDay)
	assert.InDelta(t, 2.0/7.0, svc.Progress(), 1e-9)
}

func TestFinalDayClearsEnrollment(t *testing.T) {
	svc, fs, clk := newTestService(t)
	svc.Enroll("prog_confidence_7d")

	for i := 0; i < 7; i++ {
		svc.CompleteDay()
		clk.AdvanceDays(1)
	}
	assert.Nil(t, svc.Active())
	assert.Nil(t, svc.TodayDay())
	assert.Zero(t, svc.Progress())

	exists, err := afero.Exists(fs, "/data/active_program.json")
	require.NoError(t, err)
	assert.False(t, exists, "completion clears persisted enrollment")
}

func TestEnrollmentSurvivesRestart(t *testing.T) {
	svc, fs, clk := newTestService(t)
	svc.Enroll("prog_morning_14d")
	svc.CompleteDay()

	reloaded := NewService(fs, "/data/active_program.json", clk)
	require.NoError(t, reloaded.Hydrate())
	e := reloaded.Active()
	require.NotNil(t, e)
	assert.Equal(t, "prog_morning_14d", e.ProgramID)
	assert.Equal(t, 2, e.CurrentDay)
	assert.True(t, reloaded.CompletedToday())
}

func TestAbandonAndReset(t *testing.T) {
	svc, fs, _ := newTestService(t)
	svc.Enroll("prog_focus_10d")
	svc.Abandon()
	assert.Nil(t, svc.Active())

	svc.Enroll("prog_focus_10d")
	require.NoError(t, svc.Reset())
	assert.Nil(t, svc.Active())
	exists, err := afero.Exists(fs, "/data/active_program.json")
	require.NoError(t, err)
	assert.False(t, exists)
}
