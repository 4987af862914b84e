package character

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageTableIsAscending(t *testing.T) {
	require.NotEmpty(t, Stages)
	assert.Equal(t, 0, Stages[0].MinChallenges, "ladder starts at zero")
	for i := 1; i < len(Stages); i++ {
		assert.Greater(t, Stages[i].MinChallenges, Stages[i-1].MinChallenges,
			"stage %d threshold must exceed stage %d", i, i-1)
	}
	assert.Len(t, StageBadges(), len(Stages), "one unlock per stage")
}

func TestComputeStateBoundaries(t *testing.T) {
	cases := []struct {
		completed int
		wantStage string
		wantIndex int
	}{
		{0, "Seed", 0},
		{2, "Seed", 0},
		{3, "Sprout", 1},
		{6, "Sprout", 1},
		{7, "Sapling", 2},
		{14, "Sapling", 2},
		{15, "Young Tree", 3},
		{30, "Tree", 4},
		{50, "Mighty Oak", 5},
		{99, "Mighty Oak", 5},
		{100, "Ancient Grove", 6},
		{5000, "Ancient Grove", 6},
	}
	for _, tc := range cases {
		st := ComputeState(tc.completed)
		assert.Equal(t, tc.wantStage, st.Stage.Name, "completed=%d", tc.completed)
		assert.Equal(t, tc.wantIndex, st.StageIndex, "completed=%d", tc.completed)
	}
}

func TestComputeStateNeverRegresses(t *testing.T) {
	prev := 0
	for n := 0; n <= 120; n++ {
		st := ComputeState(n)
		assert.GreaterOrEqual(t, st.StageIndex, prev, "stage dropped at completed=%d", n)
		prev = st.StageIndex
	}
}

func TestComputeStateClampsNegative(t *testing.T) {
	st := ComputeState(-5)
	assert.Equal(t, 0, st.StageIndex)
	assert.Equal(t, 0, st.TotalCompleted)
}

func TestComputeStateProgress(t *testing.T) {
	st := ComputeState(5)
	assert.Equal(t, 7, st.NextMilestone)
	assert.InDelta(t, 0.5, st.ProgressToNext, 1e-9, "5 of the 3..7 band is halfway")

	final := ComputeState(150)
	assert.Equal(t, 0, final.NextMilestone)
	assert.Equal(t, 1.0, final.ProgressToNext)
	assert.Contains(t, final.ProgressMessage, "final form")
}

func TestComputeStateUnlockedBadges(t *testing.T) {
	st := ComputeState(7)
	require.Len(t, st.UnlockedBadges, 3)
	assert.Equal(t, "stage-0", st.UnlockedBadges[0].ID)
	assert.Equal(t, "stage-2", st.UnlockedBadges[2].ID)
}

func TestProgressMessageCountdown(t *testing.T) {
	st := ComputeState(6)
	assert.Equal(t, "1 challenge until your Sprout evolves.", st.ProgressMessage)

	st = ComputeState(3)
	assert.Equal(t, "4 challenges until your Sprout evolves.", st.ProgressMessage)
}
