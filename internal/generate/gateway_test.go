package generate

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentumhq/momentum/models"
	"github.com/momentumhq/momentum/types"
)

// stubProvider records the last call and returns a canned response.
type stubProvider struct {
	response    string
	err         error
	lastSystem  string
	lastMessage string
}

func (s *stubProvider) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	s.lastSystem = systemPrompt
	s.lastMessage = userMessage
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func draftsJSON(t *testing.T, n int) string {
	t.Helper()
	drafts := make([]types.ChallengeDraft, 0, n)
	for i := 0; i < n; i++ {
		drafts = append(drafts, types.ChallengeDraft{
			Title:         "Do the thing",
			Description:   "A concrete small action.",
			Encouragement: "Nice work.",
		})
	}
	data, err := json.Marshal(drafts)
	require.NoError(t, err)
	return string(data)
}

func TestGenerateNilProviderFallsBack(t *testing.T) {
	g := NewGateway(nil, "", false)

	challenges, err := g.Generate(context.Background(), "Read more books", nil, DefaultChallengeCount)
	require.NoError(t, err)
	require.Len(t, challenges, DefaultChallengeCount)

	for i, c := range challenges {
		assert.Equal(t, i, c.Order)
		assert.NotEmpty(t, c.ID)
		assert.NotEmpty(t, c.Title)
		assert.NotEmpty(t, c.Description)
		assert.NotEmpty(t, c.Encouragement)
		assert.False(t, c.Completed)
	}
	// Fallback set cycles once past its length.
	assert.Equal(t, challenges[0].Title, challenges[len(fallbackChallenges)].Title)
}

func TestGenerateUsesProviderResponse(t *testing.T) {
	p := &stubProvider{response: draftsJSON(t, 5)}
	g := NewGateway(p, "", false)

	challenges, err := g.Generate(context.Background(), "Run a 5k", []string{"fitness", "consistency"}, 5)
	require.NoError(t, err)
	require.Len(t, challenges, 5)
	assert.Equal(t, "Do the thing", challenges[0].Title)

	assert.Contains(t, p.lastMessage, "Run a 5k")
	assert.Contains(t, p.lastMessage, "fitness, consistency")
	assert.Contains(t, p.lastMessage, "Generate 5")
}

func TestGenerateProviderErrorFallsBack(t *testing.T) {
	p := &stubProvider{err: errors.New("connection refused")}
	g := NewGateway(p, "", false)

	challenges, err := g.Generate(context.Background(), "Sleep earlier", nil, 3)
	require.NoError(t, err, "provider faults never surface, they fall back")
	assert.Len(t, challenges, 3)
	assert.Equal(t, fallbackChallenges[0].Title, challenges[0].Title)
}

func TestGenerateUnparseableResponseFallsBack(t *testing.T) {
	for _, raw := range []string{
		"I'm sorry, I can't help with that.",
		"[]",
		`[{"title": "x"}]`,
		`[{"title": 1, "description": true}]`,
	} {
		p := &stubProvider{response: raw}
		g := NewGateway(p, "", false)

		challenges, err := g.Generate(context.Background(), "Meditate", nil, 2)
		require.NoError(t, err)
		require.Len(t, challenges, 2, "raw=%q", raw)
		assert.Equal(t, fallbackChallenges[0].Title, challenges[0].Title, "raw=%q", raw)
	}
}

func TestGenerateTruncatesOversizedBatch(t *testing.T) {
	p := &stubProvider{response: draftsJSON(t, 20)}
	g := NewGateway(p, "", false)

	challenges, err := g.Generate(context.Background(), "Write daily", nil, 7)
	require.NoError(t, err)
	assert.Len(t, challenges, 7)
}

func TestGenerateRejectsNonPositiveCount(t *testing.T) {
	g := NewGateway(nil, "", false)
	_, err := g.Generate(context.Background(), "Stretch", nil, 0)
	assert.Error(t, err)
}

func TestRegenerateWithContextEmbedsRetro(t *testing.T) {
	p := &stubProvider{response: draftsJSON(t, 7)}
	g := NewGateway(p, "", false)

	rc := RetroContext{
		CompletedChallengeTitles: []string{"Lace up", "Walk a block"},
		Reflection:               "Mornings worked best for me",
		Feeling:                  models.FeelingConfident,
		ProgressStage:            "Sapling",
		Adaptation: models.AdaptationResult{
			DifficultyDelta:       1,
			TargetDurationMinutes: 10,
			AddStretchTask:        true,
			PreferredTimeHint:     models.PatternMorning,
		},
	}

	challenges, err := g.RegenerateWithContext(context.Background(), "Run a 5k", nil, rc, 7)
	require.NoError(t, err)
	assert.Len(t, challenges, 7)

	assert.Contains(t, p.lastMessage, "Lace up")
	assert.Contains(t, p.lastMessage, "Mornings worked best for me")
	assert.Contains(t, p.lastMessage, "confident")
	assert.Contains(t, p.lastMessage, "Sapling")
	assert.Contains(t, p.lastMessage, "more ambitious")
	assert.Contains(t, p.lastMessage, "stretch task")
	assert.Contains(t, p.lastMessage, "morning")
}

func TestAdaptationDirectives(t *testing.T) {
	easier := adaptationDirectives(models.AdaptationResult{DifficultyDelta: -1, TargetDurationMinutes: 5, AddGuidance: true})
	require.Len(t, easier, 3)
	assert.Contains(t, easier[0], "easier")
	assert.Contains(t, easier[1], "5 minutes")
	assert.Contains(t, easier[2], "step-by-step")

	steady := adaptationDirectives(models.AdaptationResult{PreferredTimeHint: models.PatternMixed})
	require.Len(t, steady, 1)
	assert.Contains(t, steady[0], "current level")
}

func TestParseDraftsExtractsEmbeddedArray(t *testing.T) {
	raw := "Here you go!\n```json\n" + `[{"title":"A","description":"B","encouragement":"C"}]` + "\n```"
	drafts, ok := parseDrafts(raw)
	require.True(t, ok)
	require.Len(t, drafts, 1)
	assert.Equal(t, "A", drafts[0].Title)
}

func TestFallbackDrafts(t *testing.T) {
	assert.Nil(t, fallbackDrafts(0))
	assert.Len(t, fallbackDrafts(3), 3)

	cycled := fallbackDrafts(len(fallbackChallenges) + 2)
	assert.Equal(t, cycled[0].Title, cycled[len(fallbackChallenges)].Title)
	for _, d := range cycled {
		assert.True(t, d.Valid())
	}
}
