// Package generate wraps the external generation capability behind a typed
// boundary: prompt construction, response validation and deterministic
// fallback live here, never at call sites.
package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/momentumhq/momentum/internal/logger"
	"github.com/momentumhq/momentum/llm"
	"github.com/momentumhq/momentum/models"
	"github.com/momentumhq/momentum/prompts"
	"github.com/momentumhq/momentum/types"
)

// DefaultChallengeCount is the batch size for a fresh plan.
const DefaultChallengeCount = 12

// RetroContext carries everything the regeneration prompt embeds about the
// retro that just happened.
type RetroContext struct {
	CompletedChallengeTitles []string
	Reflection               string
	Feeling                  models.RetroFeeling
	ProgressStage            string
	Adaptation               models.AdaptationResult
}

// Gateway produces validated challenge batches. It attempts one call to the
// configured provider; on any failure (network, non-2xx, unparseable JSON,
// empty array, missing fields) it falls back to the built-in set. It never
// returns an error for a bad model response, only for internal faults.
type Gateway struct {
	provider     llm.Provider // nil means generation is unconfigured: always fall back
	templatesDir string
	verbose      bool
}

// NewGateway creates a gateway around the given provider. A nil provider is
// valid and yields deterministic fallback content on every call.
func NewGateway(provider llm.Provider, templatesDir string, verbose bool) *Gateway {
	return &Gateway{provider: provider, templatesDir: templatesDir, verbose: verbose}
}

// Generate builds a challenge batch for a new or regenerated plan.
func (g *Gateway) Generate(ctx context.Context, goal string, focusAreas []string, count int) ([]models.MicroChallenge, error) {
	if count <= 0 {
		return nil, fmt.Errorf("challenge count must be positive, got %d", count)
	}

	systemPrompt, err := prompts.GetPrompt(prompts.KeyGenerateChallenges, g.templatesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load generation prompt: %w", err)
	}

	userMessage := buildGoalMessage(goal, focusAreas, count)
	drafts := g.complete(ctx, systemPrompt, userMessage, count)
	return toChallenges(drafts), nil
}

// RegenerateWithContext builds a post-retro batch. The prompt embeds the
// completed challenge titles, the user's reflection, the evolution stage and
// the adaptation directives translated into natural language.
func (g *Gateway) RegenerateWithContext(ctx context.Context, goal string, focusAreas []string, rc RetroContext, count int) ([]models.MicroChallenge, error) {
	if count <= 0 {
		return nil, fmt.Errorf("challenge count must be positive, got %d", count)
	}

	systemPrompt, err := prompts.GetPrompt(prompts.KeyRegenerateChallenges, g.templatesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load regeneration prompt: %w", err)
	}

	var b strings.Builder
	b.WriteString(buildGoalMessage(goal, focusAreas, count))
	if len(rc.CompletedChallengeTitles) > 0 {
		b.WriteString("\n\nAlready completed challenges (do not repeat):\n")
		for _, t := range rc.CompletedChallengeTitles {
			fmt.Fprintf(&b, "- %s\n", t)
		}
	}
	fmt.Fprintf(&b, "\nThe user's weekly reflection: %q\n", rc.Reflection)
	if rc.Feeling != "" {
		fmt.Fprintf(&b, "They reported feeling: %s\n", rc.Feeling)
	}
	if rc.ProgressStage != "" {
		fmt.Fprintf(&b, "Their growth stage is: %s\n", rc.ProgressStage)
	}
	b.WriteString("\nAdaptation directives:\n")
	for _, d := range adaptationDirectives(rc.Adaptation) {
		fmt.Fprintf(&b, "- %s\n", d)
	}

	drafts := g.complete(ctx, systemPrompt, b.String(), count)
	return toChallenges(drafts), nil
}

// complete runs one provider call and validates the result, falling back to
// the built-in set on any failure.
func (g *Gateway) complete(ctx context.Context, systemPrompt, userMessage string, count int) []types.ChallengeDraft {
	if g.provider == nil {
		if g.verbose {
			fmt.Fprintln(os.Stderr, "[generate] no provider configured, using fallback challenges")
		}
		return fallbackDrafts(count)
	}

	logger.SetLastPrompt(userMessage)
	raw, err := g.provider.Complete(ctx, systemPrompt, userMessage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: challenge generation failed, using fallback set: %v\n", err)
		return fallbackDrafts(count)
	}

	drafts, ok := parseDrafts(raw)
	if !ok {
		fmt.Fprintln(os.Stderr, "Warning: could not parse generated challenges, using fallback set")
		return fallbackDrafts(count)
	}
	if len(drafts) > count {
		drafts = drafts[:count]
	}
	return drafts
}

// buildGoalMessage renders the shared lead-in of both prompts.
func buildGoalMessage(goal string, focusAreas []string, count int) string {
	areas := "general personal growth"
	if len(focusAreas) > 0 {
		areas = strings.Join(focusAreas, ", ")
	}
	return fmt.Sprintf("Generate %d personalized micro-challenges for someone whose goal is: %q.\nTheir focus areas are: %s.", count, goal, areas)
}

// adaptationDirectives translates the structured adaptation result into
// natural-language instructions appended to the regeneration prompt.
func adaptationDirectives(a models.AdaptationResult) []string {
	var out []string
	switch {
	case a.DifficultyDelta < 0:
		out = append(out, "Make the challenges noticeably easier than before.")
	case a.DifficultyDelta > 0:
		out = append(out, "Make the challenges more ambitious than before.")
	default:
		out = append(out, "Keep the difficulty at the current level.")
	}
	if a.TargetDurationMinutes > 0 {
		out = append(out, fmt.Sprintf("Each challenge should take at most %d minutes.", a.TargetDurationMinutes))
	}
	if a.AddGuidance {
		out = append(out, "Include concrete step-by-step guidance in each description.")
	}
	if a.AddStretchTask {
		out = append(out, "Make the final challenge a bonus stretch task that pushes a little further.")
	}
	if a.PreferredTimeHint != "" && a.PreferredTimeHint != models.PatternMixed {
		out = append(out, fmt.Sprintf("Suggest doing the challenges in the %s when it fits.", a.PreferredTimeHint))
	}
	return out
}

// parseDrafts extracts a JSON array from the raw model output and validates
// it: it must be a non-empty array whose elements all carry the three
// required string fields. Anything else is rejected wholesale.
func parseDrafts(raw string) ([]types.ChallengeDraft, bool) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return nil, false
	}

	var drafts []types.ChallengeDraft
	if err := json.Unmarshal([]byte(raw[start:end+1]), &drafts); err != nil {
		return nil, false
	}
	if len(drafts) == 0 {
		return nil, false
	}
	for _, d := range drafts {
		if !d.Valid() {
			return nil, false
		}
	}
	return drafts, true
}

// toChallenges assigns IDs and sequence order to a validated draft batch.
func toChallenges(drafts []types.ChallengeDraft) []models.MicroChallenge {
	challenges := make([]models.MicroChallenge, 0, len(drafts))
	for i, d := range drafts {
		challenges = append(challenges, models.MicroChallenge{
			ID:            uuid.NewString(),
			Title:         d.Title,
			Description:   d.Description,
			Encouragement: d.Encouragement,
			Order:         i,
			Completed:     false,
		})
	}
	return challenges
}
