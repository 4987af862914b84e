package generate

import "github.com/momentumhq/momentum/types"

// fallbackChallenges is the fixed, ordered challenge set used whenever the
// generation capability fails or returns unusable content. Generic enough to
// work for most goals.
var fallbackChallenges = []types.ChallengeDraft{
	{
		Title:         "Write it down",
		Description:   "Spend 2 minutes writing your goal in your own words. Be specific about what success looks like.",
		Encouragement: "Clarity is the first step. You just took it.",
	},
	{
		Title:         "Tell someone",
		Description:   "Share your goal with one person you trust. A text message counts.",
		Encouragement: "Saying it out loud makes it real.",
	},
	{
		Title:         "Remove one obstacle",
		Description:   "Identify the smallest thing blocking you and eliminate it right now. Unsubscribe, delete, rearrange.",
		Encouragement: "Less friction, more momentum.",
	},
	{
		Title:         "5-minute research",
		Description:   "Set a timer for 5 minutes and learn one new thing related to your goal.",
		Encouragement: "Knowledge compounds. Every bit counts.",
	},
	{
		Title:         "The smallest possible step",
		Description:   "Do the absolute tiniest action toward your goal. Open the document, lace up the shoes, send the email.",
		Encouragement: "Motion beats meditation every time.",
	},
	{
		Title:         "Set a trigger",
		Description:   "Attach your goal action to something you already do daily. After coffee, I will...",
		Encouragement: "Habits ride on habits. Smart move.",
	},
	{
		Title:         "Visualize the finish line",
		Description:   "Close your eyes for 2 minutes and imagine having achieved your goal. How does it feel?",
		Encouragement: "Your brain can't tell the difference. Use that.",
	},
	{
		Title:         "Track your first win",
		Description:   "Write down one thing you've already done toward this goal, no matter how small.",
		Encouragement: "You're further along than you think.",
	},
	{
		Title:         "Teach what you know",
		Description:   "Explain your goal and what you've learned so far to someone, even if it's just a voice memo to yourself.",
		Encouragement: "Teaching is the best way to learn.",
	},
	{
		Title:         "Celebrate progress",
		Description:   "Look back at what you've done this week. Acknowledge it. Treat yourself to something small.",
		Encouragement: "You showed up. That's everything.",
	},
}

// fallbackDrafts returns count drafts from the fixed set, truncating or
// cycling through it as needed.
func fallbackDrafts(count int) []types.ChallengeDraft {
	if count <= 0 {
		return nil
	}
	drafts := make([]types.ChallengeDraft, 0, count)
	for i := 0; i < count; i++ {
		drafts = append(drafts, fallbackChallenges[i%len(fallbackChallenges)])
	}
	return drafts
}
