// Package program implements creator-led guided programs: a static catalog
// and a single active enrollment advanced one day at a time. Entirely
// separate from goal plans; no generation is involved.
package program

import "time"

// Day is one day's content inside a program, 1-indexed.
type Day struct {
	Day           int    `json:"day"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Encouragement string `json:"encouragement"`
}

// Review is one piece of social proof attached to a program.
type Review struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

// SocialProof aggregates enrollment and rating data for a program.
type SocialProof struct {
	EnrolledCount int      `json:"enrolledCount"`
	AverageRating float64  `json:"averageRating"`
	Reviews       []Review `json:"reviews"`
}

// CreatorProgram is one published guided program.
type CreatorProgram struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	CreatorName  string      `json:"creatorName"`
	CreatorBio   string      `json:"creatorBio"`
	Description  string      `json:"description"`
	DurationDays int         `json:"durationDays"`
	Days         []Day       `json:"days"`
	Premium      bool        `json:"premium"`
	SocialProof  SocialProof `json:"socialProof"`
}

// Enrollment is the persisted state of the one active program. CurrentDay
// is the next day to complete, 1-indexed. LastCompletedAt gates completion
// to one program day per calendar day.
type Enrollment struct {
	ProgramID       string     `json:"programId"`
	CurrentDay      int        `json:"currentDay"`
	StartedAt       time.Time  `json:"startedAt"`
	CompletedDays   []int      `json:"completedDays"`
	LastCompletedAt *time.Time `json:"lastCompletedAt,omitempty"`
}

// Catalog returns all published programs. Static for now; a backend catalog
// would replace this.
func Catalog() []CreatorProgram {
	return catalog
}

// Lookup finds a program by id, or nil.
func Lookup(id string) *CreatorProgram {
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i]
		}
	}
	return nil
}

var catalog = []CreatorProgram{
	{
		ID:          "prog_confidence_7d",
		Title:       "7 Days of Confidence",
		CreatorName: "Momentum Team",
		CreatorBio:  "The team behind Momentum. We believe everyone deserves to feel unstuck and empowered to take action toward the life they want.",
		Description: "Build unshakable self-belief through daily micro-actions. Perfect for anyone who feels stuck waiting for permission to start.",

		DurationDays: 7,
		Premium:      false,
		SocialProof: SocialProof{
			EnrolledCount: 2847,
			AverageRating: 4.7,
			Reviews: []Review{
				{ID: "r1", Name: "Jordan M.", Rating: 5, Text: "This program got me out of my head and into action. Day 4 was a game-changer."},
				{ID: "r2", Name: "Priya S.", Rating: 5, Text: "Simple but powerful. I actually looked forward to each day's challenge."},
				{ID: "r3", Name: "Alex T.", Rating: 4, Text: "Exactly what I needed to stop overthinking and start doing. Highly recommend."},
			},
		},
		Days: []Day{
			{Day: 1, Title: "Speak up once today", Description: "Share an opinion, ask a question, or volunteer an idea in a conversation — even a small one counts.", Encouragement: "Your voice matters. Using it is how you prove that to yourself."},
			{Day: 2, Title: "Do something you've been postponing", Description: "Pick the smallest postponed task and finish it. Send that email, make that call, or clean that corner.", Encouragement: "Action dissolves anxiety. You just proved it."},
			{Day: 3, Title: "Compliment a stranger or acquaintance", Description: "Give a genuine, specific compliment to someone you don't know well. Notice how it feels.", Encouragement: "Confidence grows when you give it away."},
			{Day: 4, Title: "Set one boundary", Description: "Say no to something that doesn't serve you, or ask for what you need clearly and kindly.", Encouragement: "Boundaries aren't walls — they're proof you value yourself."},
			{Day: 5, Title: "Try something you might fail at", Description: "Attempt something with no guarantee of success. A new recipe, a workout, a creative project.", Encouragement: "Failure is data. You're collecting courage, not perfection."},
			{Day: 6, Title: "Share something you created or believe in", Description: "Post a thought, share your work, or tell someone about a project you care about.", Encouragement: "Visibility is vulnerability — and you showed up anyway."},
			{Day: 7, Title: "Write a letter to your future self", Description: "Write down who you're becoming and what you're proud of from this week. Seal it for 30 days.", Encouragement: "You just completed 7 days of choosing yourself. That's momentum."},
		},
	},
	{
		ID:          "prog_morning_14d",
		Title:       "14-Day Morning Momentum",
		CreatorName: "Alex Rivera",
		CreatorBio:  "Wellness coach and morning routine specialist. Alex has helped thousands of people transform their mornings from chaotic to intentional through simple, sustainable practices.",
		Description: "Transform your mornings from chaotic to intentional. Each day builds on the last to create a morning routine that actually sticks.",

		DurationDays: 14,
		Premium:      true,
		SocialProof: SocialProof{
			EnrolledCount: 1523,
			AverageRating: 4.8,
			Reviews: []Review{
				{ID: "r4", Name: "Sam K.", Rating: 5, Text: "My mornings used to be chaos. By day 7 I had a routine I actually enjoy."},
				{ID: "r5", Name: "Maria L.", Rating: 5, Text: "The gradual build-up is genius. Each day felt doable and I never wanted to quit."},
				{ID: "r6", Name: "Chris W.", Rating: 4, Text: "Cold water day was rough but the rest was transformative. Still doing my routine 3 months later."},
			},
		},
		Days: []Day{
			{Day: 1, Title: "Wake up and hydrate", Description: "Before anything else — phone, coffee, thoughts — drink a full glass of water.", Encouragement: "The simplest wins build the strongest habits."},
			{Day: 2, Title: "5 minutes of stillness", Description: "Sit quietly for 5 minutes. No phone, no music. Just breathe and notice.", Encouragement: "Stillness isn't doing nothing — it's choosing presence."},
			{Day: 3, Title: "Write your top 3 intentions", Description: "Before opening any apps, write down 3 things you intend to do or feel today.", Encouragement: "Direction beats speed. You just set yours."},
			{Day: 4, Title: "Move your body for 10 minutes", Description: "Stretch, walk, dance — anything that gets you out of your head and into your body.", Encouragement: "Energy isn't found, it's created. You just made some."},
			{Day: 5, Title: "No phone for the first 30 minutes", Description: "Keep your phone in another room or on airplane mode for the first half hour after waking.", Encouragement: "You chose yourself before the world could choose for you."},
			{Day: 6, Title: "Eat a real breakfast", Description: "Prepare and sit down for a proper breakfast. No eating on the go.", Encouragement: "Nourishing yourself is an act of self-respect."},
			{Day: 7, Title: "Review your week so far", Description: "Spend 5 minutes reviewing what went well this week and what you'd adjust.", Encouragement: "Reflection turns experience into wisdom. One week down."},
			{Day: 8, Title: "Add gratitude to your morning", Description: "Write down 3 specific things you're grateful for before starting your day.", Encouragement: "Gratitude rewires your brain for opportunity."},
			{Day: 9, Title: "Cold water finish", Description: "End your shower with 30 seconds of cold water. Embrace the discomfort.", Encouragement: "Discomfort on your terms builds resilience everywhere else."},
			{Day: 10, Title: "Read for 10 minutes", Description: "Read something that feeds your mind — a book, an article, not social media.", Encouragement: "Leaders are readers. You're investing in yourself."},
			{Day: 11, Title: "Prepare the night before", Description: "Tonight, lay out tomorrow's clothes and prep your morning. Feel the difference.", Encouragement: "Tomorrow's momentum starts with tonight's intention."},
			{Day: 12, Title: "Connect with someone", Description: "Send a thoughtful message to someone you care about before 9am.", Encouragement: "Connection is the ultimate morning fuel."},
			{Day: 13, Title: "Combine your favorites", Description: "Build your ideal morning using the practices that resonated most from this program.", Encouragement: "You're not following a routine anymore — you're designing one."},
			{Day: 14, Title: "Commit to your morning", Description: "Write down your personal morning routine and commit to it for the next 30 days.", Encouragement: "14 days of showing up. Your mornings will never be the same."},
		},
	},
	{
		ID:          "prog_focus_10d",
		Title:       "10 Days of Deep Focus",
		CreatorName: "Dr. Sarah Chen",
		CreatorBio:  "Cognitive scientist and productivity researcher. Dr. Chen studies attention and focus at the intersection of neuroscience and practical performance, translating research into daily habits anyone can adopt.",
		Description: "Reclaim your attention in a distracted world. Science-backed daily practices to sharpen your focus and get more meaningful work done.",

		DurationDays: 10,
		Premium:      true,
		SocialProof: SocialProof{
			EnrolledCount: 982,
			AverageRating: 4.6,
			Reviews: []Review{
				{ID: "r7", Name: "Taylor R.", Rating: 5, Text: "I went from 10-minute focus sessions to 50 minutes by the end. The science-backed approach really works."},
				{ID: "r8", Name: "Nina P.", Rating: 4, Text: "The distraction audit on day 1 was eye-opening. Changed how I think about my phone."},
				{ID: "r9", Name: "Dev A.", Rating: 5, Text: "As a developer, deep focus is everything. This program gave me a system that sticks."},
			},
		},
		Days: []Day{
			{Day: 1, Title: "Audit your distractions", Description: "Track every time you get distracted today. Just notice and tally — no judgment.", Encouragement: "Awareness is the first step to mastery."},
			{Day: 2, Title: "Single-task for 25 minutes", Description: "Pick one task. Set a timer for 25 minutes. Do nothing else until it rings.", Encouragement: "You just proved your brain can still do this."},
			{Day: 3, Title: "Create a distraction-free zone", Description: "Designate one physical space for focused work. Remove all non-essential items.", Encouragement: "Your environment shapes your attention more than willpower."},
			{Day: 4, Title: "Batch your communication", Description: "Check email and messages only at 2-3 set times today. Not continuously.", Encouragement: "Reactivity is the enemy of depth. You chose depth."},
			{Day: 5, Title: "Practice the 2-minute reset", Description: "Between tasks, close your eyes for 2 minutes. Let your mind clear before switching.", Encouragement: "Rest between rounds makes the next round stronger."},
			{Day: 6, Title: "Identify your peak hours", Description: "Notice when your focus is sharpest today. Protect those hours tomorrow.", Encouragement: "Working with your rhythm beats fighting against it."},
			{Day: 7, Title: "Do your hardest task first", Description: "Start with the task you've been avoiding. Give it your freshest energy.", Encouragement: "Eating the frog gets easier every time."},
			{Day: 8, Title: "Digital sunset", Description: "Turn off all screens 1 hour before bed tonight. Let your brain wind down.", Encouragement: "Tomorrow's focus is built on tonight's rest."},
			{Day: 9, Title: "Extend to 50 minutes", Description: "Do a 50-minute deep work session today. You've built up to this.", Encouragement: "Your focus muscle is getting stronger. Feel the difference."},
			{Day: 10, Title: "Design your focus protocol", Description: "Write down your personal focus rules based on what worked best this program.", Encouragement: "10 days of intentional focus. You've rewired how you work."},
		},
	},
}
