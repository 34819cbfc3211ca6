package domain

// Roles used in a demo transcript.
const (
	RoleVisitor = "visitor"
	RoleAI      = "ai"
)

// DefaultSampleIntent opens the transcript when the request carries no intent.
const DefaultSampleIntent = "Hi! I'm looking for a quote."

// Turn is one message of a demo conversation.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// DemoTranscript returns the canned four-turn conversation shown to prospects.
// The first visitor message is sampleIntent when it is set and non-empty.
func DemoTranscript(sampleIntent *string) []Turn {
	opening := DefaultSampleIntent
	if sampleIntent != nil && *sampleIntent != "" {
		opening = *sampleIntent
	}

	return []Turn{
		{Role: RoleVisitor, Text: opening},
		{
			Role: RoleAI,
			Text: "You're in the right place! I can help with that. " +
				"May I have your address and a good time for an estimate?",
		},
		{Role: RoleVisitor, Text: "Tomorrow afternoon works. 123 Main St."},
		{
			Role: RoleAI,
			Text: "Great. I've penciled you in for 2:30 PM. You'll get a confirmation by text. " +
				"Anything else I can answer now?",
		},
	}
}
