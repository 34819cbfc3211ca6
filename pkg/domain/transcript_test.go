package domain_test

import (
	"smartsite/pkg/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestDemoTranscript(t *testing.T) {
	tests := []struct {
		name    string
		intent  *string
		opening string
	}{
		{name: "nil intent", intent: nil, opening: domain.DefaultSampleIntent},
		{name: "empty intent", intent: ptr(""), opening: "Hi! I'm looking for a quote."},
		{name: "seeded", intent: ptr("roofing quote"), opening: "roofing quote"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			turns := domain.DemoTranscript(tt.intent)
			require.Equal(t, []domain.Turn{
				{Role: "visitor", Text: tt.opening},
				{
					Role: "ai",
					Text: "You're in the right place! I can help with that. May I have your address and a good time for an estimate?",
				},
				{Role: "visitor", Text: "Tomorrow afternoon works. 123 Main St."},
				{
					Role: "ai",
					Text: "Great. I've penciled you in for 2:30 PM. You'll get a confirmation by text. Anything else I can answer now?",
				},
			}, turns)
		})
	}
}
