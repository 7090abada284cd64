package genai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWantsDetail(t *testing.T) {
	tests := []struct {
		question string
		want     bool
	}{
		{"tell me more about placements", true},
		{"explain more please", true},
		{"fees of btech cse in detail", true},
		{"ELABORATE on the hostels", true},
		{"fees of btech cse", false},
		{"", false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, WantsDetail(tc.question), tc.question)
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(Request{
		Question: "why choose NIET",
		Context:  "NIET is NAAC A accredited.",
		History: []Turn{
			{Question: "hello", Answer: "Hi! How can I help?"},
		},
	})

	assert.Contains(t, prompt, "NIET is NAAC A accredited.")
	assert.Contains(t, prompt, "why choose NIET")
	assert.Contains(t, prompt, "user: hello")
	assert.Contains(t, prompt, "assistant: Hi! How can I help?")
	assert.Contains(t, prompt, websiteFallbackLine)
	// Default length restriction is present when detail was not requested.
	assert.Contains(t, prompt, "at most 2 short sentences")
}

func TestBuildPrompt_Detailed(t *testing.T) {
	prompt := BuildPrompt(Request{Question: "q", Context: "c", Detailed: true})
	assert.NotContains(t, prompt, "at most 2 short sentences")
	assert.Contains(t, prompt, "full explanation")
}

func TestBuildPrompt_EmptyContextWarns(t *testing.T) {
	prompt := BuildPrompt(Request{Question: "q"})
	assert.Contains(t, prompt, "No institutional information was retrieved")

	withContext := BuildPrompt(Request{Question: "q", Context: "some facts"})
	assert.False(t, strings.Contains(withContext, "No institutional information was retrieved"))
}
