// Package genai is the last routing stage: a generative backend chain that
// answers from assembled retrieval context when structured routing cannot.
package genai

import (
	"strings"
)

// Turn is one prior exchange included in the prompt for continuity.
type Turn struct {
	Question string
	Answer   string
}

// Request carries everything the generator needs for one answer.
type Request struct {
	Question string
	Context  string
	History  []Turn
	// Detailed relaxes the default two-sentence length limit. Set when the
	// user explicitly asks to elaborate.
	Detailed bool
}

// detailPhrases mark a request for a longer answer than the default.
var detailPhrases = []string{
	"more detail",
	"more details",
	"in detail",
	"full detail",
	"full details",
	"full summary",
	"explain more",
	"elaborate",
	"tell me more",
	"complete information",
}

// WantsDetail reports whether the raw question asks for an expanded answer.
func WantsDetail(question string) bool {
	q := strings.ToLower(question)
	for _, p := range detailPhrases {
		if strings.Contains(q, p) {
			return true
		}
	}
	return false
}

const systemPrompt = "You are a helpful NIET admission assistant."

const websiteFallbackLine = "Please Visit Our Website For More Informations :- https://www.niet.co.in/"

// BuildPrompt assembles the counsellor instruction block, conversation
// history, retrieval context and question into a single user prompt.
func BuildPrompt(req Request) string {
	var b strings.Builder

	b.WriteString(`You are a friendly, professional admission counsellor for NIET (Noida Institute of Engineering and Technology).

TONE:
- Warm, clear and human, never robotic or brochure-like.
- Confident but honest. No emojis. Plain text only, no markdown.

RULES:
- Answer ONLY from the information provided below. Do NOT guess, assume or add external knowledge.
- If the question starts with "is", "are", "can", "does", "do" or "should", answer Yes or No first, then one short supporting sentence.
- If the question starts with "why" or "how", the first sentence must directly give the reason, then explain in at most three sentences.
- For comparison questions ("vs", "better than", "compare"), weigh only the courses present in the information and explain which kind of student each suits. Never claim one is universally better.
- If the required information is NOT present below, reply exactly with:
  "` + websiteFallbackLine + `"
`)

	if req.Detailed {
		b.WriteString(`
LENGTH:
- The user asked for detail. Give a full explanation in short paragraphs.
`)
	} else {
		b.WriteString(`
LENGTH:
- Answer in at most 2 short sentences. Be precise. No examples or background.
`)
	}

	if req.Context == "" {
		b.WriteString(`
NOTE: No institutional information was retrieved for this question. Do not invent any facts; use the exact fallback reply above unless the question is casual conversation.
`)
	}

	if len(req.History) > 0 {
		b.WriteString("\nConversation History:\n")
		for _, t := range req.History {
			b.WriteString("user: ")
			b.WriteString(t.Question)
			b.WriteString("\nassistant: ")
			b.WriteString(t.Answer)
			b.WriteString("\n")
		}
	}

	b.WriteString("\nAvailable Information (use only this):\n")
	b.WriteString(req.Context)
	b.WriteString("\n\nUser Question:\n")
	b.WriteString(req.Question)
	b.WriteString("\n\nFinal Answer (human, clear, and helpful):\n")

	return b.String()
}
