package routing

import (
	"fmt"
	"strings"

	"github.com/nietlabs/answer-engine/internal/knowledge"
)

const syllabusURL = "https://www.niet.co.in/academics/syllabus"

// greetingTokens are matched against the whole query: a greeting only
// short-circuits when the message is nothing but a greeting.
var greetingTokens = map[string]struct{}{
	"hi": {}, "hii": {}, "hello": {}, "hey": {}, "hlo": {},
	"namaste": {}, "thanks": {}, "thank": {}, "bye": {}, "goodbye": {},
}

func isGreeting(q Query) bool {
	if len(q.Tokens) == 0 || len(q.Tokens) > 2 {
		return false
	}
	for _, tok := range q.Tokens {
		if _, ok := greetingTokens[tok]; !ok {
			return false
		}
	}
	return true
}

func greetingAnswer() Answer {
	return Answer{
		Type:   AnswerGreeting,
		Text:   "Hello! I am the NIET assistant. Ask me about courses, admissions, placements, facilities or student clubs.",
		Source: SourceGreeting,
	}
}

var syllabusTokens = map[string]struct{}{
	"syllabus": {}, "pdf": {}, "curriculum": {}, "subject": {}, "subjects": {},
}

func wantsSyllabus(q Query) bool {
	for _, tok := range q.Tokens {
		if _, ok := syllabusTokens[tok]; ok {
			return true
		}
	}
	return false
}

func syllabusAnswer() Answer {
	return Answer{
		Type: AnswerRedirect,
		Text: "For the complete and official syllabus, please visit:\n" + syllabusURL,
		Actions: []Action{
			{Type: "link", Label: "Official Syllabus", URL: syllabusURL},
		},
		Source: SourceFallback,
	}
}

// renderChunk turns a matched chunk into answer text. A detected metric
// narrows the answer to that attribute; otherwise the full chunk is
// formatted.
func renderChunk(c *knowledge.Chunk, metric Metric) string {
	switch metric {
	case MetricSeats:
		if v := c.Property("seats"); v != "" {
			return fmt.Sprintf("Seats for %s: %s", c.Topic, v)
		}
	case MetricDuration:
		if v := c.Property("duration"); v != "" {
			return fmt.Sprintf("Duration of %s: %s", c.Topic, v)
		}
	case MetricEligibility:
		if v := c.Property("eligibility"); v != "" {
			return fmt.Sprintf("Eligibility for %s: %s", c.Topic, v)
		}
	case MetricFees:
		if v := c.Property("fees"); v != "" {
			return fmt.Sprintf("Fees for %s: %s", c.Topic, v)
		}
		return fmt.Sprintf("Fees for %s: please check with the admission department.", c.Topic)
	case MetricPlacement:
		if lines := placementLines(c); lines != "" {
			return lines
		}
	}
	return renderFullChunk(c)
}

func placementLines(c *knowledge.Chunk) string {
	avg := c.Property("average_package")
	high := c.Property("highest_package")
	if avg == "" && high == "" {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Placements for %s:\n", c.Topic)
	if avg != "" {
		fmt.Fprintf(&b, "- Average Package: %s\n", avg)
	}
	if high != "" {
		fmt.Fprintf(&b, "- Highest Package: %s\n", high)
	}
	if c.SourceURL != "" {
		fmt.Fprintf(&b, "- More Information: %s\n", c.SourceURL)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderFullChunk(c *knowledge.Chunk) string {
	var b strings.Builder
	if c.Topic != "" {
		b.WriteString(c.Topic)
		b.WriteString("\n\n")
	}
	b.WriteString(c.Text)

	details := make([]string, 0, 4)
	for _, p := range []struct{ key, label string }{
		{"duration", "Duration"},
		{"seats", "Seats"},
		{"eligibility", "Eligibility"},
		{"fees", "Fees"},
		{"average_package", "Average Package"},
		{"highest_package", "Highest Package"},
	} {
		if v := c.Property(p.key); v != "" {
			details = append(details, fmt.Sprintf("- %s: %s", p.label, v))
		}
	}
	if len(details) > 0 {
		b.WriteString("\n\n")
		b.WriteString(strings.Join(details, "\n"))
	}
	if c.SourceURL != "" {
		b.WriteString("\n\nMore: ")
		b.WriteString(c.SourceURL)
	}
	return b.String()
}
