package routing

// AnswerType tags the shape of a routed answer so clients can render it.
type AnswerType string

const (
	AnswerText              AnswerType = "normal"
	AnswerSensitiveRedirect AnswerType = "sensitive_redirect"
	AnswerPositiveSensitive AnswerType = "positive_sensitive"
	AnswerGreeting          AnswerType = "greeting"
	AnswerRedirect          AnswerType = "redirect"
)

// AnswerSource records which pipeline stage produced the answer.
type AnswerSource string

const (
	SourceSafety     AnswerSource = "safety"
	SourceGreeting   AnswerSource = "greeting"
	SourceLexical    AnswerSource = "lexical"
	SourceVector     AnswerSource = "vector"
	SourceGenerative AnswerSource = "generative"
	SourceFallback   AnswerSource = "fallback"
	SourceCache      AnswerSource = "cache"
)

// Action is a client-side affordance attached to an answer, such as a
// callback request button or an external link.
type Action struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	URL   string `json:"url,omitempty"`
}

// Answer is the single response produced for every query. Exactly one answer
// is returned per request; pipeline failures are absorbed into fallbacks, not
// surfaced as errors.
type Answer struct {
	Type    AnswerType   `json:"type"`
	Text    string       `json:"text"`
	Details []string     `json:"details,omitempty"`
	Actions []Action     `json:"actions,omitempty"`
	Source  AnswerSource `json:"-"`
	Score   float64      `json:"-"`
}

const officialSiteURL = "https://www.niet.co.in/"

func defaultActions() []Action {
	return []Action{
		{Type: "callback", Label: "Request Callback"},
		{Type: "link", Label: "Visit Official Website", URL: officialSiteURL},
	}
}
