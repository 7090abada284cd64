package routing

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Verdict is the outcome of the safety gate for one query.
type Verdict struct {
	// Sensitive is set when the query touches reputational, legal or
	// institutional-trust topics that must not reach retrieval.
	Sensitive bool
	// SafetyConfirmation is set when a sensitive query is really asking
	// for reassurance ("is NIET safe") rather than digging for trouble.
	// Only meaningful when Sensitive is true.
	SafetyConfirmation bool
}

// SafetyGate screens raw queries against two phrase taxonomies before any
// routing happens. Matching is case-insensitive substring containment on the
// raw text, not on normalized tokens, so multi-word phrases keep their shape.
type SafetyGate struct {
	sensitive []string
	positive  []string
}

type taxonomyFile struct {
	Sensitive      []string `yaml:"sensitive"`
	SafetyPositive []string `yaml:"safety_positive"`
}

// NewSafetyGate returns a gate loaded with the built-in taxonomies.
func NewSafetyGate() *SafetyGate {
	return &SafetyGate{
		sensitive: defaultSensitivePhrases,
		positive:  defaultSafetyPositivePhrases,
	}
}

// LoadSafetyGate reads phrase taxonomies from a YAML file. Either list may be
// omitted, in which case the built-in default for that list is kept.
func LoadSafetyGate(path string) (*SafetyGate, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading safety taxonomy: %w", err)
	}
	var tf taxonomyFile
	if err := yaml.Unmarshal(raw, &tf); err != nil {
		return nil, fmt.Errorf("parsing safety taxonomy: %w", err)
	}
	g := NewSafetyGate()
	if len(tf.Sensitive) > 0 {
		g.sensitive = lowerAll(tf.Sensitive)
	}
	if len(tf.SafetyPositive) > 0 {
		g.positive = lowerAll(tf.SafetyPositive)
	}
	return g, nil
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}

// Check screens the raw query text. A hit in either taxonomy makes the
// query sensitive; a hit in the reassurance list additionally marks it as a
// safety confirmation. False positives are acceptable here, false negatives
// are not. Empty text is never sensitive.
func (g *SafetyGate) Check(raw string) Verdict {
	if strings.TrimSpace(raw) == "" {
		return Verdict{}
	}
	lower := strings.ToLower(raw)

	var v Verdict
	for _, phrase := range g.positive {
		if strings.Contains(lower, phrase) {
			v.Sensitive = true
			v.SafetyConfirmation = true
			break
		}
	}
	if !v.SafetyConfirmation {
		for _, phrase := range g.sensitive {
			if strings.Contains(lower, phrase) {
				v.Sensitive = true
				break
			}
		}
	}
	return v
}

// PositiveSafetyAnswer is returned for sensitive queries that ask for
// reassurance about student safety or institutional trust.
func PositiveSafetyAnswer() Answer {
	return Answer{
		Type: AnswerPositiveSensitive,
		Text: "Yes, NIET is safe. The institute provides a secure and supportive environment for students.",
		Details: []string{
			"24×7 campus security with trained guards",
			"CCTV surveillance across the campus",
			"Separate and secure hostels for boys and girls",
			"On-campus medical and first-aid facilities",
			"Well-maintained academic and residential infrastructure",
		},
		Actions: defaultActions(),
		Source:  SourceSafety,
	}
}

// SensitiveRedirectAnswer is returned for every other sensitive query.
func SensitiveRedirectAnswer() Answer {
	return Answer{
		Type:    AnswerSensitiveRedirect,
		Text:    "For sensitive or official matters, we do not provide information via chat. Please contact NIET directly for verified details.",
		Actions: defaultActions(),
		Source:  SourceSafety,
	}
}

var defaultSensitivePhrases = []string{
	"close", "closed", "closure", "shut", "shutdown", "shutting",
	"college close", "institute close", "college shut",

	"ban", "banned", "blacklist", "blacklisted",
	"approval cancelled", "approval cancel", "recognition cancelled",
	"not approved", "approval issue",
	"government ban", "aicte ban", "aktu ban", "ugc ban",

	"arrest", "arrested", "jail", "police", "police case", "case",
	"court", "legal case", "raid", "fir", "complaint", "investigation",

	"fraud", "scam", "fake", "fake college", "fraud college",
	"scam college", "cheating", "cheat", "misleading", "illegal",
	"illegal college",

	"degree valid", "degree validity", "valid degree", "fake degree",
	"invalid degree", "degree value", "is degree valid",
	"is degree accepted",

	"fake placement", "placement fraud", "placement scam",
	"false placement", "fake package", "fees fraud", "extra fees",
	"hidden fees", "money issue",

	"is it safe", "safe to join", "future safe", "career risk",
	"risky college", "should i join", "should i take admission",
	"worth joining", "trustable", "trusted", "reliable or not",

	"bad review", "negative review", "bad college", "worst college",
	"poor reputation", "why bad", "why students complain",

	"news", "rumour", "rumor", "viral", "exposed", "truth", "reality",
}

var defaultSafetyPositivePhrases = []string{
	"safe", "safety", "is it safe", "is safe", "safe or not",
	"safe to join", "safe for students", "safe college", "safe campus",

	"trusted", "trustable", "trustworthy", "reliable",
	"reliable or not", "genuine", "authentic", "legit", "legitimate",

	"should i join", "should i take admission", "worth joining",
	"worth it", "good college", "good institute", "right choice",

	"safe for girls", "safe for boys", "hostel safe", "hostel safety",
	"campus safety", "student safety",

	"degree valid", "degree value", "degree accepted", "future safe",
	"career safe",
}
