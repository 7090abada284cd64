package routing

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/nietlabs/answer-engine/internal/knowledge"
)

// Metric is a specific attribute of a chunk the user asked about. When a
// metric is detected the answer is narrowed to that attribute instead of the
// full chunk text.
type Metric string

const (
	MetricNone        Metric = ""
	MetricSeats       Metric = "seats"
	MetricDuration    Metric = "duration"
	MetricEligibility Metric = "eligibility"
	MetricFees        Metric = "fees"
	MetricPlacement   Metric = "placement"
)

// metricTriggers maps query tokens to the metric they request.
var metricTriggers = map[string]Metric{
	"seat":        MetricSeats,
	"seats":       MetricSeats,
	"intake":      MetricSeats,
	"duration":    MetricDuration,
	"year":        MetricDuration,
	"years":       MetricDuration,
	"long":        MetricDuration,
	"eligibility": MetricEligibility,
	"eligible":    MetricEligibility,
	"criteria":    MetricEligibility,
	"fee":         MetricFees,
	"fees":        MetricFees,
	"cost":        MetricFees,
	"tuition":     MetricFees,
	"placement":   MetricPlacement,
	"placements":  MetricPlacement,
	"package":     MetricPlacement,
	"packages":    MetricPlacement,
	"salary":      MetricPlacement,
	"ctc":         MetricPlacement,
}

// branchAliases maps alias tokens (post-normalization) to canonical branch
// codes used in chunk metadata.
var branchAliases = map[string]string{
	"cse":         "cse",
	"cs":          "cse",
	"ece":         "ece",
	"electronics": "ece",
	"it":          "it",
	"mechanical":  "me",
	"bio":         "bio",
	"vlsi":        "vlsi",
	"csbs":        "csbs",
	"bca":         "bca",
	"mca":         "mca",
	"mba":         "mba",
}

// specializationAliases maps alias tokens to canonical specialization codes.
var specializationAliases = map[string]string{
	"aiml":  "aiml",
	"ai":    "ai",
	"ml":    "aiml",
	"ds":    "ds",
	"cyber": "cy",
	"cy":    "cy",
	"iot":   "iot",
}

// cseSpecializations are offered only under the CSE branch; naming one
// implies the branch when the query omits it.
var cseSpecializations = map[string]struct{}{
	"aiml": {}, "ai": {}, "ds": {}, "cy": {}, "iot": {},
}

var degreeTokens = map[string]string{
	"btech": "btech",
	"mtech": "mtech",
	"bca":   "bca",
	"mca":   "mca",
	"mba":   "mba",
}

var programTypeTokens = map[string]knowledge.ProgramType{
	"working_professional": knowledge.ProgramWorkingProfessional,
	"integrated":           knowledge.ProgramIntegrated,
	"twinning":             knowledge.ProgramTwinning,
	"international":        knowledge.ProgramTwinning,
	"regular":              knowledge.ProgramRegular,
}

// programTypePriority orders candidates when the query does not name a
// program type. Regular programs are what a prospective student means by
// default; variants only win when asked for.
var programTypePriority = map[knowledge.ProgramType]int{
	knowledge.ProgramRegular:             3,
	knowledge.ProgramWorkingProfessional: 2,
	knowledge.ProgramIntegrated:          1,
	knowledge.ProgramTwinning:            0,
}

// QuerySignals are the structured attributes detected in a query. Zero values
// mean the attribute was not mentioned.
type QuerySignals struct {
	Degree         string
	Branch         string
	Specialization string
	ProgramType    knowledge.ProgramType
	Metric         Metric
}

// DetectSignals extracts degree, branch, specialization, program type and
// metric tokens from the normalized query.
func DetectSignals(q Query) QuerySignals {
	var s QuerySignals
	for _, tok := range q.Tokens {
		if s.Degree == "" {
			if d, ok := degreeTokens[tok]; ok {
				s.Degree = d
			}
		}
		if s.Branch == "" {
			if b, ok := branchAliases[tok]; ok {
				s.Branch = b
			}
		}
		if s.Specialization == "" {
			if sp, ok := specializationAliases[tok]; ok {
				s.Specialization = sp
			}
		}
		if s.ProgramType == "" {
			if pt, ok := programTypeTokens[tok]; ok {
				s.ProgramType = pt
			}
		}
		if s.Metric == MetricNone {
			if m, ok := metricTriggers[tok]; ok {
				s.Metric = m
			}
		}
	}
	if s.Branch == "" && s.Specialization != "" {
		if _, ok := cseSpecializations[s.Specialization]; ok {
			s.Branch = "cse"
		}
	}
	return s
}

// Match is a lexical hit against one chunk.
type Match struct {
	Chunk  *knowledge.Chunk
	Score  int
	Metric Metric
}

// Matcher scores the chunks of one category by token overlap. One Matcher
// instance serves one knowledge domain; all domains share the scoring rules.
type Matcher struct {
	store    *knowledge.Store
	category knowledge.Category
	minScore int

	// filter, when set, restricts candidates before scoring. Used by the
	// course domain to enforce branch and specialization agreement.
	filter func(sig QuerySignals, c *knowledge.Chunk) bool
}

// NewMatcher builds a matcher over one chunk category. minScore is the
// overlap below which a match is rejected and routing falls through.
func NewMatcher(store *knowledge.Store, cat knowledge.Category, minScore int) *Matcher {
	m := &Matcher{store: store, category: cat, minScore: minScore}
	if cat == knowledge.CategoryCourse {
		m.filter = courseFilter
	}
	return m
}

// courseFilter enforces branch and specialization agreement: a query naming
// a branch never matches a chunk from another branch.
func courseFilter(sig QuerySignals, c *knowledge.Chunk) bool {
	if sig.Degree != "" && c.Degree != "" && sig.Degree != c.Degree {
		return false
	}
	if sig.Branch != "" && c.Branch != "" && sig.Branch != c.Branch {
		return false
	}
	if sig.Specialization != "" && c.Specialization != "" && sig.Specialization != c.Specialization {
		return false
	}
	return true
}

// Best returns the highest-scoring chunk for the query, or ok=false when no
// chunk clears the minimum score. Ties are broken by program-type priority
// unless the query names a program type, in which case only chunks of that
// type compete and ties keep store order.
func (m *Matcher) Best(q Query, sig QuerySignals) (Match, bool) {
	candidates := m.store.ByCategory(m.category)

	best := Match{Score: -1, Metric: sig.Metric}
	bestPriority := -1

	for _, c := range candidates {
		if sig.ProgramType != "" && c.ProgramType != "" && c.ProgramType != sig.ProgramType {
			continue
		}
		if m.filter != nil && !m.filter(sig, c) {
			continue
		}

		score := m.score(q, c)

		priority := 0
		if sig.ProgramType == "" {
			priority = programTypePriority[c.ProgramType]
		}

		if score > best.Score || (score == best.Score && priority > bestPriority) {
			best.Chunk = c
			best.Score = score
			bestPriority = priority
		}
	}

	if best.Chunk == nil || best.Score < m.minScore {
		return Match{}, false
	}
	return best, true
}

// score counts query tokens present in the chunk's keywords, body text,
// topic and structured fields. A topic hit counts double. Only when no
// token matches exactly does a fuzzy pass run, scoring one point per token
// within edit distance 2 of a keyword, which rescues misspelled proper
// nouns such as club names.
func (m *Matcher) score(q Query, c *knowledge.Chunk) int {
	kw := make(map[string]struct{}, len(c.Keywords)+8)
	for _, k := range c.Keywords {
		kw[strings.ToLower(k)] = struct{}{}
	}
	for _, f := range []string{c.Degree, c.Branch, c.Specialization} {
		if f != "" {
			kw[strings.ToLower(f)] = struct{}{}
		}
	}
	for _, t := range strings.Fields(nonTokenRe.ReplaceAllString(strings.ToLower(c.Text), " ")) {
		kw[t] = struct{}{}
	}

	topicTokens := make(map[string]struct{})
	for _, t := range strings.Fields(strings.ToLower(c.Topic)) {
		topicTokens[t] = struct{}{}
	}

	score := 0
	for _, tok := range q.Tokens {
		if _, ok := kw[tok]; ok {
			score++
		}
		if _, ok := topicTokens[tok]; ok {
			score += 2
		}
	}
	if score > 0 {
		return score
	}

	for _, tok := range q.Tokens {
		if m.fuzzyHit(tok, c.Keywords) {
			score++
		}
	}
	return score
}

// fuzzyHit reports whether tok is within edit distance 2 of any keyword.
// Short tokens are excluded; at that length edit distance 2 matches almost
// anything.
func (m *Matcher) fuzzyHit(tok string, keywords []string) bool {
	if len(tok) < 5 {
		return false
	}
	for _, k := range keywords {
		k = strings.ToLower(k)
		if len(k) < 5 {
			continue
		}
		if levenshtein.ComputeDistance(tok, k) <= 2 {
			return true
		}
	}
	return false
}
