package routing

// Intent identifies a knowledge domain a query can be routed to. The numeric
// order is the routing priority: when a query signals several intents, lower
// values are attempted first.
type Intent int

const (
	// IntentComparison outranks everything routable: a comparison needs
	// synthesis over several chunks, so it skips the lexical matchers.
	IntentComparison Intent = iota
	IntentCourse
	IntentAdmission
	IntentFacility
	IntentClub
	IntentPlacement
	IntentOverview
	IntentUnknown
)

var intentNames = map[Intent]string{
	IntentComparison: "comparison",
	IntentCourse:     "course",
	IntentAdmission:  "admission",
	IntentFacility:   "facility",
	IntentClub:       "club",
	IntentPlacement:  "placement",
	IntentOverview:   "overview",
	IntentUnknown:    "unknown",
}

func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "unknown"
}

// intentTriggers maps each routable intent to the tokens that signal it.
// Tokens are matched against the normalized query, so multi-word phrases
// appear here in their post-synonym form.
var intentTriggers = map[Intent][]string{
	IntentComparison: {
		"vs", "versus", "compare", "comparison", "better", "difference",
		"instead",
	},
	IntentCourse: {
		"btech", "mtech", "bca", "mca", "mba", "course", "courses",
		"program", "programs", "programme", "programmes", "branch",
		"branches", "degree", "specialization", "specializations",
		"seats", "duration", "fees", "fee", "eligibility", "syllabus",
		"curriculum", "semester", "cse", "aiml", "ds", "cyber", "iot",
		"ece", "csbs", "vlsi", "bio", "mechanical",
	},
	IntentAdmission: {
		"admission", "admissions", "apply", "application",
		"direct_admission", "lateral_entry", "counselling",
		"counseling", "jee", "cuet", "uptac", "entrance", "cutoff",
		"enroll", "enrollment", "registration",
	},
	IntentFacility: {
		"hostel", "hostels", "library", "transport", "bus", "wifi",
		"canteen", "cafeteria", "mess", "gym", "sports", "lab", "labs",
		"facility", "facilities", "infrastructure", "auditorium",
		"medical", "accommodation",
	},
	IntentClub: {
		"club", "clubs", "society", "societies", "kathputliyaan",
		"fest", "fests", "event", "events", "cultural", "technical",
		"dance", "music", "drama", "robotics", "coding",
	},
	IntentPlacement: {
		"placement", "placements", "package", "packages", "salary",
		"ctc", "recruiter", "recruiters", "internship", "internships",
		"companies", "hiring", "placed", "lpa",
	},
	IntentOverview: {
		"niet", "college", "campus", "ranking", "rankings", "naac",
		"nba", "nirf", "accreditation", "affiliation", "aktu",
		"location", "address", "contact", "history", "established",
	},
}

// Classifier assigns priority-ordered intents to a normalized query.
type Classifier struct {
	triggers map[string][]Intent
}

// NewClassifier builds the token-to-intent index.
func NewClassifier() *Classifier {
	idx := make(map[string][]Intent)
	for intent, tokens := range intentTriggers {
		for _, tok := range tokens {
			idx[tok] = append(idx[tok], intent)
		}
	}
	return &Classifier{triggers: idx}
}

// Classify returns every intent the query signals, ordered by routing
// priority. A query with no trigger tokens yields [IntentUnknown].
func (c *Classifier) Classify(q Query) []Intent {
	seen := make(map[Intent]struct{})
	for _, tok := range q.Tokens {
		for _, intent := range c.triggers[tok] {
			seen[intent] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return []Intent{IntentUnknown}
	}
	out := make([]Intent, 0, len(seen))
	for i := IntentComparison; i < IntentUnknown; i++ {
		if _, ok := seen[i]; ok {
			out = append(out, i)
		}
	}
	return out
}
