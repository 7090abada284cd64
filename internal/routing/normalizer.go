// Package routing implements the query decision pipeline: safety gate, intent
// classification, lexical matching and the fallback orchestrator.
package routing

import (
	"regexp"
	"sort"
	"strings"
)

// Query is the normalized form of a raw user question. It is created per
// request and never persisted.
type Query struct {
	Raw    string
	Text   string
	Tokens []string

	tokenSet map[string]struct{}
}

// Has reports whether the query contains the given token.
func (q Query) Has(token string) bool {
	_, ok := q.tokenSet[token]
	return ok
}

// Empty reports whether normalization yielded no usable tokens.
func (q Query) Empty() bool {
	return len(q.Tokens) == 0
}

// Normalizer canonicalizes raw query text: casing, synonym substitution,
// punctuation stripping and stop-word removal. Normalization is deterministic
// and idempotent.
type Normalizer struct {
	synonyms  []synonymRule
	stopWords map[string]struct{}
}

type synonymRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// synonymTable maps query phrasing to the canonical vocabulary used in chunk
// metadata. Longer phrases are substituted first so "artificial intelligence
// and machine learning" wins over "artificial intelligence".
var synonymTable = map[string]string{
	"b.tech":                            "btech",
	"b tech":                            "btech",
	"m.tech":                            "mtech",
	"m tech":                            "mtech",
	"master of technology":              "mtech",
	"bachelor of computer applications": "bca",
	"master of computer applications":   "mca",
	"master of computer application":    "mca",
	"master of business administration": "mba",
	"management quota":                  "direct_admission",
	"direct admission":                  "direct_admission",
	"lateral entry":                     "lateral_entry",
	"artificial intelligence and machine learning": "aiml",
	"ai ml":                                     "aiml",
	"ai & ml":                                   "aiml",
	"artificial intelligence":                   "ai",
	"machine learning":                          "ml",
	"data science":                              "ds",
	"cyber security":                            "cyber",
	"internet of things":                        "iot",
	"computer science and business systems":     "csbs",
	"computer science engineering":              "cse",
	"computer science":                          "cse",
	"information technology":                    "it",
	"electronics and communication engineering": "ece",
	"electronics and communication":             "ece",
	"mechanical engineering":                    "mechanical",
	"biotechnology":                             "bio",
	"biotech":                                   "bio",
	"vlsi design and technology":                "vlsi",
	"vlsi design":                               "vlsi",
	"working professionals":                     "working_professional",
	"working professional":                      "working_professional",
	"kathputliyan":                              "kathputliyaan",
	"katputliyan":                               "kathputliyaan",
	"&":                                         "and",
}

// stopWordList carries no matching signal and is removed after substitution.
var stopWordList = []string{
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to",
	"for", "of", "with", "by", "from", "is", "are", "was", "were",
	"be", "been", "being", "have", "has", "had", "do", "does", "did",
	"will", "would", "should", "could", "may", "might", "must", "can",
	"what", "which", "who", "where", "when", "how", "about", "tell",
	"me", "my", "i", "you", "we", "your", "our", "their", "this",
	"that", "these", "those", "please", "give", "want", "know",
}

var nonTokenRe = regexp.MustCompile(`[^a-z0-9_\s]+`)
var spaceRe = regexp.MustCompile(`\s+`)

// NewNormalizer builds a normalizer with the domain synonym table and
// stop-word set.
func NewNormalizer() *Normalizer {
	phrases := make([]string, 0, len(synonymTable))
	for p := range synonymTable {
		phrases = append(phrases, p)
	}
	// Longest-match-first; ties broken lexically for determinism.
	sort.Slice(phrases, func(i, j int) bool {
		if len(phrases[i]) != len(phrases[j]) {
			return len(phrases[i]) > len(phrases[j])
		}
		return phrases[i] < phrases[j]
	})

	rules := make([]synonymRule, 0, len(phrases))
	for _, p := range phrases {
		pat := regexp.QuoteMeta(p)
		if p != "&" {
			pat = `\b` + pat + `\b`
		}
		rules = append(rules, synonymRule{
			pattern:     regexp.MustCompile(pat),
			replacement: synonymTable[p],
		})
	}

	stop := make(map[string]struct{}, len(stopWordList))
	for _, w := range stopWordList {
		stop[w] = struct{}{}
	}

	return &Normalizer{synonyms: rules, stopWords: stop}
}

// Normalize canonicalizes raw text into a Query. Empty or non-text input
// yields an empty token set, never an error.
func (n *Normalizer) Normalize(raw string) Query {
	text := strings.ToLower(strings.TrimSpace(raw))

	for _, rule := range n.synonyms {
		text = rule.pattern.ReplaceAllString(text, rule.replacement)
	}

	text = nonTokenRe.ReplaceAllString(text, " ")
	text = spaceRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	tokens := make([]string, 0, 8)
	set := make(map[string]struct{}, 8)
	for _, tok := range strings.Fields(text) {
		if _, stop := n.stopWords[tok]; stop {
			continue
		}
		if _, seen := set[tok]; seen {
			continue
		}
		set[tok] = struct{}{}
		tokens = append(tokens, tok)
	}

	return Query{
		Raw:      raw,
		Text:     strings.Join(tokens, " "),
		Tokens:   tokens,
		tokenSet: set,
	}
}
