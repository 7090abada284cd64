package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nietlabs/answer-engine/internal/knowledge"
)

func testCourseChunks() []knowledge.Chunk {
	return []knowledge.Chunk{
		{
			ID: "c1", Category: knowledge.CategoryCourse,
			Degree: "btech", Branch: "cse", ProgramType: knowledge.ProgramRegular,
			Topic: "BTech CSE", Text: "Four year computer science program.",
			Keywords:   []string{"btech", "cse", "seats", "fees"},
			Properties: map[string]string{"seats": "420", "duration": "4 years"},
		},
		{
			ID: "c2", Category: knowledge.CategoryCourse,
			Degree: "btech", Branch: "cse", Specialization: "aiml", ProgramType: knowledge.ProgramRegular,
			Topic: "BTech CSE AIML", Text: "CSE with machine learning specialization.",
			Keywords:   []string{"btech", "cse", "aiml", "placements"},
			Properties: map[string]string{"seats": "180", "average_package": "6 LPA", "highest_package": "54 LPA"},
		},
		{
			ID: "c3", Category: knowledge.CategoryCourse,
			Degree: "mtech", Branch: "cse", ProgramType: knowledge.ProgramRegular,
			Topic: "MTech CSE", Text: "Postgraduate computer science program.",
			Keywords: []string{"mtech", "cse"},
		},
		{
			ID: "c4", Category: knowledge.CategoryCourse,
			Degree: "mtech", Branch: "cse", ProgramType: knowledge.ProgramIntegrated,
			Topic: "MTech CSE Integrated", Text: "Integrated five year program.",
			Keywords: []string{"mtech", "cse", "integrated"},
		},
		{
			ID: "c5", Category: knowledge.CategoryCourse,
			Degree: "btech", Branch: "it", ProgramType: knowledge.ProgramRegular,
			Topic: "BTech IT", Text: "Information technology program.",
			Keywords: []string{"btech", "it"},
		},
	}
}

func testClubChunks() []knowledge.Chunk {
	return []knowledge.Chunk{
		{
			ID: "k1", Category: knowledge.CategoryClub,
			Topic: "Kathputliyaan Theatre Club", Text: "The campus theatre society.",
			Keywords: []string{"kathputliyaan", "theatre", "drama", "club"},
		},
		{
			ID: "k2", Category: knowledge.CategoryClub,
			Topic: "Harmonics Music Club", Text: "The campus music society.",
			Keywords: []string{"harmonics", "music", "club"},
		},
	}
}

func TestDetectSignals(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		query string
		want  QuerySignals
	}{
		{"fees of btech cse", QuerySignals{Degree: "btech", Branch: "cse", Metric: MetricFees}},
		{"seats in btech cse aiml", QuerySignals{Degree: "btech", Branch: "cse", Specialization: "aiml", Metric: MetricSeats}},
		{"data science placements", QuerySignals{Branch: "cse", Specialization: "ds", Metric: MetricPlacement}},
		{"mtech for working professionals", QuerySignals{Degree: "mtech", ProgramType: knowledge.ProgramWorkingProfessional}},
		{"hostel facilities", QuerySignals{}},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			got := DetectSignals(n.Normalize(tc.query))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMatcher_BranchAndSpecializationFilter(t *testing.T) {
	n := NewNormalizer()
	store := knowledge.NewStore(testCourseChunks())
	m := NewMatcher(store, knowledge.CategoryCourse, 2)

	// Specialization narrows to the aiml chunk, not the generic CSE one.
	q := n.Normalize("btech cse aiml placements")
	match, ok := m.Best(q, DetectSignals(q))
	require.True(t, ok)
	assert.Equal(t, "c2", match.Chunk.ID)
	assert.Equal(t, MetricPlacement, match.Metric)

	// A different branch never matches.
	q = n.Normalize("btech it seats")
	match, ok = m.Best(q, DetectSignals(q))
	require.True(t, ok)
	assert.Equal(t, "c5", match.Chunk.ID)
}

func TestMatcher_ProgramTypeTieBreak(t *testing.T) {
	n := NewNormalizer()
	store := knowledge.NewStore(testCourseChunks())
	m := NewMatcher(store, knowledge.CategoryCourse, 2)

	// "mtech cse" overlaps both the regular and the integrated chunk
	// equally; the regular one wins.
	q := n.Normalize("mtech cse")
	match, ok := m.Best(q, DetectSignals(q))
	require.True(t, ok)
	assert.Equal(t, "c3", match.Chunk.ID)

	// Naming the variant flips the choice.
	q = n.Normalize("mtech cse integrated")
	match, ok = m.Best(q, DetectSignals(q))
	require.True(t, ok)
	assert.Equal(t, "c4", match.Chunk.ID)
}

func TestMatcher_MinScore(t *testing.T) {
	n := NewNormalizer()
	store := knowledge.NewStore(testCourseChunks())

	q := n.Normalize("btech")
	sig := DetectSignals(q)

	loose := NewMatcher(store, knowledge.CategoryCourse, 1)
	_, ok := loose.Best(q, sig)
	assert.True(t, ok)

	// Raising the minimum score never accepts what was rejected.
	strict := NewMatcher(store, knowledge.CategoryCourse, 4)
	_, ok = strict.Best(q, sig)
	assert.False(t, ok)
}

func TestMatcher_TextTokens(t *testing.T) {
	n := NewNormalizer()
	store := knowledge.NewStore([]knowledge.Chunk{
		{
			ID: "f1", Category: knowledge.CategoryFacility,
			Topic: "Central Library",
			Text:  "The central library has digital journals and a reading hall.",
		},
	})
	m := NewMatcher(store, knowledge.CategoryFacility, 2)

	// No curated keywords; the words live only in the chunk body.
	q := n.Normalize("library reading hall")
	match, ok := m.Best(q, DetectSignals(q))
	require.True(t, ok)
	assert.Equal(t, "f1", match.Chunk.ID)
}

func TestMatcher_FuzzyKeyword(t *testing.T) {
	n := NewNormalizer()
	store := knowledge.NewStore(testClubChunks())
	m := NewMatcher(store, knowledge.CategoryClub, 2)

	// Both words misspelled, so nothing matches exactly and the fuzzy
	// pass runs: "harmonix" and "musik" each sit within two edits of a
	// keyword.
	q := n.Normalize("harmonix musik")
	match, ok := m.Best(q, DetectSignals(q))
	require.True(t, ok)
	assert.Equal(t, "k2", match.Chunk.ID)

	// An exact overlap turns the fuzzy pass off, so the misspelled word
	// adds nothing: "club" alone scores 3 and a minimum of 4 rejects it.
	strict := NewMatcher(store, knowledge.CategoryClub, 4)
	q = n.Normalize("harmonix club")
	_, ok = strict.Best(q, DetectSignals(q))
	assert.False(t, ok)
}

func TestMatcher_NoCandidates(t *testing.T) {
	n := NewNormalizer()
	store := knowledge.NewStore(testCourseChunks())
	m := NewMatcher(store, knowledge.CategoryFacility, 2)

	q := n.Normalize("hostel wifi")
	_, ok := m.Best(q, DetectSignals(q))
	assert.False(t, ok)
}
