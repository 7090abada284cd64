package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizer_Normalize(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"lowercase and punctuation", "What is NIET?", "niet"},
		{"btech dotted form", "B.Tech CSE fees", "btech cse fees"},
		{"btech spaced form", "b tech admission", "btech admission"},
		{"branch phrase", "computer science seats", "cse seats"},
		{"specialization phrase", "artificial intelligence and machine learning", "aiml"},
		{"longest phrase wins", "artificial intelligence course", "ai course"},
		{"management quota", "admission through management quota", "admission through direct_admission"},
		{"ampersand", "hostel & mess", "hostel mess"},
		{"stop words removed", "tell me about the placements", "placements"},
		{"working professional", "btech for working professionals", "btech working_professional"},
		{"club spelling", "katputliyan club auditions", "kathputliyaan club auditions"},
		{"empty", "", ""},
		{"only stop words", "what is the", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := n.Normalize(tc.raw)
			assert.Equal(t, tc.want, q.Text)
			assert.Equal(t, tc.raw, q.Raw)
		})
	}
}

func TestNormalizer_Idempotent(t *testing.T) {
	n := NewNormalizer()

	inputs := []string{
		"What is the fee for B.Tech CSE AIML?",
		"computer science and business systems seats",
		"is NIET good for data science",
		"hostel & transport facilities!!",
		"admission via management quota for working professionals",
	}

	for _, raw := range inputs {
		once := n.Normalize(raw)
		twice := n.Normalize(once.Text)
		assert.Equal(t, once.Text, twice.Text, "normalization must be idempotent for %q", raw)
	}
}

func TestNormalizer_TokenDedup(t *testing.T) {
	n := NewNormalizer()

	q := n.Normalize("fees fees fees of btech")
	assert.Equal(t, []string{"fees", "btech"}, q.Tokens)
	assert.True(t, q.Has("btech"))
	assert.False(t, q.Has("mtech"))
}

func TestNormalizer_EmptyQuery(t *testing.T) {
	n := NewNormalizer()

	assert.True(t, n.Normalize("").Empty())
	assert.True(t, n.Normalize("???!!!").Empty())
	assert.False(t, n.Normalize("placements").Empty())
}
