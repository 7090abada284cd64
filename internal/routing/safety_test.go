package routing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafetyGate_Check(t *testing.T) {
	g := NewSafetyGate()

	tests := []struct {
		name         string
		query        string
		sensitive    bool
		confirmation bool
	}{
		{"plain course query", "fees of btech cse", false, false},
		{"closure rumor", "is the college going to shut down", true, false},
		{"legal trouble", "any police case against NIET", true, false},
		{"fraud check", "is NIET a fraud college", true, false},
		{"news digging", "latest news about NIET", true, false},
		{"safety reassurance", "is NIET safe for girls", true, true},
		{"trust reassurance", "is NIET a trusted college", true, true},
		{"worth joining", "is it worth joining NIET", true, true},
		{"degree validity", "is the degree valid", true, true},
		{"case insensitive", "IS NIET SAFE?", true, true},
		{"accusatory and reassuring", "is it safe or is NIET a scam college", true, true},
		{"empty", "", false, false},
		{"whitespace only", "   ", false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := g.Check(tc.query)
			assert.Equal(t, tc.sensitive, v.Sensitive)
			assert.Equal(t, tc.confirmation, v.SafetyConfirmation)
		})
	}
}

func TestSafetyGate_ReassurancePrecedence(t *testing.T) {
	g := NewSafetyGate()

	// A reassurance phrase wins even when an accusatory phrase is also
	// present: the student gets the factual safety statement, not the
	// redirect.
	v := g.Check("is NIET a fraud college or is it safe")
	assert.True(t, v.Sensitive)
	assert.True(t, v.SafetyConfirmation)

	// Neither taxonomy fires on an ordinary facility query.
	v = g.Check("library opening hours")
	assert.False(t, v.Sensitive)
	assert.False(t, v.SafetyConfirmation)
}

func TestLoadSafetyGate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taxonomy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sensitive:
  - "strike"
safety_positive:
  - "strike resolved"
`), 0o644))

	g, err := LoadSafetyGate(path)
	require.NoError(t, err)

	assert.True(t, g.Check("is there a strike").Sensitive)
	assert.True(t, g.Check("was the strike resolved").SafetyConfirmation)
	// Default phrases are replaced, not merged.
	assert.False(t, g.Check("police case").Sensitive)
}

func TestLoadSafetyGate_MissingFile(t *testing.T) {
	_, err := LoadSafetyGate(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSafetyAnswers(t *testing.T) {
	pos := PositiveSafetyAnswer()
	assert.Equal(t, AnswerPositiveSensitive, pos.Type)
	assert.NotEmpty(t, pos.Details)
	assert.Len(t, pos.Actions, 2)

	red := SensitiveRedirectAnswer()
	assert.Equal(t, AnswerSensitiveRedirect, red.Type)
	assert.Empty(t, red.Details)
	assert.Len(t, red.Actions, 2)
}
