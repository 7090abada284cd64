package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_Classify(t *testing.T) {
	n := NewNormalizer()
	c := NewClassifier()

	tests := []struct {
		question string
		want     []Intent
	}{
		{"fees of btech cse", []Intent{IntentCourse}},
		{"btech cse vs it", []Intent{IntentComparison, IntentCourse}},
		{"compare aiml and ds placements", []Intent{IntentComparison, IntentCourse, IntentPlacement}},
		{"how to apply for admission", []Intent{IntentAdmission}},
		{"hostel and mess charges", []Intent{IntentFacility}},
		{"which clubs can I join", []Intent{IntentClub}},
		{"average package last year", []Intent{IntentPlacement}},
		{"tell me about NIET rankings", []Intent{IntentOverview}},
		{"random gibberish zzz", []Intent{IntentUnknown}},
	}

	for _, tc := range tests {
		t.Run(tc.question, func(t *testing.T) {
			got := c.Classify(n.Normalize(tc.question))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassifier_MultiIntentOrder(t *testing.T) {
	n := NewNormalizer()
	c := NewClassifier()

	// Course outranks placement regardless of token order in the query.
	got := c.Classify(n.Normalize("placement package of btech cse"))
	assert.Equal(t, []Intent{IntentCourse, IntentPlacement}, got)

	got = c.Classify(n.Normalize("btech placement"))
	assert.Equal(t, []Intent{IntentCourse, IntentPlacement}, got)

	// Admission plus facility.
	got = c.Classify(n.Normalize("hostel during admission"))
	assert.Equal(t, []Intent{IntentAdmission, IntentFacility}, got)
}

func TestIntent_String(t *testing.T) {
	assert.Equal(t, "course", IntentCourse.String())
	assert.Equal(t, "unknown", IntentUnknown.String())
	assert.Equal(t, "unknown", Intent(99).String())
}
