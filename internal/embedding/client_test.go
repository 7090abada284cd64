package embedding

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEmbedder_Deterministic(t *testing.T) {
	m := NewMockEmbedder(16)
	ctx := context.Background()

	a, err := m.EmbedSingle(ctx, "seats in btech cse")
	require.NoError(t, err)
	b, err := m.EmbedSingle(ctx, "seats in btech cse")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 16)

	c, err := m.EmbedSingle(ctx, "hostel fees")
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestMockEmbedder_UnitNorm(t *testing.T) {
	m := NewMockEmbedder(32)

	vec, err := m.EmbedSingle(context.Background(), "placement package aiml")
	require.NoError(t, err)

	var norm float64
	for _, x := range vec {
		norm += float64(x) * float64(x)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-5)
}

func TestMockEmbedder_Batch(t *testing.T) {
	m := NewMockEmbedder(8)

	vecs, err := m.Embed(context.Background(), []string{"one", "two", "three"})
	require.NoError(t, err)
	require.Len(t, vecs, 3)
	for _, v := range vecs {
		assert.Len(t, v, 8)
	}

	assert.Equal(t, "mock-embedding-model", m.Model())
	assert.Equal(t, 8, m.Dimension())
}
