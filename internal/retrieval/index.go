// Package retrieval implements the vector fallback: an in-memory cosine
// index over chunk embeddings, searched when lexical matching comes up empty.
package retrieval

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/nietlabs/answer-engine/internal/knowledge"
	"github.com/nietlabs/answer-engine/internal/observability"
)

type indexEntry struct {
	chunk *knowledge.Chunk
	vec   []float32
	norm  float32
}

// Index is an immutable in-memory vector index. Vectors and chunk metadata
// are stored in two parallel JSON files and correspond by ordinal position.
type Index struct {
	entries   []indexEntry
	dimension int
	skipped   int
}

// LoadIndex reads the vector and metadata files. Records that cannot be
// paired, have an empty vector or disagree on dimension are skipped with a
// warning; only an unreadable file is an error. The index dimension is fixed
// by the first usable vector.
func LoadIndex(vectorsPath, metadataPath string, logger *observability.Logger) (*Index, error) {
	rawVecs, err := os.ReadFile(vectorsPath)
	if err != nil {
		return nil, fmt.Errorf("reading vectors: %w", err)
	}
	var vectors [][]float32
	if err := json.Unmarshal(rawVecs, &vectors); err != nil {
		return nil, fmt.Errorf("parsing vectors: %w", err)
	}

	rawMeta, err := os.ReadFile(metadataPath)
	if err != nil {
		return nil, fmt.Errorf("reading metadata: %w", err)
	}
	var chunks []knowledge.Chunk
	if err := json.Unmarshal(rawMeta, &chunks); err != nil {
		return nil, fmt.Errorf("parsing metadata: %w", err)
	}

	idx := &Index{}
	n := len(vectors)
	if len(chunks) != n {
		logger.Warn().
			Int("vectors", len(vectors)).
			Int("metadata", len(chunks)).
			Msg("vector and metadata counts differ, pairing by position up to the shorter")
		if len(chunks) < n {
			n = len(chunks)
		}
		idx.skipped += abs(len(vectors) - len(chunks))
	}

	for i := 0; i < n; i++ {
		vec := vectors[i]
		c := chunks[i]
		if len(vec) == 0 || c.Text == "" {
			idx.skipped++
			continue
		}
		if idx.dimension == 0 {
			idx.dimension = len(vec)
		}
		if len(vec) != idx.dimension {
			logger.Warn().
				Int("position", i).
				Int("got", len(vec)).
				Int("want", idx.dimension).
				Msg("skipping vector with unexpected dimension")
			idx.skipped++
			continue
		}
		cc := c
		idx.entries = append(idx.entries, indexEntry{
			chunk: &cc,
			vec:   vec,
			norm:  vectorNorm(vec),
		})
	}

	if len(idx.entries) == 0 {
		return nil, fmt.Errorf("index is empty after loading %s", vectorsPath)
	}

	logger.Info().
		Int("entries", len(idx.entries)).
		Int("skipped", idx.skipped).
		Int("dimension", idx.dimension).
		Msg("vector index loaded")
	return idx, nil
}

// NewIndex builds an index directly from chunks and their vectors, paired by
// position. Used by tests and the index builder.
func NewIndex(chunks []knowledge.Chunk, vectors [][]float32) (*Index, error) {
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("chunk/vector count mismatch: %d vs %d", len(chunks), len(vectors))
	}
	idx := &Index{}
	for i := range chunks {
		if len(vectors[i]) == 0 {
			continue
		}
		if idx.dimension == 0 {
			idx.dimension = len(vectors[i])
		}
		if len(vectors[i]) != idx.dimension {
			return nil, fmt.Errorf("vector %d has dimension %d, want %d", i, len(vectors[i]), idx.dimension)
		}
		cc := chunks[i]
		idx.entries = append(idx.entries, indexEntry{
			chunk: &cc,
			vec:   vectors[i],
			norm:  vectorNorm(vectors[i]),
		})
	}
	if len(idx.entries) == 0 {
		return nil, fmt.Errorf("no usable vectors")
	}
	return idx, nil
}

// Hit is one scored index entry.
type Hit struct {
	Chunk *knowledge.Chunk
	Score float64
}

// Search returns the k nearest entries to query by cosine similarity, best
// first. The query vector must match the index dimension.
func (idx *Index) Search(query []float32, k int) []Hit {
	if len(query) != idx.dimension || k <= 0 {
		return nil
	}
	qnorm := vectorNorm(query)
	if qnorm == 0 {
		return nil
	}

	hits := make([]Hit, 0, len(idx.entries))
	for _, e := range idx.entries {
		if e.norm == 0 {
			continue
		}
		hits = append(hits, Hit{
			Chunk: e.chunk,
			Score: float64(dot(query, e.vec)) / float64(qnorm*e.norm),
		})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}

// Dimension returns the vector width the index was built with.
func (idx *Index) Dimension() int { return idx.dimension }

// Len returns the number of searchable entries.
func (idx *Index) Len() int { return len(idx.entries) }

// Skipped returns the number of records dropped during load.
func (idx *Index) Skipped() int { return idx.skipped }

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func vectorNorm(v []float32) float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return float32(math.Sqrt(sum))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
