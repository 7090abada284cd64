package retrieval

import (
	"context"
	"errors"
	"fmt"

	"github.com/nietlabs/answer-engine/internal/embedding"
	"github.com/nietlabs/answer-engine/internal/observability"
)

// ErrDimensionMismatch is returned when the embedding backend produces a
// vector of a different width than the index. The request cannot be served
// by vector search; callers fall through to the next strategy.
var ErrDimensionMismatch = errors.New("embedding dimension does not match index")

// Retriever embeds a query and searches the index, applying the score
// threshold and an optional degree filter.
type Retriever struct {
	embedder  embedding.Embedder
	index     *Index
	topK      int
	threshold float64
	logger    *observability.Logger
}

// NewRetriever wires an embedder to an index. topK and threshold follow the
// configured retrieval bounds.
func NewRetriever(embedder embedding.Embedder, index *Index, topK int, threshold float64, logger *observability.Logger) *Retriever {
	if topK <= 0 {
		topK = 8
	}
	return &Retriever{
		embedder:  embedder,
		index:     index,
		topK:      topK,
		threshold: threshold,
		logger:    logger.WithComponent("retriever"),
	}
}

// Retrieve returns the top-K index hits for the query text, best first.
// Only hits at or above the score threshold are returned; low-similarity
// chunks never reach the caller, so a query the corpus cannot answer yields
// no hits at all. degree, when non-empty, drops hits whose chunk belongs to
// a different degree. A mismatched embedding width returns
// ErrDimensionMismatch.
func (r *Retriever) Retrieve(ctx context.Context, queryText, degree string) ([]Hit, error) {
	vec, err := r.embedder.EmbedSingle(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if len(vec) != r.index.Dimension() {
		r.logger.Error().
			Int("got", len(vec)).
			Int("want", r.index.Dimension()).
			Msg("embedding width disagrees with index")
		return nil, ErrDimensionMismatch
	}

	hits := r.index.Search(vec, r.topK)

	out := hits[:0]
	for _, h := range hits {
		if h.Score < r.threshold {
			break
		}
		if degree != "" && h.Chunk.Degree != "" && h.Chunk.Degree != degree {
			continue
		}
		out = append(out, h)
	}

	r.logger.Debug().
		Int("candidates", len(hits)).
		Int("kept", len(out)).
		Float64("threshold", r.threshold).
		Msg("vector search complete")
	return out, nil
}

// Threshold returns the configured minimum similarity.
func (r *Retriever) Threshold() float64 { return r.threshold }
