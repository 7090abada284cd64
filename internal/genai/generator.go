package genai

import (
	"context"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/nietlabs/answer-engine/internal/observability"
)

// overloadedAnswer is the terminal fallback when every backend fails. It is
// always returned, never an error: the routing contract guarantees one
// answer per request.
const overloadedAnswer = "Our system is currently experiencing high traffic. " +
	"Please try again in a few minutes or visit our website: https://www.niet.co.in/"

// Generator runs the backend chain: primary, then secondary, then the canned
// overload answer. Each backend sits behind its own circuit breaker so a
// flapping provider is skipped instead of paid for on every request.
type Generator struct {
	backends []breakerBackend
	maxChars int
	logger   *observability.Logger
	metrics  *observability.Metrics
}

type breakerBackend struct {
	backend Backend
	breaker *gobreaker.CircuitBreaker
}

// NewGenerator chains the given backends in order. Nil backends are skipped;
// a chain with no backends always answers with the overload message.
// maxChars bounds the final answer length, 0 disables truncation.
func NewGenerator(maxChars int, logger *observability.Logger, metrics *observability.Metrics, backends ...Backend) *Generator {
	g := &Generator{
		maxChars: maxChars,
		logger:   logger.WithComponent("generator"),
		metrics:  metrics,
	}
	for _, b := range backends {
		if b == nil {
			continue
		}
		g.backends = append(g.backends, breakerBackend{
			backend: b,
			breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
				Name:    b.Name(),
				Timeout: 30 * time.Second,
				ReadyToTrip: func(counts gobreaker.Counts) bool {
					return counts.ConsecutiveFailures >= 3
				},
			}),
		})
	}
	return g
}

// Generate produces one answer for the request. All backend failures are
// absorbed; the canned overload answer is the worst case. The second return
// reports whether any model produced the answer.
func (g *Generator) Generate(ctx context.Context, req Request) (string, bool) {
	prompt := BuildPrompt(req)

	for _, bb := range g.backends {
		result, err := bb.breaker.Execute(func() (interface{}, error) {
			return bb.backend.Generate(ctx, systemPrompt, prompt)
		})
		if err != nil {
			g.metrics.BackendFailures.WithLabelValues(bb.backend.Name()).Inc()
			g.logger.Warn().
				Err(err).
				Str("backend", bb.backend.Name()).
				Msg("generative backend failed, trying next")
			continue
		}
		answer := result.(string)
		if !req.Detailed {
			answer = truncate(answer, g.maxChars)
		}
		return answer, true
	}

	g.logger.Error().Msg("all generative backends failed")
	return overloadedAnswer, false
}

// truncate cuts the answer at a sentence boundary within maxChars, falling
// back to a word boundary when no sentence fits.
func truncate(s string, maxChars int) string {
	if maxChars <= 0 || len(s) <= maxChars {
		return s
	}
	cut := s[:maxChars]
	if i := strings.LastIndexAny(cut, ".!?"); i > 0 {
		return strings.TrimSpace(cut[:i+1])
	}
	if i := strings.LastIndexAny(cut, " \n"); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut)
}
