package routing

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nietlabs/answer-engine/internal/cache"
	"github.com/nietlabs/answer-engine/internal/genai"
	"github.com/nietlabs/answer-engine/internal/knowledge"
	"github.com/nietlabs/answer-engine/internal/observability"
	"github.com/nietlabs/answer-engine/internal/retrieval"
)

// Retriever is the vector fallback surface the engine depends on.
type Retriever interface {
	Retrieve(ctx context.Context, queryText, degree string) ([]retrieval.Hit, error)
	Threshold() float64
}

// Generator is the generative fallback surface the engine depends on.
type Generator interface {
	Generate(ctx context.Context, req genai.Request) (string, bool)
}

// intentCategories maps routable intents to the chunk category their
// matcher draws from.
var intentCategories = map[Intent]knowledge.Category{
	IntentCourse:    knowledge.CategoryCourse,
	IntentAdmission: knowledge.CategoryAdmission,
	IntentFacility:  knowledge.CategoryFacility,
	IntentClub:      knowledge.CategoryClub,
	IntentPlacement: knowledge.CategoryPlacement,
	IntentOverview:  knowledge.CategoryOverview,
}

// EngineConfig wires the engine's strategy chain and bounds.
type EngineConfig struct {
	Store           *knowledge.Store
	Retriever       Retriever
	Generator       Generator
	Cache           cache.Client
	CacheTTL        time.Duration
	Sessions        *Sessions
	MinLexicalScore int
	MaxHistory      int
	ContextSize     int
	SafetyGate      *SafetyGate
	Logger          *observability.Logger
	Metrics         *observability.Metrics
}

// Engine runs the full routing pipeline. Every call to Answer produces
// exactly one Answer; stage failures are logged and demoted to the next
// strategy, never returned to the caller.
type Engine struct {
	normalizer *Normalizer
	classifier *Classifier
	gate       *SafetyGate
	matchers   map[Intent]*Matcher
	retriever  Retriever
	generator  Generator
	cache      cache.Client
	cacheTTL   time.Duration
	sessions   *Sessions

	maxHistory  int
	contextSize int
	logger      *observability.Logger
	metrics     *observability.Metrics
	now         func() time.Time
}

// NewEngine builds the pipeline. Retriever, Generator and Cache may be nil;
// the corresponding stage is skipped.
func NewEngine(cfg EngineConfig) *Engine {
	gate := cfg.SafetyGate
	if gate == nil {
		gate = NewSafetyGate()
	}
	minScore := cfg.MinLexicalScore
	if minScore <= 0 {
		minScore = 2
	}
	maxHistory := cfg.MaxHistory
	if maxHistory <= 0 {
		maxHistory = 12
	}
	contextSize := cfg.ContextSize
	if contextSize <= 0 {
		contextSize = 3000
	}
	cacheTTL := cfg.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	logger := cfg.Logger
	if logger == nil {
		logger = observability.NopLogger()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = observability.NopMetrics()
	}

	matchers := make(map[Intent]*Matcher, len(intentCategories))
	for intent, cat := range intentCategories {
		matchers[intent] = NewMatcher(cfg.Store, cat, minScore)
	}

	return &Engine{
		normalizer:  NewNormalizer(),
		classifier:  NewClassifier(),
		gate:        gate,
		matchers:    matchers,
		retriever:   cfg.Retriever,
		generator:   cfg.Generator,
		cache:       cfg.Cache,
		cacheTTL:    cacheTTL,
		sessions:    cfg.Sessions,
		maxHistory:  maxHistory,
		contextSize: contextSize,
		logger:      logger.WithComponent("engine"),
		metrics:     metrics,
		now:         time.Now,
	}
}

// Answer routes one question. sessionID may be empty, in which case the
// request is stateless: no history, no follow-up carryover.
func (e *Engine) Answer(ctx context.Context, question, sessionID string) Answer {
	started := e.now()
	logger := e.logger.WithSession(sessionID)

	var sess *Session
	if e.sessions != nil && sessionID != "" {
		sess = e.sessions.Get(sessionID)
		e.metrics.SessionsActive.Set(float64(e.sessions.Len()))
	}

	answer, chunk, sig := e.route(ctx, question, sess, logger)

	if sess != nil {
		sess.Record(question, answer.Text, chunk, sig, e.maxHistory, e.now())
	}

	e.metrics.AnswersTotal.WithLabelValues(string(answer.Source), string(answer.Type)).Inc()
	e.metrics.StrategyLatency.WithLabelValues(string(answer.Source)).Observe(e.now().Sub(started).Seconds())
	logger.Info().
		Str("source", string(answer.Source)).
		Str("type", string(answer.Type)).
		Float64("score", answer.Score).
		Msg("query answered")
	return answer
}

// route runs the strategy chain and returns the answer plus the chunk that
// produced it, when one did.
func (e *Engine) route(ctx context.Context, question string, sess *Session, logger *observability.Logger) (Answer, *knowledge.Chunk, QuerySignals) {
	if verdict := e.gate.Check(question); verdict.Sensitive {
		if verdict.SafetyConfirmation {
			return PositiveSafetyAnswer(), nil, QuerySignals{}
		}
		return SensitiveRedirectAnswer(), nil, QuerySignals{}
	}

	q := e.normalizer.Normalize(question)
	sig := DetectSignals(q)

	if isGreeting(q) {
		return greetingAnswer(), nil, sig
	}
	if wantsSyllabus(q) {
		return syllabusAnswer(), nil, sig
	}
	if q.Empty() {
		return e.generative(ctx, question, "", sess), nil, sig
	}

	cacheable := e.selfContained(sig)
	if cacheable {
		if ans, ok := e.cachedAnswer(ctx, q); ok {
			return ans, nil, sig
		}
	}

	intents := e.classifier.Classify(q)

	// Comparison questions need synthesis across chunks, not a single
	// match: skip straight to retrieval plus generation.
	comparison := len(intents) > 0 && intents[0] == IntentComparison

	// Lexical pass, highest-priority intent first.
	for _, intent := range intents {
		if comparison {
			break
		}
		m, ok := e.matchers[intent]
		if !ok {
			continue
		}
		match, found := m.Best(q, sig)
		if !found {
			continue
		}
		ans := Answer{
			Type:   AnswerText,
			Text:   renderChunk(match.Chunk, match.Metric),
			Source: SourceLexical,
			Score:  float64(match.Score),
		}
		if cacheable {
			e.storeAnswer(ctx, q, ans)
		}
		return ans, match.Chunk, sig
	}

	// Elliptical follow-up: a bare metric question resolves against the
	// chunk that answered the previous turn.
	if !comparison && sig.Metric != MetricNone && sess != nil {
		if last, lastSig := sess.Carryover(); last != nil {
			merged := lastSig
			merged.Metric = sig.Metric
			return Answer{
				Type:   AnswerText,
				Text:   renderChunk(last, sig.Metric),
				Source: SourceLexical,
			}, last, merged
		}
	}

	// Vector fallback.
	var hits []retrieval.Hit
	if e.retriever != nil {
		var err error
		hits, err = e.retriever.Retrieve(ctx, q.Text, sig.Degree)
		if err != nil {
			logger.Warn().Err(err).Msg("vector retrieval failed, falling through")
			hits = nil
		}
		// Hits arrive best first. Anything below the confidence bar is
		// dropped here: it is neither an answer nor generation context.
		threshold := e.retriever.Threshold()
		for len(hits) > 0 && hits[len(hits)-1].Score < threshold {
			hits = hits[:len(hits)-1]
		}
		if !comparison && len(hits) > 0 {
			top := hits[0]
			ans := Answer{
				Type:   AnswerText,
				Text:   renderChunk(top.Chunk, sig.Metric),
				Source: SourceVector,
				Score:  top.Score,
			}
			if cacheable {
				e.storeAnswer(ctx, q, ans)
			}
			return ans, top.Chunk, sig
		}
	}

	// Generative fallback. Context holds only hits that cleared the
	// threshold; a query nothing in the corpus answers gets none.
	ctxBlock := retrieval.AssembleContext(hits, e.contextSize)
	return e.generative(ctx, question, ctxBlock, sess), nil, sig
}

func (e *Engine) generative(ctx context.Context, question, contextBlock string, sess *Session) Answer {
	if e.generator == nil {
		return Answer{
			Type:   AnswerText,
			Text:   "Please Visit Our Website For More Informations :- " + officialSiteURL,
			Source: SourceFallback,
		}
	}

	req := genai.Request{
		Question: question,
		Context:  contextBlock,
		Detailed: genai.WantsDetail(question),
	}
	if sess != nil {
		for _, t := range sess.Context() {
			req.History = append(req.History, genai.Turn{Question: t.Question, Answer: t.Answer})
		}
	}

	text, generated := e.generator.Generate(ctx, req)
	source := SourceGenerative
	if !generated {
		source = SourceFallback
	}
	return Answer{Type: AnswerText, Text: text, Source: source}
}

// selfContained reports whether the query carries enough signal to answer
// without session state. A bare metric question ("what about seats") is not;
// caching it would leak one conversation's subject into another.
func (e *Engine) selfContained(sig QuerySignals) bool {
	if sig.Metric == MetricNone {
		return true
	}
	return sig.Degree != "" || sig.Branch != ""
}

func (e *Engine) cachedAnswer(ctx context.Context, q Query) (Answer, bool) {
	if e.cache == nil {
		return Answer{}, false
	}
	raw, err := e.cache.Get(ctx, cache.Key("answer", q.Text))
	if err != nil {
		return Answer{}, false
	}
	var ans Answer
	if err := json.Unmarshal(raw, &ans); err != nil {
		return Answer{}, false
	}
	ans.Source = SourceCache
	return ans, true
}

func (e *Engine) storeAnswer(ctx context.Context, q Query, ans Answer) {
	if e.cache == nil {
		return
	}
	raw, err := json.Marshal(ans)
	if err != nil {
		return
	}
	if err := e.cache.Set(ctx, cache.Key("answer", q.Text), raw, e.cacheTTL); err != nil {
		e.logger.Debug().Err(err).Msg("answer cache write failed")
	}
}
