package routing

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/nietlabs/answer-engine/internal/knowledge"
)

// Turn is one question/answer exchange kept in conversation history.
type Turn struct {
	Question string
	Answer   string
	At       time.Time
}

// Session carries the per-conversation state that elliptical follow-ups
// ("what about seats?") resolve against. All fields are guarded by mu.
type Session struct {
	mu sync.Mutex

	ID        string
	History   []Turn
	LastChunk *knowledge.Chunk
	LastSig   QuerySignals
	touched   time.Time
}

// Sessions is a bounded, TTL-expiring store of conversation state. Capacity
// eviction drops the least recently used session; an expired session is
// replaced by a fresh one on next access.
type Sessions struct {
	cache      *lru.Cache[string, *Session]
	ttl        time.Duration
	maxHistory int
	now        func() time.Time
}

// NewSessions builds a session store. maxSessions and maxHistory must be
// positive; ttl of zero disables expiry.
func NewSessions(maxSessions, maxHistory int, ttl time.Duration) (*Sessions, error) {
	cache, err := lru.New[string, *Session](maxSessions)
	if err != nil {
		return nil, err
	}
	return &Sessions{
		cache:      cache,
		ttl:        ttl,
		maxHistory: maxHistory,
		now:        time.Now,
	}, nil
}

// Get returns the session for id, creating it when absent or expired.
func (s *Sessions) Get(id string) *Session {
	now := s.now()
	if sess, ok := s.cache.Get(id); ok {
		sess.mu.Lock()
		expired := s.ttl > 0 && now.Sub(sess.touched) > s.ttl
		sess.mu.Unlock()
		if !expired {
			return sess
		}
		s.cache.Remove(id)
	}
	sess := &Session{ID: id, touched: now}
	// Another goroutine may have raced the insert; keep whichever won.
	if prev, ok, _ := s.cache.PeekOrAdd(id, sess); ok {
		return prev
	}
	return sess
}

// Len reports the number of live sessions, including any not yet expired.
func (s *Sessions) Len() int {
	return s.cache.Len()
}

// Record appends a completed exchange and remembers the chunk that answered
// it, trimming history to the configured cap.
func (sess *Session) Record(question, answer string, chunk *knowledge.Chunk, sig QuerySignals, maxHistory int, at time.Time) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.History = append(sess.History, Turn{Question: question, Answer: answer, At: at})
	if len(sess.History) > maxHistory {
		sess.History = sess.History[len(sess.History)-maxHistory:]
	}
	if chunk != nil {
		sess.LastChunk = chunk
		sess.LastSig = sig
	}
	sess.touched = at
}

// Context returns a copy of the conversation history for prompt assembly.
func (sess *Session) Context() []Turn {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	out := make([]Turn, len(sess.History))
	copy(out, sess.History)
	return out
}

// Carryover returns the chunk and signals from the previous resolved turn,
// used to complete elliptical follow-up questions.
func (sess *Session) Carryover() (*knowledge.Chunk, QuerySignals) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.LastChunk, sess.LastSig
}

// Touch marks the session as recently used without recording a turn.
func (sess *Session) Touch(at time.Time) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touched = at
}
