package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nietlabs/answer-engine/internal/observability"
)

// Store holds the loaded chunk set. Reads require no locking: the set is
// immutable after LoadDir returns.
type Store struct {
	chunks     []Chunk
	byCategory map[Category][]*Chunk
	skipped    int
}

// NewStore creates a store over an already-validated chunk slice. Chunks with
// empty text or an unknown category are dropped, mirroring the file loader.
func NewStore(chunks []Chunk) *Store {
	s := &Store{byCategory: make(map[Category][]*Chunk)}
	for _, c := range chunks {
		if c.Text == "" || !ValidCategory(c.Category) {
			s.skipped++
			continue
		}
		s.chunks = append(s.chunks, c)
	}
	s.index()
	return s
}

// LoadDir loads every *_chunks.json file under dir. A malformed file or record
// is logged and skipped; only an unreadable directory is an error.
func LoadDir(dir string, logger *observability.Logger) (*Store, error) {
	pattern := filepath.Join(dir, "*_chunks.json")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("scan chunk dir: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no chunk files found in %s", dir)
	}

	s := &Store{byCategory: make(map[Category][]*Chunk)}

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			logger.Warn().Err(err).Str("file", file).Msg("Skipping unreadable chunk file")
			continue
		}

		var records []Chunk
		if err := json.Unmarshal(data, &records); err != nil {
			// Some source files hold a single object rather than a list.
			var single Chunk
			if err2 := json.Unmarshal(data, &single); err2 != nil {
				logger.Warn().Err(err).Str("file", file).Msg("Skipping malformed chunk file")
				continue
			}
			records = []Chunk{single}
		}

		for i, rec := range records {
			if rec.Text == "" {
				logger.Warn().Str("file", file).Int("record", i).Msg("Skipping chunk with empty text")
				s.skipped++
				continue
			}
			if !ValidCategory(rec.Category) {
				logger.Warn().Str("file", file).Int("record", i).Str("category", string(rec.Category)).
					Msg("Skipping chunk with unknown category")
				s.skipped++
				continue
			}
			s.chunks = append(s.chunks, rec)
		}
	}

	s.index()

	logger.Info().
		Int("chunks", len(s.chunks)).
		Int("skipped", s.skipped).
		Int("files", len(files)).
		Msg("Knowledge store loaded")

	return s, nil
}

func (s *Store) index() {
	for i := range s.chunks {
		c := &s.chunks[i]
		s.byCategory[c.Category] = append(s.byCategory[c.Category], c)
	}
}

// ByCategory returns all chunks in the given category.
func (s *Store) ByCategory(cat Category) []*Chunk {
	return s.byCategory[cat]
}

// All returns every loaded chunk.
func (s *Store) All() []*Chunk {
	out := make([]*Chunk, len(s.chunks))
	for i := range s.chunks {
		out[i] = &s.chunks[i]
	}
	return out
}

// Len returns the number of loaded chunks.
func (s *Store) Len() int {
	return len(s.chunks)
}

// Skipped returns the number of records dropped during load.
func (s *Store) Skipped() int {
	return s.skipped
}
