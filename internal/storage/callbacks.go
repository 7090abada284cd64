// Package storage persists callback requests submitted through the chat
// surface so the admission team can follow up.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// CallbackRequest is one request for a counsellor to call a prospective
// student back.
type CallbackRequest struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone" json:"phone"`
	Topic     string    `db:"topic" json:"topic,omitempty"`
	SessionID string    `db:"session_id" json:"sessionId,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

const callbackSchema = `
CREATE TABLE IF NOT EXISTS callback_requests (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	phone      TEXT NOT NULL,
	topic      TEXT NOT NULL DEFAULT '',
	session_id TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_callback_created ON callback_requests (created_at);
`

// CallbackStore is a SQLite-backed store of callback requests.
type CallbackStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// OpenCallbackStore opens (creating if needed) the SQLite database at path
// and ensures the schema exists.
func OpenCallbackStore(path string) (*CallbackStore, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening callback db: %w", err)
	}
	if _, err := db.Exec(callbackSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying callback schema: %w", err)
	}
	return &CallbackStore{db: db, now: time.Now}, nil
}

// Create validates and persists a callback request, assigning its ID and
// timestamp.
func (s *CallbackStore) Create(ctx context.Context, req *CallbackRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Name == "" {
		return fmt.Errorf("callback request: name is required")
	}
	if req.Phone == "" {
		return fmt.Errorf("callback request: phone is required")
	}

	req.ID = uuid.NewString()
	req.CreatedAt = s.now().UTC()

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO callback_requests (id, name, phone, topic, session_id, created_at)
		VALUES (:id, :name, :phone, :topic, :session_id, :created_at)`, req)
	if err != nil {
		return fmt.Errorf("inserting callback request: %w", err)
	}
	return nil
}

// Recent returns the newest requests, most recent first.
func (s *CallbackStore) Recent(ctx context.Context, limit int) ([]CallbackRequest, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []CallbackRequest
	err := s.db.SelectContext(ctx, &out, `
		SELECT id, name, phone, topic, session_id, created_at
		FROM callback_requests
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing callback requests: %w", err)
	}
	return out, nil
}

// Close releases the underlying database handle.
func (s *CallbackStore) Close() error {
	return s.db.Close()
}
