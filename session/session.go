// Package session stores the conversation history of chat sessions.
package session

import (
	"context"
	"sync"

	"github.com/etnz/folio"
)

// Store keeps the turns of each session. Appends to one session are
// serialized by the store.
type Store interface {
	// History returns a copy of the turns of session id, oldest first.
	History(ctx context.Context, id string) (folio.History, error)
	// Append adds turns at the end of session id.
	Append(ctx context.Context, id string, turns ...folio.Turn) error
	Close() error
}

// Open returns a SQLite store at dsn, or a Memory store when dsn is empty.
func Open(dsn string) (Store, error) {
	if dsn == "" {
		return NewMemory(), nil
	}
	return OpenSQLite(dsn)
}

// Memory is a Store that lives in memory.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]folio.History
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{sessions: make(map[string]folio.History)}
}

func (m *Memory) History(_ context.Context, id string) (folio.History, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append(folio.History(nil), m.sessions[id]...), nil
}

func (m *Memory) Append(_ context.Context, id string, turns ...folio.Turn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = append(m.sessions[id], turns...)
	return nil
}

func (m *Memory) Close() error { return nil }

var (
	_ Store = (*Memory)(nil)
	_ Store = (*SQLite)(nil)
)
