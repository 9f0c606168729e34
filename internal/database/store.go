package database

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Siskaumami/Dip-N-Fly/internal/models"
)

// Store persists the whole document. Save must be atomic: after a crash the
// next Load sees either the previous or the new document, never a mix.
type Store interface {
	Load(ctx context.Context) (*models.Document, error)
	Save(ctx context.Context, doc *models.Document) error
}

// MemoryStore keeps the last saved document as JSON bytes.
type MemoryStore struct {
	mu    sync.Mutex
	data  []byte
	saves int

	// FailSave makes the next Save calls fail, for tests.
	FailSave error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(_ context.Context) (*models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		return models.NewDocument(), nil
	}
	return decodeDocument(m.data)
}

func (m *MemoryStore) Save(_ context.Context, doc *models.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSave != nil {
		return m.FailSave
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("document could not be encoded: %w", err)
	}
	m.data = b
	m.saves++
	return nil
}

// Saves reports how many successful writes happened.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func decodeDocument(b []byte) (*models.Document, error) {
	doc := models.NewDocument()
	if len(b) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(b, doc); err != nil {
		return nil, fmt.Errorf("document could not be decoded: %w", err)
	}
	doc.Normalize()
	return doc, nil
}
