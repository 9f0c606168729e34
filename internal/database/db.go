package database

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/Siskaumami/Dip-N-Fly/internal/config"
	"github.com/Siskaumami/Dip-N-Fly/internal/models"
)

// DB is the single process-wide owner of the document. Writers are
// serialized; each write runs on a copy, is persisted, and only then
// becomes the visible snapshot.
type DB struct {
	mu    sync.RWMutex
	store Store
	doc   *models.Document
}

// New loads the document from store.
func New(ctx context.Context, store Store) (*DB, error) {
	doc, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	doc.Normalize()
	return &DB{store: store, doc: doc}, nil
}

// Open picks the store from cfg.StoreDriver and loads it.
func Open(ctx context.Context, cfg *config.Config) (*DB, error) {
	var store Store
	switch cfg.StoreDriver {
	case "postgres":
		gs, err := OpenGorm("postgres", cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		store = gs
	case "sqlite":
		gs, err := OpenGorm("sqlite", cfg.DBFile)
		if err != nil {
			return nil, err
		}
		store = gs
	default:
		store = NewFileStore(cfg.DBFile)
	}

	db, err := New(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("store could not be loaded: %w", err)
	}
	log.Printf("Store loaded (%s): %d orders, %d products, %d tables, %d shifts",
		cfg.StoreDriver, len(db.doc.Orders), len(db.doc.Products), len(db.doc.Tables), len(db.doc.Shifts))
	return db, nil
}

// Snapshot returns the latest persisted document. Callers must not modify it.
func (db *DB) Snapshot() *models.Document {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.doc
}

// Update runs fn on a copy of the document and persists the copy. When fn or
// the save fails nothing changes.
func (db *DB) Update(ctx context.Context, fn func(doc *models.Document) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	next := db.doc.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := db.store.Save(ctx, next); err != nil {
		return fmt.Errorf("store could not be saved: %w", err)
	}
	db.doc = next
	return nil
}
