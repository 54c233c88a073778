// Package indexstore keeps topic identities in SQLite. The first time a
// (topic, index) pair is resolved a random key is minted for it; every later
// resolution of the same pair returns that key.
package indexstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"
	"github.com/vk/tomeview/internal/ctxlog"
	"github.com/vk/tomeview/internal/schema"
	"github.com/vk/tomeview/internal/topic"
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store resolves topic indexes against a SQLite table. It implements
// topic.IndexResolver.
type Store struct {
	db *sql.DB
}

var _ topic.IndexResolver = (*Store)(nil)

// Open opens (creating if needed) the index database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if path != MemoryPath {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set WAL mode: %w", err)
		}
	}
	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	ctxlog.FromContext(ctx).Debug("Index store opened.", "path", path)
	return &Store{db: db}, nil
}

// Resolve checks index against t's declared index fields and returns the
// identity stored for it, minting one on first use.
func (s *Store) Resolve(ctx context.Context, t *schema.Type, index topic.Index) (topic.Identity, error) {
	if err := topic.CheckIndex(t, index); err != nil {
		return topic.Identity{}, err
	}
	canonical := index.String()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO identities (topic, idx, identity, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (topic, idx) DO NOTHING`,
		t.Name, canonical, uuid.NewString(), time.Now().Unix())
	if err != nil {
		return topic.Identity{}, fmt.Errorf("store identity for %s/%s: %w", t.Name, canonical, err)
	}

	id, ok, err := s.Lookup(ctx, t.Name, index)
	if err != nil {
		return topic.Identity{}, err
	}
	if !ok {
		return topic.Identity{}, fmt.Errorf("identity for %s/%s vanished after insert", t.Name, canonical)
	}
	ctxlog.FromContext(ctx).Debug("Resolved topic index.", "index", canonical, "key", id.Key)
	return id, nil
}

// Lookup returns the stored identity of (topicName, index) without minting.
func (s *Store) Lookup(ctx context.Context, topicName string, index topic.Index) (topic.Identity, bool, error) {
	var key string
	err := s.db.QueryRowContext(ctx,
		"SELECT identity FROM identities WHERE topic = ? AND idx = ?",
		topicName, index.String()).Scan(&key)
	if errors.Is(err, sql.ErrNoRows) {
		return topic.Identity{}, false, nil
	}
	if err != nil {
		return topic.Identity{}, false, fmt.Errorf("lookup identity for %s: %w", topicName, err)
	}

	idx := topic.Index{}
	maps.Copy(idx, index)
	return topic.Identity{Topic: topicName, Index: idx, Key: key}, true, nil
}

// Count returns the number of stored identities of topicName.
func (s *Store) Count(ctx context.Context, topicName string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM identities WHERE topic = ?", topicName).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count identities for %s: %w", topicName, err)
	}
	return n, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
