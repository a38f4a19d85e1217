package translation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/snonux/arabify/internal"
)

// Cache persists finished translations in a sqlite database keyed by
// the source text hash. Repeated source strings (boilerplate answers,
// re-runs with a cleared checkpoint directory) then cost no API calls.
type Cache struct {
	db *sql.DB
}

// OpenCache opens or creates the translation cache at path
func OpenCache(path string) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open translation cache: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS translations (
		source_hash TEXT PRIMARY KEY,
		source      TEXT NOT NULL,
		translated  TEXT NOT NULL,
		created_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize translation cache: %w", err)
	}

	return &Cache{db: db}, nil
}

// Get returns the cached translation for a source text, if any
func (c *Cache) Get(text string) (string, bool, error) {
	var translated string
	err := c.db.QueryRow(
		"SELECT translated FROM translations WHERE source_hash = ?",
		internal.HashText(text),
	).Scan(&translated)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("translation cache lookup failed: %w", err)
	}
	return translated, true, nil
}

// Put stores a finished translation
func (c *Cache) Put(text, translated string) error {
	_, err := c.db.Exec(
		"INSERT OR REPLACE INTO translations (source_hash, source, translated) VALUES (?, ?, ?)",
		internal.HashText(text), text, translated,
	)
	if err != nil {
		return fmt.Errorf("translation cache write failed: %w", err)
	}
	return nil
}

// Close closes the underlying database
func (c *Cache) Close() error {
	return c.db.Close()
}

// CachedProvider consults the cache before delegating to the wrapped
// provider. Cache write failures are surfaced: a broken cache on disk
// should stop the run, not silently burn API quota.
type CachedProvider struct {
	provider Provider
	cache    *Cache
}

// NewCachedProvider wraps a provider with a translation cache
func NewCachedProvider(provider Provider, cache *Cache) *CachedProvider {
	return &CachedProvider{provider: provider, cache: cache}
}

// Translate returns the cached translation or delegates and stores
func (p *CachedProvider) Translate(ctx context.Context, text string) (string, error) {
	if translated, ok, err := p.cache.Get(text); err != nil {
		return "", err
	} else if ok {
		return translated, nil
	}

	translated, err := p.provider.Translate(ctx, text)
	if err != nil {
		return "", err
	}
	if err := p.cache.Put(text, translated); err != nil {
		return "", err
	}
	return translated, nil
}

// Close closes the underlying cache
func (p *CachedProvider) Close() error {
	return p.cache.Close()
}
