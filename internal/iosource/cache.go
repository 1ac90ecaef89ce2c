package iosource

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"time"

	"github.com/gnames/gnsys"
	_ "modernc.org/sqlite"
)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS responses (
	url        TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	fetched_at INTEGER NOT NULL
)`

// Cache keeps upstream detail responses in a SQLite file. Worker
// processes of one import share the file.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
}

// OpenCache opens or creates the cache at path. Entries older than ttl
// are treated as missing.
func OpenCache(path string, ttl time.Duration) (*Cache, error) {
	if err := gnsys.MakeDir(filepath.Dir(path)); err != nil {
		return nil, CacheError(path, err)
	}

	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, CacheError(path, err)
	}

	if _, err = db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, CacheError(path, err)
	}

	return &Cache{db: db, ttl: ttl}, nil
}

// Get returns a fresh cached body for url.
func (c *Cache) Get(ctx context.Context, url string) ([]byte, bool, error) {
	var body []byte
	var fetched int64
	err := c.db.QueryRowContext(ctx,
		"SELECT body, fetched_at FROM responses WHERE url = ?", url,
	).Scan(&body, &fetched)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if c.ttl > 0 && time.Since(time.Unix(fetched, 0)) > c.ttl {
		return nil, false, nil
	}
	return body, true, nil
}

// Put stores body for url.
func (c *Cache) Put(ctx context.Context, url string, body []byte) error {
	_, err := c.db.ExecContext(ctx, `
INSERT INTO responses (url, body, fetched_at) VALUES (?, ?, ?)
ON CONFLICT(url) DO UPDATE SET body = excluded.body,
	fetched_at = excluded.fetched_at`,
		url, body, time.Now().Unix(),
	)
	return err
}

// Purge removes all cached responses.
func (c *Cache) Purge(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, "DELETE FROM responses")
	return err
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}
