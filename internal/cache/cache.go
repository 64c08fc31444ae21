// Package cache persists per-module analysis results keyed by a
// deterministic content digest (spec §4.4.1), so repeated compiles of an
// unchanged module graph skip re-analysis. Grounded on the teacher's
// github.com/google/uuid usage in internal/evaluator/builtins_uuid.go
// (generalized here from a runtime UUID builtin to a deterministic
// content-addressed cache key via uuid.NewSHA1) and on its
// database/sql + modernc.org/sqlite driver-registration idiom in
// internal/evaluator/builtins_sql.go. A miss or open failure always falls
// back to re-analysis — this cache accelerates, it never decides
// correctness.
package cache

import (
	"database/sql"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/lppc/transpiler/internal/diagnostics"
)

// cacheNamespace seeds the deterministic uuid.NewSHA1 key space, mirroring
// the teacher's predefined NamespaceDNS/NamespaceURL constants.
var cacheNamespace = uuid.MustParse("6ba7b815-9dad-11d1-80b4-00c04fd430c8")

// Entry is one cached module's stored analysis result.
type Entry struct {
	Diagnostics []*diagnostics.Diagnostic
	Exports     []string
}

// Cache is a persistent, content-addressed store of Entry values. A Cache
// whose db is nil (construction failed) silently misses every lookup and
// discards every store, so callers never need to branch on availability.
type Cache struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (creating if absent) a SQLite-backed cache at path. On any
// failure it returns a non-nil, inert Cache rather than an error — the
// cache is always optional infrastructure (spec §4.4.1).
func Open(path string) *Cache {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &Cache{}
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return &Cache{}
	}
	const schema = `CREATE TABLE IF NOT EXISTS module_cache (
		key TEXT PRIMARY KEY,
		payload TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return &Cache{}
	}
	return &Cache{db: db}
}

// Close releases the underlying database handle, if any.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Key computes the deterministic cache identifier for a module's source
// bytes, via uuid.NewSHA1(cacheNamespace, content) — identical content
// always yields the identical key.
func Key(content []byte) string {
	return uuid.NewSHA1(cacheNamespace, content).String()
}

// Lookup returns the cached Entry for key, or ok=false on a cache miss or
// an unavailable store.
func (c *Cache) Lookup(key string) (Entry, bool) {
	if c.db == nil {
		return Entry{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	var payload string
	row := c.db.QueryRow(`SELECT payload FROM module_cache WHERE key = ?`, key)
	if err := row.Scan(&payload); err != nil {
		return Entry{}, false
	}
	var e Entry
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		return Entry{}, false
	}
	return e, true
}

// Store persists entry under key, best-effort; a write failure is silently
// swallowed since the cache is never a correctness dependency.
func (c *Cache) Store(key string, entry Entry) {
	if c.db == nil {
		return
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = c.db.Exec(`INSERT INTO module_cache (key, payload) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload`, key, payload)
}
