// Package storage provides the opt-in source-facts cache. Unchanged
// files skip re-parsing across runs, keyed by a content fingerprint.
// The default scan never touches the cache; it only exists when the
// user opts in.
package storage

import (
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"golang.org/x/crypto/blake2b"

	"fslint/internal/logging"
)

const schema = `
CREATE TABLE IF NOT EXISTS file_facts (
	path        TEXT PRIMARY KEY,
	fingerprint TEXT NOT NULL,
	facts       TEXT NOT NULL,
	updated_at  TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// Cache is a SQLite-backed cache of per-file source facts.
type Cache struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// Open opens or creates the cache database at .fslint/cache.db under
// the given root.
func Open(root string, logger *logging.Logger) (*Cache, error) {
	dir := filepath.Join(root, ".fslint")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .fslint directory: %w", err)
	}

	dbPath := filepath.Join(dir, "cache.db")
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	logger.Debug("Cache opened", map[string]interface{}{
		"path": dbPath,
	})

	return &Cache{conn: conn, logger: logger, dbPath: dbPath}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Fingerprint computes the content fingerprint used as the cache key
// component for a file's facts.
func Fingerprint(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:16])
}

// Get returns the cached JSON facts for path when the fingerprint
// matches; ok is false on miss.
func (c *Cache) Get(path, fingerprint string) (facts []byte, ok bool, err error) {
	var stored string
	var data []byte
	row := c.conn.QueryRow(`SELECT fingerprint, facts FROM file_facts WHERE path = ?`, path)
	if err := row.Scan(&stored, &data); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache lookup failed: %w", err)
	}
	if stored != fingerprint {
		return nil, false, nil
	}
	return data, true, nil
}

// Put stores the JSON facts for path under the given fingerprint,
// replacing any previous entry.
func (c *Cache) Put(path, fingerprint string, facts []byte) error {
	_, err := c.conn.Exec(
		`INSERT INTO file_facts (path, fingerprint, facts, updated_at)
		 VALUES (?, ?, ?, datetime('now'))
		 ON CONFLICT(path) DO UPDATE SET
		   fingerprint = excluded.fingerprint,
		   facts = excluded.facts,
		   updated_at = excluded.updated_at`,
		path, fingerprint, facts,
	)
	if err != nil {
		return fmt.Errorf("cache write failed: %w", err)
	}
	return nil
}

// Prune removes entries whose path no longer exists on disk and
// returns the number removed.
func (c *Cache) Prune() (int, error) {
	rows, err := c.conn.Query(`SELECT path FROM file_facts`)
	if err != nil {
		return 0, fmt.Errorf("cache prune failed: %w", err)
	}
	var stale []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			rows.Close()
			return 0, err
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			stale = append(stale, path)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, path := range stale {
		if _, err := c.conn.Exec(`DELETE FROM file_facts WHERE path = ?`, path); err != nil {
			return 0, err
		}
	}
	return len(stale), nil
}

// marshalFacts and unmarshalFacts keep the stored representation in
// one place.
func marshalFacts(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func unmarshalFacts(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}
