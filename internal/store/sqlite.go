package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/abelbrown/marquee/internal/catalog"
	"github.com/abelbrown/marquee/internal/logging"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// SQLite is the embedded trend store.
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SQLite struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}

var _ Store = (*SQLite)(nil)

// OpenSQLite opens (creating if needed) the database at dbPath.
// ":memory:" gives a private in-memory database.
func OpenSQLite(dbPath string) (*SQLite, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, storeErr("open", fmt.Errorf("create data directory: %w", err))
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, storeErr("open", err)
	}

	// A :memory: database lives and dies with its connection, so pin the pool
	// to one. File databases share the limit: writes are serialized anyway.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, storeErr("open", fmt.Errorf("ping database: %w", err))
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, storeErr("open", fmt.Errorf("enable WAL mode: %w", err))
		}
	}

	s := &SQLite{db: db, now: time.Now}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, storeErr("open", fmt.Errorf("create tables: %w", err))
	}

	logging.Info("trend store ready", "backend", "sqlite", "path", dbPath)
	return s, nil
}

func (s *SQLite) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS trends (
		id TEXT PRIMARY KEY,
		search_term TEXT NOT NULL UNIQUE,
		count INTEGER NOT NULL DEFAULT 1,
		movie_id INTEGER NOT NULL DEFAULT 0,
		title TEXT NOT NULL DEFAULT '',
		poster_url TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_trends_count ON trends(count DESC, search_term ASC);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
// Thread-safe: acquires write lock to prevent closing during in-flight operations.
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// RecordOccurrence upserts the document for query. The movie snapshot is
// written on insert only; later occurrences just bump count and updated_at.
func (s *SQLite) RecordOccurrence(ctx context.Context, query string, movie catalog.Movie) error {
	if query == "" {
		return storeErr("record", ErrEmptyQuery)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := newDocument(query, movie, s.now().UTC())
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trends (id, search_term, count, movie_id, title, poster_url, created_at, updated_at)
		VALUES (?, ?, 1, ?, ?, ?, ?, ?)
		ON CONFLICT(search_term) DO UPDATE SET
			count = count + 1,
			updated_at = excluded.updated_at
	`, doc.ID, doc.SearchTerm, doc.MovieID, doc.Title, doc.PosterURL, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return storeErr("record", err)
	}
	return nil
}

// TopTrending returns the most searched queries.
func (s *SQLite) TopTrending(ctx context.Context, limit int) ([]TrendDocument, error) {
	if limit <= 0 {
		return []TrendDocument{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, search_term, count, movie_id, title, poster_url, created_at, updated_at
		FROM trends
		ORDER BY count DESC, search_term ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, storeErr("top", err)
	}
	defer rows.Close()

	docs := []TrendDocument{}
	for rows.Next() {
		var d TrendDocument
		if err := rows.Scan(&d.ID, &d.SearchTerm, &d.Count, &d.MovieID, &d.Title, &d.PosterURL, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, storeErr("top", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("top", err)
	}
	return docs, nil
}

// Get returns the document for query, or nil when it does not exist.
func (s *SQLite) Get(ctx context.Context, query string) (*TrendDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var d TrendDocument
	err := s.db.QueryRowContext(ctx, `
		SELECT id, search_term, count, movie_id, title, poster_url, created_at, updated_at
		FROM trends WHERE search_term = ?
	`, query).Scan(&d.ID, &d.SearchTerm, &d.Count, &d.MovieID, &d.Title, &d.PosterURL, &d.CreatedAt, &d.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("get", err)
	}
	return &d, nil
}
