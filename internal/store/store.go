// Package store persists search popularity for the trending strip.
//
// Each distinct search query owns one TrendDocument whose Count grows by one
// every time the query returns results. Documents are never deleted.
//
// Two backends implement Store: SQLite (embedded, the default) and MongoDB.
// Both upsert atomically, so concurrent RecordOccurrence calls for the same
// query never create duplicate documents or lose increments.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abelbrown/marquee/internal/catalog"
	"github.com/abelbrown/marquee/internal/config"
	"github.com/google/uuid"
)

// ErrEmptyQuery is returned when recording an occurrence for an empty query.
var ErrEmptyQuery = errors.New("search term is empty")

// trendNamespace seeds the name-based UUIDs used as document ids.
var trendNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/abelbrown/marquee/trend"))

// TrendDocument is the popularity record for one search query.
type TrendDocument struct {
	ID         string    `bson:"_id"`
	SearchTerm string    `bson:"search_term"`
	Count      int64     `bson:"count"`
	MovieID    int64     `bson:"movie_id"`
	Title      string    `bson:"title"`
	PosterURL  string    `bson:"poster_url"`
	CreatedAt  time.Time `bson:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

// Store records query occurrences and lists the most popular queries.
type Store interface {
	// RecordOccurrence increments the counter for query, creating the document
	// with count 1 and a snapshot of movie when it does not exist yet.
	RecordOccurrence(ctx context.Context, query string, movie catalog.Movie) error

	// TopTrending returns at most limit documents ordered by count descending.
	// Ties are broken by search term so repeated calls agree.
	TopTrending(ctx context.Context, limit int) ([]TrendDocument, error)

	Close() error
}

// StoreError wraps any backend failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("trend store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// DocumentID returns the stable document id for a search term.
func DocumentID(query string) string {
	return uuid.NewSHA1(trendNamespace, []byte(query)).String()
}

// newDocument builds the initial document for a first occurrence.
func newDocument(query string, movie catalog.Movie, now time.Time) TrendDocument {
	return TrendDocument{
		ID:         DocumentID(query),
		SearchTerm: query,
		Count:      1,
		MovieID:    movie.ID,
		Title:      movie.Title,
		PosterURL:  movie.PosterURL(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Open connects to the backend named in cfg.
func Open(ctx context.Context, cfg config.Store) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", config.BackendSQLite:
		return OpenSQLite(cfg.Path)
	case config.BackendMongo:
		return OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	default:
		return nil, fmt.Errorf("unknown trend store backend %q", cfg.Backend)
	}
}
