package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/abelbrown/marquee/internal/catalog"
	"github.com/abelbrown/marquee/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dune = catalog.Movie{ID: 438631, Title: "Dune", PosterPath: "/dune.jpg"}

func newTestStore(t *testing.T) *SQLite {
	t.Helper()
	st, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestOpenCreatesTable(t *testing.T) {
	st := newTestStore(t)

	var name string
	err := st.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='trends'").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "trends", name)
}

func TestRecordOccurrenceCreatesThenIncrements(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.RecordOccurrence(ctx, "dune", dune))

	doc, err := st.Get(ctx, "dune")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, int64(1), doc.Count)
	assert.Equal(t, DocumentID("dune"), doc.ID)
	assert.Equal(t, int64(438631), doc.MovieID)
	assert.Equal(t, "Dune", doc.Title)
	assert.Equal(t, catalog.PosterBaseURL+"/dune.jpg", doc.PosterURL)

	require.NoError(t, st.RecordOccurrence(ctx, "dune", dune))

	doc, err = st.Get(ctx, "dune")
	require.NoError(t, err)
	assert.Equal(t, int64(2), doc.Count)
}

func TestRecordOccurrenceKeepsFirstSnapshot(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	first := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return first }
	require.NoError(t, st.RecordOccurrence(ctx, "dune", dune))

	st.now = func() time.Time { return first.Add(time.Hour) }
	other := catalog.Movie{ID: 1, Title: "Dune: Part Two", PosterPath: "/two.jpg"}
	require.NoError(t, st.RecordOccurrence(ctx, "dune", other))

	doc, err := st.Get(ctx, "dune")
	require.NoError(t, err)
	assert.Equal(t, "Dune", doc.Title)
	assert.Equal(t, int64(438631), doc.MovieID)
	assert.True(t, doc.CreatedAt.Equal(first), "created_at = %v", doc.CreatedAt)
	assert.True(t, doc.UpdatedAt.Equal(first.Add(time.Hour)), "updated_at = %v", doc.UpdatedAt)
}

func TestRecordOccurrenceEmptyQuery(t *testing.T) {
	st := newTestStore(t)

	err := st.RecordOccurrence(context.Background(), "", dune)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyQuery))

	var se *StoreError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "record", se.Op)
}

func TestRecordOccurrenceIsCaseSensitive(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.RecordOccurrence(ctx, "Dune", dune))
	require.NoError(t, st.RecordOccurrence(ctx, "dune", dune))

	docs, err := st.TopTrending(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestTopTrendingOrderAndLimit(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	counts := map[string]int{
		"dune":     5,
		"batman":   3,
		"alien":    3,
		"matrix":   7,
		"heat":     1,
		"arrival":  2,
		"oldboy":   4,
		"parasite": 6,
	}
	for q, n := range counts {
		for i := 0; i < n; i++ {
			require.NoError(t, st.RecordOccurrence(ctx, q, catalog.Movie{Title: q}))
		}
	}

	docs, err := st.TopTrending(ctx, 5)
	require.NoError(t, err)
	require.Len(t, docs, 5)

	var terms []string
	for i, d := range docs {
		terms = append(terms, d.SearchTerm)
		if i > 0 {
			assert.GreaterOrEqual(t, docs[i-1].Count, d.Count)
		}
	}
	assert.Equal(t, []string{"matrix", "parasite", "dune", "oldboy", "alien"}, terms)

	again, err := st.TopTrending(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, docs, again, "ties must resolve the same way on every call")
}

func TestTopTrendingEdgeLimits(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	docs, err := st.TopTrending(ctx, 5)
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)

	require.NoError(t, st.RecordOccurrence(ctx, "dune", dune))

	docs, err = st.TopTrending(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, docs)

	docs, err = st.TopTrending(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestGetMissing(t *testing.T) {
	st := newTestStore(t)

	doc, err := st.Get(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestConcurrentRecordOccurrence(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	const workers = 10
	const perWorker = 20

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if err := st.RecordOccurrence(ctx, "dune", dune); err != nil {
					t.Errorf("RecordOccurrence: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	doc, err := st.Get(ctx, "dune")
	require.NoError(t, err)
	assert.Equal(t, int64(workers*perWorker), doc.Count)
}

func TestClosedStoreReturnsStoreError(t *testing.T) {
	st, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.Close())

	err = st.RecordOccurrence(context.Background(), "dune", dune)
	var se *StoreError
	assert.True(t, errors.As(err, &se))

	_, err = st.TopTrending(context.Background(), 5)
	assert.True(t, errors.As(err, &se))
}

func TestFileStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "marquee.db")
	ctx := context.Background()

	st, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, st.RecordOccurrence(ctx, "dune", dune))
	require.NoError(t, st.Close())

	st, err = OpenSQLite(path)
	require.NoError(t, err)
	defer st.Close()

	doc, err := st.Get(ctx, "dune")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, int64(1), doc.Count)
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()

	st, err := Open(ctx, config.Store{Backend: config.BackendSQLite, Path: ":memory:"})
	require.NoError(t, err)
	_, ok := st.(*SQLite)
	assert.True(t, ok)
	require.NoError(t, st.Close())

	_, err = Open(ctx, config.Store{Backend: "appwrite"})
	assert.Error(t, err)
}

func TestDocumentIDIsStable(t *testing.T) {
	assert.Equal(t, DocumentID("dune"), DocumentID("dune"))
	assert.NotEqual(t, DocumentID("dune"), DocumentID("Dune"))
	assert.Len(t, DocumentID("dune"), 36)
}

func TestStoreErrorMessage(t *testing.T) {
	err := storeErr("top", fmt.Errorf("disk I/O error"))
	assert.EqualError(t, err, "trend store top: disk I/O error")
	assert.Nil(t, storeErr("top", nil))

	// Already-wrapped errors keep their original op.
	assert.Same(t, err, storeErr("record", err))
}
