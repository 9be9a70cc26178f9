package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Set MARQUEE_TEST_MONGO_URI (e.g. mongodb://localhost:27017) to run these.
func newTestMongo(t *testing.T) *Mongo {
	t.Helper()
	uri := os.Getenv("MARQUEE_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("MARQUEE_TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	database := fmt.Sprintf("marquee_test_%d", time.Now().UnixNano())
	m, err := OpenMongo(ctx, uri, database, "metrics")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = m.collection.Database().Drop(context.Background())
		m.Close()
	})
	return m
}

func TestMongoRecordOccurrence(t *testing.T) {
	m := newTestMongo(t)
	ctx := context.Background()

	require.NoError(t, m.RecordOccurrence(ctx, "dune", dune))
	require.NoError(t, m.RecordOccurrence(ctx, "dune", dune))

	doc, err := m.Get(ctx, "dune")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, int64(2), doc.Count)
	assert.Equal(t, DocumentID("dune"), doc.ID)
	assert.Equal(t, "Dune", doc.Title)
}

func TestMongoTopTrending(t *testing.T) {
	m := newTestMongo(t)
	ctx := context.Background()

	for q, n := range map[string]int{"alien": 2, "batman": 2, "heat": 1, "matrix": 3} {
		for i := 0; i < n; i++ {
			require.NoError(t, m.RecordOccurrence(ctx, q, dune))
		}
	}

	docs, err := m.TopTrending(ctx, 3)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "matrix", docs[0].SearchTerm)
	assert.Equal(t, "alien", docs[1].SearchTerm)
	assert.Equal(t, "batman", docs[2].SearchTerm)
}

func TestMongoEmptyQuery(t *testing.T) {
	m := &Mongo{now: time.Now}
	err := m.RecordOccurrence(context.Background(), "", dune)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}
