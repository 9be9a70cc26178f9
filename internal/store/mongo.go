package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abelbrown/marquee/internal/catalog"
	"github.com/abelbrown/marquee/internal/logging"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoConnectTimeout = 10 * time.Second

// Mongo is the document-store backend. One document per search term in a
// single collection, with a unique index on search_term.
type Mongo struct {
	client     *mongo.Client // nil when the caller owns the connection
	collection *mongo.Collection
	now        func() time.Time
}

var _ Store = (*Mongo)(nil)

// OpenMongo connects to uri and prepares the collection. Close disconnects.
func OpenMongo(ctx context.Context, uri, database, collection string) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, storeErr("open", fmt.Errorf("connect: %w", err))
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, storeErr("open", fmt.Errorf("ping: %w", err))
	}

	m, err := NewMongo(ctx, client.Database(database), collection)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	m.client = client

	logging.Info("trend store ready", "backend", "mongo", "database", database, "collection", collection)
	return m, nil
}

// NewMongo wraps an existing database handle. The caller keeps ownership of
// the client; Close is a no-op.
func NewMongo(ctx context.Context, db *mongo.Database, collectionName string) (*Mongo, error) {
	m := &Mongo{
		collection: db.Collection(collectionName),
		now:        time.Now,
	}
	if err := m.ensureIndexes(ctx); err != nil {
		return nil, storeErr("open", err)
	}
	return m, nil
}

func (m *Mongo) ensureIndexes(ctx context.Context) error {
	_, err := m.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "search_term", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "count", Value: -1}, {Key: "search_term", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	return nil
}

// Close disconnects the client when OpenMongo created it.
func (m *Mongo) Close() error {
	if m.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

// RecordOccurrence upserts by search term: $inc on every call, the snapshot
// only via $setOnInsert.
func (m *Mongo) RecordOccurrence(ctx context.Context, query string, movie catalog.Movie) error {
	if query == "" {
		return storeErr("record", ErrEmptyQuery)
	}

	doc := newDocument(query, movie, m.now().UTC())
	filter := bson.M{"search_term": query}
	update := bson.M{
		"$inc": bson.M{"count": 1},
		"$set": bson.M{"updated_at": doc.UpdatedAt},
		"$setOnInsert": bson.M{
			"_id":        doc.ID,
			"movie_id":   doc.MovieID,
			"title":      doc.Title,
			"poster_url": doc.PosterURL,
			"created_at": doc.CreatedAt,
		},
	}

	_, err := m.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		// Lost an insert race with another writer; the document exists now.
		_, err = m.collection.UpdateOne(ctx, filter, update)
	}
	if err != nil {
		return storeErr("record", err)
	}
	return nil
}

// TopTrending returns the most searched queries.
func (m *Mongo) TopTrending(ctx context.Context, limit int) ([]TrendDocument, error) {
	if limit <= 0 {
		return []TrendDocument{}, nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "count", Value: -1}, {Key: "search_term", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := m.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, storeErr("top", err)
	}
	defer cursor.Close(ctx)

	docs := []TrendDocument{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storeErr("top", err)
	}
	return docs, nil
}

// Get returns the document for query, or nil when it does not exist.
func (m *Mongo) Get(ctx context.Context, query string) (*TrendDocument, error) {
	var d TrendDocument
	err := m.collection.FindOne(ctx, bson.M{"search_term": query}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, storeErr("get", err)
	}
	return &d, nil
}
