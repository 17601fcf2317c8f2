// Package mongostore stores designs in a MongoDB collection.
package mongostore

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/matzehuels/dreamhouse/pkg/errors"
	"github.com/matzehuels/dreamhouse/pkg/store"
)

// Defaults for Open.
const (
	DefaultDatabase   = "dreamhouse"
	DefaultCollection = "designs"
	connectTimeout    = 10 * time.Second
)

// Store is a MongoDB-backed design store. Ids are random UUIDs.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ store.Store = (*Store)(nil)

// Open connects to uri and uses database.designs. An empty database means
// DefaultDatabase.
func Open(ctx context.Context, uri, database string) (*Store, error) {
	if uri == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "mongo store needs a connection uri")
	}
	if database == "" {
		database = DefaultDatabase
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongo")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongo")
	}

	coll := client.Database(database).Collection(DefaultCollection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create index: %w", err)
	}
	return &Store{client: client, coll: coll}, nil
}

func (s *Store) Save(ctx context.Context, d store.Design) (string, error) {
	d, err := store.Prepare(d)
	if err != nil {
		return "", err
	}
	d.ID = uuid.NewString()
	// Mongo keeps millisecond precision; truncate so reads match writes.
	d.CreatedAt = d.CreatedAt.Truncate(time.Millisecond)
	if _, err := s.coll.InsertOne(ctx, d); err != nil {
		return "", fmt.Errorf("insert design: %w", err)
	}
	return d.ID, nil
}

func (s *Store) List(ctx context.Context, limit int) ([]store.Summary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(store.Limit(limit))).
		SetProjection(bson.M{"data": 0, "prompt": 0})

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list designs: %w", err)
	}
	out := []store.Summary{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode designs: %w", err)
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, id string) (store.Design, error) {
	var d store.Design
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return store.Design{}, store.ErrNotFound(id)
	}
	if err != nil {
		return store.Design{}, fmt.Errorf("get design: %w", err)
	}
	d.Layout = d.Layout.Clone()
	d.CreatedAt = d.CreatedAt.UTC()
	return d, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete design: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound(id)
	}
	return nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}
