package recordings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Mongo database layout for study recordings.
const (
	MongoDatabase   = "sessions"
	MongoCollection = "userStudyDb"
)

// MongoStore implements Store on MongoDB.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewMongoStore connects to MongoDB and verifies the connection.
// A nil logger falls back to slog.Default().
func NewMongoStore(ctx context.Context, uri string, logger *slog.Logger) (*MongoStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("recordings: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("recordings: ping: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(MongoDatabase).Collection(MongoCollection),
		logger: logger.With("component", "recordings.mongo"),
	}, nil
}

// Save persists a recording and returns its ID.
func (s *MongoStore) Save(ctx context.Context, rec *Recording) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		return "", fmt.Errorf("recordings: insert: %w", err)
	}

	s.logger.Debug("saved recording", "id", rec.ID, "user", rec.User, "theme", rec.Theme)
	return rec.ID, nil
}

// List returns all recordings in insertion order.
func (s *MongoStore) List(ctx context.Context) ([]Recording, error) {
	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("recordings: find: %w", err)
	}
	defer cur.Close(ctx)

	var out []Recording
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("recordings: decode: %w", err)
	}
	return out, nil
}

// Get returns the recording with the given ID, or ErrNotFound.
func (s *MongoStore) Get(ctx context.Context, id string) (*Recording, error) {
	var rec Recording
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("recordings: find one: %w", err)
	}
	return &rec, nil
}

// Health checks store connectivity.
func (s *MongoStore) Health(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Verify MongoStore implements Store at compile time.
var _ Store = (*MongoStore)(nil)
