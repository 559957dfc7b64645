package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	notesCollection = "notes"
	usersCollection = "users"
)

// Store owns the Mongo client and hands out collections to repositories.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a client, verifies the connection and returns a Store
// bound to the given database.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &Store{client: client, db: client.Database(database)}, nil
}

// EnsureIndexes creates the unique username index. Insert conflicts on it
// are what closes the registration check-then-act window.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.Users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *Store) Notes() *mongo.Collection {
	return s.db.Collection(notesCollection)
}

func (s *Store) Users() *mongo.Collection {
	return s.db.Collection(usersCollection)
}

// Close releases the client. Call it once at process shutdown.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
