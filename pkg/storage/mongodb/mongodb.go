// Package mongodb implements the document gateway on MongoDB. Each logical
// collection maps to a MongoDB collection of the same name.
package mongodb

import (
	"context"
	"fmt"
	"smartsite/pkg/storage"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Options configures the MongoDB client.
type Options struct {
	// URI is the connection string, e.g. "mongodb://localhost:27017".
	URI string
	// Database is the database documents are written to.
	Database string
	// MaxPoolSize caps the connections per server; zero keeps the driver default.
	MaxPoolSize uint64
	// ConnectTimeout bounds establishing a connection; zero keeps the driver default.
	ConnectTimeout time.Duration
}

// Mongo implements storage.Storage on a MongoDB database.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ storage.Storage = (*Mongo)(nil)

// New creates a client for the given options. The driver connects in the
// background, so an unreachable server only surfaces on first use.
func New(opts Options) (*Mongo, error) {
	clientOpts := options.Client().ApplyURI(opts.URI)
	if opts.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(opts.MaxPoolSize)
	}
	if opts.ConnectTimeout > 0 {
		clientOpts.SetConnectTimeout(opts.ConnectTimeout)
	}

	client, err := mongo.Connect(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("could not create mongo client: %w", err)
	}

	return &Mongo{
		client: client,
		db:     client.Database(opts.Database),
	}, nil
}

// InsertDocument stores document in collection with a fresh ObjectID and
// returns the id in hex form.
func (m *Mongo) InsertDocument(ctx context.Context, collection string, document any) (string, error) {
	if err := storage.ValidateCollection(collection); err != nil {
		return "", err
	}

	doc, err := toBSON(document)
	if err != nil {
		return "", err
	}

	id := bson.NewObjectID()
	now := time.Now().UTC()
	doc["_id"] = id
	doc["created_at"] = now
	doc["updated_at"] = now

	if _, err := m.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("could not insert document into mongo: %w", err)
	}

	return id.Hex(), nil
}

// Name returns the database name.
func (m *Mongo) Name() string { return m.db.Name() }

// Ping checks that the primary answers.
func (m *Mongo) Ping(ctx context.Context) error {
	if err := m.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("could not ping mongo: %w", err)
	}

	return nil
}

// Collections lists the collections of the database.
func (m *Mongo) Collections(ctx context.Context) ([]string, error) {
	names, err := m.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("could not list mongo collections: %w", err)
	}

	return names, nil
}

// Close disconnects the client.
func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("could not disconnect mongo client: %w", err)
	}

	return nil
}

// toBSON converts a struct into a mutable document map using its bson tags.
func toBSON(document any) (bson.M, error) {
	raw, err := bson.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("could not marshal document: %w", err)
	}

	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("could not unmarshal document: %w", err)
	}

	return doc, nil
}
